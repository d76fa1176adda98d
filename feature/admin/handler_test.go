package admin_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"content-manager/core/database"
	"content-manager/core/reconcile"
	"content-manager/feature/admin"
	contentmodels "content-manager/feature/content/models"
	taxonomymodels "content-manager/feature/taxonomy/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func setupAdminApp(t *testing.T) (*fiber.App, *gorm.DB) {
	db, err := database.Connect(database.Config{Driver: "sqlite", Name: ":memory:"})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&taxonomymodels.Feature{},
		&taxonomymodels.Category{},
		&taxonomymodels.Topic{},
		&taxonomymodels.Subtopic{},
		&contentmodels.Question{},
		&contentmodels.Puzzle{},
	)
	require.NoError(t, err)

	app := fiber.New()
	f := admin.NewFeature(db, zap.NewNop())
	require.NoError(t, f.Load(app))

	reconcile.InvalidatePlan()
	return app, db
}

func TestHandleReport(t *testing.T) {
	app, db := setupAdminApp(t)

	require.NoError(t, db.Create(&taxonomymodels.Subtopic{
		ID: "sub-1", Name: "Optics", Label: "Optics",
		IsPublished: true, QuizCount: 5,
	}).Error)

	resp, err := app.Test(httptest.NewRequest("GET", "/admin/reconcile", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	body, _ := io.ReadAll(resp.Body)
	var plan reconcile.Plan
	require.NoError(t, json.Unmarshal(body, &plan))
	assert.Equal(t, 1, plan.Summary.CountMismatches)
	assert.Equal(t, 1, plan.Summary.EmptyPublished)
}

func TestHandleApply(t *testing.T) {
	app, db := setupAdminApp(t)

	require.NoError(t, db.Create(&taxonomymodels.Subtopic{
		ID: "sub-1", Name: "Optics", Label: "Optics",
		IsPublished: true, QuizCount: 5,
	}).Error)

	payload := `{"fixCounts":true}`
	req := httptest.NewRequest("POST", "/admin/reconcile/apply", bytes.NewBufferString(payload))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	body, _ := io.ReadAll(resp.Body)
	var result struct {
		Executed int `json:"executed"`
	}
	require.NoError(t, json.Unmarshal(body, &result))
	assert.Equal(t, 2, result.Executed)

	var sub taxonomymodels.Subtopic
	require.NoError(t, db.First(&sub, "id = ?", "sub-1").Error)
	assert.Equal(t, 0, sub.QuizCount)
	assert.False(t, sub.IsPublished)
}

func TestHandleApplyDryRun(t *testing.T) {
	app, db := setupAdminApp(t)

	require.NoError(t, db.Create(&taxonomymodels.Subtopic{
		ID: "sub-1", Name: "Optics", Label: "Optics",
		IsPublished: true, QuizCount: 5,
	}).Error)

	payload := `{"fixCounts":true,"dryRun":true}`
	req := httptest.NewRequest("POST", "/admin/reconcile/apply", bytes.NewBufferString(payload))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var sub taxonomymodels.Subtopic
	require.NoError(t, db.First(&sub, "id = ?", "sub-1").Error)
	assert.Equal(t, 5, sub.QuizCount)
	assert.True(t, sub.IsPublished)
}
