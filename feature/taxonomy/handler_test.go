package taxonomy_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"content-manager/feature/taxonomy"
	"content-manager/feature/taxonomy/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func setupTaxonomyApp(t *testing.T) (*fiber.App, *gorm.DB) {
	db := setupTaxonomyDB(t)
	app := fiber.New()

	f := taxonomy.NewFeature(db, zap.NewNop())
	require.NoError(t, f.Load(app))

	return app, db
}

func TestHandleGetTree(t *testing.T) {
	app, db := setupTaxonomyApp(t)

	require.NoError(t, db.Create(&models.Feature{
		ID: "feat-1", Name: "Quiz", Label: "Quiz", FeatureType: models.FeatureTypeQuiz,
	}).Error)
	require.NoError(t, db.Create(&models.Category{
		ID: "science", Name: "Science", Label: "Science", FeatureID: "feat-1", IsPublished: true,
	}).Error)

	resp, err := app.Test(httptest.NewRequest("GET", "/taxonomy/tree", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	body, _ := io.ReadAll(resp.Body)
	var tree taxonomy.Tree
	require.NoError(t, json.Unmarshal(body, &tree))
	assert.Len(t, tree.Features, 1)
	assert.Len(t, tree.Categories, 1)
}

func TestHandleCreateCategory(t *testing.T) {
	app, db := setupTaxonomyApp(t)

	payload := `{"name":"World History","featureId":"feat-1"}`
	req := httptest.NewRequest("POST", "/taxonomy/categories", bytes.NewBufferString(payload))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var category models.Category
	require.NoError(t, db.First(&category, "id = ?", "world-history").Error)
	assert.Equal(t, "World History", category.Name)

	// Missing name is rejected
	req = httptest.NewRequest("POST", "/taxonomy/categories", bytes.NewBufferString(`{}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestHandleUpdateTopicNotFound(t *testing.T) {
	app, _ := setupTaxonomyApp(t)

	req := httptest.NewRequest("PUT", "/taxonomy/topics/nope", bytes.NewBufferString(`{"label":"X"}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestHandleDeleteSubtopic(t *testing.T) {
	app, db := setupTaxonomyApp(t)

	require.NoError(t, db.Create(&models.Subtopic{
		ID: "sub-1", Name: "Optics", Label: "Optics",
		CategoryID: "science", TopicID: "topic-1", FeatureID: "feat-1",
	}).Error)

	resp, err := app.Test(httptest.NewRequest("DELETE", "/taxonomy/subtopics/sub-1", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var count int64
	require.NoError(t, db.Model(&models.Subtopic{}).Count(&count).Error)
	assert.Zero(t, count)

	resp, err = app.Test(httptest.NewRequest("DELETE", "/taxonomy/subtopics/sub-1", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}
