package reconcile_test

import (
	"context"
	"testing"

	"content-manager/core/database"
	"content-manager/core/reconcile"
	contentmodels "content-manager/feature/content/models"
	taxonomymodels "content-manager/feature/taxonomy/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

func setupReconcileDB(t *testing.T) *gorm.DB {
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

	return db
}

func seedSubtopic(t *testing.T, db *gorm.DB, id string, quizCount, puzzleCount int, published bool) {
	require.NoError(t, db.Create(&taxonomymodels.Subtopic{
		ID:          id,
		Name:        "Optics",
		Label:       "Optics",
		CategoryID:  "science",
		TopicID:     "topic-1",
		FeatureID:   "feat-1",
		IsPublished: published,
		QuizCount:   quizCount,
		PuzzleCount: puzzleCount,
	}).Error)
}

func seedQuestion(t *testing.T, db *gorm.DB, id, subtopicID string) {
	require.NoError(t, db.Create(&contentmodels.Question{
		ID:         id,
		Question:   "Q " + id,
		SubtopicID: subtopicID,
		TopicID:    "topic-1",
		CategoryID: "science",
		FeatureID:  "feat-1",
	}).Error)
}

func TestRecount(t *testing.T) {
	db := setupReconcileDB(t)
	ctx := context.Background()

	// Stored counts start wrong
	seedSubtopic(t, db, "sub-1", 99, 99, true)
	seedQuestion(t, db, "q1", "sub-1")
	seedQuestion(t, db, "q2", "sub-1")

	counts, err := reconcile.Recount(ctx, db, reconcile.TableSubtopics, "sub-1")
	require.NoError(t, err)
	assert.Equal(t, int64(2), counts.Quiz)
	assert.Equal(t, int64(0), counts.Puzzle)

	var sub taxonomymodels.Subtopic
	require.NoError(t, db.First(&sub, "id = ?", "sub-1").Error)
	assert.Equal(t, 2, sub.QuizCount)
	assert.Equal(t, 0, sub.PuzzleCount)
	// Recount never touches the publish flag
	assert.True(t, sub.IsPublished)
}

func TestReconcileAfterDeleteUnpublishesEmpty(t *testing.T) {
	db := setupReconcileDB(t)
	ctx := context.Background()

	seedSubtopic(t, db, "sub-1", 1, 0, true)
	// No content rows remain after the deletion

	err := reconcile.ReconcileAfterDelete(ctx, db, zap.NewNop(), reconcile.TableSubtopics, "sub-1")
	require.NoError(t, err)

	var sub taxonomymodels.Subtopic
	require.NoError(t, db.First(&sub, "id = ?", "sub-1").Error)
	assert.Equal(t, 0, sub.QuizCount)
	assert.False(t, sub.IsPublished)
}

func TestReconcileAfterDeleteKeepsNonEmptyPublished(t *testing.T) {
	db := setupReconcileDB(t)
	ctx := context.Background()

	seedSubtopic(t, db, "sub-1", 5, 0, true)
	seedQuestion(t, db, "q1", "sub-1")

	err := reconcile.ReconcileAfterDelete(ctx, db, zap.NewNop(), reconcile.TableSubtopics, "sub-1")
	require.NoError(t, err)

	var sub taxonomymodels.Subtopic
	require.NoError(t, db.First(&sub, "id = ?", "sub-1").Error)
	assert.Equal(t, 1, sub.QuizCount)
	assert.True(t, sub.IsPublished)
}

func TestReconcileAfterDeleteDoesNotRepublish(t *testing.T) {
	db := setupReconcileDB(t)
	ctx := context.Background()

	// Node was unpublished earlier; content exists again
	seedSubtopic(t, db, "sub-1", 0, 0, false)
	seedQuestion(t, db, "q1", "sub-1")

	err := reconcile.ReconcileAfterDelete(ctx, db, zap.NewNop(), reconcile.TableSubtopics, "sub-1")
	require.NoError(t, err)

	var sub taxonomymodels.Subtopic
	require.NoError(t, db.First(&sub, "id = ?", "sub-1").Error)
	assert.Equal(t, 1, sub.QuizCount)
	assert.False(t, sub.IsPublished)
}

func TestReconcileAfterDeleteSkipsMissingNode(t *testing.T) {
	db := setupReconcileDB(t)

	err := reconcile.ReconcileAfterDelete(context.Background(), db, zap.NewNop(), reconcile.TableSubtopics, "gone")
	assert.NoError(t, err)
}

func TestRecountUnknownTable(t *testing.T) {
	db := setupReconcileDB(t)

	_, err := reconcile.Recount(context.Background(), db, "questions", "q1")
	assert.Error(t, err)
}

func TestRecomputeCountQuery(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	dialector := mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	})
	db, err := gorm.Open(dialector, &gorm.Config{})
	require.NoError(t, err)

	mock.ExpectQuery("SELECT count\\(\\*\\) FROM `questions` WHERE subtopic_id = \\?").
		WithArgs("sub-1").
		WillReturnRows(sqlmock.NewRows([]string{"count(*)"}).AddRow(7))

	n, err := reconcile.RecomputeCount(context.Background(), db, reconcile.TableQuestions, "subtopic_id", "sub-1")
	require.NoError(t, err)
	assert.Equal(t, int64(7), n)
	assert.NoError(t, mock.ExpectationsWereMet())
}
