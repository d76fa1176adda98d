package taxonomy_test

import (
	"context"
	"testing"

	"content-manager/core/database"
	"content-manager/feature/taxonomy"
	"content-manager/feature/taxonomy/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func setupTaxonomyDB(t *testing.T) *gorm.DB {
	db, err := database.Connect(database.Config{Driver: "sqlite", Name: ":memory:"})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.Feature{},
		&models.Category{},
		&models.Topic{},
		&models.Subtopic{},
	)
	require.NoError(t, err)

	return db
}

func newResolver(t *testing.T, db *gorm.DB) *taxonomy.Resolver {
	snap, err := taxonomy.LoadContext(context.Background(), db)
	require.NoError(t, err)
	return taxonomy.NewResolver(db, snap, zap.NewNop())
}

func TestResolveCreatesFullPath(t *testing.T) {
	db := setupTaxonomyDB(t)
	resolver := newResolver(t, db)
	ctx := context.Background()

	featureID, err := resolver.ResolveFeature(ctx, "Quiz", models.FeatureTypeQuiz)
	require.NoError(t, err)
	assert.NotEmpty(t, featureID)

	categoryID, err := resolver.ResolveCategory(ctx, "World History", featureID)
	require.NoError(t, err)
	// Category IDs are name slugs
	assert.Equal(t, "world-history", categoryID)

	topicID, err := resolver.ResolveTopic(ctx, "Ancient Rome", categoryID)
	require.NoError(t, err)

	subtopicID, err := resolver.ResolveSubtopic(ctx, "Emperors", categoryID, featureID, topicID)
	require.NoError(t, err)

	// All nodes are persisted
	var cat models.Category
	require.NoError(t, db.First(&cat, "id = ?", categoryID).Error)
	assert.Equal(t, "World History", cat.Name)
	assert.True(t, cat.IsPublished)
	assert.Equal(t, featureID, cat.FeatureID)

	var sub models.Subtopic
	require.NoError(t, db.First(&sub, "id = ?", subtopicID).Error)
	assert.Equal(t, categoryID, sub.CategoryID)
	assert.Equal(t, topicID, sub.TopicID)
	assert.Equal(t, featureID, sub.FeatureID)
}

func TestResolveIsIdempotent(t *testing.T) {
	db := setupTaxonomyDB(t)
	resolver := newResolver(t, db)
	ctx := context.Background()

	featureID, err := resolver.ResolveFeature(ctx, "Quiz", models.FeatureTypeQuiz)
	require.NoError(t, err)

	categoryID, err := resolver.ResolveCategory(ctx, "Science", featureID)
	require.NoError(t, err)

	// Same names, different casing, same resolver run
	featureID2, err := resolver.ResolveFeature(ctx, "quiz", models.FeatureTypeQuiz)
	require.NoError(t, err)
	assert.Equal(t, featureID, featureID2)

	categoryID2, err := resolver.ResolveCategory(ctx, "SCIENCE", featureID)
	require.NoError(t, err)
	assert.Equal(t, categoryID, categoryID2)

	var count int64
	require.NoError(t, db.Model(&models.Category{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestResolveMatchesAcrossRuns(t *testing.T) {
	db := setupTaxonomyDB(t)
	ctx := context.Background()

	resolver := newResolver(t, db)
	featureID, err := resolver.ResolveFeature(ctx, "Quiz", models.FeatureTypeQuiz)
	require.NoError(t, err)
	categoryID, err := resolver.ResolveCategory(ctx, "Geography", featureID)
	require.NoError(t, err)

	// Fresh snapshot, as a later pipeline run would take
	resolver2 := newResolver(t, db)
	categoryID2, err := resolver2.ResolveCategory(ctx, "geography", featureID)
	require.NoError(t, err)
	assert.Equal(t, categoryID, categoryID2)
}

func TestResolveScopesToParent(t *testing.T) {
	db := setupTaxonomyDB(t)
	resolver := newResolver(t, db)
	ctx := context.Background()

	featureID, err := resolver.ResolveFeature(ctx, "Quiz", models.FeatureTypeQuiz)
	require.NoError(t, err)

	catA, err := resolver.ResolveCategory(ctx, "Science", featureID)
	require.NoError(t, err)
	catB, err := resolver.ResolveCategory(ctx, "History", featureID)
	require.NoError(t, err)

	// Same topic name under different categories creates two nodes
	topicA, err := resolver.ResolveTopic(ctx, "Basics", catA)
	require.NoError(t, err)
	topicB, err := resolver.ResolveTopic(ctx, "Basics", catB)
	require.NoError(t, err)
	assert.NotEqual(t, topicA, topicB)
}

func TestResolveTopicSortOrder(t *testing.T) {
	db := setupTaxonomyDB(t)
	resolver := newResolver(t, db)
	ctx := context.Background()

	featureID, err := resolver.ResolveFeature(ctx, "Quiz", models.FeatureTypeQuiz)
	require.NoError(t, err)
	categoryID, err := resolver.ResolveCategory(ctx, "Science", featureID)
	require.NoError(t, err)

	id1, err := resolver.ResolveTopic(ctx, "Physics", categoryID)
	require.NoError(t, err)
	id2, err := resolver.ResolveTopic(ctx, "Chemistry", categoryID)
	require.NoError(t, err)

	var t1, t2 models.Topic
	require.NoError(t, db.First(&t1, "id = ?", id1).Error)
	require.NoError(t, db.First(&t2, "id = ?", id2).Error)
	assert.Equal(t, 1, t1.SortOrder)
	assert.Equal(t, 2, t2.SortOrder)
}
