package importer_test

import (
	"context"
	"strings"
	"testing"

	"content-manager/core/database"
	contentmodels "content-manager/feature/content/models"
	"content-manager/feature/importer"
	taxonomymodels "content-manager/feature/taxonomy/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func setupImportDB(t *testing.T) *gorm.DB {
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

func questionRow(text, category string) importer.Row {
	return importer.Row{
		"question":      text,
		"optionA":       "A",
		"optionB":       "B",
		"optionC":       "C",
		"optionD":       "D",
		"correctAnswer": "A",
		"category":      category,
	}
}

func TestPipelineRun(t *testing.T) {
	db := setupImportDB(t)
	pipeline := importer.NewPipeline(db, zap.NewNop(), importer.Config{})

	rows := []importer.Row{
		questionRow("What is H2O?", "Science"),
		questionRow("What is CO2?", "Science"),
		questionRow("what is h2o?", "Science"), // duplicate of row 1
		{"category": "Science"},                // no question, no title
		{
			"title":    "Match the capitals",
			"type":     "matching",
			"category": "Geography",
			"pairs":    `[{"left":"France","right":"Paris"}]`,
		},
	}

	result, err := pipeline.Run(context.Background(), rows)
	require.NoError(t, err)

	assert.Equal(t, importer.StateDone, pipeline.State())
	assert.Equal(t, 3, result.Saved)
	assert.Equal(t, 2, result.Skipped)
	assert.Equal(t, 5, result.Total)

	var questions int64
	require.NoError(t, db.Model(&contentmodels.Question{}).Count(&questions).Error)
	assert.Equal(t, int64(2), questions)

	var puzzles int64
	require.NoError(t, db.Model(&contentmodels.Puzzle{}).Count(&puzzles).Error)
	assert.Equal(t, int64(1), puzzles)
}

func TestPipelineCreatesTaxonomy(t *testing.T) {
	db := setupImportDB(t)
	pipeline := importer.NewPipeline(db, zap.NewNop(), importer.Config{})

	rows := []importer.Row{questionRow("What is H2O?", "Science")}
	_, err := pipeline.Run(context.Background(), rows)
	require.NoError(t, err)

	// Quiz feature, Science category, and defaulted topic/subtopic exist
	var feature taxonomymodels.Feature
	require.NoError(t, db.First(&feature, "name = ?", "Quiz").Error)
	assert.Equal(t, taxonomymodels.FeatureTypeQuiz, feature.FeatureType)

	var category taxonomymodels.Category
	require.NoError(t, db.First(&category, "id = ?", "science").Error)
	assert.Equal(t, feature.ID, category.FeatureID)

	var topic taxonomymodels.Topic
	require.NoError(t, db.First(&topic, "category_id = ?", category.ID).Error)
	assert.Equal(t, "Science", topic.Name)

	var subtopic taxonomymodels.Subtopic
	require.NoError(t, db.First(&subtopic, "topic_id = ?", topic.ID).Error)

	// The saved question carries both names and IDs
	var question contentmodels.Question
	require.NoError(t, db.First(&question).Error)
	assert.Equal(t, subtopic.ID, question.SubtopicID)
	assert.Equal(t, "Science", question.Category)
	assert.Equal(t, "Quiz", question.Feature)
}

func TestPipelineReconcilesCounts(t *testing.T) {
	db := setupImportDB(t)
	pipeline := importer.NewPipeline(db, zap.NewNop(), importer.Config{})

	rows := []importer.Row{
		questionRow("Q1", "Science"),
		questionRow("Q2", "Science"),
		questionRow("Q3", "History"),
	}
	result, err := pipeline.Run(context.Background(), rows)
	require.NoError(t, err)
	require.Equal(t, 3, result.Saved)

	var subtopics []taxonomymodels.Subtopic
	require.NoError(t, db.Find(&subtopics).Error)
	require.Len(t, subtopics, 2)

	byName := map[string]taxonomymodels.Subtopic{}
	for _, s := range subtopics {
		byName[s.Name] = s
	}
	assert.Equal(t, 2, byName["Science"].QuizCount)
	assert.Equal(t, 1, byName["History"].QuizCount)
	assert.Equal(t, 0, byName["Science"].PuzzleCount)

	var topics []taxonomymodels.Topic
	require.NoError(t, db.Find(&topics).Error)
	for _, topic := range topics {
		if topic.Name == "Science" {
			assert.Equal(t, 2, topic.QuizCount)
		}
	}
}

func TestPipelineAbsorbsRowFailures(t *testing.T) {
	db := setupImportDB(t)

	// Dropping the puzzles table makes puzzle rows fail at write time while
	// question rows keep working.
	require.NoError(t, db.Migrator().DropTable(&contentmodels.Puzzle{}))

	pipeline := importer.NewPipeline(db, zap.NewNop(), importer.Config{})

	rows := []importer.Row{
		questionRow("Q1", "Science"),
		{"title": "Broken puzzle", "type": "ordering", "items": `["a"]`},
		questionRow("Q2", "Science"),
	}

	result, err := pipeline.Run(context.Background(), rows)
	require.NoError(t, err)

	assert.Equal(t, 2, result.Saved)
	assert.Equal(t, 1, result.Skipped)
	assert.Equal(t, 3, result.Total)
}

func TestPipelineViaCSV(t *testing.T) {
	db := setupImportDB(t)
	svc := importer.NewService(db, zap.NewNop(), importer.Config{})

	csv := strings.Join([]string{
		"question,optionA,optionB,optionC,optionD,correctAnswer,category,difficulty",
		"What is H2O?,Water,Salt,Air,Fire,Water,Science,easy",
		"What is H2O?,Water,Salt,Air,Fire,Water,Science,easy",
	}, "\n")

	result, err := svc.ImportCSV(context.Background(), strings.NewReader(csv))
	require.NoError(t, err)

	assert.Equal(t, 1, result.Saved)
	assert.Equal(t, 1, result.Skipped)
	assert.Equal(t, 2, result.Total)
}
