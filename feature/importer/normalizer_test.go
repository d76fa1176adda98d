package importer

import (
	"testing"

	"content-manager/feature/content/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeQuestionRow(t *testing.T) {
	row := Row{
		"question":      "What is H2O?",
		"optionA":       "Water",
		"optionB":       "Salt",
		"optionC":       "Air",
		"optionD":       "Fire",
		"correctAnswer": "Water",
		"category":      "Science",
		"difficulty":    "medium",
	}

	item := Normalize(row)
	require.NotNil(t, item)
	assert.False(t, item.IsPuzzle())
	assert.Equal(t, "What is H2O?", item.Question)
	assert.Equal(t, "Science", item.Category)
	assert.Equal(t, "medium", item.Difficulty)
}

func TestNormalizeKeyFallback(t *testing.T) {
	// Capitalized keys are accepted when the lowercase key is absent or empty
	row := Row{
		"Question": "Capitalized header",
		"question": "",
		"Category": "History",
	}

	item := Normalize(row)
	require.NotNil(t, item)
	assert.Equal(t, "Capitalized header", item.Question)
	assert.Equal(t, "History", item.Category)
}

func TestNormalizeLowercaseWins(t *testing.T) {
	row := Row{
		"question": "lower",
		"Question": "upper",
	}

	item := Normalize(row)
	require.NotNil(t, item)
	assert.Equal(t, "lower", item.Question)
}

func TestNormalizeCoercesCellTypes(t *testing.T) {
	// Spreadsheet cells arrive loosely typed
	row := Row{
		"question":      "Pick a number",
		"optionA":       1,
		"optionB":       2.5,
		"optionC":       true,
		"correctAnswer": 1,
	}

	item := Normalize(row)
	require.NotNil(t, item)
	assert.Equal(t, "1", item.OptionA)
	assert.Equal(t, "2.5", item.OptionB)
	assert.Equal(t, "true", item.OptionC)
}

func TestNormalizeUnusableRow(t *testing.T) {
	assert.Nil(t, Normalize(Row{}))
	assert.Nil(t, Normalize(Row{"category": "Science", "difficulty": "hard"}))
	assert.Nil(t, Normalize(Row{"question": "   ", "title": ""}))
}

func TestNormalizeDefaultsDifficulty(t *testing.T) {
	item := Normalize(Row{"question": "No difficulty given"})
	require.NotNil(t, item)
	assert.Equal(t, models.DifficultyEasy, item.Difficulty)
}

func TestNormalizePuzzleRow(t *testing.T) {
	row := Row{
		"title":    "Match the capitals",
		"type":     "matching",
		"pairs":    `[{"left":"France","right":"Paris"}]`,
		"imageUrl": "http://example.com/img.png",
	}

	item := Normalize(row)
	require.NotNil(t, item)
	assert.True(t, item.IsPuzzle())
	assert.Equal(t, "matching", item.Type)
	assert.Equal(t, "http://example.com/img.png", item.ImageURL)
}
