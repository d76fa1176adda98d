package importer

import (
	"strings"

	"content-manager/core/utils"
	"content-manager/feature/content/models"
)

// Row is one raw spreadsheet record: unordered keys with arbitrary casing,
// loosely typed cell values.
type Row map[string]any

// field returns the trimmed string value for a column, checking the
// lowercase key first and the capitalized key second; first match wins.
// Empty strings are treated as absent.
func field(row Row, key string) string {
	if v, ok := row[key]; ok {
		if s := strings.TrimSpace(utils.ToString(v)); s != "" {
			return s
		}
	}
	capitalized := strings.ToUpper(key[:1]) + key[1:]
	if v, ok := row[capitalized]; ok {
		if s := strings.TrimSpace(utils.ToString(v)); s != "" {
			return s
		}
	}
	return ""
}

// Normalize maps a raw row into the canonical item, or nil when the row has
// neither a question nor a title and is therefore unusable.
//
// It does not validate option completeness or answer correctness; that
// responsibility sits with the writer and the UI.
func Normalize(row Row) *models.Item {
	item := &models.Item{
		Feature:  field(row, "feature"),
		Category: field(row, "category"),
		Topic:    field(row, "topic"),
		Subtopic: field(row, "subtopic"),

		Difficulty: field(row, "difficulty"),

		Question:      field(row, "question"),
		OptionA:       field(row, "optionA"),
		OptionB:       field(row, "optionB"),
		OptionC:       field(row, "optionC"),
		OptionD:       field(row, "optionD"),
		CorrectAnswer: field(row, "correctAnswer"),

		Title:       field(row, "title"),
		Description: field(row, "description"),
		ImageURL:    field(row, "imageUrl"),
		Type:        field(row, "type"),
		Pairs:       field(row, "pairs"),
		Items:       field(row, "items"),
		Draggables:  field(row, "draggables"),
		Targets:     field(row, "targets"),
	}

	if item.Question == "" && item.Title == "" {
		return nil
	}

	if item.Difficulty == "" {
		item.Difficulty = models.DifficultyEasy
	}

	return item
}
