package models

import (
	"strings"
)

// Feature type values. Custom covers hybrid features created through the
// admin UI rather than the importer.
const (
	FeatureTypeQuiz   = "quiz"
	FeatureTypePuzzle = "puzzle"
	FeatureTypeCustom = "custom"
)

// Feature is the root of the taxonomy (e.g. "Quiz", "Daily Puzzle").
type Feature struct {
	ID          string `gorm:"column:id;primaryKey" json:"id"`
	Name        string `gorm:"column:name" json:"name"`
	Label       string `gorm:"column:label" json:"label"`
	FeatureType string `gorm:"column:feature_type" json:"featureType"`
}

// TableName overrides the table name.
func (Feature) TableName() string { return "features" }

// Category is the second taxonomy level. Its ID is the slug of its name,
// which doubles as the dedup key: two names that slug identically are the
// same category by construction.
type Category struct {
	ID          string `gorm:"column:id;primaryKey" json:"id"`
	Name        string `gorm:"column:name" json:"name"`
	Label       string `gorm:"column:label" json:"label"`
	FeatureID   string `gorm:"column:feature_id;index" json:"featureId"`
	IsPublished bool   `gorm:"column:is_published" json:"isPublished"`
	QuizCount   int    `gorm:"column:quiz_count" json:"quizCount"`
	PuzzleCount int    `gorm:"column:puzzle_count" json:"puzzleCount"`
}

// TableName overrides the table name.
func (Category) TableName() string { return "categories" }

// Topic is the third taxonomy level.
type Topic struct {
	ID          string `gorm:"column:id;primaryKey" json:"id"`
	Name        string `gorm:"column:name" json:"name"`
	Label       string `gorm:"column:label" json:"label"`
	CategoryID  string `gorm:"column:category_id;index" json:"categoryId"`
	IsPublished bool   `gorm:"column:is_published" json:"isPublished"`
	SortOrder   int    `gorm:"column:sort_order" json:"sortOrder"`
	QuizCount   int    `gorm:"column:quiz_count" json:"quizCount"`
	PuzzleCount int    `gorm:"column:puzzle_count" json:"puzzleCount"`
}

// TableName overrides the table name.
func (Topic) TableName() string { return "topics" }

// Subtopic is the leaf taxonomy level content items attach to.
type Subtopic struct {
	ID          string `gorm:"column:id;primaryKey" json:"id"`
	Name        string `gorm:"column:name" json:"name"`
	Label       string `gorm:"column:label" json:"label"`
	CategoryID  string `gorm:"column:category_id;index" json:"categoryId"`
	TopicID     string `gorm:"column:topic_id;index" json:"topicId"`
	FeatureID   string `gorm:"column:feature_id;index" json:"featureId"`
	IsPublished bool   `gorm:"column:is_published" json:"isPublished"`
	QuizCount   int    `gorm:"column:quiz_count" json:"quizCount"`
	PuzzleCount int    `gorm:"column:puzzle_count" json:"puzzleCount"`
}

// TableName overrides the table name.
func (Subtopic) TableName() string { return "subtopics" }

// Slug derives a category document ID from its name: lowercased, trimmed,
// runs of whitespace collapsed to single hyphens.
//
// Using the slug as the primary key makes dedup implicit, but it also means
// two distinct names that normalize to the same slug ("US History" vs
// "us  history") are the same category. Callers own that trade-off.
func Slug(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))
	return strings.Join(strings.Fields(s), "-")
}
