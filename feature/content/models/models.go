package models

import (
	"gorm.io/datatypes"
)

// Difficulty values.
const (
	DifficultyEasy   = "easy"
	DifficultyMedium = "medium"
	DifficultyHard   = "hard"
)

// Puzzle type values. Each type owns a distinct payload shape inside
// Puzzle.Data; the writer only copies the payload matching the declared type.
const (
	PuzzleTypeMatching = "matching" // pairs
	PuzzleTypeOrdering = "ordering" // items
	PuzzleTypeDragDrop = "dragdrop" // draggables + targets
)

// Question is a quiz question document.
//
// Every taxonomy level is stored twice: as the resolved ID (the foreign key)
// and as the human-readable name captured at write time. The names exist for
// read performance in the UI and are expected to drift when taxonomy nodes
// are renamed; core/reconcile treats the taxonomy as the source of truth and
// can sync them back.
type Question struct {
	ID            string `gorm:"column:id;primaryKey" json:"id"`
	Question      string `gorm:"column:question" json:"question"`
	OptionA       string `gorm:"column:option_a" json:"optionA"`
	OptionB       string `gorm:"column:option_b" json:"optionB"`
	OptionC       string `gorm:"column:option_c" json:"optionC"`
	OptionD       string `gorm:"column:option_d" json:"optionD"`
	CorrectAnswer string `gorm:"column:correct_answer" json:"correctAnswer"`
	Difficulty    string `gorm:"column:difficulty" json:"difficulty"`

	Feature  string `gorm:"column:feature" json:"feature"`
	Category string `gorm:"column:category" json:"category"`
	Topic    string `gorm:"column:topic" json:"topic"`
	Subtopic string `gorm:"column:subtopic" json:"subtopic"`

	FeatureID  string `gorm:"column:feature_id;index" json:"featureId"`
	CategoryID string `gorm:"column:category_id;index" json:"categoryId"`
	TopicID    string `gorm:"column:topic_id;index" json:"topicId"`
	SubtopicID string `gorm:"column:subtopic_id;index" json:"subtopicId"`
}

// TableName overrides the table name.
func (Question) TableName() string { return "questions" }

// Puzzle is a puzzle document. Type-specific sub-structures (pairs, items,
// draggables/targets) live in the Data JSON column.
type Puzzle struct {
	ID            string         `gorm:"column:id;primaryKey" json:"id"`
	Title         string         `gorm:"column:title" json:"title"`
	Description   string         `gorm:"column:description" json:"description"`
	ImageURL      string         `gorm:"column:image_url" json:"imageUrl"`
	Type          string         `gorm:"column:type" json:"type"`
	CorrectAnswer string         `gorm:"column:correct_answer" json:"correctAnswer,omitempty"`
	Difficulty    string         `gorm:"column:difficulty" json:"difficulty"`
	Data          datatypes.JSON `gorm:"column:data" json:"data"`

	Feature  string `gorm:"column:feature" json:"feature"`
	Category string `gorm:"column:category" json:"category"`
	Topic    string `gorm:"column:topic" json:"topic"`
	Subtopic string `gorm:"column:subtopic" json:"subtopic"`

	FeatureID  string `gorm:"column:feature_id;index" json:"featureId"`
	CategoryID string `gorm:"column:category_id;index" json:"categoryId"`
	TopicID    string `gorm:"column:topic_id;index" json:"topicId"`
	SubtopicID string `gorm:"column:subtopic_id;index" json:"subtopicId"`
}

// TableName overrides the table name.
func (Puzzle) TableName() string { return "puzzles" }

// Item is the canonical intermediate representation one spreadsheet row
// normalizes into. Exactly one of Question or Title is set; Title marks the
// item as a puzzle.
type Item struct {
	Feature  string
	Category string
	Topic    string
	Subtopic string

	Difficulty string

	// Quiz fields
	Question      string
	OptionA       string
	OptionB       string
	OptionC       string
	OptionD       string
	CorrectAnswer string

	// Puzzle fields; the payload cells carry raw JSON from the sheet
	Title       string
	Description string
	ImageURL    string
	Type        string
	Pairs       string
	Items       string
	Draggables  string
	Targets     string
}

// IsPuzzle reports whether the item is a puzzle (title present) rather than
// a quiz question.
func (i *Item) IsPuzzle() bool {
	return i.Title != ""
}
