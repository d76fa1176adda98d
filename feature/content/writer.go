package content

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"content-manager/feature/content/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Dedup scopes for question texts.
const (
	// DedupScopeGlobal treats the whole questions collection as one dedup
	// space: the same wording cannot appear under two different subtopics.
	DedupScopeGlobal = "global"
	// DedupScopeSubtopic scopes dedup to the target subtopic, allowing a
	// common question to be reused across topics.
	DedupScopeSubtopic = "subtopic"
)

// ResolvedIDs carries the taxonomy IDs and display names a content item is
// written against.
type ResolvedIDs struct {
	FeatureID  string
	CategoryID string
	TopicID    string
	SubtopicID string

	Feature  string
	Category string
	Topic    string
	Subtopic string
}

// Touched identifies the taxonomy nodes affected by one write, for count
// reconciliation after the run.
type Touched struct {
	SubtopicID string
	TopicID    string
}

// Writer creates content documents for one import run.
//
// Quiz questions are deduplicated against a set of existing question texts
// preloaded for the whole run; puzzles are always written. The dedup set is
// updated synchronously on every write, so duplicate rows within one batch
// are caught without re-querying.
type Writer struct {
	db     *gorm.DB
	logger *zap.Logger
	scope  string
	seen   map[string]struct{}
}

// NewWriter creates a writer with an empty dedup set. Call Preload before
// writing to seed the set from the store.
func NewWriter(db *gorm.DB, logger *zap.Logger, dedupScope string) *Writer {
	if dedupScope == "" {
		dedupScope = DedupScopeGlobal
	}
	return &Writer{
		db:     db,
		logger: logger,
		scope:  dedupScope,
		seen:   make(map[string]struct{}),
	}
}

// Preload bulk-fetches existing question texts into the dedup set. A failure
// here is fatal for the run.
func (w *Writer) Preload(ctx context.Context) error {
	var rows []struct {
		Question   string
		SubtopicID string
	}
	if err := w.db.WithContext(ctx).Model(&models.Question{}).
		Select("question", "subtopic_id").Find(&rows).Error; err != nil {
		return fmt.Errorf("failed to load existing questions: %w", err)
	}
	for _, r := range rows {
		w.seen[w.dedupKey(r.Question, r.SubtopicID)] = struct{}{}
	}
	return nil
}

// dedupKey builds the dedup key for a question text: lowercased, trimmed,
// optionally prefixed with the subtopic when scoped.
func (w *Writer) dedupKey(question, subtopicID string) string {
	key := strings.ToLower(strings.TrimSpace(question))
	if w.scope == DedupScopeSubtopic {
		key = subtopicID + "|" + key
	}
	return key
}

// Write creates the content document for the item. It returns the touched
// taxonomy nodes and whether a document was actually saved (false means the
// item was a duplicate and skipped, which is a designed outcome, not an error).
func (w *Writer) Write(ctx context.Context, item *models.Item, ids ResolvedIDs) (Touched, bool, error) {
	touched := Touched{SubtopicID: ids.SubtopicID, TopicID: ids.TopicID}

	if item.IsPuzzle() {
		if err := w.writePuzzle(ctx, item, ids); err != nil {
			return touched, false, err
		}
		return touched, true, nil
	}

	key := w.dedupKey(item.Question, ids.SubtopicID)
	if _, dup := w.seen[key]; dup {
		w.logger.Debug("Skipping duplicate question", zap.String("question", item.Question))
		return touched, false, nil
	}

	question := models.Question{
		ID:            uuid.NewString(),
		Question:      item.Question,
		OptionA:       item.OptionA,
		OptionB:       item.OptionB,
		OptionC:       item.OptionC,
		OptionD:       item.OptionD,
		CorrectAnswer: item.CorrectAnswer,
		Difficulty:    item.Difficulty,
		Feature:       ids.Feature,
		Category:      ids.Category,
		Topic:         ids.Topic,
		Subtopic:      ids.Subtopic,
		FeatureID:     ids.FeatureID,
		CategoryID:    ids.CategoryID,
		TopicID:       ids.TopicID,
		SubtopicID:    ids.SubtopicID,
	}
	if err := w.db.WithContext(ctx).Create(&question).Error; err != nil {
		return touched, false, fmt.Errorf("failed to create question: %w", err)
	}
	w.seen[key] = struct{}{}

	return touched, true, nil
}

// writePuzzle creates a puzzle document. There is no dedup check for puzzles.
// The type-specific payload cells are copied only when the declared type
// matches; a matching puzzle with an "items" cell drops the items.
func (w *Writer) writePuzzle(ctx context.Context, item *models.Item, ids ResolvedIDs) error {
	payload := map[string]any{}

	switch item.Type {
	case models.PuzzleTypeMatching:
		addRawPayload(payload, "pairs", item.Pairs)
	case models.PuzzleTypeOrdering:
		addRawPayload(payload, "items", item.Items)
	case models.PuzzleTypeDragDrop:
		addRawPayload(payload, "draggables", item.Draggables)
		addRawPayload(payload, "targets", item.Targets)
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to encode puzzle payload: %w", err)
	}

	puzzle := models.Puzzle{
		ID:            uuid.NewString(),
		Title:         item.Title,
		Description:   item.Description,
		ImageURL:      item.ImageURL,
		Type:          item.Type,
		CorrectAnswer: item.CorrectAnswer,
		Difficulty:    item.Difficulty,
		Data:          data,
		Feature:       ids.Feature,
		Category:      ids.Category,
		Topic:         ids.Topic,
		Subtopic:      ids.Subtopic,
		FeatureID:     ids.FeatureID,
		CategoryID:    ids.CategoryID,
		TopicID:       ids.TopicID,
		SubtopicID:    ids.SubtopicID,
	}
	if err := w.db.WithContext(ctx).Create(&puzzle).Error; err != nil {
		return fmt.Errorf("failed to create puzzle: %w", err)
	}
	return nil
}

// addRawPayload stores a payload cell under the given key. Cells holding
// valid JSON are embedded as-is; anything else is kept as a plain string.
func addRawPayload(payload map[string]any, key, cell string) {
	cell = strings.TrimSpace(cell)
	if cell == "" {
		return
	}
	if json.Valid([]byte(cell)) {
		payload[key] = json.RawMessage(cell)
		return
	}
	payload[key] = cell
}
