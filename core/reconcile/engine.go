package reconcile

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// fkColumnFor maps a taxonomy node table to the foreign key column content
// rows use to reference nodes in that table.
func fkColumnFor(nodeTable string) (string, error) {
	switch nodeTable {
	case TableSubtopics:
		return "subtopic_id", nil
	case TableTopics:
		return "topic_id", nil
	case TableCategories:
		return "category_id", nil
	default:
		return "", fmt.Errorf("no foreign key mapping for table %s", nodeTable)
	}
}

// RecomputeCount queries the content rows whose foreign key references the
// node and returns the true count as of the query snapshot.
func RecomputeCount(ctx context.Context, db *gorm.DB, contentTable, fkColumn, nodeID string) (int64, error) {
	var n int64
	if err := db.WithContext(ctx).Table(contentTable).
		Where(fkColumn+" = ?", nodeID).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("failed to count %s by %s: %w", contentTable, fkColumn, err)
	}
	return n, nil
}

// recomputeBoth recomputes quiz and puzzle counts for one node.
func recomputeBoth(ctx context.Context, db *gorm.DB, nodeTable, nodeID string) (Counts, error) {
	fk, err := fkColumnFor(nodeTable)
	if err != nil {
		return Counts{}, err
	}

	quiz, err := RecomputeCount(ctx, db, TableQuestions, fk, nodeID)
	if err != nil {
		return Counts{}, err
	}
	puzzle, err := RecomputeCount(ctx, db, TablePuzzles, fk, nodeID)
	if err != nil {
		return Counts{}, err
	}
	return Counts{Quiz: quiz, Puzzle: puzzle}, nil
}

// Recount recomputes a node's quiz and puzzle counts and writes them back
// together. This is the post-import mode: counts only, publish flags are
// never changed here.
//
// The guarantee is snapshot consistency: after Recount returns without error
// the stored counts equal the true counts as of the query time. Nothing
// prevents another write landing between the query and the write-back.
func Recount(ctx context.Context, db *gorm.DB, nodeTable, nodeID string) (Counts, error) {
	counts, err := recomputeBoth(ctx, db, nodeTable, nodeID)
	if err != nil {
		return Counts{}, err
	}

	err = db.WithContext(ctx).Table(nodeTable).Where("id = ?", nodeID).Updates(map[string]any{
		"quiz_count":   counts.Quiz,
		"puzzle_count": counts.Puzzle,
	}).Error
	if err != nil {
		return Counts{}, fmt.Errorf("failed to write counts to %s/%s: %w", nodeTable, nodeID, err)
	}

	return counts, nil
}

// ReconcileAfterDelete recomputes a node's counts after content deletion.
// In addition to the counts, a node left with no content at all is
// unpublished. The flag is set, never unset, by this path: re-importing
// content later does not auto-republish.
//
// The node may itself have been deleted concurrently; in that case the
// reconciliation is silently skipped.
func ReconcileAfterDelete(ctx context.Context, db *gorm.DB, logger *zap.Logger, nodeTable, nodeID string) error {
	var exists int64
	if err := db.WithContext(ctx).Table(nodeTable).
		Where("id = ?", nodeID).Count(&exists).Error; err != nil {
		return fmt.Errorf("failed to check %s/%s: %w", nodeTable, nodeID, err)
	}
	if exists == 0 {
		logger.Debug("Reconciliation target gone, skipping",
			zap.String("table", nodeTable), zap.String("id", nodeID))
		return nil
	}

	counts, err := recomputeBoth(ctx, db, nodeTable, nodeID)
	if err != nil {
		return err
	}

	updates := map[string]any{
		"quiz_count":   counts.Quiz,
		"puzzle_count": counts.Puzzle,
	}
	if counts.Total() == 0 {
		updates["is_published"] = false
	}

	if err := db.WithContext(ctx).Table(nodeTable).
		Where("id = ?", nodeID).Updates(updates).Error; err != nil {
		return fmt.Errorf("failed to write counts to %s/%s: %w", nodeTable, nodeID, err)
	}

	if counts.Total() == 0 {
		logger.Info("Unpublished empty node",
			zap.String("table", nodeTable), zap.String("id", nodeID))
	}

	return nil
}
