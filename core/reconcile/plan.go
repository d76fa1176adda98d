package reconcile

import (
	"context"
	"fmt"
	"sort"

	"gorm.io/gorm"
)

// nodeRow is the projection of a taxonomy node the planner works with.
type nodeRow struct {
	ID          string
	Name        string
	IsPublished bool
	QuizCount   int64
	PuzzleCount int64
}

// contentRow is the projection of a content row used for name-drift detection.
type contentRow struct {
	ID         string
	Feature    string
	Category   string
	Topic      string
	Subtopic   string
	FeatureID  string
	CategoryID string
	TopicID    string
	SubtopicID string
}

// BuildPlan scans the full taxonomy and content collections and returns a
// repair plan: count fixes, unpublish actions for empty published nodes, and
// name syncs for content rows whose denormalized names drifted from the
// taxonomy (which is the source of truth).
//
// True counts come from one GROUP BY query per (content table, foreign key)
// pair rather than per-node queries, so the scan stays cheap on large stores.
func BuildPlan(ctx context.Context, db *gorm.DB) (*Plan, error) {
	plan := &Plan{}

	// Node names by ID, for drift detection
	names := map[string]map[string]string{}
	for _, table := range []string{TableFeatures, TableCategories, TableTopics, TableSubtopics} {
		m, err := loadNames(ctx, db, table)
		if err != nil {
			return nil, err
		}
		names[table] = m
	}

	for _, table := range []string{TableCategories, TableTopics, TableSubtopics} {
		if err := planCounts(ctx, db, table, plan); err != nil {
			return nil, err
		}
	}

	for _, table := range []string{TableQuestions, TablePuzzles} {
		if err := planNameSync(ctx, db, table, names, plan); err != nil {
			return nil, err
		}
	}

	// Deterministic ordering for reports and tests
	sort.Slice(plan.Actions, func(i, j int) bool {
		if plan.Actions[i].Table != plan.Actions[j].Table {
			return plan.Actions[i].Table < plan.Actions[j].Table
		}
		return plan.Actions[i].Key < plan.Actions[j].Key
	})

	return plan, nil
}

// loadNames loads the id→name map for one taxonomy table.
func loadNames(ctx context.Context, db *gorm.DB, table string) (map[string]string, error) {
	var rows []struct {
		ID   string
		Name string
	}
	if err := db.WithContext(ctx).Table(table).Select("id", "name").Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", table, err)
	}
	m := make(map[string]string, len(rows))
	for _, r := range rows {
		m[r.ID] = r.Name
	}
	return m, nil
}

// trueCounts returns nodeID→count for one content table grouped by the given
// foreign key.
func trueCounts(ctx context.Context, db *gorm.DB, contentTable, fkColumn string) (map[string]int64, error) {
	var rows []struct {
		NodeID string
		N      int64
	}
	err := db.WithContext(ctx).Table(contentTable).
		Select(fkColumn + " as node_id, count(*) as n").
		Group(fkColumn).Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to group %s by %s: %w", contentTable, fkColumn, err)
	}
	m := make(map[string]int64, len(rows))
	for _, r := range rows {
		m[r.NodeID] = r.N
	}
	return m, nil
}

// planCounts compares stored counts against true counts for every node of
// one taxonomy table and appends fix/unpublish actions.
func planCounts(ctx context.Context, db *gorm.DB, nodeTable string, plan *Plan) error {
	fk, err := fkColumnFor(nodeTable)
	if err != nil {
		return err
	}

	quizCounts, err := trueCounts(ctx, db, TableQuestions, fk)
	if err != nil {
		return err
	}
	puzzleCounts, err := trueCounts(ctx, db, TablePuzzles, fk)
	if err != nil {
		return err
	}

	var nodes []nodeRow
	if err := db.WithContext(ctx).Table(nodeTable).
		Select("id", "name", "is_published", "quiz_count", "puzzle_count").
		Scan(&nodes).Error; err != nil {
		return fmt.Errorf("failed to load %s: %w", nodeTable, err)
	}

	for _, node := range nodes {
		plan.Summary.TotalNodes++
		actualQuiz := quizCounts[node.ID]
		actualPuzzle := puzzleCounts[node.ID]

		drifted := node.QuizCount != actualQuiz || node.PuzzleCount != actualPuzzle
		emptyPublished := node.IsPublished && actualQuiz+actualPuzzle == 0

		if !drifted && !emptyPublished {
			continue
		}

		plan.Results = append(plan.Results, Result{
			Table:        nodeTable,
			ID:           node.ID,
			Name:         node.Name,
			StoredQuiz:   node.QuizCount,
			ActualQuiz:   actualQuiz,
			StoredPuzzle: node.PuzzleCount,
			ActualPuzzle: actualPuzzle,
			IsPublished:  node.IsPublished,
		})

		if drifted {
			plan.Summary.CountMismatches++
			plan.Actions = append(plan.Actions, Action{
				Type:  ActionFixCount,
				Table: nodeTable,
				Key:   node.ID,
				Reason: fmt.Sprintf("quiz %d!=%d or puzzle %d!=%d",
					node.QuizCount, actualQuiz, node.PuzzleCount, actualPuzzle),
				Updates: map[string]any{
					"quiz_count":   actualQuiz,
					"puzzle_count": actualPuzzle,
				},
			})
		}
		if emptyPublished {
			plan.Summary.EmptyPublished++
			plan.Actions = append(plan.Actions, Action{
				Type:    ActionUnpublishEmpty,
				Table:   nodeTable,
				Key:     node.ID,
				Reason:  "published node has no content",
				Updates: map[string]any{"is_published": false},
			})
		}
	}

	return nil
}

// planNameSync finds content rows whose denormalized taxonomy names no
// longer match the nodes their foreign keys reference, and appends one
// sync action per drifted row. Rows pointing at deleted nodes are left
// alone; there is no correct name to sync from.
func planNameSync(ctx context.Context, db *gorm.DB, contentTable string, names map[string]map[string]string, plan *Plan) error {
	var rows []contentRow
	err := db.WithContext(ctx).Table(contentTable).
		Select("id", "feature", "category", "topic", "subtopic",
			"feature_id", "category_id", "topic_id", "subtopic_id").
		Scan(&rows).Error
	if err != nil {
		return fmt.Errorf("failed to load %s: %w", contentTable, err)
	}

	for _, row := range rows {
		updates := map[string]any{}
		checkDrift(names[TableFeatures], row.FeatureID, row.Feature, "feature", updates)
		checkDrift(names[TableCategories], row.CategoryID, row.Category, "category", updates)
		checkDrift(names[TableTopics], row.TopicID, row.Topic, "topic", updates)
		checkDrift(names[TableSubtopics], row.SubtopicID, row.Subtopic, "subtopic", updates)

		if len(updates) == 0 {
			continue
		}

		plan.Summary.NameDrift++
		plan.Actions = append(plan.Actions, Action{
			Type:    ActionSyncNames,
			Table:   contentTable,
			Key:     row.ID,
			Reason:  fmt.Sprintf("%d denormalized name(s) drifted", len(updates)),
			Updates: updates,
		})
	}

	return nil
}

// checkDrift records a column update when the stored name differs from the
// referenced node's name.
func checkDrift(nodeNames map[string]string, nodeID, stored, column string, updates map[string]any) {
	if nodeID == "" {
		return
	}
	actual, ok := nodeNames[nodeID]
	if !ok {
		// referenced node is gone; nothing to sync from
		return
	}
	if stored != actual {
		updates[column] = actual
	}
}

// ApplyPlan executes the actions in a repair plan, filtered by the options.
// Returns the number of actions executed.
// Requires opts.Confirmed=true and opts.DryRun=false to actually execute.
func ApplyPlan(ctx context.Context, db *gorm.DB, plan *Plan, opts Options) (executed int, err error) {
	if !opts.Confirmed || opts.DryRun {
		return 0, nil
	}

	for _, action := range plan.Actions {
		switch action.Type {
		case ActionFixCount, ActionUnpublishEmpty:
			if !opts.FixCounts {
				continue
			}
		case ActionSyncNames:
			if !opts.SyncNames {
				continue
			}
		}

		err := db.WithContext(ctx).Table(action.Table).
			Where("id = ?", action.Key).Updates(action.Updates).Error
		if err != nil {
			return executed, fmt.Errorf("failed to apply %s on %s/%s: %w",
				action.Type, action.Table, action.Key, err)
		}
		executed++
	}

	return executed, nil
}
