package importer

import (
	"context"
	"fmt"

	"content-manager/core/reconcile"
	"content-manager/feature/content"
	"content-manager/feature/taxonomy"
	taxmodels "content-manager/feature/taxonomy/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// State is the pipeline's lifecycle state.
type State string

const (
	StateIdle              State = "idle"
	StateLoadingHierarchy  State = "loading_hierarchy"
	StateProcessingRows    State = "processing_rows"
	StateReconcilingCounts State = "reconciling_counts"
	StateDone              State = "done"
)

// Fallback taxonomy names for rows that only name some levels. The fixed
// template CSV carries a category column only, so the other levels must have
// somewhere to land.
const (
	defaultQuizFeature   = "Quiz"
	defaultPuzzleFeature = "Puzzles"
	defaultCategory      = "General"
)

// Result is the pipeline's report to the caller.
type Result struct {
	Saved   int `json:"saved"`
	Skipped int `json:"skipped"`
	Total   int `json:"total"`
}

// Pipeline orchestrates one bulk-import run:
// normalize → resolve taxonomy → write content → reconcile touched counts.
//
// Rows are processed strictly sequentially. That is a correctness choice,
// not a performance one: the resolver's snapshot check and the store write
// are not atomic, so two rows processed in parallel could both decide a node
// doesn't exist and create it twice. Concurrent pipeline invocations (two
// admins importing at once) remain exposed to that race; accepted limitation.
type Pipeline struct {
	db     *gorm.DB
	logger *zap.Logger
	cfg    Config
	state  State
}

// NewPipeline creates a pipeline. One Pipeline value serves one Run.
func NewPipeline(db *gorm.DB, logger *zap.Logger, cfg Config) *Pipeline {
	return &Pipeline{db: db, logger: logger, cfg: cfg, state: StateIdle}
}

// State returns the current lifecycle state.
func (p *Pipeline) State() State {
	return p.state
}

// Run executes the import over the full row set.
//
// Individual row failures (malformed rows, rejected writes, resolver errors)
// are absorbed: counted as skipped, logged, and processing continues with
// the next row. Only a hierarchy preload failure is fatal for the run, since
// no resolver can operate without the snapshot.
func (p *Pipeline) Run(ctx context.Context, rows []Row) (*Result, error) {
	result := &Result{Total: len(rows)}

	p.state = StateLoadingHierarchy
	snap, err := taxonomy.LoadContext(ctx, p.db)
	if err != nil {
		return nil, fmt.Errorf("hierarchy preload failed: %w", err)
	}
	resolver := taxonomy.NewResolver(p.db, snap, p.logger)

	writer := content.NewWriter(p.db, p.logger, p.cfg.DedupScope)
	if err := writer.Preload(ctx); err != nil {
		return nil, fmt.Errorf("hierarchy preload failed: %w", err)
	}

	p.state = StateProcessingRows
	touchedSubtopics := map[string]struct{}{}
	touchedTopics := map[string]struct{}{}

	for i, row := range rows {
		saved, touched, err := p.processRow(ctx, resolver, writer, row)
		if err != nil {
			result.Skipped++
			p.logger.Warn("Row skipped", zap.Int("row", i+1), zap.Error(err))
			continue
		}
		if saved {
			result.Saved++
		} else {
			// designed skip: unusable row or duplicate question
			result.Skipped++
		}
		if touched.SubtopicID != "" {
			touchedSubtopics[touched.SubtopicID] = struct{}{}
		}
		if touched.TopicID != "" {
			touchedTopics[touched.TopicID] = struct{}{}
		}
	}

	p.state = StateReconcilingCounts
	for id := range touchedSubtopics {
		if _, err := reconcile.Recount(ctx, p.db, reconcile.TableSubtopics, id); err != nil {
			p.logger.Error("Subtopic recount failed", zap.String("id", id), zap.Error(err))
		}
	}
	for id := range touchedTopics {
		if _, err := reconcile.Recount(ctx, p.db, reconcile.TableTopics, id); err != nil {
			p.logger.Error("Topic recount failed", zap.String("id", id), zap.Error(err))
		}
	}

	p.state = StateDone
	p.logger.Info("Import finished",
		zap.Int("saved", result.Saved),
		zap.Int("skipped", result.Skipped),
		zap.Int("total", result.Total))

	return result, nil
}

// processRow runs one row through normalize → resolve → write. A nil item
// (no question, no title) is a designed skip, not an error.
func (p *Pipeline) processRow(ctx context.Context, resolver *taxonomy.Resolver, writer *content.Writer, row Row) (bool, content.Touched, error) {
	item := Normalize(row)
	if item == nil {
		return false, content.Touched{}, nil
	}

	featureName, featureType := item.Feature, taxmodels.FeatureTypeQuiz
	if item.IsPuzzle() {
		featureType = taxmodels.FeatureTypePuzzle
		if featureName == "" {
			featureName = defaultPuzzleFeature
		}
	} else if featureName == "" {
		featureName = defaultQuizFeature
	}

	categoryName := item.Category
	if categoryName == "" {
		categoryName = defaultCategory
	}
	topicName := item.Topic
	if topicName == "" {
		topicName = categoryName
	}
	subtopicName := item.Subtopic
	if subtopicName == "" {
		subtopicName = topicName
	}

	featureID, err := resolver.ResolveFeature(ctx, featureName, featureType)
	if err != nil {
		return false, content.Touched{}, err
	}
	categoryID, err := resolver.ResolveCategory(ctx, categoryName, featureID)
	if err != nil {
		return false, content.Touched{}, err
	}
	topicID, err := resolver.ResolveTopic(ctx, topicName, categoryID)
	if err != nil {
		return false, content.Touched{}, err
	}
	subtopicID, err := resolver.ResolveSubtopic(ctx, subtopicName, categoryID, featureID, topicID)
	if err != nil {
		return false, content.Touched{}, err
	}

	feature, category, topic, subtopic := resolver.NodeNames(featureID, categoryID, topicID, subtopicID)
	ids := content.ResolvedIDs{
		FeatureID:  featureID,
		CategoryID: categoryID,
		TopicID:    topicID,
		SubtopicID: subtopicID,
		Feature:    feature,
		Category:   category,
		Topic:      topic,
		Subtopic:   subtopic,
	}

	touched, saved, err := writer.Write(ctx, item, ids)
	if err != nil {
		return false, content.Touched{}, err
	}
	return saved, touched, nil
}
