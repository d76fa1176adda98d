package content

import (
	"context"
	"errors"
	"fmt"

	"content-manager/core/reconcile"
	"content-manager/feature/content/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ErrNotFound is returned when a content document does not exist.
var ErrNotFound = errors.New("content item not found")

// Service handles content CRUD and the deletion-triggered reconciliation.
type Service struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewService creates a new content service.
func NewService(db *gorm.DB, logger *zap.Logger) *Service {
	return &Service{db: db, logger: logger}
}

// GetQuestion returns one question by ID.
func (s *Service) GetQuestion(ctx context.Context, id string) (*models.Question, error) {
	var q models.Question
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&q).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get question: %w", err)
	}
	return &q, nil
}

// ListQuestions returns the questions under a subtopic.
func (s *Service) ListQuestions(ctx context.Context, subtopicID string) ([]models.Question, error) {
	var questions []models.Question
	q := s.db.WithContext(ctx)
	if subtopicID != "" {
		q = q.Where("subtopic_id = ?", subtopicID)
	}
	if err := q.Find(&questions).Error; err != nil {
		return nil, fmt.Errorf("failed to list questions: %w", err)
	}
	return questions, nil
}

// ListPuzzles returns the puzzles under a subtopic.
func (s *Service) ListPuzzles(ctx context.Context, subtopicID string) ([]models.Puzzle, error) {
	var puzzles []models.Puzzle
	q := s.db.WithContext(ctx)
	if subtopicID != "" {
		q = q.Where("subtopic_id = ?", subtopicID)
	}
	if err := q.Find(&puzzles).Error; err != nil {
		return nil, fmt.Errorf("failed to list puzzles: %w", err)
	}
	return puzzles, nil
}

// DeleteQuestion deletes a question and reconciles the counts on the
// subtopic, topic, and category it referenced. A node that was itself
// deleted concurrently is skipped by the reconciler; the question deletion
// still stands.
func (s *Service) DeleteQuestion(ctx context.Context, id string) error {
	question, err := s.GetQuestion(ctx, id)
	if err != nil {
		return err
	}

	if err := s.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Question{}).Error; err != nil {
		return fmt.Errorf("failed to delete question: %w", err)
	}
	s.logger.Info("Deleted question", zap.String("id", id))

	return s.reconcileAfterDelete(ctx, question.SubtopicID, question.TopicID, question.CategoryID)
}

// DeletePuzzle deletes a puzzle and reconciles the referenced nodes.
func (s *Service) DeletePuzzle(ctx context.Context, id string) error {
	var puzzle models.Puzzle
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&puzzle).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to get puzzle: %w", err)
	}

	if err := s.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Puzzle{}).Error; err != nil {
		return fmt.Errorf("failed to delete puzzle: %w", err)
	}
	s.logger.Info("Deleted puzzle", zap.String("id", id))

	return s.reconcileAfterDelete(ctx, puzzle.SubtopicID, puzzle.TopicID, puzzle.CategoryID)
}

// reconcileAfterDelete runs post-deletion reconciliation for each referenced
// node. Errors are joined rather than aborting on the first node so one
// failed write doesn't leave the remaining nodes staler than necessary.
func (s *Service) reconcileAfterDelete(ctx context.Context, subtopicID, topicID, categoryID string) error {
	targets := []struct {
		table string
		id    string
	}{
		{reconcile.TableSubtopics, subtopicID},
		{reconcile.TableTopics, topicID},
		{reconcile.TableCategories, categoryID},
	}

	var errs []error
	for _, t := range targets {
		if t.id == "" {
			continue
		}
		if err := reconcile.ReconcileAfterDelete(ctx, s.db, s.logger, t.table, t.id); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
