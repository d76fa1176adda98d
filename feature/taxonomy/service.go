package taxonomy

import (
	"context"
	"errors"
	"fmt"

	"content-manager/feature/taxonomy/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ErrNotFound is returned when a taxonomy node does not exist.
var ErrNotFound = errors.New("taxonomy node not found")

// Service handles taxonomy CRUD operations.
type Service struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewService creates a new taxonomy service.
func NewService(db *gorm.DB, logger *zap.Logger) *Service {
	return &Service{db: db, logger: logger}
}

// Tree is the full taxonomy snapshot as served to the admin UI.
type Tree struct {
	Features   []models.Feature  `json:"features"`
	Categories []models.Category `json:"categories"`
	Topics     []models.Topic    `json:"topics"`
	Subtopics  []models.Subtopic `json:"subtopics"`
}

// GetTree returns all four taxonomy collections.
func (s *Service) GetTree(ctx context.Context) (*Tree, error) {
	snap, err := LoadContext(ctx, s.db)
	if err != nil {
		return nil, err
	}
	return &Tree{
		Features:   snap.Features,
		Categories: snap.Categories,
		Topics:     snap.Topics,
		Subtopics:  snap.Subtopics,
	}, nil
}

// ListCategories returns the categories under a feature, or all categories
// when featureID is empty.
func (s *Service) ListCategories(ctx context.Context, featureID string) ([]models.Category, error) {
	var categories []models.Category
	q := s.db.WithContext(ctx)
	if featureID != "" {
		q = q.Where("feature_id = ?", featureID)
	}
	if err := q.Find(&categories).Error; err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	return categories, nil
}

// ListTopics returns the topics under a category ordered by sort order.
func (s *Service) ListTopics(ctx context.Context, categoryID string) ([]models.Topic, error) {
	var topics []models.Topic
	q := s.db.WithContext(ctx).Order("sort_order")
	if categoryID != "" {
		q = q.Where("category_id = ?", categoryID)
	}
	if err := q.Find(&topics).Error; err != nil {
		return nil, fmt.Errorf("failed to list topics: %w", err)
	}
	return topics, nil
}

// ListSubtopics returns the subtopics under a topic.
func (s *Service) ListSubtopics(ctx context.Context, topicID string) ([]models.Subtopic, error) {
	var subtopics []models.Subtopic
	q := s.db.WithContext(ctx)
	if topicID != "" {
		q = q.Where("topic_id = ?", topicID)
	}
	if err := q.Find(&subtopics).Error; err != nil {
		return nil, fmt.Errorf("failed to list subtopics: %w", err)
	}
	return subtopics, nil
}

// CreateFeature creates a feature node directly (admin CRUD path).
func (s *Service) CreateFeature(ctx context.Context, name, label, featureType string) (*models.Feature, error) {
	if label == "" {
		label = name
	}
	feature := models.Feature{
		ID:          uuid.NewString(),
		Name:        name,
		Label:       label,
		FeatureType: featureType,
	}
	if err := s.db.WithContext(ctx).Create(&feature).Error; err != nil {
		return nil, fmt.Errorf("failed to create feature: %w", err)
	}
	return &feature, nil
}

// CreateCategory creates a category node directly (admin CRUD path).
// The slug of the name is the document ID, which is what enforces
// case-insensitive dedup: creating "Science" when "science" exists fails on
// the primary key.
func (s *Service) CreateCategory(ctx context.Context, name, label, featureID string) (*models.Category, error) {
	if label == "" {
		label = name
	}
	category := models.Category{
		ID:          models.Slug(name),
		Name:        name,
		Label:       label,
		FeatureID:   featureID,
		IsPublished: true,
	}
	if err := s.db.WithContext(ctx).Create(&category).Error; err != nil {
		return nil, fmt.Errorf("failed to create category: %w", err)
	}
	return &category, nil
}

// UpdateTopic updates a topic's label and sort order.
func (s *Service) UpdateTopic(ctx context.Context, id, label string, sortOrder int) error {
	result := s.db.WithContext(ctx).Model(&models.Topic{}).Where("id = ?", id).Updates(map[string]any{
		"label":      label,
		"sort_order": sortOrder,
	})
	if result.Error != nil {
		return fmt.Errorf("failed to update topic: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteSubtopic deletes a subtopic node. Content items referencing it are
// NOT cascade-deleted; they become orphans the repair tooling can report.
func (s *Service) DeleteSubtopic(ctx context.Context, id string) error {
	result := s.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Subtopic{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete subtopic: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	s.logger.Info("Deleted subtopic", zap.String("id", id))
	return nil
}
