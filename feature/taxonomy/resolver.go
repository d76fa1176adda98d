package taxonomy

import (
	"context"
	"fmt"
	"strings"

	"content-manager/feature/taxonomy/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ResolverContext is the in-memory snapshot of the taxonomy consumed by one
// resolver run. It is loaded once at pipeline start, mutated synchronously as
// nodes are created, and discarded when the run ends. It is never shared
// across concurrent runs.
type ResolverContext struct {
	Features   []models.Feature
	Categories []models.Category
	Topics     []models.Topic
	Subtopics  []models.Subtopic
}

// LoadContext bulk-fetches all taxonomy collections into a fresh snapshot.
// A failure here is fatal for the whole run; no resolver can operate without
// the snapshot.
func LoadContext(ctx context.Context, db *gorm.DB) (*ResolverContext, error) {
	snap := &ResolverContext{}

	if err := db.WithContext(ctx).Find(&snap.Features).Error; err != nil {
		return nil, fmt.Errorf("failed to load features: %w", err)
	}
	if err := db.WithContext(ctx).Find(&snap.Categories).Error; err != nil {
		return nil, fmt.Errorf("failed to load categories: %w", err)
	}
	if err := db.WithContext(ctx).Find(&snap.Topics).Error; err != nil {
		return nil, fmt.Errorf("failed to load topics: %w", err)
	}
	if err := db.WithContext(ctx).Find(&snap.Subtopics).Error; err != nil {
		return nil, fmt.Errorf("failed to load subtopics: %w", err)
	}

	return snap, nil
}

// Resolver performs get-or-create lookups against one taxonomy snapshot.
//
// Matching is case-insensitive against both name and label, scoped to the
// parent node. The first snapshot entry satisfying the predicate wins; legacy
// data may contain duplicates and the resolver does not attempt to repair them.
//
// Each resolve call may perform one write. The snapshot is appended to before
// returning, so repeated names within the same run reuse the node instead of
// creating duplicates. This only holds because callers process rows
// sequentially; the check and the write are not atomic against the store.
type Resolver struct {
	db     *gorm.DB
	snap   *ResolverContext
	logger *zap.Logger
}

// NewResolver creates a resolver bound to a snapshot.
func NewResolver(db *gorm.DB, snap *ResolverContext, logger *zap.Logger) *Resolver {
	return &Resolver{db: db, snap: snap, logger: logger}
}

// matches reports whether a node's name or label equals the needle,
// case-insensitively. The needle must already be lowercased and trimmed.
func matches(name, label, needle string) bool {
	return strings.ToLower(name) == needle || strings.ToLower(label) == needle
}

// ResolveFeature returns the ID of the feature with the given name, creating
// it with the given feature type if absent.
func (r *Resolver) ResolveFeature(ctx context.Context, name, featureType string) (string, error) {
	needle := strings.ToLower(strings.TrimSpace(name))
	for i := range r.snap.Features {
		f := &r.snap.Features[i]
		if matches(f.Name, f.Label, needle) {
			return f.ID, nil
		}
	}

	feature := models.Feature{
		ID:          uuid.NewString(),
		Name:        name,
		Label:       name,
		FeatureType: featureType,
	}
	if err := r.db.WithContext(ctx).Create(&feature).Error; err != nil {
		return "", fmt.Errorf("failed to create feature %q: %w", name, err)
	}
	r.snap.Features = append(r.snap.Features, feature)
	r.logger.Info("Created feature", zap.String("name", name), zap.String("id", feature.ID))

	return feature.ID, nil
}

// ResolveCategory returns the ID of the category with the given name under
// the given feature, creating it if absent. New categories use the name slug
// as their ID, are published, and start with zero counts.
func (r *Resolver) ResolveCategory(ctx context.Context, name, featureID string) (string, error) {
	needle := strings.ToLower(strings.TrimSpace(name))
	for i := range r.snap.Categories {
		c := &r.snap.Categories[i]
		if c.FeatureID == featureID && matches(c.Name, c.Label, needle) {
			return c.ID, nil
		}
	}

	category := models.Category{
		ID:          models.Slug(name),
		Name:        name,
		Label:       name,
		FeatureID:   featureID,
		IsPublished: true,
	}
	if err := r.db.WithContext(ctx).Create(&category).Error; err != nil {
		return "", fmt.Errorf("failed to create category %q: %w", name, err)
	}
	r.snap.Categories = append(r.snap.Categories, category)
	r.logger.Info("Created category", zap.String("name", name), zap.String("id", category.ID))

	return category.ID, nil
}

// ResolveTopic returns the ID of the topic with the given name under the
// given category, creating it if absent. New topics sort after the category's
// existing topics.
func (r *Resolver) ResolveTopic(ctx context.Context, name, categoryID string) (string, error) {
	needle := strings.ToLower(strings.TrimSpace(name))
	siblings := 0
	for i := range r.snap.Topics {
		t := &r.snap.Topics[i]
		if t.CategoryID != categoryID {
			continue
		}
		if matches(t.Name, t.Label, needle) {
			return t.ID, nil
		}
		siblings++
	}

	topic := models.Topic{
		ID:          uuid.NewString(),
		Name:        name,
		Label:       name,
		CategoryID:  categoryID,
		IsPublished: true,
		SortOrder:   siblings + 1,
	}
	if err := r.db.WithContext(ctx).Create(&topic).Error; err != nil {
		return "", fmt.Errorf("failed to create topic %q: %w", name, err)
	}
	r.snap.Topics = append(r.snap.Topics, topic)
	r.logger.Info("Created topic", zap.String("name", name), zap.String("id", topic.ID))

	return topic.ID, nil
}

// ResolveSubtopic returns the ID of the subtopic with the given name under
// the given category, creating it if absent. Subtopics carry redundant
// category/feature foreign keys so content queries don't need joins.
func (r *Resolver) ResolveSubtopic(ctx context.Context, name, categoryID, featureID, topicID string) (string, error) {
	needle := strings.ToLower(strings.TrimSpace(name))
	for i := range r.snap.Subtopics {
		s := &r.snap.Subtopics[i]
		if s.CategoryID == categoryID && matches(s.Name, s.Label, needle) {
			return s.ID, nil
		}
	}

	subtopic := models.Subtopic{
		ID:          uuid.NewString(),
		Name:        name,
		Label:       name,
		CategoryID:  categoryID,
		TopicID:     topicID,
		FeatureID:   featureID,
		IsPublished: true,
	}
	if err := r.db.WithContext(ctx).Create(&subtopic).Error; err != nil {
		return "", fmt.Errorf("failed to create subtopic %q: %w", name, err)
	}
	r.snap.Subtopics = append(r.snap.Subtopics, subtopic)
	r.logger.Info("Created subtopic", zap.String("name", name), zap.String("id", subtopic.ID))

	return subtopic.ID, nil
}

// NodeNames returns the display names for the resolved IDs, looked up from
// the snapshot. Content rows store these alongside the IDs.
func (r *Resolver) NodeNames(featureID, categoryID, topicID, subtopicID string) (feature, category, topic, subtopic string) {
	for i := range r.snap.Features {
		if r.snap.Features[i].ID == featureID {
			feature = r.snap.Features[i].Name
			break
		}
	}
	for i := range r.snap.Categories {
		if r.snap.Categories[i].ID == categoryID {
			category = r.snap.Categories[i].Name
			break
		}
	}
	for i := range r.snap.Topics {
		if r.snap.Topics[i].ID == topicID {
			topic = r.snap.Topics[i].Name
			break
		}
	}
	for i := range r.snap.Subtopics {
		if r.snap.Subtopics[i].ID == subtopicID {
			subtopic = r.snap.Subtopics[i].Name
			break
		}
	}
	return
}
