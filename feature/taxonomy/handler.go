package taxonomy

import (
	"errors"

	"content-manager/core/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for the taxonomy.
type Handler struct {
	service *Service
	logger  *zap.Logger
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service, log *zap.Logger) *Handler {
	return &Handler{service: service, logger: log}
}

// RegisterRoutes registers the taxonomy routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/taxonomy")
	group.Get("/tree", h.HandleGetTree)
	group.Get("/categories", h.HandleListCategories)
	group.Get("/topics", h.HandleListTopics)
	group.Get("/subtopics", h.HandleListSubtopics)
	group.Post("/features", h.HandleCreateFeature)
	group.Post("/categories", h.HandleCreateCategory)
	group.Put("/topics/:id", h.HandleUpdateTopic)
	group.Delete("/subtopics/:id", h.HandleDeleteSubtopic)
}

// HandleGetTree returns the full taxonomy tree.
// @Summary Get Taxonomy Tree
// @Description Returns all features, categories, topics and subtopics.
// @Tags taxonomy
// @Produce json
// @Success 200 {object} taxonomy.Tree
// @Failure 500 {object} map[string]string
// @Router /taxonomy/tree [get]
func (h *Handler) HandleGetTree(c *fiber.Ctx) error {
	l := logger.WithRayID(h.logger, c)

	tree, err := h.service.GetTree(c.Context())
	if err != nil {
		l.Error("Taxonomy tree load failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(tree)
}

// HandleListCategories lists categories, optionally filtered by feature.
// @Summary List Categories
// @Tags taxonomy
// @Produce json
// @Param featureId query string false "Feature ID filter"
// @Success 200 {array} models.Category
// @Router /taxonomy/categories [get]
func (h *Handler) HandleListCategories(c *fiber.Ctx) error {
	l := logger.WithRayID(h.logger, c)

	categories, err := h.service.ListCategories(c.Context(), c.Query("featureId"))
	if err != nil {
		l.Error("Category list failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(categories)
}

// HandleListTopics lists topics, optionally filtered by category.
// @Summary List Topics
// @Tags taxonomy
// @Produce json
// @Param categoryId query string false "Category ID filter"
// @Success 200 {array} models.Topic
// @Router /taxonomy/topics [get]
func (h *Handler) HandleListTopics(c *fiber.Ctx) error {
	l := logger.WithRayID(h.logger, c)

	topics, err := h.service.ListTopics(c.Context(), c.Query("categoryId"))
	if err != nil {
		l.Error("Topic list failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(topics)
}

// HandleListSubtopics lists subtopics, optionally filtered by topic.
// @Summary List Subtopics
// @Tags taxonomy
// @Produce json
// @Param topicId query string false "Topic ID filter"
// @Success 200 {array} models.Subtopic
// @Router /taxonomy/subtopics [get]
func (h *Handler) HandleListSubtopics(c *fiber.Ctx) error {
	l := logger.WithRayID(h.logger, c)

	subtopics, err := h.service.ListSubtopics(c.Context(), c.Query("topicId"))
	if err != nil {
		l.Error("Subtopic list failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(subtopics)
}

type createFeatureRequest struct {
	Name        string `json:"name"`
	Label       string `json:"label"`
	FeatureType string `json:"featureType"`
}

// HandleCreateFeature creates a feature.
// @Summary Create Feature
// @Tags taxonomy
// @Accept json
// @Produce json
// @Success 201 {object} models.Feature
// @Failure 400 {object} map[string]string
// @Router /taxonomy/features [post]
func (h *Handler) HandleCreateFeature(c *fiber.Ctx) error {
	l := logger.WithRayID(h.logger, c)

	var req createFeatureRequest
	if err := c.BodyParser(&req); err != nil || req.Name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "name is required"})
	}

	feature, err := h.service.CreateFeature(c.Context(), req.Name, req.Label, req.FeatureType)
	if err != nil {
		l.Error("Feature create failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(feature)
}

type createCategoryRequest struct {
	Name      string `json:"name"`
	Label     string `json:"label"`
	FeatureID string `json:"featureId"`
}

// HandleCreateCategory creates a category.
// @Summary Create Category
// @Tags taxonomy
// @Accept json
// @Produce json
// @Success 201 {object} models.Category
// @Failure 400 {object} map[string]string
// @Router /taxonomy/categories [post]
func (h *Handler) HandleCreateCategory(c *fiber.Ctx) error {
	l := logger.WithRayID(h.logger, c)

	var req createCategoryRequest
	if err := c.BodyParser(&req); err != nil || req.Name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "name is required"})
	}

	category, err := h.service.CreateCategory(c.Context(), req.Name, req.Label, req.FeatureID)
	if err != nil {
		l.Error("Category create failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(category)
}

type updateTopicRequest struct {
	Label     string `json:"label"`
	SortOrder int    `json:"sortOrder"`
}

// HandleUpdateTopic updates a topic's label and sort order.
// @Summary Update Topic
// @Tags taxonomy
// @Accept json
// @Produce json
// @Param id path string true "Topic ID"
// @Success 200 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /taxonomy/topics/{id} [put]
func (h *Handler) HandleUpdateTopic(c *fiber.Ctx) error {
	l := logger.WithRayID(h.logger, c)

	var req updateTopicRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid body"})
	}

	err := h.service.UpdateTopic(c.Context(), c.Params("id"), req.Label, req.SortOrder)
	if errors.Is(err, ErrNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "topic not found"})
	}
	if err != nil {
		l.Error("Topic update failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"status": "updated"})
}

// HandleDeleteSubtopic deletes a subtopic.
// @Summary Delete Subtopic
// @Description Deletes the subtopic node only; content items are not cascade-deleted.
// @Tags taxonomy
// @Produce json
// @Param id path string true "Subtopic ID"
// @Success 200 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /taxonomy/subtopics/{id} [delete]
func (h *Handler) HandleDeleteSubtopic(c *fiber.Ctx) error {
	l := logger.WithRayID(h.logger, c)

	err := h.service.DeleteSubtopic(c.Context(), c.Params("id"))
	if errors.Is(err, ErrNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "subtopic not found"})
	}
	if err != nil {
		l.Error("Subtopic delete failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"status": "deleted"})
}
