package content

import (
	"errors"

	"content-manager/core/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for content documents.
type Handler struct {
	service *Service
	logger  *zap.Logger
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service, log *zap.Logger) *Handler {
	return &Handler{service: service, logger: log}
}

// RegisterRoutes registers the content routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	questions := app.Group("/questions")
	questions.Get("/", h.HandleListQuestions)
	questions.Get("/:id", h.HandleGetQuestion)
	questions.Delete("/:id", h.HandleDeleteQuestion)

	puzzles := app.Group("/puzzles")
	puzzles.Get("/", h.HandleListPuzzles)
	puzzles.Delete("/:id", h.HandleDeletePuzzle)
}

// HandleListQuestions lists questions, optionally filtered by subtopic.
// @Summary List Questions
// @Tags content
// @Produce json
// @Param subtopicId query string false "Subtopic ID filter"
// @Success 200 {array} models.Question
// @Router /questions [get]
func (h *Handler) HandleListQuestions(c *fiber.Ctx) error {
	l := logger.WithRayID(h.logger, c)

	questions, err := h.service.ListQuestions(c.Context(), c.Query("subtopicId"))
	if err != nil {
		l.Error("Question list failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(questions)
}

// HandleGetQuestion returns a single question.
// @Summary Get Question
// @Tags content
// @Produce json
// @Param id path string true "Question ID"
// @Success 200 {object} models.Question
// @Failure 404 {object} map[string]string
// @Router /questions/{id} [get]
func (h *Handler) HandleGetQuestion(c *fiber.Ctx) error {
	l := logger.WithRayID(h.logger, c)

	question, err := h.service.GetQuestion(c.Context(), c.Params("id"))
	if errors.Is(err, ErrNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "question not found"})
	}
	if err != nil {
		l.Error("Question get failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(question)
}

// HandleDeleteQuestion deletes a question and reconciles the touched
// taxonomy nodes.
// @Summary Delete Question
// @Description Deletes the question and recomputes counts (and publish flags) on the nodes it referenced.
// @Tags content
// @Produce json
// @Param id path string true "Question ID"
// @Success 200 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /questions/{id} [delete]
func (h *Handler) HandleDeleteQuestion(c *fiber.Ctx) error {
	l := logger.WithRayID(h.logger, c)

	err := h.service.DeleteQuestion(c.Context(), c.Params("id"))
	if errors.Is(err, ErrNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "question not found"})
	}
	if err != nil {
		l.Error("Question delete failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"status": "deleted"})
}

// HandleListPuzzles lists puzzles, optionally filtered by subtopic.
// @Summary List Puzzles
// @Tags content
// @Produce json
// @Param subtopicId query string false "Subtopic ID filter"
// @Success 200 {array} models.Puzzle
// @Router /puzzles [get]
func (h *Handler) HandleListPuzzles(c *fiber.Ctx) error {
	l := logger.WithRayID(h.logger, c)

	puzzles, err := h.service.ListPuzzles(c.Context(), c.Query("subtopicId"))
	if err != nil {
		l.Error("Puzzle list failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(puzzles)
}

// HandleDeletePuzzle deletes a puzzle and reconciles the touched nodes.
// @Summary Delete Puzzle
// @Tags content
// @Produce json
// @Param id path string true "Puzzle ID"
// @Success 200 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /puzzles/{id} [delete]
func (h *Handler) HandleDeletePuzzle(c *fiber.Ctx) error {
	l := logger.WithRayID(h.logger, c)

	err := h.service.DeletePuzzle(c.Context(), c.Params("id"))
	if errors.Is(err, ErrNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "puzzle not found"})
	}
	if err != nil {
		l.Error("Puzzle delete failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"status": "deleted"})
}
