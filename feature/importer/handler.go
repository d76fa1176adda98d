package importer

import (
	"content-manager/core/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for bulk imports.
type Handler struct {
	service *Service
	logger  *zap.Logger
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service, log *zap.Logger) *Handler {
	return &Handler{service: service, logger: log}
}

// RegisterRoutes registers the import routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/import")
	group.Post("/", h.HandleImport)
	group.Get("/template", h.HandleTemplate)
}

// HandleImport runs a bulk import from an uploaded CSV file.
// @Summary Bulk Import
// @Description Imports quiz questions and puzzles from a CSV upload. Returns saved/skipped/total counts; individual bad rows are skipped, never abort the batch.
// @Tags import
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "CSV file"
// @Success 200 {object} importer.Result
// @Failure 400 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /import [post]
func (h *Handler) HandleImport(c *fiber.Ctx) error {
	l := logger.WithRayID(h.logger, c)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "missing file upload"})
	}

	file, err := fileHeader.Open()
	if err != nil {
		l.Error("Upload open failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	defer file.Close()

	result, err := h.service.ImportCSV(c.Context(), file)
	if err != nil {
		l.Error("Import failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(result)
}

// HandleTemplate returns the import template CSV.
// @Summary Download Import Template
// @Tags import
// @Produce text/csv
// @Success 200 {string} string "CSV template"
// @Router /import/template [get]
func (h *Handler) HandleTemplate(c *fiber.Ctx) error {
	l := logger.WithRayID(h.logger, c)

	data, err := h.service.Template()
	if err != nil {
		l.Error("Template build failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	c.Set(fiber.HeaderContentType, "text/csv")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="import-template.csv"`)
	return c.Send(data)
}
