package admin

import (
	"content-manager/core/logger"
	"content-manager/core/reconcile"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for the repair tooling.
type Handler struct {
	service *Service
	logger  *zap.Logger
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service, log *zap.Logger) *Handler {
	return &Handler{service: service, logger: log}
}

// RegisterRoutes registers the admin routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/admin")
	group.Get("/reconcile", h.HandleReport)
	group.Post("/reconcile/apply", h.HandleApply)
}

// HandleReport returns the current repair plan without executing anything.
// @Summary Reconciliation Report
// @Description Scans taxonomy counts, publish flags, and denormalized names against ground truth. Cached for a few minutes.
// @Tags admin
// @Produce json
// @Success 200 {object} reconcile.Plan
// @Failure 500 {object} map[string]string
// @Router /admin/reconcile [get]
func (h *Handler) HandleReport(c *fiber.Ctx) error {
	l := logger.WithRayID(h.logger, c)

	plan, err := h.service.Report(c.Context())
	if err != nil {
		l.Error("Repair report failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(plan)
}

type applyRequest struct {
	FixCounts bool `json:"fixCounts"`
	SyncNames bool `json:"syncNames"`
	DryRun    bool `json:"dryRun"`
}

// HandleApply builds a fresh plan and executes the requested repairs.
// @Summary Apply Repairs
// @Description Executes fix_count/unpublish_empty and/or sync_names actions. dryRun=true reports what would run.
// @Tags admin
// @Accept json
// @Produce json
// @Success 200 {object} map[string]any
// @Failure 500 {object} map[string]string
// @Router /admin/reconcile/apply [post]
func (h *Handler) HandleApply(c *fiber.Ctx) error {
	l := logger.WithRayID(h.logger, c)

	var req applyRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid body"})
	}

	opts := reconcile.Options{
		FixCounts: req.FixCounts,
		SyncNames: req.SyncNames,
		DryRun:    req.DryRun,
		// The HTTP path is the admin UI; the request itself is the confirmation.
		Confirmed: true,
	}

	plan, executed, err := h.service.Apply(c.Context(), opts)
	if err != nil {
		l.Error("Repair apply failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(fiber.Map{
		"executed": executed,
		"summary":  plan.Summary,
	})
}
