package admin

import (
	"context"
	"time"

	"content-manager/core/reconcile"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// planTTL bounds how stale the cached repair report may be.
const planTTL = 5 * time.Minute

// Service exposes the repair tooling to the admin UI.
type Service struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewService creates a new admin service.
func NewService(db *gorm.DB, logger *zap.Logger) *Service {
	return &Service{db: db, logger: logger}
}

// Report returns the current repair plan, cached up to planTTL.
func (s *Service) Report(ctx context.Context) (*reconcile.Plan, error) {
	return reconcile.GetOrBuildPlan(ctx, s.db, planTTL)
}

// Apply builds a fresh plan and executes it with the given options.
// The cached report is invalidated afterwards so the next Report reflects
// the repairs.
func (s *Service) Apply(ctx context.Context, opts reconcile.Options) (*reconcile.Plan, int, error) {
	plan, err := reconcile.BuildPlan(ctx, s.db)
	if err != nil {
		return nil, 0, err
	}

	executed, err := reconcile.ApplyPlan(ctx, s.db, plan, opts)
	if err != nil {
		return plan, executed, err
	}
	if executed > 0 {
		reconcile.InvalidatePlan()
		s.logger.Info("Applied repair plan", zap.Int("executed", executed))
	}

	return plan, executed, nil
}
