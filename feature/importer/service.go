package importer

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Service handles bulk imports.
type Service struct {
	db     *gorm.DB
	logger *zap.Logger
	cfg    Config
}

// NewService creates a new importer service.
func NewService(db *gorm.DB, logger *zap.Logger, cfg Config) *Service {
	return &Service{db: db, logger: logger, cfg: cfg}
}

// ImportCSV parses a CSV stream and runs the pipeline over its rows.
func (s *Service) ImportCSV(ctx context.Context, r io.Reader) (*Result, error) {
	rows, err := ReadRows(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse CSV: %w", err)
	}
	return s.ImportRows(ctx, rows)
}

// ImportRows runs the pipeline over pre-parsed rows.
func (s *Service) ImportRows(ctx context.Context, rows []Row) (*Result, error) {
	pipeline := NewPipeline(s.db, s.logger, s.cfg)
	return pipeline.Run(ctx, rows)
}

// Template returns the import template CSV.
func (s *Service) Template() ([]byte, error) {
	var buf bytes.Buffer
	if err := WriteTemplate(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
