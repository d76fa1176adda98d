package cmd

import (
	"context"
	"fmt"
	"os"

	"content-manager/core/config"
	"content-manager/core/database"
	"content-manager/core/logger"
	"content-manager/feature/importer"

	contentmodels "content-manager/feature/content/models"
	taxonomymodels "content-manager/feature/taxonomy/models"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var importFile string

// importCmd runs the bulk import pipeline over a CSV file.
var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Bulk import questions and puzzles from a CSV file",
	Long: `Import content rows from a CSV file.

Each row is normalized, its taxonomy path is resolved (creating missing
nodes), and the question or puzzle is saved unless it is a duplicate.
Counts are reconciled for every touched node when the rows are done.

Examples:
  # Import a question batch
  content-manager import --file questions.csv`,
	RunE: runImport,
}

func init() {
	importCmd.Flags().StringVar(&importFile, "file", "", "Path to the CSV file to import (required)")
	_ = importCmd.MarkFlagRequired("file")

	RootCmd.AddCommand(importCmd)
}

func runImport(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, err := config.LoadConfig(".")
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	l, err := logger.New(&cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	db, err := database.Connect(cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := db.AutoMigrate(
		&taxonomymodels.Feature{},
		&taxonomymodels.Category{},
		&taxonomymodels.Topic{},
		&taxonomymodels.Subtopic{},
		&contentmodels.Question{},
		&contentmodels.Puzzle{},
	); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}

	f, err := os.Open(importFile)
	if err != nil {
		return fmt.Errorf("failed to open import file: %w", err)
	}
	defer f.Close()

	l.Info("Starting import", zap.String("file", importFile))

	svc := importer.NewService(db, l, cfg.Importer)
	result, err := svc.ImportCSV(ctx, f)
	if err != nil {
		return fmt.Errorf("import failed: %w", err)
	}

	l.Info("Import finished",
		zap.Int("saved", result.Saved),
		zap.Int("skipped", result.Skipped),
		zap.Int("total", result.Total),
	)
	return nil
}
