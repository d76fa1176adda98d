package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"content-manager/core/config"
	"content-manager/core/database"
	"content-manager/core/logger"
	"content-manager/core/reconcile"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	// Flags for the fix command
	fixCounts  bool
	fixNames   bool
	fixDryRun  bool
	fixConfirm bool
)

// fixCmd repairs drift in the content store.
var fixCmd = &cobra.Command{
	Use:   "fix",
	Short: "Repair count drift and stale taxonomy names (report + optionally apply)",
	Long: `Scan the content store for drift and optionally repair it.

Reports wrong quiz/puzzle counts, published nodes with no content, and
content rows whose stored taxonomy names disagree with the taxonomy nodes.

Examples:
  # Report only (dry-run)
  fix

  # Repair counts (with interactive confirmation)
  fix --counts

  # Repair counts with auto-confirm (non-interactive)
  fix --counts --yes

  # Repair stale names with auto-confirm
  fix --names --yes

  # Both counts and names
  fix --counts --names --yes`,
	RunE: runFix,
}

func init() {
	fixCmd.Flags().BoolVar(&fixCounts, "counts", false, "Enable count repair (fix quiz/puzzle counts, unpublish empty nodes)")
	fixCmd.Flags().BoolVar(&fixNames, "names", false, "Enable name sync (update content rows from taxonomy names)")
	fixCmd.Flags().BoolVar(&fixDryRun, "dry-run", false, "Force dry-run (no mutations even with --yes)")
	fixCmd.Flags().BoolVar(&fixConfirm, "yes", false, "Auto-confirm destructive actions (non-interactive)")

	RootCmd.AddCommand(fixCmd)
}

func runFix(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, err := config.LoadConfig(".")
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	l, err := logger.New(&cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	l.Info("Starting drift scan")

	db, err := database.Connect(cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	opts := reconcile.Options{
		FixCounts: fixCounts,
		SyncNames: fixNames,
		DryRun:    fixDryRun,
		Confirmed: false, // Will be set after confirmation prompt
	}

	// Step 1: Plan (always runs)
	l.Info("Planning repairs...")
	plan, err := reconcile.BuildPlan(ctx, db)
	if err != nil {
		return fmt.Errorf("failed to build plan: %w", err)
	}

	// Step 2: Print report
	printFixReport(l, plan)

	// Step 3: Check if actions are requested
	if !fixCounts && !fixNames {
		l.Info("No actions requested. Use --counts to repair counts or --names to sync names.")
		return nil
	}

	// Step 4: Apply (if confirmed)
	if !fixDryRun {
		if len(plan.Actions) == 0 {
			l.Info("No actions required based on current flags.")
			return nil
		}

		if !confirmDestructiveAction() {
			l.Warn("Operation cancelled by user. No changes were made.")
			return nil
		}

		opts.Confirmed = true

		l.Info("Applying actions...")
		executed, err := reconcile.ApplyPlan(ctx, db, plan, opts)
		if err != nil {
			return fmt.Errorf("failed to apply plan: %w", err)
		}

		l.Info("Successfully executed actions", zap.Int("count", executed))
	} else {
		l.Info("Dry-run mode: No changes were made.")
	}

	return nil
}

// printFixReport prints a formatted drift report using logger.
func printFixReport(l *zap.Logger, plan *reconcile.Plan) {
	s := plan.Summary

	l.Info("Drift report",
		zap.Int("total_nodes", s.TotalNodes),
		zap.Int("count_mismatches", s.CountMismatches),
		zap.Int("empty_published", s.EmptyPublished),
		zap.Int("name_drift", s.NameDrift),
	)

	if len(plan.Actions) > 0 {
		l.Info("Planned actions", zap.Int("total_actions", len(plan.Actions)))

		// Show sample of actions (max 5 for logger)
		maxShow := 5
		if len(plan.Actions) < maxShow {
			maxShow = len(plan.Actions)
		}
		for i := 0; i < maxShow; i++ {
			action := plan.Actions[i]
			l.Info("Sample action",
				zap.String("type", string(action.Type)),
				zap.String("table", action.Table),
				zap.String("key", action.Key),
				zap.String("reason", action.Reason),
			)
		}
		if len(plan.Actions) > maxShow {
			l.Info("Additional actions not shown", zap.Int("count", len(plan.Actions)-maxShow))
		}
	}
}

// confirmDestructiveAction prompts the user for confirmation or uses --yes flag.
func confirmDestructiveAction() bool {
	if fixConfirm {
		fmt.Println("\n✓ Auto-confirmed via --yes flag")
		return true
	}

	fmt.Print("\n⚠️  Type 'yes' to confirm destructive actions: ")
	reader := bufio.NewReader(os.Stdin)
	response, err := reader.ReadString('\n')
	if err != nil {
		return false
	}

	return strings.TrimSpace(response) == "yes"
}
