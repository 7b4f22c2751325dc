package cmd

import (
	"context"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/omnivector-solutions/license-manager-sub000/core/reconcile"
)

var dryRun bool

// reconcileCmd runs a single reconciliation pass and exits.
var reconcileCmd = &cobra.Command{
	Use:   "reconcile",
	Short: "Run one reconciliation pass",
	Long: `Run a single reconciliation pass: report license usage to the backend,
purge stale jobs and bookings, and install the scheduler reservation.

Examples:
  # Reconcile once
  license-manager-agent reconcile

  # Show what would change without touching anything
  license-manager-agent reconcile --dry-run`,
	RunE: runReconcile,
}

func init() {
	reconcileCmd.Flags().BoolVar(&dryRun, "dry-run", false, "Compute everything but perform no deletions or reservation changes")

	RootCmd.AddCommand(reconcileCmd)
}

func runReconcile(cmd *cobra.Command, args []string) error {
	cfg, log, err := loadAgent()
	if err != nil {
		return err
	}
	defer log.Sync()

	engine := buildEngine(cfg, log)

	summary, err := engine.Run(context.Background(), reconcile.Options{DryRun: dryRun})
	if err != nil {
		return err
	}

	log.Info("reconcile pass complete",
		zap.String("run_id", summary.RunID),
		zap.Int("features", summary.Features),
		zap.Int("jobs_deleted", summary.JobsDeleted),
		zap.Int("bookings_deleted", summary.BookingsDeleted),
		zap.Strings("reservation", summary.ReservationSpecs))
	return nil
}
