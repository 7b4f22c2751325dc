package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/omnivector-solutions/license-manager-sub000/core/database"
	"github.com/omnivector-solutions/license-manager-sub000/core/history"
)

var historyLimit int

// historyCmd prints recent reconciliation ticks from the history store.
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent reconciliation ticks",
	Long:  `Print the most recent reconciliation ticks recorded in the history store.`,
	RunE:  runHistory,
}

func init() {
	historyCmd.Flags().IntVar(&historyLimit, "limit", 20, "Number of ticks to show")

	RootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	cfg, log, err := loadAgent()
	if err != nil {
		return err
	}
	defer log.Sync()

	if !cfg.Database.Enabled {
		return fmt.Errorf("tick history is disabled, set DATABASE_ENABLED=true")
	}
	db, err := database.Connect(cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	recorder, err := history.NewRecorder(db)
	if err != nil {
		return err
	}

	records, err := recorder.Recent(context.Background(), cfg.Agent.ClusterName, historyLimit)
	if err != nil {
		return err
	}

	fmt.Printf("%-20s %-36s %8s %6s %8s %8s  %s\n",
		"TIME", "RUN", "FEATURES", "JOBS", "BOOKINGS", "MS", "RESERVATION")
	for _, record := range records {
		line := record.ReservationSpec
		if record.Error != "" {
			line = "ERROR: " + record.Error
		}
		fmt.Printf("%-20s %-36s %8d %6d %8d %8d  %s\n",
			record.CreatedAt.Format(time.DateTime), record.RunID,
			record.Features, record.JobsDeleted, record.BookingsDeleted,
			record.DurationMs, line)
	}
	return nil
}
