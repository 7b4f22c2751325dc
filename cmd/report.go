package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/omnivector-solutions/license-manager-sub000/core/backend"
	"github.com/omnivector-solutions/license-manager-sub000/core/slurm"
	"github.com/omnivector-solutions/license-manager-sub000/feature/licenses"
)

// reportCmd prints the current usage picture without touching anything.
var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Print the current license usage report",
	Long: `Query every configured license server and print the usage counts the
agent would upload, together with the scheduler's license pools.`,
	RunE: runReport,
}

func init() {
	RootCmd.AddCommand(reportCmd)
}

func runReport(cmd *cobra.Command, args []string) error {
	cfg, log, err := loadAgent()
	if err != nil {
		return err
	}
	defer log.Sync()

	ctx := context.Background()
	client := backend.NewClient(cfg.Backend)
	sched := slurm.NewClient(cfg.Slurm)

	configs, err := client.Configurations(ctx)
	if err != nil {
		return fmt.Errorf("load configurations: %w", err)
	}
	report := licenses.BuildReport(ctx, log, licenses.NewCmdUsageSource(cfg.License), configs)

	pools, err := sched.LicensePools(ctx)
	if err != nil {
		// The report is still useful when the scheduler is unreachable.
		log.Warn("scheduler license pools unavailable")
		pools = map[string]slurm.Pool{}
	}

	fmt.Printf("%-40s %10s %10s %12s %12s\n", "FEATURE", "USED", "TOTAL", "SLURM USED", "SLURM TOTAL")
	for _, item := range report {
		pool := pools[item.ProductFeature]
		fmt.Printf("%-40s %10d %10d %12d %12d\n",
			item.ProductFeature, item.Used, item.Total, pool.Used, pool.Total)
		for _, use := range item.Uses {
			fmt.Printf("    %s@%s: %d\n", use.Username, use.LeadHost, use.Booked)
		}
	}
	return nil
}
