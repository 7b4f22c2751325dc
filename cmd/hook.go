package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/omnivector-solutions/license-manager-sub000/core/backend"
	"github.com/omnivector-solutions/license-manager-sub000/core/slurm"
	"github.com/omnivector-solutions/license-manager-sub000/core/utils"
)

// hookCmd is the parent for the scheduler prolog and epilog hooks.
var hookCmd = &cobra.Command{
	Use:   "hook",
	Short: "Scheduler prolog and epilog hooks",
	Long: `Hooks invoked by the scheduler around each job. The prolog books the
job's licenses in the backend, the epilog releases them.

Configure in slurm.conf:
  PrologSlurmctld=/usr/local/bin/license-manager-agent hook prolog
  EpilogSlurmctld=/usr/local/bin/license-manager-agent hook epilog`,
}

var prologCmd = &cobra.Command{
	Use:   "prolog",
	Short: "Book the starting job's licenses",
	RunE:  runProlog,
}

var epilogCmd = &cobra.Command{
	Use:   "epilog",
	Short: "Release the finished job's licenses",
	RunE:  runEpilog,
}

func init() {
	hookCmd.AddCommand(prologCmd)
	hookCmd.AddCommand(epilogCmd)
	RootCmd.AddCommand(hookCmd)
}

// jobEnv reads the job identity the scheduler passes to ctld hooks.
func jobEnv() (jobID, username string, err error) {
	jobID = os.Getenv("SLURM_JOB_ID")
	if jobID == "" {
		return "", "", fmt.Errorf("SLURM_JOB_ID is not set, hooks must run under the scheduler")
	}
	username = os.Getenv("SLURM_JOB_USER")
	return jobID, username, nil
}

func runProlog(cmd *cobra.Command, args []string) error {
	cfg, log, err := loadAgent()
	if err != nil {
		return err
	}
	defer log.Sync()

	jobID, username, err := jobEnv()
	if err != nil {
		return err
	}

	ctx := context.Background()
	sched := slurm.NewClient(cfg.Slurm)

	required, err := sched.JobLicenses(ctx, jobID)
	if err != nil {
		return fmt.Errorf("read job licenses: %w", err)
	}
	if len(required) == 0 {
		log.Info("job requests no licenses", zap.String("slurm_job_id", jobID))
		return nil
	}

	leadHost := os.Getenv("SLURM_JOB_NODELIST")
	if leadHost == "" {
		leadHost, _ = os.Hostname()
	}

	job := backend.JobCreate{
		SlurmJobID: jobID,
		Username:   username,
		LeadHost:   utils.StripDomain(leadHost),
	}
	for _, lic := range required {
		job.Bookings = append(job.Bookings, backend.BookingCreate{
			ProductFeature: lic.ProductFeature,
			Quantity:       lic.Quantity,
		})
	}

	client := backend.NewClient(cfg.Backend)
	id, err := client.CreateJob(ctx, job)
	if err != nil {
		return fmt.Errorf("book job licenses: %w", err)
	}
	log.Info("job licenses booked",
		zap.String("slurm_job_id", jobID),
		zap.Int("job_id", id),
		zap.Int("bookings", len(job.Bookings)))
	return nil
}

func runEpilog(cmd *cobra.Command, args []string) error {
	cfg, log, err := loadAgent()
	if err != nil {
		return err
	}
	defer log.Sync()

	jobID, _, err := jobEnv()
	if err != nil {
		return err
	}

	client := backend.NewClient(cfg.Backend)
	if err := client.DeleteJob(context.Background(), jobID); err != nil {
		return fmt.Errorf("release job licenses: %w", err)
	}
	log.Info("job licenses released", zap.String("slurm_job_id", jobID))
	return nil
}
