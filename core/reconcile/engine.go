package reconcile

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/omnivector-solutions/license-manager-sub000/core/archive"
	"github.com/omnivector-solutions/license-manager-sub000/core/backend"
	"github.com/omnivector-solutions/license-manager-sub000/core/history"
	"github.com/omnivector-solutions/license-manager-sub000/core/logger"
	"github.com/omnivector-solutions/license-manager-sub000/core/metrics"
	"github.com/omnivector-solutions/license-manager-sub000/core/slurm"
	"github.com/omnivector-solutions/license-manager-sub000/feature/licenses"
)

// ErrEmptyReport means no configured feature produced a usage count, so
// the agent refuses to touch bookings or the reservation.
var ErrEmptyReport = errors.New("license report is empty")

// Options control a single reconciliation pass.
type Options struct {
	// DryRun computes everything but performs no deletions and leaves
	// the reservation untouched.
	DryRun bool
}

// Summary describes what one reconciliation pass did.
type Summary struct {
	RunID            string
	Features         int
	JobsDeleted      int
	BookingsDeleted  int
	ReservationSpecs []string
	Duration         time.Duration
}

// Engine runs the reconciliation loop against the backend, the scheduler
// and the license servers.
type Engine struct {
	Backend backend.Client
	Slurm   slurm.Client
	Source  licenses.UsageSource
	Log     *zap.Logger
	Metrics *metrics.Collector
	History *history.Recorder
	Archive *archive.Archiver

	// Cluster names this agent's cluster in logs and history records.
	Cluster string
	// ReservationDuration is the scheduler duration string for the
	// installed reservation.
	ReservationDuration string

	group singleflight.Group
}

// Run executes one reconciliation pass. Overlapping calls coalesce onto
// the in-flight pass, so a slow tick is never stacked behind another.
func (e *Engine) Run(ctx context.Context, opts Options) (*Summary, error) {
	v, err, _ := e.group.Do("tick", func() (any, error) {
		return e.tick(ctx, opts)
	})
	if v == nil {
		return nil, err
	}
	return v.(*Summary), err
}

func (e *Engine) tick(ctx context.Context, opts Options) (*Summary, error) {
	start := time.Now()
	runID := uuid.NewString()
	log := logger.WithRun(e.Log, runID)

	summary, err := e.reconcile(ctx, log, runID, opts)
	summary.RunID = runID
	summary.Duration = time.Since(start)

	e.Metrics.RecordTick(summary.Duration.Seconds(), err != nil)
	e.record(ctx, log, summary, err)

	if err != nil {
		log.Error("reconciliation failed", zap.Error(err))
		return &summary, err
	}
	e.Archive.Prune(ctx)
	log.Info("reconciliation finished",
		zap.Int("features", summary.Features),
		zap.Int("jobs_deleted", summary.JobsDeleted),
		zap.Int("bookings_deleted", summary.BookingsDeleted),
		zap.Strings("reservation", summary.ReservationSpecs),
		zap.Duration("duration", summary.Duration))
	return &summary, nil
}

func (e *Engine) reconcile(ctx context.Context, log *zap.Logger, runID string, opts Options) (Summary, error) {
	var summary Summary

	configs, err := e.Backend.Configurations(ctx)
	if err != nil {
		return summary, fmt.Errorf("load configurations: %w", err)
	}

	source := e.Source
	if e.Archive != nil {
		source = &archivingSource{next: e.Source, archive: e.Archive, runID: runID}
	}
	report := licenses.BuildReport(ctx, log, source, configs)
	if len(report) == 0 {
		return summary, ErrEmptyReport
	}
	summary.Features = len(report)
	e.Metrics.RecordFeatures(len(report))

	if !opts.DryRun {
		if err := e.Backend.BulkUpdateFeatures(ctx, licenses.FeatureUpdates(configs, report)); err != nil {
			return summary, fmt.Errorf("upload feature counts: %w", err)
		}
	}

	queue, err := e.Slurm.Queue(ctx)
	if err != nil {
		return summary, fmt.Errorf("load scheduler queue: %w", err)
	}
	jobs, err := e.Backend.Jobs(ctx)
	if err != nil {
		return summary, fmt.Errorf("load tracked jobs: %w", err)
	}

	stats := licenses.CleanJobs(ctx, log, e.Backend, jobs, queue, report, opts.DryRun)
	summary.JobsDeleted = stats.JobsDeleted
	summary.BookingsDeleted = stats.BookingsDeleted
	e.Metrics.RecordCleanup(stats.JobsDeleted, stats.BookingsDeleted)

	pools, err := e.Slurm.LicensePools(ctx)
	if err != nil {
		return summary, fmt.Errorf("load scheduler license pools: %w", err)
	}
	allFeatures, err := e.Backend.AllFeatures(ctx)
	if err != nil {
		return summary, fmt.Errorf("load feature totals: %w", err)
	}

	specs := licenses.BuildReservationSpecs(report, pools, allFeatures)
	summary.ReservationSpecs = specs
	if err := licenses.ApplyReservation(ctx, log, e.Slurm, specs, e.ReservationDuration, opts.DryRun); err != nil {
		return summary, err
	}
	e.Metrics.RecordReservation(specAmounts(specs))

	return summary, nil
}

func (e *Engine) record(ctx context.Context, log *zap.Logger, summary Summary, runErr error) {
	record := history.TickRecord{
		RunID:           summary.RunID,
		Cluster:         e.Cluster,
		Features:        summary.Features,
		JobsDeleted:     summary.JobsDeleted,
		BookingsDeleted: summary.BookingsDeleted,
		ReservationSpec: strings.Join(summary.ReservationSpecs, ","),
		DurationMs:      summary.Duration.Milliseconds(),
	}
	if runErr != nil {
		record.Error = runErr.Error()
	}
	if err := e.History.Record(ctx, record); err != nil {
		log.Warn("failed to record tick history", zap.Error(err))
	}
}

// specAmounts splits reservation specs back into per-feature amounts for
// the metrics gauge.
func specAmounts(specs []string) map[string]int {
	amounts := make(map[string]int, len(specs))
	for _, spec := range specs {
		at := strings.LastIndex(spec, "@")
		colon := strings.LastIndex(spec, ":")
		if at < 0 || colon < at {
			continue
		}
		amount, err := strconv.Atoi(spec[colon+1:])
		if err != nil {
			continue
		}
		amounts[spec[:at]] = amount
	}
	return amounts
}

// archivingSource snapshots every raw server response before handing it
// to the parser.
type archivingSource struct {
	next    licenses.UsageSource
	archive *archive.Archiver
	runID   string
}

func (s *archivingSource) Output(ctx context.Context, config backend.Configuration) (string, error) {
	out, err := s.next.Output(ctx, config)
	if err == nil {
		s.archive.Store(ctx, s.runID, config.Name, out)
	}
	return out, err
}
