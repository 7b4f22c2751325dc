package cmd

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/omnivector-solutions/license-manager-sub000/core/config"
	"github.com/omnivector-solutions/license-manager-sub000/core/logger"
	"github.com/omnivector-solutions/license-manager-sub000/core/metrics"
	"github.com/omnivector-solutions/license-manager-sub000/core/reconcile"
)

// startCmd runs the agent as a daemon: a reconciliation tick on a fixed
// interval plus an HTTP endpoint for health and metrics.
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the agent daemon",
	Long:  `Starts the reconciliation loop and serves health and metrics over HTTP.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.LoadConfig(".")
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}

		logg, err := logger.New(&cfg.Log)
		if err != nil {
			log.Fatalf("Failed to initialize logger: %v", err)
		}
		defer logg.Sync()
		zap.ReplaceGlobals(logg)

		logg = logg.With(zap.String("cluster", cfg.Agent.ClusterName))

		engine := buildEngine(cfg, logg)
		engine.Metrics = metrics.NewCollector(prometheus.DefaultRegisterer)

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		state := &daemonState{}
		interval := time.Duration(cfg.Agent.IntervalSeconds) * time.Second

		go runLoop(ctx, logg, engine, interval, state)

		app := fiber.New(fiber.Config{
			DisableStartupMessage: true,
		})
		app.Get("/healthz", state.healthHandler)
		app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

		go func() {
			logg.Info("Starting agent", zap.Int("port", cfg.Agent.Port), zap.Duration("interval", interval))
			if err := app.Listen(fmt.Sprintf(":%d", cfg.Agent.Port)); err != nil {
				logg.Fatal("Server failed to start", zap.Error(err))
			}
		}()

		c := make(chan os.Signal, 1)
		signal.Notify(c, os.Interrupt, syscall.SIGTERM)
		<-c
		logg.Info("Shutting down agent...")
		cancel()
		_ = app.Shutdown()
	},
}

func init() {
	RootCmd.AddCommand(startCmd)
}

// runLoop ticks immediately, then on every interval until ctx is done.
func runLoop(ctx context.Context, logg *zap.Logger, engine *reconcile.Engine, interval time.Duration, state *daemonState) {
	tick := func() {
		summary, err := engine.Run(ctx, reconcile.Options{})
		state.observe(summary, err)
	}

	tick()
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			tick()
		}
	}
}

// daemonState tracks the last tick for the health endpoint.
type daemonState struct {
	mu      sync.Mutex
	lastRun time.Time
	lastErr string
	summary *reconcile.Summary
	hasTick bool
}

func (s *daemonState) observe(summary *reconcile.Summary, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastRun = time.Now()
	s.summary = summary
	s.hasTick = true
	if err != nil {
		s.lastErr = err.Error()
	} else {
		s.lastErr = ""
	}
}

func (s *daemonState) healthHandler(c *fiber.Ctx) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	body := fiber.Map{
		"status": "ok",
	}
	if s.hasTick {
		body["last_run"] = s.lastRun.UTC().Format(time.RFC3339)
		if s.summary != nil {
			body["run_id"] = s.summary.RunID
			body["features"] = s.summary.Features
		}
	}
	if s.lastErr != "" {
		body["status"] = "degraded"
		body["last_error"] = s.lastErr
		return c.Status(fiber.StatusServiceUnavailable).JSON(body)
	}
	return c.JSON(body)
}
