package licenses

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/omnivector-solutions/license-manager-sub000/core/backend"
	"github.com/omnivector-solutions/license-manager-sub000/core/slurm"
)

// ErrReservation marks a failure to install the scheduler reservation.
var ErrReservation = errors.New("reservation update failed")

// BuildReservationSpecs computes the scheduler reservation that fences off
// licenses checked out beyond the scheduler's own accounting. For each
// feature the reserved amount is
//
//	used on the server - used through the scheduler + booked on all clusters
//
// clamped into [0, scheduler total]. A server reporting a zero total is
// treated as an outage and the scheduler's whole pool is reserved, so jobs
// cannot start against a server that may refuse them. Features without a
// scheduler license pool, and amounts that clamp to zero, produce no spec.
func BuildReservationSpecs(report []ReportItem, pools map[string]slurm.Pool, allFeatures []backend.Feature) []string {
	bookingSums := make(map[string]int)
	for _, feature := range allFeatures {
		bookingSums[feature.ProductFeature()] += feature.BookedTotal
	}

	var specs []string
	for _, item := range report {
		pool, ok := pools[item.ProductFeature]
		if !ok {
			continue
		}

		var amount int
		if item.Total == 0 {
			amount = pool.Total
		} else {
			amount = item.Used - pool.Used + bookingSums[item.ProductFeature]
		}
		if amount > pool.Total {
			amount = pool.Total
		}
		if amount <= 0 {
			continue
		}

		serverType := pool.ServerType
		if serverType == "" {
			serverType = item.ServerType
		}
		specs = append(specs, fmt.Sprintf("%s@%s:%d", item.ProductFeature, serverType, amount))
	}
	sort.Strings(specs)
	return specs
}

// ApplyReservation installs the computed specs as the agent's reservation.
// An existing reservation is updated in place; when the update is refused
// the reservation is recreated from scratch. An empty spec list deletes
// any leftover reservation instead.
func ApplyReservation(ctx context.Context, log *zap.Logger, client slurm.Client, specs []string, duration string, dryRun bool) error {
	if dryRun {
		log.Info("would apply reservation", zap.Strings("specs", specs))
		return nil
	}

	if len(specs) == 0 {
		if _, err := client.ShowReservation(ctx); err != nil {
			return nil
		}
		if err := client.DeleteReservation(ctx); err != nil {
			return fmt.Errorf("%w: delete: %v", ErrReservation, err)
		}
		return nil
	}

	licenses := strings.Join(specs, ",")
	if _, err := client.ShowReservation(ctx); err != nil {
		if err := client.CreateReservation(ctx, licenses, duration); err != nil {
			return fmt.Errorf("%w: create: %v", ErrReservation, err)
		}
		return nil
	}

	if err := client.UpdateReservation(ctx, licenses, duration); err != nil {
		log.Warn("reservation update refused, recreating", zap.Error(err))
		if err := client.DeleteReservation(ctx); err != nil {
			return fmt.Errorf("%w: delete: %v", ErrReservation, err)
		}
		if err := client.CreateReservation(ctx, licenses, duration); err != nil {
			return fmt.Errorf("%w: create: %v", ErrReservation, err)
		}
	}
	return nil
}
