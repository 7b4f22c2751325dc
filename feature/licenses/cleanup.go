package licenses

import (
	"context"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/omnivector-solutions/license-manager-sub000/core/backend"
	"github.com/omnivector-solutions/license-manager-sub000/core/slurm"
	"github.com/omnivector-solutions/license-manager-sub000/core/utils"
)

// CleanupStats counts what a cleanup pass removed from the backend.
type CleanupStats struct {
	JobsDeleted     int
	BookingsDeleted int
}

// usageKey identifies a live checkout the same way a booking does, so the
// two sides can be compared for exact agreement.
type usageKey struct {
	FeatureID int
	Username  string
	LeadHost  string
	Quantity  int
}

// CleanJobs removes backend state that no longer matches the scheduler or
// the license servers. Jobs are deleted when they carry no bookings, when
// the scheduler no longer runs them, or when they outlived the longest
// grace time among their booked features. Bookings on surviving jobs are
// deleted only when the live checkouts matching them agree exactly in
// count, which keeps ambiguous overlaps untouched.
func CleanJobs(
	ctx context.Context,
	log *zap.Logger,
	client backend.Client,
	jobs []backend.Job,
	queue []slurm.QueueEntry,
	report []ReportItem,
	dryRun bool,
) CleanupStats {
	queueByID := make(map[string]slurm.QueueEntry, len(queue))
	for _, entry := range queue {
		queueByID[entry.JobID] = entry
	}
	graceTimes := make(map[int]int, len(report))
	for _, item := range report {
		graceTimes[item.FeatureID] = item.GraceTime
	}

	var deleteJobs []backend.Job
	var survivors []backend.Job
	for _, job := range jobs {
		if len(job.Bookings) == 0 {
			deleteJobs = append(deleteJobs, job)
			continue
		}
		entry, running := queueByID[job.SlurmJobID]
		if !running || entry.State != "RUNNING" {
			deleteJobs = append(deleteJobs, job)
			continue
		}
		if entry.RuntimeSeconds > greatestGraceTime(job, graceTimes) {
			deleteJobs = append(deleteJobs, job)
			continue
		}
		survivors = append(survivors, job)
	}

	deleteBookings := matchedBookings(survivors, report)

	if dryRun {
		for _, job := range deleteJobs {
			log.Info("would delete job", zap.String("slurm_job_id", job.SlurmJobID))
		}
		for _, id := range deleteBookings {
			log.Info("would delete booking", zap.Int("booking_id", id))
		}
		return CleanupStats{JobsDeleted: len(deleteJobs), BookingsDeleted: len(deleteBookings)}
	}

	var wg sync.WaitGroup
	var jobCount, bookingCount atomic.Int64
	for _, job := range deleteJobs {
		wg.Add(1)
		go func(job backend.Job) {
			defer wg.Done()
			if err := client.DeleteJob(ctx, job.SlurmJobID); err != nil {
				log.Error("delete job failed",
					zap.String("slurm_job_id", job.SlurmJobID), zap.Error(err))
				return
			}
			jobCount.Add(1)
		}(job)
	}
	for _, id := range deleteBookings {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			if err := client.DeleteBooking(ctx, id); err != nil {
				log.Error("delete booking failed", zap.Int("booking_id", id), zap.Error(err))
				return
			}
			bookingCount.Add(1)
		}(id)
	}
	wg.Wait()

	return CleanupStats{
		JobsDeleted:     int(jobCount.Load()),
		BookingsDeleted: int(bookingCount.Load()),
	}
}

// greatestGraceTime returns the longest grace time among the job's booked
// features. Unknown features contribute nothing.
func greatestGraceTime(job backend.Job, graceTimes map[int]int) int {
	greatest := 0
	for _, booking := range job.Bookings {
		if grace := graceTimes[booking.FeatureID]; grace > greatest {
			greatest = grace
		}
	}
	return greatest
}

// matchedBookings returns the IDs of bookings whose live checkouts agree
// with them exactly: for every (feature, user, host, quantity) key, the
// number of bookings must equal the number of matching checkouts.
func matchedBookings(jobs []backend.Job, report []ReportItem) []int {
	bookings := make(map[usageKey][]int)
	for _, job := range jobs {
		for _, booking := range job.Bookings {
			key := usageKey{
				FeatureID: booking.FeatureID,
				Username:  job.Username,
				LeadHost:  utils.StripDomain(job.LeadHost),
				Quantity:  booking.Quantity,
			}
			bookings[key] = append(bookings[key], booking.ID)
		}
	}

	checkouts := make(map[usageKey]int)
	for _, item := range report {
		for _, use := range item.Uses {
			key := usageKey{
				FeatureID: item.FeatureID,
				Username:  use.Username,
				LeadHost:  utils.StripDomain(use.LeadHost),
				Quantity:  use.Booked,
			}
			checkouts[key]++
		}
	}

	var matched []int
	for key, ids := range bookings {
		if checkouts[key] == len(ids) {
			matched = append(matched, ids...)
		}
	}
	return matched
}
