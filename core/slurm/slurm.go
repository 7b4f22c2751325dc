package slurm

import (
	"context"
	"fmt"
	"os/exec"
	"time"
)

// Client defines the scheduler operations consumed by the agent.
type Client interface {
	// LicensePools returns the scheduler's license pool counters keyed
	// by product.feature.
	LicensePools(ctx context.Context) (map[string]Pool, error)
	// Queue returns the current job queue with elapsed runtimes.
	Queue(ctx context.Context) ([]QueueEntry, error)
	// JobLicenses returns the license requirements of one job.
	JobLicenses(ctx context.Context, slurmJobID string) ([]LicenseBooking, error)
	// CreateReservation installs the capacity reservation.
	CreateReservation(ctx context.Context, licenses, duration string) error
	// ShowReservation returns the raw reservation record, or an error
	// when no reservation exists.
	ShowReservation(ctx context.Context) (string, error)
	// UpdateReservation changes the licenses held by the reservation.
	UpdateReservation(ctx context.Context, licenses, duration string) error
	// DeleteReservation removes the reservation.
	DeleteReservation(ctx context.Context) error
}

// NewClient creates a scheduler bridge that shells out to the configured
// scontrol and squeue binaries, bounding every call by the command timeout.
func NewClient(cfg Config) Client {
	timeout := cfg.TimeoutSeconds
	if timeout <= 0 {
		timeout = 5
	}
	return &cmdClient{cfg: cfg, timeout: time.Duration(timeout) * time.Second}
}

type cmdClient struct {
	cfg     Config
	timeout time.Duration
}

func (c *cmdClient) run(ctx context.Context, bin string, args ...string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	out, err := exec.CommandContext(ctx, bin, args...).Output()
	if err != nil {
		return string(out), err
	}
	return string(out), nil
}

func (c *cmdClient) LicensePools(ctx context.Context) (map[string]Pool, error) {
	out, err := c.run(ctx, c.cfg.ScontrolPath, "show", "lic")
	if err != nil {
		return nil, &ScontrolRetrievalError{Op: "show lic", Detail: "command failed", Err: err}
	}
	return ParseLicensePools(out), nil
}

func (c *cmdClient) Queue(ctx context.Context) ([]QueueEntry, error) {
	out, err := c.run(ctx, c.cfg.SqueuePath, "--noheader", "--format=%i|%M|%T")
	if err != nil {
		return nil, &SqueueRetrievalError{Detail: "command failed", Err: err}
	}
	return ParseQueue(out)
}

func (c *cmdClient) JobLicenses(ctx context.Context, slurmJobID string) ([]LicenseBooking, error) {
	out, err := c.run(ctx, c.cfg.ScontrolPath, "show", "job", slurmJobID)
	if err != nil {
		return nil, &ScontrolRetrievalError{Op: "show job", Detail: "job " + slurmJobID, Err: err}
	}
	bookings, ok := ParseJobLicenses(out)
	if !ok {
		return nil, &ScontrolRetrievalError{Op: "show job", Detail: "output for job " + slurmJobID + " lacks Licenses field"}
	}
	return bookings, nil
}

func (c *cmdClient) CreateReservation(ctx context.Context, licenses, duration string) error {
	_, err := c.run(ctx, c.cfg.ScontrolPath, "create", "reservation",
		"ReservationName="+c.cfg.ReservationName,
		"StartTime=now",
		"Duration="+duration,
		"Flags=LICENSE_ONLY",
		"Users=root",
		"Licenses="+licenses,
	)
	if err != nil {
		return fmt.Errorf("create reservation %s: %w", c.cfg.ReservationName, err)
	}
	return nil
}

func (c *cmdClient) ShowReservation(ctx context.Context) (string, error) {
	out, err := c.run(ctx, c.cfg.ScontrolPath, "show", "reservation", c.cfg.ReservationName)
	if err != nil {
		return "", fmt.Errorf("show reservation %s: %w", c.cfg.ReservationName, err)
	}
	return out, nil
}

func (c *cmdClient) UpdateReservation(ctx context.Context, licenses, duration string) error {
	_, err := c.run(ctx, c.cfg.ScontrolPath, "update",
		"ReservationName="+c.cfg.ReservationName,
		"Duration="+duration,
		"Licenses="+licenses,
	)
	if err != nil {
		return fmt.Errorf("update reservation %s: %w", c.cfg.ReservationName, err)
	}
	return nil
}

func (c *cmdClient) DeleteReservation(ctx context.Context) error {
	_, err := c.run(ctx, c.cfg.ScontrolPath, "delete", "ReservationName="+c.cfg.ReservationName)
	if err != nil {
		return fmt.Errorf("delete reservation %s: %w", c.cfg.ReservationName, err)
	}
	return nil
}
