package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/omnivector-solutions/license-manager-sub000/core/slurm"
)

// Client is a mock implementation of slurm.Client
type Client struct {
	mock.Mock
}

func (m *Client) LicensePools(ctx context.Context) (map[string]slurm.Pool, error) {
	args := m.Called(ctx)
	if v, ok := args.Get(0).(map[string]slurm.Pool); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *Client) Queue(ctx context.Context) ([]slurm.QueueEntry, error) {
	args := m.Called(ctx)
	if v, ok := args.Get(0).([]slurm.QueueEntry); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *Client) JobLicenses(ctx context.Context, slurmJobID string) ([]slurm.LicenseBooking, error) {
	args := m.Called(ctx, slurmJobID)
	if v, ok := args.Get(0).([]slurm.LicenseBooking); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *Client) CreateReservation(ctx context.Context, licenses, duration string) error {
	args := m.Called(ctx, licenses, duration)
	return args.Error(0)
}

func (m *Client) ShowReservation(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

func (m *Client) UpdateReservation(ctx context.Context, licenses, duration string) error {
	args := m.Called(ctx, licenses, duration)
	return args.Error(0)
}

func (m *Client) DeleteReservation(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
