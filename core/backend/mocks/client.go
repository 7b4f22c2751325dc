package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/omnivector-solutions/license-manager-sub000/core/backend"
)

// Client is a mock implementation of backend.Client
type Client struct {
	mock.Mock
}

func (m *Client) Configurations(ctx context.Context) ([]backend.Configuration, error) {
	args := m.Called(ctx)
	if v, ok := args.Get(0).([]backend.Configuration); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *Client) Jobs(ctx context.Context) ([]backend.Job, error) {
	args := m.Called(ctx)
	if v, ok := args.Get(0).([]backend.Job); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *Client) AllFeatures(ctx context.Context) ([]backend.Feature, error) {
	args := m.Called(ctx)
	if v, ok := args.Get(0).([]backend.Feature); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *Client) BulkUpdateFeatures(ctx context.Context, updates []backend.FeatureUpdate) error {
	args := m.Called(ctx, updates)
	return args.Error(0)
}

func (m *Client) CreateJob(ctx context.Context, job backend.JobCreate) (int, error) {
	args := m.Called(ctx, job)
	return args.Int(0), args.Error(1)
}

func (m *Client) DeleteJob(ctx context.Context, slurmJobID string) error {
	args := m.Called(ctx, slurmJobID)
	return args.Error(0)
}

func (m *Client) DeleteBooking(ctx context.Context, id int) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
