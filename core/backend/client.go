package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// ErrConnection marks any failure to reach the backend or any unexpected
// response from it. Callers treat it as fatal for the current tick; there is
// nothing to reconcile against without the booking ledger.
var ErrConnection = errors.New("backend connection failed")

// Client defines the backend gateway operations consumed by the agent.
type Client interface {
	// Configurations returns the license configurations for this cluster.
	Configurations(ctx context.Context) ([]Configuration, error)
	// Jobs returns the tracked jobs (with bookings) for this cluster.
	Jobs(ctx context.Context) ([]Job, error)
	// AllFeatures returns features across every cluster, used to compute
	// cross-cluster booking sums.
	AllFeatures(ctx context.Context) ([]Feature, error)
	// BulkUpdateFeatures uploads fresh vendor counters for many features.
	BulkUpdateFeatures(ctx context.Context, updates []FeatureUpdate) error
	// CreateJob registers a new scheduler job and its bookings.
	CreateJob(ctx context.Context, job JobCreate) (int, error)
	// DeleteJob removes a job by its scheduler job ID. Deleting a job
	// that is already absent is a success.
	DeleteJob(ctx context.Context, slurmJobID string) error
	// DeleteBooking removes a single booking by ID.
	DeleteBooking(ctx context.Context, id int) error
}

// NewClient creates an HTTP backend client from the configuration.
func NewClient(cfg Config) Client {
	timeout := cfg.TimeoutSeconds
	if timeout <= 0 {
		timeout = 30
	}
	return &httpClient{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		token:   cfg.Token,
		client:  &http.Client{Timeout: time.Duration(timeout) * time.Second},
	}
}

type httpClient struct {
	baseURL string
	token   string
	client  *http.Client
}

func (c *httpClient) Configurations(ctx context.Context) ([]Configuration, error) {
	var out []Configuration
	if err := c.do(ctx, http.MethodGet, "/configurations/by_client_id", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *httpClient) Jobs(ctx context.Context) ([]Job, error) {
	var out []Job
	if err := c.do(ctx, http.MethodGet, "/jobs/by_client_id", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *httpClient) AllFeatures(ctx context.Context) ([]Feature, error) {
	var out []Feature
	if err := c.do(ctx, http.MethodGet, "/features", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *httpClient) BulkUpdateFeatures(ctx context.Context, updates []FeatureUpdate) error {
	return c.do(ctx, http.MethodPut, "/features/bulk", updates, nil)
}

func (c *httpClient) CreateJob(ctx context.Context, job JobCreate) (int, error) {
	var out struct {
		ID int `json:"id"`
	}
	if err := c.do(ctx, http.MethodPost, "/jobs", job, &out); err != nil {
		return 0, err
	}
	return out.ID, nil
}

func (c *httpClient) DeleteJob(ctx context.Context, slurmJobID string) error {
	err := c.do(ctx, http.MethodDelete, "/jobs/slurm_job_id/"+slurmJobID, nil, nil)
	// A 404 means the job is already gone, which is the desired state.
	var se *statusError
	if errors.As(err, &se) && se.code == http.StatusNotFound {
		return nil
	}
	return err
}

func (c *httpClient) DeleteBooking(ctx context.Context, id int) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/bookings/%d", id), nil, nil)
}

// statusError preserves the response code of a non-2xx backend reply so
// callers can special-case statuses like 404 while still matching
// ErrConnection through the wrap chain.
type statusError struct {
	code   int
	method string
	path   string
}

func (e *statusError) Error() string {
	return fmt.Sprintf("%s %s returned status %d", e.method, e.path, e.code)
}

func (e *statusError) Unwrap() error { return ErrConnection }

func (c *httpClient) do(ctx context.Context, method, path string, body, out any) error {
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode %s %s request: %w", method, path, err)
		}
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("create %s %s request: %w", method, path, err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %s %s: %v", ErrConnection, method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &statusError{code: resp.StatusCode, method: method, path: path}
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("%w: decode %s %s response: %v", ErrConnection, method, path, err)
		}
	}
	return nil
}
