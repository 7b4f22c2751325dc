package backend

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(handler http.Handler) (Client, *httptest.Server) {
	srv := httptest.NewServer(handler)
	return NewClient(Config{BaseURL: srv.URL, Token: "secret", TimeoutSeconds: 5}), srv
}

func TestConfigurations(t *testing.T) {
	client, srv := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/configurations/by_client_id", r.URL.Path)
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))

		_ = json.NewEncoder(w).Encode([]Configuration{
			{
				ID:        1,
				Name:      "abaqus",
				GraceTime: 60,
				Type:      "flexlm",
				Features: []Feature{
					{ID: 7, Name: "abaqus", Product: Product{ID: 3, Name: "abaqus"}},
				},
			},
		})
	}))
	defer srv.Close()

	configs, err := client.Configurations(context.Background())
	require.NoError(t, err)
	require.Len(t, configs, 1)
	assert.Equal(t, "flexlm", configs[0].Type)
	assert.Equal(t, "abaqus.abaqus", configs[0].Features[0].ProductFeature())
}

func TestDeleteJobTreats404AsSuccess(t *testing.T) {
	client, srv := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/jobs/slurm_job_id/777", r.URL.Path)
		assert.Equal(t, http.MethodDelete, r.Method)
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	assert.NoError(t, client.DeleteJob(context.Background(), "777"))
}

func TestDeleteBookingPropagatesFailure(t *testing.T) {
	client, srv := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	err := client.DeleteBooking(context.Background(), 12)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrConnection))
}

func TestBulkUpdateFeaturesPayload(t *testing.T) {
	var got []FeatureUpdate
	client, srv := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/features/bulk", r.URL.Path)
		assert.Equal(t, http.MethodPut, r.Method)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
	}))
	defer srv.Close()

	updates := []FeatureUpdate{{ProductName: "abaqus", FeatureName: "abaqus", Total: 1000, Used: 93}}
	require.NoError(t, client.BulkUpdateFeatures(context.Background(), updates))
	assert.Equal(t, updates, got)
}

func TestCreateJobReturnsID(t *testing.T) {
	client, srv := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/jobs", r.URL.Path)
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"id": 42}`))
	}))
	defer srv.Close()

	id, err := client.CreateJob(context.Background(), JobCreate{
		SlurmJobID: "123",
		Username:   "alice",
		LeadHost:   "node1",
		Bookings:   []BookingCreate{{ProductFeature: "abaqus.abaqus", Quantity: 2}},
	})
	require.NoError(t, err)
	assert.Equal(t, 42, id)
}

func TestConnectionRefusedIsErrConnection(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	client := NewClient(Config{BaseURL: url, TimeoutSeconds: 1})
	_, err := client.Jobs(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrConnection))
}
