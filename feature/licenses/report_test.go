package licenses

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/omnivector-solutions/license-manager-sub000/core/backend"
)

type stubSource struct {
	outputs map[string]string
	err     error
}

func (s *stubSource) Output(_ context.Context, config backend.Configuration) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	return s.outputs[config.Name], nil
}

func flexlmConfig() backend.Configuration {
	return backend.Configuration{
		ID:   1,
		Name: "abaqus-servers",
		Type: "flexlm",
		Features: []backend.Feature{
			{ID: 10, Name: "abaqus", Product: backend.Product{ID: 1, Name: "abaqus"}},
			{ID: 11, Name: "explicit", Product: backend.Product{ID: 1, Name: "abaqus"}},
		},
		LicenseServers: []backend.LicenseServer{{ID: 1, Host: "licserv01", Port: 27000}},
		GraceTime:      60,
	}
}

func TestBuildReport(t *testing.T) {
	raw := `lmutil - Copyright (c) 1989-2020 Flexera.
Users of abaqus:  (Total of 1000 licenses issued;  Total of 93 licenses in use)

  "abaqus" v62.2, vendor: ABAQUSLM
  floating license

    jbemfv myctld.example.com /dev/tty (v62.2) (licserv01/27000 12507), start Thu 10/29 8:09, 29 licenses
    sdmfva node42.example.com /dev/tty (v62.2) (licserv01/27000 12508), start Thu 10/29 9:34, 64 licenses

Users of explicit:  (Total of 400 licenses issued;  Total of 0 licenses in use)
`
	source := &stubSource{outputs: map[string]string{"abaqus-servers": raw}}

	report := BuildReport(context.Background(), zap.NewNop(), source, []backend.Configuration{flexlmConfig()})

	assert.Len(t, report, 2)
	assert.Equal(t, 10, report[0].FeatureID)
	assert.Equal(t, "abaqus.abaqus", report[0].ProductFeature)
	assert.Equal(t, 93, report[0].Used)
	assert.Equal(t, 1000, report[0].Total)
	assert.Len(t, report[0].Uses, 2)
	assert.Equal(t, "myctld", report[0].Uses[0].LeadHost)

	assert.Equal(t, "abaqus.explicit", report[1].ProductFeature)
	assert.Equal(t, 400, report[1].Total)
	assert.Zero(t, report[1].Used)
	assert.Empty(t, report[1].Uses)
}

func TestBuildReportServerDown(t *testing.T) {
	source := &stubSource{err: errors.New("connection refused")}

	report := BuildReport(context.Background(), zap.NewNop(), source, []backend.Configuration{flexlmConfig()})

	assert.Len(t, report, 2)
	for _, item := range report {
		assert.Zero(t, item.Used)
		assert.Zero(t, item.Total)
		assert.Empty(t, item.Uses)
	}
}

func TestBuildReportUnknownServerType(t *testing.T) {
	config := flexlmConfig()
	config.Type = "sesame"
	source := &stubSource{outputs: map[string]string{}}

	report := BuildReport(context.Background(), zap.NewNop(), source, []backend.Configuration{config})

	assert.Len(t, report, 2)
	assert.Zero(t, report[0].Total)
}

func TestFeatureUpdates(t *testing.T) {
	config := flexlmConfig()
	report := []ReportItem{
		{FeatureID: 10, ProductFeature: "abaqus.abaqus", Used: 93, Total: 1000},
		{FeatureID: 11, ProductFeature: "abaqus.explicit", Used: 0, Total: 400},
		{FeatureID: 99, ProductFeature: "ghost.ghost", Used: 1, Total: 1},
	}

	updates := FeatureUpdates([]backend.Configuration{config}, report)

	assert.Len(t, updates, 2)
	assert.Equal(t, backend.FeatureUpdate{
		ProductName: "abaqus", FeatureName: "abaqus", Total: 1000, Used: 93,
	}, updates[0])
	assert.Equal(t, "explicit", updates[1].FeatureName)
}
