package slurm

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

// missing binaries make every command fail, which is what the error
// taxonomy tests need.
func brokenClient() Client {
	return NewClient(Config{
		ScontrolPath:   "/nonexistent/scontrol",
		SqueuePath:     "/nonexistent/squeue",
		TimeoutSeconds: 1,
	})
}

func TestQueueCommandFailure(t *testing.T) {
	_, err := brokenClient().Queue(context.Background())

	var retrievalErr *SqueueRetrievalError
	assert.True(t, errors.As(err, &retrievalErr))
}

func TestLicensePoolsCommandFailure(t *testing.T) {
	_, err := brokenClient().LicensePools(context.Background())

	var retrievalErr *ScontrolRetrievalError
	assert.True(t, errors.As(err, &retrievalErr))
}

func TestJobLicensesCommandFailure(t *testing.T) {
	_, err := brokenClient().JobLicenses(context.Background(), "101")

	var retrievalErr *ScontrolRetrievalError
	assert.True(t, errors.As(err, &retrievalErr))
	assert.Equal(t, "show job", retrievalErr.Op)
}
