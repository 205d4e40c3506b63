package readiness_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devantler-tech/kindplane/pkg/k8s/readiness"
)

var errProbeFailed = errors.New("probe failed")

func TestPollForReadiness_ReadyImmediately(t *testing.T) {
	t.Parallel()

	err := readiness.PollForReadiness(
		context.Background(),
		10*time.Millisecond,
		time.Second,
		func(_ context.Context) (bool, error) {
			return true, nil
		},
	)

	require.NoError(t, err)
}

func TestPollForReadiness_ReadyAfterRetries(t *testing.T) {
	t.Parallel()

	calls := 0

	err := readiness.PollForReadiness(
		context.Background(),
		10*time.Millisecond,
		time.Second,
		func(_ context.Context) (bool, error) {
			calls++

			return calls >= 3, nil
		},
	)

	require.NoError(t, err)
	assert.GreaterOrEqual(t, calls, 3)
}

func TestPollForReadiness_ProbeErrorAborts(t *testing.T) {
	t.Parallel()

	err := readiness.PollForReadiness(
		context.Background(),
		10*time.Millisecond,
		time.Second,
		func(_ context.Context) (bool, error) {
			return false, errProbeFailed
		},
	)

	require.Error(t, err)
	require.ErrorIs(t, err, errProbeFailed)
	assert.Contains(t, err.Error(), "failed to poll for readiness")
}

func TestPollForReadiness_DeadlineExceeded(t *testing.T) {
	t.Parallel()

	err := readiness.PollForReadiness(
		context.Background(),
		10*time.Millisecond,
		50*time.Millisecond,
		func(_ context.Context) (bool, error) {
			return false, nil
		},
	)

	require.Error(t, err)
	require.ErrorIs(t, err, readiness.ErrTimeoutExceeded)
}

func TestPollForReadiness_ContextCancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := readiness.PollForReadiness(
		ctx,
		10*time.Millisecond,
		time.Second,
		func(_ context.Context) (bool, error) {
			return false, nil
		},
	)

	require.Error(t, err)
	require.ErrorIs(t, err, readiness.ErrTimeoutExceeded)
}
