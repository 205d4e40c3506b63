package readiness

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// ErrTimeoutExceeded is returned when a readiness deadline is exceeded.
var ErrTimeoutExceeded = errors.New("timeout exceeded")

// Probe reports whether the observed resource is ready. Returning an error
// aborts polling immediately; probes should return (false, nil) for
// transient failures they want retried.
type Probe func(ctx context.Context) (bool, error)

// PollForReadiness invokes probe every interval until it reports ready, the
// deadline passes, or ctx is cancelled. The probe runs once immediately
// before the first tick.
func PollForReadiness(
	ctx context.Context,
	interval time.Duration,
	deadline time.Duration,
	probe Probe,
) error {
	waitCtx, cancel := context.WithTimeout(ctx, deadline)
	defer cancel()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		ready, err := probe(waitCtx)
		if err != nil {
			return fmt.Errorf("failed to poll for readiness: %w", err)
		}

		if ready {
			return nil
		}

		select {
		case <-waitCtx.Done():
			return fmt.Errorf("failed to poll for readiness: %w", ErrTimeoutExceeded)
		case <-ticker.C:
		}
	}
}
