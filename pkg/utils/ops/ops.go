// Package ops runs named operations under an explicit failure policy.
//
// Bootstrap flows mix steps that must abort the run with steps that are
// allowed to fail, such as repository index refreshes or cleanup sweeps.
// Run makes that choice visible at every call site instead of burying it
// in ad-hoc error handling.
package ops

import (
	"fmt"
	"io"

	"github.com/sirupsen/logrus"

	"github.com/devantler-tech/kindplane/pkg/utils/notify"
)

// Policy determines how Run reacts when an operation fails.
type Policy int

const (
	// Fatal wraps the failure with the operation name and returns it.
	Fatal Policy = iota

	// BestEffort reports the failure as a warning on the output writer
	// and returns nil so the caller continues.
	BestEffort
)

// Run executes op under the given policy. The name appears in wrapped
// errors and warnings, so it should read as a short activity like
// "update helm repositories".
func Run(out io.Writer, name string, policy Policy, op func() error) error {
	logrus.WithField("operation", name).Debug("operation started")

	err := op()
	if err == nil {
		logrus.WithField("operation", name).Debug("operation completed")

		return nil
	}

	if policy == BestEffort {
		logrus.WithField("operation", name).WithError(err).Debug("operation failed, continuing")
		notify.Warningf(out, "%s: %v", name, err)

		return nil
	}

	return fmt.Errorf("%s: %w", name, err)
}
