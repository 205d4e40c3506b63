package errorhandler_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/devantler-tech/kindplane/pkg/cli/ui/errorhandler"
)

var errBadFlag = errors.New(`invalid argument "10x" for "--wait" flag`)

func TestIsUsageError_NilError(t *testing.T) {
	t.Parallel()

	if errorhandler.IsUsageError(nil) {
		t.Fatal("expected nil error to not be a usage error")
	}
}

func TestIsUsageError_WrappedUsageError(t *testing.T) {
	t.Parallel()

	err := fmt.Errorf("command execution failed: %w", errorhandler.NewUsageError(errBadFlag))

	if !errorhandler.IsUsageError(err) {
		t.Fatal("expected wrapped UsageError to be detected")
	}

	if !errors.Is(err, errBadFlag) {
		t.Fatal("expected UsageError to preserve the error chain")
	}
}

func TestIsUsageError_UnknownCommandText(t *testing.T) {
	t.Parallel()

	err := errors.New(`unknown command "sideways" for "kindplane"`)

	if !errorhandler.IsUsageError(err) {
		t.Fatal("expected unknown command error to be detected")
	}
}

func TestIsUsageError_UnknownFlagText(t *testing.T) {
	t.Parallel()

	err := errors.New("unknown flag: --frobnicate")

	if !errorhandler.IsUsageError(err) {
		t.Fatal("expected unknown flag error to be detected")
	}
}

func TestIsUsageError_OtherError(t *testing.T) {
	t.Parallel()

	if errorhandler.IsUsageError(errors.New("connection refused")) {
		t.Fatal("expected unrelated error to not be a usage error")
	}
}

func TestUsageErrorErrorAndUnwrap(t *testing.T) {
	t.Parallel()

	usageErr := errorhandler.NewUsageError(errBadFlag)

	if usageErr.Error() != errBadFlag.Error() {
		t.Fatalf("expected %q, got %q", errBadFlag.Error(), usageErr.Error())
	}

	if !errors.Is(usageErr, errBadFlag) {
		t.Fatal("expected Unwrap to expose the cause")
	}

	var nilErr *errorhandler.UsageError
	if nilErr.Unwrap() != nil {
		t.Fatal("expected nil receiver unwrap to return nil")
	}
}
