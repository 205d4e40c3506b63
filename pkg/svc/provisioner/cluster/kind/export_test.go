package kindprovisioner

import (
	"io"

	"sigs.k8s.io/kind/pkg/log"
)

// NewStreamLoggerForTests exposes the kind logger bridge for testing.
func NewStreamLoggerForTests(writer io.Writer) log.Logger {
	return &streamLogger{writer: writer}
}
