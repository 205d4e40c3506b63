package kindprovisioner

import (
	"fmt"
	"io"
	"strings"

	"github.com/sirupsen/logrus"
	"sigs.k8s.io/kind/pkg/log"
)

// streamLogger bridges kind's logger interface to an output stream so kind's
// console output is displayed in real-time. Info-level messages (V(0)) go to
// the stream, verbose messages (V(1) and higher) go to the debug log.
type streamLogger struct {
	writer io.Writer
}

func (l *streamLogger) Warn(message string) {
	l.write(message)
}

func (l *streamLogger) Warnf(format string, args ...any) {
	l.write(fmt.Sprintf(format, args...))
}

func (l *streamLogger) Error(message string) {
	l.write(message)
}

func (l *streamLogger) Errorf(format string, args ...any) {
	l.write(fmt.Sprintf(format, args...))
}

func (l *streamLogger) V(level log.Level) log.InfoLogger {
	if level > 0 {
		return verboseInfoLogger{}
	}

	return l
}

func (l *streamLogger) Info(message string) {
	l.write(message)
}

func (l *streamLogger) Infof(format string, args ...any) {
	l.write(fmt.Sprintf(format, args...))
}

func (l *streamLogger) Enabled() bool {
	return true
}

func (l *streamLogger) write(message string) {
	if l == nil {
		return
	}

	if message == "" {
		_, _ = io.WriteString(l.writer, "\n")

		return
	}

	// Progress spinners emit carriage returns and partial lines. Pass those
	// through untouched so the terminal renders them in place.
	if strings.ContainsRune(message, '\r') || strings.HasSuffix(message, "\n") {
		_, _ = io.WriteString(l.writer, message)

		return
	}

	_, _ = io.WriteString(l.writer, message+"\n")
}

// verboseInfoLogger routes kind's verbose messages (V(1) and higher) to the
// debug log so they only surface when debug logging is enabled.
type verboseInfoLogger struct{}

func (verboseInfoLogger) Info(message string) {
	logrus.WithField("source", "kind").Debug(message)
}

func (verboseInfoLogger) Infof(format string, args ...any) {
	logrus.WithField("source", "kind").Debugf(format, args...)
}

func (verboseInfoLogger) Enabled() bool {
	return logrus.IsLevelEnabled(logrus.DebugLevel)
}
