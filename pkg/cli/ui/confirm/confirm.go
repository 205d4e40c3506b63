// Package confirm provides confirmation prompt utilities for destructive operations.
package confirm

import (
	"bufio"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/devantler-tech/kindplane/pkg/utils/notify"
)

// Func answers a confirmation question before a destructive operation proceeds.
type Func func(question string) bool

// New returns a Func that prompts on writer unless the prompt should be
// skipped, in which case it answers yes without prompting.
func New(writer io.Writer, assumeYes bool) Func {
	return func(question string) bool {
		if ShouldSkipPrompt(assumeYes) {
			return true
		}

		return PromptForConfirmation(writer, question)
	}
}

// Test override variables with mutexes for thread safety.
var (
	//nolint:gochecknoglobals // dependency injection for tests
	stdinReaderMu sync.RWMutex
	//nolint:gochecknoglobals // dependency injection for tests
	stdinReaderOverride io.Reader

	//nolint:gochecknoglobals // dependency injection for tests
	ttyCheckerMu sync.RWMutex
	//nolint:gochecknoglobals // dependency injection for tests
	ttyCheckerOverride func() bool
)

// SetStdinReaderForTests overrides the stdin reader for testing.
// Returns a restore function that should be called to reset the override.
func SetStdinReaderForTests(reader io.Reader) func() {
	stdinReaderMu.Lock()

	previous := stdinReaderOverride
	stdinReaderOverride = reader

	stdinReaderMu.Unlock()

	return func() {
		stdinReaderMu.Lock()

		stdinReaderOverride = previous

		stdinReaderMu.Unlock()
	}
}

// SetTTYCheckerForTests overrides the TTY checker for testing.
// Returns a restore function that should be called to reset the override.
func SetTTYCheckerForTests(checker func() bool) func() {
	ttyCheckerMu.Lock()

	previous := ttyCheckerOverride
	ttyCheckerOverride = checker

	ttyCheckerMu.Unlock()

	return func() {
		ttyCheckerMu.Lock()

		ttyCheckerOverride = previous

		ttyCheckerMu.Unlock()
	}
}

// getStdinReader returns the stdin reader to use, respecting test overrides.
func getStdinReader() io.Reader {
	stdinReaderMu.RLock()
	defer stdinReaderMu.RUnlock()

	if stdinReaderOverride != nil {
		return stdinReaderOverride
	}

	return os.Stdin
}

// IsTTY returns true if stdin is connected to a terminal.
// This is used to skip confirmation prompts in non-interactive environments (CI/pipelines).
func IsTTY() bool {
	ttyCheckerMu.RLock()

	override := ttyCheckerOverride

	ttyCheckerMu.RUnlock()

	if override != nil {
		return override()
	}

	fileInfo, err := os.Stdin.Stat()
	if err != nil {
		return false
	}

	// If stdin is a character device (terminal), ModeCharDevice will be set
	return (fileInfo.Mode() & os.ModeCharDevice) != 0
}

// ShouldSkipPrompt returns true if the confirmation prompt should be skipped.
// This happens when:
// - the assume-yes flag is set, OR
// - stdin is not a TTY (non-interactive environment)
func ShouldSkipPrompt(assumeYes bool) bool {
	return assumeYes || !IsTTY()
}

// PromptForConfirmation writes the question and asks the user to type "yes".
// Returns true only if the user types exactly "yes" (case-insensitive).
func PromptForConfirmation(writer io.Writer, question string) bool {
	notify.WriteMessage(notify.Message{
		Type:    notify.WarningType,
		Content: question + ` Type "yes" to confirm: `,
		Writer:  writer,
	})

	reader := bufio.NewReader(getStdinReader())

	input, err := reader.ReadString('\n')
	if err != nil {
		return false
	}

	input = strings.TrimSpace(input)

	return strings.EqualFold(input, "yes")
}
