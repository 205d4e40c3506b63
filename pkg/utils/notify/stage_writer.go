package notify

import (
	"fmt"
	"io"
	"sync"
	"unicode"
	"unicode/utf8"
)

// StageSeparatingWriter wraps an io.Writer and inserts a blank line before
// every stage title once some output has been written. A stage title is a
// line starting with a pictographic emoji (🚀, 📦, 🔥), as written by
// Titlef; message lines starting with activity symbols (►, ✔, ✗) never
// trigger separation.
//
// Wrapping the command output with NewStageSeparatingWriter removes the need
// for manual blank-line bookkeeping in command handlers.
type StageSeparatingWriter struct {
	underlying io.Writer
	hasWritten bool
	mu         sync.Mutex
}

// NewStageSeparatingWriter creates a StageSeparatingWriter wrapping the given writer.
func NewStageSeparatingWriter(underlying io.Writer) *StageSeparatingWriter {
	return &StageSeparatingWriter{
		underlying: underlying,
	}
}

// Write implements io.Writer.
func (w *StageSeparatingWriter) Write(data []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if len(data) == 0 {
		return 0, nil
	}

	if w.hasWritten && startsWithTitleEmoji(data) {
		_, writeErr := w.underlying.Write([]byte{'\n'})
		if writeErr != nil {
			return 0, fmt.Errorf("failed to write stage separator: %w", writeErr)
		}
	}

	bytesWritten, err := w.underlying.Write(data)
	if bytesWritten > 0 {
		w.hasWritten = true
	}

	if err != nil {
		return bytesWritten, fmt.Errorf("failed to write data: %w", err)
	}

	return bytesWritten, nil
}

// Reset clears the written state so the next title starts without a
// separator.
func (w *StageSeparatingWriter) Reset() {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.hasWritten = false
}

// startsWithTitleEmoji reports whether data begins with a pictographic emoji.
// The known message symbols are excluded so only stage titles match.
func startsWithTitleEmoji(data []byte) bool {
	if len(data) == 0 {
		return false
	}

	firstRune, _ := utf8.DecodeRune(data)
	if firstRune == utf8.RuneError {
		return false
	}

	switch firstRune {
	case '►', '✔', '✗', '⚠', 'ℹ':
		return false
	}

	// Pictographic emojis fall in the "Other Symbol" (So) Unicode category.
	return unicode.Is(unicode.So, firstRune)
}
