package v1alpha1

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"time"
)

// DurationUnit enumerates the units a WaitDuration accepts.
type DurationUnit string

// DurationUnitMinutes is the only recognized wait duration unit.
const DurationUnitMinutes DurationUnit = "m"

const secondsPerMinute = 60

// waitDurationRegex matches "<integer><unit>", e.g. "10m". The unit is
// validated separately so unsupported units produce a precise error.
var waitDurationRegex = regexp.MustCompile(`^([0-9]+)([a-zA-Z]+)$`)

// WaitDuration is a structured duration with an integer magnitude and an
// explicit unit. Unrecognized units are a configuration error, never a guess.
// It implements pflag.Value so it binds directly as a command-line flag.
type WaitDuration struct {
	Magnitude int          `json:"magnitude,omitzero"`
	Unit      DurationUnit `json:"unit,omitzero"`
}

// ParseWaitDuration parses a "<integer><unit>" duration string.
func ParseWaitDuration(value string) (WaitDuration, error) {
	matches := waitDurationRegex.FindStringSubmatch(value)
	if matches == nil {
		return WaitDuration{}, fmt.Errorf("%w: %q", ErrWaitDurationMalformed, value)
	}

	magnitude, err := strconv.Atoi(matches[1])
	if err != nil {
		return WaitDuration{}, fmt.Errorf("%w: %q", ErrWaitDurationMalformed, value)
	}

	unit := DurationUnit(matches[2])
	if unit != DurationUnitMinutes {
		return WaitDuration{}, fmt.Errorf("%w: %q in %q", ErrWaitDurationUnit, matches[2], value)
	}

	return WaitDuration{Magnitude: magnitude, Unit: unit}, nil
}

// Duration converts the wait duration to a time.Duration.
func (d WaitDuration) Duration() time.Duration {
	return time.Duration(d.Seconds()) * time.Second
}

// Seconds returns the duration magnitude converted to seconds.
func (d WaitDuration) Seconds() int {
	if d.Unit == DurationUnitMinutes {
		return d.Magnitude * secondsPerMinute
	}

	return 0
}

// IsZero reports whether the duration is unset or zero-length.
func (d WaitDuration) IsZero() bool {
	return d.Magnitude == 0 || d.Unit == ""
}

// String returns the canonical "<integer><unit>" form.
func (d WaitDuration) String() string {
	if d.Unit == "" {
		return strconv.Itoa(d.Magnitude)
	}

	return strconv.Itoa(d.Magnitude) + string(d.Unit)
}

// Set parses the flag value in place. Part of the pflag.Value interface.
func (d *WaitDuration) Set(value string) error {
	parsed, err := ParseWaitDuration(value)
	if err != nil {
		return err
	}

	*d = parsed

	return nil
}

// Type names the flag value type in help output. Part of the pflag.Value interface.
func (d *WaitDuration) Type() string {
	return "duration"
}

// MarshalJSON encodes the duration in its canonical string form.
func (d WaitDuration) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

// UnmarshalJSON decodes the canonical string form.
func (d *WaitDuration) UnmarshalJSON(data []byte) error {
	var value string

	err := json.Unmarshal(data, &value)
	if err != nil {
		return fmt.Errorf("unmarshal wait duration: %w", err)
	}

	return d.Set(value)
}
