// Package envvar expands ${VAR_NAME} placeholders in configuration strings.
package envvar

import (
	"os"
	"regexp"
	"strings"

	"github.com/sirupsen/logrus"
)

// pattern matches ${VAR_NAME} and ${VAR_NAME:-default} placeholders.
// Groups: 1 = variable name, 2 = optional default value after ":-".
var pattern = regexp.MustCompile(`\$\{([a-zA-Z_][a-zA-Z0-9_]*)(?::-([^}]*))?\}`)

// defaultSyntaxMarker is the delimiter for the default value syntax.
const defaultSyntaxMarker = ":-"

// Expand replaces ${VAR_NAME} and ${VAR_NAME:-default} placeholders with the
// referenced environment variable values. An unset variable expands to its
// default when one is given, and to an empty string with a warning otherwise.
func Expand(value string) string {
	if value == "" {
		return value
	}

	return pattern.ReplaceAllStringFunc(value, expandMatch)
}

func expandMatch(match string) string {
	groups := pattern.FindStringSubmatch(match)
	if len(groups) < 2 {
		return match
	}

	name := groups[1]

	envValue, exists := os.LookupEnv(name)
	if exists {
		return envValue
	}

	if len(groups) > 2 && groups[2] != "" {
		return groups[2]
	}

	// ${VAR:-} is an explicit empty default and warrants no warning.
	if strings.Contains(match, defaultSyntaxMarker) {
		return ""
	}

	logrus.WithField("variable", name).Warn("environment variable not set")

	return ""
}
