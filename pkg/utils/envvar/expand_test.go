package envvar_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/devantler-tech/kindplane/pkg/utils/envvar"
)

func TestExpand(t *testing.T) {
	testCases := []struct {
		name     string
		input    string
		envVars  map[string]string
		expected string
	}{
		{
			name:     "EmptyString",
			input:    "",
			expected: "",
		},
		{
			name:     "NoPlaceholders",
			input:    "/root/.kube/config",
			expected: "/root/.kube/config",
		},
		{
			name:     "SetVariable",
			input:    "${KINDPLANE_TEST_DIR}/kubeconfig",
			envVars:  map[string]string{"KINDPLANE_TEST_DIR": "/tmp/kp"},
			expected: "/tmp/kp/kubeconfig",
		},
		{
			name:     "UnsetVariable",
			input:    "${KINDPLANE_TEST_UNSET}/kubeconfig",
			expected: "/kubeconfig",
		},
		{
			name:     "UnsetVariableWithDefault",
			input:    "${KINDPLANE_TEST_UNSET:-/home/dev}/kubeconfig",
			expected: "/home/dev/kubeconfig",
		},
		{
			name:     "SetVariableBeatsDefault",
			input:    "${KINDPLANE_TEST_DIR:-/home/dev}",
			envVars:  map[string]string{"KINDPLANE_TEST_DIR": "/tmp/kp"},
			expected: "/tmp/kp",
		},
		{
			name:     "ExplicitEmptyDefault",
			input:    "${KINDPLANE_TEST_UNSET:-}end",
			expected: "end",
		},
		{
			name:     "MultiplePlaceholders",
			input:    "${KINDPLANE_TEST_A}-${KINDPLANE_TEST_B}",
			envVars:  map[string]string{"KINDPLANE_TEST_A": "one", "KINDPLANE_TEST_B": "two"},
			expected: "one-two",
		},
		{
			name:     "BareDollarIsLeftAlone",
			input:    "$KINDPLANE_TEST_DIR",
			envVars:  map[string]string{"KINDPLANE_TEST_DIR": "/tmp/kp"},
			expected: "$KINDPLANE_TEST_DIR",
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			for key, value := range testCase.envVars {
				t.Setenv(key, value)
			}

			assert.Equal(t, testCase.expected, envvar.Expand(testCase.input))
		})
	}
}
