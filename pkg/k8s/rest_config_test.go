package k8s_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devantler-tech/kindplane/pkg/k8s"
)

const validKubeconfig = `apiVersion: v1
kind: Config
clusters:
- cluster:
    server: https://127.0.0.1:6443
  name: test-cluster
contexts:
- context:
    cluster: test-cluster
    user: test-user
  name: test-context
current-context: test-context
users:
- name: test-user
  user:
    token: fake-token
`

func writeKubeconfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "kubeconfig")

	err := os.WriteFile(path, []byte(content), 0o600)
	require.NoError(t, err)

	return path
}

func TestBuildRESTConfig_EmptyKubeconfig(t *testing.T) {
	t.Parallel()

	config, err := k8s.BuildRESTConfig("")

	require.Error(t, err)
	assert.Nil(t, config)
	assert.ErrorIs(t, err, k8s.ErrKubeconfigPathEmpty)
}

func TestBuildRESTConfig_NonExistentPath(t *testing.T) {
	t.Parallel()

	config, err := k8s.BuildRESTConfig("/nonexistent/path/to/kubeconfig")

	require.Error(t, err)
	assert.Nil(t, config)
	assert.Contains(t, err.Error(), "failed to load kubeconfig")
}

func TestBuildRESTConfig_ExpandsHomePath(t *testing.T) {
	t.Parallel()

	home, err := os.UserHomeDir()
	require.NoError(t, err)

	config, err := k8s.BuildRESTConfig("~/kindplane-missing-dir/kubeconfig")

	require.Error(t, err)
	assert.Nil(t, config)
	assert.Contains(t, err.Error(), filepath.Join(home, "kindplane-missing-dir", "kubeconfig"))
}

func TestBuildRESTConfig_InvalidContent(t *testing.T) {
	t.Parallel()

	path := writeKubeconfig(t, "this is not valid yaml {{{")

	config, err := k8s.BuildRESTConfig(path)

	require.Error(t, err)
	assert.Nil(t, config)
	assert.Contains(t, err.Error(), "failed to load kubeconfig")
}

func TestBuildRESTConfig_ValidKubeconfig(t *testing.T) {
	t.Parallel()

	path := writeKubeconfig(t, validKubeconfig)

	config, err := k8s.BuildRESTConfig(path)

	require.NoError(t, err)
	require.NotNil(t, config)
	assert.Equal(t, "https://127.0.0.1:6443", config.Host)
}

func TestNewClientset_EmptyKubeconfig(t *testing.T) {
	t.Parallel()

	clientset, err := k8s.NewClientset("")

	require.Error(t, err)
	assert.Nil(t, clientset)
	assert.ErrorIs(t, err, k8s.ErrKubeconfigPathEmpty)
}

func TestNewClientset_ValidKubeconfig(t *testing.T) {
	t.Parallel()

	path := writeKubeconfig(t, validKubeconfig)

	clientset, err := k8s.NewClientset(path)

	require.NoError(t, err)
	assert.NotNil(t, clientset)
}
