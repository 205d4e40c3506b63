package kindprovisioner_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	kindprovisioner "github.com/devantler-tech/kindplane/pkg/svc/provisioner/cluster/kind"
)

func TestNewDefaultProviderAdapter(t *testing.T) {
	t.Parallel()

	adapter := kindprovisioner.NewDefaultProviderAdapter(&bytes.Buffer{})

	assert.NotNil(t, adapter, "adapter should not be nil")
}

func TestDefaultProviderAdapterImplementsInterface(t *testing.T) {
	t.Parallel()

	// Verify that DefaultProviderAdapter implements the KindProvider interface
	var _ kindprovisioner.KindProvider = (*kindprovisioner.DefaultProviderAdapter)(nil)
}
