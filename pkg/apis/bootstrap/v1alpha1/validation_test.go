package v1alpha1_test

import (
	"strings"
	"testing"

	"github.com/devantler-tech/kindplane/pkg/apis/bootstrap/v1alpha1"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate_Defaults(t *testing.T) {
	t.Parallel()

	require.NoError(t, v1alpha1.NewBootstrap().Validate())
}

func TestValidate_ClusterName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		clusterName string
		wantErr     error
	}{
		{name: "empty", clusterName: "", wantErr: v1alpha1.ErrClusterNameRequired},
		{name: "uppercase", clusterName: "Crossplane", wantErr: v1alpha1.ErrClusterNameInvalid},
		{name: "leading digit", clusterName: "1crossplane", wantErr: v1alpha1.ErrClusterNameInvalid},
		{name: "trailing hyphen", clusterName: "crossplane-", wantErr: v1alpha1.ErrClusterNameInvalid},
		{name: "underscores", clusterName: "cross_plane", wantErr: v1alpha1.ErrClusterNameInvalid},
		{
			name:        "too long",
			clusterName: "c" + strings.Repeat("x", v1alpha1.ClusterNameMaxLength),
			wantErr:     v1alpha1.ErrClusterNameTooLong,
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			bootstrap := v1alpha1.NewBootstrap(v1alpha1.WithClusterName(testCase.clusterName))

			require.ErrorIs(t, bootstrap.Validate(), testCase.wantErr)
		})
	}
}

func TestValidate_ClusterName_Valid(t *testing.T) {
	t.Parallel()

	for _, name := range []string{"demo", "crossplane-dev", "a", "c1"} {
		require.NoError(t, v1alpha1.ValidateClusterName(name), "name %q should be valid", name)
	}
}

func TestValidate_RequiredFields(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		option  v1alpha1.Option
		wantErr error
	}{
		{name: "node image", option: v1alpha1.WithNodeImage(""), wantErr: v1alpha1.ErrNodeImageRequired},
		{name: "kubeconfig", option: v1alpha1.WithKubeconfig(""), wantErr: v1alpha1.ErrKubeconfigRequired},
		{
			name:    "crossplane version",
			option:  v1alpha1.WithCrossplaneVersion(""),
			wantErr: v1alpha1.ErrCrossplaneVersionRequired,
		},
		{
			name:    "provider version",
			option:  v1alpha1.WithProviderVersion(""),
			wantErr: v1alpha1.ErrPackageVersionRequired,
		},
		{
			name:    "wait timeout",
			option:  v1alpha1.WithWaitTimeout(v1alpha1.WaitDuration{}),
			wantErr: v1alpha1.ErrWaitTimeoutRequired,
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			bootstrap := v1alpha1.NewBootstrap(testCase.option)

			require.ErrorIs(t, bootstrap.Validate(), testCase.wantErr)
		})
	}
}

func TestValidate_SemanticVersions(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		option  v1alpha1.Option
		wantErr error
	}{
		{
			name:    "crossplane version garbage",
			option:  v1alpha1.WithCrossplaneVersion("latest"),
			wantErr: v1alpha1.ErrCrossplaneVersionInvalid,
		},
		{
			name:    "provider version garbage",
			option:  v1alpha1.WithProviderVersion("one.two"),
			wantErr: v1alpha1.ErrPackageVersionInvalid,
		},
		{
			name:    "function version garbage",
			option:  v1alpha1.WithAutoReadyVersion("v0..4"),
			wantErr: v1alpha1.ErrPackageVersionInvalid,
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			bootstrap := v1alpha1.NewBootstrap(testCase.option)

			require.ErrorIs(t, bootstrap.Validate(), testCase.wantErr)
		})
	}
}

func TestValidate_ReportsAllProblems(t *testing.T) {
	t.Parallel()

	bootstrap := v1alpha1.NewBootstrap(
		v1alpha1.WithClusterName(""),
		v1alpha1.WithNodeImage(""),
		v1alpha1.WithCrossplaneVersion("latest"),
	)

	err := bootstrap.Validate()

	require.Error(t, err)
	assert.ErrorIs(t, err, v1alpha1.ErrClusterNameRequired)
	assert.ErrorIs(t, err, v1alpha1.ErrNodeImageRequired)
	assert.ErrorIs(t, err, v1alpha1.ErrCrossplaneVersionInvalid)
}
