package cmd

import (
	"github.com/spf13/cobra"

	runtime "github.com/devantler-tech/kindplane/pkg/di"
)

// NewUpCmd wires the up command using the shared runtime container.
func NewUpCmd(runtimeContainer *runtime.Runtime) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "up",
		Short: "Provision the kind cluster and install Crossplane with its packages",
		Long: "Provision a local kind cluster, install the Crossplane control plane, " +
			"and install the provider and function packages, waiting for each to " +
			"report healthy. Rerunning after a partial failure resumes the bootstrap.",
		SilenceUsage: true,
	}

	binder := newConfigBinder()
	binder.bindCommonFlags(cmd)
	binder.bindUpFlags(cmd)

	cmd.RunE = runtime.RunEWithRuntime(
		runtimeContainer,
		runtime.WithBootstrapperFactory(
			func(cmd *cobra.Command, _ runtime.Injector, factory runtime.BootstrapperFactory) error {
				return handleUpRunE(cmd, binder, factory)
			},
		),
	)

	return cmd
}

// handleUpRunE loads the configuration, builds the bootstrapper, and runs
// the up flow.
func handleUpRunE(
	cmd *cobra.Command,
	binder *configBinder,
	factory runtime.BootstrapperFactory,
) error {
	config, err := binder.loadConfig(cmd)
	if err != nil {
		return err
	}

	bootstrapper, err := factory(config, cmd.OutOrStdout())
	if err != nil {
		return err
	}

	return bootstrapper.Up(cmd.Context())
}
