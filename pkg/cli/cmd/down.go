package cmd

import (
	"github.com/spf13/cobra"

	runtime "github.com/devantler-tech/kindplane/pkg/di"
)

// NewDownCmd wires the down command using the shared runtime container.
func NewDownCmd(runtimeContainer *runtime.Runtime) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "down",
		Short: "Remove Crossplane and optionally delete the kind cluster",
		Long: "Remove the Crossplane packages and control plane from the cluster. " +
			"By default the kind cluster itself is kept; pass --delete-cluster to " +
			"remove it too, and --force-clean to also delete the package custom " +
			"resource definitions.",
		SilenceUsage: true,
	}

	binder := newConfigBinder()
	binder.bindCommonFlags(cmd)
	binder.bindDownFlags(cmd)

	cmd.RunE = runtime.RunEWithRuntime(
		runtimeContainer,
		runtime.WithBootstrapperFactory(
			func(cmd *cobra.Command, _ runtime.Injector, factory runtime.BootstrapperFactory) error {
				return handleDownRunE(cmd, binder, factory)
			},
		),
	)

	return cmd
}

// handleDownRunE loads the configuration, builds the bootstrapper, and runs
// the teardown flow.
func handleDownRunE(
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

	return bootstrapper.Down(cmd.Context())
}
