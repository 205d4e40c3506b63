package cmd

import (
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/devantler-tech/kindplane/pkg/cli/ui/errorhandler"
	runtime "github.com/devantler-tech/kindplane/pkg/di"
)

// VerboseFlagName is the persistent flag enabling debug logging.
const VerboseFlagName = "verbose"

// NewRootCmd creates and returns the root command with version info and subcommands.
func NewRootCmd(version, commit, date string) *cobra.Command {
	runtimeContainer := runtime.NewRuntime()

	cmd := &cobra.Command{
		Use:          "kindplane",
		Short:        "kindplane bootstraps a local kind cluster with Crossplane",
		Long: "kindplane bootstraps a local kind cluster preloaded with the Crossplane " +
			"control plane, the AWS S3 provider, and the patch-and-transform and " +
			"auto-ready composition functions, and tears the installation down again.",
		RunE:         handleRootRunE,
		SilenceUsage: true,
	}

	cmd.Version = fmt.Sprintf("%s (Built on %s from Git SHA %s)", version, date, commit)

	verboseViper := newEnvViper()
	cmd.PersistentFlags().Bool(VerboseFlagName, false, "Enable debug logging")
	_ = verboseViper.BindPFlag(VerboseFlagName, cmd.PersistentFlags().Lookup(VerboseFlagName))

	cmd.PersistentPreRun = func(*cobra.Command, []string) {
		if verboseViper.GetBool(VerboseFlagName) {
			logrus.SetLevel(logrus.DebugLevel)
		}
	}

	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return errorhandler.NewUsageError(err)
	})

	cmd.AddCommand(NewUpCmd(runtimeContainer))
	cmd.AddCommand(NewDownCmd(runtimeContainer))

	return cmd
}

// Execute runs the provided root command and handles errors.
func Execute(cmd *cobra.Command) error {
	executor := errorhandler.NewExecutor()

	err := executor.Execute(cmd)
	if err != nil {
		return fmt.Errorf("command execution failed: %w", err)
	}

	return nil
}

// --- internals ---

// handleRootRunE handles the root command.
func handleRootRunE(cmd *cobra.Command, _ []string) error {
	// The err can safely be ignored, as it can never fail at runtime.
	_ = cmd.Help()

	return nil
}

// newEnvViper returns a viper instance that resolves KINDPLANE_ prefixed
// environment variables for every bound flag, with dashes mapped to
// underscores (--node-image becomes KINDPLANE_NODE_IMAGE).
func newEnvViper() *viper.Viper {
	viperInstance := viper.New()
	viperInstance.SetEnvPrefix(envPrefix)
	viperInstance.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viperInstance.AutomaticEnv()

	return viperInstance
}
