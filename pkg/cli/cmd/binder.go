package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/devantler-tech/kindplane/pkg/apis/bootstrap/v1alpha1"
	"github.com/devantler-tech/kindplane/pkg/cli/ui/errorhandler"
	"github.com/devantler-tech/kindplane/pkg/utils/envvar"
)

// envPrefix namespaces the environment variables that override flags.
const envPrefix = "KINDPLANE"

const waitFlagName = "wait"

// configBinder registers command flags, binds them to KINDPLANE_ environment
// variables, and resolves the effective Bootstrap configuration with flag
// over environment over default precedence.
type configBinder struct {
	viper     *viper.Viper
	resolvers []func() (v1alpha1.Option, error)
}

func newConfigBinder() *configBinder {
	return &configBinder{viper: newEnvViper()}
}

// bindCommonFlags registers the flags shared by the up and down commands.
func (b *configBinder) bindCommonFlags(cmd *cobra.Command) {
	flags := cmd.Flags()

	b.bindString(flags, "name", "n", v1alpha1.DefaultClusterName,
		"Name of the kind cluster", v1alpha1.WithClusterName)
	b.bindString(flags, "kubeconfig", "", v1alpha1.DefaultKubeconfig,
		"Path to the kubeconfig file", v1alpha1.WithKubeconfig)
	b.bindWaitTimeout(flags)
	b.bindBool(flags, "dry-run", "",
		"Log intended actions without changing anything", v1alpha1.WithDryRun)
	b.bindBool(flags, "yes", "y",
		"Answer confirmation prompts with yes", v1alpha1.WithAssumeYes)
}

// bindUpFlags registers the flags only the up command accepts.
func (b *configBinder) bindUpFlags(cmd *cobra.Command) {
	flags := cmd.Flags()

	b.bindString(flags, "node-image", "", v1alpha1.DefaultNodeImage,
		"Node image for the kind cluster", v1alpha1.WithNodeImage)
	b.bindString(flags, "crossplane-version", "", v1alpha1.DefaultCrossplaneVersion,
		"Crossplane Helm chart version", v1alpha1.WithCrossplaneVersion)
	b.bindString(flags, "provider-version", "", v1alpha1.DefaultProviderVersion,
		"provider-aws-s3 package version", v1alpha1.WithProviderVersion)
	b.bindString(flags, "function-patch-and-transform-version", "",
		v1alpha1.DefaultPatchAndTransformVersion,
		"function-patch-and-transform package version", v1alpha1.WithPatchAndTransformVersion)
	b.bindString(flags, "function-auto-ready-version", "", v1alpha1.DefaultAutoReadyVersion,
		"function-auto-ready package version", v1alpha1.WithAutoReadyVersion)
	b.bindBool(flags, "skip-cluster", "",
		"Skip cluster lifecycle and install into the current kubeconfig context",
		v1alpha1.WithSkipCluster)
	b.bindBool(flags, "recreate", "",
		"Delete an existing cluster and create a fresh one", v1alpha1.WithRecreate)
}

// bindDownFlags registers the flags only the down command accepts.
func (b *configBinder) bindDownFlags(cmd *cobra.Command) {
	flags := cmd.Flags()

	b.bindBool(flags, "delete-cluster", "",
		"Delete the kind cluster after cleaning up Crossplane", v1alpha1.WithDeleteCluster)
	b.bindBool(flags, "force-clean", "",
		"Delete the Crossplane package custom resource definitions",
		v1alpha1.WithForceClean)
}

// loadConfig resolves the effective configuration and validates it. Flag and
// environment errors surface as usage errors. The inherited persistent
// verbose flag is bound late since it only joins the command's flag set at
// execution time.
func (b *configBinder) loadConfig(cmd *cobra.Command) (*v1alpha1.Bootstrap, error) {
	if verbose := cmd.Flags().Lookup(VerboseFlagName); verbose != nil {
		_ = b.viper.BindPFlag(VerboseFlagName, verbose)
	}

	options := make([]v1alpha1.Option, 0, len(b.resolvers)+1)

	for _, resolve := range b.resolvers {
		option, err := resolve()
		if err != nil {
			return nil, errorhandler.NewUsageError(err)
		}

		options = append(options, option)
	}

	options = append(options, v1alpha1.WithVerbose(b.viper.GetBool(VerboseFlagName)))

	config := v1alpha1.NewBootstrap(options...)

	err := config.Validate()
	if err != nil {
		return nil, errorhandler.NewUsageError(err)
	}

	return config, nil
}

// bindString registers a string flag. The effective value has ${VAR_NAME}
// placeholders expanded, so paths like ${HOME}/.kube/config resolve whether
// they arrive via flag or environment.
func (b *configBinder) bindString(
	flags *pflag.FlagSet,
	name, shorthand, value, usage string,
	option func(string) v1alpha1.Option,
) {
	flags.StringP(name, shorthand, value, usage)
	_ = b.viper.BindPFlag(name, flags.Lookup(name))

	b.resolvers = append(b.resolvers, func() (v1alpha1.Option, error) {
		return option(envvar.Expand(b.viper.GetString(name))), nil
	})
}

func (b *configBinder) bindBool(
	flags *pflag.FlagSet,
	name, shorthand, usage string,
	option func(bool) v1alpha1.Option,
) {
	flags.BoolP(name, shorthand, false, usage)
	_ = b.viper.BindPFlag(name, flags.Lookup(name))

	b.resolvers = append(b.resolvers, func() (v1alpha1.Option, error) {
		return option(b.viper.GetBool(name)), nil
	})
}

// bindWaitTimeout registers the structured minutes duration flag. The
// effective value goes back through the parser so environment overrides get
// the same validation as flag input.
func (b *configBinder) bindWaitTimeout(flags *pflag.FlagSet) {
	wait := v1alpha1.DefaultWaitTimeout()
	flags.Var(&wait, waitFlagName, "Readiness and health wait timeout in minutes, e.g. 10m")
	_ = b.viper.BindPFlag(waitFlagName, flags.Lookup(waitFlagName))

	b.resolvers = append(b.resolvers, func() (v1alpha1.Option, error) {
		parsed, err := v1alpha1.ParseWaitDuration(b.viper.GetString(waitFlagName))
		if err != nil {
			return nil, err
		}

		return v1alpha1.WithWaitTimeout(parsed), nil
	})
}
