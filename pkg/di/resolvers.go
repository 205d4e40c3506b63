package di

import (
	"fmt"

	"github.com/samber/do/v2"
	"github.com/spf13/cobra"

	"github.com/devantler-tech/kindplane/pkg/svc/bootstrap"
)

// Dependency resolvers.

// ResolveEngineChecker retrieves the container engine checker from the
// injector with consistent error handling.
func ResolveEngineChecker(injector Injector) (bootstrap.EngineChecker, error) {
	checker, err := do.Invoke[bootstrap.EngineChecker](injector)
	if err != nil {
		return nil, fmt.Errorf("resolve engine checker dependency: %w", err)
	}

	return checker, nil
}

// ResolveBootstrapperFactory retrieves the bootstrapper factory from the
// injector with consistent error handling.
func ResolveBootstrapperFactory(injector Injector) (BootstrapperFactory, error) {
	factory, err := do.Invoke[BootstrapperFactory](injector)
	if err != nil {
		return nil, fmt.Errorf("resolve bootstrapper factory dependency: %w", err)
	}

	return factory, nil
}

// Handler decorators.

// WithBootstrapperFactory decorates a handler to automatically resolve the
// bootstrapper factory dependency. This higher-order function simplifies the
// command handlers that build an orchestrator from the parsed configuration.
func WithBootstrapperFactory(
	handler func(cmd *cobra.Command, injector Injector, factory BootstrapperFactory) error,
) func(cmd *cobra.Command, injector Injector) error {
	return func(cmd *cobra.Command, injector Injector) error {
		factory, err := ResolveBootstrapperFactory(injector)
		if err != nil {
			return err
		}

		return handler(cmd, injector, factory)
	}
}
