// Package di wires command handlers to their dependencies through a
// samber/do container. Commands declare what they need through resolvers and
// decorators; tests swap implementations by passing their own modules.
package di

import (
	"github.com/samber/do/v2"
	"github.com/spf13/cobra"
)

// Injector is the dependency container handle passed to modules, resolvers,
// and handlers.
type Injector = do.Injector

// Module registers dependencies on an injector. Nil modules are skipped so
// callers can pass optional modules unconditionally.
type Module func(Injector) error

// Runtime holds the base modules and builds a fresh injector for every
// invocation, so command runs never share container state.
type Runtime struct {
	modules []Module
}

// New constructs a Runtime over the given base modules.
func New(modules ...Module) *Runtime {
	return &Runtime{modules: modules}
}

// Invoke builds a fresh injector, applies the base modules followed by any
// extra modules in order, and runs the handler. The injector is shut down
// when the handler returns.
func (r *Runtime) Invoke(handler func(Injector) error, extraModules ...Module) error {
	injector := do.New()

	defer func() {
		_ = injector.Shutdown()
	}()

	for _, module := range r.modules {
		err := applyModule(injector, module)
		if err != nil {
			return err
		}
	}

	for _, module := range extraModules {
		err := applyModule(injector, module)
		if err != nil {
			return err
		}
	}

	return handler(injector)
}

func applyModule(injector Injector, module Module) error {
	if module == nil {
		return nil
	}

	return module(injector)
}

// RunEWithRuntime adapts an injector-aware handler into a cobra RunE. Each
// command execution gets its own injector through runtime.Invoke.
func RunEWithRuntime(
	runtime *Runtime,
	handler func(cmd *cobra.Command, injector Injector) error,
) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, _ []string) error {
		return runtime.Invoke(func(injector Injector) error {
			return handler(cmd, injector)
		})
	}
}
