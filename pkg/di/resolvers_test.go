package di_test

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"testing"

	"github.com/samber/do/v2"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devantler-tech/kindplane/pkg/apis/bootstrap/v1alpha1"
	"github.com/devantler-tech/kindplane/pkg/di"
	"github.com/devantler-tech/kindplane/pkg/svc/bootstrap"
	"github.com/devantler-tech/kindplane/pkg/svc/provider"
)

// Error variable for test cases.
var errHandlerExecutionFailed = errors.New("handler execution failed")

func provideStubFactory(injector di.Injector, factory di.BootstrapperFactory) {
	do.Provide(injector, func(di.Injector) (di.BootstrapperFactory, error) {
		return factory, nil
	})
}

func TestResolveEngineChecker_Success(t *testing.T) {
	t.Parallel()

	injector := do.New()
	do.Provide(injector, func(di.Injector) (bootstrap.EngineChecker, error) {
		return provider.NewMockChecker(), nil
	})

	checker, err := di.ResolveEngineChecker(injector)

	require.NoError(t, err)
	require.NotNil(t, checker, "ResolveEngineChecker should return a non-nil checker")
}

func TestResolveEngineChecker_Error(t *testing.T) {
	t.Parallel()

	injector := do.New()

	checker, err := di.ResolveEngineChecker(injector)

	require.Error(t, err)
	assert.Nil(t, checker)
	assert.Contains(t, err.Error(), "resolve engine checker dependency")
}

func TestResolveBootstrapperFactory_Success(t *testing.T) {
	t.Parallel()

	injector := do.New()
	provideStubFactory(injector, func(*v1alpha1.Bootstrap, io.Writer) (di.Bootstrapper, error) {
		return nil, nil
	})

	factory, err := di.ResolveBootstrapperFactory(injector)

	require.NoError(t, err)
	require.NotNil(t, factory, "ResolveBootstrapperFactory should return a non-nil factory")
}

func TestResolveBootstrapperFactory_Error(t *testing.T) {
	t.Parallel()

	injector := do.New()

	factory, err := di.ResolveBootstrapperFactory(injector)

	require.Error(t, err)
	assert.Nil(t, factory)
	assert.Contains(t, err.Error(), "resolve bootstrapper factory dependency")
}

func TestWithBootstrapperFactory_Success(t *testing.T) {
	t.Parallel()

	injector := do.New()

	factoryCalled := false
	provideStubFactory(injector, func(*v1alpha1.Bootstrap, io.Writer) (di.Bootstrapper, error) {
		factoryCalled = true

		return nil, nil
	})

	handlerCalled := false
	handler := func(_ *cobra.Command, _ di.Injector, factory di.BootstrapperFactory) error {
		handlerCalled = true

		_, err := factory(v1alpha1.NewBootstrap(), &bytes.Buffer{})

		return err
	}

	wrappedHandler := di.WithBootstrapperFactory(handler)
	err := wrappedHandler(&cobra.Command{}, injector)

	require.NoError(t, err)
	assert.True(t, handlerCalled, "Handler should have been called")
	assert.True(t, factoryCalled, "Factory should have been passed through to the handler")
}

func TestWithBootstrapperFactory_HandlerError(t *testing.T) {
	t.Parallel()

	injector := do.New()
	provideStubFactory(injector, func(*v1alpha1.Bootstrap, io.Writer) (di.Bootstrapper, error) {
		return nil, nil
	})

	handler := func(*cobra.Command, di.Injector, di.BootstrapperFactory) error {
		return fmt.Errorf("handler failed: %w", errHandlerExecutionFailed)
	}

	wrappedHandler := di.WithBootstrapperFactory(handler)
	err := wrappedHandler(&cobra.Command{}, injector)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "handler execution failed")
}

func TestWithBootstrapperFactory_ResolveError(t *testing.T) {
	t.Parallel()

	injector := do.New()

	handler := func(*cobra.Command, di.Injector, di.BootstrapperFactory) error {
		return nil
	}

	wrappedHandler := di.WithBootstrapperFactory(handler)
	err := wrappedHandler(&cobra.Command{}, injector)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "resolve bootstrapper factory dependency")
}
