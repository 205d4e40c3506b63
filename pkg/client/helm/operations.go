package helm

import (
	"context"
	"fmt"
	"time"

	"github.com/devantler-tech/kindplane/pkg/client/netretry"
)

const (
	// ContextTimeoutBuffer is the additional time added to the Helm timeout
	// to ensure the Go context doesn't cancel prematurely while Helm is
	// still applying chart resources.
	ContextTimeoutBuffer = 5 * time.Minute

	// Retry configuration for chart installation. Transient 429/5xx errors
	// can occur during installs when chart registries are under load.
	chartInstallMaxRetries    = 5
	chartInstallRetryBaseWait = 3 * time.Second
	chartInstallRetryMaxWait  = 30 * time.Second
)

// InstallChartWithRetry attempts to install a chart, retrying on transient
// network errors (429 rate limits, 5xx server errors, connection resets).
func InstallChartWithRetry(
	ctx context.Context,
	client Interface,
	spec *ChartSpec,
	componentName string,
) error {
	retryCfg := netretry.Config{
		MaxAttempts: chartInstallMaxRetries,
		BaseWait:    chartInstallRetryBaseWait,
		MaxWait:     chartInstallRetryMaxWait,
	}

	err := netretry.Do(ctx, retryCfg, func() error {
		_, installErr := client.InstallOrUpgradeChart(ctx, spec)

		//nolint:wrapcheck // the install error is wrapped once below.
		return installErr
	})
	if err != nil {
		return fmt.Errorf("failed to install %s chart: %w", componentName, err)
	}

	return nil
}
