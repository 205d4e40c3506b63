package helm

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	helmv4cli "helm.sh/helm/v4/pkg/cli"
	helmv4getter "helm.sh/helm/v4/pkg/getter"
	repov1 "helm.sh/helm/v4/pkg/repo/v1"

	"github.com/devantler-tech/kindplane/pkg/client/netretry"
)

const (
	repoDirMode  = 0o750
	repoFileMode = 0o640

	// Retry configuration for repository index downloads. External Helm
	// repositories may experience transient 5xx errors.
	repoIndexMaxRetries    = 3
	repoIndexRetryBaseWait = 2 * time.Second
	repoIndexRetryMaxWait  = 15 * time.Second
)

var (
	errRepositoryEntryRequired = errors.New("helm: repository entry is required")
	errRepositoryNameRequired  = errors.New("helm: repository name is required")
	errRepositoryCacheUnset    = errors.New("helm: repository cache path is not set")
	errRepositoryConfigUnset   = errors.New("helm: repository config path is not set")
)

// AddRepository registers a Helm repository for the current client instance
// and downloads its index. The timeout parameter controls how long HTTP
// requests for the repository index can take.
func (c *Client) AddRepository(
	ctx context.Context,
	entry *RepositoryEntry,
	timeout time.Duration,
) error {
	requestErr := validateRepositoryRequest(ctx, entry)
	if requestErr != nil {
		return requestErr
	}

	settings := c.settings

	repoFile, err := ensureRepositoryConfig(settings)
	if err != nil {
		return err
	}

	repositoryFile := loadOrInitRepositoryFile(repoFile)
	repoEntry := convertRepositoryEntry(entry)

	repoCache, err := ensureRepositoryCache(settings)
	if err != nil {
		return err
	}

	chartRepository, err := newChartRepository(settings, repoEntry, repoCache, timeout)
	if err != nil {
		return err
	}

	downloadErr := downloadRepositoryIndex(ctx, chartRepository)
	if downloadErr != nil {
		return downloadErr
	}

	repositoryFile.Update(repoEntry)

	writeErr := repositoryFile.WriteFile(repoFile, repoFileMode)
	if writeErr != nil {
		return fmt.Errorf("write repository file: %w", writeErr)
	}

	return nil
}

// UpdateRepositories refreshes the index files of every locally configured
// repository, mirroring `helm repo update`.
func (c *Client) UpdateRepositories(ctx context.Context, timeout time.Duration) error {
	ctxErr := ctx.Err()
	if ctxErr != nil {
		return fmt.Errorf("update repositories context cancelled: %w", ctxErr)
	}

	settings := c.settings

	repoFile, err := ensureRepositoryConfig(settings)
	if err != nil {
		return err
	}

	repositoryFile := loadOrInitRepositoryFile(repoFile)

	repoCache, err := ensureRepositoryCache(settings)
	if err != nil {
		return err
	}

	for _, repoEntry := range repositoryFile.Repositories {
		chartRepository, repoErr := newChartRepository(settings, repoEntry, repoCache, timeout)
		if repoErr != nil {
			return repoErr
		}

		downloadErr := downloadRepositoryIndex(ctx, chartRepository)
		if downloadErr != nil {
			return fmt.Errorf("update repository %q: %w", repoEntry.Name, downloadErr)
		}
	}

	return nil
}

func validateRepositoryRequest(ctx context.Context, entry *RepositoryEntry) error {
	if entry == nil {
		return errRepositoryEntryRequired
	}

	if entry.Name == "" {
		return errRepositoryNameRequired
	}

	ctxErr := ctx.Err()
	if ctxErr != nil {
		return fmt.Errorf("add repository context cancelled: %w", ctxErr)
	}

	return nil
}

func ensureRepositoryConfig(settings *helmv4cli.EnvSettings) (string, error) {
	repoFile := settings.RepositoryConfig

	envRepoConfig := os.Getenv("HELM_REPOSITORY_CONFIG")
	if envRepoConfig != "" {
		repoFile = envRepoConfig
		settings.RepositoryConfig = envRepoConfig
	}

	if repoFile == "" {
		return "", errRepositoryConfigUnset
	}

	repoDir := filepath.Dir(repoFile)

	mkdirErr := os.MkdirAll(repoDir, repoDirMode)
	if mkdirErr != nil {
		return "", fmt.Errorf("create repository directory: %w", mkdirErr)
	}

	return repoFile, nil
}

func loadOrInitRepositoryFile(repoFile string) *repov1.File {
	repositoryFile, err := repov1.LoadFile(repoFile)
	if err != nil {
		return repov1.NewFile()
	}

	return repositoryFile
}

func convertRepositoryEntry(entry *RepositoryEntry) *repov1.Entry {
	return &repov1.Entry{
		Name:                  entry.Name,
		URL:                   entry.URL,
		Username:              entry.Username,
		Password:              entry.Password,
		CertFile:              entry.CertFile,
		KeyFile:               entry.KeyFile,
		CAFile:                entry.CaFile,
		InsecureSkipTLSVerify: entry.InsecureSkipTLSverify,
	}
}

func ensureRepositoryCache(settings *helmv4cli.EnvSettings) (string, error) {
	repoCache := settings.RepositoryCache

	if envCache := os.Getenv("HELM_REPOSITORY_CACHE"); envCache != "" {
		repoCache = envCache
		settings.RepositoryCache = envCache
	}

	if repoCache == "" {
		return "", errRepositoryCacheUnset
	}

	mkdirCacheErr := os.MkdirAll(repoCache, repoDirMode)
	if mkdirCacheErr != nil {
		return "", fmt.Errorf("create repository cache directory: %w", mkdirCacheErr)
	}

	return repoCache, nil
}

func newChartRepository(
	settings *helmv4cli.EnvSettings,
	repoEntry *repov1.Entry,
	repoCache string,
	timeout time.Duration,
) (*repov1.ChartRepository, error) {
	// getter.WithTimeout bounds index downloads so a slow repository server
	// cannot hang the bootstrap.
	getterOpts := []helmv4getter.Option{}
	if timeout > 0 {
		getterOpts = append(getterOpts, helmv4getter.WithTimeout(timeout))
	}

	chartRepository, err := repov1.NewChartRepository(
		repoEntry,
		helmv4getter.All(settings, getterOpts...),
	)
	if err != nil {
		return nil, fmt.Errorf("create chart repository: %w", err)
	}

	chartRepository.CachePath = repoCache

	return chartRepository, nil
}

func downloadRepositoryIndex(ctx context.Context, chartRepository *repov1.ChartRepository) error {
	retryCfg := netretry.Config{
		MaxAttempts: repoIndexMaxRetries,
		BaseWait:    repoIndexRetryBaseWait,
		MaxWait:     repoIndexRetryMaxWait,
	}

	//nolint:wrapcheck // netretry.Do returns the already-wrapped download error.
	return netretry.Do(ctx, retryCfg, func() error {
		indexPath, err := chartRepository.DownloadIndexFile()
		if err != nil {
			return fmt.Errorf("failed to download repository index file: %w", err)
		}

		_, statErr := os.Stat(indexPath)
		if statErr != nil {
			return fmt.Errorf("failed to verify repository index file: %w", statErr)
		}

		return nil
	})
}
