package provider

import (
	"context"
	"fmt"
	"os/exec"

	"github.com/docker/docker/api/types"

	dockerclient "github.com/devantler-tech/kindplane/pkg/client/docker"
)

// Checker verifies a container engine is installed and running.
type Checker interface {
	// Check returns ErrMissingTool when the engine binary is absent and
	// ErrEngineUnresponsive when the daemon does not answer.
	Check(ctx context.Context) error
}

// APIClient is the subset of the Docker API client the checker uses.
type APIClient interface {
	Ping(ctx context.Context) (types.Ping, error)
	Close() error
}

// DockerChecker implements Checker for the Docker engine.
type DockerChecker struct {
	lookPath  func(file string) (string, error)
	newClient func() (APIClient, error)
}

// NewDockerChecker creates a checker backed by the docker binary on PATH and
// the Docker daemon reachable through environment configuration.
func NewDockerChecker() *DockerChecker {
	return &DockerChecker{
		lookPath: exec.LookPath,
		newClient: func() (APIClient, error) {
			return dockerclient.GetDockerClient()
		},
	}
}

// Check verifies the docker binary resolves on PATH and the daemon answers a ping.
func (c *DockerChecker) Check(ctx context.Context) error {
	_, err := c.lookPath("docker")
	if err != nil {
		return fmt.Errorf("%w: docker", ErrMissingTool)
	}

	engineClient, err := c.newClient()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrEngineUnresponsive, err)
	}

	defer func() { _ = engineClient.Close() }()

	_, err = engineClient.Ping(ctx)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrEngineUnresponsive, err)
	}

	return nil
}
