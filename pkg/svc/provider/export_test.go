package provider

// NewDockerCheckerForTests builds a DockerChecker with injected seams so tests
// can exercise the check logic without a real docker installation.
func NewDockerCheckerForTests(
	lookPath func(file string) (string, error),
	newClient func() (APIClient, error),
) *DockerChecker {
	return &DockerChecker{
		lookPath:  lookPath,
		newClient: newClient,
	}
}
