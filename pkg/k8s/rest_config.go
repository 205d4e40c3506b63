package k8s

import (
	"errors"
	"fmt"
	"strings"

	"k8s.io/client-go/kubernetes"
	"k8s.io/client-go/rest"
	"k8s.io/client-go/tools/clientcmd"
)

// ErrKubeconfigPathEmpty is returned when kubeconfig path is empty.
var ErrKubeconfigPathEmpty = errors.New("kubeconfig path is empty")

// BuildRESTConfig builds a Kubernetes REST config from a kubeconfig path.
//
// The kubeconfig parameter must be a non-empty path to a valid kubeconfig
// file. A leading ~ is expanded to the user's home directory. The current
// context recorded in that file is used.
//
// Returns ErrKubeconfigPathEmpty if kubeconfig path is empty.
// Returns an error if the kubeconfig cannot be loaded or parsed.
func BuildRESTConfig(kubeconfig string) (*rest.Config, error) {
	if strings.TrimSpace(kubeconfig) == "" {
		return nil, ErrKubeconfigPathEmpty
	}

	expanded, err := ExpandHomePath(kubeconfig)
	if err != nil {
		return nil, fmt.Errorf("failed to expand kubeconfig path: %w", err)
	}

	restConfig, err := clientcmd.BuildConfigFromFlags("", expanded)
	if err != nil {
		return nil, fmt.Errorf("failed to load kubeconfig %s: %w", expanded, err)
	}

	return restConfig, nil
}

// NewClientset creates a Kubernetes clientset from a kubeconfig path.
// This is a convenience function that combines BuildRESTConfig and client creation.
func NewClientset(kubeconfig string) (*kubernetes.Clientset, error) {
	restConfig, err := BuildRESTConfig(kubeconfig)
	if err != nil {
		return nil, fmt.Errorf("failed to build rest config: %w", err)
	}

	clientset, err := kubernetes.NewForConfig(restConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create kubernetes client: %w", err)
	}

	return clientset, nil
}
