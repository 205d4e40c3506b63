package xpkginstaller

import (
	"fmt"

	apiextensionsv1 "k8s.io/apiextensions-apiserver/pkg/apis/apiextensions/v1"
	"k8s.io/apimachinery/pkg/runtime"
	"k8s.io/client-go/kubernetes"
	"k8s.io/client-go/rest"
	"sigs.k8s.io/controller-runtime/pkg/client"

	"github.com/devantler-tech/kindplane/pkg/k8s"
)

//nolint:gochecknoglobals // Allows mocking REST config for tests
var loadRESTConfig = k8s.BuildRESTConfig

// newPackageClient creates a client for Provider, Function, and
// FunctionRevision resources.
//
//nolint:gochecknoglobals // Allows mocking for tests
var newPackageClient = func(restConfig *rest.Config) (client.Client, error) {
	scheme := runtime.NewScheme()

	err := addPackageTypesToScheme(scheme)
	if err != nil {
		return nil, fmt.Errorf("failed to add package scheme: %w", err)
	}

	packageClient, err := client.New(restConfig, client.Options{Scheme: scheme})
	if err != nil {
		return nil, fmt.Errorf("failed to create package client: %w", err)
	}

	return packageClient, nil
}

// newAPIExtensionsClient creates a client for working with CRDs.
//
//nolint:gochecknoglobals // Allows mocking for tests
var newAPIExtensionsClient = func(restConfig *rest.Config) (client.Client, error) {
	scheme := runtime.NewScheme()

	err := apiextensionsv1.AddToScheme(scheme)
	if err != nil {
		return nil, fmt.Errorf("failed to add apiextensions scheme: %w", err)
	}

	apiextClient, err := client.New(restConfig, client.Options{Scheme: scheme})
	if err != nil {
		return nil, fmt.Errorf("failed to create apiextensions client: %w", err)
	}

	return apiextClient, nil
}

//nolint:gochecknoglobals // Allows mocking the clientset for tests
var newKubernetesClient = func(kubeconfig string) (kubernetes.Interface, error) {
	return k8s.NewClientset(kubeconfig)
}
