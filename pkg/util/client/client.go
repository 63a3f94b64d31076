package client

import (
	"fmt"

	olmclientset "github.com/operator-framework/operator-lifecycle-manager/pkg/api/client/clientset/versioned"

	apiextensionsclientset "k8s.io/apiextensions-apiserver/pkg/client/clientset/clientset"
	"k8s.io/cli-runtime/pkg/genericclioptions"
	"k8s.io/client-go/discovery"
	"k8s.io/client-go/dynamic"
)

// Client provides access to the Kubernetes clients the resolver CLI needs:
// dynamic reads for the DataScienceCluster, discovery for API probing,
// apiextensions for CRD lookups, and OLM for subscription status.
type Client struct {
	Dynamic       dynamic.Interface
	Discovery     discovery.DiscoveryInterface
	APIExtensions apiextensionsclientset.Interface
	OLM           olmclientset.Interface
}

// NewClient creates a unified client from kubeconfig flags.
func NewClient(configFlags *genericclioptions.ConfigFlags) (*Client, error) {
	restConfig, err := configFlags.ToRESTConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to create REST config: %w", err)
	}

	dynamicClient, err := dynamic.NewForConfig(restConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create dynamic client: %w", err)
	}

	discoveryClient, err := discovery.NewDiscoveryClientForConfig(restConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create discovery client: %w", err)
	}

	apiExtensionsClient, err := apiextensionsclientset.NewForConfig(restConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create apiextensions client: %w", err)
	}

	olmClient, err := olmclientset.NewForConfig(restConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create OLM client: %w", err)
	}

	return &Client{
		Dynamic:       dynamicClient,
		Discovery:     discoveryClient,
		APIExtensions: apiExtensionsClient,
		OLM:           olmClient,
	}, nil
}
