package client

import (
	olmclientset "github.com/operator-framework/operator-lifecycle-manager/pkg/api/client/clientset/versioned"

	apiextensionsclientset "k8s.io/apiextensions-apiserver/pkg/client/clientset/clientset"
	"k8s.io/client-go/discovery"
	"k8s.io/client-go/dynamic"
)

// TestClientConfig holds the sub-clients for constructing a test client.
type TestClientConfig struct {
	Dynamic       dynamic.Interface
	Discovery     discovery.DiscoveryInterface
	APIExtensions apiextensionsclientset.Interface
	OLM           olmclientset.Interface
}

// NewForTesting creates a Client for use in tests. Only the sub-clients
// needed by the test have to be populated.
func NewForTesting(cfg TestClientConfig) *Client {
	return &Client{
		Dynamic:       cfg.Dynamic,
		Discovery:     cfg.Discovery,
		APIExtensions: cfg.APIExtensions,
		OLM:           cfg.OLM,
	}
}
