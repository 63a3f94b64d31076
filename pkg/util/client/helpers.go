package client

import (
	"context"
	"fmt"

	apierrors "k8s.io/apimachinery/pkg/api/errors"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
	"k8s.io/apimachinery/pkg/runtime/schema"

	"github.com/zdtsw-forking/odh-gitops/pkg/constants"
)

// GetDataScienceCluster returns the cluster's DataScienceCluster, or nil if
// none exists (or the CRD is not installed at all).
func (c *Client) GetDataScienceCluster(ctx context.Context) (*unstructured.Unstructured, error) {
	list, err := c.Dynamic.Resource(constants.DataScienceClusterGVR).List(ctx, metav1.ListOptions{})
	if err != nil {
		if apierrors.IsNotFound(err) {
			return nil, nil
		}

		return nil, fmt.Errorf("listing DataScienceClusters: %w", err)
	}

	if len(list.Items) == 0 {
		return nil, nil
	}

	// The operator enforces a singleton; take the first either way.
	return &list.Items[0], nil
}

// HasKind reports whether the cluster serves the given group/version/kind.
// Unknown group/versions are "not served", not an error, so callers can use
// the answer to defer rendering until a later converge pass.
func (c *Client) HasKind(gvk schema.GroupVersionKind) (bool, error) {
	resources, err := c.Discovery.ServerResourcesForGroupVersion(gvk.GroupVersion().String())
	if err != nil {
		if IsUnrecoverableError(err) {
			return false, fmt.Errorf("discovering resources for %s: %w", gvk.GroupVersion(), err)
		}

		// Unknown group/version. Shows up as a NotFound from a live API
		// server and as a plain error from fakes.
		return false, nil
	}

	for _, resource := range resources.APIResources {
		if resource.Kind == gvk.Kind {
			return true, nil
		}
	}

	return false, nil
}
