package constants

import "k8s.io/apimachinery/pkg/runtime/schema"

// DataScienceClusterGVR identifies the DataScienceCluster custom resource,
// the cluster-side source of truth for component management states.
//
//nolint:gochecknoglobals // shared GVR constant
var DataScienceClusterGVR = schema.GroupVersionResource{
	Group:    "datasciencecluster.opendatahub.io",
	Version:  "v1",
	Resource: "datascienceclusters",
}

// Well-known keys under a dependency's install configuration.
const (
	InstallKeySubscription = "subscription"
	InstallKeyNamespace    = "namespace"
	InstallKeyMinVersion   = "minVersion"
)

// DefaultValuesFile is the values file name looked up when none is given.
const DefaultValuesFile = "values.yaml"
