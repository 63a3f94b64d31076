package graph

import (
	"errors"
	"fmt"

	"sigs.k8s.io/controller-runtime/pkg/client"

	"github.com/zdtsw-forking/odh-gitops/pkg/util/jq"
)

// OverlayClusterStates overrides component management states in cfg with the
// states found on a live DataScienceCluster object. The cluster is the source
// of truth for component enablement; values files only carry the default.
// Components absent from the DSC spec are treated as Removed.
//
// The returned Config shares dependency and service entries with cfg; only
// the component map is rebuilt.
func OverlayClusterStates(cfg *Config, dsc client.Object) (*Config, error) {
	if dsc == nil {
		return cfg, nil
	}

	out := &Config{
		Components:   make(map[string]Component, len(cfg.Components)),
		Services:     cfg.Services,
		Dependencies: cfg.Dependencies,
	}

	for _, name := range cfg.ComponentNames() {
		component := cfg.Components[name]

		state, err := clusterManagementState(dsc, name)
		if err != nil {
			return nil, fmt.Errorf("reading cluster state for component %q: %w", name, err)
		}

		component.ManagementState = state
		out.Components[name] = component
	}

	return out, nil
}

// clusterManagementState queries a DSC component's management state.
// name is the lowercase key under spec.components (e.g. "kueue", "kserve").
// "Not configured" and "Removed" are semantically equivalent.
func clusterManagementState(obj client.Object, name string) (ManagementState, error) {
	path := fmt.Sprintf(".spec.components.%s.managementState", name)

	state, err := jq.Query[string](obj, path)
	if err != nil {
		if errors.Is(err, jq.ErrNotFound) {
			return ManagementStateRemoved, nil
		}

		return "", err
	}

	managementState := ManagementState(state)
	if err := managementState.Validate(); err != nil {
		return "", err
	}

	return managementState, nil
}
