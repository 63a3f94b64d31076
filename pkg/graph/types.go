package graph

import (
	"encoding/json"
	"fmt"
	"sort"
)

// ManagementState mirrors the DataScienceCluster component state enum.
type ManagementState string

const (
	ManagementStateManaged   ManagementState = "Managed"
	ManagementStateUnmanaged ManagementState = "Unmanaged"
	ManagementStateRemoved   ManagementState = "Removed"
)

// Validate checks if the management state is one of the recognized values.
// An empty state is allowed and treated as Removed.
func (s ManagementState) Validate() error {
	switch s {
	case ManagementStateManaged, ManagementStateUnmanaged, ManagementStateRemoved, "":
		return nil
	default:
		return fmt.Errorf("invalid managementState: %q (must be one of: Managed, Unmanaged, Removed)", string(s))
	}
}

// Active reports whether the state drives dependency enablement.
// Managed and Unmanaged both count; Removed and unset do not.
func (s ManagementState) Active() bool {
	return s == ManagementStateManaged || s == ManagementStateUnmanaged
}

// EnableMode is the tri-state install switch carried by every dependency.
type EnableMode string

const (
	// EnableAlways forces installation regardless of requirers.
	EnableAlways EnableMode = "true"
	// EnableNever suppresses installation even when required; the operator
	// is expected to pre-exist in the target environment.
	EnableNever EnableMode = "false"
	// EnableAuto installs only when some active component, service, or
	// installable dependency requires it. Default when unset.
	EnableAuto EnableMode = "auto"
)

// Validate checks if the enable mode is one of the recognized values.
// An empty mode is allowed and treated as auto.
func (m EnableMode) Validate() error {
	switch m {
	case EnableAlways, EnableNever, EnableAuto, "":
		return nil
	default:
		return fmt.Errorf("invalid enabled value: %q (must be one of: true, false, auto)", string(m))
	}
}

// UnmarshalJSON accepts both YAML booleans (true/false) and the quoted
// string forms ("true"/"false"/"auto"). Helm values files use either.
func (m *EnableMode) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	switch v := raw.(type) {
	case bool:
		if v {
			*m = EnableAlways
		} else {
			*m = EnableNever
		}

		return nil
	case string:
		*m = EnableMode(v)

		return nil
	case nil:
		*m = ""

		return nil
	default:
		return fmt.Errorf("invalid enabled value: %v (type %T)", raw, raw)
	}
}

// Component is a user-facing product feature whose activation state drives
// automatic dependency enablement.
type Component struct {
	// ManagementState controls whether the component is active.
	ManagementState ManagementState `json:"managementState,omitempty"`

	// Dependencies maps dependency names to whether this component needs them.
	// A missing entry means "does not require it"; there is no implicit default.
	Dependencies map[string]bool `json:"dependencies,omitempty"`
}

// Active reports whether the component participates in dependency resolution.
func (c Component) Active() bool {
	return c.ManagementState.Active()
}

// Service is structurally identical to Component but lives in its own
// namespace of names (platform services vs. product components).
type Service struct {
	ManagementState ManagementState `json:"managementState,omitempty"`
	Dependencies    map[string]bool `json:"dependencies,omitempty"`
}

// Active reports whether the service participates in dependency resolution.
func (s Service) Active() bool {
	return s.ManagementState.Active()
}

// Dependency is an installable operator.
type Dependency struct {
	// Enabled is the tri-state install switch. Empty means auto.
	Enabled EnableMode `json:"enabled,omitempty"`

	// Dependencies maps further dependency names this operator itself requires.
	Dependencies map[string]bool `json:"dependencies,omitempty"`

	// Install carries the opaque installation configuration (OLM channel,
	// namespace, subscription, CR spec). Resolution never interprets it
	// beyond the well-known keys used by verify.
	Install map[string]any `json:"install,omitempty"`
}

// Mode returns the effective enable mode, defaulting unset to auto.
func (d Dependency) Mode() EnableMode {
	if d.Enabled == "" {
		return EnableAuto
	}

	return d.Enabled
}

// Config is the full configuration tree consumed by the resolver.
// Names are the only join keys across the three maps.
type Config struct {
	Components   map[string]Component  `json:"components,omitempty"`
	Services     map[string]Service    `json:"services,omitempty"`
	Dependencies map[string]Dependency `json:"dependencies,omitempty"`
}

// DependencyNames returns the dependency names in sorted order.
func (c *Config) DependencyNames() []string {
	names := make([]string, 0, len(c.Dependencies))
	for name := range c.Dependencies {
		names = append(names, name)
	}

	sort.Strings(names)

	return names
}

// ComponentNames returns the component names in sorted order.
func (c *Config) ComponentNames() []string {
	names := make([]string, 0, len(c.Components))
	for name := range c.Components {
		names = append(names, name)
	}

	sort.Strings(names)

	return names
}

// ServiceNames returns the service names in sorted order.
func (c *Config) ServiceNames() []string {
	names := make([]string, 0, len(c.Services))
	for name := range c.Services {
		names = append(names, name)
	}

	sort.Strings(names)

	return names
}
