package graph

import (
	"fmt"
	"os"

	"sigs.k8s.io/yaml"
)

// SchemaError reports a structural violation in a values file: a field
// whose value is outside the recognized enum. It aborts loading rather
// than silently defaulting, so a typo cannot skip an operator install.
type SchemaError struct {
	Kind  string // "component", "service", or "dependency"
	Name  string
	Cause error
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("%s %q: %v", e.Kind, e.Name, e.Cause)
}

func (e *SchemaError) Unwrap() error {
	return e.Cause
}

// Load reads and merges one or more values files into a validated Config.
// Later files win per top-level entry, matching Helm values layering.
func Load(paths ...string) (*Config, error) {
	merged := &Config{}

	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading values file %s: %w", path, err)
		}

		cfg, err := Parse(data)
		if err != nil {
			return nil, fmt.Errorf("parsing values file %s: %w", path, err)
		}

		merge(merged, cfg)
	}

	if err := Validate(merged); err != nil {
		return nil, err
	}

	return merged, nil
}

// Parse decodes a single values document. The result is not validated;
// use Load or call Validate explicitly.
func Parse(data []byte) (*Config, error) {
	cfg := Config{}
	if err := yaml.UnmarshalStrict(data, &cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling values: %w", err)
	}

	return &cfg, nil
}

// Validate checks every enum-typed field in the configuration tree.
// Dangling dependency references are deliberately not an error here;
// they resolve as "not required" and are surfaced by lint instead.
func Validate(cfg *Config) error {
	for _, name := range cfg.ComponentNames() {
		if err := cfg.Components[name].ManagementState.Validate(); err != nil {
			return &SchemaError{Kind: "component", Name: name, Cause: err}
		}
	}

	for _, name := range cfg.ServiceNames() {
		if err := cfg.Services[name].ManagementState.Validate(); err != nil {
			return &SchemaError{Kind: "service", Name: name, Cause: err}
		}
	}

	for _, name := range cfg.DependencyNames() {
		if err := cfg.Dependencies[name].Enabled.Validate(); err != nil {
			return &SchemaError{Kind: "dependency", Name: name, Cause: err}
		}
	}

	return nil
}

// merge overlays src onto dst, entry by entry. Whole entries are replaced
// rather than deep-merged; a later file restating a dependency owns it.
func merge(dst, src *Config) {
	if len(src.Components) > 0 && dst.Components == nil {
		dst.Components = make(map[string]Component, len(src.Components))
	}

	for name, component := range src.Components {
		dst.Components[name] = component
	}

	if len(src.Services) > 0 && dst.Services == nil {
		dst.Services = make(map[string]Service, len(src.Services))
	}

	for name, service := range src.Services {
		dst.Services[name] = service
	}

	if len(src.Dependencies) > 0 && dst.Dependencies == nil {
		dst.Dependencies = make(map[string]Dependency, len(src.Dependencies))
	}

	for name, dependency := range src.Dependencies {
		dst.Dependencies[name] = dependency
	}
}
