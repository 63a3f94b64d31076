// Package resolver decides which operator dependencies must be installed
// for a given values configuration. Each dependency carries a tri-state
// enable switch; forced values short-circuit, and auto is computed from
// reachability over active components, active services, and other
// installable dependencies.
package resolver

import (
	"fmt"
	"sort"
	"strings"

	"github.com/zdtsw-forking/odh-gitops/pkg/graph"
)

// ErrUnknownDependency is returned when ShouldInstall is asked about a name
// absent from the dependency set.
type ErrUnknownDependency struct {
	Name string
}

func (e *ErrUnknownDependency) Error() string {
	return fmt.Sprintf("unknown dependency: %q", e.Name)
}

// CycleError reports a cycle in the dependency reference graph. Cycles have
// no well-defined resolution, so evaluation aborts instead of recursing
// without bound.
type CycleError struct {
	// Path holds the names along the cycle, ending where it closes.
	Path []string
}

func (e *CycleError) Error() string {
	return fmt.Sprintf("cyclic dependency: %s", strings.Join(e.Path, " -> "))
}

// Resolver evaluates install decisions over an immutable configuration.
// It memoizes per-dependency results; build a fresh Resolver for each
// render pass.
type Resolver struct {
	cfg  *graph.Config
	memo map[string]bool
}

// New creates a Resolver over the given configuration. The configuration
// must not be mutated while the Resolver is in use.
func New(cfg *graph.Config) *Resolver {
	return &Resolver{
		cfg:  cfg,
		memo: make(map[string]bool, len(cfg.Dependencies)),
	}
}

// ShouldInstall returns the install decision for a single dependency.
//
// enabled=true wins over everything, enabled=false wins over every
// requirement, and enabled=auto resolves to whether any active component,
// active service, or installable dependency requires the name.
func (r *Resolver) ShouldInstall(name string) (bool, error) {
	return r.resolve(name, nil)
}

// resolve carries the recursion stack for cycle detection. stack holds the
// auto-enabled dependencies currently being evaluated, in visit order.
func (r *Resolver) resolve(name string, stack []string) (bool, error) {
	dependency, ok := r.cfg.Dependencies[name]
	if !ok {
		return false, &ErrUnknownDependency{Name: name}
	}

	switch dependency.Mode() {
	case graph.EnableAlways:
		return true, nil
	case graph.EnableNever:
		return false, nil
	}

	if decision, ok := r.memo[name]; ok {
		return decision, nil
	}

	for i, visited := range stack {
		if visited == name {
			return false, &CycleError{Path: append(append([]string{}, stack[i:]...), name)}
		}
	}

	stack = append(stack, name)

	required, err := r.requiredByDependency(name, stack)
	if err != nil {
		return false, err
	}

	decision := r.requiredByComponent(name) || required || r.requiredByService(name)
	r.memo[name] = decision

	return decision, nil
}

// requiredByComponent reports whether any active component lists name as a
// requirement. Components without an explicit entry do not count.
func (r *Resolver) requiredByComponent(name string) bool {
	for _, component := range r.cfg.Components {
		if component.Active() && component.Dependencies[name] {
			return true
		}
	}

	return false
}

// requiredByService is the same rule over the service collection.
func (r *Resolver) requiredByService(name string) bool {
	for _, service := range r.cfg.Services {
		if service.Active() && service.Dependencies[name] {
			return true
		}
	}

	return false
}

// requiredByDependency reports whether some other dependency that itself
// resolves to install lists name as a requirement. The parent's own decision
// recurses through the full resolution semantics, so a parent activated by a
// service or by a further dependency propagates its requirements too.
func (r *Resolver) requiredByDependency(name string, stack []string) (bool, error) {
	for _, parentName := range r.cfg.DependencyNames() {
		if parentName == name {
			continue
		}

		if !r.cfg.Dependencies[parentName].Dependencies[name] {
			continue
		}

		installed, err := r.resolve(parentName, stack)
		if err != nil {
			return false, err
		}

		if installed {
			return true, nil
		}
	}

	return false, nil
}

// Reason explains a single install decision.
type Reason string

const (
	// ReasonEnabled means the dependency is forced on.
	ReasonEnabled Reason = "enabled"
	// ReasonDisabled means the dependency is forced off.
	ReasonDisabled Reason = "disabled"
	// ReasonRequired means auto resolution found at least one requirer.
	ReasonRequired Reason = "required"
	// ReasonNotRequired means auto resolution found no requirer.
	ReasonNotRequired Reason = "not-required"
)

// Decision is the resolved outcome for one dependency.
type Decision struct {
	Name    string `json:"name"`
	Install bool   `json:"install"`
	Reason  Reason `json:"reason"`

	// RequiredBy lists the requirers found for a ReasonRequired decision,
	// qualified by origin: "component/kserve", "service/monitoring",
	// "dependency/rhcl". Sorted; empty otherwise.
	RequiredBy []string `json:"requiredBy,omitempty"`
}

// Report holds the decisions for every dependency, sorted by name.
type Report struct {
	Decisions []Decision `json:"decisions"`
}

// Decision returns the decision for a named dependency, if present.
func (r *Report) Decision(name string) (Decision, bool) {
	for _, decision := range r.Decisions {
		if decision.Name == name {
			return decision, true
		}
	}

	return Decision{}, false
}

// Resolve evaluates every dependency in the configuration and returns the
// full report. Resolution is order-independent; the report is sorted for
// stable output.
func (r *Resolver) Resolve() (*Report, error) {
	report := &Report{
		Decisions: make([]Decision, 0, len(r.cfg.Dependencies)),
	}

	for _, name := range r.cfg.DependencyNames() {
		install, err := r.ShouldInstall(name)
		if err != nil {
			return nil, fmt.Errorf("resolving dependency %q: %w", name, err)
		}

		decision := Decision{
			Name:    name,
			Install: install,
		}

		switch r.cfg.Dependencies[name].Mode() {
		case graph.EnableAlways:
			decision.Reason = ReasonEnabled
		case graph.EnableNever:
			decision.Reason = ReasonDisabled
		default:
			if install {
				decision.Reason = ReasonRequired
				decision.RequiredBy = r.requirers(name)
			} else {
				decision.Reason = ReasonNotRequired
			}
		}

		report.Decisions = append(report.Decisions, decision)
	}

	return report, nil
}

// requirers collects the qualified names of everything that requires name.
// Only called for dependencies that already resolved to install, so the
// per-parent ShouldInstall lookups below hit the memo.
func (r *Resolver) requirers(name string) []string {
	out := make([]string, 0, 4)

	for _, componentName := range r.cfg.ComponentNames() {
		component := r.cfg.Components[componentName]
		if component.Active() && component.Dependencies[name] {
			out = append(out, "component/"+componentName)
		}
	}

	for _, serviceName := range r.cfg.ServiceNames() {
		service := r.cfg.Services[serviceName]
		if service.Active() && service.Dependencies[name] {
			out = append(out, "service/"+serviceName)
		}
	}

	for _, parentName := range r.cfg.DependencyNames() {
		if parentName == name || !r.cfg.Dependencies[parentName].Dependencies[name] {
			continue
		}

		if installed, err := r.ShouldInstall(parentName); err == nil && installed {
			out = append(out, "dependency/"+parentName)
		}
	}

	sort.Strings(out)

	return out
}
