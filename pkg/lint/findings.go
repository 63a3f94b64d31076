package lint

import (
	"errors"
	"fmt"
	"sort"

	"github.com/zdtsw-forking/odh-gitops/pkg/graph"
	"github.com/zdtsw-forking/odh-gitops/pkg/resolver"
)

// Finding codes.
const (
	CodeCycle               = "cycle"
	CodeUnknownReference    = "unknown-reference"
	CodeDisabledButRequired = "disabled-but-required"
)

// Finding is a single lint diagnostic about the configuration graph.
type Finding struct {
	Severity Severity `json:"severity"`
	Code     string   `json:"code"`

	// Subject is the qualified node the finding is about, e.g.
	// "dependency/certManager" or "component/kserve".
	Subject string `json:"subject"`

	Message string `json:"message"`
}

// Analyze inspects a validated configuration and reports findings:
//
//   - Critical: a cycle in the dependency reference graph
//   - Warning: a dependencies entry referencing a name absent from the
//     top-level dependency set (resolves as "not required")
//   - Info: a dependency forced off while an active component or service
//     requires it (the operator is expected to pre-exist)
//
// Findings are sorted by severity, then subject.
func Analyze(cfg *graph.Config) []Finding {
	findings := make([]Finding, 0, 8)

	findings = append(findings, cycleFindings(cfg)...)
	findings = append(findings, unknownReferenceFindings(cfg)...)
	findings = append(findings, disabledButRequiredFindings(cfg)...)

	sort.SliceStable(findings, func(i, j int) bool {
		if findings[i].Severity != findings[j].Severity {
			return severityRank(findings[i].Severity) < severityRank(findings[j].Severity)
		}

		return findings[i].Subject < findings[j].Subject
	})

	return findings
}

func severityRank(s Severity) int {
	switch s {
	case SeverityCritical:
		return 0
	case SeverityWarning:
		return 1
	default:
		return 2
	}
}

// cycleFindings runs a full resolution and reports any cycle it trips over.
func cycleFindings(cfg *graph.Config) []Finding {
	_, err := resolver.New(cfg).Resolve()
	if err == nil {
		return nil
	}

	var cycleErr *resolver.CycleError
	if !errors.As(err, &cycleErr) {
		return nil
	}

	return []Finding{{
		Severity: SeverityCritical,
		Code:     CodeCycle,
		Subject:  "dependency/" + cycleErr.Path[0],
		Message:  cycleErr.Error(),
	}}
}

// unknownReferenceFindings reports dependencies entries whose target is not
// a known dependency, from all three origins.
func unknownReferenceFindings(cfg *graph.Config) []Finding {
	findings := make([]Finding, 0, 4)

	report := func(origin, owner, target string) {
		findings = append(findings, Finding{
			Severity: SeverityWarning,
			Code:     CodeUnknownReference,
			Subject:  origin + "/" + owner,
			Message:  fmt.Sprintf("%s %q references unknown dependency %q; treated as not required", origin, owner, target),
		})
	}

	for _, name := range cfg.ComponentNames() {
		for _, target := range sortedKeys(cfg.Components[name].Dependencies) {
			if _, ok := cfg.Dependencies[target]; !ok {
				report("component", name, target)
			}
		}
	}

	for _, name := range cfg.ServiceNames() {
		for _, target := range sortedKeys(cfg.Services[name].Dependencies) {
			if _, ok := cfg.Dependencies[target]; !ok {
				report("service", name, target)
			}
		}
	}

	for _, name := range cfg.DependencyNames() {
		for _, target := range sortedKeys(cfg.Dependencies[name].Dependencies) {
			if _, ok := cfg.Dependencies[target]; !ok {
				report("dependency", name, target)
			}
		}
	}

	return findings
}

// disabledButRequiredFindings reports dependencies forced off while an
// active component or service still lists them.
func disabledButRequiredFindings(cfg *graph.Config) []Finding {
	findings := make([]Finding, 0, 2)

	for _, name := range cfg.DependencyNames() {
		if cfg.Dependencies[name].Mode() != graph.EnableNever {
			continue
		}

		requirers := make([]string, 0, 2)

		for _, componentName := range cfg.ComponentNames() {
			component := cfg.Components[componentName]
			if component.Active() && component.Dependencies[name] {
				requirers = append(requirers, "component/"+componentName)
			}
		}

		for _, serviceName := range cfg.ServiceNames() {
			service := cfg.Services[serviceName]
			if service.Active() && service.Dependencies[name] {
				requirers = append(requirers, "service/"+serviceName)
			}
		}

		if len(requirers) == 0 {
			continue
		}

		findings = append(findings, Finding{
			Severity: SeverityInfo,
			Code:     CodeDisabledButRequired,
			Subject:  "dependency/" + name,
			Message: fmt.Sprintf("dependency %q is disabled but required by %v; the operator is expected to already exist on the cluster",
				name, requirers),
		})
	}

	return findings
}

func sortedKeys(m map[string]bool) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}

	sort.Strings(keys)

	return keys
}
