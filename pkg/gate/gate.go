// Package gate wraps per-dependency manifest trees in the resolver's
// install decisions: only manifests of dependencies that resolve to
// install are emitted.
package gate

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"k8s.io/apimachinery/pkg/runtime/schema"
	"sigs.k8s.io/yaml"

	"github.com/zdtsw-forking/odh-gitops/pkg/resolver"
)

// APIChecker probes whether the cluster serves a group/version/kind.
// Typically backed by the discovery client; tests use a stub.
type APIChecker interface {
	HasKind(gvk schema.GroupVersionKind) (bool, error)
}

// SkippedDoc records a manifest document withheld from the output because
// its kind is not served yet. The bundle converges over multiple rendering
// passes, so this is a warning rather than a failure.
type SkippedDoc struct {
	Dependency string `json:"dependency"`
	File       string `json:"file"`
	Kind       string `json:"kind"`
	APIVersion string `json:"apiVersion"`
}

// Result summarizes one render pass.
type Result struct {
	// Rendered lists the dependencies whose manifests were emitted.
	Rendered []string `json:"rendered"`
	// Skipped lists documents withheld pending CRD availability.
	Skipped []SkippedDoc `json:"skipped,omitempty"`
}

// Gate renders the manifest tree for a set of resolved decisions.
type Gate struct {
	manifestsDir string
	checker      APIChecker
}

// Option configures a Gate.
type Option func(*Gate)

// WithAPIChecker enables per-document API probing. Documents whose kind is
// not served are skipped instead of rendered.
func WithAPIChecker(checker APIChecker) Option {
	return func(g *Gate) {
		g.checker = checker
	}
}

// New creates a Gate over a manifest tree laid out as
// <dir>/<dependency>/*.yaml.
func New(manifestsDir string, opts ...Option) *Gate {
	g := &Gate{manifestsDir: manifestsDir}

	for _, opt := range opts {
		opt(g)
	}

	return g
}

// Render writes the manifests of every installable dependency in the report
// to out as one multi-document YAML stream, in report order.
func (g *Gate) Render(report *resolver.Report, out io.Writer) (*Result, error) {
	result := &Result{
		Rendered: make([]string, 0, len(report.Decisions)),
	}

	first := true

	for _, decision := range report.Decisions {
		if !decision.Install {
			continue
		}

		docs, skipped, err := g.collect(decision.Name)
		if err != nil {
			return nil, err
		}

		result.Skipped = append(result.Skipped, skipped...)

		if len(docs) == 0 {
			continue
		}

		result.Rendered = append(result.Rendered, decision.Name)

		for _, doc := range docs {
			if !first {
				if _, err := io.WriteString(out, "---\n"); err != nil {
					return nil, fmt.Errorf("writing manifest stream: %w", err)
				}
			}

			first = false

			if _, err := out.Write(doc); err != nil {
				return nil, fmt.Errorf("writing manifest stream: %w", err)
			}
		}
	}

	return result, nil
}

// collect loads and filters all manifest documents for one dependency.
// A missing manifest directory means the dependency ships no resources.
func (g *Gate) collect(name string) ([][]byte, []SkippedDoc, error) {
	dir := filepath.Join(g.manifestsDir, name)

	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil, nil
		}

		return nil, nil, fmt.Errorf("reading manifests for dependency %q: %w", name, err)
	}

	files := make([]string, 0, len(entries))

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		if ext := filepath.Ext(entry.Name()); ext != ".yaml" && ext != ".yml" {
			continue
		}

		files = append(files, entry.Name())
	}

	sort.Strings(files)

	docs := make([][]byte, 0, len(files))
	skipped := make([]SkippedDoc, 0)

	for _, file := range files {
		data, err := os.ReadFile(filepath.Join(dir, file))
		if err != nil {
			return nil, nil, fmt.Errorf("reading manifest %s for dependency %q: %w", file, name, err)
		}

		for _, doc := range splitDocs(data) {
			keep, skip, err := g.filter(name, file, doc)
			if err != nil {
				return nil, nil, err
			}

			if skip != nil {
				skipped = append(skipped, *skip)

				continue
			}

			if keep {
				docs = append(docs, doc)
			}
		}
	}

	return docs, skipped, nil
}

// filter decides whether a single document is emitted, skipped pending CRD
// availability, or dropped as empty.
func (g *Gate) filter(dependency, file string, doc []byte) (bool, *SkippedDoc, error) {
	var typeMeta struct {
		APIVersion string `json:"apiVersion"`
		Kind       string `json:"kind"`
	}

	if err := yaml.Unmarshal(doc, &typeMeta); err != nil {
		return false, nil, fmt.Errorf("parsing manifest %s for dependency %q: %w", file, dependency, err)
	}

	if typeMeta.Kind == "" {
		return false, nil, nil
	}

	if g.checker == nil {
		return true, nil, nil
	}

	gv, err := schema.ParseGroupVersion(typeMeta.APIVersion)
	if err != nil {
		return false, nil, fmt.Errorf("parsing apiVersion in manifest %s for dependency %q: %w", file, dependency, err)
	}

	served, err := g.checker.HasKind(gv.WithKind(typeMeta.Kind))
	if err != nil {
		return false, nil, fmt.Errorf("probing %s/%s for dependency %q: %w", typeMeta.APIVersion, typeMeta.Kind, dependency, err)
	}

	if !served {
		return false, &SkippedDoc{
			Dependency: dependency,
			File:       file,
			Kind:       typeMeta.Kind,
			APIVersion: typeMeta.APIVersion,
		}, nil
	}

	return true, nil, nil
}

// splitDocs splits a YAML stream on document separators, dropping blank
// documents. Good enough for manifest files; separators inside block
// scalars are not a concern in this tree.
func splitDocs(data []byte) [][]byte {
	parts := strings.Split(string(data), "\n---")

	docs := make([][]byte, 0, len(parts))

	for i, part := range parts {
		if i == 0 {
			part = strings.TrimPrefix(part, "---\n")
		}

		trimmed := strings.TrimSpace(part)
		if trimmed == "" {
			continue
		}

		doc := []byte(trimmed + "\n")
		docs = append(docs, bytes.TrimLeft(doc, "\n"))
	}

	return docs
}
