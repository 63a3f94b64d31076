package graph_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/zdtsw-forking/odh-gitops/pkg/graph"

	. "github.com/onsi/gomega"
)

func writeValues(t *testing.T, name, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	return path
}

func TestLoad_SingleFile(t *testing.T) {
	g := NewWithT(t)

	path := writeValues(t, "values.yaml", `
components:
  kserve:
    managementState: Managed
    dependencies:
      certManager: true
services:
  monitoring:
    managementState: Removed
dependencies:
  certManager:
    enabled: auto
    install:
      channel: stable-v1
      namespace: cert-manager-operator
`)

	cfg, err := graph.Load(path)
	g.Expect(err).ToNot(HaveOccurred())

	g.Expect(cfg.Components).To(HaveKey("kserve"))
	g.Expect(cfg.Components["kserve"].Active()).To(BeTrue())
	g.Expect(cfg.Components["kserve"].Dependencies).To(HaveKeyWithValue("certManager", true))
	g.Expect(cfg.Services["monitoring"].Active()).To(BeFalse())
	g.Expect(cfg.Dependencies["certManager"].Mode()).To(Equal(graph.EnableAuto))
	g.Expect(cfg.Dependencies["certManager"].Install).To(HaveKeyWithValue("channel", "stable-v1"))
}

func TestLoad_MergeLastWins(t *testing.T) {
	g := NewWithT(t)

	base := writeValues(t, "values.yaml", `
dependencies:
  certManager:
    enabled: auto
  kueue:
    enabled: auto
`)
	override := writeValues(t, "overrides.yaml", `
dependencies:
  certManager:
    enabled: "false"
`)

	cfg, err := graph.Load(base, override)
	g.Expect(err).ToNot(HaveOccurred())

	g.Expect(cfg.Dependencies["certManager"].Mode()).To(Equal(graph.EnableNever))
	g.Expect(cfg.Dependencies["kueue"].Mode()).To(Equal(graph.EnableAuto))
}

func TestLoad_BooleanEnabledForms(t *testing.T) {
	g := NewWithT(t)

	path := writeValues(t, "values.yaml", `
dependencies:
  certManager:
    enabled: true
  kueue:
    enabled: "false"
  keda:
    enabled: false
`)

	cfg, err := graph.Load(path)
	g.Expect(err).ToNot(HaveOccurred())

	g.Expect(cfg.Dependencies["certManager"].Mode()).To(Equal(graph.EnableAlways))
	g.Expect(cfg.Dependencies["kueue"].Mode()).To(Equal(graph.EnableNever))
	g.Expect(cfg.Dependencies["keda"].Mode()).To(Equal(graph.EnableNever))
}

func TestLoad_UnsetEnabledDefaultsToAuto(t *testing.T) {
	g := NewWithT(t)

	path := writeValues(t, "values.yaml", `
dependencies:
  certManager:
    install:
      channel: stable-v1
`)

	cfg, err := graph.Load(path)
	g.Expect(err).ToNot(HaveOccurred())
	g.Expect(cfg.Dependencies["certManager"].Mode()).To(Equal(graph.EnableAuto))
}

func TestLoad_InvalidEnabled(t *testing.T) {
	g := NewWithT(t)

	path := writeValues(t, "values.yaml", `
dependencies:
  certManager:
    enabled: maybe
`)

	_, err := graph.Load(path)
	g.Expect(err).To(HaveOccurred())

	schemaErr := &graph.SchemaError{}
	g.Expect(err).To(BeAssignableToTypeOf(schemaErr))
	g.Expect(err.Error()).To(ContainSubstring("certManager"))
	g.Expect(err.Error()).To(ContainSubstring("invalid enabled value"))
}

func TestLoad_InvalidManagementState(t *testing.T) {
	g := NewWithT(t)

	path := writeValues(t, "values.yaml", `
components:
  kserve:
    managementState: Enabled
`)

	_, err := graph.Load(path)
	g.Expect(err).To(HaveOccurred())
	g.Expect(err.Error()).To(ContainSubstring(`component "kserve"`))
}

func TestLoad_MissingFile(t *testing.T) {
	g := NewWithT(t)

	_, err := graph.Load(filepath.Join(t.TempDir(), "nope.yaml"))
	g.Expect(err).To(HaveOccurred())
}

func TestParse_UnknownField(t *testing.T) {
	g := NewWithT(t)

	_, err := graph.Parse([]byte(`
dependencys:
  certManager:
    enabled: auto
`))
	g.Expect(err).To(HaveOccurred())
}
