package gate_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"k8s.io/apimachinery/pkg/runtime/schema"

	"github.com/zdtsw-forking/odh-gitops/pkg/gate"
	"github.com/zdtsw-forking/odh-gitops/pkg/resolver"

	. "github.com/onsi/gomega"
)

// stubChecker serves only the kinds in its set.
type stubChecker struct {
	served map[string]bool
}

func (s *stubChecker) HasKind(gvk schema.GroupVersionKind) (bool, error) {
	return s.served[gvk.Kind], nil
}

func writeManifest(t *testing.T, dir, dependency, file, content string) {
	t.Helper()

	path := filepath.Join(dir, dependency)
	if err := os.MkdirAll(path, 0o750); err != nil {
		t.Fatal(err)
	}

	if err := os.WriteFile(filepath.Join(path, file), []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
}

func TestRender_FiltersByDecision(t *testing.T) {
	g := NewWithT(t)

	dir := t.TempDir()
	writeManifest(t, dir, "certManager", "subscription.yaml", `
apiVersion: operators.coreos.com/v1alpha1
kind: Subscription
metadata:
  name: cert-manager
`)
	writeManifest(t, dir, "keda", "subscription.yaml", `
apiVersion: operators.coreos.com/v1alpha1
kind: Subscription
metadata:
  name: keda
`)

	report := &resolver.Report{
		Decisions: []resolver.Decision{
			{Name: "certManager", Install: true, Reason: resolver.ReasonRequired},
			{Name: "keda", Install: false, Reason: resolver.ReasonNotRequired},
		},
	}

	out := &bytes.Buffer{}

	result, err := gate.New(dir).Render(report, out)
	g.Expect(err).ToNot(HaveOccurred())

	g.Expect(result.Rendered).To(ConsistOf("certManager"))
	g.Expect(result.Skipped).To(BeEmpty())
	g.Expect(out.String()).To(ContainSubstring("name: cert-manager"))
	g.Expect(out.String()).ToNot(ContainSubstring("name: keda"))
}

func TestRender_MultiDocAndSeparators(t *testing.T) {
	g := NewWithT(t)

	dir := t.TempDir()
	writeManifest(t, dir, "certManager", "resources.yaml", `
apiVersion: v1
kind: Namespace
metadata:
  name: cert-manager-operator
---
apiVersion: operators.coreos.com/v1
kind: OperatorGroup
metadata:
  name: cert-manager-operator
`)
	writeManifest(t, dir, "kueue", "subscription.yaml", `
apiVersion: operators.coreos.com/v1alpha1
kind: Subscription
metadata:
  name: kueue
`)

	report := &resolver.Report{
		Decisions: []resolver.Decision{
			{Name: "certManager", Install: true},
			{Name: "kueue", Install: true},
		},
	}

	out := &bytes.Buffer{}

	result, err := gate.New(dir).Render(report, out)
	g.Expect(err).ToNot(HaveOccurred())

	g.Expect(result.Rendered).To(Equal([]string{"certManager", "kueue"}))

	rendered := out.String()
	g.Expect(rendered).To(ContainSubstring("kind: Namespace"))
	g.Expect(rendered).To(ContainSubstring("kind: OperatorGroup"))
	g.Expect(rendered).To(ContainSubstring("kind: Subscription"))

	// three documents means two separators
	g.Expect(bytes.Count(out.Bytes(), []byte("---"))).To(Equal(2))
}

func TestRender_SkipsUnservedKinds(t *testing.T) {
	g := NewWithT(t)

	dir := t.TempDir()
	writeManifest(t, dir, "certManager", "subscription.yaml", `
apiVersion: operators.coreos.com/v1alpha1
kind: Subscription
metadata:
  name: cert-manager
`)
	writeManifest(t, dir, "certManager", "cr.yaml", `
apiVersion: cert-manager.io/v1
kind: Certificate
metadata:
  name: serving-cert
`)

	report := &resolver.Report{
		Decisions: []resolver.Decision{{Name: "certManager", Install: true}},
	}

	checker := &stubChecker{served: map[string]bool{"Subscription": true}}
	out := &bytes.Buffer{}

	result, err := gate.New(dir, gate.WithAPIChecker(checker)).Render(report, out)
	g.Expect(err).ToNot(HaveOccurred())

	g.Expect(result.Rendered).To(ConsistOf("certManager"))
	g.Expect(result.Skipped).To(HaveLen(1))
	g.Expect(result.Skipped[0].Kind).To(Equal("Certificate"))
	g.Expect(result.Skipped[0].File).To(Equal("cr.yaml"))

	g.Expect(out.String()).To(ContainSubstring("kind: Subscription"))
	g.Expect(out.String()).ToNot(ContainSubstring("kind: Certificate"))
}

func TestRender_MissingManifestDir(t *testing.T) {
	g := NewWithT(t)

	report := &resolver.Report{
		Decisions: []resolver.Decision{{Name: "certManager", Install: true}},
	}

	out := &bytes.Buffer{}

	result, err := gate.New(t.TempDir()).Render(report, out)
	g.Expect(err).ToNot(HaveOccurred())
	g.Expect(result.Rendered).To(BeEmpty())
	g.Expect(out.String()).To(BeEmpty())
}

func TestRender_IgnoresNonYAMLFiles(t *testing.T) {
	g := NewWithT(t)

	dir := t.TempDir()
	writeManifest(t, dir, "certManager", "README.md", "# not a manifest")
	writeManifest(t, dir, "certManager", "subscription.yaml", `
apiVersion: operators.coreos.com/v1alpha1
kind: Subscription
metadata:
  name: cert-manager
`)

	report := &resolver.Report{
		Decisions: []resolver.Decision{{Name: "certManager", Install: true}},
	}

	out := &bytes.Buffer{}

	_, err := gate.New(dir).Render(report, out)
	g.Expect(err).ToNot(HaveOccurred())
	g.Expect(out.String()).ToNot(ContainSubstring("not a manifest"))
}
