package resolve_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"k8s.io/cli-runtime/pkg/genericiooptions"

	"github.com/zdtsw-forking/odh-gitops/pkg/printer"
	"github.com/zdtsw-forking/odh-gitops/pkg/resolve"

	. "github.com/onsi/gomega"
)

const kserveValues = `
components:
  kserve:
    managementState: Managed
    dependencies:
      certManager: true
      customMetricsAutoscaler: false
dependencies:
  certManager:
    enabled: auto
  customMetricsAutoscaler:
    enabled: auto
`

func newCommand(t *testing.T, values string) (*resolve.Command, *bytes.Buffer) {
	t.Helper()

	path := filepath.Join(t.TempDir(), "values.yaml")
	if err := os.WriteFile(path, []byte(values), 0o600); err != nil {
		t.Fatal(err)
	}

	out := &bytes.Buffer{}
	command := resolve.NewCommand(genericiooptions.IOStreams{
		In:     &bytes.Buffer{},
		Out:    out,
		ErrOut: &bytes.Buffer{},
	})
	command.ValuesFiles = []string{path}

	return command, out
}

func TestRun_TableOutput(t *testing.T) {
	g := NewWithT(t)
	ctx := t.Context()

	command, out := newCommand(t, kserveValues)

	g.Expect(command.Complete()).To(Succeed())
	g.Expect(command.Validate()).To(Succeed())
	g.Expect(command.Run(ctx)).To(Succeed())

	g.Expect(out.String()).To(ContainSubstring("certManager"))
	g.Expect(out.String()).To(ContainSubstring("required"))
	g.Expect(out.String()).To(ContainSubstring("component/kserve"))
	g.Expect(out.String()).To(ContainSubstring("customMetricsAutoscaler"))
	g.Expect(out.String()).To(ContainSubstring("not-required"))
}

func TestRun_JSONOutput(t *testing.T) {
	g := NewWithT(t)
	ctx := t.Context()

	command, out := newCommand(t, kserveValues)
	command.OutputFormat = printer.JSON

	g.Expect(command.Complete()).To(Succeed())
	g.Expect(command.Validate()).To(Succeed())
	g.Expect(command.Run(ctx)).To(Succeed())

	g.Expect(out.String()).To(ContainSubstring(`"name": "certManager"`))
	g.Expect(out.String()).To(ContainSubstring(`"install": true`))
}

func TestRun_SingleDependency(t *testing.T) {
	g := NewWithT(t)
	ctx := t.Context()

	command, out := newCommand(t, kserveValues)
	command.OutputFormat = printer.YAML
	command.DependencyName = "certManager"

	g.Expect(command.Complete()).To(Succeed())
	g.Expect(command.Validate()).To(Succeed())
	g.Expect(command.Run(ctx)).To(Succeed())

	g.Expect(out.String()).To(ContainSubstring("name: certManager"))
	g.Expect(out.String()).ToNot(ContainSubstring("customMetricsAutoscaler"))
}

func TestRun_UnknownDependency(t *testing.T) {
	g := NewWithT(t)
	ctx := t.Context()

	command, _ := newCommand(t, kserveValues)
	command.DependencyName = "ghost"

	g.Expect(command.Complete()).To(Succeed())
	g.Expect(command.Validate()).To(Succeed())

	err := command.Run(ctx)
	g.Expect(err).To(HaveOccurred())
	g.Expect(err.Error()).To(ContainSubstring("unknown dependency"))
}

func TestValidate_NoValuesFiles(t *testing.T) {
	g := NewWithT(t)

	command, _ := newCommand(t, kserveValues)
	command.ValuesFiles = nil

	g.Expect(command.Validate()).ToNot(Succeed())
}

func TestValidate_BadOutputFormat(t *testing.T) {
	g := NewWithT(t)

	command, _ := newCommand(t, kserveValues)
	command.OutputFormat = printer.OutputFormat("xml")

	g.Expect(command.Validate()).ToNot(Succeed())
}
