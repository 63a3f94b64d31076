package lint

import (
	"context"
	"fmt"

	"github.com/spf13/pflag"

	"k8s.io/cli-runtime/pkg/genericiooptions"

	"github.com/zdtsw-forking/odh-gitops/pkg/cmd"
	"github.com/zdtsw-forking/odh-gitops/pkg/constants"
	"github.com/zdtsw-forking/odh-gitops/pkg/graph"
	"github.com/zdtsw-forking/odh-gitops/pkg/printer"
	"github.com/zdtsw-forking/odh-gitops/pkg/util/iostreams"
)

// Verify Command implements cmd.Command interface at compile time.
var _ cmd.Command = (*Command)(nil)

// Command contains the lint command configuration.
type Command struct {
	IO *iostreams.IOStreams

	// ValuesFiles are the values files to load, in override order.
	ValuesFiles []string

	// OutputFormat specifies the output format (table, json, yaml).
	OutputFormat printer.OutputFormat

	// FailOnCritical exits with non-zero code if critical findings are detected.
	FailOnCritical bool

	// FailOnWarning exits with non-zero code if warning findings are detected.
	FailOnWarning bool
}

// NewCommand creates a new Command with defaults.
func NewCommand(streams genericiooptions.IOStreams) *Command {
	return &Command{
		IO:             iostreams.New(streams.In, streams.Out, streams.ErrOut),
		ValuesFiles:    []string{constants.DefaultValuesFile},
		OutputFormat:   printer.Table,
		FailOnCritical: true,
	}
}

// AddFlags registers command-specific flags with the provided FlagSet.
func (c *Command) AddFlags(fs *pflag.FlagSet) {
	fs.StringSliceVarP(&c.ValuesFiles, "values", "f", c.ValuesFiles, flagDescValues)
	fs.VarP(&c.OutputFormat, "output", "o", flagDescOutput)
	fs.BoolVar(&c.FailOnCritical, "fail-on-critical", c.FailOnCritical, flagDescFailOnCritical)
	fs.BoolVar(&c.FailOnWarning, "fail-on-warning", c.FailOnWarning, flagDescFailOnWarning)
}

// Complete populates derived fields and performs pre-validation setup.
func (c *Command) Complete() error {
	return nil
}

// Validate checks that all required options are valid.
func (c *Command) Validate() error {
	if len(c.ValuesFiles) == 0 {
		return fmt.Errorf("at least one values file is required")
	}

	return c.OutputFormat.Validate()
}

// Run loads the configuration, analyzes it, and prints the findings.
// Schema violations abort before analysis; severity thresholds decide the
// exit status.
func (c *Command) Run(_ context.Context) error {
	cfg, err := graph.Load(c.ValuesFiles...)
	if err != nil {
		return err
	}

	findings := Analyze(cfg)

	if err := c.printFindings(findings); err != nil {
		return err
	}

	criticals := 0
	warnings := 0

	for _, finding := range findings {
		switch finding.Severity {
		case SeverityCritical:
			criticals++
		case SeverityWarning:
			warnings++
		}
	}

	if c.FailOnCritical && criticals > 0 {
		return fmt.Errorf("found %d critical finding(s)", criticals)
	}

	if c.FailOnWarning && warnings > 0 {
		return fmt.Errorf("found %d warning finding(s)", warnings)
	}

	return nil
}
