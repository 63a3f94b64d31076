package version

import (
	"context"
	"fmt"

	"github.com/spf13/pflag"

	"k8s.io/cli-runtime/pkg/genericiooptions"

	"github.com/zdtsw-forking/odh-gitops/pkg/cmd"
	"github.com/zdtsw-forking/odh-gitops/pkg/printer"
	printerjson "github.com/zdtsw-forking/odh-gitops/pkg/printer/json"
	printeryaml "github.com/zdtsw-forking/odh-gitops/pkg/printer/yaml"
	"github.com/zdtsw-forking/odh-gitops/pkg/util/iostreams"
)

const flagDescOutput = "Output format (table, json, yaml)"

// Verify Command implements cmd.Command interface at compile time.
var _ cmd.Command = (*Command)(nil)

// Command contains the version command configuration.
type Command struct {
	IO *iostreams.IOStreams

	// OutputFormat specifies the output format (table, json, yaml).
	OutputFormat printer.OutputFormat
}

// NewCommand creates a new Command with defaults.
func NewCommand(streams genericiooptions.IOStreams) *Command {
	return &Command{
		IO:           iostreams.New(streams.In, streams.Out, streams.ErrOut),
		OutputFormat: printer.Table,
	}
}

// AddFlags registers command-specific flags with the provided FlagSet.
func (c *Command) AddFlags(fs *pflag.FlagSet) {
	fs.VarP(&c.OutputFormat, "output", "o", flagDescOutput)
}

// Complete populates derived fields and performs pre-validation setup.
func (c *Command) Complete() error {
	return nil
}

// Validate checks that all required options are valid.
func (c *Command) Validate() error {
	return c.OutputFormat.Validate()
}

// Run prints the version information.
func (c *Command) Run(_ context.Context) error {
	info := Get()

	switch c.OutputFormat {
	case printer.JSON:
		return printerjson.NewRenderer(printerjson.WithWriter[Info](c.IO.Out)).Render(info)
	case printer.YAML:
		return printeryaml.NewRenderer(printeryaml.WithWriter[Info](c.IO.Out)).Render(info)
	case printer.Table:
		c.IO.Fprintf("version %s (commit %s, built %s, %s)", info.Version, info.Commit, info.Date, info.Go)

		return nil
	default:
		return fmt.Errorf("invalid output format: %s", c.OutputFormat)
	}
}
