package verify

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/pflag"

	"k8s.io/cli-runtime/pkg/genericclioptions"
	"k8s.io/cli-runtime/pkg/genericiooptions"

	"github.com/zdtsw-forking/odh-gitops/pkg/cmd"
	"github.com/zdtsw-forking/odh-gitops/pkg/constants"
	"github.com/zdtsw-forking/odh-gitops/pkg/graph"
	"github.com/zdtsw-forking/odh-gitops/pkg/printer"
	printerjson "github.com/zdtsw-forking/odh-gitops/pkg/printer/json"
	"github.com/zdtsw-forking/odh-gitops/pkg/printer/table"
	printeryaml "github.com/zdtsw-forking/odh-gitops/pkg/printer/yaml"
	"github.com/zdtsw-forking/odh-gitops/pkg/resolver"
	"github.com/zdtsw-forking/odh-gitops/pkg/util/client"
	"github.com/zdtsw-forking/odh-gitops/pkg/util/iostreams"
)

const (
	flagDescValues   = "Values file(s) to load; later files override earlier ones"
	flagDescOutput   = "Output format (table, json, yaml)"
	flagDescTimeout  = "Per-dependency wait budget"
	flagDescInterval = "Poll interval"
)

//nolint:gochecknoglobals
var tableHeaders = []string{"DEPENDENCY", "SUBSCRIPTION", "NAMESPACE", "INSTALLEDCSV", "VERSION"}

// Verify Command implements cmd.Command interface at compile time.
var _ cmd.Command = (*Command)(nil)

// Command contains the verify command configuration.
type Command struct {
	IO          *iostreams.IOStreams
	ConfigFlags *genericclioptions.ConfigFlags

	// ValuesFiles are the values files to load, in override order.
	ValuesFiles []string

	// OutputFormat specifies the output format (table, json, yaml).
	OutputFormat printer.OutputFormat

	// Timeout is the per-dependency wait budget.
	Timeout time.Duration

	// Interval is the poll interval.
	Interval time.Duration

	// client is populated during Complete.
	client *client.Client
}

// NewCommand creates a new Command with defaults.
func NewCommand(streams genericiooptions.IOStreams) *Command {
	return &Command{
		IO:           iostreams.New(streams.In, streams.Out, streams.ErrOut),
		ConfigFlags:  genericclioptions.NewConfigFlags(true),
		ValuesFiles:  []string{constants.DefaultValuesFile},
		OutputFormat: printer.Table,
		Timeout:      DefaultTimeout,
		Interval:     DefaultInterval,
	}
}

// AddFlags registers command-specific flags with the provided FlagSet.
func (c *Command) AddFlags(fs *pflag.FlagSet) {
	fs.StringSliceVarP(&c.ValuesFiles, "values", "f", c.ValuesFiles, flagDescValues)
	fs.VarP(&c.OutputFormat, "output", "o", flagDescOutput)
	fs.DurationVar(&c.Timeout, "timeout", c.Timeout, flagDescTimeout)
	fs.DurationVar(&c.Interval, "interval", c.Interval, flagDescInterval)
}

// Complete populates derived fields and performs pre-validation setup.
func (c *Command) Complete() error {
	kubeClient, err := client.NewClient(c.ConfigFlags)
	if err != nil {
		return fmt.Errorf("failed to create Kubernetes client: %w", err)
	}

	c.client = kubeClient

	return nil
}

// Validate checks that all required options are valid.
func (c *Command) Validate() error {
	if len(c.ValuesFiles) == 0 {
		return fmt.Errorf("at least one values file is required")
	}

	if c.Interval <= 0 || c.Timeout <= 0 {
		return fmt.Errorf("interval and timeout must be positive")
	}

	return c.OutputFormat.Validate()
}

// Run resolves the configuration and waits for every installable
// dependency's operator to report a succeeded CSV.
func (c *Command) Run(ctx context.Context) error {
	cfg, err := graph.Load(c.ValuesFiles...)
	if err != nil {
		return err
	}

	report, err := resolver.New(cfg).Resolve()
	if err != nil {
		return err
	}

	verifier := New(c.client, WithInterval(c.Interval), WithTimeout(c.Timeout))

	statuses, err := verifier.Wait(ctx, cfg, report)
	if err != nil {
		return err
	}

	return c.printStatuses(statuses)
}

func (c *Command) printStatuses(statuses []Status) error {
	switch c.OutputFormat {
	case printer.JSON:
		return printerjson.NewRenderer(printerjson.WithWriter[[]Status](c.IO.Out)).Render(statuses)
	case printer.YAML:
		return printeryaml.NewRenderer(printeryaml.WithWriter[[]Status](c.IO.Out)).Render(statuses)
	case printer.Table:
		renderer := table.NewRenderer(
			table.WithWriter[Status](c.IO.Out),
			table.WithHeaders[Status](tableHeaders...),
		)

		if err := renderer.AppendAll(statuses); err != nil {
			return fmt.Errorf("building status table: %w", err)
		}

		return renderer.Render()
	default:
		return fmt.Errorf("invalid output format: %s", c.OutputFormat)
	}
}
