package resolve

import (
	"context"
	"fmt"

	"github.com/spf13/pflag"

	"k8s.io/cli-runtime/pkg/genericclioptions"
	"k8s.io/cli-runtime/pkg/genericiooptions"

	"github.com/zdtsw-forking/odh-gitops/pkg/cmd"
	"github.com/zdtsw-forking/odh-gitops/pkg/constants"
	"github.com/zdtsw-forking/odh-gitops/pkg/graph"
	"github.com/zdtsw-forking/odh-gitops/pkg/printer"
	"github.com/zdtsw-forking/odh-gitops/pkg/resolver"
	"github.com/zdtsw-forking/odh-gitops/pkg/util/client"
	"github.com/zdtsw-forking/odh-gitops/pkg/util/iostreams"
)

// Verify Command implements cmd.Command interface at compile time.
var _ cmd.Command = (*Command)(nil)

// Command contains the resolve command configuration.
type Command struct {
	IO          *iostreams.IOStreams
	ConfigFlags *genericclioptions.ConfigFlags

	// ValuesFiles are the values files to load, in override order.
	ValuesFiles []string

	// OutputFormat specifies the output format (table, json, yaml).
	OutputFormat printer.OutputFormat

	// FromCluster overlays component states from the live DataScienceCluster.
	FromCluster bool

	// DependencyName restricts output to a single dependency.
	DependencyName string

	// client is populated during Complete when FromCluster is set.
	client *client.Client
}

// NewCommand creates a new Command with defaults.
func NewCommand(streams genericiooptions.IOStreams) *Command {
	return &Command{
		IO:           iostreams.New(streams.In, streams.Out, streams.ErrOut),
		ConfigFlags:  genericclioptions.NewConfigFlags(true),
		ValuesFiles:  []string{constants.DefaultValuesFile},
		OutputFormat: printer.Table,
	}
}

// AddFlags registers command-specific flags with the provided FlagSet.
func (c *Command) AddFlags(fs *pflag.FlagSet) {
	fs.StringSliceVarP(&c.ValuesFiles, "values", "f", c.ValuesFiles, flagDescValues)
	fs.VarP(&c.OutputFormat, "output", "o", flagDescOutput)
	fs.BoolVar(&c.FromCluster, "from-cluster", false, flagDescFromCluster)
	fs.StringVar(&c.DependencyName, "dependency", "", flagDescDependency)
}

// Complete populates derived fields and performs pre-validation setup.
func (c *Command) Complete() error {
	if !c.FromCluster {
		return nil
	}

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

	return c.OutputFormat.Validate()
}

// Run loads the configuration, resolves every dependency, and prints the
// resulting decisions.
func (c *Command) Run(ctx context.Context) error {
	cfg, err := c.loadConfig(ctx)
	if err != nil {
		return err
	}

	report, err := resolver.New(cfg).Resolve()
	if err != nil {
		return err
	}

	if c.DependencyName != "" {
		decision, ok := report.Decision(c.DependencyName)
		if !ok {
			return &resolver.ErrUnknownDependency{Name: c.DependencyName}
		}

		report = &resolver.Report{Decisions: []resolver.Decision{decision}}
	}

	return c.printReport(report)
}

// loadConfig loads the values files, optionally overlaying component states
// from the cluster.
func (c *Command) loadConfig(ctx context.Context) (*graph.Config, error) {
	cfg, err := graph.Load(c.ValuesFiles...)
	if err != nil {
		return nil, err
	}

	if !c.FromCluster {
		return cfg, nil
	}

	dsc, err := c.client.GetDataScienceCluster(ctx)
	if err != nil {
		return nil, err
	}

	if dsc == nil {
		c.IO.Errorf("no DataScienceCluster found; using component states from values files")

		return cfg, nil
	}

	return graph.OverlayClusterStates(cfg, dsc)
}
