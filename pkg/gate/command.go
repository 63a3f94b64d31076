package gate

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/pflag"

	"k8s.io/cli-runtime/pkg/genericclioptions"
	"k8s.io/cli-runtime/pkg/genericiooptions"

	"github.com/zdtsw-forking/odh-gitops/pkg/cmd"
	"github.com/zdtsw-forking/odh-gitops/pkg/constants"
	"github.com/zdtsw-forking/odh-gitops/pkg/graph"
	"github.com/zdtsw-forking/odh-gitops/pkg/resolver"
	"github.com/zdtsw-forking/odh-gitops/pkg/util/client"
	"github.com/zdtsw-forking/odh-gitops/pkg/util/iostreams"
)

const (
	flagDescValues    = "Values file(s) to load; later files override earlier ones"
	flagDescManifests = "Directory holding per-dependency manifests (<dir>/<dependency>/*.yaml)"
	flagDescProbe     = "Probe the cluster for served kinds and withhold manifests whose CRD is not installed yet"

	// DefaultManifestsDir is the manifest tree rendered by default.
	DefaultManifestsDir = "manifests"
)

// Verify Command implements cmd.Command interface at compile time.
var _ cmd.Command = (*Command)(nil)

// Command contains the gate command configuration. The filtered manifest
// stream goes to stdout; progress and skip warnings go to stderr so the
// output can be piped straight into kubectl apply.
type Command struct {
	IO          *iostreams.IOStreams
	ConfigFlags *genericclioptions.ConfigFlags

	// ValuesFiles are the values files to load, in override order.
	ValuesFiles []string

	// ManifestsDir is the root of the per-dependency manifest tree.
	ManifestsDir string

	// Probe enables live-cluster API probing before emitting documents.
	Probe bool

	// client is populated during Complete when Probe is set.
	client *client.Client
}

// NewCommand creates a new Command with defaults.
func NewCommand(streams genericiooptions.IOStreams) *Command {
	return &Command{
		IO:           iostreams.New(streams.In, streams.Out, streams.ErrOut),
		ConfigFlags:  genericclioptions.NewConfigFlags(true),
		ValuesFiles:  []string{constants.DefaultValuesFile},
		ManifestsDir: DefaultManifestsDir,
	}
}

// AddFlags registers command-specific flags with the provided FlagSet.
func (c *Command) AddFlags(fs *pflag.FlagSet) {
	fs.StringSliceVarP(&c.ValuesFiles, "values", "f", c.ValuesFiles, flagDescValues)
	fs.StringVar(&c.ManifestsDir, "manifests", c.ManifestsDir, flagDescManifests)
	fs.BoolVar(&c.Probe, "probe", false, flagDescProbe)
}

// Complete populates derived fields and performs pre-validation setup.
func (c *Command) Complete() error {
	if !c.Probe {
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

	if c.ManifestsDir == "" {
		return fmt.Errorf("manifests directory is required")
	}

	return nil
}

// Run resolves the configuration and streams the manifests of installable
// dependencies to stdout.
func (c *Command) Run(_ context.Context) error {
	cfg, err := graph.Load(c.ValuesFiles...)
	if err != nil {
		return err
	}

	report, err := resolver.New(cfg).Resolve()
	if err != nil {
		return err
	}

	opts := make([]Option, 0, 1)
	if c.Probe {
		opts = append(opts, WithAPIChecker(c.client))
	}

	result, err := New(c.ManifestsDir, opts...).Render(report, c.IO.Out)
	if err != nil {
		return err
	}

	c.IO.Errorf("rendered %d dependencies: %s", len(result.Rendered), strings.Join(result.Rendered, ", "))

	for _, skipped := range result.Skipped {
		c.IO.Errorf("skipped %s (%s/%s) of dependency %q: kind not served yet",
			skipped.File, skipped.APIVersion, skipped.Kind, skipped.Dependency)
	}

	return nil
}
