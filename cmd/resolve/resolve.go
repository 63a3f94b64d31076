package resolve

import (
	"fmt"

	"github.com/spf13/cobra"

	"k8s.io/cli-runtime/pkg/genericclioptions"
	"k8s.io/cli-runtime/pkg/genericiooptions"

	resolvepkg "github.com/zdtsw-forking/odh-gitops/pkg/resolve"
)

const (
	cmdName  = "resolve"
	cmdShort = "Resolve which operator dependencies should be installed"
)

const cmdLong = `
Resolves the dependency graph declared in the values files and reports,
for every dependency, whether it should be installed and why.

A dependency is installed when it is explicitly enabled, or when it is
set to auto and required by an active component, an active service, or
another installable dependency. An explicit "false" always wins, even
when something requires the dependency.
`

const cmdExample = `
  # Resolve the default values.yaml
  odh-deps resolve

  # Layer an environment override on top of the base values
  odh-deps resolve -f values.yaml -f values-prod.yaml

  # Explain a single dependency
  odh-deps resolve --dependency certManager -o yaml

  # Overlay component states from the live DataScienceCluster
  odh-deps resolve --from-cluster
`

// AddCommand adds the resolve command to the root command.
func AddCommand(root *cobra.Command, flags *genericclioptions.ConfigFlags) {
	streams := genericiooptions.IOStreams{
		In:     root.InOrStdin(),
		Out:    root.OutOrStdout(),
		ErrOut: root.ErrOrStderr(),
	}

	command := resolvepkg.NewCommand(streams)
	command.ConfigFlags = flags

	cmd := &cobra.Command{
		Use:           cmdName,
		Short:         cmdShort,
		Long:          cmdLong,
		Example:       cmdExample,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := command.Complete(); err != nil {
				return fmt.Errorf("completing command: %w", err)
			}

			if err := command.Validate(); err != nil {
				return fmt.Errorf("validating command: %w", err)
			}

			return command.Run(cmd.Context())
		},
	}

	command.AddFlags(cmd.Flags())

	root.AddCommand(cmd)
}
