package lint

import (
	"fmt"

	"github.com/spf13/cobra"

	"k8s.io/cli-runtime/pkg/genericclioptions"
	"k8s.io/cli-runtime/pkg/genericiooptions"

	lintpkg "github.com/zdtsw-forking/odh-gitops/pkg/lint"
)

const (
	cmdName  = "lint"
	cmdShort = "Analyze the dependency graph for structural problems"
)

const cmdLong = `
Analyzes the dependency graph declared in the values files without
touching a cluster.

Findings are reported with a severity level:
  - critical: dependency cycles that make resolution impossible
  - warning:  references to dependencies that are not declared
  - info:     dependencies forced off while something active requires them

By default the command exits non-zero only on critical findings.
`

const cmdExample = `
  # Lint the default values.yaml
  odh-deps lint

  # Lint layered values and fail on warnings too
  odh-deps lint -f values.yaml -f values-prod.yaml --fail-on-warning

  # Machine-readable findings
  odh-deps lint -o json
`

// AddCommand adds the lint command to the root command.
func AddCommand(root *cobra.Command, _ *genericclioptions.ConfigFlags) {
	streams := genericiooptions.IOStreams{
		In:     root.InOrStdin(),
		Out:    root.OutOrStdout(),
		ErrOut: root.ErrOrStderr(),
	}

	command := lintpkg.NewCommand(streams)

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
