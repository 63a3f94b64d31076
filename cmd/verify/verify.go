package verify

import (
	"fmt"

	"github.com/spf13/cobra"

	"k8s.io/cli-runtime/pkg/genericclioptions"
	"k8s.io/cli-runtime/pkg/genericiooptions"

	verifypkg "github.com/zdtsw-forking/odh-gitops/pkg/verify"
)

const (
	cmdName  = "verify"
	cmdShort = "Wait until the operators of installable dependencies are ready"
)

const cmdLong = `
Resolves the dependency graph and waits until every installable
dependency's operator Subscription reports a CSV in phase Succeeded.
Dependencies whose install block declares a minimum version are also
checked against the installed CSV version.

Dependencies without a subscription in their install block are skipped.
`

const cmdExample = `
  # Wait for all installable operators with the defaults
  odh-deps verify -f values.yaml

  # Tighter budget for CI
  odh-deps verify -f values.yaml --timeout 5m --interval 2s

  # Machine-readable statuses
  odh-deps verify -f values.yaml -o json
`

// AddCommand adds the verify command to the root command.
func AddCommand(root *cobra.Command, flags *genericclioptions.ConfigFlags) {
	streams := genericiooptions.IOStreams{
		In:     root.InOrStdin(),
		Out:    root.OutOrStdout(),
		ErrOut: root.ErrOrStderr(),
	}

	command := verifypkg.NewCommand(streams)
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
