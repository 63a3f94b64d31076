package gate

import (
	"fmt"

	"github.com/spf13/cobra"

	"k8s.io/cli-runtime/pkg/genericclioptions"
	"k8s.io/cli-runtime/pkg/genericiooptions"

	gatepkg "github.com/zdtsw-forking/odh-gitops/pkg/gate"
)

const (
	cmdName  = "gate"
	cmdShort = "Render the manifests of installable dependencies"
)

const cmdLong = `
Resolves the dependency graph and streams the manifests of every
installable dependency to stdout as a multi-document YAML stream.
Manifests of dependencies that resolve to "do not install" are withheld.

With --probe the cluster is consulted first and documents whose kind is
not served yet (for example a Certificate before cert-manager installed
its CRDs) are skipped, so a second run can apply them once the operator
is ready.
`

const cmdExample = `
  # Render installable manifests
  odh-deps gate -f values.yaml --manifests manifests/

  # Apply directly, skipping kinds the cluster cannot serve yet
  odh-deps gate -f values.yaml --probe | kubectl apply -f -
`

// AddCommand adds the gate command to the root command.
func AddCommand(root *cobra.Command, flags *genericclioptions.ConfigFlags) {
	streams := genericiooptions.IOStreams{
		In:     root.InOrStdin(),
		Out:    root.OutOrStdout(),
		ErrOut: root.ErrOrStderr(),
	}

	command := gatepkg.NewCommand(streams)
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
