package main

import (
	"os"

	"github.com/spf13/cobra"

	"k8s.io/cli-runtime/pkg/genericclioptions"

	"github.com/zdtsw-forking/odh-gitops/cmd/gate"
	"github.com/zdtsw-forking/odh-gitops/cmd/lint"
	"github.com/zdtsw-forking/odh-gitops/cmd/resolve"
	"github.com/zdtsw-forking/odh-gitops/cmd/verify"
	"github.com/zdtsw-forking/odh-gitops/cmd/version"
)

func main() {
	flags := genericclioptions.NewConfigFlags(true)

	cmd := &cobra.Command{
		Use:   "odh-deps",
		Short: "Dependency resolver for ODH/RHOAI GitOps bundles",
	}

	version.AddCommand(cmd, flags)
	resolve.AddCommand(cmd, flags)
	lint.AddCommand(cmd, flags)
	gate.AddCommand(cmd, flags)
	verify.AddCommand(cmd, flags)

	if err := cmd.Execute(); err != nil {
		if _, writeErr := os.Stderr.WriteString(err.Error() + "\n"); writeErr != nil {
			os.Exit(1)
		}
		os.Exit(1)
	}
}
