package resolve

import (
	"fmt"
	"strings"

	"github.com/fatih/color"

	"github.com/zdtsw-forking/odh-gitops/pkg/printer"
	printerjson "github.com/zdtsw-forking/odh-gitops/pkg/printer/json"
	"github.com/zdtsw-forking/odh-gitops/pkg/printer/table"
	printeryaml "github.com/zdtsw-forking/odh-gitops/pkg/printer/yaml"
	"github.com/zdtsw-forking/odh-gitops/pkg/resolver"
)

const (
	flagDescValues      = "Values file(s) to load; later files override earlier ones"
	flagDescOutput      = "Output format (table, json, yaml)"
	flagDescFromCluster = "Overlay component states from the cluster's DataScienceCluster"
	flagDescDependency  = "Resolve a single dependency instead of the full set"
)

//nolint:gochecknoglobals
var (
	// Table output symbols.
	statusInstall = color.New(color.FgGreen).Sprint("✓")
	statusSkip    = color.New(color.FgRed).Sprint("✗")

	// Table headers.
	tableHeaders = []string{"STATUS", "NAME", "REASON", "REQUIRED BY"}
)

// decisionRow is the table-facing projection of a resolver decision.
type decisionRow struct {
	Status     string
	Name       string
	Reason     string
	RequiredBy string
}

func newDecisionRow(decision resolver.Decision) decisionRow {
	status := statusSkip
	if decision.Install {
		status = statusInstall
	}

	return decisionRow{
		Status:     status,
		Name:       decision.Name,
		Reason:     string(decision.Reason),
		RequiredBy: strings.Join(decision.RequiredBy, ", "),
	}
}

// printReport renders the report in the selected output format.
func (c *Command) printReport(report *resolver.Report) error {
	switch c.OutputFormat {
	case printer.JSON:
		return printerjson.NewRenderer(printerjson.WithWriter[*resolver.Report](c.IO.Out)).Render(report)
	case printer.YAML:
		return printeryaml.NewRenderer(printeryaml.WithWriter[*resolver.Report](c.IO.Out)).Render(report)
	case printer.Table:
		rows := make([]decisionRow, 0, len(report.Decisions))
		for _, decision := range report.Decisions {
			rows = append(rows, newDecisionRow(decision))
		}

		renderer := table.NewRenderer(
			table.WithWriter[decisionRow](c.IO.Out),
			table.WithHeaders[decisionRow](tableHeaders...),
		)

		if err := renderer.AppendAll(rows); err != nil {
			return fmt.Errorf("building decision table: %w", err)
		}

		return renderer.Render()
	default:
		return fmt.Errorf("invalid output format: %s", c.OutputFormat)
	}
}
