package lint

import (
	"fmt"

	"github.com/fatih/color"

	"github.com/zdtsw-forking/odh-gitops/pkg/printer"
	printerjson "github.com/zdtsw-forking/odh-gitops/pkg/printer/json"
	"github.com/zdtsw-forking/odh-gitops/pkg/printer/table"
	printeryaml "github.com/zdtsw-forking/odh-gitops/pkg/printer/yaml"
)

const (
	flagDescValues         = "Values file(s) to load; later files override earlier ones"
	flagDescOutput         = "Output format (table, json, yaml)"
	flagDescFailOnCritical = "Exit with a non-zero code when critical findings are detected"
	flagDescFailOnWarning  = "Exit with a non-zero code when warning findings are detected"
)

//nolint:gochecknoglobals
var (
	// Severity level formatting.
	severityCrit = color.New(color.FgRed).Sprint("critical")
	severityWarn = color.New(color.FgYellow).Add(color.Bold).Sprint("warning")
	severityInfo = color.New(color.FgCyan).Sprint("info")

	// Table headers.
	tableHeaders = []string{"SEVERITY", "CODE", "SUBJECT", "MESSAGE"}
)

func formatSeverity(value any) any {
	switch Severity(fmt.Sprint(value)) {
	case SeverityCritical:
		return severityCrit
	case SeverityWarning:
		return severityWarn
	case SeverityInfo:
		return severityInfo
	default:
		return value
	}
}

// printFindings renders the findings in the selected output format.
func (c *Command) printFindings(findings []Finding) error {
	switch c.OutputFormat {
	case printer.JSON:
		return printerjson.NewRenderer(printerjson.WithWriter[[]Finding](c.IO.Out)).Render(findings)
	case printer.YAML:
		return printeryaml.NewRenderer(printeryaml.WithWriter[[]Finding](c.IO.Out)).Render(findings)
	case printer.Table:
		if len(findings) == 0 {
			c.IO.Fprintf("No findings.")

			return nil
		}

		renderer := table.NewRenderer(
			table.WithWriter[Finding](c.IO.Out),
			table.WithHeaders[Finding](tableHeaders...),
			table.WithFormatter[Finding]("SEVERITY", formatSeverity),
		)

		if err := renderer.AppendAll(findings); err != nil {
			return fmt.Errorf("building findings table: %w", err)
		}

		return renderer.Render()
	default:
		return fmt.Errorf("invalid output format: %s", c.OutputFormat)
	}
}
