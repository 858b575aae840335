package presentation

import (
	"fmt"
	"io"

	"phorg/internal/app"
	"phorg/internal/errors"
)

type Printer struct {
	Writer  io.Writer
	Verbose bool
	DryRun  bool
}

// PrintReport writes one line per item followed by a summary.
func (p Printer) PrintReport(report app.Report) {
	for _, res := range report.Results {
		fmt.Fprintln(p.Writer, p.formatResult(res))
		if p.Verbose {
			for _, warning := range res.Warnings {
				fmt.Fprintf(p.Writer, "  warning: %s\n", warning)
			}
		}
	}

	if len(report.Results) > 0 {
		fmt.Fprintln(p.Writer)
	}
	p.printSummary(report)
}

func (p Printer) formatResult(res app.ItemResult) string {
	switch res.Status {
	case app.StatusImported:
		verb := "Imported"
		if p.DryRun {
			verb = "Would import"
		}
		return fmt.Sprintf("%s %s -> %s", verb, res.Source, res.Destination)
	case app.StatusSkipped:
		return fmt.Sprintf("Skipped %s (already at %s)", res.Source, res.Destination)
	case app.StatusDuplicate:
		return fmt.Sprintf("Skipped %s (content already imported as %s)", res.Source, res.Existing)
	default:
		return fmt.Sprintf("Failed %s: %s: %v", res.Source, errors.KindOf(res.Err), res.Err)
	}
}

func (p Printer) printSummary(report app.Report) {
	verb := "Imported"
	if p.DryRun {
		verb = "Would import"
	}
	fmt.Fprintf(p.Writer, "%s %d photos, skipped %d, failed %d.\n",
		verb, report.Imported, report.Skipped+report.Duplicates, report.Failed)
	if report.Duplicates > 0 {
		fmt.Fprintf(p.Writer, "%d skips were same-content duplicates.\n", report.Duplicates)
	}
}
