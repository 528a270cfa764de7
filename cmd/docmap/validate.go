package main

import (
	"fmt"
	"io"

	"github.com/awray/docmap"
)

// Run executes the validate command.
func (c *ValidateCmd) Run(deps *Dependencies) error {
	report, err := deps.Index.Validate(deps.Ctx)
	if err != nil {
		return fail(deps, err)
	}

	if err := emit(deps, report, func(w io.Writer) {
		for _, d := range report.Errors {
			printDiagnostic(w, "error", d)
		}
		for _, d := range report.Warnings {
			printDiagnostic(w, "warning", d)
		}
		if report.Valid {
			fmt.Fprintf(w, "OK: %d warnings\n", len(report.Warnings))
		} else {
			fmt.Fprintf(w, "FAILED: %d errors, %d warnings\n", len(report.Errors), len(report.Warnings))
		}
	}); err != nil {
		return err
	}

	if !report.Valid {
		return fmt.Errorf("validation failed with %d errors", len(report.Errors))
	}
	return nil
}

func printDiagnostic(w io.Writer, severity string, d docmap.Diagnostic) {
	location := d.File
	if d.Line > 0 {
		location = fmt.Sprintf("%s:%d", d.File, d.Line)
	}
	if location != "" {
		fmt.Fprintf(w, "%s [%s] %s: %s\n", severity, d.Type, location, d.Message)
		return
	}
	fmt.Fprintf(w, "%s [%s] %s\n", severity, d.Type, d.Message)
}
