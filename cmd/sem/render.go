package main

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"sem/internal/model"
)

var changeColors = map[model.ChangeType]*color.Color{
	model.ChangeAdded:    color.New(color.FgGreen),
	model.ChangeModified: color.New(color.FgYellow),
	model.ChangeDeleted:  color.New(color.FgRed),
	model.ChangeMoved:    color.New(color.FgBlue),
	model.ChangeRenamed:  color.New(color.FgCyan),
}

var changeSigils = map[model.ChangeType]string{
	model.ChangeAdded:    "+",
	model.ChangeModified: "~",
	model.ChangeDeleted:  "-",
	model.ChangeMoved:    ">",
	model.ChangeRenamed:  "r",
}

// renderDiff prints the human-readable change listing, grouped by file in
// the order the orchestrator emitted them.
func renderDiff(w io.Writer, result *model.DiffResult, scopeLabel string) {
	if result.Summary.Total == 0 {
		fmt.Fprintf(w, "no semantic changes (%s)\n", scopeLabel)
		return
	}

	fmt.Fprintf(w, "semantic diff (%s)\n\n", scopeLabel)

	lastFile := ""
	for _, change := range result.Changes {
		if change.FilePath != lastFile {
			fmt.Fprintf(w, "%s\n", color.New(color.Bold).Sprint(change.FilePath))
			lastFile = change.FilePath
		}

		c := changeColors[change.ChangeType]
		line := fmt.Sprintf("  %s %s %s", changeSigils[change.ChangeType],
			change.EntityType, change.EntityName)
		if change.OldFilePath != "" {
			line += fmt.Sprintf(" (from %s)", change.OldFilePath)
		}
		fmt.Fprintln(w, c.Sprint(line))
	}

	s := result.Summary
	fmt.Fprintf(w, "\n%d files, %d changes: %d added, %d modified, %d deleted, %d moved, %d renamed\n",
		s.FileCount, s.Total, s.Added, s.Modified, s.Deleted, s.Moved, s.Renamed)
}
