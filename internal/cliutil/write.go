// Package cliutil provides utilities for CLI operations.
package cliutil

import (
	"fmt"
	"io"
	"os"

	"github.com/erraggy/oasbind/internal/issues"
	"github.com/erraggy/oasbind/internal/severity"
)

// Writef writes formatted output to the writer.
// If the write fails, it logs to stderr (useful for debugging).
func Writef(w io.Writer, format string, args ...any) {
	if _, err := fmt.Fprintf(w, format, args...); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "write error: %v\n", err)
	}
}

// WriteIssues prints one line per issue at or above min, followed by a
// summary line. Nothing is printed for an empty filtered list.
func WriteIssues(w io.Writer, list []issues.Issue, min severity.Severity) {
	shown := issues.Filter(list, min)
	if len(shown) == 0 {
		return
	}
	for _, i := range shown {
		Writef(w, "  %s\n", i.String())
	}
	c := issues.Count(list)
	Writef(w, "%d critical, %d warning(s), %d info\n", c.Critical, c.Warning, c.Info)
}
