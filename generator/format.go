package generator

import (
	"bytes"
	"fmt"
	"strings"

	"golang.org/x/tools/imports"

	"github.com/erraggy/oasbind"
	"github.com/erraggy/oasbind/internal/issues"
	"github.com/erraggy/oasbind/internal/severity"
)

// formatOptions formats without touching the import list: the referenced
// backend packages are not resolvable from here.
var formatOptions = &imports.Options{
	Comments:   true,
	TabIndent:  true,
	TabWidth:   8,
	FormatOnly: true,
}

// formatSource gofmts src. When formatting fails the unformatted source is
// kept and a warning is returned so the run still produces output.
func formatSource(filename string, src []byte) ([]byte, []issues.Issue) {
	formatted, err := imports.Process(filename, src, formatOptions)
	if err != nil {
		return src, []issues.Issue{{
			Artifact: filename,
			Message:  "generated source could not be formatted: " + err.Error(),
			Severity: severity.SeverityWarning,
		}}
	}
	return formatted, nil
}

// writeHeader writes the generated-code banner and package clause.
func writeHeader(buf *bytes.Buffer, cfg *Config, pkg string) {
	fmt.Fprintf(buf, "// Code generated by %s. DO NOT EDIT.\n", oasbind.Generator())
	if cfg.Header != "" {
		buf.WriteString("//\n")
		for _, line := range strings.Split(strings.TrimRight(cfg.Header, "\n"), "\n") {
			if line == "" {
				buf.WriteString("//\n")
				continue
			}
			buf.WriteString("// " + line + "\n")
		}
	}
	fmt.Fprintf(buf, "\npackage %s\n\n", pkg)
}
