// Package commands provides CLI command handlers for oasbind.
package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"go.yaml.in/yaml/v4"

	"github.com/erraggy/oasbind"
	"github.com/erraggy/oasbind/generator"
	"github.com/erraggy/oasbind/internal/cliutil"
	"github.com/erraggy/oasbind/parser"
)

// Output format constants
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// StdinFilePath is the special file path used to indicate reading from stdin.
const StdinFilePath = "-"

// stdin is swapped out by tests.
var stdin io.Reader = os.Stdin

// ValidateOutputFormat validates an output format and returns an error if invalid.
func ValidateOutputFormat(format string) error {
	if format != FormatText && format != FormatJSON && format != FormatYAML {
		return fmt.Errorf("invalid format '%s'. Valid formats: %s, %s, %s", format, FormatText, FormatJSON, FormatYAML)
	}
	return nil
}

// OutputStructured writes data to w in the specified format (json or yaml).
func OutputStructured(w io.Writer, data any, format string) error {
	var out []byte
	var err error

	switch format {
	case FormatJSON:
		out, err = json.MarshalIndent(data, "", "  ")
	case FormatYAML:
		out, err = yaml.Marshal(data)
	default:
		return fmt.Errorf("invalid format for structured output: %s", format)
	}
	if err != nil {
		return fmt.Errorf("marshaling to %s: %w", format, err)
	}

	cliutil.Writef(w, "%s\n", strings.TrimRight(string(out), "\n"))
	return nil
}

// FormatSpecPath returns "<stdin>" for StdinFilePath and the path otherwise.
func FormatSpecPath(specPath string) string {
	if specPath == StdinFilePath {
		return "<stdin>"
	}
	return specPath
}

// NewLogger returns a text slog logger on w, at debug level when verbose.
func NewLogger(w io.Writer, verbose bool) parser.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return parser.NewSlogAdapter(slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})))
}

// SplitList splits a comma separated flag value, dropping empty entries.
func SplitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// SourceOptions returns the generator options that read the document at
// specPath, or from stdin when specPath is StdinFilePath.
func SourceOptions(specPath string) ([]generator.Option, error) {
	if specPath != StdinFilePath {
		return []generator.Option{generator.WithFilePath(specPath)}, nil
	}
	data, err := io.ReadAll(stdin)
	if err != nil {
		return nil, fmt.Errorf("reading stdin: %w", err)
	}
	return []generator.Option{generator.WithBytes(data), generator.WithSourceName("<stdin>")}, nil
}

// LoadConfig returns the configuration at path, or the defaults when path is empty.
func LoadConfig(path string) (*generator.Config, error) {
	if path == "" {
		return generator.DefaultConfig(), nil
	}
	return generator.LoadConfig(path)
}

// OutputSpecHeader writes the common run header.
func OutputSpecHeader(w io.Writer, specPath, version string) {
	cliutil.Writef(w, "oasbind version: %s\n", oasbind.Version())
	cliutil.Writef(w, "Specification: %s\n", FormatSpecPath(specPath))
	cliutil.Writef(w, "OAS Version: %s\n", version)
}
