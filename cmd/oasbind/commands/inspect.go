package commands

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/erraggy/oasbind/generator"
	"github.com/erraggy/oasbind/internal/cliutil"
	"github.com/erraggy/oasbind/internal/severity"
)

// InspectFlags contains flags for the inspect command
type InspectFlags struct {
	Config  string
	Format  string
	Caps    string
	Tag     string
	Verbose bool
}

// SetupInspectFlags creates and configures a FlagSet for the inspect command.
func SetupInspectFlags() (*flag.FlagSet, *InspectFlags) {
	fs := flag.NewFlagSet("inspect", flag.ContinueOnError)
	flags := &InspectFlags{}

	fs.StringVar(&flags.Config, "c", "", "path to an oasbind YAML configuration file")
	fs.StringVar(&flags.Config, "config", "", "path to an oasbind YAML configuration file")
	fs.StringVar(&flags.Format, "format", FormatText, "output format: text, json, or yaml")
	fs.StringVar(&flags.Caps, "caps", "", "comma separated name segments rendered upper-case (e.g. id,url)")
	fs.StringVar(&flags.Tag, "tag", "", "only show endpoints bound under this tag")
	fs.BoolVar(&flags.Verbose, "v", false, "log debug output to stderr")

	fs.Usage = func() {
		cliutil.Writef(fs.Output(), "Usage: oasbind inspect [flags] <file|->\n\n")
		cliutil.Writef(fs.Output(), "Show the data types, request bodies and endpoint bindings of an\nannotated OpenAPI 3.x document without writing anything.\n\n")
		cliutil.Writef(fs.Output(), "Flags:\n")
		fs.PrintDefaults()
		cliutil.Writef(fs.Output(), "\nExamples:\n")
		cliutil.Writef(fs.Output(), "  oasbind inspect docs/def.yaml\n")
		cliutil.Writef(fs.Output(), "  oasbind inspect --tag Admin --format json docs/def.yaml\n")
	}

	return fs, flags
}

// HandleInspect executes the inspect command
func HandleInspect(args []string) error {
	return runInspect(args, os.Stdout, os.Stderr)
}

func runInspect(args []string, stdout, stderr io.Writer) error {
	fs, flags := SetupInspectFlags()
	fs.SetOutput(stderr)

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}
	if err := ValidateOutputFormat(flags.Format); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		fs.Usage()
		return fmt.Errorf("inspect command requires exactly one file path or '-' for stdin")
	}
	specPath := fs.Arg(0)

	cfg, err := LoadConfig(flags.Config)
	if err != nil {
		return err
	}
	genOpts, err := SourceOptions(specPath)
	if err != nil {
		return err
	}
	genOpts = append(genOpts,
		generator.WithConfig(cfg),
		generator.WithLogger(NewLogger(stderr, flags.Verbose)),
	)
	if caps := SplitList(flags.Caps); len(caps) > 0 {
		genOpts = append(genOpts, generator.WithCapsSegments(caps...))
	}

	result, err := generator.GenerateWithOptions(genOpts...)
	if err != nil {
		return fmt.Errorf("inspecting bindings: %w", err)
	}

	rep := generator.NewReport(result)
	if flags.Tag != "" {
		kept := rep.Endpoints[:0]
		for _, ep := range rep.Endpoints {
			if ep.Tag == flags.Tag {
				kept = append(kept, ep)
			}
		}
		rep.Endpoints = kept
	}

	if flags.Format != FormatText {
		return OutputStructured(stdout, rep, flags.Format)
	}

	OutputSpecHeader(stdout, specPath, rep.Version)
	cliutil.Writef(stdout, "\nData Types (%d):\n", len(rep.DataTypes))
	for _, dt := range rep.DataTypes {
		cliutil.Writef(stdout, "  - %s\n", dt)
	}
	if len(rep.RequestBodies) > 0 {
		cliutil.Writef(stdout, "\nRequest Bodies (%d):\n", len(rep.RequestBodies))
		for _, rb := range rep.RequestBodies {
			cliutil.Writef(stdout, "  - %s -> %s\n", strings.Join(rb.Refs, ", "), rb.Symbol)
		}
	}
	cliutil.Writef(stdout, "\nEndpoints (%d):\n", len(rep.Endpoints))
	for _, ep := range rep.Endpoints {
		cliutil.Writef(stdout, "  %s %s [%s/%s] %s %s\n", ep.Method, ep.Path, ep.Tag, ep.CoreFunction, ep.Kind, ep.Shape)
		cliutil.Writef(stdout, "    handler:   %s%s\n", ep.Handler, ep.Outward)
		cliutil.Writef(stdout, "    interface: %s\n", ep.Interface)
	}
	if len(result.Issues) > 0 {
		cliutil.Writef(stdout, "\nIssues:\n")
		cliutil.WriteIssues(stdout, result.Issues, severity.SeverityInfo)
	}
	return nil
}
