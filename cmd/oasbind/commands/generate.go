package commands

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/erraggy/oasbind/generator"
	"github.com/erraggy/oasbind/internal/cliutil"
	"github.com/erraggy/oasbind/internal/severity"
)

// GenerateFlags contains flags for the generate command
type GenerateFlags struct {
	Config        string
	DispatchOut   string
	RoutingOut    string
	InterfacesOut string
	Caps          string
	Strict        bool
	NoInfo        bool
	DryRun        bool
	Verbose       bool
}

// SetupGenerateFlags creates and configures a FlagSet for the generate command.
func SetupGenerateFlags() (*flag.FlagSet, *GenerateFlags) {
	fs := flag.NewFlagSet("generate", flag.ContinueOnError)
	flags := &GenerateFlags{}

	fs.StringVar(&flags.Config, "c", "", "path to an oasbind YAML configuration file")
	fs.StringVar(&flags.Config, "config", "", "path to an oasbind YAML configuration file")
	fs.StringVar(&flags.DispatchOut, "dispatch-out", "", "output path of the dispatch bindings file")
	fs.StringVar(&flags.RoutingOut, "routing-out", "", "output path of the routing stubs file")
	fs.StringVar(&flags.InterfacesOut, "interfaces-out", "", "output path of the interface contracts file")
	fs.StringVar(&flags.Caps, "caps", "", "comma separated name segments rendered upper-case (e.g. id,url)")
	fs.BoolVar(&flags.Strict, "strict", false, "fail on any generation issue (even warnings)")
	fs.BoolVar(&flags.NoInfo, "no-info", false, "suppress info messages")
	fs.BoolVar(&flags.DryRun, "dry-run", false, "report what would be written without writing")
	fs.BoolVar(&flags.Verbose, "v", false, "log debug output to stderr")

	fs.Usage = func() {
		cliutil.Writef(fs.Output(), "Usage: oasbind generate [flags] <file|->\n\n")
		cliutil.Writef(fs.Output(), "Generate dispatch bindings, routing stubs and interface contracts\nfrom an annotated OpenAPI 3.x document.\n\n")
		cliutil.Writef(fs.Output(), "Flags:\n")
		fs.PrintDefaults()
		cliutil.Writef(fs.Output(), "\nExamples:\n")
		cliutil.Writef(fs.Output(), "  oasbind generate docs/def.yaml\n")
		cliutil.Writef(fs.Output(), "  oasbind generate -c oasbind.yaml --caps id,url docs/def.yaml\n")
		cliutil.Writef(fs.Output(), "  oasbind generate --dry-run --strict docs/def.yaml\n")
		cliutil.Writef(fs.Output(), "  cat docs/def.yaml | oasbind generate -\n")
		cliutil.Writef(fs.Output(), "\nNotes:\n")
		cliutil.Writef(fs.Output(), "  - Output paths default to the configuration file, then to the built-in layout\n")
		cliutil.Writef(fs.Output(), "  - Nothing is written when two endpoints bind the same tag and core function\n")
	}

	return fs, flags
}

// HandleGenerate executes the generate command
func HandleGenerate(args []string) error {
	return runGenerate(args, os.Stdout, os.Stderr)
}

func runGenerate(args []string, stdout, stderr io.Writer) error {
	fs, flags := SetupGenerateFlags()
	fs.SetOutput(stderr)

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	if fs.NArg() != 1 {
		fs.Usage()
		return fmt.Errorf("generate command requires exactly one file path or '-' for stdin")
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
		generator.WithStrictMode(flags.Strict),
		generator.WithIncludeInfo(!flags.NoInfo),
		generator.WithOutputPaths(flags.DispatchOut, flags.RoutingOut, flags.InterfacesOut),
	)
	if caps := SplitList(flags.Caps); len(caps) > 0 {
		genOpts = append(genOpts, generator.WithCapsSegments(caps...))
	}

	startTime := time.Now()
	result, err := generator.GenerateWithOptions(genOpts...)
	totalTime := time.Since(startTime)
	if result != nil && len(result.Issues) > 0 {
		cliutil.Writef(stderr, "Generation Issues (%d):\n", len(result.Issues))
		cliutil.WriteIssues(stderr, result.Issues, severity.SeverityInfo)
	}
	if err != nil {
		return fmt.Errorf("generating bindings: %w", err)
	}

	cliutil.Writef(stdout, "oasbind Binding Generator\n")
	cliutil.Writef(stdout, "=========================\n\n")
	OutputSpecHeader(stdout, specPath, result.SourceVersion)
	cliutil.Writef(stdout, "Endpoints: %d\n", len(result.Contracts))
	cliutil.Writef(stdout, "Data Types: %d\n", len(result.Model.DataTypes))
	cliutil.Writef(stdout, "Total Time: %v\n\n", totalTime)

	if !result.Success {
		cliutil.Writef(stdout, "✗ Generation completed with %d critical issue(s), nothing written\n", result.CriticalCount)
		return result.WriteFiles()
	}

	verb := "Generated"
	if flags.DryRun {
		verb = "Would write"
	} else if err := result.WriteFiles(); err != nil {
		return fmt.Errorf("writing files: %w", err)
	}

	cliutil.Writef(stdout, "%s Files (%d):\n", verb, len(result.Files))
	for _, file := range result.Files {
		cliutil.Writef(stdout, "  - %s (%d bytes)\n", file.Path, len(file.Content))
	}
	cliutil.Writef(stdout, "\n✓ Generation successful")
	if result.InfoCount > 0 || result.WarningCount > 0 {
		cliutil.Writef(stdout, " (%d info, %d warnings)", result.InfoCount, result.WarningCount)
	}
	cliutil.Writef(stdout, "\n")
	return nil
}
