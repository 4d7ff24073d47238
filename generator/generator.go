package generator

import (
	"fmt"
	"time"

	"github.com/erraggy/oasbind/internal/issues"
	"github.com/erraggy/oasbind/internal/options"
	"github.com/erraggy/oasbind/internal/severity"
	"github.com/erraggy/oasbind/oaserrors"
	"github.com/erraggy/oasbind/parser"
)

// Severity indicates the severity level of a generation issue
type Severity = severity.Severity

const (
	// SeverityInfo marks notes about generation choices
	SeverityInfo = severity.SeverityInfo
	// SeverityWarning marks entries that were skipped or degraded
	SeverityWarning = severity.SeverityWarning
	// SeverityCritical marks conflicts that prevent writing any artifact
	SeverityCritical = severity.SeverityCritical
)

// GenerateIssue represents a single generation issue
type GenerateIssue = issues.Issue

// Artifact names used in GeneratedFile.Name.
const (
	ArtifactDispatch   = "dispatch"
	ArtifactRouting    = "routing"
	ArtifactInterfaces = "interfaces"
)

// GeneratedFile represents a single generated file
type GeneratedFile struct {
	// Name is the artifact name: dispatch, routing or interfaces
	Name string
	// Path is the configured output path
	Path string
	// Content is the generated Go source code
	Content []byte
}

// GenerateResult contains the results of one generation run
type GenerateResult struct {
	// Files contains the three artifacts, in dispatch, routing, interfaces order
	Files []GeneratedFile
	// Model is the extracted model every artifact was rendered from
	Model *Model
	// Contracts are the per-endpoint signatures, in model order
	Contracts []Contract
	// SourceVersion is the document's openapi version string
	SourceVersion string
	// SourceFormat is the format of the source document
	SourceFormat parser.SourceFormat
	// SourcePath is the document path or source name
	SourcePath string
	// Issues contains all extraction and emission issues
	Issues []GenerateIssue
	// DuplicateKeys lists colliding "tag/function" dispatch keys
	DuplicateKeys []string
	// InfoCount is the total number of info messages
	InfoCount int
	// WarningCount is the total number of warnings
	WarningCount int
	// CriticalCount is the total number of critical issues
	CriticalCount int
	// Success is true if generation completed without critical issues
	Success bool
	// LoadTime is the time taken to load the source data
	LoadTime time.Duration
	// GenerateTime is the time taken to extract and emit
	GenerateTime time.Duration
	// SourceSize is the size of the source data in bytes
	SourceSize int64
}

// HasCriticalIssues returns true if there are any critical issues
func (r *GenerateResult) HasCriticalIssues() bool {
	return r.CriticalCount > 0
}

// HasWarnings returns true if there are any warnings
func (r *GenerateResult) HasWarnings() bool {
	return r.WarningCount > 0
}

// GetFile returns the artifact with the given name, or nil if not found
func (r *GenerateResult) GetFile(name string) *GeneratedFile {
	for i := range r.Files {
		if r.Files[i].Name == name {
			return &r.Files[i]
		}
	}
	return nil
}

// Generator runs extraction and the three emitters.
type Generator struct {
	// Config is the run configuration. Nil means DefaultConfig.
	Config *Config
	// Logger receives progress and skip notices. Nil means no logging.
	Logger parser.Logger
	// StrictMode fails the run on any warning or critical issue
	StrictMode bool
	// IncludeInfo keeps info issues in the result
	IncludeInfo bool
}

// New creates a new Generator with the default configuration
func New() *Generator {
	return &Generator{
		Config:      DefaultConfig(),
		IncludeInfo: true,
	}
}

// Option is a function that configures a generate operation
type Option func(*generateConfig) error

type generateConfig struct {
	// Input source (exactly one must be set)
	filePath *string
	bytes    []byte
	parsed   *parser.ParseResult

	config      *Config
	logger      parser.Logger
	strictMode  bool
	includeInfo bool
	caps        []string
	outputs     *OutputConfig
	sourceName  string
}

// GenerateWithOptions generates the artifacts from an annotated document.
//
//	result, err := generator.GenerateWithOptions(
//	    generator.WithFilePath("openapi.yaml"),
//	    generator.WithConfig(cfg),
//	)
func GenerateWithOptions(opts ...Option) (*GenerateResult, error) {
	gc, err := applyOptions(opts...)
	if err != nil {
		return nil, fmt.Errorf("generator: invalid options: %w", err)
	}

	cfg := gc.config
	if cfg == nil {
		cfg = DefaultConfig()
	} else {
		cfg = cfg.Clone()
	}
	if gc.caps != nil {
		cfg.CapsSegments = gc.caps
	}
	if gc.outputs != nil {
		if gc.outputs.Dispatch != "" {
			cfg.Output.Dispatch = gc.outputs.Dispatch
		}
		if gc.outputs.Routing != "" {
			cfg.Output.Routing = gc.outputs.Routing
		}
		if gc.outputs.Interfaces != "" {
			cfg.Output.Interfaces = gc.outputs.Interfaces
		}
	}

	g := &Generator{
		Config:      cfg,
		Logger:      gc.logger,
		StrictMode:  gc.strictMode,
		IncludeInfo: gc.includeInfo,
	}

	switch {
	case gc.filePath != nil:
		return g.Generate(*gc.filePath)
	case gc.parsed != nil:
		return g.GenerateParsed(*gc.parsed)
	default:
		pr, err := parser.ParseWithOptions(
			parser.WithBytes(gc.bytes),
			parser.WithLogger(g.logger()),
			parser.WithSourceName(gc.sourceName),
		)
		if err != nil {
			return nil, fmt.Errorf("generator: failed to parse document: %w", err)
		}
		return g.GenerateParsed(*pr)
	}
}

func applyOptions(opts ...Option) (*generateConfig, error) {
	gc := &generateConfig{includeInfo: true, sourceName: "inline"}
	for _, opt := range opts {
		if err := opt(gc); err != nil {
			return nil, err
		}
	}
	if err := options.RequireOneSource("generator",
		options.Source{Option: "WithFilePath", Set: gc.filePath != nil},
		options.Source{Option: "WithBytes", Set: gc.bytes != nil},
		options.Source{Option: "WithParsed", Set: gc.parsed != nil},
	); err != nil {
		return nil, err
	}
	return gc, nil
}

// WithFilePath specifies a document path as the input source
func WithFilePath(path string) Option {
	return func(gc *generateConfig) error {
		gc.filePath = &path
		return nil
	}
}

// WithBytes specifies raw document content as the input source
func WithBytes(data []byte) Option {
	return func(gc *generateConfig) error {
		if data == nil {
			data = []byte{}
		}
		gc.bytes = data
		return nil
	}
}

// WithSourceName names inline input in issues and results
func WithSourceName(name string) Option {
	return func(gc *generateConfig) error {
		gc.sourceName = name
		return nil
	}
}

// WithParsed specifies an already parsed document as the input source
func WithParsed(result parser.ParseResult) Option {
	return func(gc *generateConfig) error {
		if result.Document == nil {
			return &oaserrors.ConfigError{Option: "WithParsed", Message: "parse result has no document"}
		}
		gc.parsed = &result
		return nil
	}
}

// WithConfig sets the run configuration. The configuration is validated
// when the option is applied.
func WithConfig(cfg *Config) Option {
	return func(gc *generateConfig) error {
		if err := cfg.Validate(); err != nil {
			return err
		}
		gc.config = cfg
		return nil
	}
}

// WithLogger sets the logger used for extraction notices
func WithLogger(l parser.Logger) Option {
	return func(gc *generateConfig) error {
		gc.logger = l
		return nil
	}
}

// WithStrictMode fails the run on any warning or critical issue
func WithStrictMode(enabled bool) Option {
	return func(gc *generateConfig) error {
		gc.strictMode = enabled
		return nil
	}
}

// WithIncludeInfo keeps info issues in the result
func WithIncludeInfo(enabled bool) Option {
	return func(gc *generateConfig) error {
		gc.includeInfo = enabled
		return nil
	}
}

// WithCapsSegments overrides the configured caps segments
func WithCapsSegments(caps ...string) Option {
	return func(gc *generateConfig) error {
		gc.caps = append([]string{}, caps...)
		return nil
	}
}

// WithOutputPaths overrides the configured output paths. Empty values keep
// the configured path.
func WithOutputPaths(dispatch, routing, interfaces string) Option {
	return func(gc *generateConfig) error {
		gc.outputs = &OutputConfig{Dispatch: dispatch, Routing: routing, Interfaces: interfaces}
		return nil
	}
}

func (g *Generator) config() *Config {
	if g.Config == nil {
		return DefaultConfig()
	}
	return g.Config
}

func (g *Generator) logger() parser.Logger {
	if g.Logger == nil {
		return parser.NopLogger{}
	}
	return g.Logger
}

// Generate parses the document at specPath and generates the artifacts
func (g *Generator) Generate(specPath string) (*GenerateResult, error) {
	p := parser.New()
	p.Logger = g.Logger
	parseResult, err := p.Parse(specPath)
	if err != nil {
		return nil, fmt.Errorf("generator: failed to parse document: %w", err)
	}
	return g.GenerateParsed(*parseResult)
}

// GenerateParsed generates the artifacts from a parsed document.
//
// The returned result always carries the model and issues. Files are
// rendered even when critical issues exist so callers can inspect them;
// WriteFiles refuses to write such a result.
func (g *Generator) GenerateParsed(parseResult parser.ParseResult) (*GenerateResult, error) {
	startTime := time.Now()
	cfg := g.config()
	log := g.logger()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("generator: %w", err)
	}
	if parseResult.Document == nil {
		return nil, fmt.Errorf("generator: parse result has no document")
	}

	result := &GenerateResult{
		SourceVersion: parseResult.Version,
		SourceFormat:  parseResult.SourceFormat,
		SourcePath:    parseResult.SourcePath,
		LoadTime:      parseResult.LoadTime,
		SourceSize:    parseResult.SourceSize,
	}

	model, found := ExtractModel(parseResult.Document, cfg, log.With("source", parseResult.SourcePath))
	result.Model = model
	result.Issues = append(result.Issues, found...)
	result.Contracts = BuildContracts(model)

	for _, a := range []struct {
		name, path string
		emit       func(*Model, []Contract, *Config) ([]byte, []issues.Issue)
	}{
		{ArtifactDispatch, cfg.Output.Dispatch, EmitDispatch},
		{ArtifactRouting, cfg.Output.Routing, EmitRouting},
		{ArtifactInterfaces, cfg.Output.Interfaces, EmitInterfaces},
	} {
		content, emitted := a.emit(model, result.Contracts, cfg)
		result.Issues = append(result.Issues, emitted...)
		result.Files = append(result.Files, GeneratedFile{Name: a.name, Path: a.path, Content: content})
	}

	result.DuplicateKeys = duplicateKeys(result.Issues)
	result.GenerateTime = time.Since(startTime)
	g.updateCounts(result)
	result.Success = result.CriticalCount == 0

	log.Info("generation complete",
		"endpoints", len(model.Endpoints),
		"data_types", len(model.DataTypes),
		"warnings", result.WarningCount,
		"critical", result.CriticalCount)

	if g.StrictMode && (result.CriticalCount > 0 || result.WarningCount > 0) {
		return result, &oaserrors.GenerationError{
			Keys: result.DuplicateKeys,
			Message: fmt.Sprintf("strict mode: %d critical issue(s), %d warning(s)",
				result.CriticalCount, result.WarningCount),
		}
	}

	if !g.IncludeInfo {
		result.Issues = issues.Filter(result.Issues, severity.SeverityWarning)
		result.InfoCount = 0
	}

	return result, nil
}

func (g *Generator) updateCounts(result *GenerateResult) {
	counts := issues.Count(result.Issues)
	result.InfoCount = counts.Info
	result.WarningCount = counts.Warning
	result.CriticalCount = counts.Critical
}

// duplicateKeys collects the dispatch keys named by critical issues.
func duplicateKeys(list []issues.Issue) []string {
	var keys []string
	seen := map[string]bool{}
	for _, i := range list {
		if i.Severity != severity.SeverityCritical || i.OperationContext == nil {
			continue
		}
		ctx := i.OperationContext
		if ctx.Tag == "" || ctx.CoreFunction == "" {
			continue
		}
		k := DispatchKey{Tag: ctx.Tag, Function: ctx.CoreFunction}.String()
		if !seen[k] {
			seen[k] = true
			keys = append(keys, k)
		}
	}
	return keys
}
