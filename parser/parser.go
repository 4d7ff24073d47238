package parser

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.yaml.in/yaml/v4"

	"github.com/erraggy/oasbind/internal/options"
	"github.com/erraggy/oasbind/oaserrors"
)

// DefaultMaxFileSize bounds how much input a single parse will read.
const DefaultMaxFileSize int64 = 10 << 20

// SourceFormat identifies the encoding of the input.
type SourceFormat string

const (
	// SourceFormatYAML is YAML input.
	SourceFormatYAML SourceFormat = "yaml"
	// SourceFormatJSON is JSON input.
	SourceFormatJSON SourceFormat = "json"
	// SourceFormatUnknown means the format could not be detected.
	SourceFormatUnknown SourceFormat = "unknown"
)

// ParseResult holds a decoded document and facts about its source.
type ParseResult struct {
	// SourcePath is the file path, or "ParseBytes.<format>" / "ParseReader.<format>"
	SourcePath string
	// SourceFormat is the detected encoding
	SourceFormat SourceFormat
	// Version is the document's openapi field
	Version string
	// Document is the decoded document
	Document *Document
	// LoadTime is the time taken to read the source
	LoadTime time.Duration
	// SourceSize is the size of the source in bytes
	SourceSize int64
}

// Parser decodes OpenAPI documents.
type Parser struct {
	// Logger receives debug output. Nil means no logging.
	Logger Logger
	// MaxFileSize bounds the input size. Zero means DefaultMaxFileSize.
	MaxFileSize int64
}

// New creates a Parser with default settings.
func New() *Parser {
	return &Parser{}
}

// Option is a function that configures a parse operation
type Option func(*parseConfig) error

type parseConfig struct {
	filePath    *string
	reader      io.Reader
	bytes       []byte
	logger      Logger
	maxFileSize int64
	sourceName  *string
}

// ParseWithOptions parses an OpenAPI document using functional options.
//
//	result, err := parser.ParseWithOptions(
//	    parser.WithFilePath("api.yaml"),
//	    parser.WithLogger(parser.NewSlogAdapter(nil)),
//	)
func ParseWithOptions(opts ...Option) (*ParseResult, error) {
	cfg := &parseConfig{}
	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, fmt.Errorf("parser: invalid options: %w", err)
		}
	}
	if err := options.RequireOneSource("parser",
		options.Source{Option: "WithFilePath", Set: cfg.filePath != nil},
		options.Source{Option: "WithReader", Set: cfg.reader != nil},
		options.Source{Option: "WithBytes", Set: cfg.bytes != nil},
	); err != nil {
		return nil, err
	}

	p := &Parser{Logger: cfg.logger, MaxFileSize: cfg.maxFileSize}

	var result *ParseResult
	var err error
	switch {
	case cfg.filePath != nil:
		result, err = p.Parse(*cfg.filePath)
	case cfg.reader != nil:
		result, err = p.ParseReader(cfg.reader)
	default:
		result, err = p.ParseBytes(cfg.bytes)
	}
	if err != nil {
		return nil, err
	}
	if cfg.sourceName != nil {
		result.SourcePath = *cfg.sourceName
	}
	return result, nil
}

// WithFilePath specifies a file path as the input source
func WithFilePath(path string) Option {
	return func(cfg *parseConfig) error {
		cfg.filePath = &path
		return nil
	}
}

// WithReader specifies an io.Reader as the input source
func WithReader(r io.Reader) Option {
	return func(cfg *parseConfig) error {
		if r == nil {
			return fmt.Errorf("parser: reader cannot be nil")
		}
		cfg.reader = r
		return nil
	}
}

// WithBytes specifies a byte slice as the input source
func WithBytes(data []byte) Option {
	return func(cfg *parseConfig) error {
		if data == nil {
			return fmt.Errorf("parser: bytes cannot be nil")
		}
		cfg.bytes = data
		return nil
	}
}

// WithLogger sets the logger for the parse.
func WithLogger(l Logger) Option {
	return func(cfg *parseConfig) error {
		cfg.logger = l
		return nil
	}
}

// WithMaxFileSize bounds the input size. Zero keeps the default.
func WithMaxFileSize(size int64) Option {
	return func(cfg *parseConfig) error {
		if size < 0 {
			return fmt.Errorf("parser: max file size cannot be negative")
		}
		cfg.maxFileSize = size
		return nil
	}
}

// WithSourceName overrides ParseResult.SourcePath, useful for inline content.
func WithSourceName(name string) Option {
	return func(cfg *parseConfig) error {
		if name == "" {
			return fmt.Errorf("parser: source name cannot be empty")
		}
		cfg.sourceName = &name
		return nil
	}
}

func (p *Parser) maxSize() int64 {
	if p.MaxFileSize > 0 {
		return p.MaxFileSize
	}
	return DefaultMaxFileSize
}

// Parse reads and decodes the document at path.
func (p *Parser) Parse(path string) (*ParseResult, error) {
	start := time.Now()
	info, err := os.Stat(path)
	if err != nil {
		return nil, &oaserrors.ParseError{Path: path, Message: "cannot read document", Cause: err}
	}
	if info.Size() > p.maxSize() {
		return nil, &oaserrors.ParseError{
			Path:    path,
			Message: fmt.Sprintf("document is %d bytes, limit is %d", info.Size(), p.maxSize()),
		}
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &oaserrors.ParseError{Path: path, Message: "cannot read document", Cause: err}
	}
	loadTime := time.Since(start)

	res, err := p.decode(data, path)
	if err != nil {
		return nil, err
	}
	res.LoadTime = loadTime
	if f := detectFormatFromPath(path); f != SourceFormatUnknown {
		res.SourceFormat = f
	}
	return res, nil
}

// ParseReader reads and decodes a document from r.
func (p *Parser) ParseReader(r io.Reader) (*ParseResult, error) {
	start := time.Now()
	limit := p.maxSize()
	data, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return nil, &oaserrors.ParseError{Path: "ParseReader", Message: "failed to read data", Cause: err}
	}
	if int64(len(data)) > limit {
		return nil, &oaserrors.ParseError{
			Path:    "ParseReader",
			Message: fmt.Sprintf("document exceeds %d bytes", limit),
		}
	}
	loadTime := time.Since(start)
	res, err := p.decode(data, "")
	if err != nil {
		return nil, err
	}
	res.LoadTime = loadTime
	res.SourcePath = "ParseReader." + string(res.SourceFormat)
	return res, nil
}

// ParseBytes decodes a document held in memory.
func (p *Parser) ParseBytes(data []byte) (*ParseResult, error) {
	if int64(len(data)) > p.maxSize() {
		return nil, &oaserrors.ParseError{
			Path:    "ParseBytes",
			Message: fmt.Sprintf("document exceeds %d bytes", p.maxSize()),
		}
	}
	res, err := p.decode(data, "")
	if err != nil {
		return nil, err
	}
	res.SourcePath = "ParseBytes." + string(res.SourceFormat)
	return res, nil
}

func (p *Parser) decode(data []byte, path string) (*ParseResult, error) {
	log := orNop(p.Logger)
	format := detectFormatFromContent(data)
	label := path
	if label == "" {
		label = "ParseBytes." + string(format)
	}

	if len(bytes.TrimSpace(data)) == 0 {
		return nil, &oaserrors.ParseError{Path: label, Message: "document is empty"}
	}

	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, &oaserrors.ParseError{Path: label, Message: "invalid " + string(format), Cause: err}
	}
	if doc.OpenAPI == "" {
		return nil, &oaserrors.ParseError{Path: label, Message: "missing openapi version field"}
	}
	if !strings.HasPrefix(doc.OpenAPI, "3.") {
		return nil, &oaserrors.ParseError{
			Path:    label,
			Message: fmt.Sprintf("unsupported OpenAPI version %q (want 3.x)", doc.OpenAPI),
		}
	}

	log.Debug("decoded document",
		"source", label,
		"version", doc.OpenAPI,
		"paths", len(doc.Paths),
		"tags", len(doc.Tags),
	)

	return &ParseResult{
		SourcePath:   label,
		SourceFormat: format,
		Version:      doc.OpenAPI,
		Document:     &doc,
		SourceSize:   int64(len(data)),
	}, nil
}

func detectFormatFromPath(path string) SourceFormat {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return SourceFormatJSON
	case ".yaml", ".yml":
		return SourceFormatYAML
	default:
		return SourceFormatUnknown
	}
}

// detectFormatFromContent treats input starting with '{' as JSON and
// anything else as YAML.
func detectFormatFromContent(data []byte) SourceFormat {
	trimmed := bytes.TrimLeft(data, " \t\n\r")
	if len(trimmed) == 0 {
		return SourceFormatUnknown
	}
	if trimmed[0] == '{' || trimmed[0] == '[' {
		return SourceFormatJSON
	}
	return SourceFormatYAML
}
