// Package oaserrors provides structured error types for oasbind.
//
// The types support errors.Is and errors.As so callers can tell a document
// that could not be read apart from a bad configuration or a generation run
// that was refused.
//
// # Error Categories
//
//   - ParseError: the annotated document could not be read or decoded
//   - ReferenceError: a local $ref did not resolve
//   - ConfigError: invalid options or configuration file contents
//   - GenerationError: the extracted model cannot be emitted safely
//
// # Usage
//
//	result, err := generator.GenerateWithOptions(generator.WithFilePath("api.yaml"))
//	if errors.Is(err, oaserrors.ErrParse) {
//	    // the document itself is broken
//	}
//
//	var genErr *oaserrors.GenerationError
//	if errors.As(err, &genErr) {
//	    fmt.Println(genErr.Keys)
//	}
package oaserrors

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinels matched by the error types below through errors.Is.
var (
	ErrParse      = errors.New("parse error")
	ErrReference  = errors.New("reference error")
	ErrConfig     = errors.New("configuration error")
	ErrGeneration = errors.New("generation error")

	// ErrDuplicateBinding matches a GenerationError that lists colliding
	// (tag, core function) keys.
	ErrDuplicateBinding = errors.New("duplicate binding")
)

// render joins head with the non-empty detail segments and the cause,
// separated by ": ".
func render(head string, cause error, details ...string) string {
	var b strings.Builder
	b.WriteString(head)
	for _, d := range details {
		if d != "" {
			b.WriteString(": ")
			b.WriteString(d)
		}
	}
	if cause != nil {
		b.WriteString(": ")
		b.WriteString(cause.Error())
	}
	return b.String()
}

// ParseError reports a document that could not be read or decoded.
type ParseError struct {
	Path    string // file path or source label
	Line    int    // 1-based, 0 if unknown
	Column  int    // 1-based, 0 if unknown
	Message string
	Cause   error
}

func (e *ParseError) Error() string {
	head := ErrParse.Error()
	if e.Path != "" {
		head += " in " + e.Path
	}
	switch {
	case e.Line > 0 && e.Column > 0:
		head += fmt.Sprintf(" at line %d, column %d", e.Line, e.Column)
	case e.Line > 0:
		head += fmt.Sprintf(" at line %d", e.Line)
	}
	return render(head, e.Cause, e.Message)
}

func (e *ParseError) Unwrap() error        { return e.Cause }
func (e *ParseError) Is(target error) bool { return target == ErrParse }

// ReferenceError reports a $ref that does not resolve to a local component.
type ReferenceError struct {
	Ref     string
	Message string
	Cause   error
}

func (e *ReferenceError) Error() string {
	return render(ErrReference.Error(), e.Cause, e.Ref, e.Message)
}

func (e *ReferenceError) Unwrap() error        { return e.Cause }
func (e *ReferenceError) Is(target error) bool { return target == ErrReference }

// ConfigError reports a bad option or configuration file value.
type ConfigError struct {
	Option  string
	Value   any // nil when the problem is not tied to a value
	Message string
	Cause   error
}

func (e *ConfigError) Error() string {
	head := ErrConfig.Error()
	if e.Option != "" {
		head += " for " + e.Option
	}
	if e.Value != nil {
		head += fmt.Sprintf(" (value: %v)", e.Value)
	}
	return render(head, e.Cause, e.Message)
}

func (e *ConfigError) Unwrap() error        { return e.Cause }
func (e *ConfigError) Is(target error) bool { return target == ErrConfig }

// GenerationError reports why a run produced or wrote no artifacts.
type GenerationError struct {
	// Keys lists colliding "tag/function" dispatch keys.
	Keys    []string
	Message string
}

func (e *GenerationError) Error() string {
	msg := render(ErrGeneration.Error(), nil, e.Message)
	if len(e.Keys) == 0 {
		return msg
	}
	return msg + " (" + strings.Join(e.Keys, ", ") + ")"
}

// Is matches ErrGeneration, and ErrDuplicateBinding when Keys is set.
func (e *GenerationError) Is(target error) bool {
	switch target {
	case ErrGeneration:
		return true
	case ErrDuplicateBinding:
		return len(e.Keys) > 0
	}
	return false
}
