// Package issues provides the diagnostic type reported while extracting
// endpoints and emitting bindings.
package issues

import (
	"fmt"

	"github.com/erraggy/oasbind/internal/severity"
)

// Issue represents a single problem found during generation.
type Issue struct {
	// Path is the JSON path to the problematic field (e.g., "paths./items.get.x-data-type")
	Path string
	// Message is a human-readable description of the issue
	Message string
	// Severity indicates the severity level of the issue
	Severity severity.Severity
	// Field is the specific field name that has the issue
	Field string
	// Value is the problematic value (optional)
	Value any
	// Artifact names the output file the issue concerns, if any
	Artifact string
	// OperationContext identifies the endpoint. Nil when not applicable.
	OperationContext *OperationContext
}

// String returns a formatted string representation of the issue.
// Uses "✗" for critical, "⚠" for warning and "ℹ" for info.
func (i Issue) String() string {
	var symbol string
	switch i.Severity {
	case severity.SeverityCritical:
		symbol = "✗"
	case severity.SeverityWarning:
		symbol = "⚠"
	case severity.SeverityInfo:
		symbol = "ℹ"
	default:
		symbol = "?"
	}

	location := i.Path
	if i.Artifact != "" {
		if location == "" {
			location = i.Artifact
		} else {
			location = i.Artifact + " " + location
		}
	}
	if i.OperationContext != nil && !i.OperationContext.IsEmpty() {
		location = fmt.Sprintf("%s %s", location, i.OperationContext.String())
	}
	if location == "" {
		return fmt.Sprintf("%s %s", symbol, i.Message)
	}
	return fmt.Sprintf("%s %s: %s", symbol, location, i.Message)
}

// Counts tallies issues per severity.
type Counts struct {
	Info     int `json:"info" yaml:"info"`
	Warning  int `json:"warning" yaml:"warning"`
	Critical int `json:"critical" yaml:"critical"`
}

// Count tallies the given issues.
func Count(list []Issue) Counts {
	var c Counts
	for _, i := range list {
		switch i.Severity {
		case severity.SeverityInfo:
			c.Info++
		case severity.SeverityWarning:
			c.Warning++
		case severity.SeverityCritical:
			c.Critical++
		}
	}
	return c
}

// Filter returns the issues at or above min.
func Filter(list []Issue, min severity.Severity) []Issue {
	var out []Issue
	for _, i := range list {
		if i.Severity.AtLeast(min) {
			out = append(out, i)
		}
	}
	return out
}
