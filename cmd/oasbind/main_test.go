package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSuggestCommand(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"genrate", "generate"},
		{"generat", "generate"},
		{"inspct", "inspect"},
		{"insepct", "inspect"},
		{"mpc", "mcp"},
		{"versio", "version"},
		{"hep", "help"},
		{"xyz", ""},
		{"regenerate-all", ""},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, suggestCommand(tt.input))
		})
	}
}

func TestLevenshtein(t *testing.T) {
	assert.Equal(t, 0, levenshtein("mcp", "mcp"))
	assert.Equal(t, 3, levenshtein("", "mcp"))
	assert.Equal(t, 2, levenshtein("insepct", "inspect"))
}

func TestHandlersCoverCommands(t *testing.T) {
	for _, name := range commandNames {
		if name == "version" || name == "help" {
			continue
		}
		assert.Contains(t, handlers, name)
	}
}
