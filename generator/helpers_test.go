package generator

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/erraggy/oasbind/internal/issues"
	"github.com/erraggy/oasbind/internal/severity"
	"github.com/erraggy/oasbind/internal/testutil"
	"github.com/erraggy/oasbind/parser"
)

// parseFixture parses a document from testdata.
func parseFixture(t *testing.T, name string) *parser.ParseResult {
	t.Helper()
	result, err := parser.ParseWithOptions(parser.WithFilePath(filepath.Join("testdata", name)))
	require.NoError(t, err)
	return result
}

// parseInline parses an inline YAML document.
func parseInline(t *testing.T, doc string) *parser.ParseResult {
	t.Helper()
	result, err := parser.ParseWithOptions(parser.WithBytes([]byte(doc)))
	require.NoError(t, err)
	return result
}

// extractInline parses doc and extracts its model with the default config.
func extractInline(t *testing.T, doc string) (*Model, []issues.Issue) {
	t.Helper()
	return ExtractModel(parseInline(t, doc).Document, DefaultConfig(), nil)
}

// issuesAt returns the issues with the given severity.
func issuesAt(list []issues.Issue, sev severity.Severity) []issues.Issue {
	var out []issues.Issue
	for _, i := range list {
		if i.Severity == sev {
			out = append(out, i)
		}
	}
	return out
}

// hasIssue reports whether any issue of sev contains substr in its message.
func hasIssue(list []issues.Issue, sev severity.Severity, substr string) bool {
	for _, i := range issuesAt(list, sev) {
		if strings.Contains(i.Message, substr) {
			return true
		}
	}
	return false
}

// findEndpoint returns the endpoint bound to tag/fn.
func findEndpoint(t *testing.T, m *Model, tag, fn string) Endpoint {
	t.Helper()
	for _, ep := range m.Endpoints {
		if ep.Tag == tag && ep.CoreFunction == fn {
			return ep
		}
	}
	require.Failf(t, "endpoint not found", "%s/%s", tag, fn)
	return Endpoint{}
}

// docHeader starts an inline document declaring the default tiers.
const docHeader = testutil.DocHeader
