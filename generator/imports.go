package generator

import (
	"bytes"
	"fmt"
	"path"
	"sort"
	"strings"
	"unicode"

	"github.com/erraggy/oasbind/internal/issues"
	"github.com/erraggy/oasbind/internal/severity"
)

// stdlibImports are standard packages generated code may reference.
var stdlibImports = map[string]string{
	"time": "time",
}

// importSet collects the package aliases an artifact references.
type importSet struct {
	aliases map[string]bool
}

func newImportSet() *importSet {
	return &importSet{aliases: map[string]bool{}}
}

// add records aliases referenced verbatim by the emitter.
func (s *importSet) add(aliases ...string) {
	for _, a := range aliases {
		s.aliases[a] = true
	}
}

// addType records every qualifier appearing in a Go type expression such
// as "[]*model.Item" or "map[string]time.Time".
func (s *importSet) addType(typeExpr string) {
	for _, q := range qualifiers(typeExpr) {
		s.aliases[q] = true
	}
}

// qualifiers extracts the package qualifiers of a type expression: every
// identifier immediately followed by a dot.
func qualifiers(typeExpr string) []string {
	var out []string
	start := -1
	for i, r := range typeExpr {
		if r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r) {
			if start < 0 {
				start = i
			}
			continue
		}
		if r == '.' && start >= 0 {
			out = append(out, typeExpr[start:i])
		}
		start = -1
	}
	return out
}

// render writes the import block. Aliases without a configured path are
// reported and left out.
func (s *importSet) render(buf *bytes.Buffer, cfg *Config, artifact string) []issues.Issue {
	var found []issues.Issue
	var std, other []importSpec
	for alias := range s.aliases {
		if p, ok := stdlibImports[alias]; ok {
			std = append(std, importSpec{alias: alias, path: p})
			continue
		}
		p, ok := cfg.Imports[alias]
		if !ok || p == "" {
			found = append(found, issues.Issue{
				Artifact: artifact,
				Field:    "imports",
				Value:    alias,
				Message:  fmt.Sprintf("no import path configured for package alias %q", alias),
				Severity: severity.SeverityWarning,
			})
			continue
		}
		other = append(other, importSpec{alias: alias, path: p})
	}
	if len(std)+len(other) == 0 {
		return found
	}

	sortSpecs(std)
	sortSpecs(other)
	buf.WriteString("import (\n")
	for _, spec := range std {
		buf.WriteString("\t" + spec.String() + "\n")
	}
	if len(std) > 0 && len(other) > 0 {
		buf.WriteString("\n")
	}
	for _, spec := range other {
		buf.WriteString("\t" + spec.String() + "\n")
	}
	buf.WriteString(")\n\n")
	return found
}

type importSpec struct {
	alias string
	path  string
}

// String renders the spec, naming the alias only when it differs from the
// last path element.
func (s importSpec) String() string {
	if path.Base(s.path) == s.alias {
		return fmt.Sprintf("%q", s.path)
	}
	return fmt.Sprintf("%s %q", s.alias, s.path)
}

func sortSpecs(specs []importSpec) {
	sort.Slice(specs, func(i, j int) bool {
		if specs[i].path != specs[j].path {
			return specs[i].path < specs[j].path
		}
		return specs[i].alias < specs[j].alias
	})
}

// qualifierOf returns the package part of "pkg.Name", or "".
func qualifierOf(symbol string) string {
	pkg, _, ok := strings.Cut(symbol, ".")
	if !ok {
		return ""
	}
	return pkg
}

// localName returns the Name part of "pkg.Name".
func localName(symbol string) string {
	if _, name, ok := strings.Cut(symbol, "."); ok {
		return name
	}
	return symbol
}
