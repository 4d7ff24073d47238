package naming

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// goKeywords are the Go keywords that cannot be used as identifiers.
var goKeywords = map[string]bool{
	"break": true, "case": true, "chan": true, "const": true, "continue": true,
	"default": true, "defer": true, "else": true, "fallthrough": true, "for": true,
	"func": true, "go": true, "goto": true, "if": true, "import": true,
	"interface": true, "map": true, "package": true, "range": true, "return": true,
	"select": true, "struct": true, "switch": true, "type": true, "var": true,
}

// predeclared names are shadowed when a generated local shares them, which
// breaks any later use of the type in the same body.
var predeclared = map[string]bool{
	"bool": true, "int": true, "float64": true, "string": true, "error": true,
	"any": true, "nil": true, "true": true, "false": true, "interface{}": true,
}

func isSeparator(r rune) bool {
	return r == '-' || r == '_'
}

// ToCompoundIdentifier maps a document name such as "item_id" or
// "_admin_req_update_unit" to a Go identifier.
//
// The name is split on '-' and '_'. The first segment is kept verbatim and
// every later segment is title-cased, or fully upper-cased when it matches
// one of caps case-insensitively. Empty segments contribute nothing.
//
//	ToCompoundIdentifier("item_id", nil)                // "itemId"
//	ToCompoundIdentifier("item_id", []string{"id"})     // "itemID"
//	ToCompoundIdentifier("_admin_req_update_unit", nil) // "AdminReqUpdateUnit"
func ToCompoundIdentifier(name string, caps []string) string {
	if name == "" {
		return ""
	}
	titleCaser := cases.Title(language.Und)

	var b strings.Builder
	first := true
	start := 0
	emit := func(seg string) {
		switch {
		case first:
			b.WriteString(seg)
		case seg == "":
		case isCaps(seg, caps):
			b.WriteString(strings.ToUpper(seg))
		default:
			b.WriteString(titleCaser.String(seg))
		}
		first = false
	}
	for i, r := range name {
		if isSeparator(r) {
			emit(name[start:i])
			start = i + 1
		}
	}
	emit(name[start:])
	return b.String()
}

func isCaps(seg string, caps []string) bool {
	for _, c := range caps {
		if strings.EqualFold(seg, c) {
			return true
		}
	}
	return false
}

// Exported upper-cases the first rune: "getItem" -> "GetItem".
func Exported(s string) string {
	if s == "" {
		return ""
	}
	runes := []rune(s)
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}

// Unexported lower-cases the first rune: "GetItem" -> "getItem".
func Unexported(s string) string {
	if s == "" {
		return ""
	}
	runes := []rune(s)
	runes[0] = unicode.ToLower(runes[0])
	return string(runes)
}

// EscapeReserved appends an underscore when name is a Go keyword, a
// predeclared identifier or one of extra. Keyword matching ignores case so
// "Type" is escaped as well.
func EscapeReserved(name string, extra ...string) string {
	if goKeywords[strings.ToLower(name)] || predeclared[name] {
		return name + "_"
	}
	for _, e := range extra {
		if name == e {
			return name + "_"
		}
	}
	return name
}

// IsIdentifier reports whether s is a valid Go identifier that is not a keyword.
func IsIdentifier(s string) bool {
	if s == "" || goKeywords[s] {
		return false
	}
	for i, r := range s {
		if r == '_' || unicode.IsLetter(r) {
			continue
		}
		if i > 0 && unicode.IsDigit(r) {
			continue
		}
		return false
	}
	return true
}
