package generator

import (
	"github.com/erraggy/oasbind/parser"
)

// maxArrayDepth bounds nested array derivation.
const maxArrayDepth = 8

// deriveType maps a parameter schema to a Go type. The second result is
// false when the schema has no primitive mapping; such parameters are left
// out of typed signatures.
//
//	array             -> "[]" + deriveType(items)
//	string/date-time  -> time.Time
//	string            -> string
//	integer           -> int
//	number            -> float64
//	boolean           -> bool
func deriveType(schema *parser.Schema) (string, bool) {
	return deriveTypeDepth(schema, 0)
}

func deriveTypeDepth(schema *parser.Schema, depth int) (string, bool) {
	if schema == nil || depth > maxArrayDepth {
		return "", false
	}
	switch schema.PrimaryType() {
	case "array":
		elem, ok := deriveTypeDepth(schema.Items, depth+1)
		if !ok {
			return "", false
		}
		return "[]" + elem, true
	case "string":
		if schema.Format == "date-time" {
			return "time.Time", true
		}
		return "string", true
	case "integer":
		return "int", true
	case "number":
		return "float64", true
	case "boolean":
		return "bool", true
	default:
		return "", false
	}
}
