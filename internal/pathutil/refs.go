package pathutil

import "strings"

// Local component reference prefixes.
const (
	RefPrefixSchemas       = "#/components/schemas/"
	RefPrefixParameters    = "#/components/parameters/"
	RefPrefixResponses     = "#/components/responses/"
	RefPrefixRequestBodies = "#/components/requestBodies/"
)

// SchemaRef builds "#/components/schemas/{name}".
func SchemaRef(name string) string {
	return RefPrefixSchemas + name
}

// ParameterRef builds "#/components/parameters/{name}".
func ParameterRef(name string) string {
	return RefPrefixParameters + name
}

// ResponseRef builds "#/components/responses/{name}".
func ResponseRef(name string) string {
	return RefPrefixResponses + name
}

// CutRef returns the component name of ref when it starts with prefix.
// An empty name is reported as not found.
func CutRef(ref, prefix string) (string, bool) {
	name, ok := strings.CutPrefix(ref, prefix)
	if !ok || name == "" {
		return "", false
	}
	return name, true
}
