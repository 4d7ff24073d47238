package pathutil

import "regexp"

// PathParamRegex matches path template parameters like {item_id}.
// It captures the parameter name inside the braces.
var PathParamRegex = regexp.MustCompile(`\{([^}]+)\}`)

// TemplateParams returns the parameter names of a path template in order
// of appearance. Repeated names are returned once.
func TemplateParams(path string) []string {
	var out []string
	seen := map[string]bool{}
	for _, m := range PathParamRegex.FindAllStringSubmatch(path, -1) {
		if !seen[m[1]] {
			seen[m[1]] = true
			out = append(out, m[1])
		}
	}
	return out
}
