package issues

import "strings"

// OperationContext identifies the endpoint an issue belongs to.
type OperationContext struct {
	Method       string // upper case
	Path         string // template, e.g. "/items/{item_id}"
	Tag          string
	CoreFunction string
}

// Key is the "tag/function" dispatch key, or just the function when the
// issue is not tied to a tag.
func (c OperationContext) Key() string {
	if c.Tag == "" || c.CoreFunction == "" {
		return c.CoreFunction
	}
	return c.Tag + "/" + c.CoreFunction
}

// String renders the context as "(METHOD path, tag/function)", leaving out
// whatever is unknown. An empty context renders as "".
func (c OperationContext) String() string {
	var parts []string
	switch {
	case c.Method != "":
		parts = append(parts, c.Method+" "+c.Path)
	case c.Path != "":
		parts = append(parts, "path: "+c.Path)
	}
	if k := c.Key(); k != "" {
		parts = append(parts, k)
	}
	if len(parts) == 0 {
		return ""
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

// IsEmpty reports whether c carries nothing to render.
func (c OperationContext) IsEmpty() bool {
	return c.Method == "" && c.Path == "" && c.CoreFunction == ""
}
