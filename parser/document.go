package parser

import (
	"fmt"
	"sort"
	"strings"
)

// Document is a parsed OpenAPI 3.x document.
type Document struct {
	OpenAPI    string               `yaml:"openapi" json:"openapi"`
	Info       *Info                `yaml:"info,omitempty" json:"info,omitempty"`
	Tags       []*Tag               `yaml:"tags,omitempty" json:"tags,omitempty"`
	Paths      map[string]*PathItem `yaml:"paths,omitempty" json:"paths,omitempty"`
	Components *Components          `yaml:"components,omitempty" json:"components,omitempty"`
	// Extra holds the x- extension fields of the object.
	Extra map[string]any `yaml:",inline" json:"-"`
}

// Info carries document metadata.
type Info struct {
	Title   string         `yaml:"title" json:"title"`
	Version string         `yaml:"version" json:"version"`
	Extra   map[string]any `yaml:",inline" json:"-"`
}

// Tag groups operations. In binding generation each tag is an
// authorization tier.
type Tag struct {
	Name        string         `yaml:"name" json:"name"`
	Description string         `yaml:"description,omitempty" json:"description,omitempty"`
	Extra       map[string]any `yaml:",inline" json:"-"`
}

// Components holds reusable objects referenced with local $ref.
type Components struct {
	Schemas       map[string]*Schema      `yaml:"schemas,omitempty" json:"schemas,omitempty"`
	Parameters    map[string]*Parameter   `yaml:"parameters,omitempty" json:"parameters,omitempty"`
	RequestBodies map[string]*RequestBody `yaml:"requestBodies,omitempty" json:"requestBodies,omitempty"`
	Responses     map[string]*Response    `yaml:"responses,omitempty" json:"responses,omitempty"`
	Extra         map[string]any          `yaml:",inline" json:"-"`
}

// PathItem describes the operations available on a single path.
type PathItem struct {
	Ref         string         `yaml:"$ref,omitempty" json:"$ref,omitempty"`
	Summary     string         `yaml:"summary,omitempty" json:"summary,omitempty"`
	Description string         `yaml:"description,omitempty" json:"description,omitempty"`
	Get         *Operation     `yaml:"get,omitempty" json:"get,omitempty"`
	Put         *Operation     `yaml:"put,omitempty" json:"put,omitempty"`
	Post        *Operation     `yaml:"post,omitempty" json:"post,omitempty"`
	Delete      *Operation     `yaml:"delete,omitempty" json:"delete,omitempty"`
	Options     *Operation     `yaml:"options,omitempty" json:"options,omitempty"`
	Head        *Operation     `yaml:"head,omitempty" json:"head,omitempty"`
	Patch       *Operation     `yaml:"patch,omitempty" json:"patch,omitempty"`
	Trace       *Operation     `yaml:"trace,omitempty" json:"trace,omitempty"`
	Parameters  []*Parameter   `yaml:"parameters,omitempty" json:"parameters,omitempty"`
	Extra       map[string]any `yaml:",inline" json:"-"`
}

// Verbs lists HTTP methods in the order operations are visited.
var Verbs = []string{"get", "put", "post", "delete", "patch", "options", "head", "trace"}

// Operation returns the operation for a lower-case verb, or nil.
func (p *PathItem) Operation(verb string) *Operation {
	if p == nil {
		return nil
	}
	switch verb {
	case "get":
		return p.Get
	case "put":
		return p.Put
	case "post":
		return p.Post
	case "delete":
		return p.Delete
	case "patch":
		return p.Patch
	case "options":
		return p.Options
	case "head":
		return p.Head
	case "trace":
		return p.Trace
	default:
		return nil
	}
}

// Operation describes a single API operation on a path.
type Operation struct {
	Tags        []string       `yaml:"tags,omitempty" json:"tags,omitempty"`
	Summary     string         `yaml:"summary,omitempty" json:"summary,omitempty"`
	Description string         `yaml:"description,omitempty" json:"description,omitempty"`
	OperationID string         `yaml:"operationId,omitempty" json:"operationId,omitempty"`
	Parameters  []*Parameter   `yaml:"parameters,omitempty" json:"parameters,omitempty"`
	RequestBody *RequestBody   `yaml:"requestBody,omitempty" json:"requestBody,omitempty"`
	Responses   *Responses     `yaml:"responses,omitempty" json:"responses,omitempty"`
	Deprecated  bool           `yaml:"deprecated,omitempty" json:"deprecated,omitempty"`
	Extra       map[string]any `yaml:",inline" json:"-"`
}

// Extension returns the string value of an "x-" field on the operation.
// The second result is false when the field is absent or null. Non-string
// scalars are rendered with fmt.
func (o *Operation) Extension(key string) (string, bool) {
	if o == nil {
		return "", false
	}
	return extensionString(o.Extra, key)
}

func extensionString(extra map[string]any, key string) (string, bool) {
	v, ok := extra[key]
	if !ok || v == nil {
		return "", false
	}
	switch val := v.(type) {
	case string:
		return strings.TrimSpace(val), true
	case map[string]any, []any:
		return "", false
	default:
		return fmt.Sprint(val), true
	}
}

// Parameter describes a single operation parameter.
type Parameter struct {
	Ref         string         `yaml:"$ref,omitempty" json:"$ref,omitempty"`
	Name        string         `yaml:"name,omitempty" json:"name,omitempty"`
	In          string         `yaml:"in,omitempty" json:"in,omitempty"`
	Description string         `yaml:"description,omitempty" json:"description,omitempty"`
	Required    bool           `yaml:"required,omitempty" json:"required,omitempty"`
	Deprecated  bool           `yaml:"deprecated,omitempty" json:"deprecated,omitempty"`
	Schema      *Schema        `yaml:"schema,omitempty" json:"schema,omitempty"`
	Extra       map[string]any `yaml:",inline" json:"-"`
}

// RequestBody describes a request payload.
type RequestBody struct {
	Ref         string                `yaml:"$ref,omitempty" json:"$ref,omitempty"`
	Description string                `yaml:"description,omitempty" json:"description,omitempty"`
	Required    bool                  `yaml:"required,omitempty" json:"required,omitempty"`
	Content     map[string]*MediaType `yaml:"content,omitempty" json:"content,omitempty"`
	Extra       map[string]any        `yaml:",inline" json:"-"`
}

// Responses maps status codes to responses.
type Responses struct {
	Default *Response            `yaml:"default,omitempty" json:"default,omitempty"`
	Codes   map[string]*Response `yaml:",inline" json:"-"`
}

// Code returns the response declared for a status code, or nil.
func (r *Responses) Code(code string) *Response {
	if r == nil {
		return nil
	}
	return r.Codes[code]
}

// Response describes a single response from an API operation.
type Response struct {
	Ref         string                `yaml:"$ref,omitempty" json:"$ref,omitempty"`
	Description string                `yaml:"description,omitempty" json:"description,omitempty"`
	Content     map[string]*MediaType `yaml:"content,omitempty" json:"content,omitempty"`
	Extra       map[string]any        `yaml:",inline" json:"-"`
}

// MediaType pairs a content type with its schema.
type MediaType struct {
	Schema *Schema        `yaml:"schema,omitempty" json:"schema,omitempty"`
	Extra  map[string]any `yaml:",inline" json:"-"`
}

// SortedPaths returns the path templates in lexical order.
func (d *Document) SortedPaths() []string {
	paths := make([]string, 0, len(d.Paths))
	for p := range d.Paths {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}

// TagNames returns the declared tag names in document order.
func (d *Document) TagNames() []string {
	names := make([]string, 0, len(d.Tags))
	for _, t := range d.Tags {
		if t != nil {
			names = append(names, t.Name)
		}
	}
	return names
}
