package generator

import (
	"fmt"
	"strings"
)

// OperationKind classifies an endpoint by HTTP verb.
type OperationKind int

const (
	// KindRead is a GET.
	KindRead OperationKind = iota
	// KindCreate is a POST.
	KindCreate
	// KindUpdate is a PUT or PATCH.
	KindUpdate
	// KindDelete is a DELETE.
	KindDelete
)

// String returns the lower-case kind name.
func (k OperationKind) String() string {
	switch k {
	case KindRead:
		return "read"
	case KindCreate:
		return "create"
	case KindUpdate:
		return "update"
	case KindDelete:
		return "delete"
	default:
		return "unknown"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (k OperationKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// HasBody reports whether the kind carries a request body slot.
func (k OperationKind) HasBody() bool {
	return k == KindCreate || k == KindUpdate
}

// Shape is the result cardinality of an endpoint.
type Shape int

const (
	// ShapeSingle returns one item.
	ShapeSingle Shape = iota
	// ShapeMany returns a slice.
	ShapeMany
	// ShapeNone returns only an error.
	ShapeNone
)

// String returns the lower-case shape name.
func (s Shape) String() string {
	switch s {
	case ShapeSingle:
		return "single"
	case ShapeMany:
		return "many"
	case ShapeNone:
		return "none"
	default:
		return "unknown"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (s Shape) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// verbKinds maps bindable verbs to their kind.
var verbKinds = map[string]OperationKind{
	"get":    KindRead,
	"post":   KindCreate,
	"put":    KindUpdate,
	"patch":  KindUpdate,
	"delete": KindDelete,
}

// Tag is a document tag, which doubles as an authorization tier.
type Tag struct {
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
}

// RequestBody is a wire input shape that converts into a data type.
type RequestBody struct {
	// Refs are the raw annotation values resolving to Symbol, sorted.
	Refs []string `json:"refs" yaml:"refs"`
	// Symbol is the qualified Go type, e.g. "Def.AdminReqUpdateUnit".
	Symbol string `json:"symbol" yaml:"symbol"`
	// DataType is the data type the body converts into.
	DataType string `json:"data_type" yaml:"data_type"`
	// Generated is true when Symbol lives in the generated-types package.
	Generated bool `json:"generated" yaml:"generated"`
}

// Parameter is one typed operation parameter.
type Parameter struct {
	// Name is the Go identifier used in signatures.
	Name string `json:"name" yaml:"name"`
	// WireKey is the parameter name as declared in the document.
	WireKey string `json:"wire_key" yaml:"wire_key"`
	// Type is the Go type, pointer-prefixed when optional.
	Type     string `json:"type" yaml:"type"`
	Required bool   `json:"required" yaml:"required"`
	In       string `json:"in" yaml:"in"`
}

// DispatchKey identifies a core handler.
type DispatchKey struct {
	Tag      string
	Function string
}

// String returns "tag/function".
func (k DispatchKey) String() string {
	return k.Tag + "/" + k.Function
}

// Endpoint is one bindable operation under one tag.
type Endpoint struct {
	Path         string        `json:"path" yaml:"path"`
	Method       string        `json:"method" yaml:"method"`
	Tag          string        `json:"tag" yaml:"tag"`
	CoreFunction string        `json:"core_function" yaml:"core_function"`
	DataType     string        `json:"data_type" yaml:"data_type"`
	Kind         OperationKind `json:"kind" yaml:"kind"`
	Shape        Shape         `json:"shape" yaml:"shape"`
	Parameters   []Parameter   `json:"parameters,omitempty" yaml:"parameters,omitempty"`
	// AuthType is empty for unauthenticated endpoints.
	AuthType string `json:"auth_type,omitempty" yaml:"auth_type,omitempty"`
	// RequestBody is the raw annotation value, empty when elided.
	RequestBody string `json:"request_body,omitempty" yaml:"request_body,omitempty"`
	// RequestSymbol is the resolved request body type, empty when elided.
	RequestSymbol      string `json:"request_symbol,omitempty" yaml:"request_symbol,omitempty"`
	ConversionFunction string `json:"conversion_function,omitempty" yaml:"conversion_function,omitempty"`
}

// Key returns the endpoint's dispatch key.
func (e *Endpoint) Key() DispatchKey {
	return DispatchKey{Tag: e.Tag, Function: e.CoreFunction}
}

// HTTPMethod returns the upper-case verb.
func (e *Endpoint) HTTPMethod() string {
	return strings.ToUpper(e.Method)
}

// String returns "GET /path (Tag/function)".
func (e *Endpoint) String() string {
	return fmt.Sprintf("%s %s (%s)", e.HTTPMethod(), e.Path, e.Key())
}

// Model is the normalized view of a document that every emitter reads.
// It is built once per run and not modified afterwards.
type Model struct {
	// Tags are the document tags in declaration order.
	Tags []Tag `json:"tags" yaml:"tags"`
	// DataTypes is the set of data types, sorted.
	DataTypes []string `json:"data_types" yaml:"data_types"`
	// RequestBodies is de-duplicated by symbol and sorted by symbol.
	RequestBodies []RequestBody `json:"request_bodies" yaml:"request_bodies"`
	// Endpoints are ordered by path, then verb, then tag order on the operation.
	Endpoints []Endpoint `json:"endpoints" yaml:"endpoints"`
}

// RequestBodiesFor returns the request bodies converting into dataType.
func (m *Model) RequestBodiesFor(dataType string) []RequestBody {
	var out []RequestBody
	for _, rb := range m.RequestBodies {
		if rb.DataType == dataType {
			out = append(out, rb)
		}
	}
	return out
}

// ConversionFunctions returns the distinct conversion function names, sorted.
func (m *Model) ConversionFunctions() []string {
	set := map[string]bool{}
	for _, ep := range m.Endpoints {
		if ep.ConversionFunction != "" {
			set[ep.ConversionFunction] = true
		}
	}
	return sortedKeys(set)
}

// EndpointsForTier returns the endpoints bound under tag, in model order.
func (m *Model) EndpointsForTier(tag string) []Endpoint {
	var out []Endpoint
	for _, ep := range m.Endpoints {
		if ep.Tag == tag {
			out = append(out, ep)
		}
	}
	return out
}
