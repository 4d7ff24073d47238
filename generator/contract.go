package generator

import (
	"strings"

	"github.com/erraggy/oasbind/internal/naming"
)

// SlotKind identifies the role of a signature slot.
type SlotKind int

const (
	// SlotClaims carries the caller's identity.
	SlotClaims SlotKind = iota
	// SlotParams is the untyped parameter bag of outward signatures.
	SlotParams
	// SlotParam is one typed parameter of inward signatures.
	SlotParam
	// SlotBody carries the request body.
	SlotBody
)

// String returns the lower-case slot kind name.
func (k SlotKind) String() string {
	switch k {
	case SlotClaims:
		return "claims"
	case SlotParams:
		return "params"
	case SlotParam:
		return "param"
	case SlotBody:
		return "body"
	default:
		return "unknown"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (k SlotKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Slot is one parameter position in a signature.
type Slot struct {
	Kind SlotKind `json:"kind" yaml:"kind"`
	Name string   `json:"name" yaml:"name"`
	Type string   `json:"type" yaml:"type"`
	// WireKey and Required are set for SlotParam.
	WireKey  string `json:"wire_key,omitempty" yaml:"wire_key,omitempty"`
	Required bool   `json:"required,omitempty" yaml:"required,omitempty"`
}

// Signature is an ordered slot list plus result types.
type Signature struct {
	Slots   []Slot   `json:"slots" yaml:"slots"`
	Results []string `json:"results" yaml:"results"`
}

// ParamList renders "claims *tokenauth.Claims, itemId string".
func (s Signature) ParamList() string {
	parts := make([]string, len(s.Slots))
	for i, slot := range s.Slots {
		parts[i] = slot.Name + " " + slot.Type
	}
	return strings.Join(parts, ", ")
}

// ResultList renders "error" or "(*model.Item, error)".
func (s Signature) ResultList() string {
	if len(s.Results) == 1 {
		return s.Results[0]
	}
	return "(" + strings.Join(s.Results, ", ") + ")"
}

// ArgList renders the slot names for a forwarding call.
func (s Signature) ArgList() string {
	names := make([]string, len(s.Slots))
	for i, slot := range s.Slots {
		names[i] = slot.Name
	}
	return strings.Join(names, ", ")
}

// String renders "(params) results".
func (s Signature) String() string {
	return "(" + s.ParamList() + ") " + s.ResultList()
}

// ReturnsValue reports whether the signature has a result besides error.
func (s Signature) ReturnsValue() bool {
	return len(s.Results) > 1
}

// Contract holds both signatures of one endpoint.
type Contract struct {
	Endpoint Endpoint `json:"endpoint" yaml:"endpoint"`
	// Method is the exported interface method name.
	Method string `json:"method" yaml:"method"`
	// HandlerName is the routing stub name, lower(tag) + Method.
	HandlerName string    `json:"handler_name" yaml:"handler_name"`
	Outward     Signature `json:"outward" yaml:"outward"`
	Inward      Signature `json:"inward" yaml:"inward"`
	// BodyType is empty when the endpoint takes no body.
	BodyType string `json:"body_type,omitempty" yaml:"body_type,omitempty"`
}

// BuildContract derives the outward and inward signatures of ep.
//
// Both share the result shape: read-many returns a slice, read-one and
// writes return a pointer, delete returns only an error. The inward
// signature expands the parameter bag into typed slots and omits the claims
// slot for unauthenticated endpoints.
func BuildContract(ep Endpoint) Contract {
	c := Contract{
		Endpoint:    ep,
		Method:      naming.Exported(ep.CoreFunction),
		HandlerName: handlerName(ep.Tag, ep.CoreFunction),
	}
	if ep.Kind.HasBody() {
		c.BodyType = ep.DataType
		if ep.RequestSymbol != "" && ep.ConversionFunction != "" {
			c.BodyType = ep.RequestSymbol
		}
	}

	results := resultTypes(ep)
	claims := Slot{Kind: SlotClaims, Name: "claims", Type: "*" + aliasTokenAuth + ".Claims"}
	body := Slot{Kind: SlotBody, Name: "item", Type: c.BodyType}

	c.Outward.Slots = []Slot{claims, {Kind: SlotParams, Name: "params", Type: "map[string]interface{}"}}
	if c.BodyType != "" {
		c.Outward.Slots = append(c.Outward.Slots, body)
	}
	c.Outward.Results = results

	if ep.AuthType != "" {
		c.Inward.Slots = append(c.Inward.Slots, claims)
	}
	for _, p := range ep.Parameters {
		c.Inward.Slots = append(c.Inward.Slots, Slot{
			Kind:     SlotParam,
			Name:     p.Name,
			Type:     p.Type,
			WireKey:  p.WireKey,
			Required: p.Required,
		})
	}
	if c.BodyType != "" {
		c.Inward.Slots = append(c.Inward.Slots, body)
	}
	c.Inward.Results = append([]string(nil), results...)
	return c
}

// handlerName is the routing stub name of a core function bound under tag.
func handlerName(tag, coreFn string) string {
	return strings.ToLower(tag) + naming.Exported(coreFn)
}

func resultTypes(ep Endpoint) []string {
	switch ep.Shape {
	case ShapeNone:
		return []string{"error"}
	case ShapeMany:
		return []string{"[]" + ep.DataType, "error"}
	default:
		return []string{"*" + ep.DataType, "error"}
	}
}

// BuildContracts builds one contract per endpoint, in model order.
func BuildContracts(m *Model) []Contract {
	out := make([]Contract, 0, len(m.Endpoints))
	for _, ep := range m.Endpoints {
		out = append(out, BuildContract(ep))
	}
	return out
}
