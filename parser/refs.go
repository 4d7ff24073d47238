package parser

import (
	"strings"

	"github.com/erraggy/oasbind/internal/pathutil"
	"github.com/erraggy/oasbind/oaserrors"
)

// maxRefHops bounds chained local references.
const maxRefHops = 16

// ResolveParameter follows a local parameter $ref. Parameters without a
// $ref are returned as-is.
func (d *Document) ResolveParameter(p *Parameter) (*Parameter, error) {
	for hops := 0; p != nil && p.Ref != ""; hops++ {
		if hops >= maxRefHops {
			return nil, &oaserrors.ReferenceError{Ref: p.Ref, Message: "too many chained references"}
		}
		name, ok := pathutil.CutRef(p.Ref, pathutil.RefPrefixParameters)
		if !ok {
			return nil, &oaserrors.ReferenceError{Ref: p.Ref, Message: "only local component parameters are supported"}
		}
		var next *Parameter
		if d.Components != nil {
			next = d.Components.Parameters[unescapePointer(name)]
		}
		if next == nil {
			return nil, &oaserrors.ReferenceError{Ref: p.Ref, Message: "parameter not found"}
		}
		p = next
	}
	return p, nil
}

// ResolveSchema follows a local schema $ref. Schemas without a $ref are
// returned as-is.
func (d *Document) ResolveSchema(s *Schema) (*Schema, error) {
	for hops := 0; s != nil && s.Ref != ""; hops++ {
		if hops >= maxRefHops {
			return nil, &oaserrors.ReferenceError{Ref: s.Ref, Message: "too many chained references"}
		}
		name, ok := pathutil.CutRef(s.Ref, pathutil.RefPrefixSchemas)
		if !ok {
			return nil, &oaserrors.ReferenceError{Ref: s.Ref, Message: "only local component schemas are supported"}
		}
		var next *Schema
		if d.Components != nil {
			next = d.Components.Schemas[unescapePointer(name)]
		}
		if next == nil {
			return nil, &oaserrors.ReferenceError{Ref: s.Ref, Message: "schema not found"}
		}
		s = next
	}
	return s, nil
}

// ResolveResponse follows a local response $ref.
func (d *Document) ResolveResponse(r *Response) (*Response, error) {
	for hops := 0; r != nil && r.Ref != ""; hops++ {
		if hops >= maxRefHops {
			return nil, &oaserrors.ReferenceError{Ref: r.Ref, Message: "too many chained references"}
		}
		name, ok := pathutil.CutRef(r.Ref, pathutil.RefPrefixResponses)
		if !ok {
			return nil, &oaserrors.ReferenceError{Ref: r.Ref, Message: "only local component responses are supported"}
		}
		var next *Response
		if d.Components != nil {
			next = d.Components.Responses[unescapePointer(name)]
		}
		if next == nil {
			return nil, &oaserrors.ReferenceError{Ref: r.Ref, Message: "response not found"}
		}
		r = next
	}
	return r, nil
}

// unescapePointer decodes a JSON pointer token (RFC 6901).
func unescapePointer(token string) string {
	token = strings.ReplaceAll(token, "~1", "/")
	return strings.ReplaceAll(token, "~0", "~")
}
