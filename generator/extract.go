package generator

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/erraggy/oasbind/internal/issues"
	"github.com/erraggy/oasbind/internal/naming"
	"github.com/erraggy/oasbind/internal/pathutil"
	"github.com/erraggy/oasbind/internal/severity"
	"github.com/erraggy/oasbind/oaserrors"
	"github.com/erraggy/oasbind/parser"
)

const jsonContentType = "application/json"

// slotNames are identifiers owned by generated method bodies. Parameter
// names equal to one of them are escaped.
var slotNames = []string{"a", "claims", "params", "item", "err"}

// extractor walks a document once and accumulates the model.
type extractor struct {
	doc    *parser.Document
	cfg    *Config
	log    parser.Logger
	issues []issues.Issue

	dataTypes map[string]bool
	bodies    map[string]*RequestBody
	seen      map[DispatchKey]Endpoint
	handlers  map[string]Endpoint // by routing stub name
	model     *Model
}

// ExtractModel builds the Model for doc. Malformed entries are skipped with
// an issue; extraction itself never fails.
func ExtractModel(doc *parser.Document, cfg *Config, log parser.Logger) (*Model, []issues.Issue) {
	if log == nil {
		log = parser.NopLogger{}
	}
	x := &extractor{
		doc:       doc,
		cfg:       cfg,
		log:       log,
		dataTypes: map[string]bool{},
		bodies:    map[string]*RequestBody{},
		seen:      map[DispatchKey]Endpoint{},
		handlers:  map[string]Endpoint{},
		model:     &Model{},
	}
	x.extractTags()
	for _, path := range doc.SortedPaths() {
		x.extractPath(path, doc.Paths[path])
	}
	x.finish()
	return x.model, x.issues
}

func (x *extractor) report(sev severity.Severity, path, field, msg string, ctx *issues.OperationContext) {
	x.issues = append(x.issues, issues.Issue{
		Path:             path,
		Field:            field,
		Message:          msg,
		Severity:         sev,
		OperationContext: ctx,
	})
	attrs := []any{"path", path, "reason", msg}
	if ctx != nil {
		attrs = append(attrs, "method", ctx.Method)
	}
	switch sev {
	case severity.SeverityInfo:
		x.log.Debug("extraction note", attrs...)
	case severity.SeverityWarning:
		x.log.Warn("skipping entry", attrs...)
	default:
		x.log.Error("conflicting entry", attrs...)
	}
}

func (x *extractor) extractTags() {
	declared := map[string]bool{}
	for _, t := range x.doc.Tags {
		if t == nil {
			continue
		}
		x.model.Tags = append(x.model.Tags, Tag{Name: t.Name, Description: t.Description})
		declared[t.Name] = true
		if _, ok := x.cfg.Tier(t.Name); !ok {
			x.report(severity.SeverityInfo, "tags", "name",
				fmt.Sprintf("tag %q is not a configured tier", t.Name), nil)
		}
	}
	for _, tier := range x.cfg.Tiers {
		if !declared[tier.Name] {
			x.report(severity.SeverityInfo, "tags", "name",
				fmt.Sprintf("tier %q is not declared in the document tags", tier.Name), nil)
		}
	}
}

func (x *extractor) extractPath(path string, item *parser.PathItem) {
	if item == nil {
		return
	}
	jsonPath := "paths." + path
	if item.Ref != "" {
		x.report(severity.SeverityWarning, jsonPath, "$ref", "path item references are not supported", &issues.OperationContext{Path: path})
		return
	}
	for _, verb := range parser.Verbs {
		op := item.Operation(verb)
		if op == nil {
			continue
		}
		x.extractOperation(path, verb, item, op)
	}
}

func (x *extractor) extractOperation(path, verb string, item *parser.PathItem, op *parser.Operation) {
	ann := x.cfg.Annotations
	jsonPath := fmt.Sprintf("paths.%s.%s", path, verb)
	ctx := &issues.OperationContext{Method: strings.ToUpper(verb), Path: path}

	coreFn, hasCore := op.Extension(ann.CoreFunction)
	dataType, hasData := op.Extension(ann.DataType)
	if hasCore {
		ctx.CoreFunction = coreFn
	}

	if hasData {
		if !validTypeSymbol(dataType) {
			x.report(severity.SeverityWarning, jsonPath, ann.DataType,
				fmt.Sprintf("data type %q is not a Go type name", dataType), ctx)
			return
		}
		x.dataTypes[dataType] = true
	}

	body := x.extractRequestBody(jsonPath, op, dataType, hasData, ctx)

	if !hasCore {
		x.log.Debug("operation has no core function", "path", path, "method", verb)
		return
	}
	kind, bindable := verbKinds[verb]
	if !bindable {
		x.report(severity.SeverityWarning, jsonPath, ann.CoreFunction,
			fmt.Sprintf("verb %q cannot be bound", verb), ctx)
		return
	}
	if !naming.IsIdentifier(coreFn) {
		x.report(severity.SeverityWarning, jsonPath, ann.CoreFunction,
			fmt.Sprintf("core function %q is not a Go identifier", coreFn), ctx)
		return
	}
	if !hasData {
		x.report(severity.SeverityWarning, jsonPath, ann.DataType, "missing data type annotation", ctx)
		return
	}
	if len(op.Tags) == 0 {
		x.report(severity.SeverityWarning, jsonPath, "tags", "operation has no tag to bind under", ctx)
		return
	}

	ep := Endpoint{
		Path:         path,
		Method:       verb,
		CoreFunction: coreFn,
		DataType:     dataType,
		Kind:         kind,
	}
	ep.Shape = x.detectShape(jsonPath, kind, op, ctx)
	ep.Parameters = x.extractParameters(jsonPath, item, op, ctx)
	x.bindAuth(&ep, jsonPath, op, ctx)
	x.bindConversion(&ep, jsonPath, op, body, ctx)

	for _, tag := range op.Tags {
		tier, ok := x.cfg.Tier(tag)
		if !ok {
			x.report(severity.SeverityWarning, jsonPath, "tags",
				fmt.Sprintf("tag %q is not a configured tier", tag), ctx)
			continue
		}
		bound := ep
		bound.Tag = tag
		bound.Parameters = append([]Parameter(nil), ep.Parameters...)
		tagCtx := &issues.OperationContext{Method: ctx.Method, Path: path, Tag: tag, CoreFunction: coreFn}

		if prev, dup := x.seen[bound.Key()]; dup {
			x.report(severity.SeverityCritical, jsonPath, ann.CoreFunction,
				fmt.Sprintf("dispatch key %s is already bound by %s %s", bound.Key(), prev.HTTPMethod(), prev.Path), tagCtx)
			continue
		}
		handler := handlerName(tag, coreFn)
		if prev, clash := x.handlers[handler]; clash {
			x.report(severity.SeverityCritical, jsonPath, ann.CoreFunction,
				fmt.Sprintf("core function %q renders as %s, already generated for %s (%s %s)",
					coreFn, handler, prev.Key(), prev.HTTPMethod(), prev.Path), tagCtx)
			continue
		}
		if bound.AuthType != "" && !tier.Authenticated {
			x.report(severity.SeverityWarning, jsonPath, ann.AuthType,
				fmt.Sprintf("tier %q has no auth handlers; registration will fail at runtime", tag), tagCtx)
		}
		x.model.Endpoints = append(x.model.Endpoints, bound)
		x.seen[bound.Key()] = bound
		x.handlers[handler] = bound
	}
}

// extractRequestBody records the operation's request body when it differs
// from the data type and returns it, or nil when elided or malformed.
func (x *extractor) extractRequestBody(jsonPath string, op *parser.Operation, dataType string, hasData bool, ctx *issues.OperationContext) *RequestBody {
	field := x.cfg.Annotations.RequestBody
	ref, ok := op.Extension(field)
	if !ok || ref == "" {
		return nil
	}
	if !hasData {
		x.report(severity.SeverityWarning, jsonPath, field, "request body declared without a data type", ctx)
		return nil
	}
	if ref == dataType {
		return nil
	}
	symbol, generated, err := x.resolveSymbol(ref)
	if err != nil {
		x.report(severity.SeverityWarning, jsonPath, field, err.Error(), ctx)
		return nil
	}
	if symbol == dataType {
		return nil
	}

	rb, exists := x.bodies[symbol]
	if !exists {
		rb = &RequestBody{Symbol: symbol, DataType: dataType, Generated: generated}
		x.bodies[symbol] = rb
	}
	if rb.DataType != dataType {
		x.report(severity.SeverityWarning, jsonPath, field,
			fmt.Sprintf("request body %s already converts into %s, not %s", symbol, rb.DataType, dataType), ctx)
		return nil
	}
	if !containsString(rb.Refs, ref) {
		rb.Refs = append(rb.Refs, ref)
	}
	return rb
}

// resolveSymbol maps a request-body annotation to a Go type symbol.
// Component schema references land in the generated-types package; any
// other value must already be a qualified symbol.
func (x *extractor) resolveSymbol(ref string) (symbol string, generated bool, err error) {
	if name, ok := pathutil.CutRef(ref, pathutil.RefPrefixSchemas); ok {
		ident := naming.Exported(naming.ToCompoundIdentifier(name, x.cfg.CapsSegments))
		if !naming.IsIdentifier(ident) {
			return "", false, &oaserrors.ReferenceError{Ref: ref, Message: "schema name does not map to a Go identifier"}
		}
		return x.cfg.TypesQualifier + "." + ident, true, nil
	}
	if strings.HasPrefix(ref, "#") {
		return "", false, &oaserrors.ReferenceError{Ref: ref, Message: "only component schema references are supported"}
	}
	if !strings.Contains(ref, ".") || !validTypeSymbol(ref) {
		return "", false, &oaserrors.ReferenceError{Ref: ref, Message: "not a schema reference or qualified type"}
	}
	return ref, false, nil
}

func (x *extractor) detectShape(jsonPath string, kind OperationKind, op *parser.Operation, ctx *issues.OperationContext) Shape {
	switch kind {
	case KindDelete:
		return ShapeNone
	case KindCreate, KindUpdate:
		return ShapeSingle
	}

	schemaType, err := x.responseSchemaType(op)
	if err != nil {
		x.report(severity.SeverityInfo, jsonPath+".responses.200", "schema",
			"cannot determine result shape, assuming single item: "+err.Error(), ctx)
		return ShapeSingle
	}
	if schemaType == "array" {
		return ShapeMany
	}
	return ShapeSingle
}

var errNoResponseSchema = errors.New("no 200 application/json schema type")

func (x *extractor) responseSchemaType(op *parser.Operation) (string, error) {
	resp, err := x.doc.ResolveResponse(op.Responses.Code("200"))
	if err != nil {
		return "", err
	}
	if resp == nil {
		return "", errNoResponseSchema
	}
	media := resp.Content[jsonContentType]
	if media == nil || media.Schema == nil {
		return "", errNoResponseSchema
	}
	schema, err := x.doc.ResolveSchema(media.Schema)
	if err != nil {
		return "", err
	}
	t := schema.PrimaryType()
	if t == "" {
		return "", errNoResponseSchema
	}
	return t, nil
}

// extractParameters merges path-level and operation parameters. An
// operation parameter with the same (name, in) replaces the path one in place.
func (x *extractor) extractParameters(jsonPath string, item *parser.PathItem, op *parser.Operation, ctx *issues.OperationContext) []Parameter {
	type key struct{ name, in string }
	var merged []*parser.Parameter
	index := map[key]int{}

	add := func(raw *parser.Parameter, override bool) {
		p, err := x.doc.ResolveParameter(raw)
		if err != nil {
			x.report(severity.SeverityWarning, jsonPath+".parameters", "$ref", err.Error(), ctx)
			return
		}
		if p == nil || p.Name == "" {
			return
		}
		k := key{p.Name, p.In}
		if i, ok := index[k]; ok {
			if override {
				merged[i] = p
			}
			return
		}
		index[k] = len(merged)
		merged = append(merged, p)
	}
	for _, p := range item.Parameters {
		add(p, false)
	}
	for _, p := range op.Parameters {
		add(p, true)
	}
	for _, name := range pathutil.TemplateParams(ctx.Path) {
		if _, ok := index[key{name, "path"}]; !ok {
			x.report(severity.SeverityWarning, jsonPath+".parameters", name,
				fmt.Sprintf("path template parameter %q is not declared and is left out of the signature", name), ctx)
		}
	}

	reserved := append(append([]string(nil), slotNames...), x.reservedAliases()...)
	used := map[string]bool{}
	var out []Parameter
	for _, p := range merged {
		goType, ok := deriveType(p.Schema)
		if !ok {
			x.report(severity.SeverityWarning, jsonPath+".parameters", p.Name,
				fmt.Sprintf("parameter %q has no primitive type and is left out of the signature", p.Name), ctx)
			continue
		}
		name := naming.EscapeReserved(naming.ToCompoundIdentifier(p.Name, x.cfg.CapsSegments), reserved...)
		if !naming.IsIdentifier(name) {
			x.report(severity.SeverityWarning, jsonPath+".parameters", p.Name,
				fmt.Sprintf("parameter %q does not map to a Go identifier", p.Name), ctx)
			continue
		}
		base := name
		for n := 2; used[name]; n++ {
			name = fmt.Sprintf("%s%d", base, n)
		}
		used[name] = true

		required := p.Required || p.In == "path"
		if !required {
			goType = "*" + goType
		}
		out = append(out, Parameter{
			Name:     name,
			WireKey:  p.Name,
			Type:     goType,
			Required: required,
			In:       p.In,
		})
	}
	return out
}

// reservedAliases are import aliases a parameter name would shadow.
func (x *extractor) reservedAliases() []string {
	aliases := make([]string, 0, len(x.cfg.Imports)+2)
	for alias := range x.cfg.Imports {
		aliases = append(aliases, alias)
	}
	return append(aliases, "time", x.cfg.TypesQualifier)
}

func (x *extractor) bindAuth(ep *Endpoint, jsonPath string, op *parser.Operation, ctx *issues.OperationContext) {
	field := x.cfg.Annotations.AuthType
	auth, ok := op.Extension(field)
	if !ok || auth == "" {
		return
	}
	ep.AuthType = auth
	if !x.cfg.IsAuthKind(auth) {
		x.report(severity.SeverityWarning, jsonPath, field,
			fmt.Sprintf("authentication type %q is not configured; registration will fail at runtime", auth), ctx)
	}
}

// bindConversion pairs the endpoint's request body with its conversion
// function. A body without a conversion, or a conversion without a usable
// body, is bound as the plain data type.
func (x *extractor) bindConversion(ep *Endpoint, jsonPath string, op *parser.Operation, body *RequestBody, ctx *issues.OperationContext) {
	field := x.cfg.Annotations.ConversionFunction
	conv, hasConv := op.Extension(field)
	hasConv = hasConv && conv != ""

	switch {
	case body == nil && !hasConv:
		return
	case !ep.Kind.HasBody():
		x.report(severity.SeverityWarning, jsonPath, field,
			fmt.Sprintf("%s endpoints take no request body; request body and conversion ignored", ep.Kind), ctx)
	case body == nil:
		x.report(severity.SeverityWarning, jsonPath, field,
			fmt.Sprintf("conversion function %q has no request body to convert; bound as %s", conv, ep.DataType), ctx)
	case !hasConv:
		x.report(severity.SeverityWarning, jsonPath, x.cfg.Annotations.RequestBody,
			fmt.Sprintf("request body %s has no conversion function; bound as %s", body.Symbol, ep.DataType), ctx)
	case !naming.IsIdentifier(conv):
		x.report(severity.SeverityWarning, jsonPath, field,
			fmt.Sprintf("conversion function %q is not a Go identifier", conv), ctx)
	default:
		raw, _ := op.Extension(x.cfg.Annotations.RequestBody)
		ep.RequestBody = raw
		ep.RequestSymbol = body.Symbol
		ep.ConversionFunction = conv
	}
}

func (x *extractor) finish() {
	x.model.DataTypes = sortedKeys(x.dataTypes)

	x.model.RequestBodies = make([]RequestBody, 0, len(x.bodies))
	for _, rb := range x.bodies {
		refs := append([]string(nil), rb.Refs...)
		sort.Strings(refs)
		x.model.RequestBodies = append(x.model.RequestBodies, RequestBody{
			Refs:      refs,
			Symbol:    rb.Symbol,
			DataType:  rb.DataType,
			Generated: rb.Generated,
		})
	}
	sort.Slice(x.model.RequestBodies, func(i, j int) bool {
		return x.model.RequestBodies[i].Symbol < x.model.RequestBodies[j].Symbol
	})

	if len(x.model.Endpoints) == 0 {
		x.report(severity.SeverityWarning, "paths", "", "no operation could be bound", nil)
	}
}

// validTypeSymbol accepts "Name" or "pkg.Name".
func validTypeSymbol(s string) bool {
	parts := strings.Split(s, ".")
	if len(parts) > 2 {
		return false
	}
	for _, p := range parts {
		if !naming.IsIdentifier(p) {
			return false
		}
	}
	return true
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

func sortedKeys(set map[string]bool) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
