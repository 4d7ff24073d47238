package generator

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/erraggy/oasbind/internal/issues"
)

// dispatchWrap is the error returned when applying a resolved handler fails.
const dispatchWrap = `return errors.WrapErrorAction(logutils.ActionApply, "api core handler", nil, err)`

// EmitDispatch renders the dispatch bindings: the data type unions, the
// registration routine and the reference resolvers it relies on.
func EmitDispatch(m *Model, contracts []Contract, cfg *Config) ([]byte, []issues.Issue) {
	var body bytes.Buffer
	paired := pairedBodies(m)
	conversions := m.ConversionFunctions()

	imps := newImportSet()
	imps.add(aliasMux, aliasTokenAuth, aliasErrors, aliasLogUtils)
	for _, dt := range m.DataTypes {
		imps.addType(dt)
	}
	for _, rb := range m.RequestBodies {
		imps.addType(rb.Symbol)
	}

	writeUnions(&body, m)
	writeRegisterHandler(&body, m, paired, len(conversions) > 0)
	writeGetAuthHandler(&body, cfg)
	writeGetCoreHandler(&body, contracts, cfg)
	if len(conversions) > 0 {
		writeGetConversionFunc(&body, conversions)
	}
	if cfg.RouteTable {
		writeRouteTable(&body, m)
	}

	var buf bytes.Buffer
	writeHeader(&buf, cfg, cfg.Packages.Web)
	found := imps.render(&buf, cfg, cfg.Output.Dispatch)
	buf.Write(body.Bytes())

	out, fmtIssues := formatSource(cfg.Output.Dispatch, buf.Bytes())
	return out, append(found, fmtIssues...)
}

// pairedBodies returns, per data type, the request bodies that at least one
// endpoint binds together with a conversion function.
func pairedBodies(m *Model) map[string][]RequestBody {
	used := map[string]bool{}
	for _, ep := range m.Endpoints {
		if ep.RequestSymbol != "" && ep.ConversionFunction != "" {
			used[ep.RequestSymbol] = true
		}
	}
	out := map[string][]RequestBody{}
	for _, rb := range m.RequestBodies {
		if used[rb.Symbol] {
			out[rb.DataType] = append(out[rb.DataType], rb)
		}
	}
	return out
}

func writeUnions(buf *bytes.Buffer, m *Model) {
	buf.WriteString("// apiDataType represents any stored data type that may be read/written by an API\n")
	buf.WriteString("type apiDataType interface {\n")
	if len(m.DataTypes) == 0 {
		// An empty union would accept every type.
		buf.WriteString("\tany\n")
	} else {
		buf.WriteString("\t" + strings.Join(m.DataTypes, " | ") + "\n")
	}
	buf.WriteString("}\n\n")

	isData := map[string]bool{}
	for _, dt := range m.DataTypes {
		isData[dt] = true
	}
	var terms []string
	for _, rb := range m.RequestBodies {
		if !isData[rb.Symbol] {
			terms = append(terms, rb.Symbol)
		}
	}
	terms = append(terms, "apiDataType")

	buf.WriteString("// requestDataType represents any data type that may be sent in an API request body\n")
	buf.WriteString("type requestDataType interface {\n")
	buf.WriteString("\t" + strings.Join(terms, " | ") + "\n")
	buf.WriteString("}\n\n")
}

func writeRegisterHandler(buf *bytes.Buffer, m *Model, paired map[string][]RequestBody, hasConversions bool) {
	buf.WriteString("func (a *Adapter) registerHandler(router *mux.Router, pathStr string, method string, tag string, coreFunc string, dataType string, authType interface{},\n")
	buf.WriteString("\trequestBody interface{}, conversionFunc interface{}) error {\n")
	buf.WriteString("\tauthorization, err := a.getAuthHandler(tag, authType)\n")
	buf.WriteString("\tif err != nil {\n")
	buf.WriteString("\t\treturn errors.WrapErrorAction(logutils.ActionGet, \"api auth handler\", nil, err)\n")
	buf.WriteString("\t}\n\n")
	buf.WriteString("\tcoreHandler, err := a.getCoreHandler(tag, coreFunc)\n")
	buf.WriteString("\tif err != nil {\n")
	buf.WriteString("\t\treturn errors.WrapErrorAction(logutils.ActionGet, \"api core handler\", nil, err)\n")
	buf.WriteString("\t}\n\n")
	if hasConversions {
		buf.WriteString("\tvar convFunc interface{}\n")
		buf.WriteString("\tif conversionFunc != nil {\n")
		buf.WriteString("\t\tconvFunc, err = a.getConversionFunc(conversionFunc)\n")
		buf.WriteString("\t\tif err != nil {\n")
		buf.WriteString("\t\t\treturn errors.WrapErrorAction(logutils.ActionGet, \"request body conversion function\", nil, err)\n")
		buf.WriteString("\t\t}\n")
		buf.WriteString("\t}\n\n")
	}

	buf.WriteString("\tswitch dataType {\n")
	for _, dt := range m.DataTypes {
		fmt.Fprintf(buf, "\tcase %q:\n", dt)
		bodies := paired[dt]
		if len(bodies) == 0 {
			writeDispatchCase(buf, "\t\t", dt, dt)
			continue
		}
		buf.WriteString("\t\tswitch requestBody {\n")
		for _, rb := range bodies {
			quoted := make([]string, len(rb.Refs))
			for i, ref := range rb.Refs {
				quoted[i] = fmt.Sprintf("%q", ref)
			}
			fmt.Fprintf(buf, "\t\tcase %s:\n", strings.Join(quoted, ", "))
			writeDispatchCase(buf, "\t\t\t", dt, rb.Symbol)
		}
		buf.WriteString("\t\tdefault:\n")
		writeDispatchCase(buf, "\t\t\t", dt, dt)
		buf.WriteString("\t\t}\n")
	}
	buf.WriteString("\tdefault:\n")
	buf.WriteString("\t\treturn errors.ErrorData(logutils.StatusInvalid, \"data type reference\", &logutils.FieldArgs{\"data_type\": dataType})\n")
	buf.WriteString("\t}\n\n")
	buf.WriteString("\treturn nil\n")
	buf.WriteString("}\n\n")
}

// writeDispatchCase writes one handler construction for data type d and
// body type b. A body type other than d goes through a conversion function.
func writeDispatchCase(buf *bytes.Buffer, indent, d, b string) {
	params := d + ", " + b
	fields := "authorization: authorization, messageDataType: " + messageDataType(d)
	if b != d {
		fmt.Fprintf(buf, "%sconvert, ok := convFunc.(func(*tokenauth.Claims, *%s) (*%s, error))\n", indent, b, d)
		fmt.Fprintf(buf, "%sif !ok {\n", indent)
		fmt.Fprintf(buf, "%s\treturn errors.ErrorData(logutils.StatusInvalid, \"request body conversion function\", &logutils.FieldArgs{\"x-conversion-function\": conversionFunc})\n", indent)
		fmt.Fprintf(buf, "%s}\n\n", indent)
		fields = "authorization: authorization, conversionFunc: convert, messageDataType: " + messageDataType(d)
	}
	fmt.Fprintf(buf, "%shandler := apiHandler[%s]{%s}\n", indent, params, fields)
	fmt.Fprintf(buf, "%serr = setCoreHandler[%s](&handler, coreHandler, method, tag, coreFunc)\n", indent, params)
	fmt.Fprintf(buf, "%sif err != nil {\n", indent)
	fmt.Fprintf(buf, "%s\t%s\n", indent, dispatchWrap)
	fmt.Fprintf(buf, "%s}\n\n", indent)
	fmt.Fprintf(buf, "%srouter.HandleFunc(pathStr, handleRequest[%s](&handler, a.paths, a.logger)).Methods(method)\n", indent, params)
}

// messageDataType is the log type tag of a data type: the model package
// declares a Type<Name> constant per model type; anything else is tagged
// by its declared name.
func messageDataType(dataType string) string {
	if qualifierOf(dataType) == aliasModel {
		return aliasModel + ".Type" + localName(dataType)
	}
	return "logutils.MessageDataType(dataType)"
}

func writeGetAuthHandler(buf *bytes.Buffer, cfg *Config) {
	var tiers []TierConfig
	for _, t := range cfg.Tiers {
		if t.Authenticated {
			tiers = append(tiers, t)
		}
	}

	buf.WriteString("func (a *Adapter) getAuthHandler(tag string, ref interface{}) (tokenauth.Handler, error) {\n")
	buf.WriteString("\tif ref == nil {\n")
	buf.WriteString("\t\treturn nil, nil\n")
	buf.WriteString("\t}\n\n")
	if len(tiers) == 0 || len(cfg.AuthKinds) == 0 {
		buf.WriteString("\treturn nil, errors.ErrorData(logutils.StatusInvalid, \"authentication type reference\", &logutils.FieldArgs{\"tag\": tag, \"ref\": ref})\n")
		buf.WriteString("}\n\n")
		return
	}

	buf.WriteString("\tvar handler tokenauth.Handlers\n")
	buf.WriteString("\tswitch tag {\n")
	for _, t := range tiers {
		fmt.Fprintf(buf, "\tcase %q:\n", t.Name)
		fmt.Fprintf(buf, "\t\thandler = a.auth.%s\n", strings.ToLower(t.Name))
	}
	buf.WriteString("\tdefault:\n")
	buf.WriteString("\t\treturn nil, errors.ErrorData(logutils.StatusInvalid, \"tag\", &logutils.FieldArgs{\"tag\": tag})\n")
	buf.WriteString("\t}\n\n")

	buf.WriteString("\tswitch ref {\n")
	for _, kind := range cfg.AuthKinds {
		fmt.Fprintf(buf, "\tcase %q:\n", kind)
		fmt.Fprintf(buf, "\t\treturn handler.%s, nil\n", kind)
	}
	buf.WriteString("\tdefault:\n")
	buf.WriteString("\t\treturn nil, errors.ErrorData(logutils.StatusInvalid, \"authentication type reference\", &logutils.FieldArgs{\"ref\": ref})\n")
	buf.WriteString("\t}\n")
	buf.WriteString("}\n\n")
}

func writeGetCoreHandler(buf *bytes.Buffer, contracts []Contract, cfg *Config) {
	byTier := map[string][]Contract{}
	for _, c := range contracts {
		byTier[c.Endpoint.Tag] = append(byTier[c.Endpoint.Tag], c)
	}

	buf.WriteString("func (a *Adapter) getCoreHandler(tag string, ref string) (interface{}, error) {\n")
	buf.WriteString("\tswitch tag {\n")
	for _, tier := range cfg.Tiers {
		list := byTier[tier.Name]
		if len(list) == 0 {
			continue
		}
		fmt.Fprintf(buf, "\tcase %q:\n", tier.Name)
		buf.WriteString("\t\tswitch ref {\n")
		for _, c := range list {
			fmt.Fprintf(buf, "\t\tcase %q:\n", c.Endpoint.CoreFunction)
			fmt.Fprintf(buf, "\t\t\treturn a.apisHandler.%s, nil\n", c.HandlerName)
		}
		buf.WriteString("\t\t}\n")
	}
	buf.WriteString("\t}\n\n")
	buf.WriteString("\treturn nil, errors.ErrorData(logutils.StatusInvalid, \"core function\", logutils.StringArgs(tag+\"/\"+ref))\n")
	buf.WriteString("}\n\n")
}

func writeGetConversionFunc(buf *bytes.Buffer, conversions []string) {
	buf.WriteString("func (a *Adapter) getConversionFunc(ref interface{}) (interface{}, error) {\n")
	buf.WriteString("\tif ref == nil {\n")
	buf.WriteString("\t\treturn nil, nil\n")
	buf.WriteString("\t}\n\n")
	buf.WriteString("\tswitch ref {\n")
	for _, fn := range conversions {
		fmt.Fprintf(buf, "\tcase %q:\n", fn)
		fmt.Fprintf(buf, "\t\treturn %s, nil\n", fn)
	}
	buf.WriteString("\tdefault:\n")
	buf.WriteString("\t\treturn nil, errors.ErrorData(logutils.StatusInvalid, \"conversion function reference\", &logutils.FieldArgs{\"ref\": ref})\n")
	buf.WriteString("\t}\n")
	buf.WriteString("}\n\n")
}

func writeRouteTable(buf *bytes.Buffer, m *Model) {
	buf.WriteString("// apiRoute is one documented endpoint bound to a core function\n")
	buf.WriteString("type apiRoute struct {\n")
	buf.WriteString("\tpath           string\n")
	buf.WriteString("\tmethod         string\n")
	buf.WriteString("\ttag            string\n")
	buf.WriteString("\tcoreFunc       string\n")
	buf.WriteString("\tdataType       string\n")
	buf.WriteString("\tauthType       interface{}\n")
	buf.WriteString("\trequestBody    interface{}\n")
	buf.WriteString("\tconversionFunc interface{}\n")
	buf.WriteString("}\n\n")

	buf.WriteString("var apiRoutes = []apiRoute{\n")
	for _, ep := range m.Endpoints {
		fields := []string{
			fmt.Sprintf("path: %q", ep.Path),
			fmt.Sprintf("method: %q", ep.HTTPMethod()),
			fmt.Sprintf("tag: %q", ep.Tag),
			fmt.Sprintf("coreFunc: %q", ep.CoreFunction),
			fmt.Sprintf("dataType: %q", ep.DataType),
		}
		if ep.AuthType != "" {
			fields = append(fields, fmt.Sprintf("authType: %q", ep.AuthType))
		}
		if ep.RequestBody != "" {
			fields = append(fields, fmt.Sprintf("requestBody: %q", ep.RequestBody))
		}
		if ep.ConversionFunction != "" {
			fields = append(fields, fmt.Sprintf("conversionFunc: %q", ep.ConversionFunction))
		}
		buf.WriteString("\t{" + strings.Join(fields, ", ") + "},\n")
	}
	buf.WriteString("}\n\n")

	buf.WriteString("// registerHandlers registers every route in apiRoutes on router\n")
	buf.WriteString("func (a *Adapter) registerHandlers(router *mux.Router) error {\n")
	buf.WriteString("\tfor _, r := range apiRoutes {\n")
	buf.WriteString("\t\terr := a.registerHandler(router, r.path, r.method, r.tag, r.coreFunc, r.dataType, r.authType, r.requestBody, r.conversionFunc)\n")
	buf.WriteString("\t\tif err != nil {\n")
	buf.WriteString("\t\t\treturn errors.WrapErrorAction(logutils.ActionApply, \"api route\", &logutils.FieldArgs{\"path\": r.path, \"method\": r.method}, err)\n")
	buf.WriteString("\t\t}\n")
	buf.WriteString("\t}\n")
	buf.WriteString("\treturn nil\n")
	buf.WriteString("}\n")
}
