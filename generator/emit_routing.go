package generator

import (
	"bytes"
	"fmt"

	"github.com/erraggy/oasbind/internal/issues"
)

// EmitRouting renders the routing stubs: one APIsHandler method per
// endpoint that unpacks the parameter bag and forwards to the tier's
// interface method.
func EmitRouting(m *Model, contracts []Contract, cfg *Config) ([]byte, []issues.Issue) {
	imps := newImportSet()
	imps.add(aliasCore, aliasTokenAuth)

	var body bytes.Buffer
	body.WriteString("// APIsHandler handles the rest APIs implementation\n")
	body.WriteString("type APIsHandler struct {\n")
	body.WriteString("\tapp *core.Application\n")
	body.WriteString("}\n\n")

	byTier := map[string][]Contract{}
	for _, c := range contracts {
		byTier[c.Endpoint.Tag] = append(byTier[c.Endpoint.Tag], c)
	}
	for _, tier := range cfg.Tiers {
		list := byTier[tier.Name]
		if len(list) == 0 {
			continue
		}
		fmt.Fprintf(&body, "// %s\n\n", tier.Name)
		for _, c := range list {
			writeRoutingStub(&body, imps, c)
		}
	}

	body.WriteString("// NewAPIsHandler creates new rest Handler instance\n")
	body.WriteString("func NewAPIsHandler(app *core.Application) APIsHandler {\n")
	body.WriteString("\treturn APIsHandler{app: app}\n")
	body.WriteString("}\n")

	var buf bytes.Buffer
	writeHeader(&buf, cfg, cfg.Packages.Web)
	found := imps.render(&buf, cfg, cfg.Output.Routing)
	buf.Write(body.Bytes())

	out, fmtIssues := formatSource(cfg.Output.Routing, buf.Bytes())
	return out, append(found, fmtIssues...)
}

func writeRoutingStub(buf *bytes.Buffer, imps *importSet, c Contract) {
	for _, slot := range c.Outward.Slots {
		imps.addType(slot.Type)
	}
	for _, r := range c.Outward.Results {
		imps.addType(r)
	}

	fmt.Fprintf(buf, "func (a APIsHandler) %s%s {\n", c.HandlerName, c.Outward.String())

	failure := "return "
	if c.Outward.ReturnsValue() {
		failure += "nil, "
	}
	for _, slot := range c.Inward.Slots {
		if slot.Kind != SlotParam {
			continue
		}
		imps.add(aliasUtils, aliasErrors, aliasLogUtils)
		imps.addType(slot.Type)
		fmt.Fprintf(buf, "\t%s, err := utils.GetValue[%s](params, %q, %t)\n", slot.Name, slot.Type, slot.WireKey, slot.Required)
		buf.WriteString("\tif err != nil {\n")
		fmt.Fprintf(buf, "\t\t%serrors.WrapErrorAction(logutils.ActionGet, %s, logutils.StringArgs(%q), err)\n",
			failure, paramLogType(c.Endpoint, slot.WireKey), slot.WireKey)
		buf.WriteString("\t}\n\n")
	}

	fmt.Fprintf(buf, "\treturn a.app.%s.%s(%s)\n", c.Endpoint.Tag, c.Method, c.Inward.ArgList())
	buf.WriteString("}\n\n")
}

// paramLogType is the logutils type constant naming where a parameter
// came from.
func paramLogType(ep Endpoint, wireKey string) string {
	for _, p := range ep.Parameters {
		if p.WireKey == wireKey && p.In == "query" {
			return "logutils.TypeQueryParam"
		}
	}
	return "logutils.TypePathParam"
}
