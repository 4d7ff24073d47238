package generator

import (
	"bytes"
	"fmt"

	"github.com/erraggy/oasbind/internal/issues"
)

// EmitInterfaces renders one interface per tier with the inward signature
// of every endpoint bound under it, grouped by data type.
func EmitInterfaces(m *Model, contracts []Contract, cfg *Config) ([]byte, []issues.Issue) {
	imps := newImportSet()

	byTier := map[string][]Contract{}
	for _, c := range contracts {
		byTier[c.Endpoint.Tag] = append(byTier[c.Endpoint.Tag], c)
	}

	var body bytes.Buffer
	for i, tier := range cfg.Tiers {
		if i > 0 {
			body.WriteString("\n")
		}
		desc := tier.Description
		if desc == "" {
			desc = tier.Name
		}
		fmt.Fprintf(&body, "// %s exposes %s APIs to the driver adapters\n", tier.Name, desc)
		fmt.Fprintf(&body, "type %s interface {\n", tier.Name)

		for j, group := range groupByDataType(byTier[tier.Name]) {
			if j > 0 {
				body.WriteString("\n")
			}
			fmt.Fprintf(&body, "\t// %s\n\n", group[0].Endpoint.DataType)
			for _, c := range group {
				for _, slot := range c.Inward.Slots {
					imps.addType(slot.Type)
				}
				for _, r := range c.Inward.Results {
					imps.addType(r)
				}
				fmt.Fprintf(&body, "\t%s%s\n", c.Method, c.Inward.String())
			}
		}
		body.WriteString("}\n")
	}

	var buf bytes.Buffer
	writeHeader(&buf, cfg, cfg.Packages.Interfaces)
	found := imps.render(&buf, cfg, cfg.Output.Interfaces)
	buf.Write(body.Bytes())

	out, fmtIssues := formatSource(cfg.Output.Interfaces, buf.Bytes())
	return out, append(found, fmtIssues...)
}

// groupByDataType splits contracts by data type, keeping groups in order
// of first appearance and contracts in their original order.
func groupByDataType(contracts []Contract) [][]Contract {
	var groups [][]Contract
	index := map[string]int{}
	for _, c := range contracts {
		dt := c.Endpoint.DataType
		i, ok := index[dt]
		if !ok {
			i = len(groups)
			index[dt] = i
			groups = append(groups, nil)
		}
		groups[i] = append(groups[i], c)
	}
	return groups
}
