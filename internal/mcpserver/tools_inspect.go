package mcpserver

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/erraggy/oasbind/generator"
	"github.com/erraggy/oasbind/internal/severity"
)

type inspectInput struct {
	Spec   specInput `json:"spec"             jsonschema:"The annotated OpenAPI document to inspect"`
	Config string    `json:"config,omitempty" jsonschema:"Path to an oasbind YAML configuration file"`
	Caps   []string  `json:"caps,omitempty"   jsonschema:"Name segments rendered fully upper-case, e.g. id, url"`
	Tag    string    `json:"tag,omitempty"    jsonschema:"Only report endpoints bound under this tag"`
	Offset int       `json:"offset,omitempty" jsonschema:"Skip the first N endpoints"`
	Limit  int       `json:"limit,omitempty"  jsonschema:"Maximum endpoints to return (default from OASBIND_INSPECT_LIMIT)"`
}

type inspectOutput struct {
	Source        string                     `json:"source"`
	Version       string                     `json:"openapi"`
	DataTypes     []string                   `json:"data_types"`
	RequestBodies []generator.RequestBody    `json:"request_bodies,omitempty"`
	Total         int                        `json:"total"`
	Returned      int                        `json:"returned"`
	Endpoints     []generator.EndpointReport `json:"endpoints,omitempty"`
	DuplicateKeys []string                   `json:"duplicate_keys,omitempty"`
	Issues        []string                   `json:"issues,omitempty"`
}

func handleInspect(_ context.Context, _ *mcp.CallToolRequest, input inspectInput) (*mcp.CallToolResult, inspectOutput, error) {
	parseResult, err := input.Spec.resolve()
	if err != nil {
		return errResult(err), inspectOutput{}, nil
	}
	genCfg, err := loadGeneratorConfig(input.Config)
	if err != nil {
		return errResult(err), inspectOutput{}, nil
	}

	opts := []generator.Option{
		generator.WithParsed(*parseResult),
		generator.WithConfig(genCfg),
	}
	if len(input.Caps) > 0 {
		opts = append(opts, generator.WithCapsSegments(input.Caps...))
	}
	result, err := generator.GenerateWithOptions(opts...)
	if err != nil {
		return errResult(err), inspectOutput{}, nil
	}

	rep := generator.NewReport(result)
	endpoints := rep.Endpoints
	if input.Tag != "" {
		filtered := makeSlice[generator.EndpointReport](len(endpoints))
		for _, ep := range endpoints {
			if ep.Tag == input.Tag {
				filtered = append(filtered, ep)
			}
		}
		endpoints = filtered
	}
	page := paginate(endpoints, input.Offset, input.Limit)

	return nil, inspectOutput{
		Source:        rep.Source,
		Version:       rep.Version,
		DataTypes:     rep.DataTypes,
		RequestBodies: rep.RequestBodies,
		Total:         len(endpoints),
		Returned:      len(page),
		Endpoints:     page,
		DuplicateKeys: result.DuplicateKeys,
		Issues:        issueStrings(result.Issues, severity.SeverityWarning),
	}, nil
}
