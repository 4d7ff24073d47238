package mcpserver

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/erraggy/oasbind/generator"
	"github.com/erraggy/oasbind/internal/issues"
	"github.com/erraggy/oasbind/internal/severity"
)

type generateInput struct {
	Spec          specInput `json:"spec"                     jsonschema:"The annotated OpenAPI document to generate from"`
	Config        string    `json:"config,omitempty"         jsonschema:"Path to an oasbind YAML configuration file"`
	DispatchOut   string    `json:"dispatch_out,omitempty"   jsonschema:"Output path of the dispatch bindings file"`
	RoutingOut    string    `json:"routing_out,omitempty"    jsonschema:"Output path of the routing stubs file"`
	InterfacesOut string    `json:"interfaces_out,omitempty" jsonschema:"Output path of the interface contracts file"`
	Caps          []string  `json:"caps,omitempty"           jsonschema:"Name segments rendered fully upper-case, e.g. id, url"`
	Strict        *bool     `json:"strict,omitempty"         jsonschema:"Fail on any warning (default from OASBIND_GENERATE_STRICT)"`
	DryRun        bool      `json:"dry_run,omitempty"        jsonschema:"Report the manifest without writing files"`
}

type generatedFileInfo struct {
	Name string `json:"name"`
	Path string `json:"path"`
	Size int    `json:"size"`
}

type generateOutput struct {
	Success       bool                `json:"success"`
	Written       bool                `json:"written"`
	FileCount     int                 `json:"file_count"`
	Files         []generatedFileInfo `json:"files"`
	EndpointCount int                 `json:"endpoint_count"`
	DataTypeCount int                 `json:"data_type_count"`
	InfoCount     int                 `json:"info_count"`
	WarningCount  int                 `json:"warning_count"`
	CriticalCount int                 `json:"critical_count"`
	DuplicateKeys []string            `json:"duplicate_keys,omitempty"`
	Issues        []string            `json:"issues,omitempty"`
}

func handleGenerate(_ context.Context, _ *mcp.CallToolRequest, input generateInput) (*mcp.CallToolResult, generateOutput, error) {
	parseResult, err := input.Spec.resolve()
	if err != nil {
		return errResult(err), generateOutput{}, nil
	}
	genCfg, err := loadGeneratorConfig(input.Config)
	if err != nil {
		return errResult(err), generateOutput{}, nil
	}

	strict := cfg.GenerateStrict
	if input.Strict != nil {
		strict = *input.Strict
	}
	opts := []generator.Option{
		generator.WithParsed(*parseResult),
		generator.WithConfig(genCfg),
		generator.WithStrictMode(strict),
		generator.WithOutputPaths(input.DispatchOut, input.RoutingOut, input.InterfacesOut),
	}
	if len(input.Caps) > 0 {
		opts = append(opts, generator.WithCapsSegments(input.Caps...))
	}

	result, err := generator.GenerateWithOptions(opts...)
	if err != nil {
		return errResult(err), generateOutput{}, nil
	}

	output := generateOutput{
		Success:       result.Success,
		FileCount:     len(result.Files),
		EndpointCount: len(result.Model.Endpoints),
		DataTypeCount: len(result.Model.DataTypes),
		InfoCount:     result.InfoCount,
		WarningCount:  result.WarningCount,
		CriticalCount: result.CriticalCount,
		DuplicateKeys: result.DuplicateKeys,
		Issues:        issueStrings(result.Issues, severity.SeverityWarning),
	}
	output.Files = makeSlice[generatedFileInfo](len(result.Files))
	for _, f := range result.Files {
		output.Files = append(output.Files, generatedFileInfo{Name: f.Name, Path: f.Path, Size: len(f.Content)})
	}

	if input.DryRun || result.HasCriticalIssues() {
		return nil, output, nil
	}
	if err := result.WriteFiles(); err != nil {
		return errResult(fmt.Errorf("failed to write generated files: %w", err)), generateOutput{}, nil
	}
	output.Written = true
	return nil, output, nil
}

// issueStrings renders the issues at or above min.
func issueStrings(list []issues.Issue, min severity.Severity) []string {
	filtered := issues.Filter(list, min)
	out := makeSlice[string](len(filtered))
	for _, i := range filtered {
		out = append(out, i.String())
	}
	return out
}
