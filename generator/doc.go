// Package generator turns an annotated OpenAPI 3.x document into the Go
// code that binds HTTP endpoints to business logic.
//
// # Annotations
//
// Each operation that should be bound carries vendor extensions:
//
//	x-core-function:       getItem                              # required
//	x-data-type:           model.Item                           # required
//	x-authentication-type: User                                 # optional
//	x-request-body:        "#/components/schemas/_req_item"     # optional
//	x-conversion-function: itemFromDef                          # with x-request-body
//
// The keys are configurable through [AnnotationConfig]. Operations without a
// core function are ignored; operations that cannot be bound are skipped
// with a warning issue.
//
// # Pipeline
//
// A run extracts a [Model] once ([ExtractModel]), derives a [Contract] per
// endpoint ([BuildContracts]) and hands both to three emitters:
//
//   - [EmitDispatch]: data type unions, registerHandler and the resolvers
//     for authentication handlers, core handlers and conversion functions,
//     plus an optional static route table
//   - [EmitRouting]: APIsHandler methods that unpack the parameter bag and
//     forward to the tier interface
//   - [EmitInterfaces]: one interface per tier
//
// The routing stubs and the interfaces both render the inward signature of
// the same Contract, so they cannot drift apart.
//
// # Usage
//
//	cfg, err := generator.LoadConfig("oasbind.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	result, err := generator.GenerateWithOptions(
//	    generator.WithFilePath("openapi.yaml"),
//	    generator.WithConfig(cfg),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, issue := range result.Issues {
//	    fmt.Println(issue)
//	}
//	if err := result.WriteFiles(); err != nil {
//	    log.Fatal(err)
//	}
//
// # Options
//
// Exactly one source is required: [WithFilePath], [WithBytes] (named with
// [WithSourceName]) or an already parsed document via [WithParsed].
// [WithConfig] supplies the configuration; [WithCapsSegments] and
// [WithOutputPaths] override parts of it for one run. [WithLogger] sets the
// logger, [WithStrictMode] fails the run on warnings and [WithIncludeInfo]
// controls whether info issues are kept in the result.
//
// # Issues
//
// Skipped entries are reported as warnings, generation choices as info.
// Two endpoints binding the same tag and core function are a critical
// issue: the artifacts are still rendered for inspection but
// [GenerateResult.WriteFiles] refuses to write them. In strict mode any
// warning fails the run.
package generator
