// Package parser decodes annotated OpenAPI 3.x documents.
//
// The document model keeps only what binding generation reads: tags, paths
// with their operations, parameters (inline or via local $ref), response
// schemas and components. Every object carries an Extra map holding its
// "x-" extension fields, which is where generation annotations live.
//
// # Quick Start
//
//	result, err := parser.ParseWithOptions(parser.WithFilePath("api.yaml"))
//	if err != nil {
//		log.Fatal(err)
//	}
//	doc := result.Document
//	for _, path := range doc.SortedPaths() {
//		fmt.Println(path)
//	}
//
// Both YAML and JSON are accepted; JSON is decoded as the YAML subset it is.
//
// # Options
//
// The source is one of [WithFilePath], [WithReader] or [WithBytes].
// [WithSourceName] replaces the label used in results and errors,
// [WithMaxFileSize] bounds the input and [WithLogger] enables debug logging.
package parser
