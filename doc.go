// Package oasbind generates Go glue code from annotated OpenAPI documents.
//
// An OpenAPI 3.x document whose operations carry generation annotations
// (x-core-function, x-data-type, x-authentication-type, x-request-body and
// x-conversion-function) is turned into three cooperating Go source files:
//
//   - dispatch bindings: type unions plus the registration and lookup
//     routines that bind each endpoint to its auth handler, core handler
//     and optional request conversion
//   - routing stubs: one handler per endpoint that extracts typed
//     parameters from the request and forwards to the core layer
//   - interface contracts: one interface per authorization tier declaring
//     the core methods the stubs call
//
// # Packages
//
//   - parser: decodes the annotated document
//   - generator: extracts the endpoint model and renders the artifacts
//   - oaserrors: typed errors for use with errors.Is and errors.As
//
// # Quick Start
//
//	result, err := generator.GenerateWithOptions(
//	    generator.WithFilePath("api.yaml"),
//	    generator.WithConfig(generator.DefaultConfig()),
//	)
//	if err != nil {
//		log.Fatal(err)
//	}
//	if err := result.WriteFiles(); err != nil {
//		log.Fatal(err)
//	}
//
// The command line tool lives in cmd/oasbind.
package oasbind
