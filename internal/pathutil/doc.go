// Package pathutil holds small helpers for OpenAPI path templates, local
// component references and output file paths.
//
// Path template parameters are read with [TemplateParams]:
//
//	pathutil.TemplateParams("/items/{item_id}/tags/{tag}") // ["item_id", "tag"]
//
// Local references are built and split with the Ref helpers:
//
//	ref := pathutil.SchemaRef("Item")              // "#/components/schemas/Item"
//	name, ok := pathutil.CutRef(ref, pathutil.RefPrefixSchemas) // "Item", true
//
// [SanitizeOutputPath] resolves an output path to an absolute one and
// refuses symlinks.
package pathutil
