// Package testutil provides annotated OpenAPI fixtures for unit tests.
package testutil

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

// DocHeader is an OpenAPI 3.0 prelude declaring the default tiers as tags.
// Append a paths block to get a complete document.
const DocHeader = `openapi: 3.0.3
info:
  title: Inline
  version: 1.0.0
tags:
  - name: Default
  - name: Client
  - name: Admin
`

// DuplicateBindingDoc binds Client/getThing on two paths.
const DuplicateBindingDoc = DocHeader + `paths:
  /a:
    get:
      tags: [Client]
      x-core-function: getThing
      x-data-type: model.A
  /b:
    get:
      tags: [Client]
      x-core-function: getThing
      x-data-type: model.B
`

// MissingDataTypeDoc has a core function without a data type, which
// extraction reports as a warning.
const MissingDataTypeDoc = DocHeader + `paths:
  /a:
    get:
      tags: [Client]
      x-core-function: getA
`

// Doc returns DocHeader followed by the given paths block. Each line of
// paths is expected to be indented as a child of "paths:".
func Doc(paths string) string {
	return DocHeader + "paths:\n" + paths
}

// CatalogPath returns the absolute path of the shared catalog fixture,
// generator/testdata/catalog.yaml.
func CatalogPath() string {
	_, file, _, ok := runtime.Caller(0)
	if !ok {
		panic("testutil: cannot locate fixtures")
	}
	return filepath.Join(filepath.Dir(file), "..", "..", "generator", "testdata", "catalog.yaml")
}

// WriteSpec writes content to dir/name and returns the file path.
func WriteSpec(t testing.TB, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("testutil: writing %s: %v", path, err)
	}
	return path
}
