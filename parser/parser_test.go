package parser

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erraggy/oasbind/oaserrors"
)

func TestParseWithOptions_File(t *testing.T) {
	result, err := ParseWithOptions(WithFilePath("testdata/items.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "testdata/items.yaml", result.SourcePath)
	assert.Equal(t, SourceFormatYAML, result.SourceFormat)
	assert.Equal(t, "3.0.3", result.Version)
	assert.Positive(t, result.SourceSize)

	doc := result.Document
	require.NotNil(t, doc)
	assert.Equal(t, []string{"Client", "Admin"}, doc.TagNames())
	assert.Equal(t, []string{"/items", "/items/{item_id}"}, doc.SortedPaths())

	op := doc.Paths["/items/{item_id}"].Get
	require.NotNil(t, op)
	fn, ok := op.Extension("x-core-function")
	assert.True(t, ok)
	assert.Equal(t, "getItem", fn)
	auth, ok := op.Extension("x-authentication-type")
	assert.True(t, ok)
	assert.Equal(t, "User", auth)
	_, ok = op.Extension("x-request-body")
	assert.False(t, ok)

	t.Run("unquoted status codes decode as strings", func(t *testing.T) {
		resp := doc.Paths["/items"].Get.Responses.Code("200")
		require.NotNil(t, resp)
		schema := resp.Content["application/json"].Schema
		assert.Equal(t, "array", schema.PrimaryType())
	})
}

func TestParseWithOptions_JSONBytes(t *testing.T) {
	data := []byte(`{
  "openapi": "3.1.0",
  "info": {"title": "t", "version": "1"},
  "paths": {
    "/units": {
      "post": {
        "tags": ["Admin"],
        "x-core-function": "createUnit",
        "x-data-type": "model.Unit",
        "x-request-body": "#/components/schemas/_admin_req_create_unit"
      }
    }
  }
}`)
	result, err := ParseWithOptions(WithBytes(data))
	require.NoError(t, err)
	assert.Equal(t, SourceFormatJSON, result.SourceFormat)
	assert.Equal(t, "ParseBytes.json", result.SourcePath)

	body, ok := result.Document.Paths["/units"].Post.Extension("x-request-body")
	assert.True(t, ok)
	assert.Equal(t, "#/components/schemas/_admin_req_create_unit", body)
}

func TestParseWithOptions_Reader(t *testing.T) {
	data, err := os.ReadFile("testdata/items.yaml")
	require.NoError(t, err)

	result, err := ParseWithOptions(WithReader(bytes.NewReader(data)), WithSourceName("inline"))
	require.NoError(t, err)
	assert.Equal(t, "inline", result.SourcePath)
}

func TestParseWithOptions_Errors(t *testing.T) {
	tests := []struct {
		name     string
		opts     []Option
		sentinel error
		contains string
	}{
		{name: "no source", opts: nil, sentinel: oaserrors.ErrConfig, contains: "must specify an input source"},
		{
			name:     "two sources",
			opts:     []Option{WithFilePath("a.yaml"), WithBytes([]byte("x"))},
			sentinel: oaserrors.ErrConfig,
			contains: "exactly one",
		},
		{name: "missing file", opts: []Option{WithFilePath("testdata/missing.yaml")}, sentinel: oaserrors.ErrParse},
		{name: "empty document", opts: []Option{WithBytes([]byte("  \n"))}, sentinel: oaserrors.ErrParse, contains: "empty"},
		{name: "invalid yaml", opts: []Option{WithBytes([]byte("openapi: [unclosed"))}, sentinel: oaserrors.ErrParse},
		{name: "swagger 2", opts: []Option{WithBytes([]byte("swagger: \"2.0\"\nopenapi: \"2.0\"\n"))}, sentinel: oaserrors.ErrParse, contains: "unsupported"},
		{name: "no version", opts: []Option{WithBytes([]byte("info:\n  title: x\n"))}, sentinel: oaserrors.ErrParse, contains: "missing openapi"},
		{
			name:     "too large",
			opts:     []Option{WithBytes([]byte("openapi: 3.0.0\n")), WithMaxFileSize(4)},
			sentinel: oaserrors.ErrParse,
			contains: "exceeds",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseWithOptions(tt.opts...)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.sentinel), "got %v", err)
			if tt.contains != "" {
				assert.Contains(t, err.Error(), tt.contains)
			}
		})
	}
}

func TestOptionValidation(t *testing.T) {
	_, err := ParseWithOptions(WithReader(nil))
	require.Error(t, err)
	_, err = ParseWithOptions(WithBytes(nil))
	require.Error(t, err)
	_, err = ParseWithOptions(WithBytes([]byte("x")), WithMaxFileSize(-1))
	require.Error(t, err)
	_, err = ParseWithOptions(WithBytes([]byte("x")), WithSourceName(""))
	require.Error(t, err)
}

func TestParse_FileFormatFromExtension(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "api.json")
	require.NoError(t, os.WriteFile(path, []byte("openapi: 3.0.0\n"), 0o600))

	result, err := New().Parse(path)
	require.NoError(t, err)
	assert.Equal(t, SourceFormatJSON, result.SourceFormat)
}
