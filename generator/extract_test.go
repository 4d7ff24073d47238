package generator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erraggy/oasbind/internal/severity"
)

func TestExtractModel_Catalog(t *testing.T) {
	pr := parseFixture(t, "catalog.yaml")
	m, found := ExtractModel(pr.Document, DefaultConfig(), nil)

	assert.Empty(t, issuesAt(found, severity.SeverityWarning))
	assert.Empty(t, issuesAt(found, severity.SeverityCritical))

	assert.Equal(t, []string{"model.Item", "string"}, m.DataTypes)
	require.Len(t, m.RequestBodies, 1)
	assert.Equal(t, RequestBody{
		Refs:      []string{"#/components/schemas/_admin_req_update_item"},
		Symbol:    "Def.AdminReqUpdateItem",
		DataType:  "model.Item",
		Generated: true,
	}, m.RequestBodies[0])

	var keys []string
	for _, ep := range m.Endpoints {
		keys = append(keys, ep.HTTPMethod()+" "+ep.Path+" "+ep.Key().String())
	}
	assert.Equal(t, []string{
		"GET /items Client/getItems",
		"POST /items Client/createItem",
		"GET /items/{item_id} Client/getItem",
		"GET /items/{item_id} Admin/getItem",
		"PUT /items/{item_id} Admin/updateItem",
		"DELETE /items/{item_id} Admin/deleteItem",
		"GET /version Default/getVersion",
	}, keys)
	assert.Equal(t, []string{"itemFromDefAdminReqUpdate"}, m.ConversionFunctions())

	t.Run("shapes", func(t *testing.T) {
		assert.Equal(t, ShapeMany, findEndpoint(t, m, "Client", "getItems").Shape)
		assert.Equal(t, ShapeSingle, findEndpoint(t, m, "Client", "getItem").Shape)
		assert.Equal(t, ShapeNone, findEndpoint(t, m, "Admin", "deleteItem").Shape)
		assert.Equal(t, ShapeSingle, findEndpoint(t, m, "Admin", "updateItem").Shape)
		// text/plain response: no JSON schema to inspect
		assert.Equal(t, ShapeSingle, findEndpoint(t, m, "Default", "getVersion").Shape)
		assert.True(t, hasIssue(found, severity.SeverityInfo, "assuming single item"))
	})

	t.Run("parameters", func(t *testing.T) {
		ep := findEndpoint(t, m, "Client", "getItem")
		assert.Equal(t, []Parameter{
			{Name: "itemId", WireKey: "item_id", Type: "string", Required: true, In: "path"},
		}, ep.Parameters)

		ep = findEndpoint(t, m, "Client", "getItems")
		assert.Equal(t, []Parameter{
			{Name: "ids", WireKey: "ids", Type: "*[]string", In: "query"},
			{Name: "updatedSince", WireKey: "updated_since", Type: "*time.Time", In: "query"},
		}, ep.Parameters)
	})

	t.Run("request body pairing", func(t *testing.T) {
		ep := findEndpoint(t, m, "Admin", "updateItem")
		assert.Equal(t, "#/components/schemas/_admin_req_update_item", ep.RequestBody)
		assert.Equal(t, "Def.AdminReqUpdateItem", ep.RequestSymbol)
		assert.Equal(t, "itemFromDefAdminReqUpdate", ep.ConversionFunction)

		// a request body equal to the data type is elided
		ep = findEndpoint(t, m, "Client", "createItem")
		assert.Empty(t, ep.RequestBody)
		assert.Empty(t, ep.RequestSymbol)
	})

	t.Run("auth", func(t *testing.T) {
		assert.Equal(t, "User", findEndpoint(t, m, "Client", "getItem").AuthType)
		assert.Empty(t, findEndpoint(t, m, "Default", "getVersion").AuthType)
	})
}

func TestExtractModel_SkipsMalformedEntries(t *testing.T) {
	tests := []struct {
		name    string
		paths   string
		warning string
	}{
		{
			name: "missing data type",
			paths: `
  /a:
    get:
      tags: [Client]
      x-core-function: getA
`,
			warning: "missing data type",
		},
		{
			name: "core function not an identifier",
			paths: `
  /a:
    get:
      tags: [Client]
      x-core-function: get-a
      x-data-type: model.A
`,
			warning: "is not a Go identifier",
		},
		{
			name: "data type not a type name",
			paths: `
  /a:
    get:
      tags: [Client]
      x-core-function: getA
      x-data-type: "[]model.A"
`,
			warning: "is not a Go type name",
		},
		{
			name: "no tags",
			paths: `
  /a:
    get:
      x-core-function: getA
      x-data-type: model.A
`,
			warning: "no tag",
		},
		{
			name: "unbindable verb",
			paths: `
  /a:
    head:
      tags: [Client]
      x-core-function: headA
      x-data-type: model.A
`,
			warning: "cannot be bound",
		},
		{
			name: "unknown tier",
			paths: `
  /a:
    get:
      tags: [Public]
      x-core-function: getA
      x-data-type: model.A
`,
			warning: `tag "Public" is not a configured tier`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, found := extractInline(t, docHeader+"paths:"+tt.paths)
			assert.Empty(t, m.Endpoints)
			assert.True(t, hasIssue(found, severity.SeverityWarning, tt.warning), "issues: %v", found)
			assert.True(t, hasIssue(found, severity.SeverityWarning, "no operation could be bound"))
		})
	}
}

func TestExtractModel_IgnoresOperationsWithoutCoreFunction(t *testing.T) {
	m, found := extractInline(t, docHeader+`paths:
  /a:
    get:
      tags: [Client]
      x-data-type: model.A
  /b:
    get:
      tags: [Client]
      x-core-function: getB
      x-data-type: model.B
`)
	require.Len(t, m.Endpoints, 1)
	assert.Equal(t, "getB", m.Endpoints[0].CoreFunction)
	// data types are collected even when the operation is not bound
	assert.Equal(t, []string{"model.A", "model.B"}, m.DataTypes)
	assert.Empty(t, issuesAt(found, severity.SeverityWarning))
}

func TestExtractModel_DuplicateDispatchKey(t *testing.T) {
	m, found := extractInline(t, docHeader+`paths:
  /a:
    get:
      tags: [Client]
      x-core-function: getThing
      x-data-type: model.A
  /b:
    get:
      tags: [Client, Admin]
      x-core-function: getThing
      x-data-type: model.B
`)
	critical := issuesAt(found, severity.SeverityCritical)
	require.Len(t, critical, 1)
	assert.Contains(t, critical[0].Message, "Client/getThing")
	assert.Contains(t, critical[0].Message, "GET /a")
	require.NotNil(t, critical[0].OperationContext)
	assert.Equal(t, "Client", critical[0].OperationContext.Tag)

	// the second binding is dropped, the Admin one survives
	require.Len(t, m.Endpoints, 2)
	assert.Equal(t, "/a", findEndpoint(t, m, "Client", "getThing").Path)
	assert.Equal(t, "/b", findEndpoint(t, m, "Admin", "getThing").Path)
}

func TestExtractModel_HandlerNameCollision(t *testing.T) {
	m, found := extractInline(t, docHeader+`paths:
  /a:
    get:
      tags: [Client]
      x-core-function: getItem
      x-data-type: model.Item
  /b:
    get:
      tags: [Client, Admin]
      x-core-function: GetItem
      x-data-type: model.Item
`)
	critical := issuesAt(found, severity.SeverityCritical)
	require.Len(t, critical, 1)
	assert.Contains(t, critical[0].Message, "clientGetItem")
	assert.Contains(t, critical[0].Message, "Client/getItem")
	require.NotNil(t, critical[0].OperationContext)
	assert.Equal(t, "Client/GetItem", critical[0].OperationContext.Key())

	require.Len(t, m.Endpoints, 2)
	assert.Equal(t, "/a", findEndpoint(t, m, "Client", "getItem").Path)
	assert.Equal(t, "/b", findEndpoint(t, m, "Admin", "GetItem").Path)
}

func TestExtractModel_ConversionPairing(t *testing.T) {
	tests := []struct {
		name       string
		op         string
		warning    string
		wantSymbol string
	}{
		{
			name: "body without conversion",
			op: `
    post:
      tags: [Admin]
      x-core-function: createA
      x-data-type: model.A
      x-request-body: "#/components/schemas/new_a"
`,
			warning: "has no conversion function",
		},
		{
			name: "conversion without body",
			op: `
    post:
      tags: [Admin]
      x-core-function: createA
      x-data-type: model.A
      x-conversion-function: aFromDef
`,
			warning: "has no request body to convert",
		},
		{
			name: "body on delete",
			op: `
    delete:
      tags: [Admin]
      x-core-function: deleteA
      x-data-type: model.A
      x-request-body: "#/components/schemas/new_a"
      x-conversion-function: aFromDef
`,
			warning: "take no request body",
		},
		{
			name: "qualified body symbol",
			op: `
    put:
      tags: [Admin]
      x-core-function: updateA
      x-data-type: model.A
      x-request-body: model.APatch
      x-conversion-function: aFromPatch
`,
			wantSymbol: "model.APatch",
		},
		{
			name: "external reference",
			op: `
    put:
      tags: [Admin]
      x-core-function: updateA
      x-data-type: model.A
      x-request-body: "#/definitions/a"
      x-conversion-function: aFromDef
`,
			warning: "only component schema references",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, found := extractInline(t, docHeader+"paths:\n  /a:"+tt.op)
			require.Len(t, m.Endpoints, 1)
			ep := m.Endpoints[0]
			assert.Equal(t, tt.wantSymbol, ep.RequestSymbol)
			if tt.warning == "" {
				assert.Empty(t, issuesAt(found, severity.SeverityWarning))
				assert.NotEmpty(t, ep.ConversionFunction)
				return
			}
			assert.True(t, hasIssue(found, severity.SeverityWarning, tt.warning), "issues: %v", found)
			assert.Empty(t, ep.ConversionFunction)
			assert.Empty(t, ep.RequestSymbol)
		})
	}
}

func TestExtractModel_ParameterNames(t *testing.T) {
	m, found := extractInline(t, docHeader+`paths:
  /things/{item}:
    parameters:
      - name: item
        in: path
        schema:
          type: string
      - name: limit
        in: query
        schema:
          type: integer
    get:
      tags: [Client]
      x-core-function: getThing
      x-data-type: model.Thing
      parameters:
        - name: limit
          in: query
          required: true
          schema:
            type: integer
        - name: type
          in: query
          schema:
            type: string
        - name: filter
          in: query
          schema:
            type: object
        - name: model
          in: query
          schema:
            type: boolean
`)
	ep := findEndpoint(t, m, "Client", "getThing")
	assert.Equal(t, []Parameter{
		{Name: "item_", WireKey: "item", Type: "string", Required: true, In: "path"},
		// the operation parameter replaces the path-level one in place
		{Name: "limit", WireKey: "limit", Type: "int", Required: true, In: "query"},
		{Name: "type_", WireKey: "type", Type: "*string", In: "query"},
		{Name: "model_", WireKey: "model", Type: "*bool", In: "query"},
	}, ep.Parameters)
	assert.True(t, hasIssue(found, severity.SeverityWarning, `parameter "filter" has no primitive type`))
}

func TestExtractModel_CapsSegments(t *testing.T) {
	pr := parseInline(t, docHeader+`paths:
  /items/{item_id}:
    put:
      tags: [Admin]
      x-core-function: updateItem
      x-data-type: model.Item
      x-request-body: "#/components/schemas/item_url_req"
      x-conversion-function: itemFromDef
      parameters:
        - name: item_id
          in: path
          schema:
            type: string
`)
	cfg := DefaultConfig()
	cfg.CapsSegments = []string{"id", "url"}
	m, _ := ExtractModel(pr.Document, cfg, nil)

	ep := findEndpoint(t, m, "Admin", "updateItem")
	assert.Equal(t, "itemID", ep.Parameters[0].Name)
	assert.Equal(t, "Def.ItemURLReq", ep.RequestSymbol)
}

func TestExtractModel_TierNotes(t *testing.T) {
	_, found := extractInline(t, `openapi: 3.0.3
info:
  title: Inline
  version: 1.0.0
tags:
  - name: Client
  - name: Public
paths:
  /a:
    get:
      tags: [Client]
      x-core-function: getA
      x-data-type: model.A
      x-authentication-type: Everyone
`)
	assert.True(t, hasIssue(found, severity.SeverityInfo, `tag "Public" is not a configured tier`))
	assert.True(t, hasIssue(found, severity.SeverityInfo, `tier "Admin" is not declared`))
	assert.True(t, hasIssue(found, severity.SeverityWarning, `authentication type "Everyone" is not configured`))
}

func TestExtractModel_AuthOnUnauthenticatedTier(t *testing.T) {
	m, found := extractInline(t, docHeader+`paths:
  /version:
    get:
      tags: [Default]
      x-core-function: getVersion
      x-data-type: string
      x-authentication-type: User
`)
	require.Len(t, m.Endpoints, 1)
	assert.True(t, hasIssue(found, severity.SeverityWarning, `tier "Default" has no auth handlers`))
}

func TestExtractModel_UndeclaredTemplateParameter(t *testing.T) {
	m, found := extractInline(t, docHeader+`paths:
  /items/{item_id}/tags/{tag}:
    get:
      tags: [Client]
      x-core-function: getItemTag
      x-data-type: model.Tag
      parameters:
        - name: item_id
          in: path
          schema:
            type: string
`)
	ep := findEndpoint(t, m, "Client", "getItemTag")
	require.Len(t, ep.Parameters, 1)
	assert.Equal(t, "item_id", ep.Parameters[0].WireKey)
	assert.True(t, hasIssue(found, severity.SeverityWarning, `path template parameter "tag" is not declared`))
	assert.False(t, hasIssue(found, severity.SeverityWarning, `path template parameter "item_id"`))
}
