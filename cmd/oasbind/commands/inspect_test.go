package commands

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.yaml.in/yaml/v4"

	"github.com/erraggy/oasbind/generator"
)

func TestInspect_Text(t *testing.T) {
	var stdout, stderr bytes.Buffer
	require.NoError(t, runInspect([]string{catalogPath}, &stdout, &stderr))

	out := stdout.String()
	assert.Contains(t, out, "Data Types (2):")
	assert.Contains(t, out, "  - #/components/schemas/_admin_req_update_item -> Def.AdminReqUpdateItem")
	assert.Contains(t, out, "Endpoints (7):")
	assert.Contains(t, out, "  PUT /items/{item_id} [Admin/updateItem] update single")
	assert.Contains(t, out, "    interface: Admin.UpdateItem(claims *tokenauth.Claims, itemId string, item Def.AdminReqUpdateItem) (*model.Item, error)")
}

func TestInspect_JSONWithTag(t *testing.T) {
	var stdout, stderr bytes.Buffer
	require.NoError(t, runInspect([]string{"--format", "json", "--tag", "Admin", catalogPath}, &stdout, &stderr))

	var rep generator.Report
	require.NoError(t, json.Unmarshal(stdout.Bytes(), &rep))
	assert.Equal(t, "3.0.3", rep.Version)
	require.Len(t, rep.Endpoints, 3)
	for _, ep := range rep.Endpoints {
		assert.Equal(t, "Admin", ep.Tag)
	}
}

func TestInspect_YAMLWithCaps(t *testing.T) {
	var stdout, stderr bytes.Buffer
	require.NoError(t, runInspect([]string{"--format", "yaml", "--caps", "id", "--tag", "Client", catalogPath}, &stdout, &stderr))

	var rep generator.Report
	require.NoError(t, yaml.Unmarshal(stdout.Bytes(), &rep))
	require.NotEmpty(t, rep.Endpoints)
	found := false
	for _, ep := range rep.Endpoints {
		if ep.CoreFunction == "getItem" {
			found = true
			assert.Contains(t, ep.Interface, "itemID string")
		}
	}
	assert.True(t, found)
}

func TestInspect_Errors(t *testing.T) {
	var stdout, stderr bytes.Buffer
	err := runInspect([]string{"--format", "xml", catalogPath}, &stdout, &stderr)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid format")

	err = runInspect(nil, &stdout, &stderr)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "exactly one file path")
}
