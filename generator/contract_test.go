package generator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildContract(t *testing.T) {
	itemID := Parameter{Name: "itemId", WireKey: "item_id", Type: "string", Required: true, In: "path"}

	tests := []struct {
		name     string
		ep       Endpoint
		outward  string
		inward   string
		handler  string
		bodyType string
	}{
		{
			name: "read single with auth",
			ep: Endpoint{Tag: "Client", CoreFunction: "getItem", DataType: "model.Item", Kind: KindRead,
				Shape: ShapeSingle, AuthType: "User", Parameters: []Parameter{itemID}},
			outward: "(claims *tokenauth.Claims, params map[string]interface{}) (*model.Item, error)",
			inward:  "(claims *tokenauth.Claims, itemId string) (*model.Item, error)",
			handler: "clientGetItem",
		},
		{
			name:    "read many without auth",
			ep:      Endpoint{Tag: "Default", CoreFunction: "listItems", DataType: "model.Item", Kind: KindRead, Shape: ShapeMany},
			outward: "(claims *tokenauth.Claims, params map[string]interface{}) ([]model.Item, error)",
			inward:  "() ([]model.Item, error)",
			handler: "defaultListItems",
		},
		{
			name: "delete",
			ep: Endpoint{Tag: "Admin", CoreFunction: "deleteItem", DataType: "model.Item", Kind: KindDelete,
				Shape: ShapeNone, AuthType: "Permissions", Parameters: []Parameter{itemID}},
			outward: "(claims *tokenauth.Claims, params map[string]interface{}) error",
			inward:  "(claims *tokenauth.Claims, itemId string) error",
			handler: "adminDeleteItem",
		},
		{
			name: "create binds the data type",
			ep: Endpoint{Tag: "Client", CoreFunction: "createItem", DataType: "model.Item", Kind: KindCreate,
				Shape: ShapeSingle, AuthType: "User"},
			outward:  "(claims *tokenauth.Claims, params map[string]interface{}, item model.Item) (*model.Item, error)",
			inward:   "(claims *tokenauth.Claims, item model.Item) (*model.Item, error)",
			handler:  "clientCreateItem",
			bodyType: "model.Item",
		},
		{
			name: "update with conversion binds the request symbol",
			ep: Endpoint{Tag: "Admin", CoreFunction: "updateItem", DataType: "model.Item", Kind: KindUpdate,
				Shape: ShapeSingle, AuthType: "Permissions", Parameters: []Parameter{itemID},
				RequestBody: "#/components/schemas/_req", RequestSymbol: "Def.Req", ConversionFunction: "itemFromDef"},
			outward:  "(claims *tokenauth.Claims, params map[string]interface{}, item Def.Req) (*model.Item, error)",
			inward:   "(claims *tokenauth.Claims, itemId string, item Def.Req) (*model.Item, error)",
			handler:  "adminUpdateItem",
			bodyType: "Def.Req",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := BuildContract(tt.ep)
			assert.Equal(t, tt.outward, c.Outward.String())
			assert.Equal(t, tt.inward, c.Inward.String())
			assert.Equal(t, tt.handler, c.HandlerName)
			assert.Equal(t, tt.bodyType, c.BodyType)
			assert.Equal(t, c.Outward.Results, c.Inward.Results)
		})
	}
}

func TestBuildContract_InwardSlotOrder(t *testing.T) {
	ep := Endpoint{
		Tag: "Admin", CoreFunction: "updateItem", DataType: "model.Item", Kind: KindUpdate, AuthType: "User",
		Parameters: []Parameter{
			{Name: "itemId", WireKey: "item_id", Type: "string", Required: true},
			{Name: "dryRun", WireKey: "dry_run", Type: "*bool"},
		},
	}
	c := BuildContract(ep)

	var kinds []SlotKind
	for _, s := range c.Inward.Slots {
		kinds = append(kinds, s.Kind)
	}
	assert.Equal(t, []SlotKind{SlotClaims, SlotParam, SlotParam, SlotBody}, kinds)
	assert.Equal(t, "claims, itemId, dryRun, item", c.Inward.ArgList())
	assert.Equal(t, "dry_run", c.Inward.Slots[2].WireKey)
	assert.False(t, c.Inward.Slots[2].Required)
	assert.True(t, c.Inward.ReturnsValue())
	assert.Equal(t, "UpdateItem", c.Method)
}

func TestBuildContracts_FollowsModelOrder(t *testing.T) {
	m := &Model{Endpoints: []Endpoint{
		{Tag: "Client", CoreFunction: "b", DataType: "string"},
		{Tag: "Admin", CoreFunction: "a", DataType: "string"},
	}}
	contracts := BuildContracts(m)
	require.Len(t, contracts, 2)
	assert.Equal(t, "B", contracts[0].Method)
	assert.Equal(t, "adminA", contracts[1].HandlerName)
}
