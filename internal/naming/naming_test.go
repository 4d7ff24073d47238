package naming

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToCompoundIdentifier(t *testing.T) {
	tests := []struct {
		name  string
		input string
		caps  []string
		want  string
	}{
		{name: "empty string", input: "", want: ""},
		{name: "single segment kept verbatim", input: "itemId", want: "itemId"},
		{name: "snake_case", input: "item_id", want: "itemId"},
		{name: "kebab-case", input: "user-name", want: "userName"},
		{name: "mixed separators", input: "org-unit_id", want: "orgUnitId"},
		{name: "leading underscore yields exported", input: "_admin_req_update_unit", want: "AdminReqUpdateUnit"},
		{name: "double separator", input: "a__b", want: "aB"},
		{name: "trailing separator", input: "value_", want: "value"},
		{name: "later segments lower-cased", input: "item_ID", want: "itemId"},
		{name: "first segment untouched", input: "ITEM_id", want: "ITEMId"},
		{name: "caps segment", input: "item_id", caps: []string{"id"}, want: "itemID"},
		{name: "caps match ignores case", input: "base_url", caps: []string{"URL"}, want: "baseURL"},
		{name: "caps does not touch first segment", input: "id_value", caps: []string{"id"}, want: "idValue"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ToCompoundIdentifier(tt.input, tt.caps))
		})
	}
}

func TestExportedUnexported(t *testing.T) {
	assert.Equal(t, "GetItem", Exported("getItem"))
	assert.Equal(t, "", Exported(""))
	assert.Equal(t, "getItem", Unexported("GetItem"))
	assert.Equal(t, "", Unexported(""))
}

func TestEscapeReserved(t *testing.T) {
	tests := []struct {
		input string
		extra []string
		want  string
	}{
		{input: "type", want: "type_"},
		{input: "Range", want: "Range_"},
		{input: "string", want: "string_"},
		{input: "claims", extra: []string{"claims", "params"}, want: "claims_"},
		{input: "itemId", extra: []string{"claims"}, want: "itemId"},
		{input: "Claims", extra: []string{"claims"}, want: "Claims"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, EscapeReserved(tt.input, tt.extra...))
		})
	}
}

func TestIsIdentifier(t *testing.T) {
	assert.True(t, IsIdentifier("Def"))
	assert.True(t, IsIdentifier("_x1"))
	assert.False(t, IsIdentifier(""))
	assert.False(t, IsIdentifier("1x"))
	assert.False(t, IsIdentifier("a.b"))
	assert.False(t, IsIdentifier("func"))
}
