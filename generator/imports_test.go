package generator

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQualifiers(t *testing.T) {
	tests := []struct {
		expr string
		want []string
	}{
		{"string", nil},
		{"*model.Item", []string{"model"}},
		{"[]*Def.AdminReq", []string{"Def"}},
		{"map[string]time.Time", []string{"time"}},
		{"func(*tokenauth.Claims, *Def.Req) (*model.Item, error)", []string{"tokenauth", "Def", "model"}},
		{"[][]string", nil},
	}
	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			assert.Equal(t, tt.want, qualifiers(tt.expr))
		})
	}
}

func TestImportSet_Render(t *testing.T) {
	cfg := DefaultConfig()
	s := newImportSet()
	s.addType("*model.Item")
	s.addType("*time.Time")
	s.add(aliasMux, "Def", aliasTokenAuth)

	var buf bytes.Buffer
	found := s.render(&buf, cfg, "out.go")
	assert.Empty(t, found)
	assert.Equal(t, `import (
	"time"

	"app/core/model"
	Def "app/driver/web/docs/gen"
	"github.com/gorilla/mux"
	"github.com/rokwire/core-auth-library-go/v3/tokenauth"
)

`, buf.String())
}

func TestImportSet_RenderMissingAlias(t *testing.T) {
	s := newImportSet()
	s.addType("ext.Thing")

	var buf bytes.Buffer
	found := s.render(&buf, DefaultConfig(), "out.go")
	require.Len(t, found, 1)
	assert.Equal(t, "ext", found[0].Value)
	assert.Equal(t, "out.go", found[0].Artifact)
	assert.Empty(t, buf.String())
}

func TestSymbolParts(t *testing.T) {
	assert.Equal(t, "model", qualifierOf("model.Item"))
	assert.Equal(t, "", qualifierOf("string"))
	assert.Equal(t, "Item", localName("model.Item"))
	assert.Equal(t, "string", localName("string"))
}
