package block

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func queryBlock(clientID string, attrs map[string]any) Block {
	return Block{Type: QueryBlockType, ClientID: clientID, Attrs: attrs}
}

func TestEnsureClientIDs(t *testing.T) {
	blocks := []Block{
		{Type: "curio/heading"},
		{Type: "curio/group", Inner: []Block{
			queryBlock("", nil),
		}},
	}

	EnsureClientIDs(blocks)

	assert.NotEmpty(t, blocks[0].ClientID)
	assert.NotEmpty(t, blocks[1].ClientID)
	assert.NotEmpty(t, blocks[1].Inner[0].ClientID)
}

func TestEnsureClientIDs_PreservesExisting(t *testing.T) {
	blocks := []Block{{Type: "curio/heading", ClientID: "keep-me"}}

	EnsureClientIDs(blocks)

	assert.Equal(t, "keep-me", blocks[0].ClientID)
}

func TestMarshalRoundTrip(t *testing.T) {
	blocks := []Block{
		queryBlock("c1", map[string]any{
			"queryId":     "front-feed",
			"customOrder": []any{float64(3), float64(1)},
			"pageSize":    float64(5),
		}),
	}

	data, err := Marshal(blocks)
	require.NoError(t, err)

	parsed, err := Unmarshal(data)
	require.NoError(t, err)
	require.Len(t, parsed, 1)
	assert.Equal(t, QueryBlockType, parsed[0].Type)
	assert.Equal(t, []int64{3, 1}, CustomOrder(&parsed[0]))
	assert.Equal(t, 5, IntAttr(&parsed[0], "pageSize", 0))
}

func TestUnmarshal_Empty(t *testing.T) {
	blocks, err := Unmarshal(nil)
	require.NoError(t, err)
	assert.Nil(t, blocks)
}

func TestFindQuery(t *testing.T) {
	tree := []Block{
		{Type: "curio/heading", ClientID: "h1"},
		{Type: "curio/group", ClientID: "g1", Inner: []Block{
			queryBlock("deep", map[string]any{"anchor": "latest-news"}),
		}},
		queryBlock("top", map[string]any{"queryId": "front-feed"}),
	}

	tests := []struct {
		name     string
		identity string
		wantID   string
	}{
		{"by queryId attr", "front-feed", "top"},
		{"by client id", "deep", "deep"},
		{"by anchor", "latest-news", "deep"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			found := FindQuery(tree, tt.identity)
			require.NotNil(t, found)
			assert.Equal(t, tt.wantID, found.ClientID)
		})
	}
}

func TestFindQuery_NoMatch(t *testing.T) {
	tree := []Block{queryBlock("c1", nil)}

	assert.Nil(t, FindQuery(tree, "nope"))
	assert.Nil(t, FindQuery(tree, ""))
}

func TestFindQuery_IgnoresOtherBlockTypes(t *testing.T) {
	// A non-query block carrying a stale customOrder attr must not match.
	tree := []Block{
		{Type: "curio/list", ClientID: "l1", Attrs: map[string]any{"queryId": "front-feed"}},
	}

	assert.Nil(t, FindQuery(tree, "front-feed"))
}

func TestFindAllQueries(t *testing.T) {
	tree := []Block{
		queryBlock("a", nil),
		{Type: "curio/group", Inner: []Block{
			queryBlock("b", nil),
		}},
	}

	found := FindAllQueries(tree)
	require.Len(t, found, 2)
	assert.Equal(t, "a", found[0].ClientID)
	assert.Equal(t, "b", found[1].ClientID)
}

func TestIDListAttr_FiltersMalformed(t *testing.T) {
	b := queryBlock("c1", map[string]any{
		"customOrder": []any{float64(3), float64(-1), "x", float64(7.5), float64(7), float64(0), float64(3)},
	})

	// Non-positive, non-integer entries dropped; duplicates preserved.
	assert.Equal(t, []int64{3, 7, 3}, CustomOrder(&b))
}

func TestIDListAttr_WrongShape(t *testing.T) {
	b := queryBlock("c1", map[string]any{"customOrder": "3,1"})
	assert.Nil(t, CustomOrder(&b))
}

func TestSetCustomOrder(t *testing.T) {
	b := queryBlock("c1", nil)

	SetCustomOrder(&b, []int64{9, 4})
	assert.Equal(t, []int64{9, 4}, CustomOrder(&b))

	SetCustomOrder(&b, []int64{4})
	assert.Equal(t, []int64{4}, CustomOrder(&b), "replace is wholesale, not a patch")

	ClearCustomOrder(&b)
	assert.Nil(t, CustomOrder(&b))
}

func TestIdentity(t *testing.T) {
	withQueryID := queryBlock("c1", map[string]any{"queryId": "front-feed", "anchor": "a"})
	id, generated := Identity(&withQueryID)
	assert.Equal(t, "front-feed", id)
	assert.False(t, generated)

	withClientID := queryBlock("c2", map[string]any{"anchor": "a"})
	id, generated = Identity(&withClientID)
	assert.Equal(t, "c2", id)
	assert.False(t, generated)

	withAnchor := queryBlock("", map[string]any{"anchor": "latest"})
	id, generated = Identity(&withAnchor)
	assert.Equal(t, "latest", id)
	assert.False(t, generated)

	bare := queryBlock("", nil)
	id, generated = Identity(&bare)
	assert.NotEmpty(t, id)
	assert.True(t, generated)
}
