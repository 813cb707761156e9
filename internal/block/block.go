package block

import (
	"encoding/json"

	"github.com/google/uuid"
)

// QueryBlockType is the block type that opts into curated ordering.
// Generic query blocks of other types are never rewritten.
const QueryBlockType = "curio/curated-query"

// Block is a typed node in a page's content tree.
type Block struct {
	// Type identifies the block kind, e.g. "curio/heading",
	// "curio/curated-query".
	Type string `json:"type" yaml:"type"`

	// ClientID is a per-block UUID, assigned when a page is saved.
	ClientID string `json:"clientId,omitempty" yaml:"clientId,omitempty"`

	// Attrs holds the block's attributes. For curated query blocks this
	// includes the query spec fields and customOrder.
	Attrs map[string]any `json:"attrs,omitempty" yaml:"attrs,omitempty"`

	// Inner contains nested child blocks.
	Inner []Block `json:"inner,omitempty" yaml:"inner,omitempty"`
}

// EnsureClientIDs assigns a fresh UUID to every block missing one.
// Called on page save so each block instance is addressable.
func EnsureClientIDs(blocks []Block) {
	for i := range blocks {
		if blocks[i].ClientID == "" {
			blocks[i].ClientID = uuid.NewString()
		}
		EnsureClientIDs(blocks[i].Inner)
	}
}

// Marshal serializes a block tree to JSON for storage.
func Marshal(blocks []Block) ([]byte, error) {
	return json.Marshal(blocks)
}

// Unmarshal parses a stored block tree.
func Unmarshal(data []byte) ([]Block, error) {
	if len(data) == 0 {
		return nil, nil
	}
	var blocks []Block
	if err := json.Unmarshal(data, &blocks); err != nil {
		return nil, err
	}
	return blocks, nil
}

// FindQuery walks the tree depth-first and returns the first curated
// query block whose identity matches, or nil if none does.
func FindQuery(blocks []Block, identity string) *Block {
	for i := range blocks {
		b := &blocks[i]
		if b.Type == QueryBlockType && matchesIdentity(b, identity) {
			return b
		}
		if found := FindQuery(b.Inner, identity); found != nil {
			return found
		}
	}
	return nil
}

// FindAllQueries walks the tree depth-first and collects every curated
// query block, in document order.
func FindAllQueries(blocks []Block) []*Block {
	var out []*Block
	for i := range blocks {
		b := &blocks[i]
		if b.Type == QueryBlockType {
			out = append(out, b)
		}
		out = append(out, FindAllQueries(b.Inner)...)
	}
	return out
}

// matchesIdentity checks the same attribute chain used to derive a
// block's identity: explicit queryId, then clientId, then anchor.
func matchesIdentity(b *Block, identity string) bool {
	if identity == "" {
		return false
	}
	if StringAttr(b, "queryId") == identity {
		return true
	}
	if b.ClientID == identity {
		return true
	}
	return StringAttr(b, "anchor") == identity
}
