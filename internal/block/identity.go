package block

import "github.com/oklog/ulid/v2"

// Identity derives the query identity used to correlate a render pass
// of a curated query block with its later query execution.
//
// Precedence: explicit queryId attribute, then the block's client ID,
// then an anchor attribute. If none is present a fresh ULID token is
// returned; that token is stable within one render/query cycle only,
// so callers should prefer saving pages through EnsureClientIDs, which
// makes the generated path unreachable.
func Identity(b *Block) (identity string, generated bool) {
	if id := StringAttr(b, "queryId"); id != "" {
		return id, false
	}
	if b.ClientID != "" {
		return b.ClientID, false
	}
	if anchor := StringAttr(b, "anchor"); anchor != "" {
		return anchor, false
	}
	return ulid.Make().String(), true
}
