package ops

import (
	"context"
	"database/sql"

	"github.com/curio-cms/curio/internal/block"
	"github.com/curio-cms/curio/internal/db"
	"github.com/curio-cms/curio/internal/post"
	"github.com/curio-cms/curio/internal/query"
)

// ResolveFeedInput contains parameters for the ResolveFeed operation.
type ResolveFeedInput struct {
	PageRef string // page ID or slug
	QueryID string // query block identity; empty selects the first query block

	// Request correlation context for the resolver's fallback chain.
	RoutePath  string
	Referer    string
	APIRequest bool
}

// ResolveFeedOutput contains the result of the ResolveFeed operation.
type ResolveFeedOutput struct {
	Items      []post.Summary `json:"items"`
	Pagination Pagination     `json:"pagination"`
	Curated    bool           `json:"curated"`
	Identity   string         `json:"identity"`
}

// ResolveFeed runs the full curated-order pipeline for one query block:
//
//  1. render-pass hook: every query block on the page primes the
//     resolver's cache with its saved order
//  2. pre-query hook: the block's query spec is rewritten to a widened,
//     unordered fetch when a saved order resolves
//  3. execute: the store runs the (possibly rewritten) query
//  4. post-query hook: the reducer re-sorts and re-paginates using the
//     shadow pagination recorded at rewrite time
//
// When no saved order resolves the base query runs untouched; custom
// order lookups never block rendering a feed.
func ResolveFeed(ctx context.Context, database *sql.DB, resolver *query.Resolver, input ResolveFeedInput) (*ResolveFeedOutput, error) {
	p, err := loadPage(ctx, database, input.PageRef)
	if err != nil {
		return nil, err
	}

	// Render-pass hook: fires once per query block instance, before
	// query execution for inner content.
	identities := make(map[*block.Block]string)
	for _, qb := range block.FindAllQueries(p.Blocks) {
		identities[qb] = resolver.Prime(qb)
	}

	qb, err := findQueryBlock(p, input.QueryID)
	if err != nil {
		return nil, err
	}
	identity := identities[qb]

	spec := query.FromBlock(qb)
	rc := query.RequestContext{
		PageID:     p.ID,
		RoutePath:  input.RoutePath,
		Referer:    input.Referer,
		APIRequest: input.APIRequest,
	}

	rewritten, order, curated := resolver.Rewrite(ctx, spec, identity, rc)

	raw, total, err := db.ListPosts(ctx, database, rewritten.Filter())
	if err != nil {
		return nil, err
	}

	final := raw
	pageSize, offset := spec.PageSize, spec.Offset
	if curated && rewritten.Rewritten() {
		final = query.Reduce(raw, order, rewritten.OrigPageSize, rewritten.OrigOffset)
		pageSize, offset = rewritten.OrigPageSize, rewritten.OrigOffset
	}

	items := make([]post.Summary, len(final))
	for i := range final {
		items[i] = post.Summarize(&final[i])
	}

	return &ResolveFeedOutput{
		Items: items,
		Pagination: Pagination{
			Limit:   pageSize,
			Offset:  offset,
			HasMore: offset+len(items) < total,
			Total:   total,
		},
		Curated:  curated,
		Identity: identity,
	}, nil
}
