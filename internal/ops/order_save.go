package ops

import (
	"context"
	"database/sql"

	"github.com/curio-cms/curio/internal/block"
	"github.com/curio-cms/curio/internal/db"
	"github.com/curio-cms/curio/internal/editor"
	"github.com/curio-cms/curio/internal/query"
)

// SaveOrderInput contains parameters for the SaveOrder operation.
type SaveOrderInput struct {
	PageRef string
	QueryID string
	IDs     []int64
}

// SaveOrderOutput contains the result of the SaveOrder operation.
type SaveOrderOutput struct {
	PageID   string  `json:"page_id"`
	Identity string  `json:"identity"`
	IDs      []int64 `json:"ids"`
	Saved    bool    `json:"saved"`
}

// SaveOrder persists a curated order onto a page's query block. The ID
// list is sanitized first; if nothing valid remains the stored order is
// left untouched and Saved reports false. The whole page document is
// written in one statement so concurrent saves cannot interleave
// partial block trees.
func SaveOrder(ctx context.Context, database *sql.DB, resolver *query.Resolver, input SaveOrderInput) (*SaveOrderOutput, error) {
	p, err := loadPage(ctx, database, input.PageRef)
	if err != nil {
		return nil, err
	}

	qb, err := findQueryBlock(p, input.QueryID)
	if err != nil {
		return nil, err
	}

	ids := editor.FilterIDs(input.IDs)
	identity, _ := block.Identity(qb)
	if len(ids) == 0 {
		return &SaveOrderOutput{PageID: p.ID, Identity: identity, IDs: ids, Saved: false}, nil
	}

	block.SetCustomOrder(qb, ids)
	if err := db.UpdatePageBlocks(ctx, database, p.ID, p.Blocks); err != nil {
		return nil, err
	}

	// Keep the resolver cache current so the next render picks up the
	// new order without waiting for a page re-parse.
	if resolver != nil {
		identity = resolver.Prime(qb)
	}

	return &SaveOrderOutput{PageID: p.ID, Identity: identity, IDs: ids, Saved: true}, nil
}
