package ops

import (
	"context"
	"database/sql"

	"github.com/curio-cms/curio/internal/block"
	"github.com/curio-cms/curio/internal/db"
	"github.com/curio-cms/curio/internal/query"
)

// ClearOrderInput contains parameters for the ClearOrder operation.
type ClearOrderInput struct {
	PageRef string
	QueryID string
}

// ClearOrderOutput contains the result of the ClearOrder operation.
type ClearOrderOutput struct {
	PageID   string `json:"page_id"`
	Identity string `json:"identity"`
	Cleared  bool   `json:"cleared"`
}

// ClearOrder removes the curated order from a page's query block,
// returning the block to its natural query ordering. Clearing a block
// with no saved order is a no-op with Cleared false.
func ClearOrder(ctx context.Context, database *sql.DB, resolver *query.Resolver, input ClearOrderInput) (*ClearOrderOutput, error) {
	p, err := loadPage(ctx, database, input.PageRef)
	if err != nil {
		return nil, err
	}

	qb, err := findQueryBlock(p, input.QueryID)
	if err != nil {
		return nil, err
	}

	identity, _ := block.Identity(qb)
	if len(block.CustomOrder(qb)) == 0 {
		return &ClearOrderOutput{PageID: p.ID, Identity: identity, Cleared: false}, nil
	}

	block.ClearCustomOrder(qb)
	if err := db.UpdatePageBlocks(ctx, database, p.ID, p.Blocks); err != nil {
		return nil, err
	}

	if resolver != nil {
		resolver.Forget(identity)
	}

	return &ClearOrderOutput{PageID: p.ID, Identity: identity, Cleared: true}, nil
}
