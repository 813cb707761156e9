package ops

import (
	"context"
	"database/sql"

	"github.com/curio-cms/curio/internal/block"
)

// GetOrderInput contains parameters for the GetOrder operation.
type GetOrderInput struct {
	PageRef string
	QueryID string
}

// GetOrderOutput contains the result of the GetOrder operation.
type GetOrderOutput struct {
	PageID   string  `json:"page_id"`
	Identity string  `json:"identity"`
	IDs      []int64 `json:"ids"`
	Curated  bool    `json:"curated"`
}

// GetOrder reads the saved curated order from a page's query block.
// Curated is false when the block carries no order.
func GetOrder(ctx context.Context, database *sql.DB, input GetOrderInput) (*GetOrderOutput, error) {
	p, err := loadPage(ctx, database, input.PageRef)
	if err != nil {
		return nil, err
	}

	qb, err := findQueryBlock(p, input.QueryID)
	if err != nil {
		return nil, err
	}

	identity, _ := block.Identity(qb)
	ids := block.CustomOrder(qb)

	return &GetOrderOutput{
		PageID:   p.ID,
		Identity: identity,
		IDs:      ids,
		Curated:  len(ids) > 0,
	}, nil
}
