package ops

import (
	"context"
	"database/sql"

	"github.com/curio-cms/curio/internal/db"
	"github.com/curio-cms/curio/internal/page"
)

// ListPagesInput contains parameters for the ListPages operation.
type ListPagesInput struct {
	Limit  int // default: 20, max: 100
	Offset int // default: 0
}

// ListPagesOutput contains the result of the ListPages operation.
type ListPagesOutput struct {
	Items      []page.Summary `json:"items"`
	Pagination Pagination     `json:"pagination"`
}

// ListPages retrieves page summaries ordered by last update.
func ListPages(ctx context.Context, database *sql.DB, input ListPagesInput) (*ListPagesOutput, error) {
	limit := clampLimit(input.Limit)
	offset := max(input.Offset, 0)

	summaries, total, err := db.ListPages(ctx, database, limit, offset)
	if err != nil {
		return nil, err
	}

	if summaries == nil {
		summaries = []page.Summary{}
	}

	return &ListPagesOutput{
		Items: summaries,
		Pagination: Pagination{
			Limit:   limit,
			Offset:  offset,
			HasMore: offset+len(summaries) < total,
			Total:   total,
		},
	}, nil
}
