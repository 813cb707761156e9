package ops

import (
	"context"
	"database/sql"

	"github.com/curio-cms/curio/internal/block"
	"github.com/curio-cms/curio/internal/page"
)

// GetPageInput contains parameters for the GetPage operation.
type GetPageInput struct {
	Ref string // page ID or slug
}

// GetPageOutput contains the result of the GetPage operation.
type GetPageOutput struct {
	ID        string        `json:"id"`
	Slug      string        `json:"slug"`
	Title     *string       `json:"title,omitempty"`
	Blocks    []block.Block `json:"blocks"`
	CreatedAt int64         `json:"created_at"`
	UpdatedAt int64         `json:"updated_at"`
}

// GetPage retrieves a page with its full block tree.
func GetPage(ctx context.Context, database *sql.DB, input GetPageInput) (*GetPageOutput, error) {
	p, err := loadPage(ctx, database, input.Ref)
	if err != nil {
		return nil, err
	}
	return pageOutput(p), nil
}

func pageOutput(p *page.Page) *GetPageOutput {
	return &GetPageOutput{
		ID:        p.ID,
		Slug:      p.Slug,
		Title:     p.Title,
		Blocks:    p.Blocks,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}
