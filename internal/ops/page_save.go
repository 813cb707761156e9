package ops

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/curio-cms/curio/internal/block"
	"github.com/curio-cms/curio/internal/db"
	"github.com/curio-cms/curio/internal/errors"
	"github.com/curio-cms/curio/internal/page"
	"github.com/curio-cms/curio/internal/post"
)

// SavePageInput contains parameters for the SavePage operation.
type SavePageInput struct {
	Slug   string
	Title  *string
	Blocks []block.Block
}

// SavePageOutput contains the result of the SavePage operation.
type SavePageOutput struct {
	Page page.Summary `json:"page"`
}

// SavePage stores a new page with its block tree. Every block gets a
// client ID so curated query blocks are identity-addressable later.
func SavePage(ctx context.Context, database *sql.DB, input SavePageInput) (*SavePageOutput, error) {
	slug := post.Normalize(input.Slug)
	if slug == "" {
		return nil, errors.NewInvalidRequest("slug is required")
	}
	slug = strings.ReplaceAll(slug, " ", "-")

	blocks := input.Blocks
	block.EnsureClientIDs(blocks)

	now := time.Now().Unix()
	p := &page.Page{
		ID:        page.NewID(),
		Slug:      slug,
		Title:     input.Title,
		Blocks:    blocks,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := db.InsertPage(ctx, database, p); err != nil {
		return nil, err
	}

	return &SavePageOutput{Page: page.Summarize(p)}, nil
}
