package ops

import (
	"context"
	"database/sql"

	"github.com/curio-cms/curio/internal/block"
	"github.com/curio-cms/curio/internal/db"
	"github.com/curio-cms/curio/internal/errors"
	"github.com/curio-cms/curio/internal/page"
)

// Pagination limits
const (
	DefaultListLimit = 20
	MaxListLimit     = 100
)

// Pagination contains pagination metadata for list operations.
type Pagination struct {
	Limit   int  `json:"limit"`
	Offset  int  `json:"offset"`
	HasMore bool `json:"has_more"`
	Total   int  `json:"total"`
}

// PageFinder adapts the page store for query-identity resolution.
// ref may be a page ULID or a slug.
type PageFinder struct {
	DB *sql.DB
}

// FindPage implements query.PageStore.
func (f PageFinder) FindPage(ctx context.Context, ref string) (*page.Page, error) {
	p, err := db.GetPage(ctx, f.DB, ref)
	if err == nil {
		return p, nil
	}
	if !errors.Is(err, errors.ErrNotFound) {
		return nil, err
	}
	return f.findBySlug(ctx, ref)
}

func (f PageFinder) findBySlug(ctx context.Context, slug string) (*page.Page, error) {
	return db.GetPageBySlug(ctx, f.DB, slug)
}

// loadPage loads a page by ID or slug.
func loadPage(ctx context.Context, database *sql.DB, ref string) (*page.Page, error) {
	if ref == "" {
		return nil, errors.NewInvalidRequest("page reference is required")
	}
	return PageFinder{DB: database}.FindPage(ctx, ref)
}

// findQueryBlock locates the curated query block addressed by queryID
// within a page. An empty queryID selects the page's first query block.
func findQueryBlock(p *page.Page, queryID string) (*block.Block, error) {
	if queryID == "" {
		all := block.FindAllQueries(p.Blocks)
		if len(all) == 0 {
			return nil, errors.NewNotFound("query block in page " + p.Slug)
		}
		return all[0], nil
	}

	qb := block.FindQuery(p.Blocks, queryID)
	if qb == nil {
		return nil, errors.NewNotFound("query block " + queryID)
	}
	return qb, nil
}

// clampLimit applies the default and maximum list limits.
func clampLimit(limit int) int {
	if limit <= 0 {
		return DefaultListLimit
	}
	if limit > MaxListLimit {
		return MaxListLimit
	}
	return limit
}
