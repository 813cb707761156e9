// Package query implements curated-order resolution: rewriting a post
// query so it fetches enough raw rows, then reducing the raw result
// into the editor's saved order with default-ordered leftovers appended.
package query

import (
	"github.com/curio-cms/curio/internal/block"
	"github.com/curio-cms/curio/internal/db"
)

// Ordering modes, re-exported from the store so callers of this package
// don't need to import db for them.
const (
	OrderByDate  = db.OrderByDate
	OrderByTitle = db.OrderByTitle
	OrderByNone  = db.OrderByNone
)

// DefaultPageSize is used when a query block doesn't set one.
const DefaultPageSize = 10

// Spec is a base query configuration: filters, pagination, and default
// ordering. The rewriter only touches the ordering and pagination
// fields; filters belong to the calling context.
type Spec struct {
	Categories []string
	Tags       []string
	Author     string
	Search     string
	Include    []int64
	Exclude    []int64
	Status     string

	PageSize int
	Offset   int
	OrderBy  string // "date", "title", or "none"
	Order    string // "asc" or "desc"

	// Shadow pagination recorded by the rewriter before it widens the
	// fetch window. The reducer slices the merged sequence with these.
	OrigPageSize int
	OrigOffset   int
}

// FromBlock builds a Spec from a curated query block's attributes.
// Unknown or malformed attributes fall back to defaults.
func FromBlock(b *block.Block) Spec {
	s := Spec{
		Categories: block.StringListAttr(b, "categories"),
		Tags:       block.StringListAttr(b, "tags"),
		Author:     block.StringAttr(b, "author"),
		Search:     block.StringAttr(b, "search"),
		Include:    block.IDListAttr(b, "include"),
		Exclude:    block.IDListAttr(b, "exclude"),
		Status:     block.StringAttr(b, "status"),
		PageSize:   block.IntAttr(b, "pageSize", DefaultPageSize),
		Offset:     block.IntAttr(b, "offset", 0),
		OrderBy:    block.StringAttr(b, "orderBy"),
		Order:      block.StringAttr(b, "order"),
	}
	if s.OrderBy == "" {
		s.OrderBy = OrderByDate
	}
	if s.PageSize <= 0 {
		s.PageSize = DefaultPageSize
	}
	if s.Offset < 0 {
		s.Offset = 0
	}
	return s
}

// Filter translates the spec into a store-level post filter.
func (s Spec) Filter() db.PostFilter {
	return db.PostFilter{
		Categories: s.Categories,
		Tags:       s.Tags,
		Author:     s.Author,
		Search:     s.Search,
		Include:    s.Include,
		Exclude:    s.Exclude,
		Status:     s.Status,
		OrderBy:    s.OrderBy,
		Order:      s.Order,
		Limit:      s.PageSize,
		Offset:     s.Offset,
	}
}

// Rewritten reports whether the rewriter has taken over this spec's
// ordering. The reducer refuses to act unless this is true, so an
// unrelated query carrying a stale attribute is never reshuffled.
func (s Spec) Rewritten() bool {
	return s.OrderBy == OrderByNone && s.OrigPageSize > 0
}
