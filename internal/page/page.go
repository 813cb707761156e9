package page

import (
	"github.com/oklog/ulid/v2"

	"github.com/curio-cms/curio/internal/block"
)

// Page is a stored document: a slug plus a tree of content blocks.
// Curated query blocks live somewhere in that tree; the order resolver
// re-parses this structure when its render-pass cache misses.
type Page struct {
	// ID is a ULID that uniquely identifies this page
	ID string

	// Slug is the unique URL fragment for the page
	Slug string

	// Title is an optional human-readable title
	Title *string

	// Blocks is the content tree (stored as JSON in DB)
	Blocks []block.Block

	// CreatedAt is the Unix timestamp when the page was created
	CreatedAt int64

	// UpdatedAt is the Unix timestamp when the page was last updated
	UpdatedAt int64
}

// NewID generates a ULID for a new page.
func NewID() string {
	return ulid.Make().String()
}

// Summary is the lightweight listing shape for pages.
type Summary struct {
	ID         string  `json:"id"`
	Slug       string  `json:"slug"`
	Title      *string `json:"title,omitempty"`
	QueryCount int     `json:"query_count"`
	UpdatedAt  int64   `json:"updated_at"`
}

// Summarize converts a Page to its listing shape.
func Summarize(p *Page) Summary {
	return Summary{
		ID:         p.ID,
		Slug:       p.Slug,
		Title:      p.Title,
		QueryCount: len(block.FindAllQueries(p.Blocks)),
		UpdatedAt:  p.UpdatedAt,
	}
}
