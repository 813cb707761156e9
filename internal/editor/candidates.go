// Package editor implements the interactive reorder surface: loading
// candidate posts for a curated query block, tracking a drag gesture,
// and persisting the resulting order.
package editor

import (
	"context"
	"database/sql"
	"log"

	"github.com/curio-cms/curio/internal/db"
	"github.com/curio-cms/curio/internal/post"
	"github.com/curio-cms/curio/internal/query"
)

// DefaultCandidateCap bounds how many candidates one editing session
// fetches, whatever page size the block asked for.
const DefaultCandidateCap = 100

// Loader fetches the candidate set for an editing session.
type Loader struct {
	db  *sql.DB
	cap int
}

// NewLoader creates a Loader with the given candidate cap (<= 0 uses
// the default).
func NewLoader(database *sql.DB, candidateCap int) *Loader {
	if candidateCap <= 0 {
		candidateCap = DefaultCandidateCap
	}
	return &Loader{db: database, cap: candidateCap}
}

// Load translates the block's query spec into a capped list fetch and
// returns candidates with any saved order applied up front, the same
// merge the result reducer performs, so the editor preview matches the
// eventual render output.
//
// A fetch failure degrades to an empty list: it is logged, not fatal to
// the editing session, and reopening the editor retries naturally.
func (l *Loader) Load(ctx context.Context, spec query.Spec, savedOrder []int64) []post.Summary {
	filter := spec.Filter()
	filter.Limit = l.cap
	filter.Offset = 0

	raw, _, err := db.ListPosts(ctx, l.db, filter)
	if err != nil {
		log.Printf("editor: candidate fetch failed: %v", err)
		return []post.Summary{}
	}

	merged := query.Merge(raw, savedOrder)

	candidates := make([]post.Summary, len(merged))
	for i := range merged {
		candidates[i] = post.Summarize(&merged[i])
	}
	return candidates
}
