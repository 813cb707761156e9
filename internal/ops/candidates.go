package ops

import (
	"context"
	"database/sql"

	"github.com/curio-cms/curio/internal/block"
	"github.com/curio-cms/curio/internal/editor"
	"github.com/curio-cms/curio/internal/post"
	"github.com/curio-cms/curio/internal/query"
)

// ListCandidatesInput contains parameters for the ListCandidates
// operation.
type ListCandidatesInput struct {
	PageRef string
	QueryID string
	Cap     int // <= 0 uses the editor default
}

// ListCandidatesOutput contains the result of the ListCandidates
// operation.
type ListCandidatesOutput struct {
	PageID     string         `json:"page_id"`
	Identity   string         `json:"identity"`
	Candidates []post.Summary `json:"candidates"`
	SavedOrder []int64        `json:"saved_order"`
}

// ListCandidates loads the reorderable candidate set for a page's
// query block, with the saved curated order already applied so the
// listing mirrors what the resolved feed will render.
func ListCandidates(ctx context.Context, database *sql.DB, input ListCandidatesInput) (*ListCandidatesOutput, error) {
	p, err := loadPage(ctx, database, input.PageRef)
	if err != nil {
		return nil, err
	}

	qb, err := findQueryBlock(p, input.QueryID)
	if err != nil {
		return nil, err
	}

	identity, _ := block.Identity(qb)
	saved := block.CustomOrder(qb)
	spec := query.FromBlock(qb)

	loader := editor.NewLoader(database, input.Cap)
	candidates := loader.Load(ctx, spec, saved)

	return &ListCandidatesOutput{
		PageID:     p.ID,
		Identity:   identity,
		Candidates: candidates,
		SavedOrder: saved,
	}, nil
}
