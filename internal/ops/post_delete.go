package ops

import (
	"context"
	"database/sql"

	"github.com/curio-cms/curio/internal/db"
)

// DeletePostInput contains parameters for the DeletePost operation.
type DeletePostInput struct {
	ID int64
}

// DeletePostOutput contains the result of the DeletePost operation.
type DeletePostOutput struct {
	Deleted bool  `json:"deleted"`
	ID      int64 `json:"id"`
}

// DeletePost removes a post. Saved curated orders referencing the post
// are left alone: unmatched identifiers are silently skipped at read
// time, so a deleted post simply drops out of curated feeds.
func DeletePost(ctx context.Context, database *sql.DB, input DeletePostInput) (*DeletePostOutput, error) {
	if err := db.DeletePost(ctx, database, input.ID); err != nil {
		return nil, err
	}
	return &DeletePostOutput{Deleted: true, ID: input.ID}, nil
}
