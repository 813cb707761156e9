package ops

import (
	"context"
	"database/sql"
	"strconv"

	"github.com/curio-cms/curio/internal/db"
	"github.com/curio-cms/curio/internal/errors"
	"github.com/curio-cms/curio/internal/post"
)

// GetPostInput contains parameters for the GetPost operation.
type GetPostInput struct {
	ID int64
}

// GetPostOutput contains the result of the GetPost operation.
type GetPostOutput struct {
	ID         int64    `json:"id"`
	Title      string   `json:"title"`
	Content    string   `json:"content"`
	Excerpt    *string  `json:"excerpt,omitempty"`
	Author     string   `json:"author,omitempty"`
	Status     string   `json:"status"`
	Categories []string `json:"categories,omitempty"`
	Tags       []string `json:"tags,omitempty"`
	CreatedAt  int64    `json:"created_at"`
	UpdatedAt  int64    `json:"updated_at"`
}

// GetPost retrieves a single post with its full content.
func GetPost(ctx context.Context, database *sql.DB, input GetPostInput) (*GetPostOutput, error) {
	if input.ID <= 0 {
		return nil, errors.NewInvalidRequest("post ID must be positive")
	}

	p, err := db.GetPost(ctx, database, input.ID)
	if err != nil {
		return nil, err
	}
	return postOutput(p), nil
}

func postOutput(p *post.Post) *GetPostOutput {
	return &GetPostOutput{
		ID:         p.ID,
		Title:      p.Title,
		Content:    p.Content,
		Excerpt:    p.Excerpt,
		Author:     p.Author,
		Status:     p.Status,
		Categories: p.Categories,
		Tags:       p.Tags,
		CreatedAt:  p.CreatedAt,
		UpdatedAt:  p.UpdatedAt,
	}
}

// ParsePostID converts a route parameter into a post ID.
func ParsePostID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, errors.NewInvalidRequest("post ID must be a positive integer")
	}
	return id, nil
}
