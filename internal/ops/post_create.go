package ops

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/curio-cms/curio/internal/db"
	"github.com/curio-cms/curio/internal/errors"
	"github.com/curio-cms/curio/internal/post"
)

// CreatePostInput contains parameters for the CreatePost operation.
type CreatePostInput struct {
	Title      string
	Content    string
	Excerpt    *string
	Author     string
	Status     string // defaults to "publish"
	Categories []string
	Tags       []string
}

// CreatePostOutput contains the result of the CreatePost operation.
type CreatePostOutput struct {
	Post post.Summary `json:"post"`
}

// CreatePost validates and stores a new post.
func CreatePost(ctx context.Context, database *sql.DB, input CreatePostInput) (*CreatePostOutput, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, errors.NewInvalidRequest("title is required")
	}

	status := strings.TrimSpace(input.Status)
	if status == "" {
		status = post.StatusPublish
	}
	if !post.ValidStatus(status) {
		return nil, errors.NewInvalidRequest("status must be \"publish\" or \"draft\"")
	}

	now := time.Now().Unix()
	p := &post.Post{
		Title:      title,
		Content:    input.Content,
		Excerpt:    input.Excerpt,
		Author:     post.Normalize(input.Author),
		Status:     status,
		Categories: post.NormalizeAll(input.Categories),
		Tags:       post.NormalizeAll(input.Tags),
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if _, err := db.InsertPost(ctx, database, p); err != nil {
		return nil, err
	}

	return &CreatePostOutput{Post: post.Summarize(p)}, nil
}
