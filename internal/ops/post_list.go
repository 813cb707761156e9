package ops

import (
	"context"
	"database/sql"

	"github.com/curio-cms/curio/internal/db"
	"github.com/curio-cms/curio/internal/post"
)

// ListPostsInput contains parameters for the ListPosts operation.
type ListPostsInput struct {
	Categories []string
	Tags       []string
	Author     string
	Search     string
	Include    []int64
	Exclude    []int64
	Status     string
	OrderBy    string // "date" (default), "title"
	Order      string // "asc" or "desc" (default)
	Limit      int    // default: 20, max: 100
	Offset     int    // default: 0
}

// ListPostsOutput contains the result of the ListPosts operation.
type ListPostsOutput struct {
	Items      []post.Summary `json:"items"`
	Pagination Pagination     `json:"pagination"`
	Sort       string         `json:"sort"`
}

// ListPosts retrieves post summaries matching the filters, paginated.
func ListPosts(ctx context.Context, database *sql.DB, input ListPostsInput) (*ListPostsOutput, error) {
	limit := clampLimit(input.Limit)
	offset := max(input.Offset, 0)

	orderBy := input.OrderBy
	if orderBy != db.OrderByTitle {
		orderBy = db.OrderByDate
	}

	filter := db.PostFilter{
		Categories: post.NormalizeAll(input.Categories),
		Tags:       post.NormalizeAll(input.Tags),
		Author:     post.Normalize(input.Author),
		Search:     input.Search,
		Include:    input.Include,
		Exclude:    input.Exclude,
		Status:     input.Status,
		OrderBy:    orderBy,
		Order:      input.Order,
		Limit:      limit,
		Offset:     offset,
	}

	posts, total, err := db.ListPosts(ctx, database, filter)
	if err != nil {
		return nil, err
	}

	items := make([]post.Summary, len(posts))
	for i := range posts {
		items[i] = post.Summarize(&posts[i])
	}

	sort := orderBy + "_desc"
	if filter.Order == "asc" {
		sort = orderBy + "_asc"
	}

	return &ListPostsOutput{
		Items: items,
		Pagination: Pagination{
			Limit:   limit,
			Offset:  offset,
			HasMore: offset+len(items) < total,
			Total:   total,
		},
		Sort: sort,
	}, nil
}
