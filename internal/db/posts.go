package db

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/curio-cms/curio/internal/errors"
	"github.com/curio-cms/curio/internal/post"
)

// Post ordering modes. OrderByNone is what the query rewriter sets: the
// explicit sort is dropped and rows come back in insertion (rowid)
// order so the result reducer can interleave the curated list.
const (
	OrderByDate  = "date"
	OrderByTitle = "title"
	OrderByNone  = "none"
)

// PostFilter describes a filtered, paged post listing.
type PostFilter struct {
	Categories []string // match any
	Tags       []string // match any
	Author     string
	Search     string  // substring match on title/content
	Include    []int64 // restrict to these IDs
	Exclude    []int64
	Status     string // empty means any
	OrderBy    string // "date", "title", or "none"
	Order      string // "asc" or "desc"; ignored for "none"
	Limit      int
	Offset     int
}

// InsertPost stores a new post and returns its assigned ID.
func InsertPost(ctx context.Context, db *sql.DB, p *post.Post) (int64, error) {
	categoriesJSON, err := toJSONList(p.Categories)
	if err != nil {
		return 0, errors.NewInternal(err)
	}
	tagsJSON, err := toJSONList(p.Tags)
	if err != nil {
		return 0, errors.NewInternal(err)
	}

	query := `
		INSERT INTO posts (
			title, content, excerpt, author, status,
			categories_json, tags_json, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	result, err := db.ExecContext(ctx, query,
		p.Title, p.Content, toNullString(p.Excerpt), p.Author, p.Status,
		categoriesJSON, tagsJSON, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		return 0, errors.NewInternal(err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, errors.NewInternal(err)
	}
	p.ID = id

	return id, nil
}

// GetPost retrieves a post by ID.
func GetPost(ctx context.Context, db *sql.DB, id int64) (*post.Post, error) {
	query := `
		SELECT id, title, content, excerpt, author, status,
			categories_json, tags_json, created_at, updated_at
		FROM posts
		WHERE id = ?
	`

	row := db.QueryRowContext(ctx, query, id)
	p, err := scanPost(row.Scan)
	if err == sql.ErrNoRows {
		return nil, errors.NewNotFound(fmt.Sprintf("post %d", id))
	}
	if err != nil {
		return nil, errors.NewInternal(err)
	}

	return p, nil
}

// DeletePost removes a post by ID.
func DeletePost(ctx context.Context, db *sql.DB, id int64) error {
	result, err := db.ExecContext(ctx, "DELETE FROM posts WHERE id = ?", id)
	if err != nil {
		return errors.NewInternal(err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return errors.NewInternal(err)
	}
	if rowsAffected == 0 {
		return errors.NewNotFound(fmt.Sprintf("post %d", id))
	}

	return nil
}

// ListPosts retrieves posts matching the filter, plus the unpaged total.
func ListPosts(ctx context.Context, db *sql.DB, f PostFilter) ([]post.Post, int, error) {
	where, args := buildPostWhere(f)

	// Total before pagination
	countQuery := "SELECT COUNT(*) FROM posts" + where
	var total int
	if err := db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, errors.NewInternal(err)
	}

	query := `
		SELECT id, title, content, excerpt, author, status,
			categories_json, tags_json, created_at, updated_at
		FROM posts` + where + orderClause(f) + " LIMIT ? OFFSET ?"

	limit := f.Limit
	if limit <= 0 {
		limit = -1 // SQLite: no limit
	}
	pagedArgs := append(append([]any{}, args...), limit, f.Offset)

	rows, err := db.QueryContext(ctx, query, pagedArgs...)
	if err != nil {
		return nil, 0, errors.NewInternal(err)
	}
	defer rows.Close()

	var posts []post.Post
	for rows.Next() {
		p, err := scanPost(rows.Scan)
		if err != nil {
			return nil, 0, errors.NewInternal(err)
		}
		posts = append(posts, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, errors.NewInternal(err)
	}

	return posts, total, nil
}

// buildPostWhere translates a PostFilter into a WHERE clause and args.
func buildPostWhere(f PostFilter) (string, []any) {
	var (
		conds []string
		args  []any
	)

	if f.Status != "" {
		conds = append(conds, "status = ?")
		args = append(args, f.Status)
	}
	if f.Author != "" {
		conds = append(conds, "author = ?")
		args = append(args, f.Author)
	}
	if f.Search != "" {
		conds = append(conds, "(title LIKE ? ESCAPE '\\' OR content LIKE ? ESCAPE '\\')")
		pattern := "%" + escapeLike(f.Search) + "%"
		args = append(args, pattern, pattern)
	}
	if len(f.Categories) > 0 {
		cond, catArgs := jsonAnyMatch("categories_json", f.Categories)
		conds = append(conds, cond)
		args = append(args, catArgs...)
	}
	if len(f.Tags) > 0 {
		cond, tagArgs := jsonAnyMatch("tags_json", f.Tags)
		conds = append(conds, cond)
		args = append(args, tagArgs...)
	}
	if len(f.Include) > 0 {
		conds = append(conds, "id IN ("+placeholders(len(f.Include))+")")
		for _, id := range f.Include {
			args = append(args, id)
		}
	}
	if len(f.Exclude) > 0 {
		conds = append(conds, "id NOT IN ("+placeholders(len(f.Exclude))+")")
		for _, id := range f.Exclude {
			args = append(args, id)
		}
	}

	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

// orderClause maps the filter's ordering mode to SQL. "none" still
// orders by rowid so results are deterministic for the reducer.
func orderClause(f PostFilter) string {
	dir := "DESC"
	if strings.EqualFold(f.Order, "asc") {
		dir = "ASC"
	}

	switch f.OrderBy {
	case OrderByTitle:
		return " ORDER BY title " + dir + ", id " + dir
	case OrderByNone:
		return " ORDER BY id ASC"
	default: // OrderByDate
		return " ORDER BY created_at " + dir + ", id " + dir
	}
}

// jsonAnyMatch builds an EXISTS condition matching rows whose JSON list
// column contains any of the given values.
func jsonAnyMatch(column string, values []string) (string, []any) {
	cond := fmt.Sprintf(
		"EXISTS (SELECT 1 FROM json_each(posts.%s) WHERE json_each.value IN (%s))",
		column, placeholders(len(values)),
	)
	args := make([]any, len(values))
	for i, v := range values {
		args[i] = v
	}
	return cond, args
}

// placeholders returns n comma-separated SQL placeholders.
func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?,", n), ",")
}

// escapeLike escapes LIKE wildcards in user-supplied search text.
func escapeLike(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, "%", `\%`)
	s = strings.ReplaceAll(s, "_", `\_`)
	return s
}

// scanPost scans a post row via the given scan function.
func scanPost(scan func(dest ...any) error) (*post.Post, error) {
	var (
		p              post.Post
		excerpt        sql.NullString
		categoriesJSON sql.NullString
		tagsJSON       sql.NullString
	)

	err := scan(
		&p.ID, &p.Title, &p.Content, &excerpt, &p.Author, &p.Status,
		&categoriesJSON, &tagsJSON, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	p.Excerpt = fromNullString(excerpt)

	if categoriesJSON.Valid && categoriesJSON.String != "" {
		if err := json.Unmarshal([]byte(categoriesJSON.String), &p.Categories); err != nil {
			return nil, err
		}
	}
	if tagsJSON.Valid && tagsJSON.String != "" {
		if err := json.Unmarshal([]byte(tagsJSON.String), &p.Tags); err != nil {
			return nil, err
		}
	}

	return &p, nil
}

// toJSONList marshals a string slice to a nullable JSON column value.
func toJSONList(values []string) (sql.NullString, error) {
	if len(values) == 0 {
		return sql.NullString{}, nil
	}
	data, err := json.Marshal(values)
	if err != nil {
		return sql.NullString{}, err
	}
	return sql.NullString{String: string(data), Valid: true}, nil
}

// toNullString converts a *string to sql.NullString.
func toNullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

// fromNullString converts a sql.NullString to *string.
func fromNullString(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	return &ns.String
}
