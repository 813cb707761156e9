package db

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/curio-cms/curio/internal/block"
	"github.com/curio-cms/curio/internal/errors"
	"github.com/curio-cms/curio/internal/page"
)

// InsertPage stores a new page with its block tree.
func InsertPage(ctx context.Context, db *sql.DB, p *page.Page) error {
	blocksJSON, err := block.Marshal(p.Blocks)
	if err != nil {
		return errors.NewInternal(err)
	}

	query := `
		INSERT INTO pages (id, slug, title, blocks_json, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	_, err = db.ExecContext(ctx, query,
		p.ID, p.Slug, toNullString(p.Title), string(blocksJSON), p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		if isUniqueConstraintError(err) {
			return errors.NewSlugExists(p.Slug)
		}
		return errors.NewInternal(err)
	}

	return nil
}

// isUniqueConstraintError checks if the error is a SQLite UNIQUE constraint violation.
func isUniqueConstraintError(err error) bool {
	if err == nil {
		return false
	}
	// SQLite returns "UNIQUE constraint failed: ..." for unique violations
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}

// GetPage retrieves a page by its ULID.
func GetPage(ctx context.Context, db *sql.DB, id string) (*page.Page, error) {
	return getPage(ctx, db, "id = ?", id)
}

// GetPageBySlug retrieves a page by slug.
func GetPageBySlug(ctx context.Context, db *sql.DB, slug string) (*page.Page, error) {
	return getPage(ctx, db, "slug = ?", slug)
}

func getPage(ctx context.Context, db *sql.DB, cond string, arg any) (*page.Page, error) {
	query := `
		SELECT id, slug, title, blocks_json, created_at, updated_at
		FROM pages
		WHERE ` + cond

	var (
		p          page.Page
		title      sql.NullString
		blocksJSON string
	)

	err := db.QueryRowContext(ctx, query, arg).Scan(
		&p.ID, &p.Slug, &title, &blocksJSON, &p.CreatedAt, &p.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		if s, ok := arg.(string); ok {
			return nil, errors.NewNotFound(s)
		}
		return nil, errors.NewNotFound("page")
	}
	if err != nil {
		return nil, errors.NewInternal(err)
	}

	p.Title = fromNullString(title)
	p.Blocks, err = block.Unmarshal([]byte(blocksJSON))
	if err != nil {
		return nil, errors.NewInternal(err)
	}

	return &p, nil
}

// UpdatePageBlocks replaces a page's entire block tree in one UPDATE.
// Order saves go through here so the customOrder attribute is swapped
// as a single atomic replacement rather than an incremental patch.
func UpdatePageBlocks(ctx context.Context, db *sql.DB, id string, blocks []block.Block) error {
	blocksJSON, err := block.Marshal(blocks)
	if err != nil {
		return errors.NewInternal(err)
	}

	query := `
		UPDATE pages
		SET blocks_json = ?, updated_at = ?
		WHERE id = ?
	`

	result, err := db.ExecContext(ctx, query, string(blocksJSON), time.Now().Unix(), id)
	if err != nil {
		return errors.NewInternal(err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return errors.NewInternal(err)
	}
	if rowsAffected == 0 {
		return errors.NewNotFound(id)
	}

	return nil
}

// ListPages retrieves page summaries ordered by last update.
func ListPages(ctx context.Context, db *sql.DB, limit, offset int) ([]page.Summary, int, error) {
	var total int
	if err := db.QueryRowContext(ctx, "SELECT COUNT(*) FROM pages").Scan(&total); err != nil {
		return nil, 0, errors.NewInternal(err)
	}

	if limit <= 0 {
		limit = -1
	}

	query := `
		SELECT id, slug, title, blocks_json, created_at, updated_at
		FROM pages
		ORDER BY updated_at DESC, id DESC
		LIMIT ? OFFSET ?
	`

	rows, err := db.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, 0, errors.NewInternal(err)
	}
	defer rows.Close()

	var summaries []page.Summary
	for rows.Next() {
		var (
			p          page.Page
			title      sql.NullString
			blocksJSON string
		)
		if err := rows.Scan(&p.ID, &p.Slug, &title, &blocksJSON, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, 0, errors.NewInternal(err)
		}
		p.Title = fromNullString(title)
		p.Blocks, err = block.Unmarshal([]byte(blocksJSON))
		if err != nil {
			return nil, 0, errors.NewInternal(err)
		}
		summaries = append(summaries, page.Summarize(&p))
	}
	if err := rows.Err(); err != nil {
		return nil, 0, errors.NewInternal(err)
	}

	return summaries, total, nil
}

// DeletePage removes a page by ID.
func DeletePage(ctx context.Context, db *sql.DB, id string) error {
	result, err := db.ExecContext(ctx, "DELETE FROM pages WHERE id = ?", id)
	if err != nil {
		return errors.NewInternal(err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return errors.NewInternal(err)
	}
	if rowsAffected == 0 {
		return errors.NewNotFound(id)
	}

	return nil
}
