package ops

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"path/filepath"

	"github.com/natefinch/atomic"

	"github.com/curio-cms/curio/internal/errors"
)

// ExportPageInput contains parameters for the ExportPage operation.
type ExportPageInput struct {
	Ref string // page ID or slug
	Dir string // destination directory (typically baseDir/exports)
}

// ExportPageOutput contains the result of the ExportPage operation.
type ExportPageOutput struct {
	Path string `json:"path"`
}

// ExportPage writes a page document to Dir/<slug>.json. The write is
// atomic so a crash mid-export never leaves a truncated document.
func ExportPage(ctx context.Context, database *sql.DB, input ExportPageInput) (*ExportPageOutput, error) {
	if input.Dir == "" {
		return nil, errors.NewInvalidRequest("export directory is required")
	}

	p, err := loadPage(ctx, database, input.Ref)
	if err != nil {
		return nil, err
	}

	doc := pageDocument{
		Slug:   p.Slug,
		Title:  p.Title,
		Blocks: p.Blocks,
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, errors.NewInternal(err)
	}
	data = append(data, '\n')

	path := filepath.Join(input.Dir, p.Slug+".json")
	if err := atomic.WriteFile(path, bytes.NewReader(data)); err != nil {
		return nil, errors.NewInternal(err)
	}

	return &ExportPageOutput{Path: path}, nil
}
