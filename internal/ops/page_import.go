package ops

import (
	"context"
	"database/sql"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/curio-cms/curio/internal/block"
	"github.com/curio-cms/curio/internal/errors"
	"github.com/curio-cms/curio/internal/page"
)

// ImportPageInput contains parameters for the ImportPage operation.
type ImportPageInput struct {
	Path string // .json or .yaml/.yml page document
}

// ImportPageOutput contains the result of the ImportPage operation.
type ImportPageOutput struct {
	Page page.Summary `json:"page"`
}

// pageDocument is the on-disk page shape for import/export.
type pageDocument struct {
	Slug   string        `json:"slug" yaml:"slug"`
	Title  *string       `json:"title,omitempty" yaml:"title,omitempty"`
	Blocks []block.Block `json:"blocks" yaml:"blocks"`
}

// ImportPage reads a page document from disk and stores it.
func ImportPage(ctx context.Context, database *sql.DB, input ImportPageInput) (*ImportPageOutput, error) {
	if input.Path == "" {
		return nil, errors.NewInvalidRequest("path is required")
	}

	data, err := os.ReadFile(input.Path)
	if err != nil {
		return nil, errors.NewInvalidRequest("cannot read page document: " + err.Error())
	}

	doc, err := parsePageDocument(input.Path, data)
	if err != nil {
		return nil, err
	}

	out, err := SavePage(ctx, database, SavePageInput{
		Slug:   doc.Slug,
		Title:  doc.Title,
		Blocks: doc.Blocks,
	})
	if err != nil {
		return nil, err
	}

	return &ImportPageOutput{Page: out.Page}, nil
}

// parsePageDocument decodes a page document by file extension.
func parsePageDocument(path string, data []byte) (*pageDocument, error) {
	doc := &pageDocument{}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, doc); err != nil {
			return nil, errors.NewInvalidRequest("invalid YAML page document: " + err.Error())
		}
	case ".json":
		if err := json.Unmarshal(data, doc); err != nil {
			return nil, errors.NewInvalidRequest("invalid JSON page document: " + err.Error())
		}
	default:
		return nil, errors.NewInvalidRequest("page document must be .json, .yaml, or .yml")
	}

	return doc, nil
}
