package mcp

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/curio-cms/curio/internal/config"
	"github.com/curio-cms/curio/internal/errors"
	"github.com/curio-cms/curio/internal/ops"
	"github.com/curio-cms/curio/internal/query"
)

// Handlers holds dependencies for MCP tool handlers.
type Handlers struct {
	db       *sql.DB
	cfg      *config.Config
	resolver *query.Resolver
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(db *sql.DB, cfg *config.Config) *Handlers {
	return &Handlers{
		db:       db,
		cfg:      cfg,
		resolver: ops.NewResolver(db, cfg),
	}
}

// Request types for each tool

// PostCreateRequest represents the arguments for post_create.
type PostCreateRequest struct {
	Title      string   `json:"title"`
	Content    string   `json:"content,omitempty"`
	Excerpt    *string  `json:"excerpt,omitempty"`
	Author     string   `json:"author,omitempty"`
	Status     string   `json:"status,omitempty"`
	Categories []string `json:"categories,omitempty"`
	Tags       []string `json:"tags,omitempty"`
}

// PostListRequest represents the arguments for post_list.
type PostListRequest struct {
	Search     string   `json:"search,omitempty"`
	Author     string   `json:"author,omitempty"`
	Status     string   `json:"status,omitempty"`
	Tags       []string `json:"tags,omitempty"`
	Categories []string `json:"categories,omitempty"`
	OrderBy    string   `json:"order_by,omitempty"`
	Order      string   `json:"order,omitempty"`
	Limit      int      `json:"limit,omitempty"`
	Offset     int      `json:"offset,omitempty"`
}

// PostIDRequest represents the arguments for post_get and post_delete.
type PostIDRequest struct {
	ID int64 `json:"id"`
}

// PageListRequest represents the arguments for page_list.
type PageListRequest struct {
	Limit  int `json:"limit,omitempty"`
	Offset int `json:"offset,omitempty"`
}

// PageRefRequest represents the arguments for page_get.
type PageRefRequest struct {
	Ref string `json:"ref"`
}

// PageImportRequest represents the arguments for page_import.
type PageImportRequest struct {
	Path string `json:"path"`
}

// PageExportRequest represents the arguments for page_export.
type PageExportRequest struct {
	Ref string `json:"ref"`
	Dir string `json:"dir"`
}

// FeedResolveRequest represents the arguments for feed_resolve.
type FeedResolveRequest struct {
	Page  string `json:"page"`
	Query string `json:"query,omitempty"`
}

// OrderRequest represents the arguments for order_get and order_clear.
type OrderRequest struct {
	Page  string `json:"page"`
	Query string `json:"query,omitempty"`
}

// OrderSetRequest represents the arguments for order_set.
type OrderSetRequest struct {
	Page  string  `json:"page"`
	Query string  `json:"query,omitempty"`
	IDs   []int64 `json:"ids"`
}

// Handler implementations

// HandlePostCreate handles the post_create tool call.
func (h *Handlers) HandlePostCreate(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[PostCreateRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.CreatePost(ctx, h.db, ops.CreatePostInput{
		Title:      input.Title,
		Content:    input.Content,
		Excerpt:    input.Excerpt,
		Author:     input.Author,
		Status:     input.Status,
		Categories: input.Categories,
		Tags:       input.Tags,
	})
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(result)
}

// HandlePostList handles the post_list tool call.
func (h *Handlers) HandlePostList(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[PostListRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.ListPosts(ctx, h.db, ops.ListPostsInput{
		Search:     input.Search,
		Author:     input.Author,
		Status:     input.Status,
		Tags:       input.Tags,
		Categories: input.Categories,
		OrderBy:    input.OrderBy,
		Order:      input.Order,
		Limit:      input.Limit,
		Offset:     input.Offset,
	})
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(result)
}

// HandlePostGet handles the post_get tool call.
func (h *Handlers) HandlePostGet(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[PostIDRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.GetPost(ctx, h.db, ops.GetPostInput{ID: input.ID})
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(result)
}

// HandlePostDelete handles the post_delete tool call.
func (h *Handlers) HandlePostDelete(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[PostIDRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.DeletePost(ctx, h.db, ops.DeletePostInput{ID: input.ID})
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(result)
}

// HandlePageList handles the page_list tool call.
func (h *Handlers) HandlePageList(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[PageListRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.ListPages(ctx, h.db, ops.ListPagesInput{
		Limit:  input.Limit,
		Offset: input.Offset,
	})
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(result)
}

// HandlePageGet handles the page_get tool call.
func (h *Handlers) HandlePageGet(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[PageRefRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.GetPage(ctx, h.db, ops.GetPageInput{Ref: input.Ref})
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(result)
}

// HandlePageImport handles the page_import tool call.
func (h *Handlers) HandlePageImport(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[PageImportRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.ImportPage(ctx, h.db, ops.ImportPageInput{Path: input.Path})
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(result)
}

// HandlePageExport handles the page_export tool call.
func (h *Handlers) HandlePageExport(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[PageExportRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.ExportPage(ctx, h.db, ops.ExportPageInput{
		Ref: input.Ref,
		Dir: input.Dir,
	})
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(result)
}

// HandleFeedResolve handles the feed_resolve tool call.
func (h *Handlers) HandleFeedResolve(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[FeedResolveRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.ResolveFeed(ctx, h.db, h.resolver, ops.ResolveFeedInput{
		PageRef: input.Page,
		QueryID: input.Query,
	})
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(result)
}

// HandleOrderGet handles the order_get tool call.
func (h *Handlers) HandleOrderGet(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[OrderRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.GetOrder(ctx, h.db, ops.GetOrderInput{
		PageRef: input.Page,
		QueryID: input.Query,
	})
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(result)
}

// HandleOrderSet handles the order_set tool call.
func (h *Handlers) HandleOrderSet(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[OrderSetRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.SaveOrder(ctx, h.db, h.resolver, ops.SaveOrderInput{
		PageRef: input.Page,
		QueryID: input.Query,
		IDs:     input.IDs,
	})
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(result)
}

// HandleOrderClear handles the order_clear tool call.
func (h *Handlers) HandleOrderClear(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[OrderRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.ClearOrder(ctx, h.db, h.resolver, ops.ClearOrderInput{
		PageRef: input.Page,
		QueryID: input.Query,
	})
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(result)
}

// HandleCandidatesList handles the candidates_list tool call.
func (h *Handlers) HandleCandidatesList(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[OrderRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.ListCandidates(ctx, h.db, ops.ListCandidatesInput{
		PageRef: input.Page,
		QueryID: input.Query,
		Cap:     h.cfg.CandidateMaxItems,
	})
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(result)
}

// Result helpers

// errorResult creates an MCP error result from any error.
// Uses IsError: true so MCP clients recognize failures properly.
// Note: Internal error details are not exposed to prevent leaking sensitive info.
func errorResult(err error) *mcp.CallToolResult {
	var payload map[string]any

	if cErr, ok := err.(*errors.Error); ok {
		errorObj := map[string]any{
			"code":    cErr.Code,
			"message": cErr.Message,
			"status":  cErr.Status,
		}
		// Only include details for non-internal errors to avoid leaking
		// sensitive info like file paths or SQL errors
		if cErr.Code != errors.ErrInternal && cErr.Details != nil {
			errorObj["details"] = cErr.Details
		}
		payload = map[string]any{"error": errorObj}
	} else {
		payload = map[string]any{
			"error": map[string]any{
				"code":    "INTERNAL",
				"message": "an internal error occurred",
				"status":  500,
			},
		}
	}

	content, _ := json.Marshal(payload)
	return &mcp.CallToolResult{
		Content: []mcp.Content{mcp.TextContent{Type: "text", Text: string(content)}},
		IsError: true,
	}
}

// successResult creates an MCP success result from any data.
func successResult(data any) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultJSON(data)
}
