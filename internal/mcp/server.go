package mcp

import (
	"context"
	"database/sql"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/curio-cms/curio/internal/config"
)

// toolEntry pairs a tool definition with a handler factory.
type toolEntry struct {
	def     mcp.Tool
	handler func(*Handlers) server.ToolHandlerFunc
}

// toolRegistry maps tool names to their definitions and handler factories.
var toolRegistry = map[string]toolEntry{
	"post_create": {
		def:     postCreateToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandlePostCreate },
	},
	"post_list": {
		def:     postListToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandlePostList },
	},
	"post_get": {
		def:     postGetToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandlePostGet },
	},
	"post_delete": {
		def:     postDeleteToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandlePostDelete },
	},
	"page_list": {
		def:     pageListToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandlePageList },
	},
	"page_get": {
		def:     pageGetToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandlePageGet },
	},
	"page_import": {
		def:     pageImportToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandlePageImport },
	},
	"page_export": {
		def:     pageExportToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandlePageExport },
	},
	"feed_resolve": {
		def:     feedResolveToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleFeedResolve },
	},
	"order_get": {
		def:     orderGetToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleOrderGet },
	},
	"order_set": {
		def:     orderSetToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleOrderSet },
	},
	"order_clear": {
		def:     orderClearToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleOrderClear },
	},
	"candidates_list": {
		def:     candidatesListToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleCandidatesList },
	},
}

// AllToolNames returns a list of all valid tool names.
func AllToolNames() []string {
	names := make([]string, 0, len(toolRegistry))
	for name := range toolRegistry {
		names = append(names, name)
	}
	return names
}

// ValidateDisabledTools returns a list of unknown tool names from the given list.
func ValidateDisabledTools(names []string) []string {
	unknown := make([]string, 0)
	for _, name := range names {
		if _, ok := toolRegistry[name]; !ok {
			unknown = append(unknown, name)
		}
	}
	return unknown
}

// NewServer creates a new MCP server with Curio tools registered.
// Tools listed in cfg.DisabledTools are excluded from registration.
func NewServer(db *sql.DB, cfg *config.Config, version string) *server.MCPServer {
	s := server.NewMCPServer(
		"curio",
		version,
		server.WithToolCapabilities(true),
	)

	h := NewHandlers(db, cfg)

	disabled := make(map[string]bool)
	for _, name := range cfg.DisabledTools {
		disabled[name] = true
	}

	for name, entry := range toolRegistry {
		if disabled[name] {
			continue
		}
		s.AddTool(entry.def, entry.handler(h))
	}

	return s
}

// Run starts the MCP server using stdio transport.
func Run(db *sql.DB, cfg *config.Config, version string) error {
	s := NewServer(db, cfg, version)
	return server.ServeStdio(s)
}

// ToolHandlerFunc is the signature for tool handlers.
type ToolHandlerFunc func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error)
