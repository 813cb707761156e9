package mcp

import (
	"github.com/mark3labs/mcp-go/mcp"
)

var idItems = map[string]any{"type": "number"}
var stringItems = map[string]any{"type": "string"}

var postCreateToolDef = mcp.NewTool("post_create",
	mcp.WithDescription("Create a post. Returns the stored post summary."),
	mcp.WithString("title", mcp.Required(), mcp.Description("Post title")),
	mcp.WithString("content", mcp.Description("Post body (markdown)")),
	mcp.WithString("excerpt", mcp.Description("Optional short summary")),
	mcp.WithString("author", mcp.Description("Author handle")),
	mcp.WithString("status", mcp.Description("\"publish\" (default) or \"draft\"")),
	mcp.WithArray("categories", mcp.Description("Category slugs"), mcp.Items(stringItems)),
	mcp.WithArray("tags", mcp.Description("Tag slugs"), mcp.Items(stringItems)),
)

var postListToolDef = mcp.NewTool("post_list",
	mcp.WithDescription("List posts with filters and pagination."),
	mcp.WithString("search", mcp.Description("Substring match on title and content")),
	mcp.WithString("author", mcp.Description("Filter by author")),
	mcp.WithString("status", mcp.Description("Filter by status")),
	mcp.WithArray("tags", mcp.Description("Filter by tag slugs"), mcp.Items(stringItems)),
	mcp.WithArray("categories", mcp.Description("Filter by category slugs"), mcp.Items(stringItems)),
	mcp.WithString("order_by", mcp.Description("\"date\" (default) or \"title\"")),
	mcp.WithString("order", mcp.Description("\"asc\" or \"desc\" (default)")),
	mcp.WithNumber("limit", mcp.Description("Max results (default 20, max 100)")),
	mcp.WithNumber("offset", mcp.Description("Results to skip")),
)

var postGetToolDef = mcp.NewTool("post_get",
	mcp.WithDescription("Fetch a single post with its full content."),
	mcp.WithNumber("id", mcp.Required(), mcp.Description("Post ID")),
)

var postDeleteToolDef = mcp.NewTool("post_delete",
	mcp.WithDescription("Delete a post. Saved curated orders referencing it are left in place; stale IDs are skipped when feeds resolve."),
	mcp.WithNumber("id", mcp.Required(), mcp.Description("Post ID")),
)

var pageListToolDef = mcp.NewTool("page_list",
	mcp.WithDescription("List pages with their query block counts."),
	mcp.WithNumber("limit", mcp.Description("Max results (default 20, max 100)")),
	mcp.WithNumber("offset", mcp.Description("Results to skip")),
)

var pageGetToolDef = mcp.NewTool("page_get",
	mcp.WithDescription("Fetch a page with its full block tree."),
	mcp.WithString("ref", mcp.Required(), mcp.Description("Page ID or slug")),
)

var pageImportToolDef = mcp.NewTool("page_import",
	mcp.WithDescription("Import a page document (.json, .yaml, or .yml) from disk."),
	mcp.WithString("path", mcp.Required(), mcp.Description("Path to the page document")),
)

var pageExportToolDef = mcp.NewTool("page_export",
	mcp.WithDescription("Export a page document to <dir>/<slug>.json."),
	mcp.WithString("ref", mcp.Required(), mcp.Description("Page ID or slug")),
	mcp.WithString("dir", mcp.Required(), mcp.Description("Destination directory")),
)

var feedResolveToolDef = mcp.NewTool("feed_resolve",
	mcp.WithDescription("Resolve a page's curated feed: posts in saved order first, remaining matches after, paginated by the block's settings."),
	mcp.WithString("page", mcp.Required(), mcp.Description("Page ID or slug")),
	mcp.WithString("query", mcp.Description("Query block identity; defaults to the page's first query block")),
)

var orderGetToolDef = mcp.NewTool("order_get",
	mcp.WithDescription("Read the saved curated order of a page's query block."),
	mcp.WithString("page", mcp.Required(), mcp.Description("Page ID or slug")),
	mcp.WithString("query", mcp.Description("Query block identity")),
)

var orderSetToolDef = mcp.NewTool("order_set",
	mcp.WithDescription("Save a curated order onto a page's query block. Non-positive IDs are dropped; an empty result leaves the stored order untouched."),
	mcp.WithString("page", mcp.Required(), mcp.Description("Page ID or slug")),
	mcp.WithString("query", mcp.Description("Query block identity")),
	mcp.WithArray("ids", mcp.Required(), mcp.Description("Post IDs in the desired order"), mcp.Items(idItems)),
)

var orderClearToolDef = mcp.NewTool("order_clear",
	mcp.WithDescription("Remove the curated order from a page's query block."),
	mcp.WithString("page", mcp.Required(), mcp.Description("Page ID or slug")),
	mcp.WithString("query", mcp.Description("Query block identity")),
)

var candidatesListToolDef = mcp.NewTool("candidates_list",
	mcp.WithDescription("List the reorderable candidate posts of a query block, with the saved order applied."),
	mcp.WithString("page", mcp.Required(), mcp.Description("Page ID or slug")),
	mcp.WithString("query", mcp.Description("Query block identity")),
)
