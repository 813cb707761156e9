package web

import (
	"database/sql"
	"net/http"
	"strconv"
	"strings"

	"github.com/curio-cms/curio/internal/config"
	"github.com/curio-cms/curio/internal/errors"
	"github.com/curio-cms/curio/internal/ops"
	"github.com/curio-cms/curio/internal/query"
)

// Handlers contains HTTP route handlers for the web UI.
type Handlers struct {
	db       *sql.DB
	cfg      *config.Config
	resolver *query.Resolver
	renderer *Renderer
}

// HandlePages handles GET /pages: list pages.
func (h *Handlers) HandlePages(w http.ResponseWriter, r *http.Request) {
	result, err := ops.ListPages(r.Context(), h.db, ops.ListPagesInput{
		Limit:  parseIntParam(r, "limit", 20),
		Offset: parseIntParam(r, "offset", 0),
	})
	if err != nil {
		h.renderer.renderError(w, r, err)
		return
	}

	h.renderer.renderPage(w, r, "pages", PagesPageData{
		PageData: PageData{
			Title:   "Pages",
			Version: h.renderer.version,
			Nav:     "pages",
		},
		Items:      result.Items,
		Pagination: result.Pagination,
	})
}

// HandlePageView handles GET /pages/{ref}: render a page with its
// resolved feed.
func (h *Handlers) HandlePageView(w http.ResponseWriter, r *http.Request) {
	ref := r.PathValue("ref")
	if ref == "" {
		h.renderer.renderError(w, r, errors.NewInvalidRequest("page reference is required"))
		return
	}

	p, err := ops.GetPage(r.Context(), h.db, ops.GetPageInput{Ref: ref})
	if err != nil {
		h.renderer.renderError(w, r, err)
		return
	}

	// The feed is optional: a page without a query block still renders.
	var feed *ops.ResolveFeedOutput
	feed, err = ops.ResolveFeed(r.Context(), h.db, h.resolver, ops.ResolveFeedInput{
		PageRef:   ref,
		QueryID:   r.URL.Query().Get("query"),
		RoutePath: r.URL.Path,
		Referer:   r.Header.Get("Referer"),
	})
	if err != nil && !errors.Is(err, errors.ErrNotFound) {
		h.renderer.renderError(w, r, err)
		return
	}

	h.renderer.renderPage(w, r, "page", PageViewData{
		PageData: PageData{
			Title:   pageTitle(p),
			Version: h.renderer.version,
			Nav:     "pages",
		},
		Page: p,
		Feed: feed,
	})
}

// HandleFeed handles GET /pages/{ref}/feed: the resolved feed as an
// htmx fragment or JSON.
func (h *Handlers) HandleFeed(w http.ResponseWriter, r *http.Request) {
	ref := r.PathValue("ref")
	if ref == "" {
		h.renderer.renderError(w, r, errors.NewInvalidRequest("page reference is required"))
		return
	}

	feed, err := ops.ResolveFeed(r.Context(), h.db, h.resolver, ops.ResolveFeedInput{
		PageRef:    ref,
		QueryID:    r.URL.Query().Get("query"),
		RoutePath:  r.URL.Path,
		Referer:    r.Header.Get("Referer"),
		APIRequest: !isHTMX(r),
	})
	if err != nil {
		h.renderer.renderError(w, r, err)
		return
	}

	if isHTMX(r) {
		p, err := ops.GetPage(r.Context(), h.db, ops.GetPageInput{Ref: ref})
		if err != nil {
			h.renderer.renderError(w, r, err)
			return
		}
		h.renderer.renderBlock(w, http.StatusOK, "page", "feed", PageViewData{
			Page: p,
			Feed: feed,
		})
		return
	}

	renderJSON(w, http.StatusOK, feed)
}

// HandleEditor handles GET /pages/{ref}/edit: the reorder editor with
// its candidate list.
func (h *Handlers) HandleEditor(w http.ResponseWriter, r *http.Request) {
	ref := r.PathValue("ref")
	if ref == "" {
		h.renderer.renderError(w, r, errors.NewInvalidRequest("page reference is required"))
		return
	}

	p, err := ops.GetPage(r.Context(), h.db, ops.GetPageInput{Ref: ref})
	if err != nil {
		h.renderer.renderError(w, r, err)
		return
	}

	candidates, err := ops.ListCandidates(r.Context(), h.db, ops.ListCandidatesInput{
		PageRef: ref,
		QueryID: r.URL.Query().Get("query"),
		Cap:     h.cfg.CandidateMaxItems,
	})
	if err != nil {
		h.renderer.renderError(w, r, err)
		return
	}

	h.renderer.renderPage(w, r, "editor", EditorPageData{
		PageData: PageData{
			Title:   "Reorder: " + pageTitle(p),
			Version: h.renderer.version,
			Nav:     "pages",
		},
		Page:       p,
		Candidates: candidates,
		Saved:      parseBoolParam(r, "saved"),
		Cleared:    parseBoolParam(r, "cleared"),
	})
}

// HandleOrderSave handles POST /pages/{ref}/order: persist a curated
// order from the editor.
func (h *Handlers) HandleOrderSave(w http.ResponseWriter, r *http.Request) {
	ref := r.PathValue("ref")
	if ref == "" {
		h.renderer.renderError(w, r, errors.NewInvalidRequest("page reference is required"))
		return
	}

	if err := r.ParseForm(); err != nil {
		h.renderer.renderError(w, r, errors.NewInvalidRequest("invalid form data"))
		return
	}

	ids, err := parseIDList(r.Form["ids"])
	if err != nil {
		h.renderer.renderError(w, r, err)
		return
	}

	result, err := ops.SaveOrder(r.Context(), h.db, h.resolver, ops.SaveOrderInput{
		PageRef: ref,
		QueryID: r.FormValue("query"),
		IDs:     ids,
	})
	if err != nil {
		h.renderer.renderError(w, r, err)
		return
	}

	if isHTMX(r) {
		w.Header().Set("HX-Redirect", "/pages/"+ref+"/edit?saved=true")
		w.WriteHeader(http.StatusOK)
		return
	}

	if strings.Contains(r.Header.Get("Accept"), "application/json") {
		renderJSON(w, http.StatusOK, result)
		return
	}

	http.Redirect(w, r, "/pages/"+ref+"/edit?saved=true", http.StatusFound)
}

// HandleOrderClear handles DELETE /pages/{ref}/order: drop the curated
// order so the block falls back to its base query ordering.
func (h *Handlers) HandleOrderClear(w http.ResponseWriter, r *http.Request) {
	ref := r.PathValue("ref")
	if ref == "" {
		h.renderer.renderError(w, r, errors.NewInvalidRequest("page reference is required"))
		return
	}

	result, err := ops.ClearOrder(r.Context(), h.db, h.resolver, ops.ClearOrderInput{
		PageRef: ref,
		QueryID: r.FormValue("query"),
	})
	if err != nil {
		h.renderer.renderError(w, r, err)
		return
	}

	if isHTMX(r) {
		w.Header().Set("HX-Redirect", "/pages/"+ref+"/edit?cleared=true")
		w.WriteHeader(http.StatusOK)
		return
	}

	if strings.Contains(r.Header.Get("Accept"), "application/json") {
		renderJSON(w, http.StatusOK, result)
		return
	}

	http.Redirect(w, r, "/pages/"+ref+"/edit?cleared=true", http.StatusFound)
}

// HandlePosts handles GET /posts: list posts with filters.
func (h *Handlers) HandlePosts(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	input := ops.ListPostsInput{
		Search:  q.Get("q"),
		Author:  q.Get("author"),
		Status:  q.Get("status"),
		OrderBy: q.Get("order_by"),
		Order:   q.Get("order"),
		Limit:   parseIntParam(r, "limit", 20),
		Offset:  parseIntParam(r, "offset", 0),
	}
	if tag := q.Get("tag"); tag != "" {
		input.Tags = []string{tag}
	}

	result, err := ops.ListPosts(r.Context(), h.db, input)
	if err != nil {
		h.renderer.renderError(w, r, err)
		return
	}

	h.renderer.renderPage(w, r, "posts", PostsPageData{
		PageData: PageData{
			Title:   "Posts",
			Version: h.renderer.version,
			Nav:     "posts",
		},
		List:   result,
		Search: input.Search,
		Author: input.Author,
		Tag:    q.Get("tag"),
	})
}

// HandlePostDetail handles GET /posts/{id}: view a single post.
func (h *Handlers) HandlePostDetail(w http.ResponseWriter, r *http.Request) {
	id, err := ops.ParsePostID(r.PathValue("id"))
	if err != nil {
		h.renderer.renderError(w, r, err)
		return
	}

	p, err := ops.GetPost(r.Context(), h.db, ops.GetPostInput{ID: id})
	if err != nil {
		h.renderer.renderError(w, r, err)
		return
	}

	h.renderer.renderPage(w, r, "post", PostPageData{
		PageData: PageData{
			Title:   p.Title,
			Version: h.renderer.version,
			Nav:     "posts",
		},
		Post:         p,
		RenderedHTML: renderMarkdown(p.Content),
	})
}

// HandlePostDelete handles DELETE /posts/{id}.
func (h *Handlers) HandlePostDelete(w http.ResponseWriter, r *http.Request) {
	id, err := ops.ParsePostID(r.PathValue("id"))
	if err != nil {
		h.renderer.renderError(w, r, err)
		return
	}

	result, err := ops.DeletePost(r.Context(), h.db, ops.DeletePostInput{ID: id})
	if err != nil {
		h.renderer.renderError(w, r, err)
		return
	}

	if isHTMX(r) {
		w.Header().Set("HX-Redirect", "/posts")
		w.WriteHeader(http.StatusOK)
		return
	}

	if strings.Contains(r.Header.Get("Accept"), "application/json") {
		renderJSON(w, http.StatusOK, result)
		return
	}

	http.Redirect(w, r, "/posts", http.StatusFound)
}

// isHTMX reports whether the request came from htmx.
func isHTMX(r *http.Request) bool {
	return r.Header.Get("HX-Request") == "true"
}

// parseIntParam parses an integer query parameter with a default value.
func parseIntParam(r *http.Request, name string, defaultVal int) int {
	s := r.URL.Query().Get(name)
	if s == "" {
		return defaultVal
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return defaultVal
	}
	return v
}

// parseBoolParam parses a boolean query parameter.
func parseBoolParam(r *http.Request, name string) bool {
	s := r.URL.Query().Get(name)
	return s == "true" || s == "1"
}

// parseIDList converts repeated form values into post IDs. Values may
// also arrive comma-separated from the editor script.
func parseIDList(values []string) ([]int64, error) {
	var ids []int64
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			id, err := strconv.ParseInt(part, 10, 64)
			if err != nil {
				return nil, errors.NewInvalidRequest("ids must be integers")
			}
			ids = append(ids, id)
		}
	}
	return ids, nil
}

// pageTitle returns the page title, falling back to the slug.
func pageTitle(p *ops.GetPageOutput) string {
	if p.Title != nil && *p.Title != "" {
		return *p.Title
	}
	return p.Slug
}
