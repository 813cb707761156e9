package web

import (
	"context"
	"encoding/json"
	"fmt"
	"io/fs"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/curio-cms/curio/internal/block"
	"github.com/curio-cms/curio/internal/config"
	"github.com/curio-cms/curio/internal/db"
	"github.com/curio-cms/curio/internal/ops"
	"github.com/curio-cms/curio/internal/post"
)

func setupTest(t *testing.T) *Handlers {
	t.Helper()
	tmpDir := t.TempDir()
	database, err := db.Init(tmpDir)
	if err != nil {
		t.Fatalf("db.Init: %v", err)
	}
	t.Cleanup(func() { database.Close() })

	cfg := config.DefaultConfig()

	templateSub, err := fs.Sub(templateFS, "templates")
	if err != nil {
		t.Fatalf("template sub-FS: %v", err)
	}
	renderer := NewRenderer(templateSub, "test")

	return &Handlers{
		db:       database,
		cfg:      cfg,
		resolver: ops.NewResolver(database, cfg),
		renderer: renderer,
	}
}

// seedPosts inserts n published posts titled "post 1".."post n" with
// ascending creation times.
func seedPosts(t *testing.T, h *Handlers, n int) {
	t.Helper()
	for i := 1; i <= n; i++ {
		p := &post.Post{
			Title:     fmt.Sprintf("post %d", i),
			Content:   fmt.Sprintf("## Heading\n\ncontent of post %d", i),
			Author:    "alice",
			Status:    post.StatusPublish,
			CreatedAt: 1700000000 + int64(i),
			UpdatedAt: 1700000000 + int64(i),
		}
		if _, err := db.InsertPost(context.Background(), h.db, p); err != nil {
			t.Fatalf("seed post %d: %v", i, err)
		}
	}
}

// seedFeedPage stores a page with one query block and returns its slug.
func seedFeedPage(t *testing.T, h *Handlers) string {
	t.Helper()
	out, err := ops.SavePage(context.Background(), h.db, ops.SavePageInput{
		Slug: "home",
		Blocks: []block.Block{
			{Type: block.QueryBlockType, Attrs: map[string]any{"queryId": "featured"}},
		},
	})
	if err != nil {
		t.Fatalf("seed page: %v", err)
	}
	return out.Page.Slug
}

func saveOrder(t *testing.T, h *Handlers, slug string, ids []int64) {
	t.Helper()
	_, err := ops.SaveOrder(context.Background(), h.db, h.resolver, ops.SaveOrderInput{
		PageRef: slug,
		IDs:     ids,
	})
	if err != nil {
		t.Fatalf("save order: %v", err)
	}
}

// --- HandlePages ---

func TestHandlePages(t *testing.T) {
	h := setupTest(t)
	seedFeedPage(t, h)

	req := httptest.NewRequest("GET", "/pages", nil)
	rec := httptest.NewRecorder()
	h.HandlePages(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "home") {
		t.Error("expected page slug 'home' in response")
	}
	if !strings.Contains(body, "Pages") {
		t.Error("expected page title 'Pages' in response")
	}
}

// --- HandlePageView ---

func TestHandlePageView_CuratedFeed(t *testing.T) {
	h := setupTest(t)
	seedPosts(t, h, 5)
	slug := seedFeedPage(t, h)
	saveOrder(t, h, slug, []int64{3, 1})

	req := httptest.NewRequest("GET", "/pages/"+slug, nil)
	req.SetPathValue("ref", slug)
	rec := httptest.NewRecorder()
	h.HandlePageView(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "curated") {
		t.Error("expected curated badge in response")
	}
	// curated order puts post 3 before post 5
	if strings.Index(body, "post 3") > strings.Index(body, "post 5") {
		t.Error("expected post 3 before post 5 in curated feed")
	}
}

func TestHandlePageView_NotFound(t *testing.T) {
	h := setupTest(t)

	req := httptest.NewRequest("GET", "/pages/missing", nil)
	req.SetPathValue("ref", "missing")
	rec := httptest.NewRecorder()
	h.HandlePageView(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}

// --- HandleFeed ---

func TestHandleFeed_JSON(t *testing.T) {
	h := setupTest(t)
	seedPosts(t, h, 5)
	slug := seedFeedPage(t, h)
	saveOrder(t, h, slug, []int64{3, 1})

	req := httptest.NewRequest("GET", "/pages/"+slug+"/feed", nil)
	req.SetPathValue("ref", slug)
	rec := httptest.NewRecorder()
	h.HandleFeed(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var out ops.ResolveFeedOutput
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("unmarshal feed: %v", err)
	}
	if !out.Curated {
		t.Error("expected curated feed")
	}
	if len(out.Items) != 5 || out.Items[0].ID != 3 || out.Items[1].ID != 1 {
		t.Errorf("unexpected feed order: %+v", out.Items)
	}
}

func TestHandleFeed_HTMXFragment(t *testing.T) {
	h := setupTest(t)
	seedPosts(t, h, 3)
	slug := seedFeedPage(t, h)

	req := httptest.NewRequest("GET", "/pages/"+slug+"/feed", nil)
	req.SetPathValue("ref", slug)
	req.Header.Set("HX-Request", "true")
	rec := httptest.NewRecorder()
	h.HandleFeed(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	body := rec.Body.String()
	if strings.Contains(body, "<html") {
		t.Error("fragment response should not contain full layout")
	}
	if !strings.Contains(body, "post 3") {
		t.Error("expected post titles in fragment")
	}
}

// --- HandleEditor ---

func TestHandleEditor(t *testing.T) {
	h := setupTest(t)
	seedPosts(t, h, 5)
	slug := seedFeedPage(t, h)
	saveOrder(t, h, slug, []int64{3, 1})

	req := httptest.NewRequest("GET", "/pages/"+slug+"/edit", nil)
	req.SetPathValue("ref", slug)
	rec := httptest.NewRecorder()
	h.HandleEditor(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, `data-id="3"`) {
		t.Error("expected candidate rows with data-id attributes")
	}
	// saved order puts post 3 first
	if strings.Index(body, `data-id="3"`) > strings.Index(body, `data-id="5"`) {
		t.Error("expected post 3 before post 5 in candidate list")
	}
}

// --- HandleOrderSave ---

func TestHandleOrderSave_FormPost(t *testing.T) {
	h := setupTest(t)
	seedPosts(t, h, 5)
	slug := seedFeedPage(t, h)

	form := url.Values{}
	form.Add("ids", "4")
	form.Add("ids", "2")
	req := httptest.NewRequest("POST", "/pages/"+slug+"/order", strings.NewReader(form.Encode()))
	req.SetPathValue("ref", slug)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	h.HandleOrderSave(rec, req)

	if rec.Code != http.StatusFound {
		t.Fatalf("status = %d, want 302", rec.Code)
	}

	got, err := ops.GetOrder(context.Background(), h.db, ops.GetOrderInput{PageRef: slug})
	if err != nil {
		t.Fatalf("get order: %v", err)
	}
	if len(got.IDs) != 2 || got.IDs[0] != 4 || got.IDs[1] != 2 {
		t.Errorf("saved order = %v, want [4 2]", got.IDs)
	}
}

func TestHandleOrderSave_HTMXRedirect(t *testing.T) {
	h := setupTest(t)
	seedPosts(t, h, 3)
	slug := seedFeedPage(t, h)

	form := url.Values{}
	form.Add("ids", "2,1")
	req := httptest.NewRequest("POST", "/pages/"+slug+"/order", strings.NewReader(form.Encode()))
	req.SetPathValue("ref", slug)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("HX-Request", "true")
	rec := httptest.NewRecorder()
	h.HandleOrderSave(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if got := rec.Header().Get("HX-Redirect"); !strings.Contains(got, "/edit") {
		t.Errorf("HX-Redirect = %q, want editor URL", got)
	}
}

func TestHandleOrderSave_BadIDs(t *testing.T) {
	h := setupTest(t)
	slug := seedFeedPage(t, h)

	form := url.Values{}
	form.Add("ids", "not-a-number")
	req := httptest.NewRequest("POST", "/pages/"+slug+"/order", strings.NewReader(form.Encode()))
	req.SetPathValue("ref", slug)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")
	rec := httptest.NewRecorder()
	h.HandleOrderSave(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

// --- HandleOrderClear ---

func TestHandleOrderClear(t *testing.T) {
	h := setupTest(t)
	seedPosts(t, h, 3)
	slug := seedFeedPage(t, h)
	saveOrder(t, h, slug, []int64{2, 1})

	req := httptest.NewRequest("DELETE", "/pages/"+slug+"/order", nil)
	req.SetPathValue("ref", slug)
	req.Header.Set("Accept", "application/json")
	rec := httptest.NewRecorder()
	h.HandleOrderClear(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	got, err := ops.GetOrder(context.Background(), h.db, ops.GetOrderInput{PageRef: slug})
	if err != nil {
		t.Fatalf("get order: %v", err)
	}
	if got.Curated {
		t.Error("expected order cleared")
	}
}

// --- HandlePosts ---

func TestHandlePosts_SearchFilter(t *testing.T) {
	h := setupTest(t)
	seedPosts(t, h, 3)

	req := httptest.NewRequest("GET", "/posts?q=post+2", nil)
	rec := httptest.NewRecorder()
	h.HandlePosts(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "post 2") {
		t.Error("expected post 2 in search results")
	}
	if strings.Contains(body, ">post 1<") {
		t.Error("did not expect post 1 in search results")
	}
}

// --- HandlePostDetail ---

func TestHandlePostDetail_RendersMarkdown(t *testing.T) {
	h := setupTest(t)
	seedPosts(t, h, 1)

	req := httptest.NewRequest("GET", "/posts/1", nil)
	req.SetPathValue("id", "1")
	rec := httptest.NewRecorder()
	h.HandlePostDetail(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "<h2") {
		t.Error("expected rendered markdown heading in response")
	}
}

func TestHandlePostDetail_BadID(t *testing.T) {
	h := setupTest(t)

	req := httptest.NewRequest("GET", "/posts/abc", nil)
	req.SetPathValue("id", "abc")
	req.Header.Set("Accept", "application/json")
	rec := httptest.NewRecorder()
	h.HandlePostDetail(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

// --- HandlePostDelete ---

func TestHandlePostDelete(t *testing.T) {
	h := setupTest(t)
	seedPosts(t, h, 2)

	req := httptest.NewRequest("DELETE", "/posts/1", nil)
	req.SetPathValue("id", "1")
	req.Header.Set("Accept", "application/json")
	rec := httptest.NewRecorder()
	h.HandlePostDelete(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	if _, err := ops.GetPost(context.Background(), h.db, ops.GetPostInput{ID: 1}); err == nil {
		t.Error("expected post 1 deleted")
	}
}
