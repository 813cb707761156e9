package query

import (
	"context"
	"net/url"
	"regexp"

	"github.com/curio-cms/curio/internal/page"
)

// RequestContext carries the ambient request state the resolver can
// mine for the owning page when its cache misses.
type RequestContext struct {
	// PageID is the page being rendered, when the caller knows it.
	PageID string

	// RoutePath is the request path, e.g. "/pages/front".
	RoutePath string

	// Referer is the Referer header, if any.
	Referer string

	// APIRequest marks machine-to-machine queries; the re-parse
	// fallback is skipped for those because there is no render pass to
	// correlate with.
	APIRequest bool
}

// PageLocator examines the request context and returns a page reference
// (ID or slug), or ok=false. Locators are pure functions so the chain
// stays testable and extensible without nested conditionals.
type PageLocator func(rc RequestContext) (ref string, ok bool)

// pagePathRegex extracts the page reference from a render route.
var pagePathRegex = regexp.MustCompile(`^/pages/([A-Za-z0-9_-]+)`)

// LocateFromContext uses the explicitly supplied page ID.
func LocateFromContext(rc RequestContext) (string, bool) {
	return rc.PageID, rc.PageID != ""
}

// LocateFromRoute matches the request path against the page render route.
func LocateFromRoute(rc RequestContext) (string, bool) {
	m := pagePathRegex.FindStringSubmatch(rc.RoutePath)
	if m == nil {
		return "", false
	}
	return m[1], true
}

// LocateFromReferer parses the Referer URL and matches its path against
// the page render route. Last resort for requests (e.g. editor XHR)
// that carry no page context of their own.
func LocateFromReferer(rc RequestContext) (string, bool) {
	if rc.Referer == "" {
		return "", false
	}
	u, err := url.Parse(rc.Referer)
	if err != nil {
		return "", false
	}
	m := pagePathRegex.FindStringSubmatch(u.Path)
	if m == nil {
		return "", false
	}
	return m[1], true
}

// DefaultLocators is the standard locator chain, most reliable first.
func DefaultLocators() []PageLocator {
	return []PageLocator{
		LocateFromContext,
		LocateFromRoute,
		LocateFromReferer,
	}
}

// PageStore loads pages for the re-parse fallback. ref may be a page
// ID or a slug.
type PageStore interface {
	FindPage(ctx context.Context, ref string) (*page.Page, error)
}
