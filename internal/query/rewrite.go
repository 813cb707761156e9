package query

import (
	"context"

	"github.com/curio-cms/curio/internal/block"
	"github.com/curio-cms/curio/internal/ordercache"
)

// Resolver resolves a saved curated order for a query identity and
// rewrites query specs accordingly.
type Resolver struct {
	cache    *ordercache.Cache
	pages    PageStore
	locators []PageLocator

	// permissive enables the loose cross-identity cache fallback. Kept
	// off by default: under concurrent unrelated queries the most
	// recent entry may belong to a different block.
	permissive bool
}

// ResolverOption configures a Resolver.
type ResolverOption func(*Resolver)

// WithLocators replaces the page locator chain.
func WithLocators(locators []PageLocator) ResolverOption {
	return func(r *Resolver) { r.locators = locators }
}

// WithPermissiveFallback opts into the most-recent-entry fallback when
// identity correlation fails.
func WithPermissiveFallback() ResolverOption {
	return func(r *Resolver) { r.permissive = true }
}

// NewResolver creates a Resolver over the given cache and page store.
func NewResolver(cache *ordercache.Cache, pages PageStore, opts ...ResolverOption) *Resolver {
	r := &Resolver{
		cache:    cache,
		pages:    pages,
		locators: DefaultLocators(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Prime is the render-pass hook: it captures a query block's saved
// order into the cache before query execution happens for its inner
// content, keyed by the block's identity.
func (r *Resolver) Prime(b *block.Block) string {
	identity, _ := block.Identity(b)
	r.cache.Set(identity, block.CustomOrder(b))
	return identity
}

// Forget evicts a query identity's cached order, for callers that have
// just cleared the persisted order.
func (r *Resolver) Forget(identity string) {
	r.cache.Delete(identity)
}

// Rewrite resolves the saved order for identity and, when one exists,
// mutates spec so the store fetches a superset large enough to honor
// both the curated list and the original page window:
//
//   - default ordering disabled (orderBy "none", direction cleared)
//   - original pagination recorded in the shadow fields
//   - fetch window widened to max(len(order), pageSize+offset) from 0
//
// When no order can be resolved the spec is returned untouched and
// ok=false; missing order data is the documented default-behavior path,
// never an error.
func (r *Resolver) Rewrite(ctx context.Context, spec Spec, identity string, rc RequestContext) (Spec, []int64, bool) {
	ids := r.resolve(ctx, identity, rc)
	if len(ids) == 0 {
		return spec, nil, false
	}

	spec.OrigPageSize = spec.PageSize
	spec.OrigOffset = spec.Offset

	spec.OrderBy = OrderByNone
	spec.Order = ""

	fetch := spec.OrigPageSize + spec.OrigOffset
	if len(ids) > fetch {
		fetch = len(ids)
	}
	spec.PageSize = fetch
	spec.Offset = 0

	return spec, ids, true
}

// resolve walks the precedence chain: cache entry, page re-parse, and
// (permissive only) the most recent cache entry of any identity.
func (r *Resolver) resolve(ctx context.Context, identity string, rc RequestContext) []int64 {
	if identity != "" {
		if ids, ok := r.cache.Get(identity); ok {
			return ids
		}
	}

	if !rc.APIRequest {
		if ids, ok := r.reparse(ctx, identity, rc); ok {
			return ids
		}
	}

	if r.permissive {
		if ids, ok := r.cache.MostRecent(); ok {
			return ids
		}
	}

	return nil
}

// reparse reloads the owning page's persisted block structure, finds
// the query block matching identity, and reads its saved order
// directly, repopulating the cache as a side effect.
func (r *Resolver) reparse(ctx context.Context, identity string, rc RequestContext) ([]int64, bool) {
	if identity == "" || r.pages == nil {
		return nil, false
	}

	for _, locate := range r.locators {
		ref, ok := locate(rc)
		if !ok {
			continue
		}

		p, err := r.pages.FindPage(ctx, ref)
		if err != nil {
			// A bad reference from a loose locator just moves the
			// chain along.
			continue
		}

		qb := block.FindQuery(p.Blocks, identity)
		if qb == nil {
			continue
		}

		ids := block.CustomOrder(qb)
		r.cache.Set(identity, ids)
		return ids, len(ids) > 0
	}

	return nil, false
}
