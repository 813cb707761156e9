package ops

import (
	"database/sql"
	"time"

	"github.com/curio-cms/curio/internal/config"
	"github.com/curio-cms/curio/internal/ordercache"
	"github.com/curio-cms/curio/internal/query"
)

// NewResolver builds the curated-order resolver shared by a serving
// surface, configured per cfg.
func NewResolver(db *sql.DB, cfg *config.Config) *query.Resolver {
	cache := ordercache.New(
		ordercache.WithTTL(time.Duration(cfg.OrderCacheTTLSeconds)*time.Second),
		ordercache.WithSweepThreshold(cfg.OrderCacheSweepThreshold),
	)

	var opts []query.ResolverOption
	if cfg.PermissiveIdentity {
		opts = append(opts, query.WithPermissiveFallback())
	}

	return query.NewResolver(cache, PageFinder{DB: db}, opts...)
}
