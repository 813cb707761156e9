package config

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/tailscale/hujson"
)

// Config holds application configuration.
type Config struct {
	// OrderCacheTTLSeconds is how long a render-pass order cache entry
	// stays valid. Entries older than this fall back to re-parsing the
	// owning page.
	OrderCacheTTLSeconds int `json:"order_cache_ttl_seconds"`

	// OrderCacheSweepThreshold is the entry count past which a Set
	// triggers a sweep of expired entries.
	OrderCacheSweepThreshold int `json:"order_cache_sweep_threshold"`

	// PermissiveIdentity enables the loose cross-identity cache fallback:
	// when a query identity cannot be correlated, the most recently cached
	// order (any identity) is used if still fresh. Off by default because
	// concurrent unrelated queries can leak orders into each other.
	PermissiveIdentity bool `json:"permissive_identity,omitempty"`

	// CandidateMaxItems caps the page size of editor candidate fetches.
	CandidateMaxItems int `json:"candidate_max_items"`

	// DBMaxOpenConns limits the maximum number of open database connections.
	// If set to 1, all database access is serialized (reduces "database is
	// locked" errors). 0 means use sql.DB default.
	DBMaxOpenConns int `json:"db_max_open_conns,omitempty"`

	// DBMaxIdleConns limits the maximum number of idle database connections.
	// 0 means use sql.DB default. Typically set equal to DBMaxOpenConns.
	DBMaxIdleConns int `json:"db_max_idle_conns,omitempty"`

	// DisabledTools is a list of MCP tool names to exclude from
	// registration. Unknown tool names are logged as warnings.
	DisabledTools []string `json:"disabled_tools,omitempty"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		OrderCacheTTLSeconds:     300,
		OrderCacheSweepThreshold: 50,
		CandidateMaxItems:        100,
	}
}

// Load loads configuration from baseDir/config.json.
// The file may be JSONC (comments and trailing commas allowed).
// Returns default config if the file doesn't exist.
// The baseDir parameter allows tests to use t.TempDir() instead of ~/.curio.
func Load(baseDir string) (*Config, error) {
	cfg, err := loadFileRaw(filepath.Join(baseDir, "config.json"))
	if err != nil {
		return nil, err
	}
	return Merge(DefaultConfig(), cfg), nil
}

// loadFileRaw loads configuration from a specific file path.
// Returns zero-valued config if the file doesn't exist (not defaults).
func loadFileRaw(configPath string) (*Config, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &Config{}, nil
		}
		return nil, err
	}

	// Standardize JSONC to JSON before unmarshaling
	standardized, err := hujson.Standardize(data)
	if err != nil {
		return nil, err
	}

	cfg := &Config{}
	if err := json.Unmarshal(standardized, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Merge combines base and overlay configs.
// Overlay values take precedence for scalars; arrays are merged and deduplicated.
func Merge(base, overlay *Config) *Config {
	result := &Config{}

	result.OrderCacheTTLSeconds = overlay.OrderCacheTTLSeconds
	if result.OrderCacheTTLSeconds == 0 {
		result.OrderCacheTTLSeconds = base.OrderCacheTTLSeconds
	}

	result.OrderCacheSweepThreshold = overlay.OrderCacheSweepThreshold
	if result.OrderCacheSweepThreshold == 0 {
		result.OrderCacheSweepThreshold = base.OrderCacheSweepThreshold
	}

	result.CandidateMaxItems = overlay.CandidateMaxItems
	if result.CandidateMaxItems == 0 {
		result.CandidateMaxItems = base.CandidateMaxItems
	}

	result.DBMaxOpenConns = overlay.DBMaxOpenConns
	if result.DBMaxOpenConns == 0 {
		result.DBMaxOpenConns = base.DBMaxOpenConns
	}

	result.DBMaxIdleConns = overlay.DBMaxIdleConns
	if result.DBMaxIdleConns == 0 {
		result.DBMaxIdleConns = base.DBMaxIdleConns
	}

	// Booleans: overlay wins if true, else base
	result.PermissiveIdentity = base.PermissiveIdentity || overlay.PermissiveIdentity

	// Arrays: merge and deduplicate
	result.DisabledTools = mergeStringSlice(base.DisabledTools, overlay.DisabledTools)

	return result
}

// mergeStringSlice combines two slices, trims whitespace, and removes duplicates.
func mergeStringSlice(a, b []string) []string {
	seen := make(map[string]bool)
	result := make([]string, 0, len(a)+len(b))

	for _, s := range a {
		s = strings.TrimSpace(s)
		if s != "" && !seen[s] {
			seen[s] = true
			result = append(result, s)
		}
	}
	for _, s := range b {
		s = strings.TrimSpace(s)
		if s != "" && !seen[s] {
			seen[s] = true
			result = append(result, s)
		}
	}

	if len(result) == 0 {
		return nil
	}
	return result
}
