// Package cache stores rendered diagrams so that unchanged views are not laid
// out twice.
//
// Laying out a diagram with Graphviz is by far the most expensive step of a
// redraw. The DOT text fully determines the SVG, so the cache is keyed on a
// hash of the DOT source plus the output format (see [RenderKey]).
//
// # Implementations
//
//   - [MemoryCache]: in-process map, used by the HTTP server
//   - [FileCache]: JSON entries under a directory, used by the CLI
//   - [NullCache]: never stores anything, used when caching is disabled
//
// [Instrument] wraps any of them so hits and misses reach
// [github.com/matzehuels/mindmap/pkg/observability].
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"os"
	"path/filepath"
	"time"
)

// DefaultTTL is how long rendered diagrams stay cached.
const DefaultTTL = 24 * time.Hour

// Cache is a byte-oriented key/value store with optional expiry.
type Cache interface {
	// Get returns the cached value and true, or nil and false on a miss.
	// Expired entries are reported as misses.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of zero means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases any resources held by the cache.
	Close() error
}

// RenderKey returns the cache key for rendering source (DOT text) to
// format: "render:<format>:<sha256 of source>".
func RenderKey(format string, source []byte) string {
	return "render:" + format + ":" + Hash(source)
}

// Hash returns the hex SHA-256 of data.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// NullCache never stores anything. It stands in when caching is disabled.
type NullCache struct{}

// NewNullCache returns a [NullCache].
func NewNullCache() Cache { return NullCache{} }

func (NullCache) Get(context.Context, string) ([]byte, bool, error)          { return nil, false, nil }
func (NullCache) Set(context.Context, string, []byte, time.Duration) error   { return nil }
func (NullCache) Delete(context.Context, string) error                       { return nil }
func (NullCache) Close() error                                               { return nil }

// DefaultDir returns the directory used by the CLI for on-disk caching:
// $XDG_CACHE_HOME/mindmap or the platform equivalent.
func DefaultDir() (string, error) {
	base, err := os.UserCacheDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, "mindmap"), nil
}
