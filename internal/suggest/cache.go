package suggest

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"log"
	"os"
	"path/filepath"
	"time"
)

const (
	cacheEnvVar     = "PLAINWORD_CACHE_DIR"
	cacheSubdir     = "plainword/suggestions"
	DefaultCacheTTL = 7 * 24 * time.Hour
	partialSuffix   = ".part"
)

// Cached keeps rewrites from another source on disk so a second export of
// the same document does not query the service again.
type Cached struct {
	inner Source
	dir   string
	ttl   time.Duration
	now   func() time.Time
}

type cacheEntry struct {
	Source   string    `json:"source"`
	Sentence string    `json:"sentence"`
	Result   Result    `json:"result"`
	CachedAt time.Time `json:"cachedAt"`
}

// NewCached wraps inner. An empty dir resolves to PLAINWORD_CACHE_DIR or the
// user cache directory; a non-positive ttl uses DefaultCacheTTL.
func NewCached(inner Source, dir string, ttl time.Duration) (*Cached, error) {
	if dir == "" {
		dir = os.Getenv(cacheEnvVar)
	}
	if dir == "" {
		base, err := os.UserCacheDir()
		if err != nil {
			base = filepath.Join(os.TempDir(), "plainword-cache")
		}
		dir = filepath.Join(base, cacheSubdir)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &Cached{inner: inner, dir: dir, ttl: ttl, now: time.Now}, nil
}

func (c *Cached) Name() string { return c.inner.Name() + " (cached)" }

// Dir is where cache entries are written.
func (c *Cached) Dir() string { return c.dir }

// Suggest serves a fresh entry from disk, otherwise asks the wrapped source.
// When the source fails, a stale entry is still better than nothing.
func (c *Cached) Suggest(ctx context.Context, sentence string) (Result, error) {
	path := filepath.Join(c.dir, c.key(sentence)+".json")
	entry, readErr := readEntry(path)
	if readErr == nil && c.now().Sub(entry.CachedAt) < c.ttl {
		return entry.Result, nil
	}

	res, err := c.inner.Suggest(ctx, sentence)
	if err != nil {
		if readErr == nil && ctx.Err() == nil {
			return entry.Result, nil
		}
		return Result{}, err
	}
	if err := writeEntry(path, cacheEntry{
		Source:   c.inner.Name(),
		Sentence: sentence,
		Result:   res,
		CachedAt: c.now().UTC(),
	}); err != nil {
		log.Printf("[suggest] cache write failed: %v", err)
	}
	return res, nil
}

func (c *Cached) key(sentence string) string {
	sum := sha1.Sum([]byte(c.inner.Name() + "\x00" + sentence))
	return hex.EncodeToString(sum[:])
}

func readEntry(path string) (cacheEntry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return cacheEntry{}, err
	}
	var entry cacheEntry
	if err := json.Unmarshal(data, &entry); err != nil {
		return cacheEntry{}, err
	}
	return entry, nil
}

func writeEntry(path string, entry cacheEntry) error {
	data, err := json.MarshalIndent(entry, "", "  ")
	if err != nil {
		return err
	}
	partial := path + partialSuffix
	if err := os.WriteFile(partial, data, 0o644); err != nil {
		return err
	}
	return os.Rename(partial, path)
}
