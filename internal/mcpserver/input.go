package mcpserver

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/erraggy/oasbind/generator"
	"github.com/erraggy/oasbind/parser"
)

// specInput represents the two ways an annotated document can be provided
// to a tool. Exactly one of File or Content must be set.
type specInput struct {
	File    string `json:"file,omitempty"    jsonschema:"Path to an annotated OpenAPI 3.x file on disk"`
	Content string `json:"content,omitempty" jsonschema:"Inline annotated OpenAPI 3.x document (JSON or YAML)"`
}

// cacheEntry is one parsed document and its bookkeeping.
type cacheEntry struct {
	result   *parser.ParseResult
	lastUsed time.Time
	expires  time.Time
}

// docCache keeps parsed documents for the lifetime of the server so that
// an inspect followed by a generate on the same document parses it once.
// Entries expire after their TTL; when full, the least recently used entry
// is evicted.
type docCache struct {
	mu       sync.Mutex
	entries  map[string]*cacheEntry
	capacity int
	sweeping atomic.Bool
}

var specCache = newDocCache(cfg.CacheMaxSize)

func newDocCache(capacity int) *docCache {
	return &docCache{entries: map[string]*cacheEntry{}, capacity: capacity}
}

func (c *docCache) get(key string) *parser.ParseResult {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[key]
	if !ok {
		return nil
	}
	now := time.Now()
	if now.After(e.expires) {
		delete(c.entries, key)
		return nil
	}
	e.lastUsed = now
	return e.result
}

func (c *docCache) putWithTTL(key string, result *parser.ParseResult, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := time.Now()
	if _, exists := c.entries[key]; !exists && len(c.entries) >= c.capacity {
		c.evictLocked()
	}
	c.entries[key] = &cacheEntry{result: result, lastUsed: now, expires: now.Add(ttl)}
}

// evictLocked drops the least recently used entry. c.mu must be held.
func (c *docCache) evictLocked() {
	var victim string
	var oldest time.Time
	for k, e := range c.entries {
		if victim == "" || e.lastUsed.Before(oldest) {
			victim, oldest = k, e.lastUsed
		}
	}
	delete(c.entries, victim)
}

func (c *docCache) sweep() {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := time.Now()
	for k, e := range c.entries {
		if now.After(e.expires) {
			delete(c.entries, k)
		}
	}
}

// startSweeper removes expired entries every interval until ctx is done.
// Only one sweeper runs at a time.
func (c *docCache) startSweeper(ctx context.Context, interval time.Duration) {
	if interval <= 0 || !c.sweeping.CompareAndSwap(false, true) {
		return
	}
	go func() {
		defer c.sweeping.Store(false)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				c.sweep()
			}
		}
	}()
}

func (c *docCache) reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = map[string]*cacheEntry{}
}

func (c *docCache) size() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// makeCacheKey creates a cache key for the given spec input.
func makeCacheKey(s specInput) string {
	switch {
	case s.File != "":
		absPath, err := filepath.Abs(s.File)
		if err != nil {
			return ""
		}
		info, err := os.Stat(absPath)
		if err != nil {
			return "" // Can't stat, don't cache.
		}
		return fmt.Sprintf("file:%s:%d", absPath, info.ModTime().UnixNano())
	case s.Content != "":
		h := sha256.Sum256([]byte(s.Content))
		return fmt.Sprintf("content:%s", hex.EncodeToString(h[:]))
	default:
		return ""
	}
}

// resolve parses the document from whichever input was provided, using the
// cache for both file and content inputs.
func (s specInput) resolve() (*parser.ParseResult, error) {
	if (s.File != "") == (s.Content != "") {
		return nil, fmt.Errorf("exactly one of file or content must be provided")
	}

	// Enforce inline content size limit.
	if s.Content != "" && int64(len(s.Content)) > cfg.MaxInlineSize {
		return nil, fmt.Errorf("inline content size %d bytes exceeds maximum %d bytes; use file input instead, or set OASBIND_MAX_INLINE_SIZE to increase",
			len(s.Content), cfg.MaxInlineSize)
	}

	var key string
	ttl := cfg.CacheContentTTL
	if cfg.CacheEnabled {
		key = makeCacheKey(s)
		if s.File != "" {
			ttl = cfg.CacheFileTTL
		}
	}

	if key != "" {
		if cached := specCache.get(key); cached != nil {
			return cached, nil
		}
	}

	var opts []parser.Option
	if s.File != "" {
		opts = append(opts, parser.WithFilePath(s.File))
	} else {
		opts = append(opts,
			parser.WithReader(strings.NewReader(s.Content)),
			parser.WithSourceName("inline"))
	}

	result, err := parser.ParseWithOptions(opts...)
	if err != nil {
		return nil, err
	}

	if key != "" {
		specCache.putWithTTL(key, result, ttl)
	}

	return result, nil
}

// loadGeneratorConfig returns the generator configuration at path, or the defaults
// when path is empty.
func loadGeneratorConfig(path string) (*generator.Config, error) {
	if path == "" {
		return generator.DefaultConfig(), nil
	}
	return generator.LoadConfig(path)
}
