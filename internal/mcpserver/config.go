package mcpserver

import (
	"errors"
	"log/slog"
	"os"
	"strconv"
	"time"
)

// serverConfig holds the MCP server defaults, read once from OASBIND_*
// environment variables.
type serverConfig struct {
	CacheEnabled       bool
	CacheMaxSize       int
	CacheFileTTL       time.Duration
	CacheContentTTL    time.Duration
	CacheSweepInterval time.Duration

	// InspectLimit is the page size used when inspect gets no limit;
	// MaxLimit caps any requested page size.
	InspectLimit int
	MaxLimit     int

	GenerateStrict bool

	// MaxInlineSize bounds inline document content, in bytes.
	MaxInlineSize int64
}

var cfg = loadConfig()

var errNotPositive = errors.New("must be positive")

func loadConfig() *serverConfig {
	return &serverConfig{
		CacheEnabled:       fromEnv("OASBIND_CACHE_ENABLED", true, strconv.ParseBool),
		CacheMaxSize:       fromEnv("OASBIND_CACHE_MAX_SIZE", 10, positive(strconv.Atoi)),
		CacheFileTTL:       fromEnv("OASBIND_CACHE_FILE_TTL", 15*time.Minute, positive(time.ParseDuration)),
		CacheContentTTL:    fromEnv("OASBIND_CACHE_CONTENT_TTL", 15*time.Minute, positive(time.ParseDuration)),
		CacheSweepInterval: fromEnv("OASBIND_CACHE_SWEEP_INTERVAL", time.Minute, positive(time.ParseDuration)),
		InspectLimit:       fromEnv("OASBIND_INSPECT_LIMIT", 100, positive(strconv.Atoi)),
		MaxLimit:           fromEnv("OASBIND_MAX_LIMIT", 1000, positive(strconv.Atoi)),
		GenerateStrict:     fromEnv("OASBIND_GENERATE_STRICT", false, strconv.ParseBool),
		MaxInlineSize:      fromEnv("OASBIND_MAX_INLINE_SIZE", int64(10<<20), positive(parseInt64)),
	}
}

// fromEnv parses the variable key with parse. Unset variables yield def;
// unparsable ones are logged and also yield def.
func fromEnv[T any](key string, def T, parse func(string) (T, error)) T {
	raw, ok := os.LookupEnv(key)
	if !ok || raw == "" {
		return def
	}
	v, err := parse(raw)
	if err != nil {
		slog.Warn("ignoring environment override", "key", key, "value", raw, "default", def, "error", err)
		return def
	}
	return v
}

// positive rejects zero and negative results of parse.
func positive[T int | int64 | time.Duration](parse func(string) (T, error)) func(string) (T, error) {
	return func(s string) (T, error) {
		v, err := parse(s)
		if err == nil && v <= 0 {
			err = errNotPositive
		}
		return v, err
	}
}

func parseInt64(s string) (int64, error) { return strconv.ParseInt(s, 10, 64) }
