// Package mcpserver implements an MCP (Model Context Protocol) server
// that exposes oasbind generation and inspection as MCP tools over stdio.
package mcpserver

import (
	"context"
	"regexp"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/erraggy/oasbind"
)

const serverInstructions = `oasbind MCP server: generates Go dispatch bindings, routing stubs and interface contracts from OpenAPI documents annotated with x-core-function and x-data-type.

Use inspect first to see which endpoints bind and what signatures they get, then generate to write the three files.

Configuration via OASBIND_* environment variables:
- OASBIND_MAX_INLINE_SIZE (default: 10485760) maximum inline document size in bytes
- OASBIND_CACHE_ENABLED (default: true) cache parsed documents per session
- OASBIND_CACHE_FILE_TTL / OASBIND_CACHE_CONTENT_TTL (default: 15m)
- OASBIND_INSPECT_LIMIT (default: 100) default endpoint page size for inspect
- OASBIND_GENERATE_STRICT (default: false) fail generate on any warning`

// Run starts the MCP server over stdio and blocks until the client disconnects
// or the context is cancelled.
func Run(ctx context.Context) error {
	if cfg.CacheEnabled {
		specCache.startSweeper(ctx, cfg.CacheSweepInterval)
	}
	return newServer().Run(ctx, &mcp.StdioTransport{})
}

func newServer() *mcp.Server {
	server := mcp.NewServer(
		&mcp.Implementation{Name: "oasbind", Version: oasbind.Version()},
		&mcp.ServerOptions{
			Instructions: serverInstructions,
		},
	)
	registerAllTools(server)
	return server
}

func registerAllTools(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "generate",
		Description: "Generate the dispatch, routing and interface Go files from an annotated OpenAPI 3.x document. Output paths default to the configuration file (config) or the built-in defaults; override them with dispatch_out, routing_out and interfaces_out. Nothing is written when two endpoints bind the same tag and core function. Use dry_run=true to get the manifest and issues without writing.",
	}, handleGenerate)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "inspect",
		Description: "Inspect how an annotated OpenAPI 3.x document binds: data types, request bodies, and every endpoint with its tag, core function, shape and rendered outward/inward signatures. Filter by tag, paginate with offset/limit. Default limit is configurable via OASBIND_INSPECT_LIMIT.",
	}, handleInspect)
}

// paginate returns items[offset:offset+limit]. Out-of-range offsets give
// nil; limit falls back to cfg.InspectLimit and never exceeds cfg.MaxLimit.
func paginate[T any](items []T, offset, limit int) []T {
	if offset < 0 || offset >= len(items) {
		return nil
	}
	if limit <= 0 {
		limit = cfg.InspectLimit
	}
	limit = min(limit, cfg.MaxLimit, len(items)-offset)
	return items[offset : offset+limit]
}

// makeSlice keeps empty results nil so omitempty drops them.
func makeSlice[T any](n int) []T {
	if n > 0 {
		return make([]T, 0, n)
	}
	return nil
}

// absPath matches an absolute path that starts a word or follows a quote.
var absPath = regexp.MustCompile(`(^|[\s"'(=])/[^\s"'():,;]+`)

// sanitizeError renders err with absolute paths replaced by <path>.
func sanitizeError(err error) string {
	if err == nil {
		return ""
	}
	return absPath.ReplaceAllString(err.Error(), "${1}<path>")
}

func errResult(err error) *mcp.CallToolResult {
	res := &mcp.CallToolResult{IsError: true}
	res.Content = append(res.Content, &mcp.TextContent{Text: sanitizeError(err)})
	return res
}
