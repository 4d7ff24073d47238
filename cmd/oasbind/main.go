package main

import (
	"fmt"
	"os"

	"github.com/erraggy/oasbind"
	"github.com/erraggy/oasbind/cmd/oasbind/commands"
	"github.com/erraggy/oasbind/internal/cliutil"
)

var handlers = map[string]func([]string) error{
	"generate": commands.HandleGenerate,
	"inspect":  commands.HandleInspect,
	"mcp":      commands.HandleMCP,
}

var commandNames = []string{"generate", "inspect", "mcp", "version", "help"}

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	switch command {
	case "version", "-v", "--version":
		fmt.Printf("oasbind v%s (commit %s, built %s)\n", oasbind.Version(), oasbind.Commit(), oasbind.BuildTime())
		return
	case "help", "-h", "--help":
		printUsage()
		return
	}

	handler, ok := handlers[command]
	if !ok {
		cliutil.Writef(os.Stderr, "Unknown command: %s\n", command)
		if s := suggestCommand(command); s != "" {
			cliutil.Writef(os.Stderr, "Did you mean %q?\n", s)
		}
		cliutil.Writef(os.Stderr, "\n")
		printUsage()
		os.Exit(1)
	}
	if err := handler(os.Args[2:]); err != nil {
		cliutil.Writef(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// suggestCommand returns the closest known command within edit distance 2.
func suggestCommand(input string) string {
	best, bestDist := "", 3
	for _, name := range commandNames {
		if d := levenshtein(input, name); d < bestDist {
			best, bestDist = name, d
		}
	}
	return best
}

func levenshtein(a, b string) int {
	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= len(a); i++ {
		curr[0] = i
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			curr[j] = min(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}
	return prev[len(b)]
}

func printUsage() {
	cliutil.Writef(os.Stderr, `oasbind - bind an annotated OpenAPI document to Go handlers

Usage:
  oasbind <command> [flags]

Commands:
  generate   Write the dispatch bindings, routing stubs and interface contracts
  inspect    Show how the document binds without writing anything
  mcp        Serve generate and inspect over MCP on stdio
  version    Print version information
  help       Show this help

Run 'oasbind <command> --help' for command flags.
`)
}
