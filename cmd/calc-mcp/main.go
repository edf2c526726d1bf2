// calc-mcp exposes a calculator over the Model Context Protocol so
// tool-calling clients can drive it: press keys, read the displays,
// clear. One engine lives for the lifetime of the server.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"sync"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"calcpad/internal/engine"
	"calcpad/internal/keymap"
)

const version = "0.1.0"

// calculator guards the single engine shared by all tools.
type calculator struct {
	mu  sync.Mutex
	eng *engine.Engine
}

func (c *calculator) render() string {
	primary, secondary := c.eng.Display()
	if secondary == "" {
		return fmt.Sprintf("display: %s", primary)
	}
	return fmt.Sprintf("display: %s\nexpression: %s", primary, secondary)
}

func main() {
	versionFlag := flag.Bool("version", false, "Show version information")
	flag.Parse()

	if *versionFlag {
		fmt.Println("calc-mcp v" + version)
		fmt.Println("Model Context Protocol server for an interactive calculator")
		os.Exit(0)
	}

	mcpServer := server.NewMCPServer(
		"calc-mcp",
		version,
		server.WithToolCapabilities(true),
		server.WithLogging(),
		server.WithRecovery(),
	)

	calc := &calculator{eng: engine.New()}

	addPressKeysTool(mcpServer, calc)
	addReadDisplayTool(mcpServer, calc)
	addClearTool(mcpServer, calc)

	if err := server.ServeStdio(mcpServer); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}

// addPressKeysTool adds the press_keys tool to the MCP server
func addPressKeysTool(s *server.MCPServer, calc *calculator) {
	pressKeysTool := mcp.NewTool("press_keys",
		mcp.WithDescription("Press a sequence of calculator keys. Digits, '.', '+', '-', '*', '/' and '=' are single characters; 'Enter', 'Backspace', 'Delete' (clear entry) and 'Escape' (clear all) are named keys separated by spaces. Example: '5+3='"),
		mcp.WithString("keys",
			mcp.Required(),
			mcp.Description("Key sequence to press"),
		),
	)

	s.AddTool(pressKeysTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := request.GetArguments()

		keys, ok := args["keys"].(string)
		if !ok {
			return mcp.NewToolResultError("keys is required"), nil
		}

		calc.mu.Lock()
		defer calc.mu.Unlock()

		if err := pressKeys(calc.eng, keys); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Error pressing keys: %v", err)), nil
		}

		return mcp.NewToolResultText(calc.render()), nil
	})
}

// addReadDisplayTool adds the read_display tool to the MCP server
func addReadDisplayTool(s *server.MCPServer, calc *calculator) {
	readDisplayTool := mcp.NewTool("read_display",
		mcp.WithDescription("Read the calculator's current display without pressing anything"),
	)

	s.AddTool(readDisplayTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		calc.mu.Lock()
		defer calc.mu.Unlock()

		return mcp.NewToolResultText(calc.render()), nil
	})
}

// addClearTool adds the clear tool to the MCP server
func addClearTool(s *server.MCPServer, calc *calculator) {
	clearTool := mcp.NewTool("clear",
		mcp.WithDescription("Reset the calculator to its initial state, dismissing any error"),
	)

	s.AddTool(clearTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		calc.mu.Lock()
		defer calc.mu.Unlock()

		calc.eng.ClearAll()
		return mcp.NewToolResultText(calc.render()), nil
	})
}

// pressKeys feeds a key sequence to the engine: space-separated tokens
// are pressed as named keys, anything else one rune at a time.
func pressKeys(eng *engine.Engine, keys string) error {
	apply := func(key string) error {
		ev, err := keymap.Translate(key)
		if err != nil {
			return err
		}
		return eng.Apply(ev)
	}

	token := ""
	flush := func() error {
		if token == "" {
			return nil
		}
		defer func() { token = "" }()
		if len([]rune(token)) == 1 {
			return apply(token)
		}
		if _, err := keymap.Translate(token); err == nil {
			return apply(token)
		}
		for _, r := range token {
			if err := apply(string(r)); err != nil {
				return err
			}
		}
		return nil
	}

	for _, r := range keys {
		if r == ' ' {
			if err := flush(); err != nil {
				return err
			}
			continue
		}
		token += string(r)
	}
	return flush()
}
