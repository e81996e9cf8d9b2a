// Package server exposes snapshot, search, and resolution tools over MCP so
// agents can drive a UI provider session. One Server owns one provider
// session and one handle cache; every provider access is serialized by
// providerMu because the remote-object protocol is not thread-safe.
package server

import (
	"fmt"
	"sync"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"
	"github.com/uiprobe/uiprobe/internal/model"
	"github.com/uiprobe/uiprobe/internal/provider"
	"github.com/uiprobe/uiprobe/internal/snapshot"
	"github.com/uiprobe/uiprobe/internal/version"
)

// Config holds MCP server configuration.
type Config struct {
	Transport string // "stdio" or "streamable-http"
	Port      int
}

// Server wraps the MCP server with the provider session and handle cache.
type Server struct {
	provider   provider.Provider
	cache      *snapshot.HandleCache
	providerMu sync.Mutex // affinity context for all live-handle access
	mcp        *mcpserver.MCPServer

	lastFingerprint *model.Histogram // previous similarity baseline
}

// New creates a server over the given provider session.
func New(p provider.Provider) *Server {
	s := &Server{
		provider: p,
		cache:    snapshot.NewHandleCache(),
	}
	s.mcp = mcpserver.NewMCPServer("uiprobe", version.Version)
	s.registerTools()
	return s
}

// Serve starts the MCP server with the configured transport. The handle
// cache is cleared on return: the provider session is done and no tool call
// can race the release.
func (s *Server) Serve(cfg Config) error {
	defer s.cache.Clear()

	switch cfg.Transport {
	case "stdio":
		return mcpserver.ServeStdio(s.mcp)
	case "streamable-http":
		httpServer := mcpserver.NewStreamableHTTPServer(s.mcp)
		return httpServer.Start(fmt.Sprintf(":%d", cfg.Port))
	default:
		return fmt.Errorf("unsupported transport: %s (use stdio or streamable-http)", cfg.Transport)
	}
}

func (s *Server) registerTools() {
	s.mcp.AddTool(
		mcp.NewTool("snapshot",
			mcp.WithDescription("Capture a point-in-time snapshot of every on-screen window's UI tree. Node identifiers are stable across reads while the element is unchanged and can be passed to resolve."),
			mcp.WithBoolean("flat", mcp.Description("Return a flat node list with path breadcrumbs instead of trees")),
		),
		s.handleSnapshot,
	)

	s.mcp.AddTool(
		mcp.NewTool("find",
			mcp.WithDescription("Snapshot the UI and search for nodes by text, description, type, or identifier"),
			mcp.WithString("field", mcp.Description("Field to match: text, desc, type, or id (default text)")),
			mcp.WithString("value", mcp.Description("Value to search for (case-insensitive substring unless exact)")),
			mcp.WithBoolean("exact", mcp.Description("Require full equality instead of substring")),
			mcp.WithNumber("limit", mcp.Description("Max matches to return (default 10)")),
		),
		s.handleFind,
	)

	s.mcp.AddTool(
		mcp.NewTool("resolve",
			mcp.WithDescription("Resolve a previously observed node identifier against the live UI and return the element's refreshed state. Detects when the element was recycled out from under the identifier."),
			mcp.WithString("id", mcp.Description("Node identifier from a previous snapshot or find")),
		),
		s.handleResolve,
	)

	s.mcp.AddTool(
		mcp.NewTool("similarity",
			mcp.WithDescription("Fingerprint the current UI and report its structural similarity (0-100) to the previous similarity call"),
		),
		s.handleSimilarity,
	)

	s.mcp.AddTool(
		mcp.NewTool("wait_idle",
			mcp.WithDescription("Block until the UI is structurally stable (consecutive identical fingerprints) or timeout"),
			mcp.WithNumber("threshold", mcp.Description("Consecutive identical fingerprints required (default 3)")),
			mcp.WithNumber("interval", mcp.Description("Polling interval in milliseconds (default 500)")),
			mcp.WithNumber("timeout", mcp.Description("Max seconds to wait (default 30)")),
		),
		s.handleWaitIdle,
	)
}
