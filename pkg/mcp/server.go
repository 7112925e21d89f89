package mcp

import (
	"fmt"

	"github.com/mark3labs/mcp-go/server"

	daybook "github.com/unowned-ai/daybook/pkg"
	"github.com/unowned-ai/daybook/pkg/config"
	"github.com/unowned-ai/daybook/pkg/journal"
	"github.com/unowned-ai/daybook/pkg/search"
)

// DaybookMCPServer exposes the diary core (entry store + search index) as
// MCP tools over stdio.
type DaybookMCPServer struct {
	mcpServer *server.MCPServer
	store     *journal.Store
	index     *search.Index
	Dir       string
}

// NewDaybookMCPServer spins up an MCP server backed by the entry store at
// dir. An empty dir falls back to the system default location.
func NewDaybookMCPServer(dir string) (*DaybookMCPServer, error) {
	if dir == "" {
		dir = config.DefaultEntriesDir()
	}

	resolved, err := config.ResolvePath(dir)
	if err != nil {
		return nil, err
	}

	s := server.NewMCPServer(
		"Daybook MCP Server",
		daybook.Version,
		server.WithResourceCapabilities(true, true),
		server.WithLogging(),
		server.WithRecovery(),
	)

	store, err := journal.Open(resolved)
	if err != nil {
		return nil, fmt.Errorf("failed to open entry store: %w", err)
	}

	return &DaybookMCPServer{
		mcpServer: s,
		store:     store,
		index:     search.New(store, search.DefaultMaxAge),
		Dir:       resolved,
	}, nil
}

// RegisterAllTools wires every daybook tool onto the server.
func (s *DaybookMCPServer) RegisterAllTools() {
	RegisterPingTool(s.mcpServer)
	RegisterGetEntryTool(s.mcpServer, s.store)
	RegisterSaveEntryTool(s.mcpServer, s.store, s.index)
	RegisterListEntriesTool(s.mcpServer, s.store)
	RegisterSearchEntriesTool(s.mcpServer, s.index)
	RegisterHighlightSpansTool(s.mcpServer)
}

// Start runs the stdio event loop. Make sure to register tools beforehand.
func (s *DaybookMCPServer) Start() error {
	return server.ServeStdio(s.mcpServer)
}

// MCPRawServer exposes the raw mcp-go server (useful for additional configuration).
func (s *DaybookMCPServer) MCPRawServer() *server.MCPServer {
	return s.mcpServer
}
