package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	daybookmcp "github.com/unowned-ai/daybook/pkg/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Run the Daybook MCP server over stdio",
	Long: `Starts an MCP (Model Context Protocol) server over stdio exposing the diary
as tools: reading and writing entries, listing dates, searching, and
computing highlight spans.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		server, err := daybookmcp.NewDaybookMCPServer(cfg.EntriesDir)
		if err != nil {
			return fmt.Errorf("failed to start MCP server: %w", err)
		}

		server.RegisterAllTools()

		fmt.Fprintf(os.Stderr, "Daybook MCP server serving entries from %s\n", server.Dir)
		return server.Start()
	},
}
