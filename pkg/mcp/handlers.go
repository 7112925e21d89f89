package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/unowned-ai/daybook/pkg/journal"
	"github.com/unowned-ai/daybook/pkg/search"
)

// RegisterPingTool registers the simple ping tool.
func RegisterPingTool(s *server.MCPServer) {
	pingTool := mcp.NewTool("ping",
		mcp.WithDescription("Responds with 'pong' to check if the Daybook MCP server is alive."),
	)
	s.AddTool(pingTool, pingHandler)
}

func pingHandler(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultText("pong_daybook"), nil
}

// requireDate pulls and parses the required "date" argument.
func requireDate(request mcp.CallToolRequest) (journal.Date, *mcp.CallToolResult) {
	raw, ok := request.Params.Arguments["date"].(string)
	if !ok || raw == "" {
		return journal.Date{}, mcp.NewToolResultError("'date' parameter is required and must be a YYYY-MM-DD string.")
	}
	date, err := journal.ParseDate(raw)
	if err != nil {
		return journal.Date{}, mcp.NewToolResultError(fmt.Sprintf("Invalid 'date' parameter: %v", err))
	}
	return date, nil
}

// RegisterGetEntryTool registers the get_entry tool.
func RegisterGetEntryTool(s *server.MCPServer, store *journal.Store) {
	getEntryTool := mcp.NewTool("get_entry",
		mcp.WithDescription("Retrieves the diary entry text for a date. A date without an entry yields empty text."),
		mcp.WithString("date", mcp.Required(), mcp.Description("The entry date in YYYY-MM-DD form.")),
	)
	s.AddTool(getEntryTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		date, errResult := requireDate(request)
		if errResult != nil {
			return errResult, nil
		}

		text, err := store.Load(ctx, date)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to load entry for %s: %v", date, err)), nil
		}

		jsonResult, err := json.Marshal(journal.Entry{Date: date, Text: text})
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to serialize entry to JSON: %v", err)), nil
		}
		return mcp.NewToolResultText(string(jsonResult)), nil
	})
}

// RegisterSaveEntryTool registers the save_entry tool.
func RegisterSaveEntryTool(s *server.MCPServer, store *journal.Store, index *search.Index) {
	saveEntryTool := mcp.NewTool("save_entry",
		mcp.WithDescription("Writes the diary entry text for a date, replacing any prior content."),
		mcp.WithString("date", mcp.Required(), mcp.Description("The entry date in YYYY-MM-DD form.")),
		mcp.WithString("text", mcp.Description("The full entry text. Omitting it saves an empty entry.")),
	)
	s.AddTool(saveEntryTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		date, errResult := requireDate(request)
		if errResult != nil {
			return errResult, nil
		}

		// Text is optional; a missing argument saves an empty entry.
		text, _ := request.Params.Arguments["text"].(string)

		if err := store.Save(ctx, date, text); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to save entry for %s: %v", date, err)), nil
		}
		index.MarkStale()

		return mcp.NewToolResultText(fmt.Sprintf("Entry for %s saved.", date)), nil
	})
}

// RegisterListEntriesTool registers the list_entries tool.
func RegisterListEntriesTool(s *server.MCPServer, store *journal.Store) {
	listEntriesTool := mcp.NewTool("list_entries",
		mcp.WithDescription("Lists every persisted diary entry with its text."),
	)
	s.AddTool(listEntriesTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		entries, err := store.ListAll(ctx)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to list entries: %v", err)), nil
		}

		if len(entries) == 0 {
			return mcp.NewToolResultText("[]"), nil
		}

		jsonResult, err := json.Marshal(entries)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to serialize entries to JSON: %v", err)), nil
		}
		return mcp.NewToolResultText(string(jsonResult)), nil
	})
}

// RegisterSearchEntriesTool registers the search_entries tool.
func RegisterSearchEntriesTool(s *server.MCPServer, index *search.Index) {
	searchEntriesTool := mcp.NewTool("search_entries",
		mcp.WithDescription("Searches all diary entries for a word or phrase. Returns matching dates with entry text, ordered by date."),
		mcp.WithString("query", mcp.Required(), mcp.Description("The text to search for. An empty query matches nothing.")),
	)
	s.AddTool(searchEntriesTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		query, ok := request.Params.Arguments["query"].(string)
		if !ok {
			return mcp.NewToolResultError("'query' parameter is required and must be a string."), nil
		}

		results, err := index.Search(ctx, query)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Search failed: %v", err)), nil
		}

		jsonResult, err := json.Marshal(results)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to serialize results to JSON: %v", err)), nil
		}
		return mcp.NewToolResultText(string(jsonResult)), nil
	})
}

// RegisterHighlightSpansTool registers the highlight_spans tool.
func RegisterHighlightSpansTool(s *server.MCPServer) {
	highlightTool := mcp.NewTool("highlight_spans",
		mcp.WithDescription("Computes case-insensitive, non-overlapping highlight spans for every occurrence of a query inside a text."),
		mcp.WithString("text", mcp.Required(), mcp.Description("The text to scan.")),
		mcp.WithString("query", mcp.Required(), mcp.Description("The literal string to highlight.")),
	)
	s.AddTool(highlightTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		text, textOk := request.Params.Arguments["text"].(string)
		query, queryOk := request.Params.Arguments["query"].(string)
		if !textOk || !queryOk {
			return mcp.NewToolResultError("'text' and 'query' parameters are required and must be strings."), nil
		}

		spans := search.HighlightSpans(text, query)
		if spans == nil {
			spans = []search.Span{}
		}

		jsonResult, err := json.Marshal(spans)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to serialize spans to JSON: %v", err)), nil
		}
		return mcp.NewToolResultText(string(jsonResult)), nil
	})
}
