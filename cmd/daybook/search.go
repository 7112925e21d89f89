package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/unowned-ai/daybook/pkg/search"
)

var searchCmdTopNFlag int

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search all entries for a word or phrase",
	Long: `Searches the full diary corpus for the query. Matching entries are printed
in ascending date order with every occurrence of the query marked.`,
	Args: func(cmd *cobra.Command, args []string) error {
		if len(args) < 1 {
			return errors.New("requires a query argument")
		}
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		query := strings.Join(args, " ")

		_, index, err := openStore()
		if err != nil {
			return err
		}

		results, err := index.Search(cmd.Context(), query)
		if err != nil {
			return fmt.Errorf("search failed: %w", err)
		}

		if searchCmdTopNFlag > 0 && searchCmdTopNFlag < len(results) {
			results = results[:searchCmdTopNFlag]
		}

		if len(results) == 0 {
			fmt.Println("No matching entries found.")
			return nil
		}

		fmt.Printf("Found %d matching entries:\n", len(results))
		for _, result := range results {
			fmt.Printf("\n--- %s ---\n", result.Date)
			fmt.Println(markMatches(result.Text, result.Query))
		}

		return nil
	},
}

// markMatches wraps every highlight span in [brackets] for terminal output.
// Spans are computed by the core; only the marker style lives here.
func markMatches(text, query string) string {
	spans := search.HighlightSpans(text, query)
	if len(spans) == 0 {
		return text
	}

	var b strings.Builder
	pos := 0
	for _, span := range spans {
		b.WriteString(text[pos:span.Start])
		b.WriteString("[")
		b.WriteString(text[span.Start : span.Start+span.Length])
		b.WriteString("]")
		pos = span.Start + span.Length
	}
	b.WriteString(text[pos:])
	return b.String()
}

func initSearchCmd() {
	searchCmd.Flags().IntVar(&searchCmdTopNFlag, "top", 0, "Return only the top N results (0 means all)")
}
