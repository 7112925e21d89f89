package main

import (
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/unowned-ai/daybook/pkg/journal"
)

var entryDateFlag string

// parseDateFlag resolves the --date flag, defaulting to today.
func parseDateFlag() (journal.Date, error) {
	if entryDateFlag == "" {
		return journal.Today(), nil
	}
	return journal.ParseDate(entryDateFlag)
}

var entryCmd = &cobra.Command{
	Use:   "entry",
	Short: "Manage diary entries",
	Long:  `Provides commands for showing, writing, and listing diary entries.`,
}

var entryShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the entry for a date",
	Long:  `Prints the entry text for the given date (today by default). A date without an entry prints nothing.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		date, err := parseDateFlag()
		if err != nil {
			return err
		}

		store, _, err := openStore()
		if err != nil {
			return err
		}

		text, err := store.Load(cmd.Context(), date)
		if err != nil {
			return fmt.Errorf("failed to load entry: %w", err)
		}

		if text != "" {
			fmt.Println(text)
		}
		return nil
	},
}

var entryWriteCmd = &cobra.Command{
	Use:   "write [text]",
	Short: "Write the entry for a date",
	Long: `Writes the entry text for the given date (today by default), replacing any
prior content. With no argument the text is read from stdin, so entries can be
piped in.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		date, err := parseDateFlag()
		if err != nil {
			return err
		}

		var text string
		if len(args) == 1 {
			text = args[0]
		} else {
			data, err := io.ReadAll(os.Stdin)
			if err != nil {
				return fmt.Errorf("failed to read entry text from stdin: %w", err)
			}
			text = string(data)
		}

		store, _, err := openStore()
		if err != nil {
			return err
		}

		if err := store.Save(cmd.Context(), date, text); err != nil {
			return fmt.Errorf("failed to save entry: %w", err)
		}

		fmt.Printf("Entry for %s saved.\n", date)
		return nil
	},
}

var entryListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all entry dates",
	Long:  `Lists every date that has a persisted entry, in ascending order.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, _, err := openStore()
		if err != nil {
			return err
		}

		entries, err := store.ListAll(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to list entries: %w", err)
		}

		if len(entries) == 0 {
			fmt.Println("No entries found.")
			return nil
		}

		sort.Slice(entries, func(i, j int) bool {
			return entries[i].Date.Before(entries[j].Date)
		})
		for _, entry := range entries {
			fmt.Println(entry.Date)
		}
		return nil
	},
}

func initEntryCmds() {
	entryCmd.PersistentFlags().StringVar(&entryDateFlag, "date", "", "Entry date in YYYY-MM-DD form (default today)")

	entryCmd.AddCommand(entryShowCmd)
	entryCmd.AddCommand(entryWriteCmd)
	entryCmd.AddCommand(entryListCmd)
}
