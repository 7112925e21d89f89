package main

import (
	"github.com/spf13/cobra"

	"github.com/unowned-ai/daybook/pkg/search"
	"github.com/unowned-ai/daybook/pkg/tui"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Show terminal UI",
	Long:  `Display an interactive terminal UI for browsing, editing, and searching entries.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, index, err := openStore()
		if err != nil {
			return err
		}

		// Keep the index honest while external processes touch the
		// entries directory. Best effort; the staleness window still
		// applies if watching fails.
		if watcher, err := search.NewWatcher(store.Dir(), index.MarkStale); err == nil {
			if err := watcher.Start(); err == nil {
				defer watcher.Stop()
			}
		}

		return tui.Run(store, index)
	},
}
