package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	daybook "github.com/unowned-ai/daybook/pkg"
	"github.com/unowned-ai/daybook/pkg/config"
	"github.com/unowned-ai/daybook/pkg/journal"
	"github.com/unowned-ai/daybook/pkg/logging"
	"github.com/unowned-ai/daybook/pkg/search"
)

var (
	configPath string
	entriesDir string

	cfg *config.Config
)

var rootCmd = &cobra.Command{
	Use:     "daybook",
	Short:   "A one-entry-per-day diary with full-text search.",
	Long:    ``,
	Version: fmt.Sprintf("v%s", daybook.Version),
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.Load(configPath)
		if err != nil {
			return err
		}
		if entriesDir != "" {
			resolved, err := config.ResolvePath(entriesDir)
			if err != nil {
				return err
			}
			loaded.EntriesDir = resolved
		}
		cfg = loaded

		logging.Init(logging.Config{
			LogDir: cfg.LogDir,
			Level:  cfg.LogLevel,
		})
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logging.Shutdown()
	},
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

// openStore opens the configured entry store along with a search index over it.
func openStore() (*journal.Store, *search.Index, error) {
	store, err := journal.Open(cfg.EntriesDir)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open entry store: %w", err)
	}
	return store, search.New(store, cfg.StalenessWindow()), nil
}

var completionShells = []string{"bash", "zsh", "fish", "powershell"}

var completionCmd = &cobra.Command{
	Use:   fmt.Sprintf("completion %s", strings.Join(completionShells, "|")),
	Short: "Generate shell completion scripts",
	Long: `Generate shell completion scripts for daybook.

The command prints a completion script to stdout. You can source it in your shell
or install it to the appropriate location for your shell to enable completions permanently.

Examples:

  Bash (current shell):
    $ source <(daybook completion bash)

  Zsh:
    $ daybook completion zsh > "${fpath[1]}/_daybook"

  Fish:
    $ daybook completion fish | source`,
	DisableFlagsInUseLine: true,
	ValidArgs:             completionShells,
	Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	RunE: func(cmd *cobra.Command, args []string) error {
		switch args[0] {
		case "bash":
			return rootCmd.GenBashCompletion(cmd.OutOrStdout())
		case "zsh":
			return rootCmd.GenZshCompletion(cmd.OutOrStdout())
		case "fish":
			return rootCmd.GenFishCompletion(cmd.OutOrStdout(), true)
		case "powershell":
			return rootCmd.GenPowerShellCompletion(cmd.OutOrStdout())
		default:
			return fmt.Errorf("unsupported shell: %s", args[0])
		}
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of daybook",
	Long:  `All software has versions. This is daybook's`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(daybook.Version)
	},
}

func main() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to the config file (default ~/.config/daybook/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&entriesDir, "dir", "", "Entries directory (overrides config)")

	rootCmd.AddCommand(completionCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(entryCmd)
	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(mcpCmd)
	rootCmd.AddCommand(tuiCmd)

	initEntryCmds()
	initSearchCmd()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
