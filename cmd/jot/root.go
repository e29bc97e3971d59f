package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/aretw0/jot/internal/config"
	"github.com/spf13/cobra"
)

var (
	verbose    bool
	configFile string
	dataDir    string
	format     string
	key        string
	ephemeral  bool

	cfg *config.Config
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "jot",
	Short: "A small personal note store",
	Long: `Jot keeps your notes in a single file and lets you add, edit,
search and delete them from the terminal.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.Load(configFile)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded

		level, _ := cfg.Level()
		if verbose {
			level = slog.LevelDebug
		}

		opts := &slog.HandlerOptions{
			Level: level,
		}
		logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), opts))
		slog.SetDefault(logger)
		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	flags.StringVar(&configFile, "config", os.Getenv("JOT_CONFIG"), "Config file (yaml, json or toml)")
	flags.StringVarP(&dataDir, "dir", "d", "", "Data directory (default: nearest .jot folder or the user config dir)")
	flags.StringVar(&format, "format", "", "Storage format: json or yaml")
	flags.StringVar(&key, "key", "", "Storage key holding the notes")
	flags.BoolVar(&ephemeral, "ephemeral", false, "Keep notes in memory only")
}
