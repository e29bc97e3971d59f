package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/aretw0/jot"
	"github.com/spf13/cobra"
)

// initCmd represents the init command
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a notebook in the current directory",
	Long: `Create a .jot folder in the current directory. Commands run anywhere
below it will keep their notes there.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		target := dataDir
		if target == "" {
			cwd, err := os.Getwd()
			if err != nil {
				return fmt.Errorf("failed to get CWD: %w", err)
			}
			target = filepath.Join(cwd, ".jot")
		}

		dir, err := jot.Init(target, jot.WithLogger(slog.Default()))
		if err != nil {
			return fmt.Errorf("failed to initialize notebook: %w", err)
		}

		fmt.Fprintln(cmd.OutOrStdout(), "Initialized empty notebook in", dir)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
