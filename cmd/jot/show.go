package main

import (
	"fmt"

	"github.com/aretw0/jot"
	"github.com/spf13/cobra"
)

var showJSON bool

var showCmd = &cobra.Command{
	Use:   "show [id]",
	Short: "Print a note",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id := args[0]
		return withStore(func(store *jot.Store) error {
			n, ok := store.Get(id)
			if !ok {
				return fmt.Errorf("note not found: %s", id)
			}
			if showJSON {
				return printJSON(cmd.OutOrStdout(), n)
			}
			return printNote(cmd.OutOrStdout(), n)
		}, jot.WithReadOnly(true))
	},
}

func init() {
	rootCmd.AddCommand(showCmd)
	showCmd.Flags().BoolVar(&showJSON, "json", false, "Output in JSON format")
}
