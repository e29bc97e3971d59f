package main

import (
	"github.com/aretw0/jot"
	"github.com/spf13/cobra"
)

var searchJSON bool

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Find notes whose title or content contains the query",
	Long: `Search matches the query against titles and contents, ignoring case.
Without a query every note is listed.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		query := ""
		if len(args) == 1 {
			query = args[0]
		}
		return withStore(func(store *jot.Store) error {
			hits := store.Search(query)
			if searchJSON {
				return printJSON(cmd.OutOrStdout(), hits)
			}
			return printNotes(cmd.OutOrStdout(), hits)
		}, jot.WithReadOnly(true))
	},
}

func init() {
	rootCmd.AddCommand(searchCmd)
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "Output in JSON format")
}
