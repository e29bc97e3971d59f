package main

import (
	"fmt"

	"github.com/aretw0/jot"
	"github.com/spf13/cobra"
)

var addContent string

var addCmd = &cobra.Command{
	Use:   "add [title]",
	Short: "Add a note",
	Long: `Add a note with the given title. The content comes from --content,
or from standard input when --content is "-".`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		title := ""
		if len(args) == 1 {
			title = args[0]
		}
		content, err := readContent(cmd, addContent)
		if err != nil {
			return err
		}

		return withStore(func(store *jot.Store) error {
			n := store.Add(title, content)
			fmt.Fprintf(cmd.OutOrStdout(), "Note added: %s\n", n.ID)
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(addCmd)
	addCmd.Flags().StringVarP(&addContent, "content", "c", "", `Note content ("-" reads stdin)`)
}
