package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/aretw0/jot"
	"github.com/spf13/cobra"
)

// newNoteID is the id that makes edit create a note instead of changing one.
const newNoteID = "new"

var (
	editTitle   string
	editContent string
)

var editCmd = &cobra.Command{
	Use:   "edit [id|new]",
	Short: "Change the title or content of a note",
	Long: `Edit replaces the fields given by --title and --content, leaving the
others untouched. Passing "new" as the id creates a note instead.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id := args[0]
		flags := cmd.Flags()

		var patch jot.Patch
		if flags.Changed("title") {
			patch.Title = &editTitle
		}
		if flags.Changed("content") {
			content, err := readContent(cmd, editContent)
			if err != nil {
				return err
			}
			patch.Content = &content
		}

		return withStore(func(store *jot.Store) error {
			if id == newNoteID {
				var title, content string
				if patch.Title != nil {
					title = *patch.Title
				}
				if patch.Content != nil {
					content = *patch.Content
				}
				n := store.Add(title, content)
				fmt.Fprintf(cmd.OutOrStdout(), "Note added: %s\n", n.ID)
				return nil
			}

			if patch.IsEmpty() {
				return errors.New("nothing to change: pass --title and/or --content")
			}
			n, ok := store.Update(id, patch)
			if !ok {
				return fmt.Errorf("note not found: %s", id)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Note updated: %s\n", n.ID)
			return nil
		})
	},
}

// readContent returns value, or standard input when value is "-".
func readContent(cmd *cobra.Command, value string) (string, error) {
	if value != "-" {
		return value, nil
	}
	data, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return "", fmt.Errorf("failed to read stdin: %w", err)
	}
	return strings.TrimSuffix(string(data), "\n"), nil
}

func init() {
	rootCmd.AddCommand(editCmd)
	editCmd.Flags().StringVarP(&editTitle, "title", "t", "", "New title")
	editCmd.Flags().StringVarP(&editContent, "content", "c", "", `New content ("-" reads stdin)`)
}
