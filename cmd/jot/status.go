package main

import (
	"fmt"

	"github.com/aretw0/introspection"
	"github.com/aretw0/jot"
	"github.com/aretw0/jot/pkg/adapters/fs"
	"github.com/aretw0/jot/pkg/core"
	"github.com/spf13/cobra"
)

var statusJSON bool

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show where notes are kept and whether they loaded",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(func(store *jot.Store) error {
			var intro introspection.Introspectable = store
			state, _ := intro.State().(core.StoreState)

			out := cmd.OutOrStdout()
			if statusJSON {
				return printJSON(out, state)
			}

			fmt.Fprintf(out, "Storage: %s (%s, key %q)\n", state.StorageType, state.Codec, state.Key)
			if fsState, ok := state.Storage.(fs.KVState); ok {
				fmt.Fprintf(out, "Dir:     %s\n", fsState.Dir)
			}
			fmt.Fprintf(out, "Notes:   %d\n", state.Notes)
			if state.LoadError != "" {
				fmt.Fprintf(out, "Load error: %s\n", state.LoadError)
			}
			return nil
		}, jot.WithReadOnly(true))
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
	statusCmd.Flags().BoolVar(&statusJSON, "json", false, "Output in JSON format")
}
