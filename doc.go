// Package jot is the composition root of a small personal note store.
//
// It connects the core domain (an owned, ordered collection of notes) with
// the infrastructure adapters that persist it, following a hexagonal layout.
//
// The whole collection is kept in memory by a Store and saved as one blob
// under a single key of a key-value adapter. Mutations return immediately:
// subscribers are notified synchronously and the write happens on a
// background writer. Store.Pending returns the Write handle of the latest
// change and Store.Flush waits for it, which is what tests and shutdown
// paths use.
//
// Features:
//
//   - **Owned Store**: explicit New/Close, no package-level state.
//   - **Coalesced Writes**: bursts of changes become one write of the latest snapshot.
//   - **Collision-free IDs**: UUIDv7, ordered by creation.
//   - **Pluggable Storage**: files on disk (`fs`), process memory (`memory`) or any `core.KV`.
//   - **Codecs**: JSON (default) or YAML.
//   - **External Changes**: Store.Watch reports edits made by other processes.
//
// Usage:
//
//	store, err := jot.New("./notes", jot.WithLogger(logger))
//	if err != nil {
//		return err
//	}
//	defer store.Close(ctx)
//
//	n := store.Add("Groceries", "milk, eggs")
//	store.Update(n.ID, jot.SetContent("milk, eggs, bread"))
//	hits := store.Search("bread")
package jot
