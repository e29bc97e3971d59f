package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/aretw0/jot"
	"github.com/aretw0/jot/pkg/core"
)

func main() {
	count := flag.Int("count", 1000, "Number of notes to generate")
	format := flag.String("format", "json", "Storage format: json or yaml")
	keep := flag.Bool("keep", false, "Keep the benchmark directory after running")
	flag.Parse()

	benchDir, err := os.MkdirTemp("", "jot_bench_")
	if err != nil {
		panic(err)
	}
	defer func() {
		if !*keep {
			os.RemoveAll(benchDir)
		} else {
			fmt.Printf("Keeping bench dir: %s\n", benchDir)
		}
	}()

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelWarn}))
	ctx := context.Background()

	// Run 1: burst of mutations, coalesced by the writer.
	store, err := jot.New(benchDir, jot.WithLogger(logger), jot.WithFormat(*format))
	if err != nil {
		panic(err)
	}

	fmt.Printf("Adding %d notes in %s...\n", *count, benchDir)
	startAdd := time.Now()
	for i := range *count {
		store.Add(fmt.Sprintf("Note %d", i), fmt.Sprintf("# Benchmark Note %d\nThis is a test note.", i))
	}
	addDuration := time.Since(startAdd)

	startFlush := time.Now()
	if err := store.Flush(ctx); err != nil {
		panic(err)
	}
	flushDuration := time.Since(startFlush)
	state := store.State().(core.StoreState)
	if err := store.Close(ctx); err != nil {
		panic(err)
	}

	// Run 2: a new process opening the collection.
	startLoad := time.Now()
	reopened, err := jot.New(benchDir, jot.WithLogger(logger), jot.WithFormat(*format), jot.WithReadOnly(true))
	if err != nil {
		panic(err)
	}
	loadDuration := time.Since(startLoad)
	defer reopened.Close(ctx)

	startSearch := time.Now()
	hits := reopened.Search("note 9")
	searchDuration := time.Since(startSearch)

	fmt.Printf("--------------------------------------------------\n")
	fmt.Printf("Benchmark Result (%d notes, %s):\n", *count, *format)
	fmt.Printf("  Add:    %v\n", addDuration)
	fmt.Printf("  Flush:  %v (%d writes, %d coalesced)\n", flushDuration, state.Writes, state.Coalesced)
	fmt.Printf("  Load:   %v (Items: %d)\n", loadDuration, reopened.Len())
	fmt.Printf("  Search: %v (Hits: %d)\n", searchDuration, len(hits))
	fmt.Printf("--------------------------------------------------\n")
}
