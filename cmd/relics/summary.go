package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/relicforge/go-relics/journal"
)

func summary(args []string) error {
	fs := flag.NewFlagSet("summary", flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: relics summary <journal.db | journal.jsonl>

Summarize a recorded notification journal. Files ending in .jsonl are
parsed as JSON Lines; anything else is opened as a sqlite database.
`)
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 1 {
		fs.Usage()
		return fmt.Errorf("journal file required")
	}
	path := fs.Arg(0)

	var entries []*journal.Entry
	var err error
	if strings.HasSuffix(path, ".jsonl") {
		entries, err = journal.ReadJSONLFile(path)
	} else {
		var store *journal.SQLiteStore
		store, err = journal.NewSQLiteStore(path)
		if err == nil {
			defer store.Close()
			entries, err = store.List(context.Background(), 0)
		}
	}
	if err != nil {
		return fmt.Errorf("read journal: %w", err)
	}

	if len(entries) == 0 {
		fmt.Println("No entries recorded")
		return nil
	}
	journal.Summarize(entries).Print(os.Stdout)
	return nil
}
