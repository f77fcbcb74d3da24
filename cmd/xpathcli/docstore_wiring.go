package main

import (
	"github.com/oxhq/xpathlang/internal/docstore"
	"github.com/oxhq/xpathlang/internal/xhost"
)

// loadDocumentSources opens the demo document store at dsn (when non-empty)
// and resolves it into the xpath.Options.Documents/Collections maps
// Evaluate needs: a by-name map of every registered document, plus a
// by-glob-pattern map for each requested collection pattern.
func loadDocumentSources(dsn string, collectionPatterns []string) (map[string]xhost.Node, map[string][]xhost.Node, func() error, error) {
	noop := func() error { return nil }
	if dsn == "" {
		return nil, nil, noop, nil
	}

	store, err := docstore.Connect(dsn, false)
	if err != nil {
		return nil, nil, noop, wrap(errDocstore, "opening document store", err)
	}

	loaded, err := store.All()
	if err != nil {
		store.Close()
		return nil, nil, noop, wrap(errDocstore, "loading documents", err)
	}

	docs := make(map[string]xhost.Node, len(loaded))
	for name, l := range loaded {
		docs[name] = l.Root
	}

	var collections map[string][]xhost.Node
	if len(collectionPatterns) > 0 {
		collections, err = store.Collections(collectionPatterns)
		if err != nil {
			store.Close()
			return nil, nil, noop, wrap(errDocstore, "resolving collections", err)
		}
	}

	return docs, collections, store.Close, nil
}
