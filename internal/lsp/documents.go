package lsp

import (
	"sync"

	"github.com/Sumatoshi-tech/casefang/pkg/sourcelang"
)

// document is an open text buffer.
type document struct {
	text     string
	language sourcelang.Language
	version  int32
}

// documentStore holds open documents keyed by URI. It is safe for concurrent use.
type documentStore struct {
	mu        sync.RWMutex
	documents map[string]document
}

func newDocumentStore() *documentStore {
	return &documentStore{documents: make(map[string]document)}
}

func (ds *documentStore) set(uri string, doc document) {
	ds.mu.Lock()
	defer ds.mu.Unlock()

	ds.documents[uri] = doc
}

// update replaces the text of an open document, keeping its language.
func (ds *documentStore) update(uri, text string, version int32) bool {
	ds.mu.Lock()
	defer ds.mu.Unlock()

	doc, ok := ds.documents[uri]
	if !ok {
		return false
	}

	doc.text = text
	doc.version = version
	ds.documents[uri] = doc

	return true
}

func (ds *documentStore) get(uri string) (document, bool) {
	ds.mu.RLock()
	defer ds.mu.RUnlock()

	doc, ok := ds.documents[uri]

	return doc, ok
}

func (ds *documentStore) delete(uri string) {
	ds.mu.Lock()
	defer ds.mu.Unlock()

	delete(ds.documents, uri)
}

func (ds *documentStore) size() int {
	ds.mu.RLock()
	defer ds.mu.RUnlock()

	return len(ds.documents)
}
