// Package pantry indexes the caller-supplied pantry snapshot for the
// ingredient resolver: a case-normalized name set plus a name-to-identifier
// map.
package pantry

import (
	"strings"
	"sync"
)

// Item is one entry of the pantry snapshot. ID is an opaque string and may
// carry leading zeros; it must never be parsed as a number.
type Item struct {
	ID       string   `json:"id"`
	Name     string   `json:"n"`
	Category string   `json:"c"`
	Unit     string   `json:"u"`
	Tags     []string `json:"t"`
}

// Index holds the current snapshot. Rebuild replaces the whole index; there
// is no incremental merge. The mutex covers the clear-and-rebuild, so a
// shared Index is safe across requests, but callers that need full isolation
// should build a fresh Index per invocation.
type Index struct {
	mu    sync.RWMutex
	ids   map[string]string
	names map[string]struct{}
}

// NewIndex returns an empty index.
func NewIndex() *Index {
	return &Index{
		ids:   make(map[string]string),
		names: make(map[string]struct{}),
	}
}

// Normalize lower-cases and trims an ingredient name. All index lookups use
// this form.
func Normalize(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// Rebuild discards the previous snapshot entirely and indexes items. Names
// are expected unique; on collision the last writer wins.
func (x *Index) Rebuild(items []Item) {
	x.mu.Lock()
	defer x.mu.Unlock()

	x.ids = make(map[string]string, len(items))
	x.names = make(map[string]struct{}, len(items))

	for _, item := range items {
		name := Normalize(item.Name)
		if name == "" {
			continue
		}
		x.ids[name] = item.ID
		x.names[name] = struct{}{}
	}
}

// Has reports whether the normalized name is in the snapshot.
func (x *Index) Has(name string) bool {
	x.mu.RLock()
	defer x.mu.RUnlock()
	_, ok := x.names[Normalize(name)]
	return ok
}

// IDFor returns the identifier for a canonical name.
func (x *Index) IDFor(name string) (string, bool) {
	x.mu.RLock()
	defer x.mu.RUnlock()
	id, ok := x.ids[Normalize(name)]
	return id, ok
}

// Names returns a snapshot copy of the normalized name set. Iteration order
// is not stable.
func (x *Index) Names() []string {
	x.mu.RLock()
	defer x.mu.RUnlock()
	out := make([]string, 0, len(x.names))
	for name := range x.names {
		out = append(out, name)
	}
	return out
}

// Len returns the number of indexed names.
func (x *Index) Len() int {
	x.mu.RLock()
	defer x.mu.RUnlock()
	return len(x.names)
}
