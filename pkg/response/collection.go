package response

import (
	"encoding/json"
	"fmt"
	"iter"
	"maps"
	"slices"
)

// EntryCollection is an ordered, read-only snapshot of a list response.
type EntryCollection struct {
	items    []*Entry
	metadata map[string]any
	raw      map[string]any
	listKey  string
}

var _ Response = (*EntryCollection)(nil)

// NewEntryCollection builds a collection from a raw payload. The first list
// found under one of ListKeys becomes the entries, in payload order; every
// other top-level key becomes metadata. A payload without a list yields an
// empty collection whose metadata is the whole payload.
func NewEntryCollection(raw map[string]any) *EntryCollection {
	key, rows, _ := findList(raw)
	return newCollection(raw, key, rows)
}

func newCollection(raw map[string]any, key string, rows []any) *EntryCollection {
	raw = maps.Clone(raw)
	if raw == nil {
		raw = map[string]any{}
	}
	if key != "" {
		raw[key] = slices.Clone(rows)
	}
	metadata := maps.Clone(raw)
	delete(metadata, key)

	items := make([]*Entry, 0, len(rows))
	for _, row := range rows {
		fields, _ := row.(map[string]any)
		items = append(items, NewEntry(fields, nil))
	}

	return &EntryCollection{
		items:    items,
		metadata: metadata,
		raw:      raw,
		listKey:  key,
	}
}

func (c *EntryCollection) isResponse() {}

// Kind returns KindCollection.
func (c *EntryCollection) Kind() Kind { return KindCollection }

// Len returns the number of entries.
func (c *EntryCollection) Len() int {
	return len(c.items)
}

// At returns the entry at index i.
func (c *EntryCollection) At(i int) (*Entry, error) {
	if i < 0 || i >= len(c.items) {
		return nil, fmt.Errorf("index %d out of range [0,%d)", i, len(c.items))
	}
	return c.items[i], nil
}

// Has reports whether index i holds an entry.
func (c *EntryCollection) Has(i int) bool {
	return i >= 0 && i < len(c.items)
}

// Set always fails: collections are snapshots of a server response.
func (c *EntryCollection) Set(int, *Entry) error {
	return ErrImmutableCollection
}

// Unset always fails: collections are snapshots of a server response.
func (c *EntryCollection) Unset(int) error {
	return ErrImmutableCollection
}

// Entries returns the entries in response order. The slice is a copy.
func (c *EntryCollection) Entries() []*Entry {
	return slices.Clone(c.items)
}

// All iterates the entries with their index. Every call starts over.
func (c *EntryCollection) All() iter.Seq2[int, *Entry] {
	return func(yield func(int, *Entry) bool) {
		for i, e := range c.items {
			if !yield(i, e) {
				return
			}
		}
	}
}

// Metadata returns a copy of every payload key except the list key.
func (c *EntryCollection) Metadata() map[string]any {
	return maps.Clone(c.metadata)
}

// Raw returns a copy of the payload the collection was built from.
func (c *EntryCollection) Raw() map[string]any {
	return maps.Clone(c.raw)
}

// ListKey returns the payload key the entries were read from.
func (c *EntryCollection) ListKey() string {
	return c.listKey
}

// MarshalJSON encodes the collection as {"metadata": ..., "data": [...]}.
func (c *EntryCollection) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Metadata map[string]any `json:"metadata"`
		Data     []*Entry       `json:"data"`
	}{
		Metadata: c.metadata,
		Data:     c.items,
	})
}
