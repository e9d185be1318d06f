// Package response turns decoded Directus payloads into Entry and
// EntryCollection values.
//
// The contract is structural. A payload is a collection when it is a JSON
// array, or when it is an object whose "rows" (legacy API) or "data"
// (current API) member is a JSON array. Emptiness does not matter: an empty
// array still yields a collection. Everything else is a single entry; an
// object carrying a "data" object is unwrapped, with "meta" as metadata.
package response

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

var (
	// ErrFieldNotFound is returned by Entry.Get for an absent key.
	ErrFieldNotFound = errors.New("field not found")

	// ErrImmutableCollection is returned by every EntryCollection mutation.
	ErrImmutableCollection = errors.New("entry collection is read only")

	// ErrUnexpectedPayload is returned when a payload is neither an object
	// nor an array.
	ErrUnexpectedPayload = errors.New("unexpected response payload")
)

// List keys, in lookup order.
const (
	RowsKey = "rows"
	DataKey = "data"
	MetaKey = "meta"
)

// ListKeys are the payload members that may carry a list of records.
var ListKeys = []string{RowsKey, DataKey}

// Kind tags the Response variants.
type Kind int

const (
	KindEntry Kind = iota
	KindCollection
)

func (k Kind) String() string {
	switch k {
	case KindEntry:
		return "entry"
	case KindCollection:
		return "collection"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Response is either an *Entry or an *EntryCollection.
type Response interface {
	Kind() Kind
	Metadata() map[string]any
	json.Marshaler

	isResponse()
}

// Classify wraps an already decoded JSON value. A nil payload yields an
// empty Entry.
func Classify(payload any) (Response, error) {
	switch p := payload.(type) {
	case nil:
		return NewEntry(nil, nil), nil
	case []any:
		return newCollection(map[string]any{}, "", p), nil
	case []map[string]any:
		rows := make([]any, len(p))
		for i := range p {
			rows[i] = p[i]
		}
		return newCollection(map[string]any{}, "", rows), nil
	case map[string]any:
		return classifyObject(p), nil
	default:
		return nil, fmt.Errorf("%w: %T", ErrUnexpectedPayload, payload)
	}
}

func classifyObject(p map[string]any) Response {
	if key, rows, ok := findList(p); ok {
		return newCollection(p, key, rows)
	}

	if data, ok := p[DataKey].(map[string]any); ok {
		meta, _ := p[MetaKey].(map[string]any)
		return NewEntry(data, meta)
	}

	return NewEntry(p, nil)
}

// findList returns the first list-shaped member named in ListKeys.
func findList(p map[string]any) (string, []any, bool) {
	for _, key := range ListKeys {
		if rows, ok := p[key].([]any); ok {
			return key, rows, true
		}
	}
	return "", nil, false
}

// Decode parses a JSON document and classifies it. An empty or
// whitespace-only body yields an empty Entry.
func Decode(body []byte) (Response, error) {
	if len(bytes.TrimSpace(body)) == 0 {
		return NewEntry(nil, nil), nil
	}

	var payload any
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("error decoding response: %w", err)
	}
	return Classify(payload)
}

// AsEntry returns r as an *Entry when it is one.
func AsEntry(r Response) (*Entry, bool) {
	e, ok := r.(*Entry)
	return e, ok
}

// AsCollection returns r as an *EntryCollection when it is one.
func AsCollection(r Response) (*EntryCollection, bool) {
	c, ok := r.(*EntryCollection)
	return c, ok
}
