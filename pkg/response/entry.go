package response

import (
	"encoding/json"
	"fmt"
	"maps"

	"github.com/mitchellh/mapstructure"
)

// Entry is a single record returned by the backend: its field map plus
// optional metadata. Metadata is fixed at construction.
type Entry struct {
	fields   map[string]any
	metadata map[string]any
}

var _ Response = (*Entry)(nil)

// NewEntry returns an Entry owning a shallow copy of fields and metadata.
func NewEntry(fields, metadata map[string]any) *Entry {
	f := maps.Clone(fields)
	if f == nil {
		f = map[string]any{}
	}
	return &Entry{
		fields:   f,
		metadata: maps.Clone(metadata),
	}
}

func (e *Entry) isResponse() {}

// Kind returns KindEntry.
func (e *Entry) Kind() Kind { return KindEntry }

// Get returns the value stored under key, or ErrFieldNotFound.
func (e *Entry) Get(key string) (any, error) {
	v, ok := e.fields[key]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrFieldNotFound, key)
	}
	return v, nil
}

// Value returns the value stored under key, or nil when it is absent.
func (e *Entry) Value(key string) any {
	return e.fields[key]
}

// StringField returns the field as a string, formatting non-string scalars.
// Absent or null fields yield "".
func (e *Entry) StringField(key string) string {
	v, ok := e.fields[key]
	if !ok || v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}

// Has reports whether key is present, even with a nil value.
func (e *Entry) Has(key string) bool {
	_, ok := e.fields[key]
	return ok
}

// Set stores value under key.
func (e *Entry) Set(key string, value any) {
	e.fields[key] = value
}

// Unset removes key. Removing an absent key is a no-op.
func (e *Entry) Unset(key string) {
	delete(e.fields, key)
}

// Fields returns a copy of the field map.
func (e *Entry) Fields() map[string]any {
	return maps.Clone(e.fields)
}

// Metadata returns a copy of the metadata, nil when none was supplied.
func (e *Entry) Metadata() map[string]any {
	return maps.Clone(e.metadata)
}

// Len returns the number of fields.
func (e *Entry) Len() int {
	return len(e.fields)
}

// Decode copies the fields into out, a pointer to a struct or map, matching
// `mapstructure` tags and falling back to case-insensitive field names.
func (e *Entry) Decode(out any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           out,
		WeaklyTypedInput: true,
		TagName:          "mapstructure",
	})
	if err != nil {
		return fmt.Errorf("error creating decoder: %w", err)
	}
	if err := dec.Decode(e.fields); err != nil {
		return fmt.Errorf("error decoding entry: %w", err)
	}
	return nil
}

type entryJSON struct {
	Metadata map[string]any `json:"metadata"`
	Fields   map[string]any `json:"fields"`
}

// MarshalJSON encodes the entry as {"metadata": ..., "fields": ...}.
func (e *Entry) MarshalJSON() ([]byte, error) {
	return json.Marshal(entryJSON{Metadata: e.metadata, Fields: e.fields})
}

// UnmarshalJSON reads the form produced by MarshalJSON.
func (e *Entry) UnmarshalJSON(b []byte) error {
	var v entryJSON
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	if v.Fields == nil {
		v.Fields = map[string]any{}
	}
	e.fields = v.Fields
	e.metadata = v.Metadata
	return nil
}
