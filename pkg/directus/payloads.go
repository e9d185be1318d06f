package directus

import (
	"fmt"
	"maps"
)

// columnAliases maps the short column attribute names to the stored ones.
var columnAliases = map[string]string{
	"name":  "column_name",
	"table": "table_name",
	"type":  "data_type",
}

// ParseColumnData normalizes a column definition. The short names name,
// table and type are accepted for column_name, table_name and data_type,
// which are all required.
func ParseColumnData(data map[string]any) (map[string]any, error) {
	out := maps.Clone(data)
	if out == nil {
		out = map[string]any{}
	}
	for alias, key := range columnAliases {
		v, ok := out[alias]
		if !ok {
			continue
		}
		delete(out, alias)
		if _, set := out[key]; !set {
			out[key] = v
		}
	}

	if err := RequireAttributes(out, "table_name", "column_name", "data_type"); err != nil {
		return nil, err
	}
	for _, key := range []string{"table_name", "column_name", "data_type"} {
		if _, ok := out[key].(string); !ok {
			return nil, fmt.Errorf("%w: %s must be a string", ErrValidation, key)
		}
	}
	return out, nil
}

// PreferenceFields are the bookmark attributes stored as table preferences.
var PreferenceFields = []string{
	"title", "table_name", "sort", "status", "search_string", "sort_order", "columns_visible", "user",
}

// Pick returns the entries of data whose key is in keys.
func Pick(data map[string]any, keys ...string) map[string]any {
	out := make(map[string]any, len(keys))
	for _, k := range keys {
		if v, ok := data[k]; ok {
			out[k] = v
		}
	}
	return out
}

// SearchBookmark returns the bookmark pointing at the saved preferences
// title of table.
func SearchBookmark(title, table string) map[string]any {
	return map[string]any{
		"section": "search",
		"title":   title,
		"url":     "tables/" + table + "/pref/" + title,
	}
}

// ValidateMessage checks the attributes of a new message.
func ValidateMessage(data map[string]any) error {
	if err := RequireAttributes(data, "from", "message", "subject"); err != nil {
		return err
	}
	return RequireOneAttribute(data, "to", "toGroup")
}
