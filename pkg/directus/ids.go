package directus

import (
	"strings"

	"github.com/directus/directus-sdk-go/pkg/response"
)

// PrimaryKey is the primary key column of every Directus table.
const PrimaryKey = "id"

// IDs flattens values into a list of record ids. Slices are expanded,
// entries contribute their id field and collections the ids of their
// entries. Comma-separated strings are split.
func IDs(values ...any) []any {
	var out []any
	for _, v := range values {
		out = appendIDs(out, v)
	}
	return out
}

func appendIDs(out []any, v any) []any {
	switch t := v.(type) {
	case nil:
		return out
	case *response.Entry:
		if id := t.Value(PrimaryKey); id != nil {
			out = append(out, id)
		}
	case *response.EntryCollection:
		for _, e := range t.All() {
			out = appendIDs(out, e)
		}
	case []any:
		for _, item := range t {
			out = appendIDs(out, item)
		}
	case []int:
		for _, item := range t {
			out = append(out, item)
		}
	case []int64:
		for _, item := range t {
			out = append(out, item)
		}
	case []string:
		for _, item := range t {
			out = appendIDs(out, item)
		}
	case string:
		for _, part := range strings.Split(t, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	default:
		out = append(out, t)
	}
	return out
}
