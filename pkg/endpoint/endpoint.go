// Package endpoint holds the REST path templates exposed by a Directus
// backend and the builder that fills them in.
package endpoint

import (
	"errors"
	"fmt"
	"strings"
)

// placeholder is the positional marker substituted by BuildPath.
const placeholder = "%s"

// ErrMissingValues is returned when a template has more placeholders than
// values were supplied.
var ErrMissingValues = errors.New("not enough values for path template")

// Path templates, relative to the versioned API root.
const (
	Activity = "activity"

	BookmarkCreate = "bookmarks"
	BookmarkRead   = "bookmarks/%s"
	BookmarkDelete = "bookmarks/%s"
	BookmarkList   = "bookmarks"
	BookmarkUser   = "bookmarks/user/%s"

	TableEntries     = "tables/%s/rows"
	TableEntry       = "tables/%s/rows/%s"
	TableEntryCreate = "tables/%s/rows"
	TableEntryUpdate = "tables/%s/rows/%s"
	TableEntryDelete = "tables/%s/rows/%s"
	TableList        = "tables"
	TableInformation = "tables/%s"
	TablePreferences = "tables/%s/preferences"
	TableDelete      = "tables/%s"
	// The backend creates tables through the privileges resource; the group
	// segment is required by the route but ignored.
	TableCreate = "privileges/1"

	ColumnList          = "tables/%s/columns"
	ColumnCreate        = "tables/%s/columns"
	ColumnDelete        = "tables/%s/columns/%s"
	ColumnInformation   = "tables/%s/columns/%s"
	ColumnOptionsCreate = "tables/%s/columns/%s/%s"

	GroupList             = "groups"
	GroupCreate           = "groups"
	GroupInformation      = "groups/%s"
	GroupDelete           = "groups/%s"
	GroupPrivileges       = "privileges/%s"
	GroupPrivilegesCreate = "privileges/%s"

	FileList        = "files"
	FileCreate      = "files"
	FileUpdate      = "files/%s"
	FileInformation = "files/%s"
	FileDelete      = "files/%s"

	SettingList             = "settings"
	SettingCollectionGet    = "settings/%s"
	SettingCollectionUpdate = "settings/%s"

	MessageCreate   = "messages/rows"
	MessageList     = "messages/rows"
	MessageGet      = "messages/rows/%s"
	MessageUserList = "messages/user/%s"
)

// BuildPath strips a single leading slash from template and substitutes each
// %s placeholder, in order, with the string form of the matching value.
//
// Values are not URL-encoded. Supplying fewer values than placeholders
// returns ErrMissingValues; surplus values are ignored.
func BuildPath(template string, values ...any) (string, error) {
	template = strings.TrimPrefix(template, "/")

	parts := strings.Split(template, placeholder)
	needed := len(parts) - 1
	if len(values) < needed {
		return "", fmt.Errorf("%w: %q needs %d, got %d",
			ErrMissingValues, template, needed, len(values))
	}

	var b strings.Builder
	b.WriteString(parts[0])
	for i, part := range parts[1:] {
		b.WriteString(toSegment(values[i]))
		b.WriteString(part)
	}

	return b.String(), nil
}

// MustBuildPath is like BuildPath but panics on error. It is meant for
// templates whose arity is known at compile time.
func MustBuildPath(template string, values ...any) string {
	p, err := BuildPath(template, values...)
	if err != nil {
		panic(err)
	}
	return p
}

// Placeholders returns how many values template expects.
func Placeholders(template string) int {
	return strings.Count(template, placeholder)
}

func toSegment(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case fmt.Stringer:
		return t.String()
	case float64:
		// JSON numbers decode as float64; whole ids must not render as 1e+06.
		if t == float64(int64(t)) {
			return fmt.Sprintf("%d", int64(t))
		}
		return fmt.Sprint(t)
	default:
		return fmt.Sprint(t)
	}
}
