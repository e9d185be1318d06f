package directus

import (
	"context"

	"github.com/directus/directus-sdk-go/pkg/file"
	"github.com/directus/directus-sdk-go/pkg/response"
)

// Requests is implemented by every Directus client.
type Requests interface {
	// GetTables lists all tables.
	GetTables(ctx context.Context, params Params) (response.Response, error)
	// GetTable describes a table.
	GetTable(ctx context.Context, table string) (response.Response, error)
	// GetColumns lists the columns of a table.
	GetColumns(ctx context.Context, table string, params Params) (response.Response, error)
	// GetColumn describes a single column.
	GetColumn(ctx context.Context, table, column string) (response.Response, error)

	// GetEntries fetches the records of a table.
	GetEntries(ctx context.Context, table string, params Params) (response.Response, error)
	// GetEntry fetches a single record by id.
	GetEntry(ctx context.Context, table string, id any, params Params) (response.Response, error)
	// CreateEntry inserts a record and returns it as stored.
	CreateEntry(ctx context.Context, table string, data map[string]any) (response.Response, error)
	// UpdateEntry changes only the fields present in data.
	UpdateEntry(ctx context.Context, table string, id any, data map[string]any) (response.Response, error)
	// DeleteEntry deletes the given ids and returns how many were removed.
	// ids may mix scalars, slices, entries and entry collections.
	DeleteEntry(ctx context.Context, table string, ids ...any) (int, error)

	GetUsers(ctx context.Context, params Params) (response.Response, error)
	GetUser(ctx context.Context, id any, params Params) (response.Response, error)
	CreateUser(ctx context.Context, data map[string]any) (response.Response, error)
	UpdateUser(ctx context.Context, id any, data map[string]any) (response.Response, error)
	DeleteUser(ctx context.Context, ids ...any) (int, error)

	GetGroups(ctx context.Context, params Params) (response.Response, error)
	GetGroup(ctx context.Context, id any, params Params) (response.Response, error)
	GetGroupPrivileges(ctx context.Context, groupID any) (response.Response, error)
	CreateGroup(ctx context.Context, data map[string]any) (response.Response, error)
	DeleteGroup(ctx context.Context, id any) (int, error)
	CreatePrivileges(ctx context.Context, data map[string]any) (response.Response, error)

	GetFiles(ctx context.Context, params Params) (response.Response, error)
	GetFile(ctx context.Context, id any, params Params) (response.Response, error)
	CreateFile(ctx context.Context, f *file.File) (response.Response, error)
	UpdateFile(ctx context.Context, id any, data map[string]any) (response.Response, error)
	DeleteFile(ctx context.Context, ids ...any) (int, error)

	GetSettings(ctx context.Context) (response.Response, error)
	GetSettingsByCollection(ctx context.Context, collection string) (response.Response, error)

	// GetMessages lists the messages received by a user.
	GetMessages(ctx context.Context, userID any) (response.Response, error)
	GetMessage(ctx context.Context, id any) (response.Response, error)
	// CreateMessage requires from, message and subject, and one of to or
	// toGroup.
	CreateMessage(ctx context.Context, data map[string]any) (response.Response, error)
	// SendMessage is an alias of CreateMessage.
	SendMessage(ctx context.Context, data map[string]any) (response.Response, error)

	GetActivity(ctx context.Context, params Params) (response.Response, error)

	GetBookmarks(ctx context.Context) (response.Response, error)
	GetUserBookmarks(ctx context.Context, userID any) (response.Response, error)
	// CreateBookmark stores a table view as preferences and bookmarks it.
	CreateBookmark(ctx context.Context, data map[string]any) (response.Response, error)
	DeleteBookmark(ctx context.Context, id any) (int, error)

	GetPreferences(ctx context.Context, table string, userID any) (response.Response, error)
	// CreatePreferences requires title and table_name.
	CreatePreferences(ctx context.Context, data map[string]any) (response.Response, error)

	// CreateTable creates a table and grants the administrators group on it.
	CreateTable(ctx context.Context, name string, data map[string]any) (response.Response, error)
	DeleteTable(ctx context.Context, name string) (response.Response, error)
	// CreateColumn requires table_name, column_name and data_type.
	CreateColumn(ctx context.Context, data map[string]any) (response.Response, error)
	DeleteColumn(ctx context.Context, column, table string) (response.Response, error)
	// CreateColumnUIOptions requires table, column, ui and options.
	CreateColumnUIOptions(ctx context.Context, data map[string]any) (response.Response, error)
}
