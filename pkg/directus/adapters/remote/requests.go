package remote

import (
	"context"
	"fmt"
	"net/http"

	"github.com/directus/directus-sdk-go/pkg/directus"
	"github.com/directus/directus-sdk-go/pkg/endpoint"
	"github.com/directus/directus-sdk-go/pkg/file"
	"github.com/directus/directus-sdk-go/pkg/response"
)

func vals(v ...any) []any { return v }

func (c *Client) GetTables(ctx context.Context, params directus.Params) (response.Response, error) {
	return c.request(ctx, http.MethodGet, endpoint.TableList, nil, params, nil)
}

func (c *Client) GetTable(ctx context.Context, table string) (response.Response, error) {
	return c.request(ctx, http.MethodGet, endpoint.TableInformation, vals(table), nil, nil)
}

func (c *Client) GetColumns(ctx context.Context, table string, params directus.Params) (response.Response, error) {
	return c.request(ctx, http.MethodGet, endpoint.ColumnList, vals(table), params, nil)
}

func (c *Client) GetColumn(ctx context.Context, table, column string) (response.Response, error) {
	return c.request(ctx, http.MethodGet, endpoint.ColumnInformation, vals(table, column), nil, nil)
}

func (c *Client) GetEntries(ctx context.Context, table string, params directus.Params) (response.Response, error) {
	return c.request(ctx, http.MethodGet, endpoint.TableEntries, vals(table), params, nil)
}

func (c *Client) GetEntry(ctx context.Context, table string, id any, params directus.Params) (response.Response, error) {
	return c.request(ctx, http.MethodGet, endpoint.TableEntry, vals(table, id), params, nil)
}

func (c *Client) CreateEntry(ctx context.Context, table string, data map[string]any) (response.Response, error) {
	data, err := c.processor.Process(table, data)
	if err != nil {
		return nil, err
	}
	return c.request(ctx, http.MethodPost, endpoint.TableEntryCreate, vals(table), nil, data)
}

// UpdateEntry sends only the fields present in data.
func (c *Client) UpdateEntry(ctx context.Context, table string, id any, data map[string]any) (response.Response, error) {
	data, err := c.processor.Process(table, data)
	if err != nil {
		return nil, err
	}
	return c.request(ctx, http.MethodPut, endpoint.TableEntryUpdate, vals(table, id), nil, data)
}

// DeleteEntry deletes a single record with one DELETE request. More than
// one id is rejected since the API has no bulk delete.
func (c *Client) DeleteEntry(ctx context.Context, table string, ids ...any) (int, error) {
	return c.deleteOne(ctx, endpoint.TableEntryDelete, table, directus.IDs(ids...))
}

func (c *Client) deleteOne(ctx context.Context, template, table string, ids []any) (int, error) {
	switch len(ids) {
	case 0:
		return 0, nil
	case 1:
	default:
		return 0, fmt.Errorf("%w: remote delete takes a single id, got %d", directus.ErrValidation, len(ids))
	}

	values := vals(ids[0])
	if table != "" {
		values = vals(table, ids[0])
	}
	if _, err := c.request(ctx, http.MethodDelete, template, values, nil, nil); err != nil {
		return 0, err
	}
	return 1, nil
}

func (c *Client) GetUsers(ctx context.Context, params directus.Params) (response.Response, error) {
	return c.GetEntries(ctx, directus.UsersCollection, params)
}

func (c *Client) GetUser(ctx context.Context, id any, params directus.Params) (response.Response, error) {
	return c.GetEntry(ctx, directus.UsersCollection, id, params)
}

func (c *Client) CreateUser(ctx context.Context, data map[string]any) (response.Response, error) {
	return c.CreateEntry(ctx, directus.UsersCollection, data)
}

func (c *Client) UpdateUser(ctx context.Context, id any, data map[string]any) (response.Response, error) {
	return c.UpdateEntry(ctx, directus.UsersCollection, id, data)
}

func (c *Client) DeleteUser(ctx context.Context, ids ...any) (int, error) {
	return c.DeleteEntry(ctx, directus.UsersCollection, ids...)
}

func (c *Client) GetGroups(ctx context.Context, params directus.Params) (response.Response, error) {
	return c.request(ctx, http.MethodGet, endpoint.GroupList, nil, params, nil)
}

func (c *Client) GetGroup(ctx context.Context, id any, params directus.Params) (response.Response, error) {
	return c.request(ctx, http.MethodGet, endpoint.GroupInformation, vals(id), params, nil)
}

func (c *Client) GetGroupPrivileges(ctx context.Context, groupID any) (response.Response, error) {
	return c.request(ctx, http.MethodGet, endpoint.GroupPrivileges, vals(groupID), nil, nil)
}

func (c *Client) CreateGroup(ctx context.Context, data map[string]any) (response.Response, error) {
	return c.request(ctx, http.MethodPost, endpoint.GroupCreate, nil, nil, data)
}

func (c *Client) DeleteGroup(ctx context.Context, id any) (int, error) {
	return c.deleteOne(ctx, endpoint.GroupDelete, "", directus.IDs(id))
}

// CreatePrivileges requires group_id and table_name.
func (c *Client) CreatePrivileges(ctx context.Context, data map[string]any) (response.Response, error) {
	if err := directus.RequireAttributes(data, "group_id", "table_name"); err != nil {
		return nil, err
	}
	return c.request(ctx, http.MethodPost, endpoint.GroupPrivilegesCreate, vals(data["group_id"]), nil, data)
}

func (c *Client) GetFiles(ctx context.Context, params directus.Params) (response.Response, error) {
	return c.request(ctx, http.MethodGet, endpoint.FileList, nil, params, nil)
}

func (c *Client) GetFile(ctx context.Context, id any, params directus.Params) (response.Response, error) {
	return c.request(ctx, http.MethodGet, endpoint.FileInformation, vals(id), params, nil)
}

// CreateFile uploads the file content as a base64 data URI.
func (c *Client) CreateFile(ctx context.Context, f *file.File) (response.Response, error) {
	if f == nil {
		return nil, file.ErrMissingFile
	}
	payload, err := f.Payload(c.processor.Files())
	if err != nil {
		return nil, err
	}
	data, err := c.processor.Process(directus.FilesCollection, payload)
	if err != nil {
		return nil, err
	}
	return c.request(ctx, http.MethodPost, endpoint.FileCreate, nil, nil, data)
}

func (c *Client) UpdateFile(ctx context.Context, id any, data map[string]any) (response.Response, error) {
	data, err := c.processor.Process(directus.FilesCollection, data)
	if err != nil {
		return nil, err
	}
	return c.request(ctx, http.MethodPut, endpoint.FileUpdate, vals(id), nil, data)
}

func (c *Client) DeleteFile(ctx context.Context, ids ...any) (int, error) {
	return c.deleteOne(ctx, endpoint.FileDelete, "", directus.IDs(ids...))
}

func (c *Client) GetSettings(ctx context.Context) (response.Response, error) {
	return c.request(ctx, http.MethodGet, endpoint.SettingList, nil, nil, nil)
}

func (c *Client) GetSettingsByCollection(ctx context.Context, collection string) (response.Response, error) {
	return c.request(ctx, http.MethodGet, endpoint.SettingCollectionGet, vals(collection), nil, nil)
}

func (c *Client) GetMessages(ctx context.Context, userID any) (response.Response, error) {
	return c.request(ctx, http.MethodGet, endpoint.MessageUserList, vals(userID), nil, nil)
}

func (c *Client) GetMessage(ctx context.Context, id any) (response.Response, error) {
	return c.request(ctx, http.MethodGet, endpoint.MessageGet, vals(id), nil, nil)
}

// CreateMessage sends the audience as a single "recipients" attribute in
// token form.
func (c *Client) CreateMessage(ctx context.Context, data map[string]any) (response.Response, error) {
	if err := directus.ValidateMessage(data); err != nil {
		return nil, err
	}
	recipients, err := directus.ParseRecipients(data)
	if err != nil {
		return nil, err
	}

	body := make(map[string]any, len(data))
	for k, v := range data {
		if k == "to" || k == "toGroup" {
			continue
		}
		body[k] = v
	}
	body["recipients"] = recipients.Format()

	return c.request(ctx, http.MethodPost, endpoint.MessageCreate, nil, nil, body)
}

func (c *Client) SendMessage(ctx context.Context, data map[string]any) (response.Response, error) {
	return c.CreateMessage(ctx, data)
}

func (c *Client) GetActivity(ctx context.Context, params directus.Params) (response.Response, error) {
	return c.request(ctx, http.MethodGet, endpoint.Activity, nil, params, nil)
}

func (c *Client) GetBookmarks(ctx context.Context) (response.Response, error) {
	return c.request(ctx, http.MethodGet, endpoint.BookmarkList, nil, nil, nil)
}

func (c *Client) GetUserBookmarks(ctx context.Context, userID any) (response.Response, error) {
	return c.request(ctx, http.MethodGet, endpoint.BookmarkUser, vals(userID), nil, nil)
}

func (c *Client) CreateBookmark(ctx context.Context, data map[string]any) (response.Response, error) {
	prefs, err := c.CreatePreferences(ctx, directus.Pick(data, directus.PreferenceFields...))
	if err != nil {
		return nil, err
	}

	entry, ok := response.AsEntry(prefs)
	if !ok {
		return nil, fmt.Errorf("%w: preferences response is a collection", response.ErrUnexpectedPayload)
	}
	title := entry.StringField("title")
	table := entry.StringField("table_name")
	if title == "" {
		title, _ = data["title"].(string)
	}
	if table == "" {
		table, _ = data["table_name"].(string)
	}

	return c.request(ctx, http.MethodPost, endpoint.BookmarkCreate, nil, nil, directus.SearchBookmark(title, table))
}

func (c *Client) DeleteBookmark(ctx context.Context, id any) (int, error) {
	return c.deleteOne(ctx, endpoint.BookmarkDelete, "", directus.IDs(id))
}

func (c *Client) GetPreferences(ctx context.Context, table string, userID any) (response.Response, error) {
	params := directus.Params{}
	if userID != nil {
		params["user"] = userID
	}
	return c.request(ctx, http.MethodGet, endpoint.TablePreferences, vals(table), params, nil)
}

func (c *Client) CreatePreferences(ctx context.Context, data map[string]any) (response.Response, error) {
	if err := directus.RequireAttributes(data, "title", "table_name"); err != nil {
		return nil, err
	}
	return c.request(ctx, http.MethodPost, endpoint.TablePreferences, vals(data["table_name"]), nil, data)
}

// CreateTable creates the table through the privileges endpoint, which
// also grants the administrators group on it.
func (c *Client) CreateTable(ctx context.Context, name string, data map[string]any) (response.Response, error) {
	name, err := directus.CleanTableName(name)
	if err != nil {
		return nil, err
	}

	body := make(map[string]any, len(data)+3)
	for k, v := range data {
		body[k] = v
	}
	body["table_name"] = name
	body["addTable"] = true
	if _, ok := body["group_id"]; !ok {
		body["group_id"] = directus.AdminGroupID
	}

	return c.request(ctx, http.MethodPost, endpoint.TableCreate, nil, nil, body)
}

func (c *Client) DeleteTable(ctx context.Context, name string) (response.Response, error) {
	return c.request(ctx, http.MethodDelete, endpoint.TableDelete, vals(name), nil, nil)
}

func (c *Client) CreateColumn(ctx context.Context, data map[string]any) (response.Response, error) {
	data, err := directus.ParseColumnData(data)
	if err != nil {
		return nil, err
	}
	return c.request(ctx, http.MethodPost, endpoint.ColumnCreate, vals(data["table_name"]), nil, data)
}

func (c *Client) DeleteColumn(ctx context.Context, column, table string) (response.Response, error) {
	return c.request(ctx, http.MethodDelete, endpoint.ColumnDelete, vals(table, column), nil, nil)
}

func (c *Client) CreateColumnUIOptions(ctx context.Context, data map[string]any) (response.Response, error) {
	if err := directus.RequireAttributes(data, "table", "column", "ui", "options"); err != nil {
		return nil, err
	}
	options, ok := data["options"].(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%w: options must be an object", directus.ErrValidation)
	}
	return c.request(ctx, http.MethodPost, endpoint.ColumnOptionsCreate,
		vals(data["table"], data["column"], data["ui"]), nil, options)
}
