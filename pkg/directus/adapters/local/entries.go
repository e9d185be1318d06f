package local

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"path"
	"strings"

	"github.com/directus/directus-sdk-go/pkg/directus"
	"github.com/directus/directus-sdk-go/pkg/file"
	"github.com/directus/directus-sdk-go/pkg/gateway"
	"github.com/directus/directus-sdk-go/pkg/response"
	"github.com/directus/directus-sdk-go/pkg/storage"
)

func (c *Client) GetEntries(ctx context.Context, table string, params directus.Params) (response.Response, error) {
	q, err := directus.DecodeQuery(params)
	if err != nil {
		return nil, err
	}

	rows, err := c.gw.Select(ctx, table, q)
	if err != nil {
		return nil, err
	}
	total, err := c.gw.Count(ctx, table, q)
	if err != nil {
		return nil, err
	}
	counts, err := c.gw.StatusCounts(ctx, table)
	if err != nil {
		return nil, err
	}

	payload := map[string]any{
		response.RowsKey: rowsAsAny(c.decorate(table, rows)),
		"total":          total,
	}
	for name, n := range counts {
		payload[name] = n
	}
	return response.Classify(payload)
}

func (c *Client) GetEntry(ctx context.Context, table string, id any, params directus.Params) (response.Response, error) {
	q, err := directus.DecodeQuery(params.With("id", id))
	if err != nil {
		return nil, err
	}
	q.Limit = 1

	rows, err := c.gw.Select(ctx, table, q)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: %s %v", gateway.ErrNotFound, table, id)
	}
	return response.NewEntry(c.decorate(table, rows)[0], nil), nil
}

func (c *Client) CreateEntry(ctx context.Context, table string, data map[string]any) (response.Response, error) {
	record, err := c.save(ctx, table, nil, data)
	if err != nil {
		return nil, err
	}
	return c.GetEntry(ctx, table, record[directus.PrimaryKey], nil)
}

// UpdateEntry writes only the fields present in data. A missing record is
// created with the given id.
func (c *Client) UpdateEntry(ctx context.Context, table string, id any, data map[string]any) (response.Response, error) {
	record, err := c.save(ctx, table, id, data)
	if err != nil {
		return nil, err
	}
	return c.GetEntry(ctx, table, record[directus.PrimaryKey], nil)
}

// save processes data and writes it to table.
func (c *Client) save(ctx context.Context, table string, id any, data map[string]any) (gateway.Row, error) {
	data, err := c.processor.Process(table, data)
	if err != nil {
		return nil, err
	}

	var replaced string
	if table == directus.FilesCollection {
		if id != nil {
			if _, ok := data["data"]; ok {
				replaced = c.storedName(ctx, id)
			}
		}
		if err := c.storeFile(ctx, data, id == nil); err != nil {
			return nil, err
		}
	}
	if err := c.inlineFiles(ctx, table, data); err != nil {
		return nil, err
	}

	if id != nil {
		data[directus.PrimaryKey] = id
	}
	record, err := c.gw.ManageRecordUpdate(ctx, table, data)
	if err != nil {
		return nil, err
	}
	if replaced != "" && replaced != record["name"] {
		c.removeStored(ctx, replaced)
	}
	return record, nil
}

// storedName returns the object name of file id, or "" when unknown.
func (c *Client) storedName(ctx context.Context, id any) string {
	row, err := c.gw.Find(ctx, directus.FilesCollection, id)
	if err != nil {
		return ""
	}
	name, _ := row["name"].(string)
	return name
}

func (c *Client) removeStored(ctx context.Context, name string) {
	if err := c.store.Delete(ctx, name); err != nil && !errors.Is(err, storage.ErrNotFound) {
		c.logger.Warn("error removing stored file", "name", name, "error", err)
	}
}

// maxNameAttempts bounds the numbered names tried before falling back to a
// random one.
const maxNameAttempts = 100

// uniqueName returns name, or name with a numeric suffix before the
// extension, such that no stored object has it yet.
func (c *Client) uniqueName(ctx context.Context, name, mimeType string) (string, error) {
	ext := path.Ext(name)
	base := strings.TrimSuffix(name, ext)
	candidate := name
	for i := 1; i <= maxNameAttempts; i++ {
		exists, err := c.store.Exists(ctx, candidate)
		if err != nil {
			return "", fmt.Errorf("error checking stored file %s: %w", candidate, err)
		}
		if !exists {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s-%d%s", base, i, ext)
	}
	return file.RandomName(mimeType), nil
}

// inlineFiles stores the file attributes found in data as directus_files
// records and replaces them with the new file ids.
func (c *Client) inlineFiles(ctx context.Context, table string, data map[string]any) error {
	for key, value := range data {
		attrs, ok := value.(map[string]any)
		if !ok || !isFileAttributes(attrs) {
			continue
		}
		record, err := c.save(ctx, directus.FilesCollection, nil, attrs)
		if err != nil {
			return fmt.Errorf("error storing %s.%s: %w", table, key, err)
		}
		data[key] = record[directus.PrimaryKey]
	}
	return nil
}

func isFileAttributes(attrs map[string]any) bool {
	uri, _ := attrs["data"].(string)
	return strings.HasPrefix(uri, "data:")
}

// storeFile writes the content of a files payload to storage and replaces
// it with the stored name, type and size.
func (c *Client) storeFile(ctx context.Context, data map[string]any, create bool) error {
	raw, ok := data["data"]
	if !ok || raw == nil {
		if create {
			return file.ErrMissingFile
		}
		return nil
	}

	uri, ok := raw.(string)
	if !ok {
		return fmt.Errorf("%w: file data must be a string, got %T", directus.ErrValidation, raw)
	}
	mimeType, content, err := file.DecodeDataURI(uri)
	if err != nil {
		return fmt.Errorf("%w: %v", directus.ErrValidation, err)
	}

	name, _ := data["name"].(string)
	if name == "" {
		name = file.RandomName(mimeType)
	}
	if t, _ := data["type"].(string); t == "" {
		data["type"] = mimeType
	}
	name, err = c.uniqueName(ctx, name, mimeType)
	if err != nil {
		return err
	}

	if err := c.store.Put(ctx, name, content, data["type"].(string)); err != nil {
		return fmt.Errorf("error storing file %s: %w", name, err)
	}
	c.logger.Debug("stored file", "name", name, "size", len(content), "adapter", c.store.Adapter())

	delete(data, "data")
	data["name"] = name
	data["size"] = len(content)
	data["storage_adapter"] = c.store.Adapter()
	if create {
		data["user"] = c.userID
		data["date_uploaded"] = c.now().UTC()
	}
	return nil
}

// decorate adds the public URLs to directus_files rows.
func (c *Client) decorate(table string, rows []gateway.Row) []gateway.Row {
	if table != directus.FilesCollection {
		return rows
	}
	for _, row := range rows {
		name, _ := row["name"].(string)
		if name == "" {
			continue
		}
		row["url"] = c.files.FileURL(name)
		row["thumbnail_url"] = c.files.ThumbnailURL(row[directus.PrimaryKey], name)
	}
	return rows
}

// DeleteEntry deletes the records and returns how many were removed. The
// stored content of deleted files is removed as well.
func (c *Client) DeleteEntry(ctx context.Context, table string, ids ...any) (int, error) {
	flat := directus.IDs(ids...)
	if len(flat) == 0 {
		return 0, nil
	}

	var names []string
	if table == directus.FilesCollection {
		rows, err := c.gw.Select(ctx, table, directus.Query{
			Filter:  map[string]any{directus.PrimaryKey: map[string]any{directus.OpIn: flat}},
			Columns: []string{"name"},
		})
		if err != nil {
			return 0, err
		}
		for _, row := range rows {
			if name, _ := row["name"].(string); name != "" {
				names = append(names, name)
			}
		}
	}

	n, err := c.gw.Delete(ctx, table, flat)
	if err != nil {
		return 0, err
	}

	for _, name := range names {
		c.removeStored(ctx, name)
	}
	return int(n), nil
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
	return c.GetEntries(ctx, directus.GroupsCollection, params)
}

func (c *Client) GetGroup(ctx context.Context, id any, params directus.Params) (response.Response, error) {
	return c.GetEntry(ctx, directus.GroupsCollection, id, params)
}

func (c *Client) GetGroupPrivileges(ctx context.Context, groupID any) (response.Response, error) {
	return c.GetEntries(ctx, directus.PrivilegesCollection, directus.Params{
		"filter": map[string]any{"group_id": groupID},
	})
}

// defaultUserPrivilege is granted to every new group on directus_users.
var defaultUserPrivilege = map[string]any{
	"table_name":            directus.UsersCollection,
	"allow_view":            1,
	"allow_add":             0,
	"allow_edit":            1,
	"allow_delete":          0,
	"allow_alter":           0,
	"read_field_blacklist":  "token",
	"write_field_blacklist": "group,token",
}

// CreateGroup creates a group and grants it the default privilege on
// directus_users.
func (c *Client) CreateGroup(ctx context.Context, data map[string]any) (response.Response, error) {
	var group gateway.Row
	err := c.gw.Transaction(ctx, func(tx *gateway.Gateway) error {
		var err error
		group, err = tx.ManageRecordUpdate(ctx, directus.GroupsCollection, maps.Clone(data))
		if err != nil {
			return err
		}

		privilege := maps.Clone(defaultUserPrivilege)
		privilege["group_id"] = group[directus.PrimaryKey]
		_, err = tx.ManageRecordUpdate(ctx, directus.PrivilegesCollection, privilege)
		return err
	})
	if err != nil {
		return nil, err
	}
	return response.NewEntry(group, nil), nil
}

func (c *Client) DeleteGroup(ctx context.Context, id any) (int, error) {
	return c.DeleteEntry(ctx, directus.GroupsCollection, id)
}

// CreatePrivileges requires group_id and table_name.
func (c *Client) CreatePrivileges(ctx context.Context, data map[string]any) (response.Response, error) {
	if err := directus.RequireAttributes(data, "group_id", "table_name"); err != nil {
		return nil, err
	}
	record, err := c.gw.ManageRecordUpdate(ctx, directus.PrivilegesCollection, maps.Clone(data))
	if err != nil {
		return nil, err
	}
	return entryResponse(directus.PrivilegesCollection, record)
}

func (c *Client) GetFiles(ctx context.Context, params directus.Params) (response.Response, error) {
	return c.GetEntries(ctx, directus.FilesCollection, params)
}

func (c *Client) GetFile(ctx context.Context, id any, params directus.Params) (response.Response, error) {
	return c.GetEntry(ctx, directus.FilesCollection, id, params)
}

func (c *Client) CreateFile(ctx context.Context, f *file.File) (response.Response, error) {
	data, err := f.Payload(c.processor.Files())
	if err != nil {
		return nil, err
	}
	return c.CreateEntry(ctx, directus.FilesCollection, data)
}

// UpdateFile replaces the stored content when data carries a data URI.
func (c *Client) UpdateFile(ctx context.Context, id any, data map[string]any) (response.Response, error) {
	return c.UpdateEntry(ctx, directus.FilesCollection, id, data)
}

func (c *Client) DeleteFile(ctx context.Context, ids ...any) (int, error) {
	return c.DeleteEntry(ctx, directus.FilesCollection, ids...)
}

func (c *Client) GetSettings(ctx context.Context) (response.Response, error) {
	return c.GetEntries(ctx, directus.SettingsCollection, nil)
}

func (c *Client) GetSettingsByCollection(ctx context.Context, collection string) (response.Response, error) {
	return c.GetEntries(ctx, directus.SettingsCollection, directus.Params{
		"filter": map[string]any{"collection": collection},
	})
}

func (c *Client) GetActivity(ctx context.Context, params directus.Params) (response.Response, error) {
	return c.GetEntries(ctx, directus.ActivityCollection, params)
}
