package local

import (
	"context"
	"fmt"
	"slices"
	"testing"
	"time"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/directus/directus-sdk-go/pkg/database"
	"github.com/directus/directus-sdk-go/pkg/directus"
	"github.com/directus/directus-sdk-go/pkg/fieldproc"
	"github.com/directus/directus-sdk-go/pkg/file"
	"github.com/directus/directus-sdk-go/pkg/gateway"
	"github.com/directus/directus-sdk-go/pkg/models"
	"github.com/directus/directus-sdk-go/pkg/response"
	"github.com/directus/directus-sdk-go/pkg/storage"
)

var (
	pngHeader = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 0, 0, 0, 0x0d, 'I', 'H', 'D', 'R'}
	fixedNow  = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
)

func newTestClient(t *testing.T) (*Client, afero.Fs) {
	t.Helper()
	ctx := context.Background()
	fs := afero.NewMemMapFs()

	cfg := Config{
		PasswordCost: bcrypt.MinCost,
		Database:     database.Config{Driver: database.DriverSQLite, Path: ":memory:"},
		Filesystem: &storage.Config{
			Root:         "/uploads",
			RootURL:      "/storage/uploads",
			RootThumbURL: "/storage/thumbs",
		},
	}
	c, err := Open(ctx, cfg, fs, hclog.NewNullLogger(), WithClock(func() time.Time { return fixedNow }))
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })

	require.NoError(t, c.Bootstrap(ctx))
	return c, fs
}

func requireEntry(t *testing.T) func(response.Response, error) *response.Entry {
	return func(resp response.Response, err error) *response.Entry {
		t.Helper()
		require.NoError(t, err)
		e, ok := response.AsEntry(resp)
		require.True(t, ok, "expected an entry, got %s", resp.Kind())
		return e
	}
}

func requireCollection(t *testing.T) func(response.Response, error) *response.EntryCollection {
	return func(resp response.Response, err error) *response.EntryCollection {
		t.Helper()
		require.NoError(t, err)
		c, ok := response.AsCollection(resp)
		require.True(t, ok, "expected a collection, got %s", resp.Kind())
		return c
	}
}

func createArticles(t *testing.T, c *Client) {
	t.Helper()
	ctx := context.Background()

	_, err := c.CreateTable(ctx, "articles", nil)
	require.NoError(t, err)
	_, err = c.CreateColumn(ctx, map[string]any{"table": "articles", "name": "title", "type": "VARCHAR", "length": "100"})
	require.NoError(t, err)
}

func TestConfig(t *testing.T) {
	var cfg Config
	cfg.Database = database.Config{Driver: database.DriverSQLite, Path: "directus.db"}
	cfg.SetDefaults()

	assert.Equal(t, DefaultUserID, cfg.UserID)
	assert.Equal(t, 1, cfg.GroupID)
	assert.Equal(t, storage.AdapterLocal, cfg.Filesystem.Adapter)
	assert.Equal(t, gateway.DefaultStatusColumn, cfg.Status.ColumnName)
	assert.NoError(t, cfg.Validate())

	cfg.UserID = -1
	assert.Error(t, cfg.Validate())

	bad := Config{Database: database.Config{Driver: database.DriverSQLite}}
	bad.SetDefaults()
	assert.ErrorContains(t, bad.Validate(), "database")

	_, err := Open(context.Background(), Config{Database: database.Config{Driver: "oracle"}}, afero.NewMemMapFs(), nil)
	assert.Error(t, err)
}

func TestBootstrap(t *testing.T) {
	ctx := context.Background()
	c, _ := newTestClient(t)

	require.NoError(t, c.Bootstrap(ctx))

	group := requireEntry(t)(c.GetGroup(ctx, 1, nil))
	assert.Equal(t, AdminGroupName, group.StringField("name"))

	groups := requireCollection(t)(c.GetGroups(ctx, nil))
	assert.Equal(t, 1, groups.Len())
}

func TestEntries(t *testing.T) {
	ctx := context.Background()
	c, _ := newTestClient(t)
	createArticles(t, c)

	first := requireEntry(t)(c.CreateEntry(ctx, "articles", map[string]any{"title": "First"}))
	assert.EqualValues(t, 1, first.Value("id"))
	assert.Equal(t, "First", first.StringField("title"))
	assert.EqualValues(t, 1, first.Value("active"))

	requireEntry(t)(c.CreateEntry(ctx, "articles", map[string]any{"title": "Draft", "active": 2}))

	updated := requireEntry(t)(c.UpdateEntry(ctx, "articles", 1, map[string]any{"title": "Renamed"}))
	assert.Equal(t, "Renamed", updated.StringField("title"))
	assert.EqualValues(t, 1, updated.Value("active"))

	entries := requireCollection(t)(c.GetEntries(ctx, "articles", nil))
	assert.Equal(t, 2, entries.Len())
	meta := entries.Metadata()
	assert.EqualValues(t, 2, meta["total"])
	assert.EqualValues(t, 1, meta["Active"])
	assert.EqualValues(t, 1, meta["Draft"])
	assert.EqualValues(t, 0, meta["Delete"])

	drafts := requireCollection(t)(c.GetEntries(ctx, "articles", directus.Params{"status": "2"}))
	require.Equal(t, 1, drafts.Len())
	draft, err := drafts.At(0)
	require.NoError(t, err)
	assert.Equal(t, "Draft", draft.StringField("title"))

	one := requireEntry(t)(c.GetEntry(ctx, "articles", 2, nil))
	assert.Equal(t, "Draft", one.StringField("title"))

	_, err = c.GetEntry(ctx, "articles", 99, nil)
	assert.ErrorIs(t, err, gateway.ErrNotFound)

	_, err = c.GetEntries(ctx, "articles; --", nil)
	assert.ErrorIs(t, err, gateway.ErrInvalidIdentifier)
}

func TestDeleteEntry(t *testing.T) {
	ctx := context.Background()
	c, _ := newTestClient(t)
	createArticles(t, c)

	var created []*response.Entry
	for i := range 4 {
		created = append(created, requireEntry(t)(c.CreateEntry(ctx, "articles", map[string]any{"title": fmt.Sprint("a", i)})))
	}

	n, err := c.DeleteEntry(ctx, "articles", created[0], []any{created[1].Value("id")}, "3")
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	n, err = c.DeleteEntry(ctx, "articles")
	require.NoError(t, err)
	assert.Zero(t, n)

	entries := requireCollection(t)(c.GetEntries(ctx, "articles", nil))
	require.Equal(t, 1, entries.Len())
	left, err := entries.At(0)
	require.NoError(t, err)
	assert.Equal(t, "a3", left.StringField("title"))
}

func TestUsers(t *testing.T) {
	ctx := context.Background()
	c, fs := newTestClient(t)
	require.NoError(t, afero.WriteFile(fs, "/tmp/avatar.png", pngHeader, 0o644))

	user := requireEntry(t)(c.CreateUser(ctx, map[string]any{
		"email":    "ada@example.com",
		"password": "secret",
		"token":    "ignored",
		"avatar":   file.New("/tmp/avatar.png"),
	}))
	assert.True(t, fieldproc.VerifyPassword(user.StringField("password"), "secret"))
	assert.Empty(t, user.StringField("token"))

	files := requireCollection(t)(c.GetFiles(ctx, nil))
	require.Equal(t, 1, files.Len())
	avatar, err := files.At(0)
	require.NoError(t, err)
	assert.Equal(t, avatar.StringField("id"), user.StringField("avatar"))
	assert.Equal(t, "avatar.png", avatar.StringField("name"))

	updated := requireEntry(t)(c.UpdateUser(ctx, user.Value("id"), map[string]any{"first_name": "Ada"}))
	assert.Equal(t, "Ada", updated.StringField("first_name"))
	assert.Equal(t, "ada@example.com", updated.StringField("email"))

	n, err := c.DeleteUser(ctx, user)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestFiles(t *testing.T) {
	ctx := context.Background()
	c, fs := newTestClient(t)
	require.NoError(t, afero.WriteFile(fs, "/tmp/logo.png", pngHeader, 0o644))

	f := file.New("/tmp/logo.png")
	f.Title = "Logo"
	created := requireEntry(t)(c.CreateFile(ctx, f))

	assert.Equal(t, "logo.png", created.StringField("name"))
	assert.Equal(t, "Logo", created.StringField("title"))
	assert.Equal(t, "image/png", created.StringField("type"))
	assert.EqualValues(t, len(pngHeader), created.Value("size"))
	assert.Equal(t, storage.AdapterLocal, created.StringField("storage_adapter"))
	assert.EqualValues(t, 1, created.Value("user"))
	assert.Equal(t, "/storage/uploads/logo.png", created.StringField("url"))
	assert.Equal(t, "/storage/thumbs/1.png", created.StringField("thumbnail_url"))
	assert.False(t, created.Has("data"))

	stored, err := afero.ReadFile(fs, "/uploads/logo.png")
	require.NoError(t, err)
	assert.Equal(t, pngHeader, stored)

	updated := requireEntry(t)(c.UpdateFile(ctx, created.Value("id"), map[string]any{"caption": "Company logo"}))
	assert.Equal(t, "Company logo", updated.StringField("caption"))
	assert.Equal(t, "logo.png", updated.StringField("name"))

	_, err = c.CreateEntry(ctx, directus.FilesCollection, map[string]any{"title": "empty"})
	assert.ErrorIs(t, err, file.ErrMissingFile)

	_, err = c.CreateEntry(ctx, directus.FilesCollection, map[string]any{"data": "not a data uri"})
	assert.ErrorIs(t, err, directus.ErrValidation)

	n, err := c.DeleteFile(ctx, created)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	exists, err := afero.Exists(fs, "/uploads/logo.png")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestFiles_SameName(t *testing.T) {
	ctx := context.Background()
	c, fs := newTestClient(t)
	first := append(slices.Clone(pngHeader), 'a')
	second := append(slices.Clone(pngHeader), 'b', 'c', 'd')
	require.NoError(t, afero.WriteFile(fs, "/a/logo.png", first, 0o644))
	require.NoError(t, afero.WriteFile(fs, "/b/logo.png", second, 0o644))

	one := requireEntry(t)(c.CreateFile(ctx, file.New("/a/logo.png")))
	two := requireEntry(t)(c.CreateFile(ctx, file.New("/b/logo.png")))
	assert.Equal(t, "logo.png", one.StringField("name"))
	assert.Equal(t, "logo-1.png", two.StringField("name"))
	assert.Equal(t, "/storage/uploads/logo-1.png", two.StringField("url"))

	stored, err := afero.ReadFile(fs, "/uploads/logo.png")
	require.NoError(t, err)
	assert.Equal(t, first, stored)

	_, err = c.DeleteFile(ctx, two)
	require.NoError(t, err)

	stored, err = afero.ReadFile(fs, "/uploads/logo.png")
	require.NoError(t, err)
	assert.Equal(t, first, stored)
	exists, err := afero.Exists(fs, "/uploads/logo-1.png")
	require.NoError(t, err)
	assert.False(t, exists)

	attrs, err := file.NewBuilder(fs).FromPath("/b/logo.png")
	require.NoError(t, err)
	replaced := requireEntry(t)(c.UpdateFile(ctx, one.Value("id"), map[string]any{"name": attrs.Name, "data": attrs.Data}))
	assert.Equal(t, "logo-1.png", replaced.StringField("name"))
	assert.EqualValues(t, len(second), replaced.Value("size"))

	exists, err = afero.Exists(fs, "/uploads/logo.png")
	require.NoError(t, err)
	assert.False(t, exists, "replaced content is removed")
}

func TestGroups(t *testing.T) {
	ctx := context.Background()
	c, _ := newTestClient(t)

	group := requireEntry(t)(c.CreateGroup(ctx, map[string]any{"name": "Editors"}))
	assert.EqualValues(t, 2, group.Value("id"))

	privileges := requireCollection(t)(c.GetGroupPrivileges(ctx, group.Value("id")))
	require.Equal(t, 1, privileges.Len())
	p, err := privileges.At(0)
	require.NoError(t, err)
	assert.Equal(t, directus.UsersCollection, p.StringField("table_name"))
	assert.EqualValues(t, 1, p.Value("allow_view"))
	assert.EqualValues(t, 0, p.Value("allow_add"))
	assert.Equal(t, "token", p.StringField("read_field_blacklist"))
	assert.Equal(t, "group,token", p.StringField("write_field_blacklist"))

	granted := requireEntry(t)(c.CreatePrivileges(ctx, map[string]any{"group_id": 2, "table_name": "articles", "allow_view": 1}))
	assert.Equal(t, "articles", granted.StringField("table_name"))
	assert.Equal(t, directus.PrivilegesCollection, granted.Metadata()["table"])

	_, err = c.CreatePrivileges(ctx, map[string]any{"table_name": "articles"})
	assert.ErrorIs(t, err, directus.ErrValidation)

	n, err := c.DeleteGroup(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestMessages(t *testing.T) {
	ctx := context.Background()
	c, _ := newTestClient(t)

	editors := requireEntry(t)(c.CreateGroup(ctx, map[string]any{"name": "Editors"}))
	for _, u := range []map[string]any{
		{"email": "admin@example.com", "group": 1},
		{"email": "alice@example.com", "group": editors.Value("id")},
		{"email": "bob@example.com", "group": editors.Value("id")},
		{"email": "carol@example.com", "group": editors.Value("id"), "active": 0},
		{"email": "dave@example.com"},
	} {
		requireEntry(t)(c.CreateUser(ctx, u))
	}

	msg := requireEntry(t)(c.CreateMessage(ctx, map[string]any{
		"from":    1,
		"subject": "Hello",
		"message": "Welcome aboard",
		"to":      "0_5",
		"toGroup": "2",
	}))
	assert.Equal(t, map[string]any{"type": "entry", "table": directus.MessagesCollection}, msg.Metadata())
	assert.Equal(t, "Hello", msg.StringField("subject"))
	assert.Equal(t, "0_5,0_2,0_3,0_1", msg.StringField("recipients"))

	inbox := requireCollection(t)(c.GetMessages(ctx, 2))
	require.Equal(t, 1, inbox.Len())
	assert.EqualValues(t, 1, inbox.Metadata()["unread"])
	first, err := inbox.At(0)
	require.NoError(t, err)
	assert.Equal(t, "Welcome aboard", first.StringField("message"))
	assert.EqualValues(t, 0, first.Value("read"))

	sent := requireCollection(t)(c.GetMessages(ctx, 1))
	assert.EqualValues(t, 1, sent.Metadata()["read"])

	none := requireCollection(t)(c.GetMessages(ctx, 4))
	assert.Zero(t, none.Len())

	activity := requireCollection(t)(c.GetActivity(ctx, nil))
	require.Equal(t, 1, activity.Len())
	a, err := activity.At(0)
	require.NoError(t, err)
	assert.Equal(t, models.ActivityTypeMessage, a.StringField("type"))
	assert.Equal(t, models.ActivityActionAdd, a.StringField("action"))
	assert.Equal(t, msg.StringField("id"), a.StringField("row_id"))

	again := requireEntry(t)(c.SendMessage(ctx, map[string]any{
		"from": 1, "subject": "Again", "message": "Direct", "to": "2",
	}))
	assert.Equal(t, "0_2,0_1", again.StringField("recipients"))

	impersonated := requireEntry(t)(c.CreateMessage(ctx, map[string]any{
		"from": 5, "subject": "Other", "message": "Sent as the acting user", "to": "0_2",
	}))
	assert.Equal(t, "0_2,0_1", impersonated.StringField("recipients"))
	assert.EqualValues(t, 1, impersonated.Value("from"))

	daveInbox := requireCollection(t)(c.GetMessages(ctx, 5))
	assert.Equal(t, 1, daveInbox.Len())

	_, err = c.CreateMessage(ctx, map[string]any{"from": 1, "subject": "x", "message": "y"})
	assert.ErrorIs(t, err, directus.ErrValidation)

	_, err = c.CreateMessage(ctx, map[string]any{"from": 1, "subject": "x", "message": "y", "to": "0_abc"})
	assert.ErrorIs(t, err, directus.ErrValidation)

	_, err = c.GetMessage(ctx, 99)
	assert.ErrorIs(t, err, gateway.ErrNotFound)
}

func TestBookmarksAndPreferences(t *testing.T) {
	ctx := context.Background()
	c, _ := newTestClient(t)
	createArticles(t, c)

	bookmark := requireEntry(t)(c.CreateBookmark(ctx, map[string]any{
		"title":         "Drafts",
		"table_name":    "articles",
		"status":        "2",
		"search_string": "draft",
		"icon_class":    "ignored",
	}))
	assert.Equal(t, "search", bookmark.StringField("section"))
	assert.Equal(t, "tables/articles/pref/Drafts", bookmark.StringField("url"))
	assert.EqualValues(t, 1, bookmark.Value("user"))

	mine := requireCollection(t)(c.GetUserBookmarks(ctx, 1))
	assert.Equal(t, 1, mine.Len())
	all := requireCollection(t)(c.GetBookmarks(ctx))
	assert.Equal(t, 1, all.Len())

	prefs := requireEntry(t)(c.GetPreferences(ctx, "articles", 1))
	assert.Equal(t, "Drafts", prefs.StringField("title"))
	assert.Equal(t, "2", prefs.StringField("status"))

	defaults := requireEntry(t)(c.GetPreferences(ctx, "articles", 7))
	assert.Equal(t, "title", defaults.StringField("columns_visible"))
	assert.Equal(t, "1,2", defaults.StringField("status"))
	assert.Equal(t, "id", defaults.StringField("sort"))
	assert.Equal(t, "ASC", defaults.StringField("sort_order"))

	_, err := c.GetPreferences(ctx, "missing", 1)
	assert.ErrorIs(t, err, gateway.ErrNotFound)

	owned := requireEntry(t)(c.CreatePreferences(ctx, map[string]any{"title": "Mine", "table_name": "articles", "user": 9}))
	assert.EqualValues(t, 1, owned.Value("user"))

	_, err = c.CreatePreferences(ctx, map[string]any{"table_name": "articles"})
	assert.ErrorIs(t, err, directus.ErrValidation)

	n, err := c.DeleteBookmark(ctx, bookmark.Value("id"))
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestSchema(t *testing.T) {
	ctx := context.Background()
	c, _ := newTestClient(t)

	privilege := requireEntry(t)(c.CreateTable(ctx, "BlogPosts", nil))
	assert.Equal(t, "blog_posts", privilege.StringField("table_name"))
	assert.EqualValues(t, 1, privilege.Value("group_id"))
	assert.EqualValues(t, 2, privilege.Value("allow_view"))

	_, err := c.CreateTable(ctx, "blog posts", nil)
	assert.ErrorIs(t, err, directus.ErrValidation)

	col := requireEntry(t)(c.CreateColumn(ctx, map[string]any{
		"table_name":    "blog_posts",
		"column_name":   "views",
		"data_type":     "INT",
		"default_value": 0,
	}))
	assert.Equal(t, "views", col.StringField("column_name"))

	_, err = c.CreateColumn(ctx, map[string]any{"table_name": "blog_posts", "column_name": "x", "data_type": "GEOMETRY"})
	assert.ErrorIs(t, err, gateway.ErrUnsupportedType)

	_, err = c.CreateColumn(ctx, map[string]any{"table_name": "blog_posts"})
	assert.ErrorIs(t, err, directus.ErrValidation)

	tables := requireCollection(t)(c.GetTables(ctx, nil))
	require.Equal(t, 1, tables.Len())
	first, err := tables.At(0)
	require.NoError(t, err)
	assert.Equal(t, "blog_posts", first.StringField("name"))

	withSystem := requireCollection(t)(c.GetTables(ctx, directus.Params{"include_system": true}))
	assert.Greater(t, withSystem.Len(), 1)

	info := requireEntry(t)(c.GetTable(ctx, "blog_posts"))
	assert.Equal(t, "id", info.StringField("primary_column"))
	assert.Equal(t, "active", info.StringField("status_column"))

	cols := requireCollection(t)(c.GetColumns(ctx, "blog_posts", nil))
	assert.Equal(t, 3, cols.Len())

	_, err = c.GetTable(ctx, "missing")
	assert.ErrorIs(t, err, gateway.ErrNotFound)

	dropped := requireEntry(t)(c.DeleteColumn(ctx, "views", "blog_posts"))
	assert.Equal(t, true, dropped.Value("success"))

	failed := requireEntry(t)(c.DeleteColumn(ctx, "nope", "blog_posts"))
	assert.Equal(t, false, failed.Value("success"))
	assert.Equal(t, map[string]any{"message": "unable_to_remove_column_nope"}, failed.Value("error"))

	removed := requireEntry(t)(c.DeleteTable(ctx, "blog_posts"))
	assert.Equal(t, true, removed.Value("success"))

	gone := requireEntry(t)(c.DeleteTable(ctx, "blog_posts"))
	assert.Equal(t, false, gone.Value("success"))
}

func TestColumnUIOptions(t *testing.T) {
	ctx := context.Background()
	c, _ := newTestClient(t)
	createArticles(t, c)

	data := map[string]any{
		"table":   "articles",
		"column":  "title",
		"ui":      "textinput",
		"options": map[string]any{"size": "large", "placeholder": "Title"},
	}
	stored := requireEntry(t)(c.CreateColumnUIOptions(ctx, data))
	assert.Equal(t, map[string]any{"size": "large", "placeholder": "Title"}, stored.Fields())

	data["options"] = map[string]any{"size": "small"}
	stored = requireEntry(t)(c.CreateColumnUIOptions(ctx, data))
	assert.Equal(t, "small", stored.StringField("size"))
	assert.Equal(t, "Title", stored.StringField("placeholder"))

	var n int64
	require.NoError(t, c.Gateway().DB().Model(&models.UIOption{}).Count(&n).Error)
	assert.EqualValues(t, 2, n)

	data["options"] = "size=large"
	_, err := c.CreateColumnUIOptions(ctx, data)
	assert.ErrorIs(t, err, directus.ErrValidation)

	_, err = c.CreateColumnUIOptions(ctx, map[string]any{"table": "articles"})
	assert.ErrorIs(t, err, directus.ErrValidation)
}

func TestSettings(t *testing.T) {
	ctx := context.Background()
	c, _ := newTestClient(t)

	settings := []models.Setting{
		{Collection: "global", Name: "project_name", Value: "Site"},
		{Collection: "global", Name: "cms_color", Value: "#333"},
		{Collection: "files", Name: "thumbnail_size", Value: "200"},
	}
	require.NoError(t, c.Gateway().DB().Create(&settings).Error)

	all := requireCollection(t)(c.GetSettings(ctx))
	assert.Equal(t, 3, all.Len())

	global := requireCollection(t)(c.GetSettingsByCollection(ctx, "global"))
	assert.Equal(t, 2, global.Len())
}
