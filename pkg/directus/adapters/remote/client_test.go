package remote

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/directus/directus-sdk-go/pkg/directus"
	"github.com/directus/directus-sdk-go/pkg/fieldproc"
	"github.com/directus/directus-sdk-go/pkg/file"
	"github.com/directus/directus-sdk-go/pkg/response"
)

var pngHeader = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 0, 0, 0, 0x0d, 'I', 'H', 'D', 'R'}

type recordedRequest struct {
	Method   string
	Path     string
	RawQuery string
	Header   http.Header
	Body     map[string]any
}

// testServer records every request and answers with a canned response.
type testServer struct {
	*httptest.Server

	mu       sync.Mutex
	requests []recordedRequest
	status   int
	body     string
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	ts := &testServer{status: http.StatusOK}
	ts.Server = httptest.NewServer(http.HandlerFunc(ts.handle))
	t.Cleanup(ts.Close)
	return ts
}

func (ts *testServer) handle(w http.ResponseWriter, r *http.Request) {
	rec := recordedRequest{
		Method:   r.Method,
		Path:     r.URL.Path,
		RawQuery: r.URL.RawQuery,
		Header:   r.Header.Clone(),
	}
	if b, _ := io.ReadAll(r.Body); len(b) > 0 {
		_ = json.Unmarshal(b, &rec.Body)
	}

	ts.mu.Lock()
	ts.requests = append(ts.requests, rec)
	status, body := ts.status, ts.body
	ts.mu.Unlock()

	if body == "" {
		switch {
		case r.Method == http.MethodGet && strings.HasSuffix(r.URL.Path, "/rows"):
			body = `{"rows":[{"id":1},{"id":2}],"total":2}`
		case strings.HasSuffix(r.URL.Path, "/preferences"):
			body = `{"meta":{"type":"entry"},"data":{"id":7,"title":"Drafts","table_name":"articles"}}`
		default:
			body = `{"data":{"id":1}}`
		}
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = io.WriteString(w, body)
}

func (ts *testServer) respond(status int, body string) {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	ts.status, ts.body = status, body
}

func (ts *testServer) recorded() []recordedRequest {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	return append([]recordedRequest(nil), ts.requests...)
}

func (ts *testServer) last(t *testing.T) recordedRequest {
	t.Helper()
	reqs := ts.recorded()
	require.NotEmpty(t, reqs)
	return reqs[len(reqs)-1]
}

func newTestClient(t *testing.T, ts *testServer, fs afero.Fs) *Client {
	t.Helper()
	if fs == nil {
		fs = afero.NewMemMapFs()
	}
	c, err := New(Config{BaseURL: ts.URL, AccessToken: "token"},
		WithProcessor(fieldproc.New(
			fieldproc.WithPasswordCost(bcrypt.MinCost),
			fieldproc.WithFileBuilder(file.NewBuilder(fs)),
		)),
	)
	require.NoError(t, err)
	return c
}

func TestNew_Endpoints(t *testing.T) {
	tests := []struct {
		name         string
		cfg          Config
		baseURL      string
		baseEndpoint string
	}{
		{
			name:         "defaults",
			cfg:          Config{AccessToken: "token"},
			baseURL:      "http://localhost",
			baseEndpoint: "http://localhost/api/1",
		},
		{
			name:         "base url",
			cfg:          Config{AccessToken: "token", BaseURL: "http://directus.local/"},
			baseURL:      "http://directus.local",
			baseEndpoint: "http://directus.local/api/1",
		},
		{
			name:         "hosted instance",
			cfg:          Config{AccessToken: "token", InstanceKey: "account--instance", BaseURL: "http://ignored"},
			baseURL:      "https://account--instance.directus.io",
			baseEndpoint: "https://account--instance.directus.io/api/1",
		},
		{
			name:         "version",
			cfg:          Config{AccessToken: "token", BaseURL: "http://directus.local", Version: "2"},
			baseURL:      "http://directus.local",
			baseEndpoint: "http://directus.local/api/2",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := New(tt.cfg)
			require.NoError(t, err)
			assert.Equal(t, tt.baseURL, c.BaseURL())
			assert.Equal(t, tt.baseEndpoint, c.BaseEndpoint())
			assert.Equal(t, "token", c.AccessToken())
			assert.Equal(t, tt.cfg.InstanceKey, c.InstanceKey())
			assert.NotNil(t, c.HTTPClient())
		})
	}
}

func TestNew_InvalidConfig(t *testing.T) {
	tests := []struct {
		name     string
		cfg      Config
		errorMsg string
	}{
		{name: "missing token", cfg: Config{}, errorMsg: "access_token"},
		{name: "bad scheme", cfg: Config{AccessToken: "t", BaseURL: "ftp://x"}, errorMsg: "scheme"},
		{name: "bad auth", cfg: Config{AccessToken: "t", AuthScheme: "digest"}, errorMsg: "auth_scheme"},
		{name: "bad timeout", cfg: Config{AccessToken: "t", Timeout: "soon"}, errorMsg: "timeout"},
		{name: "negative timeout", cfg: Config{AccessToken: "t", Timeout: "-1s"}, errorMsg: "positive"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.cfg)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errorMsg)
		})
	}
}

func TestAuth(t *testing.T) {
	ctx := context.Background()
	ts := newTestServer(t)

	t.Run("basic", func(t *testing.T) {
		c := newTestClient(t, ts, nil)
		_, err := c.GetTables(ctx, nil)
		require.NoError(t, err)

		req := &http.Request{Header: ts.last(t).Header}
		user, pass, ok := req.BasicAuth()
		require.True(t, ok)
		assert.Equal(t, "token", user)
		assert.Empty(t, pass)

		c.SetAccessToken("rotated")
		assert.Equal(t, "rotated", c.AccessToken())
		_, err = c.GetTables(ctx, nil)
		require.NoError(t, err)
		req = &http.Request{Header: ts.last(t).Header}
		user, _, _ = req.BasicAuth()
		assert.Equal(t, "rotated", user)
	})

	t.Run("bearer", func(t *testing.T) {
		c, err := New(Config{BaseURL: ts.URL, AccessToken: "token", AuthScheme: AuthBearer})
		require.NoError(t, err)
		_, err = c.GetTables(ctx, nil)
		require.NoError(t, err)
		assert.Equal(t, "Bearer token", ts.last(t).Header.Get("Authorization"))
	})
}

func TestRequests(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name   string
		call   func(c *Client) (response.Response, error)
		method string
		path   string
		query  string
		body   map[string]any
	}{
		{
			name:   "get tables",
			call:   func(c *Client) (response.Response, error) { return c.GetTables(ctx, nil) },
			method: http.MethodGet,
			path:   "/api/1/tables",
		},
		{
			name:   "get table",
			call:   func(c *Client) (response.Response, error) { return c.GetTable(ctx, "articles") },
			method: http.MethodGet,
			path:   "/api/1/tables/articles",
		},
		{
			name:   "get columns",
			call:   func(c *Client) (response.Response, error) { return c.GetColumns(ctx, "articles", nil) },
			method: http.MethodGet,
			path:   "/api/1/tables/articles/columns",
		},
		{
			name:   "get column",
			call:   func(c *Client) (response.Response, error) { return c.GetColumn(ctx, "articles", "title") },
			method: http.MethodGet,
			path:   "/api/1/tables/articles/columns/title",
		},
		{
			name: "get entries with params",
			call: func(c *Client) (response.Response, error) {
				return c.GetEntries(ctx, "articles", directus.Params{"limit": 10})
			},
			method: http.MethodGet,
			path:   "/api/1/tables/articles/rows",
			query:  "limit=10",
		},
		{
			name:   "get entry",
			call:   func(c *Client) (response.Response, error) { return c.GetEntry(ctx, "articles", 1, nil) },
			method: http.MethodGet,
			path:   "/api/1/tables/articles/rows/1",
		},
		{
			name: "create entry",
			call: func(c *Client) (response.Response, error) {
				return c.CreateEntry(ctx, "articles", map[string]any{"title": "hello"})
			},
			method: http.MethodPost,
			path:   "/api/1/tables/articles/rows",
			body:   map[string]any{"title": "hello"},
		},
		{
			name: "update entry",
			call: func(c *Client) (response.Response, error) {
				return c.UpdateEntry(ctx, "articles", 3, map[string]any{"title": "changed"})
			},
			method: http.MethodPut,
			path:   "/api/1/tables/articles/rows/3",
			body:   map[string]any{"title": "changed"},
		},
		{
			name:   "get users",
			call:   func(c *Client) (response.Response, error) { return c.GetUsers(ctx, nil) },
			method: http.MethodGet,
			path:   "/api/1/tables/directus_users/rows",
		},
		{
			name:   "get user",
			call:   func(c *Client) (response.Response, error) { return c.GetUser(ctx, 1, nil) },
			method: http.MethodGet,
			path:   "/api/1/tables/directus_users/rows/1",
		},
		{
			name:   "get groups",
			call:   func(c *Client) (response.Response, error) { return c.GetGroups(ctx, nil) },
			method: http.MethodGet,
			path:   "/api/1/groups",
		},
		{
			name:   "get group",
			call:   func(c *Client) (response.Response, error) { return c.GetGroup(ctx, 1, nil) },
			method: http.MethodGet,
			path:   "/api/1/groups/1",
		},
		{
			name:   "get group privileges",
			call:   func(c *Client) (response.Response, error) { return c.GetGroupPrivileges(ctx, 1) },
			method: http.MethodGet,
			path:   "/api/1/privileges/1",
		},
		{
			name: "create group",
			call: func(c *Client) (response.Response, error) {
				return c.CreateGroup(ctx, map[string]any{"name": "Editors"})
			},
			method: http.MethodPost,
			path:   "/api/1/groups",
			body:   map[string]any{"name": "Editors"},
		},
		{
			name: "create privileges",
			call: func(c *Client) (response.Response, error) {
				return c.CreatePrivileges(ctx, map[string]any{"group_id": 2, "table_name": "articles"})
			},
			method: http.MethodPost,
			path:   "/api/1/privileges/2",
			body:   map[string]any{"group_id": float64(2), "table_name": "articles"},
		},
		{
			name:   "get files",
			call:   func(c *Client) (response.Response, error) { return c.GetFiles(ctx, nil) },
			method: http.MethodGet,
			path:   "/api/1/files",
		},
		{
			name:   "get file",
			call:   func(c *Client) (response.Response, error) { return c.GetFile(ctx, 1, nil) },
			method: http.MethodGet,
			path:   "/api/1/files/1",
		},
		{
			name: "update file strips managed fields",
			call: func(c *Client) (response.Response, error) {
				return c.UpdateFile(ctx, 1, map[string]any{"title": "logo", "user": 3})
			},
			method: http.MethodPut,
			path:   "/api/1/files/1",
			body:   map[string]any{"title": "logo"},
		},
		{
			name:   "get settings",
			call:   func(c *Client) (response.Response, error) { return c.GetSettings(ctx) },
			method: http.MethodGet,
			path:   "/api/1/settings",
		},
		{
			name:   "get settings by collection",
			call:   func(c *Client) (response.Response, error) { return c.GetSettingsByCollection(ctx, "global") },
			method: http.MethodGet,
			path:   "/api/1/settings/global",
		},
		{
			name:   "get messages",
			call:   func(c *Client) (response.Response, error) { return c.GetMessages(ctx, 1) },
			method: http.MethodGet,
			path:   "/api/1/messages/user/1",
		},
		{
			name:   "get message",
			call:   func(c *Client) (response.Response, error) { return c.GetMessage(ctx, 4) },
			method: http.MethodGet,
			path:   "/api/1/messages/rows/4",
		},
		{
			name:   "get activity",
			call:   func(c *Client) (response.Response, error) { return c.GetActivity(ctx, nil) },
			method: http.MethodGet,
			path:   "/api/1/activity",
		},
		{
			name:   "get bookmarks",
			call:   func(c *Client) (response.Response, error) { return c.GetBookmarks(ctx) },
			method: http.MethodGet,
			path:   "/api/1/bookmarks",
		},
		{
			name:   "get user bookmarks",
			call:   func(c *Client) (response.Response, error) { return c.GetUserBookmarks(ctx, 1) },
			method: http.MethodGet,
			path:   "/api/1/bookmarks/user/1",
		},
		{
			name:   "get preferences",
			call:   func(c *Client) (response.Response, error) { return c.GetPreferences(ctx, "articles", 1) },
			method: http.MethodGet,
			path:   "/api/1/tables/articles/preferences",
			query:  "user=1",
		},
		{
			name: "create preferences",
			call: func(c *Client) (response.Response, error) {
				return c.CreatePreferences(ctx, map[string]any{"title": "Drafts", "table_name": "articles"})
			},
			method: http.MethodPost,
			path:   "/api/1/tables/articles/preferences",
			body:   map[string]any{"title": "Drafts", "table_name": "articles"},
		},
		{
			name: "create table",
			call: func(c *Client) (response.Response, error) {
				return c.CreateTable(ctx, "BlogPosts", nil)
			},
			method: http.MethodPost,
			path:   "/api/1/privileges/1",
			body:   map[string]any{"table_name": "blog_posts", "addTable": true, "group_id": float64(1)},
		},
		{
			name:   "delete table",
			call:   func(c *Client) (response.Response, error) { return c.DeleteTable(ctx, "articles") },
			method: http.MethodDelete,
			path:   "/api/1/tables/articles",
		},
		{
			name: "create column",
			call: func(c *Client) (response.Response, error) {
				return c.CreateColumn(ctx, map[string]any{"table": "articles", "name": "title", "type": "VARCHAR"})
			},
			method: http.MethodPost,
			path:   "/api/1/tables/articles/columns",
			body:   map[string]any{"table_name": "articles", "column_name": "title", "data_type": "VARCHAR"},
		},
		{
			name:   "delete column",
			call:   func(c *Client) (response.Response, error) { return c.DeleteColumn(ctx, "title", "articles") },
			method: http.MethodDelete,
			path:   "/api/1/tables/articles/columns/title",
		},
		{
			name: "create column ui options",
			call: func(c *Client) (response.Response, error) {
				return c.CreateColumnUIOptions(ctx, map[string]any{
					"table":   "articles",
					"column":  "title",
					"ui":      "textinput",
					"options": map[string]any{"size": "large"},
				})
			},
			method: http.MethodPost,
			path:   "/api/1/tables/articles/columns/title/textinput",
			body:   map[string]any{"size": "large"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := newTestServer(t)
			c := newTestClient(t, ts, nil)

			res, err := tt.call(c)
			require.NoError(t, err)
			require.NotNil(t, res)

			req := ts.last(t)
			assert.Equal(t, tt.method, req.Method)
			assert.Equal(t, tt.path, req.Path)
			assert.Equal(t, tt.query, req.RawQuery)
			assert.Equal(t, tt.body, req.Body)
			assert.Equal(t, "application/json", req.Header.Get("Accept"))
		})
	}
}

func TestResponseClassification(t *testing.T) {
	ctx := context.Background()
	ts := newTestServer(t)
	c := newTestClient(t, ts, nil)

	res, err := c.GetEntries(ctx, "articles", nil)
	require.NoError(t, err)
	coll, ok := response.AsCollection(res)
	require.True(t, ok)
	assert.Equal(t, 2, coll.Len())
	assert.Equal(t, map[string]any{"total": float64(2)}, coll.Metadata())

	res, err = c.GetEntry(ctx, "articles", 1, nil)
	require.NoError(t, err)
	entry, ok := response.AsEntry(res)
	require.True(t, ok)
	assert.Equal(t, float64(1), entry.Value("id"))

	ts.respond(http.StatusOK, " ")
	res, err = c.GetEntry(ctx, "articles", 1, nil)
	require.NoError(t, err)
	entry, ok = response.AsEntry(res)
	require.True(t, ok)
	assert.Zero(t, entry.Len())
}

func TestErrors(t *testing.T) {
	ctx := context.Background()

	t.Run("unauthorized", func(t *testing.T) {
		ts := newTestServer(t)
		ts.respond(http.StatusUnauthorized, `{"error":"nope"}`)
		c := newTestClient(t, ts, nil)

		_, err := c.GetEntries(ctx, "articles", directus.Params{"limit": 1})
		require.Error(t, err)
		assert.True(t, errors.Is(err, directus.ErrUnauthorized))
		assert.True(t, directus.IsUnauthorized(err))
		assert.Equal(t, "Unauthorized GET Request to "+ts.URL+"/api/1/tables/articles/rows?limit=1", err.Error())

		var unauthorized *directus.UnauthorizedRequestError
		require.ErrorAs(t, err, &unauthorized)
		assert.Equal(t, http.MethodGet, unauthorized.Method)
	})

	t.Run("other status", func(t *testing.T) {
		ts := newTestServer(t)
		ts.respond(http.StatusInternalServerError, `{"error":"boom"}`)
		c := newTestClient(t, ts, nil)

		_, err := c.CreateEntry(ctx, "articles", map[string]any{"title": "x"})
		require.Error(t, err)
		assert.Equal(t, http.StatusInternalServerError, directus.StatusCode(err))

		var httpErr *directus.HTTPError
		require.ErrorAs(t, err, &httpErr)
		assert.JSONEq(t, `{"error":"boom"}`, string(httpErr.Body))
		assert.False(t, directus.IsUnauthorized(err))
	})

	t.Run("scalar payload", func(t *testing.T) {
		ts := newTestServer(t)
		ts.respond(http.StatusOK, `42`)
		c := newTestClient(t, ts, nil)

		_, err := c.GetTables(ctx, nil)
		assert.ErrorIs(t, err, response.ErrUnexpectedPayload)
	})

	t.Run("validation happens before any request", func(t *testing.T) {
		ts := newTestServer(t)
		c := newTestClient(t, ts, nil)

		_, err := c.CreateMessage(ctx, map[string]any{"from": 1, "message": "hi"})
		assert.ErrorIs(t, err, directus.ErrValidation)

		_, err = c.CreatePreferences(ctx, map[string]any{"title": "x"})
		assert.ErrorIs(t, err, directus.ErrValidation)

		_, err = c.CreateColumn(ctx, map[string]any{"table_name": "articles"})
		assert.ErrorIs(t, err, directus.ErrValidation)

		_, err = c.CreateColumnUIOptions(ctx, map[string]any{"table": "articles", "column": "title", "ui": "x", "options": "bad"})
		assert.ErrorIs(t, err, directus.ErrValidation)

		_, err = c.CreateTable(ctx, "bad name", nil)
		assert.ErrorIs(t, err, directus.ErrValidation)

		_, err = c.CreatePrivileges(ctx, map[string]any{"group_id": 2})
		assert.ErrorIs(t, err, directus.ErrValidation)

		assert.Empty(t, ts.recorded())
	})
}

func TestCreateUser_HashesPassword(t *testing.T) {
	ctx := context.Background()
	ts := newTestServer(t)
	c := newTestClient(t, ts, nil)

	_, err := c.CreateUser(ctx, map[string]any{"id": 5, "email": "admin@example.com", "password": "plain"})
	require.NoError(t, err)

	req := ts.last(t)
	assert.Equal(t, "/api/1/tables/directus_users/rows", req.Path)
	assert.NotContains(t, req.Body, "id")
	hash, ok := req.Body["password"].(string)
	require.True(t, ok)
	assert.NotEqual(t, "plain", hash)
	assert.True(t, fieldproc.VerifyPassword(hash, "plain"))
}

func TestCreateFile(t *testing.T) {
	ctx := context.Background()
	ts := newTestServer(t)

	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/uploads/logo.png", pngHeader, 0o644))
	c := newTestClient(t, ts, fs)

	f := file.New("/uploads/logo.png")
	f.Title = "Logo"
	_, err := c.CreateFile(ctx, f)
	require.NoError(t, err)

	req := ts.last(t)
	assert.Equal(t, http.MethodPost, req.Method)
	assert.Equal(t, "/api/1/files", req.Path)
	assert.Equal(t, "logo.png", req.Body["name"])
	assert.Equal(t, "image/png", req.Body["type"])
	assert.Equal(t, "Logo", req.Body["title"])
	assert.True(t, strings.HasPrefix(req.Body["data"].(string), "data:image/png;base64,"))

	_, err = c.CreateFile(ctx, file.New("/uploads/missing.png"))
	assert.ErrorIs(t, err, file.ErrMissingFile)

	_, err = c.CreateFile(ctx, nil)
	assert.ErrorIs(t, err, file.ErrMissingFile)
}

func TestCreateMessage(t *testing.T) {
	ctx := context.Background()
	ts := newTestServer(t)
	c := newTestClient(t, ts, nil)

	_, err := c.SendMessage(ctx, map[string]any{
		"from":    1,
		"subject": "hello",
		"message": "world",
		"to":      "0_2,1_3",
		"toGroup": "4",
	})
	require.NoError(t, err)

	req := ts.last(t)
	assert.Equal(t, "/api/1/messages/rows", req.Path)
	assert.Equal(t, "0_2,1_3,1_4", req.Body["recipients"])
	assert.NotContains(t, req.Body, "to")
	assert.NotContains(t, req.Body, "toGroup")
	assert.Equal(t, "hello", req.Body["subject"])
}

func TestDelete(t *testing.T) {
	ctx := context.Background()

	t.Run("single request", func(t *testing.T) {
		ts := newTestServer(t)
		c := newTestClient(t, ts, nil)

		entry := response.NewEntry(map[string]any{"id": 4}, nil)
		n, err := c.DeleteEntry(ctx, "articles", entry)
		require.NoError(t, err)
		assert.Equal(t, 1, n)

		req := ts.last(t)
		assert.Equal(t, http.MethodDelete, req.Method)
		assert.Equal(t, "/api/1/tables/articles/rows/4", req.Path)
		assert.Len(t, ts.recorded(), 1)
	})

	t.Run("multiple ids rejected", func(t *testing.T) {
		ts := newTestServer(t)
		c := newTestClient(t, ts, nil)

		tests := []struct {
			name string
			call func() (int, error)
		}{
			{name: "entries", call: func() (int, error) { return c.DeleteEntry(ctx, "articles", []int{1, 2, 3}) }},
			{name: "users", call: func() (int, error) { return c.DeleteUser(ctx, 1, 2) }},
			{name: "files", call: func() (int, error) { return c.DeleteFile(ctx, "5,6") }},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				n, err := tt.call()
				assert.ErrorIs(t, err, directus.ErrValidation)
				assert.Zero(t, n)
			})
		}
		assert.Empty(t, ts.recorded())
	})

	t.Run("no ids", func(t *testing.T) {
		ts := newTestServer(t)
		c := newTestClient(t, ts, nil)

		n, err := c.DeleteEntry(ctx, "articles")
		require.NoError(t, err)
		assert.Zero(t, n)
		assert.Empty(t, ts.recorded())
	})

	t.Run("error propagated", func(t *testing.T) {
		ts := newTestServer(t)
		ts.respond(http.StatusNotFound, `{"error":"missing"}`)
		c := newTestClient(t, ts, nil)

		n, err := c.DeleteUser(ctx, 1)
		assert.Equal(t, http.StatusNotFound, directus.StatusCode(err))
		assert.Zero(t, n)
	})

	t.Run("other collections", func(t *testing.T) {
		ts := newTestServer(t)
		c := newTestClient(t, ts, nil)

		_, err := c.DeleteFile(ctx, "5")
		require.NoError(t, err)
		_, err = c.DeleteGroup(ctx, 2)
		require.NoError(t, err)
		_, err = c.DeleteBookmark(ctx, 3)
		require.NoError(t, err)

		var paths []string
		for _, r := range ts.recorded() {
			paths = append(paths, r.Path)
		}
		assert.Equal(t, []string{"/api/1/files/5", "/api/1/groups/2", "/api/1/bookmarks/3"}, paths)
	})
}

func TestCreateBookmark(t *testing.T) {
	ctx := context.Background()
	ts := newTestServer(t)
	c := newTestClient(t, ts, nil)

	_, err := c.CreateBookmark(ctx, map[string]any{
		"title":      "Drafts",
		"table_name": "articles",
		"status":     "2",
		"icon_class": "ignored",
	})
	require.NoError(t, err)

	reqs := ts.recorded()
	require.Len(t, reqs, 2)

	assert.Equal(t, "/api/1/tables/articles/preferences", reqs[0].Path)
	assert.Equal(t, map[string]any{"title": "Drafts", "table_name": "articles", "status": "2"}, reqs[0].Body)

	assert.Equal(t, "/api/1/bookmarks", reqs[1].Path)
	assert.Equal(t, map[string]any{
		"section": "search",
		"title":   "Drafts",
		"url":     "tables/articles/pref/Drafts",
	}, reqs[1].Body)
}

func TestEncodeParams(t *testing.T) {
	got := EncodeParams(directus.Params{
		"filters": map[string]any{"title": map[string]any{"eq": "hello world"}},
		"columns": []string{"id", "title"},
		"limit":   10,
		"active":  true,
		"ratio":   float64(2),
		"skip":    nil,
	})

	want := url.Values{
		"filters[title][eq]": {"hello world"},
		"columns[0]":         {"id"},
		"columns[1]":         {"title"},
		"limit":              {"10"},
		"active":             {"1"},
		"ratio":              {"2"},
	}.Encode()
	assert.Equal(t, want, got)
	assert.Empty(t, EncodeParams(nil))
}
