// Package remote implements the Directus client over the REST API.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/hashicorp/go-hclog"

	"github.com/directus/directus-sdk-go/pkg/directus"
	"github.com/directus/directus-sdk-go/pkg/endpoint"
	"github.com/directus/directus-sdk-go/pkg/fieldproc"
	"github.com/directus/directus-sdk-go/pkg/response"
)

// Client talks to a Directus server.
type Client struct {
	baseURL      string
	baseEndpoint string
	instanceKey  string
	version      string
	authScheme   string

	mu          sync.RWMutex
	accessToken string
	httpClient  *http.Client

	processor *fieldproc.Processor
	logger    hclog.Logger
}

var _ directus.Requests = (*Client)(nil)

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the HTTP client built from the configuration.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithLogger sets the logger.
func WithLogger(log hclog.Logger) Option {
	return func(c *Client) {
		c.logger = log
	}
}

// WithProcessor sets the field processor applied to outgoing data.
func WithProcessor(p *fieldproc.Processor) Option {
	return func(c *Client) {
		c.processor = p
	}
}

// New creates a remote client.
func New(cfg Config, opts ...Option) (*Client, error) {
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid remote config: %w", err)
	}

	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	if cfg.InstanceKey != "" {
		baseURL = fmt.Sprintf(HostedBaseURLFormat, cfg.InstanceKey)
	}

	c := &Client{
		baseURL:      baseURL,
		baseEndpoint: baseURL + "/api/" + cfg.Version,
		instanceKey:  cfg.InstanceKey,
		version:      cfg.Version,
		authScheme:   cfg.AuthScheme,
		accessToken:  cfg.AccessToken,
	}
	for _, opt := range opts {
		opt(c)
	}

	if c.logger == nil {
		c.logger = hclog.NewNullLogger()
	}
	c.logger = c.logger.Named("remote")
	if c.httpClient == nil {
		c.httpClient = cfg.NewHTTPClient()
	}
	if c.processor == nil {
		var popts []fieldproc.Option
		if cfg.PasswordCost > 0 {
			popts = append(popts, fieldproc.WithPasswordCost(cfg.PasswordCost))
		}
		popts = append(popts, fieldproc.WithLogger(c.logger))
		c.processor = fieldproc.New(popts...)
	}

	return c, nil
}

// BaseURL returns the server root URL.
func (c *Client) BaseURL() string { return c.baseURL }

// BaseEndpoint returns the URL every request path is relative to.
func (c *Client) BaseEndpoint() string { return c.baseEndpoint }

// APIVersion returns the API version segment.
func (c *Client) APIVersion() string { return c.version }

// InstanceKey returns the hosted instance key, if any.
func (c *Client) InstanceKey() string { return c.instanceKey }

// AccessToken returns the token sent with every request.
func (c *Client) AccessToken() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.accessToken
}

// SetAccessToken replaces the access token.
func (c *Client) SetAccessToken(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.accessToken = token
}

// HTTPClient returns the HTTP client in use.
func (c *Client) HTTPClient() *http.Client {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.httpClient
}

// SetHTTPClient replaces the HTTP client.
func (c *Client) SetHTTPClient(hc *http.Client) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.httpClient = hc
}

// Processor returns the field processor applied to outgoing data.
func (c *Client) Processor() *fieldproc.Processor {
	return c.processor
}

// URL returns the absolute URL of path with params as query string.
func (c *Client) URL(path string, params directus.Params) string {
	u := c.baseEndpoint + "/" + strings.TrimPrefix(path, "/")
	if q := EncodeParams(params); q != "" {
		u += "?" + q
	}
	return u
}

// request builds the path from template and values and performs the call.
func (c *Client) request(ctx context.Context, method, template string, values []any, params directus.Params, body map[string]any) (response.Response, error) {
	path, err := endpoint.BuildPath(template, values...)
	if err != nil {
		return nil, err
	}
	return c.doRequest(ctx, method, path, params, body)
}

// doRequest performs one HTTP request and classifies the decoded body.
func (c *Client) doRequest(ctx context.Context, method, path string, params directus.Params, body map[string]any) (response.Response, error) {
	reqURL := c.URL(path, params)

	var bodyReader io.Reader
	if (method == http.MethodPost || method == http.MethodPut) && len(body) > 0 {
		bodyBytes, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
		bodyReader = bytes.NewReader(bodyBytes)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	token := c.AccessToken()
	switch c.authScheme {
	case AuthBearer:
		req.Header.Set("Authorization", "Bearer "+token)
	default:
		req.SetBasicAuth(token, "")
	}
	req.Header.Set("Accept", "application/json")
	if bodyReader != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.HTTPClient().Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	c.logger.Debug("request",
		"method", method,
		"url", reqURL,
		"status", resp.StatusCode,
		"elapsed", time.Since(start))

	if resp.StatusCode == http.StatusUnauthorized {
		return nil, &directus.UnauthorizedRequestError{Method: method, URL: reqURL}
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &directus.HTTPError{
			Method:     method,
			URL:        reqURL,
			StatusCode: resp.StatusCode,
			Body:       respBody,
		}
	}

	res, err := response.Decode(respBody)
	if err != nil {
		return nil, fmt.Errorf("failed to decode response of %s %s: %w", method, reqURL, err)
	}
	return res, nil
}

// EncodeParams renders params as a query string. Nested maps and slices use
// the bracket form, e.g. filters[title][eq]=x and columns[0]=id.
func EncodeParams(params directus.Params) string {
	if len(params) == 0 {
		return ""
	}
	values := url.Values{}
	for key, value := range params {
		encodeParam(values, key, value)
	}
	return values.Encode()
}

func encodeParam(values url.Values, key string, value any) {
	switch t := value.(type) {
	case nil:
		return
	case directus.Params:
		encodeParam(values, key, map[string]any(t))
	case map[string]any:
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			encodeParam(values, key+"["+k+"]", t[k])
		}
	case []any:
		for i, item := range t {
			encodeParam(values, key+"["+strconv.Itoa(i)+"]", item)
		}
	case []string:
		for i, item := range t {
			values.Add(key+"["+strconv.Itoa(i)+"]", item)
		}
	case []int:
		for i, item := range t {
			values.Add(key+"["+strconv.Itoa(i)+"]", strconv.Itoa(item))
		}
	default:
		values.Add(key, formatValue(t))
	}
}

func formatValue(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case bool:
		if t {
			return "1"
		}
		return "0"
	case float64:
		if t == float64(int64(t)) {
			return strconv.FormatInt(int64(t), 10)
		}
		return strconv.FormatFloat(t, 'f', -1, 64)
	default:
		return fmt.Sprint(t)
	}
}

// Close releases idle connections of the HTTP client.
func (c *Client) Close() error {
	c.HTTPClient().CloseIdleConnections()
	return nil
}
