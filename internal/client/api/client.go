// Package api is the single boundary between the client and the remote
// service. Every remote call goes through Client; nothing else in the
// client constructs requests or auth headers.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"itemvault/internal/client/models"
	"itemvault/internal/client/session"
	"itemvault/internal/common"
	"itemvault/internal/logging"
)

// Client defines the remote operations the controller consumes. The real
// implementation is HTTPClient; tests substitute fakes.
type Client interface {
	// Login authenticates with email/password. On success the returned
	// token is stored and the embedded user returned. Fails with *AuthError
	// on a non-2xx response.
	Login(ctx context.Context, email, password string) (*models.User, error)

	// Signup registers a new account. Same contract as Login.
	Signup(ctx context.Context, name, email, password string) (*models.User, error)

	// Logout clears the stored token. It never touches the network and has
	// no network failure mode.
	Logout(ctx context.Context) error

	// CurrentUser resolves the stored token to a user. With no token it
	// returns (nil, nil) without a network call. On 401 or any other
	// failure it clears the token and returns (nil, nil); it never
	// surfaces an error.
	CurrentUser(ctx context.Context) (*models.User, error)

	// Items lists the user's items. Fails with *RequestError on non-2xx.
	Items(ctx context.Context) ([]models.Item, error)

	// CreateItem posts a draft; the server assigns id, owner, and
	// createdAt. Fails with *RequestError on non-2xx.
	CreateItem(ctx context.Context, draft models.Draft) (*models.Item, error)

	// UpdateItem replaces the name/description of an existing item and
	// returns the server's updated representation. Fails with
	// *RequestError on non-2xx, including 404.
	UpdateItem(ctx context.Context, id string, draft models.Draft) (*models.Item, error)

	// DeleteItem removes an item. Fails with *RequestError on non-2xx.
	DeleteItem(ctx context.Context, id string) error

	// AuthRedirectURL builds the URL a browser should visit to start the
	// OAuth flow. The server redirects back to redirectURI with a token
	// query parameter.
	AuthRedirectURL(redirectURI string) string
}

// HTTPClient talks JSON over HTTP to the itemvault server.
type HTTPClient struct {
	baseURL string
	http    *http.Client
	tokens  session.Store
	log     logging.Logger
}

// New constructs an HTTPClient. The token store is injected so tests can
// substitute an in-memory one; the gateway owns all reads and writes of it
// during requests. A nil logger discards output.
func New(baseURL string, tokens session.Store, log logging.Logger) *HTTPClient {
	if log == nil {
		log = logging.Discard()
	}
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{},
		tokens:  tokens,
		log:     log,
	}
}

// authPayload is the body of a successful login or signup response.
type authPayload struct {
	Token string      `json:"token"`
	User  models.User `json:"user"`
}

// errorPayload is the body the server sends with a non-2xx status.
type errorPayload struct {
	Message string `json:"message"`
}

func (c *HTTPClient) Login(ctx context.Context, email, password string) (*models.User, error) {
	body := map[string]string{"email": email, "password": password}
	return c.authenticate(ctx, "/login", body)
}

func (c *HTTPClient) Signup(ctx context.Context, name, email, password string) (*models.User, error) {
	body := map[string]string{"name": name, "email": email, "password": password}
	return c.authenticate(ctx, "/signup", body)
}

func (c *HTTPClient) authenticate(ctx context.Context, path string, body any) (*models.User, error) {
	resp, err := c.do(ctx, http.MethodPost, path, body, false)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &AuthError{Status: resp.StatusCode, Message: readMessage(resp)}
	}

	var payload authPayload
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode auth response: %w", err)
	}
	if err := c.tokens.Set(payload.Token); err != nil {
		return nil, fmt.Errorf("store token: %w", err)
	}
	return &payload.User, nil
}

// Logout is local-only: it drops the stored token and deliberately does not
// block on the server.
func (c *HTTPClient) Logout(ctx context.Context) error {
	return c.tokens.Clear()
}

func (c *HTTPClient) CurrentUser(ctx context.Context) (*models.User, error) {
	if _, ok := c.tokens.Get(); !ok {
		return nil, nil
	}

	resp, err := c.do(ctx, http.MethodGet, "/user", nil, true)
	if err != nil {
		// Transport failure: degrade to "not logged in" and drop the token
		// so the next start does not repeat the doomed lookup.
		c.log.Warn(ctx, "current-user check failed", "err", err)
		_ = c.tokens.Clear()
		return nil, nil
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		_ = c.tokens.Clear()
		return nil, nil
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.log.Warn(ctx, "current-user check failed", "status", resp.StatusCode)
		_ = c.tokens.Clear()
		return nil, nil
	}

	var user models.User
	if err := json.NewDecoder(resp.Body).Decode(&user); err != nil {
		c.log.Warn(ctx, "current-user body malformed", "err", err)
		_ = c.tokens.Clear()
		return nil, nil
	}
	return &user, nil
}

func (c *HTTPClient) Items(ctx context.Context) ([]models.Item, error) {
	resp, err := c.do(ctx, http.MethodGet, "/items", nil, true)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &RequestError{Status: resp.StatusCode, Message: readMessage(resp)}
	}

	var items []models.Item
	if err := json.NewDecoder(resp.Body).Decode(&items); err != nil {
		return nil, fmt.Errorf("decode items: %w", err)
	}
	return items, nil
}

func (c *HTTPClient) CreateItem(ctx context.Context, draft models.Draft) (*models.Item, error) {
	return c.writeItem(ctx, http.MethodPost, "/items", draft)
}

func (c *HTTPClient) UpdateItem(ctx context.Context, id string, draft models.Draft) (*models.Item, error) {
	return c.writeItem(ctx, http.MethodPut, "/items/"+url.PathEscape(id), draft)
}

func (c *HTTPClient) writeItem(ctx context.Context, method, path string, draft models.Draft) (*models.Item, error) {
	resp, err := c.do(ctx, method, path, draft, true)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &RequestError{Status: resp.StatusCode, Message: readMessage(resp)}
	}

	var item models.Item
	if err := json.NewDecoder(resp.Body).Decode(&item); err != nil {
		return nil, fmt.Errorf("decode item: %w", err)
	}
	return &item, nil
}

// DeleteItem checks the response status. The web client this replaces fired
// the request and ignored the outcome; a failed delete now surfaces as a
// *RequestError so the controller can report it.
func (c *HTTPClient) DeleteItem(ctx context.Context, id string) error {
	resp, err := c.do(ctx, http.MethodDelete, "/items/"+url.PathEscape(id), nil, true)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &RequestError{Status: resp.StatusCode, Message: readMessage(resp)}
	}
	return nil
}

func (c *HTTPClient) AuthRedirectURL(redirectURI string) string {
	return c.baseURL + "/auth/google/login?redirect_uri=" + url.QueryEscape(redirectURI)
}

// do performs one round trip. Auth header attachment is centralized here;
// no caller builds its own headers.
func (c *HTTPClient) do(ctx context.Context, method, path string, body any, withAuth bool) (*http.Response, error) {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshal request: %w", err)
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if withAuth {
		if token, ok := c.tokens.Get(); ok {
			req.Header.Set(common.AuthHeaderName, common.AuthScheme+" "+token)
		}
	}

	c.log.Debug(ctx, "request", "method", method, "path", path)
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	return resp, nil
}

// readMessage extracts the server-supplied message from an error response,
// falling back to a generic status-coded message when the body has none.
func readMessage(resp *http.Response) string {
	var payload errorPayload
	if err := json.NewDecoder(resp.Body).Decode(&payload); err == nil && payload.Message != "" {
		return payload.Message
	}
	return fmt.Sprintf("request failed with status %d", resp.StatusCode)
}
