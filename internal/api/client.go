package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"

	"notesflow-cli/internal/session"

	"github.com/google/uuid"
)

// DefaultBaseURL matches the backend's development default.
const DefaultBaseURL = "http://localhost:5000/api"

// envelope is the uniform wrapper every backend endpoint returns.
type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message,omitempty"`
	Detail  string          `json:"detail,omitempty"` // error responses use detail instead of message
	Data    json.RawMessage `json:"data,omitempty"`
	Errors  []FieldError    `json:"errors,omitempty"`
}

func (e *envelope) errorMessage() string {
	if strings.TrimSpace(e.Detail) != "" {
		return e.Detail
	}
	return e.Message
}

// Client is the single chokepoint for backend calls. It attaches the session
// bearer token, decodes the response envelope, and maps every failure to
// *Error. A 401 clears the session and fires OnUnauthorized before the error
// is returned, so call sites never implement their own 401 handling.
type Client struct {
	BaseURL string
	HTTP    *http.Client

	// OnUnauthorized runs after a 401 has cleared the session. The TUI swaps
	// to the login screen here; the web view issues the redirect.
	OnUnauthorized func()

	sess *session.Store

	Auth    *AuthClient
	Notes   *NotesClient
	Tasks   *TasksClient
	Profile *ProfileClient
	Share   *ShareClient
}

func New(baseURL string, sess *session.Store) *Client {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	c := &Client{
		BaseURL: baseURL,
		HTTP:    &http.Client{},
		sess:    sess,
	}
	c.Auth = &AuthClient{c: c}
	c.Notes = &NotesClient{c: c}
	c.Tasks = &TasksClient{c: c}
	c.Profile = &ProfileClient{c: c}
	c.Share = &ShareClient{c: c}
	return c
}

// Session exposes the injected session store (for views that need identity).
func (c *Client) Session() *session.Store { return c.sess }

func isMutating(method string) bool {
	switch method {
	case http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete:
		return true
	}
	return false
}

// do performs one request/response round trip. out, when non-nil, receives
// the envelope's data payload. The returned string is the envelope's
// success message (used for toasts).
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body any, out any) (string, error) {
	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return "", fmt.Errorf("encode request: %w", err)
		}
		rd = bytes.NewReader(b)
	}

	u := c.BaseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, u, rd)
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if isMutating(method) {
		// Lets the backend deduplicate rapid-fire immediate-mode writes that
		// race at the network layer.
		req.Header.Set("Idempotency-Key", uuid.NewString())
	}
	return c.roundTrip(req, out)
}

func (c *Client) roundTrip(req *http.Request, out any) (string, error) {
	if tok := c.sess.Token(); tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return "", &Error{Status: 0, Message: "network error: " + err.Error()}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &Error{Status: 0, Message: "network error: " + err.Error()}
	}

	var env envelope
	parseErr := json.Unmarshal(raw, &env)

	if resp.StatusCode == http.StatusUnauthorized {
		// Forced logout: clear first so the hook observes a clean session.
		_ = c.sess.ClearSession()
		if c.OnUnauthorized != nil {
			c.OnUnauthorized()
		}
		msg := "unauthorized"
		if parseErr == nil && env.errorMessage() != "" {
			msg = env.errorMessage()
		}
		return "", &Error{Status: http.StatusUnauthorized, Message: msg}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg := http.StatusText(resp.StatusCode)
		var fields []FieldError
		if parseErr == nil {
			if m := env.errorMessage(); m != "" {
				msg = m
			}
			fields = env.Errors
		}
		return "", &Error{Status: resp.StatusCode, Message: msg, Errors: fields}
	}

	// A response arrived but its body is not the envelope we expect. Keep the
	// HTTP status so this is never mistaken for a transport failure.
	if parseErr != nil {
		return "", &Error{Status: resp.StatusCode, Message: "invalid response from server"}
	}

	if out != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return "", &Error{Status: resp.StatusCode, Message: "invalid response from server"}
		}
	}
	return env.Message, nil
}

// upload sends a single file as multipart form data (bearer-authenticated).
func (c *Client) upload(ctx context.Context, path, filename string, file io.Reader, out any) (string, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", filename)
	if err != nil {
		return "", fmt.Errorf("build upload: %w", err)
	}
	if _, err := io.Copy(fw, file); err != nil {
		return "", fmt.Errorf("read upload: %w", err)
	}
	if err := mw.Close(); err != nil {
		return "", fmt.Errorf("build upload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+path, &buf)
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Idempotency-Key", uuid.NewString())
	return c.roundTrip(req, out)
}
