package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"notesflow-cli/internal/model"
)

type NotesClient struct {
	c *Client
}

// NoteUpdate is a partial update; nil fields are left untouched server-side.
type NoteUpdate struct {
	Title           *string `json:"title,omitempty"`
	Content         *string `json:"content,omitempty"`
	BackgroundColor *string `json:"background_color,omitempty"`
	IsPinned        *bool   `json:"is_pinned,omitempty"`
}

// ShareLink is the response to creating a share link.
type ShareLink struct {
	ShareToken string  `json:"share_token"`
	ShareURL   string  `json:"share_url"`
	ExpiresAt  *string `json:"expires_at"`
}

func filterQuery(filters map[string]string) url.Values {
	if len(filters) == 0 {
		return nil
	}
	q := url.Values{}
	for k, v := range filters {
		q.Set(k, v)
	}
	return q
}

func (n *NotesClient) List(ctx context.Context, filters map[string]string) ([]model.Note, error) {
	var data struct {
		Notes []model.Note `json:"notes"`
		Total int          `json:"total"`
	}
	if _, err := n.c.do(ctx, http.MethodGet, "/notes", filterQuery(filters), nil, &data); err != nil {
		return nil, err
	}
	return data.Notes, nil
}

func (n *NotesClient) Get(ctx context.Context, id int64) (*model.Note, error) {
	var note model.Note
	if _, err := n.c.do(ctx, http.MethodGet, notePath(id), nil, nil, &note); err != nil {
		return nil, err
	}
	return &note, nil
}

func (n *NotesClient) Create(ctx context.Context, title, content, backgroundColor string) (*model.Note, error) {
	if err := model.ValidateTitle(title); err != nil {
		return nil, err
	}
	body := map[string]any{"title": title, "content": content}
	if backgroundColor != "" {
		body["background_color"] = backgroundColor
	}
	var note model.Note
	if _, err := n.c.do(ctx, http.MethodPost, "/notes", nil, body, &note); err != nil {
		return nil, err
	}
	return &note, nil
}

func (n *NotesClient) Update(ctx context.Context, id int64, upd NoteUpdate) (*model.Note, error) {
	var note model.Note
	if _, err := n.c.do(ctx, http.MethodPut, notePath(id), nil, upd, &note); err != nil {
		return nil, err
	}
	return &note, nil
}

func (n *NotesClient) Delete(ctx context.Context, id int64) error {
	_, err := n.c.do(ctx, http.MethodDelete, notePath(id), nil, nil, nil)
	return err
}

// TogglePin flips the pinned flag server-side and returns the updated note.
// Kept as a narrow call so a pin click never waits on a full-record PUT.
func (n *NotesClient) TogglePin(ctx context.Context, id int64) (*model.Note, error) {
	var note model.Note
	if _, err := n.c.do(ctx, http.MethodPut, notePath(id)+"/pin", nil, nil, &note); err != nil {
		return nil, err
	}
	return &note, nil
}

func (n *NotesClient) SetColor(ctx context.Context, id int64, color string) (*model.Note, error) {
	var note model.Note
	body := map[string]string{"color": color}
	if _, err := n.c.do(ctx, http.MethodPut, notePath(id)+"/color", nil, body, &note); err != nil {
		return nil, err
	}
	return &note, nil
}

// CreateShareLink mints a public read-only token. expiresInDays <= 0 means no
// expiry.
func (n *NotesClient) CreateShareLink(ctx context.Context, id int64, expiresInDays int) (*ShareLink, error) {
	var q url.Values
	if expiresInDays > 0 {
		q = url.Values{"expires_in_days": {strconv.Itoa(expiresInDays)}}
	}
	var link ShareLink
	if _, err := n.c.do(ctx, http.MethodPost, notePath(id)+"/share", q, nil, &link); err != nil {
		return nil, err
	}
	return &link, nil
}

func (n *NotesClient) RevokeShareLink(ctx context.Context, id int64) error {
	_, err := n.c.do(ctx, http.MethodDelete, notePath(id)+"/share", nil, nil, nil)
	return err
}

func notePath(id int64) string { return fmt.Sprintf("/notes/%d", id) }
