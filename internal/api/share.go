package api

import (
	"context"
	"net/http"
	"net/url"

	"notesflow-cli/internal/model"
)

// ShareClient reads public share projections. These endpoints are the only
// ones a logged-out client can use; they never expose owner-only mutations.
type ShareClient struct {
	c *Client
}

// Get resolves a share token to its type-tagged read-only projection.
func (s *ShareClient) Get(ctx context.Context, token string) (*model.SharedItem, error) {
	var item model.SharedItem
	if _, err := s.c.do(ctx, http.MethodGet, "/share/"+url.PathEscape(token), nil, nil, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

// GetNote resolves a token known to belong to a note.
func (s *ShareClient) GetNote(ctx context.Context, token string) (*model.SharedItem, error) {
	var item model.SharedItem
	if _, err := s.c.do(ctx, http.MethodGet, "/share/note/"+url.PathEscape(token), nil, nil, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

// GetTask resolves a token known to belong to a task.
func (s *ShareClient) GetTask(ctx context.Context, token string) (*model.SharedItem, error) {
	var item model.SharedItem
	if _, err := s.c.do(ctx, http.MethodGet, "/share/task/"+url.PathEscape(token), nil, nil, &item); err != nil {
		return nil, err
	}
	return &item, nil
}
