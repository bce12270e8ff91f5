package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"notesflow-cli/internal/model"
)

type TasksClient struct {
	c *Client
}

// TaskCreate carries the optional fields accepted on creation.
type TaskCreate struct {
	Title           string          `json:"title"`
	Description     string          `json:"description,omitempty"`
	Status          model.Status    `json:"status,omitempty"`
	Priority        model.Priority  `json:"priority,omitempty"`
	DueDate         *time.Time      `json:"due_date,omitempty"`
	BackgroundColor string          `json:"background_color,omitempty"`
}

// TaskUpdate is a partial update; nil fields are left untouched server-side.
type TaskUpdate struct {
	Title           *string         `json:"title,omitempty"`
	Description     *string         `json:"description,omitempty"`
	Status          *model.Status   `json:"status,omitempty"`
	Priority        *model.Priority `json:"priority,omitempty"`
	DueDate         *time.Time      `json:"due_date,omitempty"`
	BackgroundColor *string         `json:"background_color,omitempty"`
	IsPinned        *bool           `json:"is_pinned,omitempty"`
}

func (t *TasksClient) List(ctx context.Context, filters map[string]string) ([]model.Task, error) {
	var data struct {
		Tasks []model.Task `json:"tasks"`
		Total int          `json:"total"`
	}
	if _, err := t.c.do(ctx, http.MethodGet, "/tasks", filterQuery(filters), nil, &data); err != nil {
		return nil, err
	}
	return data.Tasks, nil
}

// Stats fetches the server-computed per-status aggregate.
func (t *TasksClient) Stats(ctx context.Context) (model.TaskStats, error) {
	var data struct {
		StatusCounts model.TaskStats `json:"statusCounts"`
	}
	if _, err := t.c.do(ctx, http.MethodGet, "/tasks/stats", nil, nil, &data); err != nil {
		return model.TaskStats{}, err
	}
	return data.StatusCounts, nil
}

func (t *TasksClient) Get(ctx context.Context, id int64) (*model.Task, error) {
	var task model.Task
	if _, err := t.c.do(ctx, http.MethodGet, taskPath(id), nil, nil, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

func (t *TasksClient) Create(ctx context.Context, in TaskCreate) (*model.Task, error) {
	if err := model.ValidateTitle(in.Title); err != nil {
		return nil, err
	}
	var task model.Task
	if _, err := t.c.do(ctx, http.MethodPost, "/tasks", nil, in, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

func (t *TasksClient) Update(ctx context.Context, id int64, upd TaskUpdate) (*model.Task, error) {
	var task model.Task
	if _, err := t.c.do(ctx, http.MethodPut, taskPath(id), nil, upd, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

func (t *TasksClient) Delete(ctx context.Context, id int64) error {
	_, err := t.c.do(ctx, http.MethodDelete, taskPath(id), nil, nil, nil)
	return err
}

func (t *TasksClient) TogglePin(ctx context.Context, id int64) (*model.Task, error) {
	var task model.Task
	if _, err := t.c.do(ctx, http.MethodPut, taskPath(id)+"/pin", nil, nil, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

func (t *TasksClient) SetColor(ctx context.Context, id int64, color string) (*model.Task, error) {
	var task model.Task
	body := map[string]string{"color": color}
	if _, err := t.c.do(ctx, http.MethodPut, taskPath(id)+"/color", nil, body, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

func (t *TasksClient) CreateShareLink(ctx context.Context, id int64, expiresInDays int) (*ShareLink, error) {
	var q url.Values
	if expiresInDays > 0 {
		q = url.Values{"expires_in_days": {strconv.Itoa(expiresInDays)}}
	}
	var link ShareLink
	if _, err := t.c.do(ctx, http.MethodPost, taskPath(id)+"/share", q, nil, &link); err != nil {
		return nil, err
	}
	return &link, nil
}

func (t *TasksClient) RevokeShareLink(ctx context.Context, id int64) error {
	_, err := t.c.do(ctx, http.MethodDelete, taskPath(id)+"/share", nil, nil, nil)
	return err
}

func taskPath(id int64) string { return fmt.Sprintf("/tasks/%d", id) }
