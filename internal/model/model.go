package model

import (
	"sort"
	"time"
)

type Status string

const (
	StatusPending    Status = "pending"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
)

// Next returns the status one click forward in the cycle
// pending -> in_progress -> completed -> pending.
// Unknown values reset to pending.
func (s Status) Next() Status {
	switch s {
	case StatusPending:
		return StatusInProgress
	case StatusInProgress:
		return StatusCompleted
	case StatusCompleted:
		return StatusPending
	default:
		return StatusPending
	}
}

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusInProgress, StatusCompleted:
		return true
	}
	return false
}

func (s Status) Label() string {
	switch s {
	case StatusPending:
		return "Pending"
	case StatusInProgress:
		return "In Progress"
	case StatusCompleted:
		return "Completed"
	default:
		return string(s)
	}
}

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

type User struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

type Note struct {
	ID              int64      `json:"id"`
	UserID          int64      `json:"user_id"`
	Title           string     `json:"title"`
	Content         string     `json:"content"`
	BackgroundColor string     `json:"background_color"`
	IsPinned        bool       `json:"is_pinned"`
	ShareToken      *string    `json:"share_token"`
	ShareExpiresAt  *time.Time `json:"share_expires_at"`
	IsPublic        bool       `json:"is_public"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

type Task struct {
	ID              int64      `json:"id"`
	UserID          int64      `json:"user_id"`
	Title           string     `json:"title"`
	Description     string     `json:"description"`
	Status          Status     `json:"status"`
	Priority        Priority   `json:"priority"`
	DueDate         *time.Time `json:"due_date"`
	BackgroundColor string     `json:"background_color"`
	IsPinned        bool       `json:"is_pinned"`
	ShareToken      *string    `json:"share_token"`
	ShareExpiresAt  *time.Time `json:"share_expires_at"`
	IsPublic        bool       `json:"is_public"`
	CompletedAt     *time.Time `json:"completed_at"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

// TaskStats mirrors the server's per-status aggregate. The client keeps an
// incremental copy that is adjusted synchronously on every optimistic status
// change (see internal/state), independent of the next full refetch.
type TaskStats struct {
	Pending    int `json:"pending"`
	InProgress int `json:"in_progress"`
	Completed  int `json:"completed"`
}

func (s TaskStats) Total() int { return s.Pending + s.InProgress + s.Completed }

func (s TaskStats) Count(st Status) int {
	switch st {
	case StatusPending:
		return s.Pending
	case StatusInProgress:
		return s.InProgress
	case StatusCompleted:
		return s.Completed
	}
	return 0
}

type UserProfile struct {
	ID            int64   `json:"id"`
	UserID        int64   `json:"user_id"`
	AvatarURL     *string `json:"avatar_url"`
	CoverPhotoURL *string `json:"cover_photo_url"`
	DisplayName   *string `json:"display_name"`
	Bio           *string `json:"bio"`
	LinkedinURL   *string `json:"linkedin_url"`
	GithubURL     *string `json:"github_url"`
	TwitterURL    *string `json:"twitter_url"`
	WebsiteURL    *string `json:"website_url"`
}

type SharedItemType string

const (
	SharedNote SharedItemType = "note"
	SharedTask SharedItemType = "task"
)

// SharedItem is the read-only projection returned by GET /share/{token}.
// The note-ish (Content) and task-ish (Description/Status/Priority) fields
// are discriminated by Type; a share token resolves to exactly one of them.
type SharedItem struct {
	Type            SharedItemType `json:"type"`
	Title           string         `json:"title"`
	Content         string         `json:"content,omitempty"`
	Description     string         `json:"description,omitempty"`
	Status          Status         `json:"status,omitempty"`
	Priority        Priority       `json:"priority,omitempty"`
	BackgroundColor string         `json:"background_color"`
	CreatedAt       time.Time      `json:"created_at"`
}

// SortNotes orders pinned notes first, then most recently updated.
func SortNotes(notes []Note) {
	sort.SliceStable(notes, func(i, j int) bool {
		if notes[i].IsPinned != notes[j].IsPinned {
			return notes[i].IsPinned
		}
		return notes[i].UpdatedAt.After(notes[j].UpdatedAt)
	})
}

// SortTasks orders pinned tasks first, then most recently updated.
func SortTasks(tasks []Task) {
	sort.SliceStable(tasks, func(i, j int) bool {
		if tasks[i].IsPinned != tasks[j].IsPinned {
			return tasks[i].IsPinned
		}
		return tasks[i].UpdatedAt.After(tasks[j].UpdatedAt)
	})
}
