package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"notesflow-cli/internal/api"
	"notesflow-cli/internal/model"
	"notesflow-cli/internal/state"
)

type view int

const (
	viewLogin view = iota
	viewRegister
	viewBoard
	viewDetail
)

type boardTab int

const (
	tabNotes boardTab = iota
	tabTasks
)

// Async results. Most arrive as command results; the *SavedMsg variants can
// also arrive over the events channel, because debounced editor saves fire on
// a timer goroutine outside the Bubble Tea update loop.
type (
	authMsg struct {
		user *model.User
		err  error
	}

	boardMsg struct {
		cached bool
		notes  []model.Note
		tasks  []model.Task
		stats  model.TaskStats
		err    error
	}

	noteSavedMsg struct {
		id   int64
		seq  uint64
		note *model.Note
		err  error
	}

	taskSavedMsg struct {
		id   int64
		seq  uint64
		task *model.Task
		err  error
	}

	// taskStatusMsg carries enough to roll the optimistic status change back
	// when the request fails and rollback is enabled.
	taskStatusMsg struct {
		id   int64
		seq  uint64
		prev model.Status
		task *model.Task
		err  error
	}

	createdMsg struct {
		kind state.RecordType
		note *model.Note
		task *model.Task
		err  error
	}

	deletedMsg struct {
		err error
	}

	sharedMsg struct {
		link *api.ShareLink
		err  error
	}

	revokedMsg struct {
		kind state.RecordType
		id   int64
		err  error
	}

	unauthorizedMsg struct{}

	// eventMsg wraps a message pulled off the events channel; receiving one
	// re-arms the channel subscription.
	eventMsg struct{ inner tea.Msg }

	toastClearMsg struct{ gen int }
)
