package tui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"notesflow-cli/internal/api"
	"notesflow-cli/internal/model"
	"notesflow-cli/internal/session"
	"notesflow-cli/internal/state"
)

func newTestModel(t *testing.T) appModel {
	t.Helper()
	sess := session.NewStore("")
	if err := sess.SetSession("tok", &model.User{ID: 1, Username: "ada", Email: "ada@example.com"}); err != nil {
		t.Fatalf("SetSession: %v", err)
	}
	c := api.New("http://127.0.0.1:0", sess)
	m := newAppModel(c, state.NewController(), nil)
	m.width, m.height = 100, 30
	return m
}

func seedBoard(m *appModel) {
	now := time.Now()
	m.ctrl.SetNotes([]model.Note{
		{ID: 1, Title: "First", UpdatedAt: now},
		{ID: 2, Title: "Second", UpdatedAt: now},
	})
	m.ctrl.SetTasks([]model.Task{
		{ID: 10, Title: "Ship it", Status: model.StatusPending, Priority: model.PriorityMedium, UpdatedAt: now},
	})
	m.ctrl.SetStats(model.TaskStats{Pending: 1})
}

func key(s string) tea.KeyMsg {
	switch s {
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}

func update(t *testing.T, m appModel, msg tea.Msg) (appModel, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	am, ok := next.(appModel)
	if !ok {
		t.Fatalf("Update returned %T, want appModel", next)
	}
	return am, cmd
}

func TestUnauthenticatedStartsOnLogin(t *testing.T) {
	sess := session.NewStore("")
	m := newAppModel(api.New("http://127.0.0.1:0", sess), state.NewController(), nil)
	if m.view != viewLogin {
		t.Fatalf("view = %v, want viewLogin", m.view)
	}
	if len(m.authInputs) != 2 {
		t.Fatalf("login form has %d inputs, want 2", len(m.authInputs))
	}
}

func TestTabSwitchesBetweenNotesAndTasks(t *testing.T) {
	m := newTestModel(t)
	seedBoard(&m)

	m, _ = update(t, m, key("tab"))
	if m.tab != tabTasks {
		t.Fatalf("tab = %v, want tabTasks", m.tab)
	}
	m, _ = update(t, m, key("tab"))
	if m.tab != tabNotes {
		t.Fatalf("tab = %v, want tabNotes", m.tab)
	}
}

func TestSelectionMovesAndClamps(t *testing.T) {
	m := newTestModel(t)
	seedBoard(&m)

	m, _ = update(t, m, key("down"))
	if m.selNote != 1 {
		t.Fatalf("selNote = %d, want 1", m.selNote)
	}
	// Past the end stays on the last row.
	m, _ = update(t, m, key("down"))
	if m.selNote != 1 {
		t.Fatalf("selNote = %d, want 1 after clamping", m.selNote)
	}
	m, _ = update(t, m, key("up"))
	m, _ = update(t, m, key("up"))
	if m.selNote != 0 {
		t.Fatalf("selNote = %d, want 0 after clamping", m.selNote)
	}
}

func TestStatusKeyAppliesOptimisticallyBeforeTheRequest(t *testing.T) {
	m := newTestModel(t)
	seedBoard(&m)
	m.tab = tabTasks

	m, cmd := update(t, m, key("s"))
	if cmd == nil {
		t.Fatal("expected a command carrying the network request")
	}
	// The list and the counters change in the same frame, without waiting for
	// the command to run.
	tasks := m.ctrl.Tasks()
	if tasks[0].Status != model.StatusInProgress {
		t.Fatalf("status = %q, want in_progress", tasks[0].Status)
	}
	stats := m.ctrl.Stats()
	if stats.Pending != 0 || stats.InProgress != 1 {
		t.Fatalf("stats = %+v, want pending 0 / in progress 1", stats)
	}
}

func TestFailedStatusChangeKeepsOptimisticValueByDefault(t *testing.T) {
	m := newTestModel(t)
	seedBoard(&m)
	m.tab = tabTasks

	m, _ = update(t, m, key("s"))
	m, _ = update(t, m, taskStatusMsg{id: 10, seq: 1, prev: model.StatusPending, err: &api.Error{Status: 500, Message: "boom"}})

	if got := m.ctrl.Tasks()[0].Status; got != model.StatusInProgress {
		t.Fatalf("status = %q, want the optimistic in_progress to stick", got)
	}
	if m.toast == "" {
		t.Fatal("expected an error toast")
	}
}

func TestFailedStatusChangeRollsBackWhenEnabled(t *testing.T) {
	m := newTestModel(t)
	seedBoard(&m)
	m.ctrl.RollbackOnFailure = true
	m.tab = tabTasks

	m, _ = update(t, m, key("s"))
	m, _ = update(t, m, taskStatusMsg{id: 10, seq: 1, prev: model.StatusPending, err: &api.Error{Status: 500, Message: "boom"}})

	if got := m.ctrl.Tasks()[0].Status; got != model.StatusPending {
		t.Fatalf("status = %q, want rollback to pending", got)
	}
}

func TestDeleteIsStagedUntilConfirmed(t *testing.T) {
	m := newTestModel(t)
	seedBoard(&m)

	m, _ = update(t, m, key("d"))
	if _, ok := m.ctrl.Pending(); !ok {
		t.Fatal("expected a staged delete")
	}
	if len(m.ctrl.Notes()) != 2 {
		t.Fatal("staging a delete must not remove the record")
	}

	// "n" while the modal is open keeps the record.
	m, _ = update(t, m, key("n"))
	if _, ok := m.ctrl.Pending(); ok {
		t.Fatal("expected the staged delete to be cancelled")
	}
	if len(m.ctrl.Notes()) != 2 {
		t.Fatalf("notes = %d, want 2 after cancel", len(m.ctrl.Notes()))
	}
}

func TestConfirmedDeleteRemovesAfterServerAck(t *testing.T) {
	m := newTestModel(t)
	seedBoard(&m)

	m, _ = update(t, m, key("d"))
	m, cmd := update(t, m, key("y"))
	if cmd == nil {
		t.Fatal("expected the delete request command")
	}
	m, _ = update(t, m, deletedMsg{})
	if len(m.ctrl.Notes()) != 1 {
		t.Fatalf("notes = %d, want 1 after confirmed delete", len(m.ctrl.Notes()))
	}
}

func TestFailedDeleteRestoresTheRecord(t *testing.T) {
	m := newTestModel(t)
	seedBoard(&m)

	m, _ = update(t, m, key("d"))
	m, _ = update(t, m, key("y"))
	m, _ = update(t, m, deletedMsg{err: &api.Error{Status: 500, Message: "boom"}})
	if len(m.ctrl.Notes()) != 2 {
		t.Fatalf("notes = %d, want 2 after failed delete", len(m.ctrl.Notes()))
	}
	if _, ok := m.ctrl.Pending(); ok {
		t.Fatal("failed delete must clear the staged state")
	}
}

func TestEnterOpensTheEditorWithCurrentValues(t *testing.T) {
	m := newTestModel(t)
	seedBoard(&m)

	m, _ = update(t, m, key("enter"))
	if m.view != viewDetail {
		t.Fatalf("view = %v, want viewDetail", m.view)
	}
	if got := m.titleIn.Value(); got != "First" {
		t.Fatalf("title input = %q, want %q", got, "First")
	}
	m, _ = update(t, m, key("esc"))
	if m.view != viewBoard {
		t.Fatalf("view = %v, want viewBoard after esc", m.view)
	}
}

func TestCachedSnapshotDoesNotOverwriteFreshData(t *testing.T) {
	m := newTestModel(t)
	m.loading = true

	m, _ = update(t, m, boardMsg{notes: []model.Note{{ID: 1, Title: "fresh"}}})
	m, _ = update(t, m, boardMsg{cached: true, notes: []model.Note{{ID: 9, Title: "stale"}}})

	notes := m.ctrl.Notes()
	if len(notes) != 1 || notes[0].Title != "fresh" {
		t.Fatalf("notes = %+v, want the fresh snapshot to win", notes)
	}
}

func TestFailedBoardActionShowsToast(t *testing.T) {
	m := newTestModel(t)
	seedBoard(&m)
	m.tab = tabTasks

	m, _ = update(t, m, key("!"))
	m, _ = update(t, m, taskSavedMsg{id: 10, seq: 1, err: &api.Error{Status: 500, Message: "boom"}})
	if !strings.Contains(m.toast, "boom") {
		t.Fatalf("toast = %q, want the pin failure surfaced on the board", m.toast)
	}

	m.toast = ""
	m.tab = tabNotes
	m, _ = update(t, m, key("c"))
	m, _ = update(t, m, noteSavedMsg{id: 1, seq: 2, err: &api.Error{Status: 500, Message: "bad color"}})
	if !strings.Contains(m.toast, "bad color") {
		t.Fatalf("toast = %q, want the color failure surfaced on the board", m.toast)
	}
}

func TestFailedEditorSaveUsesTheSaveIndicator(t *testing.T) {
	m := newTestModel(t)
	seedBoard(&m)

	m, _ = update(t, m, key("enter")) // opens note 1
	m, _ = update(t, m, noteSavedMsg{id: 1, seq: 1, err: &api.Error{Status: 500, Message: "boom"}})
	if !strings.Contains(m.saveNote, "boom") {
		t.Fatalf("saveNote = %q, want the editor save failure shown inline", m.saveNote)
	}
	if m.toast != "" {
		t.Fatalf("toast = %q, want no toast for the open record's save failure", m.toast)
	}

	// A failure for a different record while the editor is open still toasts.
	m, _ = update(t, m, taskSavedMsg{id: 10, seq: 2, err: &api.Error{Status: 500, Message: "other"}})
	if !strings.Contains(m.toast, "other") {
		t.Fatalf("toast = %q, want failures for other records toasted", m.toast)
	}
}

func TestUnauthorizedBouncesToLogin(t *testing.T) {
	m := newTestModel(t)
	seedBoard(&m)

	m, _ = update(t, m, unauthorizedMsg{})
	if m.view != viewLogin {
		t.Fatalf("view = %v, want viewLogin", m.view)
	}
	if m.authErr == "" {
		t.Fatal("expected a session-expired message")
	}
}

func TestUnauthorizedLoadProducesNoGenericToast(t *testing.T) {
	m := newTestModel(t)
	seedBoard(&m)
	m.loading = true

	// The 401 hook already handles the bounce; the failed load itself must
	// not stack an error toast on top.
	m, _ = update(t, m, boardMsg{err: &api.Error{Status: 401, Message: "token expired"}})
	if m.toast != "" {
		t.Fatalf("toast = %q, want none after an unauthorized load", m.toast)
	}
}

func TestNextColorCyclesThePalette(t *testing.T) {
	if got := nextColor(model.NoteColors[0]); got != model.NoteColors[1] {
		t.Fatalf("nextColor = %q, want %q", got, model.NoteColors[1])
	}
	if got := nextColor(model.NoteColors[len(model.NoteColors)-1]); got != model.NoteColors[0] {
		t.Fatalf("nextColor wraps to %q, want %q", got, model.NoteColors[0])
	}
	if got := nextColor("#123456"); got != model.NoteColors[0] {
		t.Fatalf("nextColor on unknown = %q, want default %q", got, model.NoteColors[0])
	}
}

func TestVisibleWindowKeepsSelectionInView(t *testing.T) {
	cases := []struct {
		sel, total, height int
		start, end         int
	}{
		{0, 3, 10, 0, 3},
		{0, 20, 5, 0, 5},
		{10, 20, 5, 8, 13},
		{19, 20, 5, 15, 20},
	}
	for _, tc := range cases {
		start, end := visibleWindow(tc.sel, tc.total, tc.height)
		if start != tc.start || end != tc.end {
			t.Fatalf("visibleWindow(%d,%d,%d) = %d,%d, want %d,%d",
				tc.sel, tc.total, tc.height, start, end, tc.start, tc.end)
		}
		if tc.sel < start || tc.sel >= end {
			t.Fatalf("selection %d outside window [%d,%d)", tc.sel, start, end)
		}
	}
}
