package tui

import (
	"context"
	"errors"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"notesflow-cli/internal/api"
	"notesflow-cli/internal/model"
	"notesflow-cli/internal/state"
)

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resizeEditor()
		return m, nil

	case eventMsg:
		next, cmd := m.Update(msg.inner)
		return next, tea.Batch(cmd, listenEvents(m.events))

	case unauthorizedMsg:
		m.setAuthForm(viewLogin)
		m.authErr = "Session expired. Please log in again."
		return m, nil

	case authMsg:
		m.authBusy = false
		if msg.err != nil {
			m.authErr = errorText(msg.err)
			return m, nil
		}
		m.view = viewBoard
		m.tab = tabNotes
		m.loading = true
		return m, tea.Batch(m.loadCachedBoard(), m.loadBoard(""))

	case boardMsg:
		if msg.err != nil {
			m.loading = false
			if api.IsUnauthorized(msg.err) {
				// The client hook already cleared the session.
				return m, nil
			}
			return m, m.setToast(errorText(msg.err))
		}
		// A cached snapshot never overwrites fresh data.
		if msg.cached && !m.loading {
			return m, nil
		}
		if !msg.cached {
			m.loading = false
		}
		m.ctrl.SetNotes(msg.notes)
		m.ctrl.SetTasks(msg.tasks)
		m.ctrl.SetStats(msg.stats)
		m.clampSelection()
		return m, nil

	case noteSavedMsg:
		if msg.err != nil {
			// The save indicator only exists in the editor; failures for any
			// other record (board pin/color) surface as a toast.
			if m.view == viewDetail && m.editKind == state.RecordNote && m.editID == msg.id {
				m.saveNote = errorText(msg.err)
				return m, nil
			}
			return m, m.setToast(errorText(msg.err))
		}
		if msg.note != nil && m.ctrl.CommitNote(msg.seq, *msg.note) {
			m.saveNote = "saved"
		}
		return m, nil

	case taskSavedMsg:
		if msg.err != nil {
			if m.view == viewDetail && m.editKind == state.RecordTask && m.editID == msg.id {
				m.saveNote = errorText(msg.err)
				return m, nil
			}
			return m, m.setToast(errorText(msg.err))
		}
		if msg.task != nil && m.ctrl.CommitTask(msg.seq, *msg.task) {
			m.saveNote = "saved"
		}
		return m, nil

	case taskStatusMsg:
		if msg.err != nil {
			if m.ctrl.RollbackTaskStatus(msg.id, msg.seq, msg.prev) {
				return m, m.setToast("Status change failed: " + errorText(msg.err))
			}
			return m, m.setToast(errorText(msg.err))
		}
		if msg.task != nil {
			m.ctrl.CommitTask(msg.seq, *msg.task)
		}
		return m, nil

	case createdMsg:
		if msg.err != nil {
			return m, m.setToast(errorText(msg.err))
		}
		if msg.kind == state.RecordNote && msg.note != nil {
			m.ctrl.AddNote(*msg.note)
			m.selNote = 0
			m.openEditor(state.RecordNote, msg.note.ID)
		} else if msg.task != nil {
			m.ctrl.AddTask(*msg.task)
			m.selTask = 0
			m.openEditor(state.RecordTask, msg.task.ID)
		}
		return m, nil

	case deletedMsg:
		if msg.err != nil {
			m.ctrl.CancelDelete()
			return m, m.setToast("Delete failed: " + errorText(msg.err))
		}
		m.ctrl.CompleteDelete()
		m.clampSelection()
		return m, m.setToast("Deleted")

	case sharedMsg:
		if msg.err != nil {
			return m, m.setToast(errorText(msg.err))
		}
		return m, m.setToast("Share link: " + msg.link.ShareURL)

	case revokedMsg:
		if msg.err != nil {
			return m, m.setToast(errorText(msg.err))
		}
		if msg.kind == state.RecordNote {
			m.ctrl.UpdateNote(msg.id, func(n *model.Note) { n.ShareToken = nil; n.IsPublic = false })
		} else {
			m.ctrl.UpdateTask(msg.id, func(t *model.Task) { t.ShareToken = nil; t.IsPublic = false })
		}
		return m, m.setToast("Share link revoked")

	case toastClearMsg:
		if msg.gen == m.toastGen {
			m.toast = ""
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m.routeToInputs(msg)
}

func (m appModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		m.saver.Flush()
		return m, tea.Quit
	}

	switch m.view {
	case viewLogin, viewRegister:
		return m.handleAuthKey(msg)
	case viewDetail:
		return m.handleDetailKey(msg)
	default:
		return m.handleBoardKey(msg)
	}
}

func (m appModel) handleAuthKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "tab", "down":
		m.focusAuth(m.authFocus + 1)
		return m, nil
	case "shift+tab", "up":
		m.focusAuth(m.authFocus - 1)
		return m, nil
	case "ctrl+r":
		if m.view == viewLogin {
			m.setAuthForm(viewRegister)
		} else {
			m.setAuthForm(viewLogin)
		}
		return m, nil
	case "enter":
		if m.authFocus < len(m.authInputs)-1 {
			m.focusAuth(m.authFocus + 1)
			return m, nil
		}
		return m.submitAuth()
	}

	var cmd tea.Cmd
	m.authInputs[m.authFocus], cmd = m.authInputs[m.authFocus].Update(msg)
	return m, cmd
}

func (m *appModel) focusAuth(i int) {
	n := len(m.authInputs)
	i = ((i % n) + n) % n
	for j := range m.authInputs {
		if j == i {
			m.authInputs[j].Focus()
		} else {
			m.authInputs[j].Blur()
		}
	}
	m.authFocus = i
}

func (m appModel) submitAuth() (tea.Model, tea.Cmd) {
	if m.authBusy {
		return m, nil
	}
	vals := make([]string, len(m.authInputs))
	for i := range m.authInputs {
		vals[i] = strings.TrimSpace(m.authInputs[i].Value())
	}
	for _, v := range vals {
		if v == "" {
			m.authErr = "All fields are required."
			return m, nil
		}
	}
	m.authBusy = true
	m.authErr = ""
	if m.view == viewRegister {
		return m, m.register(vals[0], vals[1], vals[2])
	}
	return m, m.login(vals[0], vals[1])
}

func (m appModel) handleBoardKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Delete confirmation modal swallows all input.
	if p, ok := m.ctrl.Pending(); ok {
		switch msg.String() {
		case "y", "enter":
			return m, m.performDelete(p)
		case "n", "esc":
			m.ctrl.CancelDelete()
			return m, nil
		}
		return m, nil
	}

	if m.searching {
		switch msg.String() {
		case "enter":
			m.searching = false
			m.search.Blur()
			m.query = strings.TrimSpace(m.search.Value())
			m.loading = true
			return m, m.loadBoard(m.query)
		case "esc":
			m.searching = false
			m.search.Blur()
			m.search.SetValue("")
			if m.query != "" {
				m.query = ""
				m.loading = true
				return m, m.loadBoard("")
			}
			return m, nil
		}
		var cmd tea.Cmd
		m.search, cmd = m.search.Update(msg)
		return m, cmd
	}

	switch msg.String() {
	case "q":
		m.saver.Flush()
		return m, tea.Quit
	case "tab":
		if m.tab == tabNotes {
			m.tab = tabTasks
		} else {
			m.tab = tabNotes
		}
		return m, nil
	case "/":
		m.searching = true
		m.search.Focus()
		return m, nil
	case "r":
		m.loading = true
		return m, m.loadBoard(m.query)
	case "up", "k":
		if m.tab == tabNotes {
			m.selNote--
		} else {
			m.selTask--
		}
		m.clampSelection()
		return m, nil
	case "down", "j":
		if m.tab == tabNotes {
			m.selNote++
		} else {
			m.selTask++
		}
		m.clampSelection()
		return m, nil
	case "enter":
		if m.tab == tabNotes {
			if n, ok := m.selectedNote(); ok {
				m.openEditor(state.RecordNote, n.ID)
			}
		} else if t, ok := m.selectedTask(); ok {
			m.openEditor(state.RecordTask, t.ID)
		}
		return m, nil
	case "n":
		if m.tab == tabNotes {
			return m, m.createRecord(state.RecordNote)
		}
		return m, m.createRecord(state.RecordTask)
	case "d":
		if m.tab == tabNotes {
			if n, ok := m.selectedNote(); ok {
				m.ctrl.RequestDelete(state.RecordNote, n.ID)
			}
		} else if t, ok := m.selectedTask(); ok {
			m.ctrl.RequestDelete(state.RecordTask, t.ID)
		}
		return m, nil
	case "s":
		if m.tab != tabTasks {
			return m, nil
		}
		if t, ok := m.selectedTask(); ok {
			return m, m.cycleStatus(t)
		}
		return m, nil
	case "p":
		if m.tab != tabTasks {
			return m, nil
		}
		if t, ok := m.selectedTask(); ok {
			return m, m.cyclePriority(t)
		}
		return m, nil
	case "!":
		if m.tab == tabNotes {
			if n, ok := m.selectedNote(); ok {
				return m, m.togglePin(state.RecordNote, n.ID)
			}
		} else if t, ok := m.selectedTask(); ok {
			return m, m.togglePin(state.RecordTask, t.ID)
		}
		return m, nil
	case "c":
		if m.tab == tabNotes {
			if n, ok := m.selectedNote(); ok {
				return m, m.setColor(state.RecordNote, n.ID, nextColor(n.BackgroundColor))
			}
		} else if t, ok := m.selectedTask(); ok {
			return m, m.setColor(state.RecordTask, t.ID, nextColor(t.BackgroundColor))
		}
		return m, nil
	case "S":
		if m.tab == tabNotes {
			if n, ok := m.selectedNote(); ok {
				return m, m.share(state.RecordNote, n.ID)
			}
		} else if t, ok := m.selectedTask(); ok {
			return m, m.share(state.RecordTask, t.ID)
		}
		return m, nil
	case "R":
		if m.tab == tabNotes {
			if n, ok := m.selectedNote(); ok && n.ShareToken != nil {
				return m, m.revoke(state.RecordNote, n.ID)
			}
		} else if t, ok := m.selectedTask(); ok && t.ShareToken != nil {
			return m, m.revoke(state.RecordTask, t.ID)
		}
		return m, nil
	}
	return m, nil
}

func (m appModel) handleDetailKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.closeEditor()
		return m, nil
	case "tab":
		if m.titleIn.Focused() {
			m.titleIn.Blur()
			return m, m.bodyIn.Focus()
		}
		m.bodyIn.Blur()
		return m, m.titleIn.Focus()
	}

	var cmd tea.Cmd
	before := m.titleIn.Value() + "\x00" + m.bodyIn.Value()
	if m.titleIn.Focused() {
		m.titleIn, cmd = m.titleIn.Update(msg)
	} else {
		m.bodyIn, cmd = m.bodyIn.Update(msg)
	}
	if m.titleIn.Value()+"\x00"+m.bodyIn.Value() != before {
		m.queueSave()
	}
	return m, cmd
}

// routeToInputs forwards non-key messages (cursor blink ticks) to whichever
// input is active.
func (m appModel) routeToInputs(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.view {
	case viewLogin, viewRegister:
		if len(m.authInputs) > 0 {
			m.authInputs[m.authFocus], cmd = m.authInputs[m.authFocus].Update(msg)
		}
	case viewDetail:
		if m.titleIn.Focused() {
			m.titleIn, cmd = m.titleIn.Update(msg)
		} else {
			m.bodyIn, cmd = m.bodyIn.Update(msg)
		}
	default:
		if m.searching {
			m.search, cmd = m.search.Update(msg)
		}
	}
	return m, cmd
}

func (m appModel) cycleStatus(t model.Task) tea.Cmd {
	next := t.Status.Next()
	prev, seq, ok := m.ctrl.ApplyTaskStatus(t.ID, next)
	if !ok {
		return nil
	}
	c, id := m.client, t.ID
	return func() tea.Msg {
		st := next
		task, err := c.Tasks.Update(context.Background(), id, api.TaskUpdate{Status: &st})
		return taskStatusMsg{id: id, seq: seq, prev: prev, task: task, err: err}
	}
}

func (m appModel) cyclePriority(t model.Task) tea.Cmd {
	var next model.Priority
	switch t.Priority {
	case model.PriorityLow:
		next = model.PriorityMedium
	case model.PriorityMedium:
		next = model.PriorityHigh
	default:
		next = model.PriorityLow
	}
	_, seq, ok := m.ctrl.ApplyTaskPriority(t.ID, next)
	if !ok {
		return nil
	}
	c, id := m.client, t.ID
	return func() tea.Msg {
		p := next
		task, err := c.Tasks.Update(context.Background(), id, api.TaskUpdate{Priority: &p})
		return taskSavedMsg{id: id, seq: seq, task: task, err: err}
	}
}

func (m appModel) togglePin(kind state.RecordType, id int64) tea.Cmd {
	_, seq, ok := m.ctrl.ApplyPin(kind, id)
	if !ok {
		return nil
	}
	c := m.client
	if kind == state.RecordNote {
		return func() tea.Msg {
			note, err := c.Notes.TogglePin(context.Background(), id)
			return noteSavedMsg{id: id, seq: seq, note: note, err: err}
		}
	}
	return func() tea.Msg {
		task, err := c.Tasks.TogglePin(context.Background(), id)
		return taskSavedMsg{id: id, seq: seq, task: task, err: err}
	}
}

func (m appModel) setColor(kind state.RecordType, id int64, color string) tea.Cmd {
	seq, ok := m.ctrl.ApplyColor(kind, id, color)
	if !ok {
		return nil
	}
	c := m.client
	if kind == state.RecordNote {
		return func() tea.Msg {
			note, err := c.Notes.SetColor(context.Background(), id, color)
			return noteSavedMsg{id: id, seq: seq, note: note, err: err}
		}
	}
	return func() tea.Msg {
		task, err := c.Tasks.SetColor(context.Background(), id, color)
		return taskSavedMsg{id: id, seq: seq, task: task, err: err}
	}
}

func (m appModel) share(kind state.RecordType, id int64) tea.Cmd {
	c := m.client
	return func() tea.Msg {
		var (
			link *api.ShareLink
			err  error
		)
		if kind == state.RecordNote {
			link, err = c.Notes.CreateShareLink(context.Background(), id, 0)
		} else {
			link, err = c.Tasks.CreateShareLink(context.Background(), id, 0)
		}
		return sharedMsg{link: link, err: err}
	}
}

func (m appModel) revoke(kind state.RecordType, id int64) tea.Cmd {
	c := m.client
	return func() tea.Msg {
		var err error
		if kind == state.RecordNote {
			err = c.Notes.RevokeShareLink(context.Background(), id)
		} else {
			err = c.Tasks.RevokeShareLink(context.Background(), id)
		}
		return revokedMsg{kind: kind, id: id, err: err}
	}
}

func (m appModel) performDelete(p state.PendingDelete) tea.Cmd {
	c := m.client
	return func() tea.Msg {
		var err error
		if p.Type == state.RecordNote {
			err = c.Notes.Delete(context.Background(), p.ID)
		} else {
			err = c.Tasks.Delete(context.Background(), p.ID)
		}
		return deletedMsg{err: err}
	}
}

func (m *appModel) setToast(text string) tea.Cmd {
	m.toast = text
	m.toastGen++
	gen := m.toastGen
	return tea.Tick(4*time.Second, func(time.Time) tea.Msg { return toastClearMsg{gen: gen} })
}

func errorText(err error) string {
	if err == nil {
		return ""
	}
	var apiErr *api.Error
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	if api.IsNetwork(err) {
		return "Cannot reach the server. Is the API running?"
	}
	return err.Error()
}
