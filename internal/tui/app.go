package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"notesflow-cli/internal/api"
	"notesflow-cli/internal/model"
	"notesflow-cli/internal/state"
	"notesflow-cli/internal/store"
)

// Run starts the interactive TUI on top of an already-configured API client.
func Run(c *api.Client) error {
	applyColorProfilePreference()

	cfg, err := store.LoadConfig()
	if err != nil {
		cfg = &store.GlobalConfig{}
	}
	theme := ""
	if cfg.TUI != nil {
		theme = cfg.TUI.Theme
	}
	applyThemePreference(theme)

	ctrl := state.NewController()
	ctrl.RollbackOnFailure = cfg.RollbackOnFailure

	// The snapshot cache is best effort: the board paints from the last
	// fetched lists immediately and refreshes over the network.
	cache, err := store.OpenCache(context.Background(), "")
	if err != nil {
		cache = nil
	} else {
		defer cache.Close()
	}

	m := newAppModel(c, ctrl, cache)

	// A 401 anywhere drops the session; bounce the UI back to the login form.
	c.OnUnauthorized = func() {
		select {
		case m.events <- unauthorizedMsg{}:
		default:
		}
	}

	_, err = tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}

type appModel struct {
	client *api.Client
	ctrl   *state.Controller
	saver  *state.Debouncer
	cache  *store.Cache

	// events carries messages produced outside the update loop (debounced
	// saves, the unauthorized hook). listenEvents re-subscribes after each
	// receipt.
	events chan tea.Msg

	width  int
	height int

	view view
	tab  boardTab

	// login / register form
	authInputs []textinput.Model
	authFocus  int
	authErr    string
	authBusy   bool

	// board
	search    textinput.Model
	searching bool
	query     string
	selNote   int
	selTask   int
	loading   bool

	// detail editor
	editKind state.RecordType
	editID   int64
	titleIn  textinput.Model
	bodyIn   textarea.Model
	saveNote string // "saving…" / "saved" / error text

	toast    string
	toastGen int
}

func newAppModel(c *api.Client, ctrl *state.Controller, cache *store.Cache) appModel {
	m := appModel{
		client: c,
		ctrl:   ctrl,
		saver:  state.NewDebouncer(state.DefaultDebounce),
		cache:  cache,
		events: make(chan tea.Msg, 8),
		view:   viewBoard,
		tab:    tabNotes,
	}

	m.search = textinput.New()
	m.search.Placeholder = "Search…"
	m.search.CharLimit = 200

	m.titleIn = textinput.New()
	m.titleIn.Placeholder = "Title"
	m.titleIn.CharLimit = 200

	m.bodyIn = textarea.New()
	m.bodyIn.Placeholder = "Write something…"
	m.bodyIn.ShowLineNumbers = false

	if !c.Session().IsAuthenticated() {
		m.view = viewLogin
		m.setAuthForm(viewLogin)
	}
	return m
}

func (m *appModel) setAuthForm(v view) {
	m.view = v
	m.authErr = ""
	m.authFocus = 0

	mk := func(placeholder string, secret bool) textinput.Model {
		ti := textinput.New()
		ti.Placeholder = placeholder
		ti.CharLimit = 200
		if secret {
			ti.EchoMode = textinput.EchoPassword
		}
		return ti
	}
	if v == viewRegister {
		m.authInputs = []textinput.Model{mk("Username", false), mk("Email", false), mk("Password", true)}
	} else {
		m.authInputs = []textinput.Model{mk("Email", false), mk("Password", true)}
	}
	m.authInputs[0].Focus()
}

func (m appModel) Init() tea.Cmd {
	cmds := []tea.Cmd{listenEvents(m.events), textinput.Blink}
	if m.view == viewBoard {
		cmds = append(cmds, m.loadCachedBoard(), m.loadBoard(""))
	}
	return tea.Batch(cmds...)
}

// listenEvents delivers one message from the events channel, wrapped so the
// update loop knows to re-subscribe exactly once per receipt.
func listenEvents(events chan tea.Msg) tea.Cmd {
	return func() tea.Msg { return eventMsg{inner: <-events} }
}

// loadCachedBoard paints the last fetched snapshot, if any, while the network
// refresh is in flight.
func (m appModel) loadCachedBoard() tea.Cmd {
	cache, sess := m.cache, m.client.Session()
	return func() tea.Msg {
		if cache == nil {
			return nil
		}
		u := sess.User()
		if u == nil {
			return nil
		}
		ctx := context.Background()
		notes, _, okN, _ := cache.Notes(ctx, u.ID)
		tasks, _, okT, _ := cache.Tasks(ctx, u.ID)
		stats, _, okS, _ := cache.Stats(ctx, u.ID)
		if !okN && !okT && !okS {
			return nil
		}
		return boardMsg{cached: true, notes: notes, tasks: tasks, stats: stats}
	}
}

func (m appModel) loadBoard(query string) tea.Cmd {
	c, cache := m.client, m.cache
	return func() tea.Msg {
		ctx := context.Background()

		// A mirror-recovered session has a token but no user yet; the profile
		// fetch also validates the token before the board requests fan out.
		if c.Session().User() == nil {
			u, err := c.Auth.Profile(ctx)
			if err != nil {
				return boardMsg{err: err}
			}
			c.Session().SetUser(u)
		}

		var filters map[string]string
		if query != "" {
			filters = map[string]string{"search": query}
		}
		notes, err := c.Notes.List(ctx, filters)
		if err != nil {
			return boardMsg{err: err}
		}
		tasks, err := c.Tasks.List(ctx, filters)
		if err != nil {
			return boardMsg{err: err}
		}
		stats, err := c.Tasks.Stats(ctx)
		if err != nil {
			return boardMsg{err: err}
		}
		model.SortNotes(notes)
		model.SortTasks(tasks)

		if cache != nil && query == "" {
			if u := c.Session().User(); u != nil {
				_ = cache.PutNotes(ctx, u.ID, notes)
				_ = cache.PutTasks(ctx, u.ID, tasks)
				_ = cache.PutStats(ctx, u.ID, stats)
			}
		}
		return boardMsg{notes: notes, tasks: tasks, stats: stats}
	}
}

func (m appModel) login(email, password string) tea.Cmd {
	c := m.client
	return func() tea.Msg {
		creds, err := c.Auth.Login(context.Background(), email, password)
		if err != nil {
			return authMsg{err: err}
		}
		u := creds.User
		return authMsg{user: &u}
	}
}

func (m appModel) register(username, email, password string) tea.Cmd {
	c := m.client
	return func() tea.Msg {
		creds, err := c.Auth.Register(context.Background(), username, email, password)
		if err != nil {
			return authMsg{err: err}
		}
		u := creds.User
		return authMsg{user: &u}
	}
}

func (m appModel) createRecord(kind state.RecordType) tea.Cmd {
	c := m.client
	return func() tea.Msg {
		ctx := context.Background()
		if kind == state.RecordNote {
			note, err := c.Notes.Create(ctx, "Untitled Note", "", model.NoteColors[0])
			return createdMsg{kind: kind, note: note, err: err}
		}
		task, err := c.Tasks.Create(ctx, api.TaskCreate{
			Title:    "Untitled Task",
			Status:   model.StatusPending,
			Priority: model.PriorityMedium,
		})
		return createdMsg{kind: kind, task: task, err: err}
	}
}

// queueSave schedules a debounced editor save. Rapid keystrokes coalesce:
// only the payload captured by the last trigger is sent, and the optimistic
// sequence is issued at fire time so stale responses are discarded.
func (m *appModel) queueSave() {
	kind, id := m.editKind, m.editID
	title, body := m.titleIn.Value(), m.bodyIn.Value()
	if title == "" {
		if kind == state.RecordNote {
			title = "Untitled Note"
		} else {
			title = "Untitled Task"
		}
	}
	c, ctrl, events := m.client, m.ctrl, m.events
	m.saveNote = "saving…"

	m.saver.Trigger(func() {
		ctx := context.Background()
		seq := ctrl.Begin(kind, id)
		if kind == state.RecordNote {
			note, err := c.Notes.Update(ctx, id, api.NoteUpdate{Title: &title, Content: &body})
			events <- noteSavedMsg{id: id, seq: seq, note: note, err: err}
			return
		}
		task, err := c.Tasks.Update(ctx, id, api.TaskUpdate{Title: &title, Description: &body})
		events <- taskSavedMsg{id: id, seq: seq, task: task, err: err}
	})
}

func (m *appModel) openEditor(kind state.RecordType, id int64) {
	m.view = viewDetail
	m.editKind = kind
	m.editID = id
	m.saveNote = ""

	title, body := "", ""
	if kind == state.RecordNote {
		for _, n := range m.ctrl.Notes() {
			if n.ID == id {
				title, body = n.Title, n.Content
				break
			}
		}
	} else {
		for _, t := range m.ctrl.Tasks() {
			if t.ID == id {
				title, body = t.Title, t.Description
				break
			}
		}
	}
	m.titleIn.SetValue(title)
	m.bodyIn.SetValue(body)
	m.titleIn.Focus()
	m.bodyIn.Blur()
	m.resizeEditor()
}

func (m *appModel) closeEditor() {
	// Esc means "done editing": push any pending edit now rather than after
	// the debounce window.
	m.saver.Flush()
	m.view = viewBoard
}

func (m *appModel) resizeEditor() {
	w := m.width - 4
	if w < 40 {
		w = 40
	}
	m.titleIn.Width = w
	m.bodyIn.SetWidth(w)
	h := m.height/2 - 4
	if h < 5 {
		h = 5
	}
	m.bodyIn.SetHeight(h)
}

func (m *appModel) clampSelection() {
	if n := len(m.ctrl.Notes()); m.selNote >= n {
		m.selNote = n - 1
	}
	if m.selNote < 0 {
		m.selNote = 0
	}
	if n := len(m.ctrl.Tasks()); m.selTask >= n {
		m.selTask = n - 1
	}
	if m.selTask < 0 {
		m.selTask = 0
	}
}

func (m *appModel) selectedNote() (model.Note, bool) {
	notes := m.ctrl.Notes()
	if m.selNote < 0 || m.selNote >= len(notes) {
		return model.Note{}, false
	}
	return notes[m.selNote], true
}

func (m *appModel) selectedTask() (model.Task, bool) {
	tasks := m.ctrl.Tasks()
	if m.selTask < 0 || m.selTask >= len(tasks) {
		return model.Task{}, false
	}
	return tasks[m.selTask], true
}

func nextColor(current string) string {
	for i, c := range model.NoteColors {
		if c == current {
			return model.NoteColors[(i+1)%len(model.NoteColors)]
		}
	}
	return model.NoteColors[0]
}
