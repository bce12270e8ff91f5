package web

import (
	"embed"
	"errors"
	"html/template"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"notesflow-cli/internal/api"
	"notesflow-cli/internal/model"
)

//go:embed templates/*.html static/*.css
var assetsFS embed.FS

type ServerConfig struct {
	Client *api.Client
}

// Server is the server-rendered HTML view. It talks to the backend through
// the same api.Client as the CLI and TUI; the browser session is the bearer
// token mirrored into an auth_token cookie.
type Server struct {
	cfg  ServerConfig
	tmpl *template.Template
}

func NewServer(cfg ServerConfig) (*Server, error) {
	if cfg.Client == nil {
		return nil, errors.New("web: missing api client")
	}
	tmpl, err := template.New("web").Funcs(template.FuncMap{
		"markdown": renderMarkdownHTML,
		"reltime":  func(t time.Time) string { return model.RelativeTime(t, time.Now()) },
		"initials": model.Initials,
		"truncate": model.Truncate,
		"darkbg":   model.DarkBackgroundColor,
	}).ParseFS(assetsFS, "templates/*.html")
	if err != nil {
		return nil, err
	}
	return &Server{cfg: cfg, tmpl: tmpl}, nil
}

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("GET /static/app.css", s.handleAppCSS)

	mux.HandleFunc("GET /{$}", s.handleHome)
	mux.HandleFunc("GET /about", s.handleAbout)
	mux.HandleFunc("GET /contact", s.handleContact)
	mux.HandleFunc("GET /login", s.handleLoginGet)
	mux.HandleFunc("POST /login", s.handleLoginPost)
	mux.HandleFunc("GET /register", s.handleRegisterGet)
	mux.HandleFunc("POST /register", s.handleRegisterPost)
	mux.HandleFunc("POST /logout", s.handleLogoutPost)

	mux.HandleFunc("GET /dashboard", s.requireAuth(s.handleDashboard))
	mux.HandleFunc("POST /notes", s.requireAuth(s.handleNoteCreate))
	mux.HandleFunc("GET /notes/{noteId}", s.requireAuth(s.handleNoteEdit))
	mux.HandleFunc("POST /notes/{noteId}", s.requireAuth(s.handleNoteUpdate))
	mux.HandleFunc("POST /notes/{noteId}/pin", s.requireAuth(s.handleNotePin))
	mux.HandleFunc("POST /notes/{noteId}/color", s.requireAuth(s.handleNoteColor))
	mux.HandleFunc("GET /notes/{noteId}/delete", s.requireAuth(s.handleNoteConfirmDelete))
	mux.HandleFunc("POST /notes/{noteId}/delete", s.requireAuth(s.handleNoteDelete))
	mux.HandleFunc("POST /notes/{noteId}/share", s.requireAuth(s.handleNoteShare))
	mux.HandleFunc("POST /notes/{noteId}/unshare", s.requireAuth(s.handleNoteUnshare))

	mux.HandleFunc("POST /tasks", s.requireAuth(s.handleTaskCreate))
	mux.HandleFunc("GET /tasks/{taskId}", s.requireAuth(s.handleTaskEdit))
	mux.HandleFunc("POST /tasks/{taskId}", s.requireAuth(s.handleTaskUpdate))
	mux.HandleFunc("POST /tasks/{taskId}/status", s.requireAuth(s.handleTaskStatus))
	mux.HandleFunc("POST /tasks/{taskId}/priority", s.requireAuth(s.handleTaskPriority))
	mux.HandleFunc("POST /tasks/{taskId}/pin", s.requireAuth(s.handleTaskPin))
	mux.HandleFunc("POST /tasks/{taskId}/color", s.requireAuth(s.handleTaskColor))
	mux.HandleFunc("GET /tasks/{taskId}/delete", s.requireAuth(s.handleTaskConfirmDelete))
	mux.HandleFunc("POST /tasks/{taskId}/delete", s.requireAuth(s.handleTaskDelete))
	mux.HandleFunc("POST /tasks/{taskId}/share", s.requireAuth(s.handleTaskShare))
	mux.HandleFunc("POST /tasks/{taskId}/unshare", s.requireAuth(s.handleTaskUnshare))

	mux.HandleFunc("GET /profile", s.requireAuth(s.handleProfile))
	mux.HandleFunc("POST /profile", s.requireAuth(s.handleProfileUpdate))

	mux.HandleFunc("GET /shared/{token}", s.handleShared)
	return mux
}

// authed reports whether the request carries the current session. The cookie
// must match the live bearer token; a stale cookie from a previous login is
// treated as logged out.
func (s *Server) authed(r *http.Request) bool {
	tok := sessionCookie(r)
	return tok != "" && tok == s.cfg.Client.Session().Token()
}

// requireAuth is the route guard: anonymous visitors to protected pages get
// bounced to /login.
func (s *Server) requireAuth(h http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !s.authed(r) {
			clearSessionCookie(w, r)
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}
		h(w, r)
	}
}

// fail renders an error. A 401 from the backend ends the browser session too.
func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	if api.IsUnauthorized(err) {
		clearSessionCookie(w, r)
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}
	var apiErr *api.Error
	if errors.As(err, &apiErr) && apiErr.Status >= 400 && apiErr.Status < 500 {
		http.Error(w, apiErr.Message, apiErr.Status)
		return
	}
	http.Error(w, err.Error(), http.StatusInternalServerError)
}

func (s *Server) render(w http.ResponseWriter, name string, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_ = s.tmpl.ExecuteTemplate(w, name, data)
}

// redirectMsg redirects with a one-shot flash message in the query string.
func redirectMsg(w http.ResponseWriter, r *http.Request, path, msg string) {
	if msg != "" {
		sep := "?"
		if strings.Contains(path, "?") {
			sep = "&"
		}
		path += sep + "msg=" + url.QueryEscape(msg)
	}
	http.Redirect(w, r, path, http.StatusSeeOther)
}

func pathID(r *http.Request, key string) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue(key), 10, 64)
	return id, err == nil && id > 0
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok\n"))
}

func (s *Server) handleAppCSS(w http.ResponseWriter, r *http.Request) {
	b, err := assetsFS.ReadFile("static/app.css")
	if err != nil {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/css; charset=utf-8")
	_, _ = w.Write(b)
}

type baseVM struct {
	Authed   bool
	Username string
	Msg      string
}

func (s *Server) baseVM(r *http.Request) baseVM {
	vm := baseVM{Authed: s.authed(r), Msg: r.URL.Query().Get("msg")}
	if u := s.cfg.Client.Session().User(); u != nil {
		vm.Username = u.Username
	}
	return vm
}

func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	if s.authed(r) {
		http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
		return
	}
	s.render(w, "home.html", s.baseVM(r))
}

func (s *Server) handleAbout(w http.ResponseWriter, r *http.Request) {
	s.render(w, "about.html", s.baseVM(r))
}

func (s *Server) handleContact(w http.ResponseWriter, r *http.Request) {
	s.render(w, "contact.html", s.baseVM(r))
}

type loginVM struct {
	baseVM
	Email string
	Error string
}

func (s *Server) handleLoginGet(w http.ResponseWriter, r *http.Request) {
	// Authenticated visitors have no business on the login page.
	if s.authed(r) {
		http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
		return
	}
	s.render(w, "login.html", loginVM{baseVM: s.baseVM(r)})
}

func (s *Server) handleLoginPost(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	email := strings.TrimSpace(r.Form.Get("email"))
	creds, err := s.cfg.Client.Auth.Login(r.Context(), email, r.Form.Get("password"))
	if err != nil {
		s.render(w, "login.html", loginVM{baseVM: s.baseVM(r), Email: email, Error: errText(err)})
		return
	}
	setSessionCookie(w, r, creds.Token)
	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}

type registerVM struct {
	baseVM
	Username string
	Email    string
	Error    string
}

func (s *Server) handleRegisterGet(w http.ResponseWriter, r *http.Request) {
	if s.authed(r) {
		http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
		return
	}
	s.render(w, "register.html", registerVM{baseVM: s.baseVM(r)})
}

func (s *Server) handleRegisterPost(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	username := strings.TrimSpace(r.Form.Get("username"))
	email := strings.TrimSpace(r.Form.Get("email"))
	creds, err := s.cfg.Client.Auth.Register(r.Context(), username, email, r.Form.Get("password"))
	if err != nil {
		s.render(w, "register.html", registerVM{
			baseVM: s.baseVM(r), Username: username, Email: email, Error: errText(err),
		})
		return
	}
	setSessionCookie(w, r, creds.Token)
	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}

func (s *Server) handleLogoutPost(w http.ResponseWriter, r *http.Request) {
	_ = s.cfg.Client.Auth.Logout(r.Context())
	clearSessionCookie(w, r)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

type dashboardVM struct {
	baseVM
	Search string
	Notes  []model.Note
	Tasks  []model.Task
	Stats  model.TaskStats
	Colors []string
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	search := strings.TrimSpace(r.URL.Query().Get("search"))
	filters := map[string]string{}
	if search != "" {
		filters["search"] = search
	}

	c := s.cfg.Client
	notes, err := c.Notes.List(r.Context(), filters)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	tasks, err := c.Tasks.List(r.Context(), filters)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	stats, err := c.Tasks.Stats(r.Context())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	model.SortNotes(notes)
	model.SortTasks(tasks)

	s.render(w, "dashboard.html", dashboardVM{
		baseVM: s.baseVM(r),
		Search: search,
		Notes:  notes,
		Tasks:  tasks,
		Stats:  stats,
		Colors: model.NoteColors,
	})
}

func (s *Server) handleNoteCreate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	_, err := s.cfg.Client.Notes.Create(r.Context(),
		r.Form.Get("title"), r.Form.Get("content"), r.Form.Get("color"))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	redirectMsg(w, r, "/dashboard", "Note created")
}

type noteEditVM struct {
	baseVM
	Note   *model.Note
	Colors []string
}

func (s *Server) handleNoteEdit(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "noteId")
	if !ok {
		http.NotFound(w, r)
		return
	}
	note, err := s.cfg.Client.Notes.Get(r.Context(), id)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.render(w, "note_edit.html", noteEditVM{baseVM: s.baseVM(r), Note: note, Colors: model.NoteColors})
}

func (s *Server) handleNoteUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "noteId")
	if !ok {
		http.NotFound(w, r)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	title := r.Form.Get("title")
	content := r.Form.Get("content")
	if err := model.ValidateTitle(title); err != nil {
		s.fail(w, r, err)
		return
	}
	_, err := s.cfg.Client.Notes.Update(r.Context(), id, api.NoteUpdate{Title: &title, Content: &content})
	if err != nil {
		s.fail(w, r, err)
		return
	}
	redirectMsg(w, r, "/dashboard", "Note saved")
}

func (s *Server) handleNotePin(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "noteId")
	if !ok {
		http.NotFound(w, r)
		return
	}
	if _, err := s.cfg.Client.Notes.TogglePin(r.Context(), id); err != nil {
		s.fail(w, r, err)
		return
	}
	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}

func (s *Server) handleNoteColor(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "noteId")
	if !ok {
		http.NotFound(w, r)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if _, err := s.cfg.Client.Notes.SetColor(r.Context(), id, r.Form.Get("color")); err != nil {
		s.fail(w, r, err)
		return
	}
	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}

type confirmDeleteVM struct {
	baseVM
	Kind   string
	ID     int64
	Title  string
	Action string
}

// handleNoteConfirmDelete is the staging half of the two-phase delete: it
// only shows the confirmation page, no backend call yet.
func (s *Server) handleNoteConfirmDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "noteId")
	if !ok {
		http.NotFound(w, r)
		return
	}
	note, err := s.cfg.Client.Notes.Get(r.Context(), id)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	title := note.Title
	if title == "" {
		title = "Untitled Note"
	}
	s.render(w, "confirm_delete.html", confirmDeleteVM{
		baseVM: s.baseVM(r), Kind: "note", ID: id, Title: title,
		Action: "/notes/" + strconv.FormatInt(id, 10) + "/delete",
	})
}

func (s *Server) handleNoteDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "noteId")
	if !ok {
		http.NotFound(w, r)
		return
	}
	if err := s.cfg.Client.Notes.Delete(r.Context(), id); err != nil {
		s.fail(w, r, err)
		return
	}
	redirectMsg(w, r, "/dashboard", "Note deleted")
}

func (s *Server) handleNoteShare(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "noteId")
	if !ok {
		http.NotFound(w, r)
		return
	}
	link, err := s.cfg.Client.Notes.CreateShareLink(r.Context(), id, 0)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	redirectMsg(w, r, "/notes/"+strconv.FormatInt(id, 10), "Share link: "+link.ShareURL)
}

func (s *Server) handleNoteUnshare(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "noteId")
	if !ok {
		http.NotFound(w, r)
		return
	}
	if err := s.cfg.Client.Notes.RevokeShareLink(r.Context(), id); err != nil {
		s.fail(w, r, err)
		return
	}
	redirectMsg(w, r, "/notes/"+strconv.FormatInt(id, 10), "Share link revoked")
}

func (s *Server) handleTaskCreate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	_, err := s.cfg.Client.Tasks.Create(r.Context(), api.TaskCreate{
		Title:       r.Form.Get("title"),
		Description: r.Form.Get("description"),
		Priority:    model.Priority(r.Form.Get("priority")),
	})
	if err != nil {
		s.fail(w, r, err)
		return
	}
	redirectMsg(w, r, "/dashboard", "Task created")
}

type taskEditVM struct {
	baseVM
	Task   *model.Task
	Colors []string
}

func (s *Server) handleTaskEdit(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "taskId")
	if !ok {
		http.NotFound(w, r)
		return
	}
	task, err := s.cfg.Client.Tasks.Get(r.Context(), id)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.render(w, "task_edit.html", taskEditVM{baseVM: s.baseVM(r), Task: task, Colors: model.NoteColors})
}

func (s *Server) handleTaskUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "taskId")
	if !ok {
		http.NotFound(w, r)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	title := r.Form.Get("title")
	description := r.Form.Get("description")
	if err := model.ValidateTitle(title); err != nil {
		s.fail(w, r, err)
		return
	}
	_, err := s.cfg.Client.Tasks.Update(r.Context(), id, api.TaskUpdate{
		Title: &title, Description: &description,
	})
	if err != nil {
		s.fail(w, r, err)
		return
	}
	redirectMsg(w, r, "/dashboard", "Task saved")
}

// handleTaskStatus advances the status one step in the cycle.
func (s *Server) handleTaskStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "taskId")
	if !ok {
		http.NotFound(w, r)
		return
	}
	task, err := s.cfg.Client.Tasks.Get(r.Context(), id)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	next := task.Status.Next()
	if _, err := s.cfg.Client.Tasks.Update(r.Context(), id, api.TaskUpdate{Status: &next}); err != nil {
		s.fail(w, r, err)
		return
	}
	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}

func (s *Server) handleTaskPriority(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "taskId")
	if !ok {
		http.NotFound(w, r)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	p := model.Priority(r.Form.Get("priority"))
	if !p.Valid() {
		http.Error(w, "invalid priority", http.StatusBadRequest)
		return
	}
	if _, err := s.cfg.Client.Tasks.Update(r.Context(), id, api.TaskUpdate{Priority: &p}); err != nil {
		s.fail(w, r, err)
		return
	}
	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}

func (s *Server) handleTaskPin(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "taskId")
	if !ok {
		http.NotFound(w, r)
		return
	}
	if _, err := s.cfg.Client.Tasks.TogglePin(r.Context(), id); err != nil {
		s.fail(w, r, err)
		return
	}
	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}

func (s *Server) handleTaskColor(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "taskId")
	if !ok {
		http.NotFound(w, r)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if _, err := s.cfg.Client.Tasks.SetColor(r.Context(), id, r.Form.Get("color")); err != nil {
		s.fail(w, r, err)
		return
	}
	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}

func (s *Server) handleTaskConfirmDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "taskId")
	if !ok {
		http.NotFound(w, r)
		return
	}
	task, err := s.cfg.Client.Tasks.Get(r.Context(), id)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	title := task.Title
	if title == "" {
		title = "Untitled Task"
	}
	s.render(w, "confirm_delete.html", confirmDeleteVM{
		baseVM: s.baseVM(r), Kind: "task", ID: id, Title: title,
		Action: "/tasks/" + strconv.FormatInt(id, 10) + "/delete",
	})
}

func (s *Server) handleTaskDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "taskId")
	if !ok {
		http.NotFound(w, r)
		return
	}
	if err := s.cfg.Client.Tasks.Delete(r.Context(), id); err != nil {
		s.fail(w, r, err)
		return
	}
	redirectMsg(w, r, "/dashboard", "Task deleted")
}

func (s *Server) handleTaskShare(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "taskId")
	if !ok {
		http.NotFound(w, r)
		return
	}
	link, err := s.cfg.Client.Tasks.CreateShareLink(r.Context(), id, 0)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	redirectMsg(w, r, "/tasks/"+strconv.FormatInt(id, 10), "Share link: "+link.ShareURL)
}

func (s *Server) handleTaskUnshare(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "taskId")
	if !ok {
		http.NotFound(w, r)
		return
	}
	if err := s.cfg.Client.Tasks.RevokeShareLink(r.Context(), id); err != nil {
		s.fail(w, r, err)
		return
	}
	redirectMsg(w, r, "/tasks/"+strconv.FormatInt(id, 10), "Share link revoked")
}

type profileVM struct {
	baseVM
	Profile *model.UserProfile
	Error   string
}

func (s *Server) handleProfile(w http.ResponseWriter, r *http.Request) {
	prof, err := s.cfg.Client.Profile.Get(r.Context())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.render(w, "profile.html", profileVM{baseVM: s.baseVM(r), Profile: prof})
}

func (s *Server) handleProfileUpdate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	str := func(k string) *string {
		v := r.Form.Get(k)
		return &v
	}
	_, err := s.cfg.Client.Profile.Update(r.Context(), api.ProfileUpdate{
		DisplayName: str("display_name"),
		Bio:         str("bio"),
		LinkedinURL: str("linkedin_url"),
		GithubURL:   str("github_url"),
		TwitterURL:  str("twitter_url"),
		WebsiteURL:  str("website_url"),
	})
	if err != nil {
		if errors.Is(err, model.ErrBioTooLong) {
			prof, getErr := s.cfg.Client.Profile.Get(r.Context())
			if getErr == nil {
				s.render(w, "profile.html", profileVM{baseVM: s.baseVM(r), Profile: prof, Error: errText(err)})
				return
			}
		}
		s.fail(w, r, err)
		return
	}
	redirectMsg(w, r, "/profile", "Profile saved")
}

type sharedVM struct {
	baseVM
	Item *model.SharedItem
}

// handleShared serves the public read-only projection; no login required.
func (s *Server) handleShared(w http.ResponseWriter, r *http.Request) {
	token := r.PathValue("token")
	item, err := s.cfg.Client.Share.Get(r.Context(), token)
	if err != nil {
		var apiErr *api.Error
		if errors.As(err, &apiErr) && (apiErr.Status == http.StatusNotFound || apiErr.Status == http.StatusGone) {
			http.Error(w, "This share link is invalid or has expired.", http.StatusNotFound)
			return
		}
		s.fail(w, r, err)
		return
	}
	s.render(w, "shared.html", sharedVM{baseVM: s.baseVM(r), Item: item})
}

func errText(err error) string {
	var apiErr *api.Error
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	return err.Error()
}
