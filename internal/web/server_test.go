package web

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"notesflow-cli/internal/api"
	"notesflow-cli/internal/session"
)

// fakeBackend serves the envelope contract for the handful of endpoints the
// web tests touch.
func fakeBackend(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/auth/login", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"success":true,"data":{"token":"tok-123","user":{"id":1,"username":"dana","email":"dana@example.com"}}}`))
	})
	mux.HandleFunc("POST /api/auth/logout", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"success":true}`))
	})
	mux.HandleFunc("GET /api/notes", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"success":true,"data":{"notes":[{"id":1,"title":"Groceries","content":"- milk","background_color":"#FFF9C4","is_pinned":true}],"total":1}}`))
	})
	mux.HandleFunc("GET /api/tasks", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"success":true,"data":{"tasks":[{"id":5,"title":"Ship","status":"pending","priority":"high"}],"total":1}}`))
	})
	mux.HandleFunc("GET /api/tasks/stats", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"success":true,"data":{"statusCounts":{"pending":1,"in_progress":0,"completed":0}}}`))
	})
	mux.HandleFunc("GET /api/share/{token}", func(w http.ResponseWriter, r *http.Request) {
		if r.PathValue("token") == "gone" {
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"detail":"Share link not found"}`))
			return
		}
		_, _ = w.Write([]byte(`{"success":true,"data":{"type":"note","title":"Public note","content":"hello","background_color":"#FFFFFF"}}`))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func newTestWeb(t *testing.T) (*Server, *session.Store) {
	t.Helper()
	backend := fakeBackend(t)
	sess := session.NewStore("")
	c := api.New(backend.URL+"/api", sess)
	srv, err := NewServer(ServerConfig{Client: c})
	if err != nil {
		t.Fatalf("NewServer: %v", err)
	}
	return srv, sess
}

func TestDashboardRequiresLogin(t *testing.T) {
	srv, _ := newTestWeb(t)

	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want 303", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/login" {
		t.Fatalf("Location = %q, want /login", loc)
	}
}

func TestLoginSetsCookieAndRedirects(t *testing.T) {
	srv, sess := newTestWeb(t)

	form := url.Values{"email": {"dana@example.com"}, "password": {"secret"}}
	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want 303; body: %s", rec.Code, rec.Body.String())
	}
	if loc := rec.Header().Get("Location"); loc != "/dashboard" {
		t.Fatalf("Location = %q, want /dashboard", loc)
	}

	var cookie *http.Cookie
	for _, c := range rec.Result().Cookies() {
		if c.Name == sessionCookieName {
			cookie = c
		}
	}
	if cookie == nil {
		t.Fatal("auth_token cookie not set")
	}
	if cookie.Value != sess.Token() {
		t.Fatalf("cookie value %q does not match session token %q", cookie.Value, sess.Token())
	}
	if cookie.Path != "/" || !cookie.HttpOnly || cookie.SameSite != http.SameSiteLaxMode {
		t.Fatalf("cookie attributes wrong: %+v", cookie)
	}
	if cookie.Secure {
		t.Fatal("Secure must be off for plain-HTTP requests")
	}
}

func TestLoginPageBouncesAuthedUsers(t *testing.T) {
	srv, sess := newTestWeb(t)
	_ = sess.SetSession("tok-123", nil)

	req := httptest.NewRequest(http.MethodGet, "/login", nil)
	req.AddCookie(&http.Cookie{Name: sessionCookieName, Value: "tok-123"})
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusSeeOther || rec.Header().Get("Location") != "/dashboard" {
		t.Fatalf("status=%d location=%q, want 303 /dashboard", rec.Code, rec.Header().Get("Location"))
	}
}

func TestStaleCookieIsLoggedOut(t *testing.T) {
	srv, sess := newTestWeb(t)
	_ = sess.SetSession("tok-123", nil)

	// Cookie from an older login does not match the live token.
	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	req.AddCookie(&http.Cookie{Name: sessionCookieName, Value: "tok-old"})
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusSeeOther || rec.Header().Get("Location") != "/login" {
		t.Fatalf("status=%d location=%q, want 303 /login", rec.Code, rec.Header().Get("Location"))
	}
}

func TestDashboardRendersListsAndStats(t *testing.T) {
	srv, sess := newTestWeb(t)
	_ = sess.SetSession("tok-123", nil)

	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	req.AddCookie(&http.Cookie{Name: sessionCookieName, Value: "tok-123"})
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d; body: %s", rec.Code, rec.Body.String())
	}
	body := rec.Body.String()
	for _, want := range []string{"Groceries", "Ship", "Pending", "In Progress"} {
		if !strings.Contains(body, want) {
			t.Fatalf("dashboard missing %q", want)
		}
	}
}

func TestSharedPageIsPublic(t *testing.T) {
	srv, _ := newTestWeb(t)

	req := httptest.NewRequest(http.MethodGet, "/shared/abc123", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d; body: %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), "Public note") {
		t.Fatalf("shared page missing title: %s", rec.Body.String())
	}
}

func TestSharedPageExpiredToken(t *testing.T) {
	srv, _ := newTestWeb(t)

	req := httptest.NewRequest(http.MethodGet, "/shared/gone", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "invalid or has expired") {
		t.Fatalf("body = %q", rec.Body.String())
	}
}

func TestLogoutClearsCookie(t *testing.T) {
	srv, sess := newTestWeb(t)
	_ = sess.SetSession("tok-123", nil)

	req := httptest.NewRequest(http.MethodPost, "/logout", nil)
	req.AddCookie(&http.Cookie{Name: sessionCookieName, Value: "tok-123"})
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusSeeOther || rec.Header().Get("Location") != "/" {
		t.Fatalf("status=%d location=%q, want 303 /", rec.Code, rec.Header().Get("Location"))
	}
	var cleared bool
	for _, c := range rec.Result().Cookies() {
		if c.Name == sessionCookieName && c.MaxAge < 0 {
			cleared = true
		}
	}
	if !cleared {
		t.Fatal("auth_token cookie not cleared")
	}
	if sess.IsAuthenticated() {
		t.Fatal("session still authenticated after logout")
	}
}
