package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"notesflow-cli/internal/session"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.Handler) (*Client, *session.Store) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	sess := session.NewStore("")
	return New(srv.URL, sess), sess
}

func TestDo_AttachesBearerAndDecodesEnvelope(t *testing.T) {
	sawAuth := ""
	c, sess := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sawAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"success":true,"message":"ok","data":{"notes":[{"id":1,"title":"a"}],"total":1}}`))
	}))
	require.NoError(t, sess.SetSession("tok-1", nil))

	notes, err := c.Notes.List(context.Background(), nil)
	require.NoError(t, err)
	require.Len(t, notes, 1)
	assert.Equal(t, int64(1), notes[0].ID)
	assert.Equal(t, "Bearer tok-1", sawAuth)
}

func TestDo_NoBearerWithoutSession(t *testing.T) {
	sawAuth := "unset"
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sawAuth = r.Header.Get("Authorization")
		_, _ = w.Write([]byte(`{"success":true,"data":{"type":"note","title":"t"}}`))
	}))

	_, err := c.Share.Get(context.Background(), "abc")
	require.NoError(t, err)
	assert.Empty(t, sawAuth)
}

func TestDo_401ClearsSessionAndFiresHook(t *testing.T) {
	c, sess := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"detail":"Invalid or expired token"}`))
	}))
	require.NoError(t, sess.SetSession("stale", nil))

	hookFired := false
	c.OnUnauthorized = func() {
		hookFired = true
		// The hook observes an already-cleared session.
		assert.False(t, sess.IsAuthenticated())
	}

	_, err := c.Notes.List(context.Background(), nil)
	require.Error(t, err)
	assert.True(t, IsUnauthorized(err))
	assert.False(t, IsNetwork(err))
	assert.True(t, hookFired)
	assert.False(t, sess.IsAuthenticated())

	var ae *Error
	require.ErrorAs(t, err, &ae)
	assert.Equal(t, http.StatusUnauthorized, ae.Status)
	assert.Equal(t, "Invalid or expired token", ae.Message)
}

func TestDo_NonOKCarriesServerMessage(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		_, _ = w.Write([]byte(`{"success":false,"message":"Email already registered"}`))
	}))

	_, err := c.Auth.Register(context.Background(), "ada", "ada@example.com", "pw")
	var ae *Error
	require.ErrorAs(t, err, &ae)
	assert.Equal(t, http.StatusConflict, ae.Status)
	assert.Equal(t, "Email already registered", ae.Message)
}

func TestDo_NonJSONBodyFallsBackToStatusText(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte(`<html>bad gateway</html>`))
	}))

	_, err := c.Notes.Get(context.Background(), 1)
	var ae *Error
	require.ErrorAs(t, err, &ae)
	assert.Equal(t, http.StatusBadGateway, ae.Status)
	assert.Equal(t, http.StatusText(http.StatusBadGateway), ae.Message)
}

func TestDo_GarbledOKBodyIsNotANetworkError(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`<html>not an envelope</html>`))
	}))

	_, err := c.Notes.List(context.Background(), nil)
	require.Error(t, err)
	// The server answered; only a missing response counts as a network error.
	assert.False(t, IsNetwork(err))

	var ae *Error
	require.ErrorAs(t, err, &ae)
	assert.Equal(t, http.StatusOK, ae.Status)
	assert.Equal(t, "invalid response from server", ae.Message)
}

func TestDo_TransportFailureIsStatusZero(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close() // nothing listening anymore

	c := New(srv.URL, session.NewStore(""))
	_, err := c.Notes.List(context.Background(), nil)
	require.Error(t, err)
	assert.True(t, IsNetwork(err))

	var ae *Error
	require.ErrorAs(t, err, &ae)
	assert.Equal(t, 0, ae.Status)
	assert.Contains(t, ae.Message, "network error")
}

func TestDo_IdempotencyKeyOnMutationsOnly(t *testing.T) {
	keys := map[string]string{}
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		keys[r.Method] = r.Header.Get("Idempotency-Key")
		_, _ = w.Write([]byte(`{"success":true,"data":{"id":1,"title":"x"}}`))
	}))

	_, err := c.Notes.Get(context.Background(), 1)
	require.NoError(t, err)
	_, err = c.Notes.Create(context.Background(), "x", "", "")
	require.NoError(t, err)

	assert.Empty(t, keys[http.MethodGet])
	assert.NotEmpty(t, keys[http.MethodPost])
}

func TestLogin_StoresSession(t *testing.T) {
	c, sess := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/auth/login", r.URL.Path)
		_, _ = w.Write([]byte(`{"success":true,"message":"Login successful","data":{"token":"tok-9","user":{"id":9,"username":"ada","email":"ada@example.com"}}}`))
	}))

	creds, err := c.Auth.Login(context.Background(), "ada@example.com", "pw")
	require.NoError(t, err)
	assert.Equal(t, "tok-9", creds.Token)
	assert.Equal(t, "tok-9", sess.Token())
	require.NotNil(t, sess.User())
	assert.Equal(t, "ada", sess.User().Username)
}

func TestLogout_ClearsSessionEvenOnServerError(t *testing.T) {
	c, sess := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"detail":"Invalid or expired token"}`))
	}))
	require.NoError(t, sess.SetSession("tok", nil))

	require.NoError(t, c.Auth.Logout(context.Background()))
	assert.False(t, sess.IsAuthenticated())
}
