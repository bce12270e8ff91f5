package session

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"notesflow-cli/internal/model"

	"github.com/stretchr/testify/require"
)

func TestSetGetClearRoundTrip(t *testing.T) {
	s := NewStore(filepath.Join(t.TempDir(), "session.json"))

	u := &model.User{ID: 7, Username: "ada", Email: "ada@example.com"}
	require.NoError(t, s.SetSession("tok-123", u))
	require.Equal(t, "tok-123", s.Token())
	require.True(t, s.IsAuthenticated())
	require.Equal(t, u, s.User())

	require.NoError(t, s.ClearSession())
	require.Empty(t, s.Token())
	require.False(t, s.IsAuthenticated())
	require.Nil(t, s.User())
}

func TestTokenFallsBackToMirrorOnce(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")

	first := NewStore(path)
	require.NoError(t, first.SetSession("tok-abc", &model.User{ID: 1}))

	// A fresh store (cold start) recovers the token from the mirror file but
	// not the user identity.
	fresh := NewStore(path)
	require.Equal(t, "tok-abc", fresh.Token())
	require.Nil(t, fresh.User())

	// The fallback read happens once; later reads serve from memory even if
	// the file disappears underneath us.
	require.NoError(t, os.Remove(path))
	require.Equal(t, "tok-abc", fresh.Token())
}

func TestMirrorFileIsPrivate(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("file modes are not meaningful on windows")
	}
	path := filepath.Join(t.TempDir(), "session.json")
	s := NewStore(path)
	require.NoError(t, s.SetSession("tok", nil))

	st, err := os.Stat(path)
	require.NoError(t, err)
	require.Equal(t, os.FileMode(0o600), st.Mode().Perm())
}

func TestMemoryOnlyStore(t *testing.T) {
	s := NewStore("")
	require.NoError(t, s.SetSession("tok", nil))
	require.Equal(t, "tok", s.Token())
	require.NoError(t, s.ClearSession())
	require.Empty(t, s.Token())
}
