package api

import (
	"context"
	"net/http"

	"notesflow-cli/internal/model"
)

type AuthClient struct {
	c *Client
}

// Credentials is the login/register response payload.
type Credentials struct {
	Token string     `json:"token"`
	User  model.User `json:"user"`
}

// Login exchanges email+password for a token and stores the session.
func (a *AuthClient) Login(ctx context.Context, email, password string) (*Credentials, error) {
	body := map[string]string{"email": email, "password": password}
	var creds Credentials
	if _, err := a.c.do(ctx, http.MethodPost, "/auth/login", nil, body, &creds); err != nil {
		return nil, err
	}
	if err := a.c.sess.SetSession(creds.Token, &creds.User); err != nil {
		return nil, err
	}
	return &creds, nil
}

// Register creates an account and stores the session.
func (a *AuthClient) Register(ctx context.Context, username, email, password string) (*Credentials, error) {
	body := map[string]string{"username": username, "email": email, "password": password}
	var creds Credentials
	if _, err := a.c.do(ctx, http.MethodPost, "/auth/register", nil, body, &creds); err != nil {
		return nil, err
	}
	if err := a.c.sess.SetSession(creds.Token, &creds.User); err != nil {
		return nil, err
	}
	return &creds, nil
}

// Profile fetches the authenticated user's identity. Used to repopulate the
// in-memory user after a cold start, since only the token survives restarts.
func (a *AuthClient) Profile(ctx context.Context) (*model.User, error) {
	var u model.User
	if _, err := a.c.do(ctx, http.MethodGet, "/auth/profile", nil, nil, &u); err != nil {
		return nil, err
	}
	a.c.sess.SetUser(&u)
	return &u, nil
}

// Logout tells the backend, then clears the local session regardless of the
// server's answer. A dead backend must not leave the client logged in.
func (a *AuthClient) Logout(ctx context.Context) error {
	_, err := a.c.do(ctx, http.MethodPost, "/auth/logout", nil, nil, nil)
	if clearErr := a.c.sess.ClearSession(); clearErr != nil && err == nil {
		err = clearErr
	}
	if IsUnauthorized(err) {
		// Session was already gone server-side; local state is clean now.
		return nil
	}
	return err
}
