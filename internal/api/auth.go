package api

import (
	"context"
	"net/http"

	"github.com/aun009/resourcify/internal/session"
)

type loginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type registerInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login exchanges credentials for a bearer token. The backend answers with
// the raw token string. On success the client's session is replaced in
// place so every later call authenticates.
func (c *Client) Login(ctx context.Context, email, password string) (*session.Session, error) {
	token, err := c.text(ctx, http.MethodPost, "/api/auth/login", loginInput{Email: email, Password: password})
	if err != nil {
		return nil, err
	}

	if err := c.sess.Authenticate(token); err != nil {
		return nil, err
	}
	if c.sess.Email() == "" {
		c.sess.SetIdentity(email, "")
	}
	return c.sess, nil
}

// Register creates an account. The backend returns a plain-text outcome
// message which is surfaced on failure via *Error.
func (c *Client) Register(ctx context.Context, name, email, password string) error {
	_, err := c.text(ctx, http.MethodPost, "/api/auth/register", registerInput{Name: name, Email: email, Password: password})
	return err
}

// Logout drops the local credentials. There is no server-side session to
// revoke; the token simply ages out.
func (c *Client) Logout() {
	c.sess.Invalidate()
}
