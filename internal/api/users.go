package api

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/aun009/resourcify/internal/domain"
)

// Me returns the canonical email of the authenticated user. The backend
// answers with the bare email string, which also fixes up any case drift in
// the locally-known identity.
func (c *Client) Me(ctx context.Context) (string, error) {
	email, err := c.text(ctx, http.MethodGet, "/api/users/me", nil)
	if err != nil {
		return "", err
	}
	c.sess.SetIdentity(email, "")
	return email, nil
}

func (c *Client) Profile(ctx context.Context) (*domain.User, error) {
	var user domain.User
	if err := c.getJSON(ctx, "/api/users/profile", &user); err != nil {
		return nil, err
	}
	c.sess.SetIdentity(user.Email, user.Name)
	return &user, nil
}

func (c *Client) UpdateProfile(ctx context.Context, user *domain.User) (*domain.User, error) {
	var updated domain.User
	if err := c.sendJSON(ctx, http.MethodPut, "/api/users/profile", user, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// UploadPhoto sends a profile photo as multipart form data.
func (c *Client) UploadPhoto(ctx context.Context, filename string, photo io.Reader) error {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("photo", filename)
	if err != nil {
		return fmt.Errorf("photo form: %w", err)
	}
	if _, err := io.Copy(part, photo); err != nil {
		return fmt.Errorf("photo form: %w", err)
	}
	if err := mw.Close(); err != nil {
		return fmt.Errorf("photo form: %w", err)
	}

	req, err := c.newRequest(ctx, http.MethodPut, "/api/users/photo", &buf, mw.FormDataContentType())
	if err != nil {
		return err
	}
	resp, err := c.do(req)
	if err != nil {
		return err
	}
	resp.Body.Close()
	return nil
}
