package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/aun009/resourcify/internal/domain"
)

// NewRequest is the payload for posting a marketplace request or offer.
// The coordinates come from the poster's location fix.
type NewRequest struct {
	Item        string   `json:"item"`
	Type        string   `json:"type"`
	Description string   `json:"description,omitempty"`
	Duration    string   `json:"duration,omitempty"`
	Intent      string   `json:"intent"`
	Status      string   `json:"status"`
	Image       string   `json:"image,omitempty"`
	Latitude    *float64 `json:"latitude,omitempty"`
	Longitude   *float64 `json:"longitude,omitempty"`
}

// Requests returns the public list of open requests. Unauthenticated.
func (c *Client) Requests(ctx context.Context) ([]domain.Request, error) {
	var out []domain.Request
	if err := c.getJSON(ctx, "/api/requests", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// MyRequests returns every request the authenticated user is involved in,
// as requester or helper.
func (c *Client) MyRequests(ctx context.Context) ([]domain.Request, error) {
	var out []domain.Request
	if err := c.getJSON(ctx, "/api/requests/my", &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) PostRequest(ctx context.Context, req NewRequest) (*domain.Request, error) {
	if req.Status == "" {
		req.Status = domain.StatusOpen
	}
	var created domain.Request
	if err := c.sendJSON(ctx, http.MethodPost, "/api/requests", req, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// RequestAction submits a lifecycle transition intent. The backend decides;
// the returned snapshot reflects its verdict.
func (c *Client) RequestAction(ctx context.Context, id int64, action domain.Action) (*domain.Request, error) {
	if !action.Valid() {
		return nil, fmt.Errorf("unknown lifecycle action %q", action)
	}
	var updated domain.Request
	path := fmt.Sprintf("/api/requests/%d/%s", id, action)
	if err := c.sendJSON(ctx, http.MethodPost, path, nil, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (c *Client) DeleteRequest(ctx context.Context, id int64) error {
	return c.sendJSON(ctx, http.MethodDelete, fmt.Sprintf("/api/requests/%d", id), nil, nil)
}

// DeleteAllMyRequests clears the authenticated user's entire activity.
func (c *Client) DeleteAllMyRequests(ctx context.Context) error {
	return c.sendJSON(ctx, http.MethodDelete, "/api/requests/my/all", nil, nil)
}
