package api

import (
	"context"
	"net/http"

	"github.com/aun009/resourcify/internal/domain"
)

// Partner is one entry in the conversation sidebar: the counterpart's
// identity plus an optional base64 photo.
type Partner struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Photo string `json:"photo,omitempty"`
}

// ChatHistory returns the authenticated user's full message history across
// all partners. Pair filtering happens client-side.
func (c *Client) ChatHistory(ctx context.Context) ([]domain.Message, error) {
	var out []domain.Message
	if err := c.getJSON(ctx, "/api/chat/history", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Conversations returns the partners the user has exchanged messages with.
func (c *Client) Conversations(ctx context.Context) ([]Partner, error) {
	var out []Partner
	if err := c.getJSON(ctx, "/api/chat/conversations", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// SendMessage persists a message and has the backend fan it out over the
// live channel. The backend overwrites the sender with the token identity
// and stamps a timestamp if the client left it zero.
func (c *Client) SendMessage(ctx context.Context, msg domain.Message) (*domain.Message, error) {
	if msg.Type == "" {
		msg.Type = domain.MessageTypeChat
	}
	var saved domain.Message
	if err := c.sendJSON(ctx, http.MethodPost, "/api/chat/send", msg, &saved); err != nil {
		return nil, err
	}
	return &saved, nil
}
