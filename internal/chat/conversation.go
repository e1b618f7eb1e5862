// Package chat keeps the visible message list for the selected conversation
// consistent with the backend under two competing update channels: history
// refetches and live pushes, plus locally-originated optimistic sends.
package chat

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/aun009/resourcify/internal/domain"
)

// Backend is the slice of the API the conversation needs. *api.Client
// satisfies it.
type Backend interface {
	ChatHistory(ctx context.Context) ([]domain.Message, error)
	SendMessage(ctx context.Context, msg domain.Message) (*domain.Message, error)
}

// Conversation is the reconciler for the currently selected partner. At
// most one partner is active at a time; switching discards the list.
type Conversation struct {
	mu      sync.Mutex
	me      string
	partner domain.Identity
	active  bool
	msgs    []domain.Message
	log     *zap.Logger
}

func NewConversation(me string, log *zap.Logger) *Conversation {
	return &Conversation{me: me, log: log}
}

// Switch selects a new partner and clears the displayed list, so the
// previous conversation never bleeds into the next while history loads.
func (c *Conversation) Switch(partner domain.Identity) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.partner = partner
	c.active = true
	c.msgs = nil
}

// Close deselects the partner and drops the list.
func (c *Conversation) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.partner = domain.Identity{}
	c.active = false
	c.msgs = nil
}

// Partner returns the selected counterpart, if any.
func (c *Conversation) Partner() (domain.Identity, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.partner, c.active
}

// Messages returns a copy of the visible list in display order.
func (c *Conversation) Messages() []domain.Message {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]domain.Message, len(c.msgs))
	copy(out, c.msgs)
	return out
}

// SetHistory replaces the list with the pair-relevant subset of a full
// history fetch. Matching is case-insensitive on both emails. Provisional
// messages not present in the authoritative history are discarded here;
// they only outlive a send whose refetch never completed.
func (c *Conversation) SetHistory(all []domain.Message) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.active {
		return
	}
	relevant := make([]domain.Message, 0, len(all))
	for _, msg := range all {
		if msg.Between(c.me, c.partner.Email) {
			relevant = append(relevant, msg)
		}
	}
	c.msgs = relevant
}

// AppendLocal renders a provisional self-authored message immediately,
// before any network round trip. The returned message carries a LocalID
// and a client-generated timestamp.
func (c *Conversation) AppendLocal(content string) (domain.Message, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.active {
		return domain.Message{}, false
	}
	msg := domain.Message{
		Sender:    c.me,
		Recipient: c.partner.Email,
		Content:   content,
		Type:      domain.MessageTypeChat,
		Timestamp: domain.Now(),
		LocalID:   uuid.NewString(),
	}
	c.msgs = append(c.msgs, msg)
	return msg, true
}

// ApplyPush folds a live-pushed message into the visible list. Only
// counterpart-originated pushes for the active pair are appended;
// self-originated pushes are dropped because the optimistic append already
// rendered them. Reports whether the list changed.
func (c *Conversation) ApplyPush(msg domain.Message) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.active {
		return false
	}
	fromPartner := domain.EqualEmail(msg.Sender, c.partner.Email)
	fromMe := domain.EqualEmail(msg.Sender, c.me) && domain.EqualEmail(msg.Recipient, c.partner.Email)
	if !fromPartner && !fromMe {
		return false
	}
	if !fromPartner {
		// Own echo from the broker; the bubble is already on screen.
		return false
	}
	c.msgs = append(c.msgs, msg)
	return true
}

// Refresh refetches the full history and reconciles the visible list.
func (c *Conversation) Refresh(ctx context.Context, backend Backend) error {
	history, err := backend.ChatHistory(ctx)
	if err != nil {
		return err
	}
	c.SetHistory(history)
	return nil
}

// Send runs the optimistic write path: append a provisional bubble, issue
// the backend write, then refetch history to reconcile — regardless of the
// write's outcome. A failed send is logged and the provisional bubble
// stays; there is deliberately no rollback.
func (c *Conversation) Send(ctx context.Context, backend Backend, content string) {
	msg, ok := c.AppendLocal(content)
	if !ok {
		return
	}

	if _, err := backend.SendMessage(ctx, domain.Message{
		Sender:    msg.Sender,
		Recipient: msg.Recipient,
		Content:   msg.Content,
		Type:      msg.Type,
	}); err != nil {
		c.log.Warn("send failed, provisional message kept", zap.Error(err))
	}

	if err := c.Refresh(ctx, backend); err != nil {
		c.log.Warn("history refetch after send failed", zap.Error(err))
	}
}
