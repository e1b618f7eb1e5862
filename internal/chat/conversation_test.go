package chat

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/aun009/resourcify/internal/domain"
)

var (
	me  = "alice@example.com"
	bob = domain.Identity{Email: "bob@example.com", Name: "Bob"}
)

// fakeBackend records sends and serves a canned history.
type fakeBackend struct {
	history  []domain.Message
	sent     []domain.Message
	sendErr  error
	histErr  error
	sendSeen int
}

func (f *fakeBackend) ChatHistory(_ context.Context) ([]domain.Message, error) {
	if f.histErr != nil {
		return nil, f.histErr
	}
	return f.history, nil
}

func (f *fakeBackend) SendMessage(_ context.Context, msg domain.Message) (*domain.Message, error) {
	f.sendSeen++
	if f.sendErr != nil {
		return nil, f.sendErr
	}
	msg.ID = int64(f.sendSeen)
	f.sent = append(f.sent, msg)
	f.history = append(f.history, msg)
	return &msg, nil
}

func newConv() *Conversation {
	c := NewConversation(me, zap.NewNop())
	c.Switch(bob)
	return c
}

func TestSetHistoryKeepsOnlyPairMessages(t *testing.T) {
	c := newConv()
	c.SetHistory([]domain.Message{
		{Sender: "Alice@Example.COM", Recipient: "BOB@example.com", Content: "mine"},
		{Sender: "bob@example.com", Recipient: "alice@example.com", Content: "his"},
		{Sender: "carol@example.com", Recipient: "alice@example.com", Content: "other thread"},
		{Sender: "bob@example.com", Recipient: "carol@example.com", Content: "not ours"},
	})

	msgs := c.Messages()
	require.Len(t, msgs, 2)
	assert.Equal(t, "mine", msgs[0].Content)
	assert.Equal(t, "his", msgs[1].Content)
}

func TestAppendLocalRendersImmediately(t *testing.T) {
	c := newConv()
	msg, ok := c.AppendLocal("hello bob")
	require.True(t, ok)

	assert.NotEmpty(t, msg.LocalID)
	assert.False(t, msg.Timestamp.IsZero())
	require.Len(t, c.Messages(), 1)
	assert.Equal(t, "hello bob", c.Messages()[0].Content)
}

func TestSelfPushIsSuppressed(t *testing.T) {
	c := newConv()
	_, ok := c.AppendLocal("hello bob")
	require.True(t, ok)

	// The broker echoes the send back on our own topic.
	changed := c.ApplyPush(domain.Message{Sender: me, Recipient: bob.Email, Content: "hello bob"})
	assert.False(t, changed)
	assert.Len(t, c.Messages(), 1, "optimistic send plus its echo must render one bubble")
}

func TestPartnerPushAppendsExactlyOnce(t *testing.T) {
	c := newConv()
	changed := c.ApplyPush(domain.Message{Sender: "BOB@example.com", Recipient: me, Content: "hi alice"})
	assert.True(t, changed)
	require.Len(t, c.Messages(), 1)
	assert.Equal(t, "hi alice", c.Messages()[0].Content)
}

func TestUnrelatedPushIsIgnored(t *testing.T) {
	c := newConv()
	changed := c.ApplyPush(domain.Message{Sender: "carol@example.com", Recipient: me, Content: "wrong thread"})
	assert.False(t, changed)
	assert.Empty(t, c.Messages())
}

func TestSwitchClearsBeforeNewHistoryArrives(t *testing.T) {
	c := newConv()
	c.SetHistory([]domain.Message{{Sender: bob.Email, Recipient: me, Content: "old"}})
	require.NotEmpty(t, c.Messages())

	c.Switch(domain.Identity{Email: "carol@example.com", Name: "Carol"})
	assert.Empty(t, c.Messages(), "no cross-contamination while the new history loads")
}

func TestSendReconcilesAgainstHistory(t *testing.T) {
	backend := &fakeBackend{}
	c := newConv()

	c.Send(context.Background(), backend, "hello bob")

	require.Len(t, backend.sent, 1)
	msgs := c.Messages()
	require.Len(t, msgs, 1)
	// The refetch replaced the provisional bubble with the confirmed record.
	assert.NotZero(t, msgs[0].ID)
	assert.Empty(t, msgs[0].LocalID)
}

func TestSendFailureKeepsProvisionalBubble(t *testing.T) {
	backend := &fakeBackend{
		sendErr: errors.New("connection refused"),
		histErr: errors.New("connection refused"),
	}
	c := newConv()

	c.Send(context.Background(), backend, "hello bob")

	msgs := c.Messages()
	require.Len(t, msgs, 1, "phantom message stays visible on network failure")
	assert.NotEmpty(t, msgs[0].LocalID)
}

func TestSendRejectedByBackendIsDroppedOnReconcile(t *testing.T) {
	// Write rejected but history still reachable: the refetch discards the
	// provisional record.
	backend := &fakeBackend{sendErr: errors.New("400 bad request")}
	c := newConv()

	c.Send(context.Background(), backend, "hello bob")
	assert.Empty(t, c.Messages())
}

func TestClosedConversationIgnoresEverything(t *testing.T) {
	c := newConv()
	c.Close()

	_, ok := c.AppendLocal("into the void")
	assert.False(t, ok)
	assert.False(t, c.ApplyPush(domain.Message{Sender: bob.Email, Recipient: me}))
	c.SetHistory([]domain.Message{{Sender: bob.Email, Recipient: me}})
	assert.Empty(t, c.Messages())
}
