package domain

// MessageTypeChat is the only message type the client sends. JOIN and LEAVE
// exist on the wire but are never rendered.
const (
	MessageTypeChat  = "CHAT"
	MessageTypeJoin  = "JOIN"
	MessageTypeLeave = "LEAVE"
)

// Message is a single chat message between two identities. Messages are
// immutable once created; there is no edit or delete.
type Message struct {
	ID        int64    `json:"id,omitempty"`
	Sender    string   `json:"sender"`
	Recipient string   `json:"recipient"`
	Content   string   `json:"content"`
	RequestID *int64   `json:"requestId,omitempty"`
	Type      string   `json:"type"`
	Timestamp FlexTime `json:"timestamp"`

	// LocalID tags a provisional message rendered before the backend
	// confirmed it. Empty on anything that came off the wire.
	LocalID string `json:"-"`
}

// Between reports whether the message belongs to the conversation between
// the two given emails, in either direction.
func (m Message) Between(a, b string) bool {
	return (EqualEmail(m.Sender, a) && EqualEmail(m.Recipient, b)) ||
		(EqualEmail(m.Sender, b) && EqualEmail(m.Recipient, a))
}
