package domain

// Request lifecycle statuses, owned by the backend. The client only renders
// snapshots and submits transition intents.
const (
	StatusOpen            = "OPEN"
	StatusPendingApproval = "PENDING_APPROVAL"
	StatusInProgress      = "IN_PROGRESS"
	StatusCompleted       = "COMPLETED"
)

const (
	IntentRequest = "REQUEST"
	IntentOffer   = "OFFER"
)

const (
	TypeTools  = "Tools"
	TypeSkills = "Skills"
)

// Action is a lifecycle transition intent.
type Action string

const (
	ActionOffer    Action = "offer"
	ActionAccept   Action = "accept"
	ActionReject   Action = "reject"
	ActionComplete Action = "complete"
	ActionReopen   Action = "reopen"
)

// transitions maps each action to the status it applies to:
//
//	OPEN --offer--> PENDING_APPROVAL --accept--> IN_PROGRESS --complete--> COMPLETED
//	PENDING_APPROVAL --reject--> OPEN
//	IN_PROGRESS --reopen--> OPEN
var transitions = map[Action]string{
	ActionOffer:    StatusOpen,
	ActionAccept:   StatusPendingApproval,
	ActionReject:   StatusPendingApproval,
	ActionComplete: StatusInProgress,
	ActionReopen:   StatusInProgress,
}

func (a Action) Valid() bool {
	_, ok := transitions[a]
	return ok
}

// AllowedFrom reports whether the action may be applied to a request in the
// given status. The backend enforces this too; the client checks so it can
// hide buttons rather than collect errors.
func (a Action) AllowedFrom(status string) bool {
	return transitions[a] == status
}

// Request is a marketplace lifecycle entity. The backend is authoritative;
// the client never mutates one locally beyond optimistic removal.
type Request struct {
	ID          int64     `json:"id"`
	Requester   *Identity `json:"requester"`
	Item        string    `json:"item"`
	Type        string    `json:"type"`
	Description string    `json:"description,omitempty"`
	Duration    string    `json:"duration,omitempty"`
	Intent      string    `json:"intent"`
	Status      string    `json:"status"`
	Helper      *Identity `json:"helper,omitempty"`
	Latitude    *float64  `json:"latitude,omitempty"`
	Longitude   *float64  `json:"longitude,omitempty"`
	Image       string    `json:"image,omitempty"`
	CreatedAt   FlexTime  `json:"createdAt"`
}

// OwnedBy reports whether the request was posted by the given email.
func (r *Request) OwnedBy(email string) bool {
	return r.Requester != nil && r.Requester.Is(email)
}
