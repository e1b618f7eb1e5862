package domain

// Resource is a static marketplace listing. It has no lifecycle beyond
// existence.
type Resource struct {
	ID          int64    `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description,omitempty"`
	Category    string   `json:"category"`
	Price       string   `json:"price,omitempty"`
	Image       string   `json:"image,omitempty"`
	OwnerName   string   `json:"ownerName,omitempty"`
	OwnerEmail  string   `json:"ownerEmail,omitempty"`
	CreatedAt   FlexTime `json:"createdAt"`
}

// Owner returns the listing owner as an Identity, or false when the backend
// omitted the owner email (a known data gap the UI must guard against).
func (r *Resource) Owner() (Identity, bool) {
	if r.OwnerEmail == "" {
		return Identity{}, false
	}
	return Identity{Email: r.OwnerEmail, Name: r.OwnerName}, true
}
