package domain

// User is the authenticated account's profile record.
type User struct {
	ID        int64    `json:"id,omitempty"`
	Name      string   `json:"name"`
	Email     string   `json:"email"`
	Karma     int      `json:"karma,omitempty"`
	Title     string   `json:"title,omitempty"`
	About     string   `json:"about,omitempty"`
	Skills    string   `json:"skills,omitempty"`
	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`
}

func (u *User) Identity() Identity {
	return Identity{Email: u.Email, Name: u.Name}
}
