package domain

import "strings"

// Identity is an actor in the marketplace, keyed by email. The backend does
// not guarantee a normalized case for emails, so every comparison must fold
// case on both sides.
type Identity struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

// EqualEmail reports whether two emails identify the same account.
func EqualEmail(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}

// NormalizeEmail lower-cases an email for use as a lookup or topic key.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (i Identity) Is(email string) bool {
	return EqualEmail(i.Email, email)
}
