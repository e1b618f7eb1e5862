package validator

import (
	"fmt"
	"net/mail"
	"strings"
	"unicode"
)

type ValidationErrors map[string]string

func (v ValidationErrors) HasErrors() bool {
	return len(v) > 0
}

func (v ValidationErrors) Add(field, message string) {
	v[field] = message
}

func ValidateRegister(name, email, password string) ValidationErrors {
	errs := make(ValidationErrors)

	// Name
	name = strings.TrimSpace(name)
	if name == "" {
		errs.Add("name", "Name is required")
	} else if len(name) < 2 {
		errs.Add("name", "Name must be at least 2 characters")
	} else if len(name) > 100 {
		errs.Add("name", "Name is too long")
	}

	// Email
	email = strings.TrimSpace(email)
	if email == "" {
		errs.Add("email", "Email is required")
	} else if _, err := mail.ParseAddress(email); err != nil {
		errs.Add("email", "Invalid email address")
	}

	// Password
	validatePassword(password, errs)

	return errs
}

func ValidateLogin(email, password string) ValidationErrors {
	errs := make(ValidationErrors)

	email = strings.TrimSpace(email)
	if email == "" {
		errs.Add("email", "Email is required")
	} else if _, err := mail.ParseAddress(email); err != nil {
		errs.Add("email", "Invalid email address")
	}

	if password == "" {
		errs.Add("password", "Password is required")
	}

	return errs
}

// ValidatePost checks the marketplace post form before it leaves the
// client.
func ValidatePost(item, itemType, intent string) ValidationErrors {
	errs := make(ValidationErrors)

	item = strings.TrimSpace(item)
	if item == "" {
		errs.Add("item", "Title is required")
	} else if len(item) > 200 {
		errs.Add("item", "Title is too long")
	}

	if itemType != "Tools" && itemType != "Skills" {
		errs.Add("type", "Type must be Tools or Skills")
	}

	if intent != "REQUEST" && intent != "OFFER" {
		errs.Add("intent", "Intent must be REQUEST or OFFER")
	}

	return errs
}

// ValidateMessage rejects blank chat messages.
func ValidateMessage(recipient, content string) ValidationErrors {
	errs := make(ValidationErrors)

	if strings.TrimSpace(recipient) == "" {
		errs.Add("recipient", "Recipient is required")
	} else if _, err := mail.ParseAddress(recipient); err != nil {
		errs.Add("recipient", "Invalid recipient email")
	}

	if strings.TrimSpace(content) == "" {
		errs.Add("content", "Message is empty")
	} else if len(content) > 1000 {
		errs.Add("content", "Message is too long")
	}

	return errs
}

func validatePassword(password string, errs ValidationErrors) {
	if len(password) < 8 {
		errs.Add("password", "Password must be at least 8 characters")
		return
	}

	var hasUpper, hasLower, hasDigit bool
	for _, ch := range password {
		switch {
		case unicode.IsUpper(ch):
			hasUpper = true
		case unicode.IsLower(ch):
			hasLower = true
		case unicode.IsDigit(ch):
			hasDigit = true
		}
	}

	missing := []string{}
	if !hasUpper {
		missing = append(missing, "one uppercase letter")
	}
	if !hasLower {
		missing = append(missing, "one lowercase letter")
	}
	if !hasDigit {
		missing = append(missing, "one number")
	}

	if len(missing) > 0 {
		errs.Add("password", fmt.Sprintf("Password must contain at least %s", strings.Join(missing, ", ")))
	}
}
