package domain

import "time"

// User represents an account managed through the users API.
type User struct {
	ID           int64
	Email        string
	PasswordHash string
	AuthToken    string
	FirstName    string
	LastName     string
	Image        string
	Bio          string
	URL          string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Principal is the caller resolved from an auth token.
type Principal struct {
	UserID int64
}

// FieldErrors maps a field name to its violation messages.
type FieldErrors map[string][]string

// Add appends a message for field.
func (f FieldErrors) Add(field, message string) {
	f[field] = append(f[field], message)
}

// Empty reports whether no violations were recorded.
func (f FieldErrors) Empty() bool {
	return len(f) == 0
}
