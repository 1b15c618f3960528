package domain

import "time"

// User is an account allowed to read and write the shared record set.
// Accounts own no records; every authenticated user sees the same data.
type User struct {
	ID           int64
	Username     string
	PasswordHash string
	CreatedAt    time.Time
}

// Identity is what the authentication boundary hands to the rest of the app.
type Identity struct {
	UserID   int64
	Username string
}

// Credentials is a username/password pair that passed input validation.
type Credentials struct {
	Username string
	Password string
}

// Session is the proof of login returned to the client.
type Session struct {
	Token     string
	ExpiresAt time.Time
	Identity  Identity
}
