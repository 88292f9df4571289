package domain

import "time"

// User is a local account. Only the bcrypt hash of the password is ever
// stored or exported.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"passwordHash"`
	Email        string    `json:"email,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
	LastLogin    time.Time `json:"lastLogin,omitempty"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// Session is the single active login. ExpiresAt is Unix milliseconds so the
// value survives export/import unchanged.
type Session struct {
	Token      string `json:"token"`
	UserID     string `json:"userId"`
	Username   string `json:"username"`
	ExpiresAt  int64  `json:"expiresAt"`
	RememberMe bool   `json:"rememberMe"`
}

// Expired reports whether the session has passed its expiry.
func (s *Session) Expired(now time.Time) bool {
	return now.UnixMilli() > s.ExpiresAt
}

type UserRepository interface {
	Users() []User
	GetUser(id string) (*User, bool)
	FindUserByUsername(username string) (*User, bool)
	AddUser(u User) error
	UpdateUser(u User) error
	Session() (*Session, bool)
	SetSession(s Session) error
	ClearSession() error
}
