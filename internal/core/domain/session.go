package domain

import "time"

// Session is the server-side state behind a login.
type Session struct {
	ID           string
	UserID       string
	Username     string
	Role         Role
	Status       UserStatus
	Restrictions []string
	CreatedAt    time.Time
}

// Principal returns the identity the session was issued to.
func (s *Session) Principal() *Principal {
	return &Principal{
		ID:           s.UserID,
		Username:     s.Username,
		Role:         s.Role,
		Status:       s.Status,
		Restrictions: s.Restrictions,
	}
}
