package domain

import "time"

// User is a registered account. The owning user of a User record is itself.
type User struct {
	ID           string     `json:"id"`
	Username     string     `json:"username"`
	PasswordHash string     `json:"-"` // Never expose
	Role         Role       `json:"role"`
	Status       UserStatus `json:"status"`
	Restrictions []string   `json:"restrictions"`
	RegisteredAt time.Time  `json:"registeredAt"`
	LastLogin    *time.Time `json:"lastLogin,omitempty"`
}

// IsActive returns true if the account may sign in.
func (u *User) IsActive() bool {
	return u.Status == UserStatusActive
}

// Principal projects the account onto the identity carried by a session.
func (u *User) Principal() *Principal {
	restrictions := make([]string, len(u.Restrictions))
	copy(restrictions, u.Restrictions)
	return &Principal{
		ID:           u.ID,
		Username:     u.Username,
		Role:         u.Role,
		Status:       u.Status,
		Restrictions: restrictions,
	}
}
