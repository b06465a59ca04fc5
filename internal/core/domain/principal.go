package domain

import (
	"context"
	"slices"
	"strings"
)

// Role is the coarse permission level of a user.
type Role string

const (
	RoleAdmin Role = "Admin"
	RoleUser  Role = "User"
)

// Valid returns true for the two known roles.
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleUser
}

// UserStatus represents whether an account may sign in.
type UserStatus string

const (
	UserStatusActive  UserStatus = "Active"
	UserStatusPassive UserStatus = "Passive"
)

// Valid returns true for the two known statuses.
func (s UserStatus) Valid() bool {
	return s == UserStatusActive || s == UserStatusPassive
}

// Action is the verb half of a capability.
type Action string

const (
	ActionRead   Action = "read"
	ActionCreate Action = "create"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
)

// Capability names an operation on an entity, e.g. "accounting:delete".
type Capability string

// NewCapability builds the capability string for entity and action.
func NewCapability(entity string, action Action) Capability {
	return Capability(strings.ToLower(entity) + ":" + string(action))
}

// Principal is the authenticated identity behind a request.
type Principal struct {
	ID           string     `json:"id"`
	Username     string     `json:"username"`
	Role         Role       `json:"role"`
	Status       UserStatus `json:"status"`
	Restrictions []string   `json:"restrictions"`
}

// IsAdmin returns true if the principal holds the Admin role.
func (p *Principal) IsAdmin() bool {
	return p != nil && p.Role == RoleAdmin
}

// IsActive returns true unless the principal has been set Passive.
func (p *Principal) IsActive() bool {
	return p != nil && p.Status != UserStatusPassive
}

// IsRestricted reports whether c is listed in the principal's restrictions.
// Admins are never restricted.
func (p *Principal) IsRestricted(c Capability) bool {
	if p == nil || p.IsAdmin() {
		return false
	}
	return slices.ContainsFunc(p.Restrictions, func(r string) bool {
		return strings.EqualFold(strings.TrimSpace(r), string(c))
	})
}

type principalKey struct{}

// WithPrincipal returns a copy of ctx carrying p.
func WithPrincipal(ctx context.Context, p *Principal) context.Context {
	return context.WithValue(ctx, principalKey{}, p)
}

// PrincipalFrom extracts the principal placed by WithPrincipal.
func PrincipalFrom(ctx context.Context) (*Principal, bool) {
	p, ok := ctx.Value(principalKey{}).(*Principal)
	return p, ok && p != nil
}
