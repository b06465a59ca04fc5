package service

import (
	"muhasebe-api/internal/core/domain"
	"muhasebe-api/pkg/apperror"
)

// Decision is the outcome of an access check.
type Decision int

const (
	Deny Decision = iota
	Allow
	Unauthenticated
)

func (d Decision) String() string {
	switch d {
	case Allow:
		return "allow"
	case Unauthenticated:
		return "unauthenticated"
	default:
		return "deny"
	}
}

// Evaluate decides whether p may exercise capability c.
//
// ownerID is the owning user of an existing record; it is empty for list
// calls and creates. requestedUserID is the owner a list call asks for; an
// admin may name anyone, everyone else only themselves.
func Evaluate(p *domain.Principal, c domain.Capability, ownerID, requestedUserID string) Decision {
	if p == nil || p.ID == "" {
		return Unauthenticated
	}
	if !p.IsActive() {
		return Deny
	}
	if p.IsAdmin() {
		return Allow
	}
	if p.IsRestricted(c) {
		return Deny
	}
	if ownerID != "" && ownerID != p.ID {
		return Deny
	}
	if requestedUserID != "" && requestedUserID != p.ID {
		return Deny
	}
	return Allow
}

// Authorize runs Evaluate and maps the decision to an error.
func Authorize(p *domain.Principal, c domain.Capability, ownerID, requestedUserID string) error {
	switch Evaluate(p, c, ownerID, requestedUserID) {
	case Allow:
		return nil
	case Unauthenticated:
		return apperror.ErrUnauthenticated()
	default:
		if p.IsRestricted(c) {
			return apperror.ErrForbidden("Operation " + string(c) + " is restricted for this user")
		}
		if !p.IsActive() {
			return apperror.ErrUserPassive()
		}
		return apperror.ErrForbidden("")
	}
}
