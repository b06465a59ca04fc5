package service

import (
	"errors"
	"testing"

	"muhasebe-api/internal/core/domain"
	"muhasebe-api/pkg/apperror"

	"github.com/stretchr/testify/assert"
)

func TestEvaluate(t *testing.T) {
	admin := &domain.Principal{ID: "admin", Role: domain.RoleAdmin, Status: domain.UserStatusActive}
	user := &domain.Principal{ID: "u1", Role: domain.RoleUser, Status: domain.UserStatusActive}
	restricted := &domain.Principal{ID: "u2", Role: domain.RoleUser, Status: domain.UserStatusActive, Restrictions: []string{"accounting:delete"}}
	passive := &domain.Principal{ID: "u3", Role: domain.RoleUser, Status: domain.UserStatusPassive}

	del := domain.NewCapability("accounting", domain.ActionDelete)
	read := domain.NewCapability("accounting", domain.ActionRead)

	tests := []struct {
		name      string
		p         *domain.Principal
		c         domain.Capability
		owner     string
		requested string
		want      Decision
	}{
		{"no principal", nil, read, "", "", Unauthenticated},
		{"empty principal id", &domain.Principal{Role: domain.RoleUser}, read, "", "", Unauthenticated},
		{"admin any owner", admin, del, "someone", "", Allow},
		{"admin scoped list", admin, read, "", "someone", Allow},
		{"user own record", user, del, "u1", "", Allow},
		{"user foreign record", user, del, "u9", "", Deny},
		{"user list self", user, read, "", "u1", Allow},
		{"user list unscoped", user, read, "", "", Allow},
		{"user list other", user, read, "", "u9", Deny},
		{"restricted capability", restricted, del, "u2", "", Deny},
		{"restricted other capability", restricted, read, "u2", "", Allow},
		{"passive", passive, read, "u3", "", Deny},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Evaluate(tt.p, tt.c, tt.owner, tt.requested))
		})
	}
}

func TestAuthorize_ErrorMapping(t *testing.T) {
	read := domain.NewCapability("income", domain.ActionRead)

	err := Authorize(nil, read, "", "")
	assert.True(t, errors.Is(err, apperror.ErrUnauthenticated()))

	user := &domain.Principal{ID: "u1", Role: domain.RoleUser, Status: domain.UserStatusActive}
	err = Authorize(user, read, "u2", "")
	assert.True(t, errors.Is(err, apperror.ErrForbidden("")))

	passive := &domain.Principal{ID: "u1", Role: domain.RoleUser, Status: domain.UserStatusPassive}
	err = Authorize(passive, read, "u1", "")
	assert.True(t, errors.Is(err, apperror.ErrUserPassive()))

	restricted := &domain.Principal{ID: "u1", Role: domain.RoleUser, Status: domain.UserStatusActive, Restrictions: []string{"income:read"}}
	err = Authorize(restricted, read, "u1", "")
	var appErr *apperror.AppError
	assert.True(t, errors.As(err, &appErr))
	assert.Equal(t, "AUTH_003", appErr.Code)
	assert.Contains(t, appErr.Message, "income:read")

	assert.NoError(t, Authorize(user, read, "u1", ""))
}
