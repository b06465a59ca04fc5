package service

import (
	"context"
	"io"

	"muhasebe-api/internal/core/domain"

	"github.com/rs/zerolog"
)

func newTestLogger() zerolog.Logger {
	return zerolog.New(io.Discard)
}

func userCtx(id string, restrictions ...string) context.Context {
	return domain.WithPrincipal(context.Background(), &domain.Principal{
		ID:           id,
		Username:     "user-" + id,
		Role:         domain.RoleUser,
		Status:       domain.UserStatusActive,
		Restrictions: restrictions,
	})
}

func adminCtx(id string) context.Context {
	return domain.WithPrincipal(context.Background(), &domain.Principal{
		ID:       id,
		Username: "admin-" + id,
		Role:     domain.RoleAdmin,
		Status:   domain.UserStatusActive,
	})
}
