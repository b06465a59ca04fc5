package postgres

import (
	"context"
	"fmt"
	"time"

	"muhasebe-api/internal/core/domain"
)

// UserRepo implements ports.UserRepository.
type UserRepo struct {
	*RecordRepo[domain.User]
}

// NewUserRepo creates a new UserRepo.
func NewUserRepo(pool Pool) *UserRepo {
	return &UserRepo{RecordRepo: newRecordRepo(pool, userTable)}
}

// GetByUsername fetches a user by username. Returns (nil, nil) if absent.
func (r *UserRepo) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	return r.getBy(ctx, "username", username)
}

// TouchLastLogin records a successful login.
func (r *UserRepo) TouchLastLogin(ctx context.Context, id string, at time.Time) error {
	if _, err := r.pool.Exec(ctx, `UPDATE users SET last_login = $1 WHERE id = $2`, at, id); err != nil {
		return fmt.Errorf("update last_login: %w", err)
	}
	return nil
}
