package service

import (
	"context"
	"fmt"
	"strings"

	"muhasebe-api/internal/core/domain"
	"muhasebe-api/internal/core/ports"
	"muhasebe-api/pkg/apperror"
)

type userService struct {
	records *RecordServiceImpl[domain.User]
	repo    ports.UserRepository
	hashSvc ports.HashService
}

// NewUserService creates the account management service.
func NewUserService(repo ports.UserRepository, hashSvc ports.HashService, audit ports.AuditService) ports.UserService {
	return &userService{
		records: NewRecordService(UserEntity(), repo, audit),
		repo:    repo,
		hashSvc: hashSvc,
	}
}

func (s *userService) List(ctx context.Context, q ports.ListQuery) ([]domain.User, int64, error) {
	return s.records.List(ctx, q)
}

func (s *userService) Get(ctx context.Context, id string) (*domain.User, error) {
	return s.records.Get(ctx, id)
}

// Update changes an account. Users may change their own username and
// password; role, status and restrictions are reserved to admins.
func (s *userService) Update(ctx context.Context, req ports.UserUpdate) (*domain.User, error) {
	p, ok := domain.PrincipalFrom(ctx)
	if !ok {
		return nil, apperror.ErrUnauthenticated()
	}
	if (req.Role != nil || req.Status != nil || req.Restrictions != nil) && !p.IsAdmin() {
		return nil, apperror.ErrForbidden("Only administrators can change role, status or restrictions")
	}

	return s.records.Update(ctx, req.ID, func(u *domain.User) error {
		if req.Username != nil {
			username := strings.TrimSpace(*req.Username)
			existing, err := s.repo.GetByUsername(ctx, username)
			if err != nil {
				return apperror.InternalError(fmt.Errorf("check username: %w", err))
			}
			if existing != nil && existing.ID != u.ID {
				return apperror.ErrUsernameExists()
			}
			u.Username = username
		}
		if req.Password != nil {
			if *req.Password == "" {
				return apperror.Validation("password must not be empty")
			}
			hash, err := s.hashSvc.Hash(*req.Password)
			if err != nil {
				return apperror.InternalError(fmt.Errorf("hash password: %w", err))
			}
			u.PasswordHash = hash
		}
		if req.Role != nil {
			u.Role = *req.Role
		}
		if req.Status != nil {
			u.Status = *req.Status
		}
		if req.Restrictions != nil {
			u.Restrictions = normalizeRestrictions(req.Restrictions)
		}
		return nil
	})
}

func (s *userService) Delete(ctx context.Context, id string) error {
	return s.records.Delete(ctx, id)
}

func normalizeRestrictions(in []string) []string {
	out := make([]string, 0, len(in))
	seen := make(map[string]struct{}, len(in))
	for _, r := range in {
		r = strings.ToLower(strings.TrimSpace(r))
		if r == "" {
			continue
		}
		if _, dup := seen[r]; dup {
			continue
		}
		seen[r] = struct{}{}
		out = append(out, r)
	}
	return out
}
