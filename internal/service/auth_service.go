package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"muhasebe-api/internal/core/domain"
	"muhasebe-api/internal/core/ports"
	"muhasebe-api/pkg/apperror"

	"github.com/google/uuid"
)

// AuthServiceImpl implements ports.AuthService.
type AuthServiceImpl struct {
	userRepo   ports.UserRepository
	sessions   ports.SessionStore
	hashSvc    ports.HashService
	tokenSvc   ports.TokenService
	audit      ports.AuditService
	sessionTTL time.Duration
	now        func() time.Time
}

// NewAuthService creates a new AuthServiceImpl.
func NewAuthService(
	userRepo ports.UserRepository,
	sessions ports.SessionStore,
	hashSvc ports.HashService,
	tokenSvc ports.TokenService,
	audit ports.AuditService,
	sessionTTL time.Duration,
) *AuthServiceImpl {
	return &AuthServiceImpl{
		userRepo:   userRepo,
		sessions:   sessions,
		hashSvc:    hashSvc,
		tokenSvc:   tokenSvc,
		audit:      audit,
		sessionTTL: sessionTTL,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

// Register creates a new active account. Only an admin may create another
// admin; anyone may create a User.
func (s *AuthServiceImpl) Register(ctx context.Context, req ports.RegisterRequest) (*domain.User, error) {
	actor, hasActor := domain.PrincipalFrom(ctx)

	role := req.Role
	if role == "" {
		role = domain.RoleUser
	}
	if !role.Valid() {
		return nil, apperror.Validation("role must be Admin or User")
	}
	if role == domain.RoleAdmin && !(actor.IsAdmin() && actor.IsActive()) {
		return nil, apperror.ErrForbidden("Only administrators can create administrator accounts")
	}

	username := strings.TrimSpace(req.Username)
	if username == "" || req.Password == "" {
		return nil, apperror.Validation("username and password are required")
	}

	// Check username uniqueness
	existing, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("check username: %w", err))
	}
	if existing != nil {
		return nil, apperror.ErrUsernameExists()
	}

	// Hash password with Argon2id
	passwordHash, err := s.hashSvc.Hash(req.Password)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("hash password: %w", err))
	}

	user := &domain.User{
		ID:           domain.NewID(),
		Username:     username,
		PasswordHash: passwordHash,
		Role:         role,
		Status:       domain.UserStatusActive,
		Restrictions: []string{},
		RegisteredAt: s.now(),
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("create user: %w", err))
	}

	actorID := user.ID
	if hasActor {
		actorID = actor.ID
	}
	s.audit.Record(ctx, ports.AuditEntry{
		ActorID: actorID,
		Action:  domain.AuditActionAdd,
		Target:  EntityUser,
		ItemID:  user.ID,
		New:     *user,
	})

	return user, nil
}

// Login validates credentials, opens a session and returns the token that
// refers to it.
func (s *AuthServiceImpl) Login(ctx context.Context, username, password string) (*ports.LoginResult, error) {
	user, err := s.userRepo.GetByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("find user: %w", err))
	}
	if user == nil {
		return nil, apperror.ErrInvalidCredentials()
	}

	// Verify password
	valid, err := s.hashSvc.Verify(password, user.PasswordHash)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("verify password: %w", err))
	}
	if !valid {
		return nil, apperror.ErrInvalidCredentials()
	}

	if !user.IsActive() {
		return nil, apperror.ErrUserPassive()
	}

	now := s.now()
	if err := s.userRepo.TouchLastLogin(ctx, user.ID, now); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("update last login: %w", err))
	}
	user.LastLogin = &now

	session := &domain.Session{
		ID:           uuid.NewString(),
		UserID:       user.ID,
		Username:     user.Username,
		Role:         user.Role,
		Status:       user.Status,
		Restrictions: user.Restrictions,
		CreatedAt:    now,
	}
	if err := s.sessions.Create(ctx, session, s.sessionTTL); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("create session: %w", err))
	}

	token, expiry, err := s.tokenSvc.Generate(session.ID, user.ID)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("generate token: %w", err))
	}

	return &ports.LoginResult{Token: token, ExpiresAt: expiry, User: user}, nil
}

// Logout ends the session behind token. Unknown or expired tokens are
// already logged out.
func (s *AuthServiceImpl) Logout(ctx context.Context, token string) error {
	claims, err := s.tokenSvc.Validate(token)
	if err != nil {
		return nil
	}
	if err := s.sessions.Delete(ctx, claims.SessionID); err != nil {
		return apperror.InternalError(fmt.Errorf("delete session: %w", err))
	}
	return nil
}

// Authenticate resolves token to the principal of a live session. Role,
// status and restrictions are re-read from the account so that changes
// apply to open sessions.
func (s *AuthServiceImpl) Authenticate(ctx context.Context, token string) (*domain.Principal, error) {
	claims, err := s.tokenSvc.Validate(token)
	if err != nil {
		return nil, apperror.ErrInvalidSession()
	}

	session, err := s.sessions.Get(ctx, claims.SessionID)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("load session: %w", err))
	}
	if session == nil || session.UserID != claims.UserID {
		return nil, apperror.ErrInvalidSession()
	}

	user, err := s.userRepo.GetByID(ctx, session.UserID)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("load session user: %w", err))
	}
	if user == nil {
		return nil, apperror.ErrInvalidSession()
	}

	return user.Principal(), nil
}
