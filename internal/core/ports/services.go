package ports

import (
	"context"
	"io"
	"time"

	"muhasebe-api/internal/core/domain"
)

// HashService handles password hashing (Argon2id).
type HashService interface {
	Hash(password string) (string, error)
	Verify(password string, hash string) (bool, error)
}

// TokenService signs and parses the token that carries a session id.
type TokenService interface {
	Generate(sessionID, userID string) (string, time.Time, error)
	Validate(tokenString string) (*TokenClaims, error)
}

// TokenClaims holds the parsed JWT claims.
type TokenClaims struct {
	SessionID string
	UserID    string
}

// SessionStore keeps login sessions. Get returns (nil, nil) when the
// session does not exist or has expired.
type SessionStore interface {
	Create(ctx context.Context, session *domain.Session, ttl time.Duration) error
	Get(ctx context.Context, id string) (*domain.Session, error)
	Delete(ctx context.Context, id string) error
}

// --- Service Ports (Business Logic) ---

// AuditService appends and lists audit entries. Record never fails the
// caller; write errors are reported out of band.
type AuditService interface {
	Record(ctx context.Context, entry AuditEntry)
	List(ctx context.Context, query AuditQuery) ([]domain.AuditLogEntry, int64, error)
}

// AuditEntry is the input to AuditService.Record. Old and New are
// serialized as JSON snapshots; nil means absent.
type AuditEntry struct {
	ActorID string
	Action  domain.AuditAction
	Target  string
	ItemID  string
	Old     any
	New     any
}

// AuditQuery filters the audit listing. Empty fields match everything.
type AuditQuery struct {
	Target string
	ItemID string
	Page   Page
}

// AuthService defines authentication business logic. The acting principal,
// when any, is read from the context.
type AuthService interface {
	Register(ctx context.Context, req RegisterRequest) (*domain.User, error)
	Login(ctx context.Context, username, password string) (*LoginResult, error)
	Logout(ctx context.Context, token string) error
	Authenticate(ctx context.Context, token string) (*domain.Principal, error)
}

// RegisterRequest holds input for user registration.
type RegisterRequest struct {
	Username string
	Password string
	Role     domain.Role
}

// LoginResult is returned on successful login.
type LoginResult struct {
	Token     string
	ExpiresAt time.Time
	User      *domain.User
}

// ListQuery selects records for a list call. UserID scopes an admin's
// query to one owner; for other principals it must be empty or their own id.
type ListQuery struct {
	UserID string
	Filter map[string]string
	Page   Page
}

// RecordService is the CRUD contract shared by every owned entity. The
// acting principal is read from the context.
type RecordService[T any] interface {
	Create(ctx context.Context, rec *T) (*T, error)
	List(ctx context.Context, query ListQuery) ([]T, int64, error)
	Get(ctx context.Context, id string) (*T, error)
	// Update loads the record, applies mutate to a copy and stores it.
	// Identity fields are restored after mutate runs.
	Update(ctx context.Context, id string, mutate func(*T) error) (*T, error)
	Delete(ctx context.Context, id string) error
}

// UserService manages accounts on top of the generic record contract.
type UserService interface {
	List(ctx context.Context, query ListQuery) ([]domain.User, int64, error)
	Get(ctx context.Context, id string) (*domain.User, error)
	Update(ctx context.Context, req UserUpdate) (*domain.User, error)
	Delete(ctx context.Context, id string) error
}

// UserUpdate carries the mutable user fields. Nil fields are left alone.
type UserUpdate struct {
	ID           string
	Username     *string
	Password     *string
	Role         *domain.Role
	Status       *domain.UserStatus
	Restrictions []string // nil leaves restrictions unchanged
}

// ReportQuery selects the accounting records a summary covers.
type ReportQuery struct {
	Interval        domain.ReportInterval // empty means unbounded
	UserID          string
	MerchantID      string
	IncomeID        string
	FixedExpensesID string
}

// ReportService builds income/expense summaries.
type ReportService interface {
	BuildSummary(ctx context.Context, query ReportQuery) (*domain.Summary, error)
	// IncomeTransactions lists Gelir records with start <= date < end.
	// Nil bounds default to today and tomorrow.
	IncomeTransactions(ctx context.Context, start, end *time.Time, page Page) ([]domain.AccountingRecord, int64, error)
	ExportSummary(summary *domain.Summary, w io.Writer) error
}
