package memory

import (
	"context"
	"errors"
	"strings"
	"time"

	"muhasebe-api/internal/core/domain"
	"muhasebe-api/internal/core/ports"
)

// ErrUsernameTaken mirrors the unique index on users.username.
var ErrUsernameTaken = errors.New("memory: username already exists")

func NewAccountingRepo() *Collection[domain.AccountingRecord] {
	return newCollection(schema[domain.AccountingRecord]{
		name: "accounting_records",
		id:   func(r *domain.AccountingRecord) string { return r.ID },
		fields: map[string]func(*domain.AccountingRecord) string{
			ports.FieldUserID:          func(r *domain.AccountingRecord) string { return r.UserID },
			ports.FieldType:            func(r *domain.AccountingRecord) string { return string(r.Type) },
			ports.FieldIncomeID:        func(r *domain.AccountingRecord) string { return deref(r.IncomeID) },
			ports.FieldMerchantID:      func(r *domain.AccountingRecord) string { return deref(r.MerchantID) },
			ports.FieldFixedExpensesID: func(r *domain.AccountingRecord) string { return deref(r.FixedExpensesID) },
		},
		date: func(r *domain.AccountingRecord) time.Time { return r.Date },
		clone: func(r domain.AccountingRecord) domain.AccountingRecord {
			r.IncomeID = cloneString(r.IncomeID)
			r.MerchantID = cloneString(r.MerchantID)
			r.FixedExpensesID = cloneString(r.FixedExpensesID)
			return r
		},
	})
}

func NewFixedExpenseRepo() *Collection[domain.FixedExpense] {
	return newCollection(schema[domain.FixedExpense]{
		name: "fixed_expenses",
		id:   func(r *domain.FixedExpense) string { return r.ID },
		fields: map[string]func(*domain.FixedExpense) string{
			ports.FieldUserID: func(r *domain.FixedExpense) string { return r.UserID },
		},
	})
}

func NewIncomeRepo() *Collection[domain.Income] {
	return newCollection(schema[domain.Income]{
		name: "incomes",
		id:   func(r *domain.Income) string { return r.ID },
		fields: map[string]func(*domain.Income) string{
			ports.FieldUserID: func(r *domain.Income) string { return r.UserID },
		},
		date: func(r *domain.Income) time.Time { return r.Date },
	})
}

func NewMerchantRepo() *Collection[domain.Merchant] {
	return newCollection(schema[domain.Merchant]{
		name: "merchants",
		id:   func(r *domain.Merchant) string { return r.ID },
		fields: map[string]func(*domain.Merchant) string{
			ports.FieldUserID: func(r *domain.Merchant) string { return r.UserID },
		},
		date: func(r *domain.Merchant) time.Time { return r.Date },
	})
}

// UserRepo implements ports.UserRepository.
type UserRepo struct {
	*Collection[domain.User]
}

func NewUserRepo() *UserRepo {
	return &UserRepo{Collection: newCollection(schema[domain.User]{
		name: "users",
		id:   func(u *domain.User) string { return u.ID },
		fields: map[string]func(*domain.User) string{
			ports.FieldUserID: func(u *domain.User) string { return u.ID },
			"username":        func(u *domain.User) string { return u.Username },
			"role":            func(u *domain.User) string { return string(u.Role) },
			"status":          func(u *domain.User) string { return string(u.Status) },
		},
		date: func(u *domain.User) time.Time { return u.RegisteredAt },
		clone: func(u domain.User) domain.User {
			u.Restrictions = append([]string(nil), u.Restrictions...)
			if u.LastLogin != nil {
				t := *u.LastLogin
				u.LastLogin = &t
			}
			return u
		},
	})}
}

// Create rejects a username that is already taken.
func (r *UserRepo) Create(ctx context.Context, u *domain.User) error {
	if existing := r.find(func(v *domain.User) bool { return v.Username == u.Username }); existing != nil {
		return ErrUsernameTaken
	}
	return r.Collection.Create(ctx, u)
}

// GetByUsername returns (nil, nil) if no user has the name.
func (r *UserRepo) GetByUsername(_ context.Context, username string) (*domain.User, error) {
	return r.find(func(u *domain.User) bool { return u.Username == username }), nil
}

func (r *UserRepo) TouchLastLogin(_ context.Context, id string, at time.Time) error {
	r.update(id, func(u *domain.User) { u.LastLogin = &at })
	return nil
}

// AuditRepo implements ports.AuditRepository. List is newest first.
type AuditRepo struct {
	entries *Collection[domain.AuditLogEntry]
}

func NewAuditRepo() *AuditRepo {
	return &AuditRepo{entries: newCollection(schema[domain.AuditLogEntry]{
		name: "audit_logs",
		id:   func(e *domain.AuditLogEntry) string { return e.ID },
		fields: map[string]func(*domain.AuditLogEntry) string{
			ports.FieldUserID:     func(e *domain.AuditLogEntry) string { return e.UserID },
			ports.FieldTarget:     func(e *domain.AuditLogEntry) string { return e.Target },
			ports.FieldItemID:     func(e *domain.AuditLogEntry) string { return e.ItemID },
			ports.FieldActionType: func(e *domain.AuditLogEntry) string { return string(e.ActionType) },
		},
		date: func(e *domain.AuditLogEntry) time.Time { return e.Date },
		clone: func(e domain.AuditLogEntry) domain.AuditLogEntry {
			e.OldValue = cloneString(e.OldValue)
			e.NewValue = cloneString(e.NewValue)
			return e
		},
		order: func(a, b *domain.AuditLogEntry) int {
			if c := b.Date.Compare(a.Date); c != 0 {
				return c
			}
			return strings.Compare(b.ID, a.ID)
		},
	})}
}

func (r *AuditRepo) Create(ctx context.Context, e *domain.AuditLogEntry) error {
	return r.entries.Create(ctx, e)
}

func (r *AuditRepo) List(ctx context.Context, filter ports.Filter, page ports.Page) ([]domain.AuditLogEntry, int64, error) {
	return r.entries.List(ctx, filter, page)
}
