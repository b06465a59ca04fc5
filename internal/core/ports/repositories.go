package ports

import (
	"context"
	"time"

	"muhasebe-api/internal/core/domain"
)

// Field names understood by Filter.Eq. They match the JSON names of the
// domain types.
const (
	FieldUserID          = "userId"
	FieldType            = "type"
	FieldMerchantID      = "merchantId"
	FieldIncomeID        = "incomeId"
	FieldFixedExpensesID = "fixedExpensesId"
	FieldTarget          = "target"
	FieldItemID          = "itemId"
	FieldActionType      = "actionType"
)

// Filter selects records by exact field matches ANDed with an optional
// date window. Stores reject fields they do not know.
type Filter struct {
	Eq map[string]string

	After  *time.Time // date > After
	Since  *time.Time // date >= Since
	Before *time.Time // date < Before
}

// NewFilter returns an empty filter ready for With.
func NewFilter() Filter {
	return Filter{Eq: map[string]string{}}
}

// With returns a copy of f with field == value added.
func (f Filter) With(field, value string) Filter {
	eq := make(map[string]string, len(f.Eq)+1)
	for k, v := range f.Eq {
		eq[k] = v
	}
	eq[field] = value
	f.Eq = eq
	return f
}

// MatchesDate reports whether t satisfies the date window of f.
func (f Filter) MatchesDate(t time.Time) bool {
	if f.After != nil && !t.After(*f.After) {
		return false
	}
	if f.Since != nil && t.Before(*f.Since) {
		return false
	}
	if f.Before != nil && !t.Before(*f.Before) {
		return false
	}
	return true
}

// HasDate returns true if any date bound is set.
func (f Filter) HasDate() bool {
	return f.After != nil || f.Since != nil || f.Before != nil
}

// Page is a 1-based page request. PageSize 0 returns every match.
type Page struct {
	Page     int
	PageSize int
}

// Offset returns the number of records to skip.
func (p Page) Offset() int {
	if p.PageSize <= 0 || p.Page <= 1 {
		return 0
	}
	return (p.Page - 1) * p.PageSize
}

// Unbounded reports whether every match should be returned.
func (p Page) Unbounded() bool {
	return p.PageSize <= 0
}

// RecordRepository is the generic persistence contract for owned records.
// GetByID returns (nil, nil) when the id does not exist.
type RecordRepository[T any] interface {
	Create(ctx context.Context, rec *T) error
	GetByID(ctx context.Context, id string) (*T, error)
	// List returns one page of matches in insertion order plus the total
	// number of matches before pagination.
	List(ctx context.Context, filter Filter, page Page) ([]T, int64, error)
	// Replace overwrites the stored record with the same id. It returns
	// false if no record was replaced.
	Replace(ctx context.Context, rec *T) (bool, error)
	// Delete removes the record. It returns false if nothing was deleted.
	Delete(ctx context.Context, id string) (bool, error)
}

type (
	AccountingRepository   = RecordRepository[domain.AccountingRecord]
	FixedExpenseRepository = RecordRepository[domain.FixedExpense]
	IncomeRepository       = RecordRepository[domain.Income]
	MerchantRepository     = RecordRepository[domain.Merchant]
)

// UserRepository adds account lookups to the generic record contract.
type UserRepository interface {
	RecordRepository[domain.User]
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	TouchLastLogin(ctx context.Context, id string, at time.Time) error
}

// AuditRepository persists audit entries. List returns newest first.
type AuditRepository interface {
	Create(ctx context.Context, entry *domain.AuditLogEntry) error
	List(ctx context.Context, filter Filter, page Page) ([]domain.AuditLogEntry, int64, error)
}
