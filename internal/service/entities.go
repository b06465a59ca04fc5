package service

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"muhasebe-api/internal/core/domain"
	"muhasebe-api/internal/core/ports"
	"muhasebe-api/pkg/apperror"

	"github.com/shopspring/decimal"
)

// Audit targets and capability prefixes.
const (
	EntityAccounting    = "Accounting"
	EntityFixedExpenses = "FixedExpenses"
	EntityIncome        = "Income"
	EntityMerchant      = "Merchant"
	EntityUser          = "User"
)

var currencyRe = regexp.MustCompile(`^[A-Z]{3}$`)

// AccountingEntity describes accounting records.
func AccountingEntity() Entity[domain.AccountingRecord] {
	return Entity[domain.AccountingRecord]{
		Name:  EntityAccounting,
		ID:    func(r *domain.AccountingRecord) string { return r.ID },
		Owner: func(r *domain.AccountingRecord) string { return r.UserID },
		Stamp: func(r *domain.AccountingRecord, owner string, now time.Time) {
			r.ID = domain.NewID()
			r.UserID = owner
			r.Date = now
		},
		Preserve: func(updated, old *domain.AccountingRecord) {
			updated.ID = old.ID
			updated.UserID = old.UserID
			updated.Date = old.Date
		},
		Normalize: func(r *domain.AccountingRecord) {
			r.Currency = strings.ToUpper(strings.TrimSpace(r.Currency))
			r.IncomeID = normalizeLink(r.IncomeID)
			r.MerchantID = normalizeLink(r.MerchantID)
			r.FixedExpensesID = normalizeLink(r.FixedExpensesID)
		},
		Validate: func(r *domain.AccountingRecord) error {
			if !r.Type.Valid() {
				return apperror.Validation(fmt.Sprintf("type must be %q or %q", domain.RecordTypeIncome, domain.RecordTypeExpense))
			}
			if err := nonNegative(r.Amount); err != nil {
				return err
			}
			if !currencyRe.MatchString(r.Currency) {
				return apperror.Validation("currency must be a three letter code")
			}
			for name, link := range map[string]*string{
				ports.FieldIncomeID:        r.IncomeID,
				ports.FieldMerchantID:      r.MerchantID,
				ports.FieldFixedExpensesID: r.FixedExpensesID,
			} {
				if link != nil && !domain.IsValidID(*link) {
					return apperror.Validation(name + " is not a valid id")
				}
			}
			return nil
		},
		Filterable: []string{ports.FieldType, ports.FieldMerchantID, ports.FieldIncomeID, ports.FieldFixedExpensesID},
	}
}

// FixedExpenseEntity describes fixed expenses.
func FixedExpenseEntity() Entity[domain.FixedExpense] {
	return Entity[domain.FixedExpense]{
		Name:  EntityFixedExpenses,
		ID:    func(r *domain.FixedExpense) string { return r.ID },
		Owner: func(r *domain.FixedExpense) string { return r.UserID },
		Stamp: func(r *domain.FixedExpense, owner string, _ time.Time) {
			r.ID = domain.NewID()
			r.UserID = owner
		},
		Preserve: func(updated, old *domain.FixedExpense) {
			updated.ID = old.ID
			updated.UserID = old.UserID
		},
		Normalize: func(r *domain.FixedExpense) {
			r.Title = strings.TrimSpace(r.Title)
		},
		Validate: func(r *domain.FixedExpense) error {
			if r.Title == "" {
				return apperror.Validation("title is required")
			}
			return nonNegative(r.Amount)
		},
	}
}

// IncomeEntity describes recurring incomes.
func IncomeEntity() Entity[domain.Income] {
	return Entity[domain.Income]{
		Name:  EntityIncome,
		ID:    func(r *domain.Income) string { return r.ID },
		Owner: func(r *domain.Income) string { return r.UserID },
		Stamp: func(r *domain.Income, owner string, now time.Time) {
			r.ID = domain.NewID()
			r.UserID = owner
			r.Date = now
		},
		Preserve: func(updated, old *domain.Income) {
			updated.ID = old.ID
			updated.UserID = old.UserID
			updated.Date = old.Date
		},
		Normalize: func(r *domain.Income) {
			r.Title = strings.TrimSpace(r.Title)
		},
		Validate: func(r *domain.Income) error {
			if r.Title == "" {
				return apperror.Validation("title is required")
			}
			return nonNegative(r.Amount)
		},
	}
}

// MerchantEntity describes merchants.
func MerchantEntity() Entity[domain.Merchant] {
	return Entity[domain.Merchant]{
		Name:  EntityMerchant,
		ID:    func(r *domain.Merchant) string { return r.ID },
		Owner: func(r *domain.Merchant) string { return r.UserID },
		Stamp: func(r *domain.Merchant, owner string, now time.Time) {
			r.ID = domain.NewID()
			r.UserID = owner
			r.Date = now
		},
		Preserve: func(updated, old *domain.Merchant) {
			updated.ID = old.ID
			updated.UserID = old.UserID
			updated.Date = old.Date
		},
		Normalize: func(r *domain.Merchant) {
			r.Title = strings.TrimSpace(r.Title)
		},
		Validate: func(r *domain.Merchant) error {
			if r.Title == "" {
				return apperror.Validation("title is required")
			}
			return nil
		},
	}
}

// UserEntity describes user accounts. A user owns itself.
func UserEntity() Entity[domain.User] {
	return Entity[domain.User]{
		Name:  EntityUser,
		ID:    func(u *domain.User) string { return u.ID },
		Owner: func(u *domain.User) string { return u.ID },
		Stamp: func(u *domain.User, _ string, now time.Time) {
			u.ID = domain.NewID()
			u.RegisteredAt = now
		},
		Preserve: func(updated, old *domain.User) {
			updated.ID = old.ID
			updated.RegisteredAt = old.RegisteredAt
			updated.LastLogin = old.LastLogin
		},
		Normalize: func(u *domain.User) {
			u.Username = strings.TrimSpace(u.Username)
		},
		Validate: func(u *domain.User) error {
			if u.Username == "" {
				return apperror.Validation("username is required")
			}
			if !u.Role.Valid() {
				return apperror.Validation("role must be Admin or User")
			}
			if !u.Status.Valid() {
				return apperror.Validation("status must be Active or Passive")
			}
			return nil
		},
		Filterable: []string{"role", "status"},
	}
}

func normalizeLink(id *string) *string {
	if id == nil {
		return nil
	}
	v := strings.TrimSpace(*id)
	if v == "" {
		return nil
	}
	return &v
}

func nonNegative(amount decimal.Decimal) error {
	if amount.IsNegative() {
		return apperror.Validation("amount must not be negative")
	}
	return nil
}
