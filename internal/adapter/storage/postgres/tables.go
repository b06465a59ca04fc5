package postgres

import (
	"muhasebe-api/internal/core/domain"
	"muhasebe-api/internal/core/ports"
)

// Object ids start with a timestamp, so ordering by id follows insertion.

var accountingTable = table[domain.AccountingRecord]{
	name:    "accounting_records",
	columns: []string{"id", "user_id", "type", "amount", "currency", "date", "income_id", "merchant_id", "fixed_expenses_id"},
	fields: map[string]string{
		ports.FieldUserID:          "user_id",
		ports.FieldType:            "type",
		ports.FieldIncomeID:        "income_id",
		ports.FieldMerchantID:      "merchant_id",
		ports.FieldFixedExpensesID: "fixed_expenses_id",
	},
	dateColumn: "date",
	orderBy:    "id",
	values: func(r *domain.AccountingRecord) []any {
		return []any{r.ID, r.UserID, r.Type, r.Amount, r.Currency, r.Date, r.IncomeID, r.MerchantID, r.FixedExpensesID}
	},
	targets: func(r *domain.AccountingRecord) []any {
		return []any{&r.ID, &r.UserID, &r.Type, &r.Amount, &r.Currency, &r.Date, &r.IncomeID, &r.MerchantID, &r.FixedExpensesID}
	},
}

var fixedExpenseTable = table[domain.FixedExpense]{
	name:    "fixed_expenses",
	columns: []string{"id", "title", "description", "amount", "user_id"},
	fields:  map[string]string{ports.FieldUserID: "user_id"},
	orderBy: "id",
	values: func(r *domain.FixedExpense) []any {
		return []any{r.ID, r.Title, r.Description, r.Amount, r.UserID}
	},
	targets: func(r *domain.FixedExpense) []any {
		return []any{&r.ID, &r.Title, &r.Description, &r.Amount, &r.UserID}
	},
}

var incomeTable = table[domain.Income]{
	name:       "incomes",
	columns:    []string{"id", "title", "description", "amount", "date", "user_id"},
	fields:     map[string]string{ports.FieldUserID: "user_id"},
	dateColumn: "date",
	orderBy:    "id",
	values: func(r *domain.Income) []any {
		return []any{r.ID, r.Title, r.Description, r.Amount, r.Date, r.UserID}
	},
	targets: func(r *domain.Income) []any {
		return []any{&r.ID, &r.Title, &r.Description, &r.Amount, &r.Date, &r.UserID}
	},
}

var merchantTable = table[domain.Merchant]{
	name:       "merchants",
	columns:    []string{"id", "title", "user_id", "date"},
	fields:     map[string]string{ports.FieldUserID: "user_id"},
	dateColumn: "date",
	orderBy:    "id",
	values: func(r *domain.Merchant) []any {
		return []any{r.ID, r.Title, r.UserID, r.Date}
	},
	targets: func(r *domain.Merchant) []any {
		return []any{&r.ID, &r.Title, &r.UserID, &r.Date}
	},
}

var userTable = table[domain.User]{
	name:    "users",
	columns: []string{"id", "username", "password_hash", "role", "status", "restrictions", "registered_at", "last_login"},
	fields: map[string]string{
		ports.FieldUserID: "id",
		"username":        "username",
		"role":            "role",
		"status":          "status",
	},
	dateColumn: "registered_at",
	orderBy:    "id",
	values: func(u *domain.User) []any {
		restrictions := u.Restrictions
		if restrictions == nil {
			restrictions = []string{}
		}
		return []any{u.ID, u.Username, u.PasswordHash, u.Role, u.Status, restrictions, u.RegisteredAt, u.LastLogin}
	},
	targets: func(u *domain.User) []any {
		return []any{&u.ID, &u.Username, &u.PasswordHash, &u.Role, &u.Status, &u.Restrictions, &u.RegisteredAt, &u.LastLogin}
	},
}

// NewAccountingRepo creates the accounting_records repository.
func NewAccountingRepo(pool Pool) *RecordRepo[domain.AccountingRecord] {
	return newRecordRepo(pool, accountingTable)
}

// NewFixedExpenseRepo creates the fixed_expenses repository.
func NewFixedExpenseRepo(pool Pool) *RecordRepo[domain.FixedExpense] {
	return newRecordRepo(pool, fixedExpenseTable)
}

// NewIncomeRepo creates the incomes repository.
func NewIncomeRepo(pool Pool) *RecordRepo[domain.Income] {
	return newRecordRepo(pool, incomeTable)
}

// NewMerchantRepo creates the merchants repository.
func NewMerchantRepo(pool Pool) *RecordRepo[domain.Merchant] {
	return newRecordRepo(pool, merchantTable)
}
