package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// RecordType is the direction of an accounting entry.
type RecordType string

const (
	RecordTypeIncome  RecordType = "Gelir"
	RecordTypeExpense RecordType = "Gider"
)

// Valid returns true only for the exact strings "Gelir" and "Gider".
func (t RecordType) Valid() bool {
	return t == RecordTypeIncome || t == RecordTypeExpense
}

// AccountingRecord is a single dated income or expense entry.
type AccountingRecord struct {
	ID              string          `json:"id"`
	UserID          string          `json:"userId"`
	Type            RecordType      `json:"type"`
	Amount          decimal.Decimal `json:"amount"`
	Currency        string          `json:"currency"`
	Date            time.Time       `json:"date"`
	IncomeID        *string         `json:"incomeId,omitempty"`
	MerchantID      *string         `json:"merchantId,omitempty"`
	FixedExpensesID *string         `json:"fixedExpensesId,omitempty"`
}
