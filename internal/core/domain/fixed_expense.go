package domain

import "github.com/shopspring/decimal"

// FixedExpense is a recurring expense counted into every report.
type FixedExpense struct {
	ID          string          `json:"id"`
	Title       string          `json:"title"`
	Description string          `json:"description,omitempty"`
	Amount      decimal.Decimal `json:"amount"`
	UserID      string          `json:"userId"`
}
