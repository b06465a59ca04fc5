package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Income is a recurring income source counted into every report.
type Income struct {
	ID          string          `json:"id"`
	Title       string          `json:"title"`
	Description string          `json:"description,omitempty"`
	Amount      decimal.Decimal `json:"amount"`
	Date        time.Time       `json:"date"`
	UserID      string          `json:"userId"`
}
