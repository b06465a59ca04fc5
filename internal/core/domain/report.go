package domain

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// ErrUnknownInterval is returned for report intervals other than the
// supported shortcuts.
var ErrUnknownInterval = errors.New("unknown report interval")

// ReportInterval is a named lookback window ending tomorrow at midnight.
type ReportInterval string

const (
	Interval15Days ReportInterval = "15days"
	Interval1Month ReportInterval = "1month"
)

// DateRange is an open interval: both bounds are exclusive.
type DateRange struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Contains reports whether Start < t < End.
func (r DateRange) Contains(t time.Time) bool {
	return t.After(r.Start) && t.Before(r.End)
}

// Range resolves the interval relative to now. The upper bound is the next
// midnight so that the whole of today is included.
func (i ReportInterval) Range(now time.Time) (DateRange, error) {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	end := today.AddDate(0, 0, 1)

	switch i {
	case Interval15Days:
		return DateRange{Start: today.AddDate(0, 0, -15), End: end}, nil
	case Interval1Month:
		return DateRange{Start: today.AddDate(0, -1, 0), End: end}, nil
	default:
		return DateRange{}, ErrUnknownInterval
	}
}

// Summary is the result of a report over accounting, income and fixed
// expense records.
type Summary struct {
	TransactionIncome  decimal.Decimal `json:"transactionIncome"`
	TransactionExpense decimal.Decimal `json:"transactionExpense"`
	FixedIncome        decimal.Decimal `json:"fixedIncome"`
	FixedExpense       decimal.Decimal `json:"fixedExpense"`
	TotalIncome        decimal.Decimal `json:"totalIncome"`
	TotalExpense       decimal.Decimal `json:"totalExpense"`
	Balance            decimal.Decimal `json:"balance"`
	// TransactionBalance ignores fixed income and expenses. Informational only.
	TransactionBalance decimal.Decimal `json:"transactionBalance"`
	RecordCount        int             `json:"recordCount"`
	Interval           ReportInterval  `json:"interval,omitempty"`
	Range              *DateRange      `json:"range,omitempty"`
	GeneratedAt        time.Time       `json:"generatedAt"`
}

// NewSummary derives totals and balance from the four partial sums.
func NewSummary(txIncome, txExpense, fixedIncome, fixedExpense decimal.Decimal) Summary {
	totalIncome := txIncome.Add(fixedIncome)
	totalExpense := txExpense.Add(fixedExpense)
	return Summary{
		TransactionIncome:  txIncome,
		TransactionExpense: txExpense,
		FixedIncome:        fixedIncome,
		FixedExpense:       fixedExpense,
		TotalIncome:        totalIncome,
		TotalExpense:       totalExpense,
		Balance:            totalIncome.Sub(totalExpense),
		TransactionBalance: txIncome.Sub(txExpense),
	}
}
