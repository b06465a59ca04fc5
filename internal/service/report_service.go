package service

import (
	"context"
	"fmt"
	"time"

	"muhasebe-api/internal/core/domain"
	"muhasebe-api/internal/core/ports"
	"muhasebe-api/pkg/apperror"

	"github.com/shopspring/decimal"
)

// reportService implements ports.ReportService.
type reportService struct {
	accountingRepo ports.AccountingRepository
	fixedRepo      ports.FixedExpenseRepository
	incomeRepo     ports.IncomeRepository
	now            func() time.Time
}

// NewReportService creates a new report service.
func NewReportService(
	accountingRepo ports.AccountingRepository,
	fixedRepo ports.FixedExpenseRepository,
	incomeRepo ports.IncomeRepository,
) ports.ReportService {
	return &reportService{
		accountingRepo: accountingRepo,
		fixedRepo:      fixedRepo,
		incomeRepo:     incomeRepo,
		now:            func() time.Time { return time.Now().UTC() },
	}
}

// BuildSummary sums accounting records matching q and folds in every fixed
// income and expense in the store. Fixed amounts are never date or user scoped.
func (s *reportService) BuildSummary(ctx context.Context, q ports.ReportQuery) (*domain.Summary, error) {
	p, _ := domain.PrincipalFrom(ctx)
	if err := Authorize(p, domain.NewCapability(EntityAccounting, domain.ActionRead), "", q.UserID); err != nil {
		return nil, err
	}

	filter := ports.NewFilter()
	for field, id := range map[string]string{
		ports.FieldMerchantID:      q.MerchantID,
		ports.FieldIncomeID:        q.IncomeID,
		ports.FieldFixedExpensesID: q.FixedExpensesID,
	} {
		if id == "" {
			continue
		}
		if !domain.IsValidID(id) {
			return nil, apperror.Validation(field + " is not a valid id")
		}
		filter = filter.With(field, id)
	}

	var rng *domain.DateRange
	if q.Interval != "" {
		r, err := q.Interval.Range(s.now())
		if err != nil {
			return nil, apperror.Validation(fmt.Sprintf(
				"invalid interval %q: must be %s or %s", q.Interval, domain.Interval15Days, domain.Interval1Month,
			))
		}
		rng = &r
		filter.After = &r.Start
		filter.Before = &r.End
	}

	filter = ScopeToOwner(p, filter, q.UserID)

	records, _, err := s.accountingRepo.List(ctx, filter, ports.Page{})
	if err != nil {
		return nil, apperror.ErrDatabaseError(fmt.Errorf("list accounting records: %w", err))
	}
	fixed, _, err := s.fixedRepo.List(ctx, ports.NewFilter(), ports.Page{})
	if err != nil {
		return nil, apperror.ErrDatabaseError(fmt.Errorf("list fixed expenses: %w", err))
	}
	incomes, _, err := s.incomeRepo.List(ctx, ports.NewFilter(), ports.Page{})
	if err != nil {
		return nil, apperror.ErrDatabaseError(fmt.Errorf("list incomes: %w", err))
	}

	txIncome, txExpense := decimal.Zero, decimal.Zero
	for _, r := range records {
		switch r.Type {
		case domain.RecordTypeIncome:
			txIncome = txIncome.Add(r.Amount)
		case domain.RecordTypeExpense:
			txExpense = txExpense.Add(r.Amount)
		}
	}

	fixedExpense := decimal.Zero
	for _, f := range fixed {
		fixedExpense = fixedExpense.Add(f.Amount)
	}
	fixedIncome := decimal.Zero
	for _, in := range incomes {
		fixedIncome = fixedIncome.Add(in.Amount)
	}

	summary := domain.NewSummary(txIncome, txExpense, fixedIncome, fixedExpense)
	summary.RecordCount = len(records)
	summary.Interval = q.Interval
	summary.Range = rng
	summary.GeneratedAt = s.now()

	return &summary, nil
}

// IncomeTransactions lists the caller's Gelir records in [start, end).
func (s *reportService) IncomeTransactions(ctx context.Context, start, end *time.Time, page ports.Page) ([]domain.AccountingRecord, int64, error) {
	p, _ := domain.PrincipalFrom(ctx)
	if err := Authorize(p, domain.NewCapability(EntityAccounting, domain.ActionRead), "", ""); err != nil {
		return nil, 0, err
	}

	now := s.now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	if start == nil {
		start = &today
	}
	if end == nil {
		tomorrow := today.AddDate(0, 0, 1)
		end = &tomorrow
	}
	if !start.Before(*end) {
		return nil, 0, apperror.Validation("start must be before end")
	}

	filter := ports.NewFilter().With(ports.FieldType, string(domain.RecordTypeIncome))
	filter.Since = start
	filter.Before = end
	filter = ScopeToOwner(p, filter, "")

	records, total, err := s.accountingRepo.List(ctx, filter, page)
	if err != nil {
		return nil, 0, apperror.ErrDatabaseError(fmt.Errorf("list income transactions: %w", err))
	}
	return records, total, nil
}
