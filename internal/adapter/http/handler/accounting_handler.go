package handler

import (
	"bytes"
	"fmt"
	"net/http"

	"muhasebe-api/internal/adapter/http/dto"
	"muhasebe-api/internal/core/domain"
	"muhasebe-api/internal/core/ports"
	"muhasebe-api/pkg/apperror"
	"muhasebe-api/pkg/response"

	"github.com/gin-gonic/gin"
)

const (
	defaultReportInterval = domain.Interval1Month
	xlsxContentType       = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// AccountingHandler serves /api/accounting.
type AccountingHandler struct {
	records ports.RecordService[domain.AccountingRecord]
	reports ports.ReportService
}

// NewAccountingHandler creates a new AccountingHandler.
func NewAccountingHandler(records ports.RecordService[domain.AccountingRecord], reports ports.ReportService) *AccountingHandler {
	return &AccountingHandler{records: records, reports: reports}
}

// Add handles POST /api/accounting/add-record.
func (h *AccountingHandler) Add(c *gin.Context) {
	var req dto.AccountingRecordRequest
	if !bindJSON(c, &req) {
		return
	}

	rec := &domain.AccountingRecord{}
	applyAccountingRequest(rec, req)

	created, err := h.records.Create(c.Request.Context(), rec)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, "Accounting record created", created)
}

// List handles GET /api/accounting/get-records.
func (h *AccountingHandler) List(c *gin.Context) {
	q, ok := listQuery(c)
	if !ok {
		return
	}

	items, total, err := h.records.List(c.Request.Context(), q)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.List(c, "Accounting records", items, total)
}

// Update handles POST /api/accounting/update-record.
func (h *AccountingHandler) Update(c *gin.Context) {
	var req dto.UpdateAccountingRecordRequest
	if !bindJSON(c, &req) {
		return
	}

	updated, err := h.records.Update(c.Request.Context(), req.ID, func(rec *domain.AccountingRecord) error {
		applyAccountingRequest(rec, req.AccountingRecordRequest)
		return nil
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Accounting record updated", updated)
}

// Delete handles POST /api/accounting/delete-record.
func (h *AccountingHandler) Delete(c *gin.Context) {
	var req dto.IDRequest
	if !bindJSON(c, &req) {
		return
	}

	if err := h.records.Delete(c.Request.Context(), req.ID); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Accounting record deleted", nil)
}

// Summary handles GET /api/accounting/accounting-reports.
func (h *AccountingHandler) Summary(c *gin.Context) {
	summary, ok := h.buildSummary(c)
	if !ok {
		return
	}
	response.OK(c, "Accounting summary", summary)
}

// Export handles GET /api/accounting/accounting-reports/export and returns
// the summary as an Excel workbook.
func (h *AccountingHandler) Export(c *gin.Context) {
	summary, ok := h.buildSummary(c)
	if !ok {
		return
	}

	var buf bytes.Buffer
	if err := h.reports.ExportSummary(summary, &buf); err != nil {
		response.Error(c, apperror.InternalError(err))
		return
	}

	filename := fmt.Sprintf("accounting-summary-%s.xlsx", summary.GeneratedAt.Format("20060102"))
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}

func (h *AccountingHandler) buildSummary(c *gin.Context) (*domain.Summary, bool) {
	var q dto.ReportQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.Error(c, apperror.Validation(bindingMessage(err)))
		return nil, false
	}
	interval := domain.ReportInterval(q.Interval)
	if interval == "" {
		interval = defaultReportInterval
	}

	summary, err := h.reports.BuildSummary(c.Request.Context(), ports.ReportQuery{
		Interval:        interval,
		UserID:          q.UserID,
		MerchantID:      q.MerchantID,
		IncomeID:        q.IncomeID,
		FixedExpensesID: q.FixedExpensesID,
	})
	if err != nil {
		response.Error(c, err)
		return nil, false
	}
	return summary, true
}

func applyAccountingRequest(rec *domain.AccountingRecord, req dto.AccountingRecordRequest) {
	rec.Type = domain.RecordType(req.Type)
	rec.Amount = *req.Amount
	rec.Currency = req.Currency
	rec.IncomeID = req.IncomeID
	rec.MerchantID = req.MerchantID
	rec.FixedExpensesID = req.FixedExpensesID
}
