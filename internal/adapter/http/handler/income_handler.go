package handler

import (
	"muhasebe-api/internal/adapter/http/dto"
	"muhasebe-api/internal/core/domain"
	"muhasebe-api/internal/core/ports"
	"muhasebe-api/pkg/apperror"
	"muhasebe-api/pkg/response"

	"github.com/gin-gonic/gin"
)

// IncomeHandler serves /api/incomes.
type IncomeHandler struct {
	records ports.RecordService[domain.Income]
	reports ports.ReportService
}

// NewIncomeHandler creates a new IncomeHandler.
func NewIncomeHandler(records ports.RecordService[domain.Income], reports ports.ReportService) *IncomeHandler {
	return &IncomeHandler{records: records, reports: reports}
}

// Add handles POST /api/incomes/addIncome.
func (h *IncomeHandler) Add(c *gin.Context) {
	var req dto.TitledAmountRequest
	if !bindJSON(c, &req) {
		return
	}

	created, err := h.records.Create(c.Request.Context(), &domain.Income{
		Title:       req.Title,
		Description: req.Description,
		Amount:      *req.Amount,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, "Income created", created)
}

// List handles GET /api/incomes/getIncomes.
func (h *IncomeHandler) List(c *gin.Context) {
	q, ok := listQuery(c)
	if !ok {
		return
	}

	items, total, err := h.records.List(c.Request.Context(), q)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.List(c, "Incomes", items, total)
}

// Update handles POST /api/incomes/updateIncome.
func (h *IncomeHandler) Update(c *gin.Context) {
	var req dto.UpdateTitledAmountRequest
	if !bindJSON(c, &req) {
		return
	}

	updated, err := h.records.Update(c.Request.Context(), req.ID, func(rec *domain.Income) error {
		rec.Title = req.Title
		rec.Description = req.Description
		rec.Amount = *req.Amount
		return nil
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Income updated", updated)
}

// Delete handles POST /api/incomes/deleteIncome.
func (h *IncomeHandler) Delete(c *gin.Context) {
	var req dto.IDRequest
	if !bindJSON(c, &req) {
		return
	}

	if err := h.records.Delete(c.Request.Context(), req.ID); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Income deleted", nil)
}

// Transactions handles POST /api/incomes/getIncome: the Gelir accounting
// records dated in [startDate, endDate). Both bounds are optional.
func (h *IncomeHandler) Transactions(c *gin.Context) {
	var req dto.IncomeFilterRequest
	if !bindOptionalJSON(c, &req) {
		return
	}
	if req.StartDate != nil && req.EndDate != nil && !req.EndDate.After(*req.StartDate) {
		response.Error(c, apperror.Validation("endDate must be after startDate"))
		return
	}

	var pq dto.PageQuery
	if err := c.ShouldBindQuery(&pq); err != nil {
		response.Error(c, apperror.Validation(bindingMessage(err)))
		return
	}

	items, total, err := h.reports.IncomeTransactions(c.Request.Context(), req.StartDate, req.EndDate,
		ports.Page{Page: pq.Page, PageSize: pq.PageSize})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.List(c, "Income transactions", items, total)
}
