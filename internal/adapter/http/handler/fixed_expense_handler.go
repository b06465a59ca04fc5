package handler

import (
	"muhasebe-api/internal/adapter/http/dto"
	"muhasebe-api/internal/core/domain"
	"muhasebe-api/internal/core/ports"
	"muhasebe-api/pkg/response"

	"github.com/gin-gonic/gin"
)

// FixedExpenseHandler serves /api/fixedexpenses.
type FixedExpenseHandler struct {
	records ports.RecordService[domain.FixedExpense]
}

// NewFixedExpenseHandler creates a new FixedExpenseHandler.
func NewFixedExpenseHandler(records ports.RecordService[domain.FixedExpense]) *FixedExpenseHandler {
	return &FixedExpenseHandler{records: records}
}

// Add handles POST /api/fixedexpenses/add-fixed-expenses.
func (h *FixedExpenseHandler) Add(c *gin.Context) {
	var req dto.TitledAmountRequest
	if !bindJSON(c, &req) {
		return
	}

	created, err := h.records.Create(c.Request.Context(), &domain.FixedExpense{
		Title:       req.Title,
		Description: req.Description,
		Amount:      *req.Amount,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, "Fixed expense created", created)
}

// List handles GET /api/fixedexpenses/get-fixed-expenses.
func (h *FixedExpenseHandler) List(c *gin.Context) {
	q, ok := listQuery(c)
	if !ok {
		return
	}

	items, total, err := h.records.List(c.Request.Context(), q)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.List(c, "Fixed expenses", items, total)
}

// Update handles POST /api/fixedexpenses/update-fixed-expenses.
func (h *FixedExpenseHandler) Update(c *gin.Context) {
	var req dto.UpdateTitledAmountRequest
	if !bindJSON(c, &req) {
		return
	}

	updated, err := h.records.Update(c.Request.Context(), req.ID, func(rec *domain.FixedExpense) error {
		rec.Title = req.Title
		rec.Description = req.Description
		rec.Amount = *req.Amount
		return nil
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Fixed expense updated", updated)
}

// Delete handles POST /api/fixedexpenses/delete-fixed-expenses.
func (h *FixedExpenseHandler) Delete(c *gin.Context) {
	var req dto.IDRequest
	if !bindJSON(c, &req) {
		return
	}

	if err := h.records.Delete(c.Request.Context(), req.ID); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Fixed expense deleted", nil)
}
