package handler

import (
	"muhasebe-api/internal/adapter/http/dto"
	"muhasebe-api/internal/core/domain"
	"muhasebe-api/internal/core/ports"
	"muhasebe-api/pkg/response"

	"github.com/gin-gonic/gin"
)

// MerchantHandler serves /api/merchants.
type MerchantHandler struct {
	records ports.RecordService[domain.Merchant]
}

// NewMerchantHandler creates a new MerchantHandler.
func NewMerchantHandler(records ports.RecordService[domain.Merchant]) *MerchantHandler {
	return &MerchantHandler{records: records}
}

// Add handles POST /api/merchants/add-merchant.
func (h *MerchantHandler) Add(c *gin.Context) {
	var req dto.MerchantRequest
	if !bindJSON(c, &req) {
		return
	}

	created, err := h.records.Create(c.Request.Context(), &domain.Merchant{Title: req.Title})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, "Merchant created", created)
}

// List handles GET /api/merchants/get-merchant.
func (h *MerchantHandler) List(c *gin.Context) {
	q, ok := listQuery(c)
	if !ok {
		return
	}

	items, total, err := h.records.List(c.Request.Context(), q)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.List(c, "Merchants", items, total)
}

// Update handles POST /api/merchants/update-merchant.
func (h *MerchantHandler) Update(c *gin.Context) {
	var req dto.UpdateMerchantRequest
	if !bindJSON(c, &req) {
		return
	}

	updated, err := h.records.Update(c.Request.Context(), req.ID, func(rec *domain.Merchant) error {
		rec.Title = req.Title
		return nil
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Merchant updated", updated)
}

// Delete handles POST /api/merchants/delete-merchant.
func (h *MerchantHandler) Delete(c *gin.Context) {
	var req dto.IDRequest
	if !bindJSON(c, &req) {
		return
	}

	if err := h.records.Delete(c.Request.Context(), req.ID); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Merchant deleted", nil)
}
