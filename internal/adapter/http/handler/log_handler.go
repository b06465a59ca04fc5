package handler

import (
	"strconv"

	"muhasebe-api/internal/adapter/http/dto"
	"muhasebe-api/internal/core/ports"
	"muhasebe-api/pkg/apperror"
	"muhasebe-api/pkg/response"

	"github.com/gin-gonic/gin"
)

const defaultLogPageSize = 20

// LogHandler serves the audit log under /log. Admin only; the audit
// service enforces it.
type LogHandler struct {
	audit ports.AuditService
}

// NewLogHandler creates a new LogHandler.
func NewLogHandler(audit ports.AuditService) *LogHandler {
	return &LogHandler{audit: audit}
}

// GetLogs handles POST /log/getLogs. The body selects the page; offset is
// the page size.
func (h *LogHandler) GetLogs(c *gin.Context) {
	req := dto.GetLogsRequest{Page: 1, Offset: defaultLogPageSize}
	if !bindOptionalJSON(c, &req) {
		return
	}
	if req.Page == 0 {
		req.Page = 1
	}
	if req.Offset == 0 {
		req.Offset = defaultLogPageSize
	}

	logs, total, err := h.audit.List(c.Request.Context(), ports.AuditQuery{
		Page: ports.Page{Page: req.Page, PageSize: req.Offset},
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.List(c, "Audit logs", logs, total)
}

// Filter handles POST /log/logrecordfilter: entries for one target and/or
// record, paged by the pageNumber and pageSize query parameters.
func (h *LogHandler) Filter(c *gin.Context) {
	var req dto.LogFilterRequest
	if !bindOptionalJSON(c, &req) {
		return
	}

	page, err := queryInt(c, "pageNumber", 1)
	if err != nil {
		response.Error(c, err)
		return
	}
	size, err := queryInt(c, "pageSize", defaultLogPageSize)
	if err != nil {
		response.Error(c, err)
		return
	}

	logs, total, err := h.audit.List(c.Request.Context(), ports.AuditQuery{
		Target: req.Target,
		ItemID: req.ItemID,
		Page:   ports.Page{Page: page, PageSize: size},
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Audit logs", dto.LogFilterResponse{TotalCount: total, Logs: logs})
}

// queryInt reads a positive integer query parameter.
func queryInt(c *gin.Context, key string, def int) (int, error) {
	raw := c.Query(key)
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return 0, apperror.Validation(key + " must be a positive integer")
	}
	return n, nil
}
