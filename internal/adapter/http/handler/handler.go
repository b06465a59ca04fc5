package handler

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"muhasebe-api/internal/adapter/http/dto"
	"muhasebe-api/internal/core/domain"
	"muhasebe-api/internal/core/ports"
	"muhasebe-api/pkg/apperror"
	"muhasebe-api/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// reservedQueryParams are consumed by listQuery itself and never become
// equality filters.
var reservedQueryParams = map[string]bool{
	"page":     true,
	"pageSize": true,
	"userId":   true,
}

// bindJSON decodes and validates the request body into req, then trims and
// escapes its string fields. On failure the error response is already
// written and false is returned.
func bindJSON(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		response.Error(c, apperror.Validation(bindingMessage(err)))
		return false
	}
	dto.SanitizeStruct(req)
	return true
}

// bindOptionalJSON is bindJSON for endpoints whose body may be empty.
func bindOptionalJSON(c *gin.Context, req any) bool {
	if c.Request.Body == nil || c.Request.ContentLength == 0 {
		return true
	}
	if err := c.ShouldBindJSON(req); err != nil && !errors.Is(err, io.EOF) {
		response.Error(c, apperror.Validation(bindingMessage(err)))
		return false
	}
	dto.SanitizeStruct(req)
	return true
}

// listQuery builds a ListQuery from the URL: page and pageSize paginate,
// userId scopes an admin's query and every other parameter is an exact
// match filter.
func listQuery(c *gin.Context) (ports.ListQuery, bool) {
	var pq dto.PageQuery
	if err := c.ShouldBindQuery(&pq); err != nil {
		response.Error(c, apperror.Validation(bindingMessage(err)))
		return ports.ListQuery{}, false
	}

	userID := strings.TrimSpace(c.Query("userId"))
	if userID != "" && !domain.IsValidID(userID) {
		response.Error(c, apperror.Validation("userId is not a valid id"))
		return ports.ListQuery{}, false
	}

	filter := make(map[string]string)
	for key, values := range c.Request.URL.Query() {
		if reservedQueryParams[key] || len(values) == 0 {
			continue
		}
		filter[key] = strings.TrimSpace(values[0])
	}

	return ports.ListQuery{
		UserID: userID,
		Filter: filter,
		Page:   ports.Page{Page: pq.Page, PageSize: pq.PageSize},
	}, true
}

// bindingMessage turns binding errors into a client-facing message.
func bindingMessage(err error) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		parts := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			parts = append(parts, fmt.Sprintf("%s failed on '%s'", fe.Field(), fe.Tag()))
		}
		return strings.Join(parts, "; ")
	}

	var maxErr *http.MaxBytesError
	if errors.As(err, &maxErr) {
		return "request body too large"
	}
	if errors.Is(err, io.EOF) {
		return "request body is required"
	}
	return "invalid request body"
}
