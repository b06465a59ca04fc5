package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// LoginRequest is the request body for POST /login.
type LoginRequest struct {
	Username string `json:"username" binding:"required,max=50"`
	Password string `json:"password" binding:"required,max=128" sanitize:"-"`
}

// LoginResponse is returned on a successful login. The token is also set
// as the session cookie.
type LoginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
	User      any       `json:"user"`
}

// CreateUserRequest is the request body for POST /createUser.
type CreateUserRequest struct {
	Username string `json:"username" binding:"required,min=3,max=50"`
	Password string `json:"password" binding:"required,min=8,max=128" sanitize:"-"`
	Role     string `json:"role" binding:"omitempty,oneof=Admin User"`
}

// IDRequest carries the target of update/delete style POST endpoints.
type IDRequest struct {
	ID string `json:"id" binding:"required,object_id"`
}

// AccountingRecordRequest is the body of add-record.
type AccountingRecordRequest struct {
	Type            string           `json:"type" binding:"required,record_type"`
	Amount          *decimal.Decimal `json:"amount" binding:"required"`
	Currency        string           `json:"currency" binding:"required,currency"`
	IncomeID        *string          `json:"incomeId" binding:"omitempty,object_id"`
	MerchantID      *string          `json:"merchantId" binding:"omitempty,object_id"`
	FixedExpensesID *string          `json:"fixedExpensesId" binding:"omitempty,object_id"`
}

// UpdateAccountingRecordRequest is the body of update-record.
type UpdateAccountingRecordRequest struct {
	ID string `json:"id" binding:"required,object_id"`
	AccountingRecordRequest
}

// TitledAmountRequest is the body shared by fixed expense and income creation.
type TitledAmountRequest struct {
	Title       string           `json:"title" binding:"required,max=200" sanitize:"html"`
	Description string           `json:"description" binding:"max=1000" sanitize:"html"`
	Amount      *decimal.Decimal `json:"amount" binding:"required"`
}

// UpdateTitledAmountRequest is the update variant of TitledAmountRequest.
type UpdateTitledAmountRequest struct {
	ID string `json:"id" binding:"required,object_id"`
	TitledAmountRequest
}

// MerchantRequest is the body of add-merchant.
type MerchantRequest struct {
	Title string `json:"title" binding:"required,max=200" sanitize:"html"`
}

// UpdateMerchantRequest is the body of update-merchant.
type UpdateMerchantRequest struct {
	ID    string `json:"id" binding:"required,object_id"`
	Title string `json:"title" binding:"required,max=200" sanitize:"html"`
}

// UpdateUserRequest is the body of /api/user/update. Omitted fields are
// left unchanged.
type UpdateUserRequest struct {
	ID           string   `json:"id" binding:"required,object_id"`
	Username     *string  `json:"username" binding:"omitempty,min=3,max=50"`
	Password     *string  `json:"password" binding:"omitempty,min=8,max=128" sanitize:"-"`
	Role         *string  `json:"role" binding:"omitempty,oneof=Admin User"`
	Status       *string  `json:"status" binding:"omitempty,oneof=Active Passive"`
	Restrictions []string `json:"restrictions" binding:"omitempty,dive,capability"`
}

// IncomeFilterRequest is the body of POST /api/incomes/getIncome.
type IncomeFilterRequest struct {
	StartDate *time.Time `json:"startDate"`
	EndDate   *time.Time `json:"endDate"`
}

// PageQuery holds the pagination query parameters of list endpoints.
// PageSize 0 returns everything.
type PageQuery struct {
	Page     int `form:"page" binding:"omitempty,min=1"`
	PageSize int `form:"pageSize" binding:"omitempty,min=0,max=500"`
}

// ReportQuery holds the query parameters of accounting-reports.
type ReportQuery struct {
	Interval        string `form:"interval"`
	UserID          string `form:"userId" binding:"omitempty,object_id"`
	MerchantID      string `form:"merchantId" binding:"omitempty,object_id"`
	IncomeID        string `form:"incomeId" binding:"omitempty,object_id"`
	FixedExpensesID string `form:"fixedExpensesId" binding:"omitempty,object_id"`
}

// GetLogsRequest is the body of POST /log/getLogs.
type GetLogsRequest struct {
	Page   int `json:"page" binding:"omitempty,min=1"`
	Offset int `json:"offset" binding:"omitempty,min=1,max=500"` // page size
}

// LogFilterRequest is the body of POST /log/logrecordfilter.
type LogFilterRequest struct {
	Target string `json:"target"`
	ItemID string `json:"itemId" binding:"omitempty,object_id"`
}

// LogFilterResponse is the payload of logrecordfilter.
type LogFilterResponse struct {
	TotalCount int64 `json:"totalCount"`
	Logs       any   `json:"logs"`
}
