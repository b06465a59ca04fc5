package handler

import (
	"muhasebe-api/internal/adapter/http/middleware"
	"muhasebe-api/internal/core/domain"
	"muhasebe-api/internal/core/ports"

	sentrygin "github.com/getsentry/sentry-go/gin"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// maxBodyBytes caps every request body.
const maxBodyBytes = 1 << 20

// RouterDeps holds all dependencies needed to set up routes.
type RouterDeps struct {
	AuthSvc        ports.AuthService
	AccountingSvc  ports.RecordService[domain.AccountingRecord]
	FixedExpSvc    ports.RecordService[domain.FixedExpense]
	IncomeSvc      ports.RecordService[domain.Income]
	MerchantSvc    ports.RecordService[domain.Merchant]
	UserSvc        ports.UserService
	ReportSvc      ports.ReportService
	AuditSvc       ports.AuditService
	RateLimitStore middleware.Limiter // nil = rate limiting disabled
	HealthCheckers []ports.HealthChecker
	Cookie         CookieSettings
	SentryEnabled  bool
	Logger         zerolog.Logger
}

// SetupRouter initialises the Gin engine with all routes and middleware.
func SetupRouter(deps RouterDeps) *gin.Engine {
	r := gin.New()

	// Global middleware
	if deps.SentryEnabled {
		r.Use(sentrygin.New(sentrygin.Options{Repanic: true}))
	}
	r.Use(middleware.Recovery(deps.Logger))
	r.Use(middleware.RequestID())
	r.Use(middleware.RequestLogger(deps.Logger))
	r.Use(middleware.MaxBodySize(maxBodyBytes))
	r.Use(gzip.Gzip(gzip.DefaultCompression))

	r.GET("/health", HealthCheck(deps.HealthCheckers...))

	swagger := r.Group("/swagger")
	{
		swagger.GET("", SwaggerUI)
		swagger.GET("/spec", SwaggerSpec)
	}

	rules := middleware.DefaultRateLimitRules()
	rl := func(group string) gin.HandlerFunc {
		rule, ok := rules[group]
		if deps.RateLimitStore == nil || !ok {
			return func(c *gin.Context) { c.Next() }
		}
		return middleware.RateLimiter(deps.RateLimitStore, group, rule, deps.Logger)
	}

	cookieName := deps.Cookie.Name

	// --- Public routes ---
	authHandler := NewAuthHandler(deps.AuthSvc, deps.Cookie)
	r.POST("/login", rl(middleware.GroupLogin), authHandler.Login)
	r.POST("/logout", authHandler.Logout)
	r.POST("/createUser",
		middleware.OptionalSession(deps.AuthSvc, cookieName),
		rl(middleware.GroupRegister),
		authHandler.CreateUser,
	)

	// --- Session-authenticated routes ---
	authed := r.Group("", middleware.SessionAuth(deps.AuthSvc, cookieName), rl(middleware.GroupAPI))

	accountingHandler := NewAccountingHandler(deps.AccountingSvc, deps.ReportSvc)
	accounting := authed.Group("/api/accounting")
	{
		accounting.POST("/add-record", accountingHandler.Add)
		accounting.GET("/get-records", accountingHandler.List)
		accounting.POST("/update-record", accountingHandler.Update)
		accounting.POST("/delete-record", accountingHandler.Delete)
		accounting.GET("/accounting-reports", accountingHandler.Summary)
		accounting.GET("/accounting-reports/export", rl(middleware.GroupExport), accountingHandler.Export)
	}

	fixedHandler := NewFixedExpenseHandler(deps.FixedExpSvc)
	fixed := authed.Group("/api/fixedexpenses")
	{
		fixed.POST("/add-fixed-expenses", fixedHandler.Add)
		fixed.GET("/get-fixed-expenses", fixedHandler.List)
		fixed.POST("/update-fixed-expenses", fixedHandler.Update)
		fixed.POST("/delete-fixed-expenses", fixedHandler.Delete)
	}

	incomeHandler := NewIncomeHandler(deps.IncomeSvc, deps.ReportSvc)
	incomes := authed.Group("/api/incomes")
	{
		incomes.POST("/addIncome", incomeHandler.Add)
		incomes.GET("/getIncomes", incomeHandler.List)
		incomes.POST("/updateIncome", incomeHandler.Update)
		incomes.POST("/deleteIncome", incomeHandler.Delete)
		incomes.POST("/getIncome", incomeHandler.Transactions)
	}

	merchantHandler := NewMerchantHandler(deps.MerchantSvc)
	merchants := authed.Group("/api/merchants")
	{
		merchants.POST("/add-merchant", merchantHandler.Add)
		merchants.GET("/get-merchant", merchantHandler.List)
		merchants.POST("/update-merchant", merchantHandler.Update)
		merchants.POST("/delete-merchant", merchantHandler.Delete)
	}

	userHandler := NewUserHandler(deps.UserSvc)
	users := authed.Group("/api/user")
	{
		users.GET("", userHandler.List)
		users.GET("/me", userHandler.Me)
		users.POST("/update", userHandler.Update)
		users.POST("/delete", userHandler.Delete)
	}

	logHandler := NewLogHandler(deps.AuditSvc)
	logs := authed.Group("/log")
	{
		logs.POST("/getLogs", logHandler.GetLogs)
		logs.POST("/logrecordfilter", logHandler.Filter)
	}

	return r
}
