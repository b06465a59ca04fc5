package handler

import (
	"net/http"
	"time"

	"muhasebe-api/internal/adapter/http/dto"
	"muhasebe-api/internal/adapter/http/middleware"
	"muhasebe-api/internal/core/domain"
	"muhasebe-api/internal/core/ports"
	"muhasebe-api/pkg/response"

	"github.com/gin-gonic/gin"
)

// CookieSettings controls the session cookie set on login.
type CookieSettings struct {
	Name   string
	Secure bool
}

// AuthHandler handles login, logout and account creation.
type AuthHandler struct {
	authSvc ports.AuthService
	cookie  CookieSettings
	now     func() time.Time
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authSvc ports.AuthService, cookie CookieSettings) *AuthHandler {
	return &AuthHandler{authSvc: authSvc, cookie: cookie, now: time.Now}
}

// Login handles POST /login.
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if !bindJSON(c, &req) {
		return
	}

	res, err := h.authSvc.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		response.Error(c, err)
		return
	}

	maxAge := int(res.ExpiresAt.Sub(h.now()).Seconds())
	if maxAge < 1 {
		maxAge = 1
	}
	h.setCookie(c, res.Token, maxAge)

	response.OK(c, "Login successful", dto.LoginResponse{
		Token:     res.Token,
		ExpiresAt: res.ExpiresAt,
		User:      res.User,
	})
}

// Logout handles POST /logout. It succeeds even without a session.
func (h *AuthHandler) Logout(c *gin.Context) {
	if token := middleware.ExtractToken(c, h.cookie.Name); token != "" {
		if err := h.authSvc.Logout(c.Request.Context(), token); err != nil {
			response.Error(c, err)
			return
		}
	}
	h.setCookie(c, "", -1)
	response.OK(c, "Logged out", nil)
}

// CreateUser handles POST /createUser. Anonymous callers may create a User;
// creating an Admin requires an Admin session.
func (h *AuthHandler) CreateUser(c *gin.Context) {
	var req dto.CreateUserRequest
	if !bindJSON(c, &req) {
		return
	}

	user, err := h.authSvc.Register(c.Request.Context(), ports.RegisterRequest{
		Username: req.Username,
		Password: req.Password,
		Role:     domain.Role(req.Role),
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "User created", user)
}

func (h *AuthHandler) setCookie(c *gin.Context, value string, maxAge int) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.cookie.Name, value, maxAge, "/", "", h.cookie.Secure, true)
}

// HealthCheck handles GET /health and pings every dependency.
func HealthCheck(checkers ...ports.HealthChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		type depStatus struct {
			Status string `json:"status"`
			Error  string `json:"error,omitempty"`
		}

		deps := make(map[string]depStatus)
		allHealthy := true

		for _, checker := range checkers {
			if err := checker.Ping(c.Request.Context()); err != nil {
				deps[checker.Name()] = depStatus{Status: "unhealthy", Error: err.Error()}
				allHealthy = false
			} else {
				deps[checker.Name()] = depStatus{Status: "healthy"}
			}
		}

		status := "healthy"
		httpCode := http.StatusOK
		if !allHealthy {
			status = "degraded"
			httpCode = http.StatusServiceUnavailable
		}

		c.JSON(httpCode, gin.H{
			"status":       status,
			"dependencies": deps,
		})
	}
}
