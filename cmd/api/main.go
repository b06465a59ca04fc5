package main

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"muhasebe-api/config"
	httpHandler "muhasebe-api/internal/adapter/http/handler"
	"muhasebe-api/internal/adapter/storage/memory"
	pgStorage "muhasebe-api/internal/adapter/storage/postgres"
	redisStorage "muhasebe-api/internal/adapter/storage/redis"
	"muhasebe-api/internal/core/ports"
	"muhasebe-api/internal/service"
	"muhasebe-api/pkg/logger"

	"github.com/getsentry/sentry-go"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// repositories is the record store selected by database.driver.
type repositories struct {
	users      ports.UserRepository
	accounting ports.AccountingRepository
	fixed      ports.FixedExpenseRepository
	incomes    ports.IncomeRepository
	merchants  ports.MerchantRepository
	audit      ports.AuditRepository
	health     []ports.HealthChecker
	close      func()
}

func main() {
	// Load configuration
	cfg, err := config.Load(os.Getenv("MHS_CONFIG_FILE"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "invalid config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log := logger.New(cfg.Log.Level, cfg.Log.Pretty)

	log.Info().
		Str("mode", cfg.Server.Mode).
		Str("driver", cfg.Database.Driver).
		Int("port", cfg.Server.Port).
		Msg("Starting Muhasebe API")

	// Initialize Sentry when a DSN is configured
	sentryEnabled := cfg.Sentry.DSN != ""
	if sentryEnabled {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:              cfg.Sentry.DSN,
			Environment:      cfg.Sentry.Environment,
			TracesSampleRate: cfg.Sentry.TracesSampleRate,
		}); err != nil {
			log.Error().Err(err).Msg("Sentry initialization failed")
			sentryEnabled = false
		} else {
			log.Info().Msg("Sentry initialized")
			defer sentry.Flush(5 * time.Second)
		}
	}

	ctx := context.Background()

	repos, err := openRepositories(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open record store")
	}
	defer repos.close()

	// Initialize Redis client (sessions and rate limits)
	rdb, err := redisStorage.NewClient(ctx, cfg.Redis, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer rdb.Close()
	log.Info().Msg("Redis connected")

	secret := cfg.Session.Secret
	if secret == "" {
		secret = ephemeralSecret()
		log.Warn().Msg("session.secret not set, using a random secret; sessions end on restart")
	}

	// Initialize core services
	hashSvc := service.NewArgon2HashService(service.DefaultArgon2Params)
	tokenSvc := service.NewJWTTokenService(secret, cfg.Session.TTL, cfg.Session.Issuer)
	auditSvc := service.NewAuditService(repos.audit, log)
	sessionStore := redisStorage.NewSessionStore(rdb)

	authSvc := service.NewAuthService(repos.users, sessionStore, hashSvc, tokenSvc, auditSvc, cfg.Session.TTL)
	userSvc := service.NewUserService(repos.users, hashSvc, auditSvc)
	reportSvc := service.NewReportService(repos.accounting, repos.fixed, repos.incomes)

	deps := httpHandler.RouterDeps{
		AuthSvc:        authSvc,
		AccountingSvc:  service.NewRecordService(service.AccountingEntity(), repos.accounting, auditSvc),
		FixedExpSvc:    service.NewRecordService(service.FixedExpenseEntity(), repos.fixed, auditSvc),
		IncomeSvc:      service.NewRecordService(service.IncomeEntity(), repos.incomes, auditSvc),
		MerchantSvc:    service.NewRecordService(service.MerchantEntity(), repos.merchants, auditSvc),
		UserSvc:        userSvc,
		ReportSvc:      reportSvc,
		AuditSvc:       auditSvc,
		HealthCheckers: append(repos.health, redisStorage.NewHealthCheck(rdb)),
		Cookie: httpHandler.CookieSettings{
			Name:   cfg.Session.CookieName,
			Secure: cfg.Session.SecureCookie,
		},
		SentryEnabled: sentryEnabled,
		Logger:        log,
	}
	if cfg.RateLimit.Enabled {
		deps.RateLimitStore = redisStorage.NewRateLimitStore(rdb)
	}

	// Load OpenAPI document for Swagger UI
	if specBytes, err := os.ReadFile("docs/api/openapi.yaml"); err == nil {
		httpHandler.SetSwaggerSpec(specBytes)
		log.Info().Msg("OpenAPI document loaded for Swagger UI at /swagger")
	} else {
		log.Warn().Err(err).Msg("OpenAPI document not found, Swagger UI will be unavailable")
	}

	gin.SetMode(cfg.Server.Mode)
	router := httpHandler.SetupRouter(deps)

	// HTTP Server with graceful shutdown
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().Str("addr", addr).Msg("HTTP server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("HTTP server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited")
}

func openRepositories(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*repositories, error) {
	switch cfg.Database.Driver {
	case config.DriverMemory:
		log.Warn().Msg("Using the in-memory record store; data is lost on exit")
		return &repositories{
			users:      memory.NewUserRepo(),
			accounting: memory.NewAccountingRepo(),
			fixed:      memory.NewFixedExpenseRepo(),
			incomes:    memory.NewIncomeRepo(),
			merchants:  memory.NewMerchantRepo(),
			audit:      memory.NewAuditRepo(),
			close:      func() {},
		}, nil

	default:
		pool, err := pgStorage.NewPool(ctx, cfg.Database, log)
		if err != nil {
			return nil, err
		}
		if err := pgStorage.EnsureSchema(ctx, pool); err != nil {
			pool.Close()
			return nil, err
		}
		log.Info().Msg("PostgreSQL connected")

		return &repositories{
			users:      pgStorage.NewUserRepo(pool),
			accounting: pgStorage.NewAccountingRepo(pool),
			fixed:      pgStorage.NewFixedExpenseRepo(pool),
			incomes:    pgStorage.NewIncomeRepo(pool),
			merchants:  pgStorage.NewMerchantRepo(pool),
			audit:      pgStorage.NewAuditRepo(pool),
			health:     []ports.HealthChecker{pgStorage.NewHealthCheck(pool)},
			close:      pool.Close,
		}, nil
	}
}

func ephemeralSecret() string {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		panic(err)
	}
	return hex.EncodeToString(b)
}
