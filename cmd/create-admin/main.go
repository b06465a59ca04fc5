// Command create-admin bootstraps an Admin account directly in the
// PostgreSQL record store.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"muhasebe-api/config"
	pgStorage "muhasebe-api/internal/adapter/storage/postgres"
	"muhasebe-api/internal/core/domain"
	"muhasebe-api/internal/core/ports"
	"muhasebe-api/internal/service"
	"muhasebe-api/pkg/logger"
)

const minPasswordLen = 8

var errUserExists = errors.New("username already exists")

func main() {
	username := flag.String("username", "", "admin username")
	password := flag.String("password", "", "admin password (or MHS_ADMIN_PASSWORD)")
	configPath := flag.String("config", "", "path to config file")
	flag.Parse()

	if *password == "" {
		*password = os.Getenv("MHS_ADMIN_PASSWORD")
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(cfg.Log.Level, cfg.Log.Pretty)

	if cfg.Database.Driver != config.DriverPostgres {
		log.Fatal().Str("driver", cfg.Database.Driver).Msg("create-admin needs the postgres driver")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := pgStorage.NewPool(ctx, cfg.Database, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()

	if err := pgStorage.EnsureSchema(ctx, pool); err != nil {
		log.Fatal().Err(err).Msg("Failed to apply schema")
	}

	user, err := createAdmin(ctx, pgStorage.NewUserRepo(pool),
		service.NewArgon2HashService(service.DefaultArgon2Params), *username, *password, time.Now().UTC())
	if err != nil {
		log.Fatal().Err(err).Str("username", *username).Msg("Failed to create admin")
	}

	log.Info().Str("id", user.ID).Str("username", user.Username).Msg("Admin created")
}

// createAdmin stores a new active Admin. It refuses to touch an existing
// account.
func createAdmin(ctx context.Context, repo ports.UserRepository, hashSvc ports.HashService, username, password string, now time.Time) (*domain.User, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, errors.New("--username is required")
	}
	if len(password) < minPasswordLen {
		return nil, fmt.Errorf("password must be at least %d characters", minPasswordLen)
	}

	existing, err := repo.GetByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("look up user: %w", err)
	}
	if existing != nil {
		return nil, errUserExists
	}

	hash, err := hashSvc.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &domain.User{
		ID:           domain.NewID(),
		Username:     username,
		PasswordHash: hash,
		Role:         domain.RoleAdmin,
		Status:       domain.UserStatusActive,
		Restrictions: []string{},
		RegisteredAt: now,
	}
	if err := repo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}
