package postgres

import (
	"context"
	"testing"
	"time"

	"muhasebe-api/internal/core/domain"
	"muhasebe-api/internal/core/ports"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func userColumns() []string {
	return []string{"id", "username", "password_hash", "role", "status", "restrictions", "registered_at", "last_login"}
}

func newTestUser() *domain.User {
	return &domain.User{
		ID:           domain.NewID(),
		Username:     "ayse",
		PasswordHash: "$argon2id$v=19$m=65536,t=1,p=4$c2FsdA$aGFzaA",
		Role:         domain.RoleUser,
		Status:       domain.UserStatusActive,
		RegisteredAt: time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
	}
}

func TestUserRepo_Create_NilRestrictionsStoredEmpty(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewUserRepo(mock)
	u := newTestUser()

	mock.ExpectExec("INSERT INTO users").
		WithArgs(u.ID, u.Username, u.PasswordHash, u.Role, u.Status, []string{}, u.RegisteredAt, u.LastLogin).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	require.NoError(t, repo.Create(context.Background(), u))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepo_GetByUsername(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewUserRepo(mock)
	u := newTestUser()
	lastLogin := time.Date(2024, 6, 20, 8, 0, 0, 0, time.UTC)

	mock.ExpectQuery("SELECT .+ FROM users WHERE username").
		WithArgs("ayse").
		WillReturnRows(pgxmock.NewRows(userColumns()).AddRow(
			u.ID, u.Username, u.PasswordHash, u.Role, u.Status,
			[]string{"accounting:delete"}, u.RegisteredAt, &lastLogin,
		))

	got, err := repo.GetByUsername(context.Background(), "ayse")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, u.ID, got.ID)
	assert.Equal(t, domain.RoleUser, got.Role)
	assert.Equal(t, []string{"accounting:delete"}, got.Restrictions)
	require.NotNil(t, got.LastLogin)
	assert.Equal(t, lastLogin, *got.LastLogin)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepo_GetByUsername_NotFound(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewUserRepo(mock)

	mock.ExpectQuery("SELECT .+ FROM users WHERE username").
		WithArgs("ghost").
		WillReturnRows(pgxmock.NewRows(userColumns()))

	got, err := repo.GetByUsername(context.Background(), "ghost")
	assert.NoError(t, err)
	assert.Nil(t, got)
}

func TestUserRepo_TouchLastLogin(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewUserRepo(mock)
	at := time.Date(2024, 6, 20, 10, 0, 0, 0, time.UTC)

	mock.ExpectExec("UPDATE users SET last_login").
		WithArgs(at, "u1").
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	require.NoError(t, repo.TouchLastLogin(context.Background(), "u1", at))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepo_List_ByRole(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewUserRepo(mock)
	u := newTestUser()

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM users WHERE role = \$1`).
		WithArgs("Admin").
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(int64(1)))
	mock.ExpectQuery(`SELECT .+ FROM users WHERE role = \$1 ORDER BY id LIMIT \$2 OFFSET \$3`).
		WithArgs("Admin", 10, 0).
		WillReturnRows(pgxmock.NewRows(userColumns()).AddRow(
			u.ID, u.Username, u.PasswordHash, domain.RoleAdmin, u.Status,
			[]string{}, u.RegisteredAt, nil,
		))

	items, total, err := repo.List(context.Background(),
		ports.NewFilter().With("role", "Admin"), ports.Page{Page: 1, PageSize: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, items, 1)
	assert.Equal(t, domain.RoleAdmin, items[0].Role)
	assert.Nil(t, items[0].LastLogin)
	assert.NoError(t, mock.ExpectationsWereMet())
}
