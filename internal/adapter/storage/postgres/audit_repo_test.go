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

func TestAuditRepo_Create(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewAuditRepo(mock)
	e := &domain.AuditLogEntry{
		ID:         domain.NewID(),
		UserID:     domain.NewID(),
		ActionType: domain.AuditActionUpdate,
		Target:     "Merchant",
		ItemID:     domain.NewID(),
		OldValue:   strPtr(`{"title":"A101"}`),
		NewValue:   strPtr(`{"title":"BIM"}`),
		Date:       time.Date(2024, 6, 20, 10, 0, 0, 0, time.UTC),
	}

	mock.ExpectExec("INSERT INTO audit_logs").
		WithArgs(e.ID, e.UserID, e.ActionType, e.Target, e.ItemID, e.OldValue, e.NewValue, e.Date).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	require.NoError(t, repo.Create(context.Background(), e))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAuditRepo_List_NewestFirst(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewAuditRepo(mock)
	itemID := domain.NewID()
	newer := time.Date(2024, 6, 20, 10, 0, 0, 0, time.UTC)
	older := newer.Add(-time.Hour)

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM audit_logs WHERE item_id = \$1 AND target = \$2`).
		WithArgs(itemID, "Accounting").
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(int64(2)))
	mock.ExpectQuery(`SELECT .+ FROM audit_logs WHERE .+ ORDER BY date DESC, id DESC`).
		WithArgs(itemID, "Accounting").
		WillReturnRows(pgxmock.NewRows([]string{"id", "user_id", "action_type", "target", "item_id", "old_value", "new_value", "date"}).
			AddRow("b", "u1", domain.AuditActionDelete, "Accounting", itemID, strPtr("{}"), nil, newer).
			AddRow("a", "u1", domain.AuditActionAdd, "Accounting", itemID, nil, strPtr("{}"), older))

	filter := ports.NewFilter().
		With(ports.FieldTarget, "Accounting").
		With(ports.FieldItemID, itemID)
	entries, total, err := repo.List(context.Background(), filter, ports.Page{})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	require.Len(t, entries, 2)
	assert.Equal(t, domain.AuditActionDelete, entries[0].ActionType)
	assert.Nil(t, entries[0].NewValue)
	assert.Nil(t, entries[1].OldValue)
	assert.NoError(t, mock.ExpectationsWereMet())
}
