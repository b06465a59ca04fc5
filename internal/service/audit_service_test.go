package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"muhasebe-api/internal/core/domain"
	"muhasebe-api/internal/core/ports"
	"muhasebe-api/internal/core/ports/mocks"
	"muhasebe-api/pkg/apperror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestAuditService_Record_PersistsSnapshots(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockAuditRepository(ctrl)
	svc := NewAuditService(mockRepo, newTestLogger())

	merchant := domain.Merchant{ID: domain.NewID(), Title: "Kırtasiye", UserID: "u1"}

	mockRepo.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, log *domain.AuditLogEntry) error {
			assert.Equal(t, domain.AuditActionAdd, log.ActionType)
			assert.Equal(t, EntityMerchant, log.Target)
			assert.Equal(t, merchant.ID, log.ItemID)
			assert.Equal(t, "u1", log.UserID)
			assert.True(t, domain.IsValidID(log.ID))
			assert.Nil(t, log.OldValue)
			require.NotNil(t, log.NewValue)

			var got domain.Merchant
			require.NoError(t, json.Unmarshal([]byte(*log.NewValue), &got))
			assert.Equal(t, merchant.Title, got.Title)
			return nil
		},
	)

	svc.Record(context.Background(), ports.AuditEntry{
		ActorID: "u1",
		Action:  domain.AuditActionAdd,
		Target:  EntityMerchant,
		ItemID:  merchant.ID,
		New:     merchant,
	})
}

func TestAuditService_Record_SurvivesCanceledRequest(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockAuditRepository(ctrl)
	svc := NewAuditService(mockRepo, newTestLogger())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	mockRepo.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, _ *domain.AuditLogEntry) error {
			assert.NoError(t, ctx.Err(), "audit write must not inherit request cancellation")
			_, hasDeadline := ctx.Deadline()
			assert.True(t, hasDeadline)
			return nil
		},
	)

	svc.Record(ctx, ports.AuditEntry{ActorID: "u1", Action: domain.AuditActionDelete, Target: EntityIncome, ItemID: "x"})
}

func TestAuditService_Record_StoreErrorIsSwallowed(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockAuditRepository(ctrl)
	svc := NewAuditService(mockRepo, newTestLogger())

	mockRepo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(errors.New("connection reset"))

	assert.NotPanics(t, func() {
		svc.Record(context.Background(), ports.AuditEntry{ActorID: "u1", Action: domain.AuditActionUpdate, Target: EntityAccounting, ItemID: "x"})
	})
}

func TestAuditService_Record_NilRepo(t *testing.T) {
	svc := NewAuditService(nil, newTestLogger())

	// Should not panic
	svc.Record(context.Background(), ports.AuditEntry{
		ActorID: "u1",
		Action:  domain.AuditActionAdd,
		Target:  EntityUser,
		ItemID:  "x",
		New:     map[string]string{"k": "v"},
	})
}

func TestAuditService_List_AdminOnly(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockAuditRepository(ctrl)
	svc := NewAuditService(mockRepo, newTestLogger())

	_, _, err := svc.List(context.Background(), ports.AuditQuery{})
	assert.True(t, errors.Is(err, apperror.ErrUnauthenticated()))

	_, _, err = svc.List(userCtx("u1"), ports.AuditQuery{})
	assert.True(t, errors.Is(err, apperror.ErrForbidden("")))

	now := time.Now()
	entries := []domain.AuditLogEntry{
		{ID: "2", Target: EntityAccounting, ItemID: "rec", Date: now},
		{ID: "1", Target: EntityAccounting, ItemID: "rec", Date: now.Add(-time.Minute)},
	}
	mockRepo.EXPECT().
		List(gomock.Any(), ports.NewFilter().With(ports.FieldTarget, EntityAccounting).With(ports.FieldItemID, "rec"), ports.Page{Page: 2, PageSize: 10}).
		Return(entries, int64(12), nil)

	got, total, err := svc.List(adminCtx("a1"), ports.AuditQuery{Target: EntityAccounting, ItemID: "rec", Page: ports.Page{Page: 2, PageSize: 10}})
	require.NoError(t, err)
	assert.Equal(t, int64(12), total)
	assert.Len(t, got, 2)
}
