package repository

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/minicrm/minicrm/internal/domain"
	"github.com/minicrm/minicrm/internal/repository/testutil"
)

func TestAuditRepository_Insert(t *testing.T) {
	t.Run("anonymous event carries a null user id", func(t *testing.T) {
		db, mock, cleanup := testutil.SetupMockDB(t)
		defer cleanup()

		repo := NewAuditRepository(db)
		event := &domain.AuditEvent{
			TenantID:   "tenant-1",
			Action:     "contact.created",
			EntityType: "contact",
			EntityID:   "contact-1",
			Metadata:   map[string]interface{}{"source": "public_form"},
		}

		mock.ExpectExec(`INSERT INTO audit_logs`).
			WithArgs(sqlmock.AnyArg(), "tenant-1", nil, "contact.created",
				"contact", "contact-1", sqlmock.AnyArg(), sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.Insert(context.Background(), event)
		require.NoError(t, err)
		assert.NotEmpty(t, event.ID)
	})
}

func TestAuditRepository_List(t *testing.T) {
	db, mock, cleanup := testutil.SetupMockDB(t)
	defer cleanup()

	repo := NewAuditRepository(db)
	userID := "user-1"

	rows := sqlmock.NewRows([]string{"id", "tenant_id", "user_id", "action", "entity_type", "entity_id", "metadata", "created_at"}).
		AddRow("audit-1", "tenant-1", &userID, "deal.stage_changed", "deal", "deal-1",
			[]byte(`{"from":"lead","to":"won"}`), testTime())
	mock.ExpectQuery(`SELECT (.+) FROM audit_logs`).
		WithArgs("tenant-1", "deal.stage_changed").
		WillReturnRows(rows)

	events, err := repo.List(context.Background(), "tenant-1", domain.ListAuditParams{
		Action: "deal.stage_changed",
		Limit:  50,
	})
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "deal.stage_changed", events[0].Action)
	assert.Equal(t, "won", events[0].Metadata["to"])
}
