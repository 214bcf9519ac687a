package repository

import (
	"context"
	"fmt"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/minicrm/minicrm/internal/domain"
	"github.com/minicrm/minicrm/internal/repository/testutil"
)

func TestTenantRepository_CreateWithOwner(t *testing.T) {
	newInputs := func() (*domain.Tenant, *domain.Website, *domain.User) {
		tenant := &domain.Tenant{Name: "Acme Inc", Slug: "acme"}
		website := domain.NewSystemWebsite("")
		owner := &domain.User{
			Email:        "admin@acme.com",
			PasswordHash: "$2a$12$fakehash",
			Name:         "Admin",
			Role:         domain.RoleAdmin,
			IsActive:     true,
		}
		return tenant, website, owner
	}

	t.Run("creates tenant, system website and owner in one transaction", func(t *testing.T) {
		db, mock, cleanup := testutil.SetupMockDB(t)
		defer cleanup()

		repo := NewTenantRepository(db)
		tenant, website, owner := newInputs()

		mock.ExpectBegin()
		mock.ExpectExec(`INSERT INTO tenants`).
			WithArgs(sqlmock.AnyArg(), "Acme Inc", "acme", true, sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(`INSERT INTO websites`).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(`INSERT INTO users`).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		err := repo.CreateWithOwner(context.Background(), tenant, website, owner)
		require.NoError(t, err)

		assert.NotEmpty(t, tenant.ID)
		assert.Equal(t, tenant.ID, website.TenantID)
		assert.Equal(t, tenant.ID, owner.TenantID)
		assert.True(t, tenant.IsActive)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("duplicate slug maps to ErrTenantExists", func(t *testing.T) {
		db, mock, cleanup := testutil.SetupMockDB(t)
		defer cleanup()

		repo := NewTenantRepository(db)
		tenant, website, owner := newInputs()

		mock.ExpectBegin()
		mock.ExpectExec(`INSERT INTO tenants`).
			WillReturnError(&pq.Error{Code: "23505", Constraint: "tenants_slug_key"})
		mock.ExpectRollback()

		err := repo.CreateWithOwner(context.Background(), tenant, website, owner)
		require.Error(t, err)

		var exists *domain.ErrTenantExists
		assert.ErrorAs(t, err, &exists)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("failed user insert rolls back the whole registration", func(t *testing.T) {
		db, mock, cleanup := testutil.SetupMockDB(t)
		defer cleanup()

		repo := NewTenantRepository(db)
		tenant, website, owner := newInputs()

		mock.ExpectBegin()
		mock.ExpectExec(`INSERT INTO tenants`).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(`INSERT INTO websites`).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(`INSERT INTO users`).
			WillReturnError(fmt.Errorf("connection reset"))
		mock.ExpectRollback()

		err := repo.CreateWithOwner(context.Background(), tenant, website, owner)
		require.Error(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestTenantRepository_GetBySlug(t *testing.T) {
	t.Run("returns the tenant", func(t *testing.T) {
		db, mock, cleanup := testutil.SetupMockDB(t)
		defer cleanup()

		repo := NewTenantRepository(db)

		rows := sqlmock.NewRows([]string{"id", "name", "slug", "is_active", "created_at"}).
			AddRow("tenant-1", "Acme Inc", "acme", true, testTime())
		mock.ExpectQuery(`SELECT id, name, slug, is_active, created_at`).
			WithArgs("acme").
			WillReturnRows(rows)

		tenant, err := repo.GetBySlug(context.Background(), "acme")
		require.NoError(t, err)
		assert.Equal(t, "tenant-1", tenant.ID)
		assert.Equal(t, "acme", tenant.Slug)
	})

	t.Run("unknown slug maps to ErrTenantNotFound", func(t *testing.T) {
		db, mock, cleanup := testutil.SetupMockDB(t)
		defer cleanup()

		repo := NewTenantRepository(db)

		mock.ExpectQuery(`SELECT id, name, slug, is_active, created_at`).
			WithArgs("ghost").
			WillReturnRows(sqlmock.NewRows([]string{"id", "name", "slug", "is_active", "created_at"}))

		_, err := repo.GetBySlug(context.Background(), "ghost")
		require.Error(t, err)

		var notFound *domain.ErrTenantNotFound
		assert.ErrorAs(t, err, &notFound)
	})
}

func TestTenantRepository_GetByID(t *testing.T) {
	db, mock, cleanup := testutil.SetupMockDB(t)
	defer cleanup()

	repo := NewTenantRepository(db)

	rows := sqlmock.NewRows([]string{"id", "name", "slug", "is_active", "created_at"}).
		AddRow("tenant-1", "Acme Inc", "acme", true, testTime())
	mock.ExpectQuery(`SELECT id, name, slug, is_active, created_at`).
		WithArgs("tenant-1").
		WillReturnRows(rows)

	tenant, err := repo.GetByID(context.Background(), "tenant-1")
	require.NoError(t, err)
	assert.Equal(t, "acme", tenant.Slug)
}
