package repository

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/minicrm/minicrm/internal/domain"
	"github.com/minicrm/minicrm/internal/repository/testutil"
)

func contactColumns() []string {
	return []string{"id", "tenant_id", "website_id", "email", "name", "phone", "source", "status", "created_at", "updated_at"}
}

func TestContactRepository_ResolveOrCreate(t *testing.T) {
	t.Run("new email inserts and reports created", func(t *testing.T) {
		db, mock, cleanup := testutil.SetupMockDB(t)
		defer cleanup()

		repo := NewContactRepository(db)
		contact := &domain.Contact{
			TenantID:  "tenant-1",
			WebsiteID: "website-1",
			Email:     "lead@example.com",
			Name:      "Lead",
		}

		mock.ExpectBegin()
		mock.ExpectQuery(`INSERT INTO contacts`).
			WithArgs(sqlmock.AnyArg(), "tenant-1", "website-1", "lead@example.com",
				"Lead", "", "", domain.ContactStatusNew, sqlmock.AnyArg(), sqlmock.AnyArg()).
			WillReturnRows(sqlmock.NewRows([]string{"id", "?column?"}).AddRow("contact-1", true))
		mock.ExpectCommit()

		id, created, err := repo.ResolveOrCreate(context.Background(), contact, nil)
		require.NoError(t, err)
		assert.Equal(t, "contact-1", id)
		assert.True(t, created)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("repeat email touches the existing row", func(t *testing.T) {
		db, mock, cleanup := testutil.SetupMockDB(t)
		defer cleanup()

		repo := NewContactRepository(db)
		contact := &domain.Contact{
			TenantID:  "tenant-1",
			WebsiteID: "website-1",
			Email:     "lead@example.com",
			Name:      "Different Name",
		}

		mock.ExpectBegin()
		mock.ExpectQuery(`INSERT INTO contacts`).
			WillReturnRows(sqlmock.NewRows([]string{"id", "?column?"}).AddRow("contact-existing", false))
		mock.ExpectCommit()

		id, created, err := repo.ResolveOrCreate(context.Background(), contact, nil)
		require.NoError(t, err)
		assert.Equal(t, "contact-existing", id)
		assert.False(t, created)
	})

	t.Run("missing website id resolves the system website", func(t *testing.T) {
		db, mock, cleanup := testutil.SetupMockDB(t)
		defer cleanup()

		repo := NewContactRepository(db)
		contact := &domain.Contact{
			TenantID: "tenant-1",
			Email:    "lead@example.com",
			Name:     "Lead",
		}

		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT id FROM websites`).
			WithArgs("tenant-1").
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("sys-website-1"))
		mock.ExpectQuery(`INSERT INTO contacts`).
			WithArgs(sqlmock.AnyArg(), "tenant-1", "sys-website-1", "lead@example.com",
				"Lead", "", "", domain.ContactStatusNew, sqlmock.AnyArg(), sqlmock.AnyArg()).
			WillReturnRows(sqlmock.NewRows([]string{"id", "?column?"}).AddRow("contact-1", true))
		mock.ExpectCommit()

		_, _, err := repo.ResolveOrCreate(context.Background(), contact, nil)
		require.NoError(t, err)
		assert.Equal(t, "sys-website-1", contact.WebsiteID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing system website is recreated in the same transaction", func(t *testing.T) {
		db, mock, cleanup := testutil.SetupMockDB(t)
		defer cleanup()

		repo := NewContactRepository(db)
		contact := &domain.Contact{
			TenantID: "tenant-1",
			Email:    "lead@example.com",
			Name:     "Lead",
		}
		fallback := domain.NewSystemWebsite("tenant-1")

		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT id FROM websites`).
			WithArgs("tenant-1").
			WillReturnError(sql.ErrNoRows)
		mock.ExpectExec(`INSERT INTO websites`).
			WithArgs(fallback.ID, "tenant-1", fallback.Domain, fallback.Name,
				fallback.TrackingID, true, true, sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectQuery(`INSERT INTO contacts`).
			WillReturnRows(sqlmock.NewRows([]string{"id", "?column?"}).AddRow("contact-1", true))
		mock.ExpectCommit()

		_, created, err := repo.ResolveOrCreate(context.Background(), contact, fallback)
		require.NoError(t, err)
		assert.True(t, created)
		assert.Equal(t, fallback.ID, contact.WebsiteID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("email-less contact always inserts a new row", func(t *testing.T) {
		db, mock, cleanup := testutil.SetupMockDB(t)
		defer cleanup()

		repo := NewContactRepository(db)
		contact := &domain.Contact{
			TenantID:  "tenant-1",
			WebsiteID: "website-1",
			Name:      "Anonymous Caller",
		}

		mock.ExpectBegin()
		mock.ExpectQuery(`INSERT INTO contacts`).
			WithArgs(sqlmock.AnyArg(), "tenant-1", "website-1", nil,
				"Anonymous Caller", "", "", domain.ContactStatusNew, sqlmock.AnyArg(), sqlmock.AnyArg()).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("contact-2"))
		mock.ExpectCommit()

		id, created, err := repo.ResolveOrCreate(context.Background(), contact, nil)
		require.NoError(t, err)
		assert.Equal(t, "contact-2", id)
		assert.True(t, created)
	})

	t.Run("insert failure rolls back", func(t *testing.T) {
		db, mock, cleanup := testutil.SetupMockDB(t)
		defer cleanup()

		repo := NewContactRepository(db)
		contact := &domain.Contact{
			TenantID:  "tenant-1",
			WebsiteID: "website-1",
			Email:     "lead@example.com",
			Name:      "Lead",
		}

		mock.ExpectBegin()
		mock.ExpectQuery(`INSERT INTO contacts`).
			WillReturnError(sql.ErrConnDone)
		mock.ExpectRollback()

		_, _, err := repo.ResolveOrCreate(context.Background(), contact, nil)
		require.Error(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestContactRepository_GetByIDAndTenant(t *testing.T) {
	t.Run("id under another tenant is not found", func(t *testing.T) {
		db, mock, cleanup := testutil.SetupMockDB(t)
		defer cleanup()

		repo := NewContactRepository(db)

		mock.ExpectQuery(`SELECT (.+) FROM contacts`).
			WithArgs("contact-1", "tenant-other").
			WillReturnRows(sqlmock.NewRows(contactColumns()))

		_, err := repo.GetByIDAndTenant(context.Background(), "contact-1", "tenant-other")
		require.Error(t, err)

		var notFound *domain.ErrContactNotFound
		assert.ErrorAs(t, err, &notFound)
	})

	t.Run("null optional columns scan as empty strings", func(t *testing.T) {
		db, mock, cleanup := testutil.SetupMockDB(t)
		defer cleanup()

		repo := NewContactRepository(db)

		rows := sqlmock.NewRows(contactColumns()).
			AddRow("contact-1", "tenant-1", "website-1", nil, "Anonymous", nil, nil,
				domain.ContactStatusNew, testTime(), testTime())
		mock.ExpectQuery(`SELECT (.+) FROM contacts`).
			WithArgs("contact-1", "tenant-1").
			WillReturnRows(rows)

		contact, err := repo.GetByIDAndTenant(context.Background(), "contact-1", "tenant-1")
		require.NoError(t, err)
		assert.Empty(t, contact.Email)
		assert.Empty(t, contact.Phone)
	})
}

func TestContactRepository_List(t *testing.T) {
	t.Run("applies status and search filters", func(t *testing.T) {
		db, mock, cleanup := testutil.SetupMockDB(t)
		defer cleanup()

		repo := NewContactRepository(db)

		rows := sqlmock.NewRows(contactColumns()).
			AddRow("contact-1", "tenant-1", "website-1", "lead@example.com", "Lead", "", "",
				domain.ContactStatusQualified, testTime(), testTime())
		mock.ExpectQuery(`SELECT (.+) FROM contacts WHERE tenant_id = \$1 AND status = \$2`).
			WithArgs("tenant-1", domain.ContactStatusQualified, "%lead%", "%lead%").
			WillReturnRows(rows)

		contacts, err := repo.List(context.Background(), "tenant-1", domain.ListContactsParams{
			Status: domain.ContactStatusQualified,
			Search: "lead",
			Limit:  50,
		})
		require.NoError(t, err)
		require.Len(t, contacts, 1)
		assert.Equal(t, domain.ContactStatusQualified, contacts[0].Status)
	})

	t.Run("empty result is an empty slice, not an error", func(t *testing.T) {
		db, mock, cleanup := testutil.SetupMockDB(t)
		defer cleanup()

		repo := NewContactRepository(db)

		mock.ExpectQuery(`SELECT (.+) FROM contacts`).
			WillReturnRows(sqlmock.NewRows(contactColumns()))

		contacts, err := repo.List(context.Background(), "tenant-1", domain.ListContactsParams{})
		require.NoError(t, err)
		assert.Empty(t, contacts)
	})
}

func TestContactRepository_Update(t *testing.T) {
	t.Run("updates only the provided fields", func(t *testing.T) {
		db, mock, cleanup := testutil.SetupMockDB(t)
		defer cleanup()

		repo := NewContactRepository(db)
		status := domain.ContactStatusContacted

		rows := sqlmock.NewRows(contactColumns()).
			AddRow("contact-1", "tenant-1", "website-1", "lead@example.com", "Lead", "", "",
				status, testTime(), testTime())
		mock.ExpectQuery(`UPDATE contacts SET`).
			WillReturnRows(rows)

		contact, err := repo.Update(context.Background(), "tenant-1", "contact-1",
			&domain.UpdateContactRequest{Status: &status})
		require.NoError(t, err)
		assert.Equal(t, status, contact.Status)
	})

	t.Run("update against another tenant is not found", func(t *testing.T) {
		db, mock, cleanup := testutil.SetupMockDB(t)
		defer cleanup()

		repo := NewContactRepository(db)
		name := "New Name"

		mock.ExpectQuery(`UPDATE contacts SET`).
			WillReturnRows(sqlmock.NewRows(contactColumns()))

		_, err := repo.Update(context.Background(), "tenant-other", "contact-1",
			&domain.UpdateContactRequest{Name: &name})
		require.Error(t, err)

		var notFound *domain.ErrContactNotFound
		assert.ErrorAs(t, err, &notFound)
	})
}

func TestContactRepository_Delete(t *testing.T) {
	t.Run("zero rows affected is not found", func(t *testing.T) {
		db, mock, cleanup := testutil.SetupMockDB(t)
		defer cleanup()

		repo := NewContactRepository(db)

		mock.ExpectExec(`DELETE FROM contacts`).
			WithArgs("contact-1", "tenant-other").
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.Delete(context.Background(), "tenant-other", "contact-1")
		require.Error(t, err)

		var notFound *domain.ErrContactNotFound
		assert.ErrorAs(t, err, &notFound)
	})

	t.Run("deletes within the tenant", func(t *testing.T) {
		db, mock, cleanup := testutil.SetupMockDB(t)
		defer cleanup()

		repo := NewContactRepository(db)

		mock.ExpectExec(`DELETE FROM contacts`).
			WithArgs("contact-1", "tenant-1").
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.Delete(context.Background(), "tenant-1", "contact-1")
		require.NoError(t, err)
	})
}
