package database

import (
	"database/sql"
	"fmt"

	"github.com/minicrm/minicrm/internal/database/schema"
)

// InitializeDatabase creates all tables and indexes if they don't exist.
func InitializeDatabase(db *sql.DB) error {
	for _, query := range schema.TableDefinitions {
		if _, err := db.Exec(query); err != nil {
			return fmt.Errorf("failed to apply schema: %w", err)
		}
	}
	return nil
}
