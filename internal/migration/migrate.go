package migration

import (
	"database/sql"
	"fmt"
	"path"
	"sort"
)

// RunMigrations applies all embedded *.up.sql files in lexical order.
// Statements are idempotent (CREATE TABLE IF NOT EXISTS) so startup can
// re-run the full set safely.
func RunMigrations(sqlDB *sql.DB) error {
	entries, err := embeddedMigrations.ReadDir(migrationsDir)
	if err != nil {
		return fmt.Errorf("read migrations: %w", err)
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)

	for _, name := range names {
		contents, err := embeddedMigrations.ReadFile(path.Join(migrationsDir, name))
		if err != nil {
			return fmt.Errorf("read migration %s: %w", name, err)
		}
		if _, err := sqlDB.Exec(string(contents)); err != nil {
			return fmt.Errorf("apply migration %s: %w", name, err)
		}
	}
	return nil
}
