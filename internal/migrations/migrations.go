// Package migrations embeds the schema so `comanda-pos migrate` works
// regardless of the working directory.
package migrations

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"sort"

	"go.uber.org/zap"
)

//go:embed *.sql
var migrationsFS embed.FS

// Apply runs every embedded migration in lexical order. Statements are
// written to be idempotent, so re-running is safe.
func Apply(ctx context.Context, db *sql.DB, lg *zap.SugaredLogger) error {
	names, err := fs.Glob(migrationsFS, "*.sql")
	if err != nil {
		return fmt.Errorf("list migrations: %w", err)
	}
	sort.Strings(names)

	for _, name := range names {
		sqlBytes, err := migrationsFS.ReadFile(name)
		if err != nil {
			return fmt.Errorf("read migration %s: %w", name, err)
		}
		if _, err := db.ExecContext(ctx, string(sqlBytes)); err != nil {
			return fmt.Errorf("apply migration %s: %w", name, err)
		}
		lg.Infow("migration_applied", "name", name)
	}
	return nil
}
