package database

import (
	"database/sql"
	"fmt"
	"log/slog"

	migrate "github.com/rubenv/sql-migrate"
	_ "modernc.org/sqlite"
)

var migrations = &migrate.MemoryMigrationSource{
	Migrations: []*migrate.Migration{
		{
			Id: "1_create_history_blobs",
			Up: []string{`
				CREATE TABLE IF NOT EXISTS history_blobs (
					name TEXT PRIMARY KEY,
					data BLOB NOT NULL,
					updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
				);
			`},
			Down: []string{`DROP TABLE history_blobs;`},
		},
	},
}

// NewSQLite opens the local database at path and applies pending migrations.
func NewSQLite(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite database: %w", err)
	}

	// The driver opens lazily; fail fast instead.
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("pinging sqlite database: %w", err)
	}

	n, err := migrate.Exec(db, "sqlite3", migrations, migrate.Up)
	if err != nil {
		return nil, fmt.Errorf("applying migrations: %w", err)
	}
	if n > 0 {
		slog.Info("applied migrations", "count", n)
	}

	return db, nil
}
