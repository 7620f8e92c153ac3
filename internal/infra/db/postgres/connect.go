package postgres

import (
	"context"
	"database/sql"
	"time"

	_ "github.com/lib/pq"
)

func Connect(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(10)
	db.SetConnMaxLifetime(30 * time.Minute)

	ctx2, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx2); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

// Migrate creates the tables used by passwise if they are missing.
func Migrate(ctx context.Context, db *sql.DB) error {
	const q = `
CREATE TABLE IF NOT EXISTS password_analyses (
  id            UUID        PRIMARY KEY,
  tenant_id     TEXT        NOT NULL,
  length        INTEGER     NOT NULL,
  score         INTEGER     NOT NULL,
  time_to_crack TEXT        NOT NULL,
  attack_vector TEXT        NOT NULL,
  patterns      TEXT[]      NOT NULL DEFAULT '{}',
  compromised   BOOLEAN     NOT NULL,
  improved      BOOLEAN     NOT NULL,
  created_at    TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_password_analyses_tenant ON password_analyses (tenant_id, created_at DESC);
CREATE TABLE IF NOT EXISTS leaked_passwords (
  digest CHAR(64) PRIMARY KEY
);`
	_, err := db.ExecContext(ctx, q)
	return err
}
