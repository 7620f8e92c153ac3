package mysql

import (
	"context"
	"database/sql"
	"fmt"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS password_analyses (
  id            CHAR(36)     NOT NULL PRIMARY KEY,
  tenant_id     VARCHAR(64)  NOT NULL,
  length        INT          NOT NULL,
  score         INT          NOT NULL,
  time_to_crack VARCHAR(32)  NOT NULL,
  attack_vector VARCHAR(64)  NOT NULL,
  patterns_json JSON         NOT NULL,
  compromised   BOOLEAN      NOT NULL,
  improved      BOOLEAN      NOT NULL,
  created_at    DATETIME(6)  NOT NULL,
  INDEX idx_password_analyses_tenant (tenant_id, created_at)
)`,
	`CREATE TABLE IF NOT EXISTS leaked_passwords (
  digest CHAR(64) NOT NULL PRIMARY KEY
)`,
}

// Migrate creates the tables used by passwise if they are missing.
func Migrate(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("mysql migrate: %w", err)
		}
	}
	return nil
}
