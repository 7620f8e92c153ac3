package breach

import (
	"context"
	"database/sql"
	"fmt"
	"io"
)

// Dialect selects the bind-parameter style of the leaked_passwords queries.
type Dialect string

const (
	MySQL    Dialect = "mysql"
	Postgres Dialect = "postgres"
)

// SQLLookup checks the leaked_passwords(digest) table.
type SQLLookup struct {
	DB      *sql.DB
	Dialect Dialect
}

func NewSQLLookup(db *sql.DB, dialect Dialect) *SQLLookup {
	return &SQLLookup{DB: db, Dialect: dialect}
}

func (s *SQLLookup) selectQuery() string {
	if s.Dialect == Postgres {
		return `SELECT 1 FROM leaked_passwords WHERE digest=$1 LIMIT 1`
	}
	return `SELECT 1 FROM leaked_passwords WHERE digest=? LIMIT 1`
}

func (s *SQLLookup) insertQuery() string {
	if s.Dialect == Postgres {
		return `INSERT INTO leaked_passwords (digest) VALUES ($1) ON CONFLICT (digest) DO NOTHING`
	}
	return `INSERT IGNORE INTO leaked_passwords (digest) VALUES (?)`
}

func (s *SQLLookup) Contains(ctx context.Context, password string) (bool, error) {
	var one int
	err := s.DB.QueryRowContext(ctx, s.selectQuery(), Digest(password)).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("leaked_passwords lookup: %w", err)
	}
	return true, nil
}

// Import inserts a corpus row by row. Bad lines and failed inserts are
// reported together; every other digest stays stored. n counts inserted lines.
func (s *SQLLookup) Import(ctx context.Context, src io.Reader) (int, error) {
	stmt, err := s.DB.PrepareContext(ctx, s.insertQuery())
	if err != nil {
		return 0, fmt.Errorf("prepare leaked_passwords insert: %w", err)
	}
	defer stmt.Close()

	return ReadCorpus(src, func(digest string) error {
		if _, err := stmt.ExecContext(ctx, digest); err != nil {
			return fmt.Errorf("insert: %w", err)
		}
		return nil
	})
}
