package storage

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

type Dialect string

const (
	DialectSQLite   Dialect = "sqlite"
	DialectPostgres Dialect = "postgres"
)

// SQLStore keeps snapshots in a single table. The same queries run on SQLite
// and Postgres; only placeholders differ.
type SQLStore struct {
	db      *sql.DB
	dialect Dialect
}

// OpenSQL opens the database, applies the embedded migrations and returns a
// ready store.
func OpenSQL(ctx context.Context, dialect Dialect, dsn string) (*SQLStore, error) {
	if dialect != DialectSQLite && dialect != DialectPostgres {
		return nil, fmt.Errorf("unsupported sql dialect %q", dialect)
	}

	db, err := sql.Open(string(dialect), dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if dialect == DialectSQLite {
		// one writer at a time, otherwise SQLITE_BUSY under concurrent requests
		db.SetMaxOpenConns(1)
	} else {
		db.SetMaxOpenConns(20)
		db.SetMaxIdleConns(5)
	}

	s := &SQLStore{db: db, dialect: dialect}
	if err := s.runMigrations(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *SQLStore) runMigrations() error {
	var (
		driver database.Driver
		err    error
	)
	switch s.dialect {
	case DialectSQLite:
		driver, err = sqlite.WithInstance(s.db, &sqlite.Config{})
	case DialectPostgres:
		driver, err = postgres.WithInstance(s.db, &postgres.Config{
			MigrationsTable: "snapshots_schema_migrations",
		})
	}
	if err != nil {
		return fmt.Errorf("could not create migration driver: %w", err)
	}

	source, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("could not open migrations: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", source, string(s.dialect), driver)
	if err != nil {
		return fmt.Errorf("could not create migrate instance: %w", err)
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("could not run migrations: %w", err)
	}
	return nil
}

func (s *SQLStore) Get(ctx context.Context, key string) (string, error) {
	var payload string
	err := s.db.QueryRowContext(ctx,
		s.rebind(`SELECT payload FROM snapshots WHERE snapshot_key = ?`), key).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("failed to get snapshot: %w", err)
	}
	return payload, nil
}

func (s *SQLStore) Set(ctx context.Context, key, value string) error {
	query := s.rebind(`INSERT INTO snapshots (snapshot_key, payload, updated_at) VALUES (?, ?, ?)
		ON CONFLICT (snapshot_key) DO UPDATE SET payload = excluded.payload, updated_at = excluded.updated_at`)
	if _, err := s.db.ExecContext(ctx, query, key, value, time.Now().UTC()); err != nil {
		return fmt.Errorf("failed to upsert snapshot: %w", err)
	}
	return nil
}

func (s *SQLStore) Delete(ctx context.Context, key string) error {
	if _, err := s.db.ExecContext(ctx,
		s.rebind(`DELETE FROM snapshots WHERE snapshot_key = ?`), key); err != nil {
		return fmt.Errorf("failed to delete snapshot: %w", err)
	}
	return nil
}

func (s *SQLStore) Close() error {
	return s.db.Close()
}

// rebind turns ? placeholders into $n for Postgres.
func (s *SQLStore) rebind(query string) string {
	if s.dialect != DialectPostgres {
		return query
	}
	var b strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteString("$" + strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
