// internal/db/db.go
package db

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	migratesqlite3 "github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/mattn/go-sqlite3"

	"github.com/codr1/leagus/internal/config"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// driverName is go-sqlite3 with the fold() SQL function registered on every
// connection.
const driverName = "sqlite3_leagus"

func init() {
	sql.Register(driverName, &sqlite3.SQLiteDriver{
		ConnectHook: func(conn *sqlite3.SQLiteConn) error {
			return conn.RegisterFunc("fold", foldName, true)
		},
	})
}

// foldName lower-cases with Unicode rules. SQLite's own LOWER and LIKE only
// fold ASCII.
func foldName(value string) string {
	return strings.ToLower(value)
}

// querier is satisfied by both *sql.DB and *sql.Tx.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// DB is the SQLite implementation of store.Store.
type DB struct {
	*sql.DB
	q querier
}

// Open opens a SQLite database with foreign keys enforced but does not
// migrate it.
func Open(dataSourceName string) (*sql.DB, error) {
	sqlDB, err := sql.Open(driverName, ensureForeignKeysEnabledDSN(dataSourceName))
	if err != nil {
		return nil, fmt.Errorf("error opening database: %w", err)
	}
	// SQLite allows a single writer at a time.
	sqlDB.SetMaxOpenConns(1)
	return sqlDB, nil
}

// New opens a SQLite database for the given data source name, applies
// embedded migrations, and returns a DB ready to serve the store operations.
func New(dataSourceName string) (*DB, error) {
	sqlDB, err := Open(dataSourceName)
	if err != nil {
		return nil, err
	}

	// Run migrations
	if err := runMigrations(sqlDB); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("error running migrations: %w", err)
	}

	return &DB{DB: sqlDB, q: sqlDB}, nil
}

// NewFromConfig creates the directory holding the configured database file
// if needed and opens it with New.
func NewFromConfig(cfg *config.Config) (*DB, error) {
	if cfg.Database.Driver != config.DriverSQLite {
		return nil, fmt.Errorf("unsupported database driver for sqlite store: %s", cfg.Database.Driver)
	}
	if err := os.MkdirAll(filepath.Dir(cfg.Database.Filename), 0755); err != nil {
		return nil, fmt.Errorf("error creating database directory: %w", err)
	}
	return New(cfg.Database.Filename)
}

// ensureForeignKeysEnabledDSN ensures the SQLite DSN enables foreign key enforcement by adding the `_fk=1` query parameter if missing.
// If the DSN already contains `_fk=` it is returned unchanged; otherwise `_fk=1` is appended using `?` or `&` as appropriate.
func ensureForeignKeysEnabledDSN(dataSourceName string) string {
	if strings.Contains(dataSourceName, "_fk=") {
		return dataSourceName
	}
	if strings.Contains(dataSourceName, "?") {
		return dataSourceName + "&_fk=1"
	}
	return dataSourceName + "?_fk=1"
}

// NewMigrate returns a migrate instance over the embedded migrations for an
// already open database. Callers own closing the returned instance's source.
func NewMigrate(db *sql.DB) (*migrate.Migrate, error) {
	driver, err := migratesqlite3.WithInstance(db, &migratesqlite3.Config{})
	if err != nil {
		return nil, fmt.Errorf("could not create migrate driver: %w", err)
	}

	source, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return nil, fmt.Errorf("could not create source: %w", err)
	}

	m, err := migrate.NewWithInstance(
		"iofs", source,
		"sqlite3", driver,
	)
	if err != nil {
		return nil, fmt.Errorf("could not create migrate instance: %w", err)
	}
	return m, nil
}

// runMigrations applies the embedded SQL migrations from migrationsFS to the provided database.
// A "no change" result is not treated as an error.
func runMigrations(db *sql.DB) error {
	m, err := NewMigrate(db)
	if err != nil {
		return err
	}

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("could not run migrations: %w", err)
	}

	return nil
}

// WithTx creates a new DB instance whose store operations run in tx.
func (db *DB) WithTx(tx *sql.Tx) *DB {
	return &DB{
		DB: db.DB,
		q:  tx,
	}
}

// BeginTx starts a transaction
func (db *DB) BeginTx(ctx context.Context) (*sql.Tx, error) {
	tx, err := db.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("error beginning transaction: %w", err)
	}
	return tx, nil
}

// RunInTx runs the given function in a transaction
func (db *DB) RunInTx(ctx context.Context, fn func(*DB) error) error {
	tx, err := db.BeginTx(ctx)
	if err != nil {
		return err
	}

	defer func() {
		if p := recover(); p != nil {
			tx.Rollback()
			panic(p)
		}
	}()

	txDB := db.WithTx(tx)
	if err := fn(txDB); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("error rolling back: %v (original error: %w)", rbErr, err)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("error committing: %w", err)
	}

	return nil
}

// Bootstrap is satisfied by the migrations run in New; it re-applies any
// pending ones so `leagus database bootstrap` behaves the same on both
// back ends.
func (db *DB) Bootstrap(ctx context.Context) error {
	return runMigrations(db.DB)
}

func (db *DB) Close(ctx context.Context) error {
	return db.DB.Close()
}
