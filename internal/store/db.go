package store

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"strings"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"modernc.org/sqlite"

	"github.com/Interreferences/NoWayDpl-back/internal/constants"
)

func init() {
	// modernc registers itself as "sqlite", which sqlx does not know.
	sqlx.BindDriver("sqlite", sqlx.QUESTION)
	// sqlite's LOWER only folds ASCII; postgres gets the same function from its schema.
	sqlite.MustRegisterDeterministicScalarFunction("unicode_lower", 1, unicodeLower)
}

func unicodeLower(_ *sqlite.FunctionContext, args []driver.Value) (driver.Value, error) {
	switch v := args[0].(type) {
	case string:
		return strings.ToLower(v), nil
	case []byte:
		return strings.ToLower(string(v)), nil
	default:
		return v, nil
	}
}

// ops is satisfied by both *sqlx.DB and *sqlx.Tx.
type ops interface {
	sqlx.ExtContext
	GetContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	SelectContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
}

// DB is the catalog store. Inside RunInTx every method runs on the transaction.
type DB struct {
	ops
	root   *sqlx.DB
	driver string
	inTx   bool
}

// NewDB opens the database for driver ("sqlite" or "postgres") and applies the schema.
func NewDB(driver, dsn string) (*DB, error) {
	var (
		conn   *sqlx.DB
		schema []string
		err    error
	)

	switch driver {
	case constants.DriverSQLite:
		conn, err = sqlx.Open("sqlite", sqliteDSN(dsn))
		if err != nil {
			return nil, fmt.Errorf("failed to open db: %w", err)
		}
		// one writer; every statement inside a transaction must use the tx handle
		conn.SetMaxOpenConns(1)
		schema = sqliteSchema
	case constants.DriverPostgres:
		conn, err = sqlx.Open("pgx", dsn)
		if err != nil {
			return nil, fmt.Errorf("failed to open db: %w", err)
		}
		schema = postgresSchema
	default:
		return nil, fmt.Errorf("unsupported db driver %q", driver)
	}

	if err := conn.Ping(); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to ping db: %w", err)
	}

	for _, stmt := range schema {
		if _, err := conn.Exec(stmt); err != nil {
			_ = conn.Close()
			return nil, fmt.Errorf("failed to apply schema: %w", err)
		}
	}

	return &DB{ops: conn, root: conn, driver: driver}, nil
}

// NewSQLiteDB opens a sqlite database file.
func NewSQLiteDB(path string) (*DB, error) {
	return NewDB(constants.DriverSQLite, path)
}

func sqliteDSN(path string) string {
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	return fmt.Sprintf("%s%s_pragma=foreign_keys(1)&_pragma=busy_timeout(%d)&_pragma=journal_mode(WAL)",
		path, sep, constants.DefaultBusyTimeout)
}

func (db *DB) Close() error {
	return db.root.Close()
}

// Driver returns the configured driver name.
func (db *DB) Driver() string {
	return db.driver
}

// RunInTx runs fn inside a transaction. fn gets a DB bound to the transaction;
// returning an error rolls everything back. Nested calls reuse the outer transaction.
func (db *DB) RunInTx(ctx context.Context, fn func(tx *DB) error) error {
	if db.inTx {
		return fn(db)
	}

	tx, err := db.root.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	txDB := &DB{
		ops:    tx,
		root:   db.root,
		driver: db.driver,
		inTx:   true,
	}

	if err := fn(txDB); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit tx: %w", err)
	}
	return nil
}

// insertID runs an INSERT ... RETURNING id statement.
func (db *DB) insertID(ctx context.Context, query string, args ...interface{}) (int, error) {
	var id int
	if err := db.QueryRowxContext(ctx, db.Rebind(query), args...).Scan(&id); err != nil {
		return 0, err
	}
	return id, nil
}

func (db *DB) exec(ctx context.Context, query string, args ...interface{}) (int64, error) {
	res, err := db.ExecContext(ctx, db.Rebind(query), args...)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// getOne scans a single row into dest. It reports false when there is no row.
func (db *DB) getOne(ctx context.Context, dest interface{}, query string, args ...interface{}) (bool, error) {
	err := db.GetContext(ctx, dest, db.Rebind(query), args...)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (db *DB) selectIn(ctx context.Context, dest interface{}, query string, args ...interface{}) error {
	q, inArgs, err := sqlx.In(query, args...)
	if err != nil {
		return err
	}
	return db.SelectContext(ctx, dest, db.Rebind(q), inArgs...)
}

// MissingIDs returns the ids from ids that have no row in table.
func (db *DB) MissingIDs(ctx context.Context, table string, ids []int) ([]int, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	if !knownTables[table] {
		return nil, fmt.Errorf("unknown table %q", table)
	}

	var found []int
	if err := db.selectIn(ctx, &found, "SELECT id FROM "+table+" WHERE id IN (?)", ids); err != nil {
		return nil, fmt.Errorf("failed to check %s ids: %w", table, err)
	}

	present := make(map[int]bool, len(found))
	for _, id := range found {
		present[id] = true
	}
	var missing []int
	for _, id := range ids {
		if !present[id] {
			missing = append(missing, id)
		}
	}
	return missing, nil
}

var knownTables = map[string]bool{
	"artists":       true,
	"releases":      true,
	"tracks":        true,
	"genres":        true,
	"labels":        true,
	"release_types": true,
	"roles":         true,
	"users":         true,
	"playlists":     true,
}

// likePattern builds a case-insensitive substring pattern for LIKE ... ESCAPE '\'.
func likePattern(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(strings.ToLower(s)) + "%"
}
