// Package storage is the gateway between the HTTP layer and the todos
// table. It owns a fixed-size pool of SQLite connections shared by all
// in-flight requests and runs each logical operation as one
// parameterized autocommit statement.
package storage

import (
	"context"
	"fmt"
	"io"

	"github.com/sirupsen/logrus"
	"zombiezen.com/go/sqlite"
	"zombiezen.com/go/sqlite/sqlitex"
)

const defaultPoolSize = 4

const schemaSQL = `CREATE TABLE IF NOT EXISTS todos (
	id          INTEGER PRIMARY KEY AUTOINCREMENT,
	description TEXT NOT NULL,
	done        BOOLEAN NOT NULL DEFAULT FALSE
);`

// Store implements domain.TodoStore on top of a SQLite connection pool.
// Store is safe for concurrent use; individual connections are not, so
// every operation takes its own connection and puts it back.
type Store struct {
	pool     *sqlitex.Pool
	logger   *logrus.Entry
	path     string
	poolSize int
}

// Open creates the connection pool for the database at path and makes
// sure the todos table exists on every connection. Use ":memory:" only
// together with WithPoolSize(1), since each in-memory connection is a
// separate database.
func Open(path string, options ...StoreOption) (*Store, error) {
	if path == "" {
		return nil, fmt.Errorf("storage: database path is required")
	}

	discard := logrus.New()
	discard.SetOutput(io.Discard)

	store := &Store{
		logger:   discard.WithField("component", "storage"),
		path:     path,
		poolSize: defaultPoolSize,
	}
	for _, option := range options {
		option(store)
	}

	pool, err := sqlitex.NewPool(path, sqlitex.PoolOptions{
		PoolSize:    store.poolSize,
		PrepareConn: prepareConn,
	})
	if err != nil {
		return nil, fmt.Errorf("storage: opening %s: %w", path, err)
	}
	store.pool = pool

	// Connections are prepared lazily; fail fast on an unusable database.
	if err := store.Ping(context.Background()); err != nil {
		pool.Close()
		return nil, err
	}

	store.logger.WithFields(logrus.Fields{
		"path":      path,
		"pool_size": store.poolSize,
	}).Info("sqlite pool opened")

	return store, nil
}

// prepareConn applies connection pragmas and creates the schema.
// It runs once per pooled connection, on first use.
func prepareConn(conn *sqlite.Conn) error {
	pragmas := []string{
		"PRAGMA busy_timeout=5000",
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
	}
	for _, pragma := range pragmas {
		if err := sqlitex.ExecuteTransient(conn, pragma, nil); err != nil {
			return fmt.Errorf("%s: %w", pragma, err)
		}
	}

	if err := sqlitex.ExecuteScript(conn, schemaSQL, nil); err != nil {
		return fmt.Errorf("creating schema: %w", err)
	}
	return nil
}

// Close closes every connection in the pool, waiting for borrowed
// connections to be returned.
func (s *Store) Close() error {
	if err := s.pool.Close(); err != nil {
		s.logger.WithError(err).Error("sqlite pool close failed")
		return fmt.Errorf("storage: closing %s: %w", s.path, err)
	}
	s.logger.WithField("path", s.path).Info("sqlite pool closed")
	return nil
}
