package storage

import (
	"context"

	"github.com/sirupsen/logrus"
	"zombiezen.com/go/sqlite"
	"zombiezen.com/go/sqlite/sqlitex"

	"github.com/adfharrison1/todod/pkg/domain"
)

const (
	listAllSQL    = `SELECT id, description, done FROM todos ORDER BY id`
	insertSQL     = `INSERT INTO todos (description) VALUES (?)`
	deleteByIdSQL = `DELETE FROM todos WHERE id = ?`
	updateByIdSQL = `UPDATE todos SET description = ?, done = ? WHERE id = ?`
)

// withConn borrows a connection for the duration of fn. Failures are
// reported as domain.StorageError tagged with op.
func (s *Store) withConn(ctx context.Context, op string, fn func(conn *sqlite.Conn) error) error {
	conn, err := s.pool.Take(ctx)
	if err != nil {
		return &domain.StorageError{Op: op, Err: err}
	}
	defer s.pool.Put(conn)

	if err := fn(conn); err != nil {
		return &domain.StorageError{Op: op, Err: err}
	}
	return nil
}

// ListAll returns every todo ordered by ascending id. An empty table
// yields an empty, non-nil slice.
func (s *Store) ListAll(ctx context.Context) ([]domain.Todo, error) {
	todos := make([]domain.Todo, 0)
	err := s.withConn(ctx, "list", func(conn *sqlite.Conn) error {
		return sqlitex.Execute(conn, listAllSQL, &sqlitex.ExecOptions{
			ResultFunc: func(stmt *sqlite.Stmt) error {
				todos = append(todos, domain.Todo{
					ID:          stmt.ColumnInt64(0),
					Description: stmt.ColumnText(1),
					Done:        stmt.ColumnInt64(2) != 0,
				})
				return nil
			},
		})
	})
	if err != nil {
		return nil, err
	}
	return todos, nil
}

// Create inserts a todo with done=false and returns the id assigned by
// the database. The description is stored as given, empty included.
func (s *Store) Create(ctx context.Context, description string) (int64, error) {
	var id int64
	err := s.withConn(ctx, "create", func(conn *sqlite.Conn) error {
		if err := sqlitex.Execute(conn, insertSQL, &sqlitex.ExecOptions{
			Args: []any{description},
		}); err != nil {
			return err
		}
		id = conn.LastInsertRowID()
		return nil
	})
	if err != nil {
		return 0, err
	}
	return id, nil
}

// DeleteById removes the todo with the given id. A missing id is not an
// error.
func (s *Store) DeleteById(ctx context.Context, id int64) error {
	return s.withConn(ctx, "delete", func(conn *sqlite.Conn) error {
		if err := sqlitex.Execute(conn, deleteByIdSQL, &sqlitex.ExecOptions{
			Args: []any{id},
		}); err != nil {
			return err
		}
		s.logger.WithFields(logrus.Fields{"id": id, "rows": conn.Changes()}).Debug("delete executed")
		return nil
	})
}

// UpdateById overwrites description and done of the todo with the given
// id. A missing id is not an error.
func (s *Store) UpdateById(ctx context.Context, id int64, description string, done bool) error {
	return s.withConn(ctx, "update", func(conn *sqlite.Conn) error {
		if err := sqlitex.Execute(conn, updateByIdSQL, &sqlitex.ExecOptions{
			Args: []any{description, done, id},
		}); err != nil {
			return err
		}
		s.logger.WithFields(logrus.Fields{"id": id, "rows": conn.Changes()}).Debug("update executed")
		return nil
	})
}

// Ping checks that a connection can be taken and used.
func (s *Store) Ping(ctx context.Context) error {
	return s.withConn(ctx, "ping", func(conn *sqlite.Conn) error {
		return sqlitex.ExecuteTransient(conn, "SELECT 1", nil)
	})
}
