package domain

import "context"

// TodoStore defines the interface for todo storage operations.
// Every method is a single autocommit statement; deleting or updating
// an id that does not exist succeeds without touching any row.
type TodoStore interface {
	ListAll(ctx context.Context) ([]Todo, error)
	Create(ctx context.Context, description string) (int64, error)
	DeleteById(ctx context.Context, id int64) error
	UpdateById(ctx context.Context, id int64, description string, done bool) error
	Ping(ctx context.Context) error
}
