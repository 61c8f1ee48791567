package api

import (
	"context"
	"errors"
	"sync"

	"github.com/adfharrison1/todod/pkg/domain"
)

// ErrMockStorage is returned by MockTodoStore operations after FailWith
var ErrMockStorage = errors.New("mock storage failure")

// MockTodoStore provides an in-memory implementation of domain.TodoStore for testing
type MockTodoStore struct {
	mu     sync.Mutex
	todos  []domain.Todo
	nextID int64
	err    error

	listCalls   int
	createCalls int
	deleteCalls int
	updateCalls int
}

// NewMockTodoStore creates a new mock store
func NewMockTodoStore() *MockTodoStore {
	return &MockTodoStore{nextID: 1}
}

// FailWith makes every subsequent operation return a StorageError wrapping err
func (m *MockTodoStore) FailWith(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}

func (m *MockTodoStore) failure(op string) error {
	if m.err == nil {
		return nil
	}
	return &domain.StorageError{Op: op, Err: m.err}
}

func (m *MockTodoStore) ListAll(ctx context.Context) ([]domain.Todo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.listCalls++
	if err := m.failure("list"); err != nil {
		return nil, err
	}

	todos := make([]domain.Todo, len(m.todos))
	copy(todos, m.todos)
	return todos, nil
}

func (m *MockTodoStore) Create(ctx context.Context, description string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.createCalls++
	if err := m.failure("create"); err != nil {
		return 0, err
	}

	id := m.nextID
	m.nextID++
	m.todos = append(m.todos, domain.Todo{ID: id, Description: description})
	return id, nil
}

func (m *MockTodoStore) DeleteById(ctx context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.deleteCalls++
	if err := m.failure("delete"); err != nil {
		return err
	}

	for i, todo := range m.todos {
		if todo.ID == id {
			m.todos = append(m.todos[:i], m.todos[i+1:]...)
			break
		}
	}
	return nil
}

func (m *MockTodoStore) UpdateById(ctx context.Context, id int64, description string, done bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.updateCalls++
	if err := m.failure("update"); err != nil {
		return err
	}

	for i := range m.todos {
		if m.todos[i].ID == id {
			m.todos[i].Description = description
			m.todos[i].Done = done
			break
		}
	}
	return nil
}

func (m *MockTodoStore) Ping(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.failure("ping")
}

// GetTodos returns a copy of the stored todos
func (m *MockTodoStore) GetTodos() []domain.Todo {
	m.mu.Lock()
	defer m.mu.Unlock()
	todos := make([]domain.Todo, len(m.todos))
	copy(todos, m.todos)
	return todos
}

// GetListCalls returns the number of ListAll calls
func (m *MockTodoStore) GetListCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.listCalls
}

// GetCreateCalls returns the number of Create calls
func (m *MockTodoStore) GetCreateCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.createCalls
}

// GetDeleteCalls returns the number of DeleteById calls
func (m *MockTodoStore) GetDeleteCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.deleteCalls
}

// GetUpdateCalls returns the number of UpdateById calls
func (m *MockTodoStore) GetUpdateCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.updateCalls
}
