package storage

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"zombiezen.com/go/sqlite/sqlitex"

	"github.com/adfharrison1/todod/pkg/domain"
)

func newTestStore(t *testing.T, options ...StoreOption) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "todos.db")
	store, err := Open(path, options...)
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestOpen_RequiresPath(t *testing.T) {
	_, err := Open("")
	assert.Error(t, err)
}

func TestStore_ListAllEmpty(t *testing.T) {
	store := newTestStore(t)

	todos, err := store.ListAll(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, todos)
	assert.Empty(t, todos)
}

func TestStore_CreateAndList(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	id, err := store.Create(ctx, "buy milk")
	require.NoError(t, err)
	assert.Greater(t, id, int64(0))

	todos, err := store.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, todos, 1)
	assert.Equal(t, domain.Todo{ID: id, Description: "buy milk", Done: false}, todos[0])
}

func TestStore_CreateAssignsIncreasingIds(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	first, err := store.Create(ctx, "a")
	require.NoError(t, err)
	require.NoError(t, store.DeleteById(ctx, first))

	second, err := store.Create(ctx, "b")
	require.NoError(t, err)
	assert.Greater(t, second, first, "ids must not be reused after delete")
}

func TestStore_CreateEmptyDescription(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	_, err := store.Create(ctx, "")
	require.NoError(t, err)

	todos, err := store.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, todos, 1)
	assert.Equal(t, "", todos[0].Description)
}

func TestStore_UpdateById(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	first, err := store.Create(ctx, "first")
	require.NoError(t, err)
	second, err := store.Create(ctx, "second")
	require.NoError(t, err)

	require.NoError(t, store.UpdateById(ctx, first, "x", true))

	todos, err := store.ListAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, []domain.Todo{
		{ID: first, Description: "x", Done: true},
		{ID: second, Description: "second", Done: false},
	}, todos)

	require.NoError(t, store.UpdateById(ctx, first, "x", false))
	todos, err = store.ListAll(ctx)
	require.NoError(t, err)
	assert.False(t, todos[0].Done)
}

func TestStore_MissingIdIsNoop(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	id, err := store.Create(ctx, "keep")
	require.NoError(t, err)

	assert.NoError(t, store.UpdateById(ctx, id+100, "ghost", true))
	assert.NoError(t, store.DeleteById(ctx, id+100))

	todos, err := store.ListAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, []domain.Todo{{ID: id, Description: "keep"}}, todos)
}

func TestStore_DeleteIsIdempotent(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	id, err := store.Create(ctx, "gone")
	require.NoError(t, err)

	require.NoError(t, store.DeleteById(ctx, id))
	require.NoError(t, store.DeleteById(ctx, id))

	todos, err := store.ListAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, todos)
}

func TestStore_ListOrderedById(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	var ids []int64
	for i := 0; i < 5; i++ {
		id, err := store.Create(ctx, fmt.Sprintf("todo-%d", i))
		require.NoError(t, err)
		ids = append(ids, id)
	}
	// Touch rows out of order; ordering must still follow ids.
	require.NoError(t, store.UpdateById(ctx, ids[3], "updated", true))
	require.NoError(t, store.UpdateById(ctx, ids[0], "updated", false))

	todos, err := store.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, todos, 5)
	for i := 1; i < len(todos); i++ {
		assert.Less(t, todos[i-1].ID, todos[i].ID)
	}
}

func TestStore_ConcurrentCreates(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t, WithPoolSize(4))

	const numCreates = 50
	var wg sync.WaitGroup
	idsCh := make(chan int64, numCreates)
	errCh := make(chan error, numCreates)

	for i := 0; i < numCreates; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			id, err := store.Create(ctx, fmt.Sprintf("concurrent-%d", n))
			if err != nil {
				errCh <- err
				return
			}
			idsCh <- id
		}(i)
	}
	wg.Wait()
	close(idsCh)
	close(errCh)

	for err := range errCh {
		t.Errorf("create failed: %v", err)
	}

	seen := make(map[int64]bool)
	for id := range idsCh {
		assert.False(t, seen[id], "duplicate id %d", id)
		seen[id] = true
	}
	assert.Len(t, seen, numCreates)

	todos, err := store.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, todos, numCreates)
	assert.True(t, sort.SliceIsSorted(todos, func(i, j int) bool { return todos[i].ID < todos[j].ID }))
}

func TestStore_StorageErrorOnMissingTable(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t, WithPoolSize(1))

	conn, err := store.pool.Take(ctx)
	require.NoError(t, err)
	require.NoError(t, sqlitex.ExecuteTransient(conn, "DROP TABLE todos", nil))
	store.pool.Put(conn)

	_, err = store.ListAll(ctx)
	require.Error(t, err)
	assert.True(t, domain.IsStorageError(err))

	_, err = store.Create(ctx, "nowhere")
	require.Error(t, err)
	var storageErr *domain.StorageError
	require.ErrorAs(t, err, &storageErr)
	assert.Equal(t, "create", storageErr.Op)
}

func TestStore_Ping(t *testing.T) {
	store := newTestStore(t)
	assert.NoError(t, store.Ping(context.Background()))
}
