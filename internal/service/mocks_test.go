package service

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/dmuriuki/taskforge-api/internal/domain"
	"github.com/dmuriuki/taskforge-api/internal/store"
)

// MockTaskStore is a mock implementation of store.TaskStore.
type MockTaskStore struct {
	mock.Mock
}

func (m *MockTaskStore) Create(ctx context.Context, task *domain.Task) error {
	args := m.Called(ctx, task)
	return args.Error(0)
}

func (m *MockTaskStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
	args := m.Called(ctx, id)
	if task, ok := args.Get(0).(*domain.Task); ok {
		return task, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockTaskStore) GetByTitle(ctx context.Context, title string) (*domain.Task, error) {
	args := m.Called(ctx, title)
	if task, ok := args.Get(0).(*domain.Task); ok {
		return task, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockTaskStore) List(
	ctx context.Context,
	filter store.TaskFilter,
	page store.PageRequest,
) ([]*domain.Task, int64, error) {
	args := m.Called(ctx, filter, page)
	tasks, _ := args.Get(0).([]*domain.Task)
	return tasks, args.Get(1).(int64), args.Error(2)
}

func (m *MockTaskStore) Update(ctx context.Context, task *domain.Task) error {
	args := m.Called(ctx, task)
	return args.Error(0)
}

func (m *MockTaskStore) Delete(ctx context.Context, id uuid.UUID, version int) error {
	args := m.Called(ctx, id, version)
	return args.Error(0)
}

func (m *MockTaskStore) WithTx(tx *sql.Tx) store.TaskStore {
	args := m.Called(tx)
	return args.Get(0).(store.TaskStore)
}

// MockTaskPageCache is a mock implementation of store.TaskPageCache.
type MockTaskPageCache struct {
	mock.Mock
}

func (m *MockTaskPageCache) GetPage(
	ctx context.Context,
	filter store.TaskFilter,
	page store.PageRequest,
) (*store.TaskPage, error) {
	args := m.Called(ctx, filter, page)
	if result, ok := args.Get(0).(*store.TaskPage); ok {
		return result, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockTaskPageCache) SetPage(
	ctx context.Context,
	filter store.TaskFilter,
	page store.PageRequest,
	result *store.TaskPage,
) error {
	args := m.Called(ctx, filter, page, result)
	return args.Error(0)
}

func (m *MockTaskPageCache) Invalidate(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
