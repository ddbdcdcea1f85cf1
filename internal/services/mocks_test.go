package services

import (
	"context"
	"sync"

	"github.com/stretchr/testify/mock"

	apperrors "taskboard.com/taskboard/internal/errors"
	model "taskboard.com/taskboard/internal/models"
	repository "taskboard.com/taskboard/internal/repositories"
)

type taskStoreMock struct {
	mock.Mock
}

func (m *taskStoreMock) Search(ctx context.Context, userID, query string) ([]model.Task, error) {
	args := m.Called(ctx, userID, query)
	var tasks []model.Task
	if value := args.Get(0); value != nil {
		tasks = value.([]model.Task)
	}
	return tasks, args.Error(1)
}

func (m *taskStoreMock) Get(ctx context.Context, userID, taskID string) (*model.Task, error) {
	args := m.Called(ctx, userID, taskID)
	return taskArg(args.Get(0)), args.Error(1)
}

func (m *taskStoreMock) Create(ctx context.Context, userID string, input repository.NewTask) (*model.Task, error) {
	args := m.Called(ctx, userID, input)
	return taskArg(args.Get(0)), args.Error(1)
}

func (m *taskStoreMock) Update(ctx context.Context, userID, taskID string, changes repository.TaskChanges) (*model.Task, error) {
	args := m.Called(ctx, userID, taskID, changes)
	return taskArg(args.Get(0)), args.Error(1)
}

func (m *taskStoreMock) SetCompleted(ctx context.Context, userID, taskID string, completed bool) (*model.Task, error) {
	args := m.Called(ctx, userID, taskID, completed)
	return taskArg(args.Get(0)), args.Error(1)
}

func (m *taskStoreMock) Delete(ctx context.Context, userID, taskID string) error {
	return m.Called(ctx, userID, taskID).Error(0)
}

func taskArg(v any) *model.Task {
	if v == nil {
		return nil
	}
	return v.(*model.Task)
}

type categoryStoreMock struct {
	mock.Mock
}

func (m *categoryStoreMock) List(ctx context.Context, userID string) ([]model.Category, error) {
	args := m.Called(ctx, userID)
	var categories []model.Category
	if value := args.Get(0); value != nil {
		categories = value.([]model.Category)
	}
	return categories, args.Error(1)
}

func (m *categoryStoreMock) Create(ctx context.Context, userID, name, color string) (*model.Category, error) {
	args := m.Called(ctx, userID, name, color)
	return categoryArg(args.Get(0)), args.Error(1)
}

func (m *categoryStoreMock) Update(ctx context.Context, userID, categoryID string, changes repository.CategoryChanges) (*model.Category, error) {
	args := m.Called(ctx, userID, categoryID, changes)
	return categoryArg(args.Get(0)), args.Error(1)
}

func (m *categoryStoreMock) Delete(ctx context.Context, userID, categoryID string) error {
	return m.Called(ctx, userID, categoryID).Error(0)
}

func categoryArg(v any) *model.Category {
	if v == nil {
		return nil
	}
	return v.(*model.Category)
}

// memoryUsers and memorySessions are in-memory stores that count calls.
type memoryUsers struct {
	mu    sync.Mutex
	users map[string]model.User
	calls int
}

func newMemoryUsers() *memoryUsers {
	return &memoryUsers{users: map[string]model.User{}}
}

func (m *memoryUsers) Create(_ context.Context, email, hash string) (*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	for _, u := range m.users {
		if u.Email == email {
			return nil, apperrors.ErrEmailTaken
		}
	}
	u := model.User{ID: "user-" + email, Email: email, PasswordHash: hash}
	m.users[u.ID] = u
	return &u, nil
}

func (m *memoryUsers) FindByEmail(_ context.Context, email string) (*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	for _, u := range m.users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, repository.ErrUserNotFound
}

func (m *memoryUsers) FindByID(_ context.Context, id string) (*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	u, ok := m.users[id]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	return &u, nil
}

type memorySessions struct {
	mu        sync.Mutex
	sessions  map[string]model.Session
	calls     int
	deleteErr error
}

func newMemorySessions() *memorySessions {
	return &memorySessions{sessions: map[string]model.Session{}}
}

func (m *memorySessions) Save(_ context.Context, s model.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	m.sessions[s.ID] = s
	return nil
}

func (m *memorySessions) Find(_ context.Context, id string) (*model.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	s, ok := m.sessions[id]
	if !ok {
		return nil, repository.ErrSessionNotFound
	}
	return &s, nil
}

func (m *memorySessions) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	if m.deleteErr != nil {
		return m.deleteErr
	}
	delete(m.sessions, id)
	return nil
}
