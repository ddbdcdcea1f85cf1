package dashboard

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "taskboard.com/taskboard/internal/errors"
	model "taskboard.com/taskboard/internal/models"
)

type fakeStore struct {
	mu         sync.Mutex
	tasks      []model.Task
	categories []model.Category
	taskErr    error
	calls      atomic.Int32
	// block, when set, holds Search until it is closed.
	block chan struct{}
}

func (f *fakeStore) Search(ctx context.Context, userID, query string) ([]model.Task, error) {
	f.calls.Add(1)
	f.mu.Lock()
	block := f.block
	f.mu.Unlock()
	if block != nil {
		<-block
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.taskErr != nil {
		return nil, f.taskErr
	}
	out := make([]model.Task, 0, len(f.tasks))
	for _, t := range f.tasks {
		if t.UserID == userID {
			out = append(out, t)
		}
	}
	return out, nil
}

func (f *fakeStore) List(ctx context.Context, userID string) ([]model.Category, error) {
	f.calls.Add(1)
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]model.Category, 0, len(f.categories))
	for _, c := range f.categories {
		if c.UserID == userID {
			out = append(out, c)
		}
	}
	return out, nil
}

var (
	ada = &model.Identity{ID: "u1", Email: "ada@example.com"}
	now = time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
)

func datePtr(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func strPtr(s string) *string {
	return &s
}

func TestController_OpenWithoutIdentity(t *testing.T) {
	store := &fakeStore{}
	ctrl := NewController(store, store)

	err := ctrl.Open(context.Background(), nil)
	require.ErrorIs(t, err, apperrors.ErrUnauthenticated)
	assert.Equal(t, Unauthenticated, ctrl.State())
	assert.Zero(t, store.calls.Load())

	err = ctrl.Mutate(context.Background(), func(context.Context, string) error {
		t.Fatal("mutation must not run without identity")
		return nil
	})
	require.ErrorIs(t, err, apperrors.ErrUnauthenticated)
}

func TestController_OpenLoadsBothLists(t *testing.T) {
	store := &fakeStore{
		tasks:      []model.Task{{ID: "t1", Title: "mine", UserID: "u1"}, {ID: "t2", Title: "theirs", UserID: "u2"}},
		categories: []model.Category{{ID: "c1", Name: "Work", Color: "#3B82F6", UserID: "u1"}},
	}
	ctrl := NewController(store, store)

	require.NoError(t, ctrl.Open(context.Background(), ada))
	assert.Equal(t, Ready, ctrl.State())

	view := ctrl.View(now)
	require.Len(t, view.Tasks, 1)
	assert.Equal(t, "t1", view.Tasks[0].Task.ID)
	require.Len(t, view.Categories, 1)
	assert.Equal(t, "ada@example.com", view.Identity.Email)
	assert.NoError(t, view.Err)
}

func TestController_ViewResolvesCategoryAndOverdue(t *testing.T) {
	store := &fakeStore{
		tasks: []model.Task{
			{ID: "work", Title: "report", UserID: "u1", CategoryID: strPtr("c1"), DueDate: datePtr(2026, 3, 1)},
			{ID: "dangling", Title: "orphan", UserID: "u1", CategoryID: strPtr("deleted")},
			{ID: "done", Title: "old", UserID: "u1", Completed: true, DueDate: datePtr(2026, 3, 1)},
			{ID: "future", Title: "later", UserID: "u1", DueDate: datePtr(2026, 4, 1)},
		},
		categories: []model.Category{{ID: "c1", Name: "Work", Color: "#3B82F6", UserID: "u1"}},
	}
	ctrl := NewController(store, store)
	require.NoError(t, ctrl.Open(context.Background(), ada))

	view := ctrl.View(now)
	require.Len(t, view.Tasks, 4)

	require.NotNil(t, view.Tasks[0].Category)
	assert.Equal(t, "Work", view.Tasks[0].Category.Name)
	assert.Equal(t, "#3B82F6", view.Tasks[0].Category.Color)
	assert.True(t, view.Tasks[0].Overdue)

	assert.Nil(t, view.Tasks[1].Category)
	assert.False(t, view.Tasks[1].Overdue)

	assert.False(t, view.Tasks[2].Overdue)
	assert.False(t, view.Tasks[3].Overdue)
}

func TestController_MutateRefetchesOnSuccess(t *testing.T) {
	store := &fakeStore{}
	ctrl := NewController(store, store)
	require.NoError(t, ctrl.Open(context.Background(), ada))
	assert.True(t, ctrl.View(now).Empty())

	err := ctrl.Mutate(context.Background(), func(_ context.Context, userID string) error {
		store.mu.Lock()
		defer store.mu.Unlock()
		store.tasks = append(store.tasks, model.Task{ID: "new", Title: "fresh", UserID: userID})
		return nil
	})
	require.NoError(t, err)

	view := ctrl.View(now)
	assert.Equal(t, Ready, view.State)
	require.Len(t, view.Tasks, 1)
	assert.Equal(t, "fresh", view.Tasks[0].Task.Title)
}

func TestController_MutateFailureStillRefetches(t *testing.T) {
	store := &fakeStore{}
	ctrl := NewController(store, store)
	require.NoError(t, ctrl.Open(context.Background(), ada))
	before := store.calls.Load()

	err := ctrl.Mutate(context.Background(), func(context.Context, string) error {
		return apperrors.ErrTitleRequired
	})
	require.ErrorIs(t, err, apperrors.ErrTitleRequired)
	assert.Equal(t, before+2, store.calls.Load())

	view := ctrl.View(now)
	assert.Equal(t, Error, view.State)
	assert.ErrorIs(t, view.Err, apperrors.ErrTitleRequired)

	require.NoError(t, ctrl.Refresh(context.Background()))
	assert.Equal(t, Ready, ctrl.State())
	assert.NoError(t, ctrl.View(now).Err)
}

func TestController_FetchFailureKeepsPreviousLists(t *testing.T) {
	store := &fakeStore{tasks: []model.Task{{ID: "t1", Title: "kept", UserID: "u1"}}}
	ctrl := NewController(store, store)
	require.NoError(t, ctrl.Open(context.Background(), ada))

	store.mu.Lock()
	store.taskErr = errors.New("connection refused")
	store.mu.Unlock()

	err := ctrl.Refresh(context.Background())
	require.EqualError(t, err, "connection refused")

	view := ctrl.View(now)
	assert.Equal(t, Error, view.State)
	require.Len(t, view.Tasks, 1)
	assert.Equal(t, "kept", view.Tasks[0].Task.Title)
}

func TestController_DiscardsFetchAfterClose(t *testing.T) {
	store := &fakeStore{}
	ctrl := NewController(store, store)
	require.NoError(t, ctrl.Open(context.Background(), ada))

	store.mu.Lock()
	store.block = make(chan struct{})
	store.tasks = []model.Task{{ID: "late", Title: "late", UserID: "u1"}}
	block := store.block
	store.mu.Unlock()

	done := make(chan error, 1)
	go func() { done <- ctrl.Refresh(context.Background()) }()

	require.Eventually(t, func() bool { return ctrl.State() == Loading }, time.Second, time.Millisecond)
	ctrl.Close()
	close(block)
	require.NoError(t, <-done)

	assert.Empty(t, ctrl.View(now).Tasks)
}

func TestController_DiscardsStaleFetch(t *testing.T) {
	store := &fakeStore{}
	ctrl := NewController(store, store)
	require.NoError(t, ctrl.Open(context.Background(), ada))

	store.mu.Lock()
	store.block = make(chan struct{})
	block := store.block
	store.mu.Unlock()

	slow := make(chan error, 1)
	go func() { slow <- ctrl.Refresh(context.Background()) }()
	require.Eventually(t, func() bool { return store.calls.Load() >= 4 }, time.Second, time.Millisecond)

	store.mu.Lock()
	store.block = nil
	store.tasks = []model.Task{{ID: "new", Title: "newest", UserID: "u1"}}
	store.mu.Unlock()
	require.NoError(t, ctrl.Refresh(context.Background()))

	store.mu.Lock()
	store.tasks = nil
	store.mu.Unlock()
	close(block)
	require.NoError(t, <-slow)

	view := ctrl.View(now)
	require.Len(t, view.Tasks, 1)
	assert.Equal(t, "newest", view.Tasks[0].Task.Title)
}

func TestController_BindThenMutateFetchesOnce(t *testing.T) {
	store := &fakeStore{}
	ctrl := NewController(store, store)

	require.ErrorIs(t, ctrl.Bind(nil), apperrors.ErrUnauthenticated)
	require.NoError(t, ctrl.Bind(ada))
	assert.Equal(t, Loading, ctrl.State())
	assert.Zero(t, store.calls.Load())

	require.NoError(t, ctrl.Mutate(context.Background(), func(context.Context, string) error { return nil }))
	assert.Equal(t, int32(2), store.calls.Load())
	assert.Equal(t, Ready, ctrl.State())
}
