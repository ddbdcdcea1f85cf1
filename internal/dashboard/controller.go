package dashboard

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"

	apperrors "taskboard.com/taskboard/internal/errors"
	model "taskboard.com/taskboard/internal/models"
)

type State int

const (
	Unauthenticated State = iota
	Loading
	Ready
	Error
)

func (s State) String() string {
	switch s {
	case Unauthenticated:
		return "unauthenticated"
	case Loading:
		return "loading"
	case Ready:
		return "ready"
	case Error:
		return "error"
	default:
		return "unknown"
	}
}

type TaskLister interface {
	Search(ctx context.Context, userID, query string) ([]model.Task, error)
}

type CategoryLister interface {
	List(ctx context.Context, userID string) ([]model.Category, error)
}

// Controller holds the dashboard of one signed-in user for the lifetime of a
// view. Every mutation is followed by a full re-fetch, so the lists always
// mirror the store.
type Controller struct {
	tasks      TaskLister
	categories CategoryLister

	mu           sync.Mutex
	state        State
	identity     *model.Identity
	query        string
	taskList     []model.Task
	categoryList []model.Category
	lastErr      error
	generation   uint64
	closed       bool
}

func NewController(tasks TaskLister, categories CategoryLister) *Controller {
	return &Controller{
		tasks:        tasks,
		categories:   categories,
		state:        Unauthenticated,
		taskList:     []model.Task{},
		categoryList: []model.Category{},
	}
}

// Open binds the controller to identity and loads both lists. A nil identity
// leaves the controller unauthenticated without touching the store.
func (c *Controller) Open(ctx context.Context, identity *model.Identity) error {
	if err := c.Bind(identity); err != nil {
		return err
	}
	return c.Refresh(ctx)
}

// Bind attaches identity without fetching, for views that start with a
// mutation and load afterwards.
func (c *Controller) Bind(identity *model.Identity) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if identity == nil {
		c.state = Unauthenticated
		c.identity = nil
		return apperrors.ErrUnauthenticated
	}

	id := *identity
	c.identity = &id
	c.state = Loading
	return nil
}

// SetQuery narrows the task list on the next fetch.
func (c *Controller) SetQuery(query string) {
	c.mu.Lock()
	c.query = query
	c.mu.Unlock()
}

// Refresh re-fetches tasks and categories in parallel.
func (c *Controller) Refresh(ctx context.Context) error {
	c.mu.Lock()
	if c.identity == nil {
		c.mu.Unlock()
		return apperrors.ErrUnauthenticated
	}
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	c.generation++
	gen := c.generation
	userID := c.identity.ID
	query := c.query
	c.state = Loading
	c.mu.Unlock()

	var (
		tasks      []model.Task
		categories []model.Category
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		tasks, err = c.tasks.Search(gctx, userID, query)
		return err
	})
	g.Go(func() error {
		var err error
		categories, err = c.categories.List(gctx, userID)
		return err
	})
	err := g.Wait()

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed || gen != c.generation {
		return err
	}
	if err != nil {
		c.state = Error
		c.lastErr = err
		return err
	}

	c.taskList = tasks
	c.categoryList = categories
	c.lastErr = nil
	c.state = Ready
	return nil
}

// Mutate runs fn for the bound identity and then re-fetches regardless of the
// outcome. A failed mutation leaves the controller in Error with that failure
// even when the re-fetch succeeds.
func (c *Controller) Mutate(ctx context.Context, fn func(ctx context.Context, userID string) error) error {
	c.mu.Lock()
	if c.identity == nil {
		c.mu.Unlock()
		return apperrors.ErrUnauthenticated
	}
	userID := c.identity.ID
	c.mu.Unlock()

	mutateErr := fn(ctx, userID)
	refreshErr := c.Refresh(ctx)

	if mutateErr != nil {
		c.mu.Lock()
		if !c.closed {
			c.state = Error
			c.lastErr = mutateErr
		}
		c.mu.Unlock()
		return mutateErr
	}
	return refreshErr
}

// Close detaches the controller. Fetches still in flight are discarded.
func (c *Controller) Close() {
	c.mu.Lock()
	c.closed = true
	c.mu.Unlock()
}

func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

func (c *Controller) Identity() *model.Identity {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.identity == nil {
		return nil
	}
	id := *c.identity
	return &id
}
