package dashboard

import (
	"time"

	model "taskboard.com/taskboard/internal/models"
)

type TaskView struct {
	Task model.Task
	// Category is nil for uncategorized tasks and for tasks whose category
	// was deleted.
	Category *model.Category
	Overdue  bool
}

type View struct {
	State      State
	Identity   *model.Identity
	Query      string
	Tasks      []TaskView
	Categories []model.Category
	Err        error
}

// Empty reports whether the user has no tasks at all, as opposed to a search
// that matched nothing.
func (v View) Empty() bool {
	return len(v.Tasks) == 0 && v.Query == ""
}

// View derives what the page shows from the last successful fetch.
func (c *Controller) View(now time.Time) View {
	c.mu.Lock()
	defer c.mu.Unlock()

	byID := make(map[string]*model.Category, len(c.categoryList))
	categories := make([]model.Category, len(c.categoryList))
	copy(categories, c.categoryList)
	for i := range categories {
		byID[categories[i].ID] = &categories[i]
	}

	tasks := make([]TaskView, 0, len(c.taskList))
	for _, t := range c.taskList {
		tv := TaskView{Task: t, Overdue: t.Overdue(now)}
		if t.CategoryID != nil {
			tv.Category = byID[*t.CategoryID]
		}
		tasks = append(tasks, tv)
	}

	var identity *model.Identity
	if c.identity != nil {
		id := *c.identity
		identity = &id
	}

	return View{
		State:      c.state,
		Identity:   identity,
		Query:      c.query,
		Tasks:      tasks,
		Categories: categories,
		Err:        c.lastErr,
	}
}
