package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "taskboard.com/taskboard/internal/errors"
)

func TestCategoryRepository_ListByName(t *testing.T) {
	_, repo := newTaskFixture(t)
	ctx := context.Background()

	categories, err := repo.List(ctx, alice)
	require.NoError(t, err)
	require.NotNil(t, categories)
	assert.Empty(t, categories)

	for _, name := range []string{"Work", "Errands", "Home"} {
		_, err := repo.Create(ctx, alice, name, "#3B82F6")
		require.NoError(t, err)
	}
	_, err = repo.Create(ctx, bob, "Aardvark", "#fff")
	require.NoError(t, err)

	categories, err = repo.List(ctx, alice)
	require.NoError(t, err)
	require.Len(t, categories, 3)
	assert.Equal(t, "Errands", categories[0].Name)
	assert.Equal(t, "Home", categories[1].Name)
	assert.Equal(t, "Work", categories[2].Name)
}

func TestCategoryRepository_Update(t *testing.T) {
	_, repo := newTaskFixture(t)
	ctx := context.Background()

	category, err := repo.Create(ctx, alice, "Wrok", "#3B82F6")
	require.NoError(t, err)

	updated, err := repo.Update(ctx, alice, category.ID, CategoryChanges{Name: strPtr("Work"), Color: strPtr("#10B981")})
	require.NoError(t, err)
	assert.Equal(t, "Work", updated.Name)
	assert.Equal(t, "#10B981", updated.Color)

	_, err = repo.Update(ctx, bob, category.ID, CategoryChanges{Name: strPtr("Mine")})
	assert.ErrorIs(t, err, apperrors.ErrCategoryNotFound)

	_, err = repo.Get(ctx, bob, category.ID)
	assert.ErrorIs(t, err, apperrors.ErrCategoryNotFound)
}

func TestCategoryRepository_DeleteLeavesTasksDangling(t *testing.T) {
	tasks, repo := newTaskFixture(t)
	ctx := context.Background()

	category, err := repo.Create(ctx, alice, "Work", "#3B82F6")
	require.NoError(t, err)
	task, err := tasks.Create(ctx, alice, NewTask{Title: "report", CategoryID: &category.ID})
	require.NoError(t, err)

	require.NoError(t, repo.Delete(ctx, bob, category.ID))
	categories, err := repo.List(ctx, alice)
	require.NoError(t, err)
	assert.Len(t, categories, 1)

	require.NoError(t, repo.Delete(ctx, alice, category.ID))
	require.NoError(t, repo.Delete(ctx, alice, category.ID))

	categories, err = repo.List(ctx, alice)
	require.NoError(t, err)
	assert.Empty(t, categories)

	stored, err := tasks.Get(ctx, alice, task.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.CategoryID)
	assert.Equal(t, category.ID, *stored.CategoryID)
}
