package database_test

import (
	"context"
	"testing"

	"github.com/rpupo63/portfolio-admin-backend/database"
	"github.com/rpupo63/portfolio-admin-backend/models"
	"github.com/rpupo63/portfolio-admin-backend/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func addProject(t *testing.T, d database.Database, typeID uint, title string) *models.Project {
	t.Helper()

	project := &models.Project{
		Title:   title,
		Slug:    "provisional",
		URL:     "https://example.test",
		Content: "some long enough content",
		TypeID:  typeID,
	}
	require.NoError(t, d.ProjectRepo().Add(context.Background(), project))
	return project
}

func TestProjectRepoReadModes(t *testing.T) {
	ctx := context.Background()
	d := testutil.InitDatabase(t)
	projectType := testutil.CreateType(t, d, "web")
	repo := d.ProjectRepo()

	active := addProject(t, d, projectType.ID, "Active project")
	trashed := addProject(t, d, projectType.ID, "Trashed project")
	require.NoError(t, repo.UpdateSlug(ctx, trashed.ID, "2-trashed-project"))
	require.NoError(t, repo.SoftDelete(ctx, trashed.ID))

	t.Run("FindActive excludes trashed rows", func(t *testing.T) {
		found, err := repo.FindActive(ctx, active.ID)
		require.NoError(t, err)
		require.NotNil(t, found)
		assert.Equal(t, "Active project", found.Title)
		require.NotNil(t, found.Type)
		assert.Equal(t, "web", found.Type.Name)

		found, err = repo.FindActive(ctx, trashed.ID)
		require.NoError(t, err)
		assert.Nil(t, found)
	})

	t.Run("FindTrashed matches id or slug of trashed rows only", func(t *testing.T) {
		found, err := repo.FindTrashed(ctx, "2-trashed-project")
		require.NoError(t, err)
		require.NotNil(t, found)
		assert.Equal(t, trashed.ID, found.ID)
		assert.True(t, found.Trashed())

		found, err = repo.FindTrashed(ctx, "2")
		require.NoError(t, err)
		require.NotNil(t, found)

		found, err = repo.FindTrashed(ctx, "1")
		require.NoError(t, err)
		assert.Nil(t, found)
	})

	t.Run("FindAny ignores the deletion marker", func(t *testing.T) {
		found, err := repo.FindAny(ctx, trashed.ID)
		require.NoError(t, err)
		require.NotNil(t, found)
	})

	t.Run("Restore clears the marker once", func(t *testing.T) {
		require.NoError(t, repo.Restore(ctx, trashed.ID))
		found, err := repo.FindActive(ctx, trashed.ID)
		require.NoError(t, err)
		require.NotNil(t, found)

		assert.ErrorIs(t, repo.Restore(ctx, trashed.ID), gorm.ErrRecordNotFound)
	})

	t.Run("SoftDelete of a missing row reports not found", func(t *testing.T) {
		assert.ErrorIs(t, repo.SoftDelete(ctx, 999), gorm.ErrRecordNotFound)
	})
}

func TestProjectRepoPage(t *testing.T) {
	ctx := context.Background()
	d := testutil.InitDatabase(t)
	projectType := testutil.CreateType(t, d, "web")
	repo := d.ProjectRepo()

	var ids []uint
	for _, title := range []string{"One", "Two", "Three", "Four", "Five"} {
		ids = append(ids, addProject(t, d, projectType.ID, title).ID)
	}
	require.NoError(t, repo.SoftDelete(ctx, ids[1]))
	require.NoError(t, repo.SoftDelete(ctx, ids[3]))

	active, total, err := repo.Page(ctx, false, 0, 2)
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)
	require.Len(t, active, 2)
	assert.Equal(t, ids[0], active[0].ID)
	assert.Equal(t, ids[2], active[1].ID)

	active, _, err = repo.Page(ctx, false, 2, 2)
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, ids[4], active[0].ID)

	trashed, total, err := repo.Page(ctx, true, 0, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	require.Len(t, trashed, 2)
	for _, project := range trashed {
		assert.True(t, project.Trashed())
	}

	beyond, _, err := repo.Page(ctx, false, 20, 10)
	require.NoError(t, err)
	assert.Empty(t, beyond)
	assert.NotNil(t, beyond)
}

func TestProjectRepoTitleTaken(t *testing.T) {
	ctx := context.Background()
	d := testutil.InitDatabase(t)
	projectType := testutil.CreateType(t, d, "web")
	repo := d.ProjectRepo()

	live := addProject(t, d, projectType.ID, "Live")
	gone := addProject(t, d, projectType.ID, "Gone")
	require.NoError(t, repo.SoftDelete(ctx, gone.ID))

	taken, err := repo.TitleTaken(ctx, "Live", 0)
	require.NoError(t, err)
	assert.True(t, taken)

	taken, err = repo.TitleTaken(ctx, "Live", live.ID)
	require.NoError(t, err)
	assert.False(t, taken)

	taken, err = repo.TitleTaken(ctx, "Gone", 0)
	require.NoError(t, err)
	assert.False(t, taken)

	// the partial unique index allows reusing a trashed title
	addProject(t, d, projectType.ID, "Gone")
}

func TestProjectRepoTransactionRollback(t *testing.T) {
	ctx := context.Background()
	d := testutil.InitDatabase(t)
	projectType := testutil.CreateType(t, d, "web")

	err := d.Transaction(ctx, func(tx database.Database) error {
		project := &models.Project{Title: "Rolled back", Slug: "x", URL: "u", Content: "content here", TypeID: projectType.ID}
		require.NoError(t, tx.ProjectRepo().Add(ctx, project))
		return gorm.ErrInvalidTransaction
	})
	require.ErrorIs(t, err, gorm.ErrInvalidTransaction)

	page, total, err := d.ProjectRepo().Page(ctx, false, 0, 10)
	require.NoError(t, err)
	assert.Zero(t, total)
	assert.Empty(t, page)
}
