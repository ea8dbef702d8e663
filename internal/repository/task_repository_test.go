package repository

import (
	"testing"
	"time"

	"github.com/mtamura/project-tracker-api/internal/models"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestTaskRepository_CreateUnassigned(t *testing.T) {
	db := setupTestDB(t)
	repo := NewTaskRepository(db)

	task := &models.Task{
		Title:    "write report",
		Status:   models.StatusToDo,
		Priority: models.PriorityLow,
	}
	require.NoError(t, repo.Create(task))
	require.NotZero(t, task.ID)

	found, err := repo.FindByID(task.ID)
	require.NoError(t, err)
	require.Nil(t, found.ProjectID, "a task may belong to no project")
}

func TestTaskRepository_ListNewestFirst(t *testing.T) {
	db := setupTestDB(t)
	repo := NewTaskRepository(db)

	base := time.Now().Add(-time.Hour)
	for i, title := range []string{"first", "second", "third"} {
		task := &models.Task{
			Title:     title,
			Status:    models.StatusToDo,
			Priority:  models.PriorityLow,
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		}
		require.NoError(t, repo.Create(task))
	}

	tasks, err := repo.List(0, 2)
	require.NoError(t, err)
	require.Len(t, tasks, 2)
	require.Equal(t, "third", tasks[0].Title)
	require.Equal(t, "second", tasks[1].Title)
}

func TestTaskRepository_PartialUpdate(t *testing.T) {
	db := setupTestDB(t)
	repo := NewTaskRepository(db)

	task := &models.Task{
		Title:       "write report",
		Description: "quarterly numbers",
		Assignee:    "bob",
		Status:      models.StatusToDo,
		Priority:    models.PriorityMedium,
	}
	require.NoError(t, repo.Create(task))

	updated, err := repo.Update(task.ID, EntryChanges{
		Title:    strPtr("write annual report"),
		Priority: priorityPtr(models.PriorityHigh),
	})
	require.NoError(t, err)
	require.Equal(t, "write annual report", updated.Title)
	require.Equal(t, models.PriorityHigh, updated.Priority)
	require.Equal(t, "quarterly numbers", updated.Description)
	require.Equal(t, "bob", updated.Assignee)
	require.Equal(t, models.StatusToDo, updated.Status)
}

func TestTaskRepository_ReassignAndDetachProject(t *testing.T) {
	db := setupTestDB(t)
	projectRepo := NewProjectRepository(db)
	taskRepo := NewTaskRepository(db)

	project := &models.Project{Title: "home", Status: models.StatusToDo, Priority: models.PriorityLow}
	require.NoError(t, projectRepo.Create(project))

	task := &models.Task{Title: "orphan", Status: models.StatusToDo, Priority: models.PriorityLow}
	require.NoError(t, taskRepo.Create(task))

	attached, err := taskRepo.Update(task.ID, EntryChanges{ProjectID: &project.ID})
	require.NoError(t, err)
	require.NotNil(t, attached.ProjectID)
	require.Equal(t, project.ID, *attached.ProjectID)

	detached, err := taskRepo.Update(task.ID, EntryChanges{ClearProject: true})
	require.NoError(t, err)
	require.Nil(t, detached.ProjectID)
}

func TestTaskRepository_DeleteReturnsSnapshot(t *testing.T) {
	db := setupTestDB(t)
	repo := NewTaskRepository(db)

	task := &models.Task{Title: "doomed", Status: models.StatusDone, Priority: models.PriorityLow}
	require.NoError(t, repo.Create(task))

	deleted, err := repo.Delete(task.ID)
	require.NoError(t, err)
	require.Equal(t, "doomed", deleted.Title)
	require.Equal(t, models.StatusDone, deleted.Status)

	_, err = repo.FindByID(task.ID)
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
