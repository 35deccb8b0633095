package service_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/taskforge/taskforge-api/internal/domain"
	"github.com/taskforge/taskforge-api/internal/mocks"
	"github.com/taskforge/taskforge-api/internal/service"
	"github.com/taskforge/taskforge-api/internal/store"
)

func newEmployee(t *testing.T, email string) *domain.User {
	t.Helper()
	user, err := domain.NewUser("Test Employee", email, "password123", domain.RoleEmployee)
	require.NoError(t, err)
	return user
}

func newManager(t *testing.T, email string) *domain.User {
	t.Helper()
	user, err := domain.NewUser("Test Manager", email, "password123", domain.RoleManager)
	require.NoError(t, err)
	return user
}

func newTask(t *testing.T, title string, assignedTo *uuid.UUID) *domain.Task {
	t.Helper()
	task, err := domain.NewTask(title, "", assignedTo, nil, domain.PriorityMedium)
	require.NoError(t, err)
	return task
}

func TestTaskServiceCreate(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("creates unassigned task", func(t *testing.T) {
		t.Parallel()

		tasks := mocks.NewMockTaskStore()
		users := mocks.NewMockUserStore()
		svc := service.NewTaskService(tasks, users, mocks.NewMockFileStore(), nil)

		task, err := svc.Create(ctx, service.CreateTaskInput{Title: "Write docs"})
		require.NoError(t, err)

		assert.Equal(t, domain.StatusToDo, task.Status)
		assert.Equal(t, domain.PriorityMedium, task.Priority)
		assert.Contains(t, tasks.Tasks, task.ID)
	})

	t.Run("creates task assigned to employee", func(t *testing.T) {
		t.Parallel()

		tasks := mocks.NewMockTaskStore()
		users := mocks.NewMockUserStore()
		employee := newEmployee(t, "emp@example.com")
		users.AddUser(employee)
		svc := service.NewTaskService(tasks, users, mocks.NewMockFileStore(), nil)

		task, err := svc.Create(ctx, service.CreateTaskInput{
			Title:      "Write docs",
			AssignedTo: &employee.ID,
		})
		require.NoError(t, err)
		require.NotNil(t, task.AssignedTo)
		assert.Equal(t, employee.ID, *task.AssignedTo)
	})

	t.Run("rejects assignment to manager", func(t *testing.T) {
		t.Parallel()

		tasks := mocks.NewMockTaskStore()
		users := mocks.NewMockUserStore()
		manager := newManager(t, "mgr@example.com")
		users.AddUser(manager)
		svc := service.NewTaskService(tasks, users, mocks.NewMockFileStore(), nil)

		_, err := svc.Create(ctx, service.CreateTaskInput{
			Title:      "Write docs",
			AssignedTo: &manager.ID,
		})
		assert.ErrorIs(t, err, service.ErrAssigneeNotEmployee)
		assert.Empty(t, tasks.Tasks)
	})

	t.Run("rejects assignment to missing user", func(t *testing.T) {
		t.Parallel()

		tasks := mocks.NewMockTaskStore()
		users := mocks.NewMockUserStore()
		svc := service.NewTaskService(tasks, users, mocks.NewMockFileStore(), nil)

		missing := uuid.New()
		_, err := svc.Create(ctx, service.CreateTaskInput{
			Title:      "Write docs",
			AssignedTo: &missing,
		})
		assert.ErrorIs(t, err, service.ErrAssigneeNotEmployee)
	})

	t.Run("rejects empty title", func(t *testing.T) {
		t.Parallel()

		svc := service.NewTaskService(mocks.NewMockTaskStore(), mocks.NewMockUserStore(), mocks.NewMockFileStore(), nil)

		_, err := svc.Create(ctx, service.CreateTaskInput{Title: "  "})
		assert.ErrorIs(t, err, domain.ErrValidation)
	})
}

func TestTaskServiceList(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	tasks := mocks.NewMockTaskStore()
	users := mocks.NewMockUserStore()
	employee := newEmployee(t, "emp@example.com")
	other := newEmployee(t, "other@example.com")
	users.AddUser(employee)
	users.AddUser(other)

	mine := newTask(t, "Mine", &employee.ID)
	theirs := newTask(t, "Theirs", &other.ID)
	unassigned := newTask(t, "Unassigned", nil)
	tasks.AddTask(mine)
	tasks.AddTask(theirs)
	tasks.AddTask(unassigned)

	svc := service.NewTaskService(tasks, users, mocks.NewMockFileStore(), nil)

	t.Run("employee sees only own tasks", func(t *testing.T) {
		t.Parallel()

		got, _, err := svc.List(ctx, domain.Identity{UserID: employee.ID, Role: domain.RoleEmployee})
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, mine.ID, got[0].ID)
	})

	t.Run("manager sees all tasks", func(t *testing.T) {
		t.Parallel()

		got, resolved, err := svc.List(ctx, domain.Identity{UserID: uuid.New(), Role: domain.RoleManager})
		require.NoError(t, err)
		assert.Len(t, got, 3)

		assert.Contains(t, resolved, employee.ID)
		assert.Contains(t, resolved, other.ID)
	})

	t.Run("admin sees all tasks", func(t *testing.T) {
		t.Parallel()

		got, _, err := svc.List(ctx, domain.Identity{UserID: uuid.New(), Role: domain.RoleAdmin})
		require.NoError(t, err)
		assert.Len(t, got, 3)
	})
}

func TestTaskServiceUpdate(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("updates only provided fields", func(t *testing.T) {
		t.Parallel()

		tasks := mocks.NewMockTaskStore()
		users := mocks.NewMockUserStore()
		task := newTask(t, "Old title", nil)
		task.Description = "Old description"
		tasks.AddTask(task)
		svc := service.NewTaskService(tasks, users, mocks.NewMockFileStore(), nil)

		newTitle := "New title"
		updated, _, err := svc.Update(ctx, task.ID, service.UpdateTaskInput{Title: &newTitle})
		require.NoError(t, err)

		assert.Equal(t, "New title", updated.Title)
		assert.Equal(t, "Old description", updated.Description)
		assert.Equal(t, domain.PriorityMedium, updated.Priority)
	})

	t.Run("revalidates changed assignee", func(t *testing.T) {
		t.Parallel()

		tasks := mocks.NewMockTaskStore()
		users := mocks.NewMockUserStore()
		manager := newManager(t, "mgr@example.com")
		users.AddUser(manager)
		task := newTask(t, "Task", nil)
		tasks.AddTask(task)
		svc := service.NewTaskService(tasks, users, mocks.NewMockFileStore(), nil)

		_, _, err := svc.Update(ctx, task.ID, service.UpdateTaskInput{AssignedTo: &manager.ID})
		assert.ErrorIs(t, err, service.ErrAssigneeNotEmployee)
	})

	t.Run("unknown task", func(t *testing.T) {
		t.Parallel()

		svc := service.NewTaskService(mocks.NewMockTaskStore(), mocks.NewMockUserStore(), mocks.NewMockFileStore(), nil)

		_, _, err := svc.Update(ctx, uuid.New(), service.UpdateTaskInput{})
		assert.ErrorIs(t, err, store.ErrTaskNotFound)
	})
}

func TestTaskServiceUpdateStatus(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	setup := func(t *testing.T) (*service.TaskService, *mocks.MockTaskStore, *domain.Task, *domain.User) {
		t.Helper()
		tasks := mocks.NewMockTaskStore()
		users := mocks.NewMockUserStore()
		employee := newEmployee(t, "emp@example.com")
		users.AddUser(employee)
		task := newTask(t, "Task", &employee.ID)
		tasks.AddTask(task)
		svc := service.NewTaskService(tasks, users, mocks.NewMockFileStore(), nil)
		return svc, tasks, task, employee
	}

	t.Run("assignee updates own task", func(t *testing.T) {
		t.Parallel()

		svc, _, task, employee := setup(t)
		updated, _, err := svc.UpdateStatus(ctx, task.ID, domain.StatusInProgress,
			domain.Identity{UserID: employee.ID, Role: domain.RoleEmployee})
		require.NoError(t, err)
		assert.Equal(t, domain.StatusInProgress, updated.Status)
	})

	t.Run("employee cannot update another's task", func(t *testing.T) {
		t.Parallel()

		svc, _, task, _ := setup(t)
		_, _, err := svc.UpdateStatus(ctx, task.ID, domain.StatusDone,
			domain.Identity{UserID: uuid.New(), Role: domain.RoleEmployee})
		assert.ErrorIs(t, err, service.ErrNotTaskAssignee)
	})

	t.Run("manager updates any task", func(t *testing.T) {
		t.Parallel()

		svc, _, task, _ := setup(t)
		updated, _, err := svc.UpdateStatus(ctx, task.ID, domain.StatusDone,
			domain.Identity{UserID: uuid.New(), Role: domain.RoleManager})
		require.NoError(t, err)
		assert.Equal(t, domain.StatusDone, updated.Status)
	})

	t.Run("empty status keeps current", func(t *testing.T) {
		t.Parallel()

		svc, _, task, employee := setup(t)
		updated, _, err := svc.UpdateStatus(ctx, task.ID, "",
			domain.Identity{UserID: employee.ID, Role: domain.RoleEmployee})
		require.NoError(t, err)
		assert.Equal(t, domain.StatusToDo, updated.Status)
	})

	t.Run("rejects unknown status", func(t *testing.T) {
		t.Parallel()

		svc, _, task, employee := setup(t)
		_, _, err := svc.UpdateStatus(ctx, task.ID, domain.Status("Archived"),
			domain.Identity{UserID: employee.ID, Role: domain.RoleEmployee})
		assert.ErrorIs(t, err, domain.ErrValidation)
	})
}

func TestTaskServiceDelete(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("removes task and attachment files", func(t *testing.T) {
		t.Parallel()

		tasks := mocks.NewMockTaskStore()
		files := mocks.NewMockFileStore()
		task := newTask(t, "Task", nil)
		task.Attachments = []domain.Attachment{
			{ID: uuid.New(), FilePath: "uploads/1-a.pdf"},
			{ID: uuid.New(), FilePath: "uploads/2-b.pdf"},
		}
		tasks.AddTask(task)
		svc := service.NewTaskService(tasks, mocks.NewMockUserStore(), files, nil)

		require.NoError(t, svc.Delete(ctx, task.ID))

		assert.NotContains(t, tasks.Tasks, task.ID)
		assert.ElementsMatch(t, []string{"uploads/1-a.pdf", "uploads/2-b.pdf"}, files.Removed)
	})

	t.Run("file removal failure does not undo deletion", func(t *testing.T) {
		t.Parallel()

		tasks := mocks.NewMockTaskStore()
		files := mocks.NewMockFileStore()
		files.RemoveFn = func(name string) error { return errors.New("disk error") }
		task := newTask(t, "Task", nil)
		task.Attachments = []domain.Attachment{{ID: uuid.New(), FilePath: "uploads/1-a.pdf"}}
		tasks.AddTask(task)
		svc := service.NewTaskService(tasks, mocks.NewMockUserStore(), files, nil)

		require.NoError(t, svc.Delete(ctx, task.ID))
		assert.NotContains(t, tasks.Tasks, task.ID)
	})

	t.Run("unknown task", func(t *testing.T) {
		t.Parallel()

		svc := service.NewTaskService(mocks.NewMockTaskStore(), mocks.NewMockUserStore(), mocks.NewMockFileStore(), nil)
		assert.ErrorIs(t, svc.Delete(ctx, uuid.New()), store.ErrTaskNotFound)
	})
}

func TestTaskServiceUploadAttachment(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	uploader := domain.Identity{UserID: uuid.New(), Role: domain.RoleEmployee}

	t.Run("stores file and appends attachment", func(t *testing.T) {
		t.Parallel()

		tasks := mocks.NewMockTaskStore()
		files := mocks.NewMockFileStore()
		task := newTask(t, "Task", nil)
		tasks.AddTask(task)
		svc := service.NewTaskService(tasks, mocks.NewMockUserStore(), files, nil)

		attachment, err := svc.UploadAttachment(ctx, task.ID, "report.pdf",
			strings.NewReader("contents"), uploader)
		require.NoError(t, err)

		assert.Equal(t, "report.pdf", attachment.FileName)
		assert.True(t, strings.HasPrefix(attachment.FilePath, "uploads/"))
		assert.Equal(t, uploader.UserID, attachment.UploadedBy)
		assert.WithinDuration(t, time.Now(), attachment.UploadedAt, time.Minute)

		require.Len(t, tasks.Tasks[task.ID].Attachments, 1)
		assert.Len(t, files.Saved, 1)
	})

	t.Run("missing task leaves no file behind", func(t *testing.T) {
		t.Parallel()

		files := mocks.NewMockFileStore()
		svc := service.NewTaskService(mocks.NewMockTaskStore(), mocks.NewMockUserStore(), files, nil)

		_, err := svc.UploadAttachment(ctx, uuid.New(), "report.pdf",
			strings.NewReader("contents"), uploader)
		assert.ErrorIs(t, err, store.ErrTaskNotFound)
		assert.Empty(t, files.Saved)
	})

	t.Run("persist failure removes stored file", func(t *testing.T) {
		t.Parallel()

		tasks := mocks.NewMockTaskStore()
		files := mocks.NewMockFileStore()
		task := newTask(t, "Task", nil)
		tasks.AddTask(task)
		persistErr := errors.New("connection reset")
		tasks.SaveAttachmentsFn = func(ctx context.Context, id uuid.UUID, attachments []domain.Attachment) error {
			return persistErr
		}
		svc := service.NewTaskService(tasks, mocks.NewMockUserStore(), files, nil)

		_, err := svc.UploadAttachment(ctx, task.ID, "report.pdf",
			strings.NewReader("contents"), uploader)
		assert.ErrorIs(t, err, persistErr)
		assert.Empty(t, files.Saved)
	})
}

func TestTaskServiceDeleteAttachment(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	setup := func(t *testing.T) (*service.TaskService, *mocks.MockTaskStore, *mocks.MockFileStore, *domain.Task) {
		t.Helper()
		tasks := mocks.NewMockTaskStore()
		files := mocks.NewMockFileStore()
		task := newTask(t, "Task", nil)
		task.Attachments = []domain.Attachment{
			{ID: uuid.New(), FileName: "a.pdf", FilePath: "uploads/100-a.pdf"},
			{ID: uuid.New(), FileName: "b.pdf", FilePath: "uploads/200-b.pdf"},
		}
		tasks.AddTask(task)
		svc := service.NewTaskService(tasks, mocks.NewMockUserStore(), files, nil)
		return svc, tasks, files, task
	}

	t.Run("removes matching attachment and file", func(t *testing.T) {
		t.Parallel()

		svc, tasks, files, task := setup(t)
		require.NoError(t, svc.DeleteAttachment(ctx, task.ID, "100-a.pdf"))

		remaining := tasks.Tasks[task.ID].Attachments
		require.Len(t, remaining, 1)
		assert.Equal(t, "uploads/200-b.pdf", remaining[0].FilePath)
		assert.Equal(t, []string{"uploads/100-a.pdf"}, files.Removed)
	})

	t.Run("disk failure still removes the record", func(t *testing.T) {
		t.Parallel()

		svc, tasks, files, task := setup(t)
		files.RemoveFn = func(name string) error { return errors.New("disk error") }

		require.NoError(t, svc.DeleteAttachment(ctx, task.ID, "100-a.pdf"))
		assert.Len(t, tasks.Tasks[task.ID].Attachments, 1)
	})

	t.Run("no matching suffix", func(t *testing.T) {
		t.Parallel()

		svc, tasks, _, task := setup(t)
		err := svc.DeleteAttachment(ctx, task.ID, "missing.doc")
		assert.ErrorIs(t, err, service.ErrAttachmentNotFound)
		assert.Len(t, tasks.Tasks[task.ID].Attachments, 2)
	})

	t.Run("unknown task", func(t *testing.T) {
		t.Parallel()

		svc, _, _, _ := setup(t)
		err := svc.DeleteAttachment(ctx, uuid.New(), "100-a.pdf")
		assert.ErrorIs(t, err, store.ErrTaskNotFound)
	})
}

func TestTaskServiceListAttachments(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	tasks := mocks.NewMockTaskStore()
	users := mocks.NewMockUserStore()
	uploaderUser := newEmployee(t, "emp@example.com")
	users.AddUser(uploaderUser)

	task := newTask(t, "Task", nil)
	task.Attachments = []domain.Attachment{
		{ID: uuid.New(), FileName: "a.pdf", FilePath: "uploads/100-a.pdf", UploadedBy: uploaderUser.ID},
	}
	tasks.AddTask(task)
	svc := service.NewTaskService(tasks, users, mocks.NewMockFileStore(), nil)

	attachments, resolved, err := svc.ListAttachments(ctx, task.ID)
	require.NoError(t, err)
	require.Len(t, attachments, 1)
	assert.Contains(t, resolved, uploaderUser.ID)
}
