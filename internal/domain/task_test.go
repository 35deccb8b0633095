package domain_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/taskforge/taskforge-api/internal/domain"
)

func TestNewTask(t *testing.T) {
	t.Parallel()

	t.Run("creates valid task", func(t *testing.T) {
		t.Parallel()

		assignee := uuid.New()
		deadline := time.Now().Add(48 * time.Hour)

		task, err := domain.NewTask("Ship release", "Cut and tag v2", &assignee, &deadline, domain.PriorityHigh)
		require.NoError(t, err)

		assert.NotEqual(t, uuid.Nil, task.ID)
		assert.Equal(t, "Ship release", task.Title)
		assert.Equal(t, domain.PriorityHigh, task.Priority)
		assert.Equal(t, domain.StatusToDo, task.Status)
		require.NotNil(t, task.AssignedTo)
		assert.Equal(t, assignee, *task.AssignedTo)
		assert.NotNil(t, task.Attachments)
		assert.Empty(t, task.Attachments)
	})

	t.Run("empty priority defaults to medium", func(t *testing.T) {
		t.Parallel()

		task, err := domain.NewTask("Ship release", "", nil, nil, "")
		require.NoError(t, err)

		assert.Equal(t, domain.PriorityMedium, task.Priority)
	})

	t.Run("always starts at to do", func(t *testing.T) {
		t.Parallel()

		task, err := domain.NewTask("Ship release", "", nil, nil, domain.PriorityLow)
		require.NoError(t, err)

		assert.Equal(t, domain.StatusToDo, task.Status)
	})

	t.Run("rejects empty title", func(t *testing.T) {
		t.Parallel()

		_, err := domain.NewTask("   ", "", nil, nil, domain.PriorityLow)
		assert.ErrorIs(t, err, domain.ErrEmptyTitle)
	})

	t.Run("rejects unknown priority", func(t *testing.T) {
		t.Parallel()

		_, err := domain.NewTask("Ship release", "", nil, nil, domain.Priority("Critical"))
		assert.ErrorIs(t, err, domain.ErrInvalidPriority)
	})
}

func TestStatusValid(t *testing.T) {
	t.Parallel()

	assert.True(t, domain.StatusToDo.Valid())
	assert.True(t, domain.StatusInProgress.Valid())
	assert.True(t, domain.StatusDone.Valid())
	assert.False(t, domain.Status("").Valid())
	assert.False(t, domain.Status("Archived").Valid())
	assert.False(t, domain.Status("to do").Valid())
}

func TestTaskIsAssignedTo(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	task := &domain.Task{AssignedTo: &userID}

	assert.True(t, task.IsAssignedTo(userID))
	assert.False(t, task.IsAssignedTo(uuid.New()))

	unassigned := &domain.Task{}
	assert.False(t, unassigned.IsAssignedTo(userID))
}

func TestFindAttachmentByPathSuffix(t *testing.T) {
	t.Parallel()

	task := &domain.Task{
		Attachments: []domain.Attachment{
			{ID: uuid.New(), FileName: "brief.pdf", FilePath: "uploads/1700000000000-brief.pdf"},
			{ID: uuid.New(), FileName: "notes.txt", FilePath: "uploads/1700000000001-notes.txt"},
		},
	}

	assert.Equal(t, 0, task.FindAttachmentByPathSuffix("1700000000000-brief.pdf"))
	assert.Equal(t, 1, task.FindAttachmentByPathSuffix("notes.txt"))
	assert.Equal(t, -1, task.FindAttachmentByPathSuffix("missing.doc"))
}

func TestRemoveAttachment(t *testing.T) {
	t.Parallel()

	first := domain.Attachment{ID: uuid.New(), FilePath: "uploads/a"}
	second := domain.Attachment{ID: uuid.New(), FilePath: "uploads/b"}
	third := domain.Attachment{ID: uuid.New(), FilePath: "uploads/c"}
	task := &domain.Task{Attachments: []domain.Attachment{first, second, third}}

	task.RemoveAttachment(1)

	require.Len(t, task.Attachments, 2)
	assert.Equal(t, first.ID, task.Attachments[0].ID)
	assert.Equal(t, third.ID, task.Attachments[1].ID)
}
