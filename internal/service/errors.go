package service

import "errors"

// Common service-level errors.
var (
	// ErrAssigneeNotEmployee is returned when a task's assignee references
	// a user that does not exist or does not hold the Employee role.
	ErrAssigneeNotEmployee = errors.New("assignee must be an existing employee")

	// ErrNotTaskAssignee is returned when an Employee attempts to act on a
	// task that is not assigned to them.
	ErrNotTaskAssignee = errors.New("task is not assigned to this user")

	// ErrAttachmentNotFound is returned when no attachment on the task
	// matches the requested filename.
	ErrAttachmentNotFound = errors.New("attachment not found")
)
