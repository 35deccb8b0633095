// Package domain contains the core business entities of the task management
// system: users with their roles and permissions, tasks, and task
// attachments. It is independent of any specific storage or delivery
// mechanism.
package domain
