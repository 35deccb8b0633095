// Package store defines the persistence interfaces for users and tasks,
// along with the sentinel errors implementations map their failures to.
// Keeping the interfaces here lets the services stay independent of the
// PostgreSQL layer that implements them.
package store
