// Package postgres implements the store interfaces on PostgreSQL via
// database/sql and the pgx driver. It owns query execution, row scanning,
// and the mapping from driver errors to store sentinels.
package postgres
