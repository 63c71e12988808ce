// Package postgres provides PostgreSQL-specific implementations for the data
// storage interfaces defined in the internal/store package. It mirrors the
// sqlite backend and is selected through the database driver configuration
// for multi-node deployments.
package postgres
