// Package sqlite provides SQLite-specific implementations for the data
// storage interfaces defined in the internal/store package. It handles
// query execution and data mapping between domain entities and database
// records, and is the default backend for single-node deployments.
package sqlite
