// Package postgres provides PostgreSQL-specific implementations of the data
// storage interfaces defined in the internal/store package. It handles query
// execution, optimistic-lock enforcement, and data mapping between domain
// entities and database records.
package postgres
