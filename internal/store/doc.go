// Package store declares the persistence contracts for users, folders, study
// sets, vocabulary and background tasks. Implementations live in
// internal/platform/postgres; services depend only on these interfaces.
//
// Lookups report missing rows with the per-entity sentinels in errors.go, and
// RunInTransaction scopes multi-store writes to a single *sql.Tx.
package store
