// Package postgres implements the internal/store interfaces on PostgreSQL.
// Queries are built with squirrel using dollar placeholders and run over a
// store.DBTX, so every store also works inside RunInTransaction. Driver
// errors are translated to store sentinels by MapError.
package postgres
