// Package postgreswrapper opens a journal.Store on a real PostgreSQL database for integration tests,
// using the pgx.Pool, sql.DB, or sqlx.DB adapter selected by the ADAPTER_TYPE environment variable.
package postgreswrapper
