// Package adapters lets the journal Store talk to PostgreSQL through pgxpool.Pool, sql.DB or sqlx.DB.
//
// The Store only needs to run plain SQL strings and read rows back, so each adapter
// wraps its library behind the small DBAdapter interface.
package adapters
