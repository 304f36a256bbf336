// Package main runs the elevator simulation from the command line.
//
// Configuration is resolved in three layers: built-in defaults, an optional YAML file
// passed with -config, and finally every flag set explicitly on the command line.
//
// ## Arrivals and policies
//   - random arrivals: -people-per-round people per round with random start and target floors
//   - file arrivals: -fixture CSV with round,start,target records, -rounds 0 replays it completely
//   - policies: random, pushy, shortsighted; -seed makes random runs reproducible
//
// ## Event journal
// With -journal every run is recorded in PostgreSQL and read back after the run:
//   - pgx.Pool, sql.DB with lib/pq, or sqlx.DB with lib/pq
//   - switchable via -db-adapter or the DB_ADAPTER environment variable
//   - the DSN comes from -dsn or ELEVATORSIM_DSN
//
// ## Observability
// With -observability-enabled traces and metrics are exported via OTLP gRPC and logs are
// bridged into OpenTelemetry.
//
// Usage:
//
//	go run ./cmd/elevatorsim -floors 10 -elevators 3 -policy shortsighted -rounds 50
//	DB_ADAPTER=sqlx ELEVATORSIM_DSN=postgres://... go run ./cmd/elevatorsim -journal
package main
