// Package helper provides test doubles and arrangement helpers for the simulation packages:
// spies for the observability interfaces, an Observer spy, and scripted arrival generators and dispatch policies.
package helper
