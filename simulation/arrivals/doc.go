// Package arrivals provides the ArrivalGenerator variants of the simulation:
//   - RandomArrivals: a fixed number of people per round with random start and target floors
//   - FileArrivals: people replayed from a fixture file of (round, start, target) records
package arrivals
