// Package dispatch provides the DispatchPolicy variants of the simulation:
//   - Random: every elevator picks a random boundary-safe direction
//   - Pushy: empty elevators head for the lowest waiting floor, occupied ones serve their first passenger
//   - ShortSighted: every elevator heads for the closest relevant floor, preferring floors below on ties
//
// All policies are stateless apart from the random source of Random.
package dispatch
