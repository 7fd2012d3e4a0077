// Package plan models the result of a planning run: one Assignment per drone
// that received orders, plus the orders nobody could take.
//
// A Plan never lists an order twice. Unassigned orders are kept here so that
// callers can report them; the file artifact omits them.
package plan
