// Package order provides the Order entity: one package awaiting delivery to a
// point on the grid.
//
// Key business rules:
//   - Orders must have a valid identifier and a non-negative weight
//   - Orders are atomic: a plan assigns an order whole to one drone or not at all
//   - Orders carry no lifecycle; a planning run consumes them from a pool
package order
