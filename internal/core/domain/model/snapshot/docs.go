// Package snapshot holds the input of one planning run: the declared grid, the
// fleet and the order backlog, all in input order.
package snapshot
