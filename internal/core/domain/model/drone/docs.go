// Package drone holds the Drone entity: a fleet member with a payload capacity,
// a range limit, a speed and an availability flag.
//
// Key business rules:
//   - Drones are never mutated while a plan is built
//   - Payload, range and speed are non-negative
//   - Unavailable drones receive no orders
package drone
