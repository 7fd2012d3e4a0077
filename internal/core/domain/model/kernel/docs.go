// Package kernel provides the value objects shared by the drone planning model.
//
// The package includes:
//   - Point: an integer grid position with Manhattan distance
//   - Base: the single depot at the origin
//   - ID: a drone or order identifier that remembers whether it was written as a number
//   - GridSize: the declared extent of the operating area
//
// All types are immutable and safe to share between goroutines.
package kernel
