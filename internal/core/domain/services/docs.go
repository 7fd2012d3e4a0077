// Package services implements the planning algorithm on top of the domain model.
//
// The package includes:
//   - IsFeasible: the single drone, single order payload and round-trip range check
//   - RoutePlanner / NearestNeighborRoutePlanner: greedy tour construction from base and back
//   - OrderPool: the shared backlog, consumed atomically per drone
//   - OrderSelector / FirstFitSelector / TourRangeSelector: per-drone packing strategies
//   - AssignmentEngine: capacity-first drone iteration producing a plan.Plan
//
// Both heuristics are approximations. Nothing here claims an optimal plan.
package services
