// Package services provides domain services that orchestrate business
// operations across multiple aggregates in the routing engine.
//
// The package includes:
//   - ProblemBuilder: converts stops, vehicles and a depot coordinate into
//     a solver-neutral routing problem
//   - RoutePlanner: partitions a day's backlog by depot, allocates vehicles
//     across groups, and materializes routes from solver assignments
//
// Domain services coordinate between aggregates, implementing business logic
// that spans multiple bounded contexts following Domain-Driven Design
// principles.
package services
