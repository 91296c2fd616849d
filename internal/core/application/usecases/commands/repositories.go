// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS architecture.
// All commands follow a consistent pattern: validation, transaction management, and persistence.
package commands

import (
	"context"

	"fleetroute/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
// These abstractions ensure data consistency across aggregate boundaries.
type (
	// TxManager handles database transaction lifecycle.
	// Ensures atomic operations across multiple repository calls.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// StopRepoFactory provides access to the stop repository within a transaction.
	StopRepoFactory interface {
		StopRepository() ports.StopRepository
	}

	// RouteRepoFactory provides access to the route repository within a transaction.
	RouteRepoFactory interface {
		RouteRepository() ports.RouteRepository
	}

	// VehicleRepoFactory provides access to the vehicle repository within a transaction.
	VehicleRepoFactory interface {
		VehicleRepository() ports.VehicleRepository
	}

	// DepotRepoFactory provides access to the depot repository within a transaction.
	DepotRepoFactory interface {
		DepotRepository() ports.DepotRepository
	}

	// StopUoW manages transactions for stop-only operations.
	StopUoW interface {
		TxManager
		StopRepoFactory
	}

	// StopUoWFactory creates new stop unit of work instances.
	StopUoWFactory interface {
		Create() StopUoW
	}

	// StopRouteUoW manages transactions spanning stops and their route.
	// Used by lifecycle operations that must update both atomically.
	StopRouteUoW interface {
		TxManager
		StopRepoFactory
		RouteRepoFactory
	}

	// StopRouteUoWFactory creates new stop+route unit of work instances.
	StopRouteUoWFactory interface {
		Create() StopRouteUoW
	}

	// VehicleUoW manages transactions for vehicle operations, including the
	// active-route precondition check on deletion.
	VehicleUoW interface {
		TxManager
		VehicleRepoFactory
		RouteRepoFactory
	}

	// VehicleUoWFactory creates new vehicle unit of work instances.
	VehicleUoWFactory interface {
		Create() VehicleUoW
	}

	// PlanningUoW manages transactions across all four aggregates, used by
	// the route planning run.
	PlanningUoW interface {
		TxManager
		StopRepoFactory
		RouteRepoFactory
		VehicleRepoFactory
		DepotRepoFactory
	}

	// PlanningUoWFactory creates new planning unit of work instances.
	PlanningUoWFactory interface {
		Create() PlanningUoW
	}
)
