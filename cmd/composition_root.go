package cmd

import (
	"fmt"

	"fleetroute/internal/adapters/out/postgres"
	"fleetroute/internal/adapters/out/redistracker"
	"fleetroute/internal/adapters/out/solver/ors"
	"fleetroute/internal/adapters/out/solver/twogis"
	"fleetroute/internal/core/application/usecases/commands"
	"fleetroute/internal/core/application/usecases/queries"
	"fleetroute/internal/core/domain/services"
	"fleetroute/internal/core/ports"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// CompositionRoot wires adapters into command and query handlers.
type CompositionRoot struct {
	gormDB     *gorm.DB
	uowFactory *postgres.GormUnitOfWorkFactory
	solver     ports.Solver
	tracker    ports.PositionTracker
	planner    services.RoutePlanner
}

// NewCompositionRoot builds the object graph from startup configuration.
// The solver backend is chosen once here; everything downstream sees only
// the ports.Solver interface.
func NewCompositionRoot(config Config, gormDB *gorm.DB, redisClient *redis.Client) (CompositionRoot, error) {
	solver, err := createSolver(config)
	if err != nil {
		return CompositionRoot{}, err
	}

	tracker, err := redistracker.NewRedisPositionTracker(redisClient)
	if err != nil {
		return CompositionRoot{}, err
	}

	builder, err := services.NewProblemBuilder(services.PinCurrentAssignment)
	if err != nil {
		return CompositionRoot{}, err
	}

	return CompositionRoot{
		gormDB:     gormDB,
		uowFactory: postgres.NewGormUnitOfWorkFactory(gormDB),
		solver:     solver,
		tracker:    tracker,
		planner:    services.NewRoutePlanner(builder, solver),
	}, nil
}

func createSolver(config Config) (ports.Solver, error) {
	switch config.SolverBackend {
	case "ors":
		return ors.NewClient(config.ORSBaseURL, config.ORSAPIKey)
	case "twogis":
		return twogis.NewClient(config.TwoGISBaseURL, config.TwoGISRoutingURL, config.TwoGISAPIKey)
	default:
		return nil, fmt.Errorf("unknown solver backend %q (want ors or twogis)", config.SolverBackend)
	}
}

func (c *CompositionRoot) CreatePlanRoutesCommandHandler() commands.PlanRoutesCommandHandler {
	var f commands.PlanningUoWFactory = FuncPlanningUoWFactory(func() commands.PlanningUoW {
		return c.uowFactory.Create()
	})
	return commands.NewPlanRoutesCommandHandler(f, c.planner)
}

func (c *CompositionRoot) CreateReorderRouteCommandHandler() commands.ReorderRouteCommandHandler {
	return commands.NewReorderRouteCommandHandler(c.stopRouteUoWFactory())
}

func (c *CompositionRoot) CreateDeleteRouteCommandHandler() commands.DeleteRouteCommandHandler {
	return commands.NewDeleteRouteCommandHandler(c.stopRouteUoWFactory())
}

func (c *CompositionRoot) CreateUnassignStopCommandHandler() commands.UnassignStopCommandHandler {
	var f commands.StopUoWFactory = FuncStopUoWFactory(func() commands.StopUoW {
		return c.uowFactory.Create()
	})
	return commands.NewUnassignStopCommandHandler(f)
}

func (c *CompositionRoot) CreateMarkStopTerminalCommandHandler() commands.MarkStopTerminalCommandHandler {
	return commands.NewMarkStopTerminalCommandHandler(c.stopRouteUoWFactory())
}

func (c *CompositionRoot) CreateDeleteVehicleCommandHandler() commands.DeleteVehicleCommandHandler {
	return commands.NewDeleteVehicleCommandHandler(c.vehicleUoWFactory())
}

func (c *CompositionRoot) CreateUpdateVehiclePositionCommandHandler() commands.UpdateVehiclePositionCommandHandler {
	return commands.NewUpdateVehiclePositionCommandHandler(c.vehicleUoWFactory(), c.tracker)
}

func (c *CompositionRoot) CreateGetRoutesByDateQueryHandler() queries.GetRoutesByDateQueryHandler {
	return queries.NewGetRoutesByDateQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetRouteGeometryQueryHandler() queries.GetRouteGeometryQueryHandler {
	return queries.NewGetRouteGeometryQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetVehiclePositionQueryHandler() queries.GetVehiclePositionQueryHandler {
	return queries.NewGetVehiclePositionQueryHandler(c.tracker)
}

func (c *CompositionRoot) stopRouteUoWFactory() commands.StopRouteUoWFactory {
	return FuncStopRouteUoWFactory(func() commands.StopRouteUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) vehicleUoWFactory() commands.VehicleUoWFactory {
	return FuncVehicleUoWFactory(func() commands.VehicleUoW {
		return c.uowFactory.Create()
	})
}

type FuncStopUoWFactory func() commands.StopUoW

func (f FuncStopUoWFactory) Create() commands.StopUoW {
	return f()
}

type FuncStopRouteUoWFactory func() commands.StopRouteUoW

func (f FuncStopRouteUoWFactory) Create() commands.StopRouteUoW {
	return f()
}

type FuncVehicleUoWFactory func() commands.VehicleUoW

func (f FuncVehicleUoWFactory) Create() commands.VehicleUoW {
	return f()
}

type FuncPlanningUoWFactory func() commands.PlanningUoW

func (f FuncPlanningUoWFactory) Create() commands.PlanningUoW {
	return f()
}
