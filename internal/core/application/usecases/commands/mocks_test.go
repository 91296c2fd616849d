package commands_test

import (
	"context"
	"time"

	"fleetroute/internal/core/application/usecases/commands"
	"fleetroute/internal/core/domain/model/depot"
	"fleetroute/internal/core/domain/model/kernel"
	"fleetroute/internal/core/domain/model/route"
	"fleetroute/internal/core/domain/model/stop"
	"fleetroute/internal/core/domain/model/vehicle"
	"fleetroute/internal/core/ports"

	"github.com/stretchr/testify/mock"
)

type MockStopRepository struct{ mock.Mock }

func (m *MockStopRepository) Add(ctx context.Context, s *stop.Stop) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *MockStopRepository) Update(ctx context.Context, s *stop.Stop) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *MockStopRepository) Get(ctx context.Context, id kernel.UUID) (*stop.Stop, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*stop.Stop), args.Error(1)
}

func (m *MockStopRepository) GetAllPlannedUnassignedByDate(ctx context.Context, serviceDate time.Time) ([]*stop.Stop, error) {
	args := m.Called(ctx, serviceDate)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*stop.Stop), args.Error(1)
}

func (m *MockStopRepository) GetAllByRouteID(ctx context.Context, routeID kernel.UUID) ([]*stop.Stop, error) {
	args := m.Called(ctx, routeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*stop.Stop), args.Error(1)
}

type MockRouteRepository struct{ mock.Mock }

func (m *MockRouteRepository) Add(ctx context.Context, r *route.Route) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

func (m *MockRouteRepository) Update(ctx context.Context, r *route.Route) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

func (m *MockRouteRepository) Get(ctx context.Context, id kernel.UUID) (*route.Route, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*route.Route), args.Error(1)
}

func (m *MockRouteRepository) GetAllByDate(ctx context.Context, serviceDate time.Time) ([]*route.Route, error) {
	args := m.Called(ctx, serviceDate)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*route.Route), args.Error(1)
}

func (m *MockRouteRepository) GetActiveByVehicle(ctx context.Context, vehicleID kernel.UUID, serviceDate time.Time) (*route.Route, error) {
	args := m.Called(ctx, vehicleID, serviceDate)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*route.Route), args.Error(1)
}

func (m *MockRouteRepository) GetAllActiveByVehicle(ctx context.Context, vehicleID kernel.UUID) ([]*route.Route, error) {
	args := m.Called(ctx, vehicleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*route.Route), args.Error(1)
}

func (m *MockRouteRepository) Delete(ctx context.Context, id kernel.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockVehicleRepository struct{ mock.Mock }

func (m *MockVehicleRepository) Add(ctx context.Context, v *vehicle.Vehicle) error {
	args := m.Called(ctx, v)
	return args.Error(0)
}

func (m *MockVehicleRepository) Update(ctx context.Context, v *vehicle.Vehicle) error {
	args := m.Called(ctx, v)
	return args.Error(0)
}

func (m *MockVehicleRepository) Get(ctx context.Context, id kernel.UUID) (*vehicle.Vehicle, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*vehicle.Vehicle), args.Error(1)
}

func (m *MockVehicleRepository) GetAllOnDuty(ctx context.Context) ([]*vehicle.Vehicle, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*vehicle.Vehicle), args.Error(1)
}

func (m *MockVehicleRepository) Delete(ctx context.Context, id kernel.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockDepotRepository struct{ mock.Mock }

func (m *MockDepotRepository) Add(ctx context.Context, d *depot.Depot) error {
	args := m.Called(ctx, d)
	return args.Error(0)
}

func (m *MockDepotRepository) Get(ctx context.Context, id kernel.UUID) (*depot.Depot, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*depot.Depot), args.Error(1)
}

func (m *MockDepotRepository) GetAll(ctx context.Context) ([]*depot.Depot, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*depot.Depot), args.Error(1)
}

func (m *MockDepotRepository) GetPrimary(ctx context.Context) (*depot.Depot, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*depot.Depot), args.Error(1)
}

// MockUoW satisfies every narrow unit-of-work interface the handlers use.
type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) StopRepository() ports.StopRepository {
	args := m.Called()
	return args.Get(0).(ports.StopRepository)
}

func (m *MockUoW) RouteRepository() ports.RouteRepository {
	args := m.Called()
	return args.Get(0).(ports.RouteRepository)
}

func (m *MockUoW) VehicleRepository() ports.VehicleRepository {
	args := m.Called()
	return args.Get(0).(ports.VehicleRepository)
}

func (m *MockUoW) DepotRepository() ports.DepotRepository {
	args := m.Called()
	return args.Get(0).(ports.DepotRepository)
}

type MockStopUoWFactory struct{ mock.Mock }

func (m *MockStopUoWFactory) Create() commands.StopUoW {
	args := m.Called()
	return args.Get(0).(commands.StopUoW)
}

type MockStopRouteUoWFactory struct{ mock.Mock }

func (m *MockStopRouteUoWFactory) Create() commands.StopRouteUoW {
	args := m.Called()
	return args.Get(0).(commands.StopRouteUoW)
}

type MockVehicleUoWFactory struct{ mock.Mock }

func (m *MockVehicleUoWFactory) Create() commands.VehicleUoW {
	args := m.Called()
	return args.Get(0).(commands.VehicleUoW)
}

type MockPlanningUoWFactory struct{ mock.Mock }

func (m *MockPlanningUoWFactory) Create() commands.PlanningUoW {
	args := m.Called()
	return args.Get(0).(commands.PlanningUoW)
}

type MockPositionTracker struct{ mock.Mock }

func (m *MockPositionTracker) SetPosition(ctx context.Context, vehicleID kernel.UUID, position kernel.GeoPoint) error {
	args := m.Called(ctx, vehicleID, position)
	return args.Error(0)
}

func (m *MockPositionTracker) GetPosition(ctx context.Context, vehicleID kernel.UUID) (kernel.GeoPoint, error) {
	args := m.Called(ctx, vehicleID)
	return args.Get(0).(kernel.GeoPoint), args.Error(1)
}
