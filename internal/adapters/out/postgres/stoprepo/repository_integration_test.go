package stoprepo_test

import (
	"context"
	"testing"
	"time"

	"fleetroute/internal/adapters/out/postgres/stoprepo"
	"fleetroute/internal/core/domain/model/kernel"
	"fleetroute/internal/core/domain/model/stop"
	"fleetroute/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// MockAggregateTracker is a mock implementation of aggregateTracker interface.
type MockAggregateTracker struct {
	mock.Mock
}

func (m *MockAggregateTracker) TrackAggregate(id kernel.UUID, aggregate interface{}) {
	m.Called(id, aggregate)
}

// StopRepositoryIntegrationTestSuite verifies stop persistence behavior
// against a real PostgreSQL instance.
type StopRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *stoprepo.GormStopRepository
	tracker    *MockAggregateTracker
}

func (suite *StopRepositoryIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(postgresdriver.Open(connStr), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(db.AutoMigrate(&stoprepo.StopDTO{}))
}

func (suite *StopRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE stops").Error)

	suite.tracker = new(MockAggregateTracker)
	suite.repository = stoprepo.NewGormStopRepository(suite.db, suite.tracker)
}

func (suite *StopRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *StopRepositoryIntegrationTestSuite) serviceDate() time.Time {
	return time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)
}

func (suite *StopRepositoryIntegrationTestSuite) createTestStop() *stop.Stop {
	s, err := stop.NewStop(kernel.NewUUID(), "Main St 1", suite.serviceDate(), stop.Delivery)
	suite.Require().NoError(err)
	return s
}

func (suite *StopRepositoryIntegrationTestSuite) expectTracking() {
	suite.tracker.On("TrackAggregate", mock.AnythingOfType("kernel.UUID"), mock.Anything)
}

func (suite *StopRepositoryIntegrationTestSuite) TestAddAndGet_RoundTripsAllAttributes() {
	ctx := context.Background()
	suite.expectTracking()

	s := suite.createTestStop()
	location, err := kernel.NewGeoPoint(55.7558, 37.6173)
	suite.Require().NoError(err)
	suite.Require().NoError(s.SetLocation(location))

	window, err := kernel.NewTimeWindow("10:00", "14:30")
	suite.Require().NoError(err)
	suite.Require().NoError(s.SetWindow(window))
	suite.Require().NoError(s.SetServiceDuration(20 * time.Minute))

	requiredVehicleID := kernel.NewUUID()
	suite.Require().NoError(s.RequireVehicle(requiredVehicleID))

	depotID := kernel.NewUUID()
	suite.Require().NoError(s.SetDepot(depotID))
	s.SetDisplayDetails("Main St 1", "Ivanov", "+7 900 000-00-00", "intercom 42")

	suite.Require().NoError(suite.repository.Add(ctx, s))

	retrieved, err := suite.repository.Get(ctx, s.ID())
	suite.Require().NoError(err)

	suite.Equal(s.ID(), retrieved.ID())
	suite.Equal(stop.Delivery, retrieved.Kind())
	suite.Equal(stop.Planned, retrieved.Status())
	suite.Require().NotNil(retrieved.Location())
	suite.True(retrieved.Location().IsEqual(location))
	suite.Require().NotNil(retrieved.Window())
	suite.Equal("10:00", retrieved.Window().Start())
	suite.Equal("14:30", retrieved.Window().End())
	suite.Equal(20*time.Minute, retrieved.ServiceDuration())
	suite.Require().NotNil(retrieved.RequiredVehicle())
	suite.True(retrieved.RequiredVehicle().IsEqual(requiredVehicleID))
	suite.Require().NotNil(retrieved.Depot())
	suite.True(retrieved.Depot().IsEqual(depotID))
	suite.Equal("Ivanov", retrieved.RecipientName())
	suite.Nil(retrieved.Route())
	suite.Nil(retrieved.Position())
}

func (suite *StopRepositoryIntegrationTestSuite) TestGet_NonExistentStop_ReturnsNotFoundError() {
	_, err := suite.repository.Get(context.Background(), kernel.NewUUID())
	suite.Require().Error(err)

	var notFoundErr *errs.ObjectNotFoundError
	suite.Require().ErrorAs(err, &notFoundErr)
}

func (suite *StopRepositoryIntegrationTestSuite) TestUpdate_PersistsClearedLinkage() {
	ctx := context.Background()
	suite.expectTracking()

	s := suite.createTestStop()
	routeID := kernel.NewUUID()
	suite.Require().NoError(s.AssignToRoute(routeID, 2))
	suite.Require().NoError(suite.repository.Add(ctx, s))

	// Pull the stop back out of the route; NULLing route_id and position
	// must survive the update.
	s.Unassign()
	suite.Require().NoError(suite.repository.Update(ctx, s))

	retrieved, err := suite.repository.Get(ctx, s.ID())
	suite.Require().NoError(err)
	suite.Nil(retrieved.Route())
	suite.Nil(retrieved.Position())
	suite.Equal(stop.Planned, retrieved.Status())
}

func (suite *StopRepositoryIntegrationTestSuite) TestUpdate_TerminalOutcomeOverwrite() {
	ctx := context.Background()
	suite.expectTracking()

	s := suite.createTestStop()
	suite.Require().NoError(suite.repository.Add(ctx, s))

	s.Complete("photo-123")
	suite.Require().NoError(suite.repository.Update(ctx, s))

	suite.Require().NoError(s.Fail("door locked"))
	suite.Require().NoError(suite.repository.Update(ctx, s))

	retrieved, err := suite.repository.Get(ctx, s.ID())
	suite.Require().NoError(err)
	suite.Equal(stop.Failed, retrieved.Status())
	suite.Equal("door locked", retrieved.FailureReason())
	suite.Empty(retrieved.ProofRef())
}

func (suite *StopRepositoryIntegrationTestSuite) TestUpdate_NonExistentStop_ReturnsError() {
	err := suite.repository.Update(context.Background(), suite.createTestStop())
	suite.Require().ErrorIs(err, gorm.ErrRecordNotFound)
}

func (suite *StopRepositoryIntegrationTestSuite) TestGetAllPlannedUnassignedByDate_FiltersBacklog() {
	ctx := context.Background()
	suite.expectTracking()

	backlog := suite.createTestStop()
	suite.Require().NoError(suite.repository.Add(ctx, backlog))

	linked := suite.createTestStop()
	suite.Require().NoError(linked.AssignToRoute(kernel.NewUUID(), 0))
	suite.Require().NoError(suite.repository.Add(ctx, linked))

	completed := suite.createTestStop()
	completed.Complete("photo")
	suite.Require().NoError(suite.repository.Add(ctx, completed))

	otherDay, err := stop.NewStop(
		kernel.NewUUID(), "Main St 2", suite.serviceDate().AddDate(0, 0, 1), stop.Pickup)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.repository.Add(ctx, otherDay))

	stops, err := suite.repository.GetAllPlannedUnassignedByDate(ctx, suite.serviceDate())
	suite.Require().NoError(err)
	suite.Require().Len(stops, 1)
	suite.Equal(backlog.ID(), stops[0].ID())
}

func (suite *StopRepositoryIntegrationTestSuite) TestGetAllByRouteID_OrdersByPosition() {
	ctx := context.Background()
	suite.expectTracking()

	routeID := kernel.NewUUID()
	var ids []kernel.UUID
	for _, position := range []int{2, 0, 1} {
		s := suite.createTestStop()
		suite.Require().NoError(s.AssignToRoute(routeID, position))
		suite.Require().NoError(suite.repository.Add(ctx, s))
		ids = append(ids, s.ID())
	}

	// A stop on another route must not leak in.
	other := suite.createTestStop()
	suite.Require().NoError(other.AssignToRoute(kernel.NewUUID(), 0))
	suite.Require().NoError(suite.repository.Add(ctx, other))

	stops, err := suite.repository.GetAllByRouteID(ctx, routeID)
	suite.Require().NoError(err)
	suite.Require().Len(stops, 3)
	suite.Equal(ids[1], stops[0].ID())
	suite.Equal(ids[2], stops[1].ID())
	suite.Equal(ids[0], stops[2].ID())
}

func TestStopRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(StopRepositoryIntegrationTestSuite))
}
