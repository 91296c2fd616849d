package commands_test

import (
	"testing"

	"fleetroute/internal/core/application/usecases/commands"
	"fleetroute/internal/core/domain/model/kernel"
	"fleetroute/internal/core/domain/model/route"
	"fleetroute/internal/core/domain/model/stop"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestDeleteRouteCommandHandler_Handle(t *testing.T) {
	ctx := t.Context()

	r, err := route.NewRoute(kernel.NewUUID(), kernel.NewUUID(), serviceDate())
	require.NoError(t, err)

	s1 := linkedStop(t, r.ID(), 0)
	s2 := linkedStop(t, r.ID(), 1)
	s2.Complete("photo")

	cmd, err := commands.NewDeleteRouteCommand(r.ID())
	require.NoError(t, err)

	stopRepo := new(MockStopRepository)
	routeRepo := new(MockRouteRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("RouteRepository").Return(routeRepo).Once(),
		routeRepo.On("Get", mock.Anything, r.ID()).Return(r, nil).Once(),
		uow.On("StopRepository").Return(stopRepo).Once(),
		stopRepo.On("GetAllByRouteID", mock.Anything, r.ID()).
			Return([]*stop.Stop{s1, s2}, nil).Once(),
		stopRepo.On("Update", mock.Anything, s1).Return(nil).Once(),
		stopRepo.On("Update", mock.Anything, s2).Return(nil).Once(),
		routeRepo.On("Delete", mock.Anything, r.ID()).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockStopRouteUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewDeleteRouteCommandHandler(factory)
	require.NoError(t, h.Handle(ctx, cmd))

	// Every stop is back to unrouted Planned, terminal or not.
	for _, s := range []*stop.Stop{s1, s2} {
		assert.Nil(t, s.Route())
		assert.Nil(t, s.Position())
		assert.Equal(t, stop.Planned, s.Status())
	}

	stopRepo.AssertExpectations(t)
	routeRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
}
