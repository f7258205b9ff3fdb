package queries_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"dispatch/internal/core/application/board"
	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/domain/model/assignment"
	"dispatch/internal/core/domain/model/driver"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/domain/services"
	"dispatch/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockDriverRepository struct{ mock.Mock }

func (m *MockDriverRepository) ListDrivers(ctx context.Context) ([]*driver.Driver, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*driver.Driver), args.Error(1)
}

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) ListOpenOrders(ctx context.Context) ([]*order.Order, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

type published struct {
	board            *board.Board
	ravi, asha, idle *driver.Driver
	o1, o2, o3, o4   *order.Order
}

// newPublished publishes o1,o3 to ravi, o2 to asha, leaves o4 unassigned and idle without orders.
func newPublished(t *testing.T) published {
	t.Helper()
	p := published{board: board.New()}
	mkDriver := func(name, city string) *driver.Driver {
		d, err := driver.NewDriver(kernel.NewUUID(), name, driver.Contact{City: city})
		require.NoError(t, err)
		return d
	}
	mkOrder := func(number string) *order.Order {
		o, err := order.NewOrder(kernel.NewUUID(), number, order.Delivery{}, order.Pending, time.Now())
		require.NoError(t, err)
		return o
	}
	p.ravi, p.asha, p.idle = mkDriver("Ravi", "Mumbai"), mkDriver("Asha", "Pune"), mkDriver("", "")
	p.o1, p.o2, p.o3, p.o4 = mkOrder("1"), mkOrder("2"), mkOrder("3"), mkOrder("4")

	b := assignment.NewBuilder()
	require.NoError(t, b.Assign(p.o1.ID(), p.ravi.ID()))
	require.NoError(t, b.Assign(p.o2.ID(), p.asha.ID()))
	require.NoError(t, b.Assign(p.o3.ID(), p.ravi.ID()))
	tiers := map[kernel.UUID]assignment.Tier{
		p.o1.ID(): assignment.CityMatch,
		p.o2.ID(): assignment.LeastLoaded,
		p.o3.ID(): assignment.CityMatch,
	}

	token := p.board.BeginRun()
	_, err := p.board.Complete(token, services.Result{Assignment: b.Build(), Tiers: tiers},
		[]*driver.Driver{p.ravi, p.asha, p.idle}, []*order.Order{p.o1, p.o2, p.o3, p.o4})
	require.NoError(t, err)
	return p
}

func TestQueries_NotConstructed(t *testing.T) {
	ctx := context.Background()
	b := board.New()

	_, err := queries.NewGetAssignmentBoardQueryHandler(b).Handle(ctx, queries.GetAssignmentBoardQuery{})
	assert.ErrorIs(t, err, queries.ErrGetAssignmentBoardQueryIsNotConstructed)

	_, err = queries.NewGetAssignmentsCSVQueryHandler(b).Handle(ctx, queries.GetAssignmentsCSVQuery{})
	assert.ErrorIs(t, err, queries.ErrGetAssignmentsCSVQueryIsNotConstructed)

	_, err = queries.NewGetDriverOrdersQueryHandler(b).Handle(ctx, queries.GetDriverOrdersQuery{})
	assert.ErrorIs(t, err, queries.ErrGetDriverOrdersQueryIsNotConstructed)

	_, err = queries.NewListDriversQueryHandler(&MockDriverRepository{}).Handle(ctx, queries.ListDriversQuery{})
	assert.ErrorIs(t, err, queries.ErrListDriversQueryIsNotConstructed)

	_, err = queries.NewListOpenOrdersQueryHandler(&MockOrderRepository{}).Handle(ctx, queries.ListOpenOrdersQuery{})
	assert.ErrorIs(t, err, queries.ErrListOpenOrdersQueryIsNotConstructed)
}

func TestGetAssignmentBoardQueryHandler(t *testing.T) {
	t.Run("should group orders per driver in input order", func(t *testing.T) {
		p := newPublished(t)

		view, err := queries.NewGetAssignmentBoardQueryHandler(p.board).
			Handle(context.Background(), queries.NewGetAssignmentBoardQuery())

		require.NoError(t, err)
		require.Len(t, view.Drivers, 3)
		assert.Equal(t, p.ravi, view.Drivers[0].Driver)
		assert.Equal(t, []*order.Order{p.o1, p.o3}, view.Drivers[0].Orders)
		assert.Equal(t, 2, view.Drivers[0].Load)
		assert.Equal(t, []*order.Order{p.o2}, view.Drivers[1].Orders)
		assert.Equal(t, map[kernel.UUID]assignment.Tier{p.o2.ID(): assignment.LeastLoaded}, view.Drivers[1].Tiers)
		assert.Empty(t, view.Drivers[2].Orders)
		assert.Zero(t, view.Drivers[2].Load)
		assert.Equal(t, []*order.Order{p.o4}, view.Unassigned)
		assert.Equal(t, assignment.LeastLoaded, view.Tiers[p.o2.ID()])
		assert.NotZero(t, view.RunID)
		assert.False(t, view.Running)
	})

	t.Run("should return empty view for empty board", func(t *testing.T) {
		view, err := queries.NewGetAssignmentBoardQueryHandler(board.New()).
			Handle(context.Background(), queries.NewGetAssignmentBoardQuery())

		require.NoError(t, err)
		assert.Zero(t, view.RunID)
		assert.Empty(t, view.Drivers)
		assert.Empty(t, view.Unassigned)
	})
}

func TestGetDriverOrdersQueryHandler(t *testing.T) {
	p := newPublished(t)
	handler := queries.NewGetDriverOrdersQueryHandler(p.board)

	t.Run("should return orders of driver", func(t *testing.T) {
		query, err := queries.NewGetDriverOrdersQuery(p.ravi.ID())
		require.NoError(t, err)

		group, err := handler.Handle(context.Background(), query)

		require.NoError(t, err)
		assert.Equal(t, []*order.Order{p.o1, p.o3}, group.Orders)
		assert.Equal(t, map[kernel.UUID]assignment.Tier{
			p.o1.ID(): assignment.CityMatch,
			p.o3.ID(): assignment.CityMatch,
		}, group.Tiers, "tiers come from the same run as the orders")
	})

	t.Run("should report unknown driver", func(t *testing.T) {
		query, err := queries.NewGetDriverOrdersQuery(kernel.NewUUID())
		require.NoError(t, err)

		_, err = handler.Handle(context.Background(), query)

		require.ErrorIs(t, err, errs.ErrObjectNotFound)
	})

	t.Run("should reject zero driver id", func(t *testing.T) {
		_, err := queries.NewGetDriverOrdersQuery(kernel.UUID{})

		require.Error(t, err)
		var required *errs.ValueIsRequiredError
		assert.True(t, errors.As(err, &required))
	})
}

func TestGetAssignmentsCSVQueryHandler(t *testing.T) {
	t.Run("should render one line per order", func(t *testing.T) {
		p := newPublished(t)

		text, err := queries.NewGetAssignmentsCSVQueryHandler(p.board).
			Handle(context.Background(), queries.NewGetAssignmentsCSVQuery())

		require.NoError(t, err)
		lines := strings.Split(text, "\n")
		require.Len(t, lines, 5)
		assert.Equal(t, services.ExportHeader, lines[0])
		assert.Equal(t, p.o2.ID().String()+",2,"+p.asha.ID().String()+",Asha,Pune", lines[2])
		assert.Equal(t, p.o4.ID().String()+",4,,,", lines[4])
	})

	t.Run("should render header only for empty board", func(t *testing.T) {
		text, err := queries.NewGetAssignmentsCSVQueryHandler(board.New()).
			Handle(context.Background(), queries.NewGetAssignmentsCSVQuery())

		require.NoError(t, err)
		assert.Equal(t, services.ExportHeader, text)
	})
}

func TestListQueries(t *testing.T) {
	ctx := context.Background()

	t.Run("should list drivers", func(t *testing.T) {
		d, err := driver.NewDriver(kernel.NewUUID(), "Ravi", driver.Contact{})
		require.NoError(t, err)
		repo := &MockDriverRepository{}
		repo.On("ListDrivers", ctx).Return([]*driver.Driver{d}, nil)

		got, err := queries.NewListDriversQueryHandler(repo).Handle(ctx, queries.NewListDriversQuery())

		require.NoError(t, err)
		assert.Equal(t, []*driver.Driver{d}, got)
	})

	t.Run("should wrap order read failure", func(t *testing.T) {
		repo := &MockOrderRepository{}
		repo.On("ListOpenOrders", ctx).Return(nil, errors.New("timeout"))

		_, err := queries.NewListOpenOrdersQueryHandler(repo).Handle(ctx, queries.NewListOpenOrdersQuery())

		require.ErrorContains(t, err, "list open orders: timeout")
	})
}
