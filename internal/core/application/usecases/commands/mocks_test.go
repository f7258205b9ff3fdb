package commands_test

import (
	"context"
	"io"
	"log/slog"

	"dispatch/internal/core/domain/model/driver"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"

	"github.com/stretchr/testify/mock"
)

type MockInputReader struct{ mock.Mock }

func (m *MockInputReader) ReadInputs(ctx context.Context) ([]*driver.Driver, []*order.Order, error) {
	args := m.Called(ctx)
	var drivers []*driver.Driver
	var orders []*order.Order
	if v := args.Get(0); v != nil {
		drivers = v.([]*driver.Driver)
	}
	if v := args.Get(1); v != nil {
		orders = v.([]*order.Order)
	}
	return drivers, orders, args.Error(2)
}

type MockGeocoding struct{ mock.Mock }

func (m *MockGeocoding) Resolve(ctx context.Context, address string) (kernel.Coordinates, bool) {
	args := m.Called(ctx, address)
	return args.Get(0).(kernel.Coordinates), args.Bool(1)
}

func (m *MockGeocoding) Prefetch(ctx context.Context, addresses []string) {
	m.Called(ctx, addresses)
}

func (m *MockGeocoding) Reset(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

type MockExportSink struct{ mock.Mock }

func (m *MockExportSink) Deliver(ctx context.Context, text string) error {
	args := m.Called(ctx, text)
	return args.Error(0)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
