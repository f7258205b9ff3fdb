package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"dispatch/internal/core/application/board"
	"dispatch/internal/core/application/geocoding"
	"dispatch/internal/core/domain/model/driver"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/domain/services"
	"dispatch/internal/core/ports"
	"dispatch/internal/metrics"
)

// RunAssignmentCommandHandler orchestrates one assignment run.
//
// Steps:
//  1. reserve a run token on the board, superseding older runs
//  2. read drivers and open orders from one consistent snapshot
//  3. resolve driver addresses, then order addresses, through the worker pool
//  4. run the AssignmentEngine over the located records, in input order
//  5. publish on the board, unless a newer run or a clear happened meanwhile
//
// Address resolution never fails a run; unplaceable records simply carry no
// coordinates. Read errors and cancellation do fail the run, and nothing is
// published.
//
// Example:
//
//	handler := NewRunAssignmentCommandHandler(reader, resolver, engine, b, geocoding.DefaultBatchOptions(), logger)
//	snapshot, err := handler.Handle(ctx, NewRunAssignmentCommand())
//	switch {
//	case errors.Is(err, board.ErrRunSuperseded):
//	    logger.Info("run superseded")
//	case err != nil:
//	    return err
//	default:
//	    logger.Info("assigned", "orders", snapshot.Result.Assignment.Len())
//	}
type RunAssignmentCommandHandler struct {
	inputs   ports.InputReader
	resolver Geocoding
	engine   *services.AssignmentEngine
	board    *board.Board
	batch    geocoding.BatchOptions
	logger   *slog.Logger
}

// NewRunAssignmentCommandHandler creates a handler for assignment runs.
func NewRunAssignmentCommandHandler(
	inputs ports.InputReader,
	resolver Geocoding,
	engine *services.AssignmentEngine,
	b *board.Board,
	batch geocoding.BatchOptions,
	logger *slog.Logger,
) RunAssignmentCommandHandler {
	return RunAssignmentCommandHandler{
		inputs:   inputs,
		resolver: resolver,
		engine:   engine,
		board:    b,
		batch:    batch,
		logger:   logger.With("component", "assignment-run"),
	}
}

// Handle executes the run and returns the published snapshot.
func (h RunAssignmentCommandHandler) Handle(ctx context.Context, command RunAssignmentCommand) (board.Snapshot, error) {
	if err := command.Validate(); err != nil {
		return board.Snapshot{}, err
	}

	started := time.Now()
	token := h.board.BeginRun()
	log := h.logger.With("run", uint64(token))
	log.InfoContext(ctx, "assignment run started")

	result, drivers, orders, err := h.compute(ctx)
	if err != nil {
		h.board.Abort(token)
		metrics.AssignmentRuns.WithLabelValues("failed").Inc()
		log.ErrorContext(ctx, "assignment run failed", "error", err)
		return board.Snapshot{}, err
	}

	snap, err := h.board.Complete(token, result, drivers, orders)
	if err != nil {
		if errors.Is(err, board.ErrRunSuperseded) {
			metrics.AssignmentRuns.WithLabelValues("superseded").Inc()
			log.InfoContext(ctx, "assignment run superseded")
		}
		return board.Snapshot{}, err
	}

	metrics.AssignmentRuns.WithLabelValues("published").Inc()
	metrics.AssignmentRunDuration.Observe(time.Since(started).Seconds())
	for _, tier := range result.Tiers {
		metrics.AssignmentsByTier.WithLabelValues(tier.String()).Inc()
	}

	log.InfoContext(ctx, "assignment run published",
		"drivers", len(drivers),
		"orders", len(orders),
		"assigned", result.Assignment.Len(),
		"duration", time.Since(started),
	)
	return snap, nil
}

func (h RunAssignmentCommandHandler) compute(ctx context.Context) (services.Result, []*driver.Driver, []*order.Order, error) {
	drivers, orders, err := h.inputs.ReadInputs(ctx)
	if err != nil {
		return services.Result{}, nil, nil, fmt.Errorf("read inputs: %w", err)
	}

	if len(drivers) > 0 && len(orders) > 0 {
		addresses := make([]string, 0, len(drivers)+len(orders))
		for _, d := range drivers {
			addresses = append(addresses, d.FullAddress())
		}
		for _, o := range orders {
			addresses = append(addresses, o.FullAddress())
		}
		h.resolver.Prefetch(ctx, addresses)

		drivers, err = locate(ctx, h.resolver, drivers, (*driver.Driver).FullAddress, h.batch)
		if err != nil {
			return services.Result{}, nil, nil, fmt.Errorf("resolve drivers: %w", err)
		}
		orders, err = locate(ctx, h.resolver, orders, (*order.Order).FullAddress, h.batch)
		if err != nil {
			return services.Result{}, nil, nil, fmt.Errorf("resolve orders: %w", err)
		}
	}

	result, err := h.engine.Assign(orders, drivers)
	if err != nil {
		return services.Result{}, nil, nil, fmt.Errorf("assign: %w", err)
	}
	return result, drivers, orders, nil
}

type locatable[T any] interface {
	ID() kernel.UUID
	WithLocation(kernel.Coordinates) (T, error)
}

// locate resolves the address of every item and returns the items in their
// input order, with coordinates attached where resolution succeeded.
func locate[T locatable[T]](
	ctx context.Context,
	resolver geocoding.AddressResolver,
	items []T,
	addressOf func(T) string,
	opts geocoding.BatchOptions,
) ([]T, error) {
	resolved, err := geocoding.BatchResolve(ctx, resolver, items, addressOf, opts)
	if err != nil {
		return nil, err
	}

	byID := make(map[kernel.UUID]kernel.Coordinates, len(resolved))
	for _, r := range resolved {
		if r.OK {
			byID[r.Item.ID()] = r.Coordinates
		}
	}

	out := make([]T, 0, len(items))
	for _, item := range items {
		c, ok := byID[item.ID()]
		if !ok {
			out = append(out, item)
			continue
		}
		located, err := item.WithLocation(c)
		if err != nil {
			return nil, err
		}
		out = append(out, located)
	}
	return out, nil
}
