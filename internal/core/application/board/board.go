// Package board holds the latest published assignment of the service.
//
// A run reserves a token with BeginRun and publishes through Complete. Only
// the most recent token may publish; beginning a newer run or clearing the
// board supersedes every older token, so a slow run can never overwrite the
// result of a later one.
package board

import (
	"errors"
	"sync"
	"time"

	"dispatch/internal/core/domain/model/driver"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/domain/services"
)

// ErrRunSuperseded is returned by Complete when a newer run was started or the
// board was cleared after the token was issued.
var ErrRunSuperseded = errors.New("assignment run was superseded by a newer run")

// ErrRunInProgress is returned by WhileIdle when a run is still in flight.
var ErrRunInProgress = errors.New("assignment run in progress")

// RunToken identifies one assignment run. Tokens grow monotonically.
type RunToken uint64

// Snapshot is a published assignment together with the inputs it was computed
// from. Drivers and Orders carry resolved coordinates, in input order.
type Snapshot struct {
	RunID       RunToken
	Drivers     []*driver.Driver
	Orders      []*order.Order
	Result      services.Result
	CompletedAt time.Time
}

// IsEmpty reports whether nothing was published yet or the board was cleared.
func (s Snapshot) IsEmpty() bool {
	return s.RunID == 0
}

// Board is safe for concurrent use. The zero value is not usable; call New.
type Board struct {
	// gate is held by BeginRun and for the whole of WhileIdle, so no run can
	// start while an idle-only action is executing.
	gate sync.Mutex

	mu        sync.Mutex
	issued    RunToken
	current   RunToken
	inFlight  int
	published Snapshot
	now       func() time.Time
}

// New creates an empty board.
func New() *Board {
	return &Board{now: time.Now}
}

// BeginRun issues a new token and supersedes all earlier ones.
// Every call must be paired with Complete or Abort.
func (b *Board) BeginRun() RunToken {
	b.gate.Lock()
	defer b.gate.Unlock()
	b.mu.Lock()
	defer b.mu.Unlock()

	b.issued++
	b.current = b.issued
	b.inFlight++
	return b.current
}

// Complete publishes the outcome of the run identified by token and returns
// the published snapshot. It returns ErrRunSuperseded, publishing nothing,
// when token is stale.
func (b *Board) Complete(
	token RunToken,
	result services.Result,
	drivers []*driver.Driver,
	orders []*order.Order,
) (Snapshot, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.finish()
	if token != b.current {
		return Snapshot{}, ErrRunSuperseded
	}

	b.published = Snapshot{
		RunID:       token,
		Drivers:     append([]*driver.Driver(nil), drivers...),
		Orders:      append([]*order.Order(nil), orders...),
		Result:      result,
		CompletedAt: b.now().UTC(),
	}
	return b.published, nil
}

// Abort ends a run that failed before it could publish.
func (b *Board) Abort(RunToken) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.finish()
}

func (b *Board) finish() {
	if b.inFlight > 0 {
		b.inFlight--
	}
}

// Clear drops the published assignment and supersedes every in-flight run.
func (b *Board) Clear() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.issued++
	b.current = b.issued
	b.published = Snapshot{}
}

// Running reports whether any run, current or superseded, is still in flight.
func (b *Board) Running() bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.inFlight > 0
}

// WhileIdle runs fn only when no run is in flight and keeps BeginRun waiting
// until fn returns. It returns ErrRunInProgress without calling fn otherwise.
// Snapshot, Running and Clear stay available while fn runs.
func (b *Board) WhileIdle(fn func() error) error {
	b.gate.Lock()
	defer b.gate.Unlock()

	if b.Running() {
		return ErrRunInProgress
	}
	return fn()
}

// Snapshot returns the published assignment.
func (b *Board) Snapshot() Snapshot {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.published
}
