package services

import (
	"fmt"
	"math"
	"strings"

	"dispatch/internal/core/domain/model/assignment"
	"dispatch/internal/core/domain/model/driver"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
)

// Result is the outcome of one AssignmentEngine run.
type Result struct {
	// Assignment maps every assigned order to its driver.
	Assignment assignment.Assignment

	// Loads is the final number of orders per driver, including drivers with zero.
	Loads map[kernel.UUID]int

	// Tiers records which matching tier chose the driver of each assigned order.
	Tiers map[kernel.UUID]assignment.Tier
}

// AssignmentEngine is a domain service that distributes open orders among
// drivers, approximating "nearest available driver" with a soft load balance.
//
// Each order is matched in input order by the first tier that yields a driver:
//
//	Proximity    smallest haversine distance + LoadPenaltyKm × load
//	             (order and at least one driver have coordinates)
//	CityMatch    same normalised city, least loaded
//	AddressMatch one normalised address contains the other, least loaded
//	FuzzyMatch   best max(CityWeight × simCity, AddressWeight × simAddress)
//	             accepted when >= FuzzyThreshold
//	LeastLoaded  least loaded driver overall
//
// When Proximity applies it always decides; the text tiers are only tried for
// orders that cannot be placed by distance. Every "least loaded" choice breaks
// ties by driver input order.
//
// After each choice the driver's load grows by one, so later orders see the
// earlier ones. The algorithm is greedy and single-pass; it does not look for a
// globally optimal assignment and there is no hard capacity per driver.
//
// The engine holds no run state; every Assign call starts from zero loads.
// It is safe for concurrent use.
//
// Example usage:
//
//	engine, _ := services.NewAssignmentEngine(services.DefaultMatchingConfig())
//	result, err := engine.Assign(orders, drivers)
//	if err != nil {
//	    return err
//	}
//	driverID, ok := result.Assignment.DriverFor(orders[0].ID())
type AssignmentEngine struct {
	cfg MatchingConfig
}

// NewAssignmentEngine creates an engine with the given matching constants.
//
// Parameters:
//   - cfg: Matching constants, see MatchingConfig.Validate
//
// Returns:
//   - *AssignmentEngine: ready to use engine
//   - error: if cfg is invalid
func NewAssignmentEngine(cfg MatchingConfig) (*AssignmentEngine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid matching config: %w", err)
	}
	return &AssignmentEngine{cfg: cfg}, nil
}

// Config returns the matching constants in use.
func (e *AssignmentEngine) Config() MatchingConfig {
	return e.cfg
}

// Assign computes a fresh assignment of orders to drivers.
//
// Parameters:
//   - orders: Open orders in the order they should be processed
//   - drivers: Candidate drivers; their order breaks ties
//
// Returns:
//   - Result: the assignment with final loads and the tier of every match;
//     empty when either input is empty
//   - error: if an input entity was not constructed, or an order ID repeats
func (e *AssignmentEngine) Assign(orders []*order.Order, drivers []*driver.Driver) (Result, error) {
	ids := make([]kernel.UUID, 0, len(drivers))
	for _, d := range drivers {
		if err := d.Validate(); err != nil {
			return Result{}, err
		}
		ids = append(ids, d.ID())
	}

	for _, o := range orders {
		if err := o.Validate(); err != nil {
			return Result{}, err
		}
	}

	run := &assignmentRun{
		cfg:     e.cfg,
		drivers: drivers,
		located: locatedDrivers(drivers),
		loads:   assignment.NewLoadTracker(ids...),
		builder: assignment.NewBuilder(),
		tiers:   make(map[kernel.UUID]assignment.Tier, len(orders)),
	}

	for _, o := range orders {
		if err := run.place(o); err != nil {
			return Result{}, err
		}
	}

	return Result{
		Assignment: run.builder.Build(),
		Loads:      run.loads.Snapshot(),
		Tiers:      run.tiers,
	}, nil
}

// assignmentRun carries the mutable state of a single Assign call.
type assignmentRun struct {
	cfg     MatchingConfig
	drivers []*driver.Driver
	located []locatedDriver
	loads   *assignment.LoadTracker
	builder *assignment.Builder
	tiers   map[kernel.UUID]assignment.Tier
}

type locatedDriver struct {
	driver   *driver.Driver
	location kernel.Coordinates
}

func locatedDrivers(drivers []*driver.Driver) []locatedDriver {
	out := make([]locatedDriver, 0, len(drivers))
	for _, d := range drivers {
		if loc, ok := d.Location(); ok {
			out = append(out, locatedDriver{driver: d, location: loc})
		}
	}
	return out
}

func (r *assignmentRun) place(o *order.Order) error {
	d, tier := r.choose(o)
	if d == nil {
		return nil
	}

	if err := r.builder.Assign(o.ID(), d.ID()); err != nil {
		return err
	}
	r.loads.Increment(d.ID())
	r.tiers[o.ID()] = tier
	return nil
}

func (r *assignmentRun) choose(o *order.Order) (*driver.Driver, assignment.Tier) {
	if loc, ok := o.Location(); ok && len(r.located) > 0 {
		return r.nearest(loc), assignment.Proximity
	}

	orderCity := o.NormalizedCity()
	orderAddress := o.NormalizedAddress()

	if d := r.leastLoaded(func(d *driver.Driver) bool {
		return d.NormalizedCity() == orderCity
	}); d != nil {
		return d, assignment.CityMatch
	}

	if orderAddress != "" {
		if d := r.leastLoaded(func(d *driver.Driver) bool {
			addr := d.NormalizedAddress()
			return addr != "" && (strings.Contains(orderAddress, addr) || strings.Contains(addr, orderAddress))
		}); d != nil {
			return d, assignment.AddressMatch
		}
	}

	if d := r.mostSimilar(orderCity, orderAddress); d != nil {
		return d, assignment.FuzzyMatch
	}

	if d := r.leastLoaded(func(*driver.Driver) bool { return true }); d != nil {
		return d, assignment.LeastLoaded
	}

	return nil, assignment.Unmatched
}

// nearest returns the located driver with the smallest load-adjusted distance.
// The first driver wins ties.
func (r *assignmentRun) nearest(target kernel.Coordinates) *driver.Driver {
	var (
		best     *driver.Driver
		bestCost = math.Inf(1)
	)

	for _, c := range r.located {
		dist := kernel.HaversineKm(target.Lat(), target.Lon(), c.location.Lat(), c.location.Lon())
		cost := dist + r.cfg.LoadPenaltyKm*float64(r.loads.Load(c.driver.ID()))
		if cost < bestCost {
			bestCost = cost
			best = c.driver
		}
	}

	return best
}

// leastLoaded returns the matching driver with the lowest load, the first one
// in input order on ties, or nil when nothing matches.
func (r *assignmentRun) leastLoaded(match func(*driver.Driver) bool) *driver.Driver {
	var (
		best     *driver.Driver
		bestLoad int
	)

	for _, d := range r.drivers {
		if !match(d) {
			continue
		}
		if load := r.loads.Load(d.ID()); best == nil || load < bestLoad {
			best = d
			bestLoad = load
		}
	}

	return best
}

// mostSimilar scores every driver by weighted city and address similarity and
// returns the best one if it reaches the threshold. An empty order side
// contributes a zero similarity.
func (r *assignmentRun) mostSimilar(orderCity, orderAddress string) *driver.Driver {
	var (
		best      *driver.Driver
		bestScore float64
	)

	for _, d := range r.drivers {
		var simCity, simAddress float64
		if orderCity != "" {
			simCity = kernel.Similarity(d.NormalizedCity(), orderCity)
		}
		if orderAddress != "" {
			simAddress = kernel.Similarity(d.NormalizedAddress(), orderAddress)
		}

		score := math.Max(r.cfg.CityWeight*simCity, r.cfg.AddressWeight*simAddress)
		if score > bestScore {
			bestScore = score
			best = d
		}
	}

	if best == nil || bestScore < r.cfg.FuzzyThreshold {
		return nil
	}
	return best
}
