package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	httpin "dispatch/internal/adapters/in/http"
	"dispatch/internal/adapters/out/memcache"
	"dispatch/internal/adapters/out/nominatim"
	"dispatch/internal/adapters/out/postgres"
	"dispatch/internal/adapters/out/postgres/driverrepo"
	"dispatch/internal/adapters/out/postgres/geocoderepo"
	"dispatch/internal/adapters/out/postgres/orderrepo"
	"dispatch/internal/adapters/out/rediscache"
	"dispatch/internal/adapters/out/sink"
	"dispatch/internal/core/application/board"
	"dispatch/internal/core/application/geocoding"
	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/domain/services"
	"dispatch/internal/core/ports"
	"dispatch/internal/jobs"

	"gorm.io/gorm"
)

// CompositionRoot owns the long-lived collaborators of the service and
// builds the handlers that share them.
type CompositionRoot struct {
	config Config
	logger *slog.Logger

	gormDB   *gorm.DB
	redis    *rediscache.Cache
	board    *board.Board
	resolver *geocoding.Resolver
	engine   *services.AssignmentEngine
	inputs   ports.InputReader
	sink     ports.ExportSink
}

// NewCompositionRoot wires the geocoding tiers, the engine and the board.
// The Redis tier is added only when RedisURL is configured.
func NewCompositionRoot(config Config, gormDB *gorm.DB, logger *slog.Logger) (*CompositionRoot, error) {
	engine, err := services.NewAssignmentEngine(config.Matching)
	if err != nil {
		return nil, fmt.Errorf("create assignment engine: %w", err)
	}

	tiers := []ports.GeocodeCache{memcache.New()}
	var redisCache *rediscache.Cache
	if config.RedisURL != "" {
		redisCache, err = rediscache.NewFromURL(config.RedisURL, config.GeocodeCacheTTL)
		if err != nil {
			return nil, fmt.Errorf("connect geocode redis: %w", err)
		}
		tiers = append(tiers, redisCache)
	}
	tiers = append(tiers, geocoderepo.NewGormGeocodeRepository(gormDB))

	opts := []nominatim.Option{}
	if config.GeocoderRatePerSec > 0 {
		opts = append(opts, nominatim.WithRateLimit(config.GeocoderRatePerSec))
	}
	if config.GeocoderTimeout > 0 {
		opts = append(opts, nominatim.WithHTTPClient(&http.Client{Timeout: config.GeocoderTimeout}))
	}
	geocoder := nominatim.New(config.GeocoderBaseURL, config.GeocoderUserAgent, opts...)

	var exportSink ports.ExportSink = sink.NewWriterSink(os.Stdout)
	if config.ExportPath != "" {
		exportSink = sink.NewFileSink(config.ExportPath)
	}

	return &CompositionRoot{
		config:   config,
		logger:   logger,
		gormDB:   gormDB,
		redis:    redisCache,
		board:    board.New(),
		resolver: geocoding.NewResolver(geocoder, geocoding.NewTieredCache(tiers...), logger),
		engine:   engine,
		inputs:   postgres.NewSnapshotReader(gormDB),
		sink:     exportSink,
	}, nil
}

// Close releases connections opened by the root.
func (c *CompositionRoot) Close() error {
	var errs []error
	if c.redis != nil {
		errs = append(errs, c.redis.Close())
	}
	return errors.Join(errs...)
}

func (c *CompositionRoot) batchOptions() geocoding.BatchOptions {
	return geocoding.BatchOptions{
		Concurrency: c.config.GeocodeConcurrency,
		Pause:       c.config.GeocodePause,
	}
}

func (c *CompositionRoot) CreateRunAssignmentCommandHandler() commands.RunAssignmentCommandHandler {
	return commands.NewRunAssignmentCommandHandler(c.inputs, c.resolver, c.engine, c.board, c.batchOptions(), c.logger)
}

func (c *CompositionRoot) CreateClearAssignmentsCommandHandler() commands.ClearAssignmentsCommandHandler {
	return commands.NewClearAssignmentsCommandHandler(c.board, c.logger)
}

func (c *CompositionRoot) CreateExportAssignmentsCommandHandler() commands.ExportAssignmentsCommandHandler {
	return commands.NewExportAssignmentsCommandHandler(c.board, c.sink, c.logger)
}

func (c *CompositionRoot) CreateInvalidateGeocodeCacheCommandHandler() commands.InvalidateGeocodeCacheCommandHandler {
	return commands.NewInvalidateGeocodeCacheCommandHandler(c.board, c.resolver, c.logger)
}

func (c *CompositionRoot) CreateGetAssignmentBoardQueryHandler() queries.GetAssignmentBoardQueryHandler {
	return queries.NewGetAssignmentBoardQueryHandler(c.board)
}

func (c *CompositionRoot) CreateGetAssignmentsCSVQueryHandler() queries.GetAssignmentsCSVQueryHandler {
	return queries.NewGetAssignmentsCSVQueryHandler(c.board)
}

func (c *CompositionRoot) CreateGetDriverOrdersQueryHandler() queries.GetDriverOrdersQueryHandler {
	return queries.NewGetDriverOrdersQueryHandler(c.board)
}

func (c *CompositionRoot) CreateListDriversQueryHandler() queries.ListDriversQueryHandler {
	return queries.NewListDriversQueryHandler(driverrepo.NewGormDriverRepository(c.gormDB))
}

func (c *CompositionRoot) CreateListOpenOrdersQueryHandler() queries.ListOpenOrdersQueryHandler {
	return queries.NewListOpenOrdersQueryHandler(orderrepo.NewGormOrderRepository(c.gormDB))
}

// CreateServer builds the HTTP server with every command and query handler.
func (c *CompositionRoot) CreateServer() *httpin.Server {
	return httpin.NewServer(httpin.Handlers{
		RunAssignment:    c.CreateRunAssignmentCommandHandler(),
		ClearAssignments: c.CreateClearAssignmentsCommandHandler(),
		Export:           c.CreateExportAssignmentsCommandHandler(),
		InvalidateCache:  c.CreateInvalidateGeocodeCacheCommandHandler(),
		Board:            c.CreateGetAssignmentBoardQueryHandler(),
		CSV:              c.CreateGetAssignmentsCSVQueryHandler(),
		DriverOrders:     c.CreateGetDriverOrdersQueryHandler(),
		ListDrivers:      c.CreateListDriversQueryHandler(),
		ListOrders:       c.CreateListOpenOrdersQueryHandler(),
	}, c.logger)
}

// CreateJobManager builds the scheduled refresh and export jobs.
func (c *CompositionRoot) CreateJobManager() (*jobs.JobManager, error) {
	return jobs.NewJobManager(
		c.CreateRunAssignmentCommandHandler(),
		c.CreateExportAssignmentsCommandHandler(),
		jobs.Schedules{Refresh: c.config.RefreshSchedule, Export: c.config.ExportSchedule},
		c.logger,
	)
}
