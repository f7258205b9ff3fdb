// Package http exposes the assignment service over a JSON API built on echo.
package http

import (
	"errors"
	"log/slog"
	"net/http"

	"dispatch/internal/core/application/board"
	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
	openapi_types "github.com/oapi-codegen/runtime/types"
)

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	// Command handlers
	runAssignmentHandler    commands.RunAssignmentCommandHandler
	clearAssignmentsHandler commands.ClearAssignmentsCommandHandler
	exportHandler           commands.ExportAssignmentsCommandHandler
	invalidateCacheHandler  commands.InvalidateGeocodeCacheCommandHandler

	// Query handlers
	boardHandler        queries.GetAssignmentBoardQueryHandler
	csvHandler          queries.GetAssignmentsCSVQueryHandler
	driverOrdersHandler queries.GetDriverOrdersQueryHandler
	listDriversHandler  queries.ListDriversQueryHandler
	listOrdersHandler   queries.ListOpenOrdersQueryHandler

	logger *slog.Logger
}

// Handlers groups the use case handlers a Server needs.
type Handlers struct {
	RunAssignment    commands.RunAssignmentCommandHandler
	ClearAssignments commands.ClearAssignmentsCommandHandler
	Export           commands.ExportAssignmentsCommandHandler
	InvalidateCache  commands.InvalidateGeocodeCacheCommandHandler
	Board            queries.GetAssignmentBoardQueryHandler
	CSV              queries.GetAssignmentsCSVQueryHandler
	DriverOrders     queries.GetDriverOrdersQueryHandler
	ListDrivers      queries.ListDriversQueryHandler
	ListOrders       queries.ListOpenOrdersQueryHandler
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(h Handlers, logger *slog.Logger) *Server {
	return &Server{
		runAssignmentHandler:    h.RunAssignment,
		clearAssignmentsHandler: h.ClearAssignments,
		exportHandler:           h.Export,
		invalidateCacheHandler:  h.InvalidateCache,
		boardHandler:            h.Board,
		csvHandler:              h.CSV,
		driverOrdersHandler:     h.DriverOrders,
		listDriversHandler:      h.ListDrivers,
		listOrdersHandler:       h.ListOrders,
		logger:                  logger.With("component", "http"),
	}
}

// GetHealth handles GET /health.
func (s *Server) GetHealth(ctx echo.Context) error {
	return ctx.String(http.StatusOK, "Healthy")
}

// ListDrivers handles GET /api/v1/drivers.
func (s *Server) ListDrivers(ctx echo.Context) error {
	drivers, err := s.listDriversHandler.Handle(ctx.Request().Context(), queries.NewListDriversQuery())
	if err != nil {
		return s.fail(ctx, http.StatusInternalServerError, "Failed to retrieve drivers", err)
	}

	response := make([]Driver, 0, len(drivers))
	for _, d := range drivers {
		response = append(response, toDriver(d))
	}
	return ctx.JSON(http.StatusOK, response)
}

// ListOpenOrders handles GET /api/v1/orders.
func (s *Server) ListOpenOrders(ctx echo.Context) error {
	orders, err := s.listOrdersHandler.Handle(ctx.Request().Context(), queries.NewListOpenOrdersQuery())
	if err != nil {
		return s.fail(ctx, http.StatusInternalServerError, "Failed to retrieve orders", err)
	}
	return ctx.JSON(http.StatusOK, toOrders(orders, nil))
}

// GetAssignmentBoard handles GET /api/v1/assignments.
func (s *Server) GetAssignmentBoard(ctx echo.Context) error {
	view, err := s.boardHandler.Handle(ctx.Request().Context(), queries.NewGetAssignmentBoardQuery())
	if err != nil {
		return s.fail(ctx, http.StatusInternalServerError, "Failed to read assignments", err)
	}
	return ctx.JSON(http.StatusOK, toBoard(view))
}

// RunAssignment handles POST /api/v1/assignments.
func (s *Server) RunAssignment(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()

	_, err := s.runAssignmentHandler.Handle(reqCtx, commands.NewRunAssignmentCommand())
	if errors.Is(err, board.ErrRunSuperseded) {
		return s.fail(ctx, http.StatusConflict, "Assignment run was superseded by a newer run", err)
	}
	if err != nil {
		return s.fail(ctx, http.StatusInternalServerError, "Failed to run assignment", err)
	}

	return s.GetAssignmentBoard(ctx)
}

// ClearAssignments handles DELETE /api/v1/assignments.
func (s *Server) ClearAssignments(ctx echo.Context) error {
	err := s.clearAssignmentsHandler.Handle(ctx.Request().Context(), commands.NewClearAssignmentsCommand())
	if err != nil {
		return s.fail(ctx, http.StatusInternalServerError, "Failed to clear assignments", err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

// GetAssignmentsCSV handles GET /api/v1/assignments/csv.
func (s *Server) GetAssignmentsCSV(ctx echo.Context) error {
	text, err := s.csvHandler.Handle(ctx.Request().Context(), queries.NewGetAssignmentsCSVQuery())
	if err != nil {
		return s.fail(ctx, http.StatusInternalServerError, "Failed to render assignments", err)
	}
	return ctx.String(http.StatusOK, text)
}

// ExportAssignments handles POST /api/v1/assignments/export.
func (s *Server) ExportAssignments(ctx echo.Context) error {
	err := s.exportHandler.Handle(ctx.Request().Context(), commands.NewExportAssignmentsCommand())
	if errors.Is(err, commands.ErrNothingToExport) {
		return s.fail(ctx, http.StatusConflict, "No orders to export", err)
	}
	if err != nil {
		return s.fail(ctx, http.StatusInternalServerError, "Failed to export assignments", err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

// GetDriverOrders handles GET /api/v1/drivers/:driverId/orders.
func (s *Server) GetDriverOrders(ctx echo.Context) error {
	var driverID openapi_types.UUID
	err := runtime.BindStyledParameterWithOptions("simple", "driverId", ctx.Param("driverId"), &driverID,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return s.fail(ctx, http.StatusBadRequest, "Invalid format for parameter driverId", err)
	}

	id, err := kernel.UUIDFromGoogle(driverID)
	if err != nil {
		return s.fail(ctx, http.StatusBadRequest, "Invalid driver id", err)
	}
	query, err := queries.NewGetDriverOrdersQuery(id)
	if err != nil {
		return s.fail(ctx, http.StatusBadRequest, "Invalid driver id", err)
	}

	group, err := s.driverOrdersHandler.Handle(ctx.Request().Context(), query)
	if errors.Is(err, errs.ErrObjectNotFound) {
		return s.fail(ctx, http.StatusNotFound, "Driver is not part of the published assignment", err)
	}
	if err != nil {
		return s.fail(ctx, http.StatusInternalServerError, "Failed to read driver orders", err)
	}
	return ctx.JSON(http.StatusOK, toDriverGroup(group))
}

// InvalidateGeocodeCache handles DELETE /api/v1/geocode-cache.
func (s *Server) InvalidateGeocodeCache(ctx echo.Context) error {
	err := s.invalidateCacheHandler.Handle(ctx.Request().Context(), commands.NewInvalidateGeocodeCacheCommand())
	if errors.Is(err, commands.ErrRunInProgress) {
		return s.fail(ctx, http.StatusConflict, "Assignment run in progress", err)
	}
	if err != nil {
		return s.fail(ctx, http.StatusInternalServerError, "Failed to invalidate geocode cache", err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (s *Server) fail(ctx echo.Context, code int, message string, err error) error {
	if code >= http.StatusInternalServerError {
		s.logger.ErrorContext(ctx.Request().Context(), message, "path", ctx.Path(), "error", err)
	}
	return ctx.JSON(code, Error{Code: code, Message: message})
}
