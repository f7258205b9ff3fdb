package http

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"dispatch/internal/metrics"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	echoSwagger "github.com/swaggo/echo-swagger"
)

// RegisterRoutes mounts the API, its document, the Swagger UI and the
// Prometheus endpoint on e.
func RegisterRoutes(e *echo.Echo, s *Server) error {
	doc, err := LoadOpenAPI()
	if err != nil {
		return err
	}
	if err := registerSwagger(doc); err != nil {
		return err
	}

	e.Use(requestMetrics(s.logger))

	e.GET("/health", s.GetHealth)
	e.GET("/openapi.json", func(c echo.Context) error {
		return c.JSON(http.StatusOK, doc)
	})
	e.GET("/swagger/*", echoSwagger.WrapHandler)
	e.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{})))

	v1 := e.Group("/api/v1")
	v1.GET("/drivers", s.ListDrivers)
	v1.GET("/drivers/:driverId/orders", s.GetDriverOrders)
	v1.GET("/orders", s.ListOpenOrders)
	v1.GET("/assignments", s.GetAssignmentBoard)
	v1.POST("/assignments", s.RunAssignment)
	v1.DELETE("/assignments", s.ClearAssignments)
	v1.GET("/assignments/csv", s.GetAssignmentsCSV)
	v1.POST("/assignments/export", s.ExportAssignments)
	v1.DELETE("/geocode-cache", s.InvalidateGeocodeCache)

	return nil
}

// requestMetrics counts and times every request by its route template, and
// logs it at debug level.
func requestMetrics(logger *slog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			if err != nil {
				c.Error(err)
			}

			route := c.Path()
			if route == "" {
				route = "unmatched"
			}
			status := strconv.Itoa(c.Response().Status)
			elapsed := time.Since(start)

			metrics.HTTPRequests.WithLabelValues(c.Request().Method, route, status).Inc()
			metrics.HTTPDuration.WithLabelValues(c.Request().Method, route, status).Observe(elapsed.Seconds())
			logger.DebugContext(c.Request().Context(), "request",
				"method", c.Request().Method,
				"route", route,
				"status", status,
				"duration", elapsed,
			)
			return nil
		}
	}
}
