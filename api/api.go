// Package api exposes the dashboard's data layer to the view layer as an
// HTTP JSON API. Handlers are stateless: every request re-runs
// filter → aggregate over the shared read-only dataset.
package api

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"hermannm.dev/devlog/log"
	"hermannm.dev/superstore/clickhouse"
	"hermannm.dev/superstore/config"
	"hermannm.dev/superstore/dataset"
	"hermannm.dev/wrap"
)

type DashboardAPI struct {
	dataset *dataset.Dataset
	// nil when the ClickHouse mirror is not configured.
	mirror *clickhouse.Database
	echo   *echo.Echo
	config config.API
}

func NewDashboardAPI(
	data *dataset.Dataset,
	mirror *clickhouse.Database,
	conf config.API,
) *DashboardAPI {
	api := &DashboardAPI{dataset: data, mirror: mirror, echo: echo.New(), config: conf}
	api.echo.HideBanner = true

	api.registerRoutes(api.echo)
	return api
}

func (api *DashboardAPI) registerRoutes(echoServer *echo.Echo) {
	routes := echoServer.Group("/api")

	routes.GET("/summary", api.Summary)
	routes.POST("/aggregate", api.Aggregate)
	routes.GET("/dimensions", api.Dimensions)
	routes.GET("/dimensions/:dimension/values", api.DimensionValues)
	routes.GET("/records", api.Records)
	routes.POST("/export/csv", api.ExportRecordsCSV)
	routes.POST("/export/aggregate/csv", api.ExportAggregateCSV)
	routes.POST("/export/aggregate/excel", api.ExportAggregateExcel)
	routes.GET("/mirror/aggregate", api.MirrorAggregate)
}

func (api *DashboardAPI) ListenAndServe() error {
	return api.echo.Start(fmt.Sprintf(":%s", api.config.Port))
}

type errorResponse struct {
	Error string `json:"error"`
}

func sendClientError(c echo.Context, err error, message string) error {
	if err != nil {
		if message == "" {
			message = err.Error()
		} else {
			message = wrap.Error(err, message).Error()
		}
	}

	return c.JSON(http.StatusBadRequest, errorResponse{Error: message})
}

func sendServerError(c echo.Context, err error, message string) error {
	log.ErrorCause(err, message)

	if err != nil {
		if message == "" {
			message = err.Error()
		} else {
			message = wrap.Error(err, message).Error()
		}
	}

	return c.JSON(http.StatusInternalServerError, errorResponse{Error: message})
}
