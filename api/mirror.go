package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"hermannm.dev/superstore/dataset"
)

// MirrorAggregateResponse is the result of a single-dimension aggregation
// pushed down to the ClickHouse mirror.
type MirrorAggregateResponse struct {
	Dimension dataset.Dimension `json:"dimension"`
	Measure   dataset.Measure   `json:"measure"`
	Groups    []clickhouseGroup `json:"groups"`
}

type clickhouseGroup struct {
	Value string  `json:"value"`
	Sum   float64 `json:"sum"`
}

// Expects:
//   - query param 'dimension': dimension name, e.g. 'Region'
//   - query param 'measure': measure name, e.g. 'SALES'
//   - optional query param 'limit': max number of groups to return
//
// Returns:
//   - JSON-encoded MirrorAggregateResponse
//
// Fails with 503 Service Unavailable when no ClickHouse mirror is configured.
func (api *DashboardAPI) MirrorAggregate(c echo.Context) error {
	if api.mirror == nil {
		return c.JSON(http.StatusServiceUnavailable, errorResponse{
			Error: "ClickHouse mirror is not configured for this server",
		})
	}

	dimension, err := dataset.DimensionFromName(c.QueryParam("dimension"))
	if err != nil {
		return sendClientError(c, err, "")
	}

	measure, err := dataset.MeasureFromName(c.QueryParam("measure"))
	if err != nil {
		return sendClientError(c, err, "")
	}

	limit := 0
	if limitParam := c.QueryParam("limit"); limitParam != "" {
		limit, err = strconv.Atoi(limitParam)
		if err != nil || limit < 0 {
			return sendClientError(
				c, errors.New("'limit' must be a non-negative integer"), "",
			)
		}
	}

	aggregates, err := api.mirror.AggregateByDimension(
		c.Request().Context(), dimension, measure, limit,
	)
	if err != nil {
		return sendServerError(c, err, "ClickHouse aggregation failed")
	}

	groups := make([]clickhouseGroup, len(aggregates))
	for i, aggregate := range aggregates {
		groups[i] = clickhouseGroup{Value: aggregate.Value, Sum: aggregate.Sum}
	}

	return c.JSON(http.StatusOK, MirrorAggregateResponse{
		Dimension: dimension,
		Measure:   measure,
		Groups:    groups,
	})
}
