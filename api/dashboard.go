package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"hermannm.dev/superstore/dataset"
	"hermannm.dev/wrap"
)

// Returns:
//   - JSON-encoded dataset.Totals for the filter selection given in query
//     params (see selectionFromQueryParams)
func (api *DashboardAPI) Summary(c echo.Context) error {
	view, err := api.filteredViewFromQueryParams(c)
	if err != nil {
		return sendClientError(c, err, "")
	}

	return c.JSON(http.StatusOK, view.Totals())
}

// AggregateRequest is the body of POST /api/aggregate and the aggregate
// export endpoints.
type AggregateRequest struct {
	Selection dataset.Selection      `json:"selection"`
	Query     dataset.AggregateQuery `json:"query"`
}

// AggregateResponse carries the computed aggregate table. Message is set when
// the selection matched zero records, so the view layer can show "no data"
// instead of an empty chart.
type AggregateResponse struct {
	Result  dataset.AggregateResult `json:"result"`
	Message string                  `json:"message,omitempty"`
}

// Expects:
//   - body: JSON-encoded AggregateRequest
//
// Returns:
//   - JSON-encoded AggregateResponse
func (api *DashboardAPI) Aggregate(c echo.Context) error {
	var request AggregateRequest
	if err := c.Bind(&request); err != nil {
		return sendClientError(c, err, "failed to parse aggregate request body")
	}

	view, err := api.dataset.Filter(request.Selection)
	if err != nil {
		return sendClientError(c, err, "")
	}

	result, err := view.Aggregate(request.Query)
	if err != nil {
		return sendClientError(c, err, "invalid aggregate query")
	}

	response := AggregateResponse{Result: result}
	if len(result.Groups) == 0 {
		response.Message = dataset.ErrEmptyResult.Error()
	}

	return c.JSON(http.StatusOK, response)
}

// Returns:
//   - JSON-encoded list of filterable dimension names
func (api *DashboardAPI) Dimensions(c echo.Context) error {
	return c.JSON(http.StatusOK, dataset.Dimensions())
}

// Expects:
//   - path parameter 'dimension': dimension name, e.g. 'Region'
//
// Returns:
//   - JSON-encoded list of the dimension's distinct values, for populating
//     filter dropdowns
func (api *DashboardAPI) DimensionValues(c echo.Context) error {
	dimension, err := dataset.DimensionFromName(c.Param("dimension"))
	if err != nil {
		return sendClientError(c, err, "")
	}

	values := api.dataset.All().DimensionValues(dimension)
	return c.JSON(http.StatusOK, values)
}

// RecordsResponse is a page of filtered records.
type RecordsResponse struct {
	Data   []dataset.Record `json:"data"`
	Total  int              `json:"total"`
	Limit  int              `json:"limit"`
	Offset int              `json:"offset"`
}

const defaultRecordsPageLimit = 100

// Expects:
//   - filter selection query params (see selectionFromQueryParams)
//   - optional 'limit'/'offset' query params for pagination
//
// Returns:
//   - JSON-encoded RecordsResponse
func (api *DashboardAPI) Records(c echo.Context) error {
	view, err := api.filteredViewFromQueryParams(c)
	if err != nil {
		return sendClientError(c, err, "")
	}

	limit, offset := paginationParams(c, defaultRecordsPageLimit)

	return c.JSON(http.StatusOK, RecordsResponse{
		Data:   view.Page(limit, offset),
		Total:  view.Len(),
		Limit:  limit,
		Offset: offset,
	})
}

func paginationParams(c echo.Context, defaultLimit int) (limit int, offset int) {
	limit, err := strconv.Atoi(c.QueryParam("limit"))
	if err != nil || limit <= 0 {
		limit = defaultLimit
	}
	offset, err = strconv.Atoi(c.QueryParam("offset"))
	if err != nil || offset < 0 {
		offset = 0
	}
	return limit, offset
}

// Query params accepted as filter restrictions on GET endpoints, mapped to
// their dimension names. Params may repeat, e.g. ?region=West&region=East.
var queryParamDimensions = map[string]string{
	"region":      "Region",
	"state":       "State",
	"segment":     "Segment",
	"category":    "Category",
	"subCategory": "Sub-Category",
	"product":     "Product Name",
}

const dateQueryParamLayout = "2006-01-02"

func (api *DashboardAPI) filteredViewFromQueryParams(
	c echo.Context,
) (*dataset.FilteredView, error) {
	selection := dataset.Selection{}

	queryParams := c.QueryParams()
	for param, dimensionName := range queryParamDimensions {
		values := queryParams[param]
		if len(values) == 0 {
			continue
		}

		if selection.Dimensions == nil {
			selection.Dimensions = make(map[string][]string)
		}
		selection.Dimensions[dimensionName] = values
	}

	dateRange := dataset.DateRange{}
	if from := c.QueryParam("from"); from != "" {
		parsed, err := time.Parse(dateQueryParamLayout, from)
		if err != nil {
			return nil, wrap.Errorf(err, "invalid 'from' date (expected YYYY-MM-DD)")
		}
		dateRange.From = parsed
	}
	if to := c.QueryParam("to"); to != "" {
		parsed, err := time.Parse(dateQueryParamLayout, to)
		if err != nil {
			return nil, wrap.Errorf(err, "invalid 'to' date (expected YYYY-MM-DD)")
		}
		dateRange.To = parsed
	}
	if !dateRange.From.IsZero() || !dateRange.To.IsZero() {
		selection.OrderDates = &dateRange
	}

	return api.dataset.Filter(selection)
}
