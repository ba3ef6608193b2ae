package api

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"hermannm.dev/superstore/dataset"
	"hermannm.dev/superstore/export"
	"hermannm.dev/wrap"
)

// ExportRequest is the body of POST /api/export/csv.
type ExportRequest struct {
	Selection dataset.Selection `json:"selection"`
}

// Expects:
//   - body: JSON-encoded ExportRequest
//
// Returns:
//   - the filtered records as a CSV file attachment
func (api *DashboardAPI) ExportRecordsCSV(c echo.Context) error {
	var request ExportRequest
	if err := c.Bind(&request); err != nil {
		return sendClientError(c, err, "failed to parse export request body")
	}

	view, err := api.dataset.Filter(request.Selection)
	if err != nil {
		return sendClientError(c, err, "")
	}
	if view.Len() == 0 {
		return sendClientError(c, dataset.ErrEmptyResult, "")
	}

	setAttachmentHeaders(c, "superstore-records.csv", "text/csv")
	c.Response().WriteHeader(http.StatusOK)

	if err := export.RecordsCSV(c.Response(), view); err != nil {
		return sendServerError(c, err, "failed to export records as CSV")
	}

	return nil
}

// Expects:
//   - body: JSON-encoded AggregateRequest
//
// Returns:
//   - the aggregate table as a CSV file attachment
func (api *DashboardAPI) ExportAggregateCSV(c echo.Context) error {
	result, err := api.aggregateForExport(c)
	if err != nil {
		return sendClientError(c, err, "")
	}

	setAttachmentHeaders(c, "superstore-aggregate.csv", "text/csv")
	c.Response().WriteHeader(http.StatusOK)

	if err := export.AggregateCSV(c.Response(), result); err != nil {
		return sendServerError(c, err, "failed to export aggregate as CSV")
	}

	return nil
}

// Expects:
//   - body: JSON-encoded AggregateRequest
//
// Returns:
//   - the aggregate table as an Excel file attachment
func (api *DashboardAPI) ExportAggregateExcel(c echo.Context) error {
	result, err := api.aggregateForExport(c)
	if err != nil {
		return sendClientError(c, err, "")
	}

	setAttachmentHeaders(
		c,
		"superstore-aggregate.xlsx",
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
	)
	c.Response().WriteHeader(http.StatusOK)

	if err := export.AggregateExcel(c.Response(), result); err != nil {
		return sendServerError(c, err, "failed to export aggregate as Excel file")
	}

	return nil
}

// aggregateForExport runs the filter and aggregation for an export request.
// Empty results come back as dataset.ErrEmptyResult: an empty attachment helps
// nobody, so the handlers report "no data" to the client instead.
func (api *DashboardAPI) aggregateForExport(
	c echo.Context,
) (dataset.AggregateResult, error) {
	var request AggregateRequest
	if err := c.Bind(&request); err != nil {
		return dataset.AggregateResult{}, wrap.Error(err, "failed to parse export request body")
	}

	view, err := api.dataset.Filter(request.Selection)
	if err != nil {
		return dataset.AggregateResult{}, err
	}

	result, err := view.Aggregate(request.Query)
	if err != nil {
		return dataset.AggregateResult{}, wrap.Error(err, "invalid aggregate query")
	}
	if len(result.Groups) == 0 {
		return dataset.AggregateResult{}, dataset.ErrEmptyResult
	}

	return result, nil
}

func setAttachmentHeaders(c echo.Context, filename string, contentType string) {
	header := c.Response().Header()
	header.Set(echo.HeaderContentType, contentType)
	header.Set(
		echo.HeaderContentDisposition,
		fmt.Sprintf(`attachment; filename="%s"`, filename),
	)
}
