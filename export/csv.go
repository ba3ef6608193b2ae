// Package export serializes filtered records and aggregate results to
// downloadable CSV and Excel files. It is a pure sink: nothing here computes
// or mutates data.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"hermannm.dev/superstore/dataset"
	"hermannm.dev/wrap"
)

// recordColumns is the header written for record exports, matching the
// source dataset's column names so that exported files can be loaded again.
var recordColumns = []string{
	dataset.ColumnOrderDate,
	dataset.ColumnShipDate,
	dataset.ColumnRegion,
	dataset.ColumnState,
	dataset.ColumnSegment,
	dataset.ColumnCategory,
	dataset.ColumnSubCategory,
	dataset.ColumnProductName,
	dataset.ColumnSales,
	dataset.ColumnProfit,
	dataset.ColumnDiscount,
	dataset.ColumnQuantity,
}

// RecordsCSV writes the view's records as CSV, with a header row. Returns
// dataset.ErrEmptyResult when the view has no records.
func RecordsCSV(writer io.Writer, view *dataset.FilteredView) error {
	if view.Len() == 0 {
		return dataset.ErrEmptyResult
	}

	csvWriter := csv.NewWriter(writer)

	if err := csvWriter.Write(recordColumns); err != nil {
		return wrap.Error(err, "failed to write CSV header row")
	}

	for i := 0; i < view.Len(); i++ {
		record := view.Record(i)

		shipDate := ""
		if !record.ShipDate.IsZero() {
			shipDate = record.ShipDate.Format("2006-01-02")
		}

		row := []string{
			record.OrderDate.Format("2006-01-02"),
			shipDate,
			record.Region,
			record.State,
			record.Segment,
			record.Category,
			record.SubCategory,
			record.ProductName,
			formatMeasure(record.Sales),
			formatMeasure(record.Profit),
			formatMeasure(record.Discount),
			strconv.FormatInt(record.Quantity, 10),
		}

		if err := csvWriter.Write(row); err != nil {
			return wrap.Errorf(err, "failed to write CSV row for record %d", i)
		}
	}

	csvWriter.Flush()
	return csvWriter.Error()
}

// AggregateCSV writes an aggregate result as CSV: one column per group-by
// dimension, one per aggregation, and a trailing record count column.
// Returns dataset.ErrEmptyResult when the result has no groups.
func AggregateCSV(writer io.Writer, result dataset.AggregateResult) error {
	if len(result.Groups) == 0 {
		return dataset.ErrEmptyResult
	}

	csvWriter := csv.NewWriter(writer)

	if err := csvWriter.Write(aggregateColumns(result)); err != nil {
		return wrap.Error(err, "failed to write CSV header row")
	}

	for _, group := range result.Groups {
		row := make([]string, 0, len(group.Key)+len(group.Values)+1)
		row = append(row, group.Key...)
		for _, value := range group.Values {
			row = append(row, formatMeasure(value))
		}
		row = append(row, strconv.Itoa(group.Count))

		if err := csvWriter.Write(row); err != nil {
			return wrap.Error(err, "failed to write CSV row for aggregate group")
		}
	}

	csvWriter.Flush()
	return csvWriter.Error()
}

func aggregateColumns(result dataset.AggregateResult) []string {
	columns := make([]string, 0, len(result.GroupBy)+len(result.Aggregations)+1)
	for _, dimension := range result.GroupBy {
		columns = append(columns, dimension.String())
	}
	for _, aggregation := range result.Aggregations {
		columns = append(columns, aggregationLabel(aggregation))
	}
	return append(columns, "Records")
}

func aggregationLabel(aggregation dataset.Aggregation) string {
	if aggregation.Kind == dataset.AggregationCount {
		return aggregation.Kind.String()
	}
	return fmt.Sprintf("%s(%s)", aggregation.Kind, aggregation.Measure)
}

func formatMeasure(value float64) string {
	return strconv.FormatFloat(value, 'f', -1, 64)
}
