package export

import (
	"io"

	"github.com/xuri/excelize/v2"
	"hermannm.dev/superstore/dataset"
	"hermannm.dev/wrap"
)

const aggregateSheetName = "Aggregate"

// AggregateExcel writes an aggregate result as an .xlsx workbook with a
// single sheet: header row, one row per group, and a totals row summing the
// SUM and COUNT columns (averages are left blank in the totals row, since a
// sum of averages is meaningless). Returns dataset.ErrEmptyResult when the
// result has no groups.
func AggregateExcel(writer io.Writer, result dataset.AggregateResult) error {
	if len(result.Groups) == 0 {
		return dataset.ErrEmptyResult
	}

	file := excelize.NewFile()
	defer file.Close()

	if err := file.SetSheetName("Sheet1", aggregateSheetName); err != nil {
		return wrap.Error(err, "failed to name worksheet")
	}

	for column, name := range aggregateColumns(result) {
		if err := setCell(file, column+1, 1, name); err != nil {
			return err
		}
	}

	for i, group := range result.Groups {
		row := i + 2 // 1-based, after the header row
		column := 1

		for _, keyPart := range group.Key {
			if err := setCell(file, column, row, keyPart); err != nil {
				return err
			}
			column++
		}
		for _, value := range group.Values {
			if err := setCell(file, column, row, value); err != nil {
				return err
			}
			column++
		}
		if err := setCell(file, column, row, group.Count); err != nil {
			return err
		}
	}

	if err := writeTotalsRow(file, result); err != nil {
		return err
	}

	if _, err := file.WriteTo(writer); err != nil {
		return wrap.Error(err, "failed to write workbook")
	}
	return nil
}

func writeTotalsRow(file *excelize.File, result dataset.AggregateResult) error {
	row := len(result.Groups) + 2

	if len(result.GroupBy) > 0 {
		if err := setCell(file, 1, row, "Total"); err != nil {
			return err
		}
	}

	totalRecords := 0
	for _, group := range result.Groups {
		totalRecords += group.Count
	}

	for i, aggregation := range result.Aggregations {
		if aggregation.Kind == dataset.AggregationAverage {
			continue
		}

		var total float64
		for _, group := range result.Groups {
			total += group.Values[i]
		}

		column := len(result.GroupBy) + i + 1
		if err := setCell(file, column, row, total); err != nil {
			return err
		}
	}

	recordsColumn := len(result.GroupBy) + len(result.Aggregations) + 1
	return setCell(file, recordsColumn, row, totalRecords)
}

func setCell(file *excelize.File, column int, row int, value any) error {
	cell, err := excelize.CoordinatesToCellName(column, row)
	if err != nil {
		return wrap.Error(err, "failed to compute cell coordinates")
	}
	if err := file.SetCellValue(aggregateSheetName, cell, value); err != nil {
		return wrap.Errorf(err, "failed to set cell %s", cell)
	}
	return nil
}
