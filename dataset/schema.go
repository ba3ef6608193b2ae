package dataset

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"hermannm.dev/wrap"
)

// Column names expected in the source file. Matching is by exact name (after
// trimming surrounding whitespace), not by position, so extra columns in the
// file are ignored.
const (
	ColumnOrderDate   = "Order Date"
	ColumnShipDate    = "Ship Date"
	ColumnRegion      = "Region"
	ColumnState       = "State"
	ColumnSegment     = "Segment"
	ColumnCategory    = "Category"
	ColumnSubCategory = "Sub-Category"
	ColumnProductName = "Product Name"
	ColumnSales       = "Sales"
	ColumnProfit      = "Profit"
	ColumnDiscount    = "Discount"
	ColumnQuantity    = "Quantity"
)

var requiredColumns = []string{
	ColumnOrderDate,
	ColumnRegion,
	ColumnState,
	ColumnSegment,
	ColumnCategory,
	ColumnSubCategory,
	ColumnSales,
	ColumnProfit,
	ColumnQuantity,
}

// DataSource is a row source for Load, such as a csv.Reader. The first row
// returned must be the header row.
type DataSource interface {
	ReadRow() (row []string, rowNumber int, done bool, err error)
}

// LoadReport summarizes what Load did with the source rows. Rows whose values
// could not be coerced are dropped from the dataset and reported here.
type LoadReport struct {
	// Data rows in the source, excluding the header row.
	TotalRows int
	Dropped   []DataFormatError
}

// Load reads all rows from the given source into an immutable Dataset.
//
// It fails with a DataFormatError if the header row is missing any required
// column. Rows with malformed values are dropped and reported in the
// LoadReport rather than failing the whole load, so one bad row does not take
// the dashboard down.
func Load(data DataSource) (*Dataset, *LoadReport, error) {
	header, _, done, err := data.ReadRow()
	if done {
		return nil, nil, DataFormatError{Cause: errors.New("dataset is empty")}
	}
	if err != nil {
		return nil, nil, wrap.Error(err, "failed to read dataset header row")
	}

	columns, err := resolveColumns(header)
	if err != nil {
		return nil, nil, err
	}

	dataset := &Dataset{}
	report := &LoadReport{}

	for {
		row, rowNumber, done, err := data.ReadRow()
		if done {
			break
		}
		if err != nil {
			return nil, nil, wrap.Errorf(err, "failed to read dataset row %d", rowNumber)
		}

		report.TotalRows++

		record, err := columns.parseRecord(row, rowNumber)
		if err != nil {
			var formatErr DataFormatError
			if errors.As(err, &formatErr) {
				report.Dropped = append(report.Dropped, formatErr)
				continue
			}
			return nil, nil, err
		}

		dataset.records = append(dataset.records, record)
	}

	return dataset, report, nil
}

// columnIndices maps each known column to its position in the source file.
// -1 means the column is absent (only allowed for optional columns).
type columnIndices struct {
	orderDate   int
	shipDate    int
	region      int
	state       int
	segment     int
	category    int
	subCategory int
	productName int
	sales       int
	profit      int
	discount    int
	quantity    int
}

func resolveColumns(header []string) (columnIndices, error) {
	positions := make(map[string]int, len(header))
	for i, name := range header {
		positions[strings.TrimSpace(name)] = i
	}

	var missing []error
	for _, name := range requiredColumns {
		if _, ok := positions[name]; !ok {
			missing = append(missing, fmt.Errorf("missing required column '%s'", name))
		}
	}
	if len(missing) != 0 {
		return columnIndices{}, DataFormatError{
			Cause: wrap.Errors("dataset header does not match the Superstore format", missing...),
		}
	}

	position := func(name string) int {
		if index, ok := positions[name]; ok {
			return index
		}
		return -1
	}

	return columnIndices{
		orderDate:   position(ColumnOrderDate),
		shipDate:    position(ColumnShipDate),
		region:      position(ColumnRegion),
		state:       position(ColumnState),
		segment:     position(ColumnSegment),
		category:    position(ColumnCategory),
		subCategory: position(ColumnSubCategory),
		productName: position(ColumnProductName),
		sales:       position(ColumnSales),
		profit:      position(ColumnProfit),
		discount:    position(ColumnDiscount),
		quantity:    position(ColumnQuantity),
	}, nil
}

func (columns columnIndices) parseRecord(row []string, rowNumber int) (Record, error) {
	field := func(index int) string {
		if index < 0 || index >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[index])
	}

	record := Record{
		ID:          uuid.New(),
		Region:      field(columns.region),
		State:       field(columns.state),
		Segment:     field(columns.segment),
		Category:    field(columns.category),
		SubCategory: field(columns.subCategory),
		ProductName: field(columns.productName),
	}

	var err error
	if record.OrderDate, err = parseDate(field(columns.orderDate)); err != nil {
		return Record{}, DataFormatError{Row: rowNumber, Column: ColumnOrderDate, Cause: err}
	}
	if record.Sales, err = parseMeasure(field(columns.sales)); err != nil {
		return Record{}, DataFormatError{Row: rowNumber, Column: ColumnSales, Cause: err}
	}
	if record.Profit, err = parseMeasure(field(columns.profit)); err != nil {
		return Record{}, DataFormatError{Row: rowNumber, Column: ColumnProfit, Cause: err}
	}
	if record.Quantity, err = strconv.ParseInt(field(columns.quantity), 10, 64); err != nil {
		return Record{}, DataFormatError{Row: rowNumber, Column: ColumnQuantity, Cause: err}
	}

	// Optional columns: blank values are allowed, malformed ones are not.
	if shipDate := field(columns.shipDate); shipDate != "" {
		if record.ShipDate, err = parseDate(shipDate); err != nil {
			return Record{}, DataFormatError{Row: rowNumber, Column: ColumnShipDate, Cause: err}
		}
	}
	if discount := field(columns.discount); discount != "" {
		if record.Discount, err = parseMeasure(discount); err != nil {
			return Record{}, DataFormatError{Row: rowNumber, Column: ColumnDiscount, Cause: err}
		}
	}

	if record.Sales != 0 {
		record.ProfitMargin = record.Profit / record.Sales
	}

	return record, nil
}

// Layouts accepted for date columns. The Superstore dataset itself uses
// M/D/YYYY, with and without zero padding.
var dateLayouts = []string{"1/2/2006", "2006-01-02", time.RFC3339}

func parseDate(value string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if date, err := time.Parse(layout, value); err == nil {
			return date, nil
		}
	}
	return time.Time{}, fmt.Errorf("failed to parse '%s' as a date", value)
}

// parseMeasure parses a numeric measure value. NaN and infinities parse as
// valid floats, but are meaningless as measures, so they are rejected here
// (they would otherwise poison every aggregate sum they touch).
func parseMeasure(value string) (float64, error) {
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(parsed) || math.IsInf(parsed, 0) {
		return 0, fmt.Errorf("non-finite measure value '%s'", value)
	}
	return parsed, nil
}
