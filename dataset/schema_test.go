package dataset

import (
	"errors"
	"testing"
	"time"
)

// rowSource is an in-memory DataSource for tests, serving rows from a slice.
type rowSource struct {
	rows       [][]string
	currentRow int
}

func (source *rowSource) ReadRow() (row []string, rowNumber int, done bool, err error) {
	if source.currentRow >= len(source.rows) {
		return nil, 0, true, nil
	}

	row = source.rows[source.currentRow]
	source.currentRow++
	return row, source.currentRow, false, nil
}

var testHeader = []string{
	"Order Date", "Ship Date", "Region", "State", "Segment", "Category",
	"Sub-Category", "Product Name", "Sales", "Profit", "Discount", "Quantity",
}

func TestLoad(t *testing.T) {
	source := &rowSource{rows: [][]string{
		testHeader,
		{
			"11/8/2016", "11/11/2016", "South", "Kentucky", "Consumer",
			"Furniture", "Bookcases", "Bush Somerset Collection Bookcase",
			"261.96", "41.9136", "0", "2",
		},
		{
			"2017-06-12", "", "West", "California", "Corporate",
			"Office Supplies", "Labels", "Avery 508",
			"14.62", "6.8714", "0.2", "3",
		},
	}}

	data, report, err := Load(source)
	if err != nil {
		t.Fatalf("expected load to succeed, got error: %v", err)
	}
	if data.Len() != 2 {
		t.Fatalf("expected 2 records, got %d", data.Len())
	}
	if report.TotalRows != 2 || len(report.Dropped) != 0 {
		t.Errorf("unexpected load report: %+v", report)
	}

	record := data.Record(0)
	if record.Region != "South" || record.State != "Kentucky" {
		t.Errorf("unexpected dimension values in record: %+v", record)
	}
	if record.Sales != 261.96 || record.Profit != 41.9136 || record.Quantity != 2 {
		t.Errorf("unexpected measure values in record: %+v", record)
	}
	wantDate := time.Date(2016, time.November, 8, 0, 0, 0, 0, time.UTC)
	if !record.OrderDate.Equal(wantDate) {
		t.Errorf("expected order date %v, got %v", wantDate, record.OrderDate)
	}
	// Computed via float64 variables so the division uses IEEE 754 arithmetic,
	// matching the code under test; as an untyped constant expression, Go would
	// evaluate it at arbitrary precision, giving a result one ulp off.
	profit, sales := 41.9136, 261.96
	wantMargin := profit / sales
	if record.ProfitMargin != wantMargin {
		t.Errorf("expected profit margin %f, got %f", wantMargin, record.ProfitMargin)
	}
	if record.ID == data.Record(1).ID {
		t.Error("expected records to get distinct IDs")
	}

	// Second record uses the ISO date layout, and leaves Ship Date blank.
	record = data.Record(1)
	wantDate = time.Date(2017, time.June, 12, 0, 0, 0, 0, time.UTC)
	if !record.OrderDate.Equal(wantDate) {
		t.Errorf("expected order date %v, got %v", wantDate, record.OrderDate)
	}
	if !record.ShipDate.IsZero() {
		t.Errorf("expected zero ship date for blank value, got %v", record.ShipDate)
	}
}

func TestLoadWithoutOptionalColumns(t *testing.T) {
	source := &rowSource{rows: [][]string{
		{"Order Date", "Region", "State", "Segment", "Category", "Sub-Category", "Sales", "Profit", "Quantity"},
		{"1/2/2015", "East", "New York", "Consumer", "Technology", "Phones", "100", "20", "1"},
	}}

	data, _, err := Load(source)
	if err != nil {
		t.Fatalf("expected load to succeed, got error: %v", err)
	}

	record := data.Record(0)
	if record.ProductName != "" || record.Discount != 0 || !record.ShipDate.IsZero() {
		t.Errorf("expected zero values for absent optional columns, got %+v", record)
	}
}

func TestLoadMissingRequiredColumn(t *testing.T) {
	source := &rowSource{rows: [][]string{
		{"Order Date", "Region", "State", "Segment", "Category", "Sub-Category", "Sales", "Profit"},
	}}

	_, _, err := Load(source)

	var formatErr DataFormatError
	if !errors.As(err, &formatErr) {
		t.Fatalf("expected DataFormatError for missing Quantity column, got: %v", err)
	}
}

func TestLoadEmptySource(t *testing.T) {
	if _, _, err := Load(&rowSource{}); err == nil {
		t.Fatal("expected error when loading empty source")
	}
}

// A row with a non-finite measure value must be dropped from the dataset, not
// counted into aggregates.
func TestLoadDropsMalformedRows(t *testing.T) {
	source := &rowSource{rows: [][]string{
		{"Order Date", "Region", "State", "Segment", "Category", "Sub-Category", "Sales", "Profit", "Quantity"},
		{"1/1/2017", "East", "New York", "Consumer", "Technology", "Phones", "10", "1", "1"},
		{"1/2/2017", "East", "New York", "Consumer", "Technology", "Phones", "20", "2", "1"},
		{"1/3/2017", "West", "California", "Consumer", "Technology", "Phones", "30", "3", "1"},
		{"1/4/2017", "West", "California", "Consumer", "Technology", "Phones", "40", "4", "1"},
		{"1/5/2017", "East", "New York", "Consumer", "Technology", "Phones", "NaN", "5", "1"},
	}}

	data, report, err := Load(source)
	if err != nil {
		t.Fatalf("expected load to succeed, got error: %v", err)
	}

	if data.Len() != 4 {
		t.Fatalf("expected 4 records after dropping malformed row, got %d", data.Len())
	}
	if report.TotalRows != 5 || len(report.Dropped) != 1 {
		t.Fatalf("unexpected load report: %+v", report)
	}

	dropped := report.Dropped[0]
	if dropped.Row != 6 || dropped.Column != ColumnSales {
		t.Errorf("unexpected dropped row details: %+v", dropped)
	}

	result, err := data.All().Aggregate(AggregateQuery{
		GroupBy:      []Dimension{DimensionRegion},
		Aggregations: []Aggregation{{Kind: AggregationSum, Measure: MeasureSales}},
	})
	if err != nil {
		t.Fatalf("aggregate failed: %v", err)
	}

	sums := make(map[string]float64)
	for _, group := range result.Groups {
		sums[group.Key[0]] = group.Values[0]
	}
	if sums["East"] != 30 || sums["West"] != 70 {
		t.Errorf("expected East=30, West=70 after dropping NaN row, got %v", sums)
	}
	if len(result.Groups) != 2 {
		t.Errorf("expected only East and West groups, got %+v", result.Groups)
	}
}

func TestLoadRejectsMalformedDate(t *testing.T) {
	source := &rowSource{rows: [][]string{
		{"Order Date", "Region", "State", "Segment", "Category", "Sub-Category", "Sales", "Profit", "Quantity"},
		{"not-a-date", "East", "New York", "Consumer", "Technology", "Phones", "10", "1", "1"},
	}}

	data, report, err := Load(source)
	if err != nil {
		t.Fatalf("expected load to succeed, got error: %v", err)
	}
	if data.Len() != 0 {
		t.Fatalf("expected no records, got %d", data.Len())
	}
	if len(report.Dropped) != 1 || report.Dropped[0].Column != ColumnOrderDate {
		t.Errorf("unexpected load report: %+v", report)
	}
}
