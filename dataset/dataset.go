package dataset

import (
	"time"

	"github.com/google/uuid"
)

// Record is a single Superstore transaction. Optional fields (ShipDate,
// ProductName, Discount) are zero-valued when the source file lacks their
// columns.
type Record struct {
	ID          uuid.UUID `json:"id"`
	OrderDate   time.Time `json:"orderDate"`
	ShipDate    time.Time `json:"shipDate,omitempty"`
	Region      string    `json:"region"`
	State       string    `json:"state"`
	Segment     string    `json:"segment"`
	Category    string    `json:"category"`
	SubCategory string    `json:"subCategory"`
	ProductName string    `json:"productName,omitempty"`
	Sales       float64   `json:"sales"`
	Profit      float64   `json:"profit"`
	Discount    float64   `json:"discount"`
	Quantity    int64     `json:"quantity"`
	// Profit/Sales, computed at load (0 when Sales is 0).
	ProfitMargin float64 `json:"profitMargin"`
}

// DimensionValue returns the record's value for a categorical dimension.
// Order Date is not a categorical dimension; it returns the date formatted as
// a day bucket, though filtering and grouping on it should go through
// DateRange and DateInterval instead.
func (record Record) DimensionValue(dimension Dimension) string {
	switch dimension {
	case DimensionRegion:
		return record.Region
	case DimensionState:
		return record.State
	case DimensionSegment:
		return record.Segment
	case DimensionCategory:
		return record.Category
	case DimensionSubCategory:
		return record.SubCategory
	case DimensionProductName:
		return record.ProductName
	case DimensionOrderDate:
		return DateIntervalDay.BucketKey(record.OrderDate)
	default:
		return ""
	}
}

// MeasureValue returns the record's value for a measure, as a float64
// regardless of the underlying column type.
func (record Record) MeasureValue(measure Measure) float64 {
	switch measure {
	case MeasureSales:
		return record.Sales
	case MeasureProfit:
		return record.Profit
	case MeasureQuantity:
		return float64(record.Quantity)
	case MeasureDiscount:
		return record.Discount
	case MeasureProfitMargin:
		return record.ProfitMargin
	default:
		return 0
	}
}

// Dataset is the full Superstore transaction table, loaded once at startup.
// It is immutable after load, and therefore safe to share between concurrent
// requests.
type Dataset struct {
	records []Record
}

func (dataset *Dataset) Len() int {
	return len(dataset.records)
}

// Record returns a copy of the record at the given index.
func (dataset *Dataset) Record(index int) Record {
	return dataset.records[index]
}

// All returns a view spanning the entire dataset, equivalent to filtering
// with an empty selection.
func (dataset *Dataset) All() *FilteredView {
	indices := make([]int, len(dataset.records))
	for i := range indices {
		indices[i] = i
	}
	return &FilteredView{dataset: dataset, indices: indices}
}

// FilteredView is the subsequence of a Dataset's records matching a filter
// selection. It holds indices into the dataset rather than copied records, so
// views are cheap to create on every request.
type FilteredView struct {
	dataset *Dataset
	indices []int
}

func (view *FilteredView) Len() int {
	return len(view.indices)
}

// Record returns a copy of the view's record at the given index.
func (view *FilteredView) Record(index int) Record {
	return view.dataset.records[view.indices[index]]
}

// Page copies out a slice of the view's records for paginated listings.
// Offsets past the end yield an empty slice.
func (view *FilteredView) Page(limit int, offset int) []Record {
	if offset < 0 || offset >= len(view.indices) {
		return []Record{}
	}

	end := len(view.indices)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}

	records := make([]Record, 0, end-offset)
	for _, index := range view.indices[offset:end] {
		records = append(records, view.dataset.records[index])
	}
	return records
}

// DimensionValues returns the distinct values of a dimension across the view,
// in first-seen order. The view layer uses this to populate filter dropdowns.
func (view *FilteredView) DimensionValues(dimension Dimension) []string {
	seen := make(map[string]bool)
	var values []string

	for _, index := range view.indices {
		value := view.dataset.records[index].DimensionValue(dimension)
		if value != "" && !seen[value] {
			seen[value] = true
			values = append(values, value)
		}
	}

	return values
}
