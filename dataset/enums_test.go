package dataset

import (
	"encoding/json"
	"testing"
)

func TestDimensionNames(t *testing.T) {
	for _, dimension := range Dimensions() {
		if !dimension.IsValid() {
			t.Errorf("expected listed dimension %d to be valid", dimension)
		}

		roundTripped, err := DimensionFromName(dimension.String())
		if err != nil {
			t.Errorf("failed to look up dimension by its own name: %v", err)
		}
		if roundTripped != dimension {
			t.Errorf("expected dimension '%s' to round-trip through its name", dimension)
		}
	}

	if Dimension(0).IsValid() || Dimension(100).IsValid() {
		t.Error("expected out-of-range dimension values to be invalid")
	}
}

func TestMeasureNames(t *testing.T) {
	measures := []Measure{
		MeasureSales, MeasureProfit, MeasureQuantity, MeasureDiscount, MeasureProfitMargin,
	}
	for _, measure := range measures {
		if !measure.IsValid() {
			t.Errorf("expected measure %d to be valid", measure)
		}

		roundTripped, err := MeasureFromName(measure.String())
		if err != nil {
			t.Errorf("failed to look up measure by its own name: %v", err)
		}
		if roundTripped != measure {
			t.Errorf("expected measure '%s' to round-trip through its name", measure)
		}
	}

	if Measure(0).IsValid() || Measure(100).IsValid() {
		t.Error("expected out-of-range measure values to be invalid")
	}
}

func TestEnumJSONMarshalling(t *testing.T) {
	marshalled, err := json.Marshal(AggregationSum)
	if err != nil {
		t.Fatalf("failed to marshal aggregation kind: %v", err)
	}
	if string(marshalled) != `"SUM"` {
		t.Errorf(`expected "SUM", got %s`, marshalled)
	}

	var kind AggregationKind
	if err := json.Unmarshal([]byte(`"AVERAGE"`), &kind); err != nil {
		t.Fatalf("failed to unmarshal aggregation kind: %v", err)
	}
	if kind != AggregationAverage {
		t.Errorf("expected AVERAGE aggregation kind, got %d", kind)
	}

	var sortOrder SortOrder
	if err := json.Unmarshal([]byte(`"DESCENDING"`), &sortOrder); err != nil {
		t.Fatalf("failed to unmarshal sort order: %v", err)
	}
	if sortOrder != SortOrderDescending {
		t.Errorf("expected descending sort order, got %d", sortOrder)
	}

	var interval DateInterval
	if err := json.Unmarshal([]byte(`"QUARTER"`), &interval); err != nil {
		t.Fatalf("failed to unmarshal date interval: %v", err)
	}
	if interval != DateIntervalQuarter {
		t.Errorf("expected quarter interval, got %d", interval)
	}
}
