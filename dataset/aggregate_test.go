package dataset

import (
	"reflect"
	"testing"
)

func TestAggregateSumByRegion(t *testing.T) {
	data := newTestDataset()

	result, err := data.All().Aggregate(AggregateQuery{
		GroupBy: []Dimension{DimensionRegion},
		Aggregations: []Aggregation{
			{Kind: AggregationSum, Measure: MeasureSales},
			{Kind: AggregationSum, Measure: MeasureProfit},
		},
	})
	if err != nil {
		t.Fatalf("aggregate failed: %v", err)
	}

	// Groups appear in first-seen record order.
	wantGroups := []Group{
		{Key: []string{"East"}, Values: []float64{300, 50}, Count: 2},
		{Key: []string{"West"}, Values: []float64{700, 110}, Count: 2},
		{Key: []string{"South"}, Values: []float64{500, 50}, Count: 1},
	}
	if !reflect.DeepEqual(result.Groups, wantGroups) {
		t.Errorf("unexpected groups:\ngot  %+v\nwant %+v", result.Groups, wantGroups)
	}

	// Group sums must add up to the unfiltered totals.
	var salesSum float64
	for _, group := range result.Groups {
		salesSum += group.Values[0]
	}
	if totals := data.All().Totals(); salesSum != totals.Sales {
		t.Errorf("group sums add up to %f, expected total %f", salesSum, totals.Sales)
	}
}

func TestAggregateIsDeterministic(t *testing.T) {
	data := newTestDataset()
	query := AggregateQuery{
		GroupBy: []Dimension{DimensionRegion, DimensionCategory},
		Aggregations: []Aggregation{
			{Kind: AggregationSum, Measure: MeasureSales},
			{Kind: AggregationAverage, Measure: MeasureProfit},
			{Kind: AggregationCount},
		},
	}

	first, err := data.All().Aggregate(query)
	if err != nil {
		t.Fatalf("aggregate failed: %v", err)
	}

	for i := 0; i < 10; i++ {
		next, err := data.All().Aggregate(query)
		if err != nil {
			t.Fatalf("aggregate failed: %v", err)
		}
		if !reflect.DeepEqual(first, next) {
			t.Fatalf(
				"expected identical results from identical queries:\nfirst %+v\nnext  %+v",
				first,
				next,
			)
		}
	}
}

func TestAggregateAverageAndCount(t *testing.T) {
	data := newTestDataset()

	result, err := data.All().Aggregate(AggregateQuery{
		GroupBy: []Dimension{DimensionRegion},
		Aggregations: []Aggregation{
			{Kind: AggregationAverage, Measure: MeasureSales},
			{Kind: AggregationCount},
		},
	})
	if err != nil {
		t.Fatalf("aggregate failed: %v", err)
	}

	east := result.Groups[0]
	if east.Key[0] != "East" || east.Values[0] != 150 || east.Values[1] != 2 {
		t.Errorf("unexpected East group: %+v", east)
	}
}

func TestAggregateSortAndLimit(t *testing.T) {
	data := newTestDataset()

	result, err := data.All().Aggregate(AggregateQuery{
		GroupBy:      []Dimension{DimensionState},
		Aggregations: []Aggregation{{Kind: AggregationSum, Measure: MeasureSales}},
		SortOrder:    SortOrderDescending,
		Limit:        2,
	})
	if err != nil {
		t.Fatalf("aggregate failed: %v", err)
	}

	if len(result.Groups) != 2 {
		t.Fatalf("expected limit to cap result at 2 groups, got %d", len(result.Groups))
	}
	if result.Groups[0].Key[0] != "Texas" || result.Groups[1].Key[0] != "Washington" {
		t.Errorf("expected top states by sales [Texas, Washington], got %+v", result.Groups)
	}
}

func TestAggregateByMonth(t *testing.T) {
	data := newTestDataset()

	result, err := data.All().Aggregate(AggregateQuery{
		GroupBy:      []Dimension{DimensionOrderDate},
		Aggregations: []Aggregation{{Kind: AggregationSum, Measure: MeasureSales}},
	})
	if err != nil {
		t.Fatalf("aggregate failed: %v", err)
	}

	if len(result.Groups) != 5 {
		t.Fatalf("expected 5 month buckets, got %d", len(result.Groups))
	}
	// Default interval is MONTH, and bucket keys sort chronologically.
	if result.Groups[0].Key[0] != "2016-01" || result.Groups[4].Key[0] != "2017-05" {
		t.Errorf("unexpected month bucket keys: %+v", result.Groups)
	}
}

func TestAggregateByYear(t *testing.T) {
	data := newTestDataset()

	result, err := data.All().Aggregate(AggregateQuery{
		GroupBy:      []Dimension{DimensionOrderDate},
		Aggregations: []Aggregation{{Kind: AggregationSum, Measure: MeasureSales}},
		DateInterval: DateIntervalYear,
	})
	if err != nil {
		t.Fatalf("aggregate failed: %v", err)
	}

	wantGroups := []Group{
		{Key: []string{"2016"}, Values: []float64{600}, Count: 3},
		{Key: []string{"2017"}, Values: []float64{900}, Count: 2},
	}
	if !reflect.DeepEqual(result.Groups, wantGroups) {
		t.Errorf("unexpected groups:\ngot  %+v\nwant %+v", result.Groups, wantGroups)
	}
}

func TestAggregateGrandTotal(t *testing.T) {
	data := newTestDataset()

	result, err := data.All().Aggregate(AggregateQuery{
		Aggregations: []Aggregation{{Kind: AggregationSum, Measure: MeasureQuantity}},
	})
	if err != nil {
		t.Fatalf("aggregate failed: %v", err)
	}

	if len(result.Groups) != 1 {
		t.Fatalf("expected single grand-total group, got %d", len(result.Groups))
	}
	if result.Groups[0].Values[0] != 15 || result.Groups[0].Count != 5 {
		t.Errorf("unexpected grand total: %+v", result.Groups[0])
	}
}

func TestAggregateEmptyView(t *testing.T) {
	data := newTestDataset()

	view, err := data.Filter(Selection{
		Dimensions: map[string][]string{"Region": {"Central"}},
	})
	if err != nil {
		t.Fatalf("filter failed: %v", err)
	}

	result, err := view.Aggregate(AggregateQuery{
		GroupBy:      []Dimension{DimensionRegion},
		Aggregations: []Aggregation{{Kind: AggregationSum, Measure: MeasureSales}},
	})
	if err != nil {
		t.Fatalf("expected empty view to aggregate without error, got: %v", err)
	}

	if len(result.Groups) != 0 {
		t.Errorf("expected no groups for empty view, got %d", len(result.Groups))
	}
}

func TestAggregateQueryValidation(t *testing.T) {
	data := newTestDataset()

	invalidQueries := map[string]AggregateQuery{
		"no aggregations": {GroupBy: []Dimension{DimensionRegion}},
		"invalid measure": {
			Aggregations: []Aggregation{{Kind: AggregationSum, Measure: Measure(100)}},
		},
		"invalid dimension": {
			GroupBy:      []Dimension{Dimension(100)},
			Aggregations: []Aggregation{{Kind: AggregationCount}},
		},
		"negative limit": {
			Aggregations: []Aggregation{{Kind: AggregationCount}},
			Limit:        -1,
		},
	}

	for name, query := range invalidQueries {
		if _, err := data.All().Aggregate(query); err == nil {
			t.Errorf("expected query with %s to fail validation", name)
		}
	}
}

func TestTotals(t *testing.T) {
	data := newTestDataset()

	totals := data.All().Totals()
	if totals.Records != 5 || totals.Sales != 1500 || totals.Profit != 210 || totals.Quantity != 15 {
		t.Errorf("unexpected totals: %+v", totals)
	}

	view, err := data.Filter(Selection{Dimensions: map[string][]string{"Region": {"Central"}}})
	if err != nil {
		t.Fatalf("filter failed: %v", err)
	}
	if totals := view.Totals(); totals != (Totals{}) {
		t.Errorf("expected all-zero totals for empty view, got %+v", totals)
	}
}
