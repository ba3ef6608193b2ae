package dataset

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Aggregation is one computed column of an aggregate result: an aggregation
// kind applied to a measure. COUNT ignores the measure (it counts records),
// so it may be left unset there.
type Aggregation struct {
	Kind    AggregationKind `json:"kind"`
	Measure Measure         `json:"measure,omitempty"`
}

// AggregateQuery describes an aggregate table to compute from a filtered
// view: which dimensions to group by, and which aggregations to compute per
// group.
type AggregateQuery struct {
	// Dimensions to group by. Empty gives a single grand-total group.
	GroupBy      []Dimension   `json:"groupBy"`
	Aggregations []Aggregation `json:"aggregations"`
	// Orders groups by the first aggregation's value. Unset keeps groups in
	// first-seen record order.
	SortOrder SortOrder `json:"sortOrder,omitempty"`
	// Caps the number of groups returned (after sorting). 0 returns all.
	Limit int `json:"limit,omitempty"`
	// Bucket size when grouping by Order Date. Defaults to MONTH.
	DateInterval DateInterval `json:"dateInterval,omitempty"`
}

func (query AggregateQuery) Validate() error {
	if len(query.Aggregations) == 0 {
		return errors.New("aggregate query must have at least one aggregation")
	}

	for _, aggregation := range query.Aggregations {
		if !aggregation.Kind.IsValid() {
			return fmt.Errorf("invalid aggregation kind %d", aggregation.Kind)
		}
		if aggregation.Kind != AggregationCount && !aggregation.Measure.IsValid() {
			return fmt.Errorf(
				"aggregation '%s' requires a valid measure", aggregation.Kind,
			)
		}
	}

	for _, dimension := range query.GroupBy {
		if !dimension.IsValid() {
			return fmt.Errorf("invalid group-by dimension %d", dimension)
		}
	}

	if query.Limit < 0 {
		return errors.New("aggregate query limit cannot be negative")
	}
	if query.DateInterval != 0 && !query.DateInterval.IsValid() {
		return fmt.Errorf("invalid date interval %d", query.DateInterval)
	}
	if query.SortOrder != 0 && !query.SortOrder.IsValid() {
		return fmt.Errorf("invalid sort order %d", query.SortOrder)
	}

	return nil
}

// Group is one row of an aggregate result: the group's dimension values
// (aligned with the query's GroupBy), one computed value per aggregation
// (aligned with the query's Aggregations), and the number of records in the
// group.
type Group struct {
	Key    []string  `json:"key"`
	Values []float64 `json:"values"`
	Count  int       `json:"count"`
}

// AggregateResult is the computed aggregate table. It is a pure function of
// the view and the query: it holds no reference to the dataset, and
// recomputing it on identical inputs yields an identical result.
type AggregateResult struct {
	GroupBy      []Dimension   `json:"groupBy"`
	Aggregations []Aggregation `json:"aggregations"`
	Groups       []Group       `json:"groups"`
}

// Aggregate groups the view's records by the query's dimensions and computes
// the requested aggregations per group.
//
// Groups appear in first-seen order of the underlying records (which is
// deterministic, since views preserve dataset order), unless the query sets a
// sort order. Group keys with zero matching records are omitted; an empty
// view yields a result with no groups, not an error.
func (view *FilteredView) Aggregate(query AggregateQuery) (AggregateResult, error) {
	if err := query.Validate(); err != nil {
		return AggregateResult{}, err
	}

	dateInterval := query.DateInterval
	if dateInterval == 0 {
		dateInterval = DateIntervalMonth
	}

	type accumulator struct {
		key   []string
		sums  []float64
		count int
	}

	accumulators := make(map[string]*accumulator)
	var order []string

	keyParts := make([]string, len(query.GroupBy))
	for _, index := range view.indices {
		record := view.dataset.records[index]

		for i, dimension := range query.GroupBy {
			if dimension == DimensionOrderDate {
				keyParts[i] = dateInterval.BucketKey(record.OrderDate)
			} else {
				keyParts[i] = record.DimensionValue(dimension)
			}
		}
		// \x1f (ASCII unit separator) cannot appear in dimension values, so
		// joined keys are unambiguous.
		mapKey := strings.Join(keyParts, "\x1f")

		group, ok := accumulators[mapKey]
		if !ok {
			group = &accumulator{
				key:  append([]string(nil), keyParts...),
				sums: make([]float64, len(query.Aggregations)),
			}
			accumulators[mapKey] = group
			order = append(order, mapKey)
		}

		group.count++
		for i, aggregation := range query.Aggregations {
			if aggregation.Kind != AggregationCount {
				group.sums[i] += record.MeasureValue(aggregation.Measure)
			}
		}
	}

	result := AggregateResult{
		GroupBy:      query.GroupBy,
		Aggregations: query.Aggregations,
		Groups:       make([]Group, 0, len(order)),
	}

	for _, mapKey := range order {
		group := accumulators[mapKey]

		values := make([]float64, len(query.Aggregations))
		for i, aggregation := range query.Aggregations {
			switch aggregation.Kind {
			case AggregationSum:
				values[i] = group.sums[i]
			case AggregationAverage:
				values[i] = group.sums[i] / float64(group.count)
			case AggregationCount:
				values[i] = float64(group.count)
			}
		}

		result.Groups = append(result.Groups, Group{
			Key:    group.key,
			Values: values,
			Count:  group.count,
		})
	}

	if query.SortOrder != 0 {
		// Stable, so equal values keep first-seen order and results stay
		// deterministic.
		sort.SliceStable(result.Groups, func(i, j int) bool {
			if query.SortOrder == SortOrderAscending {
				return result.Groups[i].Values[0] < result.Groups[j].Values[0]
			}
			return result.Groups[i].Values[0] > result.Groups[j].Values[0]
		})
	}

	if query.Limit > 0 && len(result.Groups) > query.Limit {
		result.Groups = result.Groups[:query.Limit]
	}

	return result, nil
}

// Totals is the dashboard's KPI block: dataset-wide sums over the current
// filter selection. An empty view gives all-zero totals.
type Totals struct {
	Records         int     `json:"records"`
	Sales           float64 `json:"sales"`
	Profit          float64 `json:"profit"`
	Quantity        int64   `json:"quantity"`
	AvgProfitMargin float64 `json:"avgProfitMargin"`
}

func (view *FilteredView) Totals() Totals {
	totals := Totals{Records: len(view.indices)}

	var marginSum float64
	for _, index := range view.indices {
		record := view.dataset.records[index]
		totals.Sales += record.Sales
		totals.Profit += record.Profit
		totals.Quantity += record.Quantity
		marginSum += record.ProfitMargin
	}

	if totals.Records > 0 {
		totals.AvgProfitMargin = marginSum / float64(totals.Records)
	}

	return totals
}
