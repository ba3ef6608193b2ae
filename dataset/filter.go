package dataset

import (
	"time"

	"hermannm.dev/wrap"
)

// Selection is the user's current filter choices: for each dimension, the set
// of allowed values, plus an optional Order Date range. A dimension with no
// entry (or an empty value list) is unrestricted.
//
// Dimension keys are column names, e.g. "Region" or "Sub-Category".
type Selection struct {
	Dimensions map[string][]string `json:"dimensions,omitempty"`
	OrderDates *DateRange          `json:"orderDates,omitempty"`
}

// DateRange is an inclusive Order Date restriction. A zero From or To leaves
// that end unbounded.
type DateRange struct {
	From time.Time `json:"from,omitempty"`
	To   time.Time `json:"to,omitempty"`
}

func (dateRange DateRange) contains(date time.Time) bool {
	if !dateRange.From.IsZero() && date.Before(dateRange.From) {
		return false
	}
	if !dateRange.To.IsZero() && date.After(dateRange.To) {
		return false
	}
	return true
}

// IsEmpty reports whether the selection restricts nothing, i.e. filtering
// with it returns the full dataset.
func (selection Selection) IsEmpty() bool {
	if selection.OrderDates != nil {
		if !selection.OrderDates.From.IsZero() || !selection.OrderDates.To.IsZero() {
			return false
		}
	}
	for _, values := range selection.Dimensions {
		if len(values) > 0 {
			return false
		}
	}
	return true
}

// dimensionPredicate matches records whose dimension value is in the allowed
// set (OR within the dimension).
type dimensionPredicate struct {
	dimension Dimension
	allowed   map[string]bool
}

func (selection Selection) predicates() ([]dimensionPredicate, error) {
	var predicates []dimensionPredicate

	for name, values := range selection.Dimensions {
		dimension, err := DimensionFromName(name)
		if err != nil {
			return nil, wrap.Error(err, "invalid filter selection")
		}
		if len(values) == 0 {
			continue
		}

		allowed := make(map[string]bool, len(values))
		for _, value := range values {
			allowed[value] = true
		}
		predicates = append(predicates, dimensionPredicate{dimension: dimension, allowed: allowed})
	}

	return predicates, nil
}

// Filter returns the view of records matching the selection: a record is
// included if every restricted dimension allows its value (AND across
// dimensions), and its Order Date falls in the selected range. Filtering
// never mutates the dataset, and filtering twice with the same selection
// yields the same view.
func (dataset *Dataset) Filter(selection Selection) (*FilteredView, error) {
	predicates, err := selection.predicates()
	if err != nil {
		return nil, err
	}

	var dateRange *DateRange
	if selection.OrderDates != nil {
		dateRange = selection.OrderDates
	}

	view := &FilteredView{dataset: dataset}

	for i, record := range dataset.records {
		if dateRange != nil && !dateRange.contains(record.OrderDate) {
			continue
		}

		matches := true
		for _, predicate := range predicates {
			if !predicate.allowed[record.DimensionValue(predicate.dimension)] {
				matches = false
				break
			}
		}

		if matches {
			view.indices = append(view.indices, i)
		}
	}

	return view, nil
}
