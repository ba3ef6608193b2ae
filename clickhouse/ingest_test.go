package clickhouse

import (
	"testing"
	"time"
)

func TestNullableDate(t *testing.T) {
	// Blank optional dates in the source file load as Go's zero time, which
	// falls outside DateTime64's range, so it must be inserted as NULL.
	if value := nullableDate(time.Time{}); value != nil {
		t.Errorf("expected nil for zero time, got %v", value)
	}

	date := time.Date(2016, time.November, 11, 0, 0, 0, 0, time.UTC)
	if value := nullableDate(date); value != date {
		t.Errorf("expected date to pass through unchanged, got %v", value)
	}
}

func TestOptionalTableColumns(t *testing.T) {
	for _, column := range tableColumns {
		optional := column.name == "ship_date"
		if column.optional != optional {
			t.Errorf(
				"expected optional=%t for column '%s', got %t",
				optional,
				column.name,
				column.optional,
			)
		}
	}
}
