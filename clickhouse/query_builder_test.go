package clickhouse

import (
	"testing"

	"hermannm.dev/superstore/dataset"
)

func TestWriteIdentifier(t *testing.T) {
	builder := newQueryBuilder()

	if err := builder.WriteIdentifier("region"); err != nil {
		t.Fatalf("failed to write identifier: %v", err)
	}
	if query := builder.String(); query != "`region`" {
		t.Errorf("expected backtick-quoted identifier, got %s", query)
	}

	builder = newQueryBuilder()
	if err := builder.WriteIdentifier("weird`name"); err != nil {
		t.Fatalf("failed to write identifier containing backtick: %v", err)
	}
	if query := builder.String(); query != `"weird`+"`"+`name"` {
		t.Errorf("expected double-quoted identifier, got %s", query)
	}

	builder = newQueryBuilder()
	if err := builder.WriteIdentifier("weird`\"name"); err == nil {
		t.Error("expected error for identifier containing both quote characters")
	}
}

func TestDimensionColumnNames(t *testing.T) {
	for _, dimension := range dataset.Dimensions() {
		column, err := dimensionColumnName(dimension)

		if dimension == dataset.DimensionOrderDate {
			// Date bucketing stays in the in-memory aggregator.
			if err == nil {
				t.Error("expected error for Order Date dimension")
			}
			continue
		}

		if err != nil {
			t.Errorf("expected column name for dimension '%s', got error: %v", dimension, err)
		}
		if column == "" {
			t.Errorf("expected non-empty column name for dimension '%s'", dimension)
		}
	}
}
