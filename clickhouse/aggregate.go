package clickhouse

import (
	"context"
	"fmt"
	"strconv"

	"hermannm.dev/superstore/dataset"
	"hermannm.dev/wrap"
)

// DimensionAggregate is one row of a pushed-down aggregation: a dimension
// value and the measure sum for records with that value.
type DimensionAggregate struct {
	Value string  `ch:"dimension_value" json:"value"`
	Sum   float64 `ch:"measure_sum"     json:"sum"`
}

// AggregateByDimension pushes a single-dimension SUM aggregation down to
// ClickHouse, largest sums first. Order Date is not supported here; date
// bucketing stays in the in-memory aggregator.
func (db *Database) AggregateByDimension(
	ctx context.Context,
	dimension dataset.Dimension,
	measure dataset.Measure,
	limit int,
) ([]DimensionAggregate, error) {
	dimensionColumn, err := dimensionColumnName(dimension)
	if err != nil {
		return nil, err
	}
	measureColumn, err := measureColumnName(measure)
	if err != nil {
		return nil, err
	}

	builder := newQueryBuilder()
	builder.WriteString("SELECT ")
	if err := builder.WriteIdentifier(dimensionColumn); err != nil {
		return nil, wrap.Error(err, "invalid column name for group-by clause")
	}
	builder.WriteString(" AS dimension_value, ")

	// toFloat64 keeps the result type uniform across Float64 and Int64
	// measure columns.
	builder.WriteString("SUM(toFloat64(")
	if err := builder.WriteIdentifier(measureColumn); err != nil {
		return nil, wrap.Error(err, "invalid column name for aggregation")
	}
	builder.WriteString(")) AS measure_sum FROM ")

	if err := builder.WriteIdentifier(TableName); err != nil {
		return nil, wrap.Error(err, "invalid table name")
	}

	builder.WriteString(" GROUP BY ")
	if err := builder.WriteIdentifier(dimensionColumn); err != nil {
		return nil, wrap.Error(err, "invalid column name for group-by clause")
	}

	builder.WriteString(" ORDER BY measure_sum DESC")
	if limit > 0 {
		builder.WriteString(" LIMIT ")
		builder.WriteString(strconv.Itoa(limit))
	}

	var aggregates []DimensionAggregate
	if err := db.conn.Select(ctx, &aggregates, builder.String()); err != nil {
		return nil, wrap.Error(err, "aggregation query failed")
	}

	return aggregates, nil
}

func dimensionColumnName(dimension dataset.Dimension) (string, error) {
	switch dimension {
	case dataset.DimensionRegion:
		return "region", nil
	case dataset.DimensionState:
		return "state", nil
	case dataset.DimensionSegment:
		return "segment", nil
	case dataset.DimensionCategory:
		return "category", nil
	case dataset.DimensionSubCategory:
		return "sub_category", nil
	case dataset.DimensionProductName:
		return "product_name", nil
	default:
		return "", fmt.Errorf(
			"dimension '%s' cannot be aggregated in the ClickHouse mirror", dimension,
		)
	}
}

func measureColumnName(measure dataset.Measure) (string, error) {
	switch measure {
	case dataset.MeasureSales:
		return "sales", nil
	case dataset.MeasureProfit:
		return "profit", nil
	case dataset.MeasureQuantity:
		return "quantity", nil
	case dataset.MeasureDiscount:
		return "discount", nil
	case dataset.MeasureProfitMargin:
		return "profit_margin", nil
	default:
		return "", fmt.Errorf("unrecognized measure '%s'", measure)
	}
}
