package dataset

import (
	"fmt"

	"hermannm.dev/enumnames"
)

// Measure is a numeric column of the Superstore dataset, subject to
// aggregation.
type Measure int8

const (
	MeasureSales Measure = iota + 1
	MeasureProfit
	MeasureQuantity
	MeasureDiscount
	MeasureProfitMargin
)

var measureMap = enumnames.NewMap(map[Measure]string{
	MeasureSales:        "SALES",
	MeasureProfit:       "PROFIT",
	MeasureQuantity:     "QUANTITY",
	MeasureDiscount:     "DISCOUNT",
	MeasureProfitMargin: "PROFIT_MARGIN",
})

var measuresByName = map[string]Measure{
	"SALES":         MeasureSales,
	"PROFIT":        MeasureProfit,
	"QUANTITY":      MeasureQuantity,
	"DISCOUNT":      MeasureDiscount,
	"PROFIT_MARGIN": MeasureProfitMargin,
}

func MeasureFromName(name string) (Measure, error) {
	if measure, ok := measuresByName[name]; ok {
		return measure, nil
	}
	return 0, fmt.Errorf("unrecognized measure '%s'", name)
}

func (measure Measure) IsValid() bool {
	return measureMap.ContainsKey(measure)
}

func (measure Measure) String() string {
	return measureMap.GetNameOrFallback(measure, "INVALID_MEASURE")
}

func (measure Measure) MarshalJSON() ([]byte, error) {
	return measureMap.MarshalToNameJSON(measure)
}

func (measure *Measure) UnmarshalJSON(bytes []byte) error {
	return measureMap.UnmarshalFromNameJSON(bytes, measure)
}
