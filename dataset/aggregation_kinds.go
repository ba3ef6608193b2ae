package dataset

import (
	"hermannm.dev/enumnames"
)

type AggregationKind int8

const (
	AggregationSum AggregationKind = iota + 1
	AggregationAverage
	AggregationCount
)

var aggregationKindMap = enumnames.NewMap(map[AggregationKind]string{
	AggregationSum:     "SUM",
	AggregationAverage: "AVERAGE",
	AggregationCount:   "COUNT",
})

func (kind AggregationKind) IsValid() bool {
	return aggregationKindMap.ContainsKey(kind)
}

func (kind AggregationKind) String() string {
	return aggregationKindMap.GetNameOrFallback(kind, "INVALID_AGGREGATION")
}

func (kind AggregationKind) MarshalJSON() ([]byte, error) {
	return aggregationKindMap.MarshalToNameJSON(kind)
}

func (kind *AggregationKind) UnmarshalJSON(bytes []byte) error {
	return aggregationKindMap.UnmarshalFromNameJSON(bytes, kind)
}
