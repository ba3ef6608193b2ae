package dataset

import (
	"fmt"

	"hermannm.dev/enumnames"
)

// Dimension is a categorical column of the Superstore dataset, usable for
// filtering and grouping.
type Dimension int8

const (
	DimensionRegion Dimension = iota + 1
	DimensionState
	DimensionSegment
	DimensionCategory
	DimensionSubCategory
	DimensionProductName
	DimensionOrderDate
)

var dimensionMap = enumnames.NewMap(map[Dimension]string{
	DimensionRegion:      "Region",
	DimensionState:       "State",
	DimensionSegment:     "Segment",
	DimensionCategory:    "Category",
	DimensionSubCategory: "Sub-Category",
	DimensionProductName: "Product Name",
	DimensionOrderDate:   "Order Date",
})

// Dimension names match the dataset's column names exactly, so the same
// strings work for filter selections, group-by requests and CSV headers.
var dimensionsByName = map[string]Dimension{
	"Region":       DimensionRegion,
	"State":        DimensionState,
	"Segment":      DimensionSegment,
	"Category":     DimensionCategory,
	"Sub-Category": DimensionSubCategory,
	"Product Name": DimensionProductName,
	"Order Date":   DimensionOrderDate,
}

func DimensionFromName(name string) (Dimension, error) {
	if dimension, ok := dimensionsByName[name]; ok {
		return dimension, nil
	}
	return 0, fmt.Errorf("unrecognized dimension '%s'", name)
}

// Dimensions lists every filterable dimension, in dataset column order.
func Dimensions() []Dimension {
	return []Dimension{
		DimensionRegion,
		DimensionState,
		DimensionSegment,
		DimensionCategory,
		DimensionSubCategory,
		DimensionProductName,
		DimensionOrderDate,
	}
}

func (dimension Dimension) IsValid() bool {
	return dimensionMap.ContainsKey(dimension)
}

func (dimension Dimension) String() string {
	return dimensionMap.GetNameOrFallback(dimension, "INVALID_DIMENSION")
}

func (dimension Dimension) MarshalJSON() ([]byte, error) {
	return dimensionMap.MarshalToNameJSON(dimension)
}

func (dimension *Dimension) UnmarshalJSON(bytes []byte) error {
	return dimensionMap.UnmarshalFromNameJSON(bytes, dimension)
}
