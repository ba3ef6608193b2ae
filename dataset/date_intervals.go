package dataset

import (
	"fmt"
	"time"

	"hermannm.dev/enumnames"
)

// DateInterval is the bucket size used when grouping records by Order Date.
type DateInterval int8

const (
	DateIntervalYear DateInterval = iota + 1
	DateIntervalQuarter
	DateIntervalMonth
	DateIntervalWeek
	DateIntervalDay
)

var dateIntervalMap = enumnames.NewMap(map[DateInterval]string{
	DateIntervalYear:    "YEAR",
	DateIntervalQuarter: "QUARTER",
	DateIntervalMonth:   "MONTH",
	DateIntervalWeek:    "WEEK",
	DateIntervalDay:     "DAY",
})

func (dateInterval DateInterval) IsValid() bool {
	return dateIntervalMap.ContainsKey(dateInterval)
}

func (dateInterval DateInterval) String() string {
	return dateIntervalMap.GetNameOrFallback(dateInterval, "INVALID_DATE_INTERVAL")
}

func (dateInterval DateInterval) MarshalJSON() ([]byte, error) {
	return dateIntervalMap.MarshalToNameJSON(dateInterval)
}

func (dateInterval *DateInterval) UnmarshalJSON(bytes []byte) error {
	return dateIntervalMap.UnmarshalFromNameJSON(bytes, dateInterval)
}

// BucketKey formats the bucket that the given date falls in. Keys within an
// interval sort lexicographically in chronological order, so they can be used
// directly as group keys.
func (dateInterval DateInterval) BucketKey(date time.Time) string {
	switch dateInterval {
	case DateIntervalYear:
		return fmt.Sprintf("%04d", date.Year())
	case DateIntervalQuarter:
		quarter := (int(date.Month())-1)/3 + 1
		return fmt.Sprintf("%04d-Q%d", date.Year(), quarter)
	case DateIntervalMonth:
		return fmt.Sprintf("%04d-%02d", date.Year(), int(date.Month()))
	case DateIntervalWeek:
		year, week := date.ISOWeek()
		return fmt.Sprintf("%04d-W%02d", year, week)
	case DateIntervalDay:
		return date.Format("2006-01-02")
	default:
		return date.Format("2006-01-02")
	}
}
