package clickhouse

import (
	"context"
	"time"

	"hermannm.dev/superstore/dataset"
	"hermannm.dev/wrap"
)

// ClickHouse recommends keeping batch inserts between 10,000 and 100,000 rows:
// https://clickhouse.com/docs/en/cloud/bestpractices/bulk-inserts
const batchInsertSize = 10000

// InsertDataset mirrors the full in-memory dataset into the ClickHouse table,
// in batches.
func (db *Database) InsertDataset(ctx context.Context, dataset *dataset.Dataset) error {
	builder := newQueryBuilder()
	builder.WriteString("INSERT INTO ")
	if err := builder.WriteIdentifier(TableName); err != nil {
		return wrap.Error(err, "invalid table name")
	}
	queryString := builder.String()

	for offset := 0; offset < dataset.Len(); offset += batchInsertSize {
		batch, err := db.conn.PrepareBatch(ctx, queryString)
		if err != nil {
			return wrap.Error(err, "failed to prepare batch data insert")
		}

		end := offset + batchInsertSize
		if end > dataset.Len() {
			end = dataset.Len()
		}

		for i := offset; i < end; i++ {
			record := dataset.Record(i)

			err := batch.Append(
				record.ID.String(),
				record.OrderDate,
				nullableDate(record.ShipDate),
				record.Region,
				record.State,
				record.Segment,
				record.Category,
				record.SubCategory,
				record.ProductName,
				record.Sales,
				record.Profit,
				record.Discount,
				record.Quantity,
				record.ProfitMargin,
			)
			if err != nil {
				return wrap.Errorf(err, "failed to add record %d to batch insert", i)
			}
		}

		if err := batch.Send(); err != nil {
			return wrap.Error(err, "failed to send batch insert")
		}
	}

	return nil
}

// nullableDate maps a zero time (an absent optional date in the source file)
// to NULL, since Go's zero time falls outside DateTime64's range.
func nullableDate(date time.Time) any {
	if date.IsZero() {
		return nil
	}
	return date
}
