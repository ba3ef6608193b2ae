// Package clickhouse implements an optional analytical mirror of the
// in-memory Superstore dataset: the loaded records are ingested into a
// ClickHouse table at startup, so that aggregations can also be pushed down
// to the database and checked against the in-memory aggregator.
//
// The mirror is never the source of truth; the in-memory Dataset is.
package clickhouse

import (
	"context"

	"github.com/ClickHouse/clickhouse-go/v2"
	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"
	clickhouseproto "github.com/ClickHouse/clickhouse-go/v2/lib/proto"
	"hermannm.dev/devlog/log"
	"hermannm.dev/superstore/config"
	"hermannm.dev/wrap"
)

const TableName = "superstore"

type Database struct {
	conn driver.Conn
}

func Connect(conf config.ClickHouse) (*Database, error) {
	// Options docs: https://clickhouse.com/docs/en/integrations/go#connection-settings
	conn, err := clickhouse.Open(&clickhouse.Options{
		Addr: []string{conf.Address},
		Auth: clickhouse.Auth{
			Database: conf.DatabaseName,
			Username: conf.Username,
			Password: conf.Password,
		},
		Debug: conf.Debug,
		Debugf: func(format string, args ...any) {
			log.Debugf(format, args...)
		},
		Compression: &clickhouse.Compression{Method: clickhouse.CompressionLZ4},
	})
	if err != nil {
		return nil, wrap.Error(err, "failed to connect to ClickHouse")
	}

	if err := conn.Ping(context.Background()); err != nil {
		return nil, wrap.Error(err, "failed to ping ClickHouse connection")
	}

	db := &Database{conn: conn}

	if conf.DropTableOnStartup {
		alreadyDropped, err := db.dropTable(context.Background())
		if err != nil {
			return nil, wrap.Errorf(
				err, "failed to drop table '%s' (from DEBUG_DROP_TABLE_ON_STARTUP in env)", TableName,
			)
		}
		if !alreadyDropped {
			log.Infof("Dropped table '%s' (from DEBUG_DROP_TABLE_ON_STARTUP in env)", TableName)
		}
	}

	return db, nil
}

// CreateTable creates the mirror table with the fixed Superstore schema, if
// it does not exist already.
func (db *Database) CreateTable(ctx context.Context) error {
	builder := newQueryBuilder()
	builder.WriteString("CREATE TABLE IF NOT EXISTS ")
	if err := builder.WriteIdentifier(TableName); err != nil {
		return wrap.Error(err, "invalid table name")
	}
	builder.WriteString(" (")

	for i, column := range tableColumns {
		if i != 0 {
			builder.WriteString(", ")
		}
		if err := builder.WriteIdentifier(column.name); err != nil {
			return wrap.Error(err, "invalid column name")
		}
		builder.WriteRune(' ')
		builder.WriteString(column.dataType)
		if column.optional {
			builder.WriteString(" NULL")
		}
	}

	builder.WriteString(") ENGINE = MergeTree() PRIMARY KEY (id)")

	if err := db.conn.Exec(ctx, builder.String()); err != nil {
		return wrap.Error(err, "create table query failed")
	}

	return nil
}

type tableColumn struct {
	name string
	// See https://clickhouse.com/docs/en/sql-reference/data-types
	dataType string
	// Optional columns are nullable, since their values may be absent from
	// the source file.
	optional bool
}

var tableColumns = []tableColumn{
	{name: "id", dataType: "UUID"},
	{name: "order_date", dataType: "DateTime64(3)"},
	{name: "ship_date", dataType: "DateTime64(3)", optional: true},
	{name: "region", dataType: "String"},
	{name: "state", dataType: "String"},
	{name: "segment", dataType: "String"},
	{name: "category", dataType: "String"},
	{name: "sub_category", dataType: "String"},
	{name: "product_name", dataType: "String"},
	{name: "sales", dataType: "Float64"},
	{name: "profit", dataType: "Float64"},
	{name: "discount", dataType: "Float64"},
	{name: "quantity", dataType: "Int64"},
	{name: "profit_margin", dataType: "Float64"},
}

func (db *Database) dropTable(ctx context.Context) (tableAlreadyDropped bool, err error) {
	builder := newQueryBuilder()
	builder.WriteString("DROP TABLE ")
	if err := builder.WriteIdentifier(TableName); err != nil {
		return false, wrap.Error(err, "invalid table name")
	}

	// See https://github.com/ClickHouse/ClickHouse/blob/bd387f6d2c30f67f2822244c0648f2169adab4d3/src/Common/ErrorCodes.cpp#L66
	const clickhouseUnknownTableErrorCode = 60

	if err := db.conn.Exec(ctx, builder.String()); err != nil {
		clickHouseErr, isClickHouseErr := err.(*clickhouseproto.Exception)
		if isClickHouseErr && clickHouseErr.Code == clickhouseUnknownTableErrorCode {
			return true, nil
		}

		return false, wrap.Error(err, "drop table query failed")
	}

	return false, nil
}
