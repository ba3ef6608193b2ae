package clickhouse

import (
	"fmt"
	"strings"
)

// queryBuilder builds ClickHouse SQL, quoting identifiers so that column and
// table names can never terminate the surrounding query.
type queryBuilder struct {
	strings.Builder
}

func newQueryBuilder() *queryBuilder {
	return &queryBuilder{}
}

func (builder *queryBuilder) WriteIdentifier(identifier string) error {
	if !strings.ContainsRune(identifier, '`') {
		builder.WriteRune('`')
		builder.WriteString(identifier)
		builder.WriteRune('`')
		return nil
	}

	if !strings.ContainsRune(identifier, '"') {
		builder.WriteRune('"')
		builder.WriteString(identifier)
		builder.WriteRune('"')
		return nil
	}

	return fmt.Errorf(
		"'%s' contains both \" and `, which is incompatible with ClickHouse", identifier,
	)
}
