package driver

import (
	"context"
	"fmt"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/agenthands/bore/internal/metrics"
)

// Row is one result row, its columns rendered as strings.
type Row []string

// First returns the first column, or "" for an empty row.
func (r Row) First() string {
	if len(r) == 0 {
		return ""
	}
	return r[0]
}

// Rows converts an eager result into string rows. The result is never nil;
// an empty slice means the query matched nothing.
func Rows(res neo4j.EagerResult) []Row {
	rows := make([]Row, 0, len(res.Records))
	for _, rec := range res.Records {
		if rec == nil {
			continue
		}
		row := make(Row, len(rec.Values))
		for i, v := range rec.Values {
			row[i] = stringValue(v)
		}
		rows = append(rows, row)
	}
	return rows
}

// Query runs a named query, records its latency and returns its rows.
func Query(ctx context.Context, d GraphDriver, name, query string, params map[string]interface{}) ([]Row, error) {
	done := metrics.TimeQuery(name)
	res, err := d.ExecuteQuery(ctx, query, params)
	done(err == nil)
	if err != nil {
		return nil, err
	}
	return Rows(res), nil
}

func stringValue(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case fmt.Stringer:
		return t.String()
	default:
		return fmt.Sprint(t)
	}
}
