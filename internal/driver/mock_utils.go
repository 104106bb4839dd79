package driver

import (
	"context"
	"sync"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
)

// ExecutedQuery records one call made against a MockDriver.
type ExecutedQuery struct {
	Query  string
	Params map[string]interface{}
}

// MockDriver answers queries from canned results keyed by query text. It is
// safe for concurrent use.
type MockDriver struct {
	Results map[string]neo4j.EagerResult
	Errs    map[string]error

	// Err fails every query when set.
	Err error

	mu       sync.Mutex
	executed []ExecutedQuery
}

func NewMockDriver() *MockDriver {
	return &MockDriver{
		Results: make(map[string]neo4j.EagerResult),
		Errs:    make(map[string]error),
	}
}

// On sets the rows returned for query. Each row is a list of column values
// under the given keys.
func (m *MockDriver) On(query string, keys []string, rows ...[]interface{}) *MockDriver {
	res := neo4j.EagerResult{Keys: keys}
	for _, values := range rows {
		res.Records = append(res.Records, &neo4j.Record{Keys: keys, Values: values})
	}
	m.Results[query] = res
	return m
}

// Fail makes query return err.
func (m *MockDriver) Fail(query string, err error) *MockDriver {
	m.Errs[query] = err
	return m
}

func (m *MockDriver) ExecuteQuery(ctx context.Context, query string, params map[string]interface{}) (neo4j.EagerResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.executed = append(m.executed, ExecutedQuery{Query: query, Params: params})
	if m.Err != nil {
		return neo4j.EagerResult{}, m.Err
	}
	if err := m.Errs[query]; err != nil {
		return neo4j.EagerResult{}, err
	}
	return m.Results[query], nil
}

func (m *MockDriver) BuildIndices(ctx context.Context) error {
	return m.Err
}

func (m *MockDriver) Close(ctx context.Context) error {
	return nil
}

// Executed returns a copy of every call so far.
func (m *MockDriver) Executed() []ExecutedQuery {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]ExecutedQuery(nil), m.executed...)
}

// Calls returns the parameters of each execution of query.
func (m *MockDriver) Calls(query string) []map[string]interface{} {
	var out []map[string]interface{}
	for _, q := range m.Executed() {
		if q.Query == query {
			out = append(out, q.Params)
		}
	}
	return out
}
