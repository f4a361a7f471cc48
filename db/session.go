package db

import (
	"context"

	"github.com/gocql/gocql"
)

type QueryOptions struct {
	Consistency gocql.Consistency
	PageSize    int
	PageState   []byte
}

func NewQueryOptions() *QueryOptions {
	return &QueryOptions{
		Consistency: gocql.LocalOne,
	}
}

func (q *QueryOptions) WithConsistency(consistency gocql.Consistency) *QueryOptions {
	q.Consistency = consistency
	return q
}

func (q *QueryOptions) WithPageSize(pageSize int) *QueryOptions {
	q.PageSize = pageSize
	return q
}

// WithPageState returns a copy of the options resuming at the given page
func (q *QueryOptions) WithPageState(pageState []byte) *QueryOptions {
	copied := *q
	copied.PageState = pageState
	return &copied
}

type Session interface {
	// ExecuteIter executes a statement and returns a single page of the result set
	ExecuteIter(ctx context.Context, query string, options *QueryOptions, values ...interface{}) (ResultSet, error)

	KeyspaceMetadata(keyspaceName string) (*gocql.KeyspaceMetadata, error)
}

type ResultSet interface {
	// PageState is empty when there are no more pages
	PageState() []byte

	// Columns returns the column names in the order of the result metadata
	Columns() []string
	Values() []map[string]interface{}
}

type goCqlResultSet struct {
	pageState []byte
	columns   []string
	values    []map[string]interface{}
}

func (r *goCqlResultSet) PageState() []byte {
	return r.pageState
}

func (r *goCqlResultSet) Columns() []string {
	return r.columns
}

func (r *goCqlResultSet) Values() []map[string]interface{} {
	return r.values
}

func newResultSet(iter *gocql.Iter) (*goCqlResultSet, error) {
	columns := iter.Columns()
	scanner := iter.Scanner()

	names := make([]string, 0, len(columns))
	for _, column := range columns {
		names = append(names, column.Name)
	}

	items := make([]map[string]interface{}, 0)
	for scanner.Next() {
		row, err := mapScan(scanner, columns)
		if err != nil {
			return nil, err
		}
		items = append(items, row)
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return &goCqlResultSet{
		pageState: iter.PageState(),
		columns:   names,
		values:    items,
	}, nil
}

type GoCqlSession struct {
	ref *gocql.Session
}

func (session *GoCqlSession) ExecuteIter(ctx context.Context, query string, options *QueryOptions, values ...interface{}) (ResultSet, error) {
	q := session.ref.Query(query, values...).WithContext(ctx)

	// Avoid reusing metadata from the prepared statement, SELECT * has to see new columns
	q.NoSkipMetadata()

	if options != nil {
		q.Consistency(options.Consistency)
		if options.PageSize > 0 {
			q.PageSize(options.PageSize)
		}
		if len(options.PageState) > 0 {
			q.PageState(options.PageState)
		}
	}
	return newResultSet(q.Iter())
}

func (session *GoCqlSession) KeyspaceMetadata(keyspaceName string) (*gocql.KeyspaceMetadata, error) {
	return session.ref.KeyspaceMetadata(keyspaceName)
}

func (session *GoCqlSession) Close() {
	session.ref.Close()
}
