package db

import (
	"context"

	"github.com/gocql/gocql"
	"github.com/stretchr/testify/mock"
)

type SessionMock struct {
	mock.Mock
}

func (o *SessionMock) ExecuteIter(ctx context.Context, query string, options *QueryOptions, values ...interface{}) (ResultSet, error) {
	args := o.Called(query, options, values)
	result := args.Get(0)
	if result == nil {
		return nil, args.Error(1)
	}
	return result.(ResultSet), args.Error(1)
}

func (o *SessionMock) KeyspaceMetadata(keyspaceName string) (*gocql.KeyspaceMetadata, error) {
	args := o.Called(keyspaceName)
	result := args.Get(0)
	if result == nil {
		return nil, args.Error(1)
	}
	return result.(*gocql.KeyspaceMetadata), args.Error(1)
}

type ResultMock struct {
	mock.Mock
}

func (o *ResultMock) PageState() []byte {
	args := o.Called()
	result := args.Get(0)
	if result == nil {
		return nil
	}
	return result.([]byte)
}

func (o *ResultMock) Columns() []string {
	args := o.Called()
	return args.Get(0).([]string)
}

func (o *ResultMock) Values() []map[string]interface{} {
	args := o.Called()
	return args.Get(0).([]map[string]interface{})
}

// NewResultMock returns a single page result set
func NewResultMock(columns []string, values []map[string]interface{}, pageState []byte) *ResultMock {
	rs := &ResultMock{}
	rs.On("Columns").Return(columns)
	rs.On("Values").Return(values)
	rs.On("PageState").Return(pageState)
	return rs
}

// NewSessionMock returns a session that knows the store.books table
func NewSessionMock() *SessionMock {
	sessionMock := &SessionMock{}

	columns := map[string]*gocql.ColumnMetadata{
		"title": {
			Keyspace:       "store",
			Table:          "books",
			Name:           "title",
			ComponentIndex: 0,
			Kind:           gocql.ColumnPartitionKey,
			Type:           gocql.NewNativeType(0, gocql.TypeText, ""),
		},
		"pages": {
			Keyspace:       "store",
			Table:          "books",
			Name:           "pages",
			ComponentIndex: 1,
			Kind:           gocql.ColumnRegular,
			Type:           gocql.NewNativeType(0, gocql.TypeInt, ""),
		},
	}
	sessionMock.On("KeyspaceMetadata", "store").Return(&gocql.KeyspaceMetadata{
		Name: "store",
		Tables: map[string]*gocql.TableMetadata{
			"books": {
				Keyspace:     "store",
				Name:         "books",
				PartitionKey: []*gocql.ColumnMetadata{columns["title"]},
				Columns:      columns,
			},
		},
	}, nil)
	sessionMock.On("KeyspaceMetadata", mock.Anything).Return(nil, gocql.ErrKeyspaceDoesNotExist)

	return sessionMock
}
