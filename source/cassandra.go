package source

import (
	"context"

	"github.com/datastax/cassandra-datatables/datatables"
	"github.com/datastax/cassandra-datatables/db"
)

// CassandraSource materializes a whole Cassandra table. Rows keep the column
// order of the result metadata.
type CassandraSource struct {
	db       *db.Db
	keyspace string
	table    string
	pageSize int
}

func NewCassandraSource(dbClient *db.Db, keyspace, table string) *CassandraSource {
	return &CassandraSource{db: dbClient, keyspace: keyspace, table: table, pageSize: db.DefaultPageSize}
}

func (s *CassandraSource) WithPageSize(pageSize int) *CassandraSource {
	s.pageSize = pageSize
	return s
}

func (s *CassandraSource) Load(ctx context.Context) ([]datatables.Record, error) {
	if _, err := s.db.Describe(s.keyspace, s.table); err != nil {
		return nil, err
	}

	columns, rows, err := s.db.SelectAll(ctx, s.keyspace, s.table, s.pageSize)
	if err != nil {
		return nil, err
	}

	records := make([]datatables.Record, 0, len(rows))
	for _, values := range rows {
		row := datatables.NewRow()
		for _, column := range columns {
			row.Set(column, values[column])
		}
		records = append(records, row)
	}
	return records, nil
}
