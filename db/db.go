package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	e "github.com/datastax/cassandra-datatables/rest/errors"
	"github.com/gocql/gocql"
)

// DefaultPageSize is the fetch size used when reading a whole table
const DefaultPageSize = 1000

// Db represents a connection to a db
type Db struct {
	session Session
}

type Credentials struct {
	Username string
	Password string
}

// NewDb gets a pointer to a db
func NewDb(credentials *Credentials, hosts ...string) (*Db, error) {
	cluster := gocql.NewCluster(hosts...)
	cluster.PoolConfig.HostSelectionPolicy = NewDefaultHostSelectionPolicy()
	cluster.Timeout = 10 * time.Second
	cluster.ConnectTimeout = cluster.Timeout

	if credentials != nil && credentials.Username != "" {
		cluster.Authenticator = gocql.PasswordAuthenticator{
			Username: credentials.Username,
			Password: credentials.Password,
		}
	}

	session, err := cluster.CreateSession()
	if err != nil {
		return nil, err
	}

	if session == nil {
		return nil, errors.New("failed to create session")
	}

	return NewDbWithSession(&GoCqlSession{ref: session}), nil
}

// NewDbWithSession creates a db on top of an existing session
func NewDbWithSession(session Session) *Db {
	return &Db{session: session}
}

// Close releases the underlying session, if it can be closed
func (db *Db) Close() {
	if closer, ok := db.session.(interface{ Close() }); ok {
		closer.Close()
	}
}

// Describe returns the metadata of a table
func (db *Db) Describe(keyspace, table string) (*gocql.TableMetadata, error) {
	keyspaceMetadata, err := db.session.KeyspaceMetadata(keyspace)
	if err != nil {
		if err == gocql.ErrKeyspaceDoesNotExist {
			return nil, e.NewNotFoundError(fmt.Sprintf("keyspace '%s' not found", keyspace))
		}
		return nil, err
	}

	tableMetadata, ok := keyspaceMetadata.Tables[table]
	if !ok {
		return nil, e.NewNotFoundError(fmt.Sprintf("table '%s' not found in keyspace '%s'", table, keyspace))
	}
	return tableMetadata, nil
}

// SelectAll reads every row of a table following the page state until the
// result is exhausted. Column order is taken from the first page.
func (db *Db) SelectAll(ctx context.Context, keyspace, table string, pageSize int) ([]string, []map[string]interface{}, error) {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}

	query := fmt.Sprintf(`SELECT * FROM "%s"."%s"`, keyspace, table)
	options := NewQueryOptions().WithPageSize(pageSize)

	var (
		columns []string
		rows    = make([]map[string]interface{}, 0)
	)
	for {
		if err := ctx.Err(); err != nil {
			return nil, nil, err
		}

		rs, err := db.session.ExecuteIter(ctx, query, options)
		if err != nil {
			return nil, nil, err
		}

		if columns == nil {
			columns = rs.Columns()
		}
		rows = append(rows, rs.Values()...)

		if len(rs.PageState()) == 0 {
			break
		}
		options = options.WithPageState(rs.PageState())
	}

	return columns, rows, nil
}
