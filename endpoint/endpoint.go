package endpoint

import (
	"context"
	"errors"
	"time"

	"github.com/datastax/cassandra-datatables/config"
	"github.com/datastax/cassandra-datatables/datatables"
	"github.com/datastax/cassandra-datatables/db"
	"github.com/datastax/cassandra-datatables/graphql"
	"github.com/datastax/cassandra-datatables/log"
	endpoint "github.com/datastax/cassandra-datatables/rest/endpoint/v1"
	"github.com/datastax/cassandra-datatables/source"
	"github.com/datastax/cassandra-datatables/types"
	"go.uber.org/zap"
)

// DefaultRefreshInterval loads the tables once
const DefaultRefreshInterval time.Duration = 0

type tableSource struct {
	name    string
	source  source.Source
	options []datatables.Option
}

type DataTablesEndpointConfig struct {
	dbHosts           []string
	dbUsername        string
	dbPassword        string
	cqlTables         []string
	files             []string
	sources           []tableSource
	refreshInterval   time.Duration
	caseInsensitive   bool
	debug             bool
	defaultPageLength int
	naming            config.NamingConventionFn
	logger            log.Logger
}

func (cfg DataTablesEndpointConfig) CaseInsensitive() bool {
	return cfg.caseInsensitive
}

func (cfg DataTablesEndpointConfig) Debug() bool {
	return cfg.debug
}

func (cfg DataTablesEndpointConfig) DefaultPageLength() int {
	return cfg.defaultPageLength
}

func (cfg DataTablesEndpointConfig) RefreshInterval() time.Duration {
	return cfg.refreshInterval
}

func (cfg DataTablesEndpointConfig) Naming() config.NamingConventionFn {
	return cfg.naming
}

func (cfg DataTablesEndpointConfig) Logger() log.Logger {
	return cfg.logger
}

// WithCqlTables adds "keyspace.table" tables, read from the cluster
func (cfg *DataTablesEndpointConfig) WithCqlTables(tables []string) *DataTablesEndpointConfig {
	cfg.cqlTables = append(cfg.cqlTables, tables...)
	return cfg
}

// WithFiles adds "name=path" tables, read from JSON or YAML files
func (cfg *DataTablesEndpointConfig) WithFiles(files []string) *DataTablesEndpointConfig {
	cfg.files = append(cfg.files, files...)
	return cfg
}

// WithTable adds a table backed by any source, the options only apply to its engines
func (cfg *DataTablesEndpointConfig) WithTable(
	name string,
	src source.Source,
	options ...datatables.Option,
) *DataTablesEndpointConfig {
	cfg.sources = append(cfg.sources, tableSource{name: name, source: src, options: options})
	return cfg
}

func (cfg *DataTablesEndpointConfig) WithRefreshInterval(refreshInterval time.Duration) *DataTablesEndpointConfig {
	cfg.refreshInterval = refreshInterval
	return cfg
}

func (cfg *DataTablesEndpointConfig) WithCaseInsensitive(caseInsensitive bool) *DataTablesEndpointConfig {
	cfg.caseInsensitive = caseInsensitive
	return cfg
}

func (cfg *DataTablesEndpointConfig) WithDebug(debug bool) *DataTablesEndpointConfig {
	cfg.debug = debug
	return cfg
}

func (cfg *DataTablesEndpointConfig) WithDefaultPageLength(length int) *DataTablesEndpointConfig {
	cfg.defaultPageLength = length
	return cfg
}

func (cfg *DataTablesEndpointConfig) WithNaming(naming config.NamingConventionFn) *DataTablesEndpointConfig {
	cfg.naming = naming
	return cfg
}

func (cfg *DataTablesEndpointConfig) WithDbUsername(dbUsername string) *DataTablesEndpointConfig {
	cfg.dbUsername = dbUsername
	return cfg
}

func (cfg *DataTablesEndpointConfig) WithDbPassword(dbPassword string) *DataTablesEndpointConfig {
	cfg.dbPassword = dbPassword
	return cfg
}

// NewEndpoint loads every table. Cassandra is only contacted when cql tables are configured.
func (cfg DataTablesEndpointConfig) NewEndpoint(ctx context.Context) (*DataTablesEndpoint, error) {
	var dbClient *db.Db
	if len(cfg.cqlTables) > 0 {
		if len(cfg.dbHosts) == 0 {
			return nil, errors.New("cql tables require at least one host")
		}
		var err error
		dbClient, err = db.NewDb(&db.Credentials{Username: cfg.dbUsername, Password: cfg.dbPassword}, cfg.dbHosts...)
		if err != nil {
			return nil, err
		}
	}

	return cfg.newEndpointWithDb(ctx, dbClient)
}

func (cfg DataTablesEndpointConfig) newEndpointWithDb(ctx context.Context, dbClient *db.Db) (*DataTablesEndpoint, error) {
	registry := source.NewRegistry(cfg.logger)
	e := &DataTablesEndpoint{
		cfg:             cfg,
		db:              dbClient,
		registry:        registry,
		graphQLRouteGen: graphql.NewRouteGenerator(registry, cfg),
	}

	for _, spec := range cfg.files {
		name, path, err := source.ParseFileSpec(spec)
		if err != nil {
			e.Close()
			return nil, err
		}
		if err = registry.Add(ctx, name, source.NewFileSource(path), cfg.refreshInterval); err != nil {
			e.Close()
			return nil, err
		}
	}

	for _, spec := range cfg.cqlTables {
		keyspace, table, err := source.ParseTableSpec(spec)
		if err != nil {
			e.Close()
			return nil, err
		}
		cqlSource := source.NewCassandraSource(dbClient, keyspace, table)
		if err = registry.Add(ctx, spec, cqlSource, cfg.refreshInterval); err != nil {
			e.Close()
			return nil, err
		}
	}

	for _, t := range cfg.sources {
		if err := registry.Add(ctx, t.name, t.source, cfg.refreshInterval, t.options...); err != nil {
			e.Close()
			return nil, err
		}
	}

	return e, nil
}

type DataTablesEndpoint struct {
	cfg             DataTablesEndpointConfig
	db              *db.Db
	registry        *source.Registry
	graphQLRouteGen *graphql.RouteGenerator
}

func NewEndpointConfig(hosts ...string) (*DataTablesEndpointConfig, error) {
	logger, err := zap.NewProduction()
	if err != nil {
		return nil, err
	}
	return NewEndpointConfigWithLogger(log.NewZapLogger(logger), hosts...), nil
}

func NewEndpointConfigWithLogger(logger log.Logger, hosts ...string) *DataTablesEndpointConfig {
	return &DataTablesEndpointConfig{
		dbHosts:           hosts,
		refreshInterval:   DefaultRefreshInterval,
		caseInsensitive:   true,
		defaultPageLength: datatables.DefaultPageLength,
		naming:            config.NewDefaultNaming,
		logger:            logger,
	}
}

// Tables returns the names of the tables served, sorted
func (e *DataTablesEndpoint) Tables() []string {
	return e.registry.Names()
}

// AddTable serves a new table. The GraphQL schema picks it up on its next refresh.
func (e *DataTablesEndpoint) AddTable(
	ctx context.Context,
	name string,
	tableSource source.Source,
	options ...datatables.Option,
) error {
	return e.registry.Add(ctx, name, tableSource, e.cfg.refreshInterval, options...)
}

func (e *DataTablesEndpoint) RoutesRest(prefix string) []types.Route {
	return endpoint.Routes(prefix, e.cfg, e.registry)
}

func (e *DataTablesEndpoint) RoutesGraphQL(pattern string) ([]types.Route, error) {
	return e.graphQLRouteGen.Routes(pattern)
}

// Close stops the table refreshes and releases the cluster connection
func (e *DataTablesEndpoint) Close() {
	e.graphQLRouteGen.Close()
	e.registry.Close()
	if e.db != nil {
		e.db.Close()
	}
}
