package graphql

import (
	"context"
	"strings"
	"time"

	"github.com/datastax/cassandra-datatables/log"
	"github.com/graphql-go/graphql"
	"go.uber.org/atomic"
)

// SchemaUpdater rebuilds the schema when the set of tables changes
type SchemaUpdater struct {
	ctx            context.Context
	cancel         context.CancelFunc
	updateInterval time.Duration
	schema         atomic.Value
	schemaGen      *SchemaGenerator
	version        atomic.String
	logger         log.Logger
}

func (su *SchemaUpdater) Schema() *graphql.Schema {
	return su.schema.Load().(*graphql.Schema)
}

func NewUpdater(schemaGen *SchemaGenerator, updateInterval time.Duration, logger log.Logger) (*SchemaUpdater, error) {
	names := schemaGen.tables.Names()
	schema, err := schemaGen.BuildSchema(names)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithCancel(context.Background())
	updater := &SchemaUpdater{
		ctx:            ctx,
		cancel:         cancel,
		updateInterval: updateInterval,
		schemaGen:      schemaGen,
		logger:         logger,
	}
	updater.schema.Store(&schema)
	updater.version.Store(schemaVersion(names))
	return updater, nil
}

func (su *SchemaUpdater) Start() {
	if su.updateInterval <= 0 {
		return
	}
	for su.sleep() {
		su.update()
	}
}

func (su *SchemaUpdater) Stop() {
	su.cancel()
}

func (su *SchemaUpdater) update() {
	names := su.schemaGen.tables.Names()
	version := schemaVersion(names)
	if version == su.version.Load() {
		return
	}

	schema, err := su.schemaGen.BuildSchema(names)
	if err != nil {
		su.logger.Error("unable to build graphql schema",
			"tables", names, "error", err)
		return
	}

	su.schema.Store(&schema)
	su.version.Store(version)
	su.logger.Info("graphql schema updated", "tables", names)
}

func (su *SchemaUpdater) sleep() bool {
	select {
	case <-time.After(su.updateInterval):
		return true
	case <-su.ctx.Done():
		return false
	}
}

// schemaVersion identifies a set of sorted table names
func schemaVersion(names []string) string {
	return strings.Join(names, "\n")
}
