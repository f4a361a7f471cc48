package graphql

import (
	"fmt"

	"github.com/datastax/cassandra-datatables/config"
	"github.com/datastax/cassandra-datatables/datatables"
	"github.com/datastax/cassandra-datatables/log"
	"github.com/graphql-go/graphql"
)

const tablesField = "tables"

// Tables gives access to the tables exposed in the schema
type Tables interface {
	Names() []string
	Engine(name string, options ...datatables.Option) (*datatables.Engine, error)
}

type SchemaGenerator struct {
	tables Tables
	cfg    config.Config
	naming config.NamingConventionFn
	logger log.Logger
}

func NewSchemaGenerator(tables Tables, cfg config.Config) *SchemaGenerator {
	return &SchemaGenerator{
		tables: tables,
		cfg:    cfg,
		naming: cfg.Naming(),
		logger: cfg.Logger(),
	}
}

// BuildSchema builds a schema with a datatable query field per table
func (sg *SchemaGenerator) BuildSchema(names []string) (graphql.Schema, error) {
	naming := sg.naming(names)
	resolve := sg.dataTableResolver(naming)

	fields := graphql.Fields{
		tablesField: &graphql.Field{
			Type:        graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(graphql.String))),
			Description: "The names of the tables",
			Resolve: func(params graphql.ResolveParams) (interface{}, error) {
				return sg.tables.Names(), nil
			},
		},
	}

	for _, name := range names {
		fieldName := naming.ToGraphQLField(name)
		if _, exists := fields[fieldName]; exists {
			return graphql.Schema{}, fmt.Errorf("table '%s' collides with the graphql field '%s'", name, fieldName)
		}
		fields[fieldName] = &graphql.Field{
			Type:        buildResultType(naming.ToGraphQLTypeUnique(name, "result")),
			Description: fmt.Sprintf("Server-side processing of the table '%s'", name),
			Args:        dataTableArgs,
			Resolve:     resolve,
		}
	}

	return graphql.NewSchema(graphql.SchemaConfig{
		Query: graphql.NewObject(graphql.ObjectConfig{
			Name:   "DataTableQuery",
			Fields: fields,
		}),
	})
}

func buildResultType(name string) *graphql.Object {
	return graphql.NewObject(graphql.ObjectConfig{
		Name: name,
		Fields: graphql.Fields{
			"draw":            &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
			"recordsTotal":    &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
			"recordsFiltered": &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
			"data":            &graphql.Field{Type: graphql.NewNonNull(graphql.NewList(jsonScalar))},
			"input":           &graphql.Field{Type: jsonScalar},
		},
	})
}
