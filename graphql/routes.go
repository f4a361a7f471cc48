package graphql

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/datastax/cassandra-datatables/config"
	"github.com/datastax/cassandra-datatables/log"
	"github.com/datastax/cassandra-datatables/types"
	"github.com/graphql-go/graphql"
)

type executeQueryFunc func(body RequestBody, ctx context.Context) *graphql.Result

type RouteGenerator struct {
	updateInterval time.Duration
	logger         log.Logger
	schemaGen      *SchemaGenerator
	updater        *SchemaUpdater
}

type RequestBody struct {
	Query         string                 `json:"query"`
	OperationName string                 `json:"operationName,omitempty"`
	Variables     map[string]interface{} `json:"variables,omitempty"`
}

func NewRouteGenerator(tables Tables, cfg config.Config) *RouteGenerator {
	return &RouteGenerator{
		updateInterval: cfg.RefreshInterval(),
		logger:         cfg.Logger(),
		schemaGen:      NewSchemaGenerator(tables, cfg),
	}
}

// Routes returns the GET and POST routes of the schema. The schema follows the
// tables added after the routes are created, once per refresh interval.
func (rg *RouteGenerator) Routes(pattern string) ([]types.Route, error) {
	updater, err := NewUpdater(rg.schemaGen, rg.updateInterval, rg.logger)
	if err != nil {
		return nil, fmt.Errorf("unable to build graphql schema: %s", err)
	}

	rg.Close()
	rg.updater = updater
	go updater.Start()

	return routesForSchema(pattern, func(body RequestBody, ctx context.Context) *graphql.Result {
		return rg.executeQuery(body, ctx, *updater.Schema())
	}), nil
}

// Close stops following the tables
func (rg *RouteGenerator) Close() {
	if rg.updater != nil {
		rg.updater.Stop()
	}
}

func routesForSchema(pattern string, execute executeQueryFunc) []types.Route {
	return []types.Route{
		{
			Method:  http.MethodGet,
			Pattern: pattern,
			Handler: http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				body := RequestBody{
					Query:         r.URL.Query().Get("query"),
					OperationName: r.URL.Query().Get("operationName"),
				}
				if variables := r.URL.Query().Get("variables"); variables != "" {
					if err := json.Unmarshal([]byte(variables), &body.Variables); err != nil {
						http.Error(w, "Variables are invalid", http.StatusBadRequest)
						return
					}
				}
				writeResult(w, execute(body, r.Context()))
			}),
		},
		{
			Method:  http.MethodPost,
			Pattern: pattern,
			Handler: http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.Body == nil {
					http.Error(w, "No request body", http.StatusBadRequest)
					return
				}

				var body RequestBody
				err := json.NewDecoder(r.Body).Decode(&body)
				if err != nil {
					http.Error(w, "Request body is invalid", http.StatusBadRequest)
					return
				}

				writeResult(w, execute(body, r.Context()))
			}),
		},
	}
}

func writeResult(w http.ResponseWriter, result *graphql.Result) {
	w.Header().Set("Content-Type", "application/json; charset=UTF-8")
	err := json.NewEncoder(w).Encode(result)
	if err != nil {
		http.Error(w, "response could not be encoded: "+err.Error(), http.StatusInternalServerError)
	}
}

func (rg *RouteGenerator) executeQuery(body RequestBody, ctx context.Context, schema graphql.Schema) *graphql.Result {
	result := graphql.Do(graphql.Params{
		Schema:         schema,
		RequestString:  body.Query,
		VariableValues: body.Variables,
		OperationName:  body.OperationName,
		Context:        ctx,
	})
	if len(result.Errors) > 0 {
		rg.logger.Debug("errors processing graphql query", "errors", result.Errors)
	}
	return result
}
