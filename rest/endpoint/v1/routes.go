package endpoint

import (
	"net/http"
	"path"

	"github.com/datastax/cassandra-datatables/config"
	"github.com/datastax/cassandra-datatables/datatables"
	"github.com/datastax/cassandra-datatables/log"
	"github.com/datastax/cassandra-datatables/types"
	"github.com/julienschmidt/httprouter"
)

// Path formats of the endpoints, relative to the prefix
const (
	TablesPathFormat      = "/v1/tables"
	TableSinglePathFormat = "/v1/tables/%s"
	ColumnsPathFormat     = "/v1/tables/%s/columns"
	DataTablePathFormat   = "/v1/tables/%s/datatable"

	tableNameParam     = "tableName"
	tableSinglePattern = "/v1/tables/:" + tableNameParam
	columnsPattern     = tableSinglePattern + "/columns"
	dataTablePattern   = tableSinglePattern + "/datatable"
)

// Tables gives access to the tables served by the endpoints
type Tables interface {
	Names() []string
	Table(name string) (*datatables.Table, error)
	Engine(name string, options ...datatables.Option) (*datatables.Engine, error)
}

type routeList struct {
	tables Tables
	cfg    config.Config
	logger log.Logger
	params func(*http.Request, string) string
}

// Routes returns a slice of all the endpoint routes
func Routes(prefix string, cfg config.Config, tables Tables) []types.Route {
	rl := routeList{
		tables: tables,
		cfg:    cfg,
		logger: cfg.Logger(),
		params: urlParam,
	}

	return []types.Route{
		{
			Method:  http.MethodGet,
			Pattern: path.Join(prefix, TablesPathFormat),
			Handler: http.HandlerFunc(rl.GetTables),
		},
		{
			Method:  http.MethodGet,
			Pattern: path.Join(prefix, tableSinglePattern),
			Handler: http.HandlerFunc(rl.GetTable),
		},
		{
			Method:  http.MethodGet,
			Pattern: path.Join(prefix, columnsPattern),
			Handler: http.HandlerFunc(rl.GetColumns),
		},
		{
			Method:  http.MethodGet,
			Pattern: path.Join(prefix, dataTablePattern),
			Handler: http.HandlerFunc(rl.DataTable),
		},
		{
			Method:  http.MethodPost,
			Pattern: path.Join(prefix, dataTablePattern),
			Handler: http.HandlerFunc(rl.DataTable),
		},
	}
}

func urlParam(r *http.Request, name string) string {
	return httprouter.ParamsFromContext(r.Context()).ByName(name)
}
