package graphql

import (
	"fmt"

	"github.com/datastax/cassandra-datatables/config"
	endpoint "github.com/datastax/cassandra-datatables/rest/endpoint/v1"
	"github.com/graphql-go/graphql"
)

func (sg *SchemaGenerator) dataTableResolver(naming config.NamingConvention) graphql.FieldResolveFn {
	return func(params graphql.ResolveParams) (interface{}, error) {
		tableName, ok := naming.ToTableName(params.Info.FieldName)
		if !ok {
			return nil, fmt.Errorf("unable to find table for '%s'", params.Info.FieldName)
		}

		request, err := endpoint.DecodeDataTableRequest(toRequestParams(params.Args))
		if err != nil {
			return nil, err
		}

		engine, err := sg.tables.Engine(tableName, config.EngineOptions(sg.cfg)...)
		if err != nil {
			return nil, err
		}

		return engine.Make(request)
	}
}

// toRequestParams maps the field arguments to the parameters of a DataTables request
func toRequestParams(args map[string]interface{}) map[string]interface{} {
	params := make(map[string]interface{}, len(args))
	for _, key := range []string{"draw", "start", "length", "order"} {
		if value, ok := args[key]; ok && value != nil {
			params[key] = value
		}
	}

	if search := searchParams(args, "search", "searchRegex"); search != nil {
		params["search"] = search
	}

	if columns, ok := args["columns"].([]interface{}); ok {
		values := make([]interface{}, 0, len(columns))
		for _, column := range columns {
			columnArgs, ok := column.(map[string]interface{})
			if !ok {
				continue
			}
			value := make(map[string]interface{}, len(columnArgs))
			for _, key := range []string{"data", "name", "searchable", "orderable"} {
				if v, ok := columnArgs[key]; ok && v != nil {
					value[key] = v
				}
			}
			if search := searchParams(columnArgs, "search", "searchRegex"); search != nil {
				value["search"] = search
			}
			values = append(values, value)
		}
		params["columns"] = values
	}
	return params
}

func searchParams(args map[string]interface{}, valueKey string, regexKey string) map[string]interface{} {
	search := make(map[string]interface{}, 2)
	if value, ok := args[valueKey]; ok && value != nil {
		search["value"] = value
	}
	if regex, ok := args[regexKey]; ok && regex != nil {
		search["regex"] = regex
	}
	if len(search) == 0 {
		return nil
	}
	return search
}
