package graphql

import "github.com/graphql-go/graphql"

var orderInput = graphql.NewInputObject(graphql.InputObjectConfig{
	Name: "OrderInput",
	Fields: graphql.InputObjectConfigFieldMap{
		"column": {Type: graphql.NewNonNull(graphql.Int)},
		"dir":    {Type: graphql.String, DefaultValue: "asc"},
	},
})

var columnInput = graphql.NewInputObject(graphql.InputObjectConfig{
	Name: "ColumnInput",
	Fields: graphql.InputObjectConfigFieldMap{
		"data":        {Type: graphql.String},
		"name":        {Type: graphql.String},
		"searchable":  {Type: graphql.Boolean, DefaultValue: true},
		"orderable":   {Type: graphql.Boolean, DefaultValue: true},
		"search":      {Type: graphql.String},
		"searchRegex": {Type: graphql.Boolean},
	},
})

var dataTableArgs = graphql.FieldConfigArgument{
	"draw":        {Type: graphql.Int},
	"start":       {Type: graphql.Int},
	"length":      {Type: graphql.Int},
	"search":      {Type: graphql.String},
	"searchRegex": {Type: graphql.Boolean},
	"order":       {Type: graphql.NewList(orderInput)},
	"columns":     {Type: graphql.NewList(columnInput)},
}
