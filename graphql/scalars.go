package graphql

import (
	"strconv"

	"github.com/graphql-go/graphql"
	"github.com/graphql-go/graphql/language/ast"
)

var jsonScalar = graphql.NewScalar(graphql.ScalarConfig{
	Name: "Json",
	Description: "The `Json` scalar type represents a row or any other value as it is encoded in the" +
		" DataTables response.",
	Serialize:    identityFn,
	ParseValue:   identityFn,
	ParseLiteral: parseLiteral,
})

func identityFn(value interface{}) interface{} {
	return value
}

func parseLiteral(valueAST ast.Value) interface{} {
	switch valueAST := valueAST.(type) {
	case *ast.StringValue:
		return valueAST.Value
	case *ast.BooleanValue:
		return valueAST.Value
	case *ast.IntValue:
		if i, err := strconv.Atoi(valueAST.Value); err == nil {
			return i
		}
		return nil
	case *ast.FloatValue:
		if f, err := strconv.ParseFloat(valueAST.Value, 64); err == nil {
			return f
		}
		return nil
	case *ast.ListValue:
		values := make([]interface{}, 0, len(valueAST.Values))
		for _, v := range valueAST.Values {
			values = append(values, parseLiteral(v))
		}
		return values
	case *ast.ObjectValue:
		values := make(map[string]interface{}, len(valueAST.Fields))
		for _, field := range valueAST.Fields {
			values[field.Name.Value] = parseLiteral(field.Value)
		}
		return values
	}
	return nil
}
