package config

import (
	"sort"
	"strconv"
	"strings"

	"github.com/iancoleman/strcase"
)

type NamingConvention interface {
	// ToGraphQLField returns the query field name of a table
	ToGraphQLField(tableName string) string

	// ToGraphQLType returns the object type name of a table
	ToGraphQLType(tableName string) string

	// ToGraphQLTypeUnique returns a type name for the table with the given suffix, that does not collide with
	// the type of other tables
	ToGraphQLTypeUnique(tableName string, suffix string) string

	// ToTableName returns the table name for a query field name
	ToTableName(fieldName string) (string, bool)
}

type NamingConventionFn func(tables []string) NamingConvention

type defaultNaming struct {
	types  map[string]string
	fields map[string]string
	taken  map[string]bool
}

// NewDefaultNaming builds a naming convention for the given tables. Names that would collide once camel
// cased get a numeric suffix, tables are visited in byte order so the result is stable.
func NewDefaultNaming(tables []string) NamingConvention {
	sorted := make([]string, len(tables))
	copy(sorted, tables)
	sort.Strings(sorted)

	n := &defaultNaming{
		types:  make(map[string]string, len(tables)),
		fields: make(map[string]string, len(tables)),
		taken:  make(map[string]bool, len(tables)),
	}

	for _, table := range sorted {
		if _, ok := n.types[table]; ok {
			continue
		}
		base := toCamel(table)
		name := base
		for i := 2; n.taken[name]; i++ {
			name = base + strconv.Itoa(i)
		}
		n.taken[name] = true
		n.types[table] = name
		n.fields[lowerFirst(name)] = table
	}
	return n
}

func (n *defaultNaming) ToGraphQLField(tableName string) string {
	return lowerFirst(n.ToGraphQLType(tableName))
}

func (n *defaultNaming) ToGraphQLType(tableName string) string {
	if name, ok := n.types[tableName]; ok {
		return name
	}
	return toCamel(tableName)
}

func (n *defaultNaming) ToGraphQLTypeUnique(tableName string, suffix string) string {
	base := n.ToGraphQLType(tableName) + strcase.ToCamel(suffix)
	name := base
	for i := 2; n.taken[name]; i++ {
		name = base + strconv.Itoa(i)
	}
	return name
}

func (n *defaultNaming) ToTableName(fieldName string) (string, bool) {
	table, ok := n.fields[fieldName]
	return table, ok
}

func toCamel(name string) string {
	// keyspace qualified and file based names
	name = strings.NewReplacer(".", "_", "-", "_", " ", "_").Replace(name)
	return strcase.ToCamel(name)
}

func lowerFirst(name string) string {
	if name == "" {
		return name
	}
	return strings.ToLower(name[:1]) + name[1:]
}
