// Package source materializes the record sequences served as tables, from
// static data, JSON or YAML files and Cassandra tables, and keeps them fresh.
package source

import (
	"context"
	"fmt"
	"strings"

	"github.com/datastax/cassandra-datatables/datatables"
)

// Source loads the full record sequence of a table
type Source interface {
	Load(ctx context.Context) ([]datatables.Record, error)
}

// SourceFunc adapts a function to a Source
type SourceFunc func(ctx context.Context) ([]datatables.Record, error)

func (f SourceFunc) Load(ctx context.Context) ([]datatables.Record, error) {
	return f(ctx)
}

type StaticSource struct {
	records []datatables.Record
}

func NewStaticSource(records ...datatables.Record) *StaticSource {
	return &StaticSource{records: records}
}

func (s *StaticSource) Load(context.Context) ([]datatables.Record, error) {
	records := make([]datatables.Record, len(s.records))
	copy(records, s.records)
	return records, nil
}

// ParseFileSpec splits a "name=path" table definition. Without a name the file
// name without extension is used.
func ParseFileSpec(spec string) (name string, path string, err error) {
	spec = strings.TrimSpace(spec)
	if spec == "" {
		return "", "", fmt.Errorf("empty file table definition")
	}
	if i := strings.Index(spec, "="); i >= 0 {
		name, path = strings.TrimSpace(spec[:i]), strings.TrimSpace(spec[i+1:])
	} else {
		path = spec
	}
	if path == "" {
		return "", "", fmt.Errorf("file table definition '%s' has no path", spec)
	}
	if name == "" {
		name = baseName(path)
	}
	return name, path, nil
}

// ParseTableSpec splits a "keyspace.table" definition
func ParseTableSpec(spec string) (keyspace string, table string, err error) {
	parts := strings.Split(strings.TrimSpace(spec), ".")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", fmt.Errorf("table '%s' should be in the form keyspace.table", spec)
	}
	return parts[0], parts[1], nil
}

func baseName(path string) string {
	if i := strings.LastIndexAny(path, `/\`); i >= 0 {
		path = path[i+1:]
	}
	if i := strings.LastIndex(path, "."); i > 0 {
		path = path[:i]
	}
	return path
}
