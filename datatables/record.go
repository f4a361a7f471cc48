package datatables

import (
	"bytes"
	"encoding/json"
	"fmt"
	"reflect"
	"sort"
	"strings"
)

// Record is an opaque item of a source sequence. It can be a *Row, an Exporter,
// a map[string]interface{} or any struct value (or pointer to one).
type Record interface{}

// Exporter is implemented by records that know how to present themselves as a row.
type Exporter interface {
	Export() *Row
}

// Row is an ordered mapping from column name to value.
type Row struct {
	keys   []string
	values map[string]interface{}
}

func NewRow() *Row {
	return &Row{values: make(map[string]interface{})}
}

// RowFromMap creates a row from a map using the sorted keys as column order
func RowFromMap(m map[string]interface{}) *Row {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	row := &Row{keys: keys, values: make(map[string]interface{}, len(m))}
	for k, v := range m {
		row.values[k] = v
	}
	return row
}

// Set stores the value, appending the key when it is not already part of the row.
func (r *Row) Set(key string, value interface{}) *Row {
	if _, ok := r.values[key]; !ok {
		r.keys = append(r.keys, key)
	}
	r.values[key] = value
	return r
}

// Insert stores the value at the given position, moving the key if it already exists.
func (r *Row) Insert(position int, key string, value interface{}) *Row {
	r.Delete(key)
	if position < 0 || position >= len(r.keys) {
		return r.Set(key, value)
	}
	r.keys = append(r.keys, "")
	copy(r.keys[position+1:], r.keys[position:])
	r.keys[position] = key
	r.values[key] = value
	return r
}

func (r *Row) Delete(keys ...string) *Row {
	for _, key := range keys {
		if _, ok := r.values[key]; !ok {
			continue
		}
		delete(r.values, key)
		for i, k := range r.keys {
			if k == key {
				r.keys = append(r.keys[:i], r.keys[i+1:]...)
				break
			}
		}
	}
	return r
}

func (r *Row) Get(key string) (interface{}, bool) {
	value, ok := r.values[key]
	return value, ok
}

// Lookup resolves a column path. The exact key wins, otherwise a dotted path
// walks through nested mappings.
func (r *Row) Lookup(path string) (interface{}, bool) {
	if value, ok := r.values[path]; ok {
		return value, true
	}

	segments := strings.Split(path, ".")
	if len(segments) < 2 {
		return nil, false
	}

	var current interface{} = r
	for _, segment := range segments {
		nested, ok := asRow(current)
		if !ok {
			return nil, false
		}
		if current, ok = nested.values[segment]; !ok {
			return nil, false
		}
	}
	return current, true
}

func (r *Row) Keys() []string {
	keys := make([]string, len(r.keys))
	copy(keys, r.keys)
	return keys
}

func (r *Row) Len() int {
	return len(r.keys)
}

// Values returns the values in column order
func (r *Row) Values() []interface{} {
	values := make([]interface{}, 0, len(r.keys))
	for _, k := range r.keys {
		values = append(values, r.values[k])
	}
	return values
}

func (r *Row) Map() map[string]interface{} {
	m := make(map[string]interface{}, len(r.values))
	for k, v := range r.values {
		m[k] = v
	}
	return m
}

func (r *Row) Clone() *Row {
	return &Row{keys: r.Keys(), values: r.Map()}
}

// MarshalJSON writes the row as a JSON object keeping the column order.
func (r *Row) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range r.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		value, err := json.Marshal(r.values[k])
		if err != nil {
			return nil, fmt.Errorf("unable to marshal column '%s': %v", k, err)
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Serialize adapts any record into its row view. It never fails: values that are
// not mappings end up in a single "value" column.
func Serialize(record Record) *Row {
	switch r := record.(type) {
	case nil:
		return NewRow()
	case *Row:
		if r == nil {
			return NewRow()
		}
		return r
	case Exporter:
		if row := r.Export(); row != nil {
			return row
		}
		return NewRow()
	case map[string]interface{}:
		return RowFromMap(r)
	}

	value := reflect.ValueOf(record)
	for value.Kind() == reflect.Ptr || value.Kind() == reflect.Interface {
		if value.IsNil() {
			return NewRow()
		}
		value = value.Elem()
	}

	switch value.Kind() {
	case reflect.Struct:
		if row, ok := structToRow(value); ok {
			return row
		}
	case reflect.Map:
		m := make(map[string]interface{}, value.Len())
		iter := value.MapRange()
		for iter.Next() {
			m[fmt.Sprint(iter.Key().Interface())] = iter.Value().Interface()
		}
		return RowFromMap(m)
	}

	return NewRow().Set("value", record)
}

func asRow(value interface{}) (*Row, bool) {
	switch v := value.(type) {
	case *Row:
		return v, v != nil
	case map[string]interface{}:
		return RowFromMap(v), true
	case Exporter:
		row := v.Export()
		return row, row != nil
	}
	return nil, false
}

// structToRow reads the exported fields of a struct in declaration order. Field
// names follow the `mapstructure` tag, and `,squash` flattens embedded structs.
func structToRow(value reflect.Value) (*Row, bool) {
	row := NewRow()
	appendFields(row, value)
	return row, row.Len() > 0
}

func appendFields(row *Row, value reflect.Value) {
	t := value.Type()
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if field.PkgPath != "" {
			continue
		}

		name := field.Name
		squash := false
		if tag := field.Tag.Get("mapstructure"); tag != "" {
			parts := strings.Split(tag, ",")
			if parts[0] == "-" {
				continue
			}
			if parts[0] != "" {
				name = parts[0]
			}
			for _, opt := range parts[1:] {
				squash = squash || opt == "squash"
			}
		}

		fieldValue := value.Field(i)
		if squash && fieldValue.Kind() == reflect.Struct {
			appendFields(row, fieldValue)
			continue
		}
		row.Set(name, fieldValue.Interface())
	}
}
