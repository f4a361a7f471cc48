package datatables

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type person struct {
	ID       int    `mapstructure:"id"`
	Name     string `mapstructure:"name"`
	Password string `mapstructure:"-"`
	internal string
	Audit    audit `mapstructure:",squash"`
}

type audit struct {
	CreatedBy string `mapstructure:"created_by"`
}

type exported struct {
	id int
}

func (e exported) Export() *Row {
	return NewRow().Set("id", e.id).Set("kind", "exported")
}

func TestSerialize(t *testing.T) {
	tests := []struct {
		name   string
		record Record
		keys   []string
		values []interface{}
	}{
		{
			name:   "Map sorted by key",
			record: map[string]interface{}{"name": "Alice", "id": 1},
			keys:   []string{"id", "name"},
			values: []interface{}{1, "Alice"},
		},
		{
			name:   "Exporter",
			record: exported{id: 7},
			keys:   []string{"id", "kind"},
			values: []interface{}{7, "exported"},
		},
		{
			name:   "Row passes through",
			record: NewRow().Set("b", 2).Set("a", 1),
			keys:   []string{"b", "a"},
			values: []interface{}{2, 1},
		},
		{
			name:   "Struct in declaration order",
			record: person{ID: 3, Name: "Carol", Password: "secret", internal: "x", Audit: audit{CreatedBy: "root"}},
			keys:   []string{"id", "name", "created_by"},
			values: []interface{}{3, "Carol", "root"},
		},
		{
			name:   "Pointer to struct",
			record: &person{ID: 4, Name: "Dave"},
			keys:   []string{"id", "name", "created_by"},
			values: []interface{}{4, "Dave", ""},
		},
		{
			name:   "Typed map",
			record: map[string]string{"z": "last", "a": "first"},
			keys:   []string{"a", "z"},
			values: []interface{}{"first", "last"},
		},
		{
			name:   "Scalar",
			record: 42,
			keys:   []string{"value"},
			values: []interface{}{42},
		},
		{
			name:   "Nil",
			record: nil,
			keys:   []string{},
			values: []interface{}{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			row := Serialize(tt.record)
			assert.Equal(t, tt.keys, row.Keys())
			assert.Equal(t, tt.values, row.Values())
		})
	}
}

func TestSerializeTimeStruct(t *testing.T) {
	ts := time.Date(2020, 1, 2, 3, 4, 5, 0, time.UTC)
	row := Serialize(struct {
		Created time.Time `mapstructure:"created"`
	}{Created: ts})

	value, ok := row.Get("created")
	assert.True(t, ok)
	assert.Equal(t, ts, value)
}

func TestRowLookup(t *testing.T) {
	row := RowFromMap(map[string]interface{}{
		"name":       "Alice",
		"users.name": "flat",
		"address": map[string]interface{}{
			"city": "Paris",
			"geo":  NewRow().Set("lat", 48.85),
		},
	})

	tests := []struct {
		path  string
		want  interface{}
		found bool
	}{
		{"name", "Alice", true},
		{"users.name", "flat", true},
		{"address.city", "Paris", true},
		{"address.geo.lat", 48.85, true},
		{"address.zip", nil, false},
		{"name.first", nil, false},
		{"missing", nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got, found := row.Lookup(tt.path)
			assert.Equal(t, tt.found, found)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRowMutations(t *testing.T) {
	row := NewRow().Set("a", 1).Set("b", 2).Set("c", 3)

	row.Insert(0, "first", 0)
	assert.Equal(t, []string{"first", "a", "b", "c"}, row.Keys())

	row.Insert(2, "c", 33)
	assert.Equal(t, []string{"first", "a", "c", "b"}, row.Keys())

	row.Insert(-1, "last", 9)
	assert.Equal(t, []string{"first", "a", "c", "b", "last"}, row.Keys())

	row.Delete("a", "missing", "last")
	assert.Equal(t, []string{"first", "c", "b"}, row.Keys())
	assert.Equal(t, []interface{}{0, 33, 2}, row.Values())

	clone := row.Clone()
	clone.Set("d", 4)
	assert.Equal(t, 3, row.Len())
	assert.Equal(t, 4, clone.Len())
}

func TestRowMarshalJSONKeepsOrder(t *testing.T) {
	row := NewRow().Set("name", "bob").Set("id", 2).Set("tags", []string{"x"}).Set("nested", NewRow().Set("z", 1).Set("a", 2))

	b, err := json.Marshal(row)
	assert.NoError(t, err)
	assert.Equal(t, `{"name":"bob","id":2,"tags":["x"],"nested":{"z":1,"a":2}}`, string(b))

	b, err = json.Marshal(NewRow())
	assert.NoError(t, err)
	assert.Equal(t, `{}`, string(b))
}
