package datatables

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTableColumnsFromFirstRecord(t *testing.T) {
	table := NewTable([]Record{
		NewRow().Set("id", 1).Set("name", "Alice"),
		NewRow().Set("other", true),
	})

	assert.Equal(t, 2, table.Len())
	assert.Equal(t, []ColumnSpec{{Index: 0, Name: "id"}, {Index: 1, Name: "name"}}, table.Columns())

	empty := NewTable(nil)
	assert.Equal(t, 0, empty.Len())
	assert.Empty(t, empty.Columns())
}

func TestTableRecordsIsACopy(t *testing.T) {
	source := []Record{1, 2, 3}
	table := NewTable(source)
	source[0] = 100

	records := table.Records()
	records[1] = 200
	assert.Equal(t, []Record{1, 2, 3}, table.Records())
}

func TestColumnResolver(t *testing.T) {
	table := NewTable([]Record{
		map[string]interface{}{
			"id":   1,
			"name": "Alice",
			"user": map[string]interface{}{"email": "alice@example.com"},
		},
	})

	request := &Request{Columns: []ColumnRequest{
		{Data: "name"},
		{Data: "users.name"},
		{Data: "user.email"},
		{Data: "3"},
		{Name: "people.name as name", Data: "display_name"},
		{},
		{Data: "0"},
		{Data: "email"},
		{Data: "action"},
		{Name: "people.name as nickname"},
	}}
	resolver := newColumnResolver(table, request, "action")

	tests := []struct {
		index    int
		name     string
		identity string
		err      bool
	}{
		// declared names win over the column order of the first record
		{index: 0, name: "name", identity: "name"},
		{index: 1, name: "users.name", identity: "name"},
		{index: 2, name: "user.email", identity: "user.email"},
		{index: 3, err: true},
		{index: 4, name: "people.name", identity: "name"},
		{index: 5, err: true},
		{index: 6, name: "id", identity: "id"},
		{index: 7, err: true},
		{index: 8, name: "action", identity: "action"},
		{index: 9, err: true},
		{index: 10, err: true},
		{index: -1, err: true},
	}
	for _, tt := range tests {
		name, err := resolver.NameOf(tt.index)
		if tt.err {
			assert.Error(t, err, "index %d", tt.index)
			assert.True(t, IsColumnNotFound(err))
			assert.EqualError(t, err, fmt.Sprintf("column with index %d not found", tt.index))
		} else {
			assert.NoError(t, err, "index %d", tt.index)
			assert.Equal(t, tt.name, name, "index %d", tt.index)
		}

		identity, err := resolver.IdentityOf(tt.index)
		if tt.err {
			assert.True(t, IsColumnNotFound(err), "index %d", tt.index)
		} else {
			assert.NoError(t, err, "index %d", tt.index)
			assert.Equal(t, tt.identity, identity, "index %d", tt.index)
		}
	}
}

func TestColumnResolverFallsBackToFirstRecord(t *testing.T) {
	table := NewTable([]Record{map[string]interface{}{"name": "Alice", "id": 1}})
	resolver := newColumnResolver(table, &Request{Columns: []ColumnRequest{{}, {Data: " "}}})

	// empty declarations and undeclared indexes use the sorted keys of the map
	name, err := resolver.NameOf(0)
	assert.NoError(t, err)
	assert.Equal(t, "id", name)

	name, err = resolver.NameOf(1)
	assert.NoError(t, err)
	assert.Equal(t, "name", name)

	_, err = resolver.NameOf(2)
	assert.True(t, IsColumnNotFound(err))
}

func TestColumnResolverEmptyTable(t *testing.T) {
	resolver := newColumnResolver(NewTable(nil), &Request{Columns: []ColumnRequest{
		{Data: "email"}, {Data: "users.name"}, {},
	}})

	identity, err := resolver.IdentityOf(0)
	assert.NoError(t, err)
	assert.Equal(t, "email", identity)

	identity, err = resolver.IdentityOf(1)
	assert.NoError(t, err)
	assert.Equal(t, "name", identity)

	_, err = resolver.IdentityOf(2)
	assert.True(t, IsColumnNotFound(err))
}

func TestColumnResolverSpec(t *testing.T) {
	table := NewTable([]Record{map[string]interface{}{"id": 1}})
	resolver := newColumnResolver(table, &Request{Columns: []ColumnRequest{
		{Data: "t.id", Searchable: true, Orderable: true},
		{Data: "t.email", Searchable: true},
	}})

	spec, err := resolver.Spec(0)
	assert.NoError(t, err)
	assert.Equal(t, ColumnSpec{Index: 0, Name: "t.id", Identity: "id", Searchable: true, Orderable: true}, spec)

	_, err = resolver.Spec(1)
	assert.EqualError(t, err, "column with index 1 not found")
}

func TestColumnResolverSearchable(t *testing.T) {
	table := NewTable([]Record{map[string]interface{}{"id": 1, "name": "Alice"}})

	resolver := newColumnResolver(table, &Request{Columns: []ColumnRequest{
		{Data: "name", Searchable: true},
		{Data: "email"},
		{Data: "t.id", Searchable: true},
	}})
	specs, err := resolver.Searchable()
	assert.NoError(t, err)
	assert.Equal(t, []ColumnSpec{
		{Index: 0, Name: "name", Identity: "name", Searchable: true},
		{Index: 2, Name: "t.id", Identity: "id", Searchable: true},
	}, specs)

	resolver = newColumnResolver(table, &Request{Columns: []ColumnRequest{
		{Data: "name", Searchable: true},
		{Data: "email", Searchable: true},
	}})
	_, err = resolver.Searchable()
	assert.EqualError(t, err, "column with index 1 not found")
}
