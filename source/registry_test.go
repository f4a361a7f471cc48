package source

import (
	"context"
	"testing"

	"github.com/datastax/cassandra-datatables/datatables"
	"github.com/datastax/cassandra-datatables/internal/testutil"
	e "github.com/datastax/cassandra-datatables/rest/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func people() Source {
	return NewStaticSource(
		map[string]interface{}{"id": 1, "name": "Alice"},
		map[string]interface{}{"id": 2, "name": "bob"},
		map[string]interface{}{"id": 3, "name": "Carol"},
	)
}

func TestRegistry(t *testing.T) {
	registry := NewRegistry(testutil.TestLogger(), datatables.WithCaseInsensitive(false))
	defer registry.Close()

	ctx := context.Background()
	require.NoError(t, registry.Add(ctx, "people", people(), 0))
	require.NoError(t, registry.Add(ctx, "authors", people(), 0, datatables.WithCaseInsensitive(true)))
	assert.Error(t, registry.Add(ctx, "people", people(), 0))

	assert.Equal(t, []string{"authors", "people"}, registry.Names())

	table, err := registry.Table("people")
	require.NoError(t, err)
	assert.Equal(t, 3, table.Len())

	_, err = registry.Table("missing")
	assert.IsType(t, &e.NotFoundError{}, err)
	_, err = registry.Engine("missing")
	assert.EqualError(t, err, "table 'missing' not found")

	request := &datatables.Request{SearchValue: "BOB", Columns: []datatables.ColumnRequest{
		{Data: "id", Searchable: true}, {Data: "name", Searchable: true},
	}}

	// registry wide options first, then the table's, then the caller's
	tests := []struct {
		table    string
		options  []datatables.Option
		filtered int
	}{
		{"people", nil, 0},
		{"authors", nil, 1},
		{"people", []datatables.Option{datatables.WithCaseInsensitive(true)}, 1},
	}
	for _, tt := range tests {
		engine, err := registry.Engine(tt.table, tt.options...)
		require.NoError(t, err)
		response, err := engine.Make(request)
		require.NoError(t, err)
		assert.Equal(t, tt.filtered, response.RecordsFiltered, tt.table)
	}
}

func TestRegistryAddFails(t *testing.T) {
	registry := NewRegistry(testutil.TestLogger())
	err := registry.Add(context.Background(), "broken", NewFileSource("/does/not/exist.json"), 0)
	assert.Error(t, err)
	assert.Empty(t, registry.Names())
}
