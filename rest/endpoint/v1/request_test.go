package endpoint

import (
	"encoding/json"
	"net/url"
	"strings"
	"testing"

	"github.com/datastax/cassandra-datatables/datatables"
	e "github.com/datastax/cassandra-datatables/rest/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeDataTableRequestFromQuery(t *testing.T) {
	query, err := url.ParseQuery("draw=3&start=10&length=5&search[value]=Bo&search[regex]=false" +
		"&order[0][column]=1&order[0][dir]=DESC" +
		"&columns[0][data]=id&columns[0][searchable]=true&columns[0][orderable]=false" +
		"&columns[1][data]=name&columns[1][name]=people.name&columns[1][searchable]=true" +
		"&columns[1][orderable]=true&columns[1][search][value]=b")
	require.NoError(t, err)

	params := parseParams(query)
	request, err := DecodeDataTableRequest(params)
	require.NoError(t, err)

	assert.Equal(t, &datatables.Request{
		Draw:        3,
		Start:       10,
		Length:      5,
		SearchValue: "Bo",
		Order:       []datatables.OrderDirective{{Column: 1, Dir: datatables.Descending}},
		Columns: []datatables.ColumnRequest{
			{Data: "id", Searchable: true},
			{Data: "name", Name: "people.name", Searchable: true, Orderable: true, SearchValue: "b"},
		},
		Raw: params,
	}, request)
}

func TestDecodeDataTableRequestFromJSON(t *testing.T) {
	params := make(map[string]interface{})
	decoder := json.NewDecoder(strings.NewReader(`{
		"draw": 2, "start": 0, "length": -1,
		"search": {"value": "x", "regex": true},
		"order": [{"column": 0, "dir": "asc"}],
		"columns": [{"data": "id", "searchable": true, "orderable": true}]
	}`))
	decoder.UseNumber()
	require.NoError(t, decoder.Decode(&params))

	request, err := DecodeDataTableRequest(params)
	require.NoError(t, err)
	assert.Equal(t, 2, request.Draw)
	assert.True(t, request.All)
	assert.Equal(t, -1, request.Length)
	assert.True(t, request.SearchRegex)
	assert.Equal(t, []datatables.OrderDirective{{Column: 0, Dir: datatables.Ascending}}, request.Order)
}

func TestDecodeDataTableRequestDefaults(t *testing.T) {
	request, err := DecodeDataTableRequest(map[string]interface{}{
		"draw":  "not a number",
		"start": "-4",
	})
	require.NoError(t, err)
	assert.Equal(t, 0, request.Draw)
	assert.Equal(t, 0, request.Start)
	assert.Equal(t, 0, request.Length)
	assert.False(t, request.All)
	assert.Empty(t, request.Order)
	assert.Empty(t, request.Columns)
}

func TestDecodeDataTableRequestInvalid(t *testing.T) {
	tests := []struct {
		name   string
		params map[string]interface{}
		msg    string
	}{
		{
			name: "Negative column",
			params: map[string]interface{}{
				"order": []interface{}{map[string]interface{}{"column": "-1"}},
			},
			msg: "Column must be 0 or greater",
		},
		{
			name: "Unknown direction",
			params: map[string]interface{}{
				"order": []interface{}{map[string]interface{}{"column": "0", "dir": "up"}},
			},
			msg: "Dir must be either asc or desc",
		},
		{
			name: "Not a number",
			params: map[string]interface{}{
				"order": []interface{}{map[string]interface{}{"column": "first"}},
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeDataTableRequest(tt.params)
			require.Error(t, err)
			assert.IsType(t, &e.BadRequestError{}, err)
			if tt.msg != "" {
				assert.EqualError(t, err, tt.msg)
			}
		})
	}
}

func TestToInt(t *testing.T) {
	tests := []struct {
		value interface{}
		want  int
	}{
		{nil, 0},
		{7, 7},
		{int64(8), 8},
		{9.9, 9},
		{json.Number("10"), 10},
		{json.Number("11.5"), 11},
		{" 12 ", 12},
		{"abc", 0},
		{true, 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, toInt(tt.value), "%v", tt.value)
	}
}
