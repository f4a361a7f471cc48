package endpoint

import (
	"encoding/json"
	"mime"
	"net/http"
	"strconv"
	"strings"

	"github.com/datastax/cassandra-datatables/datatables"
	e "github.com/datastax/cassandra-datatables/rest/errors"
	m "github.com/datastax/cassandra-datatables/rest/models"
	"github.com/mitchellh/mapstructure"
)

// readParams returns the DataTables parameters of a request: the query string
// for GET, the form or the JSON body for POST.
func readParams(r *http.Request) (map[string]interface{}, error) {
	if r.Method != http.MethodPost {
		return parseParams(r.URL.Query()), nil
	}

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "application/json" {
		params := make(map[string]interface{})
		decoder := json.NewDecoder(r.Body)
		decoder.UseNumber()
		if err := decoder.Decode(&params); err != nil {
			return nil, e.NewBadRequestError("unable to parse payload")
		}
		return params, nil
	}

	if err := r.ParseForm(); err != nil {
		return nil, e.NewBadRequestError("unable to parse form")
	}
	return parseParams(r.Form), nil
}

// DecodeDataTableRequest converts loosely typed parameters, as parsed from a
// query string, a form or a JSON document, into an engine request.
func DecodeDataTableRequest(params map[string]interface{}) (*datatables.Request, error) {
	var request m.DataTableRequest
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           &request,
	})
	if err != nil {
		return nil, err
	}

	if err := decoder.Decode(params); err != nil {
		return nil, e.NewBadRequestError("invalid datatable request: " + err.Error())
	}

	if err := inputValidator.Struct(&request); err != nil {
		return nil, e.NewBadRequestError(e.TranslateValidatorError(err, trans).Error())
	}

	return toEngineRequest(&request, params), nil
}

func toEngineRequest(request *m.DataTableRequest, raw map[string]interface{}) *datatables.Request {
	length := toInt(request.Length)
	start := toInt(request.Start)
	if start < 0 {
		start = 0
	}

	result := &datatables.Request{
		// echoed as an integer, a token that is not a number becomes 0
		Draw:        toInt(request.Draw),
		Start:       start,
		Length:      length,
		All:         length == -1,
		SearchValue: request.Search.Value,
		SearchRegex: request.Search.Regex,
		Order:       make([]datatables.OrderDirective, 0, len(request.Order)),
		Columns:     make([]datatables.ColumnRequest, 0, len(request.Columns)),
		Raw:         raw,
	}

	for _, order := range request.Order {
		result.Order = append(result.Order, datatables.OrderDirective{
			Column: order.Column,
			Dir:    datatables.ParseDirection(order.Dir),
		})
	}

	for _, column := range request.Columns {
		result.Columns = append(result.Columns, datatables.ColumnRequest{
			Data:        column.Data,
			Name:        column.Name,
			Searchable:  column.Searchable,
			Orderable:   column.Orderable,
			SearchValue: column.Search.Value,
			SearchRegex: column.Search.Regex,
		})
	}
	return result
}

// toInt reads a loosely typed integer, anything unreadable is 0
func toInt(value interface{}) int {
	switch v := value.(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	case json.Number:
		if i, err := v.Int64(); err == nil {
			return int(i)
		}
		if f, err := v.Float64(); err == nil {
			return int(f)
		}
	case string:
		if i, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
			return i
		}
	}
	return 0
}
