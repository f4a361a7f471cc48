package datatables

// Keys understood by the DataTables client in a row object.
const (
	RowIDKey    = "DT_RowId"
	RowClassKey = "DT_RowClass"
	RowDataKey  = "DT_RowData"
)

// EmptyValue fills the cells of columns a row does not have.
const EmptyValue = ""

// Response is the DataTables server-side response.
type Response struct {
	Draw            int           `json:"draw"`
	RecordsTotal    int           `json:"recordsTotal"`
	RecordsFiltered int           `json:"recordsFiltered"`
	Data            []interface{} `json:"data"`

	// Input is only set in debug mode, it holds the request parameters and is
	// written even when there were none.
	Input interface{} `json:"input,omitempty"`
}

// withInput decorates the response with the request parameters as received.
func withInput(response *Response, request *Request) *Response {
	input := request.Raw
	if input == nil {
		input = make(map[string]interface{})
	}
	response.Input = input
	return response
}

// assemble turns the final records into response rows.
func (o *options) assemble(records []Record) []interface{} {
	rows := make([]*Row, 0, len(records))
	for _, record := range records {
		rows = append(rows, o.initColumns(record))
	}
	rows = regulate(rows)

	data := make([]interface{}, 0, len(rows))
	for _, row := range rows {
		if o.objectRows {
			data = append(data, row)
		} else {
			data = append(data, row.Values())
		}
	}
	return data
}

// initColumns applies computed, edited and removed columns to a copy of the
// record's row view.
func (o *options) initColumns(record Record) *Row {
	view := Serialize(record)
	row := view.Clone()

	for _, c := range o.added {
		row.Insert(c.position, c.name, c.fn(view))
	}
	for _, c := range o.edited {
		row.Set(c.name, c.fn(view))
	}
	row.Delete(o.removed...)

	if o.rowID != nil {
		row.Set(RowIDKey, o.rowID(view))
	}
	if o.rowClass != nil {
		row.Set(RowClassKey, o.rowClass(view))
	}
	if len(o.rowData) > 0 {
		data := NewRow()
		for _, c := range o.rowData {
			data.Set(c.key, c.fn(view))
		}
		row.Set(RowDataKey, data)
	}
	return row
}

// regulate gives every row the same set of columns, in first-seen order, so
// that heterogeneous records still produce a rectangular table.
func regulate(rows []*Row) []*Row {
	seen := make(map[string]bool)
	keys := make([]string, 0)
	for _, row := range rows {
		for _, k := range row.keys {
			if !seen[k] {
				seen[k] = true
				keys = append(keys, k)
			}
		}
	}

	regulated := make([]*Row, 0, len(rows))
	for _, row := range rows {
		r := NewRow()
		for _, k := range keys {
			if value, ok := row.Get(k); ok {
				r.Set(k, value)
			} else {
				r.Set(k, EmptyValue)
			}
		}
		regulated = append(regulated, r)
	}
	return regulated
}
