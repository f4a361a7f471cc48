// Package datatables implements server-side processing for DataTables over an
// in-memory sequence of records: ordering, global and per-column search,
// paging and serialization of the resulting page.
package datatables

// Engine runs requests against a table. An engine is immutable once built and
// can serve concurrent requests.
type Engine struct {
	table   *Table
	options options
}

func NewEngine(table *Table, opts ...Option) *Engine {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if table == nil {
		table = NewTable(nil)
	}
	return &Engine{table: table, options: o}
}

func (e *Engine) Table() *Table {
	return e.table
}

// Make processes a request. The pipeline is fixed: count, order, global search,
// per-column search, count, page and serialize. A ColumnNotFoundError aborts
// the request without any partial output.
func (e *Engine) Make(request *Request) (*Response, error) {
	if request == nil {
		request = &Request{}
	}
	logger := e.options.logger
	columns := newColumnResolver(e.table, request, e.options.computedColumns()...)

	records := e.table.Records()
	total := len(records)

	records, err := order(records, request.OrderableColumns(), columns, e.options.caseInsensitive)
	if err != nil {
		return nil, err
	}

	if e.options.filter != nil {
		records = e.options.filter(records, request)
	} else if request.IsSearchable() {
		if records, err = filterGlobal(records, request, columns, e.options.caseInsensitive); err != nil {
			return nil, err
		}
	}

	if records, err = filterByColumn(records, request, columns, e.options.caseInsensitive); err != nil {
		return nil, err
	}
	filtered := len(records)

	records = page(records, request, e.options.defaultLength)

	logger.Debug("processed datatable request",
		"draw", request.Draw,
		"recordsTotal", total,
		"recordsFiltered", filtered,
		"rows", len(records))

	response := &Response{
		Draw:            request.Draw,
		RecordsTotal:    total,
		RecordsFiltered: filtered,
		Data:            e.options.assemble(records),
	}

	if e.options.debug {
		response = withInput(response, request)
	}
	return response, nil
}
