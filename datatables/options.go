package datatables

import (
	"github.com/datastax/cassandra-datatables/log"
	"go.uber.org/zap"
)

// ColumnFunc computes a cell from the row view of a record.
type ColumnFunc func(row *Row) interface{}

// FilterFunc replaces the automatic global search.
type FilterFunc func(records []Record, request *Request) []Record

type addedColumn struct {
	name     string
	position int
	fn       ColumnFunc
}

type editedColumn struct {
	name string
	fn   ColumnFunc
}

type rowDataColumn struct {
	key string
	fn  ColumnFunc
}

type options struct {
	caseInsensitive bool
	debug           bool
	objectRows      bool
	defaultLength   int
	filter          FilterFunc
	added           []addedColumn
	edited          []editedColumn
	removed         []string
	rowID           ColumnFunc
	rowClass        ColumnFunc
	rowData         []rowDataColumn
	logger          log.Logger
}

func defaultOptions() options {
	return options{
		caseInsensitive: true,
		objectRows:      true,
		defaultLength:   DefaultPageLength,
		logger:          log.NewZapLogger(zap.NewNop()),
	}
}

type Option func(*options)

// computedColumns returns the names of the columns added at assembly.
func (o *options) computedColumns() []string {
	names := make([]string, 0, len(o.added))
	for _, c := range o.added {
		names = append(names, c.name)
	}
	return names
}

func WithCaseInsensitive(caseInsensitive bool) Option {
	return func(o *options) {
		o.caseInsensitive = caseInsensitive
	}
}

// WithDebug echoes the inbound request parameters in the response.
func WithDebug(debug bool) Option {
	return func(o *options) {
		o.debug = debug
	}
}

// WithObjectRows selects between rows as objects (the default) and rows as arrays of
// values, in column order.
func WithObjectRows(objectRows bool) Option {
	return func(o *options) {
		o.objectRows = objectRows
	}
}

func WithDefaultPageLength(length int) Option {
	return func(o *options) {
		if length > 0 {
			o.defaultLength = length
		}
	}
}

// WithFilter disables the global keyword search and uses the callback instead.
// Per-column searches still apply.
func WithFilter(fn FilterFunc) Option {
	return func(o *options) {
		o.filter = fn
	}
}

func WithLogger(logger log.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithAddedColumn appends a computed column to every row of the page.
func WithAddedColumn(name string, fn ColumnFunc) Option {
	return WithAddedColumnAt(name, -1, fn)
}

// WithAddedColumnAt inserts a computed column at the given position, a negative
// position appends it.
func WithAddedColumnAt(name string, position int, fn ColumnFunc) Option {
	return func(o *options) {
		o.added = append(o.added, addedColumn{name: name, position: position, fn: fn})
	}
}

func WithEditedColumn(name string, fn ColumnFunc) Option {
	return func(o *options) {
		o.edited = append(o.edited, editedColumn{name: name, fn: fn})
	}
}

func WithRemovedColumns(names ...string) Option {
	return func(o *options) {
		o.removed = append(o.removed, names...)
	}
}

// WithRowID sets DT_RowId on every row
func WithRowID(fn ColumnFunc) Option {
	return func(o *options) {
		o.rowID = fn
	}
}

// WithRowIDColumn uses the value of a column as DT_RowId
func WithRowIDColumn(column string) Option {
	return WithRowID(func(row *Row) interface{} {
		value, _ := row.Lookup(column)
		return value
	})
}

func WithRowClass(fn ColumnFunc) Option {
	return func(o *options) {
		o.rowClass = fn
	}
}

// WithRowData adds a key to the DT_RowData object of every row
func WithRowData(key string, fn ColumnFunc) Option {
	return func(o *options) {
		o.rowData = append(o.rowData, rowDataColumn{key: key, fn: fn})
	}
}
