package datatables

import "strings"

type Direction string

const (
	Ascending  Direction = "asc"
	Descending Direction = "desc"
)

// ParseDirection maps any casing of "desc" to Descending, everything else is ascending.
func ParseDirection(dir string) Direction {
	if strings.EqualFold(strings.TrimSpace(dir), string(Descending)) {
		return Descending
	}
	return Ascending
}

// OrderDirective is a single ordering instruction as sent by the client.
type OrderDirective struct {
	Column int
	Dir    Direction
}

// ColumnRequest holds the client side declaration of a column.
type ColumnRequest struct {
	Data        string
	Name        string
	Searchable  bool
	Orderable   bool
	SearchValue string
	SearchRegex bool
}

// Request is the transport independent form of a DataTables server-side request.
type Request struct {
	Draw int

	// Start is the zero based offset of the page
	Start int

	// Length is the page size, values <= 0 mean the engine default
	Length int

	// All is set when the client asked for the whole filtered set (length = -1)
	All bool

	SearchValue string
	SearchRegex bool
	Order       []OrderDirective
	Columns     []ColumnRequest

	// Raw holds the inbound parameters as received, echoed back in debug mode
	Raw map[string]interface{}
}

func (r *Request) Keyword() string {
	return r.SearchValue
}

// IsSearchable reports whether a global search keyword was supplied.
func (r *Request) IsSearchable() bool {
	return r.SearchValue != ""
}

func (r *Request) IsColumnOrderable(index int) bool {
	return index >= 0 && index < len(r.Columns) && r.Columns[index].Orderable
}

// OrderableColumns returns the directives that target orderable columns, in request order.
func (r *Request) OrderableColumns() []OrderDirective {
	orderable := make([]OrderDirective, 0, len(r.Order))
	for _, o := range r.Order {
		if r.IsColumnOrderable(o.Column) {
			orderable = append(orderable, o)
		}
	}
	return orderable
}

func (r *Request) SearchableColumnIndex() []int {
	indexes := make([]int, 0, len(r.Columns))
	for i, c := range r.Columns {
		if c.Searchable {
			indexes = append(indexes, i)
		}
	}
	return indexes
}

// IsColumnSearchable reports whether the column is searchable and carries its own keyword.
func (r *Request) IsColumnSearchable(index int) bool {
	return index >= 0 && index < len(r.Columns) &&
		r.Columns[index].Searchable && r.Columns[index].SearchValue != ""
}

func (r *Request) ColumnKeyword(index int) string {
	if index < 0 || index >= len(r.Columns) {
		return ""
	}
	return r.Columns[index].SearchValue
}

func (r *Request) IsPaginationable() bool {
	return !r.All
}
