package datatables

import (
	"regexp"
	"strconv"
	"strings"
)

var aliasExpression = regexp.MustCompile(`(?i)\s+as\s+`)

// ColumnSpec describes one column of a table as resolved for a request.
type ColumnSpec struct {
	Index      int    `json:"index"`
	Name       string `json:"name"`
	Identity   string `json:"identity,omitempty"`
	Searchable bool   `json:"searchable,omitempty"`
	Orderable  bool   `json:"orderable,omitempty"`
}

// Table is the immutable source sequence of a logical table together with the
// column names derived from the shape of its first record. It is safe to share
// between concurrent requests.
type Table struct {
	records []Record
	columns []string
	first   *Row
}

func NewTable(records []Record) *Table {
	t := &Table{
		records: make([]Record, len(records)),
		columns: make([]string, 0),
	}
	copy(t.records, records)

	if len(records) > 0 {
		t.first = Serialize(records[0])
		t.columns = t.first.Keys()
	}
	return t
}

// Records returns a copy of the source sequence
func (t *Table) Records() []Record {
	records := make([]Record, len(t.records))
	copy(records, t.records)
	return records
}

func (t *Table) Len() int {
	return len(t.records)
}

func (t *Table) Columns() []ColumnSpec {
	specs := make([]ColumnSpec, 0, len(t.columns))
	for i, name := range t.columns {
		specs = append(specs, ColumnSpec{Index: i, Name: name})
	}
	return specs
}

// columnResolver holds the columns declared by a request, resolved once
// against the table. Every stage looks columns up through it so that an index
// means the same column for ordering and searching.
type columnResolver struct {
	table    *Table
	computed map[string]bool
	specs    []ColumnSpec
	errs     []error
}

// newColumnResolver resolves the declared columns of the request. Computed
// columns added at assembly are known names even though no record holds them.
func newColumnResolver(table *Table, request *Request, computed ...string) *columnResolver {
	c := &columnResolver{
		table:    table,
		computed: make(map[string]bool, len(computed)),
		specs:    make([]ColumnSpec, len(request.Columns)),
		errs:     make([]error, len(request.Columns)),
	}
	for _, name := range computed {
		c.computed[name] = true
	}
	for i, column := range request.Columns {
		c.specs[i], c.errs[i] = c.resolve(i, column)
	}
	return c
}

// NameOf returns the column name at the given index: the declared name or, for
// columns declared by position, the column of the first record.
func (c *columnResolver) NameOf(index int) (string, error) {
	spec, err := c.Spec(index)
	return spec.Name, err
}

// IdentityOf returns the key used to look up the column in a row view.
func (c *columnResolver) IdentityOf(index int) (string, error) {
	spec, err := c.Spec(index)
	return spec.Identity, err
}

// Spec returns the resolved column. Indexes the request does not declare fall
// back to the columns of the first record.
func (c *columnResolver) Spec(index int) (ColumnSpec, error) {
	if index >= 0 && index < len(c.specs) {
		return c.specs[index], c.errs[index]
	}
	name, err := c.derived(index)
	if err != nil {
		return ColumnSpec{}, err
	}
	return ColumnSpec{Index: index, Name: name, Identity: name}, nil
}

// resolve returns the spec of a declared column. A column that can not be
// resolved keeps its flags alongside the error.
func (c *columnResolver) resolve(index int, column ColumnRequest) (ColumnSpec, error) {
	flags := ColumnSpec{Index: index, Searchable: column.Searchable, Orderable: column.Orderable}
	spec := flags

	declared := strings.TrimSpace(column.Name)
	if declared == "" {
		declared = strings.TrimSpace(column.Data)
	}

	if declared == "" || isIndex(declared) {
		position := index
		if declared != "" {
			position, _ = strconv.Atoi(declared)
		}
		name, err := c.derived(position)
		if err != nil {
			return flags, NewColumnNotFoundError(index)
		}
		spec.Name, spec.Identity = name, name
		return spec, nil
	}

	// "users.name as user_name" is looked up as user_name
	if parts := aliasExpression.Split(declared, 2); len(parts) == 2 {
		spec.Name, spec.Identity = strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1])
		if c.table.first != nil && !c.known(spec.Identity) {
			return flags, NewColumnNotFoundError(index)
		}
		return spec, nil
	}

	spec.Name, spec.Identity = declared, declared
	if c.known(declared) {
		return spec, nil
	}

	// qualified names collapse to their last segment when records are flat
	if i := strings.LastIndex(declared, "."); i >= 0 {
		spec.Identity = declared[i+1:]
	}
	if c.table.first != nil && !c.known(spec.Identity) {
		return flags, NewColumnNotFoundError(index)
	}
	return spec, nil
}

// Searchable returns the declared columns flagged searchable, in declaration
// order. It fails on the first of them that can not be resolved.
func (c *columnResolver) Searchable() ([]ColumnSpec, error) {
	specs := make([]ColumnSpec, 0, len(c.specs))
	for i, spec := range c.specs {
		if !spec.Searchable {
			continue
		}
		if c.errs[i] != nil {
			return nil, c.errs[i]
		}
		specs = append(specs, spec)
	}
	return specs, nil
}

// known reports whether the path resolves against the first record or names a
// computed column.
func (c *columnResolver) known(path string) bool {
	if c.computed[path] {
		return true
	}
	if c.table.first == nil {
		return false
	}
	_, ok := c.table.first.Lookup(path)
	return ok
}

func (c *columnResolver) derived(index int) (string, error) {
	if index < 0 || index >= len(c.table.columns) {
		return "", NewColumnNotFoundError(index)
	}
	return c.table.columns[index], nil
}

func isIndex(value string) bool {
	_, err := strconv.Atoi(value)
	return err == nil
}
