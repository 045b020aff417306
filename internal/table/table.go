package table

// Column names the dashboard looks for. Each one is optional.
const (
	ColCases     = "cases"
	ColRegion    = "region"
	ColMonth     = "month"
	ColLatitude  = "latitude"
	ColLongitude = "longitude"
)

// Schema is the ordered set of column names known when the table was loaded.
type Schema struct {
	columns []string
	index   map[string]int
}

// NewSchema builds a Schema. Names must already be unique.
func NewSchema(columns []string) Schema {
	s := Schema{
		columns: append([]string(nil), columns...),
		index:   make(map[string]int, len(columns)),
	}
	for i, c := range s.columns {
		s.index[c] = i
	}
	return s
}

// Columns returns a copy of the column names in file order.
func (s Schema) Columns() []string {
	return append([]string(nil), s.columns...)
}

func (s Schema) Len() int { return len(s.columns) }

// Has reports whether every named column is present.
func (s Schema) Has(columns ...string) bool {
	for _, c := range columns {
		if _, ok := s.index[c]; !ok {
			return false
		}
	}
	return true
}

// Index returns the position of column, or -1.
func (s Schema) Index(column string) int {
	if i, ok := s.index[column]; ok {
		return i
	}
	return -1
}

// Row is one record. Cells are stored in schema order.
type Row struct {
	schema *Schema
	cells  []Value
}

// Get returns the cell for column; unknown columns read as Missing.
func (r Row) Get(column string) Value {
	i := r.schema.Index(column)
	if i < 0 || i >= len(r.cells) {
		return Value{}
	}
	return r.cells[i]
}

// Values returns a copy of the cells in schema order.
func (r Row) Values() []Value {
	return append([]Value(nil), r.cells...)
}

// Table is an immutable, ordered collection of rows sharing one Schema.
type Table struct {
	schema Schema
	rows   [][]Value
}

// New builds a Table from a schema and rows of cells. Short rows are padded
// with Missing and long rows truncated to the schema width.
func New(schema Schema, rows [][]Value) *Table {
	t := &Table{schema: schema, rows: make([][]Value, len(rows))}
	width := schema.Len()
	for i, r := range rows {
		cells := make([]Value, width)
		copy(cells, r)
		t.rows[i] = cells
	}
	return t
}

func (t *Table) Schema() Schema { return t.schema }

func (t *Table) Len() int { return len(t.rows) }

// Row returns row i.
func (t *Table) Row(i int) Row {
	return Row{schema: &t.schema, cells: t.rows[i]}
}

// Rows returns every row in input order.
func (t *Table) Rows() []Row {
	out := make([]Row, len(t.rows))
	for i := range t.rows {
		out[i] = t.Row(i)
	}
	return out
}

// Column returns the cells of column in row order, or nil if it does not exist.
func (t *Table) Column(column string) []Value {
	idx := t.schema.Index(column)
	if idx < 0 {
		return nil
	}
	out := make([]Value, len(t.rows))
	for i, r := range t.rows {
		out[i] = r[idx]
	}
	return out
}

// Head returns at most n rows from the start of the table.
func (t *Table) Head(n int) []Row {
	if n < 0 || n > len(t.rows) {
		n = len(t.rows)
	}
	out := make([]Row, n)
	for i := 0; i < n; i++ {
		out[i] = t.Row(i)
	}
	return out
}
