package models

// Row represents a single record keyed by column name
type Row map[string]interface{}

// Dataset represents tabular data with a fixed column layout and ordered rows
type Dataset struct {
	Columns []string
	Rows    []Row
}

// Clone returns a deep copy of the dataset
func (d Dataset) Clone() Dataset {
	columns := make([]string, len(d.Columns))
	copy(columns, d.Columns)

	rows := make([]Row, len(d.Rows))
	for i, row := range d.Rows {
		clone := make(Row, len(row))
		for name, value := range row {
			clone[name] = value
		}
		rows[i] = clone
	}

	return Dataset{Columns: columns, Rows: rows}
}

// Column represents a table column definition
type Column struct {
	Name       string
	Type       string
	PrimaryKey bool
	NotNull    bool
	// Boolean marks a column whose values are canonicalized to integer 0/1
	// before insert and constrained to that domain in the store.
	Boolean bool
}

// ForeignKey represents a foreign key relationship
type ForeignKey struct {
	Column           string
	ReferencedTable  string
	ReferencedColumn string
}

// TableSchema represents the full definition of a single table
type TableSchema struct {
	Name        string
	Columns     []Column
	ForeignKeys []ForeignKey
}

// ColumnNames returns the table's column names in declaration order
func (t TableSchema) ColumnNames() []string {
	names := make([]string, len(t.Columns))
	for i, column := range t.Columns {
		names[i] = column.Name
	}
	return names
}

// TableCount pairs a table name with its row count
type TableCount struct {
	Table string
	Count int64
}
