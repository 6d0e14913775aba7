package schema

import (
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/yourbasic/graph"

	"ecom-data-loader/pkg/models"
)

// Registry holds the e-commerce table definitions and derives table creation
// statements, the foreign-key dependency graph, and the insertion order from
// them.
type Registry struct {
	Tables          []models.TableSchema
	OrderedTables   []string
	DependencyGraph *graph.Mutable
	TableIndexMap   map[string]int
	IndexTableMap   map[int]string
	Logger          *logrus.Logger
}

// NewRegistry creates a registry with the fixed e-commerce schema
func NewRegistry(logger *logrus.Logger) *Registry {
	r := &Registry{
		Tables:        tableDefinitions(),
		TableIndexMap: make(map[string]int),
		IndexTableMap: make(map[int]string),
		Logger:        logger,
	}

	for i, table := range r.Tables {
		r.TableIndexMap[table.Name] = i
		r.IndexTableMap[i] = table.Name
	}

	r.buildDependencyGraph()
	r.OrderedTables = r.computeInsertionOrder()

	return r
}

// tableDefinitions declares the five tables. Order matters: referenced tables
// are declared before the tables that reference them.
func tableDefinitions() []models.TableSchema {
	return []models.TableSchema{
		{
			Name: "customers",
			Columns: []models.Column{
				{Name: "customer_id", Type: "INTEGER", PrimaryKey: true},
				{Name: "name", Type: "TEXT", NotNull: true},
				{Name: "email", Type: "TEXT", NotNull: true},
				{Name: "phone", Type: "TEXT", NotNull: true},
				{Name: "created_at", Type: "TEXT", NotNull: true},
				{Name: "city", Type: "TEXT", NotNull: true},
				{Name: "state", Type: "TEXT", NotNull: true},
			},
		},
		{
			Name: "products",
			Columns: []models.Column{
				{Name: "product_id", Type: "TEXT", PrimaryKey: true},
				{Name: "product_name", Type: "TEXT", NotNull: true},
				{Name: "category", Type: "TEXT", NotNull: true},
				{Name: "price", Type: "REAL", NotNull: true},
				{Name: "in_stock", Type: "INTEGER", NotNull: true, Boolean: true},
				{Name: "added_at", Type: "TEXT", NotNull: true},
			},
		},
		{
			Name: "orders",
			Columns: []models.Column{
				{Name: "order_id", Type: "TEXT", PrimaryKey: true},
				{Name: "customer_id", Type: "INTEGER", NotNull: true},
				{Name: "order_date", Type: "TEXT", NotNull: true},
				{Name: "total_amount", Type: "REAL", NotNull: true},
				{Name: "payment_method", Type: "TEXT", NotNull: true},
				{Name: "order_status", Type: "TEXT", NotNull: true},
			},
			ForeignKeys: []models.ForeignKey{
				{Column: "customer_id", ReferencedTable: "customers", ReferencedColumn: "customer_id"},
			},
		},
		{
			Name: "order_items",
			Columns: []models.Column{
				{Name: "item_id", Type: "TEXT", PrimaryKey: true},
				{Name: "order_id", Type: "TEXT", NotNull: true},
				{Name: "product_id", Type: "TEXT", NotNull: true},
				{Name: "quantity", Type: "INTEGER", NotNull: true},
				{Name: "item_price", Type: "REAL", NotNull: true},
			},
			ForeignKeys: []models.ForeignKey{
				{Column: "order_id", ReferencedTable: "orders", ReferencedColumn: "order_id"},
				{Column: "product_id", ReferencedTable: "products", ReferencedColumn: "product_id"},
			},
		},
		{
			Name: "reviews",
			Columns: []models.Column{
				{Name: "review_id", Type: "TEXT", PrimaryKey: true},
				{Name: "customer_id", Type: "INTEGER", NotNull: true},
				{Name: "product_id", Type: "TEXT", NotNull: true},
				{Name: "rating", Type: "INTEGER", NotNull: true},
				{Name: "comment", Type: "TEXT", NotNull: true},
				{Name: "review_date", Type: "TEXT", NotNull: true},
			},
			ForeignKeys: []models.ForeignKey{
				{Column: "customer_id", ReferencedTable: "customers", ReferencedColumn: "customer_id"},
				{Column: "product_id", ReferencedTable: "products", ReferencedColumn: "product_id"},
			},
		},
	}
}

// buildDependencyGraph adds an edge from each referenced table to every table
// referencing it
func (r *Registry) buildDependencyGraph() {
	g := graph.New(len(r.Tables))

	for _, table := range r.Tables {
		child := r.TableIndexMap[table.Name]
		for _, fk := range table.ForeignKeys {
			parent, ok := r.TableIndexMap[fk.ReferencedTable]
			if !ok {
				r.Logger.Warningf("Foreign key %s.%s references unknown table %s",
					table.Name, fk.Column, fk.ReferencedTable)
				continue
			}

			// Self-references do not constrain the insertion order
			if parent == child {
				continue
			}

			g.Add(parent, child)
		}
	}

	r.DependencyGraph = g
}

// computeInsertionOrder sorts tables so that every referenced table precedes
// the tables referencing it; ties resolve by declaration order
func (r *Registry) computeInsertionOrder() []string {
	n := len(r.Tables)

	if !graph.Acyclic(r.DependencyGraph) {
		r.Logger.Warning("Foreign keys form a cycle, falling back to declaration order")
		names := make([]string, n)
		for i, table := range r.Tables {
			names[i] = table.Name
		}
		return names
	}

	inDegree := make([]int, n)
	for v := 0; v < n; v++ {
		r.DependencyGraph.Visit(v, func(w int, _ int64) bool {
			inDegree[w]++
			return false
		})
	}

	order := make([]string, 0, n)
	placed := make([]bool, n)

	for len(order) < n {
		next := -1
		for v := 0; v < n; v++ {
			if !placed[v] && inDegree[v] == 0 {
				next = v
				break
			}
		}
		if next < 0 {
			break
		}

		placed[next] = true
		order = append(order, r.IndexTableMap[next])
		r.DependencyGraph.Visit(next, func(w int, _ int64) bool {
			inDegree[w]--
			return false
		})
	}

	return order
}

// Table returns the definition for a table name
func (r *Registry) Table(name string) (models.TableSchema, bool) {
	i, ok := r.TableIndexMap[name]
	if !ok {
		return models.TableSchema{}, false
	}
	return r.Tables[i], true
}

// CreateTableSQL builds the CREATE TABLE statement for a table
func (r *Registry) CreateTableSQL(name string) (string, error) {
	table, ok := r.Table(name)
	if !ok {
		return "", fmt.Errorf("unknown table: %s", name)
	}

	defs := make([]string, 0, len(table.Columns)+len(table.ForeignKeys))
	for _, column := range table.Columns {
		defs = append(defs, columnDef(column))
	}
	for _, fk := range table.ForeignKeys {
		defs = append(defs, fmt.Sprintf("  FOREIGN KEY (%s) REFERENCES %s(%s)",
			fk.Column, fk.ReferencedTable, fk.ReferencedColumn))
	}

	return fmt.Sprintf("CREATE TABLE %s (\n%s\n)", table.Name, strings.Join(defs, ",\n")), nil
}

// DropTableSQL builds the DROP TABLE statement for a table
func (r *Registry) DropTableSQL(name string) string {
	return fmt.Sprintf("DROP TABLE IF EXISTS %s", name)
}

func columnDef(column models.Column) string {
	parts := []string{column.Name, column.Type}
	if column.PrimaryKey {
		parts = append(parts, "PRIMARY KEY")
	}
	if column.NotNull {
		parts = append(parts, "NOT NULL")
	}
	if column.Boolean {
		parts = append(parts, fmt.Sprintf("CHECK (%s IN (0, 1))", column.Name))
	}
	return "  " + strings.Join(parts, " ")
}
