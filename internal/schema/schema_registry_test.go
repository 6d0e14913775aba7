package schema

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRegistry() *Registry {
	logger := logrus.New()
	logger.SetLevel(logrus.FatalLevel)
	return NewRegistry(logger)
}

func TestNewRegistryTables(t *testing.T) {
	r := newTestRegistry()

	require.Len(t, r.Tables, 5)

	columnCounts := map[string]int{
		"customers":   7,
		"products":    6,
		"orders":      6,
		"order_items": 5,
		"reviews":     6,
	}

	for name, want := range columnCounts {
		table, ok := r.Table(name)
		require.True(t, ok, "table %s not registered", name)
		assert.Len(t, table.Columns, want)
		assert.True(t, table.Columns[0].PrimaryKey, "first column of %s should be the primary key", name)
	}
}

func TestInsertionOrder(t *testing.T) {
	r := newTestRegistry()

	want := []string{"customers", "products", "orders", "order_items", "reviews"}
	assert.Equal(t, want, r.OrderedTables)
}

func TestInsertionOrderRespectsForeignKeys(t *testing.T) {
	r := newTestRegistry()

	position := make(map[string]int)
	for i, name := range r.OrderedTables {
		position[name] = i
	}

	for _, table := range r.Tables {
		for _, fk := range table.ForeignKeys {
			assert.Less(t, position[fk.ReferencedTable], position[table.Name],
				"%s must be created before %s", fk.ReferencedTable, table.Name)
		}
	}
}

func TestTableLookup(t *testing.T) {
	r := newTestRegistry()

	table, ok := r.Table("products")
	require.True(t, ok)
	assert.Equal(t, "products", table.Name)

	inStock := table.Columns[4]
	assert.Equal(t, "in_stock", inStock.Name)
	assert.True(t, inStock.Boolean)
	assert.True(t, inStock.NotNull)

	_, ok = r.Table("payments")
	assert.False(t, ok)
}

func TestCreateTableSQL(t *testing.T) {
	r := newTestRegistry()

	sql, err := r.CreateTableSQL("products")
	require.NoError(t, err)
	assert.Contains(t, sql, "CREATE TABLE products (")
	assert.Contains(t, sql, "product_id TEXT PRIMARY KEY")
	assert.Contains(t, sql, "price REAL NOT NULL")
	assert.Contains(t, sql, "in_stock INTEGER NOT NULL CHECK (in_stock IN (0, 1))")

	sql, err = r.CreateTableSQL("order_items")
	require.NoError(t, err)
	assert.Contains(t, sql, "FOREIGN KEY (order_id) REFERENCES orders(order_id)")
	assert.Contains(t, sql, "FOREIGN KEY (product_id) REFERENCES products(product_id)")

	_, err = r.CreateTableSQL("payments")
	assert.ErrorContains(t, err, "unknown table: payments")
}

func TestDropTableSQL(t *testing.T) {
	r := newTestRegistry()

	assert.Equal(t, "DROP TABLE IF EXISTS reviews", r.DropTableSQL("reviews"))
}

func TestColumnNames(t *testing.T) {
	r := newTestRegistry()

	table, ok := r.Table("orders")
	require.True(t, ok)

	want := []string{"order_id", "customer_id", "order_date", "total_amount", "payment_method", "order_status"}
	assert.Equal(t, want, table.ColumnNames())
}
