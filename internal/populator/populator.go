package populator

import (
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"ecom-data-loader/internal/connector"
	"ecom-data-loader/internal/loader"
	"ecom-data-loader/internal/normalizer"
	"ecom-data-loader/internal/schema"
	"ecom-data-loader/pkg/models"
)

// DatabasePopulator drives the end-to-end load: reset the store, recreate the
// schema, load every table's CSV in dependency order, and report row counts
type DatabasePopulator struct {
	DB       *connector.DatabaseConnector
	Registry *schema.Registry
	Loader   *loader.CSVLoader
	Logger   *logrus.Logger
}

// NewDatabasePopulator creates a new database populator
func NewDatabasePopulator(
	db *connector.DatabaseConnector,
	registry *schema.Registry,
	csvLoader *loader.CSVLoader,
	logger *logrus.Logger,
) *DatabasePopulator {
	return &DatabasePopulator{
		DB:       db,
		Registry: registry,
		Loader:   csvLoader,
		Logger:   logger,
	}
}

// Run executes the whole pipeline and returns the final row counts in
// registry order. The first error aborts the run; tables committed before the
// failure stay persisted. The store connection is released on every exit path.
func (dp *DatabasePopulator) Run() ([]models.TableCount, error) {
	if err := dp.DB.Reset(); err != nil {
		return nil, err
	}

	if err := dp.DB.Connect(); err != nil {
		return nil, err
	}
	defer dp.DB.Disconnect()

	if err := dp.DB.InitializeSchema(dp.Registry); err != nil {
		return nil, err
	}

	for _, table := range dp.Registry.OrderedTables {
		if err := dp.loadTable(table); err != nil {
			return nil, err
		}
	}

	return dp.rowCounts()
}

// loadTable loads one table's CSV and inserts all of its rows in a single
// transaction
func (dp *DatabasePopulator) loadTable(table string) error {
	dp.Logger.Infof("Loading table: %s", table)

	data, err := dp.Loader.Load(table)
	if err != nil {
		return err
	}

	tableSchema, ok := dp.Registry.Table(table)
	if !ok {
		return fmt.Errorf("no schema registered for table: %s", table)
	}

	for _, column := range tableSchema.Columns {
		if column.Boolean {
			data = normalizer.NormalizeBoolean(data, column.Name)
			dp.Logger.Debugf("Normalized boolean column %s.%s", table, column.Name)
		}
	}

	if len(data.Rows) == 0 {
		dp.Logger.Warningf("No rows found for table: %s", table)
		return nil
	}

	// Column order follows the CSV header; values bind by name
	placeholders := make([]string, len(data.Columns))
	for i := range data.Columns {
		placeholders[i] = "?"
	}

	insertSQL := fmt.Sprintf(
		"INSERT INTO %s (%s) VALUES (%s)",
		table,
		strings.Join(data.Columns, ", "),
		strings.Join(placeholders, ", "),
	)

	paramsList := make([][]interface{}, len(data.Rows))
	for i, row := range data.Rows {
		params := make([]interface{}, len(data.Columns))
		for j, column := range data.Columns {
			params[j] = row[column]
		}
		paramsList[i] = params
	}

	inserted, err := dp.DB.ExecuteMany(insertSQL, paramsList)
	if err != nil {
		return fmt.Errorf("failed to load table %s: %w", table, err)
	}

	dp.Logger.Infof("Inserted %d rows into %s", inserted, table)
	return nil
}

// rowCounts queries the count of every table in registry order
func (dp *DatabasePopulator) rowCounts() ([]models.TableCount, error) {
	counts := make([]models.TableCount, 0, len(dp.Registry.OrderedTables))

	for _, table := range dp.Registry.OrderedTables {
		count, err := dp.DB.CountRows(table)
		if err != nil {
			return nil, err
		}
		counts = append(counts, models.TableCount{Table: table, Count: count})
	}

	return counts, nil
}
