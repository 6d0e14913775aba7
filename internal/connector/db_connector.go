package connector

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"strconv"

	_ "github.com/mattn/go-sqlite3"
	"github.com/sirupsen/logrus"

	"ecom-data-loader/internal/schema"
	"ecom-data-loader/pkg/models"
)

// ErrSchemaSetup indicates that dropping or creating a table failed during
// store initialization
var ErrSchemaSetup = errors.New("schema setup failed")

// DatabaseConnector handles the SQLite store file, its connection, and
// statement execution
type DatabaseConnector struct {
	Path   string
	DB     *sql.DB
	Logger *logrus.Logger
}

// NewDatabaseConnector creates a new database connector
func NewDatabaseConnector(path string, logger *logrus.Logger) *DatabaseConnector {
	if path == "" {
		path = getEnvOrDefault("ECOM_DB_PATH", "ecom.db")
	}

	return &DatabaseConnector{
		Path:   path,
		Logger: logger,
	}
}

// Reset deletes the store file so the next connection starts from scratch.
// A missing file is not an error.
func (dc *DatabaseConnector) Reset() error {
	if err := os.Remove(dc.Path); err != nil {
		if os.IsNotExist(err) {
			dc.Logger.Debugf("No existing database at %s", dc.Path)
			return nil
		}
		dc.Logger.Errorf("Error removing database file: %v", err)
		return fmt.Errorf("failed to remove database file %s: %w", dc.Path, err)
	}

	dc.Logger.Infof("Removed existing database file %s", dc.Path)
	return nil
}

// Connect opens the SQLite database with foreign-key enforcement enabled for
// the session
func (dc *DatabaseConnector) Connect() error {
	dsn := fmt.Sprintf("file:%s?_fk=1", dc.Path)
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		dc.Logger.Errorf("Error opening SQLite database: %v", err)
		return err
	}

	// The whole run shares one exclusively-owned connection, so session
	// pragmas stick for its duration.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		dc.Logger.Errorf("Error pinging SQLite database: %v", err)
		db.Close()
		return err
	}

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		dc.Logger.Errorf("Error enabling foreign keys: %v", err)
		db.Close()
		return err
	}

	dc.DB = db
	dc.Logger.Infof("Connected to SQLite database: %s", dc.Path)
	return nil
}

// Disconnect closes the database connection
func (dc *DatabaseConnector) Disconnect() {
	if dc.DB != nil {
		err := dc.DB.Close()
		if err != nil {
			dc.Logger.Errorf("Error closing database connection: %v", err)
		} else {
			dc.Logger.Info("SQLite connection closed")
		}
		dc.DB = nil
	}
}

// InitializeSchema drops and recreates every table in registry order
func (dc *DatabaseConnector) InitializeSchema(registry *schema.Registry) error {
	if dc.DB == nil {
		if err := dc.Connect(); err != nil {
			return err
		}
	}

	for _, table := range registry.OrderedTables {
		if _, err := dc.DB.Exec(registry.DropTableSQL(table)); err != nil {
			dc.Logger.Errorf("Error dropping table %s: %v", table, err)
			return fmt.Errorf("%w: drop table %s: %v", ErrSchemaSetup, table, err)
		}

		createSQL, err := registry.CreateTableSQL(table)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrSchemaSetup, err)
		}

		if _, err := dc.DB.Exec(createSQL); err != nil {
			dc.Logger.Errorf("Error creating table %s: %v", table, err)
			return fmt.Errorf("%w: create table %s: %v", ErrSchemaSetup, table, err)
		}

		dc.Logger.Debugf("Created table %s", table)
	}

	dc.Logger.Infof("Initialized schema with %d tables", len(registry.OrderedTables))
	return nil
}

// ExecuteQuery executes a SQL query and returns the results
func (dc *DatabaseConnector) ExecuteQuery(query string, params ...interface{}) ([]models.Row, error) {
	if dc.DB == nil {
		if err := dc.Connect(); err != nil {
			return nil, err
		}
	}

	rows, err := dc.DB.Query(query, params...)
	if err != nil {
		dc.Logger.Errorf("Error executing query: %v", err)
		return nil, err
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		dc.Logger.Errorf("Error getting columns: %v", err)
		return nil, err
	}

	var results []models.Row

	for rows.Next() {
		values := make([]interface{}, len(columns))
		valuePtrs := make([]interface{}, len(columns))
		for i := range columns {
			valuePtrs[i] = &values[i]
		}

		if err := rows.Scan(valuePtrs...); err != nil {
			dc.Logger.Errorf("Error scanning row: %v", err)
			return nil, err
		}

		row := make(models.Row)
		for i, col := range columns {
			val := values[i]
			if val == nil {
				row[col] = nil
				continue
			}
			// Convert []byte to string for text fields
			if b, ok := val.([]byte); ok {
				row[col] = string(b)
			} else {
				row[col] = val
			}
		}

		results = append(results, row)
	}

	if err := rows.Err(); err != nil {
		dc.Logger.Errorf("Error iterating rows: %v", err)
		return nil, err
	}

	return results, nil
}

// ExecuteStatement executes a SQL statement and returns the number of affected rows
func (dc *DatabaseConnector) ExecuteStatement(query string, params ...interface{}) (int64, error) {
	if dc.DB == nil {
		if err := dc.Connect(); err != nil {
			return 0, err
		}
	}

	result, err := dc.DB.Exec(query, params...)
	if err != nil {
		dc.Logger.Errorf("Error executing statement: %v", err)
		return 0, err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		dc.Logger.Errorf("Error getting affected rows: %v", err)
		return 0, err
	}

	return affected, nil
}

// ExecuteMany executes a SQL statement once per parameter set inside a single
// transaction. The first failing statement rolls the transaction back.
func (dc *DatabaseConnector) ExecuteMany(query string, paramsList [][]interface{}) (int64, error) {
	if dc.DB == nil {
		if err := dc.Connect(); err != nil {
			return 0, err
		}
	}

	tx, err := dc.DB.Begin()
	if err != nil {
		dc.Logger.Errorf("Error starting transaction: %v", err)
		return 0, err
	}

	stmt, err := tx.Prepare(query)
	if err != nil {
		dc.Logger.Errorf("Error preparing statement: %v", err)
		tx.Rollback()
		return 0, err
	}
	defer stmt.Close()

	var totalAffected int64

	for _, params := range paramsList {
		result, err := stmt.Exec(params...)
		if err != nil {
			dc.Logger.Errorf("Error executing batch statement: %v", err)
			tx.Rollback()
			return 0, err
		}

		affected, err := result.RowsAffected()
		if err != nil {
			dc.Logger.Errorf("Error getting affected rows: %v", err)
			tx.Rollback()
			return 0, err
		}

		totalAffected += affected
	}

	if err := tx.Commit(); err != nil {
		dc.Logger.Errorf("Error committing transaction: %v", err)
		tx.Rollback()
		return 0, err
	}

	return totalAffected, nil
}

// CountRows returns the number of rows currently stored in a table
func (dc *DatabaseConnector) CountRows(table string) (int64, error) {
	result, err := dc.ExecuteQuery(fmt.Sprintf("SELECT COUNT(*) as count FROM %s", table))
	if err != nil {
		return 0, err
	}

	if len(result) == 0 {
		return 0, fmt.Errorf("no result returned for count query on table %s", table)
	}

	count, ok := result[0]["count"].(int64)
	if !ok {
		countStr := fmt.Sprintf("%v", result[0]["count"])
		countInt, err := strconv.ParseInt(countStr, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("failed to parse count for table %s: %w", table, err)
		}
		count = countInt
	}

	return count, nil
}

// getEnvOrDefault gets an environment variable or returns a default value
func getEnvOrDefault(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}
