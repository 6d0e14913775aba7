package loader

import (
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"ecom-data-loader/pkg/models"
)

// ErrMissingCSV indicates that a required source CSV file does not exist
var ErrMissingCSV = errors.New("missing CSV")

// CSVLoader reads table source files from a single data directory
type CSVLoader struct {
	DataDir string
	Logger  *logrus.Logger
}

// NewCSVLoader creates a new CSV loader
func NewCSVLoader(dataDir string, logger *logrus.Logger) *CSVLoader {
	return &CSVLoader{
		DataDir: dataDir,
		Logger:  logger,
	}
}

// Path returns the source file path for a table
func (l *CSVLoader) Path(table string) string {
	return filepath.Join(l.DataDir, table+".csv")
}

// Load reads {DataDir}/{table}.csv into a dataset, preserving the header's
// column order and the file's row order. Values are kept as raw strings.
func (l *CSVLoader) Load(table string) (models.Dataset, error) {
	path := l.Path(table)

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return models.Dataset{}, fmt.Errorf("%w: %s", ErrMissingCSV, path)
	}

	file, err := os.Open(path)
	if err != nil {
		return models.Dataset{}, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)

	header, err := reader.Read()
	if err != nil {
		return models.Dataset{}, fmt.Errorf("failed to read header of %s: %w", path, err)
	}

	records, err := reader.ReadAll()
	if err != nil {
		return models.Dataset{}, fmt.Errorf("failed to read %s: %w", path, err)
	}

	rows := make([]models.Row, len(records))
	for i, record := range records {
		row := make(models.Row, len(header))
		for j, name := range header {
			row[name] = record[j]
		}
		rows[i] = row
	}

	l.Logger.Debugf("Read %d rows from %s", len(rows), path)

	return models.Dataset{Columns: header, Rows: rows}, nil
}
