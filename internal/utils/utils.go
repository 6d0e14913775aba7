package utils

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"ecom-data-loader/internal/schema"
	"ecom-data-loader/pkg/models"
)

// SetupLogging configures the logging system
func SetupLogging(logLevel string) *logrus.Logger {
	logger := logrus.New()

	// Get log level from environment variable or parameter
	levelStr := logLevel
	if levelStr == "" {
		levelStr = os.Getenv("ECOM_LOG_LEVEL")
		if levelStr == "" {
			levelStr = "info"
		}
	}

	level, err := logrus.ParseLevel(levelStr)
	if err != nil {
		level = logrus.InfoLevel
	}

	logger.SetLevel(level)
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})
	logger.SetOutput(os.Stdout)

	logger.Debugf("Logging configured with level: %s", level)
	return logger
}

// LoadEnvironmentVariables loads environment variables from a .env file
func LoadEnvironmentVariables(envFile string, logger *logrus.Logger) {
	// Point at a sample file when the real one is missing
	if _, err := os.Stat(envFile); os.IsNotExist(err) {
		sampleEnvFile := envFile + ".sample"
		if _, err := os.Stat(sampleEnvFile); err == nil {
			logger.Infof("No %s file found, but %s exists. Consider copying %s to %s and updating it.",
				envFile, sampleEnvFile, sampleEnvFile, envFile)
		}
	}

	if _, err := os.Stat(envFile); err == nil {
		if err := godotenv.Load(envFile); err != nil {
			logger.Warningf("Error loading %s file: %v", envFile, err)
		} else {
			logger.Infof("Loaded environment variables from %s", envFile)
		}
	} else {
		logger.Debugf("No %s file found, using existing environment variables", envFile)
	}

	// Log all available ECOM_* environment variables (for debugging)
	if logger.Level == logrus.DebugLevel {
		for _, env := range os.Environ() {
			if strings.HasPrefix(env, "ECOM_") {
				parts := strings.SplitN(env, "=", 2)
				if len(parts) == 2 {
					logger.Debugf("%s=%s", parts[0], parts[1])
				}
			}
		}
	}
}

// GetEnvInt gets an integer value from environment variable
func GetEnvInt(varName string, defaultValue int) int {
	value := os.Getenv(varName)
	if value == "" {
		return defaultValue
	}

	intValue, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}

	return intValue
}

// PrintRowCounts prints the row-count report, one line per table in registry
// order
func PrintRowCounts(counts []models.TableCount) {
	fmt.Println("Row counts:")
	for _, tc := range counts {
		fmt.Printf("- %s: %d\n", tc.Table, tc.Count)
	}
}

// PrintSeedReport prints the files written by the seeder
func PrintSeedReport(dataDir string, counts []models.TableCount) {
	fmt.Printf("Seeded CSV files in %s:\n", dataDir)
	for _, tc := range counts {
		fmt.Printf("- %s.csv: %d rows\n", tc.Table, tc.Count)
	}
}

// PrintSchemaReport prints a summary of the registered schema
func PrintSchemaReport(registry *schema.Registry) {
	fmt.Println("\n" + strings.Repeat("=", 60))
	fmt.Println("SCHEMA REGISTRY REPORT")
	fmt.Println(strings.Repeat("=", 60))

	fmt.Println("\n1. TABLES")
	for _, table := range registry.Tables {
		fmt.Printf("   %s (%d columns)\n", table.Name, len(table.Columns))
	}

	fmt.Println("\n2. FOREIGN KEYS")
	totalFKs := 0
	for _, table := range registry.Tables {
		for _, fk := range table.ForeignKeys {
			fmt.Printf("   %s.%s -> %s.%s\n", table.Name, fk.Column, fk.ReferencedTable, fk.ReferencedColumn)
			totalFKs++
		}
	}
	if totalFKs == 0 {
		fmt.Println("   (none)")
	}

	fmt.Println("\n3. INSERTION ORDER")
	for i, table := range registry.OrderedTables {
		fmt.Printf("   %d. %s\n", i+1, table)
	}

	fmt.Println("\n" + strings.Repeat("=", 60))
}
