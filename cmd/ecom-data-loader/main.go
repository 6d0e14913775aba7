package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"ecom-data-loader/internal/config"
	"ecom-data-loader/internal/connector"
	"ecom-data-loader/internal/loader"
	"ecom-data-loader/internal/populator"
	"ecom-data-loader/internal/schema"
	"ecom-data-loader/internal/seeder"
	"ecom-data-loader/internal/utils"
)

func main() {
	var (
		dataDir    string
		dbPath     string
		configFile string
		envFile    string
		logLevel   string
		records    int
		randomSeed int64
	)

	rootCmd := &cobra.Command{
		Use:   "ecom-data-loader",
		Short: "A tool to load e-commerce CSV exports into a SQLite database",
		Long: `E-commerce Data Loader

A Go tool that loads e-commerce CSV exports into a freshly created SQLite
database, normalizing boolean stock flags and inserting tables in
foreign-key order.`,
		Run: func(cmd *cobra.Command, args []string) {
			// Setup logging
			logger := utils.SetupLogging(logLevel)

			// Load environment variables
			utils.LoadEnvironmentVariables(envFile, logger)

			// Resolve configuration: flags > environment > config file > defaults
			cfg, err := config.Resolve(config.Config{
				DataDir:      dataDir,
				DatabasePath: dbPath,
				LogLevel:     logLevel,
			}, configFile)
			if err != nil {
				logger.Errorf("Failed to resolve configuration: %v", err)
				os.Exit(1)
			}
			if cfg.LogLevel != "" && cfg.LogLevel != logLevel {
				logger = utils.SetupLogging(cfg.LogLevel)
			}

			// Create schema registry
			registry := schema.NewRegistry(logger)

			// Create database connector and CSV loader
			db := connector.NewDatabaseConnector(cfg.DatabasePath, logger)
			csvLoader := loader.NewCSVLoader(cfg.DataDir, logger)

			// Create database populator
			dbPopulator := populator.NewDatabasePopulator(db, registry, csvLoader, logger)

			// Load the data
			logger.Infof("Loading CSV data from %s into %s", cfg.DataDir, cfg.DatabasePath)
			counts, err := dbPopulator.Run()
			if err != nil {
				logger.Errorf("Load failed: %v", err)
				os.Exit(1)
			}

			// Print summary
			utils.PrintRowCounts(counts)
		},
	}

	seedCmd := &cobra.Command{
		Use:   "seed",
		Short: "Generate CSV fixture files with realistic e-commerce data",
		Run: func(cmd *cobra.Command, args []string) {
			// Setup logging
			logger := utils.SetupLogging(logLevel)

			// Load environment variables
			utils.LoadEnvironmentVariables(envFile, logger)

			// Resolve configuration for the target data directory
			cfg, err := config.Resolve(config.Config{
				DataDir:  dataDir,
				LogLevel: logLevel,
			}, configFile)
			if err != nil {
				logger.Errorf("Failed to resolve configuration: %v", err)
				os.Exit(1)
			}

			// Get record count from environment if not provided
			if !cmd.Flags().Changed("records") {
				records = utils.GetEnvInt("ECOM_SEED_RECORDS", records)
			}

			// Create schema registry and seeder
			registry := schema.NewRegistry(logger)
			dataSeeder := seeder.NewSeeder(registry, cfg.DataDir, records, randomSeed, logger)

			// Generate the CSV files
			logger.Infof("Seeding %d customers worth of CSV data into %s", records, cfg.DataDir)
			counts, err := dataSeeder.Seed()
			if err != nil {
				logger.Errorf("Seeding failed: %v", err)
				os.Exit(1)
			}

			// Print summary
			utils.PrintSeedReport(cfg.DataDir, counts)
		},
	}

	schemaCmd := &cobra.Command{
		Use:   "schema",
		Short: "Print the table registry, foreign keys, and insertion order",
		Run: func(cmd *cobra.Command, args []string) {
			logger := utils.SetupLogging(logLevel)

			registry := schema.NewRegistry(logger)
			utils.PrintSchemaReport(registry)
		},
	}

	// Define flags
	rootCmd.PersistentFlags().StringVarP(&dataDir, "data-dir", "d", "", "Directory containing the CSV files (default: data)")
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "Path to YAML config file (default: ecom-loader.yaml if present)")
	rootCmd.PersistentFlags().StringVarP(&envFile, "env-file", "e", ".env", "Path to .env file")
	rootCmd.PersistentFlags().StringVarP(&logLevel, "log-level", "l", "", "Log level (debug, info, warn, error)")
	rootCmd.Flags().StringVarP(&dbPath, "database", "o", "", "SQLite database file to create (default: ecom.db)")
	seedCmd.Flags().IntVarP(&records, "records", "r", 25, "Number of customers to seed; the other tables scale from it")
	seedCmd.Flags().Int64VarP(&randomSeed, "seed", "s", 0, "Random seed for reproducible data (0 seeds from the clock)")

	rootCmd.AddCommand(seedCmd, schemaCmd)

	// Execute
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
