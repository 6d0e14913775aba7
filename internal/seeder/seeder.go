package seeder

import (
	"encoding/csv"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/jaswdr/faker"
	"github.com/sirupsen/logrus"

	"ecom-data-loader/internal/schema"
	"ecom-data-loader/pkg/models"
)

var (
	categories     = []string{"Home", "Office", "Kitchen", "Electronics", "Outdoors", "Toys"}
	paymentMethods = []string{"card", "paypal", "bank_transfer", "cod"}
	orderStatuses  = []string{"pending", "paid", "shipped", "delivered", "cancelled"}

	// Mixed literal forms; the loader's normalization canonicalizes them
	inStockValues = []string{"True", "False", "TRUE", "FALSE", "true", "false", " True ", "yes"}
)

// Seeder writes referentially consistent sample CSV files for every
// registered table
type Seeder struct {
	Faker    faker.Faker
	Registry *schema.Registry
	DataDir  string
	Records  int
	Logger   *logrus.Logger
}

// NewSeeder creates a new seeder. Identifiers are positional; a non-zero seed
// pins the faker source so the generated field values repeat across runs too.
func NewSeeder(registry *schema.Registry, dataDir string, records int, seed int64, logger *logrus.Logger) *Seeder {
	f := faker.New()
	if seed != 0 {
		f = faker.NewWithSeed(rand.NewSource(seed))
	}

	return &Seeder{
		Faker:    f,
		Registry: registry,
		DataDir:  dataDir,
		Records:  records,
		Logger:   logger,
	}
}

// Seed writes the five CSV files into the data directory and returns the row
// counts per table in registry order
func (s *Seeder) Seed() ([]models.TableCount, error) {
	if s.Records <= 0 {
		return nil, fmt.Errorf("record count must be positive, got %d", s.Records)
	}

	if err := os.MkdirAll(s.DataDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data directory %s: %w", s.DataDir, err)
	}

	customerIDs := s.customerIDs()
	productIDs := s.productIDs()

	tables := map[string][][]string{
		"customers": s.customerRows(customerIDs),
		"products":  s.productRows(productIDs),
	}

	orderRows, orderIDs := s.orderRows(customerIDs)
	tables["orders"] = orderRows
	tables["order_items"] = s.orderItemRows(orderIDs, productIDs)
	tables["reviews"] = s.reviewRows(customerIDs, productIDs)

	counts := make([]models.TableCount, 0, len(s.Registry.OrderedTables))
	for _, table := range s.Registry.OrderedTables {
		rows := tables[table]
		if err := s.writeTable(table, rows); err != nil {
			return nil, err
		}
		counts = append(counts, models.TableCount{Table: table, Count: int64(len(rows))})
	}

	return counts, nil
}

func (s *Seeder) customerIDs() []int {
	ids := make([]int, s.Records)
	for i := range ids {
		ids[i] = i + 1
	}
	return ids
}

func (s *Seeder) productIDs() []string {
	ids := make([]string, s.Records)
	for i := range ids {
		ids[i] = fmt.Sprintf("P%03d", i+1)
	}
	return ids
}

func (s *Seeder) customerRows(ids []int) [][]string {
	rows := make([][]string, len(ids))
	for i, id := range ids {
		rows[i] = []string{
			strconv.Itoa(id),
			s.Faker.Person().Name(),
			s.Faker.Internet().Email(),
			s.Faker.Phone().Number(),
			s.pastDate(730),
			s.Faker.Address().City(),
			s.Faker.Address().State(),
		}
	}
	return rows
}

func (s *Seeder) productRows(ids []string) [][]string {
	rows := make([][]string, len(ids))
	for i, id := range ids {
		rows[i] = []string{
			id,
			s.Faker.Lorem().Word() + " " + s.Faker.Lorem().Word(),
			s.Faker.RandomStringElement(categories),
			s.price(5, 500),
			s.Faker.RandomStringElement(inStockValues),
			s.pastDate(365),
		}
	}
	return rows
}

func (s *Seeder) orderRows(customerIDs []int) ([][]string, []string) {
	count := 2 * s.Records
	rows := make([][]string, count)
	ids := make([]string, count)

	for i := 0; i < count; i++ {
		id := fmt.Sprintf("ORD-%06d", i+1)
		ids[i] = id
		rows[i] = []string{
			id,
			strconv.Itoa(s.pickInt(customerIDs)),
			s.pastDate(180),
			s.price(10, 2000),
			s.Faker.RandomStringElement(paymentMethods),
			s.Faker.RandomStringElement(orderStatuses),
		}
	}
	return rows, ids
}

func (s *Seeder) orderItemRows(orderIDs, productIDs []string) [][]string {
	count := 3 * s.Records
	rows := make([][]string, count)

	for i := 0; i < count; i++ {
		rows[i] = []string{
			fmt.Sprintf("ITM-%06d", i+1),
			s.pickString(orderIDs),
			s.pickString(productIDs),
			strconv.Itoa(s.Faker.IntBetween(1, 5)),
			s.price(5, 500),
		}
	}
	return rows
}

func (s *Seeder) reviewRows(customerIDs []int, productIDs []string) [][]string {
	count := 2 * s.Records
	rows := make([][]string, count)

	for i := 0; i < count; i++ {
		rows[i] = []string{
			fmt.Sprintf("R-%06d", i+1),
			strconv.Itoa(s.pickInt(customerIDs)),
			s.pickString(productIDs),
			strconv.Itoa(s.Faker.IntBetween(1, 5)),
			s.Faker.Lorem().Sentence(8),
			s.pastDate(90),
		}
	}
	return rows
}

// writeTable writes one CSV file with the table's registered column header
func (s *Seeder) writeTable(table string, rows [][]string) error {
	tableSchema, ok := s.Registry.Table(table)
	if !ok {
		return fmt.Errorf("no schema registered for table: %s", table)
	}

	path := filepath.Join(s.DataDir, table+".csv")
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	if err := writer.Write(tableSchema.ColumnNames()); err != nil {
		return fmt.Errorf("failed to write header of %s: %w", path, err)
	}
	if err := writer.WriteAll(rows); err != nil {
		return fmt.Errorf("failed to write rows of %s: %w", path, err)
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("failed to flush %s: %w", path, err)
	}

	s.Logger.Infof("Wrote %d rows to %s", len(rows), path)
	return nil
}

func (s *Seeder) pastDate(maxDaysAgo int) string {
	days := s.Faker.IntBetween(0, maxDaysAgo)
	return time.Now().AddDate(0, 0, -days).Format("2006-01-02")
}

func (s *Seeder) price(min, max int) string {
	return strconv.FormatFloat(s.Faker.RandomFloat(2, min, max), 'f', 2, 64)
}

func (s *Seeder) pickInt(values []int) int {
	return values[s.Faker.IntBetween(0, len(values)-1)]
}

func (s *Seeder) pickString(values []string) string {
	return values[s.Faker.IntBetween(0, len(values)-1)]
}
