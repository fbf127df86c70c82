package database

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"

	"github.com/lib/pq"
	"gorm.io/gorm"

	"titanic-service/internal/dataset"
	"titanic-service/internal/models"
)

// ErrSchemaAlreadyExists marks a table that is already present. CreateSchema
// logs it and carries on.
var ErrSchemaAlreadyExists = errors.New("schema already exists")

// pgDuplicateTable is the PostgreSQL error code for duplicate_table.
const pgDuplicateTable = "42P07"

// Loader produces the cleaned passenger rows to bulk-load into a fresh schema.
type Loader func() ([]models.PassengerRecord, error)

// FileLoader ingests the passenger CSV at path.
func FileLoader(path string) Loader {
	return func() ([]models.PassengerRecord, error) {
		return dataset.Ingest(path)
	}
}

type tableSpec struct {
	name string
	ddl  string
	// load runs inside the creating transaction, which carries the caller context.
	load func(tx *gorm.DB) error
}

// SchemaManager creates the normalized passenger schema and loads it.
// Build one per process; it remembers whether initialization already ran.
type SchemaManager struct {
	db     *gorm.DB
	loader Loader

	mu          sync.Mutex
	initialized bool
}

// NewSchemaManager returns a SchemaManager that fills the passenger table
// from loader.
func NewSchemaManager(db *gorm.DB, loader Loader) *SchemaManager {
	return &SchemaManager{db: db, loader: loader}
}

// CreateSchema creates and loads the pclass, port and passenger tables.
// Tables that already exist are left untouched, so calling it again is a
// no-op. The creation body runs at most once per SchemaManager.
func (s *SchemaManager) CreateSchema(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.initialized {
		log.Println("Database already initialized.")
		return nil
	}

	for _, t := range s.tables() {
		err := s.createTable(ctx, t)
		if errors.Is(err, ErrSchemaAlreadyExists) {
			log.Printf("Warning: %v, skipping creation", err)
			continue
		}
		if err != nil {
			return err
		}
		log.Printf("Created and loaded table %s", t.name)
	}

	s.initialized = true
	return nil
}

func (s *SchemaManager) tables() []tableSpec {
	return []tableSpec{
		{
			name: models.PassengerClassTable,
			ddl: `CREATE TABLE pclass (
				pclass_id INTEGER PRIMARY KEY,
				class VARCHAR(10) NOT NULL
			)`,
			load: func(tx *gorm.DB) error {
				return tx.Create(&models.PassengerClasses).Error
			},
		},
		{
			name: models.PortTable,
			ddl: `CREATE TABLE port (
				port_id VARCHAR(1) PRIMARY KEY,
				name VARCHAR(20) NOT NULL
			)`,
			load: func(tx *gorm.DB) error {
				return tx.Create(&models.Ports).Error
			},
		},
		{
			name: models.PassengerTable,
			ddl: `CREATE TABLE passenger (
				passenger_id INTEGER PRIMARY KEY,
				name TEXT,
				sex SMALLINT,
				age DOUBLE PRECISION,
				survived BOOLEAN NOT NULL,
				pclass_id INTEGER NOT NULL,
				sibsp INTEGER NOT NULL,
				parch INTEGER NOT NULL,
				ticket TEXT,
				fare DOUBLE PRECISION,
				port_id VARCHAR(1),
				FOREIGN KEY (pclass_id) REFERENCES pclass(pclass_id),
				FOREIGN KEY (port_id) REFERENCES port(port_id)
			)`,
			load: func(tx *gorm.DB) error {
				records, err := s.loader()
				if err != nil {
					return err
				}
				return storePassengers(tx, records)
			},
		},
	}
}

func (s *SchemaManager) createTable(ctx context.Context, t tableSpec) error {
	db := s.db.WithContext(ctx)
	if db.Migrator().HasTable(t.name) {
		return fmt.Errorf("%w: table %s", ErrSchemaAlreadyExists, t.name)
	}

	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec(t.ddl).Error; err != nil {
			if isDuplicateTable(err) {
				return fmt.Errorf("%w: table %s", ErrSchemaAlreadyExists, t.name)
			}
			return fmt.Errorf("failed to create table %s: %w", t.name, err)
		}
		if err := t.load(tx); err != nil {
			return fmt.Errorf("failed to load table %s: %w", t.name, err)
		}
		return nil
	})
}

// isDuplicateTable reports whether err is the driver's "table already exists"
// error, which happens when another process created the table after HasTable.
func isDuplicateTable(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == pgDuplicateTable
	}
	return strings.Contains(err.Error(), "already exists")
}
