package database

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"titanic-service/internal/models"
)

// ErrUnknownDimension is returned when a passenger references a class or
// port that is not in the dimension tables.
var ErrUnknownDimension = errors.New("unknown dimension reference")

// insertBatchSize bounds the number of rows per INSERT statement.
const insertBatchSize = 200

// PassengerRepository reads and writes the passenger fact table.
type PassengerRepository struct {
	db *gorm.DB
}

// NewPassengerRepository creates a new PassengerRepository.
func NewPassengerRepository(db *gorm.DB) *PassengerRepository {
	return &PassengerRepository{db: db}
}

// StorePassengers bulk inserts records in a single transaction.
func (r *PassengerRepository) StorePassengers(ctx context.Context, records []models.PassengerRecord) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return storePassengers(tx, records)
	})
}

// FetchAll returns every passenger row, ordered by passenger id.
func (r *PassengerRepository) FetchAll(ctx context.Context) ([]models.PassengerRecord, error) {
	var records []models.PassengerRecord
	if err := r.db.WithContext(ctx).Order("passenger_id").Find(&records).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch passengers: %w", err)
	}
	return records, nil
}

// Count returns the number of passenger rows.
func (r *PassengerRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&models.PassengerRecord{}).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("failed to count passengers: %w", err)
	}
	return n, nil
}

// ValidateDimensions checks that every record references existing class and
// port rows.
func ValidateDimensions(records []models.PassengerRecord) error {
	for _, rec := range records {
		if !models.IsKnownClass(rec.ClassID) {
			return fmt.Errorf("%w: passenger %d has pclass_id %d", ErrUnknownDimension, rec.PassengerID, rec.ClassID)
		}
		if rec.EmbarkPort != nil && !models.IsKnownPort(*rec.EmbarkPort) {
			return fmt.Errorf("%w: passenger %d has port_id %q", ErrUnknownDimension, rec.PassengerID, *rec.EmbarkPort)
		}
	}
	return nil
}

func storePassengers(tx *gorm.DB, records []models.PassengerRecord) error {
	if err := ValidateDimensions(records); err != nil {
		return err
	}
	if len(records) == 0 {
		return nil
	}
	if err := tx.CreateInBatches(&records, insertBatchSize).Error; err != nil {
		return fmt.Errorf("failed to insert %d passengers: %w", len(records), err)
	}
	return nil
}
