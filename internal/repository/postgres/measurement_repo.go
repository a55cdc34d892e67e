package postgres

import (
	"context"

	"github.com/taletique/tailor-portal/internal/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type measurementRepository struct {
	db *gorm.DB
}

func NewMeasurementRepository(db *gorm.DB) *measurementRepository {
	return &measurementRepository{db: db}
}

func (r *measurementRepository) GetByCustomerID(ctx context.Context, customerID string) (*domain.Measurement, error) {
	var m domain.Measurement
	err := r.db.WithContext(ctx).
		First(&m, "customer_id = ?", customerID).Error
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// Upsert serializes concurrent saves at the customer_id unique index. Every
// dimension column is assigned on conflict, so a save with fewer fields than
// the previous one clears the dropped columns.
func (r *measurementRepository) Upsert(ctx context.Context, m *domain.Measurement) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "customer_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"chest", "waist", "shoulder", "sleeve_length", "neck", "bicep",
				"inseam", "outseam", "hip", "thigh", "calf", "ankle",
				"notes", "updated_at",
			}),
		}).
		Create(m).Error
}
