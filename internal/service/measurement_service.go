package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/taletique/tailor-portal/internal/authz"
	"github.com/taletique/tailor-portal/internal/domain"
	"github.com/taletique/tailor-portal/internal/repository"
	"gorm.io/gorm"
)

type MeasurementService struct {
	measurementRepo repository.MeasurementRepository
	userRepo        repository.UserRepository
}

func NewMeasurementService(measurementRepo repository.MeasurementRepository, userRepo repository.UserRepository) *MeasurementService {
	return &MeasurementService{measurementRepo: measurementRepo, userRepo: userRepo}
}

// GetMeasurements returns the customer's current measurement row. Customers
// may only read their own; admins may read anyone's.
func (s *MeasurementService) GetMeasurements(ctx context.Context, caller *domain.User, customerID string) (*domain.Measurement, error) {
	if err := authz.Check(caller, authz.Owner(customerID)); err != nil {
		return nil, err
	}

	m, err := s.measurementRepo.GetByCustomerID(ctx, customerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrMeasurementNotFound
		}
		return nil, err
	}
	return m, nil
}

// SaveMeasurements upserts the customer's single measurement row. The row's
// id and created_at survive across saves; every dimension column is
// rewritten from the input, so omitted fields clear.
func (s *MeasurementService) SaveMeasurements(ctx context.Context, caller *domain.User, input *domain.InsertMeasurement) (*domain.Measurement, error) {
	if err := authz.Check(caller, authz.Owner(input.CustomerID)); err != nil {
		return nil, err
	}

	// An admin may record measurements on a customer's behalf; make sure
	// that customer exists before the insert hits the foreign key.
	if input.CustomerID != caller.ID {
		if _, err := s.userRepo.GetByID(ctx, input.CustomerID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, domain.ErrUserNotFound
			}
			return nil, err
		}
	}

	m := &domain.Measurement{
		ID:           uuid.NewString(),
		CustomerID:   input.CustomerID,
		Chest:        input.Chest.Ptr(),
		Waist:        input.Waist.Ptr(),
		Shoulder:     input.Shoulder.Ptr(),
		SleeveLength: input.SleeveLength.Ptr(),
		Neck:         input.Neck.Ptr(),
		Bicep:        input.Bicep.Ptr(),
		Inseam:       input.Inseam.Ptr(),
		Outseam:      input.Outseam.Ptr(),
		Hip:          input.Hip.Ptr(),
		Thigh:        input.Thigh.Ptr(),
		Calf:         input.Calf.Ptr(),
		Ankle:        input.Ankle.Ptr(),
		Notes:        input.Notes,
	}

	if err := s.measurementRepo.Upsert(ctx, m); err != nil {
		return nil, err
	}
	// Reload: on conflict the canonical row keeps its original id and
	// created_at, not the ones generated above.
	return s.measurementRepo.GetByCustomerID(ctx, input.CustomerID)
}
