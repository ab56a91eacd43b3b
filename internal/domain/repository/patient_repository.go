package repository

import (
	"context"

	"github.com/serenitycare/appointment-api/internal/domain/entity"

	"github.com/google/uuid"
)

type PatientRepository interface {
	Create(ctx context.Context, patient *entity.Patient) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Patient, error)
	// FindByIdentifier matches by mobile number or patient code.
	FindByIdentifier(ctx context.Context, identifier string) (*entity.Patient, error)
}
