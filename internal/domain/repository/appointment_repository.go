package repository

import (
	"context"
	"time"

	"github.com/serenitycare/appointment-api/internal/domain/entity"

	"github.com/google/uuid"
)

type AppointmentRepository interface {
	Create(ctx context.Context, appointment *entity.Appointment) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Appointment, error)
	// FindByPatientID returns the patient's appointments most-recent-first.
	// An empty slice (never an error) means the patient has no appointments.
	FindByPatientID(ctx context.Context, patientID uuid.UUID) ([]entity.Appointment, error)
	FindLatestByPatientID(ctx context.Context, patientID uuid.UUID) (*entity.Appointment, error)
	// FindByToken returns the most recent appointment carrying the token.
	// Token sequences restart per department each day, so older dates can
	// carry the same token number.
	FindByToken(ctx context.Context, tokenNumber string) (*entity.Appointment, error)
	FindAll(ctx context.Context) ([]entity.Appointment, error)
	// UpdateStatus transitions from -> to atomically. Returns affected rows:
	// 1 = success, 0 = appointment was not in the expected source status.
	UpdateStatus(ctx context.Context, id uuid.UUID, from, to entity.AppointmentStatus) (int64, error)
	// CompletePastDue marks upcoming appointments dated before the cutoff as
	// completed. Returns the number of rows transitioned.
	CompletePastDue(ctx context.Context, before time.Time) (int64, error)
	// CountPendingByDepartment counts upcoming appointments per department for
	// the given date.
	CountPendingByDepartment(ctx context.Context, onDate time.Time) (map[string]int, error)
}
