package repository

import (
	"context"
	"errors"
	"time"

	"github.com/serenitycare/appointment-api/internal/domain/entity"
	domainRepo "github.com/serenitycare/appointment-api/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type appointmentRepository struct {
	db *gorm.DB
}

func NewAppointmentRepository(db *gorm.DB) domainRepo.AppointmentRepository {
	return &appointmentRepository{db: db}
}

func (r *appointmentRepository) Create(ctx context.Context, appointment *entity.Appointment) error {
	return r.db.WithContext(ctx).Create(appointment).Error
}

func (r *appointmentRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Appointment, error) {
	var appointment entity.Appointment
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&appointment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &appointment, nil
}

func (r *appointmentRepository) FindByPatientID(ctx context.Context, patientID uuid.UUID) ([]entity.Appointment, error) {
	var appointments []entity.Appointment
	err := r.db.WithContext(ctx).
		Where("patient_id = ?", patientID).
		Order("created_at DESC").
		Find(&appointments).Error
	if err != nil {
		return nil, err
	}
	return appointments, nil
}

func (r *appointmentRepository) FindLatestByPatientID(ctx context.Context, patientID uuid.UUID) (*entity.Appointment, error) {
	var appointment entity.Appointment
	err := r.db.WithContext(ctx).
		Where("patient_id = ?", patientID).
		Order("created_at DESC").
		First(&appointment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &appointment, nil
}

// FindByToken resolves a token to its most recent appointment. Token numbers
// restart per department each day, so the same token can exist on several
// dates; the live queue only ever cares about the newest one.
func (r *appointmentRepository) FindByToken(ctx context.Context, tokenNumber string) (*entity.Appointment, error) {
	var appointment entity.Appointment
	err := r.db.WithContext(ctx).
		Where("token_number = ?", tokenNumber).
		Order("date DESC, created_at DESC").
		First(&appointment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &appointment, nil
}

func (r *appointmentRepository) FindAll(ctx context.Context) ([]entity.Appointment, error) {
	var appointments []entity.Appointment
	err := r.db.WithContext(ctx).
		Preload("Patient").
		Order("created_at DESC").
		Find(&appointments).Error
	if err != nil {
		return nil, err
	}
	return appointments, nil
}

// UpdateStatus transitions status atomically, guarded by the expected source
// status so a terminal appointment can never be revived. A concurrent
// cancel/complete race resolves to whichever update matched first.
func (r *appointmentRepository) UpdateStatus(ctx context.Context, id uuid.UUID, from, to entity.AppointmentStatus) (int64, error) {
	result := r.db.WithContext(ctx).Model(&entity.Appointment{}).
		Where("id = ? AND status = ?", id, from).
		Update("status", to)
	return result.RowsAffected, result.Error
}

func (r *appointmentRepository) CompletePastDue(ctx context.Context, before time.Time) (int64, error) {
	result := r.db.WithContext(ctx).Model(&entity.Appointment{}).
		Where("status = ? AND date < ?", entity.AppointmentStatusUpcoming, before).
		Update("status", entity.AppointmentStatusCompleted)
	return result.RowsAffected, result.Error
}

func (r *appointmentRepository) CountPendingByDepartment(ctx context.Context, onDate time.Time) (map[string]int, error) {
	type row struct {
		DepartmentID string
		Pending      int
	}
	var rows []row
	err := r.db.WithContext(ctx).Model(&entity.Appointment{}).
		Select("department_id, COUNT(*) as pending").
		Where("status = ? AND date = ?", entity.AppointmentStatusUpcoming, onDate).
		Group("department_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int, len(rows))
	for _, r := range rows {
		counts[r.DepartmentID] = r.Pending
	}
	return counts, nil
}
