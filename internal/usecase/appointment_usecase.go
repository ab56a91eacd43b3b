package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/serenitycare/appointment-api/internal/converter"
	"github.com/serenitycare/appointment-api/internal/delivery/dto"
	"github.com/serenitycare/appointment-api/internal/delivery/http/middleware"
	"github.com/serenitycare/appointment-api/internal/domain/entity"
	"github.com/serenitycare/appointment-api/internal/domain/repository"
	"github.com/serenitycare/appointment-api/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

var (
	ErrDepartmentNotFound    = errors.New("department not found in catalog")
	ErrDoctorNotInDepartment = errors.New("doctor does not belong to the selected department")
	ErrPastDate              = errors.New("appointment date cannot be in the past")
	ErrInvalidTimeSlot       = errors.New("time slot is not bookable")
	ErrInvalidDateFormat     = errors.New("invalid date format, use YYYY-MM-DD")
	ErrAppointmentNotFound   = errors.New("appointment not found")
	ErrAppointmentNotOwned   = errors.New("appointment does not belong to you")
	ErrInvalidTransition     = errors.New("appointment status is already final")
	ErrUnknownStatus         = errors.New("unknown appointment status")
)

type AppointmentUsecase interface {
	CreateAppointment(ctx context.Context, req *dto.CreateAppointmentRequest) (*dto.AppointmentResponse, error)
	GetMyAppointments(ctx context.Context) (*dto.AppointmentListResponse, error)
	GetLatestAppointment(ctx context.Context) (*dto.AppointmentResponse, error)
	CancelAppointment(ctx context.Context, appointmentID uuid.UUID) error
	// UpdateStatus transitions an appointment's status, enforcing the
	// monotonic lifecycle. Admin operation.
	UpdateStatus(ctx context.Context, appointmentID uuid.UUID, status entity.AppointmentStatus) (*dto.AppointmentResponse, error)
	GetAllAppointments(ctx context.Context) (*dto.AppointmentListResponse, error)
}

type appointmentUsecase struct {
	log             *logrus.Logger
	appointmentRepo repository.AppointmentRepository
	queueSimulator  service.QueueSimulator
}

func NewAppointmentUsecase(
	log *logrus.Logger,
	appointmentRepo repository.AppointmentRepository,
	queueSimulator service.QueueSimulator,
) AppointmentUsecase {
	return &appointmentUsecase{
		log:             log,
		appointmentRepo: appointmentRepo,
		queueSimulator:  queueSimulator,
	}
}

// CreateAppointment books a visit for the logged-in patient.
//
// Flow:
// 1. Validate department, doctor, date and time slot against the fixed catalog
// 2. Reserve the next per-department per-day token number (atomic, in Redis)
// 3. Insert the appointment with its token and check-in code
// 4. Seed the simulated queue position for the new token
func (u *appointmentUsecase) CreateAppointment(ctx context.Context, req *dto.CreateAppointmentRequest) (*dto.AppointmentResponse, error) {
	patientID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		return nil, errors.New("patient not found in context")
	}

	dept, ok := entity.FindDepartment(req.DepartmentID)
	if !ok {
		return nil, ErrDepartmentNotFound
	}
	if !dept.HasDoctor(req.Doctor) {
		return nil, ErrDoctorNotInDepartment
	}
	if !entity.IsValidTimeSlot(req.TimeSlot) {
		return nil, ErrInvalidTimeSlot
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return nil, ErrInvalidDateFormat
	}
	today := time.Now().UTC().Truncate(24 * time.Hour)
	if date.Before(today) {
		return nil, ErrPastDate
	}

	// Token sequence numbers are monotonically increasing per department per
	// day and never reused, even if the insert below fails.
	tokenNumber, err := u.queueSimulator.NextTokenNumber(ctx, dept, date)
	if err != nil {
		return nil, err
	}

	appointment := &entity.Appointment{
		PatientID:    patientID,
		DepartmentID: dept.ID,
		Doctor:       req.Doctor,
		Date:         date,
		TimeSlot:     req.TimeSlot,
		Symptoms:     req.Symptoms,
		TokenNumber:  tokenNumber,
		QRCode:       newQRCode(patientID),
		Status:       entity.AppointmentStatusUpcoming,
	}

	if err := u.appointmentRepo.Create(ctx, appointment); err != nil {
		u.log.Errorf("Failed to insert appointment: %+v", err)
		return nil, err
	}

	// Seed queue state. Non-fatal: Poll re-seeds missing tokens on demand.
	if _, err := u.queueSimulator.InitPosition(ctx, tokenNumber, date); err != nil {
		u.log.Warnf("Failed to seed queue position for token %s (non-fatal): %+v", tokenNumber, err)
	}

	u.log.Infof("Appointment created: id=%s, department=%s, token=%s", appointment.ID, dept.ID, tokenNumber)
	return converter.AppointmentToResponse(appointment), nil
}

// GetMyAppointments returns all appointments for the logged-in patient,
// most-recent-first. An empty list is a valid result, never an error; the
// read path never fabricates demo records.
func (u *appointmentUsecase) GetMyAppointments(ctx context.Context) (*dto.AppointmentListResponse, error) {
	patientID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		return nil, errors.New("patient not found in context")
	}

	appointments, err := u.appointmentRepo.FindByPatientID(ctx, patientID)
	if err != nil {
		u.log.Warnf("Failed to find appointments for patient %s: %+v", patientID, err)
		return nil, err
	}

	return &dto.AppointmentListResponse{
		Appointments: converter.AppointmentsToResponses(appointments),
		Total:        len(appointments),
	}, nil
}

// GetLatestAppointment returns the most recently created appointment for the
// logged-in patient (read by the confirmation view).
func (u *appointmentUsecase) GetLatestAppointment(ctx context.Context) (*dto.AppointmentResponse, error) {
	patientID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		return nil, errors.New("patient not found in context")
	}

	appointment, err := u.appointmentRepo.FindLatestByPatientID(ctx, patientID)
	if err != nil {
		u.log.Warnf("Failed to find latest appointment for patient %s: %+v", patientID, err)
		return nil, err
	}
	if appointment == nil {
		return nil, ErrAppointmentNotFound
	}

	return converter.AppointmentToResponse(appointment), nil
}

// CancelAppointment cancels an upcoming appointment owned by the logged-in
// patient. Terminal appointments stay terminal.
func (u *appointmentUsecase) CancelAppointment(ctx context.Context, appointmentID uuid.UUID) error {
	patientID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		return errors.New("patient not found in context")
	}

	appointment, err := u.appointmentRepo.FindByID(ctx, appointmentID)
	if err != nil {
		u.log.Warnf("Failed to find appointment %s: %+v", appointmentID, err)
		return err
	}
	if appointment == nil {
		return ErrAppointmentNotFound
	}
	if appointment.PatientID != patientID {
		return ErrAppointmentNotOwned
	}

	rows, err := u.appointmentRepo.UpdateStatus(ctx, appointmentID, entity.AppointmentStatusUpcoming, entity.AppointmentStatusCancelled)
	if err != nil {
		u.log.Warnf("Failed to cancel appointment %s: %+v", appointmentID, err)
		return err
	}
	if rows == 0 {
		// Guarded update matched nothing: the appointment already left the
		// upcoming state.
		return ErrInvalidTransition
	}

	u.log.Infof("Appointment cancelled: id=%s, token=%s", appointmentID, appointment.TokenNumber)
	return nil
}

func (u *appointmentUsecase) UpdateStatus(ctx context.Context, appointmentID uuid.UUID, status entity.AppointmentStatus) (*dto.AppointmentResponse, error) {
	if !entity.IsValidStatus(status) {
		return nil, ErrUnknownStatus
	}

	appointment, err := u.appointmentRepo.FindByID(ctx, appointmentID)
	if err != nil {
		u.log.Warnf("Failed to find appointment %s: %+v", appointmentID, err)
		return nil, err
	}
	if appointment == nil {
		return nil, ErrAppointmentNotFound
	}
	if !appointment.CanTransitionTo(status) {
		return nil, ErrInvalidTransition
	}

	rows, err := u.appointmentRepo.UpdateStatus(ctx, appointmentID, entity.AppointmentStatusUpcoming, status)
	if err != nil {
		u.log.Warnf("Failed to update status for appointment %s: %+v", appointmentID, err)
		return nil, err
	}
	if rows == 0 {
		return nil, ErrInvalidTransition
	}

	appointment.Status = status
	return converter.AppointmentToResponse(appointment), nil
}

func (u *appointmentUsecase) GetAllAppointments(ctx context.Context) (*dto.AppointmentListResponse, error) {
	appointments, err := u.appointmentRepo.FindAll(ctx)
	if err != nil {
		u.log.Warnf("Failed to list appointments: %+v", err)
		return nil, err
	}

	return &dto.AppointmentListResponse{
		Appointments: converter.AppointmentsToResponses(appointments),
		Total:        len(appointments),
	}, nil
}

// newQRCode builds the opaque check-in string for an appointment: creation
// timestamp plus owning patient. Not a scannable payload in the pilot.
func newQRCode(patientID uuid.UUID) string {
	return fmt.Sprintf("SC-%d-%s", time.Now().UnixMilli(), patientID)
}
