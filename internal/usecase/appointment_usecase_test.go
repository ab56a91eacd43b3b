package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/serenitycare/appointment-api/internal/delivery/dto"
	"github.com/serenitycare/appointment-api/internal/delivery/http/middleware"
	"github.com/serenitycare/appointment-api/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	return log
}

func patientContext(patientID uuid.UUID) context.Context {
	return context.WithValue(context.Background(), middleware.UserIDKey, patientID)
}

func validCreateRequest() *dto.CreateAppointmentRequest {
	return &dto.CreateAppointmentRequest{
		DepartmentID: "cardiology",
		Doctor:       "Dr. Robert Chen",
		Date:         time.Now().UTC().AddDate(0, 0, 1).Format("2006-01-02"),
		TimeSlot:     "10:00 AM",
		Symptoms:     "Chest pain on exertion",
	}
}

func TestCreateAppointmentSuccess(t *testing.T) {
	appointmentRepo := new(MockAppointmentRepository)
	simulator := new(MockQueueSimulator)
	uc := NewAppointmentUsecase(testLogger(), appointmentRepo, simulator)

	patientID := uuid.New()
	ctx := patientContext(patientID)

	simulator.On("NextTokenNumber", ctx, mock.AnythingOfType("entity.Department"), mock.AnythingOfType("time.Time")).
		Return("C-4", nil)
	appointmentRepo.On("Create", ctx, mock.AnythingOfType("*entity.Appointment")).Return(nil)
	simulator.On("InitPosition", ctx, "C-4", mock.AnythingOfType("time.Time")).Return(7, nil)

	resp, err := uc.CreateAppointment(ctx, validCreateRequest())

	assert.NoError(t, err)
	assert.Equal(t, "C-4", resp.TokenNumber)
	assert.Equal(t, patientID, resp.PatientID)
	assert.Equal(t, "cardiology", resp.DepartmentID)
	assert.Equal(t, "Cardiology", resp.DepartmentName)
	assert.Equal(t, string(entity.AppointmentStatusUpcoming), resp.Status)
	assert.Regexp(t, `^SC-\d+-`, resp.QRCode)
	appointmentRepo.AssertExpectations(t)
	simulator.AssertExpectations(t)
}

func TestCreateAppointmentRejectsUnknownDepartment(t *testing.T) {
	appointmentRepo := new(MockAppointmentRepository)
	simulator := new(MockQueueSimulator)
	uc := NewAppointmentUsecase(testLogger(), appointmentRepo, simulator)

	req := validCreateRequest()
	req.DepartmentID = "neurology"

	_, err := uc.CreateAppointment(patientContext(uuid.New()), req)

	assert.ErrorIs(t, err, ErrDepartmentNotFound)
	appointmentRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreateAppointmentRejectsDoctorFromOtherDepartment(t *testing.T) {
	appointmentRepo := new(MockAppointmentRepository)
	simulator := new(MockQueueSimulator)
	uc := NewAppointmentUsecase(testLogger(), appointmentRepo, simulator)

	req := validCreateRequest()
	req.Doctor = "Dr. Sarah Wilson" // general medicine, not cardiology

	_, err := uc.CreateAppointment(patientContext(uuid.New()), req)

	assert.ErrorIs(t, err, ErrDoctorNotInDepartment)
	simulator.AssertNotCalled(t, "NextTokenNumber", mock.Anything, mock.Anything, mock.Anything)
}

func TestCreateAppointmentRejectsPastDate(t *testing.T) {
	appointmentRepo := new(MockAppointmentRepository)
	simulator := new(MockQueueSimulator)
	uc := NewAppointmentUsecase(testLogger(), appointmentRepo, simulator)

	req := validCreateRequest()
	req.Date = time.Now().UTC().AddDate(0, 0, -1).Format("2006-01-02")

	_, err := uc.CreateAppointment(patientContext(uuid.New()), req)

	assert.ErrorIs(t, err, ErrPastDate)
	appointmentRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreateAppointmentRejectsInvalidTimeSlot(t *testing.T) {
	appointmentRepo := new(MockAppointmentRepository)
	simulator := new(MockQueueSimulator)
	uc := NewAppointmentUsecase(testLogger(), appointmentRepo, simulator)

	req := validCreateRequest()
	req.TimeSlot = "07:00 AM"

	_, err := uc.CreateAppointment(patientContext(uuid.New()), req)

	assert.ErrorIs(t, err, ErrInvalidTimeSlot)
}

func TestCreateAppointmentRejectsBadDateFormat(t *testing.T) {
	appointmentRepo := new(MockAppointmentRepository)
	simulator := new(MockQueueSimulator)
	uc := NewAppointmentUsecase(testLogger(), appointmentRepo, simulator)

	req := validCreateRequest()
	req.Date = "01/02/2026"

	_, err := uc.CreateAppointment(patientContext(uuid.New()), req)

	assert.ErrorIs(t, err, ErrInvalidDateFormat)
}

func TestGetMyAppointmentsEmptyListIsNotAnError(t *testing.T) {
	appointmentRepo := new(MockAppointmentRepository)
	simulator := new(MockQueueSimulator)
	uc := NewAppointmentUsecase(testLogger(), appointmentRepo, simulator)

	patientID := uuid.New()
	ctx := patientContext(patientID)
	appointmentRepo.On("FindByPatientID", ctx, patientID).Return([]entity.Appointment{}, nil)

	resp, err := uc.GetMyAppointments(ctx)

	assert.NoError(t, err)
	assert.Equal(t, 0, resp.Total)
	assert.Empty(t, resp.Appointments)
}

func TestGetLatestAppointmentNotFound(t *testing.T) {
	appointmentRepo := new(MockAppointmentRepository)
	simulator := new(MockQueueSimulator)
	uc := NewAppointmentUsecase(testLogger(), appointmentRepo, simulator)

	patientID := uuid.New()
	ctx := patientContext(patientID)
	appointmentRepo.On("FindLatestByPatientID", ctx, patientID).Return(nil, nil)

	_, err := uc.GetLatestAppointment(ctx)

	assert.ErrorIs(t, err, ErrAppointmentNotFound)
}

func TestCancelAppointmentSuccess(t *testing.T) {
	appointmentRepo := new(MockAppointmentRepository)
	simulator := new(MockQueueSimulator)
	uc := NewAppointmentUsecase(testLogger(), appointmentRepo, simulator)

	patientID := uuid.New()
	appointmentID := uuid.New()
	ctx := patientContext(patientID)

	appointmentRepo.On("FindByID", ctx, appointmentID).Return(&entity.Appointment{
		ID:        appointmentID,
		PatientID: patientID,
		Status:    entity.AppointmentStatusUpcoming,
	}, nil)
	appointmentRepo.On("UpdateStatus", ctx, appointmentID,
		entity.AppointmentStatusUpcoming, entity.AppointmentStatusCancelled).Return(int64(1), nil)

	err := uc.CancelAppointment(ctx, appointmentID)

	assert.NoError(t, err)
	appointmentRepo.AssertExpectations(t)
}

func TestCancelAppointmentRejectsForeignAppointment(t *testing.T) {
	appointmentRepo := new(MockAppointmentRepository)
	simulator := new(MockQueueSimulator)
	uc := NewAppointmentUsecase(testLogger(), appointmentRepo, simulator)

	appointmentID := uuid.New()
	ctx := patientContext(uuid.New())

	appointmentRepo.On("FindByID", ctx, appointmentID).Return(&entity.Appointment{
		ID:        appointmentID,
		PatientID: uuid.New(), // someone else's booking
		Status:    entity.AppointmentStatusUpcoming,
	}, nil)

	err := uc.CancelAppointment(ctx, appointmentID)

	assert.ErrorIs(t, err, ErrAppointmentNotOwned)
	appointmentRepo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestCancelAppointmentAlreadyTerminal(t *testing.T) {
	appointmentRepo := new(MockAppointmentRepository)
	simulator := new(MockQueueSimulator)
	uc := NewAppointmentUsecase(testLogger(), appointmentRepo, simulator)

	patientID := uuid.New()
	appointmentID := uuid.New()
	ctx := patientContext(patientID)

	// The guarded update matches zero rows when the status already left
	// the upcoming state, e.g. a concurrent completion.
	appointmentRepo.On("FindByID", ctx, appointmentID).Return(&entity.Appointment{
		ID:        appointmentID,
		PatientID: patientID,
		Status:    entity.AppointmentStatusUpcoming,
	}, nil)
	appointmentRepo.On("UpdateStatus", ctx, appointmentID,
		entity.AppointmentStatusUpcoming, entity.AppointmentStatusCancelled).Return(int64(0), nil)

	err := uc.CancelAppointment(ctx, appointmentID)

	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestUpdateStatusRejectsUnknownStatus(t *testing.T) {
	appointmentRepo := new(MockAppointmentRepository)
	simulator := new(MockQueueSimulator)
	uc := NewAppointmentUsecase(testLogger(), appointmentRepo, simulator)

	_, err := uc.UpdateStatus(context.Background(), uuid.New(), entity.AppointmentStatus("rescheduled"))

	assert.ErrorIs(t, err, ErrUnknownStatus)
	appointmentRepo.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
}

func TestUpdateStatusRejectsTerminalAppointment(t *testing.T) {
	appointmentRepo := new(MockAppointmentRepository)
	simulator := new(MockQueueSimulator)
	uc := NewAppointmentUsecase(testLogger(), appointmentRepo, simulator)

	appointmentID := uuid.New()
	ctx := context.Background()

	appointmentRepo.On("FindByID", ctx, appointmentID).Return(&entity.Appointment{
		ID:     appointmentID,
		Status: entity.AppointmentStatusCancelled,
	}, nil)

	_, err := uc.UpdateStatus(ctx, appointmentID, entity.AppointmentStatusCompleted)

	assert.ErrorIs(t, err, ErrInvalidTransition)
}
