package usecase

import (
	"context"
	"time"

	"github.com/serenitycare/appointment-api/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockAppointmentRepository is a mock implementation of repository.AppointmentRepository
type MockAppointmentRepository struct {
	mock.Mock
}

func (m *MockAppointmentRepository) Create(ctx context.Context, appointment *entity.Appointment) error {
	args := m.Called(ctx, appointment)
	return args.Error(0)
}

func (m *MockAppointmentRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Appointment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Appointment), args.Error(1)
}

func (m *MockAppointmentRepository) FindByPatientID(ctx context.Context, patientID uuid.UUID) ([]entity.Appointment, error) {
	args := m.Called(ctx, patientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Appointment), args.Error(1)
}

func (m *MockAppointmentRepository) FindLatestByPatientID(ctx context.Context, patientID uuid.UUID) (*entity.Appointment, error) {
	args := m.Called(ctx, patientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Appointment), args.Error(1)
}

func (m *MockAppointmentRepository) FindByToken(ctx context.Context, tokenNumber string) (*entity.Appointment, error) {
	args := m.Called(ctx, tokenNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Appointment), args.Error(1)
}

func (m *MockAppointmentRepository) FindAll(ctx context.Context) ([]entity.Appointment, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Appointment), args.Error(1)
}

func (m *MockAppointmentRepository) UpdateStatus(ctx context.Context, id uuid.UUID, from, to entity.AppointmentStatus) (int64, error) {
	args := m.Called(ctx, id, from, to)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockAppointmentRepository) CompletePastDue(ctx context.Context, before time.Time) (int64, error) {
	args := m.Called(ctx, before)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockAppointmentRepository) CountPendingByDepartment(ctx context.Context, onDate time.Time) (map[string]int, error) {
	args := m.Called(ctx, onDate)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]int), args.Error(1)
}

// MockPatientRepository is a mock implementation of repository.PatientRepository
type MockPatientRepository struct {
	mock.Mock
}

func (m *MockPatientRepository) Create(ctx context.Context, patient *entity.Patient) error {
	args := m.Called(ctx, patient)
	return args.Error(0)
}

func (m *MockPatientRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Patient, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Patient), args.Error(1)
}

func (m *MockPatientRepository) FindByIdentifier(ctx context.Context, identifier string) (*entity.Patient, error) {
	args := m.Called(ctx, identifier)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Patient), args.Error(1)
}

// MockQueueSimulator is a mock implementation of service.QueueSimulator
type MockQueueSimulator struct {
	mock.Mock
}

func (m *MockQueueSimulator) NextTokenNumber(ctx context.Context, dept entity.Department, date time.Time) (string, error) {
	args := m.Called(ctx, dept, date)
	return args.String(0), args.Error(1)
}

func (m *MockQueueSimulator) InitPosition(ctx context.Context, tokenNumber string, date time.Time) (int, error) {
	args := m.Called(ctx, tokenNumber, date)
	return args.Int(0), args.Error(1)
}

func (m *MockQueueSimulator) Poll(ctx context.Context, tokenNumber string) (*entity.QueueSnapshot, error) {
	args := m.Called(ctx, tokenNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.QueueSnapshot), args.Error(1)
}

func (m *MockQueueSimulator) Call(ctx context.Context, tokenNumber string) error {
	args := m.Called(ctx, tokenNumber)
	return args.Error(0)
}

func (m *MockQueueSimulator) CurrentlyServing(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}
