package seed

import (
	"context"
	"testing"
	"time"

	"github.com/serenitycare/appointment-api/config"
	"github.com/serenitycare/appointment-api/internal/domain/entity"
	"github.com/serenitycare/appointment-api/internal/service"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

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

// appointmentRecorder captures created appointments; the seeder only needs
// Create from the appointment repository.
type appointmentRecorder struct {
	created []*entity.Appointment
}

func (m *appointmentRecorder) Create(ctx context.Context, appointment *entity.Appointment) error {
	m.created = append(m.created, appointment)
	return nil
}

func (m *appointmentRecorder) FindByID(ctx context.Context, id uuid.UUID) (*entity.Appointment, error) {
	return nil, nil
}

func (m *appointmentRecorder) FindByPatientID(ctx context.Context, patientID uuid.UUID) ([]entity.Appointment, error) {
	return nil, nil
}

func (m *appointmentRecorder) FindLatestByPatientID(ctx context.Context, patientID uuid.UUID) (*entity.Appointment, error) {
	return nil, nil
}

func (m *appointmentRecorder) FindByToken(ctx context.Context, tokenNumber string) (*entity.Appointment, error) {
	return nil, nil
}

func (m *appointmentRecorder) FindAll(ctx context.Context) ([]entity.Appointment, error) {
	return nil, nil
}

func (m *appointmentRecorder) UpdateStatus(ctx context.Context, id uuid.UUID, from, to entity.AppointmentStatus) (int64, error) {
	return 0, nil
}

func (m *appointmentRecorder) CompletePastDue(ctx context.Context, before time.Time) (int64, error) {
	return 0, nil
}

func (m *appointmentRecorder) CountPendingByDepartment(ctx context.Context, onDate time.Time) (map[string]int, error) {
	return nil, nil
}

func newSeedTestSimulator(t *testing.T) (service.QueueSimulator, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	return service.NewQueueSimulator(client, log, config.QueueConfig{
		MaxInitialPosition: 10,
		MinWaitMinutes:     5,
		WaitStepMinutes:    3,
	}), client
}

func TestDemoDataReservesTokensThroughCounter(t *testing.T) {
	patientRepo := new(MockPatientRepository)
	appointmentRepo := &appointmentRecorder{}
	sim, _ := newSeedTestSimulator(t)
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)

	ctx := context.Background()
	patientRepo.On("FindByIdentifier", ctx, "9876543210").Return(nil, nil)
	patientRepo.On("Create", ctx, mock.AnythingOfType("*entity.Patient")).Return(nil)

	assert.NoError(t, DemoData(ctx, log, patientRepo, appointmentRepo, sim))
	assert.Len(t, appointmentRepo.created, 2)
	assert.Equal(t, "G-1", appointmentRepo.created[0].TokenNumber)
	assert.Equal(t, "C-1", appointmentRepo.created[1].TokenNumber)

	// A real booking on the same department and day continues the sequence
	// instead of reusing the seeded token.
	cardiology, _ := entity.FindDepartment("cardiology")
	next, err := sim.NextTokenNumber(ctx, cardiology, appointmentRepo.created[1].Date)
	assert.NoError(t, err)
	assert.Equal(t, "C-2", next)
}

func TestDemoDataIsIdempotent(t *testing.T) {
	patientRepo := new(MockPatientRepository)
	appointmentRepo := &appointmentRecorder{}
	sim, _ := newSeedTestSimulator(t)
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)

	ctx := context.Background()
	patientRepo.On("FindByIdentifier", ctx, "9876543210").Return(&entity.Patient{
		ID:     uuid.New(),
		Mobile: "9876543210",
	}, nil)

	assert.NoError(t, DemoData(ctx, log, patientRepo, appointmentRepo, sim))
	assert.Empty(t, appointmentRepo.created)
	patientRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}
