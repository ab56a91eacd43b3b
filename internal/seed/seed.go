// Package seed provides the demo-data seeding utility for pilot
// demonstrations. Seeding is explicit and opt-in (APP_SEED_DEMO=true);
// the repository read paths never fabricate records on their own.
package seed

import (
	"context"
	"fmt"
	"time"

	"github.com/serenitycare/appointment-api/internal/domain/entity"
	"github.com/serenitycare/appointment-api/internal/domain/repository"
	"github.com/serenitycare/appointment-api/internal/service"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

const (
	demoMobile   = "9876543210"
	demoPassword = "demo1234"
)

// DemoData inserts a demo patient with one completed and one upcoming
// appointment. Idempotent: it does nothing when the demo patient exists.
func DemoData(
	ctx context.Context,
	log *logrus.Logger,
	patientRepo repository.PatientRepository,
	appointmentRepo repository.AppointmentRepository,
	queueSimulator service.QueueSimulator,
) error {
	existing, err := patientRepo.FindByIdentifier(ctx, demoMobile)
	if err != nil {
		return fmt.Errorf("check demo patient: %w", err)
	}
	if existing != nil {
		log.Debug("Demo data already seeded")
		return nil
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(demoPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	patient := &entity.Patient{
		PatientCode: entity.NewPatientCode(time.Now()),
		Name:        "John Doe",
		Mobile:      demoMobile,
		Email:       "john@example.com",
		Age:         34,
		Gender:      entity.GenderMale,
		Password:    string(hashed),
	}
	if err := patientRepo.Create(ctx, patient); err != nil {
		return fmt.Errorf("seed demo patient: %w", err)
	}

	now := time.Now().UTC()
	appointments := []*entity.Appointment{
		{
			PatientID:    patient.ID,
			DepartmentID: "general",
			Doctor:       "Dr. Sarah Wilson",
			Date:         now.AddDate(0, 0, -7).Truncate(24 * time.Hour),
			TimeSlot:     "10:00 AM",
			Symptoms:     "Routine checkup",
			QRCode:       fmt.Sprintf("SC-%d-%s", now.AddDate(0, 0, -7).UnixMilli(), patient.ID),
			Status:       entity.AppointmentStatusCompleted,
		},
		{
			PatientID:    patient.ID,
			DepartmentID: "cardiology",
			Doctor:       "Dr. Robert Chen",
			Date:         now.AddDate(0, 0, 2).Truncate(24 * time.Hour),
			TimeSlot:     "09:30 AM",
			Symptoms:     "Follow-up consultation",
			QRCode:       fmt.Sprintf("SC-%d-%s", now.UnixMilli(), patient.ID),
			Status:       entity.AppointmentStatusUpcoming,
		},
	}
	for _, a := range appointments {
		// Reserve through the shared counter so later real bookings on the
		// same department and day never collide with a seeded token.
		dept, _ := entity.FindDepartment(a.DepartmentID)
		token, err := queueSimulator.NextTokenNumber(ctx, dept, a.Date)
		if err != nil {
			return fmt.Errorf("seed demo token: %w", err)
		}
		a.TokenNumber = token

		if err := appointmentRepo.Create(ctx, a); err != nil {
			return fmt.Errorf("seed demo appointment: %w", err)
		}
	}

	log.Infof("Seeded demo patient %s with %d appointments", patient.PatientCode, len(appointments))
	return nil
}
