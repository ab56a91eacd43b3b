package jobs

import (
	"context"
	"time"

	"github.com/serenitycare/appointment-api/internal/domain/repository"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// Scheduler runs the recurring maintenance jobs. Currently there is one:
// transitioning past-dated upcoming appointments to completed, which gives
// the "time passed" status transition an explicit trigger.
type Scheduler struct {
	cron            *cron.Cron
	log             *logrus.Logger
	appointmentRepo repository.AppointmentRepository
}

func NewScheduler(log *logrus.Logger, appointmentRepo repository.AppointmentRepository) *Scheduler {
	return &Scheduler{
		cron:            cron.New(),
		log:             log,
		appointmentRepo: appointmentRepo,
	}
}

// Start registers the jobs and starts the cron loop. The completion job also
// runs once immediately so a restart catches up on missed days.
func (s *Scheduler) Start() error {
	// Runs every day at 00:05
	if _, err := s.cron.AddFunc("5 0 * * *", s.completePastAppointments); err != nil {
		return err
	}

	s.cron.Start()
	s.completePastAppointments()
	return nil
}

// Stop stops the cron loop and waits for running jobs to finish
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.log.Info("Job scheduler stopped")
}

func (s *Scheduler) completePastAppointments() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	today := time.Now().UTC().Truncate(24 * time.Hour)
	rows, err := s.appointmentRepo.CompletePastDue(ctx, today)
	if err != nil {
		s.log.Errorf("Failed to complete past appointments: %+v", err)
		return
	}
	if rows > 0 {
		s.log.Infof("Marked %d past appointments as completed", rows)
	}
}
