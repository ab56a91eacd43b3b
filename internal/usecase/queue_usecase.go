package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/serenitycare/appointment-api/config"
	"github.com/serenitycare/appointment-api/internal/delivery/dto"
	"github.com/serenitycare/appointment-api/internal/domain/entity"
	"github.com/serenitycare/appointment-api/internal/domain/repository"
	"github.com/serenitycare/appointment-api/internal/service"

	"github.com/sirupsen/logrus"
)

// ErrTokenNotFound is returned when no trackable appointment carries the token
var ErrTokenNotFound = errors.New("token not found")

type QueueUsecase interface {
	// Poll returns the current simulated queue snapshot for a token. Each
	// call moves the queue forward; position and wait never increase.
	Poll(ctx context.Context, tokenNumber string) (*dto.QueueTrackingResponse, error)
	// CallToken marks a token as called to the consultation room (admin).
	CallToken(ctx context.Context, tokenNumber string) error
	// Summary returns the department queue board for today.
	Summary(ctx context.Context) (*dto.QueueSummaryResponse, error)
}

type queueUsecase struct {
	log             *logrus.Logger
	appointmentRepo repository.AppointmentRepository
	queueSimulator  service.QueueSimulator
	queueCfg        config.QueueConfig
}

func NewQueueUsecase(
	log *logrus.Logger,
	appointmentRepo repository.AppointmentRepository,
	queueSimulator service.QueueSimulator,
	queueCfg config.QueueConfig,
) QueueUsecase {
	return &queueUsecase{
		log:             log,
		appointmentRepo: appointmentRepo,
		queueSimulator:  queueSimulator,
		queueCfg:        queueCfg,
	}
}

func (u *queueUsecase) Poll(ctx context.Context, tokenNumber string) (*dto.QueueTrackingResponse, error) {
	appointment, err := u.appointmentRepo.FindByToken(ctx, tokenNumber)
	if err != nil {
		u.log.Warnf("Failed to look up token %s: %+v", tokenNumber, err)
		return nil, err
	}
	if appointment == nil || !appointment.IsUpcoming() {
		// Cancelled and completed appointments leave the live queue.
		return nil, ErrTokenNotFound
	}

	snapshot, err := u.queueSimulator.Poll(ctx, tokenNumber)
	if errors.Is(err, service.ErrTokenNotTracked) {
		// Queue state expired or was never seeded (e.g. Redis restart).
		// Re-seed and poll again.
		if _, seedErr := u.queueSimulator.InitPosition(ctx, tokenNumber, appointment.Date); seedErr != nil {
			return nil, seedErr
		}
		snapshot, err = u.queueSimulator.Poll(ctx, tokenNumber)
	}
	if err != nil {
		return nil, err
	}

	resp := &dto.QueueTrackingResponse{
		TokenNumber:          snapshot.TokenNumber,
		DepartmentID:         appointment.DepartmentID,
		Doctor:               appointment.Doctor,
		TimeSlot:             appointment.TimeSlot,
		CurrentPosition:      snapshot.CurrentPosition,
		EstimatedWaitMinutes: snapshot.EstimatedWaitMinutes,
		Status:               string(snapshot.Status),
	}
	if dept, ok := entity.FindDepartment(appointment.DepartmentID); ok {
		resp.DepartmentName = dept.Name
	}
	return resp, nil
}

func (u *queueUsecase) CallToken(ctx context.Context, tokenNumber string) error {
	appointment, err := u.appointmentRepo.FindByToken(ctx, tokenNumber)
	if err != nil {
		u.log.Warnf("Failed to look up token %s: %+v", tokenNumber, err)
		return err
	}
	if appointment == nil || !appointment.IsUpcoming() {
		return ErrTokenNotFound
	}

	return u.queueSimulator.Call(ctx, tokenNumber)
}

func (u *queueUsecase) Summary(ctx context.Context) (*dto.QueueSummaryResponse, error) {
	today := todayUTC()

	counts, err := u.appointmentRepo.CountPendingByDepartment(ctx, today)
	if err != nil {
		u.log.Warnf("Failed to count pending appointments: %+v", err)
		return nil, err
	}

	serving, err := u.queueSimulator.CurrentlyServing(ctx)
	if err != nil {
		u.log.Warnf("Failed to read currently serving token (non-fatal): %+v", err)
		serving = ""
	}

	summary := &dto.QueueSummaryResponse{
		CurrentlyServing: serving,
		Departments:      make([]dto.DepartmentQueueResponse, 0, len(entity.Departments())),
	}
	for _, dept := range entity.Departments() {
		pending := counts[dept.ID]
		summary.TotalPatients += pending
		summary.Departments = append(summary.Departments, dto.DepartmentQueueResponse{
			DepartmentID:   dept.ID,
			DepartmentName: dept.Name,
			Pending:        pending,
			AvgWaitMinutes: estimateWait(pending, u.queueCfg),
		})
	}

	return summary, nil
}

// todayUTC returns today's date truncated to midnight UTC
func todayUTC() time.Time {
	return time.Now().UTC().Truncate(24 * time.Hour)
}

// estimateWait derives the board's advertised wait from pending load
func estimateWait(pending int, cfg config.QueueConfig) int {
	if pending == 0 {
		return 0
	}
	return cfg.MinWaitMinutes + pending*cfg.WaitStepMinutes
}
