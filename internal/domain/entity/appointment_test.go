package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppointmentStatusLifecycle(t *testing.T) {
	upcoming := &Appointment{Status: AppointmentStatusUpcoming}
	assert.True(t, upcoming.IsUpcoming())
	assert.False(t, upcoming.IsTerminal())
	assert.True(t, upcoming.CanTransitionTo(AppointmentStatusCompleted))
	assert.True(t, upcoming.CanTransitionTo(AppointmentStatusCancelled))
	assert.False(t, upcoming.CanTransitionTo(AppointmentStatusUpcoming))
}

func TestAppointmentTerminalStatusesNeverChange(t *testing.T) {
	for _, status := range []AppointmentStatus{AppointmentStatusCompleted, AppointmentStatusCancelled} {
		a := &Appointment{Status: status}
		assert.True(t, a.IsTerminal())
		assert.False(t, a.IsUpcoming())
		assert.False(t, a.CanTransitionTo(AppointmentStatusUpcoming))
		assert.False(t, a.CanTransitionTo(AppointmentStatusCompleted))
		assert.False(t, a.CanTransitionTo(AppointmentStatusCancelled))
	}
}

func TestIsValidStatus(t *testing.T) {
	assert.True(t, IsValidStatus(AppointmentStatusUpcoming))
	assert.True(t, IsValidStatus(AppointmentStatusCompleted))
	assert.True(t, IsValidStatus(AppointmentStatusCancelled))
	assert.False(t, IsValidStatus(AppointmentStatus("rescheduled")))
	assert.False(t, IsValidStatus(AppointmentStatus("")))
}
