package entity

import (
	"time"

	"github.com/google/uuid"
)

// AppointmentStatus represents the status of an appointment
type AppointmentStatus string

const (
	AppointmentStatusUpcoming  AppointmentStatus = "upcoming"
	AppointmentStatusCompleted AppointmentStatus = "completed"
	AppointmentStatusCancelled AppointmentStatus = "cancelled"
)

// Appointment represents a booked hospital visit. TokenNumber and QRCode are
// assigned once at creation and never change. Token numbers are unique per
// day, not globally: each department's counter restarts every day.
type Appointment struct {
	ID           uuid.UUID         `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	PatientID    uuid.UUID         `gorm:"type:uuid;not null;index" json:"patient_id"`
	DepartmentID string            `gorm:"type:varchar(50);not null;index" json:"department_id"`
	Doctor       string            `gorm:"type:varchar(255);not null" json:"doctor"`
	Date         time.Time         `gorm:"type:date;not null;index;uniqueIndex:uq_appointments_token_number" json:"date"`
	TimeSlot     string            `gorm:"type:varchar(20);not null" json:"time_slot"`
	Symptoms     string            `gorm:"type:text;not null" json:"symptoms"`
	TokenNumber  string            `gorm:"type:varchar(20);not null;uniqueIndex:uq_appointments_token_number" json:"token_number"`
	QRCode       string            `gorm:"type:varchar(100);not null" json:"qr_code"`
	Status       AppointmentStatus `gorm:"type:varchar(20);not null;default:'upcoming';index" json:"status"`
	CreatedAt    time.Time         `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time         `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Patient Patient `gorm:"foreignKey:PatientID" json:"patient,omitempty"`
}

func (Appointment) TableName() string {
	return "appointments"
}

// IsUpcoming checks if the appointment is still pending a visit
func (a *Appointment) IsUpcoming() bool {
	return a.Status == AppointmentStatusUpcoming
}

// IsTerminal checks if the appointment reached a final status
func (a *Appointment) IsTerminal() bool {
	return a.Status == AppointmentStatusCompleted || a.Status == AppointmentStatusCancelled
}

// CanTransitionTo enforces the monotonic status lifecycle:
// upcoming -> {completed, cancelled}. Terminal statuses never change.
func (a *Appointment) CanTransitionTo(next AppointmentStatus) bool {
	if a.Status != AppointmentStatusUpcoming {
		return false
	}
	return next == AppointmentStatusCompleted || next == AppointmentStatusCancelled
}

// IsValidStatus reports whether s is one of the known appointment statuses
func IsValidStatus(s AppointmentStatus) bool {
	switch s {
	case AppointmentStatusUpcoming, AppointmentStatusCompleted, AppointmentStatusCancelled:
		return true
	}
	return false
}
