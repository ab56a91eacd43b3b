package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

type CreateAppointmentRequest struct {
	DepartmentID string `json:"department_id" validate:"required"`
	Doctor       string `json:"doctor" validate:"required"`
	Date         string `json:"date" validate:"required"` // Format: YYYY-MM-DD
	TimeSlot     string `json:"time_slot" validate:"required"`
	Symptoms     string `json:"symptoms" validate:"required,min=3"`
}

type UpdateAppointmentStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=upcoming completed cancelled"`
}

// Response DTOs

type AppointmentResponse struct {
	ID             uuid.UUID `json:"id"`
	PatientID      uuid.UUID `json:"patient_id"`
	DepartmentID   string    `json:"department_id"`
	DepartmentName string    `json:"department_name,omitempty"`
	Doctor         string    `json:"doctor"`
	Date           string    `json:"date"`
	TimeSlot       string    `json:"time_slot"`
	Symptoms       string    `json:"symptoms"`
	TokenNumber    string    `json:"token_number"`
	QRCode         string    `json:"qr_code"`
	Status         string    `json:"status"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

type AppointmentListResponse struct {
	Appointments []AppointmentResponse `json:"appointments"`
	Total        int                   `json:"total"`
}

// Catalog response

type DepartmentResponse struct {
	ID      string   `json:"id"`
	Name    string   `json:"name"`
	Doctors []string `json:"doctors"`
}

type CatalogResponse struct {
	Departments []DepartmentResponse `json:"departments"`
	TimeSlots   []string             `json:"time_slots"`
}
