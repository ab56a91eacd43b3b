package converter

import (
	"github.com/serenitycare/appointment-api/internal/delivery/dto"
	"github.com/serenitycare/appointment-api/internal/domain/entity"
)

// AppointmentToResponse converts an Appointment entity to AppointmentResponse DTO
func AppointmentToResponse(appointment *entity.Appointment) *dto.AppointmentResponse {
	if appointment == nil {
		return nil
	}

	response := &dto.AppointmentResponse{
		ID:           appointment.ID,
		PatientID:    appointment.PatientID,
		DepartmentID: appointment.DepartmentID,
		Doctor:       appointment.Doctor,
		Date:         appointment.Date.Format("2006-01-02"),
		TimeSlot:     appointment.TimeSlot,
		Symptoms:     appointment.Symptoms,
		TokenNumber:  appointment.TokenNumber,
		QRCode:       appointment.QRCode,
		Status:       string(appointment.Status),
		CreatedAt:    appointment.CreatedAt,
		UpdatedAt:    appointment.UpdatedAt,
	}

	// Resolve the display name from the fixed catalog
	if dept, ok := entity.FindDepartment(appointment.DepartmentID); ok {
		response.DepartmentName = dept.Name
	}

	return response
}

// AppointmentsToResponses converts a slice of Appointment entities to response DTOs
func AppointmentsToResponses(appointments []entity.Appointment) []dto.AppointmentResponse {
	responses := make([]dto.AppointmentResponse, len(appointments))
	for i, appointment := range appointments {
		resp := AppointmentToResponse(&appointment)
		if resp != nil {
			responses[i] = *resp
		}
	}
	return responses
}
