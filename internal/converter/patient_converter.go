package converter

import (
	"github.com/serenitycare/appointment-api/internal/delivery/dto"
	"github.com/serenitycare/appointment-api/internal/domain/entity"
)

// PatientToResponse converts a Patient entity to PatientResponse DTO
func PatientToResponse(patient *entity.Patient) *dto.PatientResponse {
	if patient == nil {
		return nil
	}

	return &dto.PatientResponse{
		ID:          patient.ID,
		PatientCode: patient.PatientCode,
		Name:        patient.Name,
		Mobile:      patient.Mobile,
		Email:       patient.Email,
		Age:         patient.Age,
		Gender:      patient.Gender,
		CreatedAt:   patient.CreatedAt,
		UpdatedAt:   patient.UpdatedAt,
	}
}
