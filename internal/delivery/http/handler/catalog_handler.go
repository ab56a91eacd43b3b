package handler

import (
	"net/http"

	"github.com/serenitycare/appointment-api/internal/delivery/dto"
	"github.com/serenitycare/appointment-api/internal/domain/entity"
	"github.com/serenitycare/appointment-api/pkg/response"
)

// CatalogHandler serves the fixed department/doctor catalog and the bookable
// time slots. The catalog is code-defined, so this handler has no dependencies.
type CatalogHandler struct{}

func NewCatalogHandler() *CatalogHandler {
	return &CatalogHandler{}
}

// GetCatalog returns departments, doctors and time slots
// @Summary Get booking catalog
// @Tags Catalog
// @Produce json
// @Success 200 {object} response.Response
// @Router /departments [get]
func (h *CatalogHandler) GetCatalog(w http.ResponseWriter, r *http.Request) {
	depts := entity.Departments()
	resp := dto.CatalogResponse{
		Departments: make([]dto.DepartmentResponse, 0, len(depts)),
		TimeSlots:   entity.TimeSlots(),
	}
	for _, d := range depts {
		resp.Departments = append(resp.Departments, dto.DepartmentResponse{
			ID:      d.ID,
			Name:    d.Name,
			Doctors: d.Doctors,
		})
	}

	response.Success(w, http.StatusOK, "Catalog retrieved successfully", resp)
}
