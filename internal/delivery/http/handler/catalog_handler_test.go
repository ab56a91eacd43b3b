package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/serenitycare/appointment-api/internal/delivery/dto"
	"github.com/serenitycare/appointment-api/pkg/response"

	"github.com/stretchr/testify/assert"
)

func TestCatalogHandlerGetCatalog(t *testing.T) {
	h := NewCatalogHandler()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/departments", nil)
	rec := httptest.NewRecorder()

	h.GetCatalog(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var body response.Response
	assert.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.True(t, body.Success)

	raw, err := json.Marshal(body.Data)
	assert.NoError(t, err)
	var catalog dto.CatalogResponse
	assert.NoError(t, json.Unmarshal(raw, &catalog))

	assert.Len(t, catalog.Departments, 5)
	assert.Len(t, catalog.TimeSlots, 12)
	assert.Equal(t, "general", catalog.Departments[0].ID)
	assert.NotEmpty(t, catalog.Departments[0].Doctors)
}
