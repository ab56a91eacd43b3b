package handler

import (
	"net/http"

	"github.com/serenitycare/appointment-api/internal/usecase"
	"github.com/serenitycare/appointment-api/pkg/response"

	"github.com/gorilla/mux"
)

type QueueHandler struct {
	queueUsecase usecase.QueueUsecase
}

func NewQueueHandler(queueUsecase usecase.QueueUsecase) *QueueHandler {
	return &QueueHandler{queueUsecase: queueUsecase}
}

// Poll returns the live queue snapshot for a token
// @Summary Track a token in the live queue
// @Tags Queue
// @Produce json
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /queue/{token} [get]
func (h *QueueHandler) Poll(w http.ResponseWriter, r *http.Request) {
	tokenNumber := mux.Vars(r)["token"]

	tracking, err := h.queueUsecase.Poll(r.Context(), tokenNumber)
	if err != nil {
		switch err {
		case usecase.ErrTokenNotFound:
			response.NotFound(w, "Token not found")
		default:
			response.InternalServerError(w, "Failed to track token")
		}
		return
	}

	response.Success(w, http.StatusOK, "Queue status retrieved successfully", tracking)
}

// Summary returns the department queue board
// @Summary Department queue summary
// @Tags Queue
// @Produce json
// @Success 200 {object} response.Response
// @Router /queue/summary [get]
func (h *QueueHandler) Summary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.queueUsecase.Summary(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to get queue summary")
		return
	}

	response.Success(w, http.StatusOK, "Queue summary retrieved successfully", summary)
}

// CallToken marks a token as called (admin)
// @Summary Call a token to the consultation room
// @Tags Admin
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /admin/queue/{token}/call [post]
func (h *QueueHandler) CallToken(w http.ResponseWriter, r *http.Request) {
	tokenNumber := mux.Vars(r)["token"]

	if err := h.queueUsecase.CallToken(r.Context(), tokenNumber); err != nil {
		switch err {
		case usecase.ErrTokenNotFound:
			response.NotFound(w, "Token not found")
		default:
			response.InternalServerError(w, "Failed to call token")
		}
		return
	}

	response.Success(w, http.StatusOK, "Token called successfully", nil)
}
