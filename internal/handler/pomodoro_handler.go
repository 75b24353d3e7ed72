package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ibmastery/ibhub-api/internal/dto"
	"github.com/ibmastery/ibhub-api/internal/service"
	appErrors "github.com/ibmastery/ibhub-api/pkg/errors"
	"github.com/ibmastery/ibhub-api/pkg/response"
)

// PomodoroHandler serves the focus timer endpoints.
type PomodoroHandler struct {
	service *service.PomodoroService
}

// NewPomodoroHandler creates a new handler.
func NewPomodoroHandler(svc *service.PomodoroService) *PomodoroHandler {
	return &PomodoroHandler{service: svc}
}

// State godoc
// @Summary Get timer state
// @Tags Pomodoro
// @Produce json
// @Success 200 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Security BearerAuth
// @Router /pomodoro [get]
func (h *PomodoroHandler) State(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	response.JSON(c, http.StatusOK, h.service.State(claims.UserID), nil)
}

// Start godoc
// @Summary Start timer
// @Tags Pomodoro
// @Produce json
// @Success 200 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Security BearerAuth
// @Router /pomodoro/start [post]
func (h *PomodoroHandler) Start(c *gin.Context) {
	h.transition(c, h.service.Start)
}

// Pause godoc
// @Summary Pause timer
// @Tags Pomodoro
// @Produce json
// @Success 200 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Security BearerAuth
// @Router /pomodoro/pause [post]
func (h *PomodoroHandler) Pause(c *gin.Context) {
	h.transition(c, h.service.Pause)
}

// Resume godoc
// @Summary Resume timer
// @Tags Pomodoro
// @Produce json
// @Success 200 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Security BearerAuth
// @Router /pomodoro/resume [post]
func (h *PomodoroHandler) Resume(c *gin.Context) {
	h.transition(c, h.service.Resume)
}

// Reset godoc
// @Summary Reset timer
// @Tags Pomodoro
// @Produce json
// @Success 200 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Security BearerAuth
// @Router /pomodoro/reset [post]
func (h *PomodoroHandler) Reset(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	response.JSON(c, http.StatusOK, h.service.Reset(claims.UserID), nil)
}

func (h *PomodoroHandler) transition(c *gin.Context, op func(string) (*dto.PomodoroStateResponse, error)) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	state, err := op(claims.UserID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, state, nil)
}
