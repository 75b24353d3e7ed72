package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ibmastery/ibhub-api/internal/dto"
	"github.com/ibmastery/ibhub-api/internal/service"
	appErrors "github.com/ibmastery/ibhub-api/pkg/errors"
	"github.com/ibmastery/ibhub-api/pkg/response"
)

const anchorLayout = "2006-01-02"

// TimetableHandler serves the weekly timetable view and the add-event form.
type TimetableHandler struct {
	service *service.TimetableService
	now     func() time.Time
}

// NewTimetableHandler creates a new handler.
func NewTimetableHandler(svc *service.TimetableService) *TimetableHandler {
	return &TimetableHandler{service: svc, now: time.Now}
}

// Week godoc
// @Summary Get week view
// @Description Render the week containing the anchor date (today when omitted)
// @Tags Timetable
// @Produce json
// @Param anchor query string false "Anchor date (YYYY-MM-DD)"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Security BearerAuth
// @Router /timetable/week [get]
func (h *TimetableHandler) Week(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	anchor := h.now()
	if raw := c.Query("anchor"); raw != "" {
		parsed, err := time.ParseInLocation(anchorLayout, raw, anchor.Location())
		if err != nil {
			response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "anchor must be YYYY-MM-DD"))
			return
		}
		anchor = parsed
	}

	view, err := h.service.WeekView(c.Request.Context(), claims.UserID, anchor)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, view, nil)
}

// CreateEvent godoc
// @Summary Add timetable event
// @Description Validate and store a new event from the add-event form
// @Tags Timetable
// @Accept json
// @Produce json
// @Param payload body dto.CreateEventRequest true "Event payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Security BearerAuth
// @Router /timetable/events [post]
func (h *TimetableHandler) CreateEvent(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	var req dto.CreateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid event payload"))
		return
	}

	event, err := h.service.AddEvent(c.Request.Context(), claims.UserID, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, event)
}

// FormDefaults godoc
// @Summary Get add-event form defaults
// @Tags Timetable
// @Produce json
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /timetable/events/defaults [get]
func (h *TimetableHandler) FormDefaults(c *gin.Context) {
	response.JSON(c, http.StatusOK, h.service.FormDefaults(), nil)
}

// Categories godoc
// @Summary List event categories
// @Description Lists every event type with its display color
// @Tags Timetable
// @Produce json
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /timetable/categories [get]
func (h *TimetableHandler) Categories(c *gin.Context) {
	categories, err := h.service.Categories()
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, categories, nil)
}
