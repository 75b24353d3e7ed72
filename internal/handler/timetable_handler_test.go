package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/ibmastery/ibhub-api/internal/dto"
	"github.com/ibmastery/ibhub-api/internal/middleware"
	"github.com/ibmastery/ibhub-api/internal/models"
	"github.com/ibmastery/ibhub-api/internal/repository"
	"github.com/ibmastery/ibhub-api/internal/service"
	"github.com/ibmastery/ibhub-api/pkg/config"
	"github.com/ibmastery/ibhub-api/pkg/response"
)

func newTimetableTestHandler(t *testing.T) (*TimetableHandler, *repository.MemoryEventStore) {
	t.Helper()
	store := repository.NewMemoryEventStore()
	svc := service.NewTimetableService(store, nil, config.CalendarConfig{
		StartHour:     7,
		EndHour:       22,
		PixelsPerHour: 60,
		FirstDay:      time.Sunday,
		CacheTTL:      time.Minute,
	}, nil, nil)
	return NewTimetableHandler(svc), store
}

func authedContext(t *testing.T, method, target string, body []byte) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	var req *http.Request
	if body != nil {
		req = httptest.NewRequest(method, target, bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	c.Request = req
	c.Set(middleware.ContextUserKey, &models.JWTClaims{UserID: "stu-1", Email: "ari@school.test"})
	return c, w
}

func TestTimetableHandlerWeek(t *testing.T) {
	h, store := newTimetableTestHandler(t)
	require.NoError(t, store.Seed([]models.TimetableEvent{{
		ID:     "evt-1",
		UserID: "stu-1",
		Title:  "Math AA HL",
		Type:   models.EventSubject,
		Start:  time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC),
		End:    time.Date(2025, 3, 10, 10, 0, 0, 0, time.UTC),
	}}))

	c, w := authedContext(t, http.MethodGet, "/timetable/week?anchor=2025-03-12", nil)
	h.Week(c)
	require.Equal(t, http.StatusOK, w.Code)

	var envelope struct {
		Data dto.WeekViewResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	require.Equal(t, "2025-03-09", envelope.Data.WeekStart)
	require.Len(t, envelope.Data.Days, 7)
	require.Len(t, envelope.Data.Days[1].Events, 1)
}

func TestTimetableHandlerWeekBadAnchor(t *testing.T) {
	h, _ := newTimetableTestHandler(t)

	c, w := authedContext(t, http.MethodGet, "/timetable/week?anchor=last-tuesday", nil)
	h.Week(c)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestTimetableHandlerWeekUnauthorized(t *testing.T) {
	h, _ := newTimetableTestHandler(t)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/timetable/week", nil)

	h.Week(c)
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestTimetableHandlerCreateEvent(t *testing.T) {
	h, store := newTimetableTestHandler(t)

	body, _ := json.Marshal(dto.CreateEventRequest{
		Title:     "Chemistry IA",
		Date:      "2025-03-11",
		StartTime: "14:00",
		EndTime:   "15:30",
		Type:      "ia",
	})
	c, w := authedContext(t, http.MethodPost, "/timetable/events", body)
	h.CreateEvent(c)
	require.Equal(t, http.StatusCreated, w.Code)
	require.Equal(t, 1, store.Count("stu-1"))
}

func TestTimetableHandlerCreateEventValidation(t *testing.T) {
	h, _ := newTimetableTestHandler(t)

	body, _ := json.Marshal(dto.CreateEventRequest{
		Title:     "   ",
		Date:      "2025-03-11",
		StartTime: "14:00",
		EndTime:   "15:30",
		Type:      "ia",
	})
	c, w := authedContext(t, http.MethodPost, "/timetable/events", body)
	h.CreateEvent(c)
	require.Equal(t, http.StatusBadRequest, w.Code)

	var envelope response.Envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	require.NotNil(t, envelope.Error)
	require.Contains(t, envelope.Error.Message, "title")
}

func TestTimetableHandlerFormDefaultsAndCategories(t *testing.T) {
	h, _ := newTimetableTestHandler(t)

	c, w := authedContext(t, http.MethodGet, "/timetable/events/defaults", nil)
	h.FormDefaults(c)
	require.Equal(t, http.StatusOK, w.Code)

	c, w = authedContext(t, http.MethodGet, "/timetable/categories", nil)
	h.Categories(c)
	require.Equal(t, http.StatusOK, w.Code)

	var envelope struct {
		Data []dto.EventCategory `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	require.Len(t, envelope.Data, 8)
}
