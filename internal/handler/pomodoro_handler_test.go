package handler

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/ibmastery/ibhub-api/internal/dto"
	"github.com/ibmastery/ibhub-api/internal/service"
	"github.com/ibmastery/ibhub-api/pkg/config"
)

func newPomodoroTestHandler() *PomodoroHandler {
	svc := service.NewPomodoroService(config.PomodoroConfig{
		FocusDuration: 25 * time.Minute,
		BreakDuration: 5 * time.Minute,
	}, nil)
	return NewPomodoroHandler(svc)
}

func TestPomodoroHandlerStateAndStart(t *testing.T) {
	h := newPomodoroTestHandler()

	c, w := authedContext(t, http.MethodGet, "/pomodoro", nil)
	h.State(c)
	require.Equal(t, http.StatusOK, w.Code)

	var envelope struct {
		Data dto.PomodoroStateResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	require.Equal(t, "idle", envelope.Data.State)
	require.Equal(t, "25:00", envelope.Data.Clock)

	c, w = authedContext(t, http.MethodPost, "/pomodoro/start", nil)
	h.Start(c)
	require.Equal(t, http.StatusOK, w.Code)

	envelope.Data = dto.PomodoroStateResponse{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	require.Equal(t, "running", envelope.Data.State)
}

func TestPomodoroHandlerInvalidTransition(t *testing.T) {
	h := newPomodoroTestHandler()

	c, w := authedContext(t, http.MethodPost, "/pomodoro/pause", nil)
	h.Pause(c)
	require.Equal(t, http.StatusConflict, w.Code)
}

func TestPomodoroHandlerReset(t *testing.T) {
	h := newPomodoroTestHandler()

	c, _ := authedContext(t, http.MethodPost, "/pomodoro/start", nil)
	h.Start(c)

	c, w := authedContext(t, http.MethodPost, "/pomodoro/reset", nil)
	h.Reset(c)
	require.Equal(t, http.StatusOK, w.Code)

	var envelope struct {
		Data dto.PomodoroStateResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	require.Equal(t, "idle", envelope.Data.State)
}
