package handler

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/ibmastery/ibhub-api/internal/dto"
	"github.com/ibmastery/ibhub-api/internal/middleware"
	"github.com/ibmastery/ibhub-api/internal/models"
	"github.com/ibmastery/ibhub-api/internal/repository"
	"github.com/ibmastery/ibhub-api/internal/service"
)

func newOnboardingTestHandler(t *testing.T) (*OnboardingHandler, string) {
	t.Helper()
	users := repository.NewMemoryUserStore()
	id := users.AddUser(models.User{
		Email:     "ari@school.test",
		FirstName: "Ari",
		LastName:  "Tan",
		Programme: models.ProgrammeDP,
		Active:    true,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	})
	return NewOnboardingHandler(service.NewOnboardingService(users, nil, nil)), id
}

func dpChoices() []dto.SubjectChoice {
	return []dto.SubjectChoice{
		{SubjectID: "eng-a", Name: "English A Literature", Group: 1, Level: "HL"},
		{SubjectID: "spa-b", Name: "Spanish B", Group: 2, Level: "SL"},
		{SubjectID: "hist", Name: "History", Group: 3, Level: "HL"},
		{SubjectID: "chem", Name: "Chemistry", Group: 4, Level: "SL"},
		{SubjectID: "math-aa", Name: "Math AA", Group: 5, Level: "HL"},
		{SubjectID: "vis-art", Name: "Visual Arts", Group: 6, Level: "SL"},
	}
}

func TestOnboardingHandlerComplete(t *testing.T) {
	h, id := newOnboardingTestHandler(t)

	body, _ := json.Marshal(dto.CompleteOnboardingRequest{
		Programme: "DP",
		Subjects:  dpChoices(),
	})
	c, w := authedContext(t, http.MethodPost, "/onboarding", body)
	c.Set(middleware.ContextUserKey, claimsFor(id))
	h.Complete(c)
	require.Equal(t, http.StatusOK, w.Code)

	var envelope struct {
		Data dto.OnboardingResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	require.True(t, envelope.Data.OnboardingComplete)
	require.Len(t, envelope.Data.Subjects, 6)
}

func TestOnboardingHandlerRejectsRuleViolation(t *testing.T) {
	h, id := newOnboardingTestHandler(t)

	choices := dpChoices()
	choices[0].Level = "SL" // only two HL left
	body, _ := json.Marshal(dto.CompleteOnboardingRequest{
		Programme: "DP",
		Subjects:  choices,
	})
	c, w := authedContext(t, http.MethodPost, "/onboarding", body)
	c.Set(middleware.ContextUserKey, claimsFor(id))
	h.Complete(c)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestOnboardingHandlerInvalidBody(t *testing.T) {
	h, id := newOnboardingTestHandler(t)

	c, w := authedContext(t, http.MethodPost, "/onboarding", []byte(`not json`))
	c.Set(middleware.ContextUserKey, claimsFor(id))
	h.Complete(c)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestOnboardingHandlerProfile(t *testing.T) {
	h, id := newOnboardingTestHandler(t)

	c, w := authedContext(t, http.MethodGet, "/onboarding", nil)
	c.Set(middleware.ContextUserKey, claimsFor(id))
	h.Profile(c)
	require.Equal(t, http.StatusOK, w.Code)
}

func claimsFor(id string) *models.JWTClaims {
	return &models.JWTClaims{UserID: id, Email: "ari@school.test", Programme: models.ProgrammeDP}
}
