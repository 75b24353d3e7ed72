package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ibmastery/ibhub-api/internal/dto"
	"github.com/ibmastery/ibhub-api/internal/models"
	"github.com/ibmastery/ibhub-api/internal/repository"
	appErrors "github.com/ibmastery/ibhub-api/pkg/errors"
)

func dpSelection() []dto.SubjectChoice {
	return []dto.SubjectChoice{
		{SubjectID: "eng-a", Name: "English A", Group: 1, Level: "HL"},
		{SubjectID: "spa-b", Name: "Spanish B", Group: 2, Level: "SL"},
		{SubjectID: "hist", Name: "History", Group: 3, Level: "HL"},
		{SubjectID: "chem", Name: "Chemistry", Group: 4, Level: "HL"},
		{SubjectID: "math-aa", Name: "Math AA", Group: 5, Level: "SL"},
		{SubjectID: "vis-arts", Name: "Visual Arts", Group: 6, Level: "SL"},
	}
}

func newOnboardingFixture(t *testing.T) (*OnboardingService, *repository.MemoryUserStore, string) {
	t.Helper()
	store := repository.NewMemoryUserStore()
	userID := store.AddUser(models.User{Email: "student@ibhub.app", Active: true})
	return NewOnboardingService(store, nil, nil), store, userID
}

func TestOnboardingServiceCompleteDP(t *testing.T) {
	svc, store, userID := newOnboardingFixture(t)

	resp, err := svc.Complete(context.Background(), userID, dto.CompleteOnboardingRequest{
		Programme: "DP",
		Subjects:  dpSelection(),
	})
	require.NoError(t, err)
	require.True(t, resp.OnboardingComplete)
	require.Len(t, resp.Subjects, 6)

	saved, err := store.ListSubjects(context.Background(), userID)
	require.NoError(t, err)
	require.Len(t, saved, 6)

	profile, err := svc.Profile(context.Background(), userID)
	require.NoError(t, err)
	require.Equal(t, "DP", profile.Programme)
	require.True(t, profile.OnboardingComplete)
}

func TestOnboardingServiceDPRules(t *testing.T) {
	svc, _, userID := newOnboardingFixture(t)

	cases := []struct {
		name    string
		mutate  func([]dto.SubjectChoice) []dto.SubjectChoice
		message string
	}{
		{
			name:    "too few subjects",
			mutate:  func(s []dto.SubjectChoice) []dto.SubjectChoice { return s[:5] },
			message: "exactly 6 subjects",
		},
		{
			name: "wrong HL count",
			mutate: func(s []dto.SubjectChoice) []dto.SubjectChoice {
				s[0].Level = "SL"
				return s
			},
			message: "exactly 3 HL",
		},
		{
			name: "duplicate subject",
			mutate: func(s []dto.SubjectChoice) []dto.SubjectChoice {
				s[1].SubjectID = s[0].SubjectID
				return s
			},
			message: "selected twice",
		},
		{
			name: "two subjects in one group",
			mutate: func(s []dto.SubjectChoice) []dto.SubjectChoice {
				s[1].Group = s[0].Group
				return s
			},
			message: "more than one subject in group",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Complete(context.Background(), userID, dto.CompleteOnboardingRequest{
				Programme: "DP",
				Subjects:  tc.mutate(dpSelection()),
			})
			require.Error(t, err)
			require.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
			require.Contains(t, appErrors.FromError(err).Message, tc.message)
		})
	}
}

func TestOnboardingServiceCPRules(t *testing.T) {
	svc, _, userID := newOnboardingFixture(t)

	_, err := svc.Complete(context.Background(), userID, dto.CompleteOnboardingRequest{
		Programme: "CP",
		Subjects: []dto.SubjectChoice{
			{SubjectID: "bus", Name: "Business", Group: 3, Level: "SL"},
			{SubjectID: "math-ai", Name: "Math AI", Group: 5, Level: "SL"},
			{SubjectID: "chem", Name: "Chemistry", Group: 4, Level: "HL"},
		},
	})
	require.Error(t, err)
	require.Contains(t, appErrors.FromError(err).Message, "taken at SL")

	resp, err := svc.Complete(context.Background(), userID, dto.CompleteOnboardingRequest{
		Programme: "CP",
		Subjects: []dto.SubjectChoice{
			{SubjectID: "bus", Name: "Business", Group: 3, Level: "SL"},
			{SubjectID: "math-ai", Name: "Math AI", Group: 5, Level: "SL"},
			{SubjectID: "chem", Name: "Chemistry", Group: 4, Level: "SL"},
		},
	})
	require.NoError(t, err)
	require.True(t, resp.OnboardingComplete)
}

func TestOnboardingServiceMYPRejectsSelections(t *testing.T) {
	svc, _, userID := newOnboardingFixture(t)

	_, err := svc.Complete(context.Background(), userID, dto.CompleteOnboardingRequest{
		Programme: "MYP",
		Subjects:  dpSelection()[:1],
	})
	require.Error(t, err)

	resp, err := svc.Complete(context.Background(), userID, dto.CompleteOnboardingRequest{Programme: "MYP"})
	require.NoError(t, err)
	require.True(t, resp.OnboardingComplete)
	require.Empty(t, resp.Subjects)
}

func TestOnboardingServiceRejectsUnknownProgramme(t *testing.T) {
	svc, _, userID := newOnboardingFixture(t)
	_, err := svc.Complete(context.Background(), userID, dto.CompleteOnboardingRequest{Programme: "PYP"})
	require.Error(t, err)
	require.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestOnboardingServiceUnknownUser(t *testing.T) {
	svc := NewOnboardingService(repository.NewMemoryUserStore(), nil, nil)
	_, err := svc.Complete(context.Background(), "ghost", dto.CompleteOnboardingRequest{
		Programme: "DP",
		Subjects:  dpSelection(),
	})
	require.Error(t, err)
	require.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}
