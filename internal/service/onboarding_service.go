package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/ibmastery/ibhub-api/internal/dto"
	"github.com/ibmastery/ibhub-api/internal/models"
	appErrors "github.com/ibmastery/ibhub-api/pkg/errors"
)

const (
	dpSubjectCount = 6
	dpHLCount      = 3
	cpSubjectCount = 3
)

type onboardingRepository interface {
	FindByID(ctx context.Context, id string) (*models.User, error)
	SaveOnboarding(ctx context.Context, userID string, programme models.Programme, subjects []models.SubjectSelection) error
	ListSubjects(ctx context.Context, userID string) ([]models.SubjectSelection, error)
}

// OnboardingService completes the student profile wizard and enforces the
// programme-specific subject rules.
type OnboardingService struct {
	repo      onboardingRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewOnboardingService constructs the service.
func NewOnboardingService(repo onboardingRepository, validate *validator.Validate, logger *zap.Logger) *OnboardingService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	svc := &OnboardingService{repo: repo, validator: validate, logger: logger}
	svc.validator.RegisterValidation("programme", func(fl validator.FieldLevel) bool {
		return models.Programme(fl.Field().String()).Valid()
	})
	return svc
}

// Complete stores the programme and subject selections, replacing any
// previous choices. Diploma students must pick exactly six subjects, three
// at HL and three at SL, one per subject group. Career-related students
// pick three SL courses. MYP students carry a fixed curriculum, so their
// selection list must be empty.
func (s *OnboardingService) Complete(ctx context.Context, userID string, req dto.CompleteOnboardingRequest) (*dto.OnboardingResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid onboarding payload")
	}

	programme := models.Programme(req.Programme)
	if err := validateSubjectRules(programme, req.Subjects); err != nil {
		return nil, err
	}

	subjects := make([]models.SubjectSelection, 0, len(req.Subjects))
	for _, choice := range req.Subjects {
		subjects = append(subjects, models.SubjectSelection{
			SubjectID: choice.SubjectID,
			Name:      choice.Name,
			Group:     models.SubjectGroup(choice.Group),
			Level:     models.SubjectLevel(choice.Level),
		})
	}

	if err := s.repo.SaveOnboarding(ctx, userID, programme, subjects); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "user not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to save onboarding")
	}

	s.logger.Info("onboarding completed",
		zap.String("user_id", userID),
		zap.String("programme", req.Programme),
		zap.Int("subjects", len(subjects)))

	return &dto.OnboardingResponse{
		Programme:          req.Programme,
		Subjects:           req.Subjects,
		OnboardingComplete: true,
	}, nil
}

// Profile returns the stored programme and subject selections.
func (s *OnboardingService) Profile(ctx context.Context, userID string) (*dto.OnboardingResponse, error) {
	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "user not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load user")
	}

	subjects, err := s.repo.ListSubjects(ctx, userID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load subjects")
	}

	choices := make([]dto.SubjectChoice, 0, len(subjects))
	for _, subject := range subjects {
		choices = append(choices, dto.SubjectChoice{
			SubjectID: subject.SubjectID,
			Name:      subject.Name,
			Group:     int(subject.Group),
			Level:     string(subject.Level),
		})
	}

	return &dto.OnboardingResponse{
		Programme:          string(user.Programme),
		Subjects:           choices,
		OnboardingComplete: user.OnboardingComplete,
	}, nil
}

func validateSubjectRules(programme models.Programme, subjects []dto.SubjectChoice) error {
	seen := make(map[string]bool, len(subjects))
	for _, choice := range subjects {
		if seen[choice.SubjectID] {
			return appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("subject %s selected twice", choice.SubjectID))
		}
		seen[choice.SubjectID] = true
	}

	switch programme {
	case models.ProgrammeDP:
		if len(subjects) != dpSubjectCount {
			return appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("DP requires exactly %d subjects", dpSubjectCount))
		}
		hl := 0
		groups := make(map[int]bool, dpSubjectCount)
		for _, choice := range subjects {
			if groups[choice.Group] {
				return appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("more than one subject in group %d", choice.Group))
			}
			groups[choice.Group] = true
			if choice.Level == string(models.LevelHL) {
				hl++
			}
		}
		if hl != dpHLCount {
			return appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("DP requires exactly %d HL subjects", dpHLCount))
		}
	case models.ProgrammeCP:
		if len(subjects) != cpSubjectCount {
			return appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("CP requires exactly %d courses", cpSubjectCount))
		}
		for _, choice := range subjects {
			if choice.Level != string(models.LevelSL) {
				return appErrors.Clone(appErrors.ErrValidation, "CP courses are taken at SL")
			}
		}
	case models.ProgrammeMYP:
		if len(subjects) != 0 {
			return appErrors.Clone(appErrors.ErrValidation, "MYP uses the fixed curriculum; no subject selection")
		}
	default:
		return appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unknown programme %q", programme))
	}
	return nil
}
