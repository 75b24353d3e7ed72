package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/ibmastery/ibhub-api/internal/dto"
	"github.com/ibmastery/ibhub-api/pkg/config"
	appErrors "github.com/ibmastery/ibhub-api/pkg/errors"
)

// ChatProvider generates the next study-buddy reply for a transcript.
// Implementations wrap an external model API; the built-in provider gives
// canned guidance so the endpoint works without credentials.
type ChatProvider interface {
	Reply(ctx context.Context, topic string, messages []dto.ChatMessage) (string, error)
}

// StudyBuddyService runs the study-help chat.
type StudyBuddyService struct {
	provider      ChatProvider
	validator     *validator.Validate
	logger        *zap.Logger
	maxTranscript int
}

// NewStudyBuddyService constructs the service.
func NewStudyBuddyService(provider ChatProvider, cfg config.StudyHelpConfig, validate *validator.Validate, logger *zap.Logger) *StudyBuddyService {
	if provider == nil {
		provider = StaticChatProvider{}
	}
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	maxTranscript := cfg.MaxTranscriptLen
	if maxTranscript <= 0 {
		maxTranscript = 50
	}
	return &StudyBuddyService{
		provider:      provider,
		validator:     validate,
		logger:        logger,
		maxTranscript: maxTranscript,
	}
}

// Chat extends the transcript with the provider's reply. The last message
// must come from the student.
func (s *StudyBuddyService) Chat(ctx context.Context, userID string, req dto.ChatRequest) (*dto.ChatResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid chat payload")
	}
	if len(req.Messages) > s.maxTranscript {
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("transcript limited to %d messages", s.maxTranscript))
	}
	if req.Messages[len(req.Messages)-1].Role != "user" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "last message must come from the user")
	}

	reply, err := s.provider.Reply(ctx, req.Topic, req.Messages)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "study help provider failed")
	}

	s.logger.Debug("study buddy reply",
		zap.String("user_id", userID),
		zap.String("topic", req.Topic),
		zap.Int("transcript_len", len(req.Messages)))

	messages := append(append([]dto.ChatMessage(nil), req.Messages...), dto.ChatMessage{Role: "model", Text: reply})
	return &dto.ChatResponse{Topic: req.Topic, Messages: messages}, nil
}

// StaticChatProvider answers with generic study guidance keyed off the
// topic. It stands in when no external model is configured.
type StaticChatProvider struct{}

// Reply implements ChatProvider.
func (StaticChatProvider) Reply(_ context.Context, topic string, messages []dto.ChatMessage) (string, error) {
	last := messages[len(messages)-1].Text
	subject := strings.TrimSpace(topic)
	if subject == "" {
		subject = "your topic"
	}
	return fmt.Sprintf(
		"Let's break that down. For %s, start by restating the question in your own words: %q. "+
			"Then list what you already know, and work through one small step at a time.",
		subject, last), nil
}
