package repository

import (
	"context"
	"database/sql"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/ibmastery/ibhub-api/internal/models"
)

// MemoryUserStore is the in-memory counterpart to UserRepository, used when
// no database is configured. Missing rows surface as sql.ErrNoRows so the
// services treat both stores identically.
type MemoryUserStore struct {
	mu       sync.RWMutex
	users    map[string]*models.User
	byEmail  map[string]string
	subjects map[string][]models.SubjectSelection
	tokens   map[string]*models.RefreshToken
}

// NewMemoryUserStore returns an empty store.
func NewMemoryUserStore() *MemoryUserStore {
	return &MemoryUserStore{
		users:    make(map[string]*models.User),
		byEmail:  make(map[string]string),
		subjects: make(map[string][]models.SubjectSelection),
		tokens:   make(map[string]*models.RefreshToken),
	}
}

// AddUser registers an account, assigning an id when absent.
func (s *MemoryUserStore) AddUser(user models.User) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now().UTC()
	}
	s.users[user.ID] = &user
	s.byEmail[user.Email] = user.ID
	return user.ID
}

func (s *MemoryUserStore) FindByEmail(_ context.Context, email string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.byEmail[email]
	if !ok {
		return nil, sql.ErrNoRows
	}
	copy := *s.users[id]
	return &copy, nil
}

func (s *MemoryUserStore) FindByID(_ context.Context, id string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	user, ok := s.users[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	copy := *user
	return &copy, nil
}

func (s *MemoryUserStore) UpdateLastLogin(_ context.Context, id string, ts time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if user, ok := s.users[id]; ok {
		stamp := ts
		user.LastLogin = &stamp
	}
	return nil
}

func (s *MemoryUserStore) UpdatePassword(_ context.Context, id, passwordHash string, updatedAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	user, ok := s.users[id]
	if !ok {
		return sql.ErrNoRows
	}
	user.PasswordHash = passwordHash
	user.UpdatedAt = updatedAt
	return nil
}

func (s *MemoryUserStore) SaveOnboarding(_ context.Context, userID string, programme models.Programme, subjects []models.SubjectSelection) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	user, ok := s.users[userID]
	if !ok {
		return sql.ErrNoRows
	}
	user.Programme = programme
	user.OnboardingComplete = true
	user.UpdatedAt = time.Now().UTC()
	s.subjects[userID] = append([]models.SubjectSelection(nil), subjects...)
	return nil
}

func (s *MemoryUserStore) ListSubjects(_ context.Context, userID string) ([]models.SubjectSelection, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.SubjectSelection(nil), s.subjects[userID]...), nil
}

func (s *MemoryUserStore) CreateRefreshToken(_ context.Context, token *models.RefreshToken) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	copy := *token
	s.tokens[token.Token] = &copy
	return nil
}

func (s *MemoryUserStore) FindRefreshToken(_ context.Context, token string) (*models.RefreshToken, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	stored, ok := s.tokens[token]
	if !ok {
		return nil, sql.ErrNoRows
	}
	copy := *stored
	return &copy, nil
}

func (s *MemoryUserStore) RevokeRefreshToken(_ context.Context, id string, revokedAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, stored := range s.tokens {
		if stored.ID == id {
			stamp := revokedAt
			stored.Revoked = true
			stored.RevokedAt = &stamp
		}
	}
	return nil
}

func (s *MemoryUserStore) RevokeUserRefreshTokens(_ context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now().UTC()
	for _, stored := range s.tokens {
		if stored.UserID == userID && !stored.Revoked {
			stamp := now
			stored.Revoked = true
			stored.RevokedAt = &stamp
		}
	}
	return nil
}
