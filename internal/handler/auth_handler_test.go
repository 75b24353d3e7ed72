package handler

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/ibmastery/ibhub-api/internal/models"
	"github.com/ibmastery/ibhub-api/internal/repository"
	"github.com/ibmastery/ibhub-api/internal/service"
)

func newAuthTestHandler(t *testing.T) *AuthHandler {
	t.Helper()
	users := repository.NewMemoryUserStore()
	hash, err := bcrypt.GenerateFromPassword([]byte("correct-horse"), bcrypt.MinCost)
	require.NoError(t, err)
	users.AddUser(models.User{
		Email:        "ari@school.test",
		PasswordHash: string(hash),
		FirstName:    "Ari",
		LastName:     "Tan",
		Programme:    models.ProgrammeDP,
		Active:       true,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	})
	svc := service.NewAuthService(users, nil, nil, service.AuthConfig{
		AccessTokenSecret:  "test_secret",
		AccessTokenExpiry:  time.Hour,
		RefreshTokenExpiry: 24 * time.Hour,
		Issuer:             "ibhub-test",
	})
	return NewAuthHandler(svc)
}

func TestAuthHandlerLogin(t *testing.T) {
	h := newAuthTestHandler(t)

	body, _ := json.Marshal(models.LoginRequest{Email: "ari@school.test", Password: "correct-horse"})
	c, w := authedContext(t, http.MethodPost, "/auth/login", body)
	h.Login(c)
	require.Equal(t, http.StatusOK, w.Code)

	var envelope struct {
		Data models.LoginResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	require.NotEmpty(t, envelope.Data.AccessToken)
	require.NotEmpty(t, envelope.Data.RefreshToken)
}

func TestAuthHandlerLoginBadPassword(t *testing.T) {
	h := newAuthTestHandler(t)

	body, _ := json.Marshal(models.LoginRequest{Email: "ari@school.test", Password: "wrong"})
	c, w := authedContext(t, http.MethodPost, "/auth/login", body)
	h.Login(c)
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthHandlerLoginInvalidBody(t *testing.T) {
	h := newAuthTestHandler(t)

	c, w := authedContext(t, http.MethodPost, "/auth/login", []byte(`{`))
	h.Login(c)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAuthHandlerMe(t *testing.T) {
	h := newAuthTestHandler(t)

	c, w := authedContext(t, http.MethodGet, "/auth/me", nil)
	h.Me(c)
	require.Equal(t, http.StatusOK, w.Code)

	var envelope struct {
		Data models.UserInfo `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	require.Equal(t, "stu-1", envelope.Data.ID)
	require.Equal(t, "ari@school.test", envelope.Data.Email)
}
