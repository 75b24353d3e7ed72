package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ibmastery/ibhub-api/internal/dto"
	"github.com/ibmastery/ibhub-api/internal/service"
	appErrors "github.com/ibmastery/ibhub-api/pkg/errors"
	"github.com/ibmastery/ibhub-api/pkg/response"
)

// OnboardingHandler serves the onboarding wizard endpoints.
type OnboardingHandler struct {
	service *service.OnboardingService
}

// NewOnboardingHandler creates a new handler.
func NewOnboardingHandler(svc *service.OnboardingService) *OnboardingHandler {
	return &OnboardingHandler{service: svc}
}

// Complete godoc
// @Summary Complete onboarding
// @Description Store the student's programme and subject selections
// @Tags Onboarding
// @Accept json
// @Produce json
// @Param payload body dto.CompleteOnboardingRequest true "Onboarding payload"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Security BearerAuth
// @Router /onboarding [post]
func (h *OnboardingHandler) Complete(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	var req dto.CompleteOnboardingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid onboarding payload"))
		return
	}

	res, err := h.service.Complete(c.Request.Context(), claims.UserID, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, res, nil)
}

// Profile godoc
// @Summary Get onboarding profile
// @Description Returns the stored programme and subject selections
// @Tags Onboarding
// @Produce json
// @Success 200 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Security BearerAuth
// @Router /onboarding [get]
func (h *OnboardingHandler) Profile(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	res, err := h.service.Profile(c.Request.Context(), claims.UserID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, res, nil)
}
