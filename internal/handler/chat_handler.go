package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ibmastery/ibhub-api/internal/dto"
	"github.com/ibmastery/ibhub-api/internal/service"
	appErrors "github.com/ibmastery/ibhub-api/pkg/errors"
	"github.com/ibmastery/ibhub-api/pkg/response"
)

// ChatHandler serves the study help chat endpoint.
type ChatHandler struct {
	service *service.StudyBuddyService
}

// NewChatHandler creates a new handler.
func NewChatHandler(svc *service.StudyBuddyService) *ChatHandler {
	return &ChatHandler{service: svc}
}

// Chat godoc
// @Summary Send study help message
// @Description Submit the transcript so far and receive the assistant's reply
// @Tags StudyHelp
// @Accept json
// @Produce json
// @Param payload body dto.ChatRequest true "Chat transcript"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Security BearerAuth
// @Router /study-help/chat [post]
func (h *ChatHandler) Chat(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	var req dto.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid chat payload"))
		return
	}

	res, err := h.service.Chat(c.Request.Context(), claims.UserID, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, res, nil)
}
