package handler

import (
	"context"
	"fmt"
	"net/http"

	"participation-tracker/internal/identity"
	model "participation-tracker/internal/models"
	"participation-tracker/services/bidding/helpers"
	"participation-tracker/utils"

	"github.com/gin-gonic/gin"
)

//go:generate mockgen -source=participation_handler.go -destination=mock_service.go -package=handler

type ParticipationServiceInterface interface {
	GetParticipation(ctx context.Context, userID string) (model.Participation, error)
}

type ParticipationHandler struct {
	service ParticipationServiceInterface
}

func NewParticipationHandler(service ParticipationServiceInterface) *ParticipationHandler {
	return &ParticipationHandler{service: service}
}

// GetParticipationHandler handles GET /bids/participation and GET /users/me/participation.
// The user ID is put on the context by the auth middleware.
func (h *ParticipationHandler) GetParticipationHandler(c *gin.Context) {
	userID := c.GetString(identity.UserIDKey)
	if userID == "" {
		utils.JSONMessage(c, http.StatusUnauthorized, helpers.UnauthorizedMessage)
		utils.Warn("GetParticipationHandler: request without user", map[string]any{"path": c.Request.URL.Path})
		return
	}

	participation, err := h.service.GetParticipation(c.Request.Context(), userID)
	if err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		if status == http.StatusUnauthorized {
			utils.JSONMessage(c, status, message)
		} else {
			utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
		}
		utils.Error("GetParticipationHandler: failed to build participation", map[string]any{
			"handler": "GetParticipationHandler",
			"user_id": userID,
			"status":  status,
			"error":   err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, helpers.NewParticipationResponse(participation))
	helpers.LogSuccess("GetParticipationHandler", "participation retrieved successfully", map[string]any{
		"user_id":      userID,
		"participated": len(participation.Participated),
		"active":       len(participation.Active),
		"won":          len(participation.Won),
		"lost":         len(participation.Lost),
	})
}
