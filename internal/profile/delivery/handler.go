package delivery

import (
	"errors"
	"net/http"

	authDelivery "mindmaker-backend/internal/auth/delivery"
	"mindmaker-backend/internal/profile/domain"
	"mindmaker-backend/internal/profile/usecase"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

const maxAvatarSize = 5 << 20

type ProfileHandler struct {
	profileUsecase usecase.ProfileUsecase
}

func NewProfileHandler(profileUsecase usecase.ProfileUsecase) *ProfileHandler {
	return &ProfileHandler{profileUsecase: profileUsecase}
}

// GetProfile handles GET /api/profile
func (h *ProfileHandler) GetProfile(c *gin.Context) {
	profile, err := h.profileUsecase.Get(c.Request.Context(), authDelivery.IdentityFrom(c))
	if err != nil {
		respondError(c, "load profile", err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

// UpdateProfile handles PUT /api/profile (multipart: username, optional avatar)
func (h *ProfileHandler) UpdateProfile(c *gin.Context) {
	var avatar usecase.Avatar
	if fileHeader, err := c.FormFile("avatar"); err == nil {
		if fileHeader.Size > maxAvatarSize {
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "avatar exceeds 5MB"})
			return
		}
		file, err := fileHeader.Open()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		defer file.Close()
		avatar = usecase.Avatar{Filename: fileHeader.Filename, Size: fileHeader.Size, Body: file}
	}

	profile, err := h.profileUsecase.Update(c.Request.Context(), authDelivery.IdentityFrom(c), c.PostForm("username"), avatar)
	if err != nil {
		respondError(c, "update profile", err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

// respondError maps usecase errors onto HTTP statuses; anything unexpected is
// reported as "failed to <action>".
func respondError(c *gin.Context, action string, err error) {
	switch {
	case errors.Is(err, domain.ErrUnauthenticated):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrEmptyUsername):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		log.Error().Err(err).Str("component", "profile").Str("action", action).Msg("request failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to " + action})
	}
}
