package api

import (
	"net/http"
	"sync"

	authDelivery "mindmaker-backend/internal/auth/delivery"
	blogUsecase "mindmaker-backend/internal/blog/usecase"
	"mindmaker-backend/internal/export"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// RuntimeSettings holds export settings that can be changed while the server runs.
// It satisfies export.SettingsSource, so every export reads the latest values.
type RuntimeSettings struct {
	mu       sync.RWMutex
	settings export.Settings
}

// NewRuntimeSettings seeds the runtime settings from static config
func NewRuntimeSettings(width int, scale float64) *RuntimeSettings {
	return &RuntimeSettings{settings: export.Settings{Width: width, Scale: scale}}
}

func (s *RuntimeSettings) ExportSettings() export.Settings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.settings
}

// UpdateExportSettingsRequest represents the request body for updating export settings
type UpdateExportSettingsRequest struct {
	Width int     `json:"width" binding:"required,gt=0,lte=4000"`
	Scale float64 `json:"scale,omitempty" binding:"omitempty,gt=0,lte=4"`
}

// GetExportSettings returns current export configuration
// GET /api/settings/export
func (s *RuntimeSettings) GetExportSettings(c *gin.Context) {
	current := s.ExportSettings()
	c.JSON(http.StatusOK, gin.H{
		"width": current.Width,
		"scale": current.Scale,
	})
}

// UpdateExportSettings updates export configuration at runtime
// PUT /api/settings/export
func (s *RuntimeSettings) UpdateExportSettings(c *gin.Context) {
	var req UpdateExportSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	s.mu.Lock()
	s.settings.Width = req.Width
	if req.Scale != 0 {
		s.settings.Scale = req.Scale
	}
	current := s.settings
	s.mu.Unlock()

	c.JSON(http.StatusOK, gin.H{
		"message": "Export settings updated successfully",
		"width":   current.Width,
		"scale":   current.Scale,
	})
}

// RequireManager lets only admins and editors through.
func RequireManager(roles blogUsecase.BlogUsecase) gin.HandlerFunc {
	return func(c *gin.Context) {
		ok, err := roles.CanManage(c.Request.Context(), authDelivery.IdentityFrom(c))
		if err != nil {
			log.Error().Err(err).Str("component", "settings").Msg("role check failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
			c.Abort()
			return
		}
		if !ok {
			c.JSON(http.StatusForbidden, gin.H{"error": "admin or editor role required"})
			c.Abort()
			return
		}
		c.Next()
	}
}
