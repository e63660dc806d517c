package delivery

import (
	"errors"
	"fmt"
	"net/http"

	authDelivery "mindmaker-backend/internal/auth/delivery"
	"mindmaker-backend/internal/document/domain"
	"mindmaker-backend/internal/export"

	"github.com/gin-gonic/gin"
)

type ExportHandler struct {
	service *export.Service
}

func NewExportHandler(service *export.Service) *ExportHandler {
	return &ExportHandler{service: service}
}

// ExportDocument handles GET /api/documents/:id/export and sends the PNG as a
// download. On failure only a JSON error is written.
func (h *ExportHandler) ExportDocument(c *gin.Context) {
	result, err := h.service.Export(c.Request.Context(), authDelivery.IdentityFrom(c), c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrDocumentNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, domain.ErrDocumentPrivate):
			c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
		case errors.Is(err, export.ErrCapture):
			c.JSON(http.StatusBadGateway, gin.H{"error": "failed to export document"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to export document"})
		}
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", result.Filename))
	c.Data(http.StatusOK, "image/png", result.PNG)
}
