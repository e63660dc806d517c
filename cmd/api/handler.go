package api

import (
	"net/http"

	authUsecase "mindmaker-backend/internal/auth/usecase"
	blogUsecase "mindmaker-backend/internal/blog/usecase"
	"mindmaker-backend/internal/board"
	documentUsecase "mindmaker-backend/internal/document/usecase"
	"mindmaker-backend/internal/export"
	profileUsecase "mindmaker-backend/internal/profile/usecase"
	"mindmaker-backend/internal/sitemap"
	"mindmaker-backend/pkg/config"
	"mindmaker-backend/pkg/logger"

	"github.com/gin-gonic/gin"
)

// Usecases bundles everything the route table needs.
type Usecases struct {
	Auth     authUsecase.AuthUsecase
	Document documentUsecase.DocumentUsecase
	Blog     blogUsecase.BlogUsecase
	Profile  profileUsecase.ProfileUsecase
	Export   *export.Service
}

type Handler struct {
	usecases Usecases
	settings *RuntimeSettings
	sitemap  *sitemap.Handler
	config   *config.Config
}

func NewHandler(usecases Usecases, settings *RuntimeSettings, cfg *config.Config) *Handler {
	return &Handler{
		usecases: usecases,
		settings: settings,
		sitemap:  sitemap.NewHandler(cfg.PublicBaseURL, usecases.Document, usecases.Blog),
		config:   cfg,
	}
}

// Router builds the gin engine with middleware and every route registered.
func (h *Handler) Router() *gin.Engine {
	if h.config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(logger.GinLogger(), gin.Recovery(), corsMiddleware())
	r.SetHTMLTemplate(board.Templates())

	SetupRoutes(r, h.usecases, h.settings, h.sitemap)
	return r
}

func (h *Handler) Start(addr string) error {
	return h.Router().Run(addr)
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")
		if origin != "" {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		} else {
			c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		}

		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")
		c.Writer.Header().Set("Access-Control-Expose-Headers", "Content-Disposition")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
