package api

import (
	"net/http"

	"mindmaker-backend/internal/auth/delivery"
	blogDelivery "mindmaker-backend/internal/blog/delivery"
	documentDelivery "mindmaker-backend/internal/document/delivery"
	exportDelivery "mindmaker-backend/internal/export/delivery"
	profileDelivery "mindmaker-backend/internal/profile/delivery"
	"mindmaker-backend/internal/sitemap"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(r *gin.Engine, uc Usecases, settings *RuntimeSettings, sitemapHandler *sitemap.Handler) {
	authHandler := delivery.NewAuthHandler(uc.Auth)
	documentHandler := documentDelivery.NewDocumentHandler(uc.Document)
	exportHandler := exportDelivery.NewExportHandler(uc.Export)
	blogHandler := blogDelivery.NewBlogHandler(uc.Blog)
	profileHandler := profileDelivery.NewProfileHandler(uc.Profile)

	requireAuth := delivery.AuthMiddleware(uc.Auth)
	optionalAuth := delivery.OptionalAuthMiddleware(uc.Auth)

	r.GET("/sitemap.xml", sitemapHandler.Sitemap)
	r.GET("/doc/:id", optionalAuth, documentHandler.DocumentPage)

	api := r.Group("/api")
	{
		// Health check (no auth required)
		api.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"status": "ok"})
		})

		auth := api.Group("/auth")
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
			auth.POST("/refresh", authHandler.RefreshToken)
			auth.POST("/logout", authHandler.Logout)
			auth.GET("/me", requireAuth, authHandler.Me)
		}

		documents := api.Group("/documents")
		{
			documents.POST("", requireAuth, documentHandler.CreateDocument)
			documents.PATCH("", requireAuth, documentHandler.UpdateDocument)
			documents.GET("", requireAuth, documentHandler.ListDocuments)
			documents.GET("/:id", optionalAuth, documentHandler.GetDocument)
			documents.DELETE("/:id", requireAuth, documentHandler.DeleteDocument)
			documents.GET("/:id/export", optionalAuth, exportHandler.ExportDocument)
			documents.POST("/:id/cards", requireAuth, documentHandler.CreateCard)
		}

		cards := api.Group("/cards")
		cards.Use(requireAuth)
		{
			cards.DELETE("/:id", documentHandler.DeleteCard)
			cards.POST("/:id/comments", documentHandler.CreateComment)
		}

		api.DELETE("/comments/:id", requireAuth, documentHandler.DeleteComment)

		// Blog routes; role checks happen in the usecase
		blog := api.Group("/blog")
		{
			blog.GET("", optionalAuth, blogHandler.ListPosts)
			blog.GET("/search", optionalAuth, blogHandler.SearchPosts)
			blog.GET("/:slug", optionalAuth, blogHandler.GetPost)
			blog.POST("", requireAuth, blogHandler.CreatePost)
			blog.POST("/images", requireAuth, blogHandler.UploadImage)
			blog.PATCH("/:id/status", requireAuth, blogHandler.UpdatePostStatus)
			blog.DELETE("/:id", requireAuth, blogHandler.DeletePost)
		}

		profile := api.Group("/profile")
		profile.Use(requireAuth)
		{
			profile.GET("", profileHandler.GetProfile)
			profile.PUT("", profileHandler.UpdateProfile)
		}

		// Settings routes - runtime export configuration, changed by staff only
		settingsGroup := api.Group("/settings")
		{
			settingsGroup.GET("/export", settings.GetExportSettings)
			settingsGroup.PUT("/export", requireAuth, RequireManager(uc.Blog), settings.UpdateExportSettings)
		}
	}
}
