package main

import (
	"context"
	"fmt"
	"os"

	api "mindmaker-backend/cmd/api"
	authdomain "mindmaker-backend/internal/auth/domain"
	authRepo "mindmaker-backend/internal/auth/repository"
	"mindmaker-backend/internal/auth/identity"
	authUsecase "mindmaker-backend/internal/auth/usecase"
	blogdomain "mindmaker-backend/internal/blog/domain"
	blogRepo "mindmaker-backend/internal/blog/repository"
	blogUsecase "mindmaker-backend/internal/blog/usecase"
	documentdomain "mindmaker-backend/internal/document/domain"
	documentRepo "mindmaker-backend/internal/document/repository"
	documentUsecase "mindmaker-backend/internal/document/usecase"
	"mindmaker-backend/internal/export"
	profiledomain "mindmaker-backend/internal/profile/domain"
	profileRepo "mindmaker-backend/internal/profile/repository"
	profileUsecase "mindmaker-backend/internal/profile/usecase"
	"mindmaker-backend/pkg/config"
	"mindmaker-backend/pkg/database"
	"mindmaker-backend/pkg/logger"
	"mindmaker-backend/pkg/storage"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "mindmaker",
	Short: "Business analysis documents backend",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		cfg = config.Load()
		logger.Setup(cfg.LogLevel, !cfg.IsProduction())
	},
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Migrate the schema and start the HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return serve(cmd.Context())
	},
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply the database schema and exit",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := database.NewPostgresConnection(cfg)
		if err != nil {
			return fmt.Errorf("connect to database: %w", err)
		}
		if err := migrate(db); err != nil {
			return err
		}
		log.Info().Msg("database schema is up to date")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd, migrateCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&authdomain.User{}, &authdomain.RefreshToken{},
		&documentdomain.Document{}, &documentdomain.Card{}, &documentdomain.Comment{},
		&blogdomain.Post{}, &blogdomain.Role{}, &blogdomain.UserRole{},
		&profiledomain.Profile{},
	); err != nil {
		return fmt.Errorf("migrate database: %w", err)
	}
	return nil
}

func serve(ctx context.Context) error {
	db, err := database.NewPostgresConnection(cfg)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	if err := migrate(db); err != nil {
		return err
	}

	blogBucket, err := openBucket(ctx, cfg.BlogBucket)
	if err != nil {
		return err
	}
	avatarBucket, err := openBucket(ctx, cfg.AvatarBucket)
	if err != nil {
		return err
	}

	// Initialize repositories (dependency injection)
	userRepo := authRepo.NewUserRepository(db)
	documentRepository := documentRepo.NewDocumentRepository(db)
	cardRepository := documentRepo.NewCardRepository(db)
	commentRepository := documentRepo.NewCommentRepository(db)
	postRepository := blogRepo.NewPostRepository(db)
	roleRepository := blogRepo.NewRoleRepository(db)
	profileRepository := profileRepo.NewProfileRepository(db)

	// Views opened for one user share a session that logout clears
	sessions := identity.NewSessions()
	auth := authUsecase.NewAuthUsecase(userRepo, cfg)
	auth.SetSignOutCallback(sessions.SignOut)

	// Initialize use cases
	documents := documentUsecase.NewDocumentUsecase(documentRepository, cardRepository, commentRepository, sessions,
		documentUsecase.LogNotifier(logger.Component("document")))

	settings := api.NewRuntimeSettings(cfg.ExportWidth, cfg.ExportScale)
	rasterizer := export.NewRodRasterizer(cfg.ChromeBin, cfg.ExportTimeout, logger.Component("rasterizer"))
	defer func() {
		if err := rasterizer.Close(); err != nil {
			log.Warn().Err(err).Msg("failed to close browser")
		}
	}()

	handler := api.NewHandler(api.Usecases{
		Auth:     auth,
		Document: documents,
		Blog:     blogUsecase.NewBlogUsecase(postRepository, roleRepository, blogBucket, logger.Component("blog")),
		Profile:  profileUsecase.NewProfileUsecase(profileRepository, avatarBucket, logger.Component("profile")),
		Export:   export.NewService(documents, rasterizer, settings, logger.Component("export")),
	}, settings, cfg)

	log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("server starting")
	if err := handler.Start(":" + cfg.Port); err != nil {
		return fmt.Errorf("start server: %w", err)
	}
	return nil
}

// openBucket connects to MinIO when credentials are configured and falls back
// to an in-memory bucket otherwise.
func openBucket(ctx context.Context, bucket string) (storage.Store, error) {
	if cfg.StorageAccessKey == "" || cfg.StorageSecretKey == "" {
		log.Warn().Str("bucket", bucket).Msg("storage credentials not set, using in-memory bucket")
		return storage.NewMemoryBucket(bucket, cfg.StoragePublicURL), nil
	}
	b, err := storage.NewMinioBucket(ctx, cfg.StorageEndpoint, cfg.StorageAccessKey, cfg.StorageSecretKey,
		bucket, cfg.StoragePublicURL, cfg.StorageUseSSL)
	if err != nil {
		return nil, fmt.Errorf("open bucket %s: %w", bucket, err)
	}
	return b, nil
}
