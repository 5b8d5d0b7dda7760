package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"codetrek/configs"
	"codetrek/internal/dataset"
	"codetrek/internal/dbs"
	"codetrek/internal/handlers"
	"codetrek/internal/logger"
	"codetrek/internal/middlewares"
	"codetrek/internal/repositories"
	"codetrek/internal/services"
	"codetrek/internal/tutor"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

// Dependencies are the long-lived collaborators shared by all requests.
type Dependencies struct {
	Config   *configs.Config
	DB       *sqlx.DB
	Cache    services.Cache
	Dataset  services.QuestionFinder
	Concepts services.ConceptQuerier
	Tutor    services.Generator
}

// NewRouter wires repositories, services and handlers into a gin engine.
func NewRouter(deps Dependencies) *gin.Engine {
	cfg := deps.Config

	problemRepo := repositories.NewProblemRepository(deps.DB)
	userRepo := repositories.NewUserRepository(deps.DB)

	tokens := services.NewTokenService(cfg.JWTSecret, cfg.TokenTTL, deps.Cache)
	auth := services.NewAuthService(userRepo, tokens)
	tutoring := services.NewTutorService(
		deps.Dataset,
		deps.Concepts,
		deps.Tutor,
		problemRepo,
		repositories.NewChatRepository(deps.DB),
		repositories.NewSubmissionRepository(deps.DB),
		cfg.ConceptTopK,
	)
	profiles := services.NewProfileService(repositories.NewProfileRepository(deps.DB))
	uploads := services.NewUploadService(repositories.NewUploadRepository(deps.DB), cfg.MediaRoot, cfg.MediaURL)

	router := gin.New()
	router.Use(middlewares.RequestLogger(), middlewares.ErrorHandlerMiddleware())
	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	router.MaxMultipartMemory = 8 << 20

	media := router.Group(strings.TrimSuffix(cfg.MediaURL, "/"), middlewares.ServeAsAttachment())
	media.Static("/", cfg.MediaRoot)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})

	api := router.Group("/api", middlewares.OptionalAuthMiddleware(auth))
	requireUser := middlewares.RequireUser(auth, cfg.DevFallbackUser)

	api.GET("/ping/", handlers.Ping)
	handlers.NewAuthHandler(auth).RegisterRoutes(api)
	handlers.NewProblemHandler(problemRepo, tutoring).RegisterRoutes(api)
	handlers.NewChatHandler(tutoring).RegisterRoutes(api, requireUser)
	handlers.NewSubmissionHandler(tutoring).RegisterRoutes(api, requireUser)
	handlers.NewUploadHandler(uploads, cfg.MaxUploadBytes).RegisterRoutes(api, requireUser)
	handlers.NewProfileHandler(profiles).RegisterRoutes(api, requireUser)

	return router
}

// StartGinServer opens every backing service and serves the API until ctx
// is cancelled, then shuts down gracefully.
func StartGinServer(ctx context.Context, cfg *configs.Config) error {
	db, err := OpenDatabase(ctx, cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	cache, closeCache, err := OpenCache(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeCache()

	concepts, err := NewConceptStore(db, cfg)
	if err != nil {
		return err
	}

	provider, err := tutor.NewProvider(ctx, cfg)
	if err != nil {
		return err
	}
	logger.Log.Info("Tutor backend ready",
		zap.String("provider", provider.Name()),
		zap.String("model", provider.ModelID()),
	)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := NewRouter(Dependencies{
		Config:   cfg,
		DB:       db,
		Cache:    cache,
		Dataset:  dataset.Load(cfg.DatasetPath),
		Concepts: concepts,
		Tutor:    tutor.NewClient(provider, cfg.TutorTimeout),
	})

	srv := &http.Server{
		Addr:              ":" + cfg.ServerPort,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       time.Minute,
		// Tutor calls may take the whole generation timeout.
		WriteTimeout: cfg.TutorTimeout + 30*time.Second,
		IdleTimeout:  2 * time.Minute,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Log.Info("Starting server", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Log.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	return nil
}

func OpenDatabase(ctx context.Context, cfg *configs.Config) (*sqlx.DB, error) {
	return dbs.Open(ctx, cfg.DBDriver, dbs.DSN(cfg))
}
