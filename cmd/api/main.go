package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"

	"github.com/recipevault/engine/internal/api"
	"github.com/recipevault/engine/internal/api/handlers"
	"github.com/recipevault/engine/internal/queue"
	"github.com/recipevault/engine/internal/repository"
	"github.com/recipevault/engine/internal/services"
	"github.com/recipevault/engine/internal/storage"
	"github.com/recipevault/engine/pkg/config"
	"github.com/recipevault/engine/pkg/database"
	"github.com/recipevault/engine/pkg/logger"
)

func main() {
	cfg := config.MustLoad()

	log, err := logger.Init(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	log.Info("starting recipe engine",
		zap.String("env", cfg.AppEnv),
		zap.String("addr", cfg.HTTPAddr),
	)

	ctx := context.Background()
	db, err := database.OpenPostgres(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatal("failed to connect to database", zap.Error(err))
	}
	log.Info("database connected")

	images, err := storage.NewImageStore(cfg.UploadDir)
	if err != nil {
		log.Fatal("failed to prepare image store", zap.Error(err))
	}

	// JWT secret from environment
	jwtSecret := []byte(os.Getenv("JWT_SECRET"))
	if len(jwtSecret) == 0 {
		log.Warn("JWT_SECRET not set, using default (INSECURE for production)")
		jwtSecret = []byte("change-me-in-production-please")
	}

	// Repositories
	userRepo := repository.NewUserRepository(db)
	tagRepo := repository.NewTagRepository(db)
	ingredientRepo := repository.NewIngredientRepository(db)
	recipeRepo := repository.NewRecipeRepository(db)

	// Background cleanup of replaced image files
	asynqClient := asynq.NewClient(asynq.RedisClientOpt{Addr: cfg.RedisAddr, Password: cfg.RedisPassword})
	defer asynqClient.Close()
	disposer := queue.NewAsynqDisposer(asynqClient)

	// Services and handlers
	authSvc := services.NewAuthService(userRepo, jwtSecret)
	recipeSvc := services.NewRecipeService(db, recipeRepo, tagRepo, ingredientRepo, images, disposer)

	router := api.NewRouter(api.Dependencies{
		HMACSecret:         jwtSecret,
		UserHandler:        handlers.NewUserHandler(authSvc),
		TagsHandler:        handlers.NewTagsHandler(tagRepo),
		IngredientsHandler: handlers.NewIngredientsHandler(ingredientRepo),
		RecipesHandler:     handlers.NewRecipesHandler(recipeSvc),
	})

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       90 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("HTTP server starting", zap.String("addr", cfg.HTTPAddr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		log.Info("shutdown signal received", zap.String("signal", sig.String()))
	case err := <-errCh:
		log.Error("server error", zap.Error(err))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("server shutdown error", zap.Error(err))
	} else {
		log.Info("server exited gracefully")
	}
}
