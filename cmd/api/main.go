package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"meal-planner-backend/config"
	v1 "meal-planner-backend/internal/delivery/http/v1"
	"meal-planner-backend/internal/domain"
	"meal-planner-backend/internal/repository/postgres"
	"meal-planner-backend/internal/usecase"
	"meal-planner-backend/pkg/auth"
	"meal-planner-backend/pkg/cognito"
	"meal-planner-backend/pkg/database"
	"meal-planner-backend/pkg/logger"
	"meal-planner-backend/pkg/redis"
	"meal-planner-backend/pkg/schema"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		os.Exit(1)
	}

	logger.Init()
	logger.Log.Info("starting meal planner backend", "port", cfg.Port)

	ctx := context.Background()

	dbPool, err := database.NewPostgresConnection(ctx, cfg.DBUrl)
	if err != nil {
		logger.Log.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer dbPool.Close()
	logger.Log.Info("database connection established")

	if err := redis.Initialize(redis.Config{URL: cfg.RedisURL, Password: cfg.RedisPassword}); err != nil {
		logger.Log.Warn("redis unavailable, rate limiting falls back to memory", "error", err)
	}
	defer redis.Close()

	// Repositories
	userRepo := postgres.NewUserRepository(dbPool)
	categoryRepo := postgres.NewCategoryRepository(dbPool)
	itemRepo := postgres.NewItemRepository(dbPool)
	listRepo := postgres.NewListRepository(dbPool)
	listAssocRepo := postgres.NewListAssociationRepository(dbPool)

	// Shared schema registry; handlers register their request prototypes
	// during router construction.
	schemas := schema.NewRegistry()

	// Usecases
	authUC := usecase.NewAuthUsecase(userRepo)
	categoryUC := usecase.NewEntityUsecase[domain.Category, *domain.Category](
		categoryRepo, schemas, "category", "category", "category_update")
	itemUC := usecase.NewEntityUsecase[domain.Item, *domain.Item](
		itemRepo, schemas, "item", "item", "item_update")
	listUC := usecase.NewEntityUsecase[domain.List, *domain.List](
		listRepo, schemas, "list", "list", "list_update")
	listEntryUC := usecase.NewListUsecase(listAssocRepo)

	// Key cache + verifier. A failed initial refresh is not fatal: the
	// cache re-fetches on the first lookup miss.
	keys := auth.NewProvider(cfg.JWKSURL())
	if err := keys.Refresh(ctx); err != nil {
		logger.Log.Warn("initial key set refresh failed", "error", err)
	}
	verifier := auth.NewVerifier(keys, cfg.ClientID, cfg.UserPoolID)

	idp, err := cognito.New(ctx, cfg.UserPoolRegion, cfg.ClientID, cfg.ClientSecret)
	if err != nil {
		logger.Log.Error("failed to configure identity provider client", "error", err)
		os.Exit(1)
	}

	router := v1.NewRouter(v1.RouterDeps{
		AuthUC:     authUC,
		CategoryUC: categoryUC,
		ItemUC:     itemUC,
		ListUC:     listUC,
		ListEntry:  listEntryUC,
		Verifier:   verifier,
		Cognito:    idp,
		Schemas:    schemas,
		Config:     cfg,
	})

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Error("listen failed", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Log.Error("server forced to shutdown", "error", err)
	}

	logger.Log.Info("server exiting")
}
