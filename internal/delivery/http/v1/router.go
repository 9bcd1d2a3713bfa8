package v1

import (
	"net/http"
	"time"

	"meal-planner-backend/config"
	"meal-planner-backend/internal/delivery/http/middleware"
	"meal-planner-backend/internal/delivery/http/response"
	"meal-planner-backend/internal/domain"
	"meal-planner-backend/internal/usecase"
	"meal-planner-backend/pkg/auth"
	"meal-planner-backend/pkg/cognito"
	"meal-planner-backend/pkg/schema"

	"github.com/gin-gonic/gin"
)

type RouterDeps struct {
	AuthUC     domain.AuthUsecase
	CategoryUC *usecase.EntityUsecase[domain.Category, *domain.Category]
	ItemUC     *usecase.EntityUsecase[domain.Item, *domain.Item]
	ListUC     *usecase.EntityUsecase[domain.List, *domain.List]
	ListEntry  domain.ListUsecase
	Verifier   *auth.Verifier
	Cognito    *cognito.Client
	Schemas    *schema.Registry
	Config     *config.Config
}

func NewRouter(deps RouterDeps) *gin.Engine {
	r := gin.New()

	r.Use(middleware.CORS(deps.Config.AllowedOrigins))
	r.Use(middleware.SecurityHeaders())
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimit(middleware.GlobalRateLimitConfig(
		deps.Config.RateLimitGlobalThreshold,
		time.Duration(deps.Config.RateLimitWindowSeconds)*time.Second,
	)))

	v1 := r.Group("/v1")

	v1.GET("/health", func(c *gin.Context) {
		response.Success(c, http.StatusOK, gin.H{"status": "ok"})
	})

	// Public credential endpoints, strictly rate limited.
	login := v1.Group("")
	login.Use(middleware.RateLimit(middleware.LoginRateLimitConfig(
		deps.Config.RateLimitLoginThreshold,
		time.Duration(deps.Config.RateLimitWindowSeconds)*time.Second,
	)))
	NewAuthHandler(login, deps.Cognito, deps.Verifier, deps.AuthUC, deps.Schemas)

	protected := v1.Group("")
	protected.Use(middleware.Auth(deps.Verifier, deps.AuthUC))
	{
		NewCategoryHandler(protected, deps.CategoryUC, deps.Schemas)
		NewItemHandler(protected, deps.ItemUC, deps.Schemas)
		NewListHandler(protected, deps.ListUC, deps.ListEntry, deps.Schemas)
	}

	return r
}
