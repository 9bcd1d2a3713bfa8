package v1

import (
	"context"
	"errors"
	"net/http"

	"meal-planner-backend/internal/delivery/http/response"
	"meal-planner-backend/internal/domain"
	"meal-planner-backend/pkg/apperror"
	"meal-planner-backend/pkg/cognito"
	"meal-planner-backend/pkg/schema"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	schemaLogin   = "login"
	schemaRefresh = "refresh"
)

// TokenVerifier is the subset of the verifier the auth handler needs to
// extract the subject from a freshly issued access token.
type TokenVerifier interface {
	Verify(ctx context.Context, rawHeader string) (string, error)
}

// IdentityProvider is the subset of the Cognito client used here.
type IdentityProvider interface {
	Login(ctx context.Context, email, password string) (*cognito.Tokens, error)
	Refresh(ctx context.Context, username, refreshToken string) (*cognito.Tokens, error)
}

type AuthHandler struct {
	provider IdentityProvider
	verifier TokenVerifier
	authUC   domain.AuthUsecase
	schemas  *schema.Registry
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email,min=6"`
	Password string `json:"password" validate:"required,min=8"`
}

type RefreshRequest struct {
	Username     string `json:"username" validate:"required,min=6"`
	RefreshToken string `json:"refresh_token" validate:"required"`
}

func NewAuthHandler(public *gin.RouterGroup, provider IdentityProvider, verifier TokenVerifier, authUC domain.AuthUsecase, schemas *schema.Registry) {
	schemas.Register(schemaLogin, LoginRequest{})
	schemas.Register(schemaRefresh, RefreshRequest{})

	handler := &AuthHandler{
		provider: provider,
		verifier: verifier,
		authUC:   authUC,
		schemas:  schemas,
	}

	auth := public.Group("/auth")
	{
		auth.POST("/login", handler.Login)
		auth.POST("/refresh", handler.Refresh)
	}
}

// Login authenticates against the identity provider and lazily provisions
// the local user row for the token's subject.
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := bindJSON(c, &req); err != nil {
		c.Error(err)
		return
	}
	if err := h.schemas.Validate(schemaLogin, req); err != nil {
		c.Error(err)
		return
	}

	tokens, err := h.provider.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		c.Error(h.mapProviderError(err))
		return
	}

	sub, err := h.verifier.Verify(c.Request.Context(), tokens.AccessToken)
	if err != nil {
		c.Error(apperror.Internal(errors.New("issued access token failed verification")))
		return
	}
	subID, err := uuid.Parse(sub)
	if err != nil {
		c.Error(apperror.Internal(errors.New("issued access token carries a malformed subject")))
		return
	}

	if _, err := h.authUC.Resolve(c.Request.Context(), subID); err != nil {
		c.Error(apperror.Internal(err))
		return
	}

	response.Success(c, http.StatusOK, tokens)
}

func (h *AuthHandler) Refresh(c *gin.Context) {
	var req RefreshRequest
	if err := bindJSON(c, &req); err != nil {
		c.Error(err)
		return
	}
	if err := h.schemas.Validate(schemaRefresh, req); err != nil {
		c.Error(err)
		return
	}

	tokens, err := h.provider.Refresh(c.Request.Context(), req.Username, req.RefreshToken)
	if err != nil {
		c.Error(h.mapProviderError(err))
		return
	}
	response.Success(c, http.StatusOK, tokens)
}

func (h *AuthHandler) mapProviderError(err error) error {
	if errors.Is(err, cognito.ErrNotAuthorized) {
		return apperror.Unauthorized()
	}
	return apperror.Internal(err)
}
