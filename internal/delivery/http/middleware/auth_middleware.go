package middleware

import (
	"context"

	"meal-planner-backend/internal/delivery/http/response"
	"meal-planner-backend/internal/domain"
	"meal-planner-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// TokenVerifier decides whether a bearer credential is authentic and
// returns the subject id it asserts.
type TokenVerifier interface {
	Verify(ctx context.Context, rawHeader string) (string, error)
}

// Auth verifies the bearer token, resolves the subject to the internal
// user (provisioning on first sight) and places the internal user id in
// the request context. Every failure is the same unauthorized response;
// callers cannot distinguish a malformed token from an unknown one.
func Auth(verifier TokenVerifier, authUC domain.AuthUsecase) gin.HandlerFunc {
	return func(c *gin.Context) {
		reject := func() {
			e := apperror.Unauthorized()
			response.Error(c, e.Code, e.Kind, e.Message)
			c.Abort()
		}

		header := c.GetHeader("Authorization")
		if header == "" {
			reject()
			return
		}

		sub, err := verifier.Verify(c.Request.Context(), header)
		if err != nil {
			reject()
			return
		}

		subID, err := uuid.Parse(sub)
		if err != nil {
			reject()
			return
		}

		user, err := authUC.Resolve(c.Request.Context(), subID)
		if err != nil {
			reject()
			return
		}

		ctx := context.WithValue(c.Request.Context(), domain.KeyUserID, user.ID)
		ctx = context.WithValue(ctx, domain.KeySubjectID, subID)
		c.Request = c.Request.WithContext(ctx)
		c.Set(string(domain.KeyUserID), user.ID)

		c.Next()
	}
}
