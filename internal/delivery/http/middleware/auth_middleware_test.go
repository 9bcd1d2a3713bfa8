package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"meal-planner-backend/internal/domain"
	"meal-planner-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubVerifier struct {
	sub string
	err error
}

func (s stubVerifier) Verify(ctx context.Context, rawHeader string) (string, error) {
	return s.sub, s.err
}

type stubResolver struct {
	user *domain.User
	err  error
}

func (s stubResolver) Resolve(ctx context.Context, subID uuid.UUID) (*domain.User, error) {
	return s.user, s.err
}

func authTestRouter(verifier TokenVerifier, resolver domain.AuthUsecase, handler gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(Auth(verifier, resolver))
	r.GET("/probe", handler)
	return r
}

func doRequest(r *gin.Engine, authorization string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthMiddlewarePlacesCallerInContext(t *testing.T) {
	subID := uuid.New()
	user := &domain.User{ID: uuid.New(), SubID: subID}

	var seenCaller uuid.UUID
	r := authTestRouter(
		stubVerifier{sub: subID.String()},
		stubResolver{user: user},
		func(c *gin.Context) {
			id, err := domain.CallerID(c.Request.Context())
			require.NoError(t, err)
			seenCaller = id
			c.Status(http.StatusNoContent)
		},
	)

	w := doRequest(r, "Bearer some-token")
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, user.ID, seenCaller, "handler must see the internal user id, not the subject id")
}

func TestAuthMiddlewareRejections(t *testing.T) {
	subID := uuid.New()

	tests := []struct {
		name     string
		verifier TokenVerifier
		resolver domain.AuthUsecase
		header   string
	}{
		{
			name:     "missing header",
			verifier: stubVerifier{sub: subID.String()},
			resolver: stubResolver{user: &domain.User{ID: uuid.New()}},
			header:   "",
		},
		{
			name:     "rejected token",
			verifier: stubVerifier{err: apperror.Unauthorized()},
			resolver: stubResolver{user: &domain.User{ID: uuid.New()}},
			header:   "Bearer bad",
		},
		{
			name:     "non-uuid subject",
			verifier: stubVerifier{sub: "not-a-uuid"},
			resolver: stubResolver{user: &domain.User{ID: uuid.New()}},
			header:   "Bearer token",
		},
		{
			name:     "resolver failure",
			verifier: stubVerifier{sub: subID.String()},
			resolver: stubResolver{err: domain.ErrNotFound},
			header:   "Bearer token",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			reached := false
			r := authTestRouter(tc.verifier, tc.resolver, func(c *gin.Context) {
				reached = true
				c.Status(http.StatusNoContent)
			})

			w := doRequest(r, tc.header)
			assert.Equal(t, http.StatusUnauthorized, w.Code)
			assert.False(t, reached, "rejected requests must not reach the handler")

			var body map[string]any
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, apperror.KindUnauthorized, body["error"])
			// The message never varies with the failure cause.
			assert.Equal(t, "Authentication required", body["message"])
		})
	}
}
