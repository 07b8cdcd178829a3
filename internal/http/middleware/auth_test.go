package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/Konaisya/build-service/internal/auth"
	"github.com/Konaisya/build-service/internal/service"
)

type stubVerifier struct {
	claims *auth.Claims
	err    error
}

func (s stubVerifier) VerifyToken(string) (*auth.Claims, error) {
	return s.claims, s.err
}

func newTestRouter(verifier TokenVerifier, adminOnly bool) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	group := router.Group("/")
	group.Use(Auth(verifier))
	if adminOnly {
		group.Use(AdminOnly())
	}
	group.GET("/ping", func(c *gin.Context) {
		claims, ok := MustClaims(c)
		if !ok {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "no claims"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"role": claims.Role})
	})
	return router
}

func doRequest(router *gin.Engine, authorization string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestAuthRequiresBearerToken(t *testing.T) {
	router := newTestRouter(stubVerifier{claims: &auth.Claims{Role: "USER"}}, false)

	require.Equal(t, http.StatusUnauthorized, doRequest(router, "").Code)
	require.Equal(t, http.StatusUnauthorized, doRequest(router, "Basic abc").Code)
	require.Equal(t, http.StatusOK, doRequest(router, "Bearer token").Code)
}

func TestAuthDistinguishesExpiredTokens(t *testing.T) {
	router := newTestRouter(stubVerifier{err: service.ErrTokenExpired}, false)

	rec := doRequest(router, "Bearer token")
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.Contains(t, rec.Body.String(), "token expired")
}

func TestAdminOnlyRejectsNonAdmins(t *testing.T) {
	userRouter := newTestRouter(stubVerifier{claims: &auth.Claims{Role: "USER"}}, true)
	require.Equal(t, http.StatusForbidden, doRequest(userRouter, "Bearer token").Code)

	adminRouter := newTestRouter(stubVerifier{claims: &auth.Claims{Role: "ADMIN"}}, true)
	require.Equal(t, http.StatusOK, doRequest(adminRouter, "Bearer token").Code)
}
