package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func protectedEcho(t *testing.T) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, ok := UserIDFromContext(r.Context())
		assert.True(t, ok)
		assert.NotEmpty(t, userID)
		w.WriteHeader(http.StatusOK)
	})
}

func TestJWTAccessTokenMiddleware_ValidToken(t *testing.T) {
	svc, _ := newTestService(t)
	user, err := svc.Register("frank", "secret123", "")
	assert.NoError(t, err)
	token, err := svc.IssueAccessToken(user.ID)
	assert.NoError(t, err)

	handler := svc.JWTAccessTokenMiddleware()(protectedEcho(t))
	req := httptest.NewRequest(http.MethodGet, "/api/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Result().StatusCode)
}

func TestJWTAccessTokenMiddleware_MissingHeader(t *testing.T) {
	svc, _ := newTestService(t)
	handler := svc.JWTAccessTokenMiddleware()(protectedEcho(t))

	req := httptest.NewRequest(http.MethodGet, "/api/protected", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Result().StatusCode)
}

func TestJWTAccessTokenMiddleware_GarbageToken(t *testing.T) {
	svc, _ := newTestService(t)
	handler := svc.JWTAccessTokenMiddleware()(protectedEcho(t))

	req := httptest.NewRequest(http.MethodGet, "/api/protected", nil)
	req.Header.Set("Authorization", "Bearer not-a-jwt")
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Result().StatusCode)
}

func TestJWTAccessTokenMiddleware_UnknownUser(t *testing.T) {
	svc, _ := newTestService(t)
	token, err := svc.jwtManager.GenerateAccessJWT("ghost-user", defaultJWTDuration)
	assert.NoError(t, err)

	handler := svc.JWTAccessTokenMiddleware()(protectedEcho(t))
	req := httptest.NewRequest(http.MethodGet, "/api/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Result().StatusCode)
}
