package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"indicamais/internal/authz"
	"indicamais/internal/models"
)

type stubResolver struct {
	sessions map[string]*models.User
	users    map[string]*models.User
}

func (s *stubResolver) ResolveSession(sessionID string) (*models.User, error) {
	return s.sessions[sessionID], nil
}

func (s *stubResolver) UserByID(id string) (*models.User, error) {
	return s.users[id], nil
}

func authRouter(resolver UserResolver) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(AuthMiddleware(resolver))
	handler := func(c *gin.Context) {
		v, _ := c.Get("user")
		if u, ok := v.(*models.User); ok {
			c.String(http.StatusOK, u.ID)
			return
		}
		c.String(http.StatusOK, "anon")
	}
	r.GET("/indicacoes", handler)
	r.GET("/healthz", handler)
	return r
}

func signToken(t *testing.T, userID string, expiresAt time.Time) string {
	t.Helper()
	claims := &Claims{
		UserID: userID,
		Role:   string(authz.RoleFinanceiro),
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(JWTKey())
	require.NoError(t, err)
	return token
}

func TestAuthMiddlewareRejectsAnonymous(t *testing.T) {
	r := authRouter(&stubResolver{})

	req := httptest.NewRequest(http.MethodGet, "/indicacoes", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"success":false,"message":"Não autorizado"}`, rec.Body.String())
}

func TestAuthMiddlewareAcceptsSessionCookie(t *testing.T) {
	user := &models.User{ID: "u1", Job: authz.RoleFinanceiro, Active: true}
	r := authRouter(&stubResolver{sessions: map[string]*models.User{"sess1": user}})

	req := httptest.NewRequest(http.MethodGet, "/indicacoes", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookie, Value: "sess1"})
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "u1", rec.Body.String())
}

func TestAuthMiddlewareAcceptsBearerToken(t *testing.T) {
	user := &models.User{ID: "u1", Job: authz.RoleFinanceiro, Active: true}
	r := authRouter(&stubResolver{users: map[string]*models.User{"u1": user}})

	req := httptest.NewRequest(http.MethodGet, "/indicacoes", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, "u1", time.Now().Add(10*time.Minute)))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "u1", rec.Body.String())
}

func TestAuthMiddlewareRejectsExpiredToken(t *testing.T) {
	user := &models.User{ID: "u1", Active: true}
	r := authRouter(&stubResolver{users: map[string]*models.User{"u1": user}})

	// além da folga de 2 minutos
	req := httptest.NewRequest(http.MethodGet, "/indicacoes", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, "u1", time.Now().Add(-10*time.Minute)))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthMiddlewareRejectsUnknownSession(t *testing.T) {
	r := authRouter(&stubResolver{sessions: map[string]*models.User{}})

	req := httptest.NewRequest(http.MethodGet, "/indicacoes", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookie, Value: "expirada"})
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthMiddlewareSkipsPublicPaths(t *testing.T) {
	r := authRouter(&stubResolver{})

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "anon", rec.Body.String())
}
