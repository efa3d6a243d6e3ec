package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"indicamais/internal/models"
)

// SessionCookie é o cookie de sessão emitido no login (lucia-compatível no
// frontend antigo).
const SessionCookie = "auth_session"

var jwtKey = []byte("change-me")

// SetJWTKey troca a chave HMAC dos access tokens; chamada no boot com o
// valor do config.
func SetJWTKey(key string) {
	if key != "" {
		jwtKey = []byte(key)
	}
}

func JWTKey() []byte {
	return jwtKey
}

type Claims struct {
	UserID string `json:"user_id"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// UserResolver evita o ciclo middleware -> services; AuthService satisfaz.
type UserResolver interface {
	ResolveSession(sessionID string) (*models.User, error)
	UserByID(id string) (*models.User, error)
}

func isPublicPath(path string) bool {
	switch path {
	case "/login":
		return true
	}
	if strings.HasPrefix(path, "/login/discord") ||
		strings.HasPrefix(path, "/swagger") ||
		strings.HasPrefix(path, "/healthz") {
		return true
	}
	return false
}

// AuthMiddleware aceita cookie de sessão (frontend) ou Bearer JWT (clientes
// de API) e coloca o *models.User autenticado no contexto.
func AuthMiddleware(resolver UserResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodOptions {
			c.Next()
			return
		}
		if isPublicPath(c.Request.URL.Path) {
			c.Next()
			return
		}

		// 1) sessão em cookie
		if sessionID, err := c.Cookie(SessionCookie); err == nil && sessionID != "" {
			user, err := resolver.ResolveSession(sessionID)
			if err == nil && user != nil {
				c.Set("user", user)
				c.Next()
				return
			}
		}

		// 2) Bearer JWT
		authHeader := strings.TrimSpace(c.GetHeader("Authorization"))
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Não autorizado"})
			return
		}

		claims := &Claims{}
		token, err := jwt.ParseWithClaims(strings.TrimSpace(parts[1]), claims, func(token *jwt.Token) (interface{}, error) {
			// só HMAC (HS256 e afins)
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrTokenSignatureInvalid
			}
			return jwtKey, nil
		})
		if err != nil || !token.Valid {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Não autorizado"})
			return
		}

		const leeway = 2 * time.Minute
		now := time.Now().Add(-leeway)
		if claims.ExpiresAt == nil || claims.ExpiresAt.Time.Before(now) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Não autorizado"})
			return
		}

		user, err := resolver.UserByID(claims.UserID)
		if err != nil || user == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Não autorizado"})
			return
		}
		c.Set("user", user)
		c.Next()
	}
}
