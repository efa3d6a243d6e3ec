package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"indicamais/internal/authz"
	"indicamais/internal/models"
)

func RequireRoles(allowed ...authz.Role) gin.HandlerFunc {
	allowedSet := map[authz.Role]struct{}{}
	for _, r := range allowed {
		allowedSet[r] = struct{}{}
	}
	return func(c *gin.Context) {
		v, exists := c.Get("user")
		if !exists {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Não autorizado"})
			return
		}
		user, _ := v.(*models.User)
		if user == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Não autorizado"})
			return
		}
		if _, ok := allowedSet[user.Job]; !ok {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"success": false, "message": "Acesso negado"})
			return
		}
		c.Next()
	}
}
