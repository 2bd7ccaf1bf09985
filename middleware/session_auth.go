package middleware

import (
	"net/http"
	"strings"

	"tutorhub/utils"

	"github.com/gin-gonic/gin"
)

// WizardSessionAuthMiddleware requires the session token issued at session
// start and refuses calls whose token is bound to a different session than
// the one addressed by the URL.
func WizardSessionAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Insufficient authorization"})
			return
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Insufficient authorization"})
			return
		}

		sessionID, err := utils.ExtractSessionIDFromToken(tokenString)
		if err != nil || sessionID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Insufficient authorization"})
			return
		}
		if paramID := c.Param("id"); paramID != "" && paramID != sessionID {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Token does not match this session"})
			return
		}

		c.Set("sessionID", sessionID)
		c.Next()
	}
}
