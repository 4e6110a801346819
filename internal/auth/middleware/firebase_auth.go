package middleware

import (
	"net/http"
	"strings"

	"firebase.google.com/go/v4/auth"
	"github.com/gin-gonic/gin"
)

// FirebaseAuthMiddleware validates Firebase ID tokens and extracts the
// caller's identity. Every store operation is keyed by the email claim, so a
// token without one is rejected before any handler runs.
func FirebaseAuthMiddleware(authClient *auth.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c)
		if token == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "missing authorization token"})
			c.Abort()
			return
		}

		decodedToken, err := authClient.VerifyIDToken(c.Request.Context(), token)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			c.Abort()
			return
		}

		email, ok := decodedToken.Claims["email"].(string)
		if !ok || strings.TrimSpace(email) == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "token has no email identity"})
			c.Abort()
			return
		}

		c.Set("firebase_uid", decodedToken.UID)
		c.Set("email", email)

		if name, ok := decodedToken.Claims["name"].(string); ok {
			c.Set("name", name)
		}
		if picture, ok := decodedToken.Claims["picture"].(string); ok {
			c.Set("picture", picture)
		}

		c.Next()
	}
}

// extractToken extracts the Bearer token from the Authorization header
func extractToken(c *gin.Context) string {
	bearerToken := c.GetHeader("Authorization")
	if len(bearerToken) > 7 && strings.HasPrefix(bearerToken, "Bearer ") {
		return bearerToken[7:]
	}
	return ""
}
