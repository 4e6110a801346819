package auth

import (
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	CtxEmail       = "email"
	CtxFirebaseUID = "firebase_uid"
)

// UserEmail extracts the authenticated email identity from the Gin context.
// Set by FirebaseAuthMiddleware; empty means the request is unauthenticated.
func UserEmail(c *gin.Context) string {
	return strings.TrimSpace(c.GetString(CtxEmail))
}

// UserFirebaseUID extracts the Firebase UID from the Gin context.
func UserFirebaseUID(c *gin.Context) string {
	return strings.TrimSpace(c.GetString(CtxFirebaseUID))
}
