package middleware

import "github.com/gin-gonic/gin"

// userIDKey stores the authenticated user's ID in the request context.
const userIDKey = contextKey("userID")

// GetUserIDFromContext retrieves the authenticated user ID set by
// AuthMiddleware, with a boolean indicating whether it was present.
func GetUserIDFromContext(c *gin.Context) (string, bool) {
	if v := c.Request.Context().Value(userIDKey); v != nil {
		if userID, ok := v.(string); ok {
			return userID, true
		}
	}
	return "", false
}
