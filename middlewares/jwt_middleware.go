package middlewares

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"moviereviews/utils"
)

// JWT authenticates requests from the Authorization header and stores
// the identity claims on the gin context for the handlers.
func JWT() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			utils.AbortFail(c, http.StatusUnauthorized, "Authorization header is missing")
			return
		}

		tokenString, found := strings.CutPrefix(authHeader, "Bearer ")
		if !found {
			utils.AbortFail(c, http.StatusUnauthorized, "Authorization header must be a Bearer token")
			return
		}

		claims, err := utils.ParseToken(tokenString)
		if err != nil {
			utils.AbortFail(c, http.StatusUnauthorized, "Invalid or expired token")
			return
		}

		c.Set(utils.ContextUserIDKey, claims.UserID)
		c.Set(utils.ContextIsAdminKey, claims.IsAdmin)

		c.Next()
	}
}

// AdminOnly must run after JWT.
func AdminOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !utils.IsAdminFromContext(c) {
			utils.AbortFail(c, http.StatusForbidden, "Admin access required")
			return
		}
		c.Next()
	}
}
