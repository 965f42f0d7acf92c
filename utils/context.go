package utils

import (
	"errors"

	"github.com/gin-gonic/gin"
)

const (
	ContextUserIDKey  = "userID"
	ContextIsAdminKey = "isAdmin"
)

func GetUserIDFromContext(c *gin.Context) (string, error) {
	userID, exists := c.Get(ContextUserIDKey)
	if !exists {
		return "", errors.New("user id does not exist in the context")
	}
	id, ok := userID.(string)
	if !ok {
		return "", errors.New("unable to retrieve user id")
	}
	return id, nil
}

func IsAdminFromContext(c *gin.Context) bool {
	isAdmin, exists := c.Get(ContextIsAdminKey)
	if !exists {
		return false
	}
	admin, ok := isAdmin.(bool)
	return exists && ok && admin
}
