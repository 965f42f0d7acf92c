package controller

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/v2/bson"

	"moviereviews/models"
	"moviereviews/store"
	"moviereviews/utils"
	"moviereviews/validation"
)

func requestTimeout(c *gin.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request.Context(), 20*time.Second)
}

// objectIDParam validates the shape of an ID path parameter before any
// lookup. Responds 400 and returns false when malformed.
func objectIDParam(c *gin.Context, name string) (bson.ObjectID, bool) {
	raw := c.Param(name)
	id, err := bson.ObjectIDFromHex(raw)
	if err != nil {
		utils.Fail(c, http.StatusBadRequest, fmt.Sprintf("Invalid %s", name))
		return bson.ObjectID{}, false
	}
	return id, true
}

// respondStoreError maps store sentinels to the HTTP error taxonomy at
// one point instead of per handler.
func respondStoreError(c *gin.Context, err error, notFoundMessage, conflictMessage string) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		utils.Fail(c, http.StatusNotFound, notFoundMessage)
	case errors.Is(err, store.ErrDuplicate):
		utils.Fail(c, http.StatusConflict, conflictMessage)
	default:
		log.Println(err)
		utils.Fail(c, http.StatusInternalServerError, "Internal server error")
	}
}

func bindAndValidate(c *gin.Context, payload interface{}) bool {
	if err := c.ShouldBindJSON(payload); err != nil {
		log.Println(err)
		utils.Fail(c, http.StatusBadRequest, "Invalid request body")
		return false
	}
	if fieldErrors := validation.Validate(payload); fieldErrors != nil {
		utils.FailWithErrors(c, http.StatusBadRequest, "Validation errors", fieldErrors)
		return false
	}
	return true
}

// parsePageQuery reads page/limit, rejecting non-integers and
// out-of-range values before clamping defaults.
func parsePageQuery(c *gin.Context, defaultLimit int) (models.PageQuery, bool) {
	page := models.PageQuery{Page: 1, Limit: defaultLimit}

	if raw := c.Query("page"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			utils.Fail(c, http.StatusBadRequest, "Page must be a positive integer")
			return page, false
		}
		page.Page = n
	}
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > 100 {
			utils.Fail(c, http.StatusBadRequest, "Limit must be between 1 and 100")
			return page, false
		}
		page.Limit = n
	}
	return page.Normalize(defaultLimit), true
}

func sortParams(c *gin.Context, defaultSortBy, defaultOrder string) (string, string) {
	sortBy := c.DefaultQuery("sortBy", defaultSortBy)
	sortOrder := c.DefaultQuery("sortOrder", defaultOrder)
	return sortBy, sortOrder
}

// actingUser pulls the authenticated identity the JWT middleware stored.
func actingUser(c *gin.Context) (bson.ObjectID, bool, error) {
	raw, err := utils.GetUserIDFromContext(c)
	if err != nil {
		return bson.ObjectID{}, false, err
	}
	id, err := bson.ObjectIDFromHex(raw)
	if err != nil {
		return bson.ObjectID{}, false, err
	}
	return id, utils.IsAdminFromContext(c), nil
}
