package controller

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"

	"moviereviews/models"
	"moviereviews/store"
	"moviereviews/utils"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func postJSON(t *testing.T, router *gin.Engine, path string, payload interface{}) *httptest.ResponseRecorder {
	t.Helper()
	body, err := json.Marshal(payload)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func putJSON(t *testing.T, router *gin.Engine, path string, payload interface{}) *httptest.ResponseRecorder {
	t.Helper()
	body, err := json.Marshal(payload)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPut, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeResponse(t *testing.T, w *httptest.ResponseRecorder) utils.Response {
	t.Helper()
	var resp utils.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func hashed(t *testing.T, password string) string {
	t.Helper()
	encoded, err := utils.HashPassword(password)
	require.NoError(t, err)
	return encoded
}

func TestRegisterSuccess(t *testing.T) {
	t.Setenv("SECRET_KEY", "test-secret")

	users := new(MockUserStore)
	users.On("EmailTaken", mock.Anything, "fan@example.com").Return(false, nil)
	users.On("UsernameTaken", mock.Anything, "moviefan").Return(false, nil)
	users.On("InsertUser", mock.Anything, mock.MatchedBy(func(u models.User) bool {
		return u.Username == "moviefan" && u.Email == "fan@example.com" && u.Password != "secret123"
	})).Return(models.User{
		ID:       bson.NewObjectID(),
		Username: "moviefan",
		Email:    "fan@example.com",
	}, nil)

	router := gin.New()
	router.POST("/api/auth/register", NewAuthController(users).Register)

	w := postJSON(t, router, "/api/auth/register", gin.H{
		"name":            "moviefan",
		"email":           "Fan@Example.com",
		"password":        "secret123",
		"confirmPassword": "secret123",
	})

	assert.Equal(t, http.StatusCreated, w.Code)
	resp := decodeResponse(t, w)
	assert.True(t, resp.Success)

	data := resp.Data.(map[string]interface{})
	assert.NotEmpty(t, data["token"])
	user := data["user"].(map[string]interface{})
	assert.Equal(t, "moviefan", user["name"])
	assert.Equal(t, "fan@example.com", user["email"])
	users.AssertExpectations(t)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	users := new(MockUserStore)
	users.On("EmailTaken", mock.Anything, "fan@example.com").Return(true, nil)

	router := gin.New()
	router.POST("/api/auth/register", NewAuthController(users).Register)

	w := postJSON(t, router, "/api/auth/register", gin.H{
		"name":            "moviefan",
		"email":           "fan@example.com",
		"password":        "secret123",
		"confirmPassword": "secret123",
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	resp := decodeResponse(t, w)
	assert.False(t, resp.Success)
	assert.Equal(t, "An account with this email already exists", resp.Message)
	users.AssertNotCalled(t, "InsertUser", mock.Anything, mock.Anything)
}

func TestRegisterValidationErrors(t *testing.T) {
	users := new(MockUserStore)

	router := gin.New()
	router.POST("/api/auth/register", NewAuthController(users).Register)

	w := postJSON(t, router, "/api/auth/register", gin.H{
		"name":            "moviefan",
		"email":           "not-an-email",
		"password":        "secret123",
		"confirmPassword": "different",
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	resp := decodeResponse(t, w)
	assert.Equal(t, "Validation errors", resp.Message)
	assert.NotEmpty(t, resp.Errors)
	users.AssertNotCalled(t, "EmailTaken", mock.Anything, mock.Anything)
}

func TestLoginSuccess(t *testing.T) {
	t.Setenv("SECRET_KEY", "test-secret")

	users := new(MockUserStore)
	users.On("FindUserByEmail", mock.Anything, "fan@example.com").Return(models.User{
		ID:       bson.NewObjectID(),
		Username: "moviefan",
		Email:    "fan@example.com",
		Password: hashed(t, "secret123"),
	}, nil)

	router := gin.New()
	router.POST("/api/auth/login", NewAuthController(users).Login)

	w := postJSON(t, router, "/api/auth/login", gin.H{
		"email":    "fan@example.com",
		"password": "secret123",
	})

	assert.Equal(t, http.StatusOK, w.Code)
	resp := decodeResponse(t, w)
	assert.True(t, resp.Success)
	data := resp.Data.(map[string]interface{})
	assert.NotEmpty(t, data["token"])
}

func TestLoginWrongPassword(t *testing.T) {
	users := new(MockUserStore)
	users.On("FindUserByEmail", mock.Anything, "fan@example.com").Return(models.User{
		Email:    "fan@example.com",
		Password: hashed(t, "secret123"),
	}, nil)

	router := gin.New()
	router.POST("/api/auth/login", NewAuthController(users).Login)

	w := postJSON(t, router, "/api/auth/login", gin.H{
		"email":    "fan@example.com",
		"password": "wrong",
	})

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Invalid email or password", decodeResponse(t, w).Message)
}

func TestLoginUnknownEmail(t *testing.T) {
	users := new(MockUserStore)
	users.On("FindUserByEmail", mock.Anything, "nobody@example.com").Return(models.User{}, store.ErrNotFound)

	router := gin.New()
	router.POST("/api/auth/login", NewAuthController(users).Login)

	w := postJSON(t, router, "/api/auth/login", gin.H{
		"email":    "nobody@example.com",
		"password": "secret123",
	})

	// Same response as a wrong password so the endpoint does not leak
	// which emails have accounts.
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Invalid email or password", decodeResponse(t, w).Message)
}

func TestUpdatePasswordWrongCurrent(t *testing.T) {
	userID := bson.NewObjectID()
	users := new(MockUserStore)
	users.On("FindUserByID", mock.Anything, userID).Return(models.User{
		ID:       userID,
		Password: hashed(t, "secret123"),
	}, nil)

	router := gin.New()
	router.PUT("/api/auth/password", authAs(userID, false), NewAuthController(users).UpdatePassword)

	w := putJSON(t, router, "/api/auth/password", gin.H{
		"currentPassword": "wrong",
		"newPassword":     "newsecret",
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Current password is incorrect", decodeResponse(t, w).Message)
	users.AssertNotCalled(t, "UpdateUserPassword", mock.Anything, mock.Anything, mock.Anything)
}
