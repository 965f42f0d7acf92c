package controller

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"moviereviews/models"
	"moviereviews/store"
	"moviereviews/utils"
)

type AuthController struct {
	Users UserStore
}

func NewAuthController(users UserStore) *AuthController {
	return &AuthController{Users: users}
}

func (a *AuthController) Register(c *gin.Context) {
	ctx, cancel := requestTimeout(c)
	defer cancel()

	var input models.RegisterInput
	if !bindAndValidate(c, &input) {
		return
	}
	email := strings.ToLower(input.Email)

	taken, err := a.Users.EmailTaken(ctx, email)
	if err != nil {
		log.Println(err)
		utils.Fail(c, http.StatusInternalServerError, "Failed to check existing user")
		return
	}
	if taken {
		utils.Fail(c, http.StatusBadRequest, "An account with this email already exists")
		return
	}

	taken, err = a.Users.UsernameTaken(ctx, input.Name)
	if err != nil {
		log.Println(err)
		utils.Fail(c, http.StatusInternalServerError, "Failed to check existing user")
		return
	}
	if taken {
		utils.Fail(c, http.StatusBadRequest, "Username is already taken")
		return
	}

	hashed, err := utils.HashPassword(input.Password)
	if err != nil {
		log.Println(err)
		utils.Fail(c, http.StatusInternalServerError, "Unable to hash password")
		return
	}

	user, err := a.Users.InsertUser(ctx, models.User{
		Username:       input.Name,
		Email:          email,
		Password:       hashed,
		FavoriteGenres: []string{},
	})
	if err != nil {
		respondStoreError(c, err, "User not found", "An account with this email already exists")
		return
	}

	token, err := utils.GenerateToken(user.ID.Hex(), user.Email, user.IsAdmin)
	if err != nil {
		log.Println(err)
		utils.Fail(c, http.StatusInternalServerError, "Token not created properly")
		return
	}

	utils.OK(c, http.StatusCreated, "User registered successfully", gin.H{
		"token": token,
		"user": gin.H{
			"id":    user.ID.Hex(),
			"name":  user.Username,
			"email": user.Email,
		},
	})
}

func (a *AuthController) Login(c *gin.Context) {
	ctx, cancel := requestTimeout(c)
	defer cancel()

	var input models.LoginInput
	if !bindAndValidate(c, &input) {
		return
	}

	user, err := a.Users.FindUserByEmail(ctx, strings.ToLower(input.Email))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			utils.Fail(c, http.StatusUnauthorized, "Invalid email or password")
			return
		}
		respondStoreError(c, err, "Invalid email or password", "")
		return
	}

	if err := utils.VerifyPassword(input.Password, user.Password); err != nil {
		utils.Fail(c, http.StatusUnauthorized, "Invalid email or password")
		return
	}

	token, err := utils.GenerateToken(user.ID.Hex(), user.Email, user.IsAdmin)
	if err != nil {
		log.Println(err)
		utils.Fail(c, http.StatusInternalServerError, "Token not created properly")
		return
	}

	utils.OK(c, http.StatusOK, "Login successful", gin.H{
		"token": token,
		"user": gin.H{
			"id":    user.ID.Hex(),
			"name":  user.Username,
			"email": user.Email,
		},
	})
}

func (a *AuthController) Me(c *gin.Context) {
	ctx, cancel := requestTimeout(c)
	defer cancel()

	userID, _, err := actingUser(c)
	if err != nil {
		utils.Fail(c, http.StatusUnauthorized, "Authentication required")
		return
	}

	user, err := a.Users.FindUserByID(ctx, userID)
	if err != nil {
		respondStoreError(c, err, "User not found", "")
		return
	}

	utils.OK(c, http.StatusOK, "", gin.H{"user": user})
}

func (a *AuthController) UpdatePassword(c *gin.Context) {
	ctx, cancel := requestTimeout(c)
	defer cancel()

	userID, _, err := actingUser(c)
	if err != nil {
		utils.Fail(c, http.StatusUnauthorized, "Authentication required")
		return
	}

	var input models.UpdatePasswordInput
	if !bindAndValidate(c, &input) {
		return
	}

	user, err := a.Users.FindUserByID(ctx, userID)
	if err != nil {
		respondStoreError(c, err, "User not found", "")
		return
	}

	if err := utils.VerifyPassword(input.CurrentPassword, user.Password); err != nil {
		utils.Fail(c, http.StatusBadRequest, "Current password is incorrect")
		return
	}

	hashed, err := utils.HashPassword(input.NewPassword)
	if err != nil {
		log.Println(err)
		utils.Fail(c, http.StatusInternalServerError, "Unable to hash password")
		return
	}

	if err := a.Users.UpdateUserPassword(ctx, userID, hashed); err != nil {
		respondStoreError(c, err, "User not found", "")
		return
	}

	token, err := utils.GenerateToken(user.ID.Hex(), user.Email, user.IsAdmin)
	if err != nil {
		log.Println(err)
		utils.Fail(c, http.StatusInternalServerError, "Token not created properly")
		return
	}

	utils.OK(c, http.StatusOK, "Password updated successfully", gin.H{"token": token})
}

// ForgotPassword acknowledges the request without sending mail; reset
// delivery is not wired up.
func (a *AuthController) ForgotPassword(c *gin.Context) {
	ctx, cancel := requestTimeout(c)
	defer cancel()

	var input struct {
		Email string `json:"email" validate:"required,email"`
	}
	if !bindAndValidate(c, &input) {
		return
	}

	if _, err := a.Users.FindUserByEmail(ctx, strings.ToLower(input.Email)); err != nil {
		respondStoreError(c, err, "No user found with that email", "")
		return
	}

	utils.OK(c, http.StatusOK, "Password reset email sent", nil)
}
