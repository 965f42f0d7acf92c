package controller

import (
	"log"
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"moviereviews/models"
	"moviereviews/store"
	"moviereviews/utils"
)

type UserController struct {
	Users   UserStore
	Reviews ReviewStore
	Stats   StatsRecomputer
}

func NewUserController(users UserStore, reviews ReviewStore, stats StatsRecomputer) *UserController {
	return &UserController{Users: users, Reviews: reviews, Stats: stats}
}

func (u *UserController) GetUserProfile(c *gin.Context) {
	ctx, cancel := requestTimeout(c)
	defer cancel()

	userID, ok := objectIDParam(c, "id")
	if !ok {
		return
	}

	user, err := u.Users.FindUserByID(ctx, userID)
	if err != nil {
		respondStoreError(c, err, "User not found", "")
		return
	}

	recent, _, err := u.Reviews.ListReviews(ctx, models.ReviewFilter{
		User:      userID,
		SortBy:    "createdAt",
		SortOrder: "desc",
	}, models.PageQuery{Page: 1, Limit: 5})
	if err != nil {
		log.Println(err)
		utils.Fail(c, http.StatusInternalServerError, "Unable to fetch user reviews")
		return
	}

	rollup, err := u.Reviews.UserReviewRollup(ctx, userID)
	if err != nil {
		log.Println(err)
		utils.Fail(c, http.StatusInternalServerError, "Unable to fetch user statistics")
		return
	}
	summary := store.SummarizeRatings(rollup.Ratings)

	utils.OK(c, http.StatusOK, "", gin.H{
		"user":          user,
		"recentReviews": recent,
		"statistics": gin.H{
			"totalReviews":       summary.TotalReviews,
			"averageRating":      summary.AverageRating,
			"ratingDistribution": summary.RatingDistribution,
		},
	})
}

func (u *UserController) UpdateUserProfile(c *gin.Context) {
	ctx, cancel := requestTimeout(c)
	defer cancel()

	actorID, isAdmin, err := actingUser(c)
	if err != nil {
		utils.Fail(c, http.StatusUnauthorized, "Authentication required")
		return
	}
	userID, ok := objectIDParam(c, "id")
	if !ok {
		return
	}
	if actorID != userID && !isAdmin {
		utils.Fail(c, http.StatusForbidden, "You can only update your own profile")
		return
	}

	var input models.UpdateProfileInput
	if !bindAndValidate(c, &input) {
		return
	}

	existing, err := u.Users.FindUserByID(ctx, userID)
	if err != nil {
		respondStoreError(c, err, "User not found", "")
		return
	}

	if input.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*input.Email))
		input.Email = &email
		if email != existing.Email {
			taken, err := u.Users.EmailTaken(ctx, email)
			if err != nil {
				log.Println(err)
				utils.Fail(c, http.StatusInternalServerError, "Failed to check email availability")
				return
			}
			if taken {
				utils.Fail(c, http.StatusBadRequest, "An account with this email already exists")
				return
			}
		}
	}
	if input.Username != nil && *input.Username != existing.Username {
		taken, err := u.Users.UsernameTaken(ctx, *input.Username)
		if err != nil {
			log.Println(err)
			utils.Fail(c, http.StatusInternalServerError, "Failed to check username availability")
			return
		}
		if taken {
			utils.Fail(c, http.StatusBadRequest, "This username is already taken")
			return
		}
	}

	user, err := u.Users.UpdateUserProfile(ctx, userID, input)
	if err != nil {
		respondStoreError(c, err, "User not found", "An account with this email already exists")
		return
	}

	utils.OK(c, http.StatusOK, "Profile updated successfully", gin.H{"user": user})
}

func (u *UserController) GetUserReviews(c *gin.Context) {
	ctx, cancel := requestTimeout(c)
	defer cancel()

	userID, ok := objectIDParam(c, "id")
	if !ok {
		return
	}
	if _, err := u.Users.FindUserByID(ctx, userID); err != nil {
		respondStoreError(c, err, "User not found", "")
		return
	}

	filter, ok := parseReviewFilter(c)
	if !ok {
		return
	}
	filter.User = userID
	page, ok := parsePageQuery(c, 10)
	if !ok {
		return
	}

	reviews, total, err := u.Reviews.ListReviews(ctx, filter, page)
	if err != nil {
		log.Println(err)
		utils.Fail(c, http.StatusInternalServerError, "Unable to fetch reviews")
		return
	}

	utils.OK(c, http.StatusOK, "", gin.H{
		"reviews":    reviews,
		"pagination": models.NewPagination(page.Page, page.Limit, total),
	})
}

// GetUserStats aggregates the user's active reviews into the profile
// statistics block: rating summary, favorite genres, reviews by decade
// and overall helpfulness.
func (u *UserController) GetUserStats(c *gin.Context) {
	ctx, cancel := requestTimeout(c)
	defer cancel()

	userID, ok := objectIDParam(c, "id")
	if !ok {
		return
	}
	if _, err := u.Users.FindUserByID(ctx, userID); err != nil {
		respondStoreError(c, err, "User not found", "")
		return
	}

	rollup, err := u.Reviews.UserReviewRollup(ctx, userID)
	if err != nil {
		log.Println(err)
		utils.Fail(c, http.StatusInternalServerError, "Unable to fetch user statistics")
		return
	}

	summary := store.SummarizeRatings(rollup.Ratings)

	reviewsByDecade := map[string]int{}
	for _, year := range rollup.ReleaseYears {
		decade := strconv.Itoa(year/10*10) + "s"
		reviewsByDecade[decade]++
	}

	helpfulnessRatio := 0
	if rollup.TotalVotes > 0 {
		helpfulnessRatio = int(math.Round(float64(rollup.HelpfulVotes) / float64(rollup.TotalVotes) * 100))
	}

	utils.OK(c, http.StatusOK, "", gin.H{
		"totalReviews":       summary.TotalReviews,
		"averageRating":      summary.AverageRating,
		"ratingDistribution": summary.RatingDistribution,
		"favoriteGenres":     store.TopCounts(rollup.Genres, 5),
		"reviewsByDecade":    reviewsByDecade,
		"helpfulVotes":       rollup.HelpfulVotes,
		"totalVotes":         rollup.TotalVotes,
		"helpfulnessRatio":   helpfulnessRatio,
	})
}

// DeleteUser soft-deletes the user's reviews, refreshes the affected
// movie aggregates, then removes the account document itself.
func (u *UserController) DeleteUser(c *gin.Context) {
	ctx, cancel := requestTimeout(c)
	defer cancel()

	actorID, isAdmin, err := actingUser(c)
	if err != nil {
		utils.Fail(c, http.StatusUnauthorized, "Authentication required")
		return
	}
	userID, ok := objectIDParam(c, "id")
	if !ok {
		return
	}
	if actorID != userID && !isAdmin {
		utils.Fail(c, http.StatusForbidden, "You can only delete your own account")
		return
	}

	if _, err := u.Users.FindUserByID(ctx, userID); err != nil {
		respondStoreError(c, err, "User not found", "")
		return
	}

	movieIDs, err := u.Reviews.DeactivateUserReviews(ctx, userID)
	if err != nil {
		log.Println(err)
		utils.Fail(c, http.StatusInternalServerError, "Unable to delete account")
		return
	}
	for _, movieID := range movieIDs {
		if err := u.Stats.RecomputeMovieStats(ctx, movieID); err != nil {
			log.Println("movie stats recompute failed:", err)
		}
	}

	if err := u.Users.DeleteUser(ctx, userID); err != nil {
		respondStoreError(c, err, "User not found", "")
		return
	}

	utils.OK(c, http.StatusOK, "Account deleted successfully", nil)
}

// GetUsers lists accounts for administrators.
func (u *UserController) GetUsers(c *gin.Context) {
	ctx, cancel := requestTimeout(c)
	defer cancel()

	filter := models.UserFilter{Search: c.Query("search")}
	filter.SortBy, filter.SortOrder = sortParams(c, "createdAt", "desc")
	page, ok := parsePageQuery(c, 20)
	if !ok {
		return
	}

	users, total, err := u.Users.ListUsers(ctx, filter, page)
	if err != nil {
		log.Println(err)
		utils.Fail(c, http.StatusInternalServerError, "Unable to fetch users")
		return
	}

	utils.OK(c, http.StatusOK, "", gin.H{
		"users":      users,
		"pagination": models.NewPagination(page.Page, page.Limit, total),
	})
}
