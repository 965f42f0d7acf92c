package controller

import (
	"context"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/v2/bson"

	"moviereviews/models"
	"moviereviews/utils"
)

type ReviewController struct {
	Reviews ReviewStore
	Movies  MovieStore
	Stats   StatsRecomputer
}

func NewReviewController(reviews ReviewStore, movies MovieStore, stats StatsRecomputer) *ReviewController {
	return &ReviewController{Reviews: reviews, Movies: movies, Stats: stats}
}

// recompute refreshes the cached movie and user aggregates. Failures are
// logged, never surfaced: the review write already committed.
func (r *ReviewController) recompute(ctx context.Context, movieID, userID bson.ObjectID) {
	if err := r.Stats.RecomputeMovieStats(ctx, movieID); err != nil {
		log.Println("movie stats recompute failed:", err)
	}
	if err := r.Stats.RecomputeUserStats(ctx, userID); err != nil {
		log.Println("user stats recompute failed:", err)
	}
}

func parseReviewFilter(c *gin.Context) (models.ReviewFilter, bool) {
	filter := models.ReviewFilter{}
	filter.SortBy, filter.SortOrder = sortParams(c, "createdAt", "desc")

	for _, raw := range c.QueryArray("rating") {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > 5 {
			utils.Fail(c, http.StatusBadRequest, "Rating must be between 1 and 5")
			return filter, false
		}
		filter.Rating = append(filter.Rating, n)
	}
	return filter, true
}

func (r *ReviewController) GetMovieReviews(c *gin.Context) {
	ctx, cancel := requestTimeout(c)
	defer cancel()

	movieID, ok := objectIDParam(c, "id")
	if !ok {
		return
	}

	movie, err := r.Movies.FindMovieByID(ctx, movieID)
	if err != nil {
		respondStoreError(c, err, "Movie not found", "")
		return
	}

	filter, ok := parseReviewFilter(c)
	if !ok {
		return
	}
	filter.Movie = movieID
	page, ok := parsePageQuery(c, 10)
	if !ok {
		return
	}

	reviews, total, err := r.Reviews.ListReviews(ctx, filter, page)
	if err != nil {
		log.Println(err)
		utils.Fail(c, http.StatusInternalServerError, "Unable to fetch reviews")
		return
	}

	stats, err := r.Reviews.MovieReviewStats(ctx, movieID)
	if err != nil {
		log.Println(err)
		utils.Fail(c, http.StatusInternalServerError, "Unable to fetch review statistics")
		return
	}

	utils.OK(c, http.StatusOK, "", gin.H{
		"reviews": reviews,
		"movieInfo": gin.H{
			"_id":   movie.ID,
			"title": movie.Title,
		},
		"statistics": stats,
		"pagination": models.NewPagination(page.Page, page.Limit, total),
	})
}

func (r *ReviewController) CreateReview(c *gin.Context) {
	ctx, cancel := requestTimeout(c)
	defer cancel()

	userID, _, err := actingUser(c)
	if err != nil {
		utils.Fail(c, http.StatusUnauthorized, "Authentication required")
		return
	}
	movieID, ok := objectIDParam(c, "id")
	if !ok {
		return
	}

	var input models.ReviewInput
	if !bindAndValidate(c, &input) {
		return
	}

	if _, err := r.Movies.FindMovieByID(ctx, movieID); err != nil {
		respondStoreError(c, err, "Movie not found", "")
		return
	}

	if _, err := r.Reviews.FindUserReview(ctx, userID, movieID); err == nil {
		utils.Fail(c, http.StatusBadRequest, "You have already reviewed this movie")
		return
	}

	isRecommended := input.Rating >= 4
	if input.IsRecommended != nil {
		isRecommended = *input.IsRecommended
	}

	review, err := r.Reviews.InsertReview(ctx, models.Review{
		User:          userID,
		Movie:         movieID,
		Rating:        input.Rating,
		ReviewText:    input.ReviewText,
		Title:         input.Title,
		IsRecommended: isRecommended,
		IsSpoiler:     input.IsSpoiler,
	})
	if err != nil {
		respondStoreError(c, err, "Movie not found", "You have already reviewed this movie")
		return
	}

	r.recompute(ctx, movieID, userID)

	utils.OK(c, http.StatusCreated, "Review created successfully", gin.H{"review": review})
}

func (r *ReviewController) GetReview(c *gin.Context) {
	ctx, cancel := requestTimeout(c)
	defer cancel()

	movieID, ok := objectIDParam(c, "id")
	if !ok {
		return
	}
	reviewID, ok := objectIDParam(c, "reviewId")
	if !ok {
		return
	}

	review, err := r.Reviews.FindReviewByID(ctx, reviewID, movieID)
	if err != nil {
		respondStoreError(c, err, "Review not found", "")
		return
	}

	utils.OK(c, http.StatusOK, "", gin.H{"review": review})
}

func (r *ReviewController) UpdateReview(c *gin.Context) {
	ctx, cancel := requestTimeout(c)
	defer cancel()

	userID, isAdmin, err := actingUser(c)
	if err != nil {
		utils.Fail(c, http.StatusUnauthorized, "Authentication required")
		return
	}
	movieID, ok := objectIDParam(c, "id")
	if !ok {
		return
	}
	reviewID, ok := objectIDParam(c, "reviewId")
	if !ok {
		return
	}

	var input models.ReviewUpdate
	if !bindAndValidate(c, &input) {
		return
	}

	existing, err := r.Reviews.FindReviewByID(ctx, reviewID, movieID)
	if err != nil {
		respondStoreError(c, err, "Review not found", "")
		return
	}
	if existing.User != userID && !isAdmin {
		utils.Fail(c, http.StatusForbidden, "You can only update your own reviews")
		return
	}

	review, err := r.Reviews.UpdateReview(ctx, reviewID, input)
	if err != nil {
		respondStoreError(c, err, "Review not found", "")
		return
	}

	if input.Rating != nil || input.IsRecommended != nil {
		r.recompute(ctx, movieID, existing.User)
	}

	utils.OK(c, http.StatusOK, "Review updated successfully", gin.H{"review": review})
}

func (r *ReviewController) DeleteReview(c *gin.Context) {
	ctx, cancel := requestTimeout(c)
	defer cancel()

	userID, isAdmin, err := actingUser(c)
	if err != nil {
		utils.Fail(c, http.StatusUnauthorized, "Authentication required")
		return
	}
	movieID, ok := objectIDParam(c, "id")
	if !ok {
		return
	}
	reviewID, ok := objectIDParam(c, "reviewId")
	if !ok {
		return
	}

	existing, err := r.Reviews.FindReviewByID(ctx, reviewID, movieID)
	if err != nil {
		respondStoreError(c, err, "Review not found", "")
		return
	}
	if existing.User != userID && !isAdmin {
		utils.Fail(c, http.StatusForbidden, "You can only delete your own reviews")
		return
	}

	if err := r.Reviews.SoftDeleteReview(ctx, reviewID); err != nil {
		respondStoreError(c, err, "Review not found", "")
		return
	}

	r.recompute(ctx, movieID, existing.User)

	utils.OK(c, http.StatusOK, "Review deleted successfully", nil)
}

func (r *ReviewController) MarkHelpful(c *gin.Context) {
	ctx, cancel := requestTimeout(c)
	defer cancel()

	userID, _, err := actingUser(c)
	if err != nil {
		utils.Fail(c, http.StatusUnauthorized, "Authentication required")
		return
	}
	movieID, ok := objectIDParam(c, "id")
	if !ok {
		return
	}
	reviewID, ok := objectIDParam(c, "reviewId")
	if !ok {
		return
	}

	var input struct {
		IsHelpful *bool `json:"isHelpful"`
	}
	if !bindAndValidate(c, &input) {
		return
	}
	if input.IsHelpful == nil {
		utils.Fail(c, http.StatusBadRequest, "isHelpful is required")
		return
	}

	existing, err := r.Reviews.FindReviewByID(ctx, reviewID, movieID)
	if err != nil {
		respondStoreError(c, err, "Review not found", "")
		return
	}
	if existing.User == userID {
		utils.Fail(c, http.StatusBadRequest, "You cannot vote on your own review")
		return
	}

	review, err := r.Reviews.MarkHelpful(ctx, reviewID, *input.IsHelpful)
	if err != nil {
		respondStoreError(c, err, "Review not found", "")
		return
	}

	utils.OK(c, http.StatusOK, "Vote recorded", gin.H{
		"helpfulVotes":     review.HelpfulVotes,
		"totalVotes":       review.TotalVotes,
		"helpfulnessRatio": review.HelpfulnessRatio(),
	})
}

// GetMyReview returns the caller's own review of a movie, if any.
func (r *ReviewController) GetMyReview(c *gin.Context) {
	ctx, cancel := requestTimeout(c)
	defer cancel()

	userID, _, err := actingUser(c)
	if err != nil {
		utils.Fail(c, http.StatusUnauthorized, "Authentication required")
		return
	}
	movieID, ok := objectIDParam(c, "id")
	if !ok {
		return
	}

	review, err := r.Reviews.FindUserReview(ctx, userID, movieID)
	if err != nil {
		respondStoreError(c, err, "You have not reviewed this movie", "")
		return
	}

	utils.OK(c, http.StatusOK, "", gin.H{"review": review})
}
