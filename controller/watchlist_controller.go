package controller

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/v2/bson"

	"moviereviews/models"
	"moviereviews/store"
	"moviereviews/utils"
)

type WatchlistController struct {
	Watchlist WatchlistStore
	Movies    MovieStore
}

func NewWatchlistController(watchlist WatchlistStore, movies MovieStore) *WatchlistController {
	return &WatchlistController{Watchlist: watchlist, Movies: movies}
}

// watchlistOwner resolves the :id path parameter and enforces that only
// the owner or an admin may touch the list.
func watchlistOwner(c *gin.Context) (bson.ObjectID, bool) {
	actorID, isAdmin, err := actingUser(c)
	if err != nil {
		utils.Fail(c, http.StatusUnauthorized, "Authentication required")
		return bson.ObjectID{}, false
	}
	userID, ok := objectIDParam(c, "id")
	if !ok {
		return bson.ObjectID{}, false
	}
	if actorID != userID && !isAdmin {
		utils.Fail(c, http.StatusForbidden, "You can only access your own watchlist")
		return bson.ObjectID{}, false
	}
	return userID, true
}

func parseWatchlistFilter(c *gin.Context) (models.WatchlistFilter, bool) {
	filter := models.WatchlistFilter{}
	filter.SortBy, filter.SortOrder = sortParams(c, "dateAdded", "desc")

	for _, status := range c.QueryArray("status") {
		if !models.IsValidWatchlistStatus(status) {
			utils.Fail(c, http.StatusBadRequest, "Invalid status")
			return filter, false
		}
		filter.Status = append(filter.Status, status)
	}
	if priority := c.Query("priority"); priority != "" {
		if !models.IsValidPriority(priority) {
			utils.Fail(c, http.StatusBadRequest, "Invalid priority")
			return filter, false
		}
		filter.Priority = priority
	}
	for _, genre := range c.QueryArray("genre") {
		if !models.IsValidGenre(genre) {
			utils.Fail(c, http.StatusBadRequest, "Invalid genre")
			return filter, false
		}
		filter.Genre = append(filter.Genre, genre)
	}
	return filter, true
}

func (w *WatchlistController) GetWatchlist(c *gin.Context) {
	ctx, cancel := requestTimeout(c)
	defer cancel()

	userID, ok := watchlistOwner(c)
	if !ok {
		return
	}
	filter, ok := parseWatchlistFilter(c)
	if !ok {
		return
	}
	page, ok := parsePageQuery(c, 20)
	if !ok {
		return
	}

	entries, total, err := w.Watchlist.ListWatchlist(ctx, userID, filter, page)
	if err != nil {
		log.Println(err)
		utils.Fail(c, http.StatusInternalServerError, "Unable to fetch watchlist")
		return
	}

	all, err := w.Watchlist.AllWatchlistEntries(ctx, userID)
	if err != nil {
		log.Println(err)
		utils.Fail(c, http.StatusInternalServerError, "Unable to fetch watchlist statistics")
		return
	}

	utils.OK(c, http.StatusOK, "", gin.H{
		"watchlist":  entries,
		"statistics": store.ComputeWatchlistStats(all),
		"pagination": models.NewPagination(page.Page, page.Limit, total),
	})
}

func (w *WatchlistController) AddToWatchlist(c *gin.Context) {
	ctx, cancel := requestTimeout(c)
	defer cancel()

	userID, ok := watchlistOwner(c)
	if !ok {
		return
	}

	var input models.WatchlistAddInput
	if !bindAndValidate(c, &input) {
		return
	}
	movieID, _ := bson.ObjectIDFromHex(input.MovieID)

	if _, err := w.Movies.FindMovieByID(ctx, movieID); err != nil {
		respondStoreError(c, err, "Movie not found", "")
		return
	}
	if _, err := w.Watchlist.FindWatchlistItem(ctx, userID, movieID); err == nil {
		utils.Fail(c, http.StatusBadRequest, "Movie is already in your watchlist")
		return
	}

	status := input.Status
	if status == "" {
		status = models.StatusWantToWatch
	}
	priority := input.Priority
	if priority == "" {
		priority = models.PriorityMedium
	}

	item, err := w.Watchlist.AddWatchlistItem(ctx, models.WatchlistItem{
		User:           userID,
		Movie:          movieID,
		Status:         status,
		Priority:       priority,
		Notes:          input.Notes,
		PersonalRating: input.PersonalRating,
		IsPrivate:      input.IsPrivate,
		Tags:           input.Tags,
	})
	if err != nil {
		respondStoreError(c, err, "Movie not found", "Movie is already in your watchlist")
		return
	}

	utils.OK(c, http.StatusCreated, "Movie added to watchlist", gin.H{"item": item})
}

func (w *WatchlistController) GetWatchlistItem(c *gin.Context) {
	ctx, cancel := requestTimeout(c)
	defer cancel()

	userID, ok := watchlistOwner(c)
	if !ok {
		return
	}
	movieID, ok := objectIDParam(c, "movieId")
	if !ok {
		return
	}

	entry, err := w.Watchlist.FindWatchlistEntry(ctx, userID, movieID)
	if err != nil {
		respondStoreError(c, err, "Movie not found in watchlist", "")
		return
	}

	utils.OK(c, http.StatusOK, "", gin.H{"item": entry})
}

func (w *WatchlistController) UpdateWatchlistItem(c *gin.Context) {
	ctx, cancel := requestTimeout(c)
	defer cancel()

	userID, ok := watchlistOwner(c)
	if !ok {
		return
	}
	movieID, ok := objectIDParam(c, "movieId")
	if !ok {
		return
	}

	var input models.WatchlistUpdate
	if !bindAndValidate(c, &input) {
		return
	}

	item, err := w.Watchlist.FindWatchlistItem(ctx, userID, movieID)
	if err != nil {
		respondStoreError(c, err, "Movie not found in watchlist", "")
		return
	}

	item.Apply(input, time.Now().UTC())
	if err := w.Watchlist.SaveWatchlistItem(ctx, item); err != nil {
		respondStoreError(c, err, "Movie not found in watchlist", "")
		return
	}

	utils.OK(c, http.StatusOK, "Watchlist item updated", gin.H{"item": item})
}

func (w *WatchlistController) RemoveFromWatchlist(c *gin.Context) {
	ctx, cancel := requestTimeout(c)
	defer cancel()

	userID, ok := watchlistOwner(c)
	if !ok {
		return
	}
	movieID, ok := objectIDParam(c, "movieId")
	if !ok {
		return
	}

	if err := w.Watchlist.RemoveWatchlistItem(ctx, userID, movieID); err != nil {
		respondStoreError(c, err, "Movie not found in watchlist", "")
		return
	}

	utils.OK(c, http.StatusOK, "Movie removed from watchlist", nil)
}

func (w *WatchlistController) GetWatchlistStats(c *gin.Context) {
	ctx, cancel := requestTimeout(c)
	defer cancel()

	userID, ok := watchlistOwner(c)
	if !ok {
		return
	}

	all, err := w.Watchlist.AllWatchlistEntries(ctx, userID)
	if err != nil {
		log.Println(err)
		utils.Fail(c, http.StatusInternalServerError, "Unable to fetch watchlist statistics")
		return
	}

	utils.OK(c, http.StatusOK, "", store.ComputeWatchlistStats(all))
}

// CheckMovie reports whether a movie is on the list without a 404 so the
// client can toggle its add/remove button in one round trip.
func (w *WatchlistController) CheckMovie(c *gin.Context) {
	ctx, cancel := requestTimeout(c)
	defer cancel()

	userID, ok := watchlistOwner(c)
	if !ok {
		return
	}
	movieID, ok := objectIDParam(c, "movieId")
	if !ok {
		return
	}

	item, err := w.Watchlist.FindWatchlistItem(ctx, userID, movieID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			utils.OK(c, http.StatusOK, "", gin.H{"inWatchlist": false, "item": nil})
			return
		}
		respondStoreError(c, err, "Movie not found in watchlist", "")
		return
	}

	utils.OK(c, http.StatusOK, "", gin.H{
		"inWatchlist": true,
		"item": gin.H{
			"status":    item.Status,
			"priority":  item.Priority,
			"dateAdded": item.DateAdded,
		},
	})
}

// BulkUpdate applies per-movie updates in order, skipping movies that are
// not on the list, and reports how many actually changed.
func (w *WatchlistController) BulkUpdate(c *gin.Context) {
	ctx, cancel := requestTimeout(c)
	defer cancel()

	userID, ok := watchlistOwner(c)
	if !ok {
		return
	}

	var input models.BulkUpdateInput
	if !bindAndValidate(c, &input) {
		return
	}

	now := time.Now().UTC()
	updated := 0
	for _, bulkItem := range input.Items {
		movieID, _ := bson.ObjectIDFromHex(bulkItem.MovieID)
		item, err := w.Watchlist.FindWatchlistItem(ctx, userID, movieID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				continue
			}
			respondStoreError(c, err, "", "")
			return
		}
		item.Apply(bulkItem.WatchlistUpdate, now)
		if err := w.Watchlist.SaveWatchlistItem(ctx, item); err != nil {
			respondStoreError(c, err, "Movie not found in watchlist", "")
			return
		}
		updated++
	}

	utils.OK(c, http.StatusOK, "Watchlist updated", gin.H{
		"updatedCount":   updated,
		"totalRequested": len(input.Items),
	})
}

// Recommendations suggests catalog movies matching the taste profile
// derived from the user's watchlist.
func (w *WatchlistController) Recommendations(c *gin.Context) {
	ctx, cancel := requestTimeout(c)
	defer cancel()

	userID, ok := watchlistOwner(c)
	if !ok {
		return
	}

	limit := 10
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > 100 {
			utils.Fail(c, http.StatusBadRequest, "Limit must be between 1 and 100")
			return
		}
		limit = n
	}

	all, err := w.Watchlist.AllWatchlistEntries(ctx, userID)
	if err != nil {
		log.Println(err)
		utils.Fail(c, http.StatusInternalServerError, "Unable to fetch recommendations")
		return
	}
	if len(all) == 0 {
		utils.OK(c, http.StatusOK, "Add movies to your watchlist to get personalized recommendations", gin.H{
			"recommendations": []models.Movie{},
		})
		return
	}

	prefs := store.AnalyzePreferences(all)
	exclude := make([]bson.ObjectID, 0, len(all))
	for _, entry := range all {
		exclude = append(exclude, entry.WatchlistItem.Movie)
	}

	movies, err := w.Watchlist.RecommendMovies(ctx, prefs, exclude, limit)
	if err != nil {
		log.Println(err)
		utils.Fail(c, http.StatusInternalServerError, "Unable to fetch recommendations")
		return
	}

	utils.OK(c, http.StatusOK, "", gin.H{
		"recommendations": movies,
		"basedOn": gin.H{
			"topGenres":               prefs.TopGenres,
			"topDirectors":            prefs.TopDirectors,
			"averageRatingPreference": store.Round1(prefs.AvgRatingPreference),
		},
	})
}
