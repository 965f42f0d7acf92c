package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"moviereviews/models"
)

func TestRound1(t *testing.T) {
	assert.Equal(t, 3.7, Round1(3.666666))
	assert.Equal(t, 3.5, Round1(3.45))
	assert.Equal(t, 4.0, Round1(4.0))
	assert.Equal(t, 0.0, Round1(0))
}

func TestSummarizeRatingsEmpty(t *testing.T) {
	stats := SummarizeRatings(nil)
	assert.Equal(t, 0, stats.TotalReviews)
	assert.Equal(t, 0.0, stats.AverageRating)
	assert.Equal(t, models.RatingDistribution{}, stats.RatingDistribution)
}

func TestSummarizeRatings(t *testing.T) {
	stats := SummarizeRatings([]int{4, 4, 5, 2})

	assert.Equal(t, 4, stats.TotalReviews)
	assert.Equal(t, 3.8, stats.AverageRating) // 15/4 = 3.75 rounds to 3.8
	assert.Equal(t, models.RatingDistribution{Two: 1, Four: 2, Five: 1}, stats.RatingDistribution)
}

func TestSummarizeRatingsSingle(t *testing.T) {
	stats := SummarizeRatings([]int{4})
	assert.Equal(t, 1, stats.TotalReviews)
	assert.Equal(t, 4.0, stats.AverageRating)
	assert.Equal(t, 1, stats.RatingDistribution.Count(4))
}

func TestTallyCountsKeepsFirstEncounterOrder(t *testing.T) {
	counts := TallyCounts([]string{"Drama", "Action", "Drama", "Comedy", "Action", "Drama"})

	assert.Equal(t, []NameCount{
		{Name: "Drama", Count: 3},
		{Name: "Action", Count: 2},
		{Name: "Comedy", Count: 1},
	}, counts)
}

func TestTopCounts(t *testing.T) {
	values := []string{"Action", "Drama", "Drama", "Comedy", "Comedy", "Comedy"}

	top := TopCounts(values, 2)
	assert.Equal(t, []NameCount{
		{Name: "Comedy", Count: 3},
		{Name: "Drama", Count: 2},
	}, top)

	// n larger than distinct values returns them all
	assert.Len(t, TopCounts(values, 10), 3)
}

func TestTopCountsTiesKeepFirstEncounterOrder(t *testing.T) {
	top := TopCounts([]string{"Action", "Drama", "Action", "Drama"}, 2)
	assert.Equal(t, []NameCount{
		{Name: "Action", Count: 2},
		{Name: "Drama", Count: 2},
	}, top)
}

func watchlistEntry(status string, rating int, duration int, genres ...string) models.WatchlistEntry {
	return models.WatchlistEntry{
		WatchlistItem: models.WatchlistItem{
			Status:         status,
			PersonalRating: rating,
		},
		MovieDetails: models.MovieSummary{
			Genre:    genres,
			Duration: duration,
		},
	}
}

func TestComputeWatchlistStatsEmpty(t *testing.T) {
	stats := ComputeWatchlistStats(nil)
	assert.Equal(t, 0, stats.TotalMovies)
	assert.Equal(t, 0.0, stats.AveragePersonalRating)
	assert.NotNil(t, stats.FavoriteGenres)
	assert.Empty(t, stats.FavoriteGenres)
}

func TestComputeWatchlistStats(t *testing.T) {
	entries := []models.WatchlistEntry{
		watchlistEntry(models.StatusWatched, 5, 120, "Action", "Sci-Fi"),
		watchlistEntry(models.StatusWatched, 4, 95, "Action"),
		watchlistEntry(models.StatusWantToWatch, 0, 140, "Drama"),
		watchlistEntry(models.StatusWatching, 0, 60, "Action"),
		watchlistEntry(models.StatusOnHold, 3, 100, "Comedy"),
		watchlistEntry(models.StatusDropped, 0, 90, "Horror"),
	}

	stats := ComputeWatchlistStats(entries)

	assert.Equal(t, 6, stats.TotalMovies)
	assert.Equal(t, 2, stats.WatchedMovies)
	assert.Equal(t, 1, stats.WantToWatch)
	assert.Equal(t, 1, stats.CurrentlyWatching)
	assert.Equal(t, 1, stats.OnHold)
	assert.Equal(t, 1, stats.Dropped)

	// Only watched movies count toward watch time.
	assert.Equal(t, 215, stats.TotalWatchTime)

	// Unrated items (personalRating 0) are excluded from the average.
	assert.Equal(t, 4.0, stats.AveragePersonalRating)

	assert.Equal(t, "Action", stats.FavoriteGenres[0])
}

func TestAnalyzePreferences(t *testing.T) {
	entries := []models.WatchlistEntry{
		{MovieDetails: models.MovieSummary{Genre: []string{"Action", "Sci-Fi"}, Director: "Someone", AverageRating: 4.4}},
		{MovieDetails: models.MovieSummary{Genre: []string{"Action"}, Director: "Someone", AverageRating: 4.1}},
		{MovieDetails: models.MovieSummary{Genre: []string{"Drama"}, Director: "Other", AverageRating: 3.0}},
	}

	prefs := AnalyzePreferences(entries)

	assert.Equal(t, []string{"Action", "Sci-Fi", "Drama"}, prefs.TopGenres)
	assert.Equal(t, []string{"Someone", "Other"}, prefs.TopDirectors)
	assert.InDelta(t, 11.5/3, prefs.AvgRatingPreference, 1e-9)
}

func TestAnalyzePreferencesEmpty(t *testing.T) {
	prefs := AnalyzePreferences(nil)
	assert.Empty(t, prefs.TopGenres)
	assert.Equal(t, 0.0, prefs.AvgRatingPreference)
}

func TestSortStage(t *testing.T) {
	allowed := map[string]bool{"title": true, "averageRating": true}

	stage := sortStage("title", "asc", "createdAt", allowed)
	assert.Equal(t, "title", stage[0].Key)
	assert.Equal(t, 1, stage[0].Value)

	// Unknown fields fall back to the default, descending.
	stage = sortStage("password", "desc", "createdAt", allowed)
	assert.Equal(t, "createdAt", stage[0].Key)
	assert.Equal(t, -1, stage[0].Value)
}

func TestWatchlistEntryGenresFeedStats(t *testing.T) {
	// Watched date bookkeeping belongs to the model; make sure entries
	// stamped by Apply still tally as watched here.
	now := time.Now().UTC()
	item := models.WatchlistItem{Status: models.StatusWantToWatch}
	status := models.StatusWatched
	item.Apply(models.WatchlistUpdate{Status: &status}, now)

	stats := ComputeWatchlistStats([]models.WatchlistEntry{{
		WatchlistItem: item,
		MovieDetails:  models.MovieSummary{Duration: 130},
	}})
	assert.Equal(t, 1, stats.WatchedMovies)
	assert.Equal(t, 130, stats.TotalWatchTime)
}
