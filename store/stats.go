package store

import (
	"math"

	"moviereviews/models"
)

// Round1 rounds to one decimal, the precision every stored average uses.
func Round1(x float64) float64 {
	return math.Round(x*10) / 10
}

// SummarizeRatings computes the derived statistics for a set of active
// review ratings. An empty set yields zeroes, not an error.
func SummarizeRatings(ratings []int) models.ReviewStats {
	stats := models.ReviewStats{}
	if len(ratings) == 0 {
		return stats
	}

	sum := 0
	for _, r := range ratings {
		sum += r
		stats.RatingDistribution.Incr(r)
	}
	stats.TotalReviews = len(ratings)
	stats.AverageRating = Round1(float64(sum) / float64(len(ratings)))
	return stats
}

// NameCount pairs a tallied name (genre, director) with its occurrence count.
type NameCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// TallyCounts counts occurrences preserving first-encounter order.
func TallyCounts(values []string) []NameCount {
	index := make(map[string]int, len(values))
	counts := make([]NameCount, 0, len(values))
	for _, v := range values {
		if i, ok := index[v]; ok {
			counts[i].Count++
			continue
		}
		index[v] = len(counts)
		counts = append(counts, NameCount{Name: v, Count: 1})
	}
	return counts
}

// TopCounts returns the n most frequent values with their counts. The
// sort is stable, so ties keep first-encounter order.
func TopCounts(values []string, n int) []NameCount {
	counts := TallyCounts(values)
	// insertion sort by descending count; stable and the lists are tiny
	for i := 1; i < len(counts); i++ {
		for j := i; j > 0 && counts[j].Count > counts[j-1].Count; j-- {
			counts[j], counts[j-1] = counts[j-1], counts[j]
		}
	}
	if n > len(counts) {
		n = len(counts)
	}
	return counts[:n]
}

func TopNames(values []string, n int) []string {
	top := TopCounts(values, n)
	names := make([]string, len(top))
	for i, entry := range top {
		names[i] = entry.Name
	}
	return names
}

// ComputeWatchlistStats derives on-demand statistics over a user's full
// watchlist joined with active movies.
func ComputeWatchlistStats(entries []models.WatchlistEntry) models.WatchlistStats {
	stats := models.WatchlistStats{FavoriteGenres: []string{}}

	ratingSum, ratingCount := 0, 0
	var genres []string

	for _, entry := range entries {
		stats.TotalMovies++
		switch entry.Status {
		case models.StatusWatched:
			stats.WatchedMovies++
			stats.TotalWatchTime += entry.MovieDetails.Duration
		case models.StatusWantToWatch:
			stats.WantToWatch++
		case models.StatusWatching:
			stats.CurrentlyWatching++
		case models.StatusOnHold:
			stats.OnHold++
		case models.StatusDropped:
			stats.Dropped++
		}
		if entry.PersonalRating > 0 {
			ratingSum += entry.PersonalRating
			ratingCount++
		}
		genres = append(genres, entry.MovieDetails.Genre...)
	}

	if ratingCount > 0 {
		stats.AveragePersonalRating = Round1(float64(ratingSum) / float64(ratingCount))
	}
	stats.FavoriteGenres = TopNames(genres, 5)
	return stats
}

// Preferences is the taste profile derived from a watchlist, used to
// pick recommendation candidates.
type Preferences struct {
	TopGenres           []string `json:"favoriteGenres"`
	TopDirectors        []string `json:"favoriteDirectors"`
	AvgRatingPreference float64  `json:"averageRatingPreference"`
}

// AnalyzePreferences tallies genre and director occurrences across the
// watchlisted movies and averages their ratings.
func AnalyzePreferences(entries []models.WatchlistEntry) Preferences {
	var genres, directors []string
	ratingSum := 0.0

	for _, entry := range entries {
		genres = append(genres, entry.MovieDetails.Genre...)
		directors = append(directors, entry.MovieDetails.Director)
		ratingSum += entry.MovieDetails.AverageRating
	}

	prefs := Preferences{
		TopGenres:    TopNames(genres, 3),
		TopDirectors: TopNames(directors, 2),
	}
	// Unrounded: the candidate threshold uses the exact mean, responses
	// round it for display.
	if len(entries) > 0 {
		prefs.AvgRatingPreference = ratingSum / float64(len(entries))
	}
	return prefs
}
