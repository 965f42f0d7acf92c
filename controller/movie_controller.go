package controller

import (
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/v2/bson"

	"moviereviews/models"
	"moviereviews/utils"
)

type MovieController struct {
	Movies MovieStore
}

func NewMovieController(movies MovieStore) *MovieController {
	return &MovieController{Movies: movies}
}

// parseMovieFilter reads the listing filters; invalid enum or numeric
// query values short-circuit with a 400 before any lookup.
func parseMovieFilter(c *gin.Context) (models.MovieFilter, bool) {
	filter := models.MovieFilter{}
	filter.SortBy, filter.SortOrder = sortParams(c, "createdAt", "desc")

	for _, genre := range c.QueryArray("genre") {
		if !models.IsValidGenre(genre) {
			utils.Fail(c, http.StatusBadRequest, "Invalid genre")
			return filter, false
		}
		filter.Genre = append(filter.Genre, genre)
	}

	intQuery := func(name string) (int, bool) {
		raw := c.Query(name)
		if raw == "" {
			return 0, true
		}
		n, err := strconv.Atoi(raw)
		if err != nil {
			utils.Fail(c, http.StatusBadRequest, "Invalid "+name)
			return 0, false
		}
		return n, true
	}
	floatQuery := func(name string) (float64, bool) {
		raw := c.Query(name)
		if raw == "" {
			return 0, true
		}
		f, err := strconv.ParseFloat(raw, 64)
		if err != nil || f < 0 || f > 5 {
			utils.Fail(c, http.StatusBadRequest, "Invalid "+name)
			return 0, false
		}
		return f, true
	}

	var ok bool
	if filter.ReleaseYear, ok = intQuery("releaseYear"); !ok {
		return filter, false
	}
	if filter.YearRange.Min, ok = intQuery("minYear"); !ok {
		return filter, false
	}
	if filter.YearRange.Max, ok = intQuery("maxYear"); !ok {
		return filter, false
	}
	if filter.MinRating, ok = floatQuery("minRating"); !ok {
		return filter, false
	}
	if filter.MaxRating, ok = floatQuery("maxRating"); !ok {
		return filter, false
	}

	filter.Director = c.Query("director")
	filter.Search = c.Query("search")
	return filter, true
}

func (m *MovieController) GetMovies(c *gin.Context) {
	ctx, cancel := requestTimeout(c)
	defer cancel()

	filter, ok := parseMovieFilter(c)
	if !ok {
		return
	}
	page, ok := parsePageQuery(c, 12)
	if !ok {
		return
	}

	movies, total, err := m.Movies.ListMovies(ctx, filter, page)
	if err != nil {
		log.Println("Find error:", err)
		utils.Fail(c, http.StatusInternalServerError, "Unable to fetch movies")
		return
	}

	utils.OK(c, http.StatusOK, "", gin.H{
		"movies":     movies,
		"pagination": models.NewPagination(page.Page, page.Limit, total),
	})
}

func (m *MovieController) GetMovie(c *gin.Context) {
	ctx, cancel := requestTimeout(c)
	defer cancel()

	movieID, ok := objectIDParam(c, "id")
	if !ok {
		return
	}

	movie, err := m.Movies.FindMovieByID(ctx, movieID)
	if err != nil {
		respondStoreError(c, err, "Movie not found", "")
		return
	}

	utils.OK(c, http.StatusOK, "", gin.H{"movie": movie})
}

func (m *MovieController) AddMovie(c *gin.Context) {
	ctx, cancel := requestTimeout(c)
	defer cancel()

	userID, _, err := actingUser(c)
	if err != nil {
		utils.Fail(c, http.StatusUnauthorized, "Authentication required")
		return
	}

	var input models.MovieInput
	if !bindAndValidate(c, &input) {
		return
	}

	exists, err := m.Movies.MovieTitleYearExists(ctx, input.Title, input.ReleaseYear, bson.ObjectID{})
	if err != nil {
		log.Println(err)
		utils.Fail(c, http.StatusInternalServerError, "Failed to check existing movie")
		return
	}
	if exists {
		utils.Fail(c, http.StatusBadRequest, "A movie with this title and release year already exists")
		return
	}

	movie, err := m.Movies.InsertMovie(ctx, models.Movie{
		Title:       strings.TrimSpace(input.Title),
		Genre:       input.Genre,
		ReleaseYear: input.ReleaseYear,
		Director:    strings.TrimSpace(input.Director),
		Cast:        input.Cast,
		Synopsis:    input.Synopsis,
		PosterURL:   input.PosterURL,
		TrailerURL:  input.TrailerURL,
		Duration:    input.Duration,
		Language:    input.Language,
		Country:     input.Country,
		Budget:      input.Budget,
		BoxOffice:   input.BoxOffice,
		Rating:      input.Rating,
		AddedBy:     userID,
	})
	if err != nil {
		respondStoreError(c, err, "Movie not found", "A movie with this title and release year already exists")
		return
	}

	utils.OK(c, http.StatusCreated, "Movie created successfully", gin.H{"movie": movie})
}

func (m *MovieController) UpdateMovie(c *gin.Context) {
	ctx, cancel := requestTimeout(c)
	defer cancel()

	movieID, ok := objectIDParam(c, "id")
	if !ok {
		return
	}

	var input models.MovieUpdate
	if !bindAndValidate(c, &input) {
		return
	}

	existing, err := m.Movies.FindMovieByID(ctx, movieID)
	if err != nil {
		respondStoreError(c, err, "Movie not found", "")
		return
	}

	if input.Title != nil || input.ReleaseYear != nil {
		title := existing.Title
		if input.Title != nil {
			title = *input.Title
		}
		year := existing.ReleaseYear
		if input.ReleaseYear != nil {
			year = *input.ReleaseYear
		}
		exists, err := m.Movies.MovieTitleYearExists(ctx, title, year, movieID)
		if err != nil {
			log.Println(err)
			utils.Fail(c, http.StatusInternalServerError, "Failed to check existing movie")
			return
		}
		if exists {
			utils.Fail(c, http.StatusBadRequest, "A movie with this title and release year already exists")
			return
		}
	}

	movie, err := m.Movies.UpdateMovie(ctx, movieID, input)
	if err != nil {
		respondStoreError(c, err, "Movie not found", "A movie with this title and release year already exists")
		return
	}

	utils.OK(c, http.StatusOK, "Movie updated successfully", gin.H{"movie": movie})
}

func (m *MovieController) DeleteMovie(c *gin.Context) {
	ctx, cancel := requestTimeout(c)
	defer cancel()

	movieID, ok := objectIDParam(c, "id")
	if !ok {
		return
	}

	if err := m.Movies.SoftDeleteMovie(ctx, movieID); err != nil {
		respondStoreError(c, err, "Movie not found", "")
		return
	}

	utils.OK(c, http.StatusOK, "Movie deleted successfully", nil)
}

func (m *MovieController) GetMovieStats(c *gin.Context) {
	ctx, cancel := requestTimeout(c)
	defer cancel()

	stats, err := m.Movies.CatalogStats(ctx)
	if err != nil {
		log.Println(err)
		utils.Fail(c, http.StatusInternalServerError, "Unable to fetch movie statistics")
		return
	}

	utils.OK(c, http.StatusOK, "", stats)
}

func (m *MovieController) SearchMovies(c *gin.Context) {
	ctx, cancel := requestTimeout(c)
	defer cancel()

	q := strings.TrimSpace(c.Query("q"))
	if q == "" {
		utils.Fail(c, http.StatusBadRequest, "Search query is required")
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

	movies, err := m.Movies.SearchMovies(ctx, q, limit)
	if err != nil {
		log.Println(err)
		utils.Fail(c, http.StatusInternalServerError, "Unable to search movies")
		return
	}

	utils.OK(c, http.StatusOK, "", gin.H{
		"movies": movies,
		"query":  q,
		"total":  len(movies),
	})
}
