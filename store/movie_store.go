package store

import (
	"context"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"moviereviews/models"
)

func (s *Store) InsertMovie(ctx context.Context, movie models.Movie) (models.Movie, error) {
	now := time.Now()
	movie.IsActive = true
	movie.CreatedAt = now
	movie.UpdatedAt = now
	if movie.Cast == nil {
		movie.Cast = []models.CastMember{}
	}

	result, err := s.movies().InsertOne(ctx, movie)
	if err != nil {
		return models.Movie{}, translate(err)
	}
	movie.ID = result.InsertedID.(bson.ObjectID)
	return movie, nil
}

// FindMovieByID returns an active movie; soft-deleted movies read as not found.
func (s *Store) FindMovieByID(ctx context.Context, id bson.ObjectID) (models.Movie, error) {
	var movie models.Movie
	err := s.movies().FindOne(ctx, bson.M{"_id": id, "isActive": true}).Decode(&movie)
	return movie, translate(err)
}

// MovieTitleYearExists checks the catalog for an active duplicate of
// (title, releaseYear), optionally excluding one movie.
func (s *Store) MovieTitleYearExists(ctx context.Context, title string, year int, exclude bson.ObjectID) (bool, error) {
	query := bson.M{
		"title":       bson.M{"$regex": "^" + regexp.QuoteMeta(title) + "$", "$options": "i"},
		"releaseYear": year,
		"isActive":    true,
	}
	if !exclude.IsZero() {
		query["_id"] = bson.M{"$ne": exclude}
	}
	count, err := s.movies().CountDocuments(ctx, query)
	return count > 0, translate(err)
}

func (s *Store) UpdateMovie(ctx context.Context, id bson.ObjectID, input models.MovieUpdate) (models.Movie, error) {
	set := bson.M{"updatedAt": time.Now()}
	if input.Title != nil {
		set["title"] = *input.Title
	}
	if input.Genre != nil {
		set["genre"] = input.Genre
	}
	if input.ReleaseYear != nil {
		set["releaseYear"] = *input.ReleaseYear
	}
	if input.Director != nil {
		set["director"] = *input.Director
	}
	if input.Cast != nil {
		set["cast"] = input.Cast
	}
	if input.Synopsis != nil {
		set["synopsis"] = *input.Synopsis
	}
	if input.PosterURL != nil {
		set["posterUrl"] = *input.PosterURL
	}
	if input.TrailerURL != nil {
		set["trailerUrl"] = *input.TrailerURL
	}
	if input.Duration != nil {
		set["duration"] = *input.Duration
	}
	if input.Language != nil {
		set["language"] = *input.Language
	}
	if input.Country != nil {
		set["country"] = *input.Country
	}
	if input.Budget != nil {
		set["budget"] = *input.Budget
	}
	if input.BoxOffice != nil {
		set["boxOffice"] = *input.BoxOffice
	}
	if input.Rating != nil {
		set["rating"] = *input.Rating
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var movie models.Movie
	err := s.movies().FindOneAndUpdate(ctx, bson.M{"_id": id, "isActive": true}, bson.M{"$set": set}, opts).Decode(&movie)
	return movie, translate(err)
}

// SoftDeleteMovie flags the movie inactive; reviews referencing it stay
// addressable by ID.
func (s *Store) SoftDeleteMovie(ctx context.Context, id bson.ObjectID) error {
	update := bson.M{"$set": bson.M{"isActive": false, "updatedAt": time.Now()}}
	result, err := s.movies().UpdateOne(ctx, bson.M{"_id": id, "isActive": true}, update)
	if err != nil {
		return translate(err)
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

var movieSortFields = map[string]bool{
	"title":         true,
	"releaseYear":   true,
	"averageRating": true,
	"totalReviews":  true,
	"createdAt":     true,
}

// buildMovieQuery translates a MovieFilter into the Mongo query shared
// by the list and count round-trips. Only active movies are ever matched.
func buildMovieQuery(filter models.MovieFilter) bson.M {
	query := bson.M{"isActive": true}

	if len(filter.Genre) > 0 {
		query["genre"] = bson.M{"$in": filter.Genre}
	}
	if filter.ReleaseYear != 0 {
		query["releaseYear"] = filter.ReleaseYear
	} else if filter.YearRange.Min != 0 || filter.YearRange.Max != 0 {
		yearQuery := bson.M{}
		if filter.YearRange.Min != 0 {
			yearQuery["$gte"] = filter.YearRange.Min
		}
		if filter.YearRange.Max != 0 {
			yearQuery["$lte"] = filter.YearRange.Max
		}
		query["releaseYear"] = yearQuery
	}
	if filter.Director != "" {
		query["director"] = bson.M{"$regex": filter.Director, "$options": "i"}
	}
	if filter.MinRating != 0 || filter.MaxRating != 0 {
		ratingQuery := bson.M{}
		if filter.MinRating != 0 {
			ratingQuery["$gte"] = filter.MinRating
		}
		if filter.MaxRating != 0 {
			ratingQuery["$lte"] = filter.MaxRating
		}
		query["averageRating"] = ratingQuery
	}
	if filter.Search != "" {
		search := bson.M{"$regex": filter.Search, "$options": "i"}
		query["$or"] = []bson.M{
			{"title": search},
			{"director": search},
			{"cast.name": search},
			{"genre": search},
		}
	}
	return query
}

func (s *Store) ListMovies(ctx context.Context, filter models.MovieFilter, page models.PageQuery) ([]models.Movie, int64, error) {
	query := buildMovieQuery(filter)

	opts := options.Find().
		SetSort(sortStage(filter.SortBy, filter.SortOrder, "createdAt", movieSortFields)).
		SetSkip(int64(page.Skip())).
		SetLimit(int64(page.Limit))

	cursor, err := s.movies().Find(ctx, query, opts)
	if err != nil {
		return nil, 0, translate(err)
	}
	defer cursor.Close(ctx)

	movies := []models.Movie{}
	if err := cursor.All(ctx, &movies); err != nil {
		return nil, 0, translate(err)
	}

	total, err := s.movies().CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, translate(err)
	}
	return movies, total, nil
}

// SearchMovies is the lightweight free-text endpoint: substring match
// across title, director, cast names and genre, best rated first.
func (s *Store) SearchMovies(ctx context.Context, q string, limit int) ([]models.Movie, error) {
	query := buildMovieQuery(models.MovieFilter{Search: q})

	opts := options.Find().
		SetSort(bson.D{{Key: "averageRating", Value: -1}, {Key: "totalReviews", Value: -1}}).
		SetLimit(int64(limit))

	cursor, err := s.movies().Find(ctx, query, opts)
	if err != nil {
		return nil, translate(err)
	}
	defer cursor.Close(ctx)

	movies := []models.Movie{}
	if err := cursor.All(ctx, &movies); err != nil {
		return nil, translate(err)
	}
	return movies, nil
}

// CatalogOverview aggregates catalog-wide numbers for the stats endpoint.
type CatalogOverview struct {
	TotalMovies   int     `json:"totalMovies" bson:"totalMovies"`
	AverageRating float64 `json:"averageRating" bson:"averageRating"`
	TotalReviews  int     `json:"totalReviews" bson:"totalReviews"`
}

type CatalogStats struct {
	Overview           CatalogOverview `json:"overview"`
	GenreDistribution  map[string]int  `json:"genreDistribution"`
	TopRatedMovies     []models.Movie  `json:"topRatedMovies"`
	MostReviewedMovies []models.Movie  `json:"mostReviewedMovies"`
	RecentMovies       []models.Movie  `json:"recentMovies"`
}

func (s *Store) CatalogStats(ctx context.Context) (CatalogStats, error) {
	stats := CatalogStats{GenreDistribution: map[string]int{}}

	pipeline := []bson.M{
		{"$match": bson.M{"isActive": true}},
		{"$group": bson.M{
			"_id":           nil,
			"totalMovies":   bson.M{"$sum": 1},
			"averageRating": bson.M{"$avg": "$averageRating"},
			"totalReviews":  bson.M{"$sum": "$totalReviews"},
			"genres":        bson.M{"$push": "$genre"},
		}},
	}
	cursor, err := s.movies().Aggregate(ctx, pipeline)
	if err != nil {
		return stats, translate(err)
	}
	defer cursor.Close(ctx)

	var grouped []struct {
		CatalogOverview `bson:",inline"`
		Genres          [][]string `bson:"genres"`
	}
	if err := cursor.All(ctx, &grouped); err != nil {
		return stats, translate(err)
	}
	if len(grouped) > 0 {
		stats.Overview = grouped[0].CatalogOverview
		stats.Overview.AverageRating = Round1(stats.Overview.AverageRating)
		for _, genres := range grouped[0].Genres {
			for _, genre := range genres {
				stats.GenreDistribution[genre]++
			}
		}
	}

	top, err := s.topMovies(ctx, bson.D{{Key: "averageRating", Value: -1}, {Key: "totalReviews", Value: -1}})
	if err != nil {
		return stats, err
	}
	stats.TopRatedMovies = top

	mostReviewed, err := s.topMovies(ctx, bson.D{{Key: "totalReviews", Value: -1}, {Key: "averageRating", Value: -1}})
	if err != nil {
		return stats, err
	}
	stats.MostReviewedMovies = mostReviewed

	recent, err := s.topMovies(ctx, bson.D{{Key: "createdAt", Value: -1}})
	if err != nil {
		return stats, err
	}
	stats.RecentMovies = recent

	return stats, nil
}

func (s *Store) topMovies(ctx context.Context, sort bson.D) ([]models.Movie, error) {
	opts := options.Find().SetSort(sort).SetLimit(5)
	cursor, err := s.movies().Find(ctx, bson.M{"isActive": true}, opts)
	if err != nil {
		return nil, translate(err)
	}
	defer cursor.Close(ctx)

	movies := []models.Movie{}
	if err := cursor.All(ctx, &movies); err != nil {
		return nil, translate(err)
	}
	return movies, nil
}

// RecomputeMovieStats refreshes averageRating, totalReviews and
// ratingDistribution from the live set of active reviews. Idempotent and
// safe to re-run after a crash between the review write and this call.
func (s *Store) RecomputeMovieStats(ctx context.Context, movieID bson.ObjectID) error {
	ratings, err := s.activeRatings(ctx, bson.M{"movie": movieID, "isActive": true})
	if err != nil {
		return err
	}

	summary := SummarizeRatings(ratings)
	update := bson.M{"$set": bson.M{
		"averageRating":      summary.AverageRating,
		"totalReviews":       summary.TotalReviews,
		"ratingDistribution": summary.RatingDistribution,
		"updatedAt":          time.Now(),
	}}
	_, err = s.movies().UpdateOne(ctx, bson.M{"_id": movieID}, update)
	return translate(err)
}
