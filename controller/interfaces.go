package controller

import (
	"context"

	"go.mongodb.org/mongo-driver/v2/bson"

	"moviereviews/models"
	"moviereviews/store"
)

// The controllers accept narrow store interfaces so handler tests can
// substitute mocks; *store.Store satisfies all of them.

type UserStore interface {
	InsertUser(ctx context.Context, user models.User) (models.User, error)
	FindUserByEmail(ctx context.Context, email string) (models.User, error)
	FindUserByID(ctx context.Context, id bson.ObjectID) (models.User, error)
	EmailTaken(ctx context.Context, email string) (bool, error)
	UsernameTaken(ctx context.Context, username string) (bool, error)
	UpdateUserProfile(ctx context.Context, id bson.ObjectID, input models.UpdateProfileInput) (models.User, error)
	UpdateUserPassword(ctx context.Context, id bson.ObjectID, encodedHash string) error
	DeleteUser(ctx context.Context, id bson.ObjectID) error
	ListUsers(ctx context.Context, filter models.UserFilter, page models.PageQuery) ([]models.User, int64, error)
}

type MovieStore interface {
	InsertMovie(ctx context.Context, movie models.Movie) (models.Movie, error)
	FindMovieByID(ctx context.Context, id bson.ObjectID) (models.Movie, error)
	MovieTitleYearExists(ctx context.Context, title string, year int, exclude bson.ObjectID) (bool, error)
	UpdateMovie(ctx context.Context, id bson.ObjectID, input models.MovieUpdate) (models.Movie, error)
	SoftDeleteMovie(ctx context.Context, id bson.ObjectID) error
	ListMovies(ctx context.Context, filter models.MovieFilter, page models.PageQuery) ([]models.Movie, int64, error)
	SearchMovies(ctx context.Context, q string, limit int) ([]models.Movie, error)
	CatalogStats(ctx context.Context) (store.CatalogStats, error)
}

type ReviewStore interface {
	InsertReview(ctx context.Context, review models.Review) (models.Review, error)
	FindReviewByID(ctx context.Context, reviewID, movieID bson.ObjectID) (models.Review, error)
	FindUserReview(ctx context.Context, userID, movieID bson.ObjectID) (models.Review, error)
	UpdateReview(ctx context.Context, reviewID bson.ObjectID, input models.ReviewUpdate) (models.Review, error)
	SoftDeleteReview(ctx context.Context, reviewID bson.ObjectID) error
	MarkHelpful(ctx context.Context, reviewID bson.ObjectID, isHelpful bool) (models.Review, error)
	ListReviews(ctx context.Context, filter models.ReviewFilter, page models.PageQuery) ([]models.ReviewEntry, int64, error)
	MovieReviewStats(ctx context.Context, movieID bson.ObjectID) (models.ReviewStats, error)
	UserReviewRollup(ctx context.Context, userID bson.ObjectID) (store.ReviewRollup, error)
	DeactivateUserReviews(ctx context.Context, userID bson.ObjectID) ([]bson.ObjectID, error)
}

type WatchlistStore interface {
	AddWatchlistItem(ctx context.Context, item models.WatchlistItem) (models.WatchlistItem, error)
	FindWatchlistItem(ctx context.Context, userID, movieID bson.ObjectID) (models.WatchlistItem, error)
	FindWatchlistEntry(ctx context.Context, userID, movieID bson.ObjectID) (models.WatchlistEntry, error)
	SaveWatchlistItem(ctx context.Context, item models.WatchlistItem) error
	RemoveWatchlistItem(ctx context.Context, userID, movieID bson.ObjectID) error
	ListWatchlist(ctx context.Context, userID bson.ObjectID, filter models.WatchlistFilter, page models.PageQuery) ([]models.WatchlistEntry, int64, error)
	AllWatchlistEntries(ctx context.Context, userID bson.ObjectID) ([]models.WatchlistEntry, error)
	RecommendMovies(ctx context.Context, prefs store.Preferences, exclude []bson.ObjectID, limit int) ([]models.Movie, error)
}

// StatsRecomputer refreshes the denormalized aggregates after review
// writes. Kept separate so tests can make the recompute fail and assert
// the triggering write still succeeds.
type StatsRecomputer interface {
	RecomputeMovieStats(ctx context.Context, movieID bson.ObjectID) error
	RecomputeUserStats(ctx context.Context, userID bson.ObjectID) error
}
