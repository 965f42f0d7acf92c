package controller

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/v2/bson"

	"moviereviews/models"
	"moviereviews/store"
	"moviereviews/utils"
)

type MockUserStore struct {
	mock.Mock
}

func (m *MockUserStore) InsertUser(ctx context.Context, user models.User) (models.User, error) {
	args := m.Called(ctx, user)
	return args.Get(0).(models.User), args.Error(1)
}

func (m *MockUserStore) FindUserByEmail(ctx context.Context, email string) (models.User, error) {
	args := m.Called(ctx, email)
	return args.Get(0).(models.User), args.Error(1)
}

func (m *MockUserStore) FindUserByID(ctx context.Context, id bson.ObjectID) (models.User, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(models.User), args.Error(1)
}

func (m *MockUserStore) EmailTaken(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserStore) UsernameTaken(ctx context.Context, username string) (bool, error) {
	args := m.Called(ctx, username)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserStore) UpdateUserProfile(ctx context.Context, id bson.ObjectID, input models.UpdateProfileInput) (models.User, error) {
	args := m.Called(ctx, id, input)
	return args.Get(0).(models.User), args.Error(1)
}

func (m *MockUserStore) UpdateUserPassword(ctx context.Context, id bson.ObjectID, encodedHash string) error {
	args := m.Called(ctx, id, encodedHash)
	return args.Error(0)
}

func (m *MockUserStore) DeleteUser(ctx context.Context, id bson.ObjectID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockUserStore) ListUsers(ctx context.Context, filter models.UserFilter, page models.PageQuery) ([]models.User, int64, error) {
	args := m.Called(ctx, filter, page)
	return args.Get(0).([]models.User), args.Get(1).(int64), args.Error(2)
}

type MockMovieStore struct {
	mock.Mock
}

func (m *MockMovieStore) InsertMovie(ctx context.Context, movie models.Movie) (models.Movie, error) {
	args := m.Called(ctx, movie)
	return args.Get(0).(models.Movie), args.Error(1)
}

func (m *MockMovieStore) FindMovieByID(ctx context.Context, id bson.ObjectID) (models.Movie, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(models.Movie), args.Error(1)
}

func (m *MockMovieStore) MovieTitleYearExists(ctx context.Context, title string, year int, exclude bson.ObjectID) (bool, error) {
	args := m.Called(ctx, title, year, exclude)
	return args.Bool(0), args.Error(1)
}

func (m *MockMovieStore) UpdateMovie(ctx context.Context, id bson.ObjectID, input models.MovieUpdate) (models.Movie, error) {
	args := m.Called(ctx, id, input)
	return args.Get(0).(models.Movie), args.Error(1)
}

func (m *MockMovieStore) SoftDeleteMovie(ctx context.Context, id bson.ObjectID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockMovieStore) ListMovies(ctx context.Context, filter models.MovieFilter, page models.PageQuery) ([]models.Movie, int64, error) {
	args := m.Called(ctx, filter, page)
	return args.Get(0).([]models.Movie), args.Get(1).(int64), args.Error(2)
}

func (m *MockMovieStore) SearchMovies(ctx context.Context, q string, limit int) ([]models.Movie, error) {
	args := m.Called(ctx, q, limit)
	return args.Get(0).([]models.Movie), args.Error(1)
}

func (m *MockMovieStore) CatalogStats(ctx context.Context) (store.CatalogStats, error) {
	args := m.Called(ctx)
	return args.Get(0).(store.CatalogStats), args.Error(1)
}

type MockReviewStore struct {
	mock.Mock
}

func (m *MockReviewStore) InsertReview(ctx context.Context, review models.Review) (models.Review, error) {
	args := m.Called(ctx, review)
	return args.Get(0).(models.Review), args.Error(1)
}

func (m *MockReviewStore) FindReviewByID(ctx context.Context, reviewID, movieID bson.ObjectID) (models.Review, error) {
	args := m.Called(ctx, reviewID, movieID)
	return args.Get(0).(models.Review), args.Error(1)
}

func (m *MockReviewStore) FindUserReview(ctx context.Context, userID, movieID bson.ObjectID) (models.Review, error) {
	args := m.Called(ctx, userID, movieID)
	return args.Get(0).(models.Review), args.Error(1)
}

func (m *MockReviewStore) UpdateReview(ctx context.Context, reviewID bson.ObjectID, input models.ReviewUpdate) (models.Review, error) {
	args := m.Called(ctx, reviewID, input)
	return args.Get(0).(models.Review), args.Error(1)
}

func (m *MockReviewStore) SoftDeleteReview(ctx context.Context, reviewID bson.ObjectID) error {
	args := m.Called(ctx, reviewID)
	return args.Error(0)
}

func (m *MockReviewStore) MarkHelpful(ctx context.Context, reviewID bson.ObjectID, isHelpful bool) (models.Review, error) {
	args := m.Called(ctx, reviewID, isHelpful)
	return args.Get(0).(models.Review), args.Error(1)
}

func (m *MockReviewStore) ListReviews(ctx context.Context, filter models.ReviewFilter, page models.PageQuery) ([]models.ReviewEntry, int64, error) {
	args := m.Called(ctx, filter, page)
	return args.Get(0).([]models.ReviewEntry), args.Get(1).(int64), args.Error(2)
}

func (m *MockReviewStore) MovieReviewStats(ctx context.Context, movieID bson.ObjectID) (models.ReviewStats, error) {
	args := m.Called(ctx, movieID)
	return args.Get(0).(models.ReviewStats), args.Error(1)
}

func (m *MockReviewStore) UserReviewRollup(ctx context.Context, userID bson.ObjectID) (store.ReviewRollup, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(store.ReviewRollup), args.Error(1)
}

func (m *MockReviewStore) DeactivateUserReviews(ctx context.Context, userID bson.ObjectID) ([]bson.ObjectID, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]bson.ObjectID), args.Error(1)
}

type MockWatchlistStore struct {
	mock.Mock
}

func (m *MockWatchlistStore) AddWatchlistItem(ctx context.Context, item models.WatchlistItem) (models.WatchlistItem, error) {
	args := m.Called(ctx, item)
	return args.Get(0).(models.WatchlistItem), args.Error(1)
}

func (m *MockWatchlistStore) FindWatchlistItem(ctx context.Context, userID, movieID bson.ObjectID) (models.WatchlistItem, error) {
	args := m.Called(ctx, userID, movieID)
	return args.Get(0).(models.WatchlistItem), args.Error(1)
}

func (m *MockWatchlistStore) FindWatchlistEntry(ctx context.Context, userID, movieID bson.ObjectID) (models.WatchlistEntry, error) {
	args := m.Called(ctx, userID, movieID)
	return args.Get(0).(models.WatchlistEntry), args.Error(1)
}

func (m *MockWatchlistStore) SaveWatchlistItem(ctx context.Context, item models.WatchlistItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockWatchlistStore) RemoveWatchlistItem(ctx context.Context, userID, movieID bson.ObjectID) error {
	args := m.Called(ctx, userID, movieID)
	return args.Error(0)
}

func (m *MockWatchlistStore) ListWatchlist(ctx context.Context, userID bson.ObjectID, filter models.WatchlistFilter, page models.PageQuery) ([]models.WatchlistEntry, int64, error) {
	args := m.Called(ctx, userID, filter, page)
	return args.Get(0).([]models.WatchlistEntry), args.Get(1).(int64), args.Error(2)
}

func (m *MockWatchlistStore) AllWatchlistEntries(ctx context.Context, userID bson.ObjectID) ([]models.WatchlistEntry, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]models.WatchlistEntry), args.Error(1)
}

func (m *MockWatchlistStore) RecommendMovies(ctx context.Context, prefs store.Preferences, exclude []bson.ObjectID, limit int) ([]models.Movie, error) {
	args := m.Called(ctx, prefs, exclude, limit)
	return args.Get(0).([]models.Movie), args.Error(1)
}

type MockStatsRecomputer struct {
	mock.Mock
}

func (m *MockStatsRecomputer) RecomputeMovieStats(ctx context.Context, movieID bson.ObjectID) error {
	args := m.Called(ctx, movieID)
	return args.Error(0)
}

func (m *MockStatsRecomputer) RecomputeUserStats(ctx context.Context, userID bson.ObjectID) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

// authAs injects the identity the JWT middleware would have set.
func authAs(userID bson.ObjectID, isAdmin bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(utils.ContextUserIDKey, userID.Hex())
		c.Set(utils.ContextIsAdminKey, isAdmin)
		c.Next()
	}
}
