package store

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"moviereviews/models"
)

func (s *Store) InsertReview(ctx context.Context, review models.Review) (models.Review, error) {
	now := time.Now()
	review.IsActive = true
	review.CreatedAt = now
	review.UpdatedAt = now

	result, err := s.reviews().InsertOne(ctx, review)
	if err != nil {
		return models.Review{}, translate(err)
	}
	review.ID = result.InsertedID.(bson.ObjectID)
	return review, nil
}

func (s *Store) FindReviewByID(ctx context.Context, reviewID, movieID bson.ObjectID) (models.Review, error) {
	var review models.Review
	query := bson.M{"_id": reviewID, "movie": movieID, "isActive": true}
	err := s.reviews().FindOne(ctx, query).Decode(&review)
	return review, translate(err)
}

// FindUserReview returns the user's active review for a movie, if any.
func (s *Store) FindUserReview(ctx context.Context, userID, movieID bson.ObjectID) (models.Review, error) {
	var review models.Review
	query := bson.M{"user": userID, "movie": movieID, "isActive": true}
	err := s.reviews().FindOne(ctx, query).Decode(&review)
	return review, translate(err)
}

// UpdateReview applies an edit, stamping isEdited/editedAt.
func (s *Store) UpdateReview(ctx context.Context, reviewID bson.ObjectID, input models.ReviewUpdate) (models.Review, error) {
	now := time.Now()
	set := bson.M{"isEdited": true, "editedAt": now, "updatedAt": now}
	if input.Rating != nil {
		set["rating"] = *input.Rating
	}
	if input.ReviewText != nil {
		set["reviewText"] = *input.ReviewText
	}
	if input.Title != nil {
		set["title"] = *input.Title
	}
	if input.IsSpoiler != nil {
		set["isSpoiler"] = *input.IsSpoiler
	}
	if input.IsRecommended != nil {
		set["isRecommended"] = *input.IsRecommended
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var review models.Review
	err := s.reviews().FindOneAndUpdate(ctx, bson.M{"_id": reviewID, "isActive": true}, bson.M{"$set": set}, opts).Decode(&review)
	return review, translate(err)
}

func (s *Store) SoftDeleteReview(ctx context.Context, reviewID bson.ObjectID) error {
	update := bson.M{"$set": bson.M{"isActive": false, "updatedAt": time.Now()}}
	result, err := s.reviews().UpdateOne(ctx, bson.M{"_id": reviewID, "isActive": true}, update)
	if err != nil {
		return translate(err)
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// MarkHelpful records a helpfulness vote and returns the updated review.
func (s *Store) MarkHelpful(ctx context.Context, reviewID bson.ObjectID, isHelpful bool) (models.Review, error) {
	inc := bson.M{"totalVotes": 1}
	if isHelpful {
		inc["helpfulVotes"] = 1
	}
	update := bson.M{"$inc": inc, "$set": bson.M{"updatedAt": time.Now()}}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var review models.Review
	err := s.reviews().FindOneAndUpdate(ctx, bson.M{"_id": reviewID, "isActive": true}, update, opts).Decode(&review)
	return review, translate(err)
}

var reviewSortFields = map[string]bool{
	"createdAt":    true,
	"rating":       true,
	"helpfulVotes": true,
}

func buildReviewQuery(filter models.ReviewFilter) bson.M {
	query := bson.M{"isActive": true}
	if !filter.Movie.IsZero() {
		query["movie"] = filter.Movie
	}
	if !filter.User.IsZero() {
		query["user"] = filter.User
	}
	if len(filter.Rating) == 1 {
		query["rating"] = filter.Rating[0]
	} else if len(filter.Rating) > 1 {
		query["rating"] = bson.M{"$in": filter.Rating}
	}
	return query
}

// ListReviews returns a page of reviews joined with author and movie
// summaries, plus the total count for pagination.
func (s *Store) ListReviews(ctx context.Context, filter models.ReviewFilter, page models.PageQuery) ([]models.ReviewEntry, int64, error) {
	query := buildReviewQuery(filter)
	sort := sortStage(filter.SortBy, filter.SortOrder, "createdAt", reviewSortFields)

	pipeline := []bson.M{
		{"$match": query},
		{"$sort": sort},
		{"$skip": page.Skip()},
		{"$limit": page.Limit},
		{"$lookup": bson.M{
			"from":         "users",
			"localField":   "user",
			"foreignField": "_id",
			"as":           "author",
		}},
		{"$unwind": bson.M{"path": "$author", "preserveNullAndEmptyArrays": true}},
		{"$lookup": bson.M{
			"from":         "movies",
			"localField":   "movie",
			"foreignField": "_id",
			"as":           "movieInfo",
		}},
		{"$unwind": bson.M{"path": "$movieInfo", "preserveNullAndEmptyArrays": true}},
		{"$project": bson.M{
			"author.password":       0,
			"author.email":          0,
			"author.stats":          0,
			"author.favoriteGenres": 0,
			"movieInfo.cast":        0,
			"movieInfo.synopsis":    0,
		}},
	}

	cursor, err := s.reviews().Aggregate(ctx, pipeline)
	if err != nil {
		return nil, 0, translate(err)
	}
	defer cursor.Close(ctx)

	entries := []models.ReviewEntry{}
	if err := cursor.All(ctx, &entries); err != nil {
		return nil, 0, translate(err)
	}

	total, err := s.reviews().CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, translate(err)
	}
	return entries, total, nil
}

// MovieReviewStats computes the statistics block fresh from the active
// review set, independently of the cached Movie fields.
func (s *Store) MovieReviewStats(ctx context.Context, movieID bson.ObjectID) (models.ReviewStats, error) {
	ratings, err := s.activeRatings(ctx, bson.M{"movie": movieID, "isActive": true})
	if err != nil {
		return models.ReviewStats{}, err
	}
	return SummarizeRatings(ratings), nil
}

// ReviewRollup is everything the detailed user-stats endpoint needs
// from the user's active reviews joined with their movies.
type ReviewRollup struct {
	Ratings      []int
	Genres       []string
	ReleaseYears []int
	HelpfulVotes int
	TotalVotes   int
}

// UserReviewRollup joins a user's active reviews with the reviewed
// movies and folds out the fields the stats endpoint aggregates.
func (s *Store) UserReviewRollup(ctx context.Context, userID bson.ObjectID) (ReviewRollup, error) {
	pipeline := []bson.M{
		{"$match": bson.M{"user": userID, "isActive": true}},
		{"$lookup": bson.M{
			"from":         "movies",
			"localField":   "movie",
			"foreignField": "_id",
			"as":           "movieDetails",
		}},
		{"$unwind": "$movieDetails"},
		{"$project": bson.M{
			"rating":       1,
			"helpfulVotes": 1,
			"totalVotes":   1,
			"genre":        "$movieDetails.genre",
			"releaseYear":  "$movieDetails.releaseYear",
		}},
	}

	cursor, err := s.reviews().Aggregate(ctx, pipeline)
	if err != nil {
		return ReviewRollup{}, translate(err)
	}
	defer cursor.Close(ctx)

	var rows []struct {
		Rating       int      `bson:"rating"`
		HelpfulVotes int      `bson:"helpfulVotes"`
		TotalVotes   int      `bson:"totalVotes"`
		Genre        []string `bson:"genre"`
		ReleaseYear  int      `bson:"releaseYear"`
	}
	if err := cursor.All(ctx, &rows); err != nil {
		return ReviewRollup{}, translate(err)
	}

	rollup := ReviewRollup{}
	for _, row := range rows {
		rollup.Ratings = append(rollup.Ratings, row.Rating)
		rollup.Genres = append(rollup.Genres, row.Genre...)
		rollup.ReleaseYears = append(rollup.ReleaseYears, row.ReleaseYear)
		rollup.HelpfulVotes += row.HelpfulVotes
		rollup.TotalVotes += row.TotalVotes
	}
	return rollup, nil
}

// DeactivateUserReviews batch-flags a user's reviews inactive and
// returns the distinct movies affected so their stats can be recomputed.
func (s *Store) DeactivateUserReviews(ctx context.Context, userID bson.ObjectID) ([]bson.ObjectID, error) {
	var movieIDs []bson.ObjectID
	err := s.reviews().Distinct(ctx, "movie", bson.M{"user": userID, "isActive": true}).Decode(&movieIDs)
	if err != nil {
		return nil, translate(err)
	}

	update := bson.M{"$set": bson.M{"isActive": false, "updatedAt": time.Now()}}
	if _, err := s.reviews().UpdateMany(ctx, bson.M{"user": userID}, update); err != nil {
		return nil, translate(err)
	}
	return movieIDs, nil
}

// activeRatings fetches just the rating field for the reviews matching
// the query; both recompute paths and the fresh stats block share it.
func (s *Store) activeRatings(ctx context.Context, query bson.M) ([]int, error) {
	opts := options.Find().SetProjection(bson.M{"rating": 1})
	cursor, err := s.reviews().Find(ctx, query, opts)
	if err != nil {
		return nil, translate(err)
	}
	defer cursor.Close(ctx)

	var docs []struct {
		Rating int `bson:"rating"`
	}
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, translate(err)
	}

	ratings := make([]int, len(docs))
	for i, doc := range docs {
		ratings[i] = doc.Rating
	}
	return ratings, nil
}
