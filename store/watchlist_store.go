package store

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"moviereviews/models"
)

// movieSummaryProjection is the joined movie shape returned with
// watchlist items and recommendations.
var movieSummaryProjection = bson.M{
	"_id":           1,
	"title":         1,
	"posterUrl":     1,
	"genre":         1,
	"releaseYear":   1,
	"director":      1,
	"duration":      1,
	"averageRating": 1,
	"totalReviews":  1,
}

func (s *Store) AddWatchlistItem(ctx context.Context, item models.WatchlistItem) (models.WatchlistItem, error) {
	now := time.Now()
	item.DateAdded = now
	item.CreatedAt = now
	item.UpdatedAt = now
	if item.Tags == nil {
		item.Tags = []string{}
	}
	if item.Status == models.StatusWatched && item.WatchedDate == nil {
		item.WatchedDate = &now
	}

	result, err := s.watchlist().InsertOne(ctx, item)
	if err != nil {
		return models.WatchlistItem{}, translate(err)
	}
	item.ID = result.InsertedID.(bson.ObjectID)
	return item, nil
}

func (s *Store) FindWatchlistItem(ctx context.Context, userID, movieID bson.ObjectID) (models.WatchlistItem, error) {
	var item models.WatchlistItem
	err := s.watchlist().FindOne(ctx, bson.M{"user": userID, "movie": movieID}).Decode(&item)
	return item, translate(err)
}

// FindWatchlistEntry returns an item with its movie summary joined in.
func (s *Store) FindWatchlistEntry(ctx context.Context, userID, movieID bson.ObjectID) (models.WatchlistEntry, error) {
	pipeline := []bson.M{
		{"$match": bson.M{"user": userID, "movie": movieID}},
		{"$lookup": bson.M{
			"from":         "movies",
			"localField":   "movie",
			"foreignField": "_id",
			"as":           "movieDetails",
		}},
		{"$unwind": "$movieDetails"},
		{"$project": bson.M{
			"movieDetails": movieSummaryProjection,
			"user":         1, "movie": 1, "dateAdded": 1, "status": 1,
			"priority": 1, "notes": 1, "watchedDate": 1, "personalRating": 1,
			"isPrivate": 1, "tags": 1, "reminder": 1, "createdAt": 1, "updatedAt": 1,
		}},
	}

	cursor, err := s.watchlist().Aggregate(ctx, pipeline)
	if err != nil {
		return models.WatchlistEntry{}, translate(err)
	}
	defer cursor.Close(ctx)

	var entries []models.WatchlistEntry
	if err := cursor.All(ctx, &entries); err != nil {
		return models.WatchlistEntry{}, translate(err)
	}
	if len(entries) == 0 {
		return models.WatchlistEntry{}, ErrNotFound
	}
	return entries[0], nil
}

// SaveWatchlistItem persists the mutable fields of an already-applied update.
func (s *Store) SaveWatchlistItem(ctx context.Context, item models.WatchlistItem) error {
	set := bson.M{
		"status":         item.Status,
		"priority":       item.Priority,
		"notes":          item.Notes,
		"personalRating": item.PersonalRating,
		"isPrivate":      item.IsPrivate,
		"tags":           item.Tags,
		"reminder":       item.Reminder,
		"updatedAt":      item.UpdatedAt,
	}
	update := bson.M{"$set": set}
	if item.WatchedDate != nil {
		set["watchedDate"] = item.WatchedDate
	} else {
		update["$unset"] = bson.M{"watchedDate": ""}
	}

	result, err := s.watchlist().UpdateOne(ctx, bson.M{"_id": item.ID}, update)
	if err != nil {
		return translate(err)
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) RemoveWatchlistItem(ctx context.Context, userID, movieID bson.ObjectID) error {
	result, err := s.watchlist().DeleteOne(ctx, bson.M{"user": userID, "movie": movieID})
	if err != nil {
		return translate(err)
	}
	if result.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

var watchlistSortFields = map[string]bool{
	"dateAdded":   true,
	"status":      true,
	"priority":    true,
	"watchedDate": true,
}

// ListWatchlist pages through a user's watchlist joined with active
// movies. Items whose movie was soft-deleted drop out of the join.
func (s *Store) ListWatchlist(ctx context.Context, userID bson.ObjectID, filter models.WatchlistFilter, page models.PageQuery) ([]models.WatchlistEntry, int64, error) {
	query := bson.M{"user": userID}
	if len(filter.Status) == 1 {
		query["status"] = filter.Status[0]
	} else if len(filter.Status) > 1 {
		query["status"] = bson.M{"$in": filter.Status}
	}
	if filter.Priority != "" {
		query["priority"] = filter.Priority
	}

	pipeline := []bson.M{
		{"$match": query},
		{"$lookup": bson.M{
			"from":         "movies",
			"localField":   "movie",
			"foreignField": "_id",
			"as":           "movieDetails",
		}},
		{"$unwind": "$movieDetails"},
		{"$match": bson.M{"movieDetails.isActive": true}},
	}
	if len(filter.Genre) > 0 {
		pipeline = append(pipeline, bson.M{"$match": bson.M{"movieDetails.genre": bson.M{"$in": filter.Genre}}})
	}
	pipeline = append(pipeline,
		bson.M{"$sort": sortStage(filter.SortBy, filter.SortOrder, "dateAdded", watchlistSortFields)},
		bson.M{"$skip": page.Skip()},
		bson.M{"$limit": page.Limit},
		bson.M{"$project": bson.M{
			"movieDetails": movieSummaryProjection,
			"user":         1, "movie": 1, "dateAdded": 1, "status": 1,
			"priority": 1, "notes": 1, "watchedDate": 1, "personalRating": 1,
			"isPrivate": 1, "tags": 1, "reminder": 1, "createdAt": 1, "updatedAt": 1,
		}},
	)

	cursor, err := s.watchlist().Aggregate(ctx, pipeline)
	if err != nil {
		return nil, 0, translate(err)
	}
	defer cursor.Close(ctx)

	entries := []models.WatchlistEntry{}
	if err := cursor.All(ctx, &entries); err != nil {
		return nil, 0, translate(err)
	}

	// Count matches the item query only, as the original did; an item
	// whose movie went inactive can make the last page run short.
	total, err := s.watchlist().CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, translate(err)
	}
	return entries, total, nil
}

// AllWatchlistEntries loads the user's full watchlist joined with active
// movies; the stats and recommendation paths both start here.
func (s *Store) AllWatchlistEntries(ctx context.Context, userID bson.ObjectID) ([]models.WatchlistEntry, error) {
	pipeline := []bson.M{
		{"$match": bson.M{"user": userID}},
		{"$lookup": bson.M{
			"from":         "movies",
			"localField":   "movie",
			"foreignField": "_id",
			"as":           "movieDetails",
		}},
		{"$unwind": "$movieDetails"},
		{"$match": bson.M{"movieDetails.isActive": true}},
		{"$project": bson.M{
			"movieDetails": movieSummaryProjection,
			"user":         1, "movie": 1, "status": 1, "personalRating": 1,
		}},
	}

	cursor, err := s.watchlist().Aggregate(ctx, pipeline)
	if err != nil {
		return nil, translate(err)
	}
	defer cursor.Close(ctx)

	entries := []models.WatchlistEntry{}
	if err := cursor.All(ctx, &entries); err != nil {
		return nil, translate(err)
	}
	return entries, nil
}

// RecommendMovies returns active movies outside the watchlist matching
// any of the derived preferences, best rated first.
func (s *Store) RecommendMovies(ctx context.Context, prefs Preferences, exclude []bson.ObjectID, limit int) ([]models.Movie, error) {
	query := bson.M{
		"isActive": true,
		"_id":      bson.M{"$nin": exclude},
		"$or": []bson.M{
			{"genre": bson.M{"$in": prefs.TopGenres}},
			{"director": bson.M{"$in": prefs.TopDirectors}},
			{"averageRating": bson.M{"$gte": prefs.AvgRatingPreference - 0.5}},
		},
	}

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
