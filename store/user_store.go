package store

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"moviereviews/models"
)

func (s *Store) InsertUser(ctx context.Context, user models.User) (models.User, error) {
	now := time.Now()
	user.JoinDate = now
	user.CreatedAt = now
	user.UpdatedAt = now
	if user.FavoriteGenres == nil {
		user.FavoriteGenres = []string{}
	}

	result, err := s.users().InsertOne(ctx, user)
	if err != nil {
		return models.User{}, translate(err)
	}
	user.ID = result.InsertedID.(bson.ObjectID)
	return user, nil
}

func (s *Store) FindUserByEmail(ctx context.Context, email string) (models.User, error) {
	var user models.User
	err := s.users().FindOne(ctx, bson.M{"email": email}).Decode(&user)
	return user, translate(err)
}

func (s *Store) FindUserByID(ctx context.Context, id bson.ObjectID) (models.User, error) {
	var user models.User
	err := s.users().FindOne(ctx, bson.M{"_id": id}).Decode(&user)
	return user, translate(err)
}

func (s *Store) EmailTaken(ctx context.Context, email string) (bool, error) {
	count, err := s.users().CountDocuments(ctx, bson.M{"email": email})
	return count > 0, err
}

func (s *Store) UsernameTaken(ctx context.Context, username string) (bool, error) {
	count, err := s.users().CountDocuments(ctx, bson.M{"username": username})
	return count > 0, err
}

func (s *Store) UpdateUserProfile(ctx context.Context, id bson.ObjectID, input models.UpdateProfileInput) (models.User, error) {
	set := bson.M{"updatedAt": time.Now()}
	if input.Username != nil {
		set["username"] = *input.Username
	}
	if input.Email != nil {
		set["email"] = *input.Email
	}
	if input.Bio != nil {
		set["bio"] = *input.Bio
	}
	if input.FavoriteGenres != nil {
		set["favoriteGenres"] = input.FavoriteGenres
	}
	if input.ProfilePicture != nil {
		set["profilePicture"] = *input.ProfilePicture
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var user models.User
	err := s.users().FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&user)
	return user, translate(err)
}

func (s *Store) UpdateUserPassword(ctx context.Context, id bson.ObjectID, encodedHash string) error {
	update := bson.M{"$set": bson.M{"password": encodedHash, "updatedAt": time.Now()}}
	result, err := s.users().UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return translate(err)
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteUser removes the user document. The caller soft-deletes the
// user's reviews first.
func (s *Store) DeleteUser(ctx context.Context, id bson.ObjectID) error {
	result, err := s.users().DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return translate(err)
	}
	if result.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

var userSortFields = map[string]bool{
	"username":  true,
	"email":     true,
	"joinDate":  true,
	"createdAt": true,
}

func (s *Store) ListUsers(ctx context.Context, filter models.UserFilter, page models.PageQuery) ([]models.User, int64, error) {
	query := bson.M{}
	if filter.Search != "" {
		query["$or"] = []bson.M{
			{"username": bson.M{"$regex": filter.Search, "$options": "i"}},
			{"email": bson.M{"$regex": filter.Search, "$options": "i"}},
		}
	}

	opts := options.Find().
		SetSort(sortStage(filter.SortBy, filter.SortOrder, "createdAt", userSortFields)).
		SetSkip(int64(page.Skip())).
		SetLimit(int64(page.Limit))

	cursor, err := s.users().Find(ctx, query, opts)
	if err != nil {
		return nil, 0, translate(err)
	}
	defer cursor.Close(ctx)

	users := []models.User{}
	if err := cursor.All(ctx, &users); err != nil {
		return nil, 0, translate(err)
	}

	total, err := s.users().CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, translate(err)
	}
	return users, total, nil
}

// RecomputeUserStats refreshes the denormalized counters on the user
// document from the live set of active reviews. Idempotent.
func (s *Store) RecomputeUserStats(ctx context.Context, userID bson.ObjectID) error {
	ratings, err := s.activeRatings(ctx, bson.M{"user": userID, "isActive": true})
	if err != nil {
		return err
	}

	summary := SummarizeRatings(ratings)
	update := bson.M{"$set": bson.M{
		"stats.totalReviews":  summary.TotalReviews,
		"stats.averageRating": summary.AverageRating,
		"updatedAt":           time.Now(),
	}}
	_, err = s.users().UpdateOne(ctx, bson.M{"_id": userID}, update)
	return translate(err)
}
