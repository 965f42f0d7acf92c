package models

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

type UserStats struct {
	TotalReviews  int     `json:"totalReviews" bson:"totalReviews"`
	AverageRating float64 `json:"averageRating" bson:"averageRating"`
	MoviesWatched int     `json:"moviesWatched" bson:"moviesWatched"`
}

type User struct {
	ID              bson.ObjectID `json:"_id,omitempty" bson:"_id,omitempty"`
	Username        string        `json:"username" bson:"username"`
	Email           string        `json:"email" bson:"email"`
	Password        string        `json:"-" bson:"password"` // argon2id encoded, never serialized out
	ProfilePicture  string        `json:"profilePicture" bson:"profilePicture"`
	Bio             string        `json:"bio" bson:"bio"`
	JoinDate        time.Time     `json:"joinDate" bson:"joinDate"`
	IsAdmin         bool          `json:"isAdmin" bson:"isAdmin"`
	FavoriteGenres  []string      `json:"favoriteGenres" bson:"favoriteGenres"`
	Stats           UserStats     `json:"stats" bson:"stats"`
	CreatedAt       time.Time     `json:"createdAt" bson:"createdAt"`
	UpdatedAt       time.Time     `json:"updatedAt" bson:"updatedAt"`
}

type RegisterInput struct {
	Name            string `json:"name" validate:"required,min=3,max=30"`
	Email           string `json:"email" validate:"required,email"`
	Password        string `json:"password" validate:"required,min=6"`
	ConfirmPassword string `json:"confirmPassword" validate:"required,eqfield=Password"`
}

type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type UpdateProfileInput struct {
	Username       *string  `json:"username" validate:"omitempty,min=3,max=30,username"`
	Email          *string  `json:"email" validate:"omitempty,email"`
	Bio            *string  `json:"bio" validate:"omitempty,max=500"`
	FavoriteGenres []string `json:"favoriteGenres" validate:"omitempty,dive,genre"`
	ProfilePicture *string  `json:"profilePicture" validate:"omitempty,url"`
}

type UpdatePasswordInput struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required,min=6"`
}

type UserFilter struct {
	Search    string
	SortBy    string
	SortOrder string
}
