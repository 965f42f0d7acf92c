package models

import (
	"math"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

type Review struct {
	ID            bson.ObjectID `json:"_id,omitempty" bson:"_id,omitempty"`
	User          bson.ObjectID `json:"user" bson:"user"`
	Movie         bson.ObjectID `json:"movie" bson:"movie"`
	Rating        int           `json:"rating" bson:"rating"`
	ReviewText    string        `json:"reviewText" bson:"reviewText"`
	Title         string        `json:"title" bson:"title"`
	IsRecommended bool          `json:"isRecommended" bson:"isRecommended"`
	HelpfulVotes  int           `json:"helpfulVotes" bson:"helpfulVotes"`
	TotalVotes    int           `json:"totalVotes" bson:"totalVotes"`
	IsEdited      bool          `json:"isEdited" bson:"isEdited"`
	EditedAt      *time.Time    `json:"editedAt,omitempty" bson:"editedAt,omitempty"`
	IsSpoiler     bool          `json:"isSpoiler" bson:"isSpoiler"`
	IsActive      bool          `json:"isActive" bson:"isActive"`
	CreatedAt     time.Time     `json:"createdAt" bson:"createdAt"`
	UpdatedAt     time.Time     `json:"updatedAt" bson:"updatedAt"`
}

// HelpfulnessRatio is the percentage of votes that found the review helpful.
func (r Review) HelpfulnessRatio() int {
	if r.TotalVotes == 0 {
		return 0
	}
	return int(math.Round(float64(r.HelpfulVotes) / float64(r.TotalVotes) * 100))
}

type ReviewInput struct {
	Rating        int    `json:"rating" validate:"required,min=1,max=5"`
	ReviewText    string `json:"reviewText" validate:"omitempty,max=1000"`
	Title         string `json:"title" validate:"omitempty,max=100"`
	IsSpoiler     bool   `json:"isSpoiler"`
	IsRecommended *bool  `json:"isRecommended"`
}

type ReviewUpdate struct {
	Rating        *int    `json:"rating" validate:"omitempty,min=1,max=5"`
	ReviewText    *string `json:"reviewText" validate:"omitempty,max=1000"`
	Title         *string `json:"title" validate:"omitempty,max=100"`
	IsSpoiler     *bool   `json:"isSpoiler"`
	IsRecommended *bool   `json:"isRecommended"`
}

// UserSummary is the joined author projection on review listings.
type UserSummary struct {
	ID             bson.ObjectID `json:"_id" bson:"_id"`
	Username       string        `json:"username" bson:"username"`
	ProfilePicture string        `json:"profilePicture" bson:"profilePicture"`
	JoinDate       time.Time     `json:"joinDate" bson:"joinDate"`
}

// ReviewEntry is a review with its joined author and movie summaries.
type ReviewEntry struct {
	Review    `bson:",inline"`
	Author    *UserSummary  `json:"author,omitempty" bson:"author,omitempty"`
	MovieInfo *MovieSummary `json:"movieInfo,omitempty" bson:"movieInfo,omitempty"`
}

type ReviewFilter struct {
	Movie     bson.ObjectID
	User      bson.ObjectID
	Rating    []int
	SortBy    string
	SortOrder string
}

// ReviewStats is the per-movie statistics block computed fresh from the
// active review set, independent of the cached Movie fields.
type ReviewStats struct {
	AverageRating      float64            `json:"averageRating"`
	TotalReviews       int                `json:"totalReviews"`
	RatingDistribution RatingDistribution `json:"ratingDistribution"`
}
