package models

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

type CastMember struct {
	Name string `json:"name" bson:"name" validate:"required,max=100"`
	Role string `json:"role" bson:"role" validate:"omitempty,max=100"`
}

type ExternalRatings struct {
	ImdbRating           float64 `json:"imdbRating" bson:"imdbRating" validate:"omitempty,min=0,max=10"`
	RottenTomatoesRating float64 `json:"rottenTomatoesRating" bson:"rottenTomatoesRating" validate:"omitempty,min=0,max=100"`
}

// RatingDistribution counts active reviews per star value.
type RatingDistribution struct {
	One   int `json:"1" bson:"1"`
	Two   int `json:"2" bson:"2"`
	Three int `json:"3" bson:"3"`
	Four  int `json:"4" bson:"4"`
	Five  int `json:"5" bson:"5"`
}

func (d *RatingDistribution) Incr(rating int) {
	switch rating {
	case 1:
		d.One++
	case 2:
		d.Two++
	case 3:
		d.Three++
	case 4:
		d.Four++
	case 5:
		d.Five++
	}
}

func (d RatingDistribution) Count(rating int) int {
	switch rating {
	case 1:
		return d.One
	case 2:
		return d.Two
	case 3:
		return d.Three
	case 4:
		return d.Four
	case 5:
		return d.Five
	}
	return 0
}

type Movie struct {
	ID                 bson.ObjectID      `json:"_id,omitempty" bson:"_id,omitempty"`
	Title              string             `json:"title" bson:"title"`
	Genre              []string           `json:"genre" bson:"genre"`
	ReleaseYear        int                `json:"releaseYear" bson:"releaseYear"`
	Director           string             `json:"director" bson:"director"`
	Cast               []CastMember       `json:"cast" bson:"cast"`
	Synopsis           string             `json:"synopsis" bson:"synopsis"`
	PosterURL          string             `json:"posterUrl" bson:"posterUrl"`
	TrailerURL         string             `json:"trailerUrl,omitempty" bson:"trailerUrl,omitempty"`
	Duration           int                `json:"duration" bson:"duration"` // minutes
	Language           string             `json:"language" bson:"language"`
	Country            string             `json:"country" bson:"country"`
	Budget             int64              `json:"budget,omitempty" bson:"budget,omitempty"`
	BoxOffice          int64              `json:"boxOffice,omitempty" bson:"boxOffice,omitempty"`
	Rating             ExternalRatings    `json:"rating" bson:"rating"`
	AverageRating      float64            `json:"averageRating" bson:"averageRating"`
	TotalReviews       int                `json:"totalReviews" bson:"totalReviews"`
	RatingDistribution RatingDistribution `json:"ratingDistribution" bson:"ratingDistribution"`
	IsActive           bool               `json:"isActive" bson:"isActive"`
	AddedBy            bson.ObjectID      `json:"addedBy,omitempty" bson:"addedBy,omitempty"`
	CreatedAt          time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt          time.Time          `json:"updatedAt" bson:"updatedAt"`
}

type MovieInput struct {
	Title       string          `json:"title" validate:"required,max=200"`
	Genre       []string        `json:"genre" validate:"required,min=1,dive,genre"`
	ReleaseYear int             `json:"releaseYear" validate:"required,releaseyear"`
	Director    string          `json:"director" validate:"required,max=100"`
	Cast        []CastMember    `json:"cast" validate:"omitempty,dive"`
	Synopsis    string          `json:"synopsis" validate:"required,max=2000"`
	PosterURL   string          `json:"posterUrl" validate:"required,url,imageurl"`
	TrailerURL  string          `json:"trailerUrl" validate:"omitempty,url"`
	Duration    int             `json:"duration" validate:"required,min=1"`
	Language    string          `json:"language" validate:"required"`
	Country     string          `json:"country" validate:"required"`
	Budget      int64           `json:"budget" validate:"omitempty,min=0"`
	BoxOffice   int64           `json:"boxOffice" validate:"omitempty,min=0"`
	Rating      ExternalRatings `json:"rating"`
}

type MovieUpdate struct {
	Title       *string          `json:"title" validate:"omitempty,max=200"`
	Genre       []string         `json:"genre" validate:"omitempty,min=1,dive,genre"`
	ReleaseYear *int             `json:"releaseYear" validate:"omitempty,releaseyear"`
	Director    *string          `json:"director" validate:"omitempty,max=100"`
	Cast        []CastMember     `json:"cast" validate:"omitempty,dive"`
	Synopsis    *string          `json:"synopsis" validate:"omitempty,max=2000"`
	PosterURL   *string          `json:"posterUrl" validate:"omitempty,url,imageurl"`
	TrailerURL  *string          `json:"trailerUrl" validate:"omitempty,url"`
	Duration    *int             `json:"duration" validate:"omitempty,min=1"`
	Language    *string          `json:"language" validate:"omitempty"`
	Country     *string          `json:"country" validate:"omitempty"`
	Budget      *int64           `json:"budget" validate:"omitempty,min=0"`
	BoxOffice   *int64           `json:"boxOffice" validate:"omitempty,min=0"`
	Rating      *ExternalRatings `json:"rating"`
}

// YearRange filters releaseYear by inclusive bounds; zero means unbounded.
type YearRange struct {
	Min int
	Max int
}

type MovieFilter struct {
	Genre       []string
	ReleaseYear int
	YearRange   YearRange
	Director    string
	MinRating   float64
	MaxRating   float64
	Search      string
	SortBy      string
	SortOrder   string
}
