package models

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

type Reminder struct {
	Enabled  bool       `json:"enabled" bson:"enabled"`
	Date     *time.Time `json:"date,omitempty" bson:"date,omitempty"`
	Notified bool       `json:"notified" bson:"notified"`
}

type WatchlistItem struct {
	ID             bson.ObjectID `json:"_id,omitempty" bson:"_id,omitempty"`
	User           bson.ObjectID `json:"user" bson:"user"`
	Movie          bson.ObjectID `json:"movie" bson:"movie"`
	DateAdded      time.Time     `json:"dateAdded" bson:"dateAdded"`
	Status         string        `json:"status" bson:"status"`
	Priority       string        `json:"priority" bson:"priority"`
	Notes          string        `json:"notes" bson:"notes"`
	WatchedDate    *time.Time    `json:"watchedDate,omitempty" bson:"watchedDate,omitempty"`
	PersonalRating int           `json:"personalRating,omitempty" bson:"personalRating,omitempty"`
	IsPrivate      bool          `json:"isPrivate" bson:"isPrivate"`
	Tags           []string      `json:"tags" bson:"tags"`
	Reminder       Reminder      `json:"reminder" bson:"reminder"`
	CreatedAt      time.Time     `json:"createdAt" bson:"createdAt"`
	UpdatedAt      time.Time     `json:"updatedAt" bson:"updatedAt"`
}

// MovieSummary is the joined movie projection returned with watchlist items.
type MovieSummary struct {
	ID            bson.ObjectID `json:"_id" bson:"_id"`
	Title         string        `json:"title" bson:"title"`
	PosterURL     string        `json:"posterUrl" bson:"posterUrl"`
	Genre         []string      `json:"genre" bson:"genre"`
	ReleaseYear   int           `json:"releaseYear" bson:"releaseYear"`
	Director      string        `json:"director" bson:"director"`
	Duration      int           `json:"duration" bson:"duration"`
	AverageRating float64       `json:"averageRating" bson:"averageRating"`
	TotalReviews  int           `json:"totalReviews" bson:"totalReviews"`
}

type WatchlistEntry struct {
	WatchlistItem `bson:",inline"`
	MovieDetails  MovieSummary `json:"movieDetails" bson:"movieDetails"`
}

type WatchlistAddInput struct {
	MovieID        string   `json:"movieId" validate:"required,objectid"`
	Status         string   `json:"status" validate:"omitempty,watchstatus"`
	Priority       string   `json:"priority" validate:"omitempty,watchpriority"`
	Notes          string   `json:"notes" validate:"omitempty,max=500"`
	PersonalRating int      `json:"personalRating" validate:"omitempty,min=1,max=5"`
	IsPrivate      bool     `json:"isPrivate"`
	Tags           []string `json:"tags" validate:"omitempty,dive,max=50"`
}

type WatchlistUpdate struct {
	Status         *string   `json:"status" validate:"omitempty,watchstatus"`
	Priority       *string   `json:"priority" validate:"omitempty,watchpriority"`
	Notes          *string   `json:"notes" validate:"omitempty,max=500"`
	PersonalRating *int      `json:"personalRating" validate:"omitempty,min=1,max=5"`
	IsPrivate      *bool     `json:"isPrivate"`
	Tags           []string  `json:"tags" validate:"omitempty,dive,max=50"`
	Reminder       *Reminder `json:"reminder"`
}

// Apply merges an update into the item and maintains watchedDate:
// transitioning to "watched" stamps it if unset, leaving "watched" clears it.
func (w *WatchlistItem) Apply(u WatchlistUpdate, now time.Time) {
	if u.Status != nil {
		w.Status = *u.Status
		if *u.Status == StatusWatched {
			if w.WatchedDate == nil {
				w.WatchedDate = &now
			}
		} else {
			w.WatchedDate = nil
		}
	}
	if u.Priority != nil {
		w.Priority = *u.Priority
	}
	if u.Notes != nil {
		w.Notes = *u.Notes
	}
	if u.PersonalRating != nil {
		w.PersonalRating = *u.PersonalRating
	}
	if u.IsPrivate != nil {
		w.IsPrivate = *u.IsPrivate
	}
	if u.Tags != nil {
		w.Tags = u.Tags
	}
	if u.Reminder != nil {
		w.Reminder = *u.Reminder
	}
	w.UpdatedAt = now
}

type BulkUpdateItem struct {
	MovieID string `json:"movieId" validate:"required,objectid"`
	WatchlistUpdate
}

type BulkUpdateInput struct {
	Items []BulkUpdateItem `json:"items" validate:"required,min=1,dive"`
}

type WatchlistFilter struct {
	Status    []string
	Priority  string
	Genre     []string
	SortBy    string
	SortOrder string
}

type WatchlistStats struct {
	TotalMovies           int      `json:"totalMovies"`
	WatchedMovies         int      `json:"watchedMovies"`
	WantToWatch           int      `json:"wantToWatch"`
	CurrentlyWatching     int      `json:"currentlyWatching"`
	OnHold                int      `json:"onHold"`
	Dropped               int      `json:"dropped"`
	AveragePersonalRating float64  `json:"averagePersonalRating"`
	FavoriteGenres        []string `json:"favoriteGenres"`
	TotalWatchTime        int      `json:"totalWatchTime"`
}
