package models

// Genres is the fixed domain for Movie.Genre and User.FavoriteGenres.
var Genres = []string{
	"Action",
	"Adventure",
	"Comedy",
	"Crime",
	"Drama",
	"Fantasy",
	"Horror",
	"Mystery",
	"Romance",
	"Sci-Fi",
	"Thriller",
	"Western",
	"Animation",
	"Documentary",
	"Family",
	"Music",
	"War",
}

const (
	StatusWantToWatch = "want_to_watch"
	StatusWatching    = "watching"
	StatusWatched     = "watched"
	StatusOnHold      = "on_hold"
	StatusDropped     = "dropped"
)

var WatchlistStatuses = []string{
	StatusWantToWatch,
	StatusWatching,
	StatusWatched,
	StatusOnHold,
	StatusDropped,
}

const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
)

var Priorities = []string{PriorityLow, PriorityMedium, PriorityHigh}

func IsValidGenre(g string) bool {
	for _, genre := range Genres {
		if genre == g {
			return true
		}
	}
	return false
}

func IsValidWatchlistStatus(s string) bool {
	for _, status := range WatchlistStatuses {
		if status == s {
			return true
		}
	}
	return false
}

func IsValidPriority(p string) bool {
	for _, priority := range Priorities {
		if priority == p {
			return true
		}
	}
	return false
}
