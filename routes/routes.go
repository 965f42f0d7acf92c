package routes

import (
	"moviereviews/controller"
)

// Controllers bundles the handler structs the route tables mount.
type Controllers struct {
	Auth      *controller.AuthController
	Users     *controller.UserController
	Movies    *controller.MovieController
	Reviews   *controller.ReviewController
	Watchlist *controller.WatchlistController
}
