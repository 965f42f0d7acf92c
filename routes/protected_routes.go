package routes

import (
	"github.com/gin-gonic/gin"

	mw "moviereviews/middlewares"
)

// Protected mounts the routes behind the JWT middleware. Catalog
// mutations additionally require the admin flag; per-user resources
// enforce owner-or-admin inside their handlers.
func Protected(router *gin.Engine, ctl Controllers) {
	api := router.Group("/api")
	api.Use(mw.JWT())

	auth := api.Group("/auth")
	auth.GET("/me", ctl.Auth.Me)
	auth.PUT("/password", ctl.Auth.UpdatePassword)

	movies := api.Group("/movies")
	movies.POST("", mw.AdminOnly(), ctl.Movies.AddMovie)
	movies.PUT("/:id", mw.AdminOnly(), ctl.Movies.UpdateMovie)
	movies.DELETE("/:id", mw.AdminOnly(), ctl.Movies.DeleteMovie)

	movies.POST("/:id/reviews", ctl.Reviews.CreateReview)
	movies.GET("/:id/my-review", ctl.Reviews.GetMyReview)
	movies.PUT("/:id/reviews/:reviewId", ctl.Reviews.UpdateReview)
	movies.DELETE("/:id/reviews/:reviewId", ctl.Reviews.DeleteReview)
	movies.POST("/:id/reviews/:reviewId/helpful", ctl.Reviews.MarkHelpful)

	users := api.Group("/users")
	users.GET("", mw.AdminOnly(), ctl.Users.GetUsers)
	users.PUT("/:id", ctl.Users.UpdateUserProfile)
	users.DELETE("/:id", ctl.Users.DeleteUser)

	watchlist := users.Group("/:id/watchlist")
	watchlist.GET("", ctl.Watchlist.GetWatchlist)
	watchlist.POST("", ctl.Watchlist.AddToWatchlist)
	watchlist.GET("/stats", ctl.Watchlist.GetWatchlistStats)
	watchlist.GET("/recommendations", ctl.Watchlist.Recommendations)
	watchlist.PUT("/bulk", ctl.Watchlist.BulkUpdate)
	watchlist.GET("/check/:movieId", ctl.Watchlist.CheckMovie)
	watchlist.GET("/:movieId", ctl.Watchlist.GetWatchlistItem)
	watchlist.PUT("/:movieId", ctl.Watchlist.UpdateWatchlistItem)
	watchlist.DELETE("/:movieId", ctl.Watchlist.RemoveFromWatchlist)
}
