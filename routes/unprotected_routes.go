package routes

import (
	"github.com/gin-gonic/gin"
)

// Unprotected mounts the routes that require no credential.
func Unprotected(router *gin.Engine, ctl Controllers) {
	api := router.Group("/api")

	auth := api.Group("/auth")
	auth.POST("/register", ctl.Auth.Register)
	auth.POST("/login", ctl.Auth.Login)
	auth.POST("/forgot-password", ctl.Auth.ForgotPassword)

	movies := api.Group("/movies")
	movies.GET("", ctl.Movies.GetMovies)
	movies.GET("/stats", ctl.Movies.GetMovieStats)
	movies.GET("/search", ctl.Movies.SearchMovies)
	movies.GET("/:id", ctl.Movies.GetMovie)
	movies.GET("/:id/reviews", ctl.Reviews.GetMovieReviews)
	movies.GET("/:id/reviews/:reviewId", ctl.Reviews.GetReview)

	users := api.Group("/users")
	users.GET("/:id", ctl.Users.GetUserProfile)
	users.GET("/:id/reviews", ctl.Users.GetUserReviews)
	users.GET("/:id/stats", ctl.Users.GetUserStats)
}
