package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"moviereviews/controller"
	"moviereviews/database"
	mw "moviereviews/middlewares"
	"moviereviews/routes"
	"moviereviews/store"
	"moviereviews/utils"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println(err)
	}

	mongoURI := os.Getenv("MONGO_URI")
	if mongoURI == "" {
		mongoURI = "mongodb://localhost:27017"
	}
	dbName := os.Getenv("DATABASE_NAME")
	if dbName == "" {
		dbName = "moviereviews"
	}
	if os.Getenv("SECRET_KEY") == "" {
		log.Fatal("SECRET_KEY is not set")
	}

	db, err := database.Connect(mongoURI, dbName)
	if err != nil {
		log.Fatal(err)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := db.Disconnect(ctx); err != nil {
			log.Println(err)
		}
	}()

	{
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := db.EnsureIndexes(ctx); err != nil {
			log.Fatal(err)
		}
	}

	st := store.New(db)
	ctl := routes.Controllers{
		Auth:      controller.NewAuthController(st),
		Users:     controller.NewUserController(st, st, st),
		Movies:    controller.NewMovieController(st),
		Reviews:   controller.NewReviewController(st, st, st),
		Watchlist: controller.NewWatchlistController(st, st),
	}

	router := gin.New()
	router.Use(gin.Logger())
	router.Use(mw.Recovery())
	router.Use(mw.SecurityHeaders())
	router.Use(mw.RateLimit())

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{"http://localhost:3000", "http://localhost:5173"}
	if origin := os.Getenv("FRONTEND_URL"); origin != "" {
		corsConfig.AllowOrigins = append(corsConfig.AllowOrigins, origin)
	}
	corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, "Authorization")
	router.Use(cors.New(corsConfig))

	router.NoRoute(func(c *gin.Context) {
		utils.Fail(c, http.StatusNotFound, "Route not found")
	})

	routes.Unprotected(router, ctl)
	routes.Protected(router, ctl)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8007"
	}
	if err := router.Run(":" + port); err != nil {
		log.Fatal(err)
	}
}
