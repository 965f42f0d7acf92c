package database

import (
	"context"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// DB is the persistence handle passed into the store layer. It is
// constructed once in main and torn down on shutdown.
type DB struct {
	Client   *mongo.Client
	Database *mongo.Database
}

func Connect(mongoURI, dbName string) (*DB, error) {
	connectionString := options.Client().ApplyURI(mongoURI)
	client, err := mongo.Connect(connectionString)
	if err != nil {
		log.Println(err)
		return nil, err
	}

	db := &DB{
		Client:   client,
		Database: client.Database(dbName),
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := db.Ping(ctx); err != nil {
		log.Println(err)
		return nil, err
	}

	log.Println("Connected to mongoDB")
	return db, nil
}

func (db *DB) Ping(ctx context.Context) error {
	return db.Client.Ping(ctx, nil)
}

func (db *DB) Disconnect(ctx context.Context) error {
	return db.Client.Disconnect(ctx)
}

func (db *DB) Collection(name string) *mongo.Collection {
	return db.Database.Collection(name)
}

// EnsureIndexes creates the unique and secondary indexes the stores rely
// on. Safe to call on every startup.
func (db *DB) EnsureIndexes(ctx context.Context) error {
	unique := options.Index().SetUnique(true)

	userIndexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: unique},
		{Keys: bson.D{{Key: "username", Value: 1}}, Options: unique},
	}
	if _, err := db.Collection("users").Indexes().CreateMany(ctx, userIndexes); err != nil {
		return err
	}

	movieIndexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "genre", Value: 1}}},
		{Keys: bson.D{{Key: "releaseYear", Value: 1}}},
		{Keys: bson.D{{Key: "averageRating", Value: -1}}},
		{Keys: bson.D{{Key: "createdAt", Value: -1}}},
		{Keys: bson.D{{Key: "isActive", Value: 1}}},
	}
	if _, err := db.Collection("movies").Indexes().CreateMany(ctx, movieIndexes); err != nil {
		return err
	}

	// One active review per (user, movie); soft-deleted reviews stay out
	// of the constraint so the pair can review again.
	reviewUnique := mongo.IndexModel{
		Keys: bson.D{{Key: "user", Value: 1}, {Key: "movie", Value: 1}},
		Options: options.Index().
			SetUnique(true).
			SetPartialFilterExpression(bson.D{{Key: "isActive", Value: true}}),
	}
	reviewIndexes := []mongo.IndexModel{
		reviewUnique,
		{Keys: bson.D{{Key: "movie", Value: 1}, {Key: "createdAt", Value: -1}}},
		{Keys: bson.D{{Key: "user", Value: 1}, {Key: "createdAt", Value: -1}}},
		{Keys: bson.D{{Key: "rating", Value: 1}}},
	}
	if _, err := db.Collection("reviews").Indexes().CreateMany(ctx, reviewIndexes); err != nil {
		return err
	}

	watchlistIndexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "user", Value: 1}, {Key: "movie", Value: 1}}, Options: unique},
		{Keys: bson.D{{Key: "user", Value: 1}, {Key: "status", Value: 1}, {Key: "dateAdded", Value: -1}}},
		{Keys: bson.D{{Key: "user", Value: 1}, {Key: "priority", Value: 1}}},
	}
	if _, err := db.Collection("watchlist").Indexes().CreateMany(ctx, watchlistIndexes); err != nil {
		return err
	}

	return nil
}
