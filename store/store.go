package store

import (
	"errors"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"moviereviews/database"
)

var (
	// ErrNotFound means the entity does not exist or is soft-deleted.
	ErrNotFound = errors.New("not found")
	// ErrDuplicate means a unique constraint was violated.
	ErrDuplicate = errors.New("duplicate")
)

// Store is the data-access layer over the injected Mongo handle.
type Store struct {
	db *database.DB
}

func New(db *database.DB) *Store {
	return &Store{db: db}
}

func (s *Store) users() *mongo.Collection     { return s.db.Collection("users") }
func (s *Store) movies() *mongo.Collection    { return s.db.Collection("movies") }
func (s *Store) reviews() *mongo.Collection   { return s.db.Collection("reviews") }
func (s *Store) watchlist() *mongo.Collection { return s.db.Collection("watchlist") }

// translate maps driver errors to the store's sentinel errors at one
// point instead of per call site.
func translate(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, mongo.ErrNoDocuments) {
		return ErrNotFound
	}
	if mongo.IsDuplicateKeyError(err) {
		return ErrDuplicate
	}
	return err
}

// sortStage builds a sort document from a requested field, falling back
// to the endpoint default when the field is not in the allowed set.
// Order is descending unless "asc" is asked for.
func sortStage(sortBy, sortOrder, defaultField string, allowed map[string]bool) bson.D {
	field := defaultField
	if allowed[sortBy] {
		field = sortBy
	}
	order := -1
	if sortOrder == "asc" {
		order = 1
	}
	return bson.D{{Key: field, Value: order}}
}
