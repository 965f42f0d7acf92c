package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"moviereviews/models"
)

func fieldNames(errs []FieldError) []string {
	names := make([]string, len(errs))
	for i, e := range errs {
		names[i] = e.Field
	}
	return names
}

func TestValidateRegisterInput(t *testing.T) {
	ok := models.RegisterInput{
		Name:            "moviefan",
		Email:           "fan@example.com",
		Password:        "secret123",
		ConfirmPassword: "secret123",
	}
	assert.Nil(t, Validate(ok))

	mismatch := ok
	mismatch.ConfirmPassword = "different"
	errs := Validate(mismatch)
	require.Len(t, errs, 1)
	assert.Equal(t, "confirmPassword", errs[0].Field)
	assert.Equal(t, "passwords do not match", errs[0].Message)

	empty := models.RegisterInput{}
	errs = Validate(empty)
	assert.Contains(t, fieldNames(errs), "name")
	assert.Contains(t, fieldNames(errs), "email")
	assert.Contains(t, fieldNames(errs), "password")
}

func TestValidateMovieInput(t *testing.T) {
	input := models.MovieInput{
		Title:       "Test Film",
		Genre:       []string{"Action", "Sci-Fi"},
		ReleaseYear: 1999,
		Director:    "Someone",
		Synopsis:    "A film made for tests.",
		PosterURL:   "https://example.com/poster.jpg",
		Duration:    120,
		Language:    "English",
		Country:     "USA",
	}
	assert.Nil(t, Validate(input))

	input.Genre = []string{"NotAGenre"}
	errs := Validate(input)
	require.Len(t, errs, 1)
	assert.Equal(t, "invalid genre", errs[0].Message)
	assert.Equal(t, "NotAGenre", errs[0].RejectedValue)
}

func TestValidateReleaseYearBounds(t *testing.T) {
	input := models.MovieInput{
		Title:       "Old",
		Genre:       []string{"Drama"},
		ReleaseYear: 1800,
		Director:    "Someone",
		Synopsis:    "Too old.",
		PosterURL:   "https://example.com/p.png",
		Duration:    90,
		Language:    "English",
		Country:     "USA",
	}
	errs := Validate(input)
	require.Len(t, errs, 1)
	assert.Equal(t, "releaseYear", errs[0].Field)
	assert.Equal(t, "invalid release year", errs[0].Message)
}

func TestValidatePosterMustBeImage(t *testing.T) {
	input := models.MovieInput{
		Title:       "Test Film",
		Genre:       []string{"Action"},
		ReleaseYear: 2020,
		Director:    "Someone",
		Synopsis:    "Synopsis.",
		PosterURL:   "https://example.com/poster.pdf",
		Duration:    120,
		Language:    "English",
		Country:     "USA",
	}
	errs := Validate(input)
	require.Len(t, errs, 1)
	assert.Equal(t, "posterUrl", errs[0].Field)
}

func TestValidateUsernameCharset(t *testing.T) {
	bad := "has spaces"
	errs := Validate(models.UpdateProfileInput{Username: &bad})
	require.Len(t, errs, 1)
	assert.Equal(t, "username", errs[0].Field)

	good := "movie_fan-42"
	assert.Nil(t, Validate(models.UpdateProfileInput{Username: &good}))
}

func TestValidateWatchlistAddInput(t *testing.T) {
	input := models.WatchlistAddInput{
		MovieID:  "507f1f77bcf86cd799439011",
		Status:   "watched",
		Priority: "high",
	}
	assert.Nil(t, Validate(input))

	input.MovieID = "not-an-id"
	input.Status = "binged"
	errs := Validate(input)
	names := fieldNames(errs)
	assert.Contains(t, names, "movieId")
	assert.Contains(t, names, "status")
}

func TestValidateNestedBulkItems(t *testing.T) {
	errs := Validate(models.BulkUpdateInput{Items: []models.BulkUpdateItem{
		{MovieID: "507f1f77bcf86cd799439011"},
		{MovieID: "bad"},
	}})
	require.Len(t, errs, 1)
	assert.Equal(t, "items[1].movieId", errs[0].Field)
}

func TestIsObjectID(t *testing.T) {
	assert.True(t, IsObjectID("507f1f77bcf86cd799439011"))
	assert.False(t, IsObjectID("507f1f77bcf86cd79943901"))
	assert.False(t, IsObjectID("zzzf1f77bcf86cd799439011"))
	assert.False(t, IsObjectID(""))
}
