package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }
func intPtr(n int) *int       { return &n }

func TestApplyStampsWatchedDate(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	item := WatchlistItem{Status: StatusWantToWatch}

	item.Apply(WatchlistUpdate{Status: strPtr(StatusWatched)}, now)

	assert.Equal(t, StatusWatched, item.Status)
	require.NotNil(t, item.WatchedDate)
	assert.Equal(t, now, *item.WatchedDate)
	assert.Equal(t, now, item.UpdatedAt)
}

func TestApplyKeepsExistingWatchedDate(t *testing.T) {
	earlier := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	item := WatchlistItem{Status: StatusWatched, WatchedDate: &earlier}

	item.Apply(WatchlistUpdate{Status: strPtr(StatusWatched)}, time.Now().UTC())

	require.NotNil(t, item.WatchedDate)
	assert.Equal(t, earlier, *item.WatchedDate)
}

func TestApplyLeavingWatchedClearsDate(t *testing.T) {
	watched := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	item := WatchlistItem{Status: StatusWatched, WatchedDate: &watched}

	item.Apply(WatchlistUpdate{Status: strPtr(StatusOnHold)}, time.Now().UTC())

	assert.Equal(t, StatusOnHold, item.Status)
	assert.Nil(t, item.WatchedDate)
}

func TestApplyWithoutStatusLeavesWatchedDate(t *testing.T) {
	watched := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	item := WatchlistItem{Status: StatusWatched, WatchedDate: &watched}

	item.Apply(WatchlistUpdate{Notes: strPtr("rewatch soon")}, time.Now().UTC())

	assert.Equal(t, "rewatch soon", item.Notes)
	require.NotNil(t, item.WatchedDate)
	assert.Equal(t, watched, *item.WatchedDate)
}

func TestApplyPartialFields(t *testing.T) {
	item := WatchlistItem{
		Status:   StatusWantToWatch,
		Priority: PriorityMedium,
		Notes:    "original",
	}

	item.Apply(WatchlistUpdate{
		Priority:       strPtr(PriorityHigh),
		PersonalRating: intPtr(4),
		Tags:           []string{"rewatch"},
	}, time.Now().UTC())

	assert.Equal(t, StatusWantToWatch, item.Status)
	assert.Equal(t, PriorityHigh, item.Priority)
	assert.Equal(t, "original", item.Notes)
	assert.Equal(t, 4, item.PersonalRating)
	assert.Equal(t, []string{"rewatch"}, item.Tags)
}
