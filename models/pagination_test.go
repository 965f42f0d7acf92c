package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewPagination(t *testing.T) {
	p := NewPagination(2, 10, 45)

	assert.Equal(t, 2, p.Current)
	assert.Equal(t, 5, p.Pages)
	assert.Equal(t, int64(45), p.Total)
	assert.True(t, p.HasNext)
	assert.True(t, p.HasPrev)
}

func TestNewPaginationBounds(t *testing.T) {
	first := NewPagination(1, 10, 45)
	assert.False(t, first.HasPrev)
	assert.True(t, first.HasNext)

	last := NewPagination(5, 10, 45)
	assert.True(t, last.HasPrev)
	assert.False(t, last.HasNext)

	empty := NewPagination(1, 10, 0)
	assert.Equal(t, 0, empty.Pages)
	assert.False(t, empty.HasNext)
	assert.False(t, empty.HasPrev)
}

func TestPageQueryNormalize(t *testing.T) {
	p := PageQuery{}.Normalize(12)
	assert.Equal(t, PageQuery{Page: 1, Limit: 12}, p)

	p = PageQuery{Page: -3, Limit: 500}.Normalize(12)
	assert.Equal(t, PageQuery{Page: 1, Limit: 100}, p)

	p = PageQuery{Page: 3, Limit: 25}.Normalize(12)
	assert.Equal(t, 50, p.Skip())
}
