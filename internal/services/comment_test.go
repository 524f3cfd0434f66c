package services

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tripvista/travel-backend/internal/models"
)

func TestCreateCommentLengthBoundaries(t *testing.T) {
	_, _, _, comments := newTestServices(t)

	cases := []struct {
		length int
		ok     bool
	}{
		{9, false},
		{10, true},
		{2000, true},
		{2001, false},
	}
	for _, tc := range cases {
		_, err := comments.Create(1, models.ItemTypeTrip, testAuthor(10), strings.Repeat("a", tc.length), "Lisbon Getaway")
		if tc.ok {
			assert.NoError(t, err, "length %d", tc.length)
		} else {
			assert.ErrorIs(t, err, ErrInvalidLength, "length %d", tc.length)
		}
	}
}

func TestCreateCommentIncrementsCount(t *testing.T) {
	_, engine, _, comments := newTestServices(t)

	_, err := comments.Create(1, models.ItemTypeTrip, testAuthor(10), "short", "Lisbon Getaway")
	assert.ErrorIs(t, err, ErrInvalidLength)

	comment, err := comments.Create(1, models.ItemTypeTrip, testAuthor(10), "a lovely trip!!", "Lisbon Getaway")
	require.NoError(t, err)
	assert.False(t, comment.Edited)

	stats, err := engine.GetStats(1, models.ItemTypeTrip)
	require.NoError(t, err)
	assert.Equal(t, int64(1), stats.CommentCount)
}

func TestEditCommentOwnerOnly(t *testing.T) {
	_, _, _, comments := newTestServices(t)

	comment, err := comments.Create(1, models.ItemTypeHotel, testAuthor(10), "the pool was lovely", "Hotel Aurora")
	require.NoError(t, err)

	_, err = comments.Edit(comment.ID, 11, "trying to rewrite someone else's words")
	assert.ErrorIs(t, err, ErrNotOwner)

	_, err = comments.Edit(comment.ID, 10, "too short")
	assert.ErrorIs(t, err, ErrInvalidLength)

	edited, err := comments.Edit(comment.ID, 10, "the pool was lovely and the staff kind")
	require.NoError(t, err)
	assert.True(t, edited.Edited)
	assert.Equal(t, "the pool was lovely and the staff kind", edited.Body)
	assert.False(t, edited.UpdatedAt.Before(comment.UpdatedAt))
}

func TestEditDoesNotChangeCommentCount(t *testing.T) {
	_, engine, _, comments := newTestServices(t)

	comment, err := comments.Create(4, models.ItemTypeTrip, testAuthor(10), "an unforgettable week", "Safari Week")
	require.NoError(t, err)

	_, err = comments.Edit(comment.ID, 10, "an unforgettable week, truly")
	require.NoError(t, err)

	stats, err := engine.GetStats(4, models.ItemTypeTrip)
	require.NoError(t, err)
	assert.Equal(t, int64(1), stats.CommentCount)
}

func TestEditMissingComment(t *testing.T) {
	_, _, _, comments := newTestServices(t)

	_, err := comments.Edit(9999, 10, "editing something that never existed")
	assert.ErrorIs(t, err, ErrCommentNotFound)
}

func TestDeleteCommentAuthorization(t *testing.T) {
	_, engine, _, comments := newTestServices(t)

	comment, err := comments.Create(5, models.ItemTypeHotel, testAuthor(10), "breakfast could be better", "Hotel Mira")
	require.NoError(t, err)

	_, err = comments.Delete(comment.ID, 11, false)
	assert.ErrorIs(t, err, ErrNotOwner)

	_, err = comments.Delete(comment.ID, 10, false)
	require.NoError(t, err)

	stats, err := engine.GetStats(5, models.ItemTypeHotel)
	require.NoError(t, err)
	assert.Equal(t, int64(0), stats.CommentCount)

	_, err = comments.Delete(comment.ID, 10, false)
	assert.ErrorIs(t, err, ErrCommentNotFound)
}

func TestDeleteCommentByAdmin(t *testing.T) {
	_, _, _, comments := newTestServices(t)

	comment, err := comments.Create(5, models.ItemTypeHotel, testAuthor(10), "breakfast could be better", "Hotel Mira")
	require.NoError(t, err)

	_, err = comments.Delete(comment.ID, 99, true)
	assert.NoError(t, err)
}

func TestCommentCountNeverNegative(t *testing.T) {
	db, engine, _, comments := newTestServices(t)

	comment, err := comments.Create(6, models.ItemTypeTrip, testAuthor(10), "wonderful local guides", "Andes Trail")
	require.NoError(t, err)

	_, err = comments.Delete(comment.ID, 10, false)
	require.NoError(t, err)

	// A redundant decrement must clamp at zero instead of going negative.
	require.NoError(t, engine.OnCommentRemoved(db, 6, models.ItemTypeTrip))

	stats, err := engine.GetStats(6, models.ItemTypeTrip)
	require.NoError(t, err)
	assert.Equal(t, int64(0), stats.CommentCount)
}

func TestListCommentsPagination(t *testing.T) {
	_, _, _, comments := newTestServices(t)

	for i := 0; i < 25; i++ {
		_, err := comments.Create(8, models.ItemTypeTrip, testAuthor(uint(100+i)), strings.Repeat("x", 20), "Coastal Drive")
		require.NoError(t, err)
	}

	page, err := comments.List(8, models.ItemTypeTrip, 1, 10)
	require.NoError(t, err)
	assert.Len(t, page.Items, 10)
	assert.True(t, page.HasNextPage)
	assert.Equal(t, int64(25), page.Total)

	page, err = comments.List(8, models.ItemTypeTrip, 3, 10)
	require.NoError(t, err)
	assert.Len(t, page.Items, 5)
	assert.False(t, page.HasNextPage)
}

func TestListCommentsDefaultsAndEmpty(t *testing.T) {
	_, _, _, comments := newTestServices(t)

	page, err := comments.List(999, models.ItemTypeHotel, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, page.Page)
	assert.Equal(t, DefaultPageSize, page.PageSize)
	assert.Empty(t, page.Items)
	assert.False(t, page.HasNextPage)
}
