package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidRating(t *testing.T) {
	assert.False(t, IsValidRating(0))
	assert.True(t, IsValidRating(1))
	assert.True(t, IsValidRating(5))
	assert.False(t, IsValidRating(6))
}

func TestIsValidItemType(t *testing.T) {
	assert.True(t, IsValidItemType("trip"))
	assert.True(t, IsValidItemType("hotel"))
	assert.False(t, IsValidItemType("cruise"))
	assert.False(t, IsValidItemType(""))
	assert.False(t, IsValidItemType("Trip"))
}

func TestIsValidCommentBody(t *testing.T) {
	assert.False(t, IsValidCommentBody(strings.Repeat("a", 9)))
	assert.True(t, IsValidCommentBody(strings.Repeat("a", 10)))
	assert.True(t, IsValidCommentBody(strings.Repeat("a", 2000)))
	assert.False(t, IsValidCommentBody(strings.Repeat("a", 2001)))

	// Counted in runes, not bytes.
	assert.True(t, IsValidCommentBody(strings.Repeat("é", 10)))
	assert.False(t, IsValidCommentBody(strings.Repeat("é", 9)))
}
