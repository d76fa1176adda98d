package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlug(t *testing.T) {
	assert.Equal(t, "science", Slug("Science"))
	assert.Equal(t, "world-history", Slug("World History"))
	assert.Equal(t, "world-history", Slug("  World   History  "))
	assert.Equal(t, "math", Slug("MATH"))
	assert.Equal(t, "", Slug(""))
}
