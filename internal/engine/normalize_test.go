package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeLocation(t *testing.T) {
	assert.Equal(t, "maninagar, ahmedabad", NormalizeLocation("Maninagar, Ahmedabad"))
	assert.Equal(t, "maninagar, ahmedabad", NormalizeLocation("  MANINAGAR,   Ahmedabad  "))
	assert.Equal(t, "delhi", NormalizeLocation("Delhi"))
	assert.Equal(t, "", NormalizeLocation(""))
	assert.Equal(t, "", NormalizeLocation("   \t  "))
}
