package session

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClearFiltersKeepsNavigation(t *testing.T) {
	min, max := int64(100000), int64(500000)
	s := &Session{
		Category:  "Jackets",
		Brand:     "Nike",
		PriceMin:  &min,
		PriceMax:  &max,
		SizeQuery: "M",
	}

	s.ClearFilters()

	assert.Equal(t, "Jackets", s.Category)
	assert.Equal(t, "Nike", s.Brand)
	assert.Nil(t, s.PriceMin)
	assert.Nil(t, s.PriceMax)
	assert.Empty(t, s.SizeQuery)
}

func TestSessionRoundTrip(t *testing.T) {
	min := int64(100000)
	s := Session{Category: "Shoes", PriceMin: &min}

	raw, err := json.Marshal(&s)
	require.NoError(t, err)

	var got Session
	require.NoError(t, json.Unmarshal(raw, &got))
	assert.Equal(t, s.Category, got.Category)
	require.NotNil(t, got.PriceMin)
	assert.Equal(t, min, *got.PriceMin)

	// empty fields stay out of the payload so sessions diff cleanly in
	// redis-cli
	assert.NotContains(t, string(raw), "brand")
}

func TestSessionKey(t *testing.T) {
	assert.Equal(t, "session:42", sessionKey(42))
}

func TestManagerRedisRoundTrip(t *testing.T) {
	t.Skip("Integration test - requires Redis")
}
