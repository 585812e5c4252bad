package recommend

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFallbackKnownEmotion(t *testing.T) {
	recs := Fallback("relajante")
	require.NotEmpty(t, recs)

	assert.Equal(t, "game1", recs[0].ID)
	assert.Equal(t, "Stardew Valley", recs[0].Name)
	for _, rec := range recs {
		assert.Greater(t, rec.Score, 0.0)
	}
}

func TestFallbackUnknownEmotionUsesDefault(t *testing.T) {
	recs := Fallback("emoción_inexistente")
	require.NotEmpty(t, recs)
	assert.Equal(t, Fallback("melancólico"), recs)
}

func TestFallbackReturnsACopy(t *testing.T) {
	first := Fallback("social")
	first[0].Name = "mutated"

	again := Fallback("social")
	assert.NotEqual(t, "mutated", again[0].Name)
}
