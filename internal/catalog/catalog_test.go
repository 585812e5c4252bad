package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEmotionTypesCanonicalOrder(t *testing.T) {
	cat := New()

	expected := []string{
		"alegre", "relajante", "melancólico", "exploración", "desafiante",
		"contemplativo", "social", "competitivo", "creativo",
	}
	assert.Equal(t, expected, cat.EmotionTypes())
}

func TestHasEmotion(t *testing.T) {
	cat := New()

	assert.True(t, cat.HasEmotion("relajante"))
	assert.True(t, cat.HasEmotion("creativo"))
	assert.False(t, cat.HasEmotion("neutral"))
	assert.False(t, cat.HasEmotion(""))
}

func TestDealbreakersAreKnownCharacteristics(t *testing.T) {
	cat := New()

	known := make(map[string]bool)
	for _, name := range cat.CharacteristicNames() {
		known[name] = true
	}

	for _, dealbreaker := range cat.DealbreakerCharacteristics() {
		assert.True(t, known[dealbreaker], "dealbreaker %q is not a known characteristic", dealbreaker)
	}
}

func TestDurationBandsContiguous(t *testing.T) {
	cat := New()
	bands := cat.DurationBands()

	assert.Len(t, bands, 5)
	assert.Equal(t, 0, bands[0].MinMinutes)
	for i := 1; i < len(bands); i++ {
		assert.Equal(t, bands[i-1].MaxMinutes, bands[i].MinMinutes,
			"band %q must start where %q ends", bands[i].Name, bands[i-1].Name)
	}
}

func TestBandByName(t *testing.T) {
	cat := New()

	band, ok := cat.BandByName("largo")
	assert.True(t, ok)
	assert.Equal(t, 180, band.MinMinutes)
	assert.Equal(t, 480, band.MaxMinutes)

	_, ok = cat.BandByName("eterno")
	assert.False(t, ok)
}

func TestDefaultBand(t *testing.T) {
	cat := New()

	band := cat.DefaultBand()
	assert.Equal(t, "medio", band.Name)
}

func TestCatalogIsImmutable(t *testing.T) {
	cat := New()

	emotions := cat.Emotions()
	emotions[0].Type = "mutated"

	assert.Equal(t, "alegre", cat.Emotions()[0].Type)
}
