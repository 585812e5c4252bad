package questionnaire

import (
	"math"
	"testing"

	"github.com/fatupopzz/game-soul/internal/catalog"
	"github.com/fatupopzz/game-soul/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validAnswers() map[string]string {
	return map[string]string{
		"tipo_experiencia":    "relajante",
		"tiempo_disponible":   "medio",
		"estado_animo":        "tranquilo",
		"actividad_preferida": "construir",
		"meta_emocional":      "calma",
	}
}

func TestBuildNormalizesWeights(t *testing.T) {
	builder := NewBuilder(catalog.New())

	profile, err := builder.Build("user-1", validAnswers())
	require.NoError(t, err)

	var sum float64
	for _, weight := range profile.Emotions {
		assert.Greater(t, weight, 0.0)
		sum += weight
	}
	assert.InDelta(t, 1.0, sum, 1e-9)
}

func TestBuildDominantEmotion(t *testing.T) {
	builder := NewBuilder(catalog.New())

	// Every answer leans relaxing: 0.9+0.8+0.4+0.9 before normalization
	profile, err := builder.Build("user-1", validAnswers())
	require.NoError(t, err)

	assert.Equal(t, "relajante", profile.DominantEmotion)
	assert.Equal(t, "medio", profile.DurationBand.Name)
}

func TestBuildIsDeterministic(t *testing.T) {
	builder := NewBuilder(catalog.New())

	first, err := builder.Build("user-1", validAnswers())
	require.NoError(t, err)

	for i := 0; i < 20; i++ {
		again, err := builder.Build("user-1", validAnswers())
		require.NoError(t, err)
		assert.Equal(t, first.DominantEmotion, again.DominantEmotion)
		for emotion, weight := range first.Emotions {
			assert.True(t, math.Abs(again.Emotions[emotion]-weight) < 1e-12)
		}
	}
}

func TestBuildDurationSelection(t *testing.T) {
	builder := NewBuilder(catalog.New())

	answers := validAnswers()
	answers["tiempo_disponible"] = "muy_largo"

	profile, err := builder.Build("user-1", answers)
	require.NoError(t, err)

	assert.Equal(t, "muy_largo", profile.DurationBand.Name)
	assert.Equal(t, 480, profile.DurationBand.MinMinutes)
}

func TestBuildMissingAnswer(t *testing.T) {
	builder := NewBuilder(catalog.New())

	answers := validAnswers()
	delete(answers, "estado_animo")

	_, err := builder.Build("user-1", answers)
	require.Error(t, err)
	assert.True(t, errors.IsErrorType(err, errors.ErrorTypeValidation))
}

func TestBuildForeignOption(t *testing.T) {
	builder := NewBuilder(catalog.New())

	// "tranquilo" is a mood option, not an experience option
	answers := validAnswers()
	answers["tipo_experiencia"] = "tranquilo"

	_, err := builder.Build("user-1", answers)
	require.Error(t, err)
	assert.True(t, errors.IsErrorType(err, errors.ErrorTypeValidation))
}

func TestBuildUnknownQuestion(t *testing.T) {
	builder := NewBuilder(catalog.New())

	answers := validAnswers()
	answers["pregunta_inventada"] = "cualquiera"

	_, err := builder.Build("user-1", answers)
	require.Error(t, err)
	assert.True(t, errors.IsErrorType(err, errors.ErrorTypeValidation))
}

func TestDominantEmotionTieBreaksOnCanonicalOrder(t *testing.T) {
	builder := NewBuilder(catalog.New())

	// relajante precedes desafiante in the canonical order, so an exact tie
	// must resolve to relajante no matter the map iteration order.
	for i := 0; i < 50; i++ {
		dominant := builder.dominantEmotion(map[string]float64{
			"desafiante": 0.5,
			"relajante":  0.5,
		})
		assert.Equal(t, "relajante", dominant)
	}
}

func TestDominantEmotionEmptyProfile(t *testing.T) {
	builder := NewBuilder(catalog.New())

	assert.Equal(t, catalog.NeutralEmotion, builder.dominantEmotion(map[string]float64{}))
}

func TestNormalizeZeroSum(t *testing.T) {
	weights := map[string]float64{"alegre": 0.0}
	normalize(weights)
	assert.Empty(t, weights)
}

func TestQuestionsCoverCanonicalSet(t *testing.T) {
	ids := make(map[string]bool)
	for _, question := range Questions() {
		ids[question.ID] = true
		assert.NotEmpty(t, question.Options, "question %q has no options", question.ID)
	}

	for _, required := range []string{
		"tipo_experiencia", "tiempo_disponible", "estado_animo",
		"actividad_preferida", "meta_emocional",
	} {
		assert.True(t, ids[required], "missing question %q", required)
	}
}
