package recommend

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/fatupopzz/game-soul/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockPort is a hand-rolled QueryPort double. Unset function fields return
// empty results.
type mockPort struct {
	findByEmotion       func(ctx context.Context, emotion string, dealbreakers []string) ([]CandidateGame, error)
	findByEmotionDirect func(ctx context.Context, emotion string) ([]CandidateGame, error)
	findByProfile       func(ctx context.Context, emotions map[string]float64, userID string, minMinutes int, dealbreakers []string) ([]CandidateGame, error)
	findUnplayed        func(ctx context.Context, userID string, excludedGenres []string, minMinutes int) ([]CandidateGame, error)
	recentGenres        func(ctx context.Context, userID string, since time.Time) ([]string, error)
	upsertPlayed        func(ctx context.Context, userID, gameID string, satisfaction int) error
	getResonance        func(ctx context.Context, userID, emotion string) (float64, bool, error)
	upsertResonance     func(ctx context.Context, userID, emotion string, intensity float64) error
}

func (m *mockPort) FindGamesByEmotion(ctx context.Context, emotion string, dealbreakers []string) ([]CandidateGame, error) {
	if m.findByEmotion != nil {
		return m.findByEmotion(ctx, emotion, dealbreakers)
	}
	return nil, nil
}

func (m *mockPort) FindGamesByEmotionDirect(ctx context.Context, emotion string) ([]CandidateGame, error) {
	if m.findByEmotionDirect != nil {
		return m.findByEmotionDirect(ctx, emotion)
	}
	return nil, nil
}

func (m *mockPort) FindGamesByProfile(ctx context.Context, emotions map[string]float64, userID string, minMinutes int, dealbreakers []string) ([]CandidateGame, error) {
	if m.findByProfile != nil {
		return m.findByProfile(ctx, emotions, userID, minMinutes, dealbreakers)
	}
	return nil, nil
}

func (m *mockPort) FindUnplayedGenreGames(ctx context.Context, userID string, excludedGenres []string, minMinutes int) ([]CandidateGame, error) {
	if m.findUnplayed != nil {
		return m.findUnplayed(ctx, userID, excludedGenres, minMinutes)
	}
	return nil, nil
}

func (m *mockPort) RecentGenres(ctx context.Context, userID string, since time.Time) ([]string, error) {
	if m.recentGenres != nil {
		return m.recentGenres(ctx, userID, since)
	}
	return nil, nil
}

func (m *mockPort) UpsertPlayed(ctx context.Context, userID, gameID string, satisfaction int) error {
	if m.upsertPlayed != nil {
		return m.upsertPlayed(ctx, userID, gameID, satisfaction)
	}
	return nil
}

func (m *mockPort) GetUserResonance(ctx context.Context, userID, emotion string) (float64, bool, error) {
	if m.getResonance != nil {
		return m.getResonance(ctx, userID, emotion)
	}
	return 0, false, nil
}

func (m *mockPort) UpsertUserResonance(ctx context.Context, userID, emotion string, intensity float64) error {
	if m.upsertResonance != nil {
		return m.upsertResonance(ctx, userID, emotion, intensity)
	}
	return nil
}

func TestEngineCompositeScore(t *testing.T) {
	port := &mockPort{
		findByProfile: func(ctx context.Context, emotions map[string]float64, userID string, minMinutes int, dealbreakers []string) ([]CandidateGame, error) {
			return []CandidateGame{
				{
					ID:                      "game1",
					Name:                    "Stardew Valley",
					EmotionIntensity:        map[string]float64{"relajante": 0.8},
					GenreRelations:          []EmotionRelation{{Emotion: "relajante", Intensity: 0.8}},
					CharacteristicRelations: []EmotionRelation{{Emotion: "relajante", Intensity: 1.0}},
				},
			}, nil
		},
	}

	engine := NewEngine(port)
	recs, err := engine.RecommendForProfile(context.Background(), map[string]float64{"relajante": 1.0}, "relajante", "", 0, nil, 5)
	require.NoError(t, err)
	require.Len(t, recs, 1)

	// direct 0.8, genre 0.8*0.5=0.4, characteristic 1.0*0.3=0.3,
	// total 0.8*1.0 + 0.4*0.5 + 0.3*0.3
	assert.InDelta(t, 0.8, recs[0].Breakdown.Direct, 1e-9)
	assert.InDelta(t, 0.4, recs[0].Breakdown.ViaGenre, 1e-9)
	assert.InDelta(t, 0.3, recs[0].Breakdown.ViaCharacteristic, 1e-9)
	assert.InDelta(t, 1.09, recs[0].Score, 1e-9)
	assert.Equal(t, []string{"relajante"}, recs[0].MatchedEmotions)
}

func TestEngineIgnoresEmotionsOutsideProfile(t *testing.T) {
	port := &mockPort{
		findByProfile: func(ctx context.Context, emotions map[string]float64, userID string, minMinutes int, dealbreakers []string) ([]CandidateGame, error) {
			return []CandidateGame{
				{
					ID:               "game2",
					EmotionIntensity: map[string]float64{"relajante": 0.7, "competitivo": 0.9},
					GenreRelations:   []EmotionRelation{{Emotion: "competitivo", Intensity: 0.9}},
				},
			}, nil
		},
	}

	engine := NewEngine(port)
	recs, err := engine.RecommendForProfile(context.Background(), map[string]float64{"relajante": 1.0}, "relajante", "", 0, nil, 5)
	require.NoError(t, err)
	require.Len(t, recs, 1)

	assert.InDelta(t, 0.7, recs[0].Score, 1e-9)
	assert.Equal(t, []string{"relajante"}, recs[0].MatchedEmotions)
}

func TestEngineDealbreakerExclusion(t *testing.T) {
	port := &mockPort{
		findByProfile: func(ctx context.Context, emotions map[string]float64, userID string, minMinutes int, dealbreakers []string) ([]CandidateGame, error) {
			return []CandidateGame{
				{
					ID:               "with-combat",
					Characteristics:  []string{"combate", "historia"},
					EmotionIntensity: map[string]float64{"relajante": 0.9},
				},
				{
					ID:               "peaceful",
					Characteristics:  []string{"historia"},
					EmotionIntensity: map[string]float64{"relajante": 0.6},
				},
			}, nil
		},
	}

	engine := NewEngine(port)
	profile := map[string]float64{"relajante": 0.9, "contemplativo": 0.1}
	recs, err := engine.RecommendForProfile(context.Background(), profile, "relajante", "", 0, []string{"combate"}, 5)
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, "peaceful", recs[0].ID)

	for _, rec := range recs {
		assert.NotContains(t, rec.Characteristics, "combate")
	}
}

func TestEngineDurationFilter(t *testing.T) {
	port := &mockPort{
		findByProfile: func(ctx context.Context, emotions map[string]float64, userID string, minMinutes int, dealbreakers []string) ([]CandidateGame, error) {
			return []CandidateGame{
				{ID: "too-short", DurationMaxMinutes: 30, EmotionIntensity: map[string]float64{"relajante": 0.9}},
				{ID: "long-enough", DurationMaxMinutes: 180, EmotionIntensity: map[string]float64{"relajante": 0.8}},
				{ID: "no-band", DurationMaxMinutes: 0, EmotionIntensity: map[string]float64{"relajante": 0.7}},
			}, nil
		},
	}

	engine := NewEngine(port)
	recs, err := engine.RecommendForProfile(context.Background(), map[string]float64{"relajante": 1.0}, "relajante", "", 60, nil, 5)
	require.NoError(t, err)
	require.Len(t, recs, 2)
	assert.Equal(t, "long-enough", recs[0].ID)
	assert.Equal(t, "no-band", recs[1].ID)
}

func TestEngineExcludesPlayedForKnownUser(t *testing.T) {
	candidates := []CandidateGame{
		{ID: "played", Played: true, EmotionIntensity: map[string]float64{"relajante": 0.9}},
		{ID: "fresh", Played: false, EmotionIntensity: map[string]float64{"relajante": 0.5}},
	}
	port := &mockPort{
		findByProfile: func(ctx context.Context, emotions map[string]float64, userID string, minMinutes int, dealbreakers []string) ([]CandidateGame, error) {
			return candidates, nil
		},
	}

	engine := NewEngine(port)
	profile := map[string]float64{"relajante": 1.0}

	recs, err := engine.RecommendForProfile(context.Background(), profile, "relajante", "user-1", 0, nil, 5)
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, "fresh", recs[0].ID)

	// Anonymous requests keep played games
	recs, err = engine.RecommendForProfile(context.Background(), profile, "relajante", "", 0, nil, 5)
	require.NoError(t, err)
	assert.Len(t, recs, 2)
}

func TestEngineRankingAndTruncation(t *testing.T) {
	port := &mockPort{
		findByProfile: func(ctx context.Context, emotions map[string]float64, userID string, minMinutes int, dealbreakers []string) ([]CandidateGame, error) {
			return []CandidateGame{
				{ID: "low", EmotionIntensity: map[string]float64{"alegre": 0.2}},
				{ID: "high", EmotionIntensity: map[string]float64{"alegre": 0.9}},
				{ID: "mid", EmotionIntensity: map[string]float64{"alegre": 0.5}},
			}, nil
		},
	}

	engine := NewEngine(port)
	recs, err := engine.RecommendForProfile(context.Background(), map[string]float64{"alegre": 1.0}, "alegre", "", 0, nil, 2)
	require.NoError(t, err)
	require.Len(t, recs, 2)
	assert.Equal(t, "high", recs[0].ID)
	assert.Equal(t, "mid", recs[1].ID)
}

func TestEngineStableTieOrder(t *testing.T) {
	port := &mockPort{
		findByProfile: func(ctx context.Context, emotions map[string]float64, userID string, minMinutes int, dealbreakers []string) ([]CandidateGame, error) {
			return []CandidateGame{
				{ID: "first", EmotionIntensity: map[string]float64{"alegre": 0.5}},
				{ID: "second", EmotionIntensity: map[string]float64{"alegre": 0.5}},
			}, nil
		},
	}

	engine := NewEngine(port)
	for i := 0; i < 10; i++ {
		recs, err := engine.RecommendForProfile(context.Background(), map[string]float64{"alegre": 1.0}, "alegre", "", 0, nil, 5)
		require.NoError(t, err)
		require.Len(t, recs, 2)
		assert.Equal(t, "first", recs[0].ID)
		assert.Equal(t, "second", recs[1].ID)
	}
}

func TestEngineRelaxesWhenFiltersEliminateEverything(t *testing.T) {
	directCalled := false
	port := &mockPort{
		findByProfile: func(ctx context.Context, emotions map[string]float64, userID string, minMinutes int, dealbreakers []string) ([]CandidateGame, error) {
			return []CandidateGame{
				{ID: "blocked", Characteristics: []string{"combate"}, EmotionIntensity: map[string]float64{"relajante": 0.9}},
			}, nil
		},
		findByEmotionDirect: func(ctx context.Context, emotion string) ([]CandidateGame, error) {
			directCalled = true
			return []CandidateGame{
				{ID: "relaxed", EmotionIntensity: map[string]float64{"relajante": 0.4}},
			}, nil
		},
	}

	engine := NewEngine(port)
	recs, err := engine.RecommendForProfile(context.Background(), map[string]float64{"relajante": 1.0}, "relajante", "", 0, []string{"combate"}, 5)
	require.NoError(t, err)
	assert.True(t, directCalled)
	require.Len(t, recs, 1)
	assert.Equal(t, "relaxed", recs[0].ID)
}

func TestEngineFallsBackWhenProfileQueryFails(t *testing.T) {
	port := &mockPort{
		findByProfile: func(ctx context.Context, emotions map[string]float64, userID string, minMinutes int, dealbreakers []string) ([]CandidateGame, error) {
			return nil, fmt.Errorf("profile query exploded")
		},
		findByEmotion: func(ctx context.Context, emotion string, dealbreakers []string) ([]CandidateGame, error) {
			return []CandidateGame{
				{ID: "rescued", EmotionIntensity: map[string]float64{"relajante": 0.7}},
			}, nil
		},
	}

	engine := NewEngine(port)
	recs, err := engine.RecommendForProfile(context.Background(), map[string]float64{"relajante": 1.0}, "relajante", "", 0, nil, 5)
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, "rescued", recs[0].ID)
}

func TestEngineDatabaseErrorOnlyWhenAllVariantsFail(t *testing.T) {
	port := &mockPort{
		findByProfile: func(ctx context.Context, emotions map[string]float64, userID string, minMinutes int, dealbreakers []string) ([]CandidateGame, error) {
			return nil, fmt.Errorf("profile query exploded")
		},
		findByEmotion: func(ctx context.Context, emotion string, dealbreakers []string) ([]CandidateGame, error) {
			return nil, fmt.Errorf("emotion query exploded")
		},
		findByEmotionDirect: func(ctx context.Context, emotion string) ([]CandidateGame, error) {
			return nil, fmt.Errorf("direct query exploded")
		},
	}

	engine := NewEngine(port)
	_, err := engine.RecommendForProfile(context.Background(), map[string]float64{"relajante": 1.0}, "relajante", "", 0, nil, 5)
	require.Error(t, err)
	assert.True(t, errors.IsErrorType(err, errors.ErrorTypeDatabase))
}

func TestRecommendForEmotionSimplifiedPath(t *testing.T) {
	port := &mockPort{
		findByEmotion: func(ctx context.Context, emotion string, dealbreakers []string) ([]CandidateGame, error) {
			assert.Equal(t, "desafiante", emotion)
			return []CandidateGame{
				{ID: "game12", Name: "Hades", EmotionIntensity: map[string]float64{"desafiante": 0.9}},
			}, nil
		},
	}

	engine := NewEngine(port)
	recs, err := engine.RecommendForEmotion(context.Background(), "desafiante", 0, nil, 5)
	require.NoError(t, err)
	require.Len(t, recs, 1)

	// Single-emotion path: score reduces to the direct resonance intensity
	assert.InDelta(t, 0.9, recs[0].Score, 1e-9)
}

func TestRecommendForEmotionDefaultLimit(t *testing.T) {
	var games []CandidateGame
	for i := 0; i < 10; i++ {
		games = append(games, CandidateGame{
			ID:               fmt.Sprintf("game%d", i),
			EmotionIntensity: map[string]float64{"alegre": float64(i) / 10},
		})
	}
	port := &mockPort{
		findByEmotion: func(ctx context.Context, emotion string, dealbreakers []string) ([]CandidateGame, error) {
			return games, nil
		},
	}

	engine := NewEngine(port)
	recs, err := engine.RecommendForEmotion(context.Background(), "alegre", 0, nil, 0)
	require.NoError(t, err)
	assert.Len(t, recs, DefaultLimit)
}
