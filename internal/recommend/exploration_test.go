package recommend

import (
	"context"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func explorationCandidates() []CandidateGame {
	return []CandidateGame{
		{ID: "game21", Name: "No Man's Sky", Genres: []string{"exploración"}},
		{ID: "game27", Name: "Subnautica", Genres: []string{"supervivencia"}},
		{ID: "game31", Name: "Journey", Genres: []string{"aventura"}},
		{ID: "game32", Name: "Rocket League", Genres: []string{"deportes"}},
	}
}

func TestExplorationSelectTagsAndLimit(t *testing.T) {
	port := &mockPort{
		recentGenres: func(ctx context.Context, userID string, since time.Time) ([]string, error) {
			return []string{"rpg"}, nil
		},
		findUnplayed: func(ctx context.Context, userID string, excludedGenres []string, minMinutes int) ([]CandidateGame, error) {
			assert.Equal(t, []string{"rpg"}, excludedGenres)
			return explorationCandidates(), nil
		},
	}

	selector := NewExplorationSelector(port, rand.New(rand.NewSource(1)))
	recs, err := selector.Select(context.Background(), "user-1", 0, 0)
	require.NoError(t, err)

	assert.Len(t, recs, ExplorationLimit)
	for _, rec := range recs {
		assert.Equal(t, []string{ExplorationTag}, rec.MatchedEmotions)
		assert.Greater(t, rec.Score, 0.0)
		assert.Zero(t, rec.Breakdown.Direct)
		assert.Zero(t, rec.Breakdown.ViaGenre)
		assert.Zero(t, rec.Breakdown.ViaCharacteristic)
	}
}

func TestExplorationSeededOrderIsReproducible(t *testing.T) {
	newSelector := func() *ExplorationSelector {
		port := &mockPort{
			findUnplayed: func(ctx context.Context, userID string, excludedGenres []string, minMinutes int) ([]CandidateGame, error) {
				return explorationCandidates(), nil
			},
		}
		return NewExplorationSelector(port, rand.New(rand.NewSource(42)))
	}

	first, err := newSelector().Select(context.Background(), "user-1", 0, 4)
	require.NoError(t, err)
	second, err := newSelector().Select(context.Background(), "user-1", 0, 4)
	require.NoError(t, err)

	require.Len(t, second, len(first))
	for i := range first {
		assert.Equal(t, first[i].ID, second[i].ID)
		assert.Equal(t, first[i].Score, second[i].Score)
	}
}

func TestExplorationSortedByScoreDescending(t *testing.T) {
	port := &mockPort{
		findUnplayed: func(ctx context.Context, userID string, excludedGenres []string, minMinutes int) ([]CandidateGame, error) {
			return explorationCandidates(), nil
		},
	}

	selector := NewExplorationSelector(port, rand.New(rand.NewSource(7)))
	recs, err := selector.Select(context.Background(), "user-1", 0, 4)
	require.NoError(t, err)
	require.Len(t, recs, 4)

	for i := 1; i < len(recs); i++ {
		assert.GreaterOrEqual(t, recs[i-1].Score, recs[i].Score)
	}
}

func TestExplorationDurationFilter(t *testing.T) {
	port := &mockPort{
		findUnplayed: func(ctx context.Context, userID string, excludedGenres []string, minMinutes int) ([]CandidateGame, error) {
			return []CandidateGame{
				{ID: "too-short", DurationMaxMinutes: 30},
				{ID: "fits", DurationMaxMinutes: 180},
			}, nil
		},
	}

	selector := NewExplorationSelector(port, rand.New(rand.NewSource(3)))
	recs, err := selector.Select(context.Background(), "user-1", 60, 0)
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, "fits", recs[0].ID)
}

func TestExplorationWindowIsThirtyDays(t *testing.T) {
	var captured time.Time
	port := &mockPort{
		recentGenres: func(ctx context.Context, userID string, since time.Time) ([]string, error) {
			captured = since
			return nil, nil
		},
	}

	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	selector := NewExplorationSelector(port, rand.New(rand.NewSource(1)))
	selector.now = func() time.Time { return now }

	_, err := selector.Select(context.Background(), "user-1", 0, 0)
	require.NoError(t, err)
	assert.Equal(t, now.Add(-30*24*time.Hour), captured)
}
