package recommend

import (
	"context"
	"math/rand"
	"sort"
	"sync"
	"time"

	"github.com/fatupopzz/game-soul/pkg/logger"
	"go.uber.org/zap"
)

const (
	// ExplorationLimit is the default cap on exploration suggestions
	ExplorationLimit = 3

	// ExplorationThreshold is the primary-result count below which callers
	// should supplement with exploration suggestions
	ExplorationThreshold = 3

	// explorationWindow bounds the "recently played" genre lookback
	explorationWindow = 30 * 24 * time.Hour

	// explorationScoreOffset keeps randomized scores away from exact zero
	explorationScoreOffset = 0.01

	// ExplorationTag marks exploration suggestions in matched_emotions
	ExplorationTag = "exploración"
)

// ExplorationSelector surfaces games from genres the user has not played
// recently, counteracting over-fitting to the dominant emotion. Unlike the
// scoring engine its ordering is intentionally randomized.
type ExplorationSelector struct {
	port   QueryPort
	logger *zap.Logger

	mu  sync.Mutex
	rng *rand.Rand
	now func() time.Time
}

// NewExplorationSelector creates a selector. The rand source is injected so
// tests can seed it for reproducible orderings.
func NewExplorationSelector(port QueryPort, rng *rand.Rand) *ExplorationSelector {
	return &ExplorationSelector{
		port:   port,
		logger: logger.Get(),
		rng:    rng,
		now:    time.Now,
	}
}

// Select returns up to limit exploration suggestions for the user. Needs
// user history; callers skip it for anonymous requests.
func (s *ExplorationSelector) Select(ctx context.Context, userID string, minMinutes, limit int) ([]Recommendation, error) {
	if limit <= 0 {
		limit = ExplorationLimit
	}

	since := s.now().Add(-explorationWindow)
	recent, err := s.port.RecentGenres(ctx, userID, since)
	if err != nil {
		return nil, err
	}

	candidates, err := s.port.FindUnplayedGenreGames(ctx, userID, recent, minMinutes)
	if err != nil {
		return nil, err
	}

	out := make([]Recommendation, 0, len(candidates))
	for _, c := range candidates {
		if minMinutes > 0 && c.DurationMaxMinutes > 0 && c.DurationMaxMinutes < minMinutes {
			continue
		}
		out = append(out, Recommendation{
			ID:              c.ID,
			Name:            c.Name,
			Description:     c.Description,
			Score:           s.draw(),
			Breakdown:       &ScoreBreakdown{},
			Genres:          c.Genres,
			Characteristics: c.Characteristics,
			MatchedEmotions: []string{ExplorationTag},
		})
	}

	sortByScore(out)
	if len(out) > limit {
		out = out[:limit]
	}

	s.logger.Debug("Exploration selection complete",
		zap.String("user_id", userID),
		zap.Int("recent_genres", len(recent)),
		zap.Int("selected", len(out)),
	)
	return out, nil
}

// draw produces a uniform random score with a small offset so no suggestion
// ever scores exactly zero.
func (s *ExplorationSelector) draw() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rng.Float64() + explorationScoreOffset
}

func sortByScore(recs []Recommendation) {
	sort.SliceStable(recs, func(i, j int) bool {
		return recs[i].Score > recs[j].Score
	})
}

