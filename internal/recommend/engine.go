package recommend

import (
	"context"
	"sort"

	"github.com/fatupopzz/game-soul/pkg/errors"
	"github.com/fatupopzz/game-soul/pkg/logger"
	"go.uber.org/zap"
)

// Scoring policy. The multipliers are part of the scoring contract shared
// with the seeded graph data; changing them changes every ranking.
const (
	// Outer weights combining the breakdown components into the total
	directWeight         = 1.0
	genreWeight          = 0.5
	characteristicWeight = 0.3

	// Inner weights applied to RELACIONADO_CON intensities when
	// accumulating the genre and characteristic components
	genreRelationWeight          = 0.5
	characteristicRelationWeight = 0.3
)

// DefaultLimit is the result limit used when the caller passes none
const DefaultLimit = 5

// Engine computes composite resonance scores for candidate games, applies
// the exclusion filters and returns a ranked, truncated list. It is
// stateless; all mutable state lives behind the QueryPort.
type Engine struct {
	port   QueryPort
	logger *zap.Logger
}

// NewEngine creates a scoring engine over the given datastore port
func NewEngine(port QueryPort) *Engine {
	return &Engine{
		port:   port,
		logger: logger.Get(),
	}
}

// RecommendForProfile ranks games against a weighted multi-emotion profile.
// Query failures cascade to cheaper variants; a database error is only
// returned once every variant has failed.
func (e *Engine) RecommendForProfile(ctx context.Context, emotions map[string]float64, dominantEmotion, userID string, minMinutes int, dealbreakers []string, limit int) ([]Recommendation, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}

	candidates, err := e.port.FindGamesByProfile(ctx, emotions, userID, minMinutes, dealbreakers)
	if err != nil {
		e.logger.Warn("Profile query failed, falling back to direct emotion query",
			zap.String("user_id", userID),
			zap.String("dominant_emotion", dominantEmotion),
			zap.Error(err),
		)
		return e.recommendDirect(ctx, dominantEmotion, minMinutes, dealbreakers, limit, true)
	}

	ranked := e.rank(emotions, candidates, userID != "", minMinutes, dealbreakers, limit)
	if len(ranked) > 0 {
		return ranked, nil
	}

	// Post-filter set is empty: relax to the direct emotion-match clause
	// before giving the caller an empty answer.
	e.logger.Info("No candidates survived filtering, relaxing to direct query",
		zap.String("dominant_emotion", dominantEmotion),
		zap.Int("raw_candidates", len(candidates)),
	)
	direct, err := e.port.FindGamesByEmotionDirect(ctx, dominantEmotion)
	if err != nil {
		e.logger.Warn("Relaxed direct query failed, emitting zero results",
			zap.String("dominant_emotion", dominantEmotion),
			zap.Error(err),
		)
		return []Recommendation{}, nil
	}
	return e.rank(emotions, direct, false, 0, nil, limit), nil
}

// RecommendForEmotion is the simplified single-emotion path: the score is
// the direct resonance intensity alone.
func (e *Engine) RecommendForEmotion(ctx context.Context, emotion string, minMinutes int, dealbreakers []string, limit int) ([]Recommendation, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}
	return e.recommendDirect(ctx, emotion, minMinutes, dealbreakers, limit, false)
}

// recommendDirect runs the single-emotion query chain: annotated query
// first, bare direct query when it fails or returns nothing.
func (e *Engine) recommendDirect(ctx context.Context, emotion string, minMinutes int, dealbreakers []string, limit int, exhausted bool) ([]Recommendation, error) {
	profile := map[string]float64{emotion: 1.0}

	candidates, err := e.port.FindGamesByEmotion(ctx, emotion, dealbreakers)
	if err == nil {
		ranked := e.rank(profile, candidates, false, minMinutes, dealbreakers, limit)
		if len(ranked) > 0 {
			return ranked, nil
		}
		e.logger.Info("Emotion query returned no usable candidates, trying direct variant",
			zap.String("emotion", emotion),
		)
	} else {
		e.logger.Warn("Emotion query failed, trying direct variant",
			zap.String("emotion", emotion),
			zap.Error(err),
		)
	}

	direct, directErr := e.port.FindGamesByEmotionDirect(ctx, emotion)
	if directErr != nil {
		if err != nil || exhausted {
			// Every variant failed
			return nil, errors.NewDatabase("recommendations", directErr)
		}
		e.logger.Warn("Direct query variant failed, emitting zero results",
			zap.String("emotion", emotion),
			zap.Error(directErr),
		)
		return []Recommendation{}, nil
	}
	return e.rank(profile, direct, false, 0, nil, limit), nil
}

// rank applies the exclusion filters, scores the survivors, sorts by score
// descending (stable, ties keep input order) and truncates to limit.
func (e *Engine) rank(emotions map[string]float64, candidates []CandidateGame, excludePlayed bool, minMinutes int, dealbreakers []string, limit int) []Recommendation {
	blocked := make(map[string]bool, len(dealbreakers))
	for _, d := range dealbreakers {
		blocked[d] = true
	}

	out := make([]Recommendation, 0, len(candidates))
	for _, c := range candidates {
		if excludePlayed && c.Played {
			continue
		}
		if minMinutes > 0 && c.DurationMaxMinutes > 0 && c.DurationMaxMinutes < minMinutes {
			continue
		}
		if hasAny(c.Characteristics, blocked) {
			continue
		}

		breakdown, matched := e.scoreCandidate(emotions, c)
		total := breakdown.Direct*directWeight +
			breakdown.ViaGenre*genreWeight +
			breakdown.ViaCharacteristic*characteristicWeight

		out = append(out, Recommendation{
			ID:              c.ID,
			Name:            c.Name,
			Description:     c.Description,
			Score:           total,
			Breakdown:       &breakdown,
			Genres:          c.Genres,
			Characteristics: c.Characteristics,
			MatchedEmotions: matched,
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Score > out[j].Score
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

// scoreCandidate accumulates the breakdown components for one game against
// the profile's emotions.
func (e *Engine) scoreCandidate(emotions map[string]float64, c CandidateGame) (ScoreBreakdown, []string) {
	var b ScoreBreakdown
	matched := make([]string, 0, len(c.EmotionIntensity))

	for emotion, intensity := range c.EmotionIntensity {
		if _, ok := emotions[emotion]; !ok {
			continue
		}
		b.Direct += intensity
		matched = append(matched, emotion)
	}
	sort.Strings(matched)

	for _, rel := range c.GenreRelations {
		if _, ok := emotions[rel.Emotion]; ok {
			b.ViaGenre += rel.Intensity * genreRelationWeight
		}
	}
	for _, rel := range c.CharacteristicRelations {
		if _, ok := emotions[rel.Emotion]; ok {
			b.ViaCharacteristic += rel.Intensity * characteristicRelationWeight
		}
	}
	return b, matched
}

func hasAny(values []string, blocked map[string]bool) bool {
	for _, v := range values {
		if blocked[v] {
			return true
		}
	}
	return false
}
