package recommend

import (
	"context"
	"time"
)

// ScoreBreakdown details the components of a composite resonance score
type ScoreBreakdown struct {
	// Score from the direct game-emotion resonance edges
	Direct float64 `json:"directa"`
	// Score contributed through genre-emotion relations
	ViaGenre float64 `json:"por_genero"`
	// Score contributed through characteristic-emotion relations
	ViaCharacteristic float64 `json:"por_caracteristica"`
}

// Recommendation is the transport value returned to callers. JSON field
// names keep the Spanish wire contract of the existing frontend.
type Recommendation struct {
	ID              string          `json:"id"`
	Name            string          `json:"nombre"`
	Description     string          `json:"descripcion"`
	Score           float64         `json:"resonancia"`
	Breakdown       *ScoreBreakdown `json:"resonancia_desglosada,omitempty"`
	Genres          []string        `json:"generos"`
	Characteristics []string        `json:"caracteristicas"`
	MatchedEmotions []string        `json:"emociones_coincidentes"`
}

// EmotionRelation is a weighted link between a genre or characteristic and
// an emotion, as stored on RELACIONADO_CON edges.
type EmotionRelation struct {
	Emotion   string
	Intensity float64
}

// CandidateGame is a game row returned by the graph datastore, annotated
// with everything the scoring engine needs to filter and rank it.
type CandidateGame struct {
	ID          string
	Name        string
	Description string

	Genres          []string
	Characteristics []string

	// EmotionIntensity maps each matched emotion to the intensity of the
	// game's RESUENA_CON edge toward it.
	EmotionIntensity map[string]float64

	// Relations from the game's genres/characteristics to emotions
	GenreRelations          []EmotionRelation
	CharacteristicRelations []EmotionRelation

	// MaxMinutes of the game's duration band; 0 when the game has none.
	DurationMaxMinutes int

	// Played is set when the requesting user already played this game.
	Played bool
}

// QueryPort is the contract the engine consumes from the graph datastore.
// Every call either returns a result set (possibly empty) or fails with a
// datastore-level error; the engine never assumes schema auto-repair.
type QueryPort interface {
	// FindGamesByEmotion returns games resonating with one emotion,
	// annotated with characteristics for dealbreaker filtering.
	FindGamesByEmotion(ctx context.Context, emotion string, dealbreakers []string) ([]CandidateGame, error)

	// FindGamesByEmotionDirect is the cheapest query variant: only the
	// direct resonance clause, no characteristic or genre joins.
	FindGamesByEmotionDirect(ctx context.Context, emotion string) ([]CandidateGame, error)

	// FindGamesByProfile returns games resonating with any emotion of the
	// profile, annotated with per-emotion intensities, genres,
	// characteristics, genre/characteristic emotion relations, duration
	// and played state for the given user (userID may be empty).
	FindGamesByProfile(ctx context.Context, emotions map[string]float64, userID string, minMinutes int, dealbreakers []string) ([]CandidateGame, error)

	// FindUnplayedGenreGames returns unplayed games having at least one
	// genre outside the excluded set and meeting the duration filter.
	FindUnplayedGenreGames(ctx context.Context, userID string, excludedGenres []string, minMinutes int) ([]CandidateGame, error)

	// RecentGenres returns the genres of games the user played since the
	// given instant.
	RecentGenres(ctx context.Context, userID string, since time.Time) ([]string, error)

	// UpsertPlayed records that the user played a game, last-write-wins
	// per (user, game).
	UpsertPlayed(ctx context.Context, userID, gameID string, satisfaction int) error

	// GetUserResonance reads the user's accumulated resonance toward an
	// emotion. The second return is false when no edge exists yet.
	GetUserResonance(ctx context.Context, userID, emotion string) (float64, bool, error)

	// UpsertUserResonance writes the user's resonance toward an emotion.
	// Implementations clamp the intensity to [0,1] on write.
	UpsertUserResonance(ctx context.Context, userID, emotion string, intensity float64) error
}
