package graph

import (
	"context"
	"fmt"
	"time"

	"github.com/fatupopzz/game-soul/internal/catalog"
	"github.com/fatupopzz/game-soul/internal/questionnaire"
	"github.com/fatupopzz/game-soul/pkg/errors"
	"go.uber.org/zap"
)

// significantResonanceWeight is the floor below which profile resonances
// are not persisted
const significantResonanceWeight = 0.1

// EnsureUser creates the user node if it does not exist and refreshes its
// last-activity timestamp otherwise.
func (r *Repository) EnsureUser(ctx context.Context, userID string) error {
	session := r.writeSession(ctx)
	defer session.Close(ctx)

	query := `
		MERGE (u:Usuario {id: $user_id})
		ON CREATE SET
			u.fecha_creacion = datetime(),
			u.nombre = $user_id,
			u.estado = "activo"
		ON MATCH SET
			u.ultima_actividad = datetime()
		RETURN u.id AS id
	`

	_, err := session.Run(ctx, query, map[string]interface{}{"user_id": userID})
	if err != nil {
		return fmt.Errorf("failed to ensure user %s: %w", userID, err)
	}
	return nil
}

// RegisterUser creates a user with a generated id, username and optional
// email.
func (r *Repository) RegisterUser(ctx context.Context, userID, username, email string) error {
	session := r.writeSession(ctx)
	defer session.Close(ctx)

	query := `
		MERGE (u:Usuario {id: $user_id})
		ON CREATE SET u.fecha_creacion = datetime()
		SET u.nombre = $username,
		    u.email = $email,
		    u.estado = "activo",
		    u.ultima_actividad = datetime()
		RETURN u.id AS id
	`

	result, err := session.Run(ctx, query, map[string]interface{}{
		"user_id":  userID,
		"username": username,
		"email":    email,
	})
	if err != nil {
		return fmt.Errorf("failed to register user: %w", err)
	}
	if _, err := result.Single(ctx); err != nil {
		return fmt.Errorf("failed to verify user registration: %w", err)
	}

	r.logger.Info("User registered",
		zap.String("user_id", userID),
		zap.String("username", username),
	)
	return nil
}

// SaveEmotionalProfile persists a freshly built profile: current emotional
// state, duration preference and the significant emotion resonances.
// Failures on the secondary writes are logged and returned but do not undo
// the earlier ones; profile state is last-write-wins.
func (r *Repository) SaveEmotionalProfile(ctx context.Context, profile *questionnaire.EmotionalProfile) error {
	if err := r.EnsureUser(ctx, profile.UserID); err != nil {
		return err
	}

	dominantIntensity := profile.Emotions[profile.DominantEmotion]
	if dominantIntensity == 0 {
		dominantIntensity = 1.0
	}
	if err := r.ReplaceEmotionalState(ctx, profile.UserID, profile.DominantEmotion, dominantIntensity); err != nil {
		return err
	}

	if err := r.SetPreferredDuration(ctx, profile.UserID, profile.DurationBand.Name); err != nil {
		return err
	}

	for emotion, weight := range profile.Emotions {
		if weight <= significantResonanceWeight {
			continue
		}
		if err := r.UpsertUserResonance(ctx, profile.UserID, emotion, weight); err != nil {
			return fmt.Errorf("failed to save resonance toward %s: %w", emotion, err)
		}
	}

	r.logger.Info("Emotional profile saved",
		zap.String("user_id", profile.UserID),
		zap.String("dominant_emotion", profile.DominantEmotion),
		zap.String("duration_band", profile.DurationBand.Name),
		zap.Int("emotions", len(profile.Emotions)),
	)
	return nil
}

// ReplaceEmotionalState retires any previous emotional_state edge and
// creates the new one in a single statement, so concurrent profile writes
// cannot leave the user without a state edge.
func (r *Repository) ReplaceEmotionalState(ctx context.Context, userID, emotion string, intensity float64) error {
	session := r.writeSession(ctx)
	defer session.Close(ctx)

	query := `
		MATCH (u:Usuario {id: $user_id})
		MATCH (e:Emocion {tipo: $emotion_type})
		OPTIONAL MATCH (u)-[old:ESTADO_EMOCIONAL]->()
		DELETE old
		MERGE (u)-[estado:ESTADO_EMOCIONAL]->(e)
		SET estado.intensidad = $intensity,
		    estado.fecha = datetime()
		RETURN e.tipo AS tipo
	`

	result, err := session.Run(ctx, query, map[string]interface{}{
		"user_id":      userID,
		"emotion_type": emotion,
		"intensity":    clampIntensity(intensity),
	})
	if err != nil {
		return fmt.Errorf("failed to replace emotional state: %w", err)
	}
	if _, err := result.Single(ctx); err != nil {
		// MATCH found no user or no such emotion node
		return fmt.Errorf("failed to verify emotional state for user %s, emotion %s: %w", userID, emotion, err)
	}
	return nil
}

// SetPreferredDuration points the user at a duration band, replacing any
// previous preference.
func (r *Repository) SetPreferredDuration(ctx context.Context, userID, bandName string) error {
	session := r.writeSession(ctx)
	defer session.Close(ctx)

	query := `
		MATCH (u:Usuario {id: $user_id})
		MATCH (rd:RangoDuracion {nombre: $range_name})
		OPTIONAL MATCH (u)-[old:PREFIERE_DURACION]->(otro)
		WHERE otro <> rd
		DELETE old
		MERGE (u)-[rel:PREFIERE_DURACION]->(rd)
		SET rel.fecha = datetime()
		RETURN rd.nombre AS nombre
	`

	_, err := session.Run(ctx, query, map[string]interface{}{
		"user_id":    userID,
		"range_name": bandName,
	})
	if err != nil {
		return fmt.Errorf("failed to set preferred duration: %w", err)
	}
	return nil
}

// GetUserProfile reads the persisted profile back as an EmotionalProfile.
// Returns a not-found error when the user has no emotional state yet.
func (r *Repository) GetUserProfile(ctx context.Context, userID string, cat *catalog.Catalog) (*questionnaire.EmotionalProfile, error) {
	session := r.readSession(ctx)
	defer session.Close(ctx)

	query := `
		MATCH (u:Usuario {id: $user_id})
		OPTIONAL MATCH (u)-[:ESTADO_EMOCIONAL]->(e:Emocion)
		OPTIONAL MATCH (u)-[:PREFIERE_DURACION]->(rd:RangoDuracion)
		OPTIONAL MATCH (u)-[res:RESUENA_CON]->(re:Emocion)
		RETURN
			e.tipo AS emocion_dominante,
			rd.nombre AS rango_duracion,
			collect({emocion: re.tipo, intensidad: res.intensidad}) AS resonancias
	`

	result, err := session.Run(ctx, query, map[string]interface{}{"user_id": userID})
	if err != nil {
		return nil, fmt.Errorf("failed to query user profile: %w", err)
	}

	if !result.Next(ctx) {
		if err := result.Err(); err != nil {
			return nil, fmt.Errorf("failed to read user profile: %w", err)
		}
		return nil, errors.NewUserNotFound(userID)
	}

	record := result.Record()
	dominant := getString(record, "emocion_dominante", "")
	if dominant == "" {
		return nil, errors.NewProfileNotFound(userID)
	}

	band, ok := cat.BandByName(getString(record, "rango_duracion", ""))
	if !ok {
		band = cat.DefaultBand()
	}

	return &questionnaire.EmotionalProfile{
		UserID:          userID,
		Emotions:        parseResonances(record, "resonancias"),
		DominantEmotion: dominant,
		DurationBand:    band,
	}, nil
}

// UpsertPlayed records that the user played a game; satisfaction and
// timestamp are last-write-wins per (user, game).
func (r *Repository) UpsertPlayed(ctx context.Context, userID, gameID string, satisfaction int) error {
	session := r.writeSession(ctx)
	defer session.Close(ctx)

	query := `
		MERGE (u:Usuario {id: $user_id})
		ON CREATE SET u.nombre = $user_id, u.estado = "activo", u.fecha_creacion = datetime()
		MERGE (j:Juego {id: $game_id})
		MERGE (u)-[h:HA_JUGADO]->(j)
		SET h.satisfaccion = $satisfaction,
		    h.fecha = datetime()
		RETURN j.id AS id
	`

	_, err := session.Run(ctx, query, map[string]interface{}{
		"user_id":      userID,
		"game_id":      gameID,
		"satisfaction": satisfaction,
	})
	if err != nil {
		return fmt.Errorf("failed to upsert played edge: %w", err)
	}
	return nil
}

// GetUserResonance reads the user's resonance toward an emotion; the second
// return is false when no edge exists.
func (r *Repository) GetUserResonance(ctx context.Context, userID, emotion string) (float64, bool, error) {
	session := r.readSession(ctx)
	defer session.Close(ctx)

	query := `
		MATCH (u:Usuario {id: $user_id})-[res:RESUENA_CON]->(e:Emocion {tipo: $emotion_type})
		RETURN res.intensidad AS intensidad
	`

	result, err := session.Run(ctx, query, map[string]interface{}{
		"user_id":      userID,
		"emotion_type": emotion,
	})
	if err != nil {
		return 0, false, fmt.Errorf("failed to query user resonance: %w", err)
	}

	if result.Next(ctx) {
		return getFloat64(result.Record(), "intensidad", 0), true, nil
	}
	if err := result.Err(); err != nil {
		return 0, false, fmt.Errorf("failed to read user resonance: %w", err)
	}
	return 0, false, nil
}

// UpsertUserResonance writes the user's resonance toward an emotion,
// creating the emotion node reference if feedback names one outside the
// seeded set. Intensity is clamped to [0,1] on every write.
func (r *Repository) UpsertUserResonance(ctx context.Context, userID, emotion string, intensity float64) error {
	session := r.writeSession(ctx)
	defer session.Close(ctx)

	query := `
		MATCH (u:Usuario {id: $user_id})
		MERGE (e:Emocion {tipo: $emotion_type})
		MERGE (u)-[res:RESUENA_CON]->(e)
		SET res.intensidad = $intensity,
		    res.fecha = datetime()
		RETURN e.tipo AS tipo
	`

	_, err := session.Run(ctx, query, map[string]interface{}{
		"user_id":      userID,
		"emotion_type": emotion,
		"intensity":    clampIntensity(intensity),
	})
	if err != nil {
		return fmt.Errorf("failed to upsert user resonance: %w", err)
	}
	return nil
}

// PlayHistory is one entry of a user's played-games history
type PlayHistory struct {
	GameID       string    `json:"game_id"`
	GameName     string    `json:"game_name"`
	Satisfaction int       `json:"satisfaction"`
	PlayedAt     time.Time `json:"played_at"`
}

// GetPlayHistory returns the user's played games, most recent first
func (r *Repository) GetPlayHistory(ctx context.Context, userID string) ([]PlayHistory, error) {
	session := r.readSession(ctx)
	defer session.Close(ctx)

	query := `
		MATCH (u:Usuario {id: $user_id})-[h:HA_JUGADO]->(j:Juego)
		RETURN j.id AS game_id,
		       j.nombre AS game_name,
		       h.satisfaccion AS satisfaction,
		       h.fecha AS played_at
		ORDER BY h.fecha DESC
	`

	result, err := session.Run(ctx, query, map[string]interface{}{"user_id": userID})
	if err != nil {
		return nil, fmt.Errorf("failed to query play history: %w", err)
	}

	var history []PlayHistory
	for result.Next(ctx) {
		record := result.Record()
		entry := PlayHistory{
			GameID:       getString(record, "game_id", ""),
			GameName:     getString(record, "game_name", ""),
			Satisfaction: getInt(record, "satisfaction", 0),
		}
		if val, ok := record.Get("played_at"); ok {
			if t, ok := val.(time.Time); ok {
				entry.PlayedAt = t
			}
		}
		history = append(history, entry)
	}
	if err := result.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate play history: %w", err)
	}
	return history, nil
}

func clampIntensity(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
