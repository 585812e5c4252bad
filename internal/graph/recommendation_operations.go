package graph

import (
	"context"
	"fmt"
	"time"

	"github.com/fatupopzz/game-soul/internal/recommend"
	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"go.uber.org/zap"
)

// candidateLimit bounds every candidate query; the engine filters and
// truncates further, so we fetch headroom beyond the response limit.
const candidateLimit = 25

const missingDescription = "Sin descripción disponible"

// FindGamesByEmotion returns games resonating with one emotion, annotated
// with characteristics and genres for filtering.
func (r *Repository) FindGamesByEmotion(ctx context.Context, emotion string, dealbreakers []string) ([]recommend.CandidateGame, error) {
	session := r.readSession(ctx)
	defer session.Close(ctx)

	query := `
		// Buscar juegos que resuenan con la emoción proporcionada
		MATCH (j:Juego)-[res:RESUENA_CON]->(e:Emocion {tipo: $emotion_type})

		// Recopilar características para filtrado
		OPTIONAL MATCH (j)-[:TIENE_CARACTERISTICA]->(c:Caracteristica)
		WITH j, res, e, collect(DISTINCT c.nombre) AS caracteristicas

		// Filtrar por dealbreakers si hay alguno
		WHERE size($dealbreakers) = 0 OR NONE(d IN $dealbreakers WHERE d IN caracteristicas)

		// Recopilar géneros y banda de duración
		OPTIONAL MATCH (j)-[:TIENE_GENERO]->(g:Genero)
		WITH j, res, e, caracteristicas, collect(DISTINCT g.nombre) AS generos
		OPTIONAL MATCH (j)-[:TIENE_DURACION]->(d:RangoDuracion)
		WITH j, res, e, caracteristicas, generos, max(d.max_minutos) AS duracion_max

		ORDER BY res.intensidad DESC
		LIMIT $limit

		RETURN
			j.id AS id,
			j.nombre AS nombre,
			COALESCE(j.descripcion, $sin_descripcion) AS descripcion,
			res.intensidad AS resonancia,
			e.tipo AS emocion,
			caracteristicas,
			generos,
			duracion_max
	`

	result, err := session.Run(ctx, query, map[string]interface{}{
		"emotion_type":    emotion,
		"dealbreakers":    dealbreakers,
		"limit":           candidateLimit,
		"sin_descripcion": missingDescription,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to query games by emotion: %w", err)
	}

	var candidates []recommend.CandidateGame
	for result.Next(ctx) {
		record := result.Record()
		id := getString(record, "id", "")
		if id == "" {
			r.logger.Warn("Skipping game row without id", zap.String("emotion", emotion))
			continue
		}
		candidates = append(candidates, recommend.CandidateGame{
			ID:          id,
			Name:        getString(record, "nombre", "Juego sin nombre"),
			Description: getString(record, "descripcion", missingDescription),
			EmotionIntensity: map[string]float64{
				getString(record, "emocion", emotion): getFloat64(record, "resonancia", 0.5),
			},
			Characteristics:    getStringSlice(record, "caracteristicas"),
			Genres:             getStringSlice(record, "generos"),
			DurationMaxMinutes: getInt(record, "duracion_max", 0),
		})
	}
	if err := result.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate games by emotion: %w", err)
	}

	r.logger.Debug("Games by emotion fetched",
		zap.String("emotion", emotion),
		zap.Int("candidates", len(candidates)),
	)
	return candidates, nil
}

// FindGamesByEmotionDirect is the cheapest variant: only the resonance
// clause, no joins. Used when the annotated query fails or comes back empty.
func (r *Repository) FindGamesByEmotionDirect(ctx context.Context, emotion string) ([]recommend.CandidateGame, error) {
	session := r.readSession(ctx)
	defer session.Close(ctx)

	query := `
		MATCH (j:Juego)-[res:RESUENA_CON]->(e:Emocion {tipo: $emotion_type})
		RETURN
			j.id AS id,
			j.nombre AS nombre,
			COALESCE(j.descripcion, $sin_descripcion) AS descripcion,
			res.intensidad AS resonancia
		ORDER BY res.intensidad DESC
		LIMIT $limit
	`

	result, err := session.Run(ctx, query, map[string]interface{}{
		"emotion_type":    emotion,
		"limit":           candidateLimit,
		"sin_descripcion": missingDescription,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to run direct emotion query: %w", err)
	}

	var candidates []recommend.CandidateGame
	for result.Next(ctx) {
		record := result.Record()
		id := getString(record, "id", "")
		if id == "" {
			continue
		}
		candidates = append(candidates, recommend.CandidateGame{
			ID:          id,
			Name:        getString(record, "nombre", "Juego sin nombre"),
			Description: getString(record, "descripcion", missingDescription),
			EmotionIntensity: map[string]float64{
				emotion: getFloat64(record, "resonancia", 0.5),
			},
			Characteristics: []string{},
			Genres:          []string{},
		})
	}
	if err := result.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate direct emotion query: %w", err)
	}
	return candidates, nil
}

// FindGamesByProfile returns games resonating with any profile emotion,
// annotated with everything the composite score needs.
func (r *Repository) FindGamesByProfile(ctx context.Context, emotions map[string]float64, userID string, minMinutes int, dealbreakers []string) ([]recommend.CandidateGame, error) {
	session := r.readSession(ctx)
	defer session.Close(ctx)

	emotionTypes := make([]string, 0, len(emotions))
	for emotion := range emotions {
		emotionTypes = append(emotionTypes, emotion)
	}

	query := `
		// Juegos que resuenan con cualquier emoción del perfil
		MATCH (j:Juego)-[res:RESUENA_CON]->(e:Emocion)
		WHERE e.tipo IN $emotion_types
		WITH j, collect({emocion: e.tipo, intensidad: res.intensidad}) AS resonancias

		// Características para filtrado por dealbreakers
		OPTIONAL MATCH (j)-[:TIENE_CARACTERISTICA]->(c:Caracteristica)
		WITH j, resonancias, collect(DISTINCT c.nombre) AS caracteristicas
		WHERE size($dealbreakers) = 0 OR NONE(d IN $dealbreakers WHERE d IN caracteristicas)

		// Géneros y banda de duración
		OPTIONAL MATCH (j)-[:TIENE_GENERO]->(g:Genero)
		WITH j, resonancias, caracteristicas, collect(DISTINCT g.nombre) AS generos
		OPTIONAL MATCH (j)-[:TIENE_DURACION]->(d:RangoDuracion)
		WITH j, resonancias, caracteristicas, generos, max(d.max_minutos) AS duracion_max
		WHERE duracion_max IS NULL OR duracion_max >= $min_minutes

		// Relaciones género-emoción y característica-emoción
		OPTIONAL MATCH (j)-[:TIENE_GENERO]->(:Genero)-[rg:RELACIONADO_CON]->(eg:Emocion)
		WHERE eg.tipo IN $emotion_types
		WITH j, resonancias, caracteristicas, generos, duracion_max,
		     collect({emocion: eg.tipo, intensidad: rg.intensidad}) AS relaciones_genero
		OPTIONAL MATCH (j)-[:TIENE_CARACTERISTICA]->(:Caracteristica)-[rc:RELACIONADO_CON]->(ec:Emocion)
		WHERE ec.tipo IN $emotion_types
		WITH j, resonancias, caracteristicas, generos, duracion_max, relaciones_genero,
		     collect({emocion: ec.tipo, intensidad: rc.intensidad}) AS relaciones_caracteristica

		// Historial del usuario (si hay contexto de usuario)
		OPTIONAL MATCH (u:Usuario {id: $user_id})-[h:HA_JUGADO]->(j)
		WITH j, resonancias, caracteristicas, generos, duracion_max,
		     relaciones_genero, relaciones_caracteristica, count(h) > 0 AS jugado

		RETURN
			j.id AS id,
			j.nombre AS nombre,
			COALESCE(j.descripcion, $sin_descripcion) AS descripcion,
			resonancias,
			caracteristicas,
			generos,
			duracion_max,
			relaciones_genero,
			relaciones_caracteristica,
			jugado
		ORDER BY j.id
		LIMIT $limit
	`

	result, err := session.Run(ctx, query, map[string]interface{}{
		"emotion_types":   emotionTypes,
		"dealbreakers":    dealbreakers,
		"user_id":         userID,
		"min_minutes":     minMinutes,
		"limit":           candidateLimit,
		"sin_descripcion": missingDescription,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to query games by profile: %w", err)
	}

	var candidates []recommend.CandidateGame
	for result.Next(ctx) {
		record := result.Record()
		id := getString(record, "id", "")
		if id == "" {
			r.logger.Warn("Skipping profile candidate without id")
			continue
		}
		candidates = append(candidates, recommend.CandidateGame{
			ID:                      id,
			Name:                    getString(record, "nombre", "Juego sin nombre"),
			Description:             getString(record, "descripcion", missingDescription),
			EmotionIntensity:        parseResonances(record, "resonancias"),
			Characteristics:         getStringSlice(record, "caracteristicas"),
			Genres:                  getStringSlice(record, "generos"),
			DurationMaxMinutes:      getInt(record, "duracion_max", 0),
			GenreRelations:          parseRelations(record, "relaciones_genero"),
			CharacteristicRelations: parseRelations(record, "relaciones_caracteristica"),
			Played:                  getBool(record, "jugado", false),
		})
	}
	if err := result.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate games by profile: %w", err)
	}

	r.logger.Debug("Games by profile fetched",
		zap.Int("profile_emotions", len(emotionTypes)),
		zap.Int("candidates", len(candidates)),
	)
	return candidates, nil
}

// FindUnplayedGenreGames returns unplayed games with at least one genre
// outside the excluded set, meeting the duration filter.
func (r *Repository) FindUnplayedGenreGames(ctx context.Context, userID string, excludedGenres []string, minMinutes int) ([]recommend.CandidateGame, error) {
	session := r.readSession(ctx)
	defer session.Close(ctx)

	query := `
		MATCH (j:Juego)-[:TIENE_GENERO]->(g:Genero)
		WHERE NOT g.nombre IN $excluded_genres
		  AND NOT exists((:Usuario {id: $user_id})-[:HA_JUGADO]->(j))
		WITH DISTINCT j

		OPTIONAL MATCH (j)-[:TIENE_CARACTERISTICA]->(c:Caracteristica)
		WITH j, collect(DISTINCT c.nombre) AS caracteristicas
		OPTIONAL MATCH (j)-[:TIENE_GENERO]->(g2:Genero)
		WITH j, caracteristicas, collect(DISTINCT g2.nombre) AS generos
		OPTIONAL MATCH (j)-[:TIENE_DURACION]->(d:RangoDuracion)
		WITH j, caracteristicas, generos, max(d.max_minutos) AS duracion_max
		WHERE duracion_max IS NULL OR duracion_max >= $min_minutes

		RETURN
			j.id AS id,
			j.nombre AS nombre,
			COALESCE(j.descripcion, $sin_descripcion) AS descripcion,
			caracteristicas,
			generos,
			duracion_max
		ORDER BY j.id
		LIMIT $limit
	`

	result, err := session.Run(ctx, query, map[string]interface{}{
		"user_id":         userID,
		"excluded_genres": excludedGenres,
		"min_minutes":     minMinutes,
		"limit":           candidateLimit,
		"sin_descripcion": missingDescription,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to query unplayed genre games: %w", err)
	}

	var candidates []recommend.CandidateGame
	for result.Next(ctx) {
		record := result.Record()
		id := getString(record, "id", "")
		if id == "" {
			continue
		}
		candidates = append(candidates, recommend.CandidateGame{
			ID:                 id,
			Name:               getString(record, "nombre", "Juego sin nombre"),
			Description:        getString(record, "descripcion", missingDescription),
			Characteristics:    getStringSlice(record, "caracteristicas"),
			Genres:             getStringSlice(record, "generos"),
			DurationMaxMinutes: getInt(record, "duracion_max", 0),
		})
	}
	if err := result.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate unplayed genre games: %w", err)
	}
	return candidates, nil
}

// RecentGenres returns the genres of games the user played since the given
// instant.
func (r *Repository) RecentGenres(ctx context.Context, userID string, since time.Time) ([]string, error) {
	session := r.readSession(ctx)
	defer session.Close(ctx)

	query := `
		MATCH (u:Usuario {id: $user_id})-[h:HA_JUGADO]->(j:Juego)-[:TIENE_GENERO]->(g:Genero)
		WHERE h.fecha >= datetime($since)
		RETURN collect(DISTINCT g.nombre) AS generos
	`

	result, err := session.Run(ctx, query, map[string]interface{}{
		"user_id": userID,
		"since":   formatTimestamp(since),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to query recent genres: %w", err)
	}

	if result.Next(ctx) {
		return getStringSlice(result.Record(), "generos"), nil
	}
	if err := result.Err(); err != nil {
		return nil, fmt.Errorf("failed to read recent genres: %w", err)
	}
	return []string{}, nil
}

// parseResonances reads a collected list of {emocion, intensidad} maps
func parseResonances(record *neo4j.Record, key string) map[string]float64 {
	out := make(map[string]float64)
	val, ok := record.Get(key)
	if !ok || val == nil {
		return out
	}
	list, ok := val.([]interface{})
	if !ok {
		return out
	}
	for _, item := range list {
		m, ok := item.(map[string]interface{})
		if !ok {
			continue
		}
		emotion := getStringFromMap(m, "emocion", "")
		if emotion == "" {
			// OPTIONAL MATCH misses collect as null entries
			continue
		}
		out[emotion] = getFloat64FromMap(m, "intensidad", 0.5)
	}
	return out
}

// parseRelations reads a collected list of {emocion, intensidad} maps into
// relation slices, skipping the null entries of unmatched OPTIONAL MATCH.
func parseRelations(record *neo4j.Record, key string) []recommend.EmotionRelation {
	var out []recommend.EmotionRelation
	val, ok := record.Get(key)
	if !ok || val == nil {
		return out
	}
	list, ok := val.([]interface{})
	if !ok {
		return out
	}
	for _, item := range list {
		m, ok := item.(map[string]interface{})
		if !ok {
			continue
		}
		emotion := getStringFromMap(m, "emocion", "")
		if emotion == "" {
			continue
		}
		out = append(out, recommend.EmotionRelation{
			Emotion:   emotion,
			Intensity: getFloat64FromMap(m, "intensidad", 0),
		})
	}
	return out
}
