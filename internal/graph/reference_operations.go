package graph

import (
	"context"
	"fmt"
)

// ListEmotionTypes returns the emotion types seeded in the graph
func (r *Repository) ListEmotionTypes(ctx context.Context) ([]string, error) {
	return r.listNodeProperty(ctx, "Emocion", "tipo")
}

// ListCharacteristicNames returns the characteristic names seeded in the graph
func (r *Repository) ListCharacteristicNames(ctx context.Context) ([]string, error) {
	return r.listNodeProperty(ctx, "Caracteristica", "nombre")
}

// ListGenres returns the genre names seeded in the graph
func (r *Repository) ListGenres(ctx context.Context) ([]string, error) {
	return r.listNodeProperty(ctx, "Genero", "nombre")
}

func (r *Repository) listNodeProperty(ctx context.Context, label, property string) ([]string, error) {
	session := r.readSession(ctx)
	defer session.Close(ctx)

	query := fmt.Sprintf(`
		MATCH (n:%s)
		RETURN n.%s AS value
		ORDER BY value
	`, label, property)

	result, err := session.Run(ctx, query, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s nodes: %w", label, err)
	}

	var values []string
	for result.Next(ctx) {
		if value := getString(result.Record(), "value", ""); value != "" {
			values = append(values, value)
		}
	}
	if err := result.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate %s nodes: %w", label, err)
	}
	return values, nil
}

// ReferenceCounts summarizes the seeded graph content for the diagnostics
// endpoint
type ReferenceCounts struct {
	Games           int64 `json:"juegos"`
	Emotions        int64 `json:"emociones"`
	Characteristics int64 `json:"caracteristicas"`
	Genres          int64 `json:"generos"`
	Resonances      int64 `json:"resonancias"`
	Users           int64 `json:"usuarios"`
}

// CountReferenceData counts the core node and edge populations in one query
func (r *Repository) CountReferenceData(ctx context.Context) (*ReferenceCounts, error) {
	session := r.readSession(ctx)
	defer session.Close(ctx)

	query := `
		MATCH (j:Juego) WITH count(j) AS juegos
		MATCH (e:Emocion) WITH juegos, count(e) AS emociones
		MATCH (c:Caracteristica) WITH juegos, emociones, count(c) AS caracteristicas
		MATCH (g:Genero) WITH juegos, emociones, caracteristicas, count(g) AS generos
		OPTIONAL MATCH ()-[res:RESUENA_CON]->()
		WITH juegos, emociones, caracteristicas, generos, count(res) AS resonancias
		OPTIONAL MATCH (u:Usuario)
		RETURN juegos, emociones, caracteristicas, generos, resonancias, count(u) AS usuarios
	`

	result, err := session.Run(ctx, query, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to count reference data: %w", err)
	}

	record, err := result.Single(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read reference counts: %w", err)
	}

	return &ReferenceCounts{
		Games:           int64(getInt(record, "juegos", 0)),
		Emotions:        int64(getInt(record, "emociones", 0)),
		Characteristics: int64(getInt(record, "caracteristicas", 0)),
		Genres:          int64(getInt(record, "generos", 0)),
		Resonances:      int64(getInt(record, "resonancias", 0)),
		Users:           int64(getInt(record, "usuarios", 0)),
	}, nil
}
