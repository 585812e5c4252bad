// Package graph implements the recommendation engine's datastore port on
// top of Neo4j. The graph schema keeps the Spanish labels of the existing
// database: Juego, Emocion, Caracteristica, Genero, RangoDuracion, Usuario,
// with RESUENA_CON, TIENE_CARACTERISTICA, TIENE_GENERO, TIENE_DURACION,
// RELACIONADO_CON, HA_JUGADO, ESTADO_EMOCIONAL and PREFIERE_DURACION edges.
package graph

import (
	"context"

	"github.com/fatupopzz/game-soul/pkg/logger"
	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"go.uber.org/zap"
)

// Repository handles all Neo4j database operations
type Repository struct {
	driver neo4j.DriverWithContext
	logger *zap.Logger
}

// NewRepository creates a new graph repository
func NewRepository(driver neo4j.DriverWithContext) *Repository {
	return &Repository{
		driver: driver,
		logger: logger.Get(),
	}
}

// Close closes the Neo4j driver connection
func (r *Repository) Close() error {
	return r.driver.Close(context.Background())
}

func (r *Repository) readSession(ctx context.Context) neo4j.SessionWithContext {
	return r.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeRead})
}

func (r *Repository) writeSession(ctx context.Context) neo4j.SessionWithContext {
	return r.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeWrite})
}
