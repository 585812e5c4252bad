package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/fatupopzz/game-soul/internal/catalog"
	"github.com/fatupopzz/game-soul/internal/graph"
	"github.com/fatupopzz/game-soul/pkg/config"
	"github.com/fatupopzz/game-soul/pkg/logger"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"go.uber.org/zap"
)

// seedGame is one sample game with its reference links
type seedGame struct {
	id              string
	name            string
	description     string
	genres          []string
	characteristics []string
	duration        string
	// resonances maps emotion type to RESUENA_CON intensity
	resonances map[string]float64
}

// emotionRelation links a genre or characteristic to an emotion
type emotionRelation struct {
	from      string
	emotion   string
	intensity float64
}

func main() {
	force := flag.Bool("force", false, "Recreate sample games even if games already exist")
	flag.Parse()

	// Initialize logger
	if err := logger.Init("development"); err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer logger.Sync()

	log := logger.Get()
	log.Info("Starting database seeding...")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration", zap.Error(err))
	}

	// Initialize Neo4j driver
	driver, err := neo4j.NewDriverWithContext(
		cfg.Neo4jURI,
		neo4j.BasicAuth(cfg.Neo4jUser, cfg.Neo4jPassword, ""),
	)
	if err != nil {
		log.Fatal("Failed to create Neo4j driver", zap.Error(err))
	}
	defer driver.Close(context.Background())

	// Verify connection
	ctx := context.Background()
	if err := driver.VerifyConnectivity(ctx); err != nil {
		log.Fatal("Failed to verify Neo4j connectivity", zap.Error(err))
	}

	repo := graph.NewRepository(driver)
	cat := catalog.New()

	// Create constraints
	log.Info("Creating constraints...")
	if err := createConstraints(ctx, driver); err != nil {
		log.Warn("Failed to create some constraints (may already exist)", zap.Error(err))
	}

	// Create indexes for better performance
	log.Info("Creating indexes...")
	if err := createIndexes(ctx, driver); err != nil {
		log.Warn("Failed to create some indexes (may already exist)", zap.Error(err))
	}

	// Reference nodes: emotions, characteristics, duration bands. These are
	// idempotent MERGEs and always run.
	log.Info("Seeding reference nodes...")
	if err := seedReferenceNodes(ctx, driver, cat); err != nil {
		log.Fatal("Failed to seed reference nodes", zap.Error(err))
	}

	// Skip sample games when the graph already has games
	counts, err := repo.CountReferenceData(ctx)
	if err == nil && counts.Games > 0 && !*force {
		log.Info("Games already present, skipping sample data (use -force to reseed)",
			zap.Int64("games", counts.Games),
		)
		os.Exit(0)
	}

	log.Info("Seeding sample games...")
	if err := seedGames(ctx, driver); err != nil {
		log.Fatal("Failed to seed sample games", zap.Error(err))
	}

	log.Info("Seeding genre and characteristic emotion relations...")
	if err := seedEmotionRelations(ctx, driver); err != nil {
		log.Fatal("Failed to seed emotion relations", zap.Error(err))
	}

	// Verify
	counts, err = repo.CountReferenceData(ctx)
	if err != nil {
		log.Fatal("Failed to verify seeded data", zap.Error(err))
	}

	log.Info("Seed completed",
		zap.Int64("games", counts.Games),
		zap.Int64("emotions", counts.Emotions),
		zap.Int64("characteristics", counts.Characteristics),
		zap.Int64("genres", counts.Genres),
		zap.Int64("resonances", counts.Resonances),
	)
}

// createConstraints creates Neo4j constraints for data integrity
func createConstraints(ctx context.Context, driver neo4j.DriverWithContext) error {
	session := driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeWrite})
	defer session.Close(ctx)

	constraints := []string{
		"CREATE CONSTRAINT juego_id_unique IF NOT EXISTS FOR (j:Juego) REQUIRE j.id IS UNIQUE",
		"CREATE CONSTRAINT emocion_tipo_unique IF NOT EXISTS FOR (e:Emocion) REQUIRE e.tipo IS UNIQUE",
		"CREATE CONSTRAINT caracteristica_nombre_unique IF NOT EXISTS FOR (c:Caracteristica) REQUIRE c.nombre IS UNIQUE",
		"CREATE CONSTRAINT genero_nombre_unique IF NOT EXISTS FOR (g:Genero) REQUIRE g.nombre IS UNIQUE",
		"CREATE CONSTRAINT rango_duracion_nombre_unique IF NOT EXISTS FOR (rd:RangoDuracion) REQUIRE rd.nombre IS UNIQUE",
		"CREATE CONSTRAINT usuario_id_unique IF NOT EXISTS FOR (u:Usuario) REQUIRE u.id IS UNIQUE",
	}

	for _, constraint := range constraints {
		_, err := session.Run(ctx, constraint, nil)
		if err != nil {
			// Constraints may already exist
			continue
		}
	}

	return nil
}

// createIndexes creates Neo4j indexes for better query performance
func createIndexes(ctx context.Context, driver neo4j.DriverWithContext) error {
	session := driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeWrite})
	defer session.Close(ctx)

	indexes := []string{
		"CREATE INDEX juego_nombre IF NOT EXISTS FOR (j:Juego) ON (j.nombre)",
		"CREATE INDEX usuario_nombre IF NOT EXISTS FOR (u:Usuario) ON (u.nombre)",
		"CREATE INDEX rango_max_minutos IF NOT EXISTS FOR (rd:RangoDuracion) ON (rd.max_minutos)",
	}

	for _, idx := range indexes {
		_, err := session.Run(ctx, idx, nil)
		if err != nil {
			// Indexes may already exist
			continue
		}
	}

	return nil
}

// seedReferenceNodes merges the catalog's emotions, characteristics and
// duration bands into the graph.
func seedReferenceNodes(ctx context.Context, driver neo4j.DriverWithContext, cat *catalog.Catalog) error {
	session := driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeWrite})
	defer session.Close(ctx)

	for _, emotion := range cat.Emotions() {
		_, err := session.Run(ctx, `
			MERGE (e:Emocion {tipo: $tipo})
			SET e.descripcion = $descripcion
		`, map[string]interface{}{
			"tipo":        emotion.Type,
			"descripcion": emotion.Description,
		})
		if err != nil {
			return fmt.Errorf("failed to merge emotion %s: %w", emotion.Type, err)
		}
	}

	for _, characteristic := range cat.Characteristics() {
		_, err := session.Run(ctx, `
			MERGE (c:Caracteristica {nombre: $nombre})
			SET c.descripcion = $descripcion
		`, map[string]interface{}{
			"nombre":      characteristic.Name,
			"descripcion": characteristic.Description,
		})
		if err != nil {
			return fmt.Errorf("failed to merge characteristic %s: %w", characteristic.Name, err)
		}
	}

	for _, band := range cat.DurationBands() {
		_, err := session.Run(ctx, `
			MERGE (rd:RangoDuracion {nombre: $nombre})
			SET rd.min_minutos = $min_minutos,
			    rd.max_minutos = $max_minutos,
			    rd.descripcion = $descripcion
		`, map[string]interface{}{
			"nombre":      band.Name,
			"min_minutos": band.MinMinutes,
			"max_minutos": band.MaxMinutes,
			"descripcion": band.Description,
		})
		if err != nil {
			return fmt.Errorf("failed to merge duration band %s: %w", band.Name, err)
		}
	}

	return nil
}

// seedGames merges the sample game set with all its reference links
func seedGames(ctx context.Context, driver neo4j.DriverWithContext) error {
	session := driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeWrite})
	defer session.Close(ctx)

	for _, game := range sampleGames {
		_, err := session.Run(ctx, `
			MERGE (j:Juego {id: $id})
			SET j.nombre = $nombre,
			    j.descripcion = $descripcion
		`, map[string]interface{}{
			"id":          game.id,
			"nombre":      game.name,
			"descripcion": game.description,
		})
		if err != nil {
			return fmt.Errorf("failed to merge game %s: %w", game.id, err)
		}

		for _, genre := range game.genres {
			_, err := session.Run(ctx, `
				MATCH (j:Juego {id: $id})
				MERGE (g:Genero {nombre: $genero})
				MERGE (j)-[:TIENE_GENERO]->(g)
			`, map[string]interface{}{"id": game.id, "genero": genre})
			if err != nil {
				return fmt.Errorf("failed to link genre %s: %w", genre, err)
			}
		}

		for _, characteristic := range game.characteristics {
			_, err := session.Run(ctx, `
				MATCH (j:Juego {id: $id})
				MERGE (c:Caracteristica {nombre: $caracteristica})
				MERGE (j)-[:TIENE_CARACTERISTICA]->(c)
			`, map[string]interface{}{"id": game.id, "caracteristica": characteristic})
			if err != nil {
				return fmt.Errorf("failed to link characteristic %s: %w", characteristic, err)
			}
		}

		_, err = session.Run(ctx, `
			MATCH (j:Juego {id: $id})
			MATCH (rd:RangoDuracion {nombre: $rango})
			MERGE (j)-[:TIENE_DURACION]->(rd)
		`, map[string]interface{}{"id": game.id, "rango": game.duration})
		if err != nil {
			return fmt.Errorf("failed to link duration for %s: %w", game.id, err)
		}

		for emotion, intensity := range game.resonances {
			_, err := session.Run(ctx, `
				MATCH (j:Juego {id: $id})
				MATCH (e:Emocion {tipo: $emocion})
				MERGE (j)-[res:RESUENA_CON]->(e)
				SET res.intensidad = $intensidad
			`, map[string]interface{}{
				"id":         game.id,
				"emocion":    emotion,
				"intensidad": intensity,
			})
			if err != nil {
				return fmt.Errorf("failed to link resonance %s->%s: %w", game.id, emotion, err)
			}
		}
	}

	return nil
}

// seedEmotionRelations merges RELACIONADO_CON edges from genres and
// characteristics to emotions, feeding the indirect scoring components.
func seedEmotionRelations(ctx context.Context, driver neo4j.DriverWithContext) error {
	session := driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeWrite})
	defer session.Close(ctx)

	for _, rel := range genreRelations {
		_, err := session.Run(ctx, `
			MATCH (g:Genero {nombre: $nombre})
			MATCH (e:Emocion {tipo: $emocion})
			MERGE (g)-[r:RELACIONADO_CON]->(e)
			SET r.intensidad = $intensidad
		`, map[string]interface{}{
			"nombre":     rel.from,
			"emocion":    rel.emotion,
			"intensidad": rel.intensity,
		})
		if err != nil {
			return fmt.Errorf("failed to relate genre %s to %s: %w", rel.from, rel.emotion, err)
		}
	}

	for _, rel := range characteristicRelations {
		_, err := session.Run(ctx, `
			MATCH (c:Caracteristica {nombre: $nombre})
			MATCH (e:Emocion {tipo: $emocion})
			MERGE (c)-[r:RELACIONADO_CON]->(e)
			SET r.intensidad = $intensidad
		`, map[string]interface{}{
			"nombre":     rel.from,
			"emocion":    rel.emotion,
			"intensidad": rel.intensity,
		})
		if err != nil {
			return fmt.Errorf("failed to relate characteristic %s to %s: %w", rel.from, rel.emotion, err)
		}
	}

	return nil
}

var sampleGames = []seedGame{
	{
		id:              "game1",
		name:            "Stardew Valley",
		description:     "Juego de granja relajante con elementos sociales",
		genres:          []string{"simulación", "rpg"},
		characteristics: []string{"coleccionable", "exploración", "personajes"},
		duration:        "medio",
		resonances:      map[string]float64{"relajante": 0.95, "creativo": 0.7, "social": 0.5},
	},
	{
		id:              "game4",
		name:            "Animal Crossing",
		description:     "Vida tranquila en una isla con vecinos animales",
		genres:          []string{"simulación"},
		characteristics: []string{"social", "coleccionable", "estilizado"},
		duration:        "corto",
		resonances:      map[string]float64{"relajante": 0.9, "social": 0.6, "creativo": 0.55},
	},
	{
		id:              "game11",
		name:            "Factorio",
		description:     "Construye y automatiza fábricas cada vez más complejas",
		genres:          []string{"estrategia", "simulación"},
		characteristics: []string{"estrategia", "difícil", "habilidades"},
		duration:        "muy_largo",
		resonances:      map[string]float64{"creativo": 0.9, "desafiante": 0.7, "contemplativo": 0.4},
	},
	{
		id:              "game12",
		name:            "Hades",
		description:     "Roguelike de acción con narrativa profunda",
		genres:          []string{"roguelike", "acción"},
		characteristics: []string{"combate", "rápido", "difícil", "personajes"},
		duration:        "corto",
		resonances:      map[string]float64{"desafiante": 0.9, "competitivo": 0.5, "alegre": 0.4},
	},
	{
		id:              "game13",
		name:            "Among Us",
		description:     "Deducción social con amigos en una nave espacial",
		genres:          []string{"fiesta", "deducción"},
		characteristics: []string{"social", "rápido", "trabajo en equipo"},
		duration:        "muy_corto",
		resonances:      map[string]float64{"social": 0.9, "alegre": 0.7, "competitivo": 0.5},
	},
	{
		id:              "game16",
		name:            "Elden Ring",
		description:     "Mundo abierto desafiante lleno de secretos",
		genres:          []string{"rpg", "acción"},
		characteristics: []string{"combate", "difícil", "exploración", "inmersivo"},
		duration:        "muy_largo",
		resonances:      map[string]float64{"desafiante": 0.95, "exploración": 0.8, "contemplativo": 0.4},
	},
	{
		id:              "game20",
		name:            "God of War",
		description:     "Aventura épica de padre e hijo en la mitología nórdica",
		genres:          []string{"acción", "aventura"},
		characteristics: []string{"combate", "historia", "personajes", "inmersivo"},
		duration:        "largo",
		resonances:      map[string]float64{"desafiante": 0.7, "melancólico": 0.5, "contemplativo": 0.5},
	},
	{
		id:              "game21",
		name:            "No Man's Sky",
		description:     "Exploración espacial infinita con mundos generados",
		genres:          []string{"exploración", "supervivencia"},
		characteristics: []string{"exploración", "inmersivo", "coleccionable"},
		duration:        "largo",
		resonances:      map[string]float64{"exploración": 0.95, "contemplativo": 0.7, "relajante": 0.5},
	},
	{
		id:              "game27",
		name:            "Subnautica",
		description:     "Supervivencia y exploración en un océano alienígena",
		genres:          []string{"supervivencia", "exploración"},
		characteristics: []string{"exploración", "inmersivo", "atmósfera"},
		duration:        "largo",
		resonances:      map[string]float64{"exploración": 0.85, "contemplativo": 0.8, "melancólico": 0.4},
	},
	{
		id:              "game28",
		name:            "Slay the Spire",
		description:     "Construcción de mazos roguelike por turnos",
		genres:          []string{"cartas", "roguelike"},
		characteristics: []string{"estrategia", "difícil", "decisiones"},
		duration:        "corto",
		resonances:      map[string]float64{"desafiante": 0.85, "contemplativo": 0.5, "competitivo": 0.45},
	},
	{
		id:              "game29",
		name:            "Final Fantasy XIV",
		description:     "MMORPG con una comunidad acogedora e historia épica",
		genres:          []string{"mmorpg", "rpg"},
		characteristics: []string{"social", "historia", "trabajo en equipo", "personajes"},
		duration:        "muy_largo",
		resonances:      map[string]float64{"social": 0.85, "melancólico": 0.5, "exploración": 0.5},
	},
	{
		id:              "game30",
		name:            "Satisfactory",
		description:     "Construcción de fábricas en primera persona en un planeta alienígena",
		genres:          []string{"simulación", "exploración"},
		characteristics: []string{"estrategia", "exploración", "habilidades"},
		duration:        "muy_largo",
		resonances:      map[string]float64{"creativo": 0.85, "desafiante": 0.6, "exploración": 0.55},
	},
	{
		id:              "game31",
		name:            "Journey",
		description:     "Viaje contemplativo por un desierto misterioso",
		genres:          []string{"aventura", "arte"},
		characteristics: []string{"atmósfera", "artístico", "inmersivo"},
		duration:        "muy_corto",
		resonances:      map[string]float64{"contemplativo": 0.95, "melancólico": 0.7, "relajante": 0.6},
	},
	{
		id:              "game32",
		name:            "Rocket League",
		description:     "Fútbol con coches propulsados a reacción",
		genres:          []string{"deportes", "acción"},
		characteristics: []string{"rápido", "habilidades", "trabajo en equipo"},
		duration:        "muy_corto",
		resonances:      map[string]float64{"competitivo": 0.95, "alegre": 0.6, "social": 0.5},
	},
}

var genreRelations = []emotionRelation{
	{"simulación", "relajante", 0.7},
	{"simulación", "creativo", 0.6},
	{"roguelike", "desafiante", 0.8},
	{"acción", "desafiante", 0.6},
	{"acción", "competitivo", 0.5},
	{"aventura", "exploración", 0.7},
	{"exploración", "exploración", 0.9},
	{"exploración", "contemplativo", 0.6},
	{"fiesta", "social", 0.9},
	{"fiesta", "alegre", 0.8},
	{"mmorpg", "social", 0.8},
	{"deportes", "competitivo", 0.8},
	{"cartas", "contemplativo", 0.5},
	{"arte", "contemplativo", 0.8},
	{"arte", "melancólico", 0.6},
	{"supervivencia", "desafiante", 0.5},
}

var characteristicRelations = []emotionRelation{
	{"social", "social", 0.9},
	{"combate", "desafiante", 0.7},
	{"difícil", "desafiante", 0.8},
	{"rápido", "competitivo", 0.5},
	{"exploración", "exploración", 0.9},
	{"historia", "melancólico", 0.5},
	{"inmersivo", "contemplativo", 0.6},
	{"trabajo en equipo", "social", 0.7},
	{"estrategia", "contemplativo", 0.6},
	{"atmósfera", "contemplativo", 0.7},
	{"artístico", "creativo", 0.7},
	{"coleccionable", "relajante", 0.4},
	{"personajes", "melancólico", 0.4},
	{"habilidades", "desafiante", 0.6},
	{"decisiones", "contemplativo", 0.5},
	{"estilizado", "creativo", 0.5},
}
