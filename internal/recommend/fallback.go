package recommend

// Hand-curated recommendations served only when every graph query variant
// has failed. Ids and resonance values match the seeded Neo4j games so the
// feedback endpoint still resolves them.

// Fallback returns the static recommendation list for an emotion. Unknown
// emotions get the default list; the result is never empty.
func Fallback(emotion string) []Recommendation {
	if recs, ok := fallbackLists[emotion]; ok {
		return cloneRecommendations(recs)
	}
	return cloneRecommendations(fallbackDefault)
}

func cloneRecommendations(recs []Recommendation) []Recommendation {
	out := make([]Recommendation, len(recs))
	copy(out, recs)
	return out
}

var fallbackLists = map[string][]Recommendation{
	"relajante": {
		{
			ID:              "game1",
			Name:            "Stardew Valley",
			Description:     "Un juego de simulación de granja en el que puedes cultivar, pescar, minar y hacer amigos.",
			Score:           0.95,
			Genres:          []string{"simulación"},
			Characteristics: []string{"relajante", "social"},
			MatchedEmotions: []string{"relajante"},
		},
		{
			ID:              "game4",
			Name:            "Animal Crossing: New Horizons",
			Description:     "Un juego de simulación de vida donde construyes una comunidad en una isla desierta.",
			Score:           0.9,
			Genres:          []string{"simulación"},
			Characteristics: []string{"coleccionable", "relajante"},
			MatchedEmotions: []string{"relajante"},
		},
		{
			ID:              "game30",
			Name:            "Satisfactory",
			Description:     "Un juego de construcción de fábricas en primera persona en un planeta alienígena",
			Score:           0.7,
			Genres:          []string{"simulación", "construcción"},
			Characteristics: []string{"relajante", "creativo"},
			MatchedEmotions: []string{"relajante"},
		},
	},
	"desafiante": {
		{
			ID:              "game16",
			Name:            "Elden Ring",
			Description:     "Un RPG de acción de mundo abierto con combate desafiante y exploración no lineal",
			Score:           0.9,
			Genres:          []string{"acción", "RPG"},
			Characteristics: []string{"desafiante", "exploración"},
			MatchedEmotions: []string{"desafiante"},
		},
		{
			ID:              "game28",
			Name:            "Slay the Spire",
			Description:     "Un roguelike de construcción de mazos con estrategia por turnos",
			Score:           0.9,
			Genres:          []string{"estrategia", "roguelike"},
			Characteristics: []string{"desafiante"},
			MatchedEmotions: []string{"desafiante"},
		},
		{
			ID:              "game12",
			Name:            "Hades",
			Description:     "Un roguelike de acción con narrativa rica y combate frenético",
			Score:           0.85,
			Genres:          []string{"acción", "roguelike"},
			Characteristics: []string{"desafiante", "narrativa"},
			MatchedEmotions: []string{"desafiante"},
		},
	},
	"exploración": {
		{
			ID:              "game21",
			Name:            "No Man's Sky",
			Description:     "Un juego de exploración espacial con universo procedural virtualmente infinito",
			Score:           0.9,
			Genres:          []string{"exploración", "aventura"},
			Characteristics: []string{"exploración", "espacial"},
			MatchedEmotions: []string{"exploración"},
		},
		{
			ID:              "game20",
			Name:            "God of War (2018)",
			Description:     "Una aventura de acción con combate visceral y narrativa emotiva padre-hijo",
			Score:           0.8,
			Genres:          []string{"aventura", "acción"},
			Characteristics: []string{"exploración", "combate"},
			MatchedEmotions: []string{"exploración"},
		},
		{
			ID:              "game27",
			Name:            "Subnautica",
			Description:     "Un juego de supervivencia y exploración submarina en un planeta alienígena",
			Score:           0.85,
			Genres:          []string{"exploración", "supervivencia"},
			Characteristics: []string{"exploración", "atmósfera"},
			MatchedEmotions: []string{"exploración"},
		},
	},
	"creativo": {
		{
			ID:              "game11",
			Name:            "Factorio",
			Description:     "Un juego de construcción y gestión de fábricas con énfasis en la automatización",
			Score:           0.9,
			Genres:          []string{"estrategia", "construcción"},
			Characteristics: []string{"creativo", "optimización"},
			MatchedEmotions: []string{"creativo"},
		},
		{
			ID:              "game30",
			Name:            "Satisfactory",
			Description:     "Un juego de construcción de fábricas en primera persona en un planeta alienígena",
			Score:           0.85,
			Genres:          []string{"simulación", "construcción"},
			Characteristics: []string{"creativo", "exploración"},
			MatchedEmotions: []string{"creativo"},
		},
	},
	"social": {
		{
			ID:              "game13",
			Name:            "Among Us",
			Description:     "Un juego de deducción social donde identificas impostores entre la tripulación",
			Score:           0.95,
			Genres:          []string{"fiesta", "deducción"},
			Characteristics: []string{"social", "colaborativo"},
			MatchedEmotions: []string{"social"},
		},
		{
			ID:              "game29",
			Name:            "Final Fantasy XIV",
			Description:     "Un MMORPG con rica narrativa, diversas clases y contenido variado",
			Score:           0.85,
			Genres:          []string{"MMORPG", "RPG"},
			Characteristics: []string{"social", "colaborativo"},
			MatchedEmotions: []string{"social"},
		},
	},
}

var fallbackDefault = []Recommendation{
	{
		ID:              "game27",
		Name:            "Subnautica",
		Description:     "Un juego de supervivencia y exploración submarina en un planeta alienígena",
		Score:           0.8,
		Genres:          []string{"supervivencia", "exploración"},
		Characteristics: []string{"atmósfera", "exploración"},
		MatchedEmotions: []string{"contemplativo"},
	},
}
