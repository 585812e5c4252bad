// Package catalog holds the static reference data of the recommendation
// system: the emotion and characteristic vocabularies and the duration
// bands. The values mirror the nodes seeded in Neo4j exactly; the graph is
// the source of truth at runtime and this catalog is the in-process copy
// used for validation and fallback.
package catalog

// NeutralEmotion is the sentinel used when a profile carries no emotional
// signal, and the default emotion attributed to feedback submitted without
// an experienced-emotions list.
const NeutralEmotion = "neutral"

// Emotion is an emotional tag a game can resonate with
type Emotion struct {
	Type        string `json:"tipo"`
	Description string `json:"descripcion,omitempty"`
}

// Characteristic is a gameplay trait attached to games
type Characteristic struct {
	Name        string `json:"nombre"`
	Description string `json:"descripcion,omitempty"`
}

// DurationBand is one of five fixed buckets of expected session length.
// Bands are contiguous, non-overlapping and ordered.
type DurationBand struct {
	Name        string `json:"nombre"`
	MinMinutes  int    `json:"min_minutos"`
	MaxMinutes  int    `json:"max_minutos"`
	Description string `json:"descripcion"`
}

// Catalog is the immutable reference data set, loaded once at process start
// and injected by reference wherever it is needed.
type Catalog struct {
	emotions        []Emotion
	characteristics []Characteristic
	dealbreakers    []string
	bands           []DurationBand
}

// New builds the canonical catalog. The declaration order of emotions below
// is the canonical order used to break dominant-emotion ties.
func New() *Catalog {
	return &Catalog{
		emotions: []Emotion{
			{Type: "alegre", Description: "Experiencias divertidas y positivas"},
			{Type: "relajante", Description: "Experiencias calmadas y sin estrés"},
			{Type: "melancólico", Description: "Experiencias emotivas y nostálgicas"},
			{Type: "exploración", Description: "Experiencias de descubrimiento y curiosidad"},
			{Type: "desafiante", Description: "Experiencias que prueban tus habilidades"},
			{Type: "contemplativo", Description: "Experiencias reflexivas y pensativas"},
			{Type: "social", Description: "Experiencias de conexión con otros"},
			{Type: "competitivo", Description: "Experiencias de competición y superación"},
			{Type: "creativo", Description: "Experiencias de expresión y creación"},
		},
		characteristics: []Characteristic{
			{Name: "social", Description: "Juegos con enfoque en interacciones sociales"},
			{Name: "exploración", Description: "Juegos que incentivan descubrir el mundo"},
			{Name: "desafiante", Description: "Juegos que ponen a prueba tus habilidades"},
			{Name: "historia", Description: "Juegos con narrativas desarrolladas"},
			{Name: "puzzles", Description: "Juegos con rompecabezas y acertijos"},
			{Name: "coleccionable", Description: "Juegos que incluyen elementos coleccionables"},
			{Name: "difícil", Description: "Juegos con alto nivel de dificultad"},
			{Name: "combate", Description: "Juegos con sistemas de combate"},
			{Name: "atmósfera", Description: "Juegos con ambientes inmersivos"},
			{Name: "inmersivo", Description: "Juegos que te sumergen completamente en su mundo"},
			{Name: "decisiones", Description: "Juegos donde tus decisiones importan"},
			{Name: "artístico", Description: "Juegos con estética y diseño artístico destacable"},
			{Name: "trabajo en equipo", Description: "Juegos que requieren coordinación en grupo"},
			{Name: "habilidades", Description: "Juegos que requieren desarrollo de destrezas específicas"},
			{Name: "estrategia", Description: "Juegos que requieren planificación"},
			{Name: "rápido", Description: "Juegos con ritmo acelerado"},
			{Name: "personajes", Description: "Juegos con desarrollo de personajes destacable"},
			{Name: "estilizado", Description: "Juegos con estilo visual distintivo"},
		},
		dealbreakers: []string{"combate", "difícil", "social", "rápido"},
		bands: []DurationBand{
			{Name: "muy_corto", MinMinutes: 0, MaxMinutes: 30, Description: "Menos de 30 minutos"},
			{Name: "corto", MinMinutes: 30, MaxMinutes: 60, Description: "Entre 30 minutos y 1 hora"},
			{Name: "medio", MinMinutes: 60, MaxMinutes: 180, Description: "Entre 1 y 3 horas"},
			{Name: "largo", MinMinutes: 180, MaxMinutes: 480, Description: "Entre 3 y 8 horas"},
			{Name: "muy_largo", MinMinutes: 480, MaxMinutes: 9999, Description: "Más de 8 horas"},
		},
	}
}

// Emotions returns every emotion in canonical order
func (c *Catalog) Emotions() []Emotion {
	out := make([]Emotion, len(c.emotions))
	copy(out, c.emotions)
	return out
}

// EmotionTypes returns the emotion names in canonical order
func (c *Catalog) EmotionTypes() []string {
	out := make([]string, 0, len(c.emotions))
	for _, e := range c.emotions {
		out = append(out, e.Type)
	}
	return out
}

// HasEmotion reports whether the emotion type belongs to the catalog
func (c *Catalog) HasEmotion(emotionType string) bool {
	for _, e := range c.emotions {
		if e.Type == emotionType {
			return true
		}
	}
	return false
}

// Characteristics returns every characteristic
func (c *Catalog) Characteristics() []Characteristic {
	out := make([]Characteristic, len(c.characteristics))
	copy(out, c.characteristics)
	return out
}

// CharacteristicNames returns the characteristic names
func (c *Catalog) CharacteristicNames() []string {
	out := make([]string, 0, len(c.characteristics))
	for _, ch := range c.characteristics {
		out = append(out, ch.Name)
	}
	return out
}

// DealbreakerCharacteristics returns the subset of characteristics users
// commonly want excluded
func (c *Catalog) DealbreakerCharacteristics() []string {
	out := make([]string, len(c.dealbreakers))
	copy(out, c.dealbreakers)
	return out
}

// DurationBands returns the five bands in ascending order
func (c *Catalog) DurationBands() []DurationBand {
	out := make([]DurationBand, len(c.bands))
	copy(out, c.bands)
	return out
}

// BandByName looks up a duration band by its database name
func (c *Catalog) BandByName(name string) (DurationBand, bool) {
	for _, b := range c.bands {
		if b.Name == name {
			return b, true
		}
	}
	return DurationBand{}, false
}

// DefaultBand is the band assumed when a user never states a preference
func (c *Catalog) DefaultBand() DurationBand {
	band, _ := c.BandByName("medio")
	return band
}
