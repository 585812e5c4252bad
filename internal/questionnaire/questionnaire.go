// Package questionnaire defines the canonical five-question emotional
// questionnaire and builds emotional profiles from submitted answers.
package questionnaire

// Question is one questionnaire entry with its fixed options
type Question struct {
	ID      string   `json:"id"`
	Text    string   `json:"text"`
	Type    string   `json:"question_type"`
	Options []Option `json:"options"`
}

// Option is a selectable answer. Exactly one of Emotions or Duration is
// set: Emotions maps emotions to intensity contributions, Duration names a
// duration band.
type Option struct {
	ID       string             `json:"id"`
	Text     string             `json:"text"`
	Emotions map[string]float64 `json:"emotions,omitempty"`
	Duration string             `json:"duration,omitempty"`
}

// Question types
const (
	TypeEmotionalState     = "emotional_state"
	TypeTimeAvailable      = "time_available"
	TypeActivityPreference = "activity_preference"
	TypeMoodState          = "mood_state"
	TypeGoalState          = "goal_state"
)

// Questions returns the canonical question set. Option ids and emotion
// mappings are the contract shared with the frontend; changing an id breaks
// stored answers.
func Questions() []Question {
	return []Question{
		{
			ID:   "tipo_experiencia",
			Text: "¿Qué tipo de experiencia buscas ahora mismo?",
			Type: TypeEmotionalState,
			Options: []Option{
				{ID: "relajante", Text: "Relajarme", Emotions: map[string]float64{"relajante": 0.9, "contemplativo": 0.4}},
				{ID: "emocion", Text: "Sentir emoción", Emotions: map[string]float64{"desafiante": 0.7, "alegre": 0.6}},
				{ID: "desafio", Text: "Desafiarme", Emotions: map[string]float64{"desafiante": 0.9, "competitivo": 0.5}},
				{ID: "exploracion", Text: "Explorar algo nuevo", Emotions: map[string]float64{"exploración": 0.9, "creativo": 0.4}},
				{ID: "conexion", Text: "Conectar con otros", Emotions: map[string]float64{"social": 0.9, "alegre": 0.3}},
			},
		},
		{
			ID:   "tiempo_disponible",
			Text: "¿Cuánto tiempo tienes disponible para jugar?",
			Type: TypeTimeAvailable,
			Options: []Option{
				{ID: "muy_corto", Text: "Muy poco (Menos de 30 minutos)", Duration: "muy_corto"},
				{ID: "corto", Text: "Poco (Entre 30 minutos y 1 hora)", Duration: "corto"},
				{ID: "medio", Text: "Moderado (Entre 1 y 3 horas)", Duration: "medio"},
				{ID: "largo", Text: "Bastante (Entre 3 y 8 horas)", Duration: "largo"},
				{ID: "muy_largo", Text: "Mucho (Más de 8 horas)", Duration: "muy_largo"},
			},
		},
		{
			ID:   "estado_animo",
			Text: "¿Cómo describirías tu estado de ánimo actual?",
			Type: TypeMoodState,
			Options: []Option{
				{ID: "energico", Text: "Enérgico", Emotions: map[string]float64{"alegre": 0.7, "desafiante": 0.6, "competitivo": 0.5}},
				{ID: "tranquilo", Text: "Tranquilo", Emotions: map[string]float64{"relajante": 0.8, "contemplativo": 0.6}},
				{ID: "aburrido", Text: "Aburrido", Emotions: map[string]float64{"exploración": 0.7, "desafiante": 0.5}},
				{ID: "nostalgico", Text: "Nostálgico", Emotions: map[string]float64{"melancólico": 0.8, "contemplativo": 0.6}},
				{ID: "curioso", Text: "Curioso", Emotions: map[string]float64{"exploración": 0.9, "creativo": 0.5}},
				{ID: "estresado", Text: "Estresado", Emotions: map[string]float64{"relajante": 0.8, "social": 0.4}},
			},
		},
		{
			ID:   "actividad_preferida",
			Text: "Si tuvieras que elegir una actividad ahora mismo, ¿cuál sería?",
			Type: TypeActivityPreference,
			Options: []Option{
				{ID: "puzzle", Text: "Resolver un puzzle", Emotions: map[string]float64{"desafiante": 0.7, "contemplativo": 0.5}},
				{ID: "historia", Text: "Contar una historia", Emotions: map[string]float64{"creativo": 0.8, "social": 0.6}},
				{ID: "construir", Text: "Construir algo", Emotions: map[string]float64{"creativo": 0.9, "relajante": 0.4}},
				{ID: "competir", Text: "Competir", Emotions: map[string]float64{"competitivo": 0.9, "desafiante": 0.7}},
				{ID: "descubrir", Text: "Descubrir un lugar nuevo", Emotions: map[string]float64{"exploración": 0.9, "alegre": 0.4}},
			},
		},
		{
			ID:   "meta_emocional",
			Text: "¿Qué te gustaría sentir después de jugar?",
			Type: TypeGoalState,
			Options: []Option{
				{ID: "satisfaccion", Text: "Satisfacción por superar un reto", Emotions: map[string]float64{"desafiante": 0.9, "competitivo": 0.6}},
				{ID: "calma", Text: "Calma y tranquilidad", Emotions: map[string]float64{"relajante": 0.9, "contemplativo": 0.6}},
				{ID: "asombro", Text: "Asombro y curiosidad", Emotions: map[string]float64{"exploración": 0.8, "contemplativo": 0.5}},
				{ID: "diversion", Text: "Diversión y alegría", Emotions: map[string]float64{"alegre": 0.9, "social": 0.6}},
				{ID: "conexion", Text: "Conexión con una historia o personajes", Emotions: map[string]float64{"melancólico": 0.6, "contemplativo": 0.8}},
			},
		},
	}
}
