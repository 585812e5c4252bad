package questionnaire

import (
	"fmt"
	"sort"

	"github.com/fatupopzz/game-soul/internal/catalog"
	"github.com/fatupopzz/game-soul/pkg/errors"
)

// EmotionalProfile is the normalized emotional state derived from one
// questionnaire submission. Emotions sum to 1.0 after normalization, or the
// map is empty when no answer contributed an emotion.
type EmotionalProfile struct {
	UserID          string               `json:"user_id"`
	Emotions        map[string]float64   `json:"emotions"`
	DominantEmotion string               `json:"dominant_emotion"`
	DurationBand    catalog.DurationBand `json:"time_available"`
}

// Builder turns submitted answers into an EmotionalProfile. It is a pure
// function of (answers, question set); it never touches the datastore.
type Builder struct {
	questions []Question
	catalog   *catalog.Catalog
}

// NewBuilder creates a profile builder over the canonical question set
func NewBuilder(cat *catalog.Catalog) *Builder {
	return &Builder{
		questions: Questions(),
		catalog:   cat,
	}
}

// Questions exposes the builder's question set
func (b *Builder) Questions() []Question {
	return b.questions
}

// Build validates the answers and derives the profile. Every question must
// be answered and every option id must belong to its question.
func (b *Builder) Build(userID string, answers map[string]string) (*EmotionalProfile, error) {
	if err := b.validate(answers); err != nil {
		return nil, err
	}

	accumulated := make(map[string]float64)
	band := b.catalog.DefaultBand()

	for _, question := range b.questions {
		option := b.findOption(question, answers[question.ID])
		for emotion, intensity := range option.Emotions {
			accumulated[emotion] += intensity
		}
		if option.Duration != "" {
			// Last duration answer wins; the canonical set has one.
			if selected, ok := b.catalog.BandByName(option.Duration); ok {
				band = selected
			}
		}
	}

	normalize(accumulated)

	return &EmotionalProfile{
		UserID:          userID,
		Emotions:        accumulated,
		DominantEmotion: b.dominantEmotion(accumulated),
		DurationBand:    band,
	}, nil
}

// validate checks that every canonical question is answered with one of its
// own options and that no unknown question ids were submitted.
func (b *Builder) validate(answers map[string]string) error {
	known := make(map[string]bool, len(b.questions))
	for _, question := range b.questions {
		known[question.ID] = true

		optionID, ok := answers[question.ID]
		if !ok {
			return errors.NewValidation("answers", fmt.Sprintf("missing answer for question %q", question.ID))
		}
		if b.findOption(question, optionID) == nil {
			return errors.NewValidation("answers", fmt.Sprintf("option %q does not belong to question %q", optionID, question.ID))
		}
	}
	for questionID := range answers {
		if !known[questionID] {
			return errors.NewValidation("answers", fmt.Sprintf("unknown question %q", questionID))
		}
	}
	return nil
}

func (b *Builder) findOption(question Question, optionID string) *Option {
	for i := range question.Options {
		if question.Options[i].ID == optionID {
			return &question.Options[i]
		}
	}
	return nil
}

// dominantEmotion picks the highest-weighted emotion. Ties break on the
// catalog's canonical order so the selection is reproducible regardless of
// map iteration; an empty profile yields the neutral sentinel.
func (b *Builder) dominantEmotion(weights map[string]float64) string {
	if len(weights) == 0 {
		return catalog.NeutralEmotion
	}

	ordered := b.catalog.EmotionTypes()
	// Emotions outside the catalog sort after the canonical ones, by name
	var extra []string
	for emotion := range weights {
		if !b.catalog.HasEmotion(emotion) {
			extra = append(extra, emotion)
		}
	}
	sort.Strings(extra)
	ordered = append(ordered, extra...)

	dominant := catalog.NeutralEmotion
	best := 0.0
	for _, emotion := range ordered {
		if weight, ok := weights[emotion]; ok && weight > best {
			dominant = emotion
			best = weight
		}
	}
	return dominant
}

// normalize scales weights so they sum to 1.0. A non-positive sum leaves
// the map empty.
func normalize(weights map[string]float64) {
	var sum float64
	for _, w := range weights {
		sum += w
	}
	if sum <= 0 {
		for k := range weights {
			delete(weights, k)
		}
		return
	}
	for k := range weights {
		weights[k] /= sum
	}
}
