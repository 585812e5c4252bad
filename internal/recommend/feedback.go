package recommend

import (
	"context"

	"github.com/fatupopzz/game-soul/internal/catalog"
	"github.com/fatupopzz/game-soul/pkg/errors"
	"github.com/fatupopzz/game-soul/pkg/logger"
	"go.uber.org/zap"
)

// Feedback update policy: satisfaction 1..5 maps to a bounded delta of
// (satisfaction-3)/10, so a single play nudges resonance by at most 0.2 in
// either direction. A fresh edge starts from the 0.5 midpoint.
const (
	feedbackNeutralSatisfaction = 3
	feedbackDeltaDivisor        = 10.0
	feedbackInitialResonance    = 0.5
)

// FeedbackProcessor folds satisfaction ratings back into the user's
// resonance weights. Repeated identical submissions keep nudging; each call
// is a distinct signal, not an idempotent write.
type FeedbackProcessor struct {
	port   QueryPort
	logger *zap.Logger
}

// NewFeedbackProcessor creates a feedback processor
func NewFeedbackProcessor(port QueryPort) *FeedbackProcessor {
	return &FeedbackProcessor{
		port:   port,
		logger: logger.Get(),
	}
}

// Process records the play and nudges the user's resonance toward each
// experienced emotion. When no emotions are given the neutral sentinel
// receives the nudge.
func (p *FeedbackProcessor) Process(ctx context.Context, userID, gameID string, satisfaction int, emotionsExperienced []string) error {
	if userID == "" {
		return errors.NewValidation("user_id", "must not be empty")
	}
	if gameID == "" {
		return errors.NewValidation("game_id", "must not be empty")
	}
	if satisfaction < 1 || satisfaction > 5 {
		return errors.NewValidation("satisfaction", "must be between 1 and 5")
	}

	if err := p.port.UpsertPlayed(ctx, userID, gameID, satisfaction); err != nil {
		return errors.NewDatabase("upsert played edge", err)
	}

	delta := float64(satisfaction-feedbackNeutralSatisfaction) / feedbackDeltaDivisor

	emotions := emotionsExperienced
	if len(emotions) == 0 {
		emotions = []string{catalog.NeutralEmotion}
	}

	for _, emotion := range emotions {
		current, exists, err := p.port.GetUserResonance(ctx, userID, emotion)
		if err != nil {
			return errors.NewDatabase("read user resonance", err)
		}
		if !exists {
			current = feedbackInitialResonance
		}

		next := clamp01(current + delta)
		if err := p.port.UpsertUserResonance(ctx, userID, emotion, next); err != nil {
			return errors.NewDatabase("upsert user resonance", err)
		}

		p.logger.Debug("Resonance nudged",
			zap.String("user_id", userID),
			zap.String("emotion", emotion),
			zap.Float64("delta", delta),
			zap.Float64("intensity", next),
		)
	}

	p.logger.Info("Feedback processed",
		zap.String("user_id", userID),
		zap.String("game_id", gameID),
		zap.Int("satisfaction", satisfaction),
		zap.Int("emotions", len(emotions)),
	)
	return nil
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
