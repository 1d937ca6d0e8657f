package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/finalfeedback/finalfeedback/internal/models"
	"github.com/finalfeedback/finalfeedback/internal/notify"
	"github.com/finalfeedback/finalfeedback/internal/ratelimit"
	"github.com/finalfeedback/finalfeedback/internal/repository"
)

// Maximum lengths for text fields to avoid unbounded DB growth.
const (
	MaxCharacterName = 100
	MaxServer        = 50
	MaxComments      = 200
	MaxContentType   = 100
	MaxPlayerJob     = 100
)

type SubmitStatus int

const (
	// StatusAccepted means the submission was stored.
	StatusAccepted SubmitStatus = iota
	// StatusCooldown means the client submitted within the cooldown window.
	StatusCooldown
	// StatusHardLimited means the client exhausted its hourly attempt cap.
	StatusHardLimited
	// StatusInvalid means the payload failed validation.
	StatusInvalid
)

type SubmitResult struct {
	Status SubmitStatus
	// RetryAfter is the remaining cooldown, set only for StatusCooldown.
	RetryAfter time.Duration
	// Reason describes the validation failure, set only for StatusInvalid.
	Reason string
}

// FeedbackService owns the submission flow: rate gates, validation,
// persistence, notification. Handlers stay thin and map its results
// to templates.
type FeedbackService struct {
	repo     *repository.FeedbackRepository
	cooldown *ratelimit.CooldownLimiter
	attempts *ratelimit.AttemptLimiter
	notifier *notify.DiscordNotifier
	logger   *zap.Logger
}

func NewFeedbackService(
	repo *repository.FeedbackRepository,
	cooldown *ratelimit.CooldownLimiter,
	attempts *ratelimit.AttemptLimiter,
	notifier *notify.DiscordNotifier,
	logger *zap.Logger,
) *FeedbackService {
	return &FeedbackService{
		repo:     repo,
		cooldown: cooldown,
		attempts: attempts,
		notifier: notifier,
		logger:   logger,
	}
}

// Submit runs one submission from the client identified by clientIP through
// both rate gates, validates it, stores it, and fires the notification.
// Attempts are counted whether the cooldown allows or denies them; a client
// already over the hard cap is turned away without recording more.
func (s *FeedbackService) Submit(ctx context.Context, sub *models.FeedbackSubmission, clientIP string) (SubmitResult, error) {
	key := ratelimit.ClientKey(clientIP)
	now := time.Now()

	if s.attempts.Over(key, now) {
		return SubmitResult{Status: StatusHardLimited}, nil
	}

	if reason, ok := s.validate(sub); !ok {
		return SubmitResult{Status: StatusInvalid, Reason: reason}, nil
	}

	decision := s.cooldown.CheckAndRecord(key, now)
	s.attempts.Record(key, now)
	if !decision.Allowed {
		return SubmitResult{Status: StatusCooldown, RetryAfter: decision.RetryAfter}, nil
	}

	feedback := s.buildFeedback(sub, key, now)
	if err := s.repo.Create(ctx, feedback); err != nil {
		return SubmitResult{}, fmt.Errorf("failed to save feedback: %w", err)
	}

	s.logger.Info("New feedback submitted",
		zap.String("id", feedback.ID),
		zap.String("client_ip", key),
		zap.Int("rating_overall", feedback.RatingOverall))

	s.notifier.Dispatch(feedback)

	return SubmitResult{Status: StatusAccepted}, nil
}

func (s *FeedbackService) validate(sub *models.FeedbackSubmission) (string, bool) {
	for _, rating := range []int{
		sub.RatingMechanics,
		sub.RatingDamage,
		sub.RatingTeamwork,
		sub.RatingCommunication,
		sub.RatingOverall,
	} {
		if rating < 1 || rating > 5 {
			return "Invalid rating value", false
		}
	}

	if !sub.Anonymous() {
		server := strings.TrimSpace(sub.Server)
		if server != "" {
			if len([]rune(server)) > MaxServer || !models.IsValidServer(server) {
				return "Invalid server name", false
			}
		}
	}

	return "", true
}

func (s *FeedbackService) buildFeedback(sub *models.FeedbackSubmission, clientKey string, now time.Time) *models.Feedback {
	anonymous := sub.Anonymous()

	var characterName, server *string
	if !anonymous {
		characterName = truncate(sub.CharacterName, MaxCharacterName)
		server = truncate(sub.Server, MaxServer)
	}

	return &models.Feedback{
		CharacterName:       characterName,
		Server:              server,
		IsAnonymous:         anonymous,
		RatingMechanics:     sub.RatingMechanics,
		RatingDamage:        sub.RatingDamage,
		RatingTeamwork:      sub.RatingTeamwork,
		RatingCommunication: sub.RatingCommunication,
		RatingOverall:       sub.RatingOverall,
		Comments:            truncate(sub.Comments, MaxComments),
		ContentType:         truncate(sub.ContentType, MaxContentType),
		PlayerJob:           truncate(sub.PlayerJob, MaxPlayerJob),
		IPAddress:           clientKey,
		CreatedAt:           now.UTC(),
	}
}

// truncate trims whitespace, clamps to max characters, and maps empty
// input to nil so the column stays NULL.
func truncate(input string, max int) *string {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return nil
	}
	runes := []rune(trimmed)
	if len(runes) > max {
		trimmed = string(runes[:max])
	}
	return &trimmed
}

// Stats summarizes stored feedback for the admin panel.
type Stats struct {
	Total      int64
	AvgOverall float64
}

func (s *FeedbackService) List(ctx context.Context) ([]models.Feedback, error) {
	return s.repo.List(ctx)
}

func (s *FeedbackService) Delete(ctx context.Context, id string) (bool, error) {
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return false, err
	}
	if deleted {
		s.logger.Info("Deleted feedback", zap.String("id", id))
	}
	return deleted, nil
}

func (s *FeedbackService) Stats(ctx context.Context) (Stats, error) {
	total, err := s.repo.Count(ctx)
	if err != nil {
		return Stats{}, err
	}
	avg, err := s.repo.AverageOverall(ctx)
	if err != nil {
		return Stats{}, err
	}
	return Stats{Total: total, AvgOverall: avg}, nil
}
