package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/finalfeedback/finalfeedback/internal/models"
)

// DiscordNotifier posts an embed to a Discord webhook for each accepted
// submission. Delivery is best-effort: the submission flow never fails
// because a notification did.
type DiscordNotifier struct {
	webhookURL string
	http       *http.Client
	logger     *zap.Logger
}

func NewDiscord(webhookURL string, logger *zap.Logger) *DiscordNotifier {
	return &DiscordNotifier{
		webhookURL: webhookURL,
		http:       &http.Client{Timeout: 10 * time.Second},
		logger:     logger,
	}
}

// Enabled reports whether a webhook URL is configured.
func (n *DiscordNotifier) Enabled() bool {
	return n.webhookURL != ""
}

type embedField struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Inline bool   `json:"inline"`
}

type embed struct {
	Title     string       `json:"title"`
	Color     int          `json:"color"`
	Fields    []embedField `json:"fields"`
	Footer    embedFooter  `json:"footer"`
	Timestamp string       `json:"timestamp"`
}

type embedFooter struct {
	Text string `json:"text"`
}

type webhookPayload struct {
	Embeds []embed `json:"embeds"`
}

// Send posts the feedback embed, blocking up to the client timeout.
func (n *DiscordNotifier) Send(ctx context.Context, feedback *models.Feedback) error {
	if !n.Enabled() {
		return nil
	}

	payload := webhookPayload{Embeds: []embed{n.buildEmbed(feedback)}}
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to encode webhook payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.webhookURL, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.http.Do(req)
	if err != nil {
		return fmt.Errorf("webhook request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("webhook returned %d: %s", resp.StatusCode, string(respBody))
	}

	return nil
}

// Dispatch sends on a goroutine so the HTTP response is never held up by
// Discord; failures are logged and dropped.
func (n *DiscordNotifier) Dispatch(feedback *models.Feedback) {
	if !n.Enabled() {
		return
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := n.Send(ctx, feedback); err != nil {
			n.logger.Error("Failed to send Discord notification", zap.Error(err))
			return
		}
		n.logger.Info("Discord notification sent")
	}()
}

func (n *DiscordNotifier) buildEmbed(feedback *models.Feedback) embed {
	var contextParts []string
	if feedback.PlayerJob != nil {
		contextParts = append(contextParts, "**Job:** "+*feedback.PlayerJob)
	}
	if feedback.ContentType != nil {
		contextParts = append(contextParts, "**Content:** "+*feedback.ContentType)
	}
	contextLine := "Not specified"
	if len(contextParts) > 0 {
		contextLine = strings.Join(contextParts, " | ")
	}

	comments := "_No comments provided_"
	if feedback.Comments != nil && *feedback.Comments != "" {
		comments = *feedback.Comments
		if len(comments) > 500 {
			comments = comments[:500] + "..."
		}
	}

	breakdown := fmt.Sprintf(
		"**Mechanics:** %s\n**Damage/Healing:** %s\n**Teamwork:** %s\n**Communication:** %s",
		stars(feedback.RatingMechanics),
		stars(feedback.RatingDamage),
		stars(feedback.RatingTeamwork),
		stars(feedback.RatingCommunication),
	)

	return embed{
		Title: "\U0001F4DD New Feedback Received!",
		Color: ratingColor(feedback.RatingOverall),
		Fields: []embedField{
			{Name: "\U0001F464 Reviewer", Value: feedback.DisplayName(), Inline: true},
			{Name: "\U0001F3AE Context", Value: contextLine, Inline: true},
			{
				Name:   "Overall Rating",
				Value:  fmt.Sprintf("%s (%.1f/5)", stars(feedback.RatingOverall), feedback.AverageRating()),
				Inline: true,
			},
			{Name: "Ratings Breakdown", Value: breakdown, Inline: false},
			{Name: "Comments", Value: comments, Inline: false},
		},
		Footer:    embedFooter{Text: "FinalFeedback - FFXIV Performance Survey"},
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
}

func stars(rating int) string {
	if rating < 0 {
		rating = 0
	}
	if rating > 5 {
		rating = 5
	}
	return strings.Repeat("★", rating) + strings.Repeat("☆", 5-rating)
}

// ratingColor maps the overall rating to the embed accent color.
func ratingColor(overall int) int {
	switch overall {
	case 5:
		return 0x4CAF50
	case 4:
		return 0x8BC34A
	case 3:
		return 0xFFC107
	case 2:
		return 0xFF9800
	default:
		return 0xF44336
	}
}
