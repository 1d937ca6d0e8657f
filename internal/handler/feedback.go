package handler

import (
	"math"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/finalfeedback/finalfeedback/internal/config"
	"github.com/finalfeedback/finalfeedback/internal/models"
	"github.com/finalfeedback/finalfeedback/internal/service"
)

type FeedbackHandler struct {
	service *service.FeedbackService
	player  config.PlayerConfig
}

func NewFeedbackHandler(service *service.FeedbackService, player config.PlayerConfig) *FeedbackHandler {
	return &FeedbackHandler{
		service: service,
		player:  player,
	}
}

// Index renders the feedback form.
func (h *FeedbackHandler) Index(c *gin.Context) {
	c.HTML(http.StatusOK, "index.html", gin.H{
		"player": h.player,
	})
}

// Submit handles a feedback form post. The client key is the connection's
// source IP; gin's ClientIP honors X-Forwarded-For only from the proxies
// configured as trusted on the engine.
func (h *FeedbackHandler) Submit(c *gin.Context) {
	var sub models.FeedbackSubmission
	if err := c.ShouldBind(&sub); err != nil {
		c.String(http.StatusBadRequest, "Invalid rating value")
		return
	}

	result, err := h.service.Submit(c.Request.Context(), &sub, c.ClientIP())
	if err != nil {
		c.String(http.StatusInternalServerError, "Failed to save feedback")
		return
	}

	switch result.Status {
	case service.StatusHardLimited:
		c.HTML(http.StatusOK, "rate_limited_hard.html", gin.H{
			"player": h.player,
		})
	case service.StatusCooldown:
		c.HTML(http.StatusOK, "rate_limited.html", gin.H{
			"player":       h.player,
			"retryMinutes": retryMinutes(result),
		})
	case service.StatusInvalid:
		c.String(http.StatusBadRequest, result.Reason)
	default:
		c.HTML(http.StatusOK, "success.html", gin.H{
			"player": h.player,
		})
	}
}

// retryMinutes rounds the remaining wait up to whole minutes for display,
// never below one.
func retryMinutes(result service.SubmitResult) int {
	minutes := int(math.Ceil(result.RetryAfter.Minutes()))
	if minutes < 1 {
		minutes = 1
	}
	return minutes
}
