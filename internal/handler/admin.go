package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/finalfeedback/finalfeedback/internal/config"
	"github.com/finalfeedback/finalfeedback/internal/service"
)

type AdminHandler struct {
	service *service.FeedbackService
	admin   config.AdminConfig
	player  config.PlayerConfig
}

func NewAdminHandler(service *service.FeedbackService, admin config.AdminConfig, player config.PlayerConfig) *AdminHandler {
	return &AdminHandler{
		service: service,
		admin:   admin,
		player:  player,
	}
}

// Login renders the admin login page, or the lockout page while the
// default password is still in place.
func (h *AdminHandler) Login(c *gin.Context) {
	if h.admin.IsDefaultPassword {
		c.HTML(http.StatusOK, "default_password_error.html", gin.H{})
		return
	}
	c.HTML(http.StatusOK, "admin_login.html", gin.H{})
}

// DefaultPasswordGuard blocks the authenticated admin surface while the
// server runs on the default password; it must sit before RequireAdmin so
// nobody can "log in" with the well-known secret.
func (h *AdminHandler) DefaultPasswordGuard(c *gin.Context) {
	if h.admin.IsDefaultPassword {
		c.HTML(http.StatusOK, "default_password_error.html", gin.H{})
		c.Abort()
		return
	}
	c.Next()
}

// Panel lists all submissions, newest first, with summary stats.
func (h *AdminHandler) Panel(c *gin.Context) {
	ctx := c.Request.Context()

	feedbacks, err := h.service.List(ctx)
	if err != nil {
		c.String(http.StatusInternalServerError, "Database error")
		return
	}

	stats, err := h.service.Stats(ctx)
	if err != nil {
		c.String(http.StatusInternalServerError, "Database error")
		return
	}

	c.HTML(http.StatusOK, "admin.html", gin.H{
		"player":     h.player,
		"feedbacks":  feedbacks,
		"totalCount": stats.Total,
		"avgOverall": fmt.Sprintf("%.1f", stats.AvgOverall),
	})
}

// Delete removes a single submission by id.
func (h *AdminHandler) Delete(c *gin.Context) {
	id := c.Param("id")

	deleted, err := h.service.Delete(c.Request.Context(), id)
	if err != nil {
		c.String(http.StatusInternalServerError, "Failed to delete")
		return
	}

	if !deleted {
		c.String(http.StatusNotFound, "Feedback not found")
		return
	}

	c.String(http.StatusOK, "Deleted")
}
