package handler

import (
	"net/http"
	"strconv"

	"studiohq/internal/service"

	"github.com/gin-gonic/gin"
)

type ReminderHandler struct {
	reminderService *service.ReminderService
	defaultHours    int
}

func NewReminderHandler(reminderService *service.ReminderService, defaultHours int) *ReminderHandler {
	return &ReminderHandler{reminderService: reminderService, defaultHours: defaultHours}
}

func (h *ReminderHandler) hoursAhead(c *gin.Context) int {
	if raw := c.Query("hours_ahead"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			return n
		}
	}
	return h.defaultHours
}

// Preview lists the bookings a sweep would target without sending anything.
func (h *ReminderHandler) Preview(c *gin.Context) {
	targets, err := h.reminderService.Preview(h.hoursAhead(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "preview failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"targets": targets, "count": len(targets)})
}

// Run triggers a sweep immediately and reports per-booking results.
func (h *ReminderHandler) Run(c *gin.Context) {
	results, err := h.reminderService.Sweep(c.Request.Context(), h.hoursAhead(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "sweep failed", "partial": results})
		return
	}
	c.JSON(http.StatusOK, gin.H{"results": results, "count": len(results)})
}
