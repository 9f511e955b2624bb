package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"studiohq/internal/domain"
	"studiohq/internal/middleware"
	"studiohq/internal/models"
	"studiohq/internal/repository"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// CatalogHandler covers class type and session management plus the
// client-facing session listing.
type CatalogHandler struct {
	sessionRepo *repository.SessionRepository
	bookingRepo *repository.BookingRepository
}

func NewCatalogHandler(sessionRepo *repository.SessionRepository, bookingRepo *repository.BookingRepository) *CatalogHandler {
	return &CatalogHandler{sessionRepo: sessionRepo, bookingRepo: bookingRepo}
}

// Class types (admin)

type classTypeRequest struct {
	Name            string `json:"name" binding:"required,max=128"`
	Description     string `json:"description"`
	DurationMinutes int    `json:"duration_minutes" binding:"required,min=1"`
	DefaultCapacity int    `json:"default_capacity" binding:"required,min=1"`
	Active          *bool  `json:"active"`
}

func (h *CatalogHandler) CreateClassType(c *gin.Context) {
	var req classTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	ct := &models.ClassType{
		Name:            req.Name,
		Description:     req.Description,
		DurationMinutes: req.DurationMinutes,
		DefaultCapacity: req.DefaultCapacity,
		Active:          req.Active == nil || *req.Active,
	}
	if err := h.sessionRepo.CreateClassType(ct); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "create failed"})
		return
	}
	c.JSON(http.StatusCreated, ct)
}

func (h *CatalogHandler) ListClassTypes(c *gin.Context) {
	list, err := h.sessionRepo.ListClassTypes()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "list failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"class_types": list})
}

func (h *CatalogHandler) UpdateClassType(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		return
	}
	ct, err := h.sessionRepo.GetClassType(id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "class type not found"})
		return
	}
	var req classTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	ct.Name = req.Name
	ct.Description = req.Description
	ct.DurationMinutes = req.DurationMinutes
	ct.DefaultCapacity = req.DefaultCapacity
	if req.Active != nil {
		ct.Active = *req.Active
	}
	if err := h.sessionRepo.UpdateClassType(ct); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "update failed"})
		return
	}
	c.JSON(http.StatusOK, ct)
}

func (h *CatalogHandler) DeleteClassType(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		return
	}
	if err := h.sessionRepo.DeleteClassType(id); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "delete failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "deleted"})
}

// Sessions (admin)

type sessionRequest struct {
	ClassTypeID uint      `json:"class_type_id" binding:"required"`
	StartsAt    time.Time `json:"starts_at" binding:"required"`
	EndsAt      time.Time `json:"ends_at"`
	Capacity    *int      `json:"capacity"` // nil means use the class type default
	Visible     *bool     `json:"visible"`
	Notes       string    `json:"notes"`
}

func (h *CatalogHandler) CreateSession(c *gin.Context) {
	var req sessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	ct, err := h.sessionRepo.GetClassType(req.ClassTypeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "class type not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "lookup failed"})
		return
	}
	capacity := ct.DefaultCapacity
	if req.Capacity != nil {
		capacity = *req.Capacity
	}
	if capacity < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "capacity must be at least 1"})
		return
	}
	endsAt := req.EndsAt
	if endsAt.IsZero() {
		endsAt = req.StartsAt.Add(time.Duration(ct.DurationMinutes) * time.Minute)
	}
	s := &models.Session{
		ClassTypeID: req.ClassTypeID,
		StartsAt:    req.StartsAt,
		EndsAt:      endsAt,
		Capacity:    capacity,
		Visible:     req.Visible == nil || *req.Visible,
		Notes:       req.Notes,
	}
	if err := h.sessionRepo.CreateSession(s); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "create failed"})
		return
	}
	c.JSON(http.StatusCreated, s)
}

func (h *CatalogHandler) ListSessionsAdmin(c *gin.Context) {
	limit, offset := pagination(c)
	var from, to *time.Time
	if v := c.Query("from"); v != "" {
		if t, err := time.Parse(time.RFC3339, v); err == nil {
			from = &t
		}
	}
	if v := c.Query("to"); v != "" {
		if t, err := time.Parse(time.RFC3339, v); err == nil {
			to = &t
		}
	}
	list, err := h.sessionRepo.ListSessions(from, to, limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "list failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"sessions": list})
}

func (h *CatalogHandler) UpdateSession(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		return
	}
	s, err := h.sessionRepo.GetSession(id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
		return
	}
	var req sessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	s.ClassTypeID = req.ClassTypeID
	s.StartsAt = req.StartsAt
	if !req.EndsAt.IsZero() {
		s.EndsAt = req.EndsAt
	}
	if req.Capacity != nil {
		s.Capacity = *req.Capacity
	}
	if req.Visible != nil {
		s.Visible = *req.Visible
	}
	s.Notes = req.Notes
	if err := h.sessionRepo.UpdateSession(s); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "update failed"})
		return
	}
	c.JSON(http.StatusOK, s)
}

func (h *CatalogHandler) DeleteSession(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		return
	}
	if err := h.sessionRepo.DeleteSession(id); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "delete failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "deleted"})
}

// ListUpcoming is the client-facing schedule: visible future sessions with
// booked counts and whether the caller already holds a booking.
func (h *CatalogHandler) ListUpcoming(c *gin.Context) {
	userID := middleware.GetUserID(c)
	limit, offset := pagination(c)
	sessions, err := h.sessionRepo.ListUpcomingVisible(time.Now(), limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "list failed"})
		return
	}
	ids := make([]uint, 0, len(sessions))
	for _, s := range sessions {
		ids = append(ids, s.ID)
	}
	counts, err := h.bookingRepo.SessionBookedCounts(ids)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "count failed"})
		return
	}
	out := make([]gin.H, 0, len(sessions))
	for _, s := range sessions {
		mine := false
		if _, err := h.bookingRepo.GetActiveByUserAndSession(userID, s.ID); err == nil {
			mine = true
		}
		out = append(out, gin.H{
			"session":        s,
			"booked_count":   counts[s.ID],
			"spots_left":     int64(s.Capacity) - counts[s.ID],
			"my_booking":     mine,
			"bookable_until": s.StartsAt.Add(-domain.BookingWindowHours * time.Hour),
		})
	}
	c.JSON(http.StatusOK, gin.H{"sessions": out})
}

// helpers shared by handlers

func parseID(c *gin.Context, param string) (uint, error) {
	n, err := strconv.ParseUint(c.Param(param), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + param})
		return 0, err
	}
	return uint(n), nil
}

func pagination(c *gin.Context) (limit, offset int) {
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ = strconv.Atoi(c.DefaultQuery("offset", "0"))
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}
