package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"studiohq/internal/domain"
	"studiohq/internal/middleware"
	"studiohq/internal/models"
	"studiohq/internal/repository"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type IntakeHandler struct {
	intakeRepo *repository.IntakeRepository
}

func NewIntakeHandler(intakeRepo *repository.IntakeRepository) *IntakeHandler {
	return &IntakeHandler{intakeRepo: intakeRepo}
}

type intakeSubmitRequest struct {
	FormType string          `json:"form_type" binding:"required"`
	Payload  json.RawMessage `json:"payload" binding:"required"`
}

// Submit upserts the (user, form type) submission. The payload may be any
// JSON value, object or array; it is stored verbatim.
func (h *IntakeHandler) Submit(c *gin.Context) {
	var req intakeSubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !domain.ValidIntakeFormType(req.FormType) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown form_type"})
		return
	}
	sub, err := h.intakeRepo.Upsert(middleware.GetUserID(c), req.FormType, string(req.Payload), time.Now())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "submit failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"form_type": sub.FormType, "submitted_at": sub.SubmittedAt})
}

// submissionView decodes the stored payload; an unparseable payload is
// flagged rather than failing the request.
func submissionView(sub models.IntakeSubmission) gin.H {
	out := gin.H{
		"form_type":    sub.FormType,
		"submitted_at": sub.SubmittedAt,
		"user_id":      sub.UserID,
	}
	var payload interface{}
	if err := json.Unmarshal([]byte(sub.Payload), &payload); err != nil {
		out["payload"] = nil
		out["parse_error"] = true
	} else {
		out["payload"] = payload
	}
	return out
}

// Status returns the caller's submissions per form type.
func (h *IntakeHandler) Status(c *gin.Context) {
	subs, err := h.intakeRepo.ListByUser(middleware.GetUserID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "lookup failed"})
		return
	}
	out := make([]gin.H, 0, len(subs))
	for _, s := range subs {
		out = append(out, submissionView(s))
	}
	c.JSON(http.StatusOK, gin.H{"submissions": out})
}

// GetForm returns a single submission for the caller.
func (h *IntakeHandler) GetForm(c *gin.Context) {
	formType := c.Param("form_type")
	sub, err := h.intakeRepo.GetByUserAndForm(middleware.GetUserID(c), formType)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "no submission"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "lookup failed"})
		return
	}
	c.JSON(http.StatusOK, submissionView(*sub))
}

// AdminList returns all submissions across users.
func (h *IntakeHandler) AdminList(c *gin.Context) {
	limit, offset := pagination(c)
	subs, err := h.intakeRepo.ListAll(limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "lookup failed"})
		return
	}
	out := make([]gin.H, 0, len(subs))
	for _, s := range subs {
		v := submissionView(s)
		v["user_email"] = s.User.Email
		out = append(out, v)
	}
	c.JSON(http.StatusOK, gin.H{"submissions": out})
}
