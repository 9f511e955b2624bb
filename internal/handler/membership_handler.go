package handler

import (
	"errors"
	"net/http"
	"time"

	"studiohq/internal/middleware"
	"studiohq/internal/models"
	"studiohq/internal/repository"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type MembershipHandler struct {
	membershipRepo *repository.MembershipRepository
	userRepo       *repository.UserRepository
}

func NewMembershipHandler(membershipRepo *repository.MembershipRepository, userRepo *repository.UserRepository) *MembershipHandler {
	return &MembershipHandler{membershipRepo: membershipRepo, userRepo: userRepo}
}

// Status reports whether the caller currently books without credits.
func (h *MembershipHandler) Status(c *gin.Context) {
	m, err := h.membershipRepo.GetByUserID(middleware.GetUserID(c))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusOK, gin.H{"membership": nil, "unlimited_active": false})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "membership lookup failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"membership":       m,
		"unlimited_active": m.UnlimitedActive(time.Now()),
	})
}

type setMembershipRequest struct {
	UserID    uint       `json:"user_id" binding:"required"`
	PlanName  string     `json:"plan_name" binding:"required,max=64"`
	Unlimited bool       `json:"unlimited"`
	ExpiresAt *time.Time `json:"expires_at"`
}

func (h *MembershipHandler) AdminSet(c *gin.Context) {
	var req setMembershipRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if _, err := h.userRepo.GetByID(req.UserID); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}
	m := &models.Membership{
		UserID:    req.UserID,
		PlanName:  req.PlanName,
		Unlimited: req.Unlimited,
		ExpiresAt: req.ExpiresAt,
	}
	if err := h.membershipRepo.Upsert(m); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "save failed"})
		return
	}
	c.JSON(http.StatusOK, m)
}

func (h *MembershipHandler) AdminClear(c *gin.Context) {
	id, err := parseID(c, "user_id")
	if err != nil {
		return
	}
	if err := h.membershipRepo.DeleteByUserID(id); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "delete failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "membership removed"})
}
