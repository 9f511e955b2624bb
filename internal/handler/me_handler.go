package handler

import (
	"net/http"

	"studiohq/internal/middleware"
	"studiohq/internal/repository"

	"github.com/gin-gonic/gin"
)

type MeHandler struct {
	userRepo   *repository.UserRepository
	waiverRepo *repository.WaiverRepository
	intakeRepo *repository.IntakeRepository
}

func NewMeHandler(userRepo *repository.UserRepository, waiverRepo *repository.WaiverRepository, intakeRepo *repository.IntakeRepository) *MeHandler {
	return &MeHandler{userRepo: userRepo, waiverRepo: waiverRepo, intakeRepo: intakeRepo}
}

// Get returns the current user plus the onboarding-gate flags the SPA checks
// on every load: waiver signed and which intake forms exist.
func (h *MeHandler) Get(c *gin.Context) {
	userID := middleware.GetUserID(c)
	u, err := h.userRepo.GetByID(userID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}
	signed, err := h.waiverRepo.HasSigned(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "waiver lookup failed"})
		return
	}
	subs, err := h.intakeRepo.ListByUser(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "intake lookup failed"})
		return
	}
	forms := make([]string, 0, len(subs))
	for _, s := range subs {
		forms = append(forms, s.FormType)
	}
	c.JSON(http.StatusOK, gin.H{
		"user":          u,
		"waiver_signed": signed,
		"intake_forms":  forms,
	})
}

// ListClients returns all client accounts, for admin pickers.
func (h *MeHandler) ListClients(c *gin.Context) {
	limit, offset := pagination(c)
	clients, err := h.userRepo.ListClients(limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "lookup failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"clients": clients})
}
