package handler

import (
	"net/http"

	"studiohq/internal/middleware"
	"studiohq/internal/repository"

	"github.com/gin-gonic/gin"
)

type RewardsHandler struct {
	rewardsRepo *repository.RewardsRepository
}

func NewRewardsHandler(rewardsRepo *repository.RewardsRepository) *RewardsHandler {
	return &RewardsHandler{rewardsRepo: rewardsRepo}
}

// Get returns the derived point balance and recent ledger entries.
func (h *RewardsHandler) Get(c *gin.Context) {
	userID := middleware.GetUserID(c)
	balance, err := h.rewardsRepo.Balance(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "balance lookup failed"})
		return
	}
	recent, err := h.rewardsRepo.Recent(userID, 20)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "ledger lookup failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"balance": balance, "recent": recent})
}
