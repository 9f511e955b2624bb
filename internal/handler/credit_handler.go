package handler

import (
	"errors"
	"net/http"
	"strconv"

	"studiohq/internal/domain"
	"studiohq/internal/middleware"
	"studiohq/internal/repository"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type CreditHandler struct {
	creditRepo *repository.CreditRepository
	userRepo   *repository.UserRepository
}

func NewCreditHandler(creditRepo *repository.CreditRepository, userRepo *repository.UserRepository) *CreditHandler {
	return &CreditHandler{creditRepo: creditRepo, userRepo: userRepo}
}

// MyBalances returns the caller's materialized balances per credit type.
func (h *CreditHandler) MyBalances(c *gin.Context) {
	balances, err := h.creditRepo.BalancesByUser(middleware.GetUserID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "balance lookup failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"balances": balances})
}

func (h *CreditHandler) ListTypes(c *gin.Context) {
	types, err := h.creditRepo.ListActiveTypes()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "list failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"credit_types": types})
}

type adjustRequest struct {
	UserID       uint   `json:"user_id" binding:"required"`
	CreditTypeID uint   `json:"credit_type_id" binding:"required"`
	Delta        int    `json:"delta" binding:"required"`
	Reason       string `json:"reason"`
}

// AdminAdjust grants or removes credits through the same ledger path as
// bookings; removals that would drive the balance negative are rejected.
func (h *CreditHandler) AdminAdjust(c *gin.Context) {
	var req adjustRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if _, err := h.userRepo.GetByID(req.UserID); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}
	if _, err := h.creditRepo.GetType(req.CreditTypeID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "credit type not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "lookup failed"})
		return
	}
	reason := req.Reason
	if reason == "" {
		reason = domain.ReasonAdminAdjust
	}
	actorID := middleware.GetUserID(c)
	newBalance, err := h.creditRepo.ApplyDelta(req.UserID, req.CreditTypeID, req.Delta, reason, &actorID)
	if err != nil {
		if errors.Is(err, repository.ErrInsufficientCredits) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "adjustment failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"new_balance": newBalance})
}

func (h *CreditHandler) AdminLedger(c *gin.Context) {
	limit, offset := pagination(c)
	var userID *uint
	if v := c.Query("user_id"); v != "" {
		n, err := strconv.ParseUint(v, 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user_id"})
			return
		}
		id := uint(n)
		userID = &id
	}
	entries, err := h.creditRepo.Ledger(userID, limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "ledger lookup failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"entries": entries})
}
